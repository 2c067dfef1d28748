// Package validate implements structural validation of PAN packet headers.
//
// Validation is a pure verdict: ValidateHeader returns false on the first
// failed check and never allocates or panics. Callers decide policy — on
// decode a false verdict means the wire message is rejected, on encode it
// means the caller's packet is refused before any bytes are produced.
package validate

// Peer identifies a packet sender: the originating node and the connection
// the packet arrived on.
type Peer struct {
	NodeID string
	ConnID string
}

// Dest is the type-dependent "to" address. Directed and control packets use
// NodeID/ConnID; broadcast packets use GroupID/MessageType.
type Dest struct {
	NodeID      string
	ConnID      string
	GroupID     string
	MessageType string
}

// Header is the validator's view of a packet header. TTL is a pointer so an
// absent field is distinguishable from zero.
type Header struct {
	MessageID string
	From      Peer
	To        *Dest
	TTL       *int
	Type      string
}

// TTL bounds by origin. Agent-originated packets may not request forwarding
// beyond their own node's neighbors.
const (
	maxAgentTTL = 1
	maxNodeTTL  = 255
)

// Recognized type names. "direct" is an accepted alias of "directed".
func knownType(t string) bool {
	switch t {
	case "control", "directed", "direct", "broadcast":
		return true
	}
	return false
}

// uuidShaped reports whether s has the 36-char dashed UUID shape. This is a
// cheap structural check, not full hex validation.
func uuidShaped(s string) bool {
	if len(s) != 36 {
		return false
	}
	return s[8] == '-' && s[13] == '-' && s[18] == '-' && s[23] == '-'
}

// ValidateHeader checks a decoded or pre-encode header for structural
// soundness. Checks run in order and short-circuit on the first failure:
//
//  1. header present
//  2. message_id UUID-shaped
//  3. from.node_id UUID-shaped, from.conn_id present
//  4. ttl an integer within [0,1] for agent origin, [0,255] for node origin
//  5. type recognized
//  6. type-specific "to" shape; control additionally requires a payload
func ValidateHeader(h *Header, payload []byte, fromAgent bool) bool {
	if h == nil {
		return false
	}
	if !uuidShaped(h.MessageID) {
		return false
	}
	if !uuidShaped(h.From.NodeID) || h.From.ConnID == "" {
		return false
	}

	if h.TTL == nil {
		return false
	}
	maxTTL := maxNodeTTL
	if fromAgent {
		maxTTL = maxAgentTTL
	}
	if *h.TTL < 0 || *h.TTL > maxTTL {
		return false
	}

	if !knownType(h.Type) {
		return false
	}

	if h.To == nil {
		return false
	}
	switch h.Type {
	case "directed", "direct":
		return uuidShaped(h.To.NodeID) && uuidShaped(h.To.ConnID)
	case "control":
		if !uuidShaped(h.To.NodeID) || !uuidShaped(h.To.ConnID) {
			return false
		}
		return len(payload) > 0
	case "broadcast":
		return uuidShaped(h.To.GroupID) && uuidShaped(h.To.MessageType)
	}
	return false
}
