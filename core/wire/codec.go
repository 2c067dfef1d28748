package wire

import (
	"context"
	"time"

	"github.com/pan-protocol/pan/core/validate"
	"github.com/pan-protocol/pan/observability"
)

// Codec event types emitted around encode/decode calls.
const (
	EventEncode observability.EventType = "wire.encode"
	EventDecode observability.EventType = "wire.decode"
	EventReject observability.EventType = "wire.reject"
)

// Codec wraps the packet codec with an observer, metrics, and named header
// defaults. The package-level EncodePacket/DecodePacket stay pure; Codec is
// for callers that want the operational surface.
type Codec struct {
	observer       observability.Observer
	config         Config
	validateBinary bool
	metrics        *Metrics
}

// Option configures a Codec created by New.
type Option func(*Codec)

// WithObserver sets the observer that receives codec events.
func WithObserver(o observability.Observer) Option {
	return func(c *Codec) { c.observer = o }
}

// WithConfig sets the header defaults used by the codec's builders.
func WithConfig(cfg Config) Option {
	return func(c *Codec) { c.config = cfg }
}

// WithBinaryValidation enables header validation before binary encodes.
// The binary path skips validation otherwise, matching its higher-trust
// position in the protocol flow.
func WithBinaryValidation() Option {
	return func(c *Codec) { c.validateBinary = true }
}

// New creates a Codec with protocol defaults, a no-op observer, and fresh
// metrics.
func New(opts ...Option) *Codec {
	c := &Codec{
		observer: observability.NoOpObserver{},
		config:   DefaultConfig(),
		metrics:  NewMetrics(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config returns the codec's header defaults, for seeding builders.
func (c *Codec) Config() Config {
	return c.config
}

// Metrics returns the codec's live counters.
func (c *Codec) Metrics() *Metrics {
	return c.metrics
}

// Encode serializes a packet, dispatching on its declared version, and
// records the outcome. With WithBinaryValidation, binary-format packets are
// checked against the header validator first and fail with ErrInvalidHeader.
func (c *Codec) Encode(ctx context.Context, p *Packet) ([]byte, error) {
	if c.validateBinary && p.Version.Major == BinaryMajor {
		if !validate.ValidateHeader(p.headerView(), p.Payload.Raw(), false) {
			c.reject(ctx, "Codec.Encode", ErrInvalidHeader)
			return nil, ErrInvalidHeader
		}
	}

	buf, err := EncodePacket(p)
	if err != nil {
		c.reject(ctx, "Codec.Encode", err)
		return nil, err
	}

	c.metrics.RecordEncoded(len(buf))
	c.observer.OnEvent(ctx, observability.Event{
		Type:      EventEncode,
		Level:     observability.LevelVerbose,
		Timestamp: time.Now(),
		Source:    "Codec.Encode",
		Data: map[string]any{
			"type":       string(p.Type),
			"version":    p.Version.Major,
			"frame_size": len(buf),
			"message_id": p.MessageID,
		},
	})
	return buf, nil
}

// Decode parses a received frame and records the outcome. The returned
// packet's payload aliases buf.
func (c *Codec) Decode(ctx context.Context, buf []byte) (*Packet, error) {
	p, err := DecodePacket(buf)
	if err != nil {
		c.reject(ctx, "Codec.Decode", err)
		return nil, err
	}

	c.metrics.RecordDecoded(len(buf))
	c.observer.OnEvent(ctx, observability.Event{
		Type:      EventDecode,
		Level:     observability.LevelVerbose,
		Timestamp: time.Now(),
		Source:    "Codec.Decode",
		Data: map[string]any{
			"type":       string(p.Type),
			"version":    p.Version.Major,
			"frame_size": len(buf),
			"message_id": p.MessageID,
		},
	})
	return p, nil
}

func (c *Codec) reject(ctx context.Context, source string, err error) {
	c.metrics.RecordRejected()
	c.observer.OnEvent(ctx, observability.Event{
		Type:      EventReject,
		Level:     observability.LevelWarning,
		Timestamp: time.Now(),
		Source:    source,
		Data:      map[string]any{"error": err.Error()},
	})
}
