// Command panwire inspects and produces PAN wire frames.
//
// Decode a frame and print its header fields:
//
//	panwire -decode frame.bin
//	panwire -decode frame.hex -hex -payload-json
//
// Encode a packet description to a frame:
//
//	panwire -encode packet.json -out frame.bin
package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/pan-protocol/pan/core/wire"
	"github.com/pan-protocol/pan/observability"
)

func main() {
	var (
		configFile  = flag.String("config", "", "Path to panwire config TOML file")
		decodeFile  = flag.String("decode", "", "Path to a wire frame to decode")
		encodeFile  = flag.String("encode", "", "Path to a packet description JSON file to encode")
		outFile     = flag.String("out", "", "Output path for the encoded frame (default stdout as hex)")
		hexInput    = flag.Bool("hex", false, "Treat the decode input as hex text")
		payloadJSON = flag.Bool("payload-json", false, "Decode the payload as JSON after decoding the frame")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging to stderr")
	)
	flag.Parse()

	if (*decodeFile == "") == (*encodeFile == "") {
		fmt.Fprintln(os.Stderr, "Usage: panwire -decode <frame> | -encode <packet.json>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg := defaultToolConfig()
	if *configFile != "" {
		loaded, err := loadToolConfig(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	observability.RegisterObserver("slog", observability.NewSlogObserver(logger))

	observer, err := observability.GetObserver(cfg.Observer)
	if err != nil {
		log.Fatalf("Failed to resolve observer: %v", err)
	}

	opts := []wire.Option{
		wire.WithObserver(observer),
		wire.WithConfig(cfg.Defaults),
	}
	if cfg.ValidateBinary {
		opts = append(opts, wire.WithBinaryValidation())
	}
	codec := wire.New(opts...)

	ctx := context.Background()
	if *decodeFile != "" {
		if err := runDecode(ctx, codec, *decodeFile, *hexInput, *payloadJSON); err != nil {
			log.Fatalf("Decode failed: %v", err)
		}
		return
	}
	if err := runEncode(ctx, codec, *encodeFile, *outFile); err != nil {
		log.Fatalf("Encode failed: %v", err)
	}
}

func runDecode(ctx context.Context, codec *wire.Codec, path string, hexInput, payloadJSON bool) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read frame: %w", err)
	}
	if hexInput {
		buf, err = hex.DecodeString(strings.TrimSpace(string(buf)))
		if err != nil {
			return fmt.Errorf("decode hex input: %w", err)
		}
	}

	p, err := codec.Decode(ctx, buf)
	if err != nil {
		return err
	}

	fmt.Printf("version:    %d.%d\n", p.Version.Major, p.Version.Minor)
	fmt.Printf("type:       %s\n", p.Type)
	fmt.Printf("spread:     %d\n", p.Spread)
	fmt.Printf("ttl:        %d\n", p.TTL)
	fmt.Printf("flags:      0x%02x\n", p.Flags)
	fmt.Printf("from:       node=%s conn=%s\n", p.From.NodeID, p.From.ConnID)
	if p.Type.IsBroadcast() {
		fmt.Printf("to:         group=%s message_type=%s\n", p.To.GroupID, p.To.MessageType)
	} else {
		fmt.Printf("to:         node=%s conn=%s\n", p.To.NodeID, p.To.ConnID)
	}
	fmt.Printf("message_id: %s\n", p.MessageID)
	fmt.Printf("payload:    %d bytes\n", len(p.Payload.Raw()))

	if payloadJSON {
		value, err := wire.DecodeJSONPayload(p)
		if err != nil {
			return err
		}
		pretty, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return fmt.Errorf("render payload: %w", err)
		}
		fmt.Printf("payload json:\n%s\n", pretty)
	}
	return nil
}

// packetSpec is the JSON description accepted by -encode.
type packetSpec struct {
	Format      string           `json:"format"` // "binary" (default) or "json"
	Type        string           `json:"type"`
	Spread      *byte            `json:"spread,omitempty"`
	TTL         *byte            `json:"ttl,omitempty"`
	Flags       *byte            `json:"flags,omitempty"`
	From        wire.Peer        `json:"from"`
	To          wire.Destination `json:"to"`
	MessageID   string           `json:"message_id,omitempty"`
	PayloadText string           `json:"payload_text,omitempty"`
	PayloadHex  string           `json:"payload_hex,omitempty"`
	PayloadJSON json.RawMessage  `json:"payload_json,omitempty"`
}

func runEncode(ctx context.Context, codec *wire.Codec, path, outFile string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read packet description: %w", err)
	}
	var spec packetSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return fmt.Errorf("parse packet description: %w", err)
	}

	msgType, err := wire.ParseType(spec.Type)
	if err != nil {
		return err
	}

	cfg := codec.Config()
	p := &wire.Packet{
		Version:   wire.VersionBinary,
		Spread:    cfg.Spread,
		TTL:       cfg.TTL,
		Flags:     cfg.Flags,
		Type:      msgType,
		From:      spec.From,
		To:        spec.To,
		MessageID: spec.MessageID,
	}
	if spec.Format == "json" {
		p.Version = wire.VersionJSON
	}
	if spec.Spread != nil {
		p.Spread = *spec.Spread
	}
	if spec.TTL != nil {
		p.TTL = *spec.TTL
	}
	if spec.Flags != nil {
		p.Flags = *spec.Flags
	}

	switch {
	case spec.PayloadJSON != nil:
		var v any
		if err := json.Unmarshal(spec.PayloadJSON, &v); err != nil {
			return fmt.Errorf("parse payload_json: %w", err)
		}
		p.Payload = wire.JSONPayload(v)
	case spec.PayloadHex != "":
		b, err := hex.DecodeString(spec.PayloadHex)
		if err != nil {
			return fmt.Errorf("decode payload_hex: %w", err)
		}
		p.Payload = wire.BytesPayload(b)
	case spec.PayloadText != "":
		p.Payload = wire.BytesPayload([]byte(spec.PayloadText))
	}

	buf, err := codec.Encode(ctx, p)
	if err != nil {
		return err
	}

	if outFile == "" {
		fmt.Println(hex.EncodeToString(buf))
		return nil
	}
	if err := os.WriteFile(outFile, buf, 0o644); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	fmt.Printf("wrote %d bytes to %s (message_id %s)\n", len(buf), outFile, p.MessageID)
	return nil
}
