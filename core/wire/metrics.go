package wire

import "sync/atomic"

// MetricsSnapshot is a point-in-time copy of codec counters.
type MetricsSnapshot struct {
	Encoded      int64
	Decoded      int64
	Rejected     int64
	BytesEncoded int64
	BytesDecoded int64
}

// Metrics tracks codec operation counts. Safe for concurrent use.
type Metrics struct {
	encoded      atomic.Int64
	decoded      atomic.Int64
	rejected     atomic.Int64
	bytesEncoded atomic.Int64
	bytesDecoded atomic.Int64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) RecordEncoded(frameBytes int) {
	m.encoded.Add(1)
	m.bytesEncoded.Add(int64(frameBytes))
}

func (m *Metrics) RecordDecoded(frameBytes int) {
	m.decoded.Add(1)
	m.bytesDecoded.Add(int64(frameBytes))
}

func (m *Metrics) RecordRejected() {
	m.rejected.Add(1)
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Encoded:      m.encoded.Load(),
		Decoded:      m.decoded.Load(),
		Rejected:     m.rejected.Load(),
		BytesEncoded: m.bytesEncoded.Load(),
		BytesDecoded: m.bytesDecoded.Load(),
	}
}
