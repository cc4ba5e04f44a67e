package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/products", "GET", 200, 10*time.Millisecond)
	m.RecordRequest("/products", "GET", 200, 30*time.Millisecond)
	m.RecordError("/api/users", "GET", "FORBIDDEN")
	m.RecordDecision("redirect")
	m.RecordDecision("redirect")

	s := m.Snapshot()
	assert.Equal(t, int64(2), s.Requests["/products|GET|200"])
	assert.Equal(t, int64(1), s.Errors["/api/users|GET|FORBIDDEN"])
	assert.Equal(t, int64(2), s.Decisions["redirect"])
	assert.InDelta(t, 20.0, s.AverageLatencyMS, 0.001)

	s.Decisions["redirect"] = 99
	assert.Equal(t, int64(2), m.Snapshot().Decisions["redirect"])
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordDecision("allow")
	assert.Equal(t, Snapshot{}, m.Snapshot())
}
