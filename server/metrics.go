package server

import (
	"sync/atomic"
)

// LobbyMetrics counts what happened in one lobby. Counters are updated from
// the lobby goroutine and read from HTTP handlers.
type LobbyMetrics struct {
	TickCount      int64 // simulated ticks, startup delay excluded
	InputsAccepted int64
	StaleInputs    int64 // tick older than the player's next expected tick
	UnknownPlayer  int64
	InboxFull      int64
	TotalTickNs    int64
}

func (m *LobbyMetrics) IncAccepted()      { atomic.AddInt64(&m.InputsAccepted, 1) }
func (m *LobbyMetrics) IncStale()         { atomic.AddInt64(&m.StaleInputs, 1) }
func (m *LobbyMetrics) IncUnknownPlayer() { atomic.AddInt64(&m.UnknownPlayer, 1) }
func (m *LobbyMetrics) IncInboxFull()     { atomic.AddInt64(&m.InboxFull, 1) }
func (m *LobbyMetrics) AddTick(ns int64) {
	atomic.AddInt64(&m.TickCount, 1)
	atomic.AddInt64(&m.TotalTickNs, ns)
}

// Snapshot returns a copy suitable for JSON output.
func (m *LobbyMetrics) Snapshot() map[string]any {
	tick := atomic.LoadInt64(&m.TickCount)
	total := atomic.LoadInt64(&m.TotalTickNs)
	var avgMs float64
	if tick > 0 {
		avgMs = float64(total) / float64(tick) / 1e6
	}
	return map[string]any{
		"tick_count":      tick,
		"inputs_accepted": atomic.LoadInt64(&m.InputsAccepted),
		"stale_inputs":    atomic.LoadInt64(&m.StaleInputs),
		"unknown_player":  atomic.LoadInt64(&m.UnknownPlayer),
		"inbox_full":      atomic.LoadInt64(&m.InboxFull),
		"avg_tick_ms":     avgMs,
	}
}
