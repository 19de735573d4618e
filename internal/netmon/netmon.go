// Package netmon tracks an advisory is-online flag derived from catalog fetch
// outcomes. Consumers use it for messaging only; sync correctness never
// depends on it, since the coordinator always tries and falls back on failure.
package netmon

import (
	"sync/atomic"

	"stocksync/internal/metrics"
)

type Monitor struct {
	offline atomic.Bool // zero value reports online, matching the optimistic default
}

func New() *Monitor {
	metrics.OnlineGauge.Set(1)
	return &Monitor{}
}

func (m *Monitor) Online() bool { return !m.offline.Load() }

func (m *Monitor) MarkOnline() {
	m.offline.Store(false)
	metrics.OnlineGauge.Set(1)
}

func (m *Monitor) MarkOffline() {
	m.offline.Store(true)
	metrics.OnlineGauge.Set(0)
}
