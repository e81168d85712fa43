// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package wepoll

import "sync/atomic"

// Metrics holds lock-free counters for one Poller's lifetime. Collection is
// always-on; incrementing a counter never blocks or errors. This is the
// concrete form of the observability hook called for by the remove-and-drain
// protocol's unbounded-loop design: a caller worried about a stuck DEL can
// poll DrainIterations from another goroutine.
type Metrics struct {
	Registrations   atomic.Int64
	Deregistrations atomic.Int64
	Modifications   atomic.Int64
	WaitablesAdded  atomic.Int64
	WaitablesRemoved atomic.Int64
	DrainsStarted   atomic.Int64
	DrainIterations atomic.Int64
	Reposts         atomic.Int64
	SpuriousDiscards atomic.Int64
	WaitCalls       atomic.Int64
	EventsDelivered atomic.Int64
}

func newMetrics() *Metrics { return &Metrics{} }

// Snapshot returns a point-in-time copy of every counter, keyed by field
// name, suitable for feeding into whatever logging/metrics system the caller
// already uses.
func (m *Metrics) Snapshot() map[string]int64 {
	return map[string]int64{
		"Registrations":    m.Registrations.Load(),
		"Deregistrations":  m.Deregistrations.Load(),
		"Modifications":    m.Modifications.Load(),
		"WaitablesAdded":   m.WaitablesAdded.Load(),
		"WaitablesRemoved": m.WaitablesRemoved.Load(),
		"DrainsStarted":    m.DrainsStarted.Load(),
		"DrainIterations":  m.DrainIterations.Load(),
		"Reposts":          m.Reposts.Load(),
		"SpuriousDiscards": m.SpuriousDiscards.Load(),
		"WaitCalls":        m.WaitCalls.Load(),
		"EventsDelivered":  m.EventsDelivered.Load(),
	}
}
