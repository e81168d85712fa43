// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package wepoll

import "testing"

func TestMetricsSnapshot(t *testing.T) {
	m := newMetrics()
	m.Registrations.Add(2)
	m.EventsDelivered.Add(5)

	snap := m.Snapshot()
	if snap["Registrations"] != 2 {
		t.Errorf("Registrations = %d, want 2", snap["Registrations"])
	}
	if snap["EventsDelivered"] != 5 {
		t.Errorf("EventsDelivered = %d, want 5", snap["EventsDelivered"])
	}
	if len(snap) != 11 {
		t.Errorf("Snapshot field count = %d, want 11", len(snap))
	}
}
