// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package wepoll

import "testing"

func TestEventSetters(t *testing.T) {
	var e Event
	e.SetReadable(true)
	e.SetWritable(true)
	if !e.IsReadable() || !e.IsWritable() {
		t.Fatal("expected readable and writable set")
	}
	if e.IsHangup() || e.IsError() {
		t.Fatal("unexpected bits set")
	}
	e.SetReadable(false)
	if e.IsReadable() {
		t.Fatal("expected readable cleared")
	}
}

func TestNone(t *testing.T) {
	e := None(42)
	if e.Key != 42 {
		t.Fatalf("key = %d, want 42", e.Key)
	}
	if e.Events != 0 {
		t.Fatalf("events = %d, want 0", e.Events)
	}
}

func TestPollModeString(t *testing.T) {
	cases := map[PollMode]string{
		Level:       "Level",
		Edge:        "Edge",
		Oneshot:     "Oneshot",
		EdgeOneshot: "EdgeOneshot",
		PollMode(99): "PollMode(?)",
	}
	for mode, want := range cases {
		if got := mode.String(); got != want {
			t.Errorf("PollMode(%d).String() = %q, want %q", mode, got, want)
		}
	}
}
