//go:build windows
// +build windows

// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package wepoll

import (
	"testing"

	"github.com/momentics/go-wepoll/internal/winnt"
)

func TestEventFilter(t *testing.T) {
	var e Event
	e.SetReadable(true)
	e.SetWritable(true)
	got := eventFilter(e)
	want := winnt.SockNotifyRegisterEventIn | winnt.SockNotifyRegisterEventOut
	if got != want {
		t.Errorf("eventFilter = %#x, want %#x", got, want)
	}
}

func TestEventFilterNone(t *testing.T) {
	if got := eventFilter(Event{}); got != winnt.SockNotifyRegisterEventNone {
		t.Errorf("eventFilter(empty) = %#x, want None", got)
	}
}

func TestTriggerFlags(t *testing.T) {
	cases := map[PollMode]uint8{
		Level:       winnt.SockNotifyTriggerPersistent | winnt.SockNotifyTriggerLevel,
		Edge:        winnt.SockNotifyTriggerPersistent | winnt.SockNotifyTriggerEdge,
		Oneshot:     winnt.SockNotifyTriggerOneshot | winnt.SockNotifyTriggerLevel,
		EdgeOneshot: winnt.SockNotifyTriggerOneshot | winnt.SockNotifyTriggerEdge,
	}
	for mode, want := range cases {
		if got := triggerFlags(mode); got != want {
			t.Errorf("triggerFlags(%v) = %#x, want %#x", mode, got, want)
		}
	}
}

func TestCreateRegistrationEnableVsDisable(t *testing.T) {
	var interest Event
	interest.SetReadable(true)
	interest.Key = 5

	reg := createRegistration(10, interest, Level, true)
	if reg.Operation != winnt.SockNotifyOpEnable {
		t.Errorf("Operation = %d, want Enable", reg.Operation)
	}
	if reg.Socket != 10 || reg.CompletionKey != 5 {
		t.Errorf("registration fields not preserved: %+v", reg)
	}

	disableReg := createRegistration(10, None(5), Level, false)
	if disableReg.Operation != winnt.SockNotifyOpRemove {
		t.Errorf("Operation = %d, want Remove", disableReg.Operation)
	}
}

func TestCreateRegistrationEnableWithNoInterestDisables(t *testing.T) {
	reg := createRegistration(10, None(5), Level, true)
	if reg.Operation != winnt.SockNotifyOpDisable {
		t.Errorf("Operation = %d, want Disable when enabling with zero filter", reg.Operation)
	}
}
