//go:build windows
// +build windows

// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package winnt

import (
	"testing"
	"time"

	"golang.org/x/sys/windows"
)

func TestDurationToMillisNoTimeout(t *testing.T) {
	if got := DurationToMillis(time.Second, false); got != windows.INFINITE {
		t.Errorf("got %d, want INFINITE", got)
	}
}

func TestDurationToMillisZeroOrNegative(t *testing.T) {
	if got := DurationToMillis(0, true); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
	if got := DurationToMillis(-time.Second, true); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
}

func TestDurationToMillisRoundsUp(t *testing.T) {
	d := 1500 * time.Microsecond
	if got := DurationToMillis(d, true); got != 2 {
		t.Errorf("got %d, want 2 (rounded up from 1.5ms)", got)
	}
}

func TestDurationToMillisExact(t *testing.T) {
	d := 250 * time.Millisecond
	if got := DurationToMillis(d, true); got != 250 {
		t.Errorf("got %d, want 250", got)
	}
}

func TestGetQueuedCompletionStatusExEmptyEntries(t *testing.T) {
	n, err := GetQueuedCompletionStatusEx(windows.InvalidHandle, nil, 0, false)
	if n != 0 || err != nil {
		t.Errorf("got (%d, %v), want (0, nil)", n, err)
	}
}
