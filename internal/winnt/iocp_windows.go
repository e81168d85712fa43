//go:build windows
// +build windows

// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package winnt

import (
	"math"
	"syscall"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modkernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procGetQueuedCompletionStatusEx = modkernel32.NewProc("GetQueuedCompletionStatusEx")
)

// waitIOCompletion is the Win32 error GetLastError reports when an alertable
// wait was interrupted by a user-mode APC (WAIT_IO_COMPLETION, 0xC0).
const waitIOCompletion syscall.Errno = 0xC0

// OverlappedEntry mirrors Win32's OVERLAPPED_ENTRY. Event's bit layout is
// chosen so that BytesTransferred/CompletionKey can be read directly as an
// Event{Events,Key} pair with no translation (see the root package's
// event.go and drain_windows.go).
type OverlappedEntry struct {
	CompletionKey    uintptr
	Overlapped       *windows.Overlapped
	Internal         uintptr
	BytesTransferred uint32
}

// DurationToMillis converts d to the millisecond DWORD GetQueuedCompletionStatusEx
// expects, saturating to INFINITE (never time out) for durations that don't
// fit in a uint32 and rounding any sub-millisecond remainder up, exactly as
// the upstream dur2timeout helper this is ported from.
func DurationToMillis(d time.Duration, hasTimeout bool) uint32 {
	if !hasTimeout {
		return windows.INFINITE
	}
	if d <= 0 {
		return 0
	}
	ms := d / time.Millisecond
	if d%time.Millisecond != 0 {
		ms++
	}
	if ms > math.MaxUint32 {
		return windows.INFINITE
	}
	return uint32(ms)
}

// GetQueuedCompletionStatusEx dequeues up to len(entries) completions from
// port, blocking up to timeoutMs (windows.INFINITE for indefinite).
// Distinguished results: on success err is nil and n is the dequeued count; on
// timeout or alertable interruption it returns n=0, err=nil; any other
// failure is surfaced as err.
func GetQueuedCompletionStatusEx(port windows.Handle, entries []OverlappedEntry, timeoutMs uint32, alertable bool) (n int, err error) {
	if len(entries) == 0 {
		return 0, nil
	}
	var removed uint32
	var alert uintptr
	if alertable {
		alert = 1
	}
	r1, _, e1 := procGetQueuedCompletionStatusEx.Call(
		uintptr(port),
		uintptr(unsafe.Pointer(&entries[0])),
		uintptr(len(entries)),
		uintptr(unsafe.Pointer(&removed)),
		uintptr(timeoutMs),
		alert,
	)
	if r1 != 0 {
		return int(removed), nil
	}
	if errno, ok := e1.(syscall.Errno); ok {
		switch errno {
		case windows.WAIT_TIMEOUT, waitIOCompletion:
			return 0, nil
		}
		return 0, errno
	}
	return 0, e1
}

// PostQueuedCompletionStatus re-exports the x/sys/windows binding so callers
// of this package don't also need to import golang.org/x/sys/windows
// directly for the common post/repost path.
func PostQueuedCompletionStatus(port windows.Handle, bytesTransferred uint32, key uintptr, overlapped *windows.Overlapped) error {
	return windows.PostQueuedCompletionStatus(port, bytesTransferred, key, overlapped)
}
