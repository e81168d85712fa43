//go:build !windows
// +build !windows

// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package cabi

import (
	"errors"
	"time"

	wepoll "github.com/momentics/go-wepoll"
)

var errUnsupported = errors.New("cabi: unsupported platform")

// ErrUnknownException mirrors the Windows build's panic-recovery sentinel so
// callers can reference it regardless of target.
var ErrUnknownException = &wepoll.Error{Op: "unknown exception"}

func EpollCreate(size int32) (uintptr, error)  { return 0, errUnsupported }
func EpollCreate1(flags int32) (uintptr, error) { return 0, errUnsupported }
func EpollClose(handle uintptr) error          { return errUnsupported }

func EpollCtl(handle uintptr, op int32, target uintptr, event *wepoll.Event) error {
	return errUnsupported
}

func EpollWait(handle uintptr, events []wepoll.Event, timeoutMs int32) (int, error) {
	return 0, errUnsupported
}

func EpollPWait(handle uintptr, events []wepoll.Event, timeoutMs int32, alertable bool) (int, error) {
	return 0, errUnsupported
}

func EpollPWait2(handle uintptr, events []wepoll.Event, timeout *time.Duration, alertable bool) (int, error) {
	return 0, errUnsupported
}
