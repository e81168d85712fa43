//go:build windows
// +build windows

// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

// Package ownedhandle provides scoped acquisition of a Windows kernel
// handle, guaranteeing release on every exit path via Close. It is the Go
// equivalent of original_source's OwnedHandle wrapper around HANDLE/Drop.
package ownedhandle

import "golang.org/x/sys/windows"

// Handle owns exactly one kernel HANDLE and closes it exactly once.
type Handle struct {
	h windows.Handle
}

// FromRaw takes ownership of an already-open handle.
func FromRaw(h windows.Handle) Handle {
	return Handle{h: h}
}

// Raw returns the underlying handle without transferring ownership.
func (h Handle) Raw() windows.Handle { return h.h }

// Close releases the handle. Calling Close more than once is not supported,
// matching the single-owner contract of the type this was grounded on.
func (h Handle) Close() error {
	if h.h == 0 || h.h == windows.InvalidHandle {
		return nil
	}
	return windows.CloseHandle(h.h)
}
