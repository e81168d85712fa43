//go:build windows
// +build windows

// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package ownedhandle

import (
	"testing"

	"golang.org/x/sys/windows"
)

func TestCloseZeroHandleIsNoop(t *testing.T) {
	h := FromRaw(0)
	if err := h.Close(); err != nil {
		t.Errorf("Close on zero handle = %v, want nil", err)
	}
}

func TestCloseInvalidHandleIsNoop(t *testing.T) {
	h := FromRaw(windows.InvalidHandle)
	if err := h.Close(); err != nil {
		t.Errorf("Close on InvalidHandle = %v, want nil", err)
	}
}

func TestRawReturnsUnderlyingHandle(t *testing.T) {
	want := windows.Handle(0x1234)
	h := FromRaw(want)
	if got := h.Raw(); got != want {
		t.Errorf("Raw() = %v, want %v", got, want)
	}
}
