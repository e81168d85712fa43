//go:build windows
// +build windows

// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

// Package waitpkt is a thin safe envelope over NtCreateWaitCompletionPacket /
// NtAssociateWaitCompletionPacket / NtCancelWaitCompletionPacket, grounded on
// original_source/src/wait.rs. It owns exactly one packet handle and knows
// nothing about Poller or the registry maps that use it.
package waitpkt

import (
	"golang.org/x/sys/windows"

	"github.com/momentics/go-wepoll/internal/ownedhandle"
	"github.com/momentics/go-wepoll/internal/winnt"
)

// CancelResult is the tri-valued outcome of Cancel. The Poller's
// modify_waitable path needs this distinction to decide whether the
// existing packet can be rebound or whether a fresh one must be allocated to
// avoid racing an in-flight completion.
type CancelResult int

const (
	// Cancelled means the packet is free for reuse.
	Cancelled CancelResult = iota
	// Pending means a completion is already in flight; a fresh packet must
	// be allocated for any new association.
	Pending
)

// Packet owns one wait-completion-packet kernel object.
type Packet struct {
	handle ownedhandle.Handle
}

// New allocates a fresh, unassociated packet.
func New() (*Packet, error) {
	h, err := winnt.CreateWaitCompletionPacket()
	if err != nil {
		return nil, err
	}
	return &Packet{handle: ownedhandle.FromRaw(h)}, nil
}

// Associate arms the packet so that once target signals, a completion
// carrying completion-key key and bytes-transferred info is posted to port.
// The info parameter is the caller's encoded interest bitmask, so the
// delivered completion already carries the readiness bitmask with no
// per-event translation needed.
func (p *Packet) Associate(port, target windows.Handle, key uintptr, info uintptr) error {
	return winnt.AssociateWaitCompletionPacket(p.handle.Raw(), port, target, key, info)
}

// Cancel cancels the packet's current association, if any.
func (p *Packet) Cancel() (CancelResult, error) {
	result, err := winnt.CancelWaitCompletionPacket(p.handle.Raw())
	if err != nil {
		return Cancelled, err
	}
	if result == winnt.CancelPending {
		return Pending, nil
	}
	return Cancelled, nil
}

// Close releases the packet's kernel handle.
func (p *Packet) Close() error {
	return p.handle.Close()
}
