//go:build windows
// +build windows

// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package wepoll

import (
	"syscall"
	"time"

	"golang.org/x/sys/windows"

	"github.com/momentics/go-wepoll/internal/ownedhandle"
	"github.com/momentics/go-wepoll/internal/waitpkt"
	"github.com/momentics/go-wepoll/internal/winnt"
)

// Poller owns one IOCP port and multiplexes ProcessSocketNotifications
// (sockets) and NtAssociateWaitCompletionPacket (arbitrary waitables) behind
// a single epoll-shaped wait/post contract.
type Poller struct {
	port ownedhandle.Handle

	sources   *sourceRegistry
	waitables *waitableRegistry

	entries *entryPool
	metrics *Metrics
}

// New creates a Poller with a fresh, unassociated IOCP port.
func New() (*Poller, error) {
	h, err := windows.CreateIoCompletionPort(windows.InvalidHandle, 0, 0, 0)
	if err != nil {
		return nil, wrapErr("create completion port", err)
	}
	return &Poller{
		port:      ownedhandle.FromRaw(h),
		sources:   newSourceRegistry(),
		waitables: newWaitableRegistry(),
		entries:   newEntryPool(),
		metrics:   newMetrics(),
	}, nil
}

// Metrics exposes this Poller's observability counters.
func (p *Poller) Metrics() *Metrics { return p.metrics }

// Close destroys the Poller: every stored WaitPacket is cancelled and the
// IOCP port is closed. Sockets registered via ProcessSocketNotifications
// need no explicit teardown call — they are deregistered by the kernel when
// the port itself closes.
func (p *Poller) Close() error {
	for _, e := range p.waitables.snapshot() {
		_, _ = e.packet.Cancel()
		_ = e.packet.Close()
	}
	return p.port.Close()
}

func eventFilter(interest Event) uint16 {
	var filter uint16
	if interest.IsReadable() {
		filter |= winnt.SockNotifyRegisterEventIn
	}
	if interest.IsWritable() {
		filter |= winnt.SockNotifyRegisterEventOut
	}
	if interest.IsHangup() {
		filter |= winnt.SockNotifyRegisterEventHangup
	}
	return filter
}

func triggerFlags(mode PollMode) uint8 {
	switch mode {
	case Oneshot:
		return winnt.SockNotifyTriggerOneshot | winnt.SockNotifyTriggerLevel
	case Level:
		return winnt.SockNotifyTriggerPersistent | winnt.SockNotifyTriggerLevel
	case Edge:
		return winnt.SockNotifyTriggerPersistent | winnt.SockNotifyTriggerEdge
	case EdgeOneshot:
		return winnt.SockNotifyTriggerOneshot | winnt.SockNotifyTriggerEdge
	default:
		return winnt.SockNotifyTriggerPersistent | winnt.SockNotifyTriggerLevel
	}
}

func createRegistration(socket uintptr, interest Event, mode PollMode, enable bool) winnt.SockNotifyRegistration {
	filter := eventFilter(interest)
	op := winnt.SockNotifyOpRemove
	if enable {
		if filter == winnt.SockNotifyRegisterEventNone {
			op = winnt.SockNotifyOpDisable
		} else {
			op = winnt.SockNotifyOpEnable
		}
	}
	return winnt.SockNotifyRegistration{
		Socket:        socket,
		CompletionKey: interest.Key,
		Operation:     op,
		TriggerFlags:  triggerFlags(mode),
		EventFilter:   filter,
	}
}

// updateSource issues a single ENABLE/DISABLE/REMOVE registration with zero
// dequeue, per spec §4.3. The per-registration status takes precedence over
// the call-level status when the call itself succeeded.
func (p *Poller) updateSource(reg *winnt.SockNotifyRegistration) error {
	_, status := winnt.ProcessSocketNotifications(windows.Handle(p.port.Raw()), reg, nil)
	if status != 0 {
		return newError("process socket notifications", status)
	}
	if reg.RegistrationResult != 0 {
		return newError("socket registration", syscall.Errno(reg.RegistrationResult))
	}
	return nil
}

// Add registers socket for interest under mode. Fails with ErrAlreadyExists
// if socket is already registered.
func (p *Poller) Add(socket uintptr, interest Event, mode PollMode) error {
	if !p.sources.insert(socket, interest.Key) {
		return ErrAlreadyExists
	}
	reg := createRegistration(socket, interest, mode, true)
	if err := p.updateSource(&reg); err != nil {
		return err
	}
	p.metrics.Registrations.Add(1)
	return nil
}

// Modify changes socket's registered interest/mode. If interest.Key differs
// from the stored key, the old registration is first removed and its REMOVE
// completion is synchronously drained (§4.4) before the new one is
// installed, since IOCP has no "change key" primitive.
func (p *Poller) Modify(socket uintptr, interest Event, mode PollMode) error {
	oldKey, ok := p.sources.keyOf(socket)
	if !ok {
		return ErrNotFound
	}
	if oldKey != interest.Key {
		reg := createRegistration(socket, None(oldKey), Oneshot, false)
		if err := p.updateAndWaitForRemove(&reg, oldKey); err != nil {
			return err
		}
		p.sources.update(socket, interest.Key)
	}
	reg := createRegistration(socket, interest, mode, true)
	if err := p.updateSource(&reg); err != nil {
		return err
	}
	p.metrics.Modifications.Add(1)
	return nil
}

// Delete removes socket's registration, synchronously draining its REMOVE
// completion before returning.
func (p *Poller) Delete(socket uintptr) error {
	key, ok := p.sources.remove(socket)
	if !ok {
		return ErrNotFound
	}
	reg := createRegistration(socket, None(key), Oneshot, false)
	if err := p.updateAndWaitForRemove(&reg, key); err != nil {
		return err
	}
	p.metrics.Deregistrations.Add(1)
	return nil
}

// AddWaitable registers handle for interest. Only oneshot semantics are
// available for waitables regardless of the caller's intent — a documented
// limitation of NtAssociateWaitCompletionPacket.
func (p *Poller) AddWaitable(handle uintptr, interest Event) error {
	packet, err := waitpkt.New()
	if err != nil {
		return wrapErr("create wait completion packet", err)
	}
	if err := packet.Associate(windows.Handle(p.port.Raw()), windows.Handle(handle), interest.Key, uintptr(interest.Events)); err != nil {
		_ = packet.Close()
		return wrapErr("associate wait completion packet", err)
	}
	if !p.waitables.insert(handle, &waitableEntry{key: interest.Key, packet: packet}) {
		_, _ = packet.Cancel()
		_ = packet.Close()
		return ErrAlreadyExists
	}
	p.metrics.WaitablesAdded.Add(1)
	return nil
}

// ModifyWaitable re-associates handle's packet with a new interest set. If
// the previous association could not be cancelled cleanly (a completion was
// already in flight), a fresh packet is allocated instead of reusing the old
// one, to avoid racing the in-flight completion.
func (p *Poller) ModifyWaitable(handle uintptr, interest Event) error {
	entry, ok := p.waitables.get(handle)
	if !ok {
		return ErrNotFound
	}
	result, err := entry.packet.Cancel()
	if err != nil {
		return wrapErr("cancel wait completion packet", err)
	}
	if result == waitpkt.Pending {
		fresh, err := waitpkt.New()
		if err != nil {
			return wrapErr("create wait completion packet", err)
		}
		_ = entry.packet.Close()
		entry.packet = fresh
	}
	if err := entry.packet.Associate(windows.Handle(p.port.Raw()), windows.Handle(handle), entry.key, uintptr(interest.Events)); err != nil {
		return wrapErr("associate wait completion packet", err)
	}
	return nil
}

// DeleteWaitable removes handle's registration and cancels its packet.
// Success is returned even when cancellation reports Pending: the handle is
// gone from the registry, so any stray completion becomes benign.
func (p *Poller) DeleteWaitable(handle uintptr) error {
	entry, ok := p.waitables.remove(handle)
	if !ok {
		return ErrNotFound
	}
	_, _ = entry.packet.Cancel()
	_ = entry.packet.Close()
	p.metrics.WaitablesRemoved.Add(1)
	return nil
}

// Wait dequeues up to len(events) completions, blocking up to timeout (or
// indefinitely if hasTimeout is false). alertable requests that OS-delivered
// user-mode APCs interrupt the wait. Returns the count written; zero is a
// valid, non-error result on timeout or alertable interruption.
func (p *Poller) Wait(events []Event, timeout time.Duration, hasTimeout bool, alertable bool) (int, error) {
	p.metrics.WaitCalls.Add(1)

	buf := p.entries.get(len(events))
	defer p.entries.put(buf)

	ms := winnt.DurationToMillis(timeout, hasTimeout)
	got, err := winnt.GetQueuedCompletionStatusEx(windows.Handle(p.port.Raw()), *buf, ms, alertable)
	if err != nil {
		return 0, wrapErr("wait", err)
	}
	for i := 0; i < got; i++ {
		events[i] = Event{Events: (*buf)[i].BytesTransferred, Key: (*buf)[i].CompletionKey}
	}
	p.metrics.EventsDelivered.Add(int64(got))
	return got, nil
}

// Post injects a synthetic completion carrying event's bits and key, the
// mechanism used to wake a sibling thread blocked in Wait.
func (p *Poller) Post(event Event) error {
	return p.postRaw(event.Events, event.Key, nil)
}

func (p *Poller) postRaw(transferred uint32, key uintptr, overlapped *windows.Overlapped) error {
	if err := winnt.PostQueuedCompletionStatus(windows.Handle(p.port.Raw()), transferred, key, overlapped); err != nil {
		return wrapErr("post", err)
	}
	return nil
}
