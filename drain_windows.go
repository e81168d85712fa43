//go:build windows
// +build windows

// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package wepoll

import (
	"syscall"

	"golang.org/x/sys/windows"

	"github.com/momentics/go-wepoll/internal/winnt"
)

// updateAndWaitForRemove is the remove-and-drain protocol: it submits a
// REMOVE registration combined with a one-entry dequeue, then synchronously
// consumes completions until the REMOVE for key is observed. A non-REMOVE
// completion for key itself is dropped as obsolete; a completion for any other
// key encountered along the way is reposted to the port via
// PostQueuedCompletionStatus, so it re-enters the shared kernel queue exactly
// as if it had never been dequeued — a sibling thread already blocked in
// Wait still observes it, and it is delivered exactly once.
func (p *Poller) updateAndWaitForRemove(reg *winnt.SockNotifyRegistration, key uintptr) error {
	p.metrics.DrainsStarted.Add(1)

	entries := make([]winnt.OverlappedEntry, 1)
	port := windows.Handle(p.port.Raw())

	received, status := winnt.ProcessSocketNotifications(port, reg, entries)
	p.metrics.DrainIterations.Add(1)

	switch status {
	case 0, windows.WAIT_TIMEOUT:
		if reg.RegistrationResult != 0 {
			if received == 1 {
				if err := p.buffer(entries[0]); err != nil {
					return err
				}
			}
			return newError("remove registration", syscall.Errno(reg.RegistrationResult))
		}
	default:
		return newError("process socket notifications", status)
	}

	if received == 1 {
		consumed, err := p.observeRemove(entries[0], key)
		if err != nil {
			return err
		}
		if consumed {
			return nil
		}
	}

	for {
		received, status := winnt.ProcessSocketNotifications(port, nil, entries)
		p.metrics.DrainIterations.Add(1)
		switch status {
		case 0:
			if received == 1 {
				consumed, err := p.observeRemove(entries[0], key)
				if err != nil {
					return err
				}
				if consumed {
					return nil
				}
			}
		case windows.WAIT_TIMEOUT:
			// No completion this turn; the kernel guarantees REMOVE will
			// eventually arrive, so keep waiting.
		default:
			return newError("process socket notifications", status)
		}
	}
}

// observeRemove inspects one dequeued completion against the key being
// removed. It returns consumed=true once the REMOVE completion for key has
// been seen; otherwise it either discards a now-obsolete readiness event for
// the same key or reposts an unrelated completion for a later Wait to pick
// up.
func (p *Poller) observeRemove(entry winnt.OverlappedEntry, key uintptr) (consumed bool, err error) {
	if entry.CompletionKey != key {
		return false, p.buffer(entry)
	}
	if entry.BytesTransferred&winnt.SockNotifyEventRemove != 0 {
		return true, nil
	}
	p.metrics.SpuriousDiscards.Add(1)
	return false, nil
}

// buffer reposts a spuriously-dequeued completion to the port so Wait (on
// this thread or another) delivers it later.
func (p *Poller) buffer(entry winnt.OverlappedEntry) error {
	p.metrics.Reposts.Add(1)
	return p.postRaw(entry.BytesTransferred, entry.CompletionKey, entry.Overlapped)
}
