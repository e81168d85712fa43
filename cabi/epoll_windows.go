//go:build windows
// +build windows

// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package cabi

import (
	"time"

	"golang.org/x/sys/windows"

	wepoll "github.com/momentics/go-wepoll"
	"github.com/momentics/go-wepoll/internal/winnt"
)

// Event-bit and op constants, bit-compatible with Linux epoll(2).
const (
	EPOLLIN      int32 = 1 << 0
	EPOLLOUT     int32 = 1 << 1
	EPOLLHUP     int32 = 1 << 2
	EPOLLERR     int32 = 1 << 6
	EPOLLET      int32 = 1 << 8
	EPOLLONESHOT int32 = 1 << 9

	EPOLL_CTL_ADD int32 = 1
	EPOLL_CTL_MOD int32 = 2
	EPOLL_CTL_DEL int32 = 3
)

// ErrUnknownException is reported when the core panics; it must never
// unwind through this ABI boundary into a foreign caller.
var ErrUnknownException = &wepoll.Error{Op: "unknown exception"}

func catchUnwind(f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = ErrUnknownException
		}
	}()
	return f()
}

// EpollCreate creates a new instance; size must be positive (legacy contract
// from epoll(2), retained alongside EpollCreate1 for compatibility).
func EpollCreate(size int32) (handle uintptr, err error) {
	err = catchUnwind(func() error {
		if size <= 0 {
			return wepoll.ErrInvalidArg
		}
		p, err := wepoll.New()
		if err != nil {
			return err
		}
		handle = registryInsert(p)
		return nil
	})
	return handle, err
}

// EpollCreate1 creates a new instance; flags must be zero.
func EpollCreate1(flags int32) (handle uintptr, err error) {
	err = catchUnwind(func() error {
		if flags != 0 {
			return wepoll.ErrInvalidArg
		}
		p, err := wepoll.New()
		if err != nil {
			return err
		}
		handle = registryInsert(p)
		return nil
	})
	return handle, err
}

// EpollClose destroys the instance identified by handle.
func EpollClose(handle uintptr) error {
	return catchUnwind(func() error {
		p, ok := registryRemove(handle)
		if !ok {
			return wepoll.ErrInvalidArg
		}
		return p.Close()
	})
}

// isSocket classifies target, via WSAGetQOSByName, as a socket or an
// arbitrary waitable handle. See the design note in this repo's DESIGN.md
// for why "last-error != WSAENOTSOCK" is the correct polarity.
func isSocket(target windows.Handle) bool {
	return winnt.IsSocket(target)
}

func pollModeOf(events int32) wepoll.PollMode {
	et := events&EPOLLET != 0
	oneshot := events&EPOLLONESHOT != 0
	switch {
	case !et && !oneshot:
		return wepoll.Level
	case !et && oneshot:
		return wepoll.Oneshot
	case et && !oneshot:
		return wepoll.Edge
	default:
		return wepoll.EdgeOneshot
	}
}

func interestMode(event *wepoll.Event) (wepoll.Event, wepoll.PollMode, error) {
	if event == nil {
		return wepoll.Event{}, 0, wepoll.ErrInvalidArg
	}
	return *event, pollModeOf(int32(event.Events)), nil
}

// EpollCtl adds, modifies, or removes target in handle's interest list.
func EpollCtl(handle uintptr, op int32, target windows.Handle, event *wepoll.Event) error {
	return catchUnwind(func() error {
		p, ok := registryLookup(handle)
		if !ok {
			return wepoll.ErrInvalidArg
		}
		if isSocket(target) {
			return epollCtlSocket(p, op, uintptr(target), event)
		}
		return epollCtlWaitable(p, op, uintptr(target), event)
	})
}

func epollCtlSocket(p *wepoll.Poller, op int32, socket uintptr, event *wepoll.Event) error {
	switch op {
	case EPOLL_CTL_ADD:
		interest, mode, err := interestMode(event)
		if err != nil {
			return err
		}
		return p.Add(socket, interest, mode)
	case EPOLL_CTL_MOD:
		interest, mode, err := interestMode(event)
		if err != nil {
			return err
		}
		return p.Modify(socket, interest, mode)
	case EPOLL_CTL_DEL:
		return p.Delete(socket)
	default:
		return wepoll.ErrInvalidArg
	}
}

func epollCtlWaitable(p *wepoll.Poller, op int32, handle uintptr, event *wepoll.Event) error {
	switch op {
	case EPOLL_CTL_ADD:
		if event == nil {
			return wepoll.ErrInvalidArg
		}
		return p.AddWaitable(handle, *event)
	case EPOLL_CTL_MOD:
		if event == nil {
			return wepoll.ErrInvalidArg
		}
		return p.ModifyWaitable(handle, *event)
	case EPOLL_CTL_DEL:
		return p.DeleteWaitable(handle)
	default:
		return wepoll.ErrInvalidArg
	}
}

func epollWaitDuration(handle uintptr, events []wepoll.Event, timeout time.Duration, hasTimeout bool, alertable bool) (n int, err error) {
	err = catchUnwind(func() error {
		p, ok := registryLookup(handle)
		if !ok {
			return wepoll.ErrInvalidArg
		}
		got, err := p.Wait(events, timeout, hasTimeout, alertable)
		n = got
		return err
	})
	return n, err
}

// EpollWait waits for events; timeoutMs -1 means indefinite, >=0 milliseconds.
func EpollWait(handle uintptr, events []wepoll.Event, timeoutMs int32) (int, error) {
	return EpollPWait(handle, events, timeoutMs, false)
}

// EpollPWait is EpollWait with an alertable flag.
func EpollPWait(handle uintptr, events []wepoll.Event, timeoutMs int32, alertable bool) (int, error) {
	if timeoutMs == -1 {
		return epollWaitDuration(handle, events, 0, false, alertable)
	}
	return epollWaitDuration(handle, events, time.Duration(timeoutMs)*time.Millisecond, true, alertable)
}

// EpollPWait2 is EpollPWait with nanosecond-precision timeout; a nil timeout
// means indefinite.
func EpollPWait2(handle uintptr, events []wepoll.Event, timeout *time.Duration, alertable bool) (int, error) {
	if timeout == nil {
		return epollWaitDuration(handle, events, 0, false, alertable)
	}
	return epollWaitDuration(handle, events, *timeout, true, alertable)
}
