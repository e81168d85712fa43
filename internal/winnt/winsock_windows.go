//go:build windows
// +build windows

// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package winnt

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modws2_32 = windows.NewLazySystemDLL("ws2_32.dll")

	procProcessSocketNotifications = modws2_32.NewProc("ProcessSocketNotifications")
	procWSAGetQOSByName            = modws2_32.NewProc("WSAGetQOSByName")
)

// SOCK_NOTIFY_* constants, transcribed from the Windows SDK's winsock2.h (the
// ProcessSocketNotifications family, available on Windows 10 21H1+). Event
// bit values deliberately match this module's Readable/Writable/Hangup/error
// bits so a delivered completion's bytes-transferred field can be read
// directly as an Event bitmask with no translation.
const (
	SockNotifyEventIn     uint32 = 1 << 0
	SockNotifyEventOut    uint32 = 1 << 1
	SockNotifyEventHangup uint32 = 1 << 2
	SockNotifyEventRemove uint32 = 1 << 3
	SockNotifyEventErr    uint32 = 1 << 6

	SockNotifyRegisterEventNone   uint16 = 0
	SockNotifyRegisterEventIn     uint16 = 1 << 0
	SockNotifyRegisterEventOut    uint16 = 1 << 1
	SockNotifyRegisterEventHangup uint16 = 1 << 2

	SockNotifyOpNone    uint8 = 0
	SockNotifyOpEnable  uint8 = 1 << 0
	SockNotifyOpDisable uint8 = 1 << 1
	SockNotifyOpRemove  uint8 = 1 << 2

	SockNotifyTriggerOneshot    uint8 = 1 << 0
	SockNotifyTriggerPersistent uint8 = 1 << 1
	SockNotifyTriggerLevel      uint8 = 1 << 2
	SockNotifyTriggerEdge       uint8 = 1 << 3

	// WSAENOTSOCK is returned when a WinSock call is made against a handle
	// that is not a socket; used by the classification used at the ABI
	// boundary (see cabi.isSocket).
	WSAENOTSOCK syscall.Errno = 10038
)

// SockNotifyRegistration mirrors SOCK_NOTIFY_REGISTRATION from winsock2.h.
type SockNotifyRegistration struct {
	Socket             uintptr
	CompletionKey      uintptr
	Operation          uint8
	TriggerFlags       uint8
	EventFilter        uint16
	RegistrationResult uint32
}

// ProcessSocketNotifications registers/deregisters a single socket interest
// and, in the same call, optionally dequeues up to len(entries) completions
// from port. Unlike most Win32 calls, this one returns its status directly
// as a DWORD (ERROR_SUCCESS / WAIT_TIMEOUT / other) rather than a BOOL plus
// GetLastError.
func ProcessSocketNotifications(port windows.Handle, reg *SockNotifyRegistration, entries []OverlappedEntry) (received uint32, status syscall.Errno) {
	var regCount, regPtr uintptr
	if reg != nil {
		regCount = 1
		regPtr = uintptr(unsafe.Pointer(reg))
	}
	var entriesPtr uintptr
	if len(entries) > 0 {
		entriesPtr = uintptr(unsafe.Pointer(&entries[0]))
	}
	r0, _, _ := procProcessSocketNotifications.Call(
		uintptr(port),
		regCount,
		regPtr,
		0, // timeoutMs, always 0: either immediate dequeue or none
		uintptr(len(entries)),
		entriesPtr,
		uintptr(unsafe.Pointer(&received)),
	)
	return received, syscall.Errno(r0)
}

// IsSocket classifies handle by attempting WSAGetQOSByName with null
// arguments: on a non-socket handle the call fails with WSAENOTSOCK; on a
// socket it fails with some other WinSock error, since the arguments are
// deliberately invalid. So: a socket iff the resulting error is not
// WSAENOTSOCK. See spec's open-question resolution in this repo's design
// notes for why the alternate ("res==0") polarity is wrong.
func IsSocket(handle windows.Handle) bool {
	r0, _, e1 := procWSAGetQOSByName.Call(uintptr(handle), 0, 0)
	if r0 != 0 {
		return true
	}
	errno, ok := e1.(syscall.Errno)
	if !ok {
		return true
	}
	return errno != WSAENOTSOCK
}
