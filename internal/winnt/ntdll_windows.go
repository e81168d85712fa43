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
	modntdll = windows.NewLazySystemDLL("ntdll.dll")

	procNtCreateWaitCompletionPacket     = modntdll.NewProc("NtCreateWaitCompletionPacket")
	procNtAssociateWaitCompletionPacket  = modntdll.NewProc("NtAssociateWaitCompletionPacket")
	procNtCancelWaitCompletionPacket     = modntdll.NewProc("NtCancelWaitCompletionPacket")
	procRtlNtStatusToDosError            = modntdll.NewProc("RtlNtStatusToDosError")
)

// NTStatus mirrors the NT kernel's NTSTATUS (a signed 32-bit code).
type NTStatus uint32

// Distinguished statuses this package's callers need to branch on.
const (
	StatusSuccess   NTStatus = 0x00000000
	StatusPending   NTStatus = 0x00000103
	StatusCancelled NTStatus = 0xC0000120
)

// IsSuccess reports whether the status is exactly STATUS_SUCCESS. Unlike
// NT_SUCCESS(), informational codes such as STATUS_PENDING do not count as
// success here.
func (s NTStatus) IsSuccess() bool { return s == StatusSuccess }

// statusToError converts a non-success NTSTATUS to the equivalent Win32
// error via ntdll's own RtlNtStatusToDosError, so the rest of this module
// only ever deals in one error currency (syscall.Errno).
func statusToError(status NTStatus) error {
	if status.IsSuccess() {
		return nil
	}
	code, _, _ := procRtlNtStatusToDosError.Call(uintptr(uint32(status)))
	return syscall.Errno(code)
}

// CreateWaitCompletionPacket allocates a fresh, unassociated wait-completion
// packet object. The caller owns the returned handle.
func CreateWaitCompletionPacket() (windows.Handle, error) {
	var h windows.Handle
	r0, _, _ := procNtCreateWaitCompletionPacket.Call(
		uintptr(unsafe.Pointer(&h)),
		uintptr(windows.GENERIC_READ|windows.GENERIC_WRITE),
		0, // ObjectAttributes
	)
	if status := NTStatus(r0); !status.IsSuccess() {
		return 0, statusToError(status)
	}
	return h, nil
}

// AssociateWaitCompletionPacket arms packet so that once target signals, a
// completion carrying key/info is posted to port. The kernel enforces one
// live association per packet; associating an already-associated packet
// fails with STATUS_INVALID_PARAMETER-family errors surfaced via the normal
// error path.
func AssociateWaitCompletionPacket(packet, port, target windows.Handle, key uintptr, info uintptr) error {
	r0, _, _ := procNtAssociateWaitCompletionPacket.Call(
		uintptr(packet),
		uintptr(port),
		uintptr(target),
		key,
		0, // ApcContext
		uintptr(StatusSuccess),
		info,
		0, // AlreadySignaled
	)
	return statusToError(NTStatus(r0))
}

// CancelResult is the tri-valued outcome of CancelWaitCompletionPacket.
type CancelResult int

const (
	// CancelCancelled means the packet is free for reuse.
	CancelCancelled CancelResult = iota
	// CancelPending means a completion is already in flight; the packet
	// cannot be reused until that completion is observed.
	CancelPending
)

// CancelWaitCompletionPacket cancels packet's association, if any.
func CancelWaitCompletionPacket(packet windows.Handle) (CancelResult, error) {
	r0, _, _ := procNtCancelWaitCompletionPacket.Call(uintptr(packet), 0)
	switch NTStatus(r0) {
	case StatusSuccess, StatusCancelled:
		return CancelCancelled, nil
	case StatusPending:
		return CancelPending, nil
	default:
		return CancelCancelled, statusToError(NTStatus(r0))
	}
}
