//go:build windows
// +build windows

// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package wepoll

import (
	"fmt"
	"syscall"
)

// Error carries a single Win32/NTSTATUS code, losslessly convertible to and
// from an OS last-error value. Errors here never chain: every operation is a
// complete success or a complete, single-cause failure.
type Error struct {
	Code syscall.Errno
	Op   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("wepoll: %s: %s", e.Op, e.Code.Error())
}

// Unwrap exposes the underlying syscall.Errno so callers using the standard
// errors package interoperate with Windows-idiomatic error checks.
func (e *Error) Unwrap() error { return e.Code }

// Is reports whether target is an *Error carrying the same code.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == other.Code
}

func newError(op string, code syscall.Errno) *Error {
	return &Error{Code: code, Op: op}
}

// wrapErr converts an arbitrary error from a golang.org/x/sys/windows call
// (always a syscall.Errno in practice, since that's what the generated
// zsyscall wrappers return) into this package's single-code Error.
func wrapErr(op string, err error) *Error {
	if errno, ok := err.(syscall.Errno); ok {
		return newError(op, errno)
	}
	return newError(op, syscall.EINVAL)
}

// Sentinel state errors. These are map-level invariant violations, not
// kernel errors, but each still carries the matching Win32 code so a caller
// comparing against the raw errno gets the expected answer too.
var (
	ErrAlreadyExists = &Error{Op: "already registered", Code: syscall.ERROR_ALREADY_EXISTS}
	ErrNotFound      = &Error{Op: "not registered", Code: syscall.ERROR_NOT_FOUND}
	ErrOutOfMemory   = &Error{Op: "reservation failed", Code: syscall.ERROR_NOT_ENOUGH_MEMORY}
	ErrInvalidArg    = &Error{Op: "invalid argument", Code: syscall.ERROR_INVALID_PARAMETER}
)
