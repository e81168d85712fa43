// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

// Package wepoll provides an epoll-shaped readiness-notification API for
// Windows, backed by an I/O completion port.
//
// Two kernel primitives feed the same completion port: ProcessSocketNotifications
// (Windows 10 21H1+) drives socket readiness, and the undocumented
// NtAssociateWaitCompletionPacket turns an arbitrary waitable handle into a
// one-shot completion. Poller.Wait drains both through a single
// GetQueuedCompletionStatusEx call, so callers never need to know which kind
// of handle produced which Event.
//
// A C-ABI mirror of this API, matching Linux's epoll(2) surface, lives in the
// cabi subpackage.
package wepoll
