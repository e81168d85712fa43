// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

// Package cabi mirrors Linux epoll(2)'s surface (epoll_create, epoll_ctl,
// epoll_wait and friends) over the root wepoll.Poller, for callers that only
// know the C-style epoll contract. Every exported function recovers from a
// panic in the core and reports it as ErrUnknownException instead of
// unwinding into a foreign caller.
package cabi
