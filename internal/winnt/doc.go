// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

// Package winnt isolates every NewLazySystemDLL/NewProc binding and raw
// constant this module needs beyond what golang.org/x/sys/windows already
// wraps. Nothing here knows about Poller, Event, or registries — it is a
// leaf platform-binding layer, mirroring how the teacher keeps IOCP/WSAPoll
// bindings separate from reactor policy.
package winnt
