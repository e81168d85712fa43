//go:build windows
// +build windows

// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package cabi

import (
	"sync"
	"sync/atomic"

	wepoll "github.com/momentics/go-wepoll"
)

// registry is the process-wide handle table backing the opaque uintptr
// handles this ABI hands to foreign callers. A Go caller gets a *wepoll.Poller
// directly; a C caller only has an integer, so epoll_create's return value
// must be a lookup key rather than a boxed pointer.
var registry = struct {
	mu      sync.RWMutex
	pollers map[uintptr]*wepoll.Poller
	next    atomic.Uint64
}{pollers: make(map[uintptr]*wepoll.Poller)}

func registryInsert(p *wepoll.Poller) uintptr {
	h := uintptr(registry.next.Add(1))
	registry.mu.Lock()
	registry.pollers[h] = p
	registry.mu.Unlock()
	return h
}

func registryLookup(handle uintptr) (*wepoll.Poller, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	p, ok := registry.pollers[handle]
	return p, ok
}

func registryRemove(handle uintptr) (*wepoll.Poller, bool) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	p, ok := registry.pollers[handle]
	if ok {
		delete(registry.pollers, handle)
	}
	return p, ok
}
