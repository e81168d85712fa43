//go:build windows
// +build windows

// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package wepoll

import (
	"sync"

	"github.com/momentics/go-wepoll/internal/waitpkt"
)

// sourceRegistry maps a registered socket to the user key the kernel will
// echo back for it. A socket appears here iff exactly one active
// registration exists for it in the underlying IOCP (invariant 1).
type sourceRegistry struct {
	mu      sync.RWMutex
	sources map[uintptr]uintptr
}

func newSourceRegistry() *sourceRegistry {
	return &sourceRegistry{sources: make(map[uintptr]uintptr)}
}

func (r *sourceRegistry) keyOf(socket uintptr) (uintptr, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	key, ok := r.sources[socket]
	return key, ok
}

func (r *sourceRegistry) insert(socket, key uintptr) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.sources[socket]; exists {
		return false
	}
	r.sources[socket] = key
	return true
}

// update overwrites the key stored for an already-registered socket, used by
// Modify after a key-change drain has completed.
func (r *sourceRegistry) update(socket, key uintptr) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[socket] = key
}

func (r *sourceRegistry) remove(socket uintptr) (uintptr, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key, ok := r.sources[socket]
	if ok {
		delete(r.sources, socket)
	}
	return key, ok
}

// waitableEntry pairs a waitable handle's user key with the packet that
// backs its association. The packet's lifetime equals the entry's.
type waitableEntry struct {
	key    uintptr
	packet *waitpkt.Packet
}

// waitableRegistry maps a waitable handle to its entry. A single mutex
// suffices here since, unlike sources, every waitable operation mutates the
// packet as well as the map (spec §5: "a single exclusion suffices").
type waitableRegistry struct {
	mu        sync.Mutex
	waitables map[uintptr]*waitableEntry
}

func newWaitableRegistry() *waitableRegistry {
	return &waitableRegistry{waitables: make(map[uintptr]*waitableEntry)}
}

func (r *waitableRegistry) get(handle uintptr) (*waitableEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.waitables[handle]
	return e, ok
}

func (r *waitableRegistry) insert(handle uintptr, e *waitableEntry) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.waitables[handle]; exists {
		return false
	}
	r.waitables[handle] = e
	return true
}

func (r *waitableRegistry) remove(handle uintptr) (*waitableEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.waitables[handle]
	if ok {
		delete(r.waitables, handle)
	}
	return e, ok
}

// snapshot returns every currently-registered handle, for Poller.Close to
// cancel all outstanding packets.
func (r *waitableRegistry) snapshot() []*waitableEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*waitableEntry, 0, len(r.waitables))
	for _, e := range r.waitables {
		out = append(out, e)
	}
	return out
}
