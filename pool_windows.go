//go:build windows
// +build windows

// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package wepoll

import (
	"sync"

	"github.com/momentics/go-wepoll/internal/winnt"
)

// entryPool caches []winnt.OverlappedEntry scratch buffers so wait() and the
// cabi epoll_wait family don't allocate on every call. This is the Go
// equivalent, for a heap-collected runtime, of original_source/src/ffi.rs's
// SmallVec<[OVERLAPPED_ENTRY; 256]> stack-reuse trick; the pooling idiom
// itself is grounded on the teacher's pool/objpool.go SyncPool[T] wrapper
// around sync.Pool.
type entryPool struct {
	pool sync.Pool
}

func newEntryPool() *entryPool {
	return &entryPool{
		pool: sync.Pool{
			New: func() any {
				buf := make([]winnt.OverlappedEntry, 256)
				return &buf
			},
		},
	}
}

// get returns a buffer with length exactly n, reusing pooled capacity when
// it already covers n and growing (without returning the old one to the
// pool) otherwise.
func (p *entryPool) get(n int) *[]winnt.OverlappedEntry {
	buf := p.pool.Get().(*[]winnt.OverlappedEntry)
	if cap(*buf) < n {
		*buf = make([]winnt.OverlappedEntry, n)
		return buf
	}
	*buf = (*buf)[:n]
	return buf
}

func (p *entryPool) put(buf *[]winnt.OverlappedEntry) {
	p.pool.Put(buf)
}
