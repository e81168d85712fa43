//go:build windows
// +build windows

// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package wepoll

import (
	"testing"
	"time"

	"github.com/momentics/go-wepoll/internal/winnt"
)

func newTestPoller(t *testing.T) *Poller {
	t.Helper()
	p, err := New()
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestObserveRemoveMatchesTargetKey(t *testing.T) {
	p := newTestPoller(t)
	entry := winnt.OverlappedEntry{CompletionKey: 7, BytesTransferred: winnt.SockNotifyEventRemove}
	consumed, err := p.observeRemove(entry, 7)
	if err != nil {
		t.Fatalf("observeRemove = %v", err)
	}
	if !consumed {
		t.Fatal("expected observeRemove to report the REMOVE completion as consumed")
	}
	if p.metrics.Reposts.Load() != 0 {
		t.Error("expected nothing reposted for the matched REMOVE")
	}
}

func TestObserveRemoveDiscardsStaleEventForSameKey(t *testing.T) {
	p := newTestPoller(t)
	entry := winnt.OverlappedEntry{CompletionKey: 7, BytesTransferred: winnt.SockNotifyEventIn}
	consumed, err := p.observeRemove(entry, 7)
	if err != nil {
		t.Fatalf("observeRemove = %v", err)
	}
	if consumed {
		t.Fatal("a non-REMOVE completion for the target key must not be reported as consumed")
	}
	if p.metrics.SpuriousDiscards.Load() != 1 {
		t.Errorf("SpuriousDiscards = %d, want 1", p.metrics.SpuriousDiscards.Load())
	}
}

func TestObserveRemoveRepostsUnrelatedCompletion(t *testing.T) {
	p := newTestPoller(t)
	entry := winnt.OverlappedEntry{CompletionKey: 99, BytesTransferred: winnt.SockNotifyEventIn}
	consumed, err := p.observeRemove(entry, 7)
	if err != nil {
		t.Fatalf("observeRemove = %v", err)
	}
	if consumed {
		t.Fatal("an unrelated key must never be reported as the matched REMOVE")
	}
	if p.metrics.Reposts.Load() != 1 {
		t.Errorf("Reposts = %d, want 1", p.metrics.Reposts.Load())
	}

	events := make([]Event, 1)
	n, err := p.Wait(events, time.Second, true, false)
	if err != nil {
		t.Fatalf("Wait() = %v", err)
	}
	if n != 1 || events[0].Key != 99 || !events[0].IsReadable() {
		t.Errorf("Wait did not observe the reposted completion: n=%d events[0]=%+v", n, events[0])
	}
}

func TestBufferIncrementsRepostsAndReachesWait(t *testing.T) {
	p := newTestPoller(t)
	if err := p.buffer(winnt.OverlappedEntry{CompletionKey: 1, BytesTransferred: Readable}); err != nil {
		t.Fatalf("buffer = %v", err)
	}
	if err := p.buffer(winnt.OverlappedEntry{CompletionKey: 2, BytesTransferred: Writable}); err != nil {
		t.Fatalf("buffer = %v", err)
	}
	if p.metrics.Reposts.Load() != 2 {
		t.Errorf("Reposts = %d, want 2", p.metrics.Reposts.Load())
	}

	events := make([]Event, 2)
	n, err := p.Wait(events, time.Second, true, false)
	if err != nil {
		t.Fatalf("Wait() = %v", err)
	}
	if n != 2 {
		t.Fatalf("Wait() n = %d, want 2", n)
	}
}
