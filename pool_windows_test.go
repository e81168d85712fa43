//go:build windows
// +build windows

// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package wepoll

import "testing"

func TestEntryPoolGetSizesExactly(t *testing.T) {
	p := newEntryPool()

	buf := p.get(10)
	if len(*buf) != 10 {
		t.Fatalf("len = %d, want 10", len(*buf))
	}
	p.put(buf)

	buf2 := p.get(5)
	if len(*buf2) != 5 {
		t.Fatalf("len = %d, want 5", len(*buf2))
	}
}

func TestEntryPoolGrowsBeyondDefault(t *testing.T) {
	p := newEntryPool()
	buf := p.get(1000)
	if len(*buf) != 1000 {
		t.Fatalf("len = %d, want 1000", len(*buf))
	}
}
