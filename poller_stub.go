//go:build !windows
// +build !windows

// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package wepoll

import "time"

// Poller is unavailable on this platform; every method returns
// errUnsupported. This repo targets Windows' IOCP specifically (see package
// doc), but keeps the package buildable elsewhere, matching the teacher's
// per-OS stub convention.
type Poller struct{}

// New always fails on non-Windows platforms.
func New() (*Poller, error) { return nil, errUnsupported }

func (p *Poller) Metrics() *Metrics { return newMetrics() }

func (p *Poller) Close() error { return errUnsupported }

func (p *Poller) Add(socket uintptr, interest Event, mode PollMode) error { return errUnsupported }

func (p *Poller) Modify(socket uintptr, interest Event, mode PollMode) error {
	return errUnsupported
}

func (p *Poller) Delete(socket uintptr) error { return errUnsupported }

func (p *Poller) AddWaitable(handle uintptr, interest Event) error { return errUnsupported }

func (p *Poller) ModifyWaitable(handle uintptr, interest Event) error { return errUnsupported }

func (p *Poller) DeleteWaitable(handle uintptr) error { return errUnsupported }

func (p *Poller) Wait(events []Event, timeout time.Duration, hasTimeout bool, alertable bool) (int, error) {
	return 0, errUnsupported
}

func (p *Poller) Post(event Event) error { return errUnsupported }
