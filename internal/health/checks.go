// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package health

import (
	"context"
	"fmt"
	"runtime"
	"time"
)

// PingCheck reports an error when its ping function fails. It covers the
// database (sql.DB.PingContext), Valkey, and the snapshot bucket.
type PingCheck struct {
	name string
	ping func(ctx context.Context) error
}

// NewPingCheck creates a PingCheck.
func NewPingCheck(name string, ping func(ctx context.Context) error) *PingCheck {
	return &PingCheck{name: name, ping: ping}
}

func (c *PingCheck) Name() string { return c.name }

func (c *PingCheck) Run(ctx context.Context) Result {
	start := time.Now()
	err := c.ping(ctx)
	meta := map[string]any{"latencyMs": time.Since(start).Milliseconds()}
	if err != nil {
		return Result{Status: StatusError, Message: err.Error(), FinishedAt: time.Now().UTC(), Meta: meta}
	}
	return Result{Status: StatusOK, Message: "reachable", FinishedAt: time.Now().UTC(), Meta: meta}
}

const mib = 1 << 20

// MemoryHeapCheck compares the live heap size against two thresholds.
type MemoryHeapCheck struct {
	WarnAt uint64
	FailAt uint64

	// readHeap is swapped in tests.
	readHeap func() uint64
}

// NewMemoryHeapCheck returns a check that warns at 250 MiB and fails at
// 300 MiB of heap in use.
func NewMemoryHeapCheck() *MemoryHeapCheck {
	return &MemoryHeapCheck{WarnAt: 250 * mib, FailAt: 300 * mib, readHeap: heapAlloc}
}

func heapAlloc() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.HeapAlloc
}

func (c *MemoryHeapCheck) Name() string { return "Heap memory usage" }

func (c *MemoryHeapCheck) Run(_ context.Context) Result {
	used := c.readHeap()
	meta := map[string]any{
		"heapUsed":  used,
		"threshold": map[string]uint64{"warning": c.WarnAt, "failure": c.FailAt},
	}

	res := Result{Status: StatusOK, FinishedAt: time.Now().UTC(), Meta: meta}
	switch {
	case used >= c.FailAt:
		res.Status = StatusError
		res.Message = fmt.Sprintf("Heap usage is %s, above the %s threshold", formatBytes(used), formatBytes(c.FailAt))
	case used >= c.WarnAt:
		res.Status = StatusWarning
		res.Message = fmt.Sprintf("Heap usage is %s, above the %s warning threshold", formatBytes(used), formatBytes(c.WarnAt))
	default:
		res.Message = fmt.Sprintf("Heap usage is %s", formatBytes(used))
	}
	return res
}

func formatBytes(n uint64) string {
	return fmt.Sprintf("%.1f MiB", float64(n)/mib)
}
