// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package health runs liveness checks against the service's dependencies
// and aggregates them into a report.
package health

import (
	"context"
	"os"
	"runtime"
	"sync"
	"time"
)

// Status of a single check or of the whole report. Ordered by severity.
type Status string

const (
	StatusOK      Status = "ok"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
)

func (s Status) severity() int {
	switch s {
	case StatusOK:
		return 0
	case StatusWarning:
		return 1
	default:
		return 2
	}
}

// DefaultTimeout bounds a full run of all checks.
const DefaultTimeout = 5 * time.Second

// Checker is a single dependency check.
type Checker interface {
	Name() string
	Run(ctx context.Context) Result
}

// Result is the outcome of one check.
type Result struct {
	Name       string         `json:"name"`
	Status     Status         `json:"status"`
	Message    string         `json:"message"`
	FinishedAt time.Time      `json:"finishedAt"`
	Meta       map[string]any `json:"meta,omitempty"`
}

// DebugInfo describes the running process.
type DebugInfo struct {
	PID       int     `json:"pid"`
	Platform  string  `json:"platform"`
	GoVersion string  `json:"goVersion"`
	Uptime    float64 `json:"uptime"`
}

// Report aggregates check results. IsHealthy is false iff any check
// reported StatusError; Status is the worst individual status.
type Report struct {
	IsHealthy  bool      `json:"isHealthy"`
	Status     Status    `json:"status"`
	FinishedAt time.Time `json:"finishedAt"`
	DebugInfo  DebugInfo `json:"debugInfo"`
	Checks     []Result  `json:"checks"`
}

// Reporter runs a fixed set of checks.
type Reporter struct {
	checks  []Checker
	timeout time.Duration
	started time.Time
}

// NewReporter creates a Reporter for checks, run in registration order.
func NewReporter(checks ...Checker) *Reporter {
	return &Reporter{checks: checks, timeout: DefaultTimeout, started: time.Now()}
}

// Register appends a check.
func (r *Reporter) Register(c Checker) {
	r.checks = append(r.checks, c)
}

// Run executes every check concurrently and returns the report. A check
// still running when the timeout expires is reported as an error.
func (r *Reporter) Run(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	results := make([]Result, len(r.checks))
	var wg sync.WaitGroup
	for i, c := range r.checks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = runOne(ctx, c)
		}()
	}
	wg.Wait()

	report := Report{
		IsHealthy:  true,
		Status:     StatusOK,
		FinishedAt: time.Now().UTC(),
		DebugInfo: DebugInfo{
			PID:       os.Getpid(),
			Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			GoVersion: runtime.Version(),
			Uptime:    time.Since(r.started).Seconds(),
		},
		Checks: results,
	}
	for _, res := range results {
		if res.Status.severity() > report.Status.severity() {
			report.Status = res.Status
		}
		if res.Status == StatusError {
			report.IsHealthy = false
		}
	}
	return report
}

// runOne runs c, converting a timeout or panic into an error result.
func runOne(ctx context.Context, c Checker) (res Result) {
	done := make(chan Result, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- Result{Status: StatusError, Message: "check panicked"}
			}
		}()
		done <- c.Run(ctx)
	}()

	select {
	case res = <-done:
	case <-ctx.Done():
		res = Result{Status: StatusError, Message: "check timed out: " + ctx.Err().Error()}
	}

	res.Name = c.Name()
	if res.FinishedAt.IsZero() {
		res.FinishedAt = time.Now().UTC()
	}
	return res
}
