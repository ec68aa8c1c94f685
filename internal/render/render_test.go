// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bannerkit/internal/health"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	rn, err := New()
	require.NoError(t, err)
	return rn
}

func TestNew(t *testing.T) {
	rn := newRenderer(t)

	assert.Contains(t, rn.templates, "health")
	assert.Contains(t, rn.templates, "docs")
	assert.NotContains(t, rn.templates, "base", "base layout is not a page")
}

func TestPageHealth(t *testing.T) {
	rn := newRenderer(t)

	report := health.Report{
		IsHealthy:  false,
		Status:     health.StatusError,
		FinishedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		DebugInfo:  health.DebugInfo{PID: 4242, Platform: "linux/amd64", GoVersion: "go1.25", Uptime: 65},
		Checks: []health.Result{
			{Name: "Database", Status: health.StatusOK, Message: "reachable"},
			{Name: "Valkey", Status: health.StatusError, Message: "dial <refused>"},
		},
	}

	rec := httptest.NewRecorder()
	rn.Page(rec, http.StatusServiceUnavailable, "health", &PageData{Title: "Health", Data: report})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	for _, want := range []string{
		"<title>Health · bannerkit</title>",
		"Service unhealthy",
		"Database",
		"Valkey",
		"dial &lt;refused&gt;",
		"status-error",
		"4242",
		"linux/amd64",
		"1m5s",
		"2026-01-02T03:04:05Z",
	} {
		assert.Contains(t, body, want)
	}
}

func TestPageDocsRendersTrustedHTML(t *testing.T) {
	rn := newRenderer(t)

	rec := httptest.NewRecorder()
	rn.Page(rec, http.StatusOK, "docs", &PageData{Title: "Docs", Data: "<h1 id=\"api\">API</h1>"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<h1 id="api">API</h1>`, "docs HTML is emitted unescaped")
}

func TestPageUnknownTemplate(t *testing.T) {
	rn := newRenderer(t)

	rec := httptest.NewRecorder()
	rn.Page(rec, http.StatusOK, "missing", &PageData{})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
