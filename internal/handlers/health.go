// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"bannerkit/internal/health"
	"bannerkit/internal/render"
)

// Health serves the health report as JSON and as an HTML page.
type Health struct {
	reporter *health.Reporter
	pages    *render.Renderer
}

// NewHealth creates a new Health handler group.
func NewHealth(reporter *health.Reporter, pages *render.Renderer) *Health {
	return &Health{reporter: reporter, pages: pages}
}

func reportStatus(report health.Report) int {
	if report.IsHealthy {
		return http.StatusOK
	}
	return http.StatusServiceUnavailable
}

// JSON serves GET /health/json.
func (h *Health) JSON(w http.ResponseWriter, r *http.Request) {
	report := h.reporter.Run(r.Context())
	writeJSON(w, reportStatus(report), report)
}

// Page serves GET /health. An unhealthy report still renders the page,
// with status 503, so the failing rows are visible.
func (h *Health) Page(w http.ResponseWriter, r *http.Request) {
	report := h.reporter.Run(r.Context())
	h.pages.Page(w, reportStatus(report), "health", &render.PageData{
		Title: "Health",
		Data:  report,
	})
}
