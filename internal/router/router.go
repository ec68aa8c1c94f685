// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// bannerkit server.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"bannerkit/internal/handlers"
	"bannerkit/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. writeLimiter throttles the routes that
// persist data.
func New(pages *handlers.Pages, healthH *handlers.Health, banners *handlers.Banners, writeLimiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.Get("/", pages.Home)
	r.Get("/test", pages.Test)
	r.Get("/docs", pages.Docs)
	r.Get("/api/docs", pages.OpenAPI)
	r.Handle("/static/*", pages.Static())

	r.Get("/health", healthH.Page)
	r.Get("/health/json", healthH.JSON)

	r.Route("/banners", func(r chi.Router) {
		// Writes.
		r.Group(func(r chi.Router) {
			r.Use(writeLimiter.Middleware)
			r.Get("/persist", banners.Save)
			r.Post("/persist", banners.Save)
			r.Patch("/{id}", banners.Update)
			r.Put("/{id}", banners.Update)
		})

		// Renders are embeddable from any origin.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Embeddable)
			r.Get("/share/{id}", banners.Share)
			r.Get("/{type}", banners.Render)
			r.Post("/{type}", banners.Render)
			r.Get("/{type}/{id}", banners.Render)
			r.Post("/{type}/{id}", banners.Render)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Not Found"}` + "\n"))
	})

	return r
}
