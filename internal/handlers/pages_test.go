// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bannerkit/internal/render"
)

func newPagesHandler(t *testing.T) *Pages {
	t.Helper()

	pages, err := render.New()
	require.NoError(t, err)
	p, err := NewPages(pages)
	require.NoError(t, err)
	return p
}

func TestHome(t *testing.T) {
	rr := httptest.NewRecorder()
	newPagesHandler(t).Home(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"hello":"world"}`, rr.Body.String())
}

func TestPlaygroundAndDocs(t *testing.T) {
	p := newPagesHandler(t)

	rr := httptest.NewRecorder()
	p.Test(rr, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Contains(t, rr.Body.String(), "Playground")

	rr = httptest.NewRecorder()
	p.Docs(rr, httptest.NewRequest(http.MethodGet, "/docs", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "<h1")
	assert.Contains(t, rr.Body.String(), "bannerkit API")
}

func TestOpenAPI(t *testing.T) {
	rr := httptest.NewRecorder()
	newPagesHandler(t).OpenAPI(rr, httptest.NewRequest(http.MethodGet, "/api/docs", nil))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &doc), "openapi document is JSON")
	assert.Equal(t, "3.0.3", doc["openapi"])

	paths, ok := doc["paths"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, paths, "/banners/persist")
}

func TestStatic(t *testing.T) {
	h := newPagesHandler(t).Static()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/static/playground.js", nil))
	assert.Equal(t, http.StatusOK, rr.Code, "playground.js")

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/static/missing.css", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code, "missing asset")
}
