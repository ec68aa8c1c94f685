// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for the handler
// tests: a migrated SQLite database, a fake snapshot store, and a router
// that mounts the handlers under their production paths.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"bannerkit/internal/banner"
	"bannerkit/internal/database"
	"bannerkit/internal/store"
)

const testBaseURL = "http://banners.test"

// fakeSnapshots records uploads in memory.
type fakeSnapshots struct {
	mu      sync.Mutex
	uploads map[string][]byte
	types   map[string]string
	err     error
}

func newFakeSnapshots() *fakeSnapshots {
	return &fakeSnapshots{uploads: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeSnapshots) Upload(_ context.Context, key, contentType string, body []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.uploads[key] = body
	f.types[key] = contentType
	return nil
}

func (f *fakeSnapshots) FileURL(key string) string {
	return "https://cdn.test/" + key
}

var errUploadFailed = errors.New("upload failed")

// testStore opens a migrated SQLite database in a temporary directory.
func testStore(t *testing.T) *store.BannerStore {
	t.Helper()

	db, err := database.Connect(database.DriverSQLite, filepath.Join(t.TempDir(), "handlers.db"))
	require.NoError(t, err, "open test DB")
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db, database.DriverSQLite), "run migrations")
	return store.NewBannerStore(db)
}

// bannerRouter mounts the banner handlers the way the production router
// does, minus middleware. snapshots may be nil.
func bannerRouter(t *testing.T, snapshots SnapshotStore) (http.Handler, *store.BannerStore) {
	t.Helper()

	repo := testStore(t)
	b := NewBanners(repo, banner.NewRenderer(), nil, snapshots, testBaseURL+"/")

	r := chi.NewRouter()
	r.Route("/banners", func(r chi.Router) {
		r.Get("/persist", b.Save)
		r.Post("/persist", b.Save)
		r.Patch("/{id}", b.Update)
		r.Put("/{id}", b.Update)
		r.Get("/share/{id}", b.Share)
		r.Get("/{type}", b.Render)
		r.Post("/{type}", b.Render)
		r.Get("/{type}/{id}", b.Render)
		r.Post("/{type}/{id}", b.Render)
	})
	return r, repo
}

// send performs a request. A non-empty body is sent as JSON.
func send(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// decodeJSON decodes a recorder body into a generic map.
func decodeJSON(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), "response is not a JSON object: %q", rr.Body.String())
	return out
}
