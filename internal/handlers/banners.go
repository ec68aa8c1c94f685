// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"

	"bannerkit/internal/banner"
	"bannerkit/internal/cache"
	"bannerkit/internal/models"
	"bannerkit/internal/storage"
	"bannerkit/internal/store"
)

// qrSize is the edge length in pixels of share QR codes.
const qrSize = 256

// BannerRepository is the persistence the banner handlers need.
// *store.BannerStore implements it.
type BannerRepository interface {
	Create(ctx context.Context, opts models.BannerOptions) (*models.Banner, error)
	Get(ctx context.Context, id string) (*models.Banner, error)
	Update(ctx context.Context, id, token string, opts models.BannerOptions, overwrite bool) (*models.Banner, error)
}

// SnapshotStore publishes rendered PNG snapshots. *storage.Client
// implements it.
type SnapshotStore interface {
	Upload(ctx context.Context, key, contentType string, body []byte) error
	FileURL(key string) string
}

// Banners groups the banner render, save, update, and share handlers.
type Banners struct {
	repo      BannerRepository
	renderer  *banner.Renderer
	cache     *cache.RenderCache
	snapshots SnapshotStore
	baseURL   string
}

// NewBanners creates a new Banners handler group. renderCache and
// snapshots may be nil when Valkey or object storage is not configured.
// baseURL is the externally visible origin used in derived URLs.
func NewBanners(repo BannerRepository, renderer *banner.Renderer, renderCache *cache.RenderCache, snapshots SnapshotStore, baseURL string) *Banners {
	return &Banners{
		repo:      repo,
		renderer:  renderer,
		cache:     renderCache,
		snapshots: snapshots,
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

// bannerResponse is the JSON shape of a saved or updated banner.
type bannerResponse struct {
	*models.Banner
	Token       string `json:"token,omitempty"`
	ImageURL    string `json:"imageUrl"`
	HTMLURL     string `json:"htmlUrl"`
	TextURL     string `json:"textUrl"`
	SnapshotURL string `json:"snapshotUrl,omitempty"`
}

// bannerURL returns the derived render URL of a saved banner.
func (b *Banners) bannerURL(kind banner.Kind, id string) string {
	return b.baseURL + "/banners/" + string(kind) + "/" + id
}

func (b *Banners) response(ctx context.Context, bn *models.Banner) bannerResponse {
	id := bn.ID.String()
	return bannerResponse{
		Banner:      bn,
		ImageURL:    b.bannerURL(banner.KindImage, id),
		HTMLURL:     b.bannerURL(banner.KindHTML, id),
		TextURL:     b.bannerURL(banner.KindText, id),
		SnapshotURL: b.publishSnapshot(ctx, bn),
	}
}

// publishSnapshot uploads a PNG of the banner to object storage and returns
// its public URL, or "" when storage is disabled or the upload failed.
func (b *Banners) publishSnapshot(ctx context.Context, bn *models.Banner) string {
	if b.snapshots == nil {
		return ""
	}

	png, err := b.renderer.Image(bn.Options)
	if models.IsValidationError(err) {
		slog.Info("banner too large for a snapshot, skipping", "id", bn.ID, "error", err)
		return ""
	}
	if err != nil {
		slog.Error("snapshot render failed", "error", err, "id", bn.ID)
		return ""
	}

	key := storage.SnapshotKey(bn.ID.String())
	if err := b.snapshots.Upload(ctx, key, banner.KindImage.ContentType(), png); err != nil {
		slog.Error("snapshot upload failed", "error", err, "id", bn.ID)
		return ""
	}
	return b.snapshots.FileURL(key)
}

// Render serves GET|POST /banners/{type} and /banners/{type}/{id}. With an
// id, the request's options are layered over the saved ones for this
// render only; nothing is written.
func (b *Banners) Render(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	fields, err := decodeFields(w, r)
	if err != nil {
		writeDecodeError(w, err)
		return
	}
	opts, err := models.DecodeOptions(fields)
	if err != nil {
		writeValidationError(w, err)
		return
	}

	if id := chi.URLParam(r, "id"); id != "" {
		existing, err := b.repo.Get(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Banner not found")
			return
		}
		if err != nil {
			slog.Error("load banner failed", "error", err, "id", id)
			writeError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		opts = existing.Options.Merge(opts)
	}

	kind, ok := banner.ParseKind(chi.URLParam(r, "type"))
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid type")
		return
	}

	out, err := b.render(ctx, kind, opts)
	if models.IsValidationError(err) {
		writeValidationError(w, err)
		return
	}
	if err != nil {
		slog.Error("banner render failed", "error", err, "kind", kind)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	w.Header().Set("Content-Type", out.ContentType)
	w.Write(out.Body)
}

// render produces the output, going through the render cache for image
// and html output.
func (b *Banners) render(ctx context.Context, kind banner.Kind, opts models.BannerOptions) (*banner.Output, error) {
	if kind == banner.KindText {
		return b.renderer.Render(kind, opts)
	}

	if cached, ok := b.cache.Get(ctx, string(kind), opts); ok {
		return &banner.Output{ContentType: kind.ContentType(), Body: cached}, nil
	}

	out, err := b.renderer.Render(kind, opts)
	if err != nil {
		return nil, err
	}
	b.cache.Set(ctx, string(kind), opts, out.Body)
	return out, nil
}

// Save serves GET|POST /banners/persist. The response is the only place
// the possession token is ever returned.
func (b *Banners) Save(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	fields, err := decodeFields(w, r)
	if err != nil {
		writeDecodeError(w, err)
		return
	}
	opts, err := models.DecodeOptions(fields)
	if err != nil {
		writeValidationError(w, err)
		return
	}

	created, err := b.repo.Create(ctx, opts)
	if err != nil {
		slog.Error("banner create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	slog.Info("banner created", "id", created.ID)
	resp := b.response(ctx, created)
	resp.Token = created.Token
	writeJSON(w, http.StatusOK, resp)
}

// Update serves PATCH and PUT /banners/{id}. PATCH merges the given
// options into the saved ones; PUT replaces them. An unknown id and a
// wrong token are indistinguishable to the caller.
func (b *Banners) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	fields, err := decodeFields(w, r)
	if err != nil {
		writeDecodeError(w, err)
		return
	}
	payload, err := models.DecodeUpdate(fields)
	if err != nil {
		writeValidationError(w, err)
		return
	}

	overwrite := r.Method == http.MethodPut
	updated, err := b.repo.Update(ctx, id, payload.Token, payload.Options, overwrite)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Banner not found")
		return
	}
	if err != nil {
		slog.Error("banner update failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	slog.Info("banner updated", "id", updated.ID, "overwrite", overwrite)
	writeJSON(w, http.StatusOK, b.response(ctx, updated))
}

// Share serves GET /banners/share/{id}: a QR code PNG encoding the
// banner's image URL.
func (b *Banners) Share(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	bn, err := b.repo.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Banner not found")
		return
	}
	if err != nil {
		slog.Error("load banner failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	png, err := qrcode.Encode(b.bannerURL(banner.KindImage, bn.ID.String()), qrcode.Medium, qrSize)
	if err != nil {
		slog.Error("qr encode failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
