// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store implements the SQL repository for persisted banners. Queries
// use numbered placeholders in ascending order so they run unchanged on
// PostgreSQL and SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bannerkit/internal/models"
	"bannerkit/internal/token"
)

// ErrNotFound is returned when a banner does not exist or when the supplied
// token does not match the banner's token. The two cases are not
// distinguished so a caller cannot discover existing ids.
var ErrNotFound = errors.New("banner not found")

// BannerStore handles all banner-related database operations.
type BannerStore struct {
	db *sql.DB
}

// NewBannerStore creates a new BannerStore with the given database connection.
func NewBannerStore(db *sql.DB) *BannerStore {
	return &BannerStore{db: db}
}

// bannerColumns lists the columns selected in banner queries.
const bannerColumns = `id, options, token_hash, created_at, updated_at`

// scanBanner scans a banner row and decodes its options blob.
func scanBanner(scanner interface{ Scan(...any) error }) (*models.Banner, error) {
	var (
		b   models.Banner
		raw string
	)
	if err := scanner.Scan(&b.ID, &raw, &b.TokenHash, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(raw), &b.Options); err != nil {
		return nil, fmt.Errorf("decode options of banner %s: %w", b.ID, err)
	}
	b.CreatedAt = b.CreatedAt.UTC()
	b.UpdatedAt = b.UpdatedAt.UTC()
	return &b, nil
}

// now returns the current time at the precision both backends store.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// Create persists opts under a new id and possession token. The returned
// banner carries the plaintext Token; it is not recoverable afterwards.
func (s *BannerStore) Create(ctx context.Context, opts models.BannerOptions) (*models.Banner, error) {
	tok, err := token.Generate()
	if err != nil {
		return nil, fmt.Errorf("create banner: %w", err)
	}
	hash, err := token.Hash(tok)
	if err != nil {
		return nil, fmt.Errorf("create banner: %w", err)
	}
	raw, err := json.Marshal(opts)
	if err != nil {
		return nil, fmt.Errorf("create banner: encode options: %w", err)
	}

	ts := now()
	b := &models.Banner{
		ID:        uuid.New(),
		Options:   opts,
		Token:     tok,
		TokenHash: hash,
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO banners (id, options, token_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		b.ID.String(), string(raw), b.TokenHash, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create banner: %w", err)
	}
	return b, nil
}

// Get retrieves a banner by id. Malformed ids are reported as ErrNotFound.
func (s *BannerStore) Get(ctx context.Context, id string) (*models.Banner, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+bannerColumns+` FROM banners WHERE id = $1`, uid.String())
	b, err := scanBanner(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get banner: %w", err)
	}
	return b, nil
}

// Update applies opts to the banner identified by id if tok matches its
// token. With overwrite the stored options are replaced; otherwise opts is
// merged field by field over them. A missing banner and a wrong token both
// yield ErrNotFound and nothing is written. Concurrent updates are not
// serialized; the last write wins.
func (s *BannerStore) Update(ctx context.Context, id, tok string, opts models.BannerOptions, overwrite bool) (*models.Banner, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !token.Compare(b.TokenHash, tok) {
		return nil, ErrNotFound
	}

	if overwrite {
		b.Options = opts
	} else {
		b.Options = b.Options.Merge(opts)
	}

	raw, err := json.Marshal(b.Options)
	if err != nil {
		return nil, fmt.Errorf("update banner: encode options: %w", err)
	}

	b.UpdatedAt = now()
	res, err := s.db.ExecContext(ctx, `
		UPDATE banners SET options = $1, updated_at = $2
		WHERE id = $3 AND token_hash = $4`,
		string(raw), b.UpdatedAt, b.ID.String(), b.TokenHash,
	)
	if err != nil {
		return nil, fmt.Errorf("update banner: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotFound
	}
	return b, nil
}
