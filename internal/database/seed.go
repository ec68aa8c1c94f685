// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"bannerkit/internal/models"
	"bannerkit/internal/token"
)

// demoOptions is the banner inserted into an empty development database.
func demoOptions() models.BannerOptions {
	text := "Hello from bannerkit"
	bg := "#1e293b"
	fg := "white"
	family := "Go, sans-serif"
	size := 42.0
	width := 1200.0
	height := 200.0
	align := models.TextAlignCenter
	return models.BannerOptions{
		Text:            &text,
		Color:           &fg,
		BackgroundColor: &bg,
		FontFamily:      &family,
		FontSize:        &size,
		Width:           &width,
		Height:          &height,
		TextAlign:       &align,
	}
}

// Seed populates an empty database with a demo banner and logs its id and
// token so it can be updated from the test page.
func Seed(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM banners").Scan(&count); err != nil {
		return fmt.Errorf("seed check banners: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tok, err := token.Generate()
	if err != nil {
		return fmt.Errorf("seed token: %w", err)
	}
	hash, err := token.Hash(tok)
	if err != nil {
		return fmt.Errorf("seed token: %w", err)
	}

	opts, err := json.Marshal(demoOptions())
	if err != nil {
		return fmt.Errorf("seed marshal options: %w", err)
	}

	id := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)
	_, err = db.ExecContext(ctx, `
		INSERT INTO banners (id, options, token_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, id.String(), string(opts), hash, now, now)
	if err != nil {
		return fmt.Errorf("seed insert banner: %w", err)
	}

	slog.Info("database seeded with demo banner", "id", id, "token", tok)
	return nil
}
