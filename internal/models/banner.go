// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the banner data structures shared by the store,
// the renderer, and the HTTP handlers.
package models

import (
	"time"

	"github.com/google/uuid"
)

// TextAlign is the horizontal placement of banner text.
type TextAlign string

const (
	TextAlignLeft   TextAlign = "left"
	TextAlignCenter TextAlign = "center"
	TextAlignRight  TextAlign = "right"
)

// VerticalAlign is the vertical placement of banner text.
type VerticalAlign string

const (
	VerticalAlignTop    VerticalAlign = "top"
	VerticalAlignCenter VerticalAlign = "center"
	VerticalAlignBottom VerticalAlign = "bottom"
)

// BannerOptions is the flat set of styling parameters a banner is rendered
// from. Every field is optional; nil means "use the renderer default".
type BannerOptions struct {
	Text              *string        `json:"text,omitempty"`
	Color             *string        `json:"color,omitempty"`
	BackgroundColor   *string        `json:"backgroundColor,omitempty"`
	FontSize          *float64       `json:"fontSize,omitempty"`
	FontFamily        *string        `json:"fontFamily,omitempty"`
	Width             *float64       `json:"width,omitempty"`
	Height            *float64       `json:"height,omitempty"`
	TextAlign         *TextAlign     `json:"textAlign,omitempty"`
	TextVerticalAlign *VerticalAlign `json:"textVerticalAlign,omitempty"`
}

// Merge returns a copy of o with every non-nil field of over layered on top.
// The merge is shallow: a field is either taken from over or kept from o.
func (o BannerOptions) Merge(over BannerOptions) BannerOptions {
	out := o
	if over.Text != nil {
		out.Text = over.Text
	}
	if over.Color != nil {
		out.Color = over.Color
	}
	if over.BackgroundColor != nil {
		out.BackgroundColor = over.BackgroundColor
	}
	if over.FontSize != nil {
		out.FontSize = over.FontSize
	}
	if over.FontFamily != nil {
		out.FontFamily = over.FontFamily
	}
	if over.Width != nil {
		out.Width = over.Width
	}
	if over.Height != nil {
		out.Height = over.Height
	}
	if over.TextAlign != nil {
		out.TextAlign = over.TextAlign
	}
	if over.TextVerticalAlign != nil {
		out.TextVerticalAlign = over.TextVerticalAlign
	}
	return out
}

// Banner is a persisted option set. Token holds the plaintext possession
// token and is only populated on the record returned from creation; the
// database keeps the bcrypt hash in TokenHash.
type Banner struct {
	ID        uuid.UUID     `json:"id"`
	Options   BannerOptions `json:"options"`
	Token     string        `json:"-"`
	TokenHash string        `json:"-"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
