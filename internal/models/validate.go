// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Limits on rasterized banners. A canvas outside these bounds cannot be
// drawn in reasonable memory. HTML and text output are not bounded.
const (
	MaxDimension = 4096
	MaxFontSize  = 1000
)

// ValidationError carries field-level validation messages keyed by the
// JSON field name.
type ValidationError struct {
	Fields map[string]string `json:"errors"`
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsValidationError reports whether err is (or wraps) a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Validate checks enum membership. Types are checked while decoding; any
// number or string is otherwise accepted.
func (o BannerOptions) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.TextAlign,
			validation.In(TextAlignLeft, TextAlignCenter, TextAlignRight).
				Error("must be one of left, center, right"),
		),
		validation.Field(&o.TextVerticalAlign,
			validation.In(VerticalAlignTop, VerticalAlignCenter, VerticalAlignBottom).
				Error("must be one of top, center, bottom"),
		),
	)
}

// ValidateCanvas checks the options that size a raster canvas. It applies
// only to image output. Zero-valued fields are skipped; the renderer
// treats them as unset. The returned error is a *ValidationError.
func (o BannerOptions) ValidateCanvas() error {
	err := validation.ValidateStruct(&o,
		validation.Field(&o.Width, validation.Min(1.0), validation.Max(float64(MaxDimension))),
		validation.Field(&o.Height, validation.Min(1.0), validation.Max(float64(MaxDimension))),
		validation.Field(&o.FontSize,
			validation.Min(0.0).Exclusive().Error("must be greater than 0"),
			validation.Max(float64(MaxFontSize)),
		),
	)
	if err == nil {
		return nil
	}
	errs := map[string]string{}
	mergeValidationErrors(errs, err)
	return &ValidationError{Fields: errs}
}

// UpdatePayload is the body of a token-gated update: the options to apply
// plus the possession token that authorizes the change.
type UpdatePayload struct {
	Token   string        `json:"token"`
	Options BannerOptions `json:"-"`
}

// Validate requires a token and validates the embedded options.
func (p UpdatePayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Token, validation.Required.Error("token is required")),
	)
}

// DecodeOptions converts a loosely typed field map (merged query string and
// JSON body) into BannerOptions. Strings must be strings; numbers may be
// JSON numbers or numeric strings. Unknown keys are ignored. The returned
// error is a *ValidationError describing every offending field.
func DecodeOptions(fields map[string]any) (BannerOptions, error) {
	var (
		opts BannerOptions
		errs = map[string]string{}
	)

	opts.Text = stringField(fields, "text", errs)
	opts.Color = stringField(fields, "color", errs)
	opts.BackgroundColor = stringField(fields, "backgroundColor", errs)
	opts.FontFamily = stringField(fields, "fontFamily", errs)
	opts.FontSize = numberField(fields, "fontSize", errs)
	opts.Width = numberField(fields, "width", errs)
	opts.Height = numberField(fields, "height", errs)

	if s := stringField(fields, "textAlign", errs); s != nil {
		a := TextAlign(*s)
		opts.TextAlign = &a
	}
	if s := stringField(fields, "textVerticalAlign", errs); s != nil {
		a := VerticalAlign(*s)
		opts.TextVerticalAlign = &a
	}

	if err := opts.Validate(); err != nil {
		mergeValidationErrors(errs, err)
	}
	if len(errs) > 0 {
		return BannerOptions{}, &ValidationError{Fields: errs}
	}
	return opts, nil
}

// DecodeUpdate decodes an update payload: DecodeOptions plus a required
// string token.
func DecodeUpdate(fields map[string]any) (UpdatePayload, error) {
	errs := map[string]string{}

	var p UpdatePayload
	if tok := stringField(fields, "token", errs); tok != nil {
		p.Token = *tok
	}
	if err := p.Validate(); err != nil {
		mergeValidationErrors(errs, err)
	}

	opts, err := DecodeOptions(fields)
	if err != nil {
		var ve *ValidationError
		if !errors.As(err, &ve) {
			return UpdatePayload{}, err
		}
		for k, v := range ve.Fields {
			errs[k] = v
		}
	}

	if len(errs) > 0 {
		return UpdatePayload{}, &ValidationError{Fields: errs}
	}
	p.Options = opts
	return p, nil
}

func stringField(fields map[string]any, key string, errs map[string]string) *string {
	raw, ok := fields[key]
	if !ok || raw == nil {
		return nil
	}
	s, ok := raw.(string)
	if !ok {
		errs[key] = "must be a string"
		return nil
	}
	return &s
}

func numberField(fields map[string]any, key string, errs map[string]string) *float64 {
	raw, ok := fields[key]
	if !ok || raw == nil {
		return nil
	}
	switch v := raw.(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			errs[key] = "must be a number"
			return nil
		}
		return &f
	default:
		errs[key] = "must be a number"
		return nil
	}
}

// mergeValidationErrors flattens ozzo validation.Errors into errs without
// overwriting type errors already recorded for a field.
func mergeValidationErrors(errs map[string]string, err error) {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		errs["_"] = err.Error()
		return
	}
	for field, ferr := range verrs {
		if _, exists := errs[field]; exists {
			continue
		}
		errs[field] = fmt.Sprint(ferr)
	}
}
