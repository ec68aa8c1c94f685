// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// maxBodySize caps request bodies.
const maxBodySize = 1 << 20

var errInvalidJSON = errors.New("invalid JSON body")

// decodeFields collects request fields into one loosely typed map: query
// string values first, then body fields, which override query fields of the
// same name. The body may be empty, a JSON object, or a urlencoded form.
// Only the first value of a repeated query key is used.
func decodeFields(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	fields := make(map[string]any)
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			fields[key] = values[0]
		}
	}

	if r.Body == nil || r.Body == http.NoBody {
		return fields, nil
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("parse form: %w", err)
		}
		for key, values := range r.PostForm {
			if len(values) > 0 {
				fields[key] = values[0]
			}
		}
		return fields, nil
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return fields, nil
	}

	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, errInvalidJSON
	}
	for key, value := range body {
		fields[key] = value
	}
	return fields, nil
}
