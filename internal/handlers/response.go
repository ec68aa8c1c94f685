// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"bannerkit/internal/models"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes {"error": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDecodeError maps a payload decoding failure to a response.
func writeDecodeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
	case errors.Is(err, errInvalidJSON):
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
	default:
		writeError(w, http.StatusBadRequest, "Invalid request body")
	}
}

// writeValidationError responds 422 with field-level detail, or 500 for
// anything that is not a validation failure.
func writeValidationError(w http.ResponseWriter, err error) {
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusUnprocessableEntity, ve)
		return
	}
	slog.Error("payload validation failed unexpectedly", "error", err)
	writeError(w, http.StatusInternalServerError, "Internal Server Error")
}
