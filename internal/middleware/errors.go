// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"encoding/json"
	"net/http"
)

// APIError is the JSON error envelope of every API response.
type APIError struct {
	Error APIErrorBody `json:"error"`
}

// APIErrorBody is the content of an APIError.
type APIErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// WriteAPIError writes a JSON error response.
func WriteAPIError(w http.ResponseWriter, statusCode int, code, message string, details any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)

	_ = json.NewEncoder(w).Encode(APIError{Error: APIErrorBody{
		Code:    code,
		Message: message,
		Details: details,
	}})
}
