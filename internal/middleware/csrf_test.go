// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

var testCSRFKey = []byte("12345678901234567890123456789012")

func TestDefaultCSRFConfig(t *testing.T) {
	dev := DefaultCSRFConfig(testCSRFKey, true)
	assert.Len(t, dev.AuthKey, 32)
	assert.Contains(t, dev.TrustedOrigins, "localhost:8080")
	for _, origin := range dev.TrustedOrigins {
		assert.NotContains(t, origin, "://", "trusted origins are host:port values")
	}

	prod := DefaultCSRFConfig(testCSRFKey, false)
	assert.Empty(t, prod.TrustedOrigins)
}

func TestCSRF(t *testing.T) {
	h := CSRF(DefaultCSRFConfig(testCSRFKey, false))(okHandler(t, nil))

	tests := []struct {
		name    string
		method  string
		headers map[string]string
		want    int
	}{
		{
			name:   "safe method",
			method: http.MethodGet,
			headers: map[string]string{
				"Sec-Fetch-Site": "cross-site",
			},
			want: http.StatusOK,
		},
		{
			name:   "same origin post",
			method: http.MethodPut,
			headers: map[string]string{
				"Sec-Fetch-Site": "same-origin",
			},
			want: http.StatusOK,
		},
		{
			name:   "cross site post",
			method: http.MethodPut,
			headers: map[string]string{
				"Sec-Fetch-Site": "cross-site",
			},
			want: http.StatusForbidden,
		},
		{
			name:   "cross site post with bearer token",
			method: http.MethodPut,
			headers: map[string]string{
				"Sec-Fetch-Site": "cross-site",
				"Authorization":  "Bearer abc.def.ghi",
			},
			want: http.StatusOK,
		},
		{
			name:   "non browser client",
			method: http.MethodPost,
			want:   http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "http://admin.example.com/api/sections/faqs", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusForbidden {
				assert.Equal(t, "csrf_failed", decodeAPIError(t, rec).Code)
			}
		})
	}
}
