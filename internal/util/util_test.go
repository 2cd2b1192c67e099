// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"net"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeObjectName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.jpg", "photo.jpg"},
		{"My Photo.JPG", "My-Photo.jpg"},
		{"Ação & Reação.png", "Acao-Reacao.png"},
		{"../../etc/passwd", "passwd"},
		{`C:\Users\me\avatar.webp`, "avatar.webp"},
		{"a   b---c.gif", "a-b-c.gif"},
		{"--photo--.png", "photo.png"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeObjectName(tt.in))
		})
	}
}

func TestSanitizeObjectName_EmptyFallsBackToUUID(t *testing.T) {
	uuidRe := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}(\.png)?$`)
	assert.Regexp(t, uuidRe, SanitizeObjectName(""))
	assert.Regexp(t, uuidRe, SanitizeObjectName("###.png"))
}

func TestSanitizeObjectName_Truncates(t *testing.T) {
	long := ""
	for i := 0; i < 200; i++ {
		long += "a"
	}
	got := SanitizeObjectName(long + ".jpg")
	assert.Equal(t, maxObjectNameLen+len(".jpg"), len(got))
}

func TestSafeJoinPath(t *testing.T) {
	base := t.TempDir()

	p, err := SafeJoinPath(base, "sites", "acme", "a.jpg")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "sites", "acme", "a.jpg"), p)

	_, err = SafeJoinPath(base, "sites", "../../etc/passwd")
	assert.Error(t, err)

	_, err = SafeJoinPath(base, "..", filepath.Base(base)+"-evil")
	assert.ErrorIs(t, err, ErrPathEscapes)

	p, err = SafeJoinPath(base)
	require.NoError(t, err)
	assert.Equal(t, base, p)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "cafe-do-porto", Slugify("Café do  Porto!"))
	assert.Equal(t, "sao-paulo-studio", Slugify("  São Paulo / Studio "))
	assert.True(t, IsValidSlug("cafe-do-porto"))
	assert.False(t, IsValidSlug("Cafe"))
	assert.False(t, IsValidSlug("-a"))
	assert.False(t, IsValidSlug("a--b"))
	assert.False(t, IsValidSlug(""))
}

func TestIsPrivateIP(t *testing.T) {
	assert.True(t, IsPrivateIP(net.ParseIP("10.1.2.3")))
	assert.True(t, IsPrivateIP(net.ParseIP("::1")))
	assert.True(t, IsPrivateIP(nil))
	assert.False(t, IsPrivateIP(net.ParseIP("8.8.8.8")))
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "203.0.113.7:5123"
	assert.Equal(t, "203.0.113.7", ClientIP(r))

	r.RemoteAddr = "203.0.113.7"
	assert.Equal(t, "203.0.113.7", ClientIP(r))
}
