// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package geoip

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_Disabled(t *testing.T) {
	g, err := NewLookup("")
	require.NoError(t, err)
	assert.False(t, g.Enabled())
	assert.NoError(t, g.Reload())

	assert.Equal(t, "", g.Country("8.8.8.8"))
	assert.Equal(t, CountryLocal, g.Country("127.0.0.1"))
	assert.Equal(t, CountryLocal, g.Country("192.168.1.10"))
	assert.Equal(t, "", g.Country("not-an-ip"))
	assert.NoError(t, g.Close())
}

func TestLookup_MissingFile(t *testing.T) {
	g, err := NewLookup(filepath.Join(t.TempDir(), "missing.mmdb"))
	assert.Error(t, err)
	assert.False(t, g.Enabled())
}

func TestLookup_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.mmdb")
	require.NoError(t, os.WriteFile(path, []byte("not a maxmind db"), 0o600))

	g, err := NewLookup(path)
	assert.Error(t, err)
	assert.False(t, g.Enabled())
}
