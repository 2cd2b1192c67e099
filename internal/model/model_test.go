// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseKind("blog")
	assert.Error(t, err)
}

func TestKindTraits(t *testing.T) {
	assert.False(t, KindHero.IsList())
	assert.True(t, KindFaqs.IsList())
	assert.False(t, KindFaqs.HasImages())
	assert.True(t, KindTestimonials.HasImages())
}

func TestSite_Has(t *testing.T) {
	var nilSite *Site
	assert.False(t, nilSite.Has(KindHero))

	s := &Site{
		Hero: &Hero{ID: 3},
		Faqs: &Section[FaqItem]{ID: 9},
	}
	assert.True(t, s.Has(KindHero))
	assert.True(t, s.Has(KindFaqs))
	assert.False(t, s.Has(KindTestimonials))
	assert.Equal(t, int64(9), s.SectionID(KindFaqs))
	assert.Equal(t, int64(3), s.SectionID(KindHero))
	assert.Zero(t, s.SectionID(KindTeam))
}

func TestIsAllowedImage(t *testing.T) {
	assert.True(t, IsAllowedImage(MimeTypeWebP))
	assert.False(t, IsAllowedImage("image/svg+xml"))
	assert.False(t, IsAllowedImage("application/pdf"))
}
