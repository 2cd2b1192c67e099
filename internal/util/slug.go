// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util holds small helpers shared across packages: file and folder
// name sanitizing, path containment and client address extraction.
package util

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
	slugPattern  = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// maxSlugLen bounds site urls, which double as storage folders.
const maxSlugLen = 128

// Slugify converts s to a lowercase ASCII slug with single dashes between
// words. Site urls are slugs.
func Slugify(s string) string {
	s = strings.ToLower(unidecode.Unidecode(s))
	s = strings.Trim(nonSlugChars.ReplaceAllString(s, "-"), "-")
	if len(s) > maxSlugLen {
		s = strings.TrimRight(s[:maxSlugLen], "-")
	}
	return s
}

// IsValidSlug reports whether s is already in Slugify form.
func IsValidSlug(s string) bool {
	return len(s) <= maxSlugLen && slugPattern.MatchString(s)
}
