// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/mozillazg/go-unidecode"
)

var (
	unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
	repeatedDashes  = regexp.MustCompile(`-{2,}`)
)

// maxObjectNameLen bounds the sanitized base name, extension excluded.
const maxObjectNameLen = 80

// SanitizeObjectName turns an uploaded file name into a storage-safe one:
// directory parts are dropped, letters are transliterated to ASCII and any
// other character becomes a dash. Names that end up empty are replaced by a
// random uuid, keeping the extension.
func SanitizeObjectName(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	name = path.Base(name)
	if name == "." || name == "/" {
		name = ""
	}

	ext := strings.ToLower(path.Ext(name))
	base := strings.TrimSuffix(name, path.Ext(name))

	ext = cleanPart(unidecode.Unidecode(ext))
	base = cleanPart(unidecode.Unidecode(base))
	base = strings.Trim(base, ".-_")
	if len(base) > maxObjectNameLen {
		base = strings.TrimRight(base[:maxObjectNameLen], ".-_")
	}

	if base == "" {
		base = uuid.NewString()
	}
	if ext == "." {
		ext = ""
	}
	return base + ext
}

func cleanPart(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = unsafeNameChars.ReplaceAllString(s, "-")
	return repeatedDashes.ReplaceAllString(s, "-")
}
