// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"errors"
	"path/filepath"
	"strings"
)

// ErrPathEscapes is returned when a joined path leaves its base directory.
var ErrPathEscapes = errors.New("path escapes base directory")

// SafeJoinPath joins components onto base and rejects results outside it.
// base itself is accepted.
func SafeJoinPath(base string, components ...string) (string, error) {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", err
	}
	full := filepath.Join(append([]string{absBase}, components...)...)

	rel, err := filepath.Rel(absBase, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", ErrPathEscapes
	}
	return full, nil
}
