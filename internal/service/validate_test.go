// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/sitedeck/internal/model"
)

func TestValidateSection(t *testing.T) {
	assert.NoError(t, ValidateSection("Quotes", []model.Testimonial{{ID: 1, Stars: 5}, {ID: 2, Stars: 0}}))

	err := ValidateSection(strings.Repeat("x", 201), []model.Testimonial{{ID: 1, Stars: 4}, {ID: 2, Stars: 6}})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 2)
	assert.Equal(t, FieldError{Field: "title", Rule: "max", Param: "200"}, verr.Fields[0])
	assert.Equal(t, "items[1].Stars", verr.Fields[1].Field)
	assert.Equal(t, "max", verr.Fields[1].Rule)
}

func TestValidate_Lengths(t *testing.T) {
	err := Validate("", model.FaqItem{Question: strings.Repeat("q", 501)})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Question", verr.Fields[0].Field)
	assert.Contains(t, err.Error(), "Question max")
}

func TestSanitizeText(t *testing.T) {
	tests := []struct{ in, want string }{
		{"plain", "plain"},
		{"  padded  ", "padded"},
		{"<b>bold</b>", "bold"},
		{"a < b & c", "a < b & c"},
		{`<img src=x onerror="alert(1)">after`, "after"},
		{"Tom &amp; Jerry", "Tom &amp; Jerry"},
		{"&lt;b&gt;", "&lt;b&gt;"},
		{"caf&eacute;", "caf&eacute;"},
		{"<i>&amp;</i>", "&amp;"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeText(tt.in), tt.in)
	}
}

func TestSanitizeItem(t *testing.T) {
	tm := SanitizeItem(model.Testimonial{Username: "<i>Ana</i>", Stars: 4, Description: "<p>Great</p>"})
	assert.Equal(t, "Ana", tm.Username)
	assert.Equal(t, int64(4), tm.Stars)
	assert.Equal(t, "Great", tm.Description)

	faq := SanitizeItem(model.FaqItem{Question: "<h1>Q</h1>", Answer: "**A**"})
	assert.Equal(t, "Q", faq.Question)
	assert.Equal(t, "**A**", faq.Answer)
}
