// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"

	"github.com/olegiv/sitedeck/internal/model"
)

var (
	validate    = validator.New(validator.WithRequiredStructEnabled())
	textPolicy  = bluemonday.StrictPolicy()
	titleMaxLen = 200
)

// FieldError describes one invalid field of a request.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// ValidationError collects every invalid field of a request.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Rule)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Validate checks v against its validate tags. prefix is prepended to
// every reported field name.
func Validate(prefix string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field: prefix + fe.Field(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}

// ValidateSection checks a submitted title and every item.
func ValidateSection[T model.Item](title string, items []T) error {
	verr := &ValidationError{}
	if len([]rune(title)) > titleMaxLen {
		verr.Fields = append(verr.Fields, FieldError{Field: "title", Rule: "max", Param: fmt.Sprint(titleMaxLen)})
	}
	for i, it := range items {
		err := Validate(fmt.Sprintf("items[%d].", i), it)
		var ie *ValidationError
		switch {
		case errors.As(err, &ie):
			verr.Fields = append(verr.Fields, ie.Fields...)
		case err != nil:
			return err
		}
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// SanitizeText strips every HTML tag from s and trims it. Ampersands are
// escaped before sanitizing so that decoding the policy output restores
// the typed text, literal entities such as "&amp;" included.
func SanitizeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}

// SanitizeItem returns item with its text fields sanitized. Image urls are
// kept as given.
func SanitizeItem[T model.Item](item T) T {
	switch v := any(&item).(type) {
	case *model.ServiceItem:
		v.Title = SanitizeText(v.Title)
		v.Description = SanitizeText(v.Description)
	case *model.PortfolioItem:
		v.Title = SanitizeText(v.Title)
		v.Subtitle = SanitizeText(v.Subtitle)
		v.Description = SanitizeText(v.Description)
	case *model.TeamMember:
		v.Name = SanitizeText(v.Name)
		v.Profession = SanitizeText(v.Profession)
		v.Description = SanitizeText(v.Description)
	case *model.Testimonial:
		v.Username = SanitizeText(v.Username)
		v.Description = SanitizeText(v.Description)
	case *model.FaqItem:
		v.Question = SanitizeText(v.Question)
		v.Answer = SanitizeText(v.Answer)
	}
	return item
}
