// Package validation checks request payloads. Every validator returns the
// per-field messages and whether the payload is valid. Checks run in order
// and a later failing check replaces the message of an earlier one on the
// same field.
package validation

import (
	"strings"
	"time"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

type Errors map[string]string

var validate = validator.New()

// normalize treats whitespace-only input as empty.
func normalize(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}

func isEmpty(s string) bool {
	return s == ""
}

func isLength(s string, min, max int) bool {
	n := utf8.RuneCountInString(s)
	return n >= min && (max <= 0 || n <= max)
}

func isEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

func isURL(s string) bool {
	return validate.Var(s, "required,url") == nil
}

// jsLength counts UTF-16 code units.
func jsLength(s string) int {
	n := 0
	for _, r := range s {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

// ParseDate accepts the date formats sent by the web client.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
