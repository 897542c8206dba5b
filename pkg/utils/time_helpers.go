package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/aarondl/null/v8"
)

const DateLayout = "2006-01-02"

// ParseDate accepts RFC3339 timestamps and bare YYYY-MM-DD dates (read as UTC midnight).
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", raw)
}

// ParseNullDate maps nil to "not provided", "" to an explicit null and anything else to a parsed date.
func ParseNullDate(raw *string) (null.Time, bool, error) {
	if raw == nil {
		return null.Time{}, false, nil
	}
	if strings.TrimSpace(*raw) == "" {
		return null.Time{}, true, nil
	}
	t, err := ParseDate(*raw)
	if err != nil {
		return null.Time{}, true, err
	}
	return null.TimeFrom(t), true, nil
}

// NullStringPatch maps nil to "not provided", "" to an explicit null and anything else to a value.
func NullStringPatch(raw *string) (null.String, bool) {
	if raw == nil {
		return null.String{}, false
	}
	if *raw == "" {
		return null.String{}, true
	}
	return null.StringFrom(*raw), true
}

// FirstRunes returns at most n runes from the start of s.
func FirstRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
