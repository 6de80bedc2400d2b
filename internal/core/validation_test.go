// internal/core/validation_test.go
package core

import (
	"strings"
	"testing"
)

func TestIsValidSlug(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    bool
		comment string
	}{
		{"valid simple", "home", true, ""},
		{"valid hyphenated", "about-us", true, ""},
		{"valid with numbers", "page-2", true, ""},
		{"valid single char", "a", true, ""},
		{"valid long (100 chars)", strings.Repeat("a", 100), true, ""},
		{"invalid empty", "", false, "empty string"},
		{"invalid uppercase", "About", false, "contains uppercase"},
		{"invalid space", "about us", false, "contains space"},
		{"invalid underscore", "about_us", false, "contains underscore"},
		{"invalid leading hyphen", "-about", false, "starts with hyphen"},
		{"invalid trailing hyphen", "about-", false, "ends with hyphen"},
		{"invalid double hyphen", "about--us", false, "consecutive hyphens"},
		{"invalid slash", "about/us", false, "contains path separator"},
		{"invalid too long", strings.Repeat("a", 101), false, "exceeds 100 chars"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := IsValidSlug(tc.input)
			if got != tc.want {
				t.Errorf("IsValidSlug(%q) = %v; want %v. %s", tc.input, got, tc.want, tc.comment)
			}
		})
	}
}
