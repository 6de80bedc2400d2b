// internal/core/validation.go
package core

import "regexp"

// Slugs are lowercase alphanumeric segments separated by single hyphens,
// e.g. "home", "about-us". Uniqueness is scoped per site, enforced by the store.
var slugValidationRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// IsValidSlug checks format and length of a page slug.
func IsValidSlug(slug string) bool {
	return len(slug) > 0 && len(slug) <= 100 && slugValidationRegex.MatchString(slug)
}
