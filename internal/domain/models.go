// internal/domain/models.go
package domain

import (
	"encoding/json"
	"time"
)

// Site is the top-level container owning pages. Deleting a site cascades to
// its pages and, transitively, their components (enforced by the store).
type Site struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Domain      *string   `json:"domain"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Page is a content document belonging to exactly one site. Slug uniqueness
// is scoped per site, not global.
type Page struct {
	ID              int64     `json:"id"`
	SiteID          int64     `json:"site_id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Content         *string   `json:"content"` // serialized component reference list; opaque to the store
	MetaTitle       *string   `json:"meta_title"`
	MetaDescription *string   `json:"meta_description"`
	IsPublished     bool      `json:"is_published"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// PageComponent is a typed, ordered content block attached to a page.
// ComponentData holds the type-tagged payload; its shape is validated against
// ComponentType before it ever reaches the store.
type PageComponent struct {
	ID            int64           `json:"id"`
	PageID        int64           `json:"page_id"`
	ComponentType ComponentType   `json:"component_type"`
	ComponentData json.RawMessage `json:"component_data"`
	SortOrder     int             `json:"sort_order"`
	CreatedAt     time.Time       `json:"created_at"`
}

// AdminUser is a CMS administrator account. The password hash never leaves
// the auth layer.
type AdminUser struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
