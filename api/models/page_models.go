// api/models/page_models.go
package models

import "github.com/wordcross/wordcross-backend/internal/domain"

// --- Page Request/Response Structs ---

// CreatePageRequest defines the structure for the page creation body.
// The owning site comes from the URL, not the body.
type CreatePageRequest struct {
	Title           string  `json:"title" binding:"required,min=1"`
	Slug            string  `json:"slug" binding:"required,min=1"`
	Content         *string `json:"content"`
	MetaTitle       *string `json:"meta_title"`
	MetaDescription *string `json:"meta_description"`
	IsPublished     bool    `json:"is_published"`
}

// UpdatePageRequest carries a partial page update; absent fields stay untouched.
type UpdatePageRequest struct {
	Title           *string `json:"title" binding:"omitempty,min=1"`
	Slug            *string `json:"slug" binding:"omitempty,min=1"`
	Content         *string `json:"content"`
	MetaTitle       *string `json:"meta_title"`
	MetaDescription *string `json:"meta_description"`
	IsPublished     *bool   `json:"is_published"`
}

// PageListResponse wraps a paginated page listing.
type PageListResponse struct {
	Pages      []domain.Page `json:"pages"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"totalPages"`
}
