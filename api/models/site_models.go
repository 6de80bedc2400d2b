// api/models/site_models.go
package models

import "github.com/wordcross/wordcross-backend/internal/domain"

// --- Site Request/Response Structs ---

// CreateSiteRequest defines the structure for the site creation body
type CreateSiteRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=100"`
	Domain      *string `json:"domain"`
	Description *string `json:"description"`
}

// UpdateSiteRequest carries a partial site update; absent fields stay untouched.
type UpdateSiteRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Domain      *string `json:"domain"`
	Description *string `json:"description"`
}

// BulkDeleteRequest names the site ids to remove, best effort.
type BulkDeleteRequest struct {
	IDs []int64 `json:"ids" binding:"required,min=1"`
}

// SiteListResponse wraps a paginated site listing.
type SiteListResponse struct {
	Sites      []domain.Site `json:"sites"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"totalPages"`
}

// DashboardStatsResponse aggregates counts across all sites and pages.
type DashboardStatsResponse struct {
	TotalSites     int `json:"totalSites"`
	TotalPages     int `json:"totalPages"`
	PublishedPages int `json:"publishedPages"`
	DraftPages     int `json:"draftPages"`
}
