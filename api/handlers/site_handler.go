// api/handlers/site_handler.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wordcross/wordcross-backend/api/models"
	"github.com/wordcross/wordcross-backend/config"
	"github.com/wordcross/wordcross-backend/internal/core"
	"github.com/wordcross/wordcross-backend/internal/storage"
)

// SiteHandler holds dependencies for site CRUD handlers.
type SiteHandler struct {
	Store storage.Store
	Cfg   *config.Config
}

// NewSiteHandler creates a new SiteHandler.
func NewSiteHandler(store storage.Store, cfg *config.Config) *SiteHandler {
	return &SiteHandler{
		Store: store,
		Cfg:   cfg,
	}
}

// ListSites returns sites with offset/limit pagination. The full list is
// loaded and sliced in memory; the response shape stays stable if that ever
// moves into the store.
func (h *SiteHandler) ListSites(c *gin.Context) {
	pq, err := core.ParsePageQuery(c.Request.URL.Query())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sites, err := h.Store.ListSites(c.Request.Context())
	if err != nil {
		customLog.Warnf("Failed to list sites: %v", err)
		_ = c.Error(err)
		return
	}

	total := len(sites)
	start, end := pq.Bounds(total)

	c.JSON(http.StatusOK, models.SiteListResponse{
		Sites:      sites[start:end],
		Total:      total,
		Page:       pq.Page,
		Limit:      pq.Limit,
		TotalPages: pq.TotalPages(total),
	})
}

// GetSite returns a single site by id.
func (h *SiteHandler) GetSite(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	site, err := h.Store.GetSiteByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrSiteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
			return
		}
		customLog.Warnf("Failed to fetch site %d: %v", id, err)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, site)
}

// CreateSite creates a new site. Name is required; domain, when present,
// must be globally unique.
func (h *SiteHandler) CreateSite(c *gin.Context) {
	var req models.CreateSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		customLog.Warnf("CreateSite binding error: %v", err)
		_ = c.Error(err)
		return
	}

	site, err := h.Store.CreateSite(c.Request.Context(), storage.CreateSiteInput{
		Name:        req.Name,
		Domain:      req.Domain,
		Description: req.Description,
	})
	if err != nil {
		customLog.Warnf("Failed to create site '%s': %v", req.Name, err)
		_ = c.Error(err) // ErrDomainExists maps to 409, the rest to 500
		return
	}

	c.JSON(http.StatusCreated, site)
}

// UpdateSite applies a partial update. An empty body is a no-op returning
// the current site.
func (h *SiteHandler) UpdateSite(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		customLog.Warnf("UpdateSite binding error: %v", err)
		_ = c.Error(err)
		return
	}

	site, err := h.Store.UpdateSite(c.Request.Context(), id, storage.UpdateSiteInput{
		Name:        req.Name,
		Domain:      req.Domain,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, storage.ErrSiteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
			return
		}
		customLog.Warnf("Failed to update site %d: %v", id, err)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, site)
}

// DeleteSite removes a site and, via store-level cascade, everything under it.
func (h *SiteHandler) DeleteSite(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	deleted, err := h.Store.DeleteSite(c.Request.Context(), id)
	if err != nil {
		customLog.Warnf("Failed to delete site %d: %v", id, err)
		_ = c.Error(err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// BulkDeleteSites deletes each listed id in sequence, best effort: ids that
// no longer exist are skipped silently and the call still succeeds. A store
// failure aborts the loop.
func (h *SiteHandler) BulkDeleteSites(c *gin.Context) {
	var req models.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		customLog.Warnf("BulkDeleteSites binding error: %v", err)
		_ = c.Error(err)
		return
	}

	for _, id := range req.IDs {
		if _, err := h.Store.DeleteSite(c.Request.Context(), id); err != nil {
			customLog.Warnf("Bulk delete failed at site %d: %v", id, err)
			_ = c.Error(err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
