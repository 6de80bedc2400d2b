// api/handlers/page_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wordcross/wordcross-backend/api/models"
	"github.com/wordcross/wordcross-backend/config"
	"github.com/wordcross/wordcross-backend/internal/core"
	"github.com/wordcross/wordcross-backend/internal/domain"
	"github.com/wordcross/wordcross-backend/internal/storage"
)

// PageHandler holds dependencies for page CRUD handlers.
type PageHandler struct {
	Store storage.Store
	Cfg   *config.Config
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(store storage.Store, cfg *config.Config) *PageHandler {
	return &PageHandler{
		Store: store,
		Cfg:   cfg,
	}
}

// ListPages returns a paginated page listing. The 'siteId' query parameter is
// an optional filter; without it, pages are collected across every site, one
// store round trip per site.
func (h *PageHandler) ListPages(c *gin.Context) {
	pq, err := core.ParsePageQuery(c.Request.URL.Query())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()

	var pages []domain.Page
	if siteIDStr := c.Query("siteId"); siteIDStr != "" {
		siteID, err := strconv.ParseInt(siteIDStr, 10, 64)
		if err != nil || siteID < 1 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid 'siteId' parameter: must be a positive integer"})
			return
		}
		pages, err = h.Store.ListPagesBySite(ctx, siteID)
		if err != nil {
			customLog.Warnf("Failed to list pages for site %d: %v", siteID, err)
			_ = c.Error(err)
			return
		}
	} else {
		sites, err := h.Store.ListSites(ctx)
		if err != nil {
			customLog.Warnf("Failed to list sites for page listing: %v", err)
			_ = c.Error(err)
			return
		}
		pages = make([]domain.Page, 0)
		for _, site := range sites {
			sitePages, err := h.Store.ListPagesBySite(ctx, site.ID)
			if err != nil {
				customLog.Warnf("Failed to list pages for site %d: %v", site.ID, err)
				_ = c.Error(err)
				return
			}
			pages = append(pages, sitePages...)
		}
	}

	total := len(pages)
	start, end := pq.Bounds(total)

	c.JSON(http.StatusOK, models.PageListResponse{
		Pages:      pages[start:end],
		Total:      total,
		Page:       pq.Page,
		Limit:      pq.Limit,
		TotalPages: pq.TotalPages(total),
	})
}

// ListSitePages returns all pages of a site, newest first. With
// ?published=true only published pages come back.
func (h *PageHandler) ListSitePages(c *gin.Context) {
	siteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	// Confirm the site exists so a bad id answers 404 instead of an empty list.
	if _, err := h.Store.GetSiteByID(c.Request.Context(), siteID); err != nil {
		if errors.Is(err, storage.ErrSiteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
			return
		}
		customLog.Warnf("Failed to fetch site %d: %v", siteID, err)
		_ = c.Error(err)
		return
	}

	if c.Query("published") == "true" {
		list, err := h.Store.ListPublishedPagesBySite(c.Request.Context(), siteID)
		if err != nil {
			customLog.Warnf("Failed to list published pages for site %d: %v", siteID, err)
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"pages": list})
		return
	}

	list, err := h.Store.ListPagesBySite(c.Request.Context(), siteID)
	if err != nil {
		customLog.Warnf("Failed to list pages for site %d: %v", siteID, err)
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pages": list})
}

// GetPage returns a single page by id.
func (h *PageHandler) GetPage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	page, err := h.Store.GetPageByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrPageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
			return
		}
		customLog.Warnf("Failed to fetch page %d: %v", id, err)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// CreatePage creates a page under the site named in the URL. The slug must be
// lowercase kebab-case and unique within the site.
func (h *PageHandler) CreatePage(c *gin.Context) {
	siteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.CreatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		customLog.Warnf("CreatePage binding error: %v", err)
		_ = c.Error(err)
		return
	}

	if !core.IsValidSlug(req.Slug) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error": "Invalid slug: use lowercase letters, numbers and hyphens",
		})
		return
	}

	page, err := h.Store.CreatePage(c.Request.Context(), storage.CreatePageInput{
		SiteID:          siteID,
		Title:           req.Title,
		Slug:            req.Slug,
		Content:         req.Content,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		IsPublished:     req.IsPublished,
	})
	if err != nil {
		if errors.Is(err, storage.ErrSiteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
			return
		}
		customLog.Warnf("Failed to create page '%s' on site %d: %v", req.Slug, siteID, err)
		_ = c.Error(err) // ErrSlugExists maps to 409
		return
	}

	c.JSON(http.StatusCreated, page)
}

// UpdatePage applies a partial update. An empty body is a no-op returning
// the current page.
func (h *PageHandler) UpdatePage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		customLog.Warnf("UpdatePage binding error: %v", err)
		_ = c.Error(err)
		return
	}

	if req.Slug != nil && !core.IsValidSlug(*req.Slug) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error": "Invalid slug: use lowercase letters, numbers and hyphens",
		})
		return
	}

	page, err := h.Store.UpdatePage(c.Request.Context(), id, storage.UpdatePageInput{
		Title:           req.Title,
		Slug:            req.Slug,
		Content:         req.Content,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		IsPublished:     req.IsPublished,
	})
	if err != nil {
		if errors.Is(err, storage.ErrPageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
			return
		}
		customLog.Warnf("Failed to update page %d: %v", id, err)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// DeletePage removes a page and, via store-level cascade, its components.
func (h *PageHandler) DeletePage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	deleted, err := h.Store.DeletePage(c.Request.Context(), id)
	if err != nil {
		customLog.Warnf("Failed to delete page %d: %v", id, err)
		_ = c.Error(err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
