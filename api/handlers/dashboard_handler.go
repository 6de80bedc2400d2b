// api/handlers/dashboard_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wordcross/wordcross-backend/api/models"
	"github.com/wordcross/wordcross-backend/internal/storage"
)

// DashboardHandler serves aggregate statistics for the admin dashboard.
type DashboardHandler struct {
	Store storage.Store
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(store storage.Store) *DashboardHandler {
	return &DashboardHandler{Store: store}
}

// Stats counts sites and partitions pages by publish state. Pages are loaded
// site by site, one store round trip each; fine at admin-dashboard scale.
func (h *DashboardHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	sites, err := h.Store.ListSites(ctx)
	if err != nil {
		customLog.Warnf("Failed to list sites for dashboard stats: %v", err)
		_ = c.Error(err)
		return
	}

	stats := models.DashboardStatsResponse{TotalSites: len(sites)}

	for _, site := range sites {
		pages, err := h.Store.ListPagesBySite(ctx, site.ID)
		if err != nil {
			customLog.Warnf("Failed to list pages for site %d: %v", site.ID, err)
			_ = c.Error(err)
			return
		}

		stats.TotalPages += len(pages)
		for _, page := range pages {
			if page.IsPublished {
				stats.PublishedPages++
			} else {
				stats.DraftPages++
			}
		}
	}

	c.JSON(http.StatusOK, stats)
}
