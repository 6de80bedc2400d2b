// api/handlers/view_handler.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wordcross/wordcross-backend/api/middleware"
	"github.com/wordcross/wordcross-backend/api/models"
	"github.com/wordcross/wordcross-backend/internal/storage"
)

// ViewHandler renders the server-side admin pages. The templates only read
// data; mutations go through the JSON API from the browser.
type ViewHandler struct {
	Store storage.Store
}

// NewViewHandler creates a new ViewHandler.
func NewViewHandler(store storage.Store) *ViewHandler {
	return &ViewHandler{Store: store}
}

// LoginPage renders the sign-in form. Visitors with a live session go
// straight to the dashboard.
func (h *ViewHandler) LoginPage(c *gin.Context) {
	if middleware.CurrentUser(c) != nil {
		c.Redirect(http.StatusFound, "/admin/dashboard")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{"Title": "Sign in"})
}

// Dashboard renders the stats cards.
func (h *ViewHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	sites, err := h.Store.ListSites(ctx)
	if err != nil {
		customLog.Warnf("Failed to list sites for dashboard view: %v", err)
		c.String(http.StatusInternalServerError, "Something went wrong")
		return
	}

	stats := models.DashboardStatsResponse{TotalSites: len(sites)}
	for _, site := range sites {
		pages, err := h.Store.ListPagesBySite(ctx, site.ID)
		if err != nil {
			customLog.Warnf("Failed to list pages for site %d: %v", site.ID, err)
			c.String(http.StatusInternalServerError, "Something went wrong")
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

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Title": "Dashboard",
		"User":  middleware.CurrentUser(c),
		"Stats": stats,
	})
}

// SitesPage renders the site listing.
func (h *ViewHandler) SitesPage(c *gin.Context) {
	sites, err := h.Store.ListSites(c.Request.Context())
	if err != nil {
		customLog.Warnf("Failed to list sites for sites view: %v", err)
		c.String(http.StatusInternalServerError, "Something went wrong")
		return
	}

	c.HTML(http.StatusOK, "sites.html", gin.H{
		"Title": "Sites",
		"User":  middleware.CurrentUser(c),
		"Sites": sites,
	})
}

// NewSitePage renders the site creation form.
func (h *ViewHandler) NewSitePage(c *gin.Context) {
	c.HTML(http.StatusOK, "site_form.html", gin.H{
		"Title": "New site",
		"User":  middleware.CurrentUser(c),
	})
}

// SiteDetailPage renders one site with its pages.
func (h *ViewHandler) SiteDetailPage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	site, err := h.Store.GetSiteByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrSiteNotFound) {
			c.String(http.StatusNotFound, "Site not found")
			return
		}
		customLog.Warnf("Failed to fetch site %d for detail view: %v", id, err)
		c.String(http.StatusInternalServerError, "Something went wrong")
		return
	}

	pages, err := h.Store.ListPagesBySite(c.Request.Context(), id)
	if err != nil {
		customLog.Warnf("Failed to list pages for site %d: %v", id, err)
		c.String(http.StatusInternalServerError, "Something went wrong")
		return
	}

	c.HTML(http.StatusOK, "site_detail.html", gin.H{
		"Title": site.Name,
		"User":  middleware.CurrentUser(c),
		"Site":  site,
		"Pages": pages,
	})
}
