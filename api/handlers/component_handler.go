// api/handlers/component_handler.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wordcross/wordcross-backend/api/models"
	"github.com/wordcross/wordcross-backend/config"
	"github.com/wordcross/wordcross-backend/internal/domain"
	"github.com/wordcross/wordcross-backend/internal/storage"
)

// ComponentHandler holds dependencies for page component handlers.
type ComponentHandler struct {
	Store storage.Store
	Cfg   *config.Config
}

// NewComponentHandler creates a new ComponentHandler.
func NewComponentHandler(store storage.Store, cfg *config.Config) *ComponentHandler {
	return &ComponentHandler{
		Store: store,
		Cfg:   cfg,
	}
}

// ListComponents returns a page's components ordered by sort_order ascending,
// id ascending on ties.
func (h *ComponentHandler) ListComponents(c *gin.Context) {
	pageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.Store.GetPageByID(c.Request.Context(), pageID); err != nil {
		if errors.Is(err, storage.ErrPageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
			return
		}
		customLog.Warnf("Failed to fetch page %d: %v", pageID, err)
		_ = c.Error(err)
		return
	}

	components, err := h.Store.ListComponentsByPage(c.Request.Context(), pageID)
	if err != nil {
		customLog.Warnf("Failed to list components for page %d: %v", pageID, err)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"components": components})
}

// CreateComponent adds a component to a page. The payload is validated and
// sanitized against the declared component type before persisting.
func (h *ComponentHandler) CreateComponent(c *gin.Context) {
	pageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.CreateComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		customLog.Warnf("CreateComponent binding error: %v", err)
		_ = c.Error(err)
		return
	}

	componentType := domain.ComponentType(req.ComponentType)
	data, err := domain.ValidateComponentData(componentType, req.ComponentData)
	if err != nil {
		customLog.Warnf("Invalid component payload (%s) on page %d: %v", req.ComponentType, pageID, err)
		_ = c.Error(err) // domain validation errors map to 400
		return
	}

	component, err := h.Store.CreateComponent(c.Request.Context(), storage.CreateComponentInput{
		PageID:        pageID,
		ComponentType: componentType,
		ComponentData: data,
		SortOrder:     req.SortOrder,
	})
	if err != nil {
		if errors.Is(err, storage.ErrPageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
			return
		}
		customLog.Warnf("Failed to create %s component on page %d: %v", req.ComponentType, pageID, err)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, component)
}

// UpdateComponent replaces a component's payload and/or sort order. The new
// payload is validated against the component's existing type; the type itself
// never changes after creation.
func (h *ComponentHandler) UpdateComponent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		customLog.Warnf("UpdateComponent binding error: %v", err)
		_ = c.Error(err)
		return
	}

	input := storage.UpdateComponentInput{SortOrder: req.SortOrder}

	if len(req.ComponentData) > 0 {
		existing, err := h.Store.GetComponentByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, storage.ErrComponentNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Component not found"})
				return
			}
			customLog.Warnf("Failed to fetch component %d: %v", id, err)
			_ = c.Error(err)
			return
		}

		data, err := domain.ValidateComponentData(existing.ComponentType, req.ComponentData)
		if err != nil {
			customLog.Warnf("Invalid component payload (%s) for component %d: %v", existing.ComponentType, id, err)
			_ = c.Error(err)
			return
		}
		input.ComponentData = data
	}

	component, err := h.Store.UpdateComponent(c.Request.Context(), id, input)
	if err != nil {
		if errors.Is(err, storage.ErrComponentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Component not found"})
			return
		}
		customLog.Warnf("Failed to update component %d: %v", id, err)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, component)
}

// UpdateComponentOrder sets a single component's sort_order. Siblings are not
// reflowed; ordering ties resolve by id.
func (h *ComponentHandler) UpdateComponentOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateComponentOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		customLog.Warnf("UpdateComponentOrder binding error: %v", err)
		_ = c.Error(err)
		return
	}

	updated, err := h.Store.UpdateComponentOrder(c.Request.Context(), id, *req.SortOrder)
	if err != nil {
		customLog.Warnf("Failed to reorder component %d: %v", id, err)
		_ = c.Error(err)
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"error": "Component not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteComponent removes a component.
func (h *ComponentHandler) DeleteComponent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	deleted, err := h.Store.DeleteComponent(c.Request.Context(), id)
	if err != nil {
		customLog.Warnf("Failed to delete component %d: %v", id, err)
		_ = c.Error(err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Component not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
