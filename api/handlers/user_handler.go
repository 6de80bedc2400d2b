// api/handlers/user_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wordcross/wordcross-backend/internal/storage"
)

// UserHandler serves the admin user listing.
type UserHandler struct {
	Store storage.Store
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(store storage.Store) *UserHandler {
	return &UserHandler{Store: store}
}

// ListUsers returns all admin accounts. Password hashes never leave the
// store for this listing.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.Store.ListAdminUsers(c.Request.Context())
	if err != nil {
		customLog.Warnf("Failed to list admin users: %v", err)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}
