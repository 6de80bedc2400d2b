// api/handlers/auth_handler.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wordcross/wordcross-backend/api/models"
	"github.com/wordcross/wordcross-backend/config"
	"github.com/wordcross/wordcross-backend/internal/auth"
	"github.com/wordcross/wordcross-backend/internal/logger"
	"github.com/wordcross/wordcross-backend/internal/storage"
)

var (
	customLog = logger.NewLogger()
)

// AuthHandler holds dependencies for authentication handlers.
type AuthHandler struct {
	Store storage.Store
	Cfg   *config.Config
}

// NewAuthHandler creates a new AuthHandler with dependencies.
func NewAuthHandler(store storage.Store, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		Store: store,
		Cfg:   cfg,
	}
}

// Login verifies admin credentials, sets the session cookie and returns the
// token. Unknown emails and wrong passwords produce the same message; only a
// deactivated account gets its own, per the product requirement.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		customLog.Warnf("Login binding error: %v", err)
		_ = c.Error(err) // Let middleware handle
		return
	}

	user, err := h.Store.GetAdminUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			customLog.Warnf("Login attempt for unknown email %s", req.Email)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		customLog.Warnf("Login failed for email %s: %v", req.Email, err)
		_ = c.Error(err)
		return
	}

	if !user.IsActive {
		customLog.Warnf("Login attempt for deactivated account %s", user.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account is deactivated"})
		return
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		customLog.Warnf("Login attempt failed for email %s: invalid password", user.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	tokenString, err := auth.GenerateJWT(user, h.Cfg.JWTSecret, h.Cfg.JWTExpiration)
	if err != nil {
		customLog.Warnf("Failed to generate JWT for user %d: %v", user.ID, err)
		_ = c.Error(err)
		return
	}

	http.SetCookie(c.Writer, auth.SessionCookie(tokenString, h.Cfg.JWTExpiration, h.Cfg.IsProduction()))

	c.JSON(http.StatusOK, models.LoginResponse{
		Success: true,
		User: models.SessionUser{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
		},
		Token: tokenString,
	})
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	http.SetCookie(c.Writer, auth.LogoutCookie(h.Cfg.IsProduction()))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}

// LogoutRedirect handles browser logouts: clear the cookie, back to login.
func (h *AuthHandler) LogoutRedirect(c *gin.Context) {
	http.SetCookie(c.Writer, auth.LogoutCookie(h.Cfg.IsProduction()))
	c.Redirect(http.StatusFound, "/auth/login")
}
