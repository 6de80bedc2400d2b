// api/models/auth_models.go
package models

import "github.com/golang-jwt/jwt/v5"

// --- Auth Request/Response Structs ---

// LoginRequest defines the structure for the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// SessionUser is the safe subset of an admin user returned after login.
type SessionUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// LoginResponse defines the structure for the login response body
type LoginResponse struct {
	Success bool        `json:"success"`
	User    SessionUser `json:"user"`
	Token   string      `json:"token"`
}

// --- JWT Claims ---

// CustomClaims embeds the admin identity into the session token. Subject
// carries the user id as a string.
type CustomClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}
