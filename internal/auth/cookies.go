// internal/auth/cookies.go
package auth

import (
	"net/http"
	"time"
)

// SessionCookie builds the session cookie carrying a freshly issued token.
// HttpOnly and SameSite=Strict always; Secure only in production-like
// deployments where the admin UI is served over HTTPS.
func SessionCookie(token string, ttl time.Duration, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// LogoutCookie expires the session cookie immediately.
func LogoutCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}
