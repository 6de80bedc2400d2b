// api/middleware/error_handler.go
package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10" // Import validator for binding errors

	"github.com/wordcross/wordcross-backend/internal/auth"
	"github.com/wordcross/wordcross-backend/internal/domain"
	"github.com/wordcross/wordcross-backend/internal/storage"
)

// ErrorHandler creates a Gin middleware for centralized error handling.
// Handlers attach errors via c.Error; whatever they did not already answer
// themselves is mapped here. Store/infrastructure failures are logged with
// the request id and surfaced as a generic 500 with no internal detail.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Process request using subsequent handlers
		c.Next()

		// Check if any errors were attached during handler execution
		if len(c.Errors) == 0 {
			return // No errors, nothing to do
		}

		// We only handle the last error for the response.
		err := c.Errors.Last().Err

		customLog.Warnf("[ErrorHandler] request_id=%s error: %v | Type: %T", RequestID(c), err, err)

		// --- Map error to HTTP status code and user message ---
		var statusCode int
		var userMessage string

		switch {
		case errors.Is(err, storage.ErrSiteNotFound):
			statusCode = http.StatusNotFound
			userMessage = "Site not found"
		case errors.Is(err, storage.ErrPageNotFound):
			statusCode = http.StatusNotFound
			userMessage = "Page not found"
		case errors.Is(err, storage.ErrComponentNotFound):
			statusCode = http.StatusNotFound
			userMessage = "Component not found"
		case errors.Is(err, storage.ErrUserNotFound):
			statusCode = http.StatusNotFound
			userMessage = "User not found"
		case errors.Is(err, storage.ErrDomainExists),
			errors.Is(err, storage.ErrSlugExists),
			errors.Is(err, storage.ErrEmailExists):
			statusCode = http.StatusConflict
			userMessage = err.Error() // Use the error message directly for conflicts
		case errors.Is(err, domain.ErrUnknownComponentType),
			errors.Is(err, domain.ErrInvalidComponentData):
			statusCode = http.StatusBadRequest
			userMessage = err.Error()
		case errors.Is(err, auth.ErrTokenMalformed),
			errors.Is(err, auth.ErrTokenInvalid),
			errors.Is(err, auth.ErrTokenExpired),
			errors.Is(err, auth.ErrTokenClaimsInvalid),
			errors.Is(err, auth.ErrUnexpectedSigningMethod):
			// Token problems all collapse to one message; the client cannot
			// distinguish an absent token from a malformed or expired one.
			statusCode = http.StatusUnauthorized
			userMessage = "Authentication required"
		default:
			var validationErrs validator.ValidationErrors
			var syntaxErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &validationErrs) {
				// Handle validation errors from c.ShouldBindJSON
				statusCode = http.StatusBadRequest
				userMessage = "Validation failed. Please check your input."
				for _, fe := range validationErrs {
					customLog.Printf("Validation Error: Field %s failed on %s", fe.Field(), fe.Tag())
				}
			} else if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) ||
				errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				// Malformed or empty request bodies from c.ShouldBindJSON
				statusCode = http.StatusBadRequest
				userMessage = "Invalid request body"
			} else {
				// Assume internal server error for unexpected types
				statusCode = http.StatusInternalServerError
				userMessage = "An unexpected internal server error occurred."
				customLog.Warnf("Unhandled error type: %T, Error: %v", err, err)
			}
		}

		// Abort execution and send JSON response
		if !c.Writer.Written() {
			c.AbortWithStatusJSON(statusCode, gin.H{"error": userMessage})
		}
	}
}
