package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/placeshare/backend/pkg/helpers"
	"github.com/placeshare/backend/pkg/response"
)

// CtxUserIDKey is the context key the gate sets for downstream handlers.
const CtxUserIDKey = "userID"

// Auth extracts and verifies the bearer token from the Authorization header.
// Any failure (missing header, malformed value, bad signature, expiry) aborts
// with 403. CORS pre-flight requests bypass the gate unconditionally.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			response.AbortError(c, http.StatusForbidden, "Authentication failed!")
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.AbortError(c, http.StatusForbidden, "Authentication failed!")
			return
		}

		c.Set(CtxUserIDKey, claims.UserID)
		c.Set("userEmail", claims.Email)
		c.Next()
	}
}

// bearerToken parses an Authorization header of the form "Bearer <token>".
func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
