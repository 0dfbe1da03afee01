package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/eventku/auth-api/pkg/helpers"
	"github.com/eventku/auth-api/pkg/response"
)

// Subject is the authenticated principal extracted from a verified token.
type Subject struct {
	UserID string
	Role   string
}

const subjectKey = "auth_subject"

// SubjectFrom returns the authenticated subject placed into the context by
// Auth. The second return is false on unauthenticated requests.
func SubjectFrom(c *gin.Context) (Subject, bool) {
	v, ok := c.Get(subjectKey)
	if !ok {
		return Subject{}, false
	}
	sub, ok := v.(Subject)
	return sub, ok
}

// Auth verifies the bearer token and injects the subject into the request
// context. Handlers never read the Authorization header themselves.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.AbortError(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid access token", nil)
			return
		}
		c.Set(subjectKey, Subject{UserID: claims.UserID, Role: claims.Role})
		c.Next()
	}
}
