package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventku/auth-api/internal/interface/middleware"
	"github.com/eventku/auth-api/pkg/helpers"
)

func newProtectedRouter(jwt *helpers.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/protected", middleware.Auth(jwt), func(c *gin.Context) {
		sub, ok := middleware.SubjectFrom(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"uid": sub.UserID, "role": sub.Role})
	})
	return engine
}

func TestAuthMissingHeader(t *testing.T) {
	engine := newProtectedRouter(helpers.NewJWTManager("secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	res := httptest.NewRecorder()
	engine.ServeHTTP(res, req)

	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestAuthInvalidToken(t *testing.T) {
	engine := newProtectedRouter(helpers.NewJWTManager("secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	res := httptest.NewRecorder()
	engine.ServeHTTP(res, req)

	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestAuthInjectsSubject(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	engine := newProtectedRouter(jwt)

	token, _, err := jwt.Generate("user-1", "user")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res := httptest.NewRecorder()
	engine.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), `"uid":"user-1"`)
	assert.Contains(t, res.Body.String(), `"role":"user"`)
}
