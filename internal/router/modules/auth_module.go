package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/eventku/auth-api/internal/interface/http"
	"github.com/eventku/auth-api/internal/interface/middleware"
	"github.com/eventku/auth-api/pkg/helpers"
)

// AuthModule wires the authentication endpoints.
// Public: POST /api/auth/register, POST /api/auth/login, POST /api/auth/activation
// Protected: GET /api/auth/me
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/auth/register", m.Handler.Register)
	rg.POST("/auth/login", m.Handler.Login)
	rg.POST("/auth/activation", m.Handler.Activation)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.GET("/auth/me", m.Handler.Me)
	}
}
