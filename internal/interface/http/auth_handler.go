package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eventku/auth-api/internal/application"
	"github.com/eventku/auth-api/internal/interface/middleware"
	"github.com/eventku/auth-api/pkg/response"
	"github.com/eventku/auth-api/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.Service, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type loginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type activationRequest struct {
	Code string `json:"code" binding:"required"`
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var in application.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Register(c.Request.Context(), in)
	if err != nil {
		var verr *application.ValidationError
		switch {
		case errors.As(err, &verr):
			response.Error(c, http.StatusBadRequest, verr.Error(), verr.Details())
		case errors.Is(err, application.ErrDuplicateUser):
			response.Error(c, http.StatusBadRequest, err.Error(), nil)
		default:
			h.Logger.WithError(err).Error("registration failed")
			response.Error(c, http.StatusInternalServerError, "registration failed", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, u, "registration successful")
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	token, _, err := h.Svc.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Error(c, http.StatusForbidden, "user not found", nil)
		case errors.Is(err, application.ErrWrongPassword):
			response.Error(c, http.StatusForbidden, "wrong password", nil)
		default:
			h.Logger.WithError(err).Error("login failed")
			response.Error(c, http.StatusInternalServerError, "login failed", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, token, "login success")
}

// Activation POST /api/auth/activation
// An unknown code is accepted as a no-op: the response is successful with a
// null record.
func (h *AuthHandler) Activation(c *gin.Context) {
	var req activationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Activate(c.Request.Context(), req.Code)
	if err != nil {
		h.Logger.WithError(err).Error("activation failed")
		response.Error(c, http.StatusInternalServerError, "activation failed", nil)
		return
	}
	if u == nil {
		response.Success(c, http.StatusOK, nil, "no account matched that code")
		return
	}
	response.Success(c, http.StatusOK, u, "account activated")
}

// Me GET /api/auth/me (auth required)
func (h *AuthHandler) Me(c *gin.Context) {
	sub, ok := middleware.SubjectFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	u, err := h.Svc.GetProfile(c.Request.Context(), sub.UserID)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.Logger.WithError(err).Error("profile lookup failed")
		response.Error(c, http.StatusInternalServerError, "profile lookup failed", nil)
		return
	}
	response.Success(c, http.StatusOK, u, "user profile")
}
