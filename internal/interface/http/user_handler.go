package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eventku/auth-api/internal/application"
	"github.com/eventku/auth-api/pkg/response"
)

type UserHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

// Search GET /api/users/search?q=&size= (auth required)
func (h *UserHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error(c, http.StatusBadRequest, "q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	hits, err := h.Svc.SearchUsers(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("user search failed")
		response.Error(c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results")
}
