package notification

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/assetverse/assetverse-backend/middleware"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// List - GET /notifications
func (h *Handler) List(c *gin.Context) {
	email := middleware.CallerEmail(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, err := h.svc.ListForUser(c.Request.Context(), email, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list notifications", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, items)
}

// MarkAsRead - PATCH /notifications/:id/read
func (h *Handler) MarkAsRead(c *gin.Context) {
	email := middleware.CallerEmail(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid notification ID"})
		return
	}

	if err := h.svc.MarkAsRead(c.Request.Context(), uint(id), email); err != nil {
		if errors.Is(err, ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to mark as read", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notification marked as read"})
}
