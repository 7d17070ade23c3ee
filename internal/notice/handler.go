package notice

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

func writeValidationError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, ErrTitleTooShort),
		errors.Is(err, ErrContentTooShort),
		errors.Is(err, ErrInvalidPriority):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return true
	}
	return false
}

// Create - POST /notices (hr)
func (h *Handler) Create(c *gin.Context) {
	hr, ok := middleware.CallerUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthenticated"})
		return
	}

	var in CreateNoticeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input: " + err.Error()})
		return
	}

	n, err := h.svc.Create(c.Request.Context(), hr.Email, hr.CompanyName, in, middleware.GetIPFromContext(c))
	if err != nil {
		if writeValidationError(c, err) {
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create notice", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "notice created", "notice": n})
}

// Update - PATCH /notices/:id (hr, owner only)
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid notice ID"})
		return
	}

	var in UpdateNoticeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input: " + err.Error()})
		return
	}

	n, err := h.svc.Update(c.Request.Context(), uint(id), middleware.CallerEmail(c), in)
	if err != nil {
		if writeValidationError(c, err) {
			return
		}
		switch {
		case errors.Is(err, ErrNoticeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "notice not found"})
		case errors.Is(err, ErrNotNoticeOwner):
			c.JSON(http.StatusForbidden, gin.H{"message": "not the owner of this notice"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update notice", "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notice updated", "notice": n})
}

// Delete - DELETE /notices/:id (hr, owner only)
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid notice ID"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), uint(id), middleware.CallerEmail(c), middleware.GetIPFromContext(c)); err != nil {
		switch {
		case errors.Is(err, ErrNoticeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "notice not found"})
		case errors.Is(err, ErrNotNoticeOwner):
			c.JSON(http.StatusForbidden, gin.H{"message": "not the owner of this notice"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete notice", "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notice deleted"})
}

// GetByID - GET /notices/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid notice ID"})
		return
	}

	n, err := h.svc.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, ErrNoticeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "notice not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch notice", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, n)
}

// List - GET /notices?companyName= (authenticated)
func (h *Handler) List(c *gin.Context) {
	user, ok := middleware.CallerUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthenticated"})
		return
	}

	companyName := c.Query("companyName")
	if companyName == "" {
		companyName = user.CompanyName
	}
	if companyName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "companyName is required"})
		return
	}

	notices, err := h.svc.ListForCompany(c.Request.Context(), companyName, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list notices", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, notices)
}

// MarkAsRead - POST /notices/:id/read (authenticated)
func (h *Handler) MarkAsRead(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid notice ID"})
		return
	}

	result, err := h.svc.MarkAsRead(c.Request.Context(), uint(id), middleware.CallerEmail(c))
	if err != nil {
		if errors.Is(err, ErrNoticeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "notice not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to mark notice as read", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notice marked as read", "alreadyRead": result.AlreadyRead})
}
