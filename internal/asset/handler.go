package asset

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/assetverse/assetverse-backend/internal/auth"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func listFiltersFromQuery(c *gin.Context) ListFilters {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	return ListFilters{
		Search:      c.Query("search"),
		Type:        c.Query("type"),
		CompanyName: c.Query("companyName"),
		HREmail:     c.Query("hrEmail"),
		Page:        page,
		Limit:       limit,
	}
}

// Create - POST /assets (hr)
func (h *Handler) Create(c *gin.Context) {
	userVal, _ := c.Get("user")
	hr, ok := userVal.(auth.User)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthenticated"})
		return
	}

	var in CreateAssetInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input: " + err.Error()})
		return
	}

	a, err := h.svc.Create(c.Request.Context(), hr.Email, hr.CompanyName, in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create asset", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"insertedId": a.ID, "asset": a})
}

// List - GET /assets (public browse with filters)
func (h *Handler) List(c *gin.Context) {
	assets, total, err := h.svc.List(c.Request.Context(), listFiltersFromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list assets", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": assets, "total": total})
}

// ListAvailable - GET /assets/available (public, in-stock only)
func (h *Handler) ListAvailable(c *gin.Context) {
	filters := listFiltersFromQuery(c)
	filters.AvailableOnly = true

	assets, total, err := h.svc.List(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list assets", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": assets, "total": total})
}

// GetByID - GET /assets/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid asset ID"})
		return
	}

	a, err := h.svc.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Asset not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, a)
}

// Update - PATCH /assets/:id (hr)
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid asset ID"})
		return
	}

	var in UpdateAssetInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input: " + err.Error()})
		return
	}

	if err := h.svc.Update(c.Request.Context(), uint(id), in); err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Asset not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "asset updated"})
}

// Delete - DELETE /assets/:id (hr)
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid asset ID"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Asset not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "asset deleted"})
}
