package assignment

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

// Submit - POST /assigned-assets/request (public)
func (h *Handler) Submit(c *gin.Context) {
	var in SubmitRequestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input: " + err.Error()})
		return
	}

	req, err := h.svc.Submit(c.Request.Context(), in, middleware.GetIPFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrAssetNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Asset not found"})
		case errors.Is(err, ErrRequesterNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "requester not found"})
		case errors.Is(err, ErrOutOfStock):
			c.JSON(http.StatusBadRequest, gin.H{"message": "asset is out of stock"})
		case errors.Is(err, ErrDuplicatePending):
			c.JSON(http.StatusConflict, gin.H{"message": "a pending request already exists for this asset"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to submit request", "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Asset requested", "insertedId": req.ID, "request": req})
}

// Approve - PATCH /assigned-assets/:id/approve (hr)
func (h *Handler) Approve(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request ID"})
		return
	}

	result, err := h.svc.Approve(c.Request.Context(), uint(id), middleware.CallerEmail(c), middleware.GetIPFromContext(c))
	if err != nil {
		h.writeTransitionError(c, err, "failed to approve request")
		return
	}

	// Seat-limit soft block: success-shaped response with a blocked flag,
	// request left Pending. The caller upgrades the package and retries.
	if result.Blocked {
		c.JSON(http.StatusOK, gin.H{"blocked": true, "code": result.Code})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "request approved", "request": result.Request})
}

// Reject - PATCH /assigned-assets/:id/reject (hr)
func (h *Handler) Reject(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request ID"})
		return
	}

	req, err := h.svc.Reject(c.Request.Context(), uint(id), middleware.CallerEmail(c), middleware.GetIPFromContext(c))
	if err != nil {
		h.writeTransitionError(c, err, "failed to reject request")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "request rejected", "request": req})
}

// Return - PATCH /assigned-assets/:id/return (requester or owning hr)
func (h *Handler) Return(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request ID"})
		return
	}

	req, err := h.svc.Return(c.Request.Context(), uint(id), middleware.CallerEmail(c), middleware.GetIPFromContext(c))
	if err != nil {
		h.writeTransitionError(c, err, "failed to return asset")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "asset returned", "request": req})
}

// ListMine - GET /assigned-assets/mine?email=&search=&type=
func (h *Handler) ListMine(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		email = middleware.CallerEmail(c)
	}
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email is required"})
		return
	}

	requests, err := h.svc.ListMine(c.Request.Context(), MineFilters{
		Email:  email,
		Search: c.Query("search"),
		Type:   c.Query("type"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list requests", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, requests)
}

// ListAll - GET /assigned-assets (hr)
func (h *Handler) ListAll(c *gin.Context) {
	hrEmail := c.Query("hrEmail")
	if hrEmail == "" {
		hrEmail = middleware.CallerEmail(c)
	}

	requests, err := h.svc.ListByHR(c.Request.Context(), hrEmail)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list requests", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, requests)
}

func (h *Handler) writeTransitionError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrRequestNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "request not found"})
	case errors.Is(err, ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"message": "not allowed for this request"})
	case errors.Is(err, ErrInvalidState):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": fallback, "error": err.Error()})
	}
}
