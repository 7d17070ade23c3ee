package payment

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

// ListPackages - GET /packages
func (h *Handler) ListPackages(c *gin.Context) {
	packages, err := h.svc.ListPackages(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list packages", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, packages)
}

// StartUpgrade - POST /payments/order (hr)
func (h *Handler) StartUpgrade(c *gin.Context) {
	hr, ok := middleware.CallerUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthenticated"})
		return
	}

	var in CreateOrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input: " + err.Error()})
		return
	}

	order, err := h.svc.StartUpgrade(c.Request.Context(), hr.Email, in, middleware.GetIPFromContext(c))
	if err != nil {
		if errors.Is(err, ErrPackageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "package not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create payment order", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, order)
}

// VerifyAndUpgrade - POST /payments/verify (hr)
func (h *Handler) VerifyAndUpgrade(c *gin.Context) {
	hr, ok := middleware.CallerUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthenticated"})
		return
	}

	var in VerifyPaymentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input: " + err.Error()})
		return
	}

	p, err := h.svc.VerifyAndUpgrade(c.Request.Context(), hr.Email, in, middleware.GetIPFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrPaymentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "payment not found"})
		case errors.Is(err, ErrInvalidSignature):
			c.JSON(http.StatusBadRequest, gin.H{"message": "payment signature verification failed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to verify payment", "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "payment verified and package upgraded", "payment": p})
}

// History - GET /payments (hr)
func (h *Handler) History(c *gin.Context) {
	payments, err := h.svc.History(c.Request.Context(), middleware.CallerEmail(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch payment history", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, payments)
}

// Receipt - GET /payments/:id/receipt (hr)
func (h *Handler) Receipt(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payment ID"})
		return
	}

	data, filename, err := h.svc.Receipt(c.Request.Context(), uint(id), middleware.CallerEmail(c))
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "payment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to generate receipt", "error": err.Error()})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", data)
}
