package reports

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/assetverse/assetverse-backend/middleware"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Analytics - GET /hr/analytics?companyName=
func (h *Handler) Analytics(c *gin.Context) {
	companyName := c.Query("companyName")
	if companyName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "companyName is required"})
		return
	}

	result, err := h.svc.Analytics(c.Request.Context(), companyName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to compute analytics", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Export - GET /hr/reports/export?type=assets|requests&format=csv|excel|pdf (hr)
func (h *Handler) Export(c *gin.Context) {
	hr, ok := middleware.CallerUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthenticated"})
		return
	}

	req := ExportRequest{
		Type:    c.DefaultQuery("type", ReportTypeAssets),
		Format:  c.DefaultQuery("format", FormatCSV),
		HREmail: hr.Email,
	}

	data, filename, mimeType, err := h.svc.Export(c.Request.Context(), req, middleware.GetIPFromContext(c))
	if err != nil {
		if errors.Is(err, ErrUnsupportedReport) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "unsupported report type or format"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to export report", "error": err.Error()})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, mimeType, data)
}
