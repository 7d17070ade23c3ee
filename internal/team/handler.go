package team

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// ListTeam - GET /company/:companyName/team
func (h *Handler) ListTeam(c *gin.Context) {
	companyName := c.Param("companyName")
	if companyName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "companyName is required"})
		return
	}

	members, err := h.svc.ListTeam(c.Request.Context(), companyName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list team", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, members)
}

// RemoveEmployee - DELETE /company/:companyName/team/:email (hr)
func (h *Handler) RemoveEmployee(c *gin.Context) {
	companyName := c.Param("companyName")
	employeeEmail := c.Param("email")

	caller, _ := c.Get("email")
	callerEmail, _ := caller.(string)

	ip, _ := c.Get("client_ip")
	ipStr, _ := ip.(string)

	err := h.svc.RemoveEmployee(c.Request.Context(), callerEmail, employeeEmail, companyName, ipStr)
	if err != nil {
		if errors.Is(err, ErrAffiliationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "no active affiliation for employee"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to remove employee", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "employee removed from team"})
}
