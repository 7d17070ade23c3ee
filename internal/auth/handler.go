package auth

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

// Register - POST /users
func (h *Handler) Register(c *gin.Context) {
	var in RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input: " + err.Error()})
		return
	}

	user, err := h.svc.Register(in)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailExists):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email already exists"})
		case errors.Is(err, ErrInvalidRole):
			c.JSON(http.StatusBadRequest, gin.H{"message": "role must be hr or employee"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "registration failed", "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered", "user": user})
}

// Login - POST /auth/login
func (h *Handler) Login(c *gin.Context) {
	var in LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input: " + err.Error()})
		return
	}

	tokens, user, err := h.svc.Login(in)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "login failed", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tokens": tokens, "user": user})
}

// Refresh - POST /auth/refresh
func (h *Handler) Refresh(c *gin.Context) {
	var body struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "refreshToken is required"})
		return
	}

	access, err := h.svc.Refresh(body.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": access})
}

// GetRole - GET /users/:email/role
// Unknown emails report {role: null} rather than a 404.
func (h *Handler) GetRole(c *gin.Context) {
	role, err := h.svc.GetRole(c.Param("email"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "role lookup failed", "error": err.Error()})
		return
	}

	if role == "" {
		c.JSON(http.StatusOK, gin.H{"role": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"role": role})
}

// UpdateProfile - PATCH /users/:email/profile
// Callers can only edit their own profile.
func (h *Handler) UpdateProfile(c *gin.Context) {
	email := c.Param("email")

	caller, exists := c.Get("email")
	if !exists || caller.(string) != email {
		c.JSON(http.StatusForbidden, gin.H{"message": "cannot edit another user's profile"})
		return
	}

	var in UpdateProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input: " + err.Error()})
		return
	}

	if err := h.svc.UpdateProfile(email, in); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "profile update failed", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "profile updated"})
}
