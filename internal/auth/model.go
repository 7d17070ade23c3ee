package auth

import (
	"time"
)

// User is a single account. HR accounts additionally own a company, a
// subscription package and the employee-seat counter; employee accounts pick
// up CompanyName/HREmail when they get affiliated to a company.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:150;not null" json:"name"`
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;not null;index" json:"role"` // hr | employee
	DateOfBirth  string `gorm:"size:20" json:"dateOfBirth,omitempty"`
	ProfileImage string `gorm:"size:500" json:"profileImage,omitempty"`
	Phone        string `gorm:"size:20" json:"phone,omitempty"`
	Position     string `gorm:"size:100" json:"position,omitempty"`

	// Company affiliation (set for HR at registration, for employees on approval)
	CompanyName string `gorm:"size:150;index" json:"companyName,omitempty"`
	CompanyLogo string `gorm:"size:500" json:"companyLogo,omitempty"`
	HREmail     string `gorm:"size:255;index" json:"hrEmail,omitempty"`

	// HR subscription fields
	PackageLimit     int    `gorm:"default:0" json:"packageLimit,omitempty"`
	CurrentEmployees int    `gorm:"default:0" json:"currentEmployees"`
	Subscription     string `gorm:"size:30" json:"subscription,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// RegisterInput carries the registration payload.
type RegisterInput struct {
	DisplayName  string `json:"displayName" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	Role         string `json:"role" binding:"required"`
	DateOfBirth  string `json:"dateOfBirth"`
	ProfileImage string `json:"profileImage"`
	CompanyName  string `json:"companyName"`
	CompanyLogo  string `json:"companyLogo"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileInput struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	ProfileImage string `json:"profileImage"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
