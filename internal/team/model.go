package team

import (
	"time"
)

const (
	StatusActive  = "active"
	StatusRemoved = "removed"
)

// Affiliation links an employee to a company. At most one active affiliation
// may exist per (employee, company) pair; the assignment module creates them
// on first approval and this module removes them.
type Affiliation struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	EmployeeEmail   string    `gorm:"size:255;not null;index:idx_affiliation_pair" json:"employeeEmail"`
	CompanyName     string    `gorm:"size:150;not null;index:idx_affiliation_pair" json:"companyName"`
	HREmail         string    `gorm:"size:255;not null;index" json:"hrEmail"`
	Status          string    `gorm:"size:20;not null;index" json:"status"` // active | removed
	AffiliationDate time.Time `gorm:"autoCreateTime" json:"affiliationDate"`
}

// TeamMember is one distinct employee in a company's team listing, joined
// with profile fields off the users table.
type TeamMember struct {
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	ProfileImage    string    `json:"profileImage,omitempty"`
	DateOfBirth     string    `json:"dateOfBirth,omitempty"`
	Position        string    `json:"position,omitempty"`
	CompanyName     string    `json:"companyName"`
	HREmail         string    `json:"hrEmail"`
	AffiliationDate time.Time `json:"affiliationDate"`
}
