package team

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, a *Affiliation) error
	FindActive(ctx context.Context, employeeEmail, companyName string) (*Affiliation, error)
	DeleteActive(ctx context.Context, employeeEmail, companyName string) (*Affiliation, error)
	ListActiveMembers(ctx context.Context, companyName string) ([]TeamMember, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Affiliation) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindActive(ctx context.Context, employeeEmail, companyName string) (*Affiliation, error) {
	var a Affiliation
	err := r.db.WithContext(ctx).
		Where("employee_email = ? AND company_name = ? AND status = ?", employeeEmail, companyName, StatusActive).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// DeleteActive removes the active affiliation for the pair and returns it so
// the caller knows which HR's seat counter to decrement.
func (r *repository) DeleteActive(ctx context.Context, employeeEmail, companyName string) (*Affiliation, error) {
	a, err := r.FindActive(ctx, employeeEmail, companyName)
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Delete(&Affiliation{}, a.ID).Error; err != nil {
		return nil, err
	}
	return a, nil
}

// ListActiveMembers joins affiliations with user profiles, oldest first so the
// service's dedup keeps first-seen fields.
func (r *repository) ListActiveMembers(ctx context.Context, companyName string) ([]TeamMember, error) {
	var members []TeamMember
	err := r.db.WithContext(ctx).
		Table("affiliations").
		Select(`users.name, users.email, users.profile_image, users.date_of_birth, users.position,
			affiliations.company_name, affiliations.hr_email, affiliations.affiliation_date`).
		Joins("JOIN users ON users.email = affiliations.employee_email").
		Where("affiliations.company_name = ? AND affiliations.status = ?", companyName, StatusActive).
		Order("affiliations.affiliation_date ASC").
		Scan(&members).Error
	return members, err
}
