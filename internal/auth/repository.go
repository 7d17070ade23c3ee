package auth

import (
	"gorm.io/gorm"
)

type Repository interface {
	Create(user *User) error
	FindByEmail(email string) (*User, error)
	UpdateProfile(email string, in UpdateProfileInput) error
	UpdateCompany(email, companyName, hrEmail string) error
	ClearCompany(email string) error
	AdjustCurrentEmployees(hrEmail string, delta int) error
	UpdateSubscription(hrEmail, packageName string, employeeLimit int) error
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(user *User) error {
	return r.db.Create(user).Error
}

func (r *repository) FindByEmail(email string) (*User, error) {
	var u User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) UpdateProfile(email string, in UpdateProfileInput) error {
	return r.db.Model(&User{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{
			"name":          in.Name,
			"phone":         in.Phone,
			"profile_image": in.ProfileImage,
		}).Error
}

func (r *repository) UpdateCompany(email, companyName, hrEmail string) error {
	return r.db.Model(&User{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{
			"company_name": companyName,
			"hr_email":     hrEmail,
		}).Error
}

func (r *repository) ClearCompany(email string) error {
	return r.db.Model(&User{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{
			"company_name": "",
			"hr_email":     "",
		}).Error
}

// AdjustCurrentEmployees shifts the HR seat counter. No floor is applied;
// out-of-order removals can take it negative.
func (r *repository) AdjustCurrentEmployees(hrEmail string, delta int) error {
	return r.db.Model(&User{}).
		Where("email = ? AND role = ?", hrEmail, "hr").
		UpdateColumn("current_employees", gorm.Expr("current_employees + ?", delta)).Error
}

func (r *repository) UpdateSubscription(hrEmail, packageName string, employeeLimit int) error {
	return r.db.Model(&User{}).
		Where("email = ? AND role = ?", hrEmail, "hr").
		Updates(map[string]interface{}{
			"subscription":  packageName,
			"package_limit": employeeLimit,
		}).Error
}
