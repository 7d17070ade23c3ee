package payment

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	CreatePayment(ctx context.Context, p *Payment) error
	FindByOrderID(ctx context.Context, orderID string) (*Payment, error)
	FindByIDAndHR(ctx context.Context, id uint, hrEmail string) (*Payment, error)
	MarkVerified(ctx context.Context, orderID, transactionID, status string, at time.Time) error
	ListByHR(ctx context.Context, hrEmail string) ([]Payment, error)

	FindPackage(ctx context.Context, name string) (*Package, error)
	ListPackages(ctx context.Context) ([]Package, error)
	SeedPackages(ctx context.Context, packages []Package) error
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreatePayment(ctx context.Context, p *Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindByOrderID(ctx context.Context, orderID string) (*Payment, error) {
	var p Payment
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindByIDAndHR(ctx context.Context, id uint, hrEmail string) (*Payment, error) {
	var p Payment
	err := r.db.WithContext(ctx).
		Where("id = ? AND hr_email = ?", id, hrEmail).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) MarkVerified(ctx context.Context, orderID, transactionID, status string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&Payment{}).
		Where("order_id = ?", orderID).
		Updates(map[string]interface{}{
			"transaction_id": transactionID,
			"status":         status,
			"payment_date":   at,
		}).Error
}

func (r *repository) ListByHR(ctx context.Context, hrEmail string) ([]Payment, error) {
	var payments []Payment
	err := r.db.WithContext(ctx).
		Where("hr_email = ?", hrEmail).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}

func (r *repository) FindPackage(ctx context.Context, name string) (*Package, error) {
	var pkg Package
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&pkg).Error
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *repository) ListPackages(ctx context.Context) ([]Package, error) {
	var packages []Package
	err := r.db.WithContext(ctx).Order("employee_limit ASC").Find(&packages).Error
	return packages, err
}

// SeedPackages inserts the tier catalog if it is empty.
func (r *repository) SeedPackages(ctx context.Context, packages []Package) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Package{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&packages).Error
}
