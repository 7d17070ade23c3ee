package asset

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, a *Asset) error
	FindByID(ctx context.Context, id uint) (*Asset, error)
	List(ctx context.Context, filters ListFilters) ([]Asset, int64, error)
	Update(ctx context.Context, id uint, in UpdateAssetInput) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)
	DecrementQuantity(ctx context.Context, id uint) error
	IncrementAvailable(ctx context.Context, id uint) error
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Asset) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Asset, error) {
	var a Asset
	err := r.db.WithContext(ctx).First(&a, id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]Asset, int64, error) {
	q := r.db.WithContext(ctx).Model(&Asset{})

	if filters.Search != "" {
		q = q.Where("product_name ILIKE ?", "%"+filters.Search+"%")
	}
	if filters.Type != "" {
		q = q.Where("product_type = ?", filters.Type)
	}
	if filters.CompanyName != "" {
		q = q.Where("company_name = ?", filters.CompanyName)
	}
	if filters.HREmail != "" {
		q = q.Where("hr_email = ?", filters.HREmail)
	}
	if filters.AvailableOnly {
		q = q.Where("available_quantity > 0")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filters.Page
	if page < 1 {
		page = 1
	}
	limit := filters.Limit
	if limit <= 0 {
		limit = 10
	}

	var assets []Asset
	err := q.Order("date_added DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&assets).Error
	return assets, total, err
}

// Update resets available_quantity (and quantity) to the new product_quantity
// without accounting for checked-out units. The frontend re-creates inventory
// on edit, so outstanding checkouts are forgotten here.
func (r *repository) Update(ctx context.Context, id uint, in UpdateAssetInput) (int64, error) {
	res := r.db.WithContext(ctx).Model(&Asset{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"product_name":       in.ProductName,
			"product_image":      in.ProductImage,
			"product_type":       in.ProductType,
			"product_quantity":   in.ProductQuantity,
			"available_quantity": in.ProductQuantity,
			"quantity":           in.ProductQuantity,
		})
	return res.RowsAffected, res.Error
}

func (r *repository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&Asset{}, id)
	return res.RowsAffected, res.Error
}

// DecrementQuantity is the approve-path counter update. It touches quantity,
// not available_quantity.
func (r *repository) DecrementQuantity(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&Asset{}).
		Where("id = ?", id).
		UpdateColumn("quantity", gorm.Expr("quantity - 1")).Error
}

// IncrementAvailable is the return-path counter update for returnable assets.
func (r *repository) IncrementAvailable(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&Asset{}).
		Where("id = ?", id).
		UpdateColumn("available_quantity", gorm.Expr("available_quantity + 1")).Error
}
