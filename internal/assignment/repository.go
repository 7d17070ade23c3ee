package assignment

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, req *AssetRequest) error
	FindByID(ctx context.Context, id uint) (*AssetRequest, error)
	FindPending(ctx context.Context, assetID uint, userEmail string) (*AssetRequest, error)
	MarkApproved(ctx context.Context, id uint, at time.Time) error
	MarkRejected(ctx context.Context, id uint, at time.Time) error
	MarkReturned(ctx context.Context, id uint, at time.Time) error
	ListMine(ctx context.Context, filters MineFilters) ([]AssetRequest, error)
	ListByHR(ctx context.Context, hrEmail string) ([]AssetRequest, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, req *AssetRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*AssetRequest, error) {
	var req AssetRequest
	err := r.db.WithContext(ctx).First(&req, id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// FindPending backs duplicate-request suppression. Best effort: there is no
// unique constraint, so two concurrent submits can still both pass.
func (r *repository) FindPending(ctx context.Context, assetID uint, userEmail string) (*AssetRequest, error) {
	var req AssetRequest
	err := r.db.WithContext(ctx).
		Where("asset_id = ? AND user_email = ? AND status = ?", assetID, userEmail, StatusPending).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) MarkApproved(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&AssetRequest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        StatusApproved,
			"approval_date": at,
		}).Error
}

func (r *repository) MarkRejected(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&AssetRequest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":         StatusRejected,
			"rejection_date": at,
		}).Error
}

func (r *repository) MarkReturned(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&AssetRequest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      StatusReturned,
			"return_date": at,
		}).Error
}

func (r *repository) ListMine(ctx context.Context, filters MineFilters) ([]AssetRequest, error) {
	q := r.db.WithContext(ctx).Where("user_email = ?", filters.Email)

	if filters.Type != "" {
		q = q.Where("asset_type = ?", filters.Type)
	}
	if filters.Search != "" {
		q = q.Where("asset_name ILIKE ?", "%"+filters.Search+"%")
	}

	var requests []AssetRequest
	err := q.Order("request_date DESC").Find(&requests).Error
	return requests, err
}

func (r *repository) ListByHR(ctx context.Context, hrEmail string) ([]AssetRequest, error) {
	var requests []AssetRequest
	err := r.db.WithContext(ctx).
		Where("hr_email = ?", hrEmail).
		Order("request_date DESC").
		Find(&requests).Error
	return requests, err
}
