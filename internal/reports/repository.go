package reports

import (
	"context"

	"gorm.io/gorm"
)

// Repository reads aggregates and report rows straight off the request and
// asset tables.
type Repository interface {
	TotalRequests(ctx context.Context, companyName string) (int64, error)
	PendingCount(ctx context.Context, companyName string) (int64, error)
	RequestCountsByType(ctx context.Context, companyName string) ([]TypeCount, error)
	TopRequestedAssets(ctx context.Context, companyName string, limit int) ([]AssetCount, error)
	AssetInventory(ctx context.Context, hrEmail string) ([]AssetInventoryRow, error)
	RequestHistory(ctx context.Context, hrEmail string) ([]RequestHistoryRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) TotalRequests(ctx context.Context, companyName string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("asset_requests").
		Where("company_name = ?", companyName).
		Count(&count).Error
	return count, err
}

func (r *repository) PendingCount(ctx context.Context, companyName string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("asset_requests").
		Where("company_name = ? AND status = ?", companyName, "Pending").
		Count(&count).Error
	return count, err
}

func (r *repository) RequestCountsByType(ctx context.Context, companyName string) ([]TypeCount, error) {
	var rows []TypeCount
	err := r.db.WithContext(ctx).
		Table("asset_requests").
		Select("asset_type, COUNT(*) as count").
		Where("company_name = ?", companyName).
		Group("asset_type").
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) TopRequestedAssets(ctx context.Context, companyName string, limit int) ([]AssetCount, error) {
	var rows []AssetCount
	err := r.db.WithContext(ctx).
		Table("asset_requests").
		Select("asset_name, COUNT(*) as count").
		Where("company_name = ?", companyName).
		Group("asset_name").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) AssetInventory(ctx context.Context, hrEmail string) ([]AssetInventoryRow, error) {
	var rows []AssetInventoryRow
	err := r.db.WithContext(ctx).
		Table("assets").
		Select("id, product_name, product_type, product_quantity, available_quantity, company_name, date_added").
		Where("hr_email = ?", hrEmail).
		Order("date_added DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) RequestHistory(ctx context.Context, hrEmail string) ([]RequestHistoryRow, error) {
	var rows []RequestHistoryRow
	err := r.db.WithContext(ctx).
		Table("asset_requests").
		Select("id, asset_name, asset_type, user_email, status, request_date").
		Where("hr_email = ?", hrEmail).
		Order("request_date DESC").
		Scan(&rows).Error
	return rows, err
}
