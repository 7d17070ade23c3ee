package notification

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, n *InAppNotification) error
	ListByUser(ctx context.Context, userEmail string, limit int) ([]InAppNotification, error)
	MarkAsRead(ctx context.Context, id uint, userEmail string) (int64, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *InAppNotification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) ListByUser(ctx context.Context, userEmail string, limit int) ([]InAppNotification, error) {
	if limit <= 0 {
		limit = 20
	}

	var items []InAppNotification
	err := r.db.WithContext(ctx).
		Where("user_email = ?", userEmail).
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

func (r *repository) MarkAsRead(ctx context.Context, id uint, userEmail string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&InAppNotification{}).
		Where("id = ? AND user_email = ?", id, userEmail).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}
