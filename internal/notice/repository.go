package notice

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, n *Notice) error
	FindByID(ctx context.Context, id uint) (*Notice, error)
	Update(ctx context.Context, n *Notice) error
	Delete(ctx context.Context, id uint) error
	ListByCompany(ctx context.Context, companyName string) ([]Notice, error)

	FindRead(ctx context.Context, noticeID uint, employeeEmail string) (*ReadStatus, error)
	CreateRead(ctx context.Context, rs *ReadStatus) error
	DeleteReadsForNotice(ctx context.Context, noticeID uint) error
	CountReads(ctx context.Context, noticeID uint) (int64, error)
	ListReadNoticeIDs(ctx context.Context, employeeEmail string, noticeIDs []uint) ([]uint, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notice) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Notice, error) {
	var n Notice
	err := r.db.WithContext(ctx).First(&n, id).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *repository) Update(ctx context.Context, n *Notice) error {
	return r.db.WithContext(ctx).Model(&Notice{}).
		Where("id = ?", n.ID).
		Updates(map[string]interface{}{
			"title":    n.Title,
			"content":  n.Content,
			"priority": n.Priority,
		}).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Notice{}, id).Error
}

// ListByCompany fetches without ordering; the two-key priority sort is applied
// in-memory by the service.
func (r *repository) ListByCompany(ctx context.Context, companyName string) ([]Notice, error) {
	var notices []Notice
	err := r.db.WithContext(ctx).
		Where("company_name = ?", companyName).
		Find(&notices).Error
	return notices, err
}

func (r *repository) FindRead(ctx context.Context, noticeID uint, employeeEmail string) (*ReadStatus, error) {
	var rs ReadStatus
	err := r.db.WithContext(ctx).
		Where("notice_id = ? AND employee_email = ?", noticeID, employeeEmail).
		First(&rs).Error
	if err != nil {
		return nil, err
	}
	return &rs, nil
}

func (r *repository) CreateRead(ctx context.Context, rs *ReadStatus) error {
	return r.db.WithContext(ctx).Create(rs).Error
}

func (r *repository) DeleteReadsForNotice(ctx context.Context, noticeID uint) error {
	return r.db.WithContext(ctx).
		Where("notice_id = ?", noticeID).
		Delete(&ReadStatus{}).Error
}

func (r *repository) CountReads(ctx context.Context, noticeID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ReadStatus{}).
		Where("notice_id = ?", noticeID).
		Count(&count).Error
	return count, err
}

func (r *repository) ListReadNoticeIDs(ctx context.Context, employeeEmail string, noticeIDs []uint) ([]uint, error) {
	if len(noticeIDs) == 0 {
		return nil, nil
	}

	var ids []uint
	err := r.db.WithContext(ctx).Model(&ReadStatus{}).
		Where("employee_email = ? AND notice_id IN ?", employeeEmail, noticeIDs).
		Pluck("notice_id", &ids).Error
	return ids, err
}
