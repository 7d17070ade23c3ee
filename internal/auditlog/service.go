package auditlog

import (
	"context"
	"encoding/json"
	"log"
	"math"
)

type Service interface {
	LogAction(ctx context.Context, actorEmail *string, action string, details map[string]interface{}, ip string, status string) error
	GetAuditLogs(ctx context.Context, filter Filter) (*PaginatedLogs, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// LogAction appends one audit entry. Audit failures are logged and swallowed
// so they never break the operation being audited.
func (s *service) LogAction(ctx context.Context, actorEmail *string, action string, details map[string]interface{}, ip string, status string) error {
	if details == nil {
		details = make(map[string]interface{})
	}

	detailsJSON, err := json.Marshal(details)
	if err != nil {
		detailsJSON = []byte("{}")
	}

	entry := &AuditLog{
		ActorEmail: actorEmail,
		Action:     action,
		Details:    detailsJSON,
		IPAddress:  ip,
		Status:     status,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		log.Printf("⚠️ audit log write failed (action=%s): %v", action, err)
		return err
	}
	return nil
}

func (s *service) GetAuditLogs(ctx context.Context, filter Filter) (*PaginatedLogs, error) {
	logs, total, err := s.repo.GetByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	page := filter.Page
	if page < 1 {
		page = 1
	}

	return &PaginatedLogs{
		Data:       logs,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}
