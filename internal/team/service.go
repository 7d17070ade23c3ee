package team

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/assetverse/assetverse-backend/internal/auditlog"
	"github.com/assetverse/assetverse-backend/internal/auth"
)

var ErrAffiliationNotFound = errors.New("no active affiliation for employee")

type Service interface {
	ListTeam(ctx context.Context, companyName string) ([]TeamMember, error)
	RemoveEmployee(ctx context.Context, callerEmail, employeeEmail, companyName, ip string) error
}

type service struct {
	repo     Repository
	users    auth.Repository
	auditSvc auditlog.Service
}

func NewService(repo Repository, users auth.Repository, auditSvc auditlog.Service) Service {
	return &service{repo: repo, users: users, auditSvc: auditSvc}
}

// ListTeam returns the distinct employees affiliated with a company. Rows come
// back oldest-first; duplicates keep the first-seen profile fields and the
// most recent affiliation date.
func (s *service) ListTeam(ctx context.Context, companyName string) ([]TeamMember, error) {
	rows, err := s.repo.ListActiveMembers(ctx, companyName)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]int, len(rows))
	members := make([]TeamMember, 0, len(rows))
	for _, row := range rows {
		if idx, ok := seen[row.Email]; ok {
			if row.AffiliationDate.After(members[idx].AffiliationDate) {
				members[idx].AffiliationDate = row.AffiliationDate
			}
			continue
		}
		seen[row.Email] = len(members)
		members = append(members, row)
	}

	return members, nil
}

// RemoveEmployee deletes the active affiliation, strips the company off the
// user record and decrements the owning HR's seat counter. The decrement is
// not floored; removals replayed out of order can take it negative.
func (s *service) RemoveEmployee(ctx context.Context, callerEmail, employeeEmail, companyName, ip string) error {
	affiliation, err := s.repo.DeleteActive(ctx, employeeEmail, companyName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAffiliationNotFound
		}
		return err
	}

	if err := s.users.ClearCompany(employeeEmail); err != nil {
		return err
	}

	if err := s.users.AdjustCurrentEmployees(affiliation.HREmail, -1); err != nil {
		return err
	}

	s.auditSvc.LogAction(ctx, &callerEmail, "TEAM_EMPLOYEE_REMOVED", map[string]interface{}{
		"employee_email": employeeEmail,
		"company_name":   companyName,
		"hr_email":       affiliation.HREmail,
	}, ip, "success")

	return nil
}
