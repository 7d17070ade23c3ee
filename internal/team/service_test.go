package team

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/assetverse/assetverse-backend/internal/auditlog"
	"github.com/assetverse/assetverse-backend/internal/auth"
)

type fakeTeamRepo struct {
	affiliations []*Affiliation
	members      []TeamMember
}

func (f *fakeTeamRepo) Create(ctx context.Context, a *Affiliation) error {
	f.affiliations = append(f.affiliations, a)
	return nil
}

func (f *fakeTeamRepo) FindActive(ctx context.Context, employeeEmail, companyName string) (*Affiliation, error) {
	for _, a := range f.affiliations {
		if a.EmployeeEmail == employeeEmail && a.CompanyName == companyName && a.Status == StatusActive {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTeamRepo) DeleteActive(ctx context.Context, employeeEmail, companyName string) (*Affiliation, error) {
	for i, a := range f.affiliations {
		if a.EmployeeEmail == employeeEmail && a.CompanyName == companyName && a.Status == StatusActive {
			f.affiliations = append(f.affiliations[:i], f.affiliations[i+1:]...)
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTeamRepo) ListActiveMembers(ctx context.Context, companyName string) ([]TeamMember, error) {
	return f.members, nil
}

type fakeUserRepo struct {
	users map[string]*auth.User
}

func (f *fakeUserRepo) Create(user *auth.User) error { return nil }

func (f *fakeUserRepo) FindByEmail(email string) (*auth.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) UpdateProfile(email string, in auth.UpdateProfileInput) error { return nil }
func (f *fakeUserRepo) UpdateCompany(email, companyName, hrEmail string) error       { return nil }

func (f *fakeUserRepo) ClearCompany(email string) error {
	if u, ok := f.users[email]; ok {
		u.CompanyName = ""
		u.HREmail = ""
	}
	return nil
}

func (f *fakeUserRepo) AdjustCurrentEmployees(hrEmail string, delta int) error {
	if u, ok := f.users[hrEmail]; ok {
		u.CurrentEmployees += delta
	}
	return nil
}

func (f *fakeUserRepo) UpdateSubscription(hrEmail, packageName string, employeeLimit int) error {
	return nil
}

type fakeAuditService struct {
	actions []string
}

func (f *fakeAuditService) LogAction(ctx context.Context, actorEmail *string, action string, details map[string]interface{}, ip string, status string) error {
	f.actions = append(f.actions, action)
	return nil
}

func (f *fakeAuditService) GetAuditLogs(ctx context.Context, filter auditlog.Filter) (*auditlog.PaginatedLogs, error) {
	return &auditlog.PaginatedLogs{}, nil
}

func TestListTeamDedupsByEmail(t *testing.T) {
	base := time.Now()
	repo := &fakeTeamRepo{
		members: []TeamMember{
			{Email: "a@acme.com", Name: "Alice", AffiliationDate: base.Add(-48 * time.Hour)},
			{Email: "b@acme.com", Name: "Bob", AffiliationDate: base.Add(-24 * time.Hour)},
			{Email: "a@acme.com", Name: "Alice Again", AffiliationDate: base},
		},
	}
	svc := NewService(repo, &fakeUserRepo{users: map[string]*auth.User{}}, &fakeAuditService{})

	members, err := svc.ListTeam(context.Background(), "Acme Corp")

	assert.NoError(t, err)
	assert.Len(t, members, 2)
	// First-seen profile fields win; the affiliation date is the latest.
	assert.Equal(t, "Alice", members[0].Name)
	assert.True(t, members[0].AffiliationDate.Equal(base))
	assert.Equal(t, "Bob", members[1].Name)
}

func TestRemoveEmployeeClearsCompanyAndSeat(t *testing.T) {
	repo := &fakeTeamRepo{
		affiliations: []*Affiliation{{
			ID:            1,
			EmployeeEmail: "emp@acme.com",
			CompanyName:   "Acme Corp",
			HREmail:       "hr@acme.com",
			Status:        StatusActive,
		}},
	}
	users := &fakeUserRepo{users: map[string]*auth.User{
		"hr@acme.com":  {Email: "hr@acme.com", CurrentEmployees: 2},
		"emp@acme.com": {Email: "emp@acme.com", CompanyName: "Acme Corp", HREmail: "hr@acme.com"},
	}}
	audit := &fakeAuditService{}
	svc := NewService(repo, users, audit)

	err := svc.RemoveEmployee(context.Background(), "hr@acme.com", "emp@acme.com", "Acme Corp", "127.0.0.1")

	assert.NoError(t, err)
	assert.Empty(t, repo.affiliations)
	assert.Equal(t, "", users.users["emp@acme.com"].CompanyName)
	assert.Equal(t, 1, users.users["hr@acme.com"].CurrentEmployees)
	assert.Contains(t, audit.actions, "TEAM_EMPLOYEE_REMOVED")
}

func TestRemoveEmployeeWithoutAffiliation(t *testing.T) {
	svc := NewService(&fakeTeamRepo{}, &fakeUserRepo{users: map[string]*auth.User{}}, &fakeAuditService{})

	err := svc.RemoveEmployee(context.Background(), "hr@acme.com", "ghost@acme.com", "Acme Corp", "127.0.0.1")
	assert.ErrorIs(t, err, ErrAffiliationNotFound)
}

func TestRemoveEmployeeTakesCounterNegative(t *testing.T) {
	// The seat decrement is not floored at zero. A removal replayed against
	// an already-drained counter drives it negative; this pins the behavior.
	repo := &fakeTeamRepo{
		affiliations: []*Affiliation{{
			ID:            1,
			EmployeeEmail: "emp@acme.com",
			CompanyName:   "Acme Corp",
			HREmail:       "hr@acme.com",
			Status:        StatusActive,
		}},
	}
	users := &fakeUserRepo{users: map[string]*auth.User{
		"hr@acme.com":  {Email: "hr@acme.com", CurrentEmployees: 0},
		"emp@acme.com": {Email: "emp@acme.com"},
	}}
	svc := NewService(repo, users, &fakeAuditService{})

	err := svc.RemoveEmployee(context.Background(), "hr@acme.com", "emp@acme.com", "Acme Corp", "127.0.0.1")

	assert.NoError(t, err)
	assert.Equal(t, -1, users.users["hr@acme.com"].CurrentEmployees)
}
