package notice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/assetverse/assetverse-backend/internal/auditlog"
	"github.com/assetverse/assetverse-backend/internal/team"
)

// ==============================
// Fakes
// ==============================

type fakeNoticeRepo struct {
	notices map[uint]*Notice
	reads   []*ReadStatus
	nextID  uint
}

func newFakeNoticeRepo() *fakeNoticeRepo {
	return &fakeNoticeRepo{notices: make(map[uint]*Notice), nextID: 1}
}

func (f *fakeNoticeRepo) Create(ctx context.Context, n *Notice) error {
	n.ID = f.nextID
	f.nextID++
	n.CreatedAt = time.Now()
	f.notices[n.ID] = n
	return nil
}

func (f *fakeNoticeRepo) FindByID(ctx context.Context, id uint) (*Notice, error) {
	n, ok := f.notices[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *n
	return &cp, nil
}

func (f *fakeNoticeRepo) Update(ctx context.Context, n *Notice) error {
	stored, ok := f.notices[n.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Title = n.Title
	stored.Content = n.Content
	stored.Priority = n.Priority
	return nil
}

func (f *fakeNoticeRepo) Delete(ctx context.Context, id uint) error {
	delete(f.notices, id)
	return nil
}

func (f *fakeNoticeRepo) ListByCompany(ctx context.Context, companyName string) ([]Notice, error) {
	var out []Notice
	for _, n := range f.notices {
		if n.CompanyName == companyName {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeNoticeRepo) FindRead(ctx context.Context, noticeID uint, employeeEmail string) (*ReadStatus, error) {
	for _, rs := range f.reads {
		if rs.NoticeID == noticeID && rs.EmployeeEmail == employeeEmail {
			return rs, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeNoticeRepo) CreateRead(ctx context.Context, rs *ReadStatus) error {
	f.reads = append(f.reads, rs)
	return nil
}

func (f *fakeNoticeRepo) DeleteReadsForNotice(ctx context.Context, noticeID uint) error {
	kept := f.reads[:0]
	for _, rs := range f.reads {
		if rs.NoticeID != noticeID {
			kept = append(kept, rs)
		}
	}
	f.reads = kept
	return nil
}

func (f *fakeNoticeRepo) CountReads(ctx context.Context, noticeID uint) (int64, error) {
	var count int64
	for _, rs := range f.reads {
		if rs.NoticeID == noticeID {
			count++
		}
	}
	return count, nil
}

func (f *fakeNoticeRepo) ListReadNoticeIDs(ctx context.Context, employeeEmail string, noticeIDs []uint) ([]uint, error) {
	wanted := make(map[uint]bool, len(noticeIDs))
	for _, id := range noticeIDs {
		wanted[id] = true
	}
	var out []uint
	for _, rs := range f.reads {
		if rs.EmployeeEmail == employeeEmail && wanted[rs.NoticeID] {
			out = append(out, rs.NoticeID)
		}
	}
	return out, nil
}

type fakeTeamRepo struct{}

func (f *fakeTeamRepo) Create(ctx context.Context, a *team.Affiliation) error { return nil }
func (f *fakeTeamRepo) FindActive(ctx context.Context, employeeEmail, companyName string) (*team.Affiliation, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeTeamRepo) DeleteActive(ctx context.Context, employeeEmail, companyName string) (*team.Affiliation, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeTeamRepo) ListActiveMembers(ctx context.Context, companyName string) ([]team.TeamMember, error) {
	return nil, nil
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

func newTestService() (Service, *fakeNoticeRepo, *fakeAuditService) {
	repo := newFakeNoticeRepo()
	audit := &fakeAuditService{}
	return NewService(repo, &fakeTeamRepo{}, audit), repo, audit
}

// ==============================
// Validation
// ==============================

func TestCreateValidation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "hr@acme.com", "Acme Corp", CreateNoticeInput{
		Title: "Hey", Content: "long enough content", Priority: "high",
	}, "127.0.0.1")
	assert.ErrorIs(t, err, ErrTitleTooShort)

	_, err = svc.Create(ctx, "hr@acme.com", "Acme Corp", CreateNoticeInput{
		Title: "Office move", Content: "short", Priority: "high",
	}, "127.0.0.1")
	assert.ErrorIs(t, err, ErrContentTooShort)

	_, err = svc.Create(ctx, "hr@acme.com", "Acme Corp", CreateNoticeInput{
		Title: "Office move", Content: "we are moving floors", Priority: "urgent",
	}, "127.0.0.1")
	assert.ErrorIs(t, err, ErrInvalidPriority)
}

func TestCreateCountsCharactersNotBytes(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	// Four characters that encode to twelve bytes must still fail.
	_, err := svc.Create(ctx, "hr@acme.com", "Acme Corp", CreateNoticeInput{
		Title: "通知です", Content: "we are moving floors", Priority: "high",
	}, "127.0.0.1")
	assert.ErrorIs(t, err, ErrTitleTooShort)

	// Five multibyte characters are a valid title.
	n, err := svc.Create(ctx, "hr@acme.com", "Acme Corp", CreateNoticeInput{
		Title: "引っ越し通知", Content: "オフィスはフロアを移動します", Priority: "high",
	}, "127.0.0.1")
	assert.NoError(t, err)
	assert.Equal(t, "引っ越し通知", n.Title)
}

// ==============================
// Mark-as-read idempotency
// ==============================

func TestMarkAsReadIsIdempotent(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	n, err := svc.Create(ctx, "hr@acme.com", "Acme Corp", CreateNoticeInput{
		Title: "Office move", Content: "we are moving floors", Priority: "high",
	}, "127.0.0.1")
	assert.NoError(t, err)

	first, err := svc.MarkAsRead(ctx, n.ID, "emp@acme.com")
	assert.NoError(t, err)
	assert.False(t, first.AlreadyRead)

	second, err := svc.MarkAsRead(ctx, n.ID, "emp@acme.com")
	assert.NoError(t, err)
	assert.True(t, second.AlreadyRead)

	// Repeat reads never add rows.
	count, _ := repo.CountReads(ctx, n.ID)
	assert.Equal(t, int64(1), count)
}

func TestMarkAsReadUnknownNotice(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.MarkAsRead(context.Background(), 99, "emp@acme.com")
	assert.ErrorIs(t, err, ErrNoticeNotFound)
}

// ==============================
// Delete cascade
// ==============================

func TestDeleteCascadesReadRows(t *testing.T) {
	svc, repo, audit := newTestService()
	ctx := context.Background()

	n, err := svc.Create(ctx, "hr@acme.com", "Acme Corp", CreateNoticeInput{
		Title: "Office move", Content: "we are moving floors", Priority: "high",
	}, "127.0.0.1")
	assert.NoError(t, err)

	_, err = svc.MarkAsRead(ctx, n.ID, "a@acme.com")
	assert.NoError(t, err)
	_, err = svc.MarkAsRead(ctx, n.ID, "b@acme.com")
	assert.NoError(t, err)

	err = svc.Delete(ctx, n.ID, "hr@acme.com", "127.0.0.1")
	assert.NoError(t, err)

	count, _ := repo.CountReads(ctx, n.ID)
	assert.Equal(t, int64(0), count)
	assert.Contains(t, audit.actions, "NOTICE_DELETED")

	_, err = svc.GetByID(ctx, n.ID)
	assert.ErrorIs(t, err, ErrNoticeNotFound)
}

func TestDeleteRequiresOwner(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	n, err := svc.Create(ctx, "hr@acme.com", "Acme Corp", CreateNoticeInput{
		Title: "Office move", Content: "we are moving floors", Priority: "high",
	}, "127.0.0.1")
	assert.NoError(t, err)

	err = svc.Delete(ctx, n.ID, "other-hr@elsewhere.com", "127.0.0.1")
	assert.ErrorIs(t, err, ErrNotNoticeOwner)
}

// ==============================
// Board ordering and read decoration
// ==============================

func TestListForCompanySortsByPriorityThenRecency(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	mk := func(title, priority string, createdAt time.Time) uint {
		n := &Notice{
			Title:       title,
			Content:     "content long enough",
			Priority:    priority,
			CompanyName: "Acme Corp",
			HREmail:     "hr@acme.com",
		}
		assert.NoError(t, repo.Create(ctx, n))
		repo.notices[n.ID].CreatedAt = createdAt
		return n.ID
	}

	base := time.Now()
	mk("Old low notice", "low", base.Add(-3*time.Hour))
	mk("Old high notice", "high", base.Add(-2*time.Hour))
	newHigh := mk("New high notice", "high", base.Add(-1*time.Hour))
	mk("Medium notice", "medium", base.Add(-30*time.Minute))

	board, err := svc.ListForCompany(ctx, "Acme Corp", "emp@acme.com")
	assert.NoError(t, err)
	assert.Len(t, board, 4)

	// high before medium before low, newest first within a rank
	assert.Equal(t, "New high notice", board[0].Title)
	assert.Equal(t, "Old high notice", board[1].Title)
	assert.Equal(t, "Medium notice", board[2].Title)
	assert.Equal(t, "Old low notice", board[3].Title)

	_, err = svc.MarkAsRead(ctx, newHigh, "emp@acme.com")
	assert.NoError(t, err)

	board, err = svc.ListForCompany(ctx, "Acme Corp", "emp@acme.com")
	assert.NoError(t, err)
	assert.True(t, board[0].IsRead)
	assert.False(t, board[1].IsRead)
}
