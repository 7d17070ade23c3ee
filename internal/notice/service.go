package notice

import (
	"context"
	"errors"
	"sort"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/assetverse/assetverse-backend/internal/auditlog"
	"github.com/assetverse/assetverse-backend/internal/notification"
	"github.com/assetverse/assetverse-backend/internal/team"
	"github.com/assetverse/assetverse-backend/utils"
)

var (
	ErrNoticeNotFound  = errors.New("notice not found")
	ErrNotNoticeOwner  = errors.New("caller is not the owning HR for this notice")
	ErrInvalidPriority = errors.New("priority must be high, medium or low")
	ErrTitleTooShort   = errors.New("title must be at least 5 characters")
	ErrContentTooShort = errors.New("content must be at least 10 characters")
)

// MarkReadResult distinguishes a first read from a repeat.
type MarkReadResult struct {
	AlreadyRead bool `json:"alreadyRead"`
}

type Service interface {
	Create(ctx context.Context, hrEmail, companyName string, in CreateNoticeInput, ip string) (*Notice, error)
	Update(ctx context.Context, id uint, callerEmail string, in UpdateNoticeInput) (*Notice, error)
	Delete(ctx context.Context, id uint, callerEmail, ip string) error
	GetByID(ctx context.Context, id uint) (*Notice, error)
	ListForCompany(ctx context.Context, companyName, readerEmail string) ([]NoticeWithReadState, error)
	MarkAsRead(ctx context.Context, noticeID uint, employeeEmail string) (*MarkReadResult, error)
}

type service struct {
	repo         Repository
	affiliations team.Repository
	auditSvc     auditlog.Service
}

func NewService(repo Repository, affiliations team.Repository, auditSvc auditlog.Service) Service {
	return &service{repo: repo, affiliations: affiliations, auditSvc: auditSvc}
}

func validateNotice(title, content, priority string) error {
	if utf8.RuneCountInString(title) < 5 {
		return ErrTitleTooShort
	}
	if utf8.RuneCountInString(content) < 10 {
		return ErrContentTooShort
	}
	if _, ok := priorityRank[priority]; !ok {
		return ErrInvalidPriority
	}
	return nil
}

// Create posts a notice and fans out an in-app notification event to every
// active team member of the company.
func (s *service) Create(ctx context.Context, hrEmail, companyName string, in CreateNoticeInput, ip string) (*Notice, error) {
	if err := validateNotice(in.Title, in.Content, in.Priority); err != nil {
		return nil, err
	}

	n := &Notice{
		Title:       in.Title,
		Content:     in.Content,
		Priority:    in.Priority,
		CompanyName: companyName,
		HREmail:     hrEmail,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	if members, err := s.affiliations.ListActiveMembers(ctx, companyName); err == nil {
		for _, m := range members {
			utils.PublishEvent(ctx, m.Email, notification.Event{
				Type:      "NOTICE_CREATED",
				UserEmail: m.Email,
				Title:     "New notice: " + n.Title,
				Message:   n.Content,
				Category:  "notice",
				Metadata: map[string]interface{}{
					"notice_id": n.ID,
					"priority":  n.Priority,
				},
				OccurredAt: time.Now(),
			})
		}
	}

	s.auditSvc.LogAction(ctx, &hrEmail, "NOTICE_CREATED", map[string]interface{}{
		"notice_id": n.ID,
		"title":     n.Title,
		"priority":  n.Priority,
	}, ip, "success")

	return n, nil
}

func (s *service) Update(ctx context.Context, id uint, callerEmail string, in UpdateNoticeInput) (*Notice, error) {
	if err := validateNotice(in.Title, in.Content, in.Priority); err != nil {
		return nil, err
	}

	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoticeNotFound
		}
		return nil, err
	}

	if n.HREmail != callerEmail {
		return nil, ErrNotNoticeOwner
	}

	n.Title = in.Title
	n.Content = in.Content
	n.Priority = in.Priority
	if err := s.repo.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Delete removes a notice and cascades to its read-status rows.
func (s *service) Delete(ctx context.Context, id uint, callerEmail, ip string) error {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoticeNotFound
		}
		return err
	}

	if n.HREmail != callerEmail {
		return ErrNotNoticeOwner
	}

	if err := s.repo.DeleteReadsForNotice(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditSvc.LogAction(ctx, &callerEmail, "NOTICE_DELETED", map[string]interface{}{
		"notice_id": id,
		"title":     n.Title,
	}, ip, "success")

	return nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*Notice, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoticeNotFound
		}
		return nil, err
	}
	return n, nil
}

// ListForCompany returns the board sorted by priority rank then creation time
// descending. The store can't express the enum ordering natively, so the
// two-key sort runs in memory after the fetch.
func (s *service) ListForCompany(ctx context.Context, companyName, readerEmail string) ([]NoticeWithReadState, error) {
	notices, err := s.repo.ListByCompany(ctx, companyName)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(notices, func(i, j int) bool {
		ri, rj := priorityRank[notices[i].Priority], priorityRank[notices[j].Priority]
		if ri != rj {
			return ri < rj
		}
		return notices[i].CreatedAt.After(notices[j].CreatedAt)
	})

	ids := make([]uint, len(notices))
	for i, n := range notices {
		ids[i] = n.ID
	}

	readSet := make(map[uint]bool)
	if readerEmail != "" {
		readIDs, err := s.repo.ListReadNoticeIDs(ctx, readerEmail, ids)
		if err != nil {
			return nil, err
		}
		for _, id := range readIDs {
			readSet[id] = true
		}
	}

	out := make([]NoticeWithReadState, len(notices))
	for i, n := range notices {
		out[i] = NoticeWithReadState{Notice: n, IsRead: readSet[n.ID]}
	}
	return out, nil
}

// MarkAsRead is idempotent: the first call stores a read row, any repeat
// reports alreadyRead without creating a duplicate.
func (s *service) MarkAsRead(ctx context.Context, noticeID uint, employeeEmail string) (*MarkReadResult, error) {
	if _, err := s.repo.FindByID(ctx, noticeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoticeNotFound
		}
		return nil, err
	}

	if _, err := s.repo.FindRead(ctx, noticeID, employeeEmail); err == nil {
		return &MarkReadResult{AlreadyRead: true}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.repo.CreateRead(ctx, &ReadStatus{
		NoticeID:      noticeID,
		EmployeeEmail: employeeEmail,
	}); err != nil {
		return nil, err
	}

	return &MarkReadResult{AlreadyRead: false}, nil
}
