package assignment

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/assetverse/assetverse-backend/internal/asset"
	"github.com/assetverse/assetverse-backend/internal/auditlog"
	"github.com/assetverse/assetverse-backend/internal/auth"
	"github.com/assetverse/assetverse-backend/internal/notification"
	"github.com/assetverse/assetverse-backend/internal/team"
	"github.com/assetverse/assetverse-backend/utils"
)

var (
	ErrRequestNotFound   = errors.New("request not found")
	ErrAssetNotFound     = errors.New("asset not found")
	ErrRequesterNotFound = errors.New("requester not found")
	ErrOutOfStock        = errors.New("asset is out of stock")
	ErrDuplicatePending  = errors.New("a pending request already exists for this asset")
	ErrInvalidState      = errors.New("request is not in a state that allows this transition")
	ErrNotOwner          = errors.New("caller is not the owning HR for this request")
)

type Service interface {
	Submit(ctx context.Context, in SubmitRequestInput, ip string) (*AssetRequest, error)
	Approve(ctx context.Context, id uint, callerEmail, ip string) (*ApproveResult, error)
	Reject(ctx context.Context, id uint, callerEmail, ip string) (*AssetRequest, error)
	Return(ctx context.Context, id uint, callerEmail, ip string) (*AssetRequest, error)
	ListMine(ctx context.Context, filters MineFilters) ([]AssetRequest, error)
	ListByHR(ctx context.Context, hrEmail string) ([]AssetRequest, error)
}

type service struct {
	repo         Repository
	assets       asset.Repository
	users        auth.Repository
	affiliations team.Repository
	auditSvc     auditlog.Service
}

func NewService(repo Repository, assets asset.Repository, users auth.Repository, affiliations team.Repository, auditSvc auditlog.Service) Service {
	return &service{
		repo:         repo,
		assets:       assets,
		users:        users,
		affiliations: affiliations,
		auditSvc:     auditSvc,
	}
}

// ==============================
// Submit
// ==============================

// Submit creates a Pending request carrying a snapshot of the asset's name,
// image and type. The requester's company fields are synced to the asset's
// company afterwards; the two writes are not atomic, and the insert happens
// first so a crash in between leaves a recoverable request rather than a
// silently re-pointed user.
func (s *service) Submit(ctx context.Context, in SubmitRequestInput, ip string) (*AssetRequest, error) {
	a, err := s.assets.FindByID(ctx, in.AssetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}

	requester, err := s.users.FindByEmail(in.RequesterEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequesterNotFound
		}
		return nil, err
	}

	if a.AvailableQuantity <= 0 {
		return nil, ErrOutOfStock
	}

	if _, err := s.repo.FindPending(ctx, in.AssetID, in.RequesterEmail); err == nil {
		return nil, ErrDuplicatePending
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	req := &AssetRequest{
		AssetID:     a.ID,
		UserEmail:   in.RequesterEmail,
		HREmail:     a.HREmail,
		CompanyName: a.CompanyName,
		AssetName:   a.ProductName,
		AssetImage:  a.ProductImage,
		AssetType:   a.ProductType,
		Note:        in.Note,
		Status:      StatusPending,
	}

	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}

	// Auto-affiliation: requesting from another company re-points the
	// requester's company/HR fields.
	if requester.CompanyName != a.CompanyName {
		if err := s.users.UpdateCompany(in.RequesterEmail, a.CompanyName, a.HREmail); err != nil {
			return nil, err
		}
	}

	s.publish(ctx, "REQUEST_SUBMITTED", a.HREmail, "New asset request",
		in.RequesterEmail+" requested "+a.ProductName, req.ID)
	s.auditSvc.LogAction(ctx, &in.RequesterEmail, "REQUEST_SUBMITTED", map[string]interface{}{
		"asset_id":   a.ID,
		"asset_name": a.ProductName,
		"request_id": req.ID,
	}, ip, "success")

	return req, nil
}

// ==============================
// Approve
// ==============================

// Approve transitions a Pending request and performs the side effects: the
// asset's quantity counter is decremented (not availableQuantity; the two
// counters are deliberately distinct) and the employee gets an active
// affiliation plus one HR seat iff they have none yet.
//
// The seat check reads currentEmployees and acts on it without a transaction.
// Concurrent approvals for the same HR can race past the limit.
func (s *service) Approve(ctx context.Context, id uint, callerEmail, ip string) (*ApproveResult, error) {
	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	if req.HREmail != callerEmail {
		return nil, ErrNotOwner
	}
	if req.Status != StatusPending {
		return nil, ErrInvalidState
	}

	hr, err := s.users.FindByEmail(req.HREmail)
	if err != nil {
		return nil, err
	}

	limit := hr.PackageLimit
	if limit <= 0 {
		limit = auth.DefaultPackageLimit
	}

	if hr.CurrentEmployees >= limit {
		s.auditSvc.LogAction(ctx, &callerEmail, "REQUEST_APPROVE_BLOCKED", map[string]interface{}{
			"request_id":        id,
			"current_employees": hr.CurrentEmployees,
			"package_limit":     limit,
		}, ip, "failure")

		return &ApproveResult{Blocked: true, Code: CodeLimitReached}, nil
	}

	now := time.Now()
	if err := s.repo.MarkApproved(ctx, id, now); err != nil {
		return nil, err
	}
	req.Status = StatusApproved
	req.ApprovalDate = &now

	if err := s.assets.DecrementQuantity(ctx, req.AssetID); err != nil {
		return nil, err
	}

	// First approval for this (employee, company) pair creates the
	// affiliation and takes one seat.
	if _, err := s.affiliations.FindActive(ctx, req.UserEmail, req.CompanyName); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		affiliation := &team.Affiliation{
			EmployeeEmail: req.UserEmail,
			CompanyName:   req.CompanyName,
			HREmail:       req.HREmail,
			Status:        team.StatusActive,
		}
		if err := s.affiliations.Create(ctx, affiliation); err != nil {
			return nil, err
		}
		if err := s.users.AdjustCurrentEmployees(req.HREmail, 1); err != nil {
			return nil, err
		}
	}

	s.publish(ctx, "REQUEST_APPROVED", req.UserEmail, "Request approved",
		"Your request for "+req.AssetName+" was approved", req.ID)
	s.auditSvc.LogAction(ctx, &callerEmail, "REQUEST_APPROVED", map[string]interface{}{
		"request_id":     id,
		"asset_id":       req.AssetID,
		"employee_email": req.UserEmail,
	}, ip, "success")

	return &ApproveResult{Request: req}, nil
}

// ==============================
// Reject
// ==============================

// Reject moves a Pending request to the terminal Rejected state. No inventory
// or affiliation side effects.
func (s *service) Reject(ctx context.Context, id uint, callerEmail, ip string) (*AssetRequest, error) {
	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	if req.HREmail != callerEmail {
		return nil, ErrNotOwner
	}
	if req.Status != StatusPending {
		return nil, ErrInvalidState
	}

	now := time.Now()
	if err := s.repo.MarkRejected(ctx, id, now); err != nil {
		return nil, err
	}
	req.Status = StatusRejected
	req.RejectionDate = &now

	s.publish(ctx, "REQUEST_REJECTED", req.UserEmail, "Request rejected",
		"Your request for "+req.AssetName+" was rejected", req.ID)
	s.auditSvc.LogAction(ctx, &callerEmail, "REQUEST_REJECTED", map[string]interface{}{
		"request_id": id,
		"asset_id":   req.AssetID,
	}, ip, "success")

	return req, nil
}

// ==============================
// Return
// ==============================

// Return moves an Approved request to the terminal Returned state. Returnable
// assets get their availableQuantity restored by one; the quantity counter the
// approve path decremented is left alone.
//
// The caller must be either the requester or the owning HR.
func (s *service) Return(ctx context.Context, id uint, callerEmail, ip string) (*AssetRequest, error) {
	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	if req.UserEmail != callerEmail && req.HREmail != callerEmail {
		return nil, ErrNotOwner
	}
	if req.Status != StatusApproved {
		return nil, ErrInvalidState
	}

	now := time.Now()
	if err := s.repo.MarkReturned(ctx, id, now); err != nil {
		return nil, err
	}
	req.Status = StatusReturned
	req.ReturnDate = &now

	if req.AssetType == asset.TypeReturnable {
		if err := s.assets.IncrementAvailable(ctx, req.AssetID); err != nil {
			return nil, err
		}
	}

	s.publish(ctx, "ASSET_RETURNED", req.HREmail, "Asset returned",
		req.UserEmail+" returned "+req.AssetName, req.ID)
	s.auditSvc.LogAction(ctx, &callerEmail, "ASSET_RETURNED", map[string]interface{}{
		"request_id": id,
		"asset_id":   req.AssetID,
	}, ip, "success")

	return req, nil
}

// ==============================
// Listings
// ==============================

func (s *service) ListMine(ctx context.Context, filters MineFilters) ([]AssetRequest, error) {
	return s.repo.ListMine(ctx, filters)
}

func (s *service) ListByHR(ctx context.Context, hrEmail string) ([]AssetRequest, error) {
	return s.repo.ListByHR(ctx, hrEmail)
}

func (s *service) publish(ctx context.Context, eventType, userEmail, title, message string, requestID uint) {
	utils.PublishEvent(ctx, userEmail, notification.Event{
		Type:      eventType,
		UserEmail: userEmail,
		Title:     title,
		Message:   message,
		Category:  "request",
		Metadata: map[string]interface{}{
			"request_id": requestID,
		},
		OccurredAt: time.Now(),
	})
}
