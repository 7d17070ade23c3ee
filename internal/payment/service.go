package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	razorpay "github.com/razorpay/razorpay-go"
	"gorm.io/gorm"

	"github.com/assetverse/assetverse-backend/config"
	"github.com/assetverse/assetverse-backend/internal/auditlog"
	"github.com/assetverse/assetverse-backend/internal/auth"
	"github.com/assetverse/assetverse-backend/internal/notification"
	"github.com/assetverse/assetverse-backend/utils"
)

var (
	ErrPackageNotFound  = errors.New("package not found")
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrInvalidSignature = errors.New("invalid payment signature")
)

// DefaultPackages is the seeded subscription catalog.
var DefaultPackages = []Package{
	{Name: "basic", EmployeeLimit: 5, Price: 0},
	{Name: "standard", EmployeeLimit: 10, Price: 5},
	{Name: "premium", EmployeeLimit: 20, Price: 15},
}

type Service interface {
	ListPackages(ctx context.Context) ([]Package, error)
	StartUpgrade(ctx context.Context, hrEmail string, in CreateOrderInput, ip string) (*CreateOrderResponse, error)
	VerifyAndUpgrade(ctx context.Context, hrEmail string, in VerifyPaymentInput, ip string) (*Payment, error)
	History(ctx context.Context, hrEmail string) ([]Payment, error)
	Receipt(ctx context.Context, id uint, hrEmail string) ([]byte, string, error)
}

type service struct {
	repo     Repository
	users    auth.Repository
	client   *razorpay.Client
	cfg      *config.Config
	auditSvc auditlog.Service
}

func NewService(repo Repository, users auth.Repository, cfg *config.Config, auditSvc auditlog.Service) Service {
	return &service{
		repo:     repo,
		users:    users,
		client:   razorpay.NewClient(cfg.RazorpayKey, cfg.RazorpaySecret),
		cfg:      cfg,
		auditSvc: auditSvc,
	}
}

func (s *service) ListPackages(ctx context.Context) ([]Package, error) {
	return s.repo.ListPackages(ctx)
}

// StartUpgrade creates the Razorpay order for a package and records the
// pending ledger row. The returned order id is the client-side checkout
// handle.
func (s *service) StartUpgrade(ctx context.Context, hrEmail string, in CreateOrderInput, ip string) (*CreateOrderResponse, error) {
	pkg, err := s.repo.FindPackage(ctx, in.PackageName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}

	amountInPaise := int(pkg.Price * 100)
	data := map[string]interface{}{
		"amount":          amountInPaise,
		"currency":        "INR",
		"payment_capture": 1,
		"notes": map[string]interface{}{
			"hr_email":     hrEmail,
			"package_name": pkg.Name,
		},
	}

	order, err := s.client.Order.Create(data, nil)
	if err != nil {
		s.auditSvc.LogAction(ctx, &hrEmail, "PACKAGE_UPGRADE_INITIATED", map[string]interface{}{
			"package_name": pkg.Name,
			"error":        err.Error(),
		}, ip, "failure")
		return nil, fmt.Errorf("razorpay order creation failed: %w", err)
	}

	orderID, ok := order["id"].(string)
	if !ok {
		return nil, errors.New("unable to extract order_id from Razorpay response")
	}

	p := &Payment{
		HREmail:       hrEmail,
		PackageName:   pkg.Name,
		EmployeeLimit: pkg.EmployeeLimit,
		Amount:        pkg.Price,
		Currency:      "INR",
		OrderID:       orderID,
		ReceiptNo:     uuid.New().String(),
		Status:        StatusPending,
	}
	if err := s.repo.CreatePayment(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create payment record: %w", err)
	}

	s.auditSvc.LogAction(ctx, &hrEmail, "PACKAGE_UPGRADE_INITIATED", map[string]interface{}{
		"package_name": pkg.Name,
		"order_id":     orderID,
		"amount":       pkg.Price,
	}, ip, "success")

	return &CreateOrderResponse{
		OrderID:  orderID,
		Amount:   pkg.Price,
		Currency: "INR",
		Key:      s.cfg.RazorpayKey,
	}, nil
}

// VerifyAndUpgrade checks the callback signature, marks the ledger row and
// immediately bumps the HR's seat limit and subscription tier.
func (s *service) VerifyAndUpgrade(ctx context.Context, hrEmail string, in VerifyPaymentInput, ip string) (*Payment, error) {
	expected := hmac.New(sha256.New, []byte(s.cfg.RazorpaySecret))
	expected.Write([]byte(in.OrderID + "|" + in.PaymentID))
	computed := hex.EncodeToString(expected.Sum(nil))

	if computed != in.RazorpaySig {
		s.auditSvc.LogAction(ctx, &hrEmail, "PACKAGE_UPGRADE_FAILED", map[string]interface{}{
			"order_id": in.OrderID,
			"reason":   "invalid payment signature",
		}, ip, "failure")
		return nil, ErrInvalidSignature
	}

	p, err := s.repo.FindByOrderID(ctx, in.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	// Verified callbacks replayed for an already-settled order are a no-op.
	if p.Status == StatusSuccess {
		return p, nil
	}

	now := time.Now()
	if err := s.repo.MarkVerified(ctx, in.OrderID, in.PaymentID, StatusSuccess, now); err != nil {
		return nil, err
	}
	p.Status = StatusSuccess
	p.TransactionID = in.PaymentID
	p.PaymentDate = &now

	if err := s.users.UpdateSubscription(p.HREmail, p.PackageName, p.EmployeeLimit); err != nil {
		return nil, err
	}

	utils.PublishEvent(ctx, p.HREmail, notification.Event{
		Type:      "PACKAGE_UPGRADED",
		UserEmail: p.HREmail,
		Title:     "Subscription upgraded",
		Message:   "Your subscription is now " + p.PackageName,
		Category:  "payment",
		Metadata: map[string]interface{}{
			"package_name":   p.PackageName,
			"employee_limit": p.EmployeeLimit,
		},
		OccurredAt: now,
	})

	s.auditSvc.LogAction(ctx, &hrEmail, "PACKAGE_UPGRADED", map[string]interface{}{
		"order_id":       in.OrderID,
		"transaction_id": in.PaymentID,
		"package_name":   p.PackageName,
		"employee_limit": p.EmployeeLimit,
	}, ip, "success")

	return p, nil
}

func (s *service) History(ctx context.Context, hrEmail string) ([]Payment, error) {
	return s.repo.ListByHR(ctx, hrEmail)
}

// Receipt renders a PDF receipt for one settled payment.
func (s *service) Receipt(ctx context.Context, id uint, hrEmail string) ([]byte, string, error) {
	p, err := s.repo.FindByIDAndHR(ctx, id, hrEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrPaymentNotFound
		}
		return nil, "", err
	}

	data, err := renderReceiptPDF(p)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("receipt_%s.pdf", p.ReceiptNo)
	return data, filename, nil
}
