package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/assetverse/assetverse-backend/config"
	"github.com/assetverse/assetverse-backend/internal/auditlog"
	"github.com/assetverse/assetverse-backend/internal/auth"
)

type fakePaymentRepo struct {
	payments map[string]*Payment
	packages []Package
	nextID   uint
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[string]*Payment), nextID: 1}
}

func (f *fakePaymentRepo) CreatePayment(ctx context.Context, p *Payment) error {
	p.ID = f.nextID
	f.nextID++
	f.payments[p.OrderID] = p
	return nil
}

func (f *fakePaymentRepo) FindByOrderID(ctx context.Context, orderID string) (*Payment, error) {
	p, ok := f.payments[orderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePaymentRepo) FindByIDAndHR(ctx context.Context, id uint, hrEmail string) (*Payment, error) {
	for _, p := range f.payments {
		if p.ID == id && p.HREmail == hrEmail {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePaymentRepo) MarkVerified(ctx context.Context, orderID, transactionID, status string, at time.Time) error {
	p, ok := f.payments[orderID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.TransactionID = transactionID
	p.Status = status
	p.PaymentDate = &at
	return nil
}

func (f *fakePaymentRepo) ListByHR(ctx context.Context, hrEmail string) ([]Payment, error) {
	var out []Payment
	for _, p := range f.payments {
		if p.HREmail == hrEmail {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) FindPackage(ctx context.Context, name string) (*Package, error) {
	for _, pkg := range f.packages {
		if pkg.Name == name {
			cp := pkg
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePaymentRepo) ListPackages(ctx context.Context) ([]Package, error) {
	return f.packages, nil
}

func (f *fakePaymentRepo) SeedPackages(ctx context.Context, packages []Package) error {
	if len(f.packages) == 0 {
		f.packages = packages
	}
	return nil
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
func (f *fakeUserRepo) ClearCompany(email string) error                              { return nil }
func (f *fakeUserRepo) AdjustCurrentEmployees(hrEmail string, delta int) error       { return nil }

func (f *fakeUserRepo) UpdateSubscription(hrEmail, packageName string, employeeLimit int) error {
	if u, ok := f.users[hrEmail]; ok {
		u.Subscription = packageName
		u.PackageLimit = employeeLimit
	}
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

const testSecret = "test-razorpay-secret"

func newVerifyFixture() (Service, *fakePaymentRepo, *fakeUserRepo, *fakeAuditService) {
	repo := newFakePaymentRepo()
	repo.packages = DefaultPackages
	users := &fakeUserRepo{users: map[string]*auth.User{
		"hr@acme.com": {Email: "hr@acme.com", Role: "hr", Subscription: "basic", PackageLimit: 5},
	}}
	audit := &fakeAuditService{}
	cfg := &config.Config{RazorpayKey: "rzp_test_key", RazorpaySecret: testSecret}
	return NewService(repo, users, cfg, audit), repo, users, audit
}

func signPayload(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func pendingPayment(repo *fakePaymentRepo, orderID string) *Payment {
	p := &Payment{
		HREmail:       "hr@acme.com",
		PackageName:   "premium",
		EmployeeLimit: 20,
		Amount:        15,
		Currency:      "INR",
		OrderID:       orderID,
		ReceiptNo:     "rcpt-001",
		Status:        StatusPending,
	}
	repo.CreatePayment(context.Background(), p)
	return p
}

func TestVerifyAndUpgradeHappyPath(t *testing.T) {
	svc, repo, users, audit := newVerifyFixture()
	pendingPayment(repo, "order_123")

	p, err := svc.VerifyAndUpgrade(context.Background(), "hr@acme.com", VerifyPaymentInput{
		OrderID:     "order_123",
		PaymentID:   "pay_456",
		RazorpaySig: signPayload("order_123", "pay_456"),
	}, "127.0.0.1")

	assert.NoError(t, err)
	assert.Equal(t, StatusSuccess, p.Status)
	assert.Equal(t, "pay_456", p.TransactionID)
	assert.NotNil(t, p.PaymentDate)

	// The upgrade lands on the user record in the same call.
	assert.Equal(t, "premium", users.users["hr@acme.com"].Subscription)
	assert.Equal(t, 20, users.users["hr@acme.com"].PackageLimit)
	assert.Contains(t, audit.actions, "PACKAGE_UPGRADED")
}

func TestVerifyRejectsBadSignature(t *testing.T) {
	svc, repo, users, _ := newVerifyFixture()
	pendingPayment(repo, "order_123")

	_, err := svc.VerifyAndUpgrade(context.Background(), "hr@acme.com", VerifyPaymentInput{
		OrderID:     "order_123",
		PaymentID:   "pay_456",
		RazorpaySig: "deadbeef",
	}, "127.0.0.1")

	assert.ErrorIs(t, err, ErrInvalidSignature)
	assert.Equal(t, StatusPending, repo.payments["order_123"].Status)
	assert.Equal(t, "basic", users.users["hr@acme.com"].Subscription)
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	svc, repo, _, _ := newVerifyFixture()
	pendingPayment(repo, "order_123")

	// Signature computed over a different payment id does not check out.
	_, err := svc.VerifyAndUpgrade(context.Background(), "hr@acme.com", VerifyPaymentInput{
		OrderID:     "order_123",
		PaymentID:   "pay_456",
		RazorpaySig: signPayload("order_123", "pay_999"),
	}, "127.0.0.1")

	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyUnknownOrder(t *testing.T) {
	svc, _, _, _ := newVerifyFixture()

	_, err := svc.VerifyAndUpgrade(context.Background(), "hr@acme.com", VerifyPaymentInput{
		OrderID:     "order_missing",
		PaymentID:   "pay_456",
		RazorpaySig: signPayload("order_missing", "pay_456"),
	}, "127.0.0.1")

	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestVerifyReplayIsNoOp(t *testing.T) {
	svc, repo, _, audit := newVerifyFixture()
	pendingPayment(repo, "order_123")

	in := VerifyPaymentInput{
		OrderID:     "order_123",
		PaymentID:   "pay_456",
		RazorpaySig: signPayload("order_123", "pay_456"),
	}

	_, err := svc.VerifyAndUpgrade(context.Background(), "hr@acme.com", in, "127.0.0.1")
	assert.NoError(t, err)
	upgrades := 0
	for _, action := range audit.actions {
		if action == "PACKAGE_UPGRADED" {
			upgrades++
		}
	}
	assert.Equal(t, 1, upgrades)

	p, err := svc.VerifyAndUpgrade(context.Background(), "hr@acme.com", in, "127.0.0.1")
	assert.NoError(t, err)
	assert.Equal(t, StatusSuccess, p.Status)

	// Replay of a settled order records nothing new.
	upgrades = 0
	for _, action := range audit.actions {
		if action == "PACKAGE_UPGRADED" {
			upgrades++
		}
	}
	assert.Equal(t, 1, upgrades)
}

func TestReceiptRendersForOwnPayment(t *testing.T) {
	svc, repo, _, _ := newVerifyFixture()
	p := pendingPayment(repo, "order_123")
	now := time.Now()
	repo.payments["order_123"].Status = StatusSuccess
	repo.payments["order_123"].PaymentDate = &now

	data, filename, err := svc.Receipt(context.Background(), p.ID, "hr@acme.com")

	assert.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, "receipt_rcpt-001.pdf", filename)

	// Another HR cannot pull the same receipt.
	_, _, err = svc.Receipt(context.Background(), p.ID, "other@corp.com")
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}
