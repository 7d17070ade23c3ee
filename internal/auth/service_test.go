package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/assetverse/assetverse-backend/config"
)

type fakeUserRepo struct {
	users map[string]*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*User)}
}

func (f *fakeUserRepo) Create(user *User) error {
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) UpdateProfile(email string, in UpdateProfileInput) error {
	u, ok := f.users[email]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Name = in.Name
	u.Phone = in.Phone
	u.ProfileImage = in.ProfileImage
	return nil
}

func (f *fakeUserRepo) UpdateCompany(email, companyName, hrEmail string) error { return nil }
func (f *fakeUserRepo) ClearCompany(email string) error                       { return nil }
func (f *fakeUserRepo) AdjustCurrentEmployees(hrEmail string, delta int) error {
	return nil
}
func (f *fakeUserRepo) UpdateSubscription(hrEmail, packageName string, employeeLimit int) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWTAccessSecret:    "access-secret",
		JWTRefreshSecret:   "refresh-secret",
		JWTAccessTTLHours:  1,
		JWTRefreshTTLHours: 168,
	}
}

func TestRegisterHRSeedsSubscriptionDefaults(t *testing.T) {
	svc := NewService(newFakeUserRepo(), testConfig())

	user, err := svc.Register(RegisterInput{
		DisplayName: "Harriet",
		Email:       "hr@acme.com",
		Password:    "s3cret-pass",
		Role:        "HR",
		CompanyName: "Acme Corp",
		CompanyLogo: "https://cdn.acme.com/logo.png",
	})

	assert.NoError(t, err)
	assert.Equal(t, "hr", user.Role)
	assert.Equal(t, DefaultPackageLimit, user.PackageLimit)
	assert.Equal(t, 0, user.CurrentEmployees)
	assert.Equal(t, "basic", user.Subscription)
	// Missing profile image falls back to the company logo.
	assert.Equal(t, "https://cdn.acme.com/logo.png", user.ProfileImage)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
}

func TestRegisterEmployeeSkipsCompanyFields(t *testing.T) {
	svc := NewService(newFakeUserRepo(), testConfig())

	user, err := svc.Register(RegisterInput{
		DisplayName: "Evan",
		Email:       "emp@acme.com",
		Password:    "s3cret-pass",
		Role:        "employee",
		CompanyName: "Should Be Ignored",
	})

	assert.NoError(t, err)
	assert.Equal(t, "", user.CompanyName)
	assert.Equal(t, 0, user.PackageLimit)
	assert.Equal(t, "", user.Subscription)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewService(newFakeUserRepo(), testConfig())

	in := RegisterInput{
		DisplayName: "Harriet",
		Email:       "hr@acme.com",
		Password:    "s3cret-pass",
		Role:        "hr",
	}
	_, err := svc.Register(in)
	assert.NoError(t, err)

	_, err = svc.Register(in)
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc := NewService(newFakeUserRepo(), testConfig())

	_, err := svc.Register(RegisterInput{
		Email:    "x@acme.com",
		Password: "s3cret-pass",
		Role:     "superadmin",
	})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestLoginAndRefresh(t *testing.T) {
	svc := NewService(newFakeUserRepo(), testConfig())

	_, err := svc.Register(RegisterInput{
		DisplayName: "Harriet",
		Email:       "hr@acme.com",
		Password:    "s3cret-pass",
		Role:        "hr",
	})
	assert.NoError(t, err)

	pair, user, err := svc.Login(LoginInput{Email: "hr@acme.com", Password: "s3cret-pass"})
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "hr@acme.com", user.Email)

	access, err := svc.Refresh(pair.RefreshToken)
	assert.NoError(t, err)
	assert.NotEmpty(t, access)

	// An access token is signed with the wrong secret for refreshing.
	_, err = svc.Refresh(pair.AccessToken)
	assert.Error(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := NewService(newFakeUserRepo(), testConfig())

	_, err := svc.Register(RegisterInput{
		Email:    "hr@acme.com",
		Password: "s3cret-pass",
		Role:     "hr",
	})
	assert.NoError(t, err)

	_, _, err = svc.Login(LoginInput{Email: "hr@acme.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(LoginInput{Email: "ghost@acme.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetRoleReturnsEmptyForUnknownUser(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["hr@acme.com"] = &User{Email: "hr@acme.com", Role: "hr"}
	svc := NewService(repo, testConfig())

	role, err := svc.GetRole("hr@acme.com")
	assert.NoError(t, err)
	assert.Equal(t, "hr", role)

	// Unknown emails report an empty role, not an error.
	role, err = svc.GetRole("ghost@acme.com")
	assert.NoError(t, err)
	assert.Equal(t, "", role)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	svc := NewService(newFakeUserRepo(), testConfig())

	err := svc.UpdateProfile("ghost@acme.com", UpdateProfileInput{Name: "Ghost"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
