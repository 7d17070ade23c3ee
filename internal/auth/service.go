package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/assetverse/assetverse-backend/config"
)

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidRole        = errors.New("invalid role")
)

// DefaultPackageLimit is the employee-seat limit of the basic subscription.
const DefaultPackageLimit = 5

type Service interface {
	Register(in RegisterInput) (*User, error)
	Login(in LoginInput) (*TokenPair, *User, error)
	Refresh(refreshToken string) (string, error)
	GetUserByEmail(email string) (User, error)
	GetRole(email string) (string, error)
	UpdateProfile(email string, in UpdateProfileInput) error
}

type service struct {
	repo          Repository
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewService(r Repository, cfg *config.Config) Service {
	return &service{
		repo:          r,
		accessSecret:  cfg.JWTAccessSecret,
		refreshSecret: cfg.JWTRefreshSecret,
		accessTTL:     time.Duration(cfg.JWTAccessTTLHours) * time.Hour,
		refreshTTL:    time.Duration(cfg.JWTRefreshTTLHours) * time.Hour,
	}
}

// =============================
// Register
// =============================

func (s *service) Register(in RegisterInput) (*User, error) {
	role := strings.ToLower(in.Role)
	if role != "hr" && role != "employee" {
		return nil, ErrInvalidRole
	}

	if existing, err := s.repo.FindByEmail(in.Email); err == nil && existing != nil {
		return nil, ErrEmailExists
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	profileImage := in.ProfileImage
	if profileImage == "" {
		profileImage = in.CompanyLogo
	}

	user := &User{
		Name:         in.DisplayName,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		DateOfBirth:  in.DateOfBirth,
		ProfileImage: profileImage,
	}

	// HR accounts start on the basic package with an empty team.
	if role == "hr" {
		user.CompanyName = in.CompanyName
		user.CompanyLogo = in.CompanyLogo
		user.PackageLimit = DefaultPackageLimit
		user.CurrentEmployees = 0
		user.Subscription = "basic"
	}

	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// =============================
// Login / tokens
// =============================

func (s *service) Login(in LoginInput) (*TokenPair, *User, error) {
	user, err := s.repo.FindByEmail(in.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	access, err := s.signToken(user.Email, user.Role, s.accessSecret, s.accessTTL)
	if err != nil {
		return nil, nil, err
	}
	refresh, err := s.signToken(user.Email, user.Role, s.refreshSecret, s.refreshTTL)
	if err != nil {
		return nil, nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, user, nil
}

func (s *service) Refresh(refreshToken string) (string, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.refreshSecret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid refresh token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if email == "" {
		return "", errors.New("email missing in token")
	}

	return s.signToken(email, role, s.accessSecret, s.accessTTL)
}

func (s *service) signToken(email, role, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"role":  role,
		"exp":   time.Now().Add(ttl).Unix(),
		"iat":   time.Now().Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// =============================
// Lookups / profile
// =============================

func (s *service) GetUserByEmail(email string) (User, error) {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return *user, nil
}

// GetRole returns the stored role, or "" when no such user exists. The role
// endpoint reports null rather than 404 for unknown emails.
func (s *service) GetRole(email string) (string, error) {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return user.Role, nil
}

func (s *service) UpdateProfile(email string, in UpdateProfileInput) error {
	if _, err := s.repo.FindByEmail(email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.repo.UpdateProfile(email, in)
}
