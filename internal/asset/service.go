package asset

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrAssetNotFound = errors.New("asset not found")

type Service interface {
	Create(ctx context.Context, hrEmail, companyName string, in CreateAssetInput) (*Asset, error)
	GetByID(ctx context.Context, id uint) (*Asset, error)
	List(ctx context.Context, filters ListFilters) ([]Asset, int64, error)
	Update(ctx context.Context, id uint, in UpdateAssetInput) error
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Create registers an asset with every quantity counter set to the total.
func (s *service) Create(ctx context.Context, hrEmail, companyName string, in CreateAssetInput) (*Asset, error) {
	a := &Asset{
		ProductName:       in.ProductName,
		ProductImage:      in.ProductImage,
		ProductType:       in.ProductType,
		ProductQuantity:   in.ProductQuantity,
		AvailableQuantity: in.ProductQuantity,
		Quantity:          in.ProductQuantity,
		CompanyName:       companyName,
		HREmail:           hrEmail,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*Asset, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *service) List(ctx context.Context, filters ListFilters) ([]Asset, int64, error) {
	return s.repo.List(ctx, filters)
}

func (s *service) Update(ctx context.Context, id uint, in UpdateAssetInput) error {
	affected, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAssetNotFound
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAssetNotFound
	}
	return nil
}
