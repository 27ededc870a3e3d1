package product

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/snackschicken/delivery-api/internal/apperr"
)

// Service wraps the repository with catalog validation rules.
type Service struct {
	repo  Repository
	newID func() string
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, newID: uuid.NewString}
}

func (s *Service) List(ctx context.Context) ([]Product, error) { return s.repo.List(ctx) }

func (s *Service) Get(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByCategory(ctx context.Context, category string) ([]Product, error) {
	return s.repo.ListByCategory(ctx, category)
}

func (s *Service) Create(ctx context.Context, req CreateProductRequest) (*Product, error) {
	var v apperr.ValidationError
	if strings.TrimSpace(req.Name) == "" {
		v.Add("name", "name is required")
	}
	if strings.TrimSpace(req.Description) == "" {
		v.Add("description", "description is required")
	}
	if !validPrice(req.Price) {
		v.Add("price", "price must be a non-negative decimal with at most 2 fraction digits")
	}
	if !validCategory(req.Category) {
		v.Add("category", "category must be one of: "+strings.Join(Categories, ", "))
	}
	if err := v.AsError(); err != nil {
		return nil, err
	}

	p := &Product{
		ID:          s.newID(),
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateProductRequest) (*Product, error) {
	var v apperr.ValidationError
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		v.Add("name", "name must not be empty")
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) == "" {
		v.Add("description", "description must not be empty")
	}
	if req.Price != nil && !validPrice(*req.Price) {
		v.Add("price", "price must be a non-negative decimal with at most 2 fraction digits")
	}
	if req.Category != nil && !validCategory(*req.Category) {
		v.Add("category", "category must be one of: "+strings.Join(Categories, ", "))
	}
	if err := v.AsError(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, req)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func validCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

func validPrice(s string) bool {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}
	return d.Sign() >= 0 && d.Exponent() >= -2
}
