package cart

import (
	"context"
	"errors"
	"strings"

	"mrhook/internal/domain"
	cartrepo "mrhook/internal/repository/cart"
)

type Service struct {
	repo cartRepo
}

type cartRepo interface {
	AddLine(ctx context.Context, userID, productID string, quantity int) error
	SetQuantity(ctx context.Context, userID, productID string, quantity int) error
	RemoveLine(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
	Snapshot(ctx context.Context, userID string) ([]domain.CartLine, error)
}

func New(repo cartrepo.Repository) *Service {
	return &Service{repo: repo}
}

// AddLine stages quantity units of a product. Quantities for an existing
// line add up. Deliberately no stock check: stock can change between "add to
// cart" and checkout, so validation is deferred to commit time.
func (s *Service) AddLine(ctx context.Context, userID, productID string, quantity int) error {
	if strings.TrimSpace(productID) == "" {
		return errors.New("productId required")
	}
	if quantity < 1 {
		return errors.New("quantity must be positive")
	}
	return s.repo.AddLine(ctx, userID, productID, quantity)
}

// SetQuantity replaces a line's quantity; zero or negative deletes the line.
func (s *Service) SetQuantity(ctx context.Context, userID, productID string, quantity int) error {
	if strings.TrimSpace(productID) == "" {
		return errors.New("productId required")
	}
	return s.repo.SetQuantity(ctx, userID, productID, quantity)
}

func (s *Service) RemoveLine(ctx context.Context, userID, productID string) error {
	if strings.TrimSpace(productID) == "" {
		return errors.New("productId required")
	}
	return s.repo.RemoveLine(ctx, userID, productID)
}

func (s *Service) Clear(ctx context.Context, userID string) error {
	return s.repo.Clear(ctx, userID)
}

func (s *Service) Snapshot(ctx context.Context, userID string) ([]domain.CartLine, error) {
	return s.repo.Snapshot(ctx, userID)
}
