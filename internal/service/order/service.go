package order

import (
	"context"
	"errors"
	"fmt"

	"mrhook/internal/domain"
	orderrepo "mrhook/internal/repository/order"
)

// Service converts carts into orders with all-or-nothing semantics and
// serves the order history read path.
type Service struct {
	repo commitRepo
}

type commitRepo interface {
	CommitCart(ctx context.Context, userID string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	GetByID(ctx context.Context, userID, orderID string) (*domain.Order, error)
}

func New(repo orderrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Commit places an order from the user's cart. The failure taxonomy is
// fixed: ErrEmptyCart and InsufficientStockError are user-correctable and
// must not be retried as-is; everything else is a persistence failure and
// safe to retry whole, since nothing partial was committed.
func (s *Service) Commit(ctx context.Context, userID string) (*domain.Order, error) {
	order, err := s.repo.CommitCart(ctx, userID)
	if err != nil {
		var short *domain.InsufficientStockError
		if errors.Is(err, domain.ErrEmptyCart) || errors.As(err, &short) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return order, nil
}

func (s *Service) History(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, userID, orderID)
}
