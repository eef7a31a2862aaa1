package catalog

import (
	"context"

	"mrhook/internal/domain"
	"mrhook/internal/repository/inventory"
	productrepo "mrhook/internal/repository/product"
)

// Service is the read path for the product catalog. Stock writes never go
// through here; they belong to the inventory ledger.
type Service struct {
	repo   productrepo.Repository
	ledger inventory.Ledger
}

func New(repo productrepo.Repository, ledger inventory.Ledger) *Service {
	return &Service{repo: repo, ledger: ledger}
}

func (s *Service) List(ctx context.Context, filter productrepo.ListFilter) ([]domain.Product, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Availability answers "could a commit for this quantity succeed right now".
// Advisory only: stock may change before checkout.
func (s *Service) Availability(ctx context.Context, productID string, quantity int) (inventory.Availability, error) {
	if quantity < 1 {
		quantity = 1
	}
	return s.ledger.CheckAvailability(ctx, productID, quantity)
}
