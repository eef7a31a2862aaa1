package order

import (
	"context"

	"mrhook/internal/domain"
)

type Repository interface {
	// CommitCart converts the user's cart into an immutable order inside a
	// single transaction: every line's stock is reserved and decremented,
	// order and lines are written with frozen prices, and the cart is
	// cleared. A failure at any step leaves the pre-commit state intact.
	//
	// Returns domain.ErrEmptyCart when there is nothing to commit and
	// *domain.InsufficientStockError when any line cannot be reserved.
	CommitCart(ctx context.Context, userID string) (*domain.Order, error)

	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	GetByID(ctx context.Context, userID, orderID string) (*domain.Order, error)
}
