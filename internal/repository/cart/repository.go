package cart

import (
	"context"

	"mrhook/internal/domain"
)

// Repository stages desired purchases per user before commit. No stock
// checks happen here: additions are optimistic and the authoritative
// validation is deferred to commit time.
type Repository interface {
	// AddLine creates a (user, product) line or adds to its quantity.
	AddLine(ctx context.Context, userID, productID string, quantity int) error
	// SetQuantity replaces a line's quantity; quantity <= 0 deletes the line.
	SetQuantity(ctx context.Context, userID, productID string, quantity int) error
	// RemoveLine deletes a line. Removing an absent line is a no-op.
	RemoveLine(ctx context.Context, userID, productID string) error
	// Clear deletes every line for the user. Idempotent.
	Clear(ctx context.Context, userID string) error
	// Snapshot lists the user's lines in insertion order.
	Snapshot(ctx context.Context, userID string) ([]domain.CartLine, error)
}
