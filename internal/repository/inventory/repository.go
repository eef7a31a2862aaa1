package inventory

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Availability is a point-in-time, side-effect-free stock check. It is
// advisory only: the authoritative check happens inside ReserveAndDecrement.
type Availability struct {
	Available    bool `json:"available"`
	CurrentStock int  `json:"currentStock"`
}

// Ledger is the single source of truth for stock. All stock writes go
// through it; products are never sold below zero.
type Ledger interface {
	CheckAvailability(ctx context.Context, productID string, quantity int) (Availability, error)

	// ReserveAndDecrement subtracts quantity from the product's stock only
	// if stock >= quantity at the moment of the write, as one conditional
	// statement on the caller's transaction. It returns the product's unit
	// price captured by the same statement, or ErrInsufficient when the
	// condition did not hold.
	ReserveAndDecrement(ctx context.Context, tx pgx.Tx, productID string, quantity int) (unitPriceCents int64, err error)

	// StockWithin reads current stock on the caller's transaction.
	StockWithin(ctx context.Context, tx pgx.Tx, productID string) (int, error)

	// Restock adds quantity back to a product's stock.
	Restock(ctx context.Context, productID string, quantity int) error
}
