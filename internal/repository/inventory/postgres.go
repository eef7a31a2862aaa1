package inventory

import (
	"context"
	"errors"
	"io"
	"log"

	"mrhook/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

func invalidID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}

// ErrInsufficient means the conditional decrement matched no row: the
// product's stock was below the requested quantity at the moment of the
// write. Callers translate it into a domain.InsufficientStockError with the
// observed availability.
var ErrInsufficient = errors.New("insufficient stock")

type postgresLedger struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Ledger {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresLedger{pool: pool, logger: logger}
}

func (l *postgresLedger) CheckAvailability(ctx context.Context, productID string, quantity int) (Availability, error) {
	const q = `
SELECT stock
FROM products
WHERE id = $1
`
	var stock int
	if err := l.pool.QueryRow(ctx, q, productID).Scan(&stock); err != nil {
		if errors.Is(err, pgx.ErrNoRows) || invalidID(err) {
			return Availability{}, domain.ErrNotFound
		}
		return Availability{}, err
	}
	return Availability{Available: stock >= quantity, CurrentStock: stock}, nil
}

func (l *postgresLedger) ReserveAndDecrement(ctx context.Context, tx pgx.Tx, productID string, quantity int) (int64, error) {
	// The stock check and the write are one statement; two commits racing
	// over the last unit serialize on the row lock and the loser matches
	// nothing.
	const q = `
UPDATE products
SET stock = stock - $2
WHERE id = $1 AND stock >= $2
RETURNING price_cents
`
	var unitPrice int64
	err := tx.QueryRow(ctx, q, productID, quantity).Scan(&unitPrice)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			l.logger.Printf("inventory: reserve product_id=%s qty=%d insufficient", productID, quantity)
			return 0, ErrInsufficient
		}
		return 0, err
	}
	return unitPrice, nil
}

func (l *postgresLedger) StockWithin(ctx context.Context, tx pgx.Tx, productID string) (int, error) {
	var stock int
	err := tx.QueryRow(ctx, `SELECT stock FROM products WHERE id = $1`, productID).Scan(&stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, err
	}
	return stock, nil
}

func (l *postgresLedger) Restock(ctx context.Context, productID string, quantity int) error {
	const q = `
UPDATE products
SET stock = stock + $2
WHERE id = $1
`
	cmd, err := l.pool.Exec(ctx, q, productID, quantity)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	l.logger.Printf("inventory: restock product_id=%s qty=%d", productID, quantity)
	return nil
}
