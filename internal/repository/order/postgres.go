package order

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"mrhook/internal/domain"
	"mrhook/internal/pricing"
	"mrhook/internal/repository/inventory"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

func invalidID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}

type postgresRepo struct {
	pool   *pgxpool.Pool
	ledger inventory.Ledger
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, ledger inventory.Ledger, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, ledger: ledger, logger: logger}
}

type stagedLine struct {
	productID string
	quantity  int
}

func (r *postgresRepo) CommitCart(ctx context.Context, userID string) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Ascending product id keeps concurrent commits locking product rows
	// in the same order.
	staged, err := stagedLines(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if len(staged) == 0 {
		return nil, domain.ErrEmptyCart
	}

	order := domain.Order{
		ID:       uuid.NewString(),
		UserID:   userID,
		PlacedAt: time.Now().UTC(),
		Lines:    make([]domain.OrderLine, 0, len(staged)),
	}

	for i, line := range staged {
		unitPrice, err := r.ledger.ReserveAndDecrement(ctx, tx, line.productID, line.quantity)
		if err != nil {
			if errors.Is(err, inventory.ErrInsufficient) {
				shortErr, err := r.collectShortages(ctx, tx, staged[i:])
				if err != nil {
					return nil, err
				}
				r.logger.Printf("order repo: commit user_id=%s aborted: %v", userID, shortErr)
				return nil, shortErr
			}
			return nil, err
		}
		order.Lines = append(order.Lines, domain.OrderLine{
			OrderID:        order.ID,
			ProductID:      line.productID,
			Quantity:       line.quantity,
			UnitPriceCents: unitPrice,
			SubtotalCents:  pricing.Subtotal(unitPrice, line.quantity),
		})
	}

	order.TotalCents = pricing.Total(order.Lines)

	if _, err := tx.Exec(ctx, `
INSERT INTO orders (id, user_id, total_cents, placed_at)
VALUES ($1, $2, $3, $4)
`, order.ID, order.UserID, order.TotalCents, order.PlacedAt); err != nil {
		return nil, err
	}

	for _, l := range order.Lines {
		if _, err := tx.Exec(ctx, `
INSERT INTO order_lines (order_id, product_id, quantity, unit_price_cents, subtotal_cents)
VALUES ($1, $2, $3, $4, $5)
`, l.OrderID, l.ProductID, l.Quantity, l.UnitPriceCents, l.SubtotalCents); err != nil {
			return nil, err
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_lines WHERE user_id = $1`, userID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: committed order_id=%s user_id=%s lines=%d total_cents=%d",
		order.ID, order.UserID, len(order.Lines), order.TotalCents)
	return &order, nil
}

func stagedLines(ctx context.Context, tx pgx.Tx, userID string) ([]stagedLine, error) {
	rows, err := tx.Query(ctx, `
SELECT product_id::text, quantity
FROM cart_lines
WHERE user_id = $1
ORDER BY product_id ASC
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var staged []stagedLine
	for rows.Next() {
		var l stagedLine
		if err := rows.Scan(&l.productID, &l.quantity); err != nil {
			return nil, err
		}
		staged = append(staged, l)
	}
	return staged, rows.Err()
}

// collectShortages reads current stock for the failed line and every line
// not yet reserved, so the caller learns about all shortages in one round
// trip. The transaction is rolled back by the caller regardless.
func (r *postgresRepo) collectShortages(ctx context.Context, tx pgx.Tx, remaining []stagedLine) (*domain.InsufficientStockError, error) {
	out := &domain.InsufficientStockError{}
	for _, line := range remaining {
		stock, err := r.ledger.StockWithin(ctx, tx, line.productID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				stock = 0
			} else {
				return nil, err
			}
		}
		if stock < line.quantity {
			out.Shortages = append(out.Shortages, domain.StockShortage{
				ProductID: line.productID,
				Requested: line.quantity,
				Available: stock,
			})
		}
	}
	return out, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id::text, user_id::text, total_cents, placed_at
FROM orders
WHERE user_id = $1
ORDER BY placed_at DESC
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	index := make(map[string]int)
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalCents, &o.PlacedAt); err != nil {
			return nil, err
		}
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	lineRows, err := r.pool.Query(ctx, `
SELECT ol.order_id::text, ol.product_id::text, ol.quantity, ol.unit_price_cents, ol.subtotal_cents
FROM order_lines ol
JOIN orders o ON o.id = ol.order_id
WHERE o.user_id = $1
ORDER BY ol.order_id, ol.product_id
`, userID)
	if err != nil {
		return nil, err
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var l domain.OrderLine
		if err := lineRows.Scan(&l.OrderID, &l.ProductID, &l.Quantity, &l.UnitPriceCents, &l.SubtotalCents); err != nil {
			return nil, err
		}
		if i, ok := index[l.OrderID]; ok {
			orders[i].Lines = append(orders[i].Lines, l)
		}
	}
	if err := lineRows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	var o domain.Order
	err := r.pool.QueryRow(ctx, `
SELECT id::text, user_id::text, total_cents, placed_at
FROM orders
WHERE id = $1 AND user_id = $2
`, orderID, userID).Scan(&o.ID, &o.UserID, &o.TotalCents, &o.PlacedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || invalidID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
SELECT order_id::text, product_id::text, quantity, unit_price_cents, subtotal_cents
FROM order_lines
WHERE order_id = $1
ORDER BY product_id
`, o.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var l domain.OrderLine
		if err := rows.Scan(&l.OrderID, &l.ProductID, &l.Quantity, &l.UnitPriceCents, &l.SubtotalCents); err != nil {
			return nil, err
		}
		o.Lines = append(o.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}
