package cart

import (
	"context"
	"errors"

	"mrhook/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) AddLine(ctx context.Context, userID, productID string, quantity int) error {
	const q = `
INSERT INTO cart_lines (user_id, product_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (user_id, product_id) DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity
`
	if _, err := r.pool.Exec(ctx, q, userID, productID, quantity); err != nil {
		var pgErr *pgconn.PgError
		// 23503 foreign_key_violation or 22P02 malformed uuid: either way
		// the product does not exist.
		if errors.As(err, &pgErr) && (pgErr.Code == "23503" || pgErr.Code == "22P02") {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *postgresRepo) SetQuantity(ctx context.Context, userID, productID string, quantity int) error {
	if quantity <= 0 {
		return r.RemoveLine(ctx, userID, productID)
	}
	const q = `
UPDATE cart_lines
SET quantity = $3
WHERE user_id = $1 AND product_id = $2
`
	cmd, err := r.pool.Exec(ctx, q, userID, productID, quantity)
	if err != nil {
		if malformedID(err) {
			return domain.ErrNotFound
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) RemoveLine(ctx context.Context, userID, productID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_lines WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil && malformedID(err) {
		// A garbage product id cannot match a line; removal stays a no-op.
		return nil
	}
	return err
}

func malformedID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}

func (r *postgresRepo) Clear(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_lines WHERE user_id = $1`, userID)
	return err
}

func (r *postgresRepo) Snapshot(ctx context.Context, userID string) ([]domain.CartLine, error) {
	const q = `
SELECT cl.user_id::text, cl.product_id::text, cl.quantity, p.name, p.image_url, p.price_cents, cl.created_at
FROM cart_lines cl
JOIN products p ON p.id = cl.product_id
WHERE cl.user_id = $1
ORDER BY cl.created_at ASC, cl.product_id ASC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var l domain.CartLine
		if err := rows.Scan(&l.UserID, &l.ProductID, &l.Quantity, &l.ProductName, &l.ImageURL, &l.UnitPriceCents, &l.CreatedAt); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
