package user

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

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const userColumns = `id::text, email, password_hash, first_name, last_name, phone, address_line1, address_line2, city, postcode, county, created_at`

func (r *postgresRepo) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	const q = `
INSERT INTO users (email, password_hash, first_name, last_name, phone, address_line1, address_line2, city, postcode, county)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING ` + userColumns + `
`
	var out domain.User
	err := r.pool.QueryRow(ctx, q,
		u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Phone,
		u.AddressLine1, u.AddressLine2, u.City, u.Postcode, u.County,
	).Scan(scanTargets(&out)...)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505 unique_violation on email.
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("user repo: create email=%s error=%v", u.Email, err)
		return nil, err
	}
	r.logger.Printf("user repo: created id=%s email=%s", out.ID, out.Email)
	return &out, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.fetch(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.fetch(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *postgresRepo) UpdateProfile(ctx context.Context, u domain.User) (*domain.User, error) {
	const q = `
UPDATE users
SET first_name = $2,
    last_name = $3,
    phone = $4,
    address_line1 = $5,
    address_line2 = $6,
    city = $7,
    postcode = $8,
    county = $9
WHERE id = $1
RETURNING ` + userColumns + `
`
	var out domain.User
	err := r.pool.QueryRow(ctx, q,
		u.ID, u.FirstName, u.LastName, u.Phone,
		u.AddressLine1, u.AddressLine2, u.City, u.Postcode, u.County,
	).Scan(scanTargets(&out)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) fetch(ctx context.Context, q string, arg interface{}) (*domain.User, error) {
	var out domain.User
	err := r.pool.QueryRow(ctx, q, arg).Scan(scanTargets(&out)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func scanTargets(u *domain.User) []interface{} {
	return []interface{}{
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone,
		&u.AddressLine1, &u.AddressLine2, &u.City, &u.Postcode, &u.County, &u.CreatedAt,
	}
}
