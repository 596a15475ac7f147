package clinic

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const clinicCols = `id, name, address, phone, email, currency, app_version, updated_at`

func scanClinic(row pgx.Row) (*Clinic, error) {
	var c Clinic
	err := row.Scan(&c.ID, &c.Name, &c.Address, &c.Phone, &c.Email,
		&c.Currency, &c.AppVersion, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *repoPG) Get(ctx context.Context) (*Clinic, error) {
	// The settings table holds exactly one row, seeded by migration.
	return scanClinic(r.pool.QueryRow(ctx, `SELECT `+clinicCols+` FROM clinic LIMIT 1`))
}

func (r *repoPG) Update(ctx context.Context, in UpdateInput) (*Clinic, error) {
	return scanClinic(r.pool.QueryRow(ctx, `
		UPDATE clinic SET name = $1, address = $2, phone = $3, email = $4,
			currency = $5, updated_at = NOW()
		RETURNING `+clinicCols,
		in.Name, in.Address, in.Phone, in.Email, in.Currency))
}
