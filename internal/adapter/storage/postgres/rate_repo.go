package postgres

import (
	"context"
	"fmt"

	"exchange-ledger/internal/core/domain"
	"exchange-ledger/internal/core/ports"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// RateRepo implements ports.RateRepository over the rates key/value table.
type RateRepo struct {
	pool Pool
}

// NewRateRepo creates a new RateRepo.
func NewRateRepo(pool Pool) *RateRepo {
	return &RateRepo{pool: pool}
}

var _ ports.RateRepository = (*RateRepo)(nil)

// LoadAll returns every persisted rate and tier key.
func (r *RateRepo) LoadAll(ctx context.Context) ([]domain.RateRow, error) {
	rows, err := r.pool.Query(ctx, `SELECT name, value::text, updated_at FROM rates ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("load rates: %w", err)
	}
	defer rows.Close()

	var out []domain.RateRow
	for rows.Next() {
		var (
			row   domain.RateRow
			value string
		)
		if err := rows.Scan(&row.Name, &value, &row.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan rate row: %w", err)
		}
		if row.Value, err = decimal.NewFromString(value); err != nil {
			return nil, fmt.Errorf("parse rate %s: %w", row.Name, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rate rows: %w", err)
	}
	return out, nil
}

// Upsert writes rows within a database transaction.
func (r *RateRepo) Upsert(ctx context.Context, tx pgx.Tx, rows []domain.RateRow) error {
	query := `INSERT INTO rates (name, value, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

	for _, row := range rows {
		if _, err := tx.Exec(ctx, query, row.Name, row.Value, row.UpdatedAt); err != nil {
			return fmt.Errorf("upsert rate %s: %w", row.Name, err)
		}
	}
	return nil
}
