package postgres

import (
	"context"
	"fmt"

	"exchange-ledger/internal/core/domain"
	"exchange-ledger/internal/core/ports"
)

// AuditRepo implements ports.AuditRepository. The table is append-only.
type AuditRepo struct {
	pool Pool
}

// NewAuditRepo creates a PostgreSQL-backed AuditRepository.
func NewAuditRepo(pool Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

var _ ports.AuditRepository = (*AuditRepo)(nil)

func (r *AuditRepo) Create(ctx context.Context, rec *domain.AuditRecord) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO audit_log (id, timestamp, action, detail) VALUES ($1, $2, $3, $4)`,
		rec.ID, rec.Timestamp, rec.Action, rec.Detail,
	)
	if err != nil {
		return fmt.Errorf("insert audit record: %w", err)
	}
	return nil
}

func (r *AuditRepo) List(ctx context.Context, page, pageSize int) ([]domain.AuditRecord, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM audit_log`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count audit records: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, timestamp, action, detail FROM audit_log ORDER BY timestamp DESC LIMIT $1 OFFSET $2`,
		pageSize, (page-1)*pageSize,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit records: %w", err)
	}
	defer rows.Close()

	var records []domain.AuditRecord
	for rows.Next() {
		var rec domain.AuditRecord
		if err := rows.Scan(&rec.ID, &rec.Timestamp, &rec.Action, &rec.Detail); err != nil {
			return nil, 0, fmt.Errorf("scan audit row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate audit rows: %w", err)
	}
	return records, total, nil
}
