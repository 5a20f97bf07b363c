package postgres

import (
	"context"
	"fmt"

	"exchange-ledger/internal/core/domain"
	"exchange-ledger/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

// ArchiveRepo implements ports.ArchiveRepository over order_archive.
type ArchiveRepo struct {
	pool Pool
}

// NewArchiveRepo creates a new ArchiveRepo.
func NewArchiveRepo(pool Pool) *ArchiveRepo {
	return &ArchiveRepo{pool: pool}
}

var _ ports.ArchiveRepository = (*ArchiveRepo)(nil)

// InsertIfAbsent copies an order into the archive. An order already archived
// under the same id is left untouched and reported as false. A different
// archived order holding the same reference fails the unique index.
func (r *ArchiveRepo) InsertIfAbsent(ctx context.Context, tx pgx.Tx, o *domain.Order) (bool, error) {
	query := `INSERT INTO order_archive (` + orderInsertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (id) DO NOTHING`

	tag, err := tx.Exec(ctx, query, orderArgs(o)...)
	if err != nil {
		return false, fmt.Errorf("archive order: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// GetByReference fetches an archived order by its reference.
func (r *ArchiveRepo) GetByReference(ctx context.Context, reference string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM order_archive WHERE reference = $1`
	return scanOrder(r.pool.QueryRow(ctx, query, reference))
}

// ReferenceExists reports whether an archived order uses reference.
func (r *ArchiveRepo) ReferenceExists(ctx context.Context, tx pgx.Tx, reference string) (bool, error) {
	return queryExists(ctx, tx, `SELECT EXISTS(SELECT 1 FROM order_archive WHERE reference = $1)`, reference)
}

// ExistsActiveByProof reports whether a non-rejected archived order was submitted with payload.
func (r *ArchiveRepo) ExistsActiveByProof(ctx context.Context, tx pgx.Tx, payload string) (bool, error) {
	return queryExists(ctx, tx,
		`SELECT EXISTS(SELECT 1 FROM order_archive WHERE md5(proof_payload) = md5($1) AND proof_payload = $1 AND status <> 'REJECTED')`,
		payload)
}
