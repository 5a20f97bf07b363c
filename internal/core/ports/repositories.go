package ports

import (
	"context"
	"time"

	"exchange-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OrderRepository defines persistence operations for the live ledger.
// Methods accepting pgx.Tx run inside the order-creation or archival
// transaction.
type OrderRepository interface {
	// LockLedger serialises writers for the rest of tx.
	LockLedger(ctx context.Context, tx pgx.Tx) error
	Create(ctx context.Context, tx pgx.Tx, order *domain.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Order, error)
	GetByReference(ctx context.Context, reference string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.OrderStatus, updatedAt time.Time) error
	ReferenceExists(ctx context.Context, tx pgx.Tx, reference string) (bool, error)
	ExistsActiveByExternalTxID(ctx context.Context, tx pgx.Tx, externalTxID string) (bool, error)
	ExistsActiveByProof(ctx context.Context, tx pgx.Tx, payload string) (bool, error)
	List(ctx context.Context, params OrderListParams) ([]domain.Order, int64, error)
	// ListArchivable locks up to limit terminal orders created before cutoff.
	ListArchivable(ctx context.Context, tx pgx.Tx, cutoff time.Time, limit int) ([]domain.Order, error)
	DeleteByIDs(ctx context.Context, tx pgx.Tx, ids []uuid.UUID) (int64, error)
	GetTotals(ctx context.Context, from, to time.Time) (*domain.ReportTotals, error)
}

// OrderListParams holds search + pagination for listing orders.
type OrderListParams struct {
	Search   string
	Page     int
	PageSize int
}

// ArchiveRepository defines persistence for archived orders. Rows are
// never updated once written.
type ArchiveRepository interface {
	// InsertIfAbsent reports whether a new row was written.
	InsertIfAbsent(ctx context.Context, tx pgx.Tx, order *domain.Order) (bool, error)
	GetByReference(ctx context.Context, reference string) (*domain.Order, error)
	ReferenceExists(ctx context.Context, tx pgx.Tx, reference string) (bool, error)
	ExistsActiveByProof(ctx context.Context, tx pgx.Tx, payload string) (bool, error)
}

// RateRepository persists rate and tier values keyed by name.
type RateRepository interface {
	LoadAll(ctx context.Context) ([]domain.RateRow, error)
	Upsert(ctx context.Context, tx pgx.Tx, rows []domain.RateRow) error
}

// AuditRepository defines persistence for audit records.
type AuditRepository interface {
	Create(ctx context.Context, record *domain.AuditRecord) error
	List(ctx context.Context, page, pageSize int) ([]domain.AuditRecord, int64, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
