package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"exchange-ledger/internal/core/domain"
	"exchange-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ledgerLockKey identifies the transaction-scoped advisory lock that
// serialises order creation.
const ledgerLockKey int64 = 0x4558_4c45_4447_4552

// orderColumns is shared by the live and archive tables. Numeric columns
// are read as text so no precision is lost on the way to decimal.
const orderColumns = `id, reference, created_at, direction, source_amount::text, output_amount::text,
		rate_used::text, tier_label, external_tx_id, proof_ref, proof_payload, bank_name, account_no,
		account_name, status, client_agent, updated_at`

const orderInsertColumns = `id, reference, created_at, direction, source_amount, output_amount,
		rate_used, tier_label, external_tx_id, proof_ref, proof_payload, bank_name, account_no,
		account_name, status, client_agent, updated_at`

// OrderRepo implements ports.OrderRepository.
type OrderRepo struct {
	pool Pool
}

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(pool Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

var _ ports.OrderRepository = (*OrderRepo)(nil)

// LockLedger takes the ledger advisory lock until tx ends.
func (r *OrderRepo) LockLedger(ctx context.Context, tx pgx.Tx) error {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, ledgerLockKey); err != nil {
		return fmt.Errorf("acquire ledger lock: %w", err)
	}
	return nil
}

// Create inserts a new order within a database transaction.
func (r *OrderRepo) Create(ctx context.Context, tx pgx.Tx, o *domain.Order) error {
	query := `INSERT INTO orders (` + orderInsertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	_, err := tx.Exec(ctx, query, orderArgs(o)...)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID fetches an order by UUID.
func (r *OrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return scanOrder(r.pool.QueryRow(ctx, query, id))
}

// GetByIDForUpdate fetches and row-locks an order within a transaction.
func (r *OrderRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`
	return scanOrder(tx.QueryRow(ctx, query, id))
}

// GetByReference fetches a live order by its reference.
func (r *OrderRepo) GetByReference(ctx context.Context, reference string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE reference = $1`
	return scanOrder(r.pool.QueryRow(ctx, query, reference))
}

// UpdateStatus sets status and updated_at within a database transaction.
func (r *OrderRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.OrderStatus, updatedAt time.Time) error {
	query := `UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`

	tag, err := tx.Exec(ctx, query, status, updatedAt, id)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order not found: %s", id)
	}
	return nil
}

// ReferenceExists reports whether a live order already uses reference.
func (r *OrderRepo) ReferenceExists(ctx context.Context, tx pgx.Tx, reference string) (bool, error) {
	return queryExists(ctx, tx, `SELECT EXISTS(SELECT 1 FROM orders WHERE reference = $1)`, reference)
}

// ExistsActiveByExternalTxID reports whether a non-rejected live order carries externalTxID.
func (r *OrderRepo) ExistsActiveByExternalTxID(ctx context.Context, tx pgx.Tx, externalTxID string) (bool, error) {
	return queryExists(ctx, tx,
		`SELECT EXISTS(SELECT 1 FROM orders WHERE external_tx_id = $1 AND status <> 'REJECTED')`, externalTxID)
}

// ExistsActiveByProof reports whether a non-rejected live order was submitted with payload.
func (r *OrderRepo) ExistsActiveByProof(ctx context.Context, tx pgx.Tx, payload string) (bool, error) {
	return queryExists(ctx, tx,
		`SELECT EXISTS(SELECT 1 FROM orders WHERE md5(proof_payload) = md5($1) AND proof_payload = $1 AND status <> 'REJECTED')`,
		payload)
}

// List fetches live orders newest first with optional search and pagination.
func (r *OrderRepo) List(ctx context.Context, params ports.OrderListParams) ([]domain.Order, int64, error) {
	var args []any
	where := ""
	if params.Search != "" {
		args = append(args, "%"+escapeLike(params.Search)+"%")
		where = `WHERE reference ILIKE $1 OR source_amount::text ILIKE $1 OR external_tx_id ILIKE $1
			OR account_no ILIKE $1 OR account_name ILIKE $1`
	}

	// Count total
	var total int64
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM orders "+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	// Fetch page
	argIdx := len(args) + 1
	offset := (params.Page - 1) * params.PageSize
	dataQuery := fmt.Sprintf(`SELECT %s FROM orders %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		orderColumns, where, argIdx, argIdx+1)
	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	orders, err := collectOrders(rows)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListArchivable locks up to limit terminal orders created before cutoff.
// Rows locked by a concurrent status update are skipped.
func (r *OrderRepo) ListArchivable(ctx context.Context, tx pgx.Tx, cutoff time.Time, limit int) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE status IN ('COMPLETED', 'REJECTED') AND created_at < $1
		ORDER BY created_at
		LIMIT $2
		FOR UPDATE SKIP LOCKED`

	rows, err := tx.Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("select archivable orders: %w", err)
	}
	return collectOrders(rows)
}

// DeleteByIDs removes orders and returns the number of rows deleted.
func (r *OrderRepo) DeleteByIDs(ctx context.Context, tx pgx.Tx, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := tx.Exec(ctx, `DELETE FROM orders WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, fmt.Errorf("delete orders: %w", err)
	}
	return tag.RowsAffected(), nil
}

// GetTotals aggregates live orders created in [from, to).
func (r *OrderRepo) GetTotals(ctx context.Context, from, to time.Time) (*domain.ReportTotals, error) {
	query := `SELECT
		COUNT(*) AS total,
		COUNT(*) FILTER (WHERE status = 'COMPLETED') AS completed,
		COUNT(*) FILTER (WHERE status = 'REJECTED') AS rejected,
		COUNT(*) FILTER (WHERE status = 'PENDING') AS pending,
		COALESCE(SUM(source_amount) FILTER (WHERE direction = 'MMK2THB' AND status = 'COMPLETED'), 0)::text AS total_mmk,
		COALESCE(SUM(source_amount) FILTER (WHERE direction = 'THB2MMK' AND status = 'COMPLETED'), 0)::text AS total_thb
		FROM orders WHERE created_at >= $1 AND created_at < $2`

	totals := &domain.ReportTotals{}
	var mmk, thb string
	err := r.pool.QueryRow(ctx, query, from, to).Scan(
		&totals.TotalOrders, &totals.Completed, &totals.Rejected, &totals.Pending, &mmk, &thb,
	)
	if err != nil {
		return nil, fmt.Errorf("get order totals: %w", err)
	}
	if totals.TotalMMK, err = decimal.NewFromString(mmk); err != nil {
		return nil, fmt.Errorf("parse mmk total: %w", err)
	}
	if totals.TotalTHB, err = decimal.NewFromString(thb); err != nil {
		return nil, fmt.Errorf("parse thb total: %w", err)
	}
	return totals, nil
}

func orderArgs(o *domain.Order) []any {
	return []any{
		o.ID, o.Reference, o.CreatedAt, o.Direction,
		o.SourceAmount, o.OutputAmount, o.RateUsed, o.TierLabel,
		o.ExternalTxID, o.ProofRef, o.ProofPayload, o.BankName, o.AccountNo,
		o.AccountName, o.Status, o.ClientAgent, o.UpdatedAt,
	}
}

func queryExists(ctx context.Context, tx pgx.Tx, query string, args ...any) (bool, error) {
	var exists bool
	if err := tx.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists query: %w", err)
	}
	return exists, nil
}

// scanOrder scans a single row, returning nil when no row matched.
func scanOrder(row pgx.Row) (*domain.Order, error) {
	o, err := scanOrderRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}
	return o, nil
}

func scanOrderRow(row pgx.Row) (*domain.Order, error) {
	o := &domain.Order{}
	var source, output, rate string
	err := row.Scan(
		&o.ID, &o.Reference, &o.CreatedAt, &o.Direction, &source, &output,
		&rate, &o.TierLabel, &o.ExternalTxID, &o.ProofRef, &o.ProofPayload, &o.BankName, &o.AccountNo,
		&o.AccountName, &o.Status, &o.ClientAgent, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if o.SourceAmount, err = decimal.NewFromString(source); err != nil {
		return nil, fmt.Errorf("parse source_amount: %w", err)
	}
	if o.OutputAmount, err = decimal.NewFromString(output); err != nil {
		return nil, fmt.Errorf("parse output_amount: %w", err)
	}
	if o.RateUsed, err = decimal.NewFromString(rate); err != nil {
		return nil, fmt.Errorf("parse rate_used: %w", err)
	}
	return o, nil
}

func collectOrders(rows pgx.Rows) ([]domain.Order, error) {
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrderRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}
	return orders, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
