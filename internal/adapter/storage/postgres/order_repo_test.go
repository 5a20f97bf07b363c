package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"exchange-ledger/internal/core/domain"
	"exchange-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder() *domain.Order {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Order{
		ID:           uuid.New(),
		Reference:    "MMTHB-0123-X7Q",
		CreatedAt:    now,
		Direction:    domain.DirectionMMK2THB,
		SourceAmount: decimal.RequireFromString("200000"),
		OutputAmount: decimal.RequireFromString("1596"),
		RateUsed:     decimal.RequireFromString("798"),
		TierLabel:    domain.TierStandard,
		ExternalTxID: "KBZ-20240501-0001",
		ProofRef:     "https://cdn.example.com/slips/1.jpg",
		ProofPayload: "https://bank.example.com/slip/000001",
		BankName:     "KBank",
		AccountNo:    "123-4-56789-0",
		AccountName:  "Somchai",
		Status:       domain.OrderStatusPending,
		ClientAgent:  "telegram-bot",
	}
}

func orderColumnNames() []string {
	return []string{"id", "reference", "created_at", "direction", "source_amount", "output_amount",
		"rate_used", "tier_label", "external_tx_id", "proof_ref", "proof_payload", "bank_name", "account_no",
		"account_name", "status", "client_agent", "updated_at"}
}

func orderRow(o *domain.Order) *pgxmock.Rows {
	return pgxmock.NewRows(orderColumnNames()).AddRow(orderRowValues(o)...)
}

func orderRowValues(o *domain.Order) []any {
	return []any{
		o.ID, o.Reference, o.CreatedAt, o.Direction,
		o.SourceAmount.String(), o.OutputAmount.String(), o.RateUsed.String(), o.TierLabel,
		o.ExternalTxID, o.ProofRef, o.ProofPayload, o.BankName, o.AccountNo,
		o.AccountName, o.Status, o.ClientAgent, o.UpdatedAt,
	}
}

func assertSameOrder(t *testing.T, want, got *domain.Order) {
	t.Helper()
	require.NotNil(t, got)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Reference, got.Reference)
	assert.Equal(t, want.Direction, got.Direction)
	assert.Equal(t, want.Status, got.Status)
	assert.True(t, want.SourceAmount.Equal(got.SourceAmount))
	assert.True(t, want.OutputAmount.Equal(got.OutputAmount))
	assert.True(t, want.RateUsed.Equal(got.RateUsed))
	assert.Equal(t, want.ProofPayload, got.ProofPayload)
}

func TestOrderRepo_LockLedger(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").
		WithArgs(ledgerLockKey).
		WillReturnResult(pgxmock.NewResult("SELECT", 1))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	assert.NoError(t, repo.LockLedger(context.Background(), dbTx))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	o := newTestOrder()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(orderArgs(o)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	assert.NoError(t, repo.Create(context.Background(), dbTx, o))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_Create_UniqueViolation(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	o := newTestOrder()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(orderArgs(o)...).
		WillReturnError(errors.New(`duplicate key value violates unique constraint "idx_orders_reference"`))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Create(context.Background(), dbTx, o)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert order")
}

func TestOrderRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	o := newTestOrder()

	mock.ExpectQuery("SELECT (.+) FROM orders WHERE id").
		WithArgs(o.ID).
		WillReturnRows(orderRow(o))

	got, err := repo.GetByID(context.Background(), o.ID)
	require.NoError(t, err)
	assertSameOrder(t, o, got)
	assert.Nil(t, got.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	id := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM orders WHERE id").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(orderColumnNames()))

	got, err := repo.GetByID(context.Background(), id)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestOrderRepo_GetByIDForUpdate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	o := newTestOrder()
	updated := o.CreatedAt.Add(time.Hour)
	o.UpdatedAt = &updated
	o.Status = domain.OrderStatusCompleted

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM orders WHERE id = (.+) FOR UPDATE").
		WithArgs(o.ID).
		WillReturnRows(orderRow(o))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	got, err := repo.GetByIDForUpdate(context.Background(), dbTx, o.ID)
	require.NoError(t, err)
	assertSameOrder(t, o, got)
	require.NotNil(t, got.UpdatedAt)
	assert.True(t, updated.Equal(*got.UpdatedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_GetByReference(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	o := newTestOrder()

	mock.ExpectQuery("SELECT (.+) FROM orders WHERE reference").
		WithArgs(o.Reference).
		WillReturnRows(orderRow(o))

	got, err := repo.GetByReference(context.Background(), o.Reference)
	require.NoError(t, err)
	assertSameOrder(t, o, got)
}

func TestOrderRepo_UpdateStatus(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	id := uuid.New()
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE orders SET status").
		WithArgs(domain.OrderStatusCompleted, now, id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	assert.NoError(t, repo.UpdateStatus(context.Background(), dbTx, id, domain.OrderStatusCompleted, now))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_UpdateStatus_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	id := uuid.New()
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE orders SET status").
		WithArgs(domain.OrderStatusRejected, now, id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.UpdateStatus(context.Background(), dbTx, id, domain.OrderStatusRejected, now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order not found")
}

func TestOrderRepo_ExistenceChecks(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS(.+)FROM orders WHERE reference").
		WithArgs("MMTHB-0001-AAA").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("SELECT EXISTS(.+)FROM orders WHERE external_tx_id (.+) status <> 'REJECTED'").
		WithArgs("KBZ-0001").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery("SELECT EXISTS(.+)FROM orders WHERE md5").
		WithArgs("https://bank.example.com/slip/1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	dbTx, err := mock.Begin(ctx)
	require.NoError(t, err)

	exists, err := repo.ReferenceExists(ctx, dbTx, "MMTHB-0001-AAA")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsActiveByExternalTxID(ctx, dbTx, "KBZ-0001")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsActiveByProof(ctx, dbTx, "https://bank.example.com/slip/1")
	require.NoError(t, err)
	assert.True(t, exists)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	o1 := newTestOrder()
	o2 := newTestOrder()
	o2.Reference = "THBMM-0456-B2C"
	o2.Direction = domain.DirectionTHB2MMK

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(7)))
	mock.ExpectQuery("SELECT (.+) FROM orders  ORDER BY created_at DESC LIMIT").
		WithArgs(2, 2).
		WillReturnRows(pgxmock.NewRows(orderColumnNames()).
			AddRow(orderRowValues(o1)...).
			AddRow(orderRowValues(o2)...))

	orders, total, err := repo.List(context.Background(), ports.OrderListParams{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	require.Len(t, orders, 2)
	assert.Equal(t, "THBMM-0456-B2C", orders[1].Reference)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_List_Search(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	o := newTestOrder()

	mock.ExpectQuery("SELECT COUNT(.+) WHERE reference ILIKE").
		WithArgs(`%50\%_off%`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery("SELECT (.+) FROM orders WHERE reference ILIKE (.+) LIMIT").
		WithArgs(`%50\%_off%`, 50, 0).
		WillReturnRows(orderRow(o))

	orders, total, err := repo.List(context.Background(), ports.OrderListParams{
		Search: "50%_off", Page: 1, PageSize: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, orders, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_ListArchivable(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	o := newTestOrder()
	o.Status = domain.OrderStatusCompleted
	cutoff := time.Now().UTC().Add(-720 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE SKIP LOCKED").
		WithArgs(cutoff, 500).
		WillReturnRows(orderRow(o))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	orders, err := repo.ListArchivable(context.Background(), dbTx, cutoff, 500)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, domain.OrderStatusCompleted, orders[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_DeleteByIDs(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	ids := []uuid.UUID{uuid.New(), uuid.New()}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM orders WHERE id = ANY").
		WithArgs(ids).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	n, err := repo.DeleteByIDs(context.Background(), dbTx, ids)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = repo.DeleteByIDs(context.Background(), dbTx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_GetTotals(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	mock.ExpectQuery("SELECT(.+)COUNT(.+)FROM orders WHERE created_at").
		WithArgs(from, to).
		WillReturnRows(pgxmock.NewRows([]string{"total", "completed", "rejected", "pending", "total_mmk", "total_thb"}).
			AddRow(int64(10), int64(6), int64(1), int64(3), "4500000.50", "12000"))

	totals, err := repo.GetTotals(context.Background(), from, to)
	require.NoError(t, err)
	assert.Equal(t, int64(10), totals.TotalOrders)
	assert.Equal(t, int64(6), totals.Completed)
	assert.Equal(t, int64(1), totals.Rejected)
	assert.Equal(t, int64(3), totals.Pending)
	assert.True(t, totals.TotalMMK.Equal(decimal.RequireFromString("4500000.5")))
	assert.True(t, totals.TotalTHB.Equal(decimal.NewFromInt(12000)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\x`, escapeLike(`c:\x`))
	assert.Equal(t, "MMTHB", escapeLike("MMTHB"))
}
