package postgres

import (
	"context"
	"testing"

	"exchange-ledger/internal/core/domain"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveRepo_InsertIfAbsent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewArchiveRepo(mock)
	o := newTestOrder()
	o.Status = domain.OrderStatusCompleted

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO order_archive (.+) ON CONFLICT \(id\) DO NOTHING`).
		WithArgs(orderArgs(o)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO order_archive (.+) ON CONFLICT \(id\) DO NOTHING`).
		WithArgs(orderArgs(o)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	inserted, err := repo.InsertIfAbsent(context.Background(), dbTx, o)
	require.NoError(t, err)
	assert.True(t, inserted)

	// A re-run after a partial failure finds the row already archived.
	inserted, err = repo.InsertIfAbsent(context.Background(), dbTx, o)
	require.NoError(t, err)
	assert.False(t, inserted)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArchiveRepo_GetByReference(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewArchiveRepo(mock)
	o := newTestOrder()
	o.Status = domain.OrderStatusRejected

	mock.ExpectQuery("SELECT (.+) FROM order_archive WHERE reference").
		WithArgs(o.Reference).
		WillReturnRows(orderRow(o))
	mock.ExpectQuery("SELECT (.+) FROM order_archive WHERE reference").
		WithArgs("MMTHB-9999-ZZZ").
		WillReturnRows(pgxmock.NewRows(orderColumnNames()))

	got, err := repo.GetByReference(context.Background(), o.Reference)
	require.NoError(t, err)
	assertSameOrder(t, o, got)

	got, err = repo.GetByReference(context.Background(), "MMTHB-9999-ZZZ")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestArchiveRepo_ExistenceChecks(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewArchiveRepo(mock)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS(.+)FROM order_archive WHERE reference").
		WithArgs("THBMM-0001-AAA").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery("SELECT EXISTS(.+)FROM order_archive WHERE md5").
		WithArgs("00020101021229370016A000000677").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	dbTx, err := mock.Begin(ctx)
	require.NoError(t, err)

	exists, err := repo.ReferenceExists(ctx, dbTx, "THBMM-0001-AAA")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsActiveByProof(ctx, dbTx, "00020101021229370016A000000677")
	require.NoError(t, err)
	assert.True(t, exists)

	assert.NoError(t, mock.ExpectationsWereMet())
}
