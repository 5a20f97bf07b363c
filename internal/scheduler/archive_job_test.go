package scheduler

import (
	"context"
	"errors"
	"testing"

	"exchange-ledger/internal/core/domain"
	"exchange-ledger/internal/core/ports/mocks"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNewArchiveJob_RequiresService(t *testing.T) {
	_, err := NewArchiveJob(nil, zerolog.Nop())
	assert.Error(t, err)
}

func TestArchiveJob_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	orders := mocks.NewMockOrderService(ctrl)

	orders.EXPECT().ArchiveOldOrders(gomock.Any()).
		Return(&domain.ArchiveResult{ArchivedCount: 12, Batches: 1}, nil)

	job, err := NewArchiveJob(orders, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, ArchiveJobName, job.Name())
	assert.NoError(t, job.Run(context.Background()))
}

func TestArchiveJob_RunError(t *testing.T) {
	ctrl := gomock.NewController(t)
	orders := mocks.NewMockOrderService(ctrl)

	orders.EXPECT().ArchiveOldOrders(gomock.Any()).Return(nil, errors.New("db down"))

	job, err := NewArchiveJob(orders, zerolog.Nop())
	require.NoError(t, err)
	assert.ErrorContains(t, job.Run(context.Background()), "db down")
}

func TestArchiveJob_InScheduler(t *testing.T) {
	ctrl := gomock.NewController(t)
	orders := mocks.NewMockOrderService(ctrl)
	orders.EXPECT().ArchiveOldOrders(gomock.Any()).Return(&domain.ArchiveResult{}, nil).Times(1)

	job, err := NewArchiveJob(orders, zerolog.Nop())
	require.NoError(t, err)

	svc := newTestService(t, &fakeLock{acquire: true}, nil, job)
	require.NoError(t, svc.RunOnce(context.Background()))
}
