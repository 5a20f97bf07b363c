package scheduler

import (
	"context"
	"errors"

	"exchange-ledger/internal/core/ports"

	"github.com/rs/zerolog"
)

// ArchiveJobName is the metrics and log label of the archival job.
const ArchiveJobName = "archive_orders"

// ArchiveJob moves old terminal orders out of the live ledger.
type ArchiveJob struct {
	orders ports.OrderService
	log    zerolog.Logger
}

// NewArchiveJob wires the archival job to the order service.
func NewArchiveJob(orders ports.OrderService, log zerolog.Logger) (*ArchiveJob, error) {
	if orders == nil {
		return nil, errors.New("order service required")
	}
	return &ArchiveJob{orders: orders, log: log}, nil
}

func (j *ArchiveJob) Name() string { return ArchiveJobName }

func (j *ArchiveJob) Run(ctx context.Context) error {
	res, err := j.orders.ArchiveOldOrders(ctx)
	if err != nil {
		return err
	}
	j.log.Info().
		Int("archived", res.ArchivedCount).
		Int("batches", res.Batches).
		Msg("archived orders")
	return nil
}
