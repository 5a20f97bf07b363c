package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"exchange-ledger/internal/core/domain"
	"exchange-ledger/internal/core/ports"
	"exchange-ledger/pkg/apperror"
	"exchange-ledger/pkg/metrics"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"go.uber.org/multierr"
)

const (
	defaultPageSize          = 50
	maxPageSize              = 200
	defaultReferenceAttempts = 100
	defaultArchiveBatchSize  = 500
	defaultRetention         = 30 * 24 * time.Hour
)

// LedgerConfig tunes the order ledger. Zero values fall back to defaults.
type LedgerConfig struct {
	ReferenceAttempts int
	DefaultPageSize   int
	MaxPageSize       int
	Retention         time.Duration
	ArchiveBatchSize  int
}

func (c LedgerConfig) withDefaults() LedgerConfig {
	if c.ReferenceAttempts <= 0 {
		c.ReferenceAttempts = defaultReferenceAttempts
	}
	if c.DefaultPageSize <= 0 {
		c.DefaultPageSize = defaultPageSize
	}
	if c.MaxPageSize <= 0 {
		c.MaxPageSize = maxPageSize
	}
	if c.Retention <= 0 {
		c.Retention = defaultRetention
	}
	if c.ArchiveBatchSize <= 0 {
		c.ArchiveBatchSize = defaultArchiveBatchSize
	}
	return c
}

// OrderServiceImpl implements ports.OrderService.
type OrderServiceImpl struct {
	orderRepo   ports.OrderRepository
	archiveRepo ports.ArchiveRepository
	transactor  ports.DBTransactor
	rates       ports.RateService
	verifier    ports.SlipVerifier
	audit       ports.AuditService
	metrics     *metrics.LedgerMetrics
	cfg         LedgerConfig
	newRef      ReferenceGenerator
	now         func() time.Time
	log         zerolog.Logger
}

var _ ports.OrderService = (*OrderServiceImpl)(nil)

// NewOrderService creates a new OrderServiceImpl.
func NewOrderService(
	orderRepo ports.OrderRepository,
	archiveRepo ports.ArchiveRepository,
	transactor ports.DBTransactor,
	rates ports.RateService,
	verifier ports.SlipVerifier,
	audit ports.AuditService,
	m *metrics.LedgerMetrics,
	cfg LedgerConfig,
	log zerolog.Logger,
) *OrderServiceImpl {
	return &OrderServiceImpl{
		orderRepo:   orderRepo,
		archiveRepo: archiveRepo,
		transactor:  transactor,
		rates:       rates,
		verifier:    verifier,
		audit:       audit,
		metrics:     m,
		cfg:         cfg.withDefaults(),
		newRef:      NewReference,
		now:         time.Now,
		log:         log,
	}
}

// WithReferenceGenerator replaces the reference source. Intended for tests.
func (s *OrderServiceImpl) WithReferenceGenerator(gen ReferenceGenerator) *OrderServiceImpl {
	s.newRef = gen
	return s
}

// WithClock overrides the time source. Intended for tests.
func (s *OrderServiceImpl) WithClock(now func() time.Time) *OrderServiceImpl {
	s.now = now
	return s
}

// CreateOrder validates, prices and persists a new PENDING order. The
// duplicate checks, reference allocation and insert run in one transaction
// holding the ledger lock, so concurrent submissions cannot both pass a
// check that the other would fail.
func (s *OrderServiceImpl) CreateOrder(ctx context.Context, in ports.CreateOrderInput) (*domain.Order, error) {
	order, err := s.createOrder(ctx, in)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			s.metrics.OrderRejected(appErr.Code)
		}
		return nil, err
	}

	s.metrics.OrderCreated(string(order.Direction), order.TierLabel)
	s.audit.Record(ctx, domain.AuditActionCreateOrder, fmt.Sprintf("%s %s", order.ID, order.Reference))
	s.log.Info().
		Str("order_id", order.ID.String()).
		Str("reference", order.Reference).
		Str("direction", string(order.Direction)).
		Str("amount", order.SourceAmount.String()).
		Str("output", order.OutputAmount.String()).
		Msg("order created")

	return order, nil
}

func (s *OrderServiceImpl) createOrder(ctx context.Context, in ports.CreateOrderInput) (*domain.Order, error) {
	snap := s.rates.GetSnapshot()
	if snap.Expired {
		return nil, apperror.ErrRatesExpired()
	}
	if !in.Direction.Valid() {
		return nil, apperror.ErrInvalidOrder("direction must be MMK2THB or THB2MMK")
	}
	if !in.Amount.IsPositive() {
		return nil, apperror.ErrInvalidOrder("amount must be positive")
	}
	in.ExternalTxID = strings.TrimSpace(in.ExternalTxID)
	in.ProofPayload = strings.TrimSpace(in.ProofPayload)

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrStorageFailure(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.orderRepo.LockLedger(ctx, dbTx); err != nil {
		return nil, apperror.ErrStorageFailure(fmt.Errorf("lock ledger: %w", err))
	}

	if domain.TrackableTxID(in.ExternalTxID) {
		dup, err := s.orderRepo.ExistsActiveByExternalTxID(ctx, dbTx, in.ExternalTxID)
		if err != nil {
			return nil, apperror.ErrStorageFailure(fmt.Errorf("check external tx id: %w", err))
		}
		if dup {
			return nil, apperror.ErrDuplicateTransaction()
		}
	}

	verdict, err := s.verifier.Verify(ctx, in.ProofPayload, in.Amount, s.proofLookup(dbTx))
	if err != nil {
		return nil, apperror.ErrStorageFailure(err)
	}
	if !verdict.Accepted {
		return nil, apperror.ErrInvalidProof(verdict.Reason)
	}

	now := s.now().UTC()
	reference, err := s.allocateReference(ctx, dbTx, in.Direction, now)
	if err != nil {
		return nil, err
	}

	quote, err := Quote(in.Direction, in.Amount, snap)
	if err != nil {
		return nil, err
	}

	order, err := domain.NewOrder(domain.NewOrderParams{
		Reference:    reference,
		Direction:    in.Direction,
		SourceAmount: in.Amount,
		OutputAmount: quote.OutputAmount,
		RateUsed:     quote.FinalRate,
		TierLabel:    quote.TierLabel,
		ExternalTxID: in.ExternalTxID,
		ProofRef:     in.ProofRef,
		ProofPayload: in.ProofPayload,
		BankName:     in.BankName,
		AccountNo:    in.AccountNo,
		AccountName:  in.AccountName,
		ClientAgent:  in.ClientAgent,
		CreatedAt:    now,
	})
	if err != nil {
		return nil, apperror.ErrInvalidOrder(err.Error())
	}

	if err := s.orderRepo.Create(ctx, dbTx, order); err != nil {
		return nil, apperror.ErrStorageFailure(fmt.Errorf("create order: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrStorageFailure(fmt.Errorf("commit tx: %w", err))
	}

	if len(verdict.Warnings) > 0 {
		s.log.Warn().Str("reference", order.Reference).Strs("warnings", verdict.Warnings).Msg("order accepted with slip warnings")
	}
	return order, nil
}

// allocateReference returns a reference unused in both the live ledger and
// the archive. It must run while the ledger lock is held.
func (s *OrderServiceImpl) allocateReference(ctx context.Context, tx pgx.Tx, direction domain.Direction, now time.Time) (string, error) {
	for attempt := 0; attempt < s.cfg.ReferenceAttempts; attempt++ {
		ref := s.newRef(direction, now)

		live, err := s.orderRepo.ReferenceExists(ctx, tx, ref)
		if err != nil {
			return "", apperror.ErrStorageFailure(fmt.Errorf("check reference: %w", err))
		}
		if live {
			continue
		}
		archived, err := s.archiveRepo.ReferenceExists(ctx, tx, ref)
		if err != nil {
			return "", apperror.ErrStorageFailure(fmt.Errorf("check archived reference: %w", err))
		}
		if !archived {
			return ref, nil
		}
		now = s.now().UTC()
	}

	s.log.Error().Int("attempts", s.cfg.ReferenceAttempts).Str("direction", string(direction)).Msg("reference space exhausted")
	return "", apperror.ErrReferenceExhausted()
}

// GetOrders lists live orders newest first, optionally filtered by a
// case-insensitive search over reference, amount, external id and account.
func (s *OrderServiceImpl) GetOrders(ctx context.Context, page, pageSize int, search string) (*domain.OrderPage, error) {
	page, pageSize = normalizePage(page, pageSize, s.cfg.DefaultPageSize, s.cfg.MaxPageSize)

	orders, total, err := s.orderRepo.List(ctx, ports.OrderListParams{
		Search:   strings.TrimSpace(search),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, apperror.ErrStorageFailure(fmt.Errorf("list orders: %w", err))
	}
	if orders == nil {
		orders = []domain.Order{}
	}

	return &domain.OrderPage{
		Total:      total,
		Page:       page,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
		Data:       orders,
	}, nil
}

// GetOrder returns a live order by id.
func (s *OrderServiceImpl) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrStorageFailure(fmt.Errorf("get order: %w", err))
	}
	if order == nil {
		return nil, apperror.ErrOrderNotFound()
	}
	return order, nil
}

// GetOrderByReference looks in the live ledger first, then the archive.
func (s *OrderServiceImpl) GetOrderByReference(ctx context.Context, reference string) (*domain.Order, error) {
	reference = strings.ToUpper(strings.TrimSpace(reference))
	if reference == "" {
		return nil, apperror.ErrOrderNotFound()
	}

	order, err := s.orderRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, apperror.ErrStorageFailure(fmt.Errorf("get order by reference: %w", err))
	}
	if order != nil {
		return order, nil
	}

	order, err = s.archiveRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, apperror.ErrStorageFailure(fmt.Errorf("get archived order: %w", err))
	}
	if order == nil {
		return nil, apperror.ErrOrderNotFound()
	}
	return order, nil
}

// UpdateStatus moves a PENDING order to COMPLETED or REJECTED. The row is
// locked so the archival job cannot move it mid-update.
func (s *OrderServiceImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, apperror.ErrInvalidOrder(fmt.Sprintf("unknown status %q", status))
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrStorageFailure(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	order, err := s.orderRepo.GetByIDForUpdate(ctx, dbTx, id)
	if err != nil {
		return nil, apperror.ErrStorageFailure(fmt.Errorf("lock order: %w", err))
	}
	if order == nil {
		return nil, apperror.ErrOrderNotFound()
	}
	if !order.CanTransitionTo(status) {
		return nil, apperror.ErrInvalidTransition(string(order.Status), string(status))
	}

	now := s.now().UTC()
	if err := s.orderRepo.UpdateStatus(ctx, dbTx, id, status, now); err != nil {
		return nil, apperror.ErrStorageFailure(fmt.Errorf("update status: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrStorageFailure(fmt.Errorf("commit tx: %w", err))
	}

	order.Status = status
	order.UpdatedAt = &now

	s.metrics.StatusUpdated(string(status))
	s.audit.Record(ctx, domain.AuditActionUpdateStatus, fmt.Sprintf("%s -> %s", id, status))
	s.log.Info().
		Str("order_id", id.String()).
		Str("reference", order.Reference).
		Str("status", string(status)).
		Msg("order status updated")

	return order, nil
}

// ArchiveOldOrders moves terminal orders older than the retention window
// into the archive, one transaction per batch. Re-running after a partial
// failure is safe: archive inserts skip rows that already exist.
func (s *OrderServiceImpl) ArchiveOldOrders(ctx context.Context) (*domain.ArchiveResult, error) {
	cutoff := s.now().UTC().Add(-s.cfg.Retention)
	result := &domain.ArchiveResult{}

	for {
		if err := ctx.Err(); err != nil {
			s.recordArchive(ctx, result, cutoff, err)
			return result, apperror.ErrArchivalFailure(err)
		}
		n, err := s.archiveBatch(ctx, cutoff)
		if err != nil {
			s.log.Error().Err(err).Int("archived_so_far", result.ArchivedCount).Msg("archive batch failed")
			s.recordArchive(ctx, result, cutoff, err)
			return result, apperror.ErrArchivalFailure(err)
		}
		if n == 0 {
			break
		}
		result.ArchivedCount += n
		result.Batches++
		if n < s.cfg.ArchiveBatchSize {
			break
		}
	}

	s.recordArchive(ctx, result, cutoff, nil)
	s.log.Info().
		Int("archived", result.ArchivedCount).
		Int("batches", result.Batches).
		Time("cutoff", cutoff).
		Msg("archival run complete")
	return result, nil
}

func (s *OrderServiceImpl) archiveBatch(ctx context.Context, cutoff time.Time) (int, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	fail := func(err error) (int, error) {
		return 0, multierr.Append(err, dbTx.Rollback(ctx))
	}

	orders, err := s.orderRepo.ListArchivable(ctx, dbTx, cutoff, s.cfg.ArchiveBatchSize)
	if err != nil {
		return fail(fmt.Errorf("select archivable: %w", err))
	}
	if len(orders) == 0 {
		return 0, dbTx.Rollback(ctx)
	}

	ids := make([]uuid.UUID, 0, len(orders))
	for i := range orders {
		inserted, err := s.archiveRepo.InsertIfAbsent(ctx, dbTx, &orders[i])
		if err != nil {
			return fail(fmt.Errorf("archive %s: %w", orders[i].Reference, err))
		}
		if !inserted {
			if err := s.confirmArchived(ctx, &orders[i]); err != nil {
				return fail(err)
			}
		}
		ids = append(ids, orders[i].ID)
	}

	deleted, err := s.orderRepo.DeleteByIDs(ctx, dbTx, ids)
	if err != nil {
		return fail(fmt.Errorf("delete archived: %w", err))
	}
	if deleted != int64(len(ids)) {
		return fail(fmt.Errorf("deleted %d of %d archived orders", deleted, len(ids)))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	s.metrics.OrdersArchived(len(ids))
	return len(ids), nil
}

// confirmArchived checks that the archive row blocking an insert is the
// same order, so the live row is only deleted once its copy exists.
func (s *OrderServiceImpl) confirmArchived(ctx context.Context, o *domain.Order) error {
	existing, err := s.archiveRepo.GetByReference(ctx, o.Reference)
	if err != nil {
		return fmt.Errorf("check archived %s: %w", o.Reference, err)
	}
	if existing == nil || existing.ID != o.ID {
		return fmt.Errorf("archive %s: reference held by another archived order", o.Reference)
	}
	return nil
}

func (s *OrderServiceImpl) recordArchive(ctx context.Context, result *domain.ArchiveResult, cutoff time.Time, runErr error) {
	detail := fmt.Sprintf("archived=%d batches=%d cutoff=%s", result.ArchivedCount, result.Batches, cutoff.Format(time.RFC3339))
	if runErr != nil {
		detail += " error=" + runErr.Error()
	}
	s.audit.Record(ctx, domain.AuditActionArchiveOrders, detail)
}

func (s *OrderServiceImpl) proofLookup(tx pgx.Tx) ports.ProofLookup {
	return &ledgerProofLookup{orders: s.orderRepo, archive: s.archiveRepo, tx: tx}
}

// ledgerProofLookup searches live and archived orders inside the creating
// transaction.
type ledgerProofLookup struct {
	orders  ports.OrderRepository
	archive ports.ArchiveRepository
	tx      pgx.Tx
}

func (l *ledgerProofLookup) ProofUsed(ctx context.Context, payload string) (bool, error) {
	used, err := l.orders.ExistsActiveByProof(ctx, l.tx, payload)
	if err != nil || used {
		return used, err
	}
	return l.archive.ExistsActiveByProof(ctx, l.tx, payload)
}

func normalizePage(page, pageSize, def, max int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = def
	}
	if pageSize > max {
		pageSize = max
	}
	return page, pageSize
}
