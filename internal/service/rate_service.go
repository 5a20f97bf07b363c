package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"exchange-ledger/internal/core/domain"
	"exchange-ledger/internal/core/ports"
	"exchange-ledger/pkg/apperror"
	"exchange-ledger/pkg/metrics"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RateServiceImpl implements ports.RateService. Readers load the current
// snapshot through an atomic pointer; writers are serialised by mu and
// swap in a new snapshot only after the database commit.
type RateServiceImpl struct {
	repo       ports.RateRepository
	transactor ports.DBTransactor
	audit      ports.AuditService
	metrics    *metrics.LedgerMetrics
	window     time.Duration
	now        func() time.Time
	log        zerolog.Logger

	mu      sync.Mutex
	current atomic.Pointer[domain.RateSnapshot]
}

var _ ports.RateService = (*RateServiceImpl)(nil)

// NewRateService creates a rate service with default tiers and no
// published rates. Call Load to restore persisted values.
func NewRateService(
	repo ports.RateRepository,
	transactor ports.DBTransactor,
	audit ports.AuditService,
	m *metrics.LedgerMetrics,
	expiryWindow time.Duration,
	log zerolog.Logger,
) *RateServiceImpl {
	s := &RateServiceImpl{
		repo:       repo,
		transactor: transactor,
		audit:      audit,
		metrics:    m,
		window:     expiryWindow,
		now:        time.Now,
		log:        log,
	}
	s.current.Store(&domain.RateSnapshot{Tier: domain.DefaultTierConfig()})
	return s
}

// WithClock overrides the time source. Intended for tests.
func (s *RateServiceImpl) WithClock(now func() time.Time) *RateServiceImpl {
	s.now = now
	return s
}

// Load rebuilds the snapshot from persisted rows. LastUpdated is the most
// recent of the two currency rows; tier keys do not affect it.
func (s *RateServiceImpl) Load(ctx context.Context) error {
	rows, err := s.repo.LoadAll(ctx)
	if err != nil {
		return apperror.ErrStorageFailure(fmt.Errorf("load rates: %w", err))
	}

	snap := domain.RateSnapshot{Tier: domain.DefaultTierConfig()}
	for _, row := range rows {
		switch row.Name {
		case domain.RateKeyMMKToTHB:
			snap.MMKToTHB = row.Value
			snap.LastUpdated = latest(snap.LastUpdated, row.UpdatedAt)
		case domain.RateKeyTHBToMMK:
			snap.THBToMMK = row.Value
			snap.LastUpdated = latest(snap.LastUpdated, row.UpdatedAt)
		default:
			if !snap.Tier.Set(row.Name, row.Value) {
				s.log.Warn().Str("key", row.Name).Msg("ignoring unknown rate key")
			}
		}
	}

	s.mu.Lock()
	s.current.Store(&snap)
	s.mu.Unlock()

	ev := s.log.Info().Str(domain.RateKeyMMKToTHB, snap.MMKToTHB.String()).Str(domain.RateKeyTHBToMMK, snap.THBToMMK.String())
	if snap.LastUpdated != nil {
		ev = ev.Time("last_updated", *snap.LastUpdated)
	}
	ev.Msg("rates loaded")
	return nil
}

// GetSnapshot returns the latest committed snapshot with Expired derived
// from the current time.
func (s *RateServiceImpl) GetSnapshot() domain.RateSnapshot {
	snap := *s.current.Load()
	snap.Expired = snap.IsExpiredAt(s.now(), s.window)
	return snap
}

// SetRates publishes both rates under a single timestamp.
func (s *RateServiceImpl) SetRates(ctx context.Context, mmkToTHB, thbToMMK decimal.Decimal) (domain.RateSnapshot, error) {
	if !mmkToTHB.IsPositive() {
		return domain.RateSnapshot{}, apperror.ErrInvalidRateValue(domain.RateKeyMMKToTHB + " must be a positive number")
	}
	if !thbToMMK.IsPositive() {
		return domain.RateSnapshot{}, apperror.ErrInvalidRateValue(domain.RateKeyTHBToMMK + " must be a positive number")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.current.Load()
	stamp := s.now().UTC()
	if prev.LastUpdated != nil && stamp.Before(*prev.LastUpdated) {
		stamp = *prev.LastUpdated
	}

	rows := []domain.RateRow{
		{Name: domain.RateKeyMMKToTHB, Value: mmkToTHB, UpdatedAt: stamp},
		{Name: domain.RateKeyTHBToMMK, Value: thbToMMK, UpdatedAt: stamp},
	}
	if err := s.persist(ctx, rows); err != nil {
		return domain.RateSnapshot{}, err
	}

	next := *prev
	next.MMKToTHB = mmkToTHB
	next.THBToMMK = thbToMMK
	next.LastUpdated = &stamp
	s.current.Store(&next)

	s.metrics.RatesUpdated("rates")
	s.audit.Record(ctx, domain.AuditActionSetRates,
		fmt.Sprintf("%s=%s %s=%s", domain.RateKeyMMKToTHB, mmkToTHB, domain.RateKeyTHBToMMK, thbToMMK))
	s.log.Info().
		Str(domain.RateKeyMMKToTHB, mmkToTHB.String()).
		Str(domain.RateKeyTHBToMMK, thbToMMK.String()).
		Msg("rates published")

	return s.GetSnapshot(), nil
}

// UpdateConfig merges patch over the current tier configuration. It never
// changes LastUpdated. An empty patch returns the current snapshot.
func (s *RateServiceImpl) UpdateConfig(ctx context.Context, patch domain.TierConfigPatch) (domain.RateSnapshot, error) {
	fields := patch.Fields()
	if len(fields) == 0 {
		return s.GetSnapshot(), nil
	}
	for key, v := range fields {
		if v.IsNegative() {
			return domain.RateSnapshot{}, apperror.ErrInvalidRateValue(key + " must not be negative")
		}
	}
	for _, key := range []string{domain.TierKeyBaseProfitPercent, domain.TierKeyLowMarginPercent, domain.TierKeyHighDiscountPercent} {
		if v, ok := fields[key]; ok && v.GreaterThanOrEqual(hundred) {
			return domain.RateSnapshot{}, apperror.ErrInvalidRateValue(key + " must be below 100")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stamp := s.now().UTC()
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]domain.RateRow, 0, len(keys))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, domain.RateRow{Name: k, Value: fields[k], UpdatedAt: stamp})
		parts = append(parts, k+"="+fields[k].String())
	}
	if err := s.persist(ctx, rows); err != nil {
		return domain.RateSnapshot{}, err
	}

	next := *s.current.Load()
	next.Tier = patch.Apply(next.Tier)
	s.current.Store(&next)

	s.metrics.RatesUpdated("config")
	s.audit.Record(ctx, domain.AuditActionUpdateConfig, strings.Join(parts, " "))
	s.log.Info().Strs("keys", keys).Msg("tier config updated")

	return s.GetSnapshot(), nil
}

// Quote prices a conversion against the current snapshot.
func (s *RateServiceImpl) Quote(direction domain.Direction, amount decimal.Decimal) (domain.Quote, error) {
	return Quote(direction, amount, s.GetSnapshot())
}

func (s *RateServiceImpl) persist(ctx context.Context, rows []domain.RateRow) error {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.ErrStorageFailure(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.repo.Upsert(ctx, dbTx, rows); err != nil {
		return apperror.ErrStorageFailure(fmt.Errorf("upsert rates: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return apperror.ErrStorageFailure(fmt.Errorf("commit tx: %w", err))
	}
	return nil
}

func latest(cur *time.Time, t time.Time) *time.Time {
	if cur == nil || t.After(*cur) {
		u := t.UTC()
		return &u
	}
	return cur
}
