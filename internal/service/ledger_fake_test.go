package service

import (
	"context"
	"errors"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"exchange-ledger/internal/core/domain"
	"exchange-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// memStore is an in-memory ledger. ledger plays the role of the Postgres
// advisory lock; mu guards the maps.
type memStore struct {
	ledger sync.Mutex

	mu         sync.Mutex
	orders     map[uuid.UUID]domain.Order
	archive    map[string]domain.Order
	failDelete int
}

func newMemStore() *memStore {
	return &memStore{
		orders:  make(map[uuid.UUID]domain.Order),
		archive: make(map[string]domain.Order),
	}
}

func (s *memStore) put(o domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = o
}

func (s *memStore) putArchived(o domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.archive[o.Reference] = o
}

func (s *memStore) liveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

func (s *memStore) archivedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.archive)
}

type memTx struct {
	pgx.Tx
	store  *memStore
	locked bool
	closed bool
}

func (t *memTx) Commit(context.Context) error {
	t.release()
	return nil
}

func (t *memTx) Rollback(context.Context) error {
	t.release()
	return nil
}

func (t *memTx) release() {
	if t.locked && !t.closed {
		t.store.ledger.Unlock()
	}
	t.closed = true
}

type memTransactor struct{ store *memStore }

func (m memTransactor) Begin(context.Context) (pgx.Tx, error) {
	return &memTx{store: m.store}, nil
}

type memOrderRepo struct{ store *memStore }

var _ ports.OrderRepository = memOrderRepo{}

func (r memOrderRepo) LockLedger(_ context.Context, tx pgx.Tx) error {
	mt, ok := tx.(*memTx)
	if !ok {
		return errors.New("unexpected tx type")
	}
	r.store.ledger.Lock()
	mt.locked = true
	return nil
}

func (r memOrderRepo) Create(_ context.Context, _ pgx.Tx, order *domain.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, o := range r.store.orders {
		if o.Reference == order.Reference {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	r.store.orders[order.ID] = *order
	return nil
}

func (r memOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r memOrderRepo) GetByIDForUpdate(ctx context.Context, _ pgx.Tx, id uuid.UUID) (*domain.Order, error) {
	return r.GetByID(ctx, id)
}

func (r memOrderRepo) GetByReference(_ context.Context, reference string) (*domain.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, o := range r.store.orders {
		if o.Reference == reference {
			return &o, nil
		}
	}
	return nil, nil
}

func (r memOrderRepo) UpdateStatus(_ context.Context, _ pgx.Tx, id uuid.UUID, status domain.OrderStatus, updatedAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.orders[id]
	if !ok {
		return errors.New("no rows")
	}
	o.Status = status
	o.UpdatedAt = &updatedAt
	r.store.orders[id] = o
	return nil
}

func (r memOrderRepo) ReferenceExists(_ context.Context, _ pgx.Tx, reference string) (bool, error) {
	runtime.Gosched()
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, o := range r.store.orders {
		if o.Reference == reference {
			return true, nil
		}
	}
	return false, nil
}

func (r memOrderRepo) ExistsActiveByExternalTxID(_ context.Context, _ pgx.Tx, externalTxID string) (bool, error) {
	runtime.Gosched()
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, o := range r.store.orders {
		if o.ExternalTxID == externalTxID && o.Status != domain.OrderStatusRejected {
			return true, nil
		}
	}
	return false, nil
}

func (r memOrderRepo) ExistsActiveByProof(_ context.Context, _ pgx.Tx, payload string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, o := range r.store.orders {
		if o.ProofPayload == payload && o.Status != domain.OrderStatusRejected {
			return true, nil
		}
	}
	return false, nil
}

func (r memOrderRepo) List(_ context.Context, p ports.OrderListParams) ([]domain.Order, int64, error) {
	r.store.mu.Lock()
	all := make([]domain.Order, 0, len(r.store.orders))
	for _, o := range r.store.orders {
		if matchesSearch(o, p.Search) {
			all = append(all, o)
		}
	}
	r.store.mu.Unlock()

	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := int64(len(all))
	start := (p.Page - 1) * p.PageSize
	if start >= len(all) {
		return []domain.Order{}, total, nil
	}
	end := min(start+p.PageSize, len(all))
	return all[start:end], total, nil
}

func matchesSearch(o domain.Order, search string) bool {
	if search == "" {
		return true
	}
	q := strings.ToLower(search)
	for _, field := range []string{o.Reference, o.SourceAmount.String(), o.ExternalTxID, o.AccountNo, o.AccountName} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func (r memOrderRepo) ListArchivable(_ context.Context, _ pgx.Tx, cutoff time.Time, limit int) ([]domain.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []domain.Order
	for _, o := range r.store.orders {
		if o.Status.IsTerminal() && o.CreatedAt.Before(cutoff) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r memOrderRepo) DeleteByIDs(_ context.Context, _ pgx.Tx, ids []uuid.UUID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failDelete > 0 {
		r.store.failDelete--
		return 0, errors.New("connection reset by peer")
	}
	var n int64
	for _, id := range ids {
		if _, ok := r.store.orders[id]; ok {
			delete(r.store.orders, id)
			n++
		}
	}
	return n, nil
}

func (r memOrderRepo) GetTotals(context.Context, time.Time, time.Time) (*domain.ReportTotals, error) {
	return &domain.ReportTotals{}, nil
}

type memArchiveRepo struct{ store *memStore }

var _ ports.ArchiveRepository = memArchiveRepo{}

func (r memArchiveRepo) InsertIfAbsent(_ context.Context, _ pgx.Tx, order *domain.Order) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, a := range r.store.archive {
		if a.ID == order.ID {
			return false, nil
		}
	}
	if _, ok := r.store.archive[order.Reference]; ok {
		return false, errors.New(`duplicate key value violates unique constraint "idx_order_archive_reference"`)
	}
	r.store.archive[order.Reference] = *order
	return true, nil
}

func (r memArchiveRepo) GetByReference(_ context.Context, reference string) (*domain.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.archive[reference]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r memArchiveRepo) ReferenceExists(_ context.Context, _ pgx.Tx, reference string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	_, ok := r.store.archive[reference]
	return ok, nil
}

func (r memArchiveRepo) ExistsActiveByProof(_ context.Context, _ pgx.Tx, payload string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, o := range r.store.archive {
		if o.ProofPayload == payload && o.Status != domain.OrderStatusRejected {
			return true, nil
		}
	}
	return false, nil
}

// stubRates serves a fixed snapshot.
type stubRates struct{ snap domain.RateSnapshot }

func (s stubRates) GetSnapshot() domain.RateSnapshot { return s.snap }

func (s stubRates) SetRates(context.Context, decimal.Decimal, decimal.Decimal) (domain.RateSnapshot, error) {
	return s.snap, nil
}

func (s stubRates) UpdateConfig(context.Context, domain.TierConfigPatch) (domain.RateSnapshot, error) {
	return s.snap, nil
}

func (s stubRates) Quote(direction domain.Direction, amount decimal.Decimal) (domain.Quote, error) {
	return Quote(direction, amount, s.snap)
}
