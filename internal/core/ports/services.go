package ports

import (
	"context"
	"time"

	"exchange-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RateService owns the published rate snapshot.
type RateService interface {
	GetSnapshot() domain.RateSnapshot
	SetRates(ctx context.Context, mmkToTHB, thbToMMK decimal.Decimal) (domain.RateSnapshot, error)
	UpdateConfig(ctx context.Context, patch domain.TierConfigPatch) (domain.RateSnapshot, error)
	Quote(direction domain.Direction, amount decimal.Decimal) (domain.Quote, error)
}

// OrderService defines the ledger business logic.
type OrderService interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	GetOrders(ctx context.Context, page, pageSize int, search string) (*domain.OrderPage, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	GetOrderByReference(ctx context.Context, reference string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error)
	ArchiveOldOrders(ctx context.Context) (*domain.ArchiveResult, error)
}

// CreateOrderInput holds validated input for order creation.
type CreateOrderInput struct {
	Direction    domain.Direction
	Amount       decimal.Decimal
	ExternalTxID string
	ProofRef     string
	ProofPayload string
	BankName     string
	AccountNo    string
	AccountName  string
	ClientAgent  string
}

// ProofLookup answers whether a proof payload already backs a
// non-rejected order.
type ProofLookup interface {
	ProofUsed(ctx context.Context, payload string) (bool, error)
}

// SlipVerifier screens payment proofs. It is a heuristic filter and never
// confirms that funds moved.
type SlipVerifier interface {
	Verify(ctx context.Context, payload string, claimed decimal.Decimal, lookup ProofLookup) (*domain.VerifyResult, error)
}

// AuditService records ledger actions. Record never fails the caller.
type AuditService interface {
	Record(ctx context.Context, action domain.AuditAction, detail string)
	List(ctx context.Context, page, pageSize int) ([]domain.AuditRecord, int64, error)
}

// ReportingService builds period summaries over the live ledger.
type ReportingService interface {
	DailyReport(ctx context.Context, day time.Time) (*domain.DailyReport, error)
	MonthlyReport(ctx context.Context, year int, month time.Month) (*domain.MonthlyReport, error)
}
