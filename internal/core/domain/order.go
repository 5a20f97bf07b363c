package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Direction is the conversion direction of an order.
type Direction string

const (
	DirectionMMK2THB Direction = "MMK2THB"
	DirectionTHB2MMK Direction = "THB2MMK"
)

// Valid reports whether d is a supported direction.
func (d Direction) Valid() bool {
	return d == DirectionMMK2THB || d == DirectionTHB2MMK
}

// ReferencePrefix returns the human-readable reference prefix for d.
func (d Direction) ReferencePrefix() string {
	if d == DirectionMMK2THB {
		return "MMTHB"
	}
	return "THBMM"
}

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusRejected  OrderStatus = "REJECTED"
)

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusRejected:
		return true
	}
	return false
}

// IsTerminal returns true for COMPLETED and REJECTED.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusRejected
}

// MinExternalTxIDLen is the shortest external transaction id that takes
// part in duplicate detection.
const MinExternalTxIDLen = 5

const (
	placeholderField = "N/A"
	placeholderAgent = "Unknown"
)

// Order is a single currency-conversion request in the ledger.
// SourceAmount and RateUsed are fixed at creation and never recomputed.
type Order struct {
	ID           uuid.UUID       `json:"id"`
	Reference    string          `json:"reference"`
	CreatedAt    time.Time       `json:"created_at"`
	Direction    Direction       `json:"direction"`
	SourceAmount decimal.Decimal `json:"source_amount"`
	OutputAmount decimal.Decimal `json:"output_amount"`
	RateUsed     decimal.Decimal `json:"rate_used"`
	TierLabel    string          `json:"tier_label"`
	ExternalTxID string          `json:"external_tx_id,omitempty"`
	ProofRef     string          `json:"proof_ref,omitempty"`
	ProofPayload string          `json:"-"`
	BankName     string          `json:"bank_name"`
	AccountNo    string          `json:"account_no"`
	AccountName  string          `json:"account_name"`
	Status       OrderStatus     `json:"status"`
	ClientAgent  string          `json:"client_agent"`
	UpdatedAt    *time.Time      `json:"updated_at,omitempty"`
}

// NewOrderParams carries everything needed to build a fresh PENDING order.
type NewOrderParams struct {
	Reference    string
	Direction    Direction
	SourceAmount decimal.Decimal
	OutputAmount decimal.Decimal
	RateUsed     decimal.Decimal
	TierLabel    string
	ExternalTxID string
	ProofRef     string
	ProofPayload string
	BankName     string
	AccountNo    string
	AccountName  string
	ClientAgent  string
	CreatedAt    time.Time
}

var (
	ErrEmptyReference   = errors.New("reference is required")
	ErrInvalidDirection = errors.New("direction must be MMK2THB or THB2MMK")
	ErrNonPositive      = errors.New("source amount and rate must be positive")
	ErrNegativeOutput   = errors.New("output amount must not be negative")
)

// NewOrder builds a PENDING order, filling placeholders for missing
// payout details.
func NewOrder(p NewOrderParams) (*Order, error) {
	if strings.TrimSpace(p.Reference) == "" {
		return nil, ErrEmptyReference
	}
	if !p.Direction.Valid() {
		return nil, ErrInvalidDirection
	}
	if !p.SourceAmount.IsPositive() || !p.RateUsed.IsPositive() {
		return nil, ErrNonPositive
	}
	if p.OutputAmount.IsNegative() {
		return nil, ErrNegativeOutput
	}
	created := p.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	return &Order{
		ID:           uuid.New(),
		Reference:    p.Reference,
		CreatedAt:    created.UTC(),
		Direction:    p.Direction,
		SourceAmount: p.SourceAmount,
		OutputAmount: p.OutputAmount,
		RateUsed:     p.RateUsed,
		TierLabel:    p.TierLabel,
		ExternalTxID: strings.TrimSpace(p.ExternalTxID),
		ProofRef:     p.ProofRef,
		ProofPayload: p.ProofPayload,
		BankName:     orDefault(p.BankName, placeholderField),
		AccountNo:    orDefault(p.AccountNo, placeholderField),
		AccountName:  orDefault(p.AccountName, placeholderField),
		Status:       OrderStatusPending,
		ClientAgent:  orDefault(p.ClientAgent, placeholderAgent),
	}, nil
}

// IsTerminal returns true if the order can no longer change status.
func (o *Order) IsTerminal() bool {
	return o.Status.IsTerminal()
}

// CanTransitionTo reports whether the order may move to next.
// Only PENDING -> COMPLETED and PENDING -> REJECTED are allowed.
func (o *Order) CanTransitionTo(next OrderStatus) bool {
	return o.Status == OrderStatusPending && next.IsTerminal()
}

// TrackableTxID reports whether id is long enough to be checked for reuse.
func TrackableTxID(id string) bool {
	return len(strings.TrimSpace(id)) >= MinExternalTxIDLen
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// OrderPage is one page of a ledger listing.
type OrderPage struct {
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	TotalPages int     `json:"total_pages"`
	Data       []Order `json:"data"`
}

// ArchiveResult summarises one archival run.
type ArchiveResult struct {
	ArchivedCount int `json:"archived_count"`
	Batches       int `json:"batches"`
}
