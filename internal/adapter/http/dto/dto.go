package dto

import (
	"exchange-ledger/internal/core/domain"

	"github.com/shopspring/decimal"
)

// QuoteRequest is the request body for pricing a conversion.
type QuoteRequest struct {
	Direction string          `json:"direction" binding:"required,oneof=MMK2THB THB2MMK"`
	Amount    decimal.Decimal `json:"amount" binding:"positive_decimal"`
}

// CreateOrderRequest is the request body for order submission. Free-text
// fields are stored as submitted; the JSON encoder escapes them on output.
type CreateOrderRequest struct {
	Direction    string          `json:"direction" binding:"required,oneof=MMK2THB THB2MMK"`
	Amount       decimal.Decimal `json:"amount" binding:"positive_decimal"`
	ExternalTxID string          `json:"external_tx_id" binding:"omitempty,max=64,safe_id"`
	ProofRef     string          `json:"proof_ref" binding:"omitempty,max=512" sanitize:"-"`
	ProofPayload string          `json:"proof_payload" binding:"required,max=4096" sanitize:"-"`
	BankName     string          `json:"bank_name" binding:"omitempty,max=100" sanitize:"-"`
	AccountNo    string          `json:"account_no" binding:"omitempty,max=64" sanitize:"-"`
	AccountName  string          `json:"account_name" binding:"omitempty,max=100" sanitize:"-"`
}

// SetRatesRequest is the request body for publishing base rates.
type SetRatesRequest struct {
	MMKToTHB decimal.Decimal `json:"mmk_to_thb" binding:"positive_decimal"`
	THBToMMK decimal.Decimal `json:"thb_to_mmk" binding:"positive_decimal"`
}

// UpdateStatusRequest is the request body for an admin status change.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING COMPLETED REJECTED"`
}

// OrderListResponse wraps a page of live orders.
type OrderListResponse struct {
	Items      []domain.Order `json:"items"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	TotalPages int            `json:"total_pages"`
}

// AuditListResponse wraps a page of audit records.
type AuditListResponse struct {
	Items      []domain.AuditRecord `json:"items"`
	Total      int64                `json:"total"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"page_size"`
	TotalPages int                  `json:"total_pages"`
}
