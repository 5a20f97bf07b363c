package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited action.
type AuditAction string

const (
	AuditActionCreateOrder   AuditAction = "CREATE_ORDER"
	AuditActionUpdateStatus  AuditAction = "UPDATE_STATUS"
	AuditActionArchiveOrders AuditAction = "ARCHIVE_ORDERS"
	AuditActionSetRates      AuditAction = "SET_RATES"
	AuditActionUpdateConfig  AuditAction = "UPDATE_CONFIG"
)

// AuditRecord is an append-only entry in the audit log.
type AuditRecord struct {
	ID        uuid.UUID   `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Action    AuditAction `json:"action"`
	Detail    string      `json:"detail"`
}
