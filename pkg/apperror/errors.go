package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes returned to callers. HTTP and bot layers both branch on these.
const (
	CodeRatesExpired         = "RATE_001"
	CodeInvalidRateValue     = "RATE_002"
	CodeDuplicateTransaction = "ORD_001"
	CodeInvalidProof         = "ORD_002"
	CodeReferenceExhausted   = "ORD_003"
	CodeOrderNotFound        = "ORD_004"
	CodeInvalidTransition    = "ORD_005"
	CodeInvalidOrder         = "ORD_006"
	CodeInternal             = "SYS_000"
	CodeStorageFailure       = "SYS_001"
	CodeArchivalFailure      = "SYS_002"
	CodeRateLimitExceeded    = "LIMIT_001"
	CodeUnauthorized         = "AUTH_001"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// HasCode reports whether err carries an AppError with the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// ---- Rates (RATE) ----

func ErrRatesExpired() *AppError {
	return New(CodeRatesExpired, "Exchange rates are expired or not yet published", http.StatusConflict)
}

func ErrInvalidRateValue(detail string) *AppError {
	return New(CodeInvalidRateValue, fmt.Sprintf("Invalid rate value: %s", detail), http.StatusBadRequest)
}

// ---- Orders (ORD) ----

func ErrDuplicateTransaction() *AppError {
	return New(CodeDuplicateTransaction, "Transaction ID already used", http.StatusConflict)
}

// ErrInvalidProof reports a rejected payment proof. Proof screening is a
// heuristic and never confirms that funds actually moved.
func ErrInvalidProof(reason string) *AppError {
	return New(CodeInvalidProof,
		fmt.Sprintf("Payment proof rejected: %s (automated slip screening only, funds are verified manually)", reason),
		http.StatusBadRequest)
}

func ErrReferenceExhausted() *AppError {
	return New(CodeReferenceExhausted, "Could not allocate a unique order reference", http.StatusServiceUnavailable)
}

func ErrOrderNotFound() *AppError {
	return New(CodeOrderNotFound, "Order not found", http.StatusNotFound)
}

func ErrInvalidTransition(from, to string) *AppError {
	return New(CodeInvalidTransition, fmt.Sprintf("Order cannot move from %s to %s", from, to), http.StatusConflict)
}

func ErrInvalidOrder(message string) *AppError {
	return New(CodeInvalidOrder, message, http.StatusBadRequest)
}

// ---- Access (AUTH / LIMIT) ----

func ErrUnauthorized() *AppError {
	return New(CodeUnauthorized, "Missing or invalid admin key", http.StatusUnauthorized)
}

func ErrRateLimitExceeded() *AppError {
	return New(CodeRateLimitExceeded, "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrInternal() *AppError {
	return New(CodeInternal, "Internal server error", http.StatusInternalServerError)
}

func ErrStorageFailure(err error) *AppError {
	return Wrap(CodeStorageFailure, "Internal storage error", http.StatusInternalServerError, err)
}

func ErrArchivalFailure(err error) *AppError {
	return Wrap(CodeArchivalFailure, "Order archival failed", http.StatusInternalServerError, err)
}
