package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"exchange-ledger/internal/core/domain"
	"exchange-ledger/internal/core/ports"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Rejection reasons surfaced to callers.
const (
	ReasonNoProof      = "no proof detected"
	ReasonUnrecognized = "not a recognized bank proof"
	ReasonMalformed    = "malformed proof"
	ReasonChecksum     = "checksum failed"
	ReasonAlreadyUsed  = "proof already used"
)

const (
	minProofLength      = 15
	structuredPrefix    = "00"
	structuredCRCMarker = "6304"
)

var proofURLKeywords = []string{"bank", "promptpay", "transfer", "ref", "verify", "slip", "transaction"}

// SlipVerifierImpl screens decoded slip QR payloads. Passing screening
// does not mean funds were received; operators still confirm manually.
type SlipVerifierImpl struct {
	tolerance decimal.Decimal
	log       zerolog.Logger
}

// NewSlipVerifier creates a verifier that warns when a slip amount differs
// from the claimed amount by more than 1.00.
func NewSlipVerifier(log zerolog.Logger) *SlipVerifierImpl {
	return &SlipVerifierImpl{tolerance: decimal.NewFromInt(1), log: log}
}

// Verify applies the screening rules in order and stops at the first
// rejection. Only lookup failures are returned as errors.
func (v *SlipVerifierImpl) Verify(ctx context.Context, payload string, claimed decimal.Decimal, lookup ports.ProofLookup) (*domain.VerifyResult, error) {
	p := strings.TrimSpace(payload)
	if p == "" {
		return reject(ReasonNoProof), nil
	}

	structured := isStructuredProof(p)
	if !structured && !isProofURL(p) {
		return reject(ReasonUnrecognized), nil
	}

	if len(p) < minProofLength {
		return reject(ReasonMalformed), nil
	}

	if structured && !checksumValid(p) {
		return reject(ReasonChecksum), nil
	}

	if lookup != nil {
		used, err := lookup.ProofUsed(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("proof lookup: %w", err)
		}
		if used {
			return reject(ReasonAlreadyUsed), nil
		}
	}

	result := &domain.VerifyResult{Accepted: true}
	if structured {
		result.Extracted = extractSlipDetails(p)
		if amt := result.Extracted.Amount; amt != nil && claimed.IsPositive() &&
			amt.Sub(claimed).Abs().GreaterThan(v.tolerance) {
			msg := fmt.Sprintf("slip amount %s differs from claimed %s", amt.String(), claimed.String())
			result.Warnings = append(result.Warnings, msg)
			v.log.Warn().
				Str("slip_amount", amt.String()).
				Str("claimed_amount", claimed.String()).
				Msg("slip amount mismatch")
		}
	}
	return result, nil
}

func reject(reason string) *domain.VerifyResult {
	return &domain.VerifyResult{Accepted: false, Reason: reason}
}

func isStructuredProof(p string) bool {
	return strings.HasPrefix(p, structuredPrefix) && strings.Contains(p, structuredCRCMarker)
}

func isProofURL(p string) bool {
	u, err := url.Parse(p)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return false
	}
	lower := strings.ToLower(p)
	for _, kw := range proofURLKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// checksumValid compares the trailing four hex digits with the CRC of
// everything before them.
func checksumValid(p string) bool {
	data, sum := p[:len(p)-4], p[len(p)-4:]
	want, err := strconv.ParseUint(sum, 16, 16)
	if err != nil {
		return false
	}
	return crc16CCITTFalse([]byte(data)) == uint16(want)
}
