package service

import (
	"strconv"
	"strings"

	"exchange-ledger/internal/core/domain"

	"github.com/shopspring/decimal"
)

// EMV QR tags read from transfer slips.
const (
	emvTagTemplate   = "00" // slip verification template, or the format indicator on merchant QRs
	emvTagAmount     = "54"
	emvTagAdditional = "62"
	emvTagChecksum   = "63"

	slipSubTagBank      = "01"
	slipSubTagReference = "02"
	additionalSubTagRef = "05"
)

// parseTLV splits an EMV tag-length-value string. It returns whatever it
// decoded before the first malformed element and reports whether the whole
// input was consumed.
func parseTLV(s string) (map[string]string, bool) {
	out := make(map[string]string)
	for i := 0; i < len(s); {
		if i+4 > len(s) {
			return out, false
		}
		tag := s[i : i+2]
		n, err := strconv.Atoi(s[i+2 : i+4])
		if err != nil || n < 0 || i+4+n > len(s) {
			return out, false
		}
		if _, seen := out[tag]; !seen {
			out[tag] = s[i+4 : i+4+n]
		}
		i += 4 + n
	}
	return out, true
}

// extractSlipDetails pulls the optional amount, sending bank and transfer
// reference from a structured payload. Missing or malformed tags are left
// empty.
func extractSlipDetails(payload string) domain.SlipDetails {
	var details domain.SlipDetails
	fields, _ := parseTLV(payload)

	if raw, ok := fields[emvTagAmount]; ok {
		if amt, err := decimal.NewFromString(strings.TrimSpace(raw)); err == nil && amt.IsPositive() {
			details.Amount = &amt
		}
	}

	if tmpl := fields[emvTagTemplate]; len(tmpl) > 2 {
		if sub, _ := parseTLV(tmpl); len(sub) > 0 {
			details.SendingBank = sub[slipSubTagBank]
			details.Reference = sub[slipSubTagReference]
		}
	}

	if details.Reference == "" {
		if add := fields[emvTagAdditional]; add != "" {
			sub, _ := parseTLV(add)
			details.Reference = sub[additionalSubTagRef]
		}
	}

	return details
}
