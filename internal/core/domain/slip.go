package domain

import "github.com/shopspring/decimal"

// SlipDetails holds fields pulled from a structured proof payload.
type SlipDetails struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Reference   string           `json:"reference,omitempty"`
	SendingBank string           `json:"sending_bank,omitempty"`
}

// VerifyResult is the outcome of screening a payment proof.
type VerifyResult struct {
	Accepted  bool        `json:"accepted"`
	Reason    string      `json:"reason,omitempty"`
	Extracted SlipDetails `json:"extracted"`
	Warnings  []string    `json:"warnings,omitempty"`
}
