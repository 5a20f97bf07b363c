package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Persisted rate keys.
const (
	RateKeyMMKToTHB = "mmk_to_thb"
	RateKeyTHBToMMK = "thb_to_mmk"

	TierKeyBaseProfitPercent   = "base_profit_percent"
	TierKeyLowMarginPercent    = "low_margin_percent"
	TierKeyHighDiscountPercent = "high_discount_percent"
	TierKeyThresholdLowMMK     = "threshold_low_mmk"
	TierKeyThresholdHighMMK    = "threshold_high_mmk"
	TierKeyThresholdLowTHB     = "threshold_low_thb"
	TierKeyThresholdHighTHB    = "threshold_high_thb"
)

// Tier labels returned by pricing.
const (
	TierLow      = "Low Volume"
	TierStandard = "Standard"
	TierHigh     = "High Volume"
)

// TierConfig holds the volume-based pricing adjustments. All values are
// non-negative.
type TierConfig struct {
	BaseProfitPercent   decimal.Decimal `json:"base_profit_percent"`
	LowMarginPercent    decimal.Decimal `json:"low_margin_percent"`
	HighDiscountPercent decimal.Decimal `json:"high_discount_percent"`
	ThresholdLowMMK     decimal.Decimal `json:"threshold_low_mmk"`
	ThresholdHighMMK    decimal.Decimal `json:"threshold_high_mmk"`
	ThresholdLowTHB     decimal.Decimal `json:"threshold_low_thb"`
	ThresholdHighTHB    decimal.Decimal `json:"threshold_high_thb"`
}

// DefaultTierConfig returns the configuration used when nothing is persisted.
func DefaultTierConfig() TierConfig {
	return TierConfig{
		BaseProfitPercent:   decimal.RequireFromString("0.2"),
		LowMarginPercent:    decimal.RequireFromString("0.2"),
		HighDiscountPercent: decimal.RequireFromString("0.1"),
		ThresholdLowMMK:     decimal.NewFromInt(50000),
		ThresholdHighMMK:    decimal.NewFromInt(1000000),
		ThresholdLowTHB:     decimal.NewFromInt(500),
		ThresholdHighTHB:    decimal.NewFromInt(8000),
	}
}

// Fields maps each persisted key to its value.
func (c TierConfig) Fields() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		TierKeyBaseProfitPercent:   c.BaseProfitPercent,
		TierKeyLowMarginPercent:    c.LowMarginPercent,
		TierKeyHighDiscountPercent: c.HighDiscountPercent,
		TierKeyThresholdLowMMK:     c.ThresholdLowMMK,
		TierKeyThresholdHighMMK:    c.ThresholdHighMMK,
		TierKeyThresholdLowTHB:     c.ThresholdLowTHB,
		TierKeyThresholdHighTHB:    c.ThresholdHighTHB,
	}
}

// Set assigns a value by persisted key. Unknown keys are ignored and
// reported as false.
func (c *TierConfig) Set(key string, v decimal.Decimal) bool {
	switch key {
	case TierKeyBaseProfitPercent:
		c.BaseProfitPercent = v
	case TierKeyLowMarginPercent:
		c.LowMarginPercent = v
	case TierKeyHighDiscountPercent:
		c.HighDiscountPercent = v
	case TierKeyThresholdLowMMK:
		c.ThresholdLowMMK = v
	case TierKeyThresholdHighMMK:
		c.ThresholdHighMMK = v
	case TierKeyThresholdLowTHB:
		c.ThresholdLowTHB = v
	case TierKeyThresholdHighTHB:
		c.ThresholdHighTHB = v
	default:
		return false
	}
	return true
}

// TierConfigPatch is a partial update. Nil fields keep their prior value.
type TierConfigPatch struct {
	BaseProfitPercent   *decimal.Decimal `json:"base_profit_percent,omitempty"`
	LowMarginPercent    *decimal.Decimal `json:"low_margin_percent,omitempty"`
	HighDiscountPercent *decimal.Decimal `json:"high_discount_percent,omitempty"`
	ThresholdLowMMK     *decimal.Decimal `json:"threshold_low_mmk,omitempty"`
	ThresholdHighMMK    *decimal.Decimal `json:"threshold_high_mmk,omitempty"`
	ThresholdLowTHB     *decimal.Decimal `json:"threshold_low_thb,omitempty"`
	ThresholdHighTHB    *decimal.Decimal `json:"threshold_high_thb,omitempty"`
}

// Fields returns only the keys present in the patch.
func (p TierConfigPatch) Fields() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	add := func(key string, v *decimal.Decimal) {
		if v != nil {
			out[key] = *v
		}
	}
	add(TierKeyBaseProfitPercent, p.BaseProfitPercent)
	add(TierKeyLowMarginPercent, p.LowMarginPercent)
	add(TierKeyHighDiscountPercent, p.HighDiscountPercent)
	add(TierKeyThresholdLowMMK, p.ThresholdLowMMK)
	add(TierKeyThresholdHighMMK, p.ThresholdHighMMK)
	add(TierKeyThresholdLowTHB, p.ThresholdLowTHB)
	add(TierKeyThresholdHighTHB, p.ThresholdHighTHB)
	return out
}

// Apply merges the patch over c and returns the result.
func (p TierConfigPatch) Apply(c TierConfig) TierConfig {
	for k, v := range p.Fields() {
		c.Set(k, v)
	}
	return c
}

// RateSnapshot is an immutable view of the published rates. Expired is
// derived at read time and is always true when LastUpdated is nil.
type RateSnapshot struct {
	MMKToTHB    decimal.Decimal `json:"mmk_to_thb"`
	THBToMMK    decimal.Decimal `json:"thb_to_mmk"`
	LastUpdated *time.Time      `json:"last_updated"`
	Tier        TierConfig      `json:"tier_config"`
	Expired     bool            `json:"expired"`
}

// IsExpiredAt reports staleness of the snapshot relative to now.
func (s RateSnapshot) IsExpiredAt(now time.Time, window time.Duration) bool {
	if s.LastUpdated == nil {
		return true
	}
	return now.Sub(*s.LastUpdated) > window
}

// RateRow is one persisted rate or tier key.
type RateRow struct {
	Name      string
	Value     decimal.Decimal
	UpdatedAt time.Time
}

// Quote is the priced outcome for a requested conversion.
type Quote struct {
	Direction    Direction       `json:"direction"`
	Amount       decimal.Decimal `json:"amount"`
	FinalRate    decimal.Decimal `json:"final_rate"`
	OutputAmount decimal.Decimal `json:"output_amount"`
	TierLabel    string          `json:"tier_label"`
}
