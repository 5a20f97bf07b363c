package service

import (
	"exchange-ledger/internal/core/domain"
	"exchange-ledger/pkg/apperror"

	"github.com/shopspring/decimal"
)

var (
	hundred    = decimal.NewFromInt(100)
	one        = decimal.NewFromInt(1)
	mmkPayStep = decimal.NewFromInt(50)
)

// mmkRateUnit is the MMK lot size rates are quoted against (10^5).
const mmkRateUnit = 5

// Quote prices a conversion against snapshot. Output is always rounded
// down; an amount equal to a threshold is priced at the Standard tier.
func Quote(direction domain.Direction, amount decimal.Decimal, snapshot domain.RateSnapshot) (domain.Quote, error) {
	if snapshot.Expired {
		return domain.Quote{}, apperror.ErrRatesExpired()
	}
	if !direction.Valid() {
		return domain.Quote{}, apperror.ErrInvalidOrder("direction must be MMK2THB or THB2MMK")
	}
	if !amount.IsPositive() {
		return domain.Quote{}, apperror.ErrInvalidOrder("amount must be positive")
	}

	tier := snapshot.Tier
	baseProfit := tier.BaseProfitPercent.Div(hundred)
	low := tier.LowMarginPercent.Div(hundred)
	high := tier.HighDiscountPercent.Div(hundred)

	q := domain.Quote{Direction: direction, Amount: amount, TierLabel: domain.TierStandard}

	switch direction {
	case domain.DirectionMMK2THB:
		rate := snapshot.MMKToTHB.Mul(one.Sub(baseProfit)).Round(0)
		if !rate.IsPositive() {
			return domain.Quote{}, apperror.ErrInvalidRateValue(domain.RateKeyMMKToTHB + " rounds to zero")
		}
		switch {
		case amount.LessThan(tier.ThresholdLowMMK):
			rate = rate.Mul(one.Sub(low))
			q.TierLabel = domain.TierLow
		case amount.GreaterThan(tier.ThresholdHighMMK):
			rate = rate.Mul(one.Add(high))
			q.TierLabel = domain.TierHigh
		}
		q.FinalRate = rate
		q.OutputAmount = amount.Mul(rate).Shift(-mmkRateUnit).Floor()

	case domain.DirectionTHB2MMK:
		rate := snapshot.THBToMMK.Mul(one.Add(baseProfit)).Round(0)
		if !rate.IsPositive() {
			return domain.Quote{}, apperror.ErrInvalidRateValue(domain.RateKeyTHBToMMK + " rounds to zero")
		}
		switch {
		case amount.LessThan(tier.ThresholdLowTHB):
			rate = rate.Mul(one.Add(low))
			q.TierLabel = domain.TierLow
		case amount.GreaterThan(tier.ThresholdHighTHB):
			rate = rate.Mul(one.Sub(high))
			q.TierLabel = domain.TierHigh
		}
		if !rate.IsPositive() {
			return domain.Quote{}, apperror.ErrInvalidRateValue(domain.TierKeyHighDiscountPercent + " leaves no rate")
		}
		q.FinalRate = rate
		steps, _ := amount.Shift(mmkRateUnit).QuoRem(rate.Mul(mmkPayStep), 0)
		q.OutputAmount = steps.Mul(mmkPayStep)
	}

	return q, nil
}
