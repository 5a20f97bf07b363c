package domain

import "github.com/shopspring/decimal"

// ReportTotals aggregates orders created within a period.
type ReportTotals struct {
	TotalOrders int64           `json:"total_orders"`
	Completed   int64           `json:"completed"`
	Rejected    int64           `json:"rejected"`
	Pending     int64           `json:"pending"`
	TotalMMK    decimal.Decimal `json:"total_mmk"` // completed MMK2THB source amounts
	TotalTHB    decimal.Decimal `json:"total_thb"` // completed THB2MMK source amounts
}

// DailyReport covers one UTC calendar day.
type DailyReport struct {
	Date string `json:"date"`
	ReportTotals
}

// MonthlyReport covers one UTC calendar month.
type MonthlyReport struct {
	Month string `json:"month"`
	ReportTotals
}
