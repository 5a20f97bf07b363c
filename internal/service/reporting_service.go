package service

import (
	"context"
	"fmt"
	"time"

	"exchange-ledger/internal/core/domain"
	"exchange-ledger/internal/core/ports"
	"exchange-ledger/pkg/apperror"
)

// reportingService implements ports.ReportingService.
type reportingService struct {
	orderRepo ports.OrderRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(orderRepo ports.OrderRepository) ports.ReportingService {
	return &reportingService{orderRepo: orderRepo}
}

// DailyReport summarises orders created on the UTC calendar day of day.
func (s *reportingService) DailyReport(ctx context.Context, day time.Time) (*domain.DailyReport, error) {
	day = day.UTC()
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	totals, err := s.totals(ctx, from, from.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	return &domain.DailyReport{Date: from.Format("2006-01-02"), ReportTotals: *totals}, nil
}

// MonthlyReport summarises orders created in the given UTC month.
func (s *reportingService) MonthlyReport(ctx context.Context, year int, month time.Month) (*domain.MonthlyReport, error) {
	if month < time.January || month > time.December {
		return nil, apperror.ErrInvalidOrder("month must be between 1 and 12")
	}
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	totals, err := s.totals(ctx, from, from.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}
	return &domain.MonthlyReport{Month: from.Format("2006-01"), ReportTotals: *totals}, nil
}

func (s *reportingService) totals(ctx context.Context, from, to time.Time) (*domain.ReportTotals, error) {
	totals, err := s.orderRepo.GetTotals(ctx, from, to)
	if err != nil {
		return nil, apperror.ErrStorageFailure(fmt.Errorf("report totals: %w", err))
	}
	return totals, nil
}
