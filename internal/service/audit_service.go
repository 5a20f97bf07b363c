package service

import (
	"context"
	"fmt"
	"time"

	"exchange-ledger/internal/core/domain"
	"exchange-ledger/internal/core/ports"
	"exchange-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const auditWriteTimeout = 5 * time.Second

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService creates a new audit service.
// If repo is nil, audit records are only written to the logger.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Record appends an audit entry asynchronously (fire-and-forget). Write
// failures are logged and never reach the caller.
func (s *auditService) Record(ctx context.Context, action domain.AuditAction, detail string) {
	record := &domain.AuditRecord{
		ID:        uuid.New(),
		Timestamp: time.Now().UTC(),
		Action:    action,
		Detail:    detail,
	}

	go func() {
		s.log.Info().
			Str("action", string(record.Action)).
			Str("detail", record.Detail).
			Msg("audit")

		if s.repo == nil {
			return
		}
		writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditWriteTimeout)
		defer cancel()
		if err := s.repo.Create(writeCtx, record); err != nil {
			s.log.Warn().Err(err).Str("action", string(record.Action)).Msg("failed to persist audit record")
		}
	}()
}

// List returns a page of audit records, newest first.
func (s *auditService) List(ctx context.Context, page, pageSize int) ([]domain.AuditRecord, int64, error) {
	if s.repo == nil {
		return []domain.AuditRecord{}, 0, nil
	}
	page, pageSize = normalizePage(page, pageSize, defaultPageSize, maxPageSize)
	records, total, err := s.repo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, apperror.ErrStorageFailure(fmt.Errorf("list audit records: %w", err))
	}
	return records, total, nil
}
