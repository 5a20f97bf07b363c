package handler

import (
	"math"
	"strconv"
	"time"

	"exchange-ledger/internal/adapter/http/dto"
	"exchange-ledger/internal/core/domain"
	"exchange-ledger/internal/core/ports"
	"exchange-ledger/pkg/apperror"
	"exchange-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"

	defaultAuditPageSize = 50
	maxAuditPageSize     = 200
)

// ReportHandler serves operator reports and the audit trail.
type ReportHandler struct {
	reports ports.ReportingService
	audit   ports.AuditService
	now     func() time.Time
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reports ports.ReportingService, audit ports.AuditService) *ReportHandler {
	return &ReportHandler{reports: reports, audit: audit, now: time.Now}
}

// Daily handles GET /api/v1/admin/reports/daily?date=YYYY-MM-DD.
// The current UTC day is used when date is omitted.
func (h *ReportHandler) Daily(c *gin.Context) {
	day := h.now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(dayLayout, raw)
		if err != nil {
			response.Error(c, apperror.ErrInvalidOrder("date must be YYYY-MM-DD"))
			return
		}
		day = parsed
	}

	report, err := h.reports.DailyReport(c.Request.Context(), day)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, report)
}

// Monthly handles GET /api/v1/admin/reports/monthly?month=YYYY-MM.
func (h *ReportHandler) Monthly(c *gin.Context) {
	month := h.now().UTC()
	if raw := c.Query("month"); raw != "" {
		parsed, err := time.Parse(monthLayout, raw)
		if err != nil {
			response.Error(c, apperror.ErrInvalidOrder("month must be YYYY-MM"))
			return
		}
		month = parsed
	}

	report, err := h.reports.MonthlyReport(c.Request.Context(), month.Year(), month.Month())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, report)
}

// ListAudit handles GET /api/v1/admin/audit.
func (h *ReportHandler) ListAudit(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultAuditPageSize)))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > maxAuditPageSize {
		pageSize = defaultAuditPageSize
	}

	records, total, err := h.audit.List(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	if records == nil {
		records = []domain.AuditRecord{}
	}

	response.OK(c, dto.AuditListResponse{
		Items:      records,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	})
}
