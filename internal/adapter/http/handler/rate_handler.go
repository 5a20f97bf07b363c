package handler

import (
	"exchange-ledger/internal/adapter/http/dto"
	"exchange-ledger/internal/core/domain"
	"exchange-ledger/internal/core/ports"
	"exchange-ledger/pkg/apperror"
	"exchange-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// RateHandler serves the published rates and their admin updates.
type RateHandler struct {
	rates ports.RateService
}

// NewRateHandler creates a new RateHandler.
func NewRateHandler(rates ports.RateService) *RateHandler {
	return &RateHandler{rates: rates}
}

// GetRates handles GET /api/v1/rates.
func (h *RateHandler) GetRates(c *gin.Context) {
	response.OK(c, h.rates.GetSnapshot())
}

// Quote handles POST /api/v1/quotes.
func (h *RateHandler) Quote(c *gin.Context) {
	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ErrInvalidOrder(err.Error()))
		return
	}

	q, err := h.rates.Quote(domain.Direction(req.Direction), req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, q)
}

// SetRates handles PUT /api/v1/admin/rates.
func (h *RateHandler) SetRates(c *gin.Context) {
	var req dto.SetRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ErrInvalidRateValue(err.Error()))
		return
	}

	snap, err := h.rates.SetRates(c.Request.Context(), req.MMKToTHB, req.THBToMMK)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, snap)
}

// UpdateConfig handles PATCH /api/v1/admin/rates/config.
func (h *RateHandler) UpdateConfig(c *gin.Context) {
	var patch domain.TierConfigPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, apperror.ErrInvalidRateValue(err.Error()))
		return
	}

	snap, err := h.rates.UpdateConfig(c.Request.Context(), patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, snap)
}
