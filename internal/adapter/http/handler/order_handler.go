package handler

import (
	"strconv"

	"exchange-ledger/internal/adapter/http/dto"
	"exchange-ledger/internal/core/domain"
	"exchange-ledger/internal/core/ports"
	"exchange-ledger/pkg/apperror"
	"exchange-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderClientAgent names the submitting client when set; otherwise the
// User-Agent is recorded.
const HeaderClientAgent = "X-Client-Agent"

// OrderHandler handles order submission, lookup and operator actions.
type OrderHandler struct {
	orders ports.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orders ports.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// CreateOrder handles POST /api/v1/orders.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ErrInvalidOrder(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	agent := c.GetHeader(HeaderClientAgent)
	if agent == "" {
		agent = c.Request.UserAgent()
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), ports.CreateOrderInput{
		Direction:    domain.Direction(req.Direction),
		Amount:       req.Amount,
		ExternalTxID: req.ExternalTxID,
		ProofRef:     req.ProofRef,
		ProofPayload: req.ProofPayload,
		BankName:     req.BankName,
		AccountNo:    req.AccountNo,
		AccountName:  req.AccountName,
		ClientAgent:  agent,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, order)
}

// GetByReference handles GET /api/v1/orders/:reference. Archived orders
// are found as well.
func (h *OrderHandler) GetByReference(c *gin.Context) {
	order, err := h.orders.GetOrderByReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, order)
}

// ListOrders handles GET /api/v1/admin/orders.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size"))

	result, err := h.orders.GetOrders(c.Request.Context(), page, pageSize, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := result.Data
	if items == nil {
		items = []domain.Order{}
	}
	response.OK(c, dto.OrderListResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		TotalPages: result.TotalPages,
	})
}

// UpdateStatus handles PATCH /api/v1/admin/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.ErrOrderNotFound())
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ErrInvalidOrder(err.Error()))
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), id, domain.OrderStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, order)
}

// Archive handles POST /api/v1/admin/archive.
func (h *OrderHandler) Archive(c *gin.Context) {
	result, err := h.orders.ArchiveOldOrders(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
