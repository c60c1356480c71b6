package handlers

import (
	"log/slog"
	"net/http"

	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
	portsrepo "github.com/civicdsi/budget_engagement_app/internal/core/ports/repositories"
	portssvc "github.com/civicdsi/budget_engagement_app/internal/core/ports/services"
	"github.com/civicdsi/budget_engagement_app/internal/dto"
	"github.com/civicdsi/budget_engagement_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// orderHandler handles HTTP requests for the purchase order workflow.
type orderHandler struct {
	orderService portssvc.OrderSvcFacade
}

func newOrderHandler(os portssvc.OrderSvcFacade) *orderHandler {
	return &orderHandler{orderService: os}
}

// registerOrderRoutes registers routes for the order lifecycle.
func registerOrderRoutes(rg *gin.RouterGroup, orderService portssvc.OrderSvcFacade) {
	h := newOrderHandler(orderService)

	orders := rg.Group("/orders")
	{
		orders.POST("", h.createOrder)
		orders.GET("", h.listOrders)
		orders.GET("/:id", h.getOrder)
		orders.POST("/:id/submit", h.submitOrder)
		orders.POST("/:id/approve", h.approveOrder)
		orders.POST("/:id/impute", h.imputeOrder)
		orders.POST("/:id/cancel", h.cancelOrder)
		orders.POST("/:id/settle", h.settleOrder)
	}
}

func (h *orderHandler) createOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateOrder", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create order")
		return
	}

	logger.Info("Order created", slog.Int64("order_id", order.OrderID), slog.String("number", order.Number))
	c.JSON(http.StatusCreated, dto.ToOrderResponse(order))
}

func (h *orderHandler) getOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve order")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

func (h *orderHandler) listOrders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListOrdersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	orders, err := h.orderService.ListOrders(c.Request.Context(), portsrepo.ListOrdersFilter{
		Status:       domain.OrderStatus(params.Status),
		SupplierID:   params.SupplierID,
		ContractID:   params.ContractID,
		BudgetLineID: params.BudgetLineID,
		Limit:        params.Limit,
		Offset:       params.Offset,
	})
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": dto.ToListOrderResponse(orders)})
}

func (h *orderHandler) submitOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.SubmitOrder(c.Request.Context(), orderID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to submit order")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

func (h *orderHandler) approveOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.ApproveOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ApproveOrder", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	order, err := h.orderService.ApproveOrder(c.Request.Context(), orderID, req.ValidatorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to approve order")
		return
	}

	logger.Info("Order approved", slog.Int64("order_id", orderID), slog.Int64("validator_id", req.ValidatorID))
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

func (h *orderHandler) imputeOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.ImputeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ImputeOrder", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	order, err := h.orderService.ImputeOrder(c.Request.Context(), orderID, req.BudgetLineID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to impute order")
		return
	}

	logger.Info("Order imputed",
		slog.Int64("order_id", orderID),
		slog.Int64("budget_line_id", req.BudgetLineID),
		slog.String("engaged_amount", order.EngagedAmount.StringFixed(2)))
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

func (h *orderHandler) cancelOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.CancelOrder(c.Request.Context(), orderID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to cancel order")
		return
	}

	logger.Info("Order cancelled", slog.Int64("order_id", orderID))
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

func (h *orderHandler) settleOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	// The settle body is optional; an empty body settles at the committed amount.
	var req dto.SettleOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for SettleOrder", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
			return
		}
	}

	order, err := h.orderService.SettleOrder(c.Request.Context(), orderID, req.PaidAmount)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to settle order")
		return
	}

	logger.Info("Order settled", slog.Int64("order_id", orderID), slog.String("paid_amount", order.PaidAmount.StringFixed(2)))
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}
