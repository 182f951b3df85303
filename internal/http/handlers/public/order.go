package public

import (
	"errors"
	"strconv"

	"github.com/nextcart/nextcart/internal/http/response"
	"github.com/nextcart/nextcart/internal/repository"
	"github.com/nextcart/nextcart/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateOrderRequest 下单请求
type CreateOrderRequest struct {
	Items            []service.OrderItemInput `json:"items" binding:"required"`
	ShippingAddress1 string                   `json:"shipping_address1" binding:"required"`
	ShippingAddress2 string                   `json:"shipping_address2"`
	City             string                   `json:"city" binding:"required"`
	Zip              string                   `json:"zip" binding:"required"`
	Country          string                   `json:"country" binding:"required"`
	Phone            string                   `json:"phone" binding:"required"`
}

// CreateOrder 用户下单
func (h *Handler) CreateOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		respondError(c, response.CodeUnauthorized, "unauthorized", nil)
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	order, err := h.OrderService.Create(service.CreateOrderInput{
		UserID:           userID,
		Items:            req.Items,
		ShippingAddress1: req.ShippingAddress1,
		ShippingAddress2: req.ShippingAddress2,
		City:             req.City,
		Zip:              req.Zip,
		Country:          req.Country,
		Phone:            req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderEmpty):
			respondError(c, response.CodeBadRequest, "order has no items", nil)
		case errors.Is(err, service.ErrInvalidOrderItem):
			respondError(c, response.CodeBadRequest, "invalid order item", nil)
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeBadRequest, "product not found", nil)
		case errors.Is(err, service.ErrProductInactive):
			respondError(c, response.CodeBadRequest, "product not available", nil)
		default:
			respondError(c, response.CodeInternal, "create order failed", err)
		}
		return
	}

	response.Success(c, order)
}

// ListMyOrders 用户订单列表
func (h *Handler) ListMyOrders(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		respondError(c, response.CodeUnauthorized, "unauthorized", nil)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	filter := repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
		Status:   c.Query("status"),
	}

	orders, total, err := h.OrderService.ListForUser(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "list orders failed", err)
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(filter.Page, filter.PageSize, total))
}

// GetMyOrder 用户订单详情
func (h *Handler) GetMyOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		respondError(c, response.CodeUnauthorized, "unauthorized", nil)
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	order, err := h.OrderService.GetForUser(id, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "order not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "get order failed", err)
		return
	}
	response.Success(c, order)
}
