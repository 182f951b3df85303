package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/nextcart/nextcart/internal/http/response"
	"github.com/nextcart/nextcart/internal/models"
	"github.com/nextcart/nextcart/internal/repository"
	"github.com/nextcart/nextcart/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductRequest 商品创建/更新请求
type ProductRequest struct {
	CategoryID   uint         `json:"category_id" binding:"required"`
	Name         string       `json:"name" binding:"required"`
	Description  string       `json:"description"`
	RichText     string       `json:"rich_text"`
	Brand        string       `json:"brand"`
	Price        models.Money `json:"price"`
	Image        string       `json:"image"`
	CountInStock int          `json:"count_in_stock"`
	IsFeatured   bool         `json:"is_featured"`
	IsActive     *bool        `json:"is_active"`
}

func (r ProductRequest) toInput() service.ProductInput {
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}
	return service.ProductInput{
		CategoryID:   r.CategoryID,
		Name:         r.Name,
		Description:  r.Description,
		RichText:     r.RichText,
		Brand:        r.Brand,
		Price:        r.Price,
		Image:        r.Image,
		CountInStock: r.CountInStock,
		IsFeatured:   r.IsFeatured,
		IsActive:     isActive,
	}
}

// AdminListProducts 管理端商品列表（含未上架）
func (h *Handler) AdminListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		Search:       strings.TrimSpace(c.Query("search")),
		WithCategory: true,
	}
	if raw := strings.TrimSpace(c.Query("category_id")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			respondError(c, response.CodeBadRequest, "invalid category filter", nil)
			return
		}
		filter.CategoryIDs = []uint{uint(id)}
	}

	result, err := h.ProductService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, response.CodeInternal, "list products failed", err)
		return
	}
	response.SuccessWithPage(c, result.Items, response.NewPagination(filter.Page, filter.PageSize, result.Total))
}

// AdminGetProduct 管理端商品详情
func (h *Handler) AdminGetProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	product, err := h.ProductService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "get product failed", err)
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	product, err := h.ProductService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidProductInput):
			respondError(c, response.CodeBadRequest, "invalid product input", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeBadRequest, "category not found", nil)
		default:
			respondError(c, response.CodeInternal, "create product failed", err)
		}
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	product, err := h.ProductService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidProductInput):
			respondError(c, response.CodeBadRequest, "invalid product input", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "product or category not found", nil)
		default:
			respondError(c, response.CodeInternal, "update product failed", err)
		}
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.ProductService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "delete product failed", err)
		return
	}
	response.SuccessWithMsg(c, "product deleted", nil)
}
