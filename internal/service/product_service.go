package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nextcart/nextcart/internal/cache"
	"github.com/nextcart/nextcart/internal/models"
	"github.com/nextcart/nextcart/internal/repository"
)

// ProductService 商品服务
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// ProductListResult 商品列表结果
type ProductListResult struct {
	Items []models.Product `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Size  int              `json:"size"`
}

// List 商品列表，公共查询走缓存
func (s *ProductService) List(ctx context.Context, filter repository.ProductListFilter) (*ProductListResult, error) {
	cacheKey := productListCacheKey(filter)
	if cacheKey != "" {
		var cached ProductListResult
		if ok, _ := cache.GetJSON(ctx, cacheKey, &cached); ok {
			return &cached, nil
		}
	}

	items, total, err := s.productRepo.List(filter)
	if err != nil {
		return nil, err
	}
	result := &ProductListResult{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Size:  filter.PageSize,
	}
	if cacheKey != "" {
		_ = cache.SetJSON(ctx, cacheKey, result, 2*time.Minute)
	}
	return result, nil
}

// ListFeatured 精选商品
func (s *ProductService) ListFeatured(ctx context.Context, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = 8
	}
	result, err := s.List(ctx, repository.ProductListFilter{
		OnlyActive:   true,
		OnlyFeatured: true,
		WithCategory: true,
		Page:         1,
		PageSize:     limit,
	})
	if err != nil {
		return nil, err
	}
	return result.Items, nil
}

// Get 获取单个商品
func (s *ProductService) Get(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// ProductInput 商品创建/更新输入
type ProductInput struct {
	CategoryID   uint
	Name         string
	Description  string
	RichText     string
	Brand        string
	Price        models.Money
	Image        string
	CountInStock int
	IsFeatured   bool
	IsActive     bool
}

// Create 创建商品，分类必须存在
func (s *ProductService) Create(ctx context.Context, input ProductInput) (*models.Product, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}
	now := time.Now()
	product := &models.Product{
		CategoryID:   input.CategoryID,
		Name:         strings.TrimSpace(input.Name),
		Description:  input.Description,
		RichText:     input.RichText,
		Brand:        strings.TrimSpace(input.Brand),
		Price:        input.Price,
		Image:        strings.TrimSpace(input.Image),
		CountInStock: input.CountInStock,
		IsFeatured:   input.IsFeatured,
		IsActive:     input.IsActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return product, nil
}

// Update 更新商品
func (s *ProductService) Update(ctx context.Context, id uint, input ProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	if err := s.validateInput(input); err != nil {
		return nil, err
	}
	product.CategoryID = input.CategoryID
	product.Name = strings.TrimSpace(input.Name)
	product.Description = input.Description
	product.RichText = input.RichText
	product.Brand = strings.TrimSpace(input.Brand)
	product.Price = input.Price
	product.Image = strings.TrimSpace(input.Image)
	product.CountInStock = input.CountInStock
	product.IsFeatured = input.IsFeatured
	product.IsActive = input.IsActive
	product.UpdatedAt = time.Now()
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return product, nil
}

// Delete 删除商品
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrNotFound
	}
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

// Count 商品总数
func (s *ProductService) Count() (int64, error) {
	return s.productRepo.Count()
}

func (s *ProductService) validateInput(input ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: name required", ErrInvalidProductInput)
	}
	if input.Price.IsNegative() {
		return fmt.Errorf("%w: negative price", ErrInvalidProductInput)
	}
	if input.CountInStock < 0 {
		return fmt.Errorf("%w: negative stock", ErrInvalidProductInput)
	}
	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrNotFound
	}
	return nil
}

func (s *ProductService) invalidateCache(ctx context.Context) {
	_ = cache.DelByPattern(ctx, "products:*")
}

// productListCacheKey 仅为公共查询（未带搜索词）生成缓存键
func productListCacheKey(filter repository.ProductListFilter) string {
	if filter.Search != "" || !filter.OnlyActive {
		return ""
	}
	ids := make([]string, 0, len(filter.CategoryIDs))
	for _, id := range filter.CategoryIDs {
		ids = append(ids, fmt.Sprintf("%d", id))
	}
	return fmt.Sprintf("products:list:c=%s:f=%t:w=%t:p=%d:s=%d",
		strings.Join(ids, ","), filter.OnlyFeatured, filter.WithCategory, filter.Page, filter.PageSize)
}
