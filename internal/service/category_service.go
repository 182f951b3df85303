package service

import (
	"context"
	"strings"
	"time"

	"github.com/nextcart/nextcart/internal/cache"
	"github.com/nextcart/nextcart/internal/models"
	"github.com/nextcart/nextcart/internal/repository"
)

const categoryListCacheKey = "categories:all"

// CategoryService 商品分类服务
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService 创建商品分类服务
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// List 分类列表，优先读缓存
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	var cached []models.Category
	if ok, _ := cache.GetJSON(ctx, categoryListCacheKey, &cached); ok {
		return cached, nil
	}

	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	_ = cache.SetJSON(ctx, categoryListCacheKey, categories, 5*time.Minute)
	return categories, nil
}

// Get 获取单个分类
func (s *CategoryService) Get(id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}

// CategoryInput 分类创建/更新输入
type CategoryInput struct {
	Name      string
	Icon      string
	Color     string
	SortOrder int
}

// Create 创建分类
func (s *CategoryService) Create(ctx context.Context, input CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrCategoryNameMissing
	}
	category := &models.Category{
		Name:      name,
		Icon:      strings.TrimSpace(input.Icon),
		Color:     strings.TrimSpace(input.Color),
		SortOrder: input.SortOrder,
		CreatedAt: time.Now(),
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return category, nil
}

// Update 更新分类
func (s *CategoryService) Update(ctx context.Context, id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrCategoryNameMissing
	}
	category.Name = name
	category.Icon = strings.TrimSpace(input.Icon)
	category.Color = strings.TrimSpace(input.Color)
	category.SortOrder = input.SortOrder
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return category, nil
}

// Delete 删除分类，存在关联商品时拒绝
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrNotFound
	}
	count, err := s.categoryRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}
	if err := s.categoryRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *CategoryService) invalidateCache(ctx context.Context) {
	_ = cache.Del(ctx, categoryListCacheKey)
	_ = cache.DelByPattern(ctx, "products:*")
}
