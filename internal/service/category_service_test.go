package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/nextcart/nextcart/internal/models"
	"github.com/nextcart/nextcart/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCategoryServiceTest(t *testing.T) (*CategoryService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:category_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewCategoryService(repository.NewCategoryRepository(db)), db
}

func TestCategoryCreateUpdateDelete(t *testing.T) {
	svc, _ := setupCategoryServiceTest(t)
	ctx := context.Background()

	category, err := svc.Create(ctx, CategoryInput{Name: " Electronics ", Color: "#123456"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	if category.Name != "Electronics" {
		t.Fatalf("expected trimmed name, got %q", category.Name)
	}

	updated, err := svc.Update(ctx, category.ID, CategoryInput{Name: "Gadgets", SortOrder: 2})
	if err != nil {
		t.Fatalf("update category failed: %v", err)
	}
	if updated.Name != "Gadgets" || updated.SortOrder != 2 {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	if err := svc.Delete(ctx, category.ID); err != nil {
		t.Fatalf("delete category failed: %v", err)
	}
	if _, err := svc.Get(category.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestCategoryCreateRequiresName(t *testing.T) {
	svc, _ := setupCategoryServiceTest(t)

	_, err := svc.Create(context.Background(), CategoryInput{Name: "  "})
	if !errors.Is(err, ErrCategoryNameMissing) {
		t.Fatalf("expected ErrCategoryNameMissing, got %v", err)
	}
}

func TestCategoryDeleteRejectedWhenInUse(t *testing.T) {
	svc, db := setupCategoryServiceTest(t)
	ctx := context.Background()

	category, err := svc.Create(ctx, CategoryInput{Name: "Audio"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := models.Product{
		CategoryID: category.ID,
		Name:       "Earbuds",
		Price:      models.NewMoneyFromDecimal(decimal.NewFromFloat(59.00)),
		IsActive:   true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	if err := svc.Delete(ctx, category.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}
}
