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

func setupProductServiceTest(t *testing.T) (*ProductService, *gorm.DB, models.Category) {
	t.Helper()

	dsn := fmt.Sprintf("file:product_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	category := models.Category{Name: "Electronics"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	svc := NewProductService(repository.NewProductRepository(db), repository.NewCategoryRepository(db))
	return svc, db, category
}

func TestProductCreateRequiresExistingCategory(t *testing.T) {
	svc, _, _ := setupProductServiceTest(t)

	_, err := svc.Create(context.Background(), ProductInput{
		CategoryID: 99999,
		Name:       "Orphan",
		Price:      models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		IsActive:   true,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing category, got %v", err)
	}
}

func TestProductCreateRejectsInvalidInput(t *testing.T) {
	svc, _, category := setupProductServiceTest(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, ProductInput{CategoryID: category.ID, Name: "  "})
	if !errors.Is(err, ErrInvalidProductInput) {
		t.Fatalf("expected ErrInvalidProductInput for empty name, got %v", err)
	}

	_, err = svc.Create(ctx, ProductInput{
		CategoryID: category.ID,
		Name:       "Bad Price",
		Price:      models.NewMoneyFromDecimal(decimal.NewFromInt(-1)),
	})
	if !errors.Is(err, ErrInvalidProductInput) {
		t.Fatalf("expected ErrInvalidProductInput for negative price, got %v", err)
	}

	_, err = svc.Create(ctx, ProductInput{
		CategoryID:   category.ID,
		Name:         "Bad Stock",
		Price:        models.NewMoneyFromDecimal(decimal.NewFromInt(1)),
		CountInStock: -5,
	})
	if !errors.Is(err, ErrInvalidProductInput) {
		t.Fatalf("expected ErrInvalidProductInput for negative stock, got %v", err)
	}
}

func TestProductListFilters(t *testing.T) {
	svc, db, category := setupProductServiceTest(t)
	ctx := context.Background()

	seed := []models.Product{
		{CategoryID: category.ID, Name: "Keyboard", Price: models.NewMoneyFromDecimal(decimal.NewFromInt(45)), IsActive: true, IsFeatured: true},
		{CategoryID: category.ID, Name: "Mouse", Price: models.NewMoneyFromDecimal(decimal.NewFromInt(25)), IsActive: true},
		{CategoryID: category.ID, Name: "Retired Hub", Price: models.NewMoneyFromDecimal(decimal.NewFromInt(30)), IsActive: false},
	}
	for i := range seed {
		if err := db.Create(&seed[i]).Error; err != nil {
			t.Fatalf("seed product failed: %v", err)
		}
	}

	active, err := svc.List(ctx, repository.ProductListFilter{OnlyActive: true, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list active failed: %v", err)
	}
	if active.Total != 2 {
		t.Fatalf("expected 2 active products, got %d", active.Total)
	}

	featured, err := svc.ListFeatured(ctx, 10)
	if err != nil {
		t.Fatalf("list featured failed: %v", err)
	}
	if len(featured) != 1 || featured[0].Name != "Keyboard" {
		t.Fatalf("unexpected featured products: %+v", featured)
	}

	all, err := svc.List(ctx, repository.ProductListFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if all.Total != 3 {
		t.Fatalf("expected 3 products for admin listing, got %d", all.Total)
	}
}

func TestProductUpdateAndDelete(t *testing.T) {
	svc, _, category := setupProductServiceTest(t)
	ctx := context.Background()

	product, err := svc.Create(ctx, ProductInput{
		CategoryID:   category.ID,
		Name:         "Hub",
		Price:        models.NewMoneyFromDecimal(decimal.NewFromFloat(29.99)),
		CountInStock: 10,
		IsActive:     true,
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	updated, err := svc.Update(ctx, product.ID, ProductInput{
		CategoryID:   category.ID,
		Name:         "USB-C Hub",
		Price:        models.NewMoneyFromDecimal(decimal.NewFromFloat(34.99)),
		CountInStock: 5,
		IsActive:     true,
	})
	if err != nil {
		t.Fatalf("update product failed: %v", err)
	}
	if updated.Name != "USB-C Hub" || updated.Price.String() != "34.99" {
		t.Fatalf("unexpected update result: name=%q price=%s", updated.Name, updated.Price)
	}

	if err := svc.Delete(ctx, product.ID); err != nil {
		t.Fatalf("delete product failed: %v", err)
	}
	if _, err := svc.Get(product.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
