package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/nextcart/nextcart/internal/constants"
	"github.com/nextcart/nextcart/internal/models"
	"github.com/nextcart/nextcart/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (*OrderService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:order_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Product{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	svc := NewOrderService(
		db,
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		repository.NewUserRepository(db),
		nil,
	)
	return svc, db
}

func createOrderTestProduct(t *testing.T, db *gorm.DB, name string, price float64, active bool) models.Product {
	t.Helper()

	category := models.Category{Name: "test-category-" + name}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := models.Product{
		CategoryID:   category.ID,
		Name:         name,
		Price:        models.NewMoneyFromDecimal(decimal.NewFromFloat(price)),
		CountInStock: 100,
		IsActive:     active,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func orderShippingInput(userID uint, items []OrderItemInput) CreateOrderInput {
	return CreateOrderInput{
		UserID:           userID,
		Items:            items,
		ShippingAddress1: "1 Main St",
		City:             "Springfield",
		Zip:              "12345",
		Country:          "US",
		Phone:            "555-0100",
	}
}

func TestCreateOrderComputesTotalFromSnapshotPrices(t *testing.T) {
	svc, db := setupOrderServiceTest(t)

	keyboard := createOrderTestProduct(t, db, "keyboard", 10.00, true)
	mug := createOrderTestProduct(t, db, "mug", 2.50, true)

	order, err := svc.Create(orderShippingInput(1, []OrderItemInput{
		{ProductID: keyboard.ID, Quantity: 2},
		{ProductID: mug.ID, Quantity: 2},
	}))
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if got := order.TotalPrice.String(); got != "25.00" {
		t.Fatalf("expected total 25.00, got %s", got)
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("expected pending status, got %s", order.Status)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(order.Items))
	}
	for _, item := range order.Items {
		if item.ProductID == keyboard.ID {
			if item.UnitPrice.String() != "10.00" || item.LineTotal.String() != "20.00" {
				t.Fatalf("unexpected keyboard snapshot: unit=%s line=%s", item.UnitPrice, item.LineTotal)
			}
			if item.ProductName != "keyboard" {
				t.Fatalf("expected product name snapshot, got %q", item.ProductName)
			}
		}
	}
}

func TestCreateOrderTotalSurvivesPriceChange(t *testing.T) {
	svc, db := setupOrderServiceTest(t)

	product := createOrderTestProduct(t, db, "hub", 30.00, true)
	order, err := svc.Create(orderShippingInput(1, []OrderItemInput{{ProductID: product.ID, Quantity: 1}}))
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	// 改价后重新读取订单，总价仍为下单时快照
	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("price", "99.99").Error; err != nil {
		t.Fatalf("update price failed: %v", err)
	}

	reloaded, err := svc.Get(order.ID)
	if err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if got := reloaded.TotalPrice.String(); got != "30.00" {
		t.Fatalf("expected snapshot total 30.00, got %s", got)
	}
}

func TestCreateOrderRejectsEmptyItems(t *testing.T) {
	svc, _ := setupOrderServiceTest(t)

	_, err := svc.Create(orderShippingInput(1, nil))
	if !errors.Is(err, ErrOrderEmpty) {
		t.Fatalf("expected ErrOrderEmpty, got %v", err)
	}
}

func TestCreateOrderRejectsInvalidQuantity(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	product := createOrderTestProduct(t, db, "earbuds", 59.00, true)

	_, err := svc.Create(orderShippingInput(1, []OrderItemInput{{ProductID: product.ID, Quantity: 0}}))
	if !errors.Is(err, ErrInvalidOrderItem) {
		t.Fatalf("expected ErrInvalidOrderItem, got %v", err)
	}
}

func TestCreateOrderMissingProductFailsWholeOrder(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	product := createOrderTestProduct(t, db, "cable", 5.00, true)

	_, err := svc.Create(orderShippingInput(1, []OrderItemInput{
		{ProductID: product.ID, Quantity: 1},
		{ProductID: 99999, Quantity: 1},
	}))
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	var orderCount, itemCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	db.Model(&models.OrderItem{}).Count(&itemCount)
	if orderCount != 0 || itemCount != 0 {
		t.Fatalf("expected rollback, got %d orders and %d items", orderCount, itemCount)
	}
}

func TestCreateOrderRejectsInactiveProduct(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	product := createOrderTestProduct(t, db, "retired", 9.99, false)

	_, err := svc.Create(orderShippingInput(1, []OrderItemInput{{ProductID: product.ID, Quantity: 1}}))
	if !errors.Is(err, ErrProductInactive) {
		t.Fatalf("expected ErrProductInactive, got %v", err)
	}
}

func TestUpdateOrderStatusTransitions(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	product := createOrderTestProduct(t, db, "charger", 15.00, true)

	order, err := svc.Create(orderShippingInput(1, []OrderItemInput{{ProductID: product.ID, Quantity: 1}}))
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	// pending -> delivered 不允许
	if _, err := svc.UpdateStatus(order.ID, constants.OrderStatusDelivered); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid, got %v", err)
	}

	shipped, err := svc.UpdateStatus(order.ID, constants.OrderStatusShipped)
	if err != nil {
		t.Fatalf("ship order failed: %v", err)
	}
	if shipped.Status != constants.OrderStatusShipped {
		t.Fatalf("expected shipped, got %s", shipped.Status)
	}

	delivered, err := svc.UpdateStatus(order.ID, constants.OrderStatusDelivered)
	if err != nil {
		t.Fatalf("deliver order failed: %v", err)
	}
	if delivered.Status != constants.OrderStatusDelivered {
		t.Fatalf("expected delivered, got %s", delivered.Status)
	}

	// delivered 为终态
	if _, err := svc.UpdateStatus(order.ID, constants.OrderStatusCanceled); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid, got %v", err)
	}
}

func TestGetStatsExcludesCanceledOrders(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	product := createOrderTestProduct(t, db, "lamp", 20.00, true)

	kept, err := svc.Create(orderShippingInput(1, []OrderItemInput{{ProductID: product.ID, Quantity: 1}}))
	if err != nil {
		t.Fatalf("create kept order failed: %v", err)
	}
	canceled, err := svc.Create(orderShippingInput(2, []OrderItemInput{{ProductID: product.ID, Quantity: 3}}))
	if err != nil {
		t.Fatalf("create canceled order failed: %v", err)
	}
	if _, err := svc.UpdateStatus(canceled.ID, constants.OrderStatusCanceled); err != nil {
		t.Fatalf("cancel order failed: %v", err)
	}

	stats, err := svc.GetStats()
	if err != nil {
		t.Fatalf("get stats failed: %v", err)
	}
	if got := stats.TotalSales.String(); got != kept.TotalPrice.String() {
		t.Fatalf("expected sales %s, got %s", kept.TotalPrice, got)
	}
	if stats.OrderCount != 2 {
		t.Fatalf("expected 2 orders counted, got %d", stats.OrderCount)
	}
}
