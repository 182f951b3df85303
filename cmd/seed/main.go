package main

import (
	"time"

	"github.com/nextcart/nextcart/internal/config"
	"github.com/nextcart/nextcart/internal/logger"
	"github.com/nextcart/nextcart/internal/models"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("failed to migrate database: %v", err)
	}

	// 分类
	categories := []models.Category{
		{Name: "Electronics", Icon: "cpu", Color: "#2f6fed", SortOrder: 1},
		{Name: "Home & Kitchen", Icon: "home", Color: "#1db954", SortOrder: 2},
		{Name: "Accessories", Icon: "headphones", Color: "#f59e0b", SortOrder: 3},
	}
	for i := range categories {
		var exist models.Category
		if err := models.DB.Where("name = ?", categories[i].Name).First(&exist).Error; err == nil {
			categories[i] = exist
			continue
		}
		categories[i].CreatedAt = time.Now()
		if err := models.DB.Create(&categories[i]).Error; err != nil {
			stdLog.Fatalf("failed to seed category %q: %v", categories[i].Name, err)
		}
	}

	// 商品
	products := []models.Product{
		{
			CategoryID:   categories[0].ID,
			Name:         "Wireless Keyboard",
			Description:  "Slim wireless keyboard with quiet keys",
			Brand:        "Nextcart",
			Price:        models.NewMoneyFromFloat(45.90),
			CountInStock: 120,
			IsFeatured:   true,
			IsActive:     true,
		},
		{
			CategoryID:   categories[0].ID,
			Name:         "USB-C Hub",
			Description:  "7-in-1 hub with HDMI and card reader",
			Brand:        "Nextcart",
			Price:        models.NewMoneyFromFloat(29.99),
			CountInStock: 200,
			IsActive:     true,
		},
		{
			CategoryID:   categories[1].ID,
			Name:         "Ceramic Mug Set",
			Description:  "Set of 4 stoneware mugs",
			Brand:        "Nextcart Home",
			Price:        models.NewMoneyFromFloat(24.50),
			CountInStock: 80,
			IsFeatured:   true,
			IsActive:     true,
		},
		{
			CategoryID:   categories[2].ID,
			Name:         "Bluetooth Earbuds",
			Description:  "Noise isolating earbuds, 24h battery",
			Brand:        "Nextcart Audio",
			Price:        models.NewMoneyFromFloat(59.00),
			CountInStock: 150,
			IsActive:     true,
		},
	}
	now := time.Now()
	for i := range products {
		var exist models.Product
		if err := models.DB.Where("name = ?", products[i].Name).First(&exist).Error; err == nil {
			continue
		}
		products[i].CreatedAt = now
		products[i].UpdatedAt = now
		if err := models.DB.Create(&products[i]).Error; err != nil {
			stdLog.Fatalf("failed to seed product %q: %v", products[i].Name, err)
		}
	}

	if err := models.InitDefaultAdmin("", ""); err != nil {
		stdLog.Fatalf("failed to seed default admin: %v", err)
	}

	stdLog.Printf("seed completed: %d categories, %d products", len(categories), len(products))
}
