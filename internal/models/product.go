package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID           uint           `gorm:"primarykey" json:"id"`                                      // 主键
	CategoryID   uint           `gorm:"not null;index" json:"category_id"`                         // 分类ID
	Name         string         `gorm:"not null;index" json:"name"`                                // 商品名称
	Description  string         `gorm:"type:text" json:"description"`                              // 简介
	RichText     string         `gorm:"type:text" json:"rich_text"`                                // 详情
	Brand        string         `gorm:"default:''" json:"brand"`                                   // 品牌
	Price        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`       // 单价
	Image        string         `gorm:"type:varchar(500)" json:"image"`                            // 主图
	CountInStock int            `gorm:"not null;default:0" json:"count_in_stock"`                  // 库存数量
	Rating       int            `gorm:"default:0" json:"rating"`                                   // 评分
	IsFeatured   bool           `gorm:"default:false;index" json:"is_featured"`                    // 是否精选
	IsActive     bool           `gorm:"default:true;index" json:"is_active"`                       // 是否上架
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// 关联
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
