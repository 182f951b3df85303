package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID               uint           `gorm:"primarykey" json:"id"`                                      // 主键
	UserID           uint           `gorm:"index;not null" json:"user_id"`                             // 用户ID
	Status           string         `gorm:"index;not null" json:"status"`                              // 订单状态
	TotalPrice       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"` // 下单时计算的总价（不随商品改价变化）
	ShippingAddress1 string         `gorm:"not null" json:"shipping_address1"`                         // 收货地址
	ShippingAddress2 string         `gorm:"default:''" json:"shipping_address2"`
	City             string         `gorm:"not null" json:"city"`
	Zip              string         `gorm:"not null" json:"zip"`
	Country          string         `gorm:"not null" json:"country"`
	Phone            string         `gorm:"not null" json:"phone"`
	DateOrdered      time.Time      `gorm:"index" json:"date_ordered"` // 下单时间
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// 关联
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
	User  *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`   // 下单用户
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
