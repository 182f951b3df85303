package models

import (
	"time"

	"gorm.io/gorm"
)

// Category 分类表
type Category struct {
	ID        uint           `gorm:"primarykey" json:"id"`            // 主键
	Name      string         `gorm:"not null;index" json:"name"`      // 分类名称
	Icon      string         `gorm:"type:varchar(500)" json:"icon"`   // 分类图标
	Color     string         `gorm:"type:varchar(20)" json:"color"`   // 前端展示颜色
	SortOrder int            `gorm:"default:0;index" json:"sort_order"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
