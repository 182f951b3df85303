package models

import "time"

// PasswordResetCode 密码重置验证码记录
// 记录创建后不再修改：验证成功、被新验证码取代或超过保留期时删除。
type PasswordResetCode struct {
	ID        uint      `gorm:"primarykey" json:"id"`        // 主键
	Email     string    `gorm:"index;not null" json:"email"` // 邮箱（小写）
	Code      string    `gorm:"not null" json:"-"`           // 验证码（不返回给前端）
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`     // 过期时间
	CreatedAt time.Time `gorm:"index" json:"created_at"`     // 创建时间
}

// TableName 指定表名
func (PasswordResetCode) TableName() string {
	return "password_reset_codes"
}
