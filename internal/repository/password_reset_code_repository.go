package repository

import (
	"errors"
	"time"

	"github.com/nextcart/nextcart/internal/models"

	"gorm.io/gorm"
)

// PasswordResetCodeRepository 密码重置验证码数据访问接口
type PasswordResetCodeRepository interface {
	Create(code *models.PasswordResetCode) error
	GetLatest(email string) (*models.PasswordResetCode, error)
	GetByEmailAndCode(email, code string) (*models.PasswordResetCode, error)
	DeleteByEmail(email string) error
	// ConsumeValid 以单条条件删除语句消费未过期的验证码，
	// 返回是否真的删到了记录。并发验证同一验证码时最多一方成功。
	ConsumeValid(email, code string, now time.Time) (bool, error)
	PurgeCreatedBefore(cutoff time.Time) (int64, error)
}

// GormPasswordResetCodeRepository GORM 实现
type GormPasswordResetCodeRepository struct {
	db *gorm.DB
}

// NewPasswordResetCodeRepository 创建密码重置验证码仓库
func NewPasswordResetCodeRepository(db *gorm.DB) *GormPasswordResetCodeRepository {
	return &GormPasswordResetCodeRepository{db: db}
}

// Create 创建验证码记录
func (r *GormPasswordResetCodeRepository) Create(code *models.PasswordResetCode) error {
	return r.db.Create(code).Error
}

// GetLatest 获取该邮箱最新的验证码记录
func (r *GormPasswordResetCodeRepository) GetLatest(email string) (*models.PasswordResetCode, error) {
	var record models.PasswordResetCode
	if err := r.db.Where("email = ?", email).
		Order("created_at desc, id desc").
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// GetByEmailAndCode 按邮箱与验证码精确匹配
func (r *GormPasswordResetCodeRepository) GetByEmailAndCode(email, code string) (*models.PasswordResetCode, error) {
	var record models.PasswordResetCode
	if err := r.db.Where("email = ? AND code = ?", email, code).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// DeleteByEmail 删除该邮箱的全部验证码记录（新验证码取代旧验证码）
func (r *GormPasswordResetCodeRepository) DeleteByEmail(email string) error {
	return r.db.Unscoped().
		Where("email = ?", email).
		Delete(&models.PasswordResetCode{}).Error
}

// ConsumeValid 原子消费未过期的验证码
func (r *GormPasswordResetCodeRepository) ConsumeValid(email, code string, now time.Time) (bool, error) {
	result := r.db.Unscoped().
		Where("email = ? AND code = ? AND expires_at > ?", email, code, now).
		Delete(&models.PasswordResetCode{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// PurgeCreatedBefore 清理超过保留期的记录
func (r *GormPasswordResetCodeRepository) PurgeCreatedBefore(cutoff time.Time) (int64, error) {
	result := r.db.Unscoped().
		Where("created_at < ?", cutoff).
		Delete(&models.PasswordResetCode{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
