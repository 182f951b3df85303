package service

import (
	"crypto/rand"
	"math/big"
	"strings"
	"time"

	"github.com/nextcart/nextcart/internal/config"
	"github.com/nextcart/nextcart/internal/logger"
	"github.com/nextcart/nextcart/internal/models"
	"github.com/nextcart/nextcart/internal/repository"
)

// CodeMailer 验证码投递接口
type CodeMailer interface {
	SendPasswordResetCode(email, code string) error
}

// PasswordResetService 密码重置验证码服务。
// 每个邮箱同一时刻只有一条可用验证码：新验证码写入前先删除旧记录，
// 验证成功即删除（一次性使用），超过保留期的记录由 worker 周期清理。
type PasswordResetService struct {
	cfg      config.ResetCodeConfig
	codeRepo repository.PasswordResetCodeRepository
	mailer   CodeMailer
}

// NewPasswordResetService 创建密码重置验证码服务
func NewPasswordResetService(cfg config.ResetCodeConfig, codeRepo repository.PasswordResetCodeRepository, mailer CodeMailer) *PasswordResetService {
	return &PasswordResetService{
		cfg:      cfg,
		codeRepo: codeRepo,
		mailer:   mailer,
	}
}

// Create 为邮箱生成并投递新的验证码，返回生成的验证码。
// 旧验证码在新记录写入前删除，因此同邮箱重复申请会使旧码立即失效。
func (s *PasswordResetService) Create(email string) (string, error) {
	normalized := normalizeResetEmail(email)

	latest, err := s.codeRepo.GetLatest(normalized)
	if err != nil {
		return "", err
	}
	now := time.Now()
	if latest != nil {
		interval := time.Duration(s.resolveSendIntervalSeconds()) * time.Second
		if now.Sub(latest.CreatedAt) < interval {
			return "", ErrResetCodeTooFrequent
		}
	}

	code, err := randomNumericCode(s.resolveCodeLength())
	if err != nil {
		return "", err
	}

	if err := s.codeRepo.DeleteByEmail(normalized); err != nil {
		return "", err
	}

	record := &models.PasswordResetCode{
		Email:     normalized,
		Code:      code,
		ExpiresAt: now.Add(time.Duration(s.resolveExpireMinutes()) * time.Minute),
		CreatedAt: now,
	}
	if err := s.codeRepo.Create(record); err != nil {
		return "", err
	}

	if s.mailer != nil {
		if err := s.mailer.SendPasswordResetCode(normalized, code); err != nil {
			return "", err
		}
	}

	return code, nil
}

// Verify 校验并消费验证码。
// 验证码不存在或已过期返回 false 且不产生副作用；
// 命中未过期记录时以原子条件删除消费，并发竞争下最多一方得到 true。
func (s *PasswordResetService) Verify(email, code string) (bool, error) {
	normalized := normalizeResetEmail(email)
	if code == "" {
		return false, nil
	}

	record, err := s.codeRepo.GetByEmailAndCode(normalized, code)
	if err != nil {
		return false, err
	}
	if record == nil {
		return false, nil
	}

	now := time.Now()
	if !record.ExpiresAt.After(now) {
		// 过期记录不可消费，留给保留期清理
		return false, nil
	}

	consumed, err := s.codeRepo.ConsumeValid(normalized, code, now)
	if err != nil {
		return false, err
	}
	return consumed, nil
}

// PurgeExpired 清理超过保留期的验证码记录
func (s *PasswordResetService) PurgeExpired() (int64, error) {
	cutoff := time.Now().Add(-time.Duration(s.resolveRetentionMinutes()) * time.Minute)
	purged, err := s.codeRepo.PurgeCreatedBefore(cutoff)
	if err != nil {
		return 0, err
	}
	if purged > 0 {
		logger.Debugw("password_reset_codes_purged", "count", purged)
	}
	return purged, nil
}

func (s *PasswordResetService) resolveExpireMinutes() int {
	if s.cfg.ExpireMinutes <= 0 {
		return 15
	}
	return s.cfg.ExpireMinutes
}

func (s *PasswordResetService) resolveRetentionMinutes() int {
	if s.cfg.RetentionMinutes < s.resolveExpireMinutes() {
		return 60
	}
	return s.cfg.RetentionMinutes
}

func (s *PasswordResetService) resolveSendIntervalSeconds() int {
	if s.cfg.SendIntervalSeconds < 0 {
		return 0
	}
	return s.cfg.SendIntervalSeconds
}

func (s *PasswordResetService) resolveCodeLength() int {
	if s.cfg.Length < 4 || s.cfg.Length > 10 {
		return 6
	}
	return s.cfg.Length
}

func normalizeResetEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// randomNumericCode 逐位生成均匀随机数字验证码，保留前导零
func randomNumericCode(length int) (string, error) {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String(), nil
}
