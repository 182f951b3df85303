package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/nextcart/nextcart/internal/config"
	"github.com/nextcart/nextcart/internal/models"
	"github.com/nextcart/nextcart/internal/repository"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (*AuthService, *fakeCodeMailer, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:auth_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.PasswordResetCode{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret-key-0123456789abcdef0123456789abcdef"
	cfg.JWT.ExpireHours = 24
	cfg.Security.PasswordPolicy.MinLength = 6

	mailer := &fakeCodeMailer{}
	userRepo := repository.NewUserRepository(db)
	resetSvc := NewPasswordResetService(cfg.ResetCode, repository.NewPasswordResetCodeRepository(db), mailer)
	return NewAuthService(cfg, userRepo, resetSvc), mailer, db
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, _ := setupAuthServiceTest(t)

	user, token, _, err := svc.Register(RegisterInput{
		Email:    "Shopper@Example.com",
		Password: "secret1",
		Name:     "Shopper",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "shopper@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if token == "" {
		t.Fatal("expected register to issue a token")
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	logged, token, _, err := svc.Login("shopper@example.com", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if logged.ID != user.ID || token == "" {
		t.Fatalf("unexpected login result: user=%d token=%q", logged.ID, token)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := setupAuthServiceTest(t)

	if _, _, _, err := svc.Register(RegisterInput{Email: "dup@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, _, _, err := svc.Register(RegisterInput{Email: "dup@example.com", Password: "secret2"})
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	svc, _, _ := setupAuthServiceTest(t)

	_, _, _, err := svc.Register(RegisterInput{Email: "weak@example.com", Password: "abc"})
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, _, _ := setupAuthServiceTest(t)

	if _, _, _, err := svc.Register(RegisterInput{Email: "user@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	_, _, _, err := svc.Login("user@example.com", "wrong-password")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginRejectsDisabledUser(t *testing.T) {
	svc, _, db := setupAuthServiceTest(t)

	if _, _, _, err := svc.Register(RegisterInput{Email: "banned@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := db.Model(&models.User{}).Where("email = ?", "banned@example.com").
		Update("status", "disabled").Error; err != nil {
		t.Fatalf("disable user failed: %v", err)
	}

	_, _, _, err := svc.Login("banned@example.com", "secret1")
	if !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("expected ErrUserDisabled, got %v", err)
	}
}

func TestRequestPasswordResetSilentForUnknownEmail(t *testing.T) {
	svc, mailer, _ := setupAuthServiceTest(t)

	if err := svc.RequestPasswordReset("nobody@example.com"); err != nil {
		t.Fatalf("expected silent success for unknown email, got %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Fatalf("expected no code sent, got %v", mailer.sent)
	}
}

func TestResetPasswordFlow(t *testing.T) {
	svc, mailer, _ := setupAuthServiceTest(t)

	if _, _, _, err := svc.Register(RegisterInput{Email: "reset@example.com", Password: "oldpass1"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.RequestPasswordReset("reset@example.com"); err != nil {
		t.Fatalf("request reset failed: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected one code delivered, got %v", mailer.sent)
	}
	code := mailer.sent[0]

	if err := svc.ResetPassword("reset@example.com", code, "newpass1"); err != nil {
		t.Fatalf("reset password failed: %v", err)
	}

	if _, _, _, err := svc.Login("reset@example.com", "oldpass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected old password rejected, got %v", err)
	}
	if _, _, _, err := svc.Login("reset@example.com", "newpass1"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}

	// 验证码已消费，二次使用失败
	if err := svc.ResetPassword("reset@example.com", code, "another1"); !errors.Is(err, ErrResetCodeInvalid) {
		t.Fatalf("expected ErrResetCodeInvalid on reuse, got %v", err)
	}
}

func TestResetPasswordRejectsWrongCode(t *testing.T) {
	svc, _, _ := setupAuthServiceTest(t)

	if _, _, _, err := svc.Register(RegisterInput{Email: "codes@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := svc.RequestPasswordReset("codes@example.com"); err != nil {
		t.Fatalf("request reset failed: %v", err)
	}

	err := svc.ResetPassword("codes@example.com", "999999x", "newpass1")
	if !errors.Is(err, ErrResetCodeInvalid) {
		t.Fatalf("expected ErrResetCodeInvalid, got %v", err)
	}
}

func TestPasswordsAreStoredHashed(t *testing.T) {
	svc, _, db := setupAuthServiceTest(t)

	if _, _, _, err := svc.Register(RegisterInput{Email: "hash@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	var user models.User
	if err := db.Where("email = ?", "hash@example.com").First(&user).Error; err != nil {
		t.Fatalf("load user failed: %v", err)
	}
	if user.PasswordHash == "secret1" {
		t.Fatal("expected hashed password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")); err != nil {
		t.Fatalf("expected bcrypt hash matching password: %v", err)
	}
}
