package public

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nextcart/nextcart/internal/config"
	"github.com/nextcart/nextcart/internal/models"
	"github.com/nextcart/nextcart/internal/provider"
	"github.com/nextcart/nextcart/internal/repository"
	"github.com/nextcart/nextcart/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type stubCodeMailer struct {
	sent []string
}

func (m *stubCodeMailer) SendPasswordResetCode(email, code string) error {
	m.sent = append(m.sent, code)
	return nil
}

func setupForgotPasswordTest(t *testing.T) (*gin.Engine, *stubCodeMailer, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:public_auth_%d?mode=memory&cache=shared", time.Now().UnixNano())
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

	mailer := &stubCodeMailer{}
	userRepo := repository.NewUserRepository(db)
	resetSvc := service.NewPasswordResetService(cfg.ResetCode, repository.NewPasswordResetCodeRepository(db), mailer)

	container := &provider.Container{
		Config:      cfg,
		UserRepo:    userRepo,
		AuthService: service.NewAuthService(cfg, userRepo, resetSvc),
	}
	handler := New(container)

	r := gin.New()
	r.POST("/auth/forgot-password", handler.ForgotPassword)
	return r, mailer, db
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeSingleEnvelope 确保响应体只有一个 JSON 对象
func decodeSingleEnvelope(t *testing.T, body *bytes.Buffer) map[string]interface{} {
	t.Helper()
	dec := json.NewDecoder(body)
	var envelope map[string]interface{}
	if err := dec.Decode(&envelope); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); err != io.EOF {
		t.Fatalf("expected a single JSON envelope, found trailing content: %s", extra)
	}
	return envelope
}

func TestForgotPasswordMalformedEmailReturnsSingleError(t *testing.T) {
	r, mailer, _ := setupForgotPasswordTest(t)

	w := postJSON(t, r, "/auth/forgot-password", `{"email":"not-an-email"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected http 200 envelope, got %d", w.Code)
	}

	envelope := decodeSingleEnvelope(t, w.Body)
	if code, _ := envelope["status_code"].(float64); int(code) != 400 {
		t.Fatalf("expected status_code 400, got %v", envelope["status_code"])
	}
	if msg, _ := envelope["msg"].(string); msg != "invalid email" {
		t.Fatalf("unexpected msg: %q", msg)
	}
	if len(mailer.sent) != 0 {
		t.Fatalf("no code should be dispatched for a malformed email")
	}
}

func TestForgotPasswordUnknownEmailLooksLikeSuccess(t *testing.T) {
	r, mailer, _ := setupForgotPasswordTest(t)

	w := postJSON(t, r, "/auth/forgot-password", `{"email":"ghost@example.com"}`)
	envelope := decodeSingleEnvelope(t, w.Body)
	if code, _ := envelope["status_code"].(float64); int(code) != 0 {
		t.Fatalf("unknown email should look like success, got status_code %v", envelope["status_code"])
	}
	if len(mailer.sent) != 0 {
		t.Fatalf("no code should be dispatched for an unknown email")
	}
}

func TestForgotPasswordRegisteredEmailDispatchesCode(t *testing.T) {
	r, mailer, db := setupForgotPasswordTest(t)

	user := models.User{Email: "shopper@example.com", PasswordHash: "x", Status: "active"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user failed: %v", err)
	}

	w := postJSON(t, r, "/auth/forgot-password", `{"email":"Shopper@Example.com"}`)
	envelope := decodeSingleEnvelope(t, w.Body)
	if code, _ := envelope["status_code"].(float64); int(code) != 0 {
		t.Fatalf("expected success envelope, got status_code %v", envelope["status_code"])
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected one dispatched code, got %d", len(mailer.sent))
	}
}
