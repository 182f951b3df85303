package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/nextcart/nextcart/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupResetCodeRepoTest(t *testing.T) (*GormPasswordResetCodeRepository, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:reset_code_repo_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.PasswordResetCode{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewPasswordResetCodeRepository(db), db
}

func TestConsumeValidIsSingleUse(t *testing.T) {
	repo, _ := setupResetCodeRepoTest(t)

	record := &models.PasswordResetCode{
		Email:     "user@example.com",
		Code:      "123456",
		ExpiresAt: time.Now().Add(15 * time.Minute),
		CreatedAt: time.Now(),
	}
	if err := repo.Create(record); err != nil {
		t.Fatalf("create record failed: %v", err)
	}

	ok, err := repo.ConsumeValid("user@example.com", "123456", time.Now())
	if err != nil {
		t.Fatalf("first consume failed: %v", err)
	}
	if !ok {
		t.Fatal("expected first consume to succeed")
	}

	ok, err = repo.ConsumeValid("user@example.com", "123456", time.Now())
	if err != nil {
		t.Fatalf("second consume failed: %v", err)
	}
	if ok {
		t.Fatal("expected second consume to fail")
	}
}

func TestConsumeValidRejectsExpired(t *testing.T) {
	repo, _ := setupResetCodeRepoTest(t)

	record := &models.PasswordResetCode{
		Email:     "user@example.com",
		Code:      "123456",
		ExpiresAt: time.Now().Add(-time.Minute),
		CreatedAt: time.Now().Add(-20 * time.Minute),
	}
	if err := repo.Create(record); err != nil {
		t.Fatalf("create record failed: %v", err)
	}

	ok, err := repo.ConsumeValid("user@example.com", "123456", time.Now())
	if err != nil {
		t.Fatalf("consume failed: %v", err)
	}
	if ok {
		t.Fatal("expected expired code not to be consumable")
	}
}

func TestConsumeValidRepeatedAttemptsSingleWinner(t *testing.T) {
	repo, _ := setupResetCodeRepoTest(t)

	record := &models.PasswordResetCode{
		Email:     "user@example.com",
		Code:      "654321",
		ExpiresAt: time.Now().Add(15 * time.Minute),
		CreatedAt: time.Now(),
	}
	if err := repo.Create(record); err != nil {
		t.Fatalf("create record failed: %v", err)
	}

	winners := 0
	for i := 0; i < 8; i++ {
		ok, err := repo.ConsumeValid("user@example.com", "654321", time.Now())
		if err != nil {
			t.Fatalf("consume attempt %d failed: %v", i, err)
		}
		if ok {
			winners++
		}
	}
	if winners != 1 {
		t.Fatalf("expected exactly one winner, got %d", winners)
	}
}

func TestDeleteByEmailRemovesAllRecords(t *testing.T) {
	repo, db := setupResetCodeRepoTest(t)

	for i := 0; i < 3; i++ {
		record := &models.PasswordResetCode{
			Email:     "multi@example.com",
			Code:      fmt.Sprintf("10000%d", i),
			ExpiresAt: time.Now().Add(15 * time.Minute),
			CreatedAt: time.Now(),
		}
		if err := repo.Create(record); err != nil {
			t.Fatalf("create record failed: %v", err)
		}
	}

	if err := repo.DeleteByEmail("multi@example.com"); err != nil {
		t.Fatalf("delete by email failed: %v", err)
	}
	var count int64
	db.Model(&models.PasswordResetCode{}).Where("email = ?", "multi@example.com").Count(&count)
	if count != 0 {
		t.Fatalf("expected no records, got %d", count)
	}
}

func TestPurgeCreatedBefore(t *testing.T) {
	repo, db := setupResetCodeRepoTest(t)

	old := &models.PasswordResetCode{
		Email:     "old@example.com",
		Code:      "111111",
		ExpiresAt: time.Now().Add(-time.Hour),
		CreatedAt: time.Now().Add(-2 * time.Hour),
	}
	fresh := &models.PasswordResetCode{
		Email:     "fresh@example.com",
		Code:      "222222",
		ExpiresAt: time.Now().Add(15 * time.Minute),
		CreatedAt: time.Now(),
	}
	if err := repo.Create(old); err != nil {
		t.Fatalf("create old failed: %v", err)
	}
	if err := repo.Create(fresh); err != nil {
		t.Fatalf("create fresh failed: %v", err)
	}

	purged, err := repo.PurgeCreatedBefore(time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("purge failed: %v", err)
	}
	if purged != 1 {
		t.Fatalf("expected 1 purged, got %d", purged)
	}

	var count int64
	db.Model(&models.PasswordResetCode{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected fresh record kept, got %d", count)
	}
}
