package repositories

import (
	"testing"

	"github.com/mroshb/streetwars/internal/models"
)

func TestUserRepository_CreateUserIfAbsent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	first := &models.User{ID: 7, Username: "vito", CashBalance: 500}
	if err := repo.CreateUserIfAbsent(first); err != nil {
		t.Fatalf("CreateUserIfAbsent() first insert error = %v", err)
	}

	// The losing side of a provisioning race inserts nothing and
	// reports no error.
	second := &models.User{ID: 7, Username: "sonny", CashBalance: 0}
	if err := repo.CreateUserIfAbsent(second); err != nil {
		t.Fatalf("CreateUserIfAbsent() duplicate insert error = %v", err)
	}

	stored, err := repo.GetUserByID(7)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if stored.Username != "vito" {
		t.Errorf("Username = %q, want %q", stored.Username, "vito")
	}
	if stored.CashBalance != 500 {
		t.Errorf("CashBalance = %d, want 500", stored.CashBalance)
	}

	var count int64
	if err := db.Model(&models.User{}).Where("id = ?", 7).Count(&count).Error; err != nil {
		t.Fatalf("failed to count users: %v", err)
	}
	if count != 1 {
		t.Errorf("user rows = %d, want 1", count)
	}
}

func TestUserRepository_CreateUserIfAbsent_GeneratesPublicID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user := &models.User{ID: 8, Username: "fredo"}
	if err := repo.CreateUserIfAbsent(user); err != nil {
		t.Fatalf("CreateUserIfAbsent() error = %v", err)
	}
	if user.PublicID == "" {
		t.Error("PublicID is empty, want a generated id")
	}
}
