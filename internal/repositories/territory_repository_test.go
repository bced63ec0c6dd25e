package repositories

import (
	"testing"
	"time"

	"github.com/mroshb/streetwars/internal/models"
	"github.com/mroshb/streetwars/pkg/errors"
)

func TestTerritoryRepository_ClaimIfUnclaimed(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTerritoryRepository(db)

	userA := createTestUser(t, db, 1, "vito", 500)
	userB := createTestUser(t, db, 2, "sonny", 500)
	gangA := createTestGang(t, db, "Red Docks Crew", "RDC", userA.ID)
	gangB := createTestGang(t, db, "Harbor Boys", "HB", userB.ID)

	territory := &models.Territory{Name: "The Docks", District: "Harbor", Income: 250}
	if err := db.Create(territory).Error; err != nil {
		t.Fatalf("failed to create territory: %v", err)
	}

	if err := repo.ClaimIfUnclaimed(territory.ID, gangA.ID); err != nil {
		t.Fatalf("ClaimIfUnclaimed() first claim error = %v", err)
	}

	// The second claimant loses the race and gets a conflict.
	err := repo.ClaimIfUnclaimed(territory.ID, gangB.ID)
	if errors.Code(err) != errors.ErrCodeConflict {
		t.Errorf("ClaimIfUnclaimed() second claim code = %q, want %q", errors.Code(err), errors.ErrCodeConflict)
	}

	var reloaded models.Territory
	if err := db.First(&reloaded, territory.ID).Error; err != nil {
		t.Fatalf("failed to reload territory: %v", err)
	}
	if reloaded.ControlledBy == nil || *reloaded.ControlledBy != gangA.ID {
		t.Errorf("ControlledBy = %v, want %d", reloaded.ControlledBy, gangA.ID)
	}
}

func TestTerritoryRepository_ClaimIfUnclaimed_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTerritoryRepository(db)

	user := createTestUser(t, db, 1, "vito", 500)
	gang := createTestGang(t, db, "Red Docks Crew", "RDC", user.ID)

	err := repo.ClaimIfUnclaimed(9999, gang.ID)
	if errors.Code(err) != errors.ErrCodeNotFound {
		t.Errorf("ClaimIfUnclaimed() code = %q, want %q", errors.Code(err), errors.ErrCodeNotFound)
	}
}

func TestTerritoryRepository_TransferControlTx(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTerritoryRepository(db)

	userA := createTestUser(t, db, 1, "vito", 500)
	userB := createTestUser(t, db, 2, "sonny", 500)
	gangA := createTestGang(t, db, "Red Docks Crew", "RDC", userA.ID)
	gangB := createTestGang(t, db, "Harbor Boys", "HB", userB.ID)

	territory := &models.Territory{Name: "Fish Market", District: "Harbor", ControlledBy: &gangA.ID}
	if err := db.Create(territory).Error; err != nil {
		t.Fatalf("failed to create territory: %v", err)
	}

	if err := repo.TransferControlTx(db, territory.ID, gangB.ID, time.Hour); err != nil {
		t.Fatalf("TransferControlTx() error = %v", err)
	}

	var reloaded models.Territory
	if err := db.First(&reloaded, territory.ID).Error; err != nil {
		t.Fatalf("failed to reload territory: %v", err)
	}
	if reloaded.ControlledBy == nil || *reloaded.ControlledBy != gangB.ID {
		t.Errorf("ControlledBy = %v, want %d", reloaded.ControlledBy, gangB.ID)
	}
	if !reloaded.UnderCooldown(time.Now()) {
		t.Error("UnderCooldown() = false after transfer, want true")
	}
}
