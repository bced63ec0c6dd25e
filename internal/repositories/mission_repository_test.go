package repositories

import (
	"testing"
	"time"

	"github.com/mroshb/streetwars/internal/models"
	"github.com/mroshb/streetwars/pkg/errors"
)

func TestMissionRepository_CollectRewards_PaysOnce(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedgerRepository(db)
	repo := NewMissionRepository(db, ledger)

	user := createTestUser(t, db, 1, "vito", 500)
	gang := createTestGang(t, db, "Red Docks Crew", "RDC", user.ID)

	mission := &models.GangMission{
		Name:            "Protection Racket",
		RequiredMembers: 1,
		RewardCash:      500,
		RewardRespect:   25,
		RewardXP:        50,
		DurationMinutes: 1,
		CooldownMinutes: 120,
		Active:          true,
	}
	if err := db.Create(mission).Error; err != nil {
		t.Fatalf("failed to create mission: %v", err)
	}

	attempt, err := repo.StartAttempt(gang.ID, mission.ID)
	if err != nil {
		t.Fatalf("StartAttempt() error = %v", err)
	}

	// Run the timer out.
	if err := db.Model(&models.GangMissionAttempt{}).Where("id = ?", attempt.ID).
		Update("started_at", time.Now().Add(-2*time.Minute)).Error; err != nil {
		t.Fatalf("failed to backdate attempt: %v", err)
	}

	collected, err := repo.CollectRewards(attempt.ID)
	if err != nil {
		t.Fatalf("CollectRewards() error = %v", err)
	}
	if collected.Status != models.AttemptStatusCompleted {
		t.Errorf("Status = %q, want %q", collected.Status, models.AttemptStatusCompleted)
	}

	var paidGang models.Gang
	if err := db.First(&paidGang, gang.ID).Error; err != nil {
		t.Fatalf("failed to reload gang: %v", err)
	}
	if paidGang.BankBalance != 500 {
		t.Errorf("BankBalance = %d, want 500", paidGang.BankBalance)
	}
	if paidGang.Respect != 25 {
		t.Errorf("Respect = %d, want 25", paidGang.Respect)
	}
	if paidGang.XP != 50 {
		t.Errorf("XP = %d, want 50", paidGang.XP)
	}

	// A second collection finds the attempt already completed and
	// pays nothing.
	_, err = repo.CollectRewards(attempt.ID)
	if errors.Code(err) != errors.ErrCodeConflict {
		t.Errorf("CollectRewards() second call code = %q, want %q", errors.Code(err), errors.ErrCodeConflict)
	}

	if err := db.First(&paidGang, gang.ID).Error; err != nil {
		t.Fatalf("failed to reload gang: %v", err)
	}
	if paidGang.BankBalance != 500 {
		t.Errorf("BankBalance after second collect = %d, want 500", paidGang.BankBalance)
	}
}

func TestMissionRepository_CollectRewards_BeforeTimer(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedgerRepository(db)
	repo := NewMissionRepository(db, ledger)

	user := createTestUser(t, db, 1, "vito", 500)
	gang := createTestGang(t, db, "Red Docks Crew", "RDC", user.ID)

	mission := &models.GangMission{
		Name:            "Warehouse Heist",
		RequiredMembers: 1,
		RewardCash:      2000,
		DurationMinutes: 120,
		CooldownMinutes: 480,
		Active:          true,
	}
	if err := db.Create(mission).Error; err != nil {
		t.Fatalf("failed to create mission: %v", err)
	}

	attempt, err := repo.StartAttempt(gang.ID, mission.ID)
	if err != nil {
		t.Fatalf("StartAttempt() error = %v", err)
	}

	_, err = repo.CollectRewards(attempt.ID)
	if errors.Code(err) != errors.ErrCodeValidationFailed {
		t.Errorf("CollectRewards() code = %q, want %q", errors.Code(err), errors.ErrCodeValidationFailed)
	}
}

func TestMissionRepository_StartAttempt_WhileInProgress(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedgerRepository(db)
	repo := NewMissionRepository(db, ledger)

	user := createTestUser(t, db, 1, "vito", 500)
	gang := createTestGang(t, db, "Red Docks Crew", "RDC", user.ID)

	mission := &models.GangMission{
		Name:            "Protection Racket",
		RequiredMembers: 1,
		DurationMinutes: 30,
		CooldownMinutes: 120,
		Active:          true,
	}
	if err := db.Create(mission).Error; err != nil {
		t.Fatalf("failed to create mission: %v", err)
	}

	if _, err := repo.StartAttempt(gang.ID, mission.ID); err != nil {
		t.Fatalf("StartAttempt() error = %v", err)
	}

	_, err := repo.StartAttempt(gang.ID, mission.ID)
	if errors.Code(err) != errors.ErrCodeConflict {
		t.Errorf("StartAttempt() second call code = %q, want %q", errors.Code(err), errors.ErrCodeConflict)
	}
}
