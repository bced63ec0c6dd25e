package repositories

import (
	"testing"

	"github.com/mroshb/streetwars/internal/models"
	"github.com/mroshb/streetwars/pkg/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get database instance: %v", err)
	}
	// A single connection keeps every query on the same in-memory
	// database.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.CashTransaction{},
		&models.Gang{},
		&models.GangMember{},
		&models.Territory{},
		&models.War{},
		&models.WarParticipant{},
		&models.GangMission{},
		&models.GangMissionAttempt{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, id uint, username string, cash int64) *models.User {
	t.Helper()

	user := &models.User{ID: id, Username: username, PublicID: utils.GenerateRandomID(8), CashBalance: cash}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user %q: %v", username, err)
	}
	return user
}

func createTestGang(t *testing.T, db *gorm.DB, name, tag string, ownerID uint) *models.Gang {
	t.Helper()

	gang := &models.Gang{
		Name:        name,
		Tag:         tag,
		Slug:        tag,
		OwnerID:     ownerID,
		MemberCount: 1,
	}
	if err := db.Create(gang).Error; err != nil {
		t.Fatalf("failed to create test gang %q: %v", name, err)
	}

	member := &models.GangMember{GangID: gang.ID, UserID: ownerID, Role: models.RoleLeader}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("failed to create leader membership for %q: %v", name, err)
	}
	return gang
}
