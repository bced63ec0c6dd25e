package database

import (
	"fmt"
	"time"

	"github.com/mroshb/streetwars/internal/config"
	"github.com/mroshb/streetwars/internal/models"
	"github.com/mroshb/streetwars/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.GetDSN()

	var logLevel gormlogger.LogLevel
	if cfg.AppEnv == "development" {
		logLevel = gormlogger.Info
	} else {
		logLevel = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		SkipDefaultTransaction: true, // Skip wrapping every operation in a transaction
		PrepareStmt:            true, // Cache prepared statements
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(50)
	sqlDB.SetMaxOpenConns(500)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	logger.Info("Database connected successfully")
	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	logger.Info("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.CashTransaction{},
		&models.Gang{},
		&models.GangMember{},
		&models.Territory{},
		&models.War{},
		&models.WarParticipant{},
		&models.GangMission{},
		&models.GangMissionAttempt{},
	)

	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// SeedTerritories creates the map once. Territory rows are never
// deleted afterwards; only their controller and cooldown change.
func SeedTerritories(db *gorm.DB) error {
	var count int64
	db.Model(&models.Territory{}).Count(&count)
	if count > 0 {
		return nil
	}

	logger.Info("Seeding territories...")
	territories := []models.Territory{
		{Name: "The Docks", District: "Harbor", Income: 250, DefenseBonus: 10},
		{Name: "Fish Market", District: "Harbor", Income: 150, DefenseBonus: 5},
		{Name: "Union Yard", District: "Harbor", Income: 200, DefenseBonus: 15},
		{Name: "Little Italy", District: "Downtown", Income: 400, DefenseBonus: 25},
		{Name: "Diamond Row", District: "Downtown", Income: 500, DefenseBonus: 30},
		{Name: "City Hall Block", District: "Downtown", Income: 350, DefenseBonus: 35},
		{Name: "The Projects", District: "East Side", Income: 100, DefenseBonus: 5},
		{Name: "Iron Bridge", District: "East Side", Income: 175, DefenseBonus: 20},
		{Name: "Red Light Strip", District: "East Side", Income: 300, DefenseBonus: 10},
		{Name: "Greyhound Track", District: "Uptown", Income: 275, DefenseBonus: 15},
		{Name: "Casino Mile", District: "Uptown", Income: 450, DefenseBonus: 20},
		{Name: "Old Cemetery", District: "Uptown", Income: 50, DefenseBonus: 40},
	}

	return db.Create(&territories).Error
}

// SeedMissions creates the static gang mission definitions.
func SeedMissions(db *gorm.DB) error {
	var count int64
	db.Model(&models.GangMission{}).Count(&count)
	if count > 0 {
		return nil
	}

	logger.Info("Seeding gang missions...")
	missions := []models.GangMission{
		{
			Name:            "Protection Racket",
			Description:     "Shake down the shopkeepers on your block.",
			RequiredMembers: 2,
			RewardCash:      500,
			RewardRespect:   25,
			RewardXP:        50,
			DurationMinutes: 30,
			CooldownMinutes: 120,
		},
		{
			Name:            "Warehouse Heist",
			Description:     "Empty a rival supplier's warehouse overnight.",
			RequiredMembers: 4,
			RewardCash:      2000,
			RewardRespect:   100,
			RewardXP:        200,
			DurationMinutes: 120,
			CooldownMinutes: 480,
		},
		{
			Name:            "Armored Truck Job",
			Description:     "Hit the weekly cash transport on Route 9.",
			RequiredMembers: 6,
			RewardCash:      5000,
			RewardRespect:   300,
			RewardXP:        500,
			DurationMinutes: 240,
			CooldownMinutes: 1440,
		},
		{
			Name:            "Casino Skim",
			Description:     "Walk the count room out the back door.",
			RequiredMembers: 8,
			RewardCash:      10000,
			RewardRespect:   750,
			RewardXP:        1000,
			DurationMinutes: 480,
			CooldownMinutes: 2880,
		},
	}

	return db.Create(&missions).Error
}
