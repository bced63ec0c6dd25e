package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/mroshb/streetwars/internal/config"
	"github.com/mroshb/streetwars/internal/database"
	"github.com/mroshb/streetwars/internal/handlers"
	"github.com/mroshb/streetwars/internal/repositories"
	"github.com/mroshb/streetwars/internal/services"
	"github.com/mroshb/streetwars/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Initialize logger
	logger.Init()
	defer logger.Sync()

	logger.Info("Starting Streetwars server...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", err)
	}

	if cfg.AppEnv == "production" {
		if err := cfg.ValidateProductionSecurity(); err != nil {
			logger.Fatal("Production security validation failed", err)
		}
		logger.Info("Production security validation passed")
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", err)
	}

	// Run GORM auto-migration
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Seed the map and the mission catalog
	if err := database.SeedTerritories(db); err != nil {
		logger.Fatal("Failed to seed territories", err)
	}
	if err := database.SeedMissions(db); err != nil {
		logger.Fatal("Failed to seed missions", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	ledgerRepo := repositories.NewLedgerRepository(db)
	gangRepo := repositories.NewGangRepository(db, ledgerRepo)
	territoryRepo := repositories.NewTerritoryRepository(db)
	warRepo := repositories.NewWarRepository(db, ledgerRepo, territoryRepo)
	missionRepo := repositories.NewMissionRepository(db, ledgerRepo)

	// Services
	userSvc := services.NewUserService(cfg, userRepo, ledgerRepo)
	gangSvc := services.NewGangService(gangRepo, userRepo)
	territorySvc := services.NewTerritoryService(territoryRepo)
	warSvc := services.NewWarService(cfg, warRepo, gangRepo, territoryRepo)
	missionSvc := services.NewMissionService(missionRepo, gangRepo)
	incomeSvc := services.NewIncomeService(db, territoryRepo, ledgerRepo, cfg.GetIncomeInterval())

	if err := incomeSvc.Start(); err != nil {
		logger.Fatal("Failed to start income worker", err)
	}

	// HTTP server
	app := fiber.New(fiber.Config{
		AppName: "streetwars",
	})
	app.Use(cors.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	manager := handlers.NewManager(cfg, userSvc, gangSvc, territorySvc, warSvc, missionSvc, ledgerRepo)
	manager.RegisterRoutes(app)

	go func() {
		if err := app.Listen(":" + cfg.AppPort); err != nil {
			logger.Fatal("Server stopped", err)
		}
	}()

	logger.Info("Server started", "port", cfg.AppPort, "env", cfg.AppEnv)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down gracefully...")
	incomeSvc.Stop()
	if err := app.Shutdown(); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}
