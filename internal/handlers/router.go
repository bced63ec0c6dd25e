package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mroshb/streetwars/internal/config"
	"github.com/mroshb/streetwars/internal/middleware"
	"github.com/mroshb/streetwars/internal/repositories"
	"github.com/mroshb/streetwars/internal/services"
)

// Manager holds the handler set and registers routes.
type Manager struct {
	Config  *config.Config
	User    *UserHandler
	Gang    *GangHandler
	Bank    *BankHandler
	War     *WarHandler
	Mission *MissionHandler
	Terrain *TerritoryHandler
	limiter *middleware.RateLimiter
}

func NewManager(
	cfg *config.Config,
	userSvc *services.UserService,
	gangSvc *services.GangService,
	territorySvc *services.TerritoryService,
	warSvc *services.WarService,
	missionSvc *services.MissionService,
	ledger *repositories.LedgerRepository,
) *Manager {
	return &Manager{
		Config:  cfg,
		User:    NewUserHandler(userSvc),
		Gang:    NewGangHandler(gangSvc),
		Bank:    NewBankHandler(gangSvc, ledger),
		War:     NewWarHandler(warSvc),
		Mission: NewMissionHandler(missionSvc),
		Terrain: NewTerritoryHandler(territorySvc),
		limiter: middleware.NewRateLimiter(cfg.RateLimitPerUser, cfg.RateLimitPerIP, time.Minute),
	}
}

// RegisterRoutes mounts the API under /api/v1. Everything requires a
// valid bearer token.
func (m *Manager) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api/v1",
		middleware.AuthRequired(m.Config.JWTSecret),
		m.limiter.Handler(),
	)

	users := api.Group("/users")
	users.Get("/me", m.User.Me)
	users.Get("/me/wallet", m.User.Wallet)
	users.Get("/find", m.User.Find)
	users.Get("/:public_id", m.User.Get)
	users.Post("/adjust", m.User.Adjust)

	gangs := api.Group("/gangs")
	gangs.Post("/", m.Gang.Create)
	gangs.Get("/leaderboard", m.Gang.Leaderboard)
	gangs.Get("/mine", m.Gang.Mine)
	gangs.Get("/slug/:slug", m.Gang.GetBySlug)
	gangs.Get("/:id", m.Gang.Get)
	gangs.Post("/:id/join", m.Gang.Join)
	gangs.Post("/leave", m.Gang.Leave)
	gangs.Post("/promote", m.Gang.Promote)
	gangs.Post("/demote", m.Gang.Demote)
	gangs.Post("/transfer-leadership", m.Gang.TransferLeadership)
	gangs.Post("/kick", m.Gang.Kick)
	gangs.Delete("/", m.Gang.Disband)

	bank := api.Group("/bank")
	bank.Post("/deposit", m.Bank.Deposit)
	bank.Post("/withdraw", m.Bank.Withdraw)
	bank.Get("/history", m.Bank.History)

	territories := api.Group("/territories")
	territories.Get("/", m.Terrain.List)
	territories.Get("/:id", m.Terrain.Get)
	territories.Post("/:id/attack", m.War.Attack)

	wars := api.Group("/wars")
	wars.Get("/", m.War.ListActive)
	wars.Get("/:id", m.War.Get)
	wars.Post("/:id/join", m.War.Join)
	wars.Post("/:id/contribute", m.War.Contribute)

	missions := api.Group("/missions")
	missions.Get("/", m.Mission.List)
	missions.Post("/:id/start", m.Mission.Start)
	missions.Get("/attempts/:id", m.Mission.Check)
	missions.Post("/attempts/:id/collect", m.Mission.Collect)
	missions.Post("/attempts/:id/abandon", m.Mission.Abandon)
}
