package services

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/mroshb/streetwars/internal/models"
	"github.com/mroshb/streetwars/internal/repositories"
	"github.com/mroshb/streetwars/pkg/logger"
	"gorm.io/gorm"
)

// IncomeService pays each controlled territory's income into its
// owner's gang bank on a fixed tick.
type IncomeService struct {
	db            *gorm.DB
	territoryRepo *repositories.TerritoryRepository
	ledger        *repositories.LedgerRepository
	interval      time.Duration
	scheduler     gocron.Scheduler
}

func NewIncomeService(
	db *gorm.DB,
	territoryRepo *repositories.TerritoryRepository,
	ledger *repositories.LedgerRepository,
	interval time.Duration,
) *IncomeService {
	return &IncomeService{
		db:            db,
		territoryRepo: territoryRepo,
		ledger:        ledger,
		interval:      interval,
	}
}

// Start schedules the payout job.
func (s *IncomeService) Start() error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	if _, err := sched.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(s.payoutTick),
	); err != nil {
		return fmt.Errorf("failed to schedule income job: %w", err)
	}

	sched.Start()
	s.scheduler = sched
	logger.Info("Territory income worker started", "interval", s.interval.String())
	return nil
}

// Stop shuts the scheduler down.
func (s *IncomeService) Stop() {
	if s.scheduler != nil {
		if err := s.scheduler.Shutdown(); err != nil {
			logger.Warn("Failed to stop income scheduler", "error", err)
		}
	}
}

// payoutTick credits every controlled territory's income. Each payout
// is its own atomic unit so one failing gang does not block the rest.
func (s *IncomeService) payoutTick() {
	territories, err := s.territoryRepo.ListControlled()
	if err != nil {
		logger.Error("Income tick failed to list territories", "error", err)
		return
	}

	paid := 0
	for _, territory := range territories {
		if territory.Income <= 0 || territory.ControlledBy == nil {
			continue
		}
		gangID := *territory.ControlledBy

		err := s.db.Transaction(func(tx *gorm.DB) error {
			_, err := s.ledger.CreditGangTx(tx, gangID, territory.Income,
				models.TxTypeTerritoryIncome,
				fmt.Sprintf("income from %s", territory.Name))
			return err
		})
		if err != nil {
			logger.Error("Income payout failed",
				"territory_id", territory.ID,
				"gang_id", gangID,
				"error", err)
			continue
		}
		paid++
	}

	if paid > 0 {
		logger.Info("Territory income paid", "territories", paid)
	}
}
