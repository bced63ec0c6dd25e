package repositories

import (
	"fmt"
	"time"

	"github.com/mroshb/streetwars/internal/models"
	"github.com/mroshb/streetwars/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WarRepository struct {
	db        *gorm.DB
	ledger    *LedgerRepository
	territory *TerritoryRepository
}

func NewWarRepository(db *gorm.DB, ledger *LedgerRepository, territory *TerritoryRepository) *WarRepository {
	return &WarRepository{db: db, ledger: ledger, territory: territory}
}

// CreateWar declares war on a controlled territory and enrolls the
// attacking caller as the first participant. All preconditions are
// re-checked under the territory row lock, so a claim or another
// declaration that lands first makes this one fail cleanly.
//
// The duplicate-war check is scoped to the gang pair on this
// territory: the same two gangs may fight simultaneously over
// different territories.
func (r *WarRepository) CreateWar(attackerGangID, territoryID, actingUserID uint) (*models.War, error) {
	var war *models.War
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var territory models.Territory
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&territory, territoryID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New(errors.ErrCodeNotFound, "territory not found")
			}
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to get territory")
		}

		if territory.ControlledBy == nil {
			return errors.New(errors.ErrCodeConflict, "territory is unclaimed, claim it instead")
		}
		defenderGangID := *territory.ControlledBy
		if defenderGangID == attackerGangID {
			return errors.New(errors.ErrCodeValidationFailed, "territory is already yours")
		}
		if territory.UnderCooldown(time.Now()) {
			return errors.New(errors.ErrCodeValidationFailed,
				fmt.Sprintf("territory is protected until %s", territory.AttackCooldown.Format(time.RFC3339)))
		}

		var existing int64
		if err := tx.Model(&models.War{}).
			Where("status = ? AND territory_id = ? AND attacker_id IN (?, ?) AND defender_id IN (?, ?)",
				models.WarStatusActive, territoryID,
				attackerGangID, defenderGangID, attackerGangID, defenderGangID).
			Count(&existing).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to check active wars")
		}
		if existing > 0 {
			return errors.New(errors.ErrCodeConflict, "a war over this territory is already active")
		}

		war = &models.War{
			AttackerID:  attackerGangID,
			DefenderID:  defenderGangID,
			TerritoryID: territoryID,
			Status:      models.WarStatusActive,
		}
		if err := tx.Create(war).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create war")
		}

		participant := &models.WarParticipant{
			WarID:  war.ID,
			UserID: actingUserID,
			GangID: attackerGangID,
			Side:   models.WarSideAttacker,
		}
		if err := tx.Create(participant).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to enroll attacker")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return war, nil
}

func (r *WarRepository) GetWarByID(id uint) (*models.War, error) {
	var war models.War
	if err := r.db.Preload("Attacker").Preload("Defender").Preload("Territory").
		First(&war, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New(errors.ErrCodeNotFound, "war not found")
		}
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get war")
	}
	return &war, nil
}

func (r *WarRepository) ListActiveWars() ([]models.War, error) {
	var wars []models.War
	if err := r.db.Preload("Attacker").Preload("Defender").Preload("Territory").
		Where("status = ?", models.WarStatusActive).
		Order("start_time DESC").Find(&wars).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list active wars")
	}
	return wars, nil
}

func (r *WarRepository) GetParticipants(warID uint) ([]models.WarParticipant, error) {
	var participants []models.WarParticipant
	if err := r.db.Preload("User").Where("war_id = ?", warID).
		Order("contribution DESC").Find(&participants).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get war participants")
	}
	return participants, nil
}

// JoinWar enrolls a user on the side their gang fights on. The war row
// lock keeps the join from landing on a war that resolves concurrently;
// the unique (war, user) index is the backstop against double joins.
func (r *WarRepository) JoinWar(warID, userID, gangID uint) (*models.WarParticipant, error) {
	var participant *models.WarParticipant
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var war models.War
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&war, warID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New(errors.ErrCodeNotFound, "war not found")
			}
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to get war")
		}
		if war.Status != models.WarStatusActive {
			return errors.New(errors.ErrCodeValidationFailed, "war is no longer active")
		}

		side, ok := war.SideFor(gangID)
		if !ok {
			return errors.New(errors.ErrCodeForbidden, "your gang is not part of this war")
		}

		var count int64
		if err := tx.Model(&models.WarParticipant{}).
			Where("war_id = ? AND user_id = ?", warID, userID).
			Count(&count).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to check participation")
		}
		if count > 0 {
			return errors.New(errors.ErrCodeConflict, "already joined this war")
		}

		participant = &models.WarParticipant{
			WarID:  warID,
			UserID: userID,
			GangID: gangID,
			Side:   side,
		}
		if err := tx.Create(participant).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to join war")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return participant, nil
}

// Contribute commits cash to the caller's side and resolves the war if
// the post-increment totals cross the dominance threshold. The whole
// sequence runs in one transaction that takes the war row lock first,
// so concurrent contributions serialize: none is lost, and the war
// completes at most once.
func (r *WarRepository) Contribute(warID, userID uint, amount int64, territoryCooldown time.Duration) (*models.War, error) {
	if amount <= 0 {
		return nil, errors.New(errors.ErrCodeValidationFailed, "contribution must be a positive amount")
	}

	var war models.War
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&war, warID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New(errors.ErrCodeNotFound, "war not found")
			}
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to get war")
		}
		if war.Status != models.WarStatusActive {
			return errors.New(errors.ErrCodeValidationFailed, "war is no longer active")
		}

		var participant models.WarParticipant
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("war_id = ? AND user_id = ?", warID, userID).
			First(&participant).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New(errors.ErrCodeForbidden, "join the war before contributing")
			}
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to get participant")
		}

		var column, gangColumn string
		if participant.Side == models.WarSideAttacker {
			war.AttackStrength += amount
			column = "attack_strength"
			gangColumn = "strength"
		} else {
			war.DefenseStrength += amount
			column = "defense_strength"
			gangColumn = "defense"
		}

		// Lifetime gang attack/defense tally. The gang row is locked
		// before the user row, the same order Deposit and Withdraw
		// take, so a member contributing while depositing cannot
		// deadlock.
		if err := tx.Model(&models.Gang{}).Where("id = ?", participant.GangID).
			Update(gangColumn, gorm.Expr(gangColumn+" + ?", amount)).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to update gang tally")
		}

		if _, err := r.ledger.DebitTx(tx, userID, amount, models.TxTypeWarContribution,
			fmt.Sprintf("war %d contribution", warID)); err != nil {
			return err
		}

		if err := tx.Model(&participant).
			Update("contribution", gorm.Expr("contribution + ?", amount)).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to update contribution")
		}

		// The war row is locked, so the in-memory totals are current
		// and the absolute write below cannot lose a concurrent update.
		if err := tx.Model(&models.War{}).Where("id = ?", warID).
			Update(column, gorm.Expr(column+" + ?", amount)).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to update war strength")
		}

		winnerID, resolved := war.ResolveWinner()
		if !resolved {
			return nil
		}
		return r.resolveTx(tx, &war, winnerID, territoryCooldown)
	})
	if err != nil {
		return nil, err
	}
	return &war, nil
}

// Respect awarded to the winning gang when a war resolves.
const warVictoryRespect = 100

// resolveTx completes the war and transfers territory control. Runs
// inside the contribution's transaction while the war row lock is held.
func (r *WarRepository) resolveTx(tx *gorm.DB, war *models.War, winnerID uint, territoryCooldown time.Duration) error {
	now := time.Now()
	result := tx.Model(&models.War{}).
		Where("id = ? AND status = ?", war.ID, models.WarStatusActive).
		Updates(map[string]interface{}{
			"status":    models.WarStatusCompleted,
			"winner_id": winnerID,
			"end_time":  now,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to complete war")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeConflict, "war was already resolved")
	}

	war.Status = models.WarStatusCompleted
	war.WinnerID = &winnerID
	war.EndTime = &now

	if err := r.territory.TransferControlTx(tx, war.TerritoryID, winnerID, territoryCooldown); err != nil {
		return err
	}

	if err := tx.Model(&models.Gang{}).Where("id = ?", winnerID).
		Update("respect", gorm.Expr("respect + ?", warVictoryRespect)).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to award victory respect")
	}
	return nil
}
