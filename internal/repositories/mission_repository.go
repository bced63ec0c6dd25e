package repositories

import (
	"fmt"
	"time"

	"github.com/mroshb/streetwars/internal/models"
	"github.com/mroshb/streetwars/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MissionRepository struct {
	db     *gorm.DB
	ledger *LedgerRepository
}

func NewMissionRepository(db *gorm.DB, ledger *LedgerRepository) *MissionRepository {
	return &MissionRepository{db: db, ledger: ledger}
}

func (r *MissionRepository) ListMissions() ([]models.GangMission, error) {
	var missions []models.GangMission
	if err := r.db.Where("active = ?", true).Order("required_members ASC").
		Find(&missions).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list missions")
	}
	return missions, nil
}

func (r *MissionRepository) GetMissionByID(id uint) (*models.GangMission, error) {
	var mission models.GangMission
	if err := r.db.First(&mission, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New(errors.ErrCodeNotFound, "mission not found")
		}
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get mission")
	}
	return &mission, nil
}

// GetLatestAttempt returns the gang's most recent attempt at a
// mission, or nil when it has never been attempted.
func (r *MissionRepository) GetLatestAttempt(gangID, missionID uint) (*models.GangMissionAttempt, error) {
	var attempt models.GangMissionAttempt
	if err := r.db.Where("gang_id = ? AND mission_id = ?", gangID, missionID).
		Order("started_at DESC").First(&attempt).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get latest attempt")
	}
	return &attempt, nil
}

func (r *MissionRepository) GetAttemptByID(id uint) (*models.GangMissionAttempt, error) {
	var attempt models.GangMissionAttempt
	if err := r.db.Preload("Mission").Preload("Gang").First(&attempt, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New(errors.ErrCodeNotFound, "attempt not found")
		}
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get attempt")
	}
	return &attempt, nil
}

// StartAttempt creates an in-progress attempt. Eligibility is
// re-checked under the gang row lock so two overlapping starts cannot
// both pass the one-attempt-in-progress rule.
func (r *MissionRepository) StartAttempt(gangID, missionID uint) (*models.GangMissionAttempt, error) {
	var attempt *models.GangMissionAttempt
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var gang models.Gang
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&gang, gangID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New(errors.ErrCodeNotFound, "gang not found")
			}
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to get gang")
		}

		var mission models.GangMission
		if err := tx.First(&mission, missionID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New(errors.ErrCodeNotFound, "mission not found")
			}
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to get mission")
		}
		if !mission.Active {
			return errors.New(errors.ErrCodeValidationFailed, "mission is not active")
		}

		if gang.MemberCount < mission.RequiredMembers {
			return errors.New(errors.ErrCodeValidationFailed,
				fmt.Sprintf("mission requires %d members, gang has %d",
					mission.RequiredMembers, gang.MemberCount))
		}

		var latest models.GangMissionAttempt
		err := tx.Where("gang_id = ? AND mission_id = ?", gangID, missionID).
			Order("started_at DESC").First(&latest).Error
		if err != nil && err != gorm.ErrRecordNotFound {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to get latest attempt")
		}
		if err == nil {
			if latest.Status == models.AttemptStatusInProgress {
				return errors.New(errors.ErrCodeConflict, "an attempt is already in progress")
			}
			if latest.NextAvailableAt != nil && latest.NextAvailableAt.After(time.Now()) {
				return errors.New(errors.ErrCodeConflict,
					fmt.Sprintf("mission on cooldown until %s",
						latest.NextAvailableAt.Format(time.RFC3339)))
			}
		}

		attempt = &models.GangMissionAttempt{
			GangID:    gangID,
			MissionID: missionID,
			Status:    models.AttemptStatusInProgress,
		}
		if err := tx.Create(attempt).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create attempt")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return attempt, nil
}

// CollectRewards flips the attempt to completed and pays out, as one
// atomic unit. The conditional status update is what makes collection
// idempotent: the second caller matches zero rows and gets a conflict,
// so rewards are paid exactly once.
func (r *MissionRepository) CollectRewards(attemptID uint) (*models.GangMissionAttempt, error) {
	var collected *models.GangMissionAttempt
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var attempt models.GangMissionAttempt
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Preload("Mission").
			First(&attempt, attemptID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New(errors.ErrCodeNotFound, "attempt not found")
			}
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to get attempt")
		}

		if attempt.Status != models.AttemptStatusInProgress {
			return errors.New(errors.ErrCodeConflict, "rewards already collected")
		}

		now := time.Now()
		if !attempt.IsComplete(now, attempt.Mission.Duration()) {
			return errors.New(errors.ErrCodeValidationFailed,
				fmt.Sprintf("mission completes at %s",
					attempt.CompleteAt(attempt.Mission.Duration()).Format(time.RFC3339)))
		}

		nextAvailable := now.Add(attempt.Mission.Cooldown())
		result := tx.Model(&models.GangMissionAttempt{}).
			Where("id = ? AND status = ?", attemptID, models.AttemptStatusInProgress).
			Updates(map[string]interface{}{
				"status":            models.AttemptStatusCompleted,
				"completed_at":      now,
				"next_available_at": nextAvailable,
			})
		if result.Error != nil {
			return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to complete attempt")
		}
		if result.RowsAffected == 0 {
			return errors.New(errors.ErrCodeConflict, "rewards already collected")
		}

		if attempt.Mission.RewardCash > 0 {
			if _, err := r.ledger.CreditGangTx(tx, attempt.GangID, attempt.Mission.RewardCash,
				models.TxTypeMissionReward, fmt.Sprintf("mission reward: %s", attempt.Mission.Name)); err != nil {
				return err
			}
		}

		if err := tx.Model(&models.Gang{}).Where("id = ?", attempt.GangID).
			Updates(map[string]interface{}{
				"respect": gorm.Expr("respect + ?", attempt.Mission.RewardRespect),
				"xp":      gorm.Expr("xp + ?", attempt.Mission.RewardXP),
			}).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to award mission progress")
		}

		var gang models.Gang
		if err := tx.First(&gang, attempt.GangID).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to reload gang")
		}
		if newLevel := gang.ComputeLevel(); newLevel != gang.Level {
			if err := tx.Model(&gang).Update("level", newLevel).Error; err != nil {
				return errors.Wrap(err, errors.ErrCodeInternalError, "failed to update gang level")
			}
		}

		attempt.Status = models.AttemptStatusCompleted
		attempt.CompletedAt = &now
		attempt.NextAvailableAt = &nextAvailable
		collected = &attempt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return collected, nil
}

// AbandonAttempt marks an in-progress attempt as failed and arms the
// cooldown. No rewards are paid.
func (r *MissionRepository) AbandonAttempt(attemptID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var attempt models.GangMissionAttempt
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Preload("Mission").
			First(&attempt, attemptID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New(errors.ErrCodeNotFound, "attempt not found")
			}
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to get attempt")
		}

		now := time.Now()
		nextAvailable := now.Add(attempt.Mission.Cooldown())
		result := tx.Model(&models.GangMissionAttempt{}).
			Where("id = ? AND status = ?", attemptID, models.AttemptStatusInProgress).
			Updates(map[string]interface{}{
				"status":            models.AttemptStatusFailed,
				"completed_at":      now,
				"next_available_at": nextAvailable,
			})
		if result.Error != nil {
			return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to abandon attempt")
		}
		if result.RowsAffected == 0 {
			return errors.New(errors.ErrCodeConflict, "attempt is no longer in progress")
		}
		return nil
	})
}
