package repositories

import (
	"time"

	"github.com/mroshb/streetwars/internal/models"
	"github.com/mroshb/streetwars/pkg/errors"
	"gorm.io/gorm"
)

type TerritoryRepository struct {
	db *gorm.DB
}

func NewTerritoryRepository(db *gorm.DB) *TerritoryRepository {
	return &TerritoryRepository{db: db}
}

func (r *TerritoryRepository) ListTerritories() ([]models.Territory, error) {
	var territories []models.Territory
	if err := r.db.Preload("Controller").Order("district ASC, name ASC").
		Find(&territories).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list territories")
	}
	return territories, nil
}

func (r *TerritoryRepository) GetTerritoryByID(id uint) (*models.Territory, error) {
	var territory models.Territory
	if err := r.db.Preload("Controller").First(&territory, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New(errors.ErrCodeNotFound, "territory not found")
		}
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get territory")
	}
	return &territory, nil
}

// ClaimIfUnclaimed sets the controller with a single conditional
// update: the check that the territory is still unclaimed and the
// write happen in one statement, so of two racing claimants exactly
// one wins and the other gets a conflict.
func (r *TerritoryRepository) ClaimIfUnclaimed(territoryID, gangID uint) error {
	result := r.db.Model(&models.Territory{}).
		Where("id = ? AND controlled_by IS NULL", territoryID).
		Update("controlled_by", gangID)

	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to claim territory")
	}
	if result.RowsAffected == 0 {
		var count int64
		r.db.Model(&models.Territory{}).Where("id = ?", territoryID).Count(&count)
		if count == 0 {
			return errors.New(errors.ErrCodeNotFound, "territory not found")
		}
		return errors.New(errors.ErrCodeConflict, "territory was claimed by another gang")
	}
	return nil
}

// TransferControlTx hands the territory to the winning gang and arms
// the attack cooldown, inside the caller's transaction. Used only by
// war resolution.
func (r *TerritoryRepository) TransferControlTx(tx *gorm.DB, territoryID, newOwnerGangID uint, cooldown time.Duration) error {
	cooldownUntil := time.Now().Add(cooldown)
	result := tx.Model(&models.Territory{}).Where("id = ?", territoryID).
		Updates(map[string]interface{}{
			"controlled_by":   newOwnerGangID,
			"attack_cooldown": cooldownUntil,
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to transfer territory control")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "territory not found")
	}
	return nil
}

// ListControlled returns all territories that currently have an owner,
// used by the income payout job.
func (r *TerritoryRepository) ListControlled() ([]models.Territory, error) {
	var territories []models.Territory
	if err := r.db.Where("controlled_by IS NOT NULL").Find(&territories).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list controlled territories")
	}
	return territories, nil
}

// CountControlled returns how many territories a gang holds
func (r *TerritoryRepository) CountControlled(gangID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Territory{}).
		Where("controlled_by = ?", gangID).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeInternalError, "failed to count territories")
	}
	return count, nil
}
