package repositories

import (
	"sort"

	"github.com/mroshb/streetwars/internal/models"
	"github.com/mroshb/streetwars/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GangRepository struct {
	db     *gorm.DB
	ledger *LedgerRepository
}

func NewGangRepository(db *gorm.DB, ledger *LedgerRepository) *GangRepository {
	return &GangRepository{db: db, ledger: ledger}
}

// CreateGang creates the gang row and the founder's leader membership
// as one atomic unit. A founder must never own a gang without a
// membership row.
func (r *GangRepository) CreateGang(gang *models.Gang, founderID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.GangMember
		err := tx.Where("user_id = ?", founderID).First(&existing).Error
		if err == nil {
			return errors.New(errors.ErrCodeAlreadyExists, "user already belongs to a gang")
		}
		if err != gorm.ErrRecordNotFound {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to check membership")
		}

		var count int64
		if err := tx.Model(&models.Gang{}).
			Where("name = ? OR tag = ?", gang.Name, gang.Tag).
			Count(&count).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to check gang name")
		}
		if count > 0 {
			return errors.New(errors.ErrCodeAlreadyExists, "gang name or tag already taken")
		}

		gang.OwnerID = founderID
		gang.MemberCount = 1
		if err := tx.Create(gang).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create gang")
		}

		member := &models.GangMember{
			GangID: gang.ID,
			UserID: founderID,
			Role:   models.RoleLeader,
		}
		if err := tx.Create(member).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to add founder as leader")
		}

		return nil
	})
}

func (r *GangRepository) GetGangByID(id uint) (*models.Gang, error) {
	var gang models.Gang
	if err := r.db.Preload("Owner").First(&gang, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New(errors.ErrCodeNotFound, "gang not found")
		}
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get gang")
	}
	return &gang, nil
}

func (r *GangRepository) GetGangBySlug(slug string) (*models.Gang, error) {
	var gang models.Gang
	if err := r.db.Preload("Owner").Where("slug = ?", slug).First(&gang).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New(errors.ErrCodeNotFound, "gang not found")
		}
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get gang by slug")
	}
	return &gang, nil
}

// GetMembership returns the user's membership with the gang preloaded,
// or nil when the user is not in any gang.
func (r *GangRepository) GetMembership(userID uint) (*models.GangMember, error) {
	var member models.GangMember
	if err := r.db.Preload("Gang").Where("user_id = ?", userID).First(&member).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get membership")
	}
	return &member, nil
}

func (r *GangRepository) GetMembers(gangID uint) ([]models.GangMember, error) {
	var members []models.GangMember
	if err := r.db.Preload("User").Where("gang_id = ?", gangID).
		Find(&members).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get gang members")
	}
	sortMembersByRank(members)
	return members, nil
}

// sortMembersByRank orders highest rank first, earliest join first
// within a rank. Roles are strings in the database, so the ordering
// has to come from the hierarchy, not the column.
func sortMembersByRank(members []models.GangMember) {
	sort.SliceStable(members, func(i, j int) bool {
		ri, rj := members[i].Role.Rank(), members[j].Role.Rank()
		if ri != rj {
			return ri > rj
		}
		return members[i].JoinedAt.Before(members[j].JoinedAt)
	})
}

// AddMember adds a soldier membership. The unique index on user_id is
// the backstop against two concurrent joins by the same user.
func (r *GangRepository) AddMember(gangID, userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		member := &models.GangMember{
			GangID: gangID,
			UserID: userID,
			Role:   models.RoleSoldier,
		}
		if err := tx.Create(member).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to add member")
		}

		if err := tx.Model(&models.Gang{}).Where("id = ?", gangID).
			Update("member_count", gorm.Expr("member_count + 1")).Error; err != nil {
			return err
		}
		return nil
	})
}

// RemoveMember removes a membership. The leader may only leave once
// everyone else is gone; the check runs under the gang row lock so a
// concurrent join cannot slip past it.
func (r *GangRepository) RemoveMember(gangID, userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var gang models.Gang
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&gang, gangID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New(errors.ErrCodeNotFound, "gang not found")
			}
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to get gang")
		}

		var member models.GangMember
		if err := tx.Where("gang_id = ? AND user_id = ?", gangID, userID).
			First(&member).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New(errors.ErrCodeNotFound, "membership not found")
			}
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to get membership")
		}

		if member.Role == models.RoleLeader && gang.MemberCount > 1 {
			return errors.New(errors.ErrCodeValidationFailed,
				"leader must transfer leadership before leaving")
		}

		if err := tx.Delete(&member).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to remove member")
		}

		if gang.MemberCount <= 1 {
			// Last member out dissolves the gang.
			if err := tx.Model(&models.Territory{}).Where("controlled_by = ?", gangID).
				Updates(map[string]interface{}{"controlled_by": nil, "attack_cooldown": nil}).Error; err != nil {
				return errors.Wrap(err, errors.ErrCodeInternalError, "failed to release territories")
			}
			if err := tx.Delete(&gang).Error; err != nil {
				return errors.Wrap(err, errors.ErrCodeInternalError, "failed to delete empty gang")
			}
			return nil
		}

		if err := tx.Model(&gang).
			Update("member_count", gorm.Expr("member_count - 1")).Error; err != nil {
			return err
		}
		return nil
	})
}

// ChangeMemberRole moves a member one step up or down the hierarchy.
// The target row is locked so two overlapping promotions cannot both
// apply.
func (r *GangRepository) ChangeMemberRole(gangID, targetUserID uint, promote bool) (models.Role, error) {
	var newRole models.Role
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var member models.GangMember
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("gang_id = ? AND user_id = ?", gangID, targetUserID).
			First(&member).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New(errors.ErrCodeNotFound, "membership not found")
			}
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to get membership")
		}

		var (
			role models.Role
			ok   bool
		)
		if promote {
			role, ok = member.Role.Promoted()
			if !ok {
				return errors.New(errors.ErrCodeValidationFailed,
					"cannot promote above underboss")
			}
		} else {
			role, ok = member.Role.Demoted()
			if !ok {
				return errors.New(errors.ErrCodeValidationFailed,
					"cannot demote below soldier")
			}
		}

		if err := tx.Model(&member).Update("role", role).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to update role")
		}
		newRole = role
		return nil
	})
	return newRole, err
}

// TransferLeadership demotes the current leader to underboss, promotes
// the target to leader and repoints the gang's owner, all inside one
// transaction under the gang row lock. No reader ever observes zero or
// two leaders.
func (r *GangRepository) TransferLeadership(gangID, currentLeaderID, targetUserID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var gang models.Gang
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&gang, gangID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New(errors.ErrCodeNotFound, "gang not found")
			}
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to get gang")
		}

		var leader models.GangMember
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("gang_id = ? AND user_id = ?", gangID, currentLeaderID).
			First(&leader).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New(errors.ErrCodeNotFound, "leader membership not found")
			}
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to get leader membership")
		}
		if leader.Role != models.RoleLeader || gang.OwnerID != currentLeaderID {
			return errors.New(errors.ErrCodeForbidden, "only the current leader can transfer leadership")
		}

		var target models.GangMember
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("gang_id = ? AND user_id = ?", gangID, targetUserID).
			First(&target).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New(errors.ErrCodeNotFound, "target is not a member of this gang")
			}
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to get target membership")
		}

		if err := tx.Model(&leader).Update("role", models.RoleUnderboss).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to demote leader")
		}
		if err := tx.Model(&target).Update("role", models.RoleLeader).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to promote target")
		}
		if err := tx.Model(&gang).Update("owner_id", targetUserID).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to update gang owner")
		}
		return nil
	})
}

// Deposit moves cash from a member's pocket into the gang bank and
// records it against their lifetime contribution, as one atomic unit.
func (r *GangRepository) Deposit(gangID, userID uint, amount int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Gang row is locked before the user row; every mixed
		// gang/user transaction takes locks in this order.
		if _, err := r.ledger.CreditGangTx(tx, gangID, amount, models.TxTypeGangDeposit, "bank deposit"); err != nil {
			return err
		}
		if _, err := r.ledger.DebitTx(tx, userID, amount, models.TxTypeGangDeposit, "bank deposit"); err != nil {
			return err
		}

		if err := tx.Model(&models.GangMember{}).
			Where("gang_id = ? AND user_id = ?", gangID, userID).
			Update("contribution", gorm.Expr("contribution + ?", amount)).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to update contribution")
		}
		return nil
	})
}

// Withdraw moves cash from the gang bank into a member's pocket.
func (r *GangRepository) Withdraw(gangID, userID uint, amount int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if _, err := r.ledger.DebitGangTx(tx, gangID, amount, models.TxTypeGangWithdraw, "bank withdrawal"); err != nil {
			return err
		}
		if _, err := r.ledger.CreditTx(tx, userID, amount, models.TxTypeGangWithdraw, "bank withdrawal"); err != nil {
			return err
		}
		return nil
	})
}

// DisbandGang removes the gang and all memberships. Refused while the
// gang is fighting an active war.
func (r *GangRepository) DisbandGang(gangID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var gang models.Gang
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&gang, gangID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New(errors.ErrCodeNotFound, "gang not found")
			}
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to get gang")
		}

		var activeWars int64
		if err := tx.Model(&models.War{}).
			Where("status = ? AND (attacker_id = ? OR defender_id = ?)",
				models.WarStatusActive, gangID, gangID).
			Count(&activeWars).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to check active wars")
		}
		if activeWars > 0 {
			return errors.New(errors.ErrCodeConflict, "cannot disband while a war is active")
		}

		if err := tx.Where("gang_id = ?", gangID).Delete(&models.GangMember{}).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to remove memberships")
		}

		// Controlled territories revert to unclaimed.
		if err := tx.Model(&models.Territory{}).Where("controlled_by = ?", gangID).
			Updates(map[string]interface{}{"controlled_by": nil, "attack_cooldown": nil}).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to release territories")
		}

		if err := tx.Delete(&gang).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to delete gang")
		}
		return nil
	})
}

// GetLeaderboard returns gangs ordered by respect
func (r *GangRepository) GetLeaderboard(limit int) ([]models.Gang, error) {
	var gangs []models.Gang
	if err := r.db.Order("respect DESC, level DESC").Limit(limit).Find(&gangs).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get gang leaderboard")
	}
	return gangs, nil
}
