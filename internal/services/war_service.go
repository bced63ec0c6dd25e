package services

import (
	"github.com/mroshb/streetwars/internal/config"
	"github.com/mroshb/streetwars/internal/models"
	"github.com/mroshb/streetwars/internal/repositories"
	"github.com/mroshb/streetwars/pkg/errors"
	"github.com/mroshb/streetwars/pkg/logger"
)

// WarService runs the conflict engine: declarations, participation and
// contribution-driven resolution.
type WarService struct {
	cfg           *config.Config
	repo          *repositories.WarRepository
	gangRepo      *repositories.GangRepository
	territoryRepo *repositories.TerritoryRepository
}

func NewWarService(
	cfg *config.Config,
	repo *repositories.WarRepository,
	gangRepo *repositories.GangRepository,
	territoryRepo *repositories.TerritoryRepository,
) *WarService {
	return &WarService{
		cfg:           cfg,
		repo:          repo,
		gangRepo:      gangRepo,
		territoryRepo: territoryRepo,
	}
}

// AttackResult distinguishes a quiet land grab from a declared war.
type AttackResult struct {
	ClaimedTerritory bool        `json:"claimed_territory"`
	War              *models.War `json:"war,omitempty"`
}

// Attack moves on a territory. Unclaimed ground is simply taken; a
// rival's ground starts a war. Leader or underboss only.
func (s *WarService) Attack(actingUserID, territoryID uint) (*AttackResult, error) {
	member, err := s.gangRepo.GetMembership(actingUserID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, errors.New(errors.ErrCodeNotFound, "you are not in a gang")
	}
	if !member.Role.AtLeast(models.RoleUnderboss) {
		return nil, errors.New(errors.ErrCodeForbidden, "only underboss or leader can order an attack")
	}

	territory, err := s.territoryRepo.GetTerritoryByID(territoryID)
	if err != nil {
		return nil, err
	}

	if territory.ControlledBy == nil {
		if err := s.territoryRepo.ClaimIfUnclaimed(territoryID, member.GangID); err != nil {
			return nil, err
		}
		logger.Info("Territory claimed", "territory_id", territoryID, "gang_id", member.GangID)
		return &AttackResult{ClaimedTerritory: true}, nil
	}

	if *territory.ControlledBy == member.GangID {
		return nil, errors.New(errors.ErrCodeValidationFailed, "territory is already yours")
	}

	war, err := s.repo.CreateWar(member.GangID, territoryID, actingUserID)
	if err != nil {
		return nil, err
	}

	logger.Info("War declared",
		"war_id", war.ID,
		"attacker_id", war.AttackerID,
		"defender_id", war.DefenderID,
		"territory_id", territoryID)
	return &AttackResult{War: war}, nil
}

// JoinWar enrolls the caller on the side their gang fights on.
func (s *WarService) JoinWar(userID, warID uint) (*models.WarParticipant, error) {
	member, err := s.gangRepo.GetMembership(userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, errors.New(errors.ErrCodeNotFound, "you are not in a gang")
	}
	return s.repo.JoinWar(warID, userID, member.GangID)
}

// Contribute commits the caller's cash to their side and may resolve
// the war.
func (s *WarService) Contribute(userID, warID uint, amount int64) (*models.War, error) {
	war, err := s.repo.Contribute(warID, userID, amount, s.cfg.GetTerritoryCooldown())
	if err != nil {
		return nil, err
	}

	if war.Status == models.WarStatusCompleted {
		logger.Info("War resolved",
			"war_id", war.ID,
			"winner_id", *war.WinnerID,
			"attack_strength", war.AttackStrength,
			"defense_strength", war.DefenseStrength)
	}
	return war, nil
}

func (s *WarService) GetWar(warID uint) (*models.War, []models.WarParticipant, error) {
	war, err := s.repo.GetWarByID(warID)
	if err != nil {
		return nil, nil, err
	}
	participants, err := s.repo.GetParticipants(warID)
	if err != nil {
		return nil, nil, err
	}
	return war, participants, nil
}

func (s *WarService) ListActiveWars() ([]models.War, error) {
	return s.repo.ListActiveWars()
}
