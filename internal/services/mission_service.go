package services

import (
	"time"

	"github.com/mroshb/streetwars/internal/models"
	"github.com/mroshb/streetwars/internal/repositories"
	"github.com/mroshb/streetwars/pkg/errors"
)

// MissionService schedules gang mission attempts and pays out rewards.
type MissionService struct {
	repo     *repositories.MissionRepository
	gangRepo *repositories.GangRepository
}

func NewMissionService(repo *repositories.MissionRepository, gangRepo *repositories.GangRepository) *MissionService {
	return &MissionService{
		repo:     repo,
		gangRepo: gangRepo,
	}
}

// MissionStatus is a mission definition annotated with the gang's
// standing on it.
type MissionStatus struct {
	Mission         models.GangMission         `json:"mission"`
	CanAttempt      bool                       `json:"can_attempt"`
	InProgress      *models.GangMissionAttempt `json:"in_progress,omitempty"`
	NextAvailableAt *time.Time                 `json:"next_available_at,omitempty"`
}

// ListAvailable reports, for each active mission, whether the caller's
// gang can start it right now.
func (s *MissionService) ListAvailable(userID uint) ([]MissionStatus, error) {
	member, err := s.membershipOf(userID)
	if err != nil {
		return nil, err
	}
	gang, err := s.gangRepo.GetGangByID(member.GangID)
	if err != nil {
		return nil, err
	}

	missions, err := s.repo.ListMissions()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	statuses := make([]MissionStatus, 0, len(missions))
	for _, mission := range missions {
		latest, err := s.repo.GetLatestAttempt(member.GangID, mission.ID)
		if err != nil {
			return nil, err
		}

		status := MissionStatus{Mission: mission, CanAttempt: true}
		if gang.MemberCount < mission.RequiredMembers {
			status.CanAttempt = false
		}
		if latest != nil {
			if latest.Status == models.AttemptStatusInProgress {
				status.CanAttempt = false
				status.InProgress = latest
			} else if latest.NextAvailableAt != nil {
				status.NextAvailableAt = latest.NextAvailableAt
				if latest.NextAvailableAt.After(now) {
					status.CanAttempt = false
				}
			}
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// StartAttempt begins a mission for the caller's gang. Capo and above.
// Eligibility is re-validated inside the repository transaction, never
// from the listing snapshot.
func (s *MissionService) StartAttempt(actingUserID, missionID uint) (*models.GangMissionAttempt, error) {
	member, err := s.membershipOf(actingUserID)
	if err != nil {
		return nil, err
	}
	if !member.Role.AtLeast(models.RoleCapo) {
		return nil, errors.New(errors.ErrCodeForbidden, "only capo or above can start a mission")
	}
	return s.repo.StartAttempt(member.GangID, missionID)
}

// CompletionStatus is the read-only timer view of an attempt.
type CompletionStatus struct {
	Attempt    *models.GangMissionAttempt `json:"attempt"`
	Complete   bool                       `json:"complete"`
	CompleteAt time.Time                  `json:"complete_at"`
}

// CheckCompletion reports whether the attempt's timer has run out. It
// never mutates status; only collection does that.
func (s *MissionService) CheckCompletion(actingUserID, attemptID uint) (*CompletionStatus, error) {
	member, err := s.membershipOf(actingUserID)
	if err != nil {
		return nil, err
	}

	attempt, err := s.repo.GetAttemptByID(attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.GangID != member.GangID {
		return nil, errors.New(errors.ErrCodeForbidden, "attempt belongs to another gang")
	}

	duration := attempt.Mission.Duration()
	return &CompletionStatus{
		Attempt:    attempt,
		Complete:   attempt.IsComplete(time.Now(), duration),
		CompleteAt: attempt.CompleteAt(duration),
	}, nil
}

// CollectRewards pays out a finished attempt. Underboss and above.
func (s *MissionService) CollectRewards(actingUserID, attemptID uint) (*models.GangMissionAttempt, error) {
	member, err := s.membershipOf(actingUserID)
	if err != nil {
		return nil, err
	}
	if !member.Role.AtLeast(models.RoleUnderboss) {
		return nil, errors.New(errors.ErrCodeForbidden, "only underboss or leader can collect rewards")
	}

	attempt, err := s.repo.GetAttemptByID(attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.GangID != member.GangID {
		return nil, errors.New(errors.ErrCodeForbidden, "attempt belongs to another gang")
	}

	return s.repo.CollectRewards(attemptID)
}

// Abandon fails an in-progress attempt without payout. Underboss and
// above.
func (s *MissionService) Abandon(actingUserID, attemptID uint) error {
	member, err := s.membershipOf(actingUserID)
	if err != nil {
		return err
	}
	if !member.Role.AtLeast(models.RoleUnderboss) {
		return errors.New(errors.ErrCodeForbidden, "only underboss or leader can abandon a mission")
	}

	attempt, err := s.repo.GetAttemptByID(attemptID)
	if err != nil {
		return err
	}
	if attempt.GangID != member.GangID {
		return errors.New(errors.ErrCodeForbidden, "attempt belongs to another gang")
	}

	return s.repo.AbandonAttempt(attemptID)
}

func (s *MissionService) membershipOf(userID uint) (*models.GangMember, error) {
	member, err := s.gangRepo.GetMembership(userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, errors.New(errors.ErrCodeNotFound, "you are not in a gang")
	}
	return member, nil
}
