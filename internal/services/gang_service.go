package services

import (
	"github.com/gosimple/slug"
	"github.com/mroshb/streetwars/internal/models"
	"github.com/mroshb/streetwars/internal/repositories"
	"github.com/mroshb/streetwars/internal/security"
	"github.com/mroshb/streetwars/pkg/errors"
)

// GangService owns gang identity, membership and the role hierarchy.
type GangService struct {
	repo     *repositories.GangRepository
	userRepo *repositories.UserRepository
}

func NewGangService(repo *repositories.GangRepository, userRepo *repositories.UserRepository) *GangService {
	return &GangService{
		repo:     repo,
		userRepo: userRepo,
	}
}

func (s *GangService) CreateGang(founderID uint, name, tag, description string) (*models.Gang, error) {
	name = security.SanitizeString(security.SanitizeHTML(name))
	tag = security.SanitizeString(security.SanitizeHTML(tag))
	description = security.SanitizeString(security.SanitizeHTML(description))

	if !security.ValidateGangName(name) {
		return nil, errors.New(errors.ErrCodeValidationFailed, "gang name must be 3-64 characters")
	}
	if !security.ValidateGangTag(tag) {
		return nil, errors.New(errors.ErrCodeValidationFailed, "gang tag must be 2-6 letters or digits")
	}

	existing, err := s.repo.GetMembership(founderID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New(errors.ErrCodeAlreadyExists, "you already belong to a gang")
	}

	gang := &models.Gang{
		Name:        name,
		Tag:         tag,
		Slug:        slug.Make(name),
		Description: description,
	}
	if err := s.repo.CreateGang(gang, founderID); err != nil {
		return nil, err
	}
	return gang, nil
}

func (s *GangService) JoinGang(userID, gangID uint) error {
	if _, err := s.userRepo.GetUserByID(userID); err != nil {
		return err
	}

	existing, err := s.repo.GetMembership(userID)
	if err != nil {
		return err
	}
	if existing != nil {
		return errors.New(errors.ErrCodeAlreadyExists, "you already belong to a gang")
	}

	if _, err := s.repo.GetGangByID(gangID); err != nil {
		return err
	}

	return s.repo.AddMember(gangID, userID)
}

func (s *GangService) LeaveGang(userID uint) error {
	member, err := s.membershipOf(userID)
	if err != nil {
		return err
	}
	return s.repo.RemoveMember(member.GangID, userID)
}

// Promote moves the target one role up, capped at underboss. Only the
// leader of the shared gang may promote.
func (s *GangService) Promote(actingUserID, targetUserID uint) (models.Role, error) {
	gangID, err := s.requireLeaderOver(actingUserID, targetUserID)
	if err != nil {
		return "", err
	}
	return s.repo.ChangeMemberRole(gangID, targetUserID, true)
}

// Demote moves the target one role down, floored at soldier.
func (s *GangService) Demote(actingUserID, targetUserID uint) (models.Role, error) {
	gangID, err := s.requireLeaderOver(actingUserID, targetUserID)
	if err != nil {
		return "", err
	}
	return s.repo.ChangeMemberRole(gangID, targetUserID, false)
}

func (s *GangService) TransferLeadership(actingUserID, targetUserID uint) error {
	if actingUserID == targetUserID {
		return errors.New(errors.ErrCodeValidationFailed, "cannot transfer leadership to yourself")
	}
	gangID, err := s.requireLeaderOver(actingUserID, targetUserID)
	if err != nil {
		return err
	}
	return s.repo.TransferLeadership(gangID, actingUserID, targetUserID)
}

// KickMember removes a lower-ranked member. Underboss and above may
// kick.
func (s *GangService) KickMember(actingUserID, targetUserID uint) error {
	acting, err := s.membershipOf(actingUserID)
	if err != nil {
		return err
	}
	if !acting.Role.AtLeast(models.RoleUnderboss) {
		return errors.New(errors.ErrCodeForbidden, "only underboss or leader can kick members")
	}

	target, err := s.repo.GetMembership(targetUserID)
	if err != nil {
		return err
	}
	if target == nil || target.GangID != acting.GangID {
		return errors.New(errors.ErrCodeNotFound, "target is not a member of your gang")
	}
	if target.Role.AtLeast(acting.Role) {
		return errors.New(errors.ErrCodeForbidden, "cannot kick a member of equal or higher rank")
	}

	return s.repo.RemoveMember(target.GangID, targetUserID)
}

// Deposit moves a member's cash into the gang bank.
func (s *GangService) Deposit(userID uint, amount int64) error {
	if amount <= 0 {
		return errors.New(errors.ErrCodeValidationFailed, "amount must be positive")
	}
	member, err := s.membershipOf(userID)
	if err != nil {
		return err
	}
	return s.repo.Deposit(member.GangID, userID, amount)
}

// Withdraw moves gang bank cash to the caller. Underboss and above.
func (s *GangService) Withdraw(userID uint, amount int64) error {
	if amount <= 0 {
		return errors.New(errors.ErrCodeValidationFailed, "amount must be positive")
	}
	member, err := s.membershipOf(userID)
	if err != nil {
		return err
	}
	if !member.Role.AtLeast(models.RoleUnderboss) {
		return errors.New(errors.ErrCodeForbidden, "only underboss or leader can withdraw")
	}
	return s.repo.Withdraw(member.GangID, userID, amount)
}

// Disband deletes the gang. Leader only.
func (s *GangService) Disband(actingUserID uint) error {
	member, err := s.membershipOf(actingUserID)
	if err != nil {
		return err
	}
	if member.Role != models.RoleLeader {
		return errors.New(errors.ErrCodeForbidden, "only the leader can disband the gang")
	}
	return s.repo.DisbandGang(member.GangID)
}

func (s *GangService) GetGang(gangID uint) (*models.Gang, []models.GangMember, error) {
	gang, err := s.repo.GetGangByID(gangID)
	if err != nil {
		return nil, nil, err
	}
	members, err := s.repo.GetMembers(gangID)
	if err != nil {
		return nil, nil, err
	}
	return gang, members, nil
}

func (s *GangService) GetGangBySlug(slug string) (*models.Gang, []models.GangMember, error) {
	gang, err := s.repo.GetGangBySlug(slug)
	if err != nil {
		return nil, nil, err
	}
	members, err := s.repo.GetMembers(gang.ID)
	if err != nil {
		return nil, nil, err
	}
	return gang, members, nil
}

// GetUserGang returns the caller's membership with gang preloaded, or
// nil when ungrouped.
func (s *GangService) GetUserGang(userID uint) (*models.GangMember, error) {
	return s.repo.GetMembership(userID)
}

func (s *GangService) GetLeaderboard(limit int) ([]models.Gang, error) {
	return s.repo.GetLeaderboard(limit)
}

func (s *GangService) membershipOf(userID uint) (*models.GangMember, error) {
	member, err := s.repo.GetMembership(userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, errors.New(errors.ErrCodeNotFound, "you are not in a gang")
	}
	return member, nil
}

// requireLeaderOver verifies the actor leads the gang both users share
// and returns the gang id.
func (s *GangService) requireLeaderOver(actingUserID, targetUserID uint) (uint, error) {
	acting, err := s.membershipOf(actingUserID)
	if err != nil {
		return 0, err
	}
	if acting.Role != models.RoleLeader {
		return 0, errors.New(errors.ErrCodeForbidden, "only the leader can do this")
	}

	target, err := s.repo.GetMembership(targetUserID)
	if err != nil {
		return 0, err
	}
	if target == nil || target.GangID != acting.GangID {
		return 0, errors.New(errors.ErrCodeNotFound, "target is not a member of your gang")
	}
	return acting.GangID, nil
}
