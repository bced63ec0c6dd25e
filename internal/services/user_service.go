package services

import (
	"github.com/mroshb/streetwars/internal/config"
	"github.com/mroshb/streetwars/internal/models"
	"github.com/mroshb/streetwars/internal/repositories"
	"github.com/mroshb/streetwars/pkg/errors"
	"github.com/mroshb/streetwars/pkg/logger"
)

// UserService provisions player profiles and exposes the cash wallet.
// Identity comes from externally issued tokens; the first authenticated
// request creates the local profile.
type UserService struct {
	cfg    *config.Config
	repo   *repositories.UserRepository
	ledger *repositories.LedgerRepository
}

func NewUserService(cfg *config.Config, repo *repositories.UserRepository, ledger *repositories.LedgerRepository) *UserService {
	return &UserService{
		cfg:    cfg,
		repo:   repo,
		ledger: ledger,
	}
}

// EnsureUser returns the caller's profile, creating it with starting
// cash on first contact. The token's user id becomes the row id so the
// ledger and the issuer agree on identity.
func (s *UserService) EnsureUser(userID uint, username string) (*models.User, error) {
	user, err := s.repo.GetUserByID(userID)
	if err == nil {
		if touchErr := s.repo.TouchActivity(userID); touchErr != nil {
			logger.Warn("Failed to touch user activity", "user_id", userID, "error", touchErr)
		}
		return user, nil
	}
	if errors.Code(err) != errors.ErrCodeNotFound {
		return nil, err
	}

	user = &models.User{
		ID:          userID,
		Username:    username,
		CashBalance: s.cfg.StartingCash,
	}
	if err := s.repo.CreateUserIfAbsent(user); err != nil {
		return nil, err
	}

	// Reload rather than trusting the insert: a concurrent first
	// request may have won the race, and its row is authoritative.
	user, err = s.repo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	logger.Info("User provisioned", "user_id", userID, "username", user.Username)
	return user, nil
}

// GetByPublicID returns a player's public profile.
func (s *UserService) GetByPublicID(publicID string) (*models.User, error) {
	return s.repo.GetUserByPublicID(publicID)
}

// FindByUsername returns a player's public profile by exact username.
func (s *UserService) FindByUsername(username string) (*models.User, error) {
	return s.repo.GetUserByUsername(username)
}

// Wallet is the caller's balance with recent journal entries.
type Wallet struct {
	Balance      int64                    `json:"balance"`
	Transactions []models.CashTransaction `json:"transactions"`
}

func (s *UserService) GetWallet(userID uint, limit int) (*Wallet, error) {
	balance, err := s.ledger.GetBalance(userID)
	if err != nil {
		return nil, err
	}
	history, err := s.ledger.GetUserHistory(userID, limit)
	if err != nil {
		return nil, err
	}
	return &Wallet{Balance: balance, Transactions: history}, nil
}

// AdminAdjust credits or debits a user's cash. Restricted to the
// configured super admin; a negative amount is a debit.
func (s *UserService) AdminAdjust(actingUserID, targetUserID uint, amount int64, reason string) (int64, error) {
	if s.cfg.SuperAdminUserID == 0 || actingUserID != s.cfg.SuperAdminUserID {
		return 0, errors.New(errors.ErrCodeForbidden, "admin access required")
	}
	if amount == 0 {
		return 0, errors.New(errors.ErrCodeValidationFailed, "amount must be non-zero")
	}
	if reason == "" {
		reason = "admin adjustment"
	}

	var (
		balance int64
		err     error
	)
	if amount > 0 {
		balance, err = s.ledger.Credit(targetUserID, amount, models.TxTypeAdminAdjustment, reason)
	} else {
		balance, err = s.ledger.Debit(targetUserID, -amount, models.TxTypeAdminAdjustment, reason)
	}
	if err != nil {
		return 0, err
	}

	logger.Info("Admin cash adjustment",
		"admin_id", actingUserID,
		"user_id", targetUserID,
		"amount", amount)
	return balance, nil
}
