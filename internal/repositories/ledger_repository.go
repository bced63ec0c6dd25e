package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/mroshb/streetwars/internal/models"
	"github.com/mroshb/streetwars/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LedgerRepository is the cash accounting primitive. Every balance
// mutation locks the owning row and writes a journal entry in the same
// transaction. The *Tx variants run inside a caller-supplied
// transaction so structural updates and the cash movement commit or
// roll back together.
type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Debit removes cash from a user's balance as its own atomic unit.
func (r *LedgerRepository) Debit(userID uint, amount int64, txType, description string) (int64, error) {
	var newBalance int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		balance, err := r.DebitTx(tx, userID, amount, txType, description)
		if err != nil {
			return err
		}
		newBalance = balance
		return nil
	})
	return newBalance, err
}

// Credit adds cash to a user's balance as its own atomic unit.
func (r *LedgerRepository) Credit(userID uint, amount int64, txType, description string) (int64, error) {
	var newBalance int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		balance, err := r.CreditTx(tx, userID, amount, txType, description)
		if err != nil {
			return err
		}
		newBalance = balance
		return nil
	})
	return newBalance, err
}

// DebitTx removes cash from a user inside the caller's transaction.
// The user row is locked for the rest of the transaction.
func (r *LedgerRepository) DebitTx(tx *gorm.DB, userID uint, amount int64, txType, description string) (int64, error) {
	if amount <= 0 {
		return 0, errors.New(errors.ErrCodeValidationFailed, "amount must be positive")
	}

	var user models.User
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, errors.New(errors.ErrCodeNotFound, "user not found")
		}
		return 0, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get user")
	}

	if user.CashBalance < amount {
		return 0, errors.New(errors.ErrCodeInsufficientFunds,
			fmt.Sprintf("insufficient cash: have %d, need %d", user.CashBalance, amount))
	}

	newBalance := user.CashBalance - amount
	if err := tx.Model(&user).Update("cash_balance", newBalance).Error; err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeInternalError, "failed to update balance")
	}

	if err := r.journal(tx, &userID, nil, -amount, txType, description); err != nil {
		return 0, err
	}

	return newBalance, nil
}

// CreditTx adds cash to a user inside the caller's transaction.
func (r *LedgerRepository) CreditTx(tx *gorm.DB, userID uint, amount int64, txType, description string) (int64, error) {
	if amount <= 0 {
		return 0, errors.New(errors.ErrCodeValidationFailed, "amount must be positive")
	}

	var user models.User
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, errors.New(errors.ErrCodeNotFound, "user not found")
		}
		return 0, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get user")
	}

	newBalance := user.CashBalance + amount
	if err := tx.Model(&user).Update("cash_balance", newBalance).Error; err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeInternalError, "failed to update balance")
	}

	if err := r.journal(tx, &userID, nil, amount, txType, description); err != nil {
		return 0, err
	}

	return newBalance, nil
}

// CreditGangTx adds cash to a gang's bank inside the caller's
// transaction. The gang row is locked for the rest of the transaction.
func (r *LedgerRepository) CreditGangTx(tx *gorm.DB, gangID uint, amount int64, txType, description string) (int64, error) {
	if amount <= 0 {
		return 0, errors.New(errors.ErrCodeValidationFailed, "amount must be positive")
	}

	var gang models.Gang
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&gang, gangID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, errors.New(errors.ErrCodeNotFound, "gang not found")
		}
		return 0, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get gang")
	}

	newBalance := gang.BankBalance + amount
	if err := tx.Model(&gang).Update("bank_balance", newBalance).Error; err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeInternalError, "failed to update bank balance")
	}

	if err := r.journal(tx, nil, &gangID, amount, txType, description); err != nil {
		return 0, err
	}

	return newBalance, nil
}

// DebitGangTx removes cash from a gang's bank inside the caller's
// transaction.
func (r *LedgerRepository) DebitGangTx(tx *gorm.DB, gangID uint, amount int64, txType, description string) (int64, error) {
	if amount <= 0 {
		return 0, errors.New(errors.ErrCodeValidationFailed, "amount must be positive")
	}

	var gang models.Gang
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&gang, gangID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, errors.New(errors.ErrCodeNotFound, "gang not found")
		}
		return 0, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get gang")
	}

	if gang.BankBalance < amount {
		return 0, errors.New(errors.ErrCodeInsufficientFunds,
			fmt.Sprintf("insufficient gang funds: have %d, need %d", gang.BankBalance, amount))
	}

	newBalance := gang.BankBalance - amount
	if err := tx.Model(&gang).Update("bank_balance", newBalance).Error; err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeInternalError, "failed to update bank balance")
	}

	if err := r.journal(tx, nil, &gangID, -amount, txType, description); err != nil {
		return 0, err
	}

	return newBalance, nil
}

// GetBalance retrieves a user's current cash balance
func (r *LedgerRepository) GetBalance(userID uint) (int64, error) {
	var user models.User
	result := r.db.Select("cash_balance").First(&user, userID)

	if result.Error == gorm.ErrRecordNotFound {
		return 0, errors.New(errors.ErrCodeNotFound, "user not found")
	}
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get balance")
	}

	return user.CashBalance, nil
}

// GetUserHistory retrieves a user's journal entries, newest first
func (r *LedgerRepository) GetUserHistory(userID uint, limit int) ([]models.CashTransaction, error) {
	var transactions []models.CashTransaction
	result := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&transactions)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get transaction history")
	}

	return transactions, nil
}

// GetGangHistory retrieves a gang bank's journal entries, newest first
func (r *LedgerRepository) GetGangHistory(gangID uint, limit int) ([]models.CashTransaction, error) {
	var transactions []models.CashTransaction
	result := r.db.Where("gang_id = ?", gangID).
		Order("created_at DESC").
		Limit(limit).
		Find(&transactions)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get transaction history")
	}

	return transactions, nil
}

func (r *LedgerRepository) journal(tx *gorm.DB, userID, gangID *uint, amount int64, txType, description string) error {
	entry := &models.CashTransaction{
		UserID:          userID,
		GangID:          gangID,
		Amount:          amount,
		TransactionType: txType,
		Reference:       uuid.NewString(),
		Description:     description,
	}
	if err := tx.Create(entry).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create transaction record")
	}
	return nil
}
