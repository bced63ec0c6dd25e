package models

import (
	"time"
)

// CashTransaction is the journal row written alongside every balance
// mutation. UserID is set for personal cash movements, GangID for gang
// bank movements; territory income rows carry only a gang.
type CashTransaction struct {
	ID              uint      `gorm:"primaryKey"`
	UserID          *uint     `gorm:"index"`
	GangID          *uint     `gorm:"index"`
	Amount          int64     `gorm:"not null"`
	TransactionType string    `gorm:"type:varchar(50);not null;index"`
	Reference       string    `gorm:"type:varchar(36);index"`
	Description     string    `gorm:"type:text"`
	CreatedAt       time.Time `gorm:"autoCreateTime;index"`
}

// Transaction type constants
const (
	TxTypeWarContribution = "war_contribution"
	TxTypeGangDeposit     = "gang_deposit"
	TxTypeGangWithdraw    = "gang_withdraw"
	TxTypeMissionReward   = "mission_reward"
	TxTypeTerritoryIncome = "territory_income"
	TxTypeAdminAdjustment = "admin_adjustment"
)

func (CashTransaction) TableName() string {
	return "cash_transactions"
}
