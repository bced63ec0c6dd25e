package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint      `gorm:"primaryKey"`
	Username     string    `gorm:"type:varchar(32);uniqueIndex;not null"`
	PublicID     string    `gorm:"uniqueIndex;type:varchar(8)"`
	CashBalance  int64     `gorm:"default:500;not null"`
	Respect      int64     `gorm:"default:0;not null"`
	Level        int       `gorm:"default:1;not null"`
	XP           int64     `gorm:"default:0;not null"`
	LastActivity time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// GetXPRequired returns XP needed for current level to reach next
func (u *User) GetXPRequired() int64 {
	return int64(u.Level * 100)
}

// BeforeSave hook for validation
func (u *User) BeforeSave(tx *gorm.DB) error {
	name := strings.TrimSpace(u.Username)
	if len(name) < 3 || len(name) > 32 {
		return gorm.ErrInvalidData
	}
	u.Username = name
	return nil
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}
