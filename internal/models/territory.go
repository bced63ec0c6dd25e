package models

import (
	"time"
)

type Territory struct {
	ID             uint       `gorm:"primaryKey"`
	Name           string     `gorm:"type:varchar(64);uniqueIndex;not null"`
	District       string     `gorm:"type:varchar(64)"`
	ControlledBy   *uint      `gorm:"index"`
	Controller     *Gang      `gorm:"foreignKey:ControlledBy"`
	AttackCooldown *time.Time `gorm:"default:NULL"`
	Income         int64      `gorm:"default:0;not null"`
	DefenseBonus   int64      `gorm:"default:0;not null"`
	CreatedAt      time.Time  `gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime"`
}

// UnderCooldown reports whether the territory is still protected from
// attacks at the given time.
func (t *Territory) UnderCooldown(now time.Time) bool {
	return t.AttackCooldown != nil && t.AttackCooldown.After(now)
}

func (Territory) TableName() string {
	return "territories"
}
