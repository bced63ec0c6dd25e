package models

import (
	"time"
)

type War struct {
	ID              uint       `gorm:"primaryKey"`
	AttackerID      uint       `gorm:"not null;index"`
	Attacker        Gang       `gorm:"foreignKey:AttackerID"`
	DefenderID      uint       `gorm:"not null;index"`
	Defender        Gang       `gorm:"foreignKey:DefenderID"`
	TerritoryID     uint       `gorm:"not null;index"`
	Territory       Territory  `gorm:"foreignKey:TerritoryID"`
	Status          string     `gorm:"type:varchar(20);default:'active';not null;index"`
	AttackStrength  int64      `gorm:"default:0;not null"`
	DefenseStrength int64      `gorm:"default:0;not null"`
	WinnerID        *uint      `gorm:"default:NULL"`
	StartTime       time.Time  `gorm:"autoCreateTime"`
	EndTime         *time.Time `gorm:"default:NULL"`
}

// War status constants
const (
	WarStatusActive    = "active"
	WarStatusCompleted = "completed"
)

// War sides
const (
	WarSideAttacker = "attacker"
	WarSideDefender = "defender"
)

// ResolveWinner applies the dominance rule to the current strength
// totals: a side wins when its strength is more than double the
// opposing side's. Returns the winning gang id and whether the war
// resolved.
func (w *War) ResolveWinner() (uint, bool) {
	if w.AttackStrength > 2*w.DefenseStrength {
		return w.AttackerID, true
	}
	if w.DefenseStrength > 2*w.AttackStrength {
		return w.DefenderID, true
	}
	return 0, false
}

// SideFor returns which side a gang fights on in this war.
func (w *War) SideFor(gangID uint) (string, bool) {
	switch gangID {
	case w.AttackerID:
		return WarSideAttacker, true
	case w.DefenderID:
		return WarSideDefender, true
	}
	return "", false
}

type WarParticipant struct {
	ID uint `gorm:"primaryKey"`
	// A user joins a given war at most once, on one side.
	WarID        uint      `gorm:"not null;uniqueIndex:idx_war_participant"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_war_participant"`
	GangID       uint      `gorm:"not null;index"`
	Side         string    `gorm:"type:varchar(10);not null"`
	Contribution int64     `gorm:"default:0;not null"`
	JoinedAt     time.Time `gorm:"autoCreateTime"`
	War          War       `gorm:"foreignKey:WarID;constraint:OnDelete:CASCADE"`
	User         User      `gorm:"foreignKey:UserID"`
}

func (War) TableName() string {
	return "wars"
}

func (WarParticipant) TableName() string {
	return "war_participants"
}
