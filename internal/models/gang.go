package models

import (
	"time"

	"gorm.io/gorm"
)

// Role is the gang hierarchy, ordered from lowest to highest rank.
type Role string

const (
	RoleSoldier   Role = "soldier"
	RoleCapo      Role = "capo"
	RoleUnderboss Role = "underboss"
	RoleLeader    Role = "leader"
)

// Rank returns the position of the role in the hierarchy. Unknown
// roles rank below soldier.
func (r Role) Rank() int {
	switch r {
	case RoleSoldier:
		return 1
	case RoleCapo:
		return 2
	case RoleUnderboss:
		return 3
	case RoleLeader:
		return 4
	}
	return 0
}

func (r Role) Valid() bool {
	return r.Rank() > 0
}

// AtLeast reports whether r ranks at or above other.
func (r Role) AtLeast(other Role) bool {
	return r.Rank() >= other.Rank()
}

// Promoted returns the next role up. Promotion stops at underboss;
// leader is only reachable through a leadership transfer.
func (r Role) Promoted() (Role, bool) {
	switch r {
	case RoleSoldier:
		return RoleCapo, true
	case RoleCapo:
		return RoleUnderboss, true
	}
	return r, false
}

// Demoted returns the next role down. Soldier is the floor and the
// leader cannot be demoted directly.
func (r Role) Demoted() (Role, bool) {
	switch r {
	case RoleUnderboss:
		return RoleCapo, true
	case RoleCapo:
		return RoleSoldier, true
	}
	return r, false
}

type Gang struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"type:varchar(64);uniqueIndex;not null"`
	Tag         string `gorm:"type:varchar(6);uniqueIndex;not null"`
	Slug        string `gorm:"type:varchar(80);uniqueIndex;not null"`
	Description string `gorm:"type:text"`
	// OwnerID mirrors the leader membership row. It is only ever
	// written in the same transaction that changes the leader role.
	OwnerID     uint      `gorm:"not null"`
	Owner       User      `gorm:"foreignKey:OwnerID"`
	BankBalance int64     `gorm:"default:0;not null"`
	Level       int       `gorm:"default:1;not null"`
	XP          int64     `gorm:"default:0;not null"`
	Respect     int64     `gorm:"default:0;not null"`
	Strength    int64     `gorm:"default:0;not null"`
	Defense     int64     `gorm:"default:0;not null"`
	MemberCount int       `gorm:"default:1;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// GetXPRequired returns total XP needed to move past the given level.
func (g *Gang) GetXPRequired(level int) int64 {
	return int64(level * 500)
}

// ComputeLevel walks the level curve from the gang's current level
// against its total XP.
func (g *Gang) ComputeLevel() int {
	level := g.Level
	for g.XP >= g.GetXPRequired(level) {
		level++
	}
	return level
}

type GangMember struct {
	ID     uint `gorm:"primaryKey"`
	GangID uint `gorm:"not null;index"`
	// A user belongs to at most one gang, so the user id alone is
	// unique across all memberships.
	UserID       uint      `gorm:"not null;uniqueIndex"`
	Role         Role      `gorm:"type:varchar(20);default:'soldier';not null"`
	Contribution int64     `gorm:"default:0;not null"`
	JoinedAt     time.Time `gorm:"autoCreateTime"`
	Gang         Gang      `gorm:"foreignKey:GangID;constraint:OnDelete:CASCADE"`
	User         User      `gorm:"foreignKey:UserID"`
}

// BeforeSave hook for validation
func (m *GangMember) BeforeSave(tx *gorm.DB) error {
	if !m.Role.Valid() {
		return gorm.ErrInvalidData
	}
	return nil
}

func (Gang) TableName() string {
	return "gangs"
}

func (GangMember) TableName() string {
	return "gang_members"
}
