package models

import (
	"time"
)

type GangMission struct {
	ID              uint      `gorm:"primaryKey"`
	Name            string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	Description     string    `gorm:"type:text"`
	RequiredMembers int       `gorm:"default:1;not null"`
	RewardCash      int64     `gorm:"default:0;not null"`
	RewardRespect   int64     `gorm:"default:0;not null"`
	RewardXP        int64     `gorm:"default:0;not null"`
	DurationMinutes int       `gorm:"default:60;not null"`
	CooldownMinutes int       `gorm:"default:240;not null"`
	Active          bool      `gorm:"default:true;not null"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
}

func (m *GangMission) Duration() time.Duration {
	return time.Duration(m.DurationMinutes) * time.Minute
}

func (m *GangMission) Cooldown() time.Duration {
	return time.Duration(m.CooldownMinutes) * time.Minute
}

type GangMissionAttempt struct {
	ID              uint        `gorm:"primaryKey"`
	GangID          uint        `gorm:"not null;index:idx_gang_mission_attempt"`
	MissionID       uint        `gorm:"not null;index:idx_gang_mission_attempt"`
	Status          string      `gorm:"type:varchar(20);default:'in_progress';not null;index"`
	StartedAt       time.Time   `gorm:"autoCreateTime"`
	CompletedAt     *time.Time  `gorm:"default:NULL"`
	NextAvailableAt *time.Time  `gorm:"default:NULL"`
	Gang            Gang        `gorm:"foreignKey:GangID;constraint:OnDelete:CASCADE"`
	Mission         GangMission `gorm:"foreignKey:MissionID"`
}

// Attempt status constants
const (
	AttemptStatusInProgress = "in_progress"
	AttemptStatusCompleted  = "completed"
	AttemptStatusFailed     = "failed"
)

// CompleteAt returns the wall-clock time the attempt finishes.
func (a *GangMissionAttempt) CompleteAt(duration time.Duration) time.Time {
	return a.StartedAt.Add(duration)
}

// IsComplete reports whether enough wall-clock time has passed for the
// attempt to be collectable. The persisted status stays in_progress
// until rewards are collected.
func (a *GangMissionAttempt) IsComplete(now time.Time, duration time.Duration) bool {
	return !now.Before(a.CompleteAt(duration))
}

func (GangMission) TableName() string {
	return "gang_missions"
}

func (GangMissionAttempt) TableName() string {
	return "gang_mission_attempts"
}
