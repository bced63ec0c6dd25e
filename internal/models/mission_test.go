package models

import (
	"testing"
	"time"
)

func TestGangMissionAttempt_IsComplete(t *testing.T) {
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	duration := 30 * time.Minute

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{
			name: "Just started",
			now:  started,
			want: false,
		},
		{
			name: "One minute short",
			now:  started.Add(29 * time.Minute),
			want: false,
		},
		{
			name: "Exactly on time",
			now:  started.Add(30 * time.Minute),
			want: true,
		},
		{
			name: "Well past",
			now:  started.Add(2 * time.Hour),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempt := &GangMissionAttempt{StartedAt: started}
			if got := attempt.IsComplete(tt.now, duration); got != tt.want {
				t.Errorf("IsComplete(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestGangMissionAttempt_CompleteAt(t *testing.T) {
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	attempt := &GangMissionAttempt{StartedAt: started}

	want := started.Add(45 * time.Minute)
	if got := attempt.CompleteAt(45 * time.Minute); !got.Equal(want) {
		t.Errorf("CompleteAt() = %v, want %v", got, want)
	}
}

func TestGangMission_Durations(t *testing.T) {
	mission := &GangMission{DurationMinutes: 90, CooldownMinutes: 240}

	if got := mission.Duration(); got != 90*time.Minute {
		t.Errorf("Duration() = %v, want %v", got, 90*time.Minute)
	}
	if got := mission.Cooldown(); got != 4*time.Hour {
		t.Errorf("Cooldown() = %v, want %v", got, 4*time.Hour)
	}
}

func TestTerritory_UnderCooldown(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		cooldown *time.Time
		want     bool
	}{
		{
			name:     "No cooldown set",
			cooldown: nil,
			want:     false,
		},
		{
			name:     "Cooldown in the future",
			cooldown: timePtr(now.Add(time.Hour)),
			want:     true,
		},
		{
			name:     "Cooldown elapsed",
			cooldown: timePtr(now.Add(-time.Hour)),
			want:     false,
		},
		{
			name:     "Cooldown exactly now",
			cooldown: timePtr(now),
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			territory := &Territory{AttackCooldown: tt.cooldown}
			if got := territory.UnderCooldown(now); got != tt.want {
				t.Errorf("UnderCooldown() = %v, want %v", got, tt.want)
			}
		})
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
