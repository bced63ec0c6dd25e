package models

import (
	"testing"
)

func TestWar_ResolveWinner(t *testing.T) {
	tests := []struct {
		name       string
		attack     int64
		defense    int64
		wantWinner uint
		wantDone   bool
	}{
		{
			name:     "Fresh war",
			attack:   0,
			defense:  0,
			wantDone: false,
		},
		{
			name:       "Attack dominates",
			attack:     500,
			defense:    100,
			wantWinner: 10,
			wantDone:   true,
		},
		{
			name:     "Close totals stay unresolved",
			attack:   1000,
			defense:  600,
			wantDone: false,
		},
		{
			name:     "Exactly double is not enough",
			attack:   200,
			defense:  100,
			wantDone: false,
		},
		{
			name:       "One over double resolves",
			attack:     201,
			defense:    100,
			wantWinner: 10,
			wantDone:   true,
		},
		{
			name:       "Defense dominates",
			attack:     100,
			defense:    300,
			wantWinner: 20,
			wantDone:   true,
		},
		{
			name:       "Any attack beats zero defense",
			attack:     1,
			defense:    0,
			wantWinner: 10,
			wantDone:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			war := &War{
				AttackerID:      10,
				DefenderID:      20,
				AttackStrength:  tt.attack,
				DefenseStrength: tt.defense,
			}

			winner, done := war.ResolveWinner()
			if done != tt.wantDone {
				t.Fatalf("ResolveWinner() done = %v, want %v", done, tt.wantDone)
			}
			if done && winner != tt.wantWinner {
				t.Errorf("ResolveWinner() winner = %d, want %d", winner, tt.wantWinner)
			}
		})
	}
}

func TestWar_SideFor(t *testing.T) {
	war := &War{AttackerID: 10, DefenderID: 20}

	tests := []struct {
		name     string
		gangID   uint
		wantSide string
		wantOK   bool
	}{
		{
			name:     "Attacker gang",
			gangID:   10,
			wantSide: WarSideAttacker,
			wantOK:   true,
		},
		{
			name:     "Defender gang",
			gangID:   20,
			wantSide: WarSideDefender,
			wantOK:   true,
		},
		{
			name:   "Uninvolved gang",
			gangID: 30,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			side, ok := war.SideFor(tt.gangID)
			if ok != tt.wantOK {
				t.Fatalf("SideFor(%d) ok = %v, want %v", tt.gangID, ok, tt.wantOK)
			}
			if ok && side != tt.wantSide {
				t.Errorf("SideFor(%d) = %q, want %q", tt.gangID, side, tt.wantSide)
			}
		})
	}
}

func TestWar_TableNames(t *testing.T) {
	if got := (War{}).TableName(); got != "wars" {
		t.Errorf("War.TableName() = %q, want %q", got, "wars")
	}
	if got := (WarParticipant{}).TableName(); got != "war_participants" {
		t.Errorf("WarParticipant.TableName() = %q, want %q", got, "war_participants")
	}
}
