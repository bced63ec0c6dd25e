package models

import (
	"testing"
)

func TestRole_Rank(t *testing.T) {
	tests := []struct {
		name string
		role Role
		want int
	}{
		{
			name: "Soldier",
			role: RoleSoldier,
			want: 1,
		},
		{
			name: "Capo",
			role: RoleCapo,
			want: 2,
		},
		{
			name: "Underboss",
			role: RoleUnderboss,
			want: 3,
		},
		{
			name: "Leader",
			role: RoleLeader,
			want: 4,
		},
		{
			name: "Unknown role",
			role: Role("boss"),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.role.Rank(); got != tt.want {
				t.Errorf("Rank() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRole_Promoted(t *testing.T) {
	tests := []struct {
		name string
		role Role
		want Role
		ok   bool
	}{
		{
			name: "Soldier to capo",
			role: RoleSoldier,
			want: RoleCapo,
			ok:   true,
		},
		{
			name: "Capo to underboss",
			role: RoleCapo,
			want: RoleUnderboss,
			ok:   true,
		},
		{
			name: "Underboss is the ceiling",
			role: RoleUnderboss,
			want: RoleUnderboss,
			ok:   false,
		},
		{
			name: "Leader is unreachable by promotion",
			role: RoleLeader,
			want: RoleLeader,
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.role.Promoted()
			if got != tt.want || ok != tt.ok {
				t.Errorf("Promoted() = (%s, %v), want (%s, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestRole_Demoted(t *testing.T) {
	tests := []struct {
		name string
		role Role
		want Role
		ok   bool
	}{
		{
			name: "Underboss to capo",
			role: RoleUnderboss,
			want: RoleCapo,
			ok:   true,
		},
		{
			name: "Capo to soldier",
			role: RoleCapo,
			want: RoleSoldier,
			ok:   true,
		},
		{
			name: "Soldier is the floor",
			role: RoleSoldier,
			want: RoleSoldier,
			ok:   false,
		},
		{
			name: "Leader cannot be demoted directly",
			role: RoleLeader,
			want: RoleLeader,
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.role.Demoted()
			if got != tt.want || ok != tt.ok {
				t.Errorf("Demoted() = (%s, %v), want (%s, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestRole_AtLeast(t *testing.T) {
	if !RoleLeader.AtLeast(RoleUnderboss) {
		t.Error("leader should rank at least underboss")
	}
	if !RoleUnderboss.AtLeast(RoleUnderboss) {
		t.Error("underboss should rank at least underboss")
	}
	if RoleCapo.AtLeast(RoleUnderboss) {
		t.Error("capo should not rank at least underboss")
	}
	if RoleSoldier.AtLeast(RoleCapo) {
		t.Error("soldier should not rank at least capo")
	}
}

func TestGang_ComputeLevel(t *testing.T) {
	tests := []struct {
		name  string
		level int
		xp    int64
		want  int
	}{
		{
			name:  "Fresh gang",
			level: 1,
			xp:    0,
			want:  1,
		},
		{
			name:  "Just below threshold",
			level: 1,
			xp:    499,
			want:  1,
		},
		{
			name:  "Crosses one level",
			level: 1,
			xp:    500,
			want:  2,
		},
		{
			name:  "Crosses two levels",
			level: 1,
			xp:    1500,
			want:  3,
		},
		{
			name:  "Already caught up",
			level: 3,
			xp:    1400,
			want:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gang := &Gang{Level: tt.level, XP: tt.xp}
			if got := gang.ComputeLevel(); got != tt.want {
				t.Errorf("ComputeLevel() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGang_TableNames(t *testing.T) {
	if got := (Gang{}).TableName(); got != "gangs" {
		t.Errorf("Gang.TableName() = %q, want %q", got, "gangs")
	}
	if got := (GangMember{}).TableName(); got != "gang_members" {
		t.Errorf("GangMember.TableName() = %q, want %q", got, "gang_members")
	}
}

func TestGangMember_BeforeSave(t *testing.T) {
	tests := []struct {
		name    string
		role    Role
		wantErr bool
	}{
		{
			name:    "Soldier",
			role:    RoleSoldier,
			wantErr: false,
		},
		{
			name:    "Leader",
			role:    RoleLeader,
			wantErr: false,
		},
		{
			name:    "Unknown role",
			role:    Role("don"),
			wantErr: true,
		},
		{
			name:    "Empty role",
			role:    Role(""),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			member := &GangMember{GangID: 1, UserID: 1, Role: tt.role}

			err := member.BeforeSave(nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("BeforeSave() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
