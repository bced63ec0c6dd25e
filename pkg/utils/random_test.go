package utils

import (
	"strings"
	"testing"
)

func TestGenerateRandomID(t *testing.T) {
	tests := []struct {
		name   string
		length int
	}{
		{
			name:   "Public id length",
			length: 8,
		},
		{
			name:   "Short id",
			length: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := GenerateRandomID(tt.length)
			if len(id) != tt.length {
				t.Errorf("GenerateRandomID(%d) length = %d, want %d", tt.length, len(id), tt.length)
			}

			for _, c := range id {
				if !strings.ContainsRune(charset, c) {
					t.Errorf("GenerateRandomID() produced %q, not in charset", c)
				}
			}
		})
	}
}

func TestGenerateRandomID_NoAmbiguousCharacters(t *testing.T) {
	for _, c := range "0O1lI" {
		if strings.ContainsRune(charset, c) {
			t.Errorf("charset contains ambiguous character %q", c)
		}
	}
}

func TestGenerateRandomID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateRandomID(8)
		if seen[id] {
			t.Fatalf("GenerateRandomID() repeated %q", id)
		}
		seen[id] = true
	}
}
