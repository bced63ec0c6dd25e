package middleware

import (
	"testing"
	"time"
)

func TestRateLimiter_CheckUserLimit(t *testing.T) {
	rl := NewRateLimiter(3, 100, time.Minute)

	// First three requests pass
	for i := 0; i < 3; i++ {
		if !rl.CheckUserLimit(1) {
			t.Fatalf("CheckUserLimit() request %d = false, want true", i+1)
		}
	}

	// Fourth is rejected
	if rl.CheckUserLimit(1) {
		t.Error("CheckUserLimit() over limit = true, want false")
	}

	// A different user is unaffected
	if !rl.CheckUserLimit(2) {
		t.Error("CheckUserLimit() for other user = false, want true")
	}
}

func TestRateLimiter_CheckIPLimit(t *testing.T) {
	rl := NewRateLimiter(100, 2, time.Minute)

	if !rl.CheckIPLimit("10.0.0.1") {
		t.Error("CheckIPLimit() first request = false, want true")
	}
	if !rl.CheckIPLimit("10.0.0.1") {
		t.Error("CheckIPLimit() second request = false, want true")
	}
	if rl.CheckIPLimit("10.0.0.1") {
		t.Error("CheckIPLimit() over limit = true, want false")
	}
	if !rl.CheckIPLimit("10.0.0.2") {
		t.Error("CheckIPLimit() for other IP = false, want true")
	}
}

func TestRateLimiter_WindowReset(t *testing.T) {
	rl := NewRateLimiter(1, 100, 10*time.Millisecond)

	if !rl.CheckUserLimit(1) {
		t.Fatal("CheckUserLimit() first request = false, want true")
	}
	if rl.CheckUserLimit(1) {
		t.Fatal("CheckUserLimit() over limit = true, want false")
	}

	time.Sleep(20 * time.Millisecond)

	if !rl.CheckUserLimit(1) {
		t.Error("CheckUserLimit() after window reset = false, want true")
	}
}

func TestRateLimiter_GetUserRemaining(t *testing.T) {
	rl := NewRateLimiter(5, 100, time.Minute)

	if got := rl.GetUserRemaining(1); got != 5 {
		t.Errorf("GetUserRemaining() before requests = %d, want 5", got)
	}

	rl.CheckUserLimit(1)
	rl.CheckUserLimit(1)

	if got := rl.GetUserRemaining(1); got != 3 {
		t.Errorf("GetUserRemaining() after two requests = %d, want 3", got)
	}
}

func TestRateLimiter_Reset(t *testing.T) {
	rl := NewRateLimiter(1, 1, time.Minute)

	rl.CheckUserLimit(1)
	rl.CheckIPLimit("10.0.0.1")
	rl.Reset()

	if !rl.CheckUserLimit(1) {
		t.Error("CheckUserLimit() after Reset = false, want true")
	}
	if !rl.CheckIPLimit("10.0.0.1") {
		t.Error("CheckIPLimit() after Reset = false, want true")
	}
}
