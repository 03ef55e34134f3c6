package service

import (
	"testing"
	"time"
)

func TestLockStateNilLock(t *testing.T) {
	now := time.Now()
	if got := LockState(0, nil, now); got != StateActive {
		t.Errorf("expected active with no lock, got %v", got)
	}
	// the counter alone never locks
	if got := LockState(99, nil, now); got != StateActive {
		t.Errorf("expected active with high counter but no lock, got %v", got)
	}
}

func TestLockStateFutureLock(t *testing.T) {
	now := time.Now()
	until := now.Add(time.Minute)
	if got := LockState(5, &until, now); got != StateLocked {
		t.Errorf("expected locked with future lock, got %v", got)
	}
}

func TestLockStateElapsedLock(t *testing.T) {
	now := time.Now()
	until := now.Add(-time.Second)
	// An elapsed lock means the account is logically unlocked even though the
	// counter has not been reset by any write.
	if got := LockState(5, &until, now); got != StateActive {
		t.Errorf("expected active with elapsed lock, got %v", got)
	}
}

func TestLockStateBoundary(t *testing.T) {
	now := time.Now()
	until := now
	// A lock expiring exactly now is no longer in force.
	if got := LockState(5, &until, now); got != StateActive {
		t.Errorf("expected active at exact expiry instant, got %v", got)
	}
}

func TestApplyFailedAttemptBelowThreshold(t *testing.T) {
	now := time.Now()
	attempts, lockedUntil := ApplyFailedAttempt(2, now, 5, 15*time.Minute)
	if attempts != 3 {
		t.Errorf("expected counter 3, got %d", attempts)
	}
	if lockedUntil != nil {
		t.Errorf("expected no lock below threshold, got %v", lockedUntil)
	}
}

func TestApplyFailedAttemptReachesThreshold(t *testing.T) {
	now := time.Now()
	attempts, lockedUntil := ApplyFailedAttempt(4, now, 5, 15*time.Minute)
	if attempts != 5 {
		t.Errorf("expected counter 5, got %d", attempts)
	}
	if lockedUntil == nil {
		t.Fatal("expected lock at threshold")
	}
	if !lockedUntil.Equal(now.Add(15 * time.Minute)) {
		t.Errorf("expected lock until now+15m, got %v", lockedUntil)
	}
}

func TestApplyFailedAttemptReArmsAboveThreshold(t *testing.T) {
	now := time.Now()
	// Counter already past threshold (previous lock elapsed without a reset):
	// the next failure must re-arm the lock, not grant a fresh window.
	attempts, lockedUntil := ApplyFailedAttempt(7, now, 5, 15*time.Minute)
	if attempts != 8 {
		t.Errorf("expected counter 8, got %d", attempts)
	}
	if lockedUntil == nil {
		t.Error("expected re-armed lock above threshold")
	}
}

func TestApplyFailedAttemptZeroThresholdNeverLocks(t *testing.T) {
	now := time.Now()
	_, lockedUntil := ApplyFailedAttempt(100, now, 0, 15*time.Minute)
	if lockedUntil != nil {
		t.Errorf("threshold 0 disables locking, got %v", lockedUntil)
	}
}

func TestAccountStateString(t *testing.T) {
	if StateActive.String() != "active" || StateLocked.String() != "locked" {
		t.Errorf("unexpected state strings: %q, %q", StateActive, StateLocked)
	}
}
