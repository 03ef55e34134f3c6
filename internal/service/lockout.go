package service

import "time"

// AccountState is the computed lock state of an admin account.
type AccountState int

const (
	// StateActive means the account may attempt a login.
	StateActive AccountState = iota
	// StateLocked means credential checks are refused until the lock elapses.
	StateLocked
)

func (s AccountState) String() string {
	if s == StateLocked {
		return "locked"
	}
	return "active"
}

// LockState computes whether an account is currently locked. Lock state is
// derived, never read back from a stored flag: an elapsed lockedUntil means
// the account is active again even though no write has reset the attempt
// counter yet.
// The failed-attempt counter alone never locks; only a future lockedUntil
// does.
func LockState(failedAttempts int, lockedUntil *time.Time, now time.Time) AccountState {
	if lockedUntil != nil && now.Before(*lockedUntil) {
		return StateLocked
	}
	return StateActive
}

// ApplyFailedAttempt returns the lockout snapshot to persist after one more
// failed credential check: the incremented counter and, when the new count
// has reached the threshold, a lock expiring at now+lockFor. The inputs are
// never mutated; the caller persists both values in a single write.
//
// The comparison is >= rather than ==: once a lock has elapsed without a
// successful login, the counter is still above the threshold, and the next
// failure must re-arm the lock rather than grant a fresh window of attempts.
func ApplyFailedAttempt(failedAttempts int, now time.Time, threshold int, lockFor time.Duration) (int, *time.Time) {
	next := failedAttempts + 1
	if threshold > 0 && next >= threshold {
		until := now.Add(lockFor)
		return next, &until
	}
	return next, nil
}
