package service

import (
	"sync"
)

// attemptTracker keeps a server-side attempt counter per user for the
// current calendar day, so the attempt index a client reports cannot be
// replayed backwards to inflate a score. A resubmission of the last
// processed guess at the last processed index is accepted without
// advancing: evaluation is deterministic, so a client that lost the
// response to a double-click or timeout gets the identical answer back.
// State is in-memory; after a restart the first submission re-seeds the
// counter from the client's claim, since a forged higher index only
// lowers the score.
type attemptTracker struct {
	mu     sync.Mutex
	date   string
	counts map[int64]int
	last   map[int64]string
}

func newAttemptTracker() *attemptTracker {
	return &attemptTracker{
		counts: make(map[int64]int),
		last:   make(map[int64]string),
	}
}

// rotate discards all counters when the calendar day changes.
// Callers must hold mu.
func (t *attemptTracker) rotate(date string) {
	if t.date != date {
		t.date = date
		t.counts = make(map[int64]int)
		t.last = make(map[int64]string)
	}
}

// check validates a claimed attempt index against the server-side counter.
// A claim at or above the counter is accepted and becomes the new baseline.
// A claim exactly one below it is accepted only when the guess matches the
// last processed one, making it a retry of a lost response rather than a
// replay. Anything older is rejected.
func (t *attemptTracker) check(userID int64, date string, attemptIndex int, guess string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rotate(date)

	known, ok := t.counts[userID]
	switch {
	case !ok, attemptIndex >= known:
		t.counts[userID] = attemptIndex
		return true
	case attemptIndex == known-1 && guess == t.last[userID]:
		return true
	default:
		return false
	}
}

// advance moves the counter past an accepted non-winning guess. A benign
// duplicate leaves the counter where it is.
func (t *attemptTracker) advance(userID int64, date string, attemptIndex int, guess string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rotate(date)
	if attemptIndex+1 > t.counts[userID] {
		t.counts[userID] = attemptIndex + 1
		t.last[userID] = guess
	}
}

// clear drops the counter once the user's game is complete
func (t *attemptTracker) clear(userID int64, date string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rotate(date)
	delete(t.counts, userID)
	delete(t.last, userID)
}
