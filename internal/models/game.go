package models

import "time"

// Game outcomes persisted on a GameRecord
const (
	OutcomeWin  = "win"
	OutcomeLoss = "loss"
)

// GameRecord is the durable proof that a user completed a day's puzzle.
// At most one record may exist per (UserID, PlayDate); the table carries a
// unique index on that pair. Records are written once and never updated.
type GameRecord struct {
	ID         int64
	UserID     int64
	PlayDate   string // YYYY-MM-DD calendar date
	SecretWord string
	Guesses    []string
	Score      int
	Outcome    string
	CreatedAt  time.Time
}

// LeaderboardEntry is one row of the ranked total-points view
type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	UserID        int64  `json:"userId"`
	Name          string `json:"name"`
	TotalPoints   int    `json:"totalPoints"`
	CurrentStreak int    `json:"currentStreak"`
	MaxStreak     int    `json:"maxStreak"`
}
