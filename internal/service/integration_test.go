package service

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"boundle/internal/config"
	"boundle/internal/database"
	"boundle/internal/models"
	"boundle/internal/puzzle"
	"boundle/internal/repository"
)

// newTestGameService wires a GameService against a fresh SQLite database
// with the real migrations applied. The schedule has a single word, so
// today's secret is always KALEM.
func newTestGameService(t *testing.T) (*GameService, *repository.UserRepository, *database.DB) {
	t.Helper()

	cfg := &config.Config{
		DatabaseType: "sqlite",
		DatabasePath: filepath.Join(t.TempDir(), "test.db"),
	}
	db, err := database.Open(cfg)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	epoch := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	schedule, err := puzzle.NewSchedule([]string{"KALEM"}, []string{"KAZAK"}, epoch)
	if err != nil {
		t.Fatalf("NewSchedule() error: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	gameRepo := repository.NewGameRepository(db)
	svc := NewGameService(db, userRepo, gameRepo, schedule, 100, 10, 10, 6, true)
	return svc, userRepo, db
}

func countGameRecords(t *testing.T, db *database.DB, userID int64) int {
	t.Helper()
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM game_records WHERE user_id = ?", userID).Scan(&count); err != nil {
		t.Fatalf("Failed to count game records: %v", err)
	}
	return count
}

// TestWinningSubmissionIsExactlyOnce drives a win and a repeated win through
// the full transaction: one game record, stats applied once, and the second
// submission resolved as already completed.
func TestWinningSubmissionIsExactlyOnce(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	svc, userRepo, db := newTestGameService(t)

	user, err := userRepo.CreateUser("oyuncu@example.com", "hash", "Oyuncu")
	if err != nil {
		t.Fatalf("CreateUser() error: %v", err)
	}

	resp, err := svc.SubmitGuess(user.ID, "KALEM", 0, nil)
	if err != nil {
		t.Fatalf("SubmitGuess() error: %v", err)
	}
	if resp.Outcome != puzzle.OutcomeWin {
		t.Fatalf("SubmitGuess() outcome = %v, want win", resp.Outcome)
	}
	if resp.Score != 100 {
		t.Errorf("SubmitGuess() score = %d, want 100", resp.Score)
	}

	// The identical winning submission replayed after the fact.
	resp, err = svc.SubmitGuess(user.ID, "KALEM", 0, nil)
	if !errors.Is(err, ErrAlreadyCompletedToday) {
		t.Fatalf("repeated SubmitGuess() error = %v, want ErrAlreadyCompletedToday", err)
	}
	if resp == nil || resp.Outcome != puzzle.OutcomeAlreadyCompleted {
		t.Errorf("repeated SubmitGuess() outcome = %v, want already completed", resp)
	}

	if got := countGameRecords(t, db, user.ID); got != 1 {
		t.Errorf("game record count = %d, want exactly 1", got)
	}

	stats, err := svc.Stats(user.ID)
	if err != nil {
		t.Fatalf("Stats() error: %v", err)
	}
	if stats.TotalPoints != 100 || stats.CurrentStreak != 1 || stats.MaxStreak != 1 {
		t.Errorf("stats = %+v, want 100 points and streak 1", stats)
	}
	if want := dateOf(time.Now()); stats.LastCompletedDate != want {
		t.Errorf("LastCompletedDate = %q, want %q", stats.LastCompletedDate, want)
	}

	record, err := svc.TodayRecord(user.ID)
	if err != nil {
		t.Fatalf("TodayRecord() error: %v", err)
	}
	if record == nil || record.Outcome != models.OutcomeWin || record.Score != 100 {
		t.Errorf("TodayRecord() = %+v, want a win worth 100", record)
	}
}

// TestRetriedGuessDoesNotConsumeAttempt replays a lost-response retry of a
// non-winning guess end to end, then wins on the next row.
func TestRetriedGuessDoesNotConsumeAttempt(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	svc, userRepo, db := newTestGameService(t)

	user, err := userRepo.CreateUser("oyuncu@example.com", "hash", "Oyuncu")
	if err != nil {
		t.Fatalf("CreateUser() error: %v", err)
	}

	resp, err := svc.SubmitGuess(user.ID, "KAZAK", 0, nil)
	if err != nil {
		t.Fatalf("SubmitGuess() error: %v", err)
	}
	if resp.Outcome != puzzle.OutcomeContinue {
		t.Fatalf("SubmitGuess() outcome = %v, want continue", resp.Outcome)
	}

	// Response lost in transit; the client re-sends the same row and must
	// get the same answer back instead of an attempt mismatch.
	resp, err = svc.SubmitGuess(user.ID, "KAZAK", 0, nil)
	if err != nil {
		t.Fatalf("retried SubmitGuess() error = %v, want benign duplicate", err)
	}
	if resp.Outcome != puzzle.OutcomeContinue {
		t.Fatalf("retried SubmitGuess() outcome = %v, want continue", resp.Outcome)
	}

	if got := countGameRecords(t, db, user.ID); got != 0 {
		t.Fatalf("game record count = %d after non-winning guesses, want 0", got)
	}

	resp, err = svc.SubmitGuess(user.ID, "KALEM", 1, []string{"KAZAK"})
	if err != nil {
		t.Fatalf("winning SubmitGuess() error: %v", err)
	}
	if resp.Outcome != puzzle.OutcomeWin {
		t.Fatalf("winning SubmitGuess() outcome = %v, want win", resp.Outcome)
	}
	if resp.Score != 90 {
		t.Errorf("winning SubmitGuess() score = %d, want 90 for the second attempt", resp.Score)
	}
}

// TestGameRecordInsertIsWriteOnce exercises the unique-violation translation
// in the repository directly.
func TestGameRecordInsertIsWriteOnce(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	_, userRepo, db := newTestGameService(t)
	gameRepo := repository.NewGameRepository(db)

	user, err := userRepo.CreateUser("oyuncu@example.com", "hash", "Oyuncu")
	if err != nil {
		t.Fatalf("CreateUser() error: %v", err)
	}

	record := &models.GameRecord{
		UserID:     user.ID,
		PlayDate:   "2024-03-15",
		SecretWord: "KALEM",
		Guesses:    []string{"KALEM"},
		Score:      100,
		Outcome:    models.OutcomeWin,
	}
	if err := gameRepo.Create(db, record); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	duplicate := &models.GameRecord{
		UserID:     user.ID,
		PlayDate:   "2024-03-15",
		SecretWord: "KALEM",
		Guesses:    []string{"KAZAK", "KALEM"},
		Score:      90,
		Outcome:    models.OutcomeWin,
	}
	if err := gameRepo.Create(db, duplicate); !errors.Is(err, repository.ErrDuplicateRecord) {
		t.Fatalf("Create() duplicate error = %v, want ErrDuplicateRecord", err)
	}

	if got := countGameRecords(t, db, user.ID); got != 1 {
		t.Errorf("game record count = %d, want exactly 1", got)
	}
}
