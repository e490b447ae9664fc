package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"boundle/internal/database"
	"boundle/internal/models"
	"boundle/internal/puzzle"
	"boundle/internal/repository"
)

var (
	// ErrAlreadyCompletedToday means the user already has a game record for
	// today. Not a failure from the user's perspective: clients should show
	// the recorded result.
	ErrAlreadyCompletedToday = errors.New("puzzle already completed today")

	// ErrUnknownWord means the guess is not in the dictionary
	ErrUnknownWord = errors.New("guess is not a recognized word")

	// ErrAttemptMismatch means the reported attempt index is inconsistent
	// with the submitted history or the server-side counter.
	ErrAttemptMismatch = errors.New("attempt index does not match guess history")

	// ErrNoAttemptsLeft means the guess grid is exhausted
	ErrNoAttemptsLeft = errors.New("no attempts left today")

	// ErrUserNotFound means the authenticated user id has no profile row
	ErrUserNotFound = errors.New("user not found")
)

// GuessResponse is the result of a guess submission
type GuessResponse struct {
	Result  []puzzle.LetterStatus
	Outcome puzzle.Outcome
	Score   int
}

// GameService implements the daily puzzle: guess evaluation, exactly-once
// completion scoring, streak accounting, and the leaderboard view.
type GameService struct {
	db       *database.DB
	userRepo *repository.UserRepository
	gameRepo *repository.GameRepository
	schedule *puzzle.Schedule

	baseScore      int
	attemptPenalty int
	minScore       int
	maxAttempts    int
	strictWords    bool

	attempts *attemptTracker
}

// NewGameService creates a new game service
func NewGameService(
	db *database.DB,
	userRepo *repository.UserRepository,
	gameRepo *repository.GameRepository,
	schedule *puzzle.Schedule,
	baseScore, attemptPenalty, minScore, maxAttempts int,
	strictWords bool,
) *GameService {
	return &GameService{
		db:             db,
		userRepo:       userRepo,
		gameRepo:       gameRepo,
		schedule:       schedule,
		baseScore:      baseScore,
		attemptPenalty: attemptPenalty,
		minScore:       minScore,
		maxAttempts:    maxAttempts,
		strictWords:    strictWords,
		attempts:       newAttemptTracker(),
	}
}

// SubmitGuess evaluates one guess for the authenticated user against
// today's secret word. history holds the user's prior guesses for the day,
// excluding the current one, so attemptIndex must equal len(history).
// State is mutated only on a winning guess, inside completeGame.
func (s *GameService) SubmitGuess(userID int64, guess string, attemptIndex int, history []string) (*GuessResponse, error) {
	now := time.Now()
	today := dateOf(now)

	if attemptIndex != len(history) {
		return nil, ErrAttemptMismatch
	}
	if attemptIndex >= s.maxAttempts {
		return nil, ErrNoAttemptsLeft
	}
	for _, prior := range history {
		if _, err := puzzle.ValidateWord(prior); err != nil {
			return nil, err
		}
	}
	if _, err := puzzle.ValidateWord(guess); err != nil {
		return nil, err
	}
	normalized := puzzle.Normalize(guess)
	if !s.attempts.check(userID, today, attemptIndex, normalized) {
		return nil, ErrAttemptMismatch
	}

	if s.strictWords && !s.schedule.Contains(guess) {
		return nil, ErrUnknownWord
	}

	secret := s.schedule.WordForDay(now)
	result, err := puzzle.Evaluate(secret, guess)
	if err != nil {
		return nil, err
	}

	if !puzzle.IsWinning(result) {
		// Losing and continuing guesses are stateless round trips; only the
		// in-memory attempt counter moves.
		s.attempts.advance(userID, today, attemptIndex, normalized)
		return &GuessResponse{Result: result, Outcome: puzzle.OutcomeContinue}, nil
	}

	score := ComputeScore(s.baseScore, s.attemptPenalty, s.minScore, attemptIndex)
	guesses := append(append([]string{}, history...), normalized)

	if err := s.completeGame(userID, now, secret, guesses, score); err != nil {
		if errors.Is(err, ErrAlreadyCompletedToday) {
			s.attempts.clear(userID, today)
			return &GuessResponse{Result: result, Outcome: puzzle.OutcomeAlreadyCompleted}, ErrAlreadyCompletedToday
		}
		return nil, err
	}

	s.attempts.clear(userID, today)
	return &GuessResponse{Result: result, Outcome: puzzle.OutcomeWin, Score: score}, nil
}

// completeGame records a win exactly once: the game record insert and the
// stats update commit in one transaction, and the UNIQUE (user_id, play_date)
// index resolves any race between concurrent winning submissions. One retry
// covers transient transaction failures; a duplicate is definitive.
func (s *GameService) completeGame(userID int64, now time.Time, secret string, guesses []string, score int) error {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		err := s.runCompletion(userID, now, secret, guesses, score)
		if err == nil || errors.Is(err, ErrAlreadyCompletedToday) {
			return err
		}
		lastErr = err
		log.Printf("Game completion attempt %d for user %d failed: %v", attempt+1, userID, err)
	}
	return fmt.Errorf("failed to record completion: %w", lastErr)
}

func (s *GameService) runCompletion(userID int64, now time.Time, secret string, guesses []string, score int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Re-check inside the transaction that today is still unclaimed
	existing, err := s.gameRepo.GetByUserAndDate(tx, userID, dateOf(now))
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAlreadyCompletedToday
	}

	stats, err := s.userRepo.GetGameStats(tx, userID)
	if err != nil {
		return err
	}
	if stats == nil {
		return ErrUserNotFound
	}

	ApplyCompletion(stats, dateOf(now), dateOf(now.AddDate(0, 0, -1)), score)

	record := &models.GameRecord{
		UserID:     userID,
		PlayDate:   dateOf(now),
		SecretWord: secret,
		Guesses:    guesses,
		Score:      score,
		Outcome:    models.OutcomeWin,
	}
	if err := s.gameRepo.Create(tx, record); err != nil {
		if errors.Is(err, repository.ErrDuplicateRecord) {
			return ErrAlreadyCompletedToday
		}
		return err
	}

	if err := s.userRepo.UpdateGameStats(tx, userID, stats); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		if s.db.Dialect.IsUniqueViolation(err) {
			return ErrAlreadyCompletedToday
		}
		return fmt.Errorf("failed to commit completion: %w", err)
	}
	return nil
}

// TodayRecord returns the user's game record for today, or nil if the user
// has not completed today's puzzle.
func (s *GameService) TodayRecord(userID int64) (*models.GameRecord, error) {
	return s.gameRepo.GetByUserAndDate(s.db, userID, dateOf(time.Now()))
}

// Stats returns the user's accumulated totals and streaks
func (s *GameService) Stats(userID int64) (*models.UserGameStats, error) {
	stats, err := s.userRepo.GetGameStats(s.db, userID)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		return nil, ErrUserNotFound
	}
	return stats, nil
}

// Leaderboard returns the top users by total points
func (s *GameService) Leaderboard(limit int) ([]models.LeaderboardEntry, error) {
	return s.userRepo.GetLeaderboard(limit)
}

// RecentGames returns the user's most recent completions for display
func (s *GameService) RecentGames(userID int64, limit int) ([]*models.GameRecord, error) {
	return s.gameRepo.GetRecentByUser(userID, limit)
}

// MaxAttempts returns the configured grid height
func (s *GameService) MaxAttempts() int {
	return s.maxAttempts
}

// ComputeScore rewards earlier wins: the score drops by penalty per attempt
// used and never falls below min.
func ComputeScore(base, penalty, min, attemptIndex int) int {
	score := base - attemptIndex*penalty
	if score < min {
		return min
	}
	return score
}

// ApplyCompletion folds one winning completion into the user's stats under
// the streak law: a completion the day after the last one extends the
// streak, a completion on the same day is a no-op for the streak, and any
// gap resets it to one.
func ApplyCompletion(stats *models.UserGameStats, today, yesterday string, score int) {
	switch stats.LastCompletedDate {
	case yesterday:
		stats.CurrentStreak++
	case today:
		// Unreachable through the exactly-once completion check; keep the
		// streak untouched if it ever happens.
	default:
		stats.CurrentStreak = 1
	}

	if stats.CurrentStreak > stats.MaxStreak {
		stats.MaxStreak = stats.CurrentStreak
	}

	stats.TotalPoints += score
	stats.LastCompletedDate = today
}

// dateOf formats the UTC calendar date as YYYY-MM-DD. The schedule, the
// play_date column and the streak comparison all share this day boundary.
func dateOf(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
