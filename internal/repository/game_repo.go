package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"boundle/internal/database"
	"boundle/internal/models"
)

// GameRepository handles database operations for daily game records.
// game_records carries a UNIQUE (user_id, play_date) index; Create surfaces
// a violation of it as ErrDuplicateRecord so the service layer can resolve
// concurrent completions.
type GameRepository struct {
	db *database.DB
}

// ErrDuplicateRecord is returned when a game record already exists for the
// user and date being inserted.
var ErrDuplicateRecord = fmt.Errorf("game record already exists for this user and date")

// NewGameRepository creates a new game repository
func NewGameRepository(db *database.DB) *GameRepository {
	return &GameRepository{db: db}
}

// Create inserts a write-once game record, optionally inside a transaction
func (r *GameRepository) Create(q database.DBTX, record *models.GameRecord) error {
	guessesJSON, err := json.Marshal(record.Guesses)
	if err != nil {
		return fmt.Errorf("failed to encode guesses: %w", err)
	}

	query := `
		INSERT INTO game_records (user_id, play_date, secret_word, guesses, score, outcome)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	id, err := q.ExecReturningID(query,
		record.UserID,
		record.PlayDate,
		record.SecretWord,
		string(guessesJSON),
		record.Score,
		record.Outcome,
	)
	if err != nil {
		if q.GetDialect().IsUniqueViolation(err) {
			return ErrDuplicateRecord
		}
		return fmt.Errorf("failed to create game record: %w", err)
	}

	record.ID = id
	return nil
}

// GetByUserAndDate retrieves the game record for a user on a calendar date,
// or nil if the user has not completed that day's puzzle.
func (r *GameRepository) GetByUserAndDate(q database.DBTX, userID int64, playDate string) (*models.GameRecord, error) {
	query := `
		SELECT id, user_id, play_date, secret_word, guesses, score, outcome, created_at
		FROM game_records
		WHERE user_id = ? AND play_date = ?
	`

	record := &models.GameRecord{}
	var guessesJSON string
	err := q.QueryRow(query, userID, playDate).Scan(
		&record.ID,
		&record.UserID,
		&record.PlayDate,
		&record.SecretWord,
		&guessesJSON,
		&record.Score,
		&record.Outcome,
		&record.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game record: %w", err)
	}

	if err := json.Unmarshal([]byte(guessesJSON), &record.Guesses); err != nil {
		return nil, fmt.Errorf("failed to decode guesses: %w", err)
	}
	return record, nil
}

// GetRecentByUser returns a user's most recent game records, newest first
func (r *GameRepository) GetRecentByUser(userID int64, limit int) ([]*models.GameRecord, error) {
	query := `
		SELECT id, user_id, play_date, secret_word, guesses, score, outcome, created_at
		FROM game_records
		WHERE user_id = ?
		ORDER BY play_date DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query game records: %w", err)
	}
	defer rows.Close()

	var records []*models.GameRecord
	for rows.Next() {
		record := &models.GameRecord{}
		var guessesJSON string
		err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.PlayDate,
			&record.SecretWord,
			&guessesJSON,
			&record.Score,
			&record.Outcome,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game record: %w", err)
		}
		if err := json.Unmarshal([]byte(guessesJSON), &record.Guesses); err != nil {
			return nil, fmt.Errorf("failed to decode guesses: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate game records: %w", err)
	}

	return records, nil
}
