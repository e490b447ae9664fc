package repository

import (
	"database/sql"
	"fmt"
	"time"

	"boundle/internal/database"
	"boundle/internal/models"
)

// UserRepository handles database operations for users, sessions and
// password reset tokens
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, password_hash, name, oauth_provider, oauth_subject, is_admin,
	total_points, current_streak, max_streak, last_completed_date, created_at, updated_at`

// scanUser scans a user row including the embedded game stats
func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var lastCompleted sql.NullString

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.OAuthProvider,
		&user.OAuthSubject,
		&user.IsAdmin,
		&user.GameStats.TotalPoints,
		&user.GameStats.CurrentStreak,
		&user.GameStats.MaxStreak,
		&lastCompleted,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if lastCompleted.Valid {
		user.GameStats.LastCompletedDate = lastCompleted.String
	}
	return user, nil
}

// CreateUser inserts a new user into the database.
// The first registered user becomes an admin.
func (r *UserRepository) CreateUser(email, passwordHash, name string) (*models.User, error) {
	var userCount int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&userCount); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	isAdmin := userCount == 0

	query := `
		INSERT INTO users (email, password_hash, name, is_admin)
		VALUES (?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, email, passwordHash, name, isAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &models.User{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		IsAdmin:      isAdmin,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}, nil
}

// GetUserByEmail retrieves a user by email address
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	user, err := scanUser(r.db.QueryRow(query, email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	user, err := scanUser(r.db.QueryRow(query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// GetUserByOAuth retrieves a user by OAuth provider and subject
func (r *UserRepository) GetUserByOAuth(provider, subject string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE oauth_provider = ? AND oauth_subject = ?`
	user, err := scanUser(r.db.QueryRow(query, provider, subject))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by oauth: %w", err)
	}
	return user, nil
}

// LinkOAuthProvider attaches an OAuth identity to an existing user
func (r *UserRepository) LinkOAuthProvider(userID int64, provider, subject string) error {
	query := `UPDATE users SET oauth_provider = ?, oauth_subject = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	if _, err := r.db.Exec(query, provider, subject, userID); err != nil {
		return fmt.Errorf("failed to link oauth provider: %w", err)
	}
	return nil
}

// UpdatePassword replaces a user's password hash
func (r *UserRepository) UpdatePassword(userID int64, passwordHash string) error {
	query := `UPDATE users SET password_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	if _, err := r.db.Exec(query, passwordHash, userID); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// GetGameStats reads a user's game stats, optionally inside a transaction
func (r *UserRepository) GetGameStats(q database.DBTX, userID int64) (*models.UserGameStats, error) {
	query := `SELECT total_points, current_streak, max_streak, last_completed_date FROM users WHERE id = ?`

	stats := &models.UserGameStats{}
	var lastCompleted sql.NullString
	err := q.QueryRow(query, userID).Scan(
		&stats.TotalPoints,
		&stats.CurrentStreak,
		&stats.MaxStreak,
		&lastCompleted,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game stats: %w", err)
	}

	if lastCompleted.Valid {
		stats.LastCompletedDate = lastCompleted.String
	}
	return stats, nil
}

// UpdateGameStats writes a user's game stats, optionally inside a transaction
func (r *UserRepository) UpdateGameStats(q database.DBTX, userID int64, stats *models.UserGameStats) error {
	query := `
		UPDATE users
		SET total_points = ?, current_streak = ?, max_streak = ?,
		    last_completed_date = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := q.Exec(query,
		stats.TotalPoints,
		stats.CurrentStreak,
		stats.MaxStreak,
		stats.LastCompletedDate,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update game stats: %w", err)
	}
	return nil
}

// GetLeaderboard returns the top users ranked by total points descending.
// Ties break by max streak, then by user ID for a stable order.
func (r *UserRepository) GetLeaderboard(limit int) ([]models.LeaderboardEntry, error) {
	query := `
		SELECT id, name, total_points, current_streak, max_streak
		FROM users
		ORDER BY total_points DESC, max_streak DESC, id ASC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	rank := 0
	for rows.Next() {
		rank++
		entry := models.LeaderboardEntry{Rank: rank}
		if err := rows.Scan(&entry.UserID, &entry.Name, &entry.TotalPoints, &entry.CurrentStreak, &entry.MaxStreak); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leaderboard: %w", err)
	}

	return entries, nil
}

// CreateSession inserts a new session
func (r *UserRepository) CreateSession(sessionID string, userID int64, expiresAt time.Time) (*models.Session, error) {
	query := `INSERT INTO sessions (id, user_id, expires_at) VALUES (?, ?, ?)`
	if _, err := r.db.Exec(query, sessionID, userID, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &models.Session{
		ID:        sessionID,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}, nil
}

// GetSession retrieves a session by ID
func (r *UserRepository) GetSession(sessionID string) (*models.Session, error) {
	query := `SELECT id, user_id, expires_at, created_at FROM sessions WHERE id = ?`

	session := &models.Session{}
	err := r.db.QueryRow(query, sessionID).Scan(&session.ID, &session.UserID, &session.ExpiresAt, &session.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// DeleteSession removes a session
func (r *UserRepository) DeleteSession(sessionID string) error {
	if _, err := r.db.Exec("DELETE FROM sessions WHERE id = ?", sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes all expired sessions
func (r *UserRepository) DeleteExpiredSessions() error {
	if _, err := r.db.Exec("DELETE FROM sessions WHERE expires_at < ?", time.Now()); err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return nil
}

// CreatePasswordResetToken inserts a password reset token
func (r *UserRepository) CreatePasswordResetToken(token string, userID int64, expiresAt time.Time) error {
	query := `INSERT INTO password_reset_tokens (token, user_id, expires_at) VALUES (?, ?, ?)`
	if _, err := r.db.Exec(query, token, userID, expiresAt); err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}
	return nil
}

// GetPasswordResetToken retrieves a reset token
func (r *UserRepository) GetPasswordResetToken(token string) (*models.PasswordResetToken, error) {
	query := `SELECT token, user_id, expires_at, created_at, used FROM password_reset_tokens WHERE token = ?`

	resetToken := &models.PasswordResetToken{}
	err := r.db.QueryRow(query, token).Scan(
		&resetToken.Token,
		&resetToken.UserID,
		&resetToken.ExpiresAt,
		&resetToken.CreatedAt,
		&resetToken.Used,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reset token: %w", err)
	}
	return resetToken, nil
}

// MarkPasswordResetTokenAsUsed marks a reset token as consumed
func (r *UserRepository) MarkPasswordResetTokenAsUsed(token string) error {
	if _, err := r.db.Exec("UPDATE password_reset_tokens SET used = ? WHERE token = ?", true, token); err != nil {
		return fmt.Errorf("failed to mark reset token used: %w", err)
	}
	return nil
}

// DeleteUserPasswordResetTokens removes all reset tokens for a user
func (r *UserRepository) DeleteUserPasswordResetTokens(userID int64) error {
	if _, err := r.db.Exec("DELETE FROM password_reset_tokens WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("failed to delete reset tokens: %w", err)
	}
	return nil
}

// DeleteExpiredPasswordResetTokens removes expired reset tokens
func (r *UserRepository) DeleteExpiredPasswordResetTokens() error {
	if _, err := r.db.Exec("DELETE FROM password_reset_tokens WHERE expires_at < ?", time.Now()); err != nil {
		return fmt.Errorf("failed to delete expired reset tokens: %w", err)
	}
	return nil
}
