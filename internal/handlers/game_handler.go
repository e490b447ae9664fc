package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"boundle/internal/models"
	"boundle/internal/puzzle"
	"boundle/internal/service"
)

// GameHandler handles the daily puzzle HTTP requests
type GameHandler struct {
	gameService *service.GameService
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameService *service.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

type guessRequest struct {
	Guess        string   `json:"guess"`
	AttemptIndex int      `json:"attemptIndex"`
	History      []string `json:"history"`
}

type guessResponse struct {
	Result  []string `json:"result"`
	Outcome string   `json:"outcome"`
	Score   int      `json:"score,omitempty"`
}

func statusStrings(result []puzzle.LetterStatus) []string {
	out := make([]string, len(result))
	for i, status := range result {
		out[i] = status.String()
	}
	return out
}

// SubmitGuess evaluates one guess against today's word
func (h *GameHandler) SubmitGuess(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "unauthenticated", "", nil)
		return
	}

	var req guessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "bad_request", "", err)
		return
	}

	resp, err := h.gameService.SubmitGuess(user.ID, req.Guess, req.AttemptIndex, req.History)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyCompletedToday):
			respondWithJSON(w, http.StatusConflict, guessResponse{
				Result:  statusStrings(resp.Result),
				Outcome: resp.Outcome.String(),
			})
		case errors.Is(err, puzzle.ErrGuessLength):
			respondWithError(w, http.StatusBadRequest, err.Error(), "invalid_guess_length", "", nil)
		case errors.Is(err, puzzle.ErrGuessAlphabet):
			respondWithError(w, http.StatusBadRequest, err.Error(), "invalid_guess_alphabet", "", nil)
		case errors.Is(err, service.ErrUnknownWord):
			respondWithError(w, http.StatusUnprocessableEntity, err.Error(), "unknown_word", "", nil)
		case errors.Is(err, service.ErrAttemptMismatch):
			respondWithError(w, http.StatusConflict, err.Error(), "attempt_mismatch", "", nil)
		case errors.Is(err, service.ErrNoAttemptsLeft):
			respondWithError(w, http.StatusConflict, err.Error(), "no_attempts_left", "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "internal", "Guess submission failed", err)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, guessResponse{
		Result:  statusStrings(resp.Result),
		Outcome: resp.Outcome.String(),
		Score:   resp.Score,
	})
}

type gameStateResponse struct {
	Date        string             `json:"date"`
	WordLength  int                `json:"wordLength"`
	MaxAttempts int                `json:"maxAttempts"`
	Completed   bool               `json:"completed"`
	Record      *gameRecordPayload `json:"record,omitempty"`
}

type gameRecordPayload struct {
	PlayDate string   `json:"playDate"`
	Guesses  []string `json:"guesses"`
	Score    int      `json:"score"`
	Outcome  string   `json:"outcome"`
}

func recordPayload(record *models.GameRecord) *gameRecordPayload {
	if record == nil {
		return nil
	}
	return &gameRecordPayload{
		PlayDate: record.PlayDate,
		Guesses:  record.Guesses,
		Score:    record.Score,
		Outcome:  record.Outcome,
	}
}

// State returns today's puzzle parameters and whether the user already won.
// Secret words never leave the server.
func (h *GameHandler) State(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "unauthenticated", "", nil)
		return
	}

	record, err := h.gameService.TodayRecord(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "internal", "Failed to load game state", err)
		return
	}

	respondWithJSON(w, http.StatusOK, gameStateResponse{
		Date:        time.Now().UTC().Format("2006-01-02"),
		WordLength:  puzzle.WordLength,
		MaxAttempts: h.gameService.MaxAttempts(),
		Completed:   record != nil,
		Record:      recordPayload(record),
	})
}

type statsResponse struct {
	TotalPoints       int                  `json:"totalPoints"`
	CurrentStreak     int                  `json:"currentStreak"`
	MaxStreak         int                  `json:"maxStreak"`
	LastCompletedDate string               `json:"lastCompletedDate,omitempty"`
	RecentGames       []*gameRecordPayload `json:"recentGames"`
}

// Stats returns the user's score and streak totals plus recent games
func (h *GameHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "unauthenticated", "", nil)
		return
	}

	stats, err := h.gameService.Stats(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "internal", "Failed to load stats", err)
		return
	}

	recent, err := h.gameService.RecentGames(user.ID, 10)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "internal", "Failed to load recent games", err)
		return
	}

	recentPayload := make([]*gameRecordPayload, 0, len(recent))
	for _, record := range recent {
		recentPayload = append(recentPayload, recordPayload(record))
	}

	respondWithJSON(w, http.StatusOK, statsResponse{
		TotalPoints:       stats.TotalPoints,
		CurrentStreak:     stats.CurrentStreak,
		MaxStreak:         stats.MaxStreak,
		LastCompletedDate: stats.LastCompletedDate,
		RecentGames:       recentPayload,
	})
}

// Leaderboard returns the top players by total points. The projection is a
// read-only view over the users table; ties are broken by max streak.
func (h *GameHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			respondWithError(w, http.StatusBadRequest, "limit must be between 1 and 100", "bad_request", "", nil)
			return
		}
		limit = parsed
	}

	entries, err := h.gameService.Leaderboard(limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "internal", "Failed to load leaderboard", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}
