package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"boundle/internal/models"
	"boundle/internal/puzzle"
)

func TestRespondWithError(t *testing.T) {
	recorder := httptest.NewRecorder()
	respondWithError(recorder, http.StatusConflict, "already done", "already_completed", "", nil)

	if recorder.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", recorder.Code, http.StatusConflict)
	}
	if ct := recorder.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var body errorResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body.Error != "already done" || body.Code != "already_completed" {
		t.Errorf("body = %+v", body)
	}
}

func TestGetUserFromContext(t *testing.T) {
	if user := GetUserFromContext(context.Background()); user != nil {
		t.Errorf("expected nil user from empty context, got %+v", user)
	}

	want := &models.User{ID: 7, Name: "Ayşe"}
	ctx := context.WithValue(context.Background(), UserContextKey, want)
	if got := GetUserFromContext(ctx); got != want {
		t.Errorf("GetUserFromContext() = %+v, want %+v", got, want)
	}
}

func TestStatusStrings(t *testing.T) {
	result := []puzzle.LetterStatus{puzzle.StatusCorrect, puzzle.StatusPresent, puzzle.StatusAbsent}
	got := statusStrings(result)
	want := []string{"correct", "present", "absent"}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("statusStrings()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLeaderboardRejectsBadLimit(t *testing.T) {
	handler := NewGameHandler(nil)

	tests := []struct {
		name  string
		query string
	}{
		{name: "not a number", query: "limit=abc"},
		{name: "zero", query: "limit=0"},
		{name: "negative", query: "limit=-5"},
		{name: "too large", query: "limit=500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/api/game/leaderboard?"+tt.query, nil)
			recorder := httptest.NewRecorder()
			handler.Leaderboard(recorder, request)

			if recorder.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", recorder.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestSubmitGuessRequiresUser(t *testing.T) {
	handler := NewGameHandler(nil)
	request := httptest.NewRequest(http.MethodPost, "/api/game/guess", nil)
	recorder := httptest.NewRecorder()

	handler.SubmitGuess(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", recorder.Code, http.StatusUnauthorized)
	}
}
