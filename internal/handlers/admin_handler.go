package handlers

import (
	"net/http"
	"strconv"
	"time"

	"boundle/internal/puzzle"
)

// AdminHandler exposes operational views for admin users
type AdminHandler struct {
	schedule *puzzle.Schedule
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(schedule *puzzle.Schedule) *AdminHandler {
	return &AdminHandler{schedule: schedule}
}

type scheduleEntry struct {
	Date     string `json:"date"`
	DayIndex int    `json:"dayIndex"`
	Word     string `json:"word"`
}

// SchedulePreview lists the scheduled words for the coming days. Admin only:
// this reveals future secret words.
func (h *AdminHandler) SchedulePreview(w http.ResponseWriter, r *http.Request) {
	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 60 {
			respondWithError(w, http.StatusBadRequest, "days must be between 1 and 60", "bad_request", "", nil)
			return
		}
		days = parsed
	}

	now := time.Now().UTC()
	entries := make([]scheduleEntry, 0, days)
	for i := 0; i < days; i++ {
		day := now.AddDate(0, 0, i)
		entries = append(entries, scheduleEntry{
			Date:     day.Format("2006-01-02"),
			DayIndex: h.schedule.DayIndex(day),
			Word:     h.schedule.WordForDay(day),
		})
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"wordCount": h.schedule.Len(),
		"entries":   entries,
	})
}
