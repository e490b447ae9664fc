package puzzle

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// ErrEmptyWordList is returned when a schedule is constructed without words.
// The schedule fails closed: there is no fallback word.
var ErrEmptyWordList = errors.New("word list is empty")

// WordFile is the on-disk word list format. Words rotate through the daily
// schedule; Accepted extends the dictionary with valid guesses that never
// appear as secrets.
type WordFile struct {
	Words    []string `json:"words"`
	Accepted []string `json:"accepted,omitempty"`
}

// Schedule maps calendar days to secret words. Immutable after construction.
type Schedule struct {
	words      []string
	epoch      time.Time
	dictionary map[string]struct{}
}

// NewSchedule builds a schedule from a word list and an epoch date (day 0).
// Every word must be a valid 5-letter word from the alphabet; an empty list
// is a configuration error.
func NewSchedule(words []string, accepted []string, epoch time.Time) (*Schedule, error) {
	if len(words) == 0 {
		return nil, ErrEmptyWordList
	}

	normalized := make([]string, 0, len(words))
	dictionary := make(map[string]struct{}, len(words)+len(accepted))

	for _, w := range words {
		runes, err := ValidateWord(w)
		if err != nil {
			return nil, fmt.Errorf("invalid schedule word %q: %w", w, err)
		}
		word := string(runes)
		normalized = append(normalized, word)
		dictionary[word] = struct{}{}
	}

	for _, w := range accepted {
		runes, err := ValidateWord(w)
		if err != nil {
			return nil, fmt.Errorf("invalid accepted word %q: %w", w, err)
		}
		dictionary[string(runes)] = struct{}{}
	}

	return &Schedule{
		words:      normalized,
		epoch:      time.Date(epoch.Year(), epoch.Month(), epoch.Day(), 0, 0, 0, 0, time.UTC),
		dictionary: dictionary,
	}, nil
}

// LoadSchedule reads a WordFile from disk and builds a schedule from it
func LoadSchedule(path string, epoch time.Time) (*Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}

	var file WordFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse word list: %w", err)
	}

	return NewSchedule(file.Words, file.Accepted, epoch)
}

// DayIndex returns the number of whole calendar days between the epoch and t,
// wrapped to the word list length. Days before the epoch wrap backwards from
// the end of the list so the index is always valid.
func (s *Schedule) DayIndex(t time.Time) int {
	t = t.UTC()
	date := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	days := int(date.Sub(s.epoch).Hours() / 24)
	idx := days % len(s.words)
	if idx < 0 {
		idx += len(s.words)
	}
	return idx
}

// WordForDay returns the secret word for the calendar day containing t
func (s *Schedule) WordForDay(t time.Time) string {
	return s.words[s.DayIndex(t)]
}

// Contains reports whether a word is in the dictionary (schedule words plus
// accepted guesses), after normalization.
func (s *Schedule) Contains(word string) bool {
	runes, err := ValidateWord(word)
	if err != nil {
		return false
	}
	_, ok := s.dictionary[string(runes)]
	return ok
}

// Len returns the number of schedule words
func (s *Schedule) Len() int {
	return len(s.words)
}
