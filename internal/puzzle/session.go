package puzzle

import "errors"

// SessionState is the lifecycle state of a client game session
type SessionState int

const (
	StatePlaying SessionState = iota
	StateWon
	StateLost
)

var (
	ErrSessionOver   = errors.New("game session is over")
	ErrRowFull       = errors.New("current row is full")
	ErrRowEmpty      = errors.New("current row is empty")
	ErrRowIncomplete = errors.New("current row is incomplete")
)

// Session is the per-open-game grid and keyboard state. It never evaluates
// guesses itself: submissions go to the server and the returned statuses are
// applied with Apply. Once won or lost the session is terminal.
type Session struct {
	maxRows  int
	grid     [][]rune
	statuses [][]LetterStatus
	row      int
	keyboard map[rune]LetterStatus
	state    SessionState
}

// NewSession creates a fresh session with maxRows guess rows
func NewSession(maxRows int) *Session {
	grid := make([][]rune, maxRows)
	statuses := make([][]LetterStatus, maxRows)
	for i := range grid {
		grid[i] = make([]rune, 0, WordLength)
		statuses[i] = nil
	}
	return &Session{
		maxRows:  maxRows,
		grid:     grid,
		statuses: statuses,
		keyboard: make(map[rune]LetterStatus),
	}
}

// State returns the session lifecycle state
func (s *Session) State() SessionState {
	return s.state
}

// Row returns the zero-based index of the active row
func (s *Session) Row() int {
	return s.row
}

// CurrentGuess returns the letters entered in the active row
func (s *Session) CurrentGuess() string {
	return string(s.grid[s.row])
}

// Input appends a letter to the active row. The letter is normalized with
// Turkish case folding and rejected if it is outside the alphabet.
func (s *Session) Input(letter rune) error {
	if s.state != StatePlaying {
		return ErrSessionOver
	}
	if len(s.grid[s.row]) >= WordLength {
		return ErrRowFull
	}

	runes := []rune(Normalize(string(letter)))
	if len(runes) != 1 {
		return ErrGuessAlphabet
	}
	if _, ok := alphabetSet[runes[0]]; !ok {
		return ErrGuessAlphabet
	}

	s.grid[s.row] = append(s.grid[s.row], runes[0])
	return nil
}

// Backspace removes the last letter from the active row
func (s *Session) Backspace() error {
	if s.state != StatePlaying {
		return ErrSessionOver
	}
	if len(s.grid[s.row]) == 0 {
		return ErrRowEmpty
	}
	s.grid[s.row] = s.grid[s.row][:len(s.grid[s.row])-1]
	return nil
}

// Submit returns the completed active row and its attempt index for
// submission to the server. The row must be full; the session itself is
// not advanced until Apply is called with the server's response, so a
// failed round trip leaves the row intact for retry.
func (s *Session) Submit() (guess string, attemptIndex int, err error) {
	if s.state != StatePlaying {
		return "", 0, ErrSessionOver
	}
	if len(s.grid[s.row]) != WordLength {
		return "", 0, ErrRowIncomplete
	}
	return string(s.grid[s.row]), s.row, nil
}

// Apply records the server's evaluation of the active row: fills in the row
// statuses, upgrades the keyboard map, and advances the session state.
// A win is terminal; a continue on the last row is a loss.
func (s *Session) Apply(result []LetterStatus, outcome Outcome) error {
	if s.state != StatePlaying {
		return ErrSessionOver
	}
	if len(result) != WordLength || len(s.grid[s.row]) != WordLength {
		return ErrRowIncomplete
	}

	s.statuses[s.row] = append([]LetterStatus(nil), result...)
	for i, letter := range s.grid[s.row] {
		if current, ok := s.keyboard[letter]; ok {
			s.keyboard[letter] = current.Upgrade(result[i])
		} else {
			s.keyboard[letter] = result[i]
		}
	}

	switch {
	case outcome == OutcomeWin:
		s.state = StateWon
	case outcome == OutcomeAlreadyCompleted:
		s.state = StateWon
	case s.row >= s.maxRows-1:
		s.state = StateLost
	default:
		s.row++
	}
	return nil
}

// KeyStatus returns the best status seen for a letter and whether the
// letter has been used at all.
func (s *Session) KeyStatus(letter rune) (LetterStatus, bool) {
	runes := []rune(Normalize(string(letter)))
	if len(runes) != 1 {
		return StatusAbsent, false
	}
	status, ok := s.keyboard[runes[0]]
	return status, ok
}

// RowStatuses returns the statuses applied to a completed row, or nil if
// the row has not been evaluated yet.
func (s *Session) RowStatuses(row int) []LetterStatus {
	if row < 0 || row >= s.maxRows || s.statuses[row] == nil {
		return nil
	}
	return append([]LetterStatus(nil), s.statuses[row]...)
}
