package puzzle

import (
	"errors"
	"testing"
)

func typeWord(t *testing.T, s *Session, word string) {
	t.Helper()
	for _, r := range word {
		if err := s.Input(r); err != nil {
			t.Fatalf("Input(%c) error: %v", r, err)
		}
	}
}

func TestSessionInputBounds(t *testing.T) {
	s := NewSession(6)

	typeWord(t, s, "KALEM")
	if err := s.Input('A'); !errors.Is(err, ErrRowFull) {
		t.Errorf("Input() on full row error = %v, want %v", err, ErrRowFull)
	}

	if err := s.Backspace(); err != nil {
		t.Fatalf("Backspace() error: %v", err)
	}
	if got := s.CurrentGuess(); got != "KALE" {
		t.Errorf("CurrentGuess() = %v, want KALE", got)
	}

	for i := 0; i < 4; i++ {
		if err := s.Backspace(); err != nil {
			t.Fatalf("Backspace() error: %v", err)
		}
	}
	if err := s.Backspace(); !errors.Is(err, ErrRowEmpty) {
		t.Errorf("Backspace() on empty row error = %v, want %v", err, ErrRowEmpty)
	}
}

func TestSessionInputNormalizesAndValidates(t *testing.T) {
	s := NewSession(6)

	if err := s.Input('i'); err != nil {
		t.Fatalf("Input('i') error: %v", err)
	}
	if got := s.CurrentGuess(); got != "İ" {
		t.Errorf("CurrentGuess() = %v, want İ (dotted i folding)", got)
	}

	if err := s.Input('w'); !errors.Is(err, ErrGuessAlphabet) {
		t.Errorf("Input('w') error = %v, want %v", err, ErrGuessAlphabet)
	}
}

func TestSessionSubmitRequiresFullRow(t *testing.T) {
	s := NewSession(6)
	typeWord(t, s, "KAL")

	if _, _, err := s.Submit(); !errors.Is(err, ErrRowIncomplete) {
		t.Errorf("Submit() error = %v, want %v", err, ErrRowIncomplete)
	}

	// Failed submit leaves the row untouched for retry
	if got := s.CurrentGuess(); got != "KAL" {
		t.Errorf("CurrentGuess() after rejected submit = %v, want KAL", got)
	}
}

func TestSessionWinIsTerminal(t *testing.T) {
	s := NewSession(6)
	typeWord(t, s, "KALEM")

	guess, attempt, err := s.Submit()
	if err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	if guess != "KALEM" || attempt != 0 {
		t.Errorf("Submit() = (%v, %v), want (KALEM, 0)", guess, attempt)
	}

	allCorrect := []LetterStatus{StatusCorrect, StatusCorrect, StatusCorrect, StatusCorrect, StatusCorrect}
	if err := s.Apply(allCorrect, OutcomeWin); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}

	if s.State() != StateWon {
		t.Errorf("State() = %v, want StateWon", s.State())
	}
	if err := s.Input('A'); !errors.Is(err, ErrSessionOver) {
		t.Errorf("Input() after win error = %v, want %v", err, ErrSessionOver)
	}
	if _, _, err := s.Submit(); !errors.Is(err, ErrSessionOver) {
		t.Errorf("Submit() after win error = %v, want %v", err, ErrSessionOver)
	}
}

func TestSessionLossOnLastRow(t *testing.T) {
	s := NewSession(6)
	miss := []LetterStatus{StatusAbsent, StatusAbsent, StatusAbsent, StatusAbsent, StatusAbsent}

	for row := 0; row < 6; row++ {
		if s.State() != StatePlaying {
			t.Fatalf("row %d: state = %v, want StatePlaying", row, s.State())
		}
		if got := s.Row(); got != row {
			t.Fatalf("Row() = %d, want %d", got, row)
		}
		typeWord(t, s, "SUCUK")
		if _, _, err := s.Submit(); err != nil {
			t.Fatalf("Submit() row %d error: %v", row, err)
		}
		if err := s.Apply(miss, OutcomeContinue); err != nil {
			t.Fatalf("Apply() row %d error: %v", row, err)
		}
	}

	if s.State() != StateLost {
		t.Errorf("State() after six misses = %v, want StateLost", s.State())
	}
}

func TestSessionAlreadyCompletedForcesTerminalState(t *testing.T) {
	s := NewSession(6)
	typeWord(t, s, "KALEM")
	if _, _, err := s.Submit(); err != nil {
		t.Fatalf("Submit() error: %v", err)
	}

	result := []LetterStatus{StatusCorrect, StatusCorrect, StatusCorrect, StatusCorrect, StatusCorrect}
	if err := s.Apply(result, OutcomeAlreadyCompleted); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if s.State() != StateWon {
		t.Errorf("State() = %v, want StateWon (recorded outcome is a win)", s.State())
	}
}

func TestSessionKeyboardUpgradesMonotonically(t *testing.T) {
	s := NewSession(6)

	// Row 0: K scored absent
	typeWord(t, s, "KKKKK")
	if _, _, err := s.Submit(); err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	miss := []LetterStatus{StatusAbsent, StatusAbsent, StatusAbsent, StatusAbsent, StatusAbsent}
	if err := s.Apply(miss, OutcomeContinue); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}

	if status, ok := s.KeyStatus('K'); !ok || status != StatusAbsent {
		t.Errorf("KeyStatus(K) = (%v, %v), want (StatusAbsent, true)", status, ok)
	}

	// Row 1: K upgrades to present, then correct on row 2; never downgrades
	typeWord(t, s, "AKLEM")
	if _, _, err := s.Submit(); err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	row1 := []LetterStatus{StatusAbsent, StatusPresent, StatusAbsent, StatusAbsent, StatusAbsent}
	if err := s.Apply(row1, OutcomeContinue); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if status, _ := s.KeyStatus('K'); status != StatusPresent {
		t.Errorf("KeyStatus(K) = %v, want StatusPresent", status)
	}

	typeWord(t, s, "KALEM")
	if _, _, err := s.Submit(); err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	row2 := []LetterStatus{StatusCorrect, StatusAbsent, StatusAbsent, StatusAbsent, StatusAbsent}
	if err := s.Apply(row2, OutcomeContinue); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if status, _ := s.KeyStatus('K'); status != StatusCorrect {
		t.Errorf("KeyStatus(K) = %v, want StatusCorrect", status)
	}

	// Row 3: K scored absent again must not downgrade the keyboard
	typeWord(t, s, "KKKKK")
	if _, _, err := s.Submit(); err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	if err := s.Apply(miss, OutcomeContinue); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if status, _ := s.KeyStatus('K'); status != StatusCorrect {
		t.Errorf("KeyStatus(K) after absent rescoring = %v, want StatusCorrect", status)
	}
}

func TestLetterStatusUpgrade(t *testing.T) {
	tests := []struct {
		name     string
		current  LetterStatus
		incoming LetterStatus
		expected LetterStatus
	}{
		{name: "absent to present", current: StatusAbsent, incoming: StatusPresent, expected: StatusPresent},
		{name: "present to correct", current: StatusPresent, incoming: StatusCorrect, expected: StatusCorrect},
		{name: "correct never downgrades to present", current: StatusCorrect, incoming: StatusPresent, expected: StatusCorrect},
		{name: "correct never downgrades to absent", current: StatusCorrect, incoming: StatusAbsent, expected: StatusCorrect},
		{name: "present never downgrades to absent", current: StatusPresent, incoming: StatusAbsent, expected: StatusPresent},
		{name: "same status unchanged", current: StatusPresent, incoming: StatusPresent, expected: StatusPresent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.current.Upgrade(tt.incoming); got != tt.expected {
				t.Errorf("Upgrade() = %v, want %v", got, tt.expected)
			}
		})
	}
}
