package puzzle

// LetterStatus is the evaluation result for a single letter position.
// The values form a lattice: Absent < Present < Correct. Keyboard state
// merges with Upgrade so a key never downgrades.
type LetterStatus int

const (
	StatusAbsent LetterStatus = iota
	StatusPresent
	StatusCorrect
)

// String returns the wire representation used in API responses
func (s LetterStatus) String() string {
	switch s {
	case StatusCorrect:
		return "correct"
	case StatusPresent:
		return "present"
	default:
		return "absent"
	}
}

// Upgrade returns the stronger of the two statuses
func (s LetterStatus) Upgrade(other LetterStatus) LetterStatus {
	if other > s {
		return other
	}
	return s
}

// Outcome is the result of a guess submission
type Outcome int

const (
	// OutcomeContinue means the guess did not win and the game goes on
	OutcomeContinue Outcome = iota
	// OutcomeWin means the guess matched the secret word
	OutcomeWin
	// OutcomeAlreadyCompleted means the user already finished today's puzzle
	OutcomeAlreadyCompleted
)

// String returns the wire representation used in API responses
func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeAlreadyCompleted:
		return "already_completed"
	default:
		return "continue"
	}
}
