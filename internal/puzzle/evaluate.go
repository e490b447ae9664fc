package puzzle

import (
	"errors"
	"strings"
	"unicode"
)

// WordLength is the fixed length of every secret word and guess
const WordLength = 5

var (
	ErrGuessLength   = errors.New("guess must be exactly 5 letters")
	ErrGuessAlphabet = errors.New("guess contains letters outside the alphabet")
)

// alphabet is the 29-letter Turkish alphabet in uppercase
const alphabet = "ABCÇDEFGĞHIİJKLMNOÖPRSŞTUÜVYZ"

var alphabetSet = func() map[rune]struct{} {
	set := make(map[rune]struct{}, len(alphabet))
	for _, r := range alphabet {
		set[r] = struct{}{}
	}
	return set
}()

// Normalize uppercases a word with Turkish case folding, so i maps to İ
// and ı maps to I rather than the ASCII rules.
func Normalize(word string) string {
	return strings.ToUpperSpecial(unicode.TurkishCase, strings.TrimSpace(word))
}

// ValidateWord checks that a word is exactly WordLength letters from the
// alphabet after normalization, and returns the normalized runes.
func ValidateWord(word string) ([]rune, error) {
	runes := []rune(Normalize(word))
	if len(runes) != WordLength {
		return nil, ErrGuessLength
	}
	for _, r := range runes {
		if _, ok := alphabetSet[r]; !ok {
			return nil, ErrGuessAlphabet
		}
	}
	return runes, nil
}

// Evaluate scores a guess against the secret word with exact Wordle
// semantics. Two passes: exact positional matches first, each consuming
// its secret letter, then present-but-misplaced matches against the
// remaining unconsumed letters. Repeated guess letters are never credited
// beyond the count left in the secret.
func Evaluate(secret, guess string) ([]LetterStatus, error) {
	secretRunes, err := ValidateWord(secret)
	if err != nil {
		return nil, err
	}
	guessRunes, err := ValidateWord(guess)
	if err != nil {
		return nil, err
	}

	result := make([]LetterStatus, WordLength)
	var consumed [WordLength]bool

	// Pass 1: exact matches
	for i := 0; i < WordLength; i++ {
		if guessRunes[i] == secretRunes[i] {
			result[i] = StatusCorrect
			consumed[i] = true
		}
	}

	// Pass 2: misplaced letters, one consumed occurrence each
	for i := 0; i < WordLength; i++ {
		if result[i] == StatusCorrect {
			continue
		}
		for j := 0; j < WordLength; j++ {
			if !consumed[j] && guessRunes[i] == secretRunes[j] {
				result[i] = StatusPresent
				consumed[j] = true
				break
			}
		}
	}

	return result, nil
}

// IsWinning reports whether every position is correct
func IsWinning(result []LetterStatus) bool {
	if len(result) != WordLength {
		return false
	}
	for _, s := range result {
		if s != StatusCorrect {
			return false
		}
	}
	return true
}
