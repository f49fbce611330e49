// internal/game/types.go
//
// Core type definitions for the formula-guessing game engine.
// Defines:
//   - Mark: per-tile result of a guess (correct/misplaced/absent).
//   - State: coarse round lifecycle (no_output/in_progress/won/exhausted).
//   - Guess: one recorded guess with its feedback.
//   - Session: state for a single daily round.

package game

import "github.com/mathle/go-server/internal/formula"

// Mark represents the evaluation result for a single tile in a guess.
// Possible values:
//   - "correct":   tile character matches the secret at this position.
//   - "misplaced": character occurs elsewhere in the secret (multiset rule).
//   - "absent":    character has no remaining occurrence in the secret.
type Mark string

const (
	MarkCorrect   Mark = "correct"
	MarkMisplaced Mark = "misplaced"
	MarkAbsent    Mark = "absent"
)

// State is the round lifecycle position.
// no_output → in_progress → won | exhausted; a new day key resets to no_output.
type State string

const (
	StateNoOutput   State = "no_output"
	StateInProgress State = "in_progress"
	StateWon        State = "won"
	StateExhausted  State = "exhausted"
)

// Guess is a scored, recorded guess. Marks are never mutated after creation.
type Guess struct {
	Tiles string `json:"tiles"` // normalized 8-tile string
	Marks []Mark `json:"marks"` // one mark per tile
}

// Session holds the state of a single daily round.
type Session struct {
	ID          string          // Unique session identifier (random id).
	Date        string          // Day key (YYYY-MM-DD) the secret belongs to.
	Secret      formula.Formula // The day's hidden formula.
	SecretTiles string          // Canonical 8-tile encoding of Secret.
	X           *int64          // Player-chosen input; nil until output generated.
	Target      *int64          // Evaluate(X, Secret); nil until output generated.
	Guesses     []Guess         // Scored guesses, oldest first.
	Attempt     int             // 0-based attempt index, bounded by MaxAttempts.
	MaxAttempts int             // Guess budget (typically 5).
	State       State           // Current lifecycle state.
}
