// internal/game/engine.go
//
// Core game engine for a single daily round.
// Responsibilities:
//   - Create sessions with the deterministic secret for a day key.
//   - Generate the target output for a player-chosen x (resets the round).
//   - Normalize, validate, and apply guesses with a bounded attempt budget (5).
//   - Score guesses tile-by-tile using the two-pass multiset algorithm.
//   - Track state transitions: no_output → in_progress → won/exhausted.
//
// Notes:
//   - Secrets come from the formula package; scoring operates on raw tile
//     characters, not on the parsed arithmetic structure.
//   - Format and state errors never mutate the session; an invalid guess does
//     not consume an attempt.
//   - randomID() is a compact hex identifier for correlating server state.
package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"unicode"

	"github.com/mathle/go-server/internal/formula"
)

const defaultMaxAttempts = 5

var (
	// ErrNoOutput reports a guess submitted before any target was generated.
	ErrNoOutput = errors.New("no output generated yet")
	// ErrRoundOver reports a guess submitted after the round reached a terminal state.
	ErrRoundOver = errors.New("round is over")
	// ErrGuessFormat reports guess text that does not normalize to 8 tiles.
	ErrGuessFormat = errors.New("guess must be 8 tiles")
)

// NewSession constructs a session holding the secret for dateKey.
// The round starts in StateNoOutput: no target exists until the player
// supplies an x via GenerateOutput.
func NewSession(dateKey string) *Session {
	f, tiles := formula.GenerateDaily(dateKey)
	return &Session{
		ID:          randomID(),
		Date:        dateKey,
		Secret:      f,
		SecretTiles: tiles,
		Guesses:     []Guess{},
		MaxAttempts: defaultMaxAttempts,
		State:       StateNoOutput,
	}
}

// GenerateOutput sets the player's x and computes the target output.
// Valid from any state. The round is reset before the new target is exposed:
// prior guesses, the attempt counter, and any terminal flag are cleared first
// so stale feedback can never be observed alongside a fresh target.
func (s *Session) GenerateOutput(x int64) int64 {
	s.Guesses = []Guess{}
	s.Attempt = 0
	s.State = StateInProgress
	s.X = &x
	target := s.Secret.Evaluate(x)
	s.Target = &target
	return target
}

// SubmitGuess normalizes, validates, scores, and records a guess.
// Returns the per-tile marks, the resulting state, and an error for rejected
// input. Rejections leave the session untouched and cost no attempt:
//   - ErrNoOutput / ErrRoundOver when the round is not accepting guesses.
//   - ErrGuessFormat when the text does not normalize to 8 tiles.
//   - formula.ErrInvalidFormula when the tiles are not a valid formula.
//
// State transitions:
//   - Guess tiles equal to the secret tiles → StateWon.
//   - Otherwise the attempt index advances; hitting MaxAttempts → StateExhausted.
func (s *Session) SubmitGuess(text string) ([]Mark, State, error) {
	switch s.State {
	case StateNoOutput:
		return nil, s.State, ErrNoOutput
	case StateWon, StateExhausted:
		return nil, s.State, ErrRoundOver
	}

	tiles, err := NormalizeGuess(text)
	if err != nil {
		return nil, s.State, err
	}
	if _, err := formula.Parse(tiles); err != nil {
		return nil, s.State, err
	}

	marks := scoreTiles(s.SecretTiles, tiles)
	s.Guesses = append(s.Guesses, Guess{Tiles: tiles, Marks: marks})

	if tiles == s.SecretTiles {
		s.State = StateWon
	} else {
		s.Attempt++
		if s.Attempt >= s.MaxAttempts {
			s.State = StateExhausted
		}
	}
	return marks, s.State, nil
}

// Rollover swaps in the secret for dateKey and resets the round to
// StateNoOutput. No-op when the session already holds that day's secret.
// The reset is unconditional: it applies regardless of current state, and the
// old secret, target, and feedback are discarded wholesale.
func (s *Session) Rollover(dateKey string) bool {
	if s.Date == dateKey {
		return false
	}
	f, tiles := formula.GenerateDaily(dateKey)
	s.Date = dateKey
	s.Secret = f
	s.SecretTiles = tiles
	s.X = nil
	s.Target = nil
	s.Guesses = []Guess{}
	s.Attempt = 0
	s.State = StateNoOutput
	return true
}

// glyphs maps alternate multiplication/minus characters typed by players to
// the canonical tile set.
var glyphs = strings.NewReplacer(
	"×", "*", "✕", "*", "⋅", "*", "·", "*",
	"−", "-", "–", "-",
)

// NormalizeGuess converts raw player input into a candidate tile string:
// trim, map alternate glyphs, strip all whitespace, case-fold, and prepend
// the leading 'x' if the player omitted it. Returns ErrGuessFormat when the
// result is not exactly 8 tiles.
func NormalizeGuess(text string) (string, error) {
	t := glyphs.Replace(strings.TrimSpace(text))
	t = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, t)
	t = strings.ToLower(t)
	if !strings.HasPrefix(t, "x") {
		t = "x" + t
	}
	if len(t) != formula.TileCount {
		return "", ErrGuessFormat
	}
	return t, nil
}

// scoreTiles implements the standard two-pass multiset scoring algorithm
// over raw tile characters.
//
// Pass 1:
//   - Mark exact position matches as correct.
//   - Count remaining (non-correct) secret characters.
//
// Pass 2:
//   - For each non-correct guess tile: if there is remaining count for that
//     character, mark misplaced and decrement; otherwise mark absent.
//
// A character is never credited (correct+misplaced) more times than it
// occurs in the secret. Tiles are ASCII ('x', digits, + - *), so a fixed
// table replaces a map without changing semantics.
func scoreTiles(secret, guess string) []Mark {
	n := len(guess)
	res := make([]Mark, n)

	var counts [128]int

	for i := 0; i < n; i++ {
		if guess[i] == secret[i] {
			res[i] = MarkCorrect
		} else {
			counts[secret[i]]++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == MarkCorrect {
			continue
		}
		c := guess[i]
		if counts[c] > 0 {
			res[i] = MarkMisplaced
			counts[c]--
		} else {
			res[i] = MarkAbsent
		}
	}
	return res
}

// randomID returns a compact 16-hex-char identifier.
// Collisions are extremely unlikely given crypto/rand entropy.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
