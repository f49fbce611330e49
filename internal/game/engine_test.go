package game_test

import (
	"errors"
	"testing"

	"github.com/mathle/go-server/internal/formula"
	"github.com/mathle/go-server/internal/game"
)

// pinnedDate has the known secret x*161-74 (regression-pinned in the formula
// package); the engine tests lean on it for end-to-end assertions.
const (
	pinnedDate   = "2024-01-01"
	pinnedSecret = "x*161-74"
)

func newInProgress(t *testing.T) *game.Session {
	t.Helper()
	s := game.NewSession(pinnedDate)
	if s.SecretTiles != pinnedSecret {
		t.Fatalf("secret for %s = %q, want %q", pinnedDate, s.SecretTiles, pinnedSecret)
	}
	s.GenerateOutput(5)
	return s
}

func TestNewSessionInitialState(t *testing.T) {
	s := game.NewSession(pinnedDate)
	if s.State != game.StateNoOutput {
		t.Errorf("initial state = %q, want %q", s.State, game.StateNoOutput)
	}
	if s.X != nil || s.Target != nil {
		t.Error("x/target should be unset before GenerateOutput")
	}
	if s.MaxAttempts != 5 {
		t.Errorf("MaxAttempts = %d, want 5", s.MaxAttempts)
	}
}

func TestGenerateOutputComputesTarget(t *testing.T) {
	s := newInProgress(t)
	if s.Target == nil || *s.Target != 731 { // (5*161)-74
		t.Fatalf("target = %v, want 731", s.Target)
	}
	if s.State != game.StateInProgress {
		t.Errorf("state = %q, want %q", s.State, game.StateInProgress)
	}
}

func TestGenerateOutputResetsRound(t *testing.T) {
	s := newInProgress(t)
	if _, _, err := s.SubmitGuess("x+111+11"); err != nil {
		t.Fatal(err)
	}
	s.GenerateOutput(10)
	if len(s.Guesses) != 0 || s.Attempt != 0 {
		t.Errorf("round not reset: %d guesses, attempt %d", len(s.Guesses), s.Attempt)
	}
	if *s.Target != 1536 { // (10*161)-74
		t.Errorf("target = %d, want 1536", *s.Target)
	}
}

func TestGenerateOutputRevivesTerminalRound(t *testing.T) {
	s := newInProgress(t)
	if _, _, err := s.SubmitGuess(pinnedSecret); err != nil {
		t.Fatal(err)
	}
	if s.State != game.StateWon {
		t.Fatalf("state = %q, want won", s.State)
	}
	s.GenerateOutput(2)
	if s.State != game.StateInProgress || len(s.Guesses) != 0 {
		t.Errorf("terminal round not revived: state %q, %d guesses", s.State, len(s.Guesses))
	}
}

func TestSubmitGuessBeforeOutput(t *testing.T) {
	s := game.NewSession(pinnedDate)
	_, state, err := s.SubmitGuess(pinnedSecret)
	if !errors.Is(err, game.ErrNoOutput) {
		t.Errorf("err = %v, want ErrNoOutput", err)
	}
	if state != game.StateNoOutput || len(s.Guesses) != 0 {
		t.Error("rejected guess must not change state")
	}
}

func TestSubmitGuessWin(t *testing.T) {
	s := newInProgress(t)
	marks, state, err := s.SubmitGuess(pinnedSecret)
	if err != nil {
		t.Fatal(err)
	}
	if state != game.StateWon {
		t.Errorf("state = %q, want won", state)
	}
	for i, m := range marks {
		if m != game.MarkCorrect {
			t.Errorf("mark %d = %q, want correct", i, m)
		}
	}
	if len(s.Guesses) != 1 {
		t.Errorf("guesses recorded = %d, want 1", len(s.Guesses))
	}
	// Winning does not advance the attempt index past the spent guesses.
	if s.Attempt != 0 {
		t.Errorf("attempt = %d, want 0 on first-guess win", s.Attempt)
	}
}

func TestSubmitGuessExhaustsAfterFive(t *testing.T) {
	s := newInProgress(t)
	wrong := "x+111+11"
	for i := 0; i < 5; i++ {
		_, state, err := s.SubmitGuess(wrong)
		if err != nil {
			t.Fatalf("guess %d: %v", i+1, err)
		}
		want := game.StateInProgress
		if i == 4 {
			want = game.StateExhausted
		}
		if state != want {
			t.Fatalf("after guess %d: state = %q, want %q", i+1, state, want)
		}
	}
	if _, _, err := s.SubmitGuess(wrong); !errors.Is(err, game.ErrRoundOver) {
		t.Errorf("post-terminal guess err = %v, want ErrRoundOver", err)
	}
	if len(s.Guesses) != 5 {
		t.Errorf("guesses recorded = %d, want 5", len(s.Guesses))
	}
}

func TestSubmitGuessRejectionsCostNoAttempt(t *testing.T) {
	s := newInProgress(t)
	tests := []struct {
		name string
		text string
		want error
	}{
		{"too short", "x+1+2", game.ErrGuessFormat},
		{"too long", "x+123-456", game.ErrGuessFormat},
		{"empty", "", game.ErrGuessFormat},
		{"bad grammar", "xx123-45", formula.ErrInvalidFormula},
		{"four digit run", "x+1234-5", formula.ErrInvalidFormula},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, state, err := s.SubmitGuess(tc.text)
			if !errors.Is(err, tc.want) {
				t.Errorf("SubmitGuess(%q) err = %v, want %v", tc.text, err, tc.want)
			}
			if state != game.StateInProgress {
				t.Errorf("state = %q, want in_progress", state)
			}
		})
	}
	if s.Attempt != 0 || len(s.Guesses) != 0 {
		t.Errorf("rejected guesses consumed state: attempt %d, %d guesses", s.Attempt, len(s.Guesses))
	}
}

func TestRollover(t *testing.T) {
	s := newInProgress(t)
	if _, _, err := s.SubmitGuess("x+111+11"); err != nil {
		t.Fatal(err)
	}
	if s.Rollover(pinnedDate) {
		t.Error("Rollover on the same day key should be a no-op")
	}
	if !s.Rollover("2024-01-02") {
		t.Fatal("Rollover on a new day key should reset")
	}
	if s.State != game.StateNoOutput || s.X != nil || s.Target != nil {
		t.Error("rollover did not clear output state")
	}
	if len(s.Guesses) != 0 || s.Attempt != 0 {
		t.Error("rollover did not clear guesses")
	}
	if s.SecretTiles != "x*79+328" { // pinned secret for 2024-01-02
		t.Errorf("rollover secret = %q, want x*79+328", s.SecretTiles)
	}
}

func TestNormalizeGuess(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"already canonical", "x*161-74", "x*161-74", false},
		{"uppercase", "X*161-74", "x*161-74", false},
		{"missing leading x", "*161-74", "x*161-74", false},
		{"surrounding space", "  x*161-74\n", "x*161-74", false},
		{"internal space", "x * 161 - 74", "x*161-74", false},
		{"multiplication glyph", "x×161−74", "x*161-74", false},
		{"dot glyph", "x⋅161-74", "x*161-74", false},
		{"en dash", "x*161–74", "x*161-74", false},
		{"too short", "x+1", "", true},
		{"too long after prepend", "+123-456", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := game.NormalizeGuess(tc.in)
			if tc.wantErr {
				if !errors.Is(err, game.ErrGuessFormat) {
					t.Errorf("NormalizeGuess(%q) err = %v, want ErrGuessFormat", tc.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeGuess(%q): %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("NormalizeGuess(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestScoreTilesSelf(t *testing.T) {
	s := newInProgress(t)
	marks, _, err := s.SubmitGuess(s.SecretTiles)
	if err != nil {
		t.Fatal(err)
	}
	for i, m := range marks {
		if m != game.MarkCorrect {
			t.Errorf("self-guess mark %d = %q", i, m)
		}
	}
}

func TestScoreTilesMultisetBound(t *testing.T) {
	// Secret x+11-223 vs guess x+22-113: each of '1' and '2' occurs twice in
	// the secret; correct+misplaced credit per character must not exceed that.
	s := game.NewSession(pinnedDate)
	f, err := formula.Parse("x+11-223")
	if err != nil {
		t.Fatal(err)
	}
	s.Secret = f
	s.SecretTiles = "x+11-223"
	s.GenerateOutput(1)

	const guess = "x+22-113"
	marks, _, err := s.SubmitGuess(guess)
	if err != nil {
		t.Fatal(err)
	}
	want := []game.Mark{
		game.MarkCorrect, game.MarkCorrect,
		game.MarkMisplaced, game.MarkMisplaced,
		game.MarkCorrect,
		game.MarkMisplaced, game.MarkMisplaced,
		game.MarkCorrect,
	}
	if len(marks) != 8 {
		t.Fatalf("marks length = %d", len(marks))
	}
	credit := map[byte]int{}
	for i, m := range marks {
		if m != want[i] {
			t.Errorf("mark %d = %q, want %q", i, marks[i], want[i])
		}
		if m == game.MarkCorrect || m == game.MarkMisplaced {
			credit[guess[i]]++
		}
	}
	if credit['1'] > 2 || credit['2'] > 2 {
		t.Errorf("credit exceeds occurrence counts: %v", credit)
	}
}

func TestScoreTilesAbsent(t *testing.T) {
	s := game.NewSession(pinnedDate)
	f, err := formula.Parse("x+11+111")
	if err != nil {
		t.Fatal(err)
	}
	s.Secret = f
	s.SecretTiles = "x+11+111"
	s.GenerateOutput(1)

	marks, _, err := s.SubmitGuess("x+99+999")
	if err != nil {
		t.Fatal(err)
	}
	// 9s never occur in the secret.
	for i, m := range marks {
		if guess := "x+99+999"; guess[i] == '9' && m != game.MarkAbsent {
			t.Errorf("mark %d = %q, want absent", i, m)
		}
	}
}
