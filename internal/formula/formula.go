// internal/formula/formula.go
//
// Tile-sequence grammar for the hidden daily formula.
// Responsibilities:
//   - Define the Formula type: 2–3 operators paired with 2–3 operands (1..999).
//   - Parse: strict validation of an 8-character tile sequence.
//   - String: canonical re-encoding (Parse and String are inverses on valid input).
//   - Evaluate: left-to-right arithmetic with no operator precedence.
//
// Grammar:
//   - Exactly 8 tiles. Tile 0 is the literal variable marker 'x'.
//   - Tiles 1..7 alternate: one operator (+, -, *), then a run of 1–3 digits.
//   - Digit runs are consumed greedily up to 3; a 4th consecutive digit is a
//     hard error. Greedy-max-3 plus the fixed length of 8 makes the encoding
//     uniquely decodable without delimiters.
package formula

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// TileCount is the fixed length of every tile sequence.
const TileCount = 8

// Op is one arithmetic operator tile.
type Op byte

const (
	OpAdd Op = '+'
	OpSub Op = '-'
	OpMul Op = '*'
)

// Ops lists the operator tiles in canonical draw order.
var Ops = []Op{OpAdd, OpSub, OpMul}

// ErrInvalidFormula reports a structural violation of the 8-tile grammar.
var ErrInvalidFormula = errors.New("invalid formula")

// Formula is the parsed operator/operand structure of a tile sequence.
// Immutable once constructed; rebuild via Parse rather than mutating.
type Formula struct {
	ops      []Op
	operands []int64
}

// Ops returns a copy of the operator sequence.
func (f Formula) Ops() []Op {
	return append([]Op(nil), f.ops...)
}

// Operands returns a copy of the operand sequence.
func (f Formula) Operands() []int64 {
	return append([]int64(nil), f.operands...)
}

// Terms returns the number of operator/operand pairs (2 or 3).
func (f Formula) Terms() int { return len(f.ops) }

// String re-encodes the formula as its canonical 8-character tile string.
func (f Formula) String() string {
	var b strings.Builder
	b.WriteByte('x')
	for i, op := range f.ops {
		b.WriteByte(byte(op))
		b.WriteString(strconv.FormatInt(f.operands[i], 10))
	}
	return b.String()
}

// Evaluate folds the formula over x strictly left to right.
// There is no operator precedence: x*2+3 means (x*2)+3.
func (f Formula) Evaluate(x int64) int64 {
	acc := x
	for i, op := range f.ops {
		n := f.operands[i]
		switch op {
		case OpAdd:
			acc += n
		case OpSub:
			acc -= n
		case OpMul:
			acc *= n
		}
	}
	return acc
}

// Parse validates tiles against the grammar and returns the structured formula.
// All failures wrap ErrInvalidFormula.
//
// Consumption starts at index 1: read one operator, then greedily consume up
// to 3 consecutive digits as the operand. A non-digit (or the end of the
// sequence) terminates the run early; a 4th consecutive digit is rejected
// outright, never truncated.
func Parse(tiles string) (Formula, error) {
	if len(tiles) != TileCount {
		return Formula{}, fmt.Errorf("%w: length %d, want %d", ErrInvalidFormula, len(tiles), TileCount)
	}
	if tiles[0] != 'x' {
		return Formula{}, fmt.Errorf("%w: tile 0 is %q, want 'x'", ErrInvalidFormula, tiles[0])
	}

	var (
		ops      []Op
		operands []int64
	)
	i := 1
	for i < len(tiles) {
		c := tiles[i]
		if c != '+' && c != '-' && c != '*' {
			return Formula{}, fmt.Errorf("%w: expected operator at tile %d, got %q", ErrInvalidFormula, i, c)
		}
		ops = append(ops, Op(c))
		i++

		start := i
		for i < len(tiles) && isDigit(tiles[i]) {
			i++
		}
		run := i - start
		if run == 0 {
			return Formula{}, fmt.Errorf("%w: operator at tile %d has no operand", ErrInvalidFormula, start-1)
		}
		if run > 3 {
			return Formula{}, fmt.Errorf("%w: %d-digit operand at tile %d", ErrInvalidFormula, run, start)
		}
		n, err := strconv.ParseInt(tiles[start:i], 10, 64)
		if err != nil {
			return Formula{}, fmt.Errorf("%w: operand %q: %v", ErrInvalidFormula, tiles[start:i], err)
		}
		operands = append(operands, n)
	}

	if len(ops) < 2 || len(ops) > 3 {
		return Formula{}, fmt.Errorf("%w: %d operators, want 2 or 3", ErrInvalidFormula, len(ops))
	}
	return Formula{ops: ops, operands: operands}, nil
}

// isDigit reports whether c is an ASCII decimal digit.
func isDigit(c byte) bool { return c >= '0' && c <= '9' }
