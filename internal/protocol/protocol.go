// Package protocol implements the line-oriented stdin/stdout wrapper: a
// turn header plus move-history grammar for the one-shot mode, and a
// keep-alive loop that exchanges single move lines once the initial
// turn has been answered.
package protocol

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nsavage/amazons-engine/pkg/board"
)

// KeepAliveMarker is the fixed token written on its own line after a
// move when the engine is running in keep-alive mode.
const KeepAliveMarker = "READY"

// MalformedInputError reports that input did not conform to the
// move-line or turn-header grammar.
type MalformedInputError struct {
	Line string
	Err  error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("protocol: malformed input line %q: %v", e.Line, e.Err)
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

// ParseMoveLine parses "r_from c_from r_to c_to r_arrow c_arrow" into a
// Move. A line of six -1s decodes to board.NoMove.
func ParseMoveLine(line string) (board.Move, error) {
	fields := strings.Fields(line)
	if len(fields) != 6 {
		return board.Move{}, &MalformedInputError{Line: line, Err: fmt.Errorf("expected 6 integers, got %d", len(fields))}
	}

	var v [6]int
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return board.Move{}, &MalformedInputError{Line: line, Err: err}
		}
		v[i] = n
	}

	if v[0] == -1 && v[1] == -1 && v[2] == -1 && v[3] == -1 && v[4] == -1 && v[5] == -1 {
		return board.NoMove, nil
	}
	for _, c := range v {
		if c < 0 || c >= board.Size {
			return board.Move{}, &MalformedInputError{Line: line, Err: fmt.Errorf("coordinate %d out of range 0..%d", c, board.Size-1)}
		}
	}

	from := board.Square(v[0], v[1])
	to := board.Square(v[2], v[3])
	arrow := board.Square(v[4], v[5])
	return board.Move{From: int8(from), To: int8(to), Arrow: int8(arrow)}, nil
}

// FormatMoveLine is the inverse of ParseMoveLine.
func FormatMoveLine(m board.Move) string {
	if m.IsNoMove() {
		return "-1 -1 -1 -1 -1 -1"
	}
	fr, fc := board.RowCol(int(m.From))
	tr, tc := board.RowCol(int(m.To))
	ar, ac := board.RowCol(int(m.Arrow))
	return fmt.Sprintf("%d %d %d %d %d %d", fr, fc, tr, tc, ar, ac)
}

// Turn is the fully-parsed header for one call into the Turn Controller:
// the turn to play now plus the full committed move history leading up
// to it.
type Turn struct {
	TurnID  int
	History []board.Move
}

// ReadTurn reads the turn_id line followed by its 2*turn_id-1 history
// lines from r.
func ReadTurn(r *bufio.Reader) (Turn, error) {
	headerLine, err := readLine(r)
	if err != nil {
		return Turn{}, err
	}
	turnID, err := strconv.Atoi(strings.TrimSpace(headerLine))
	if err != nil || turnID <= 0 {
		return Turn{}, &MalformedInputError{Line: headerLine, Err: fmt.Errorf("expected a positive turn id")}
	}

	n := 2*turnID - 1
	history := make([]board.Move, 0, n)
	for i := 0; i < n; i++ {
		line, err := readLine(r)
		if err != nil {
			return Turn{}, err
		}
		m, err := ParseMoveLine(line)
		if err != nil {
			return Turn{}, err
		}
		history = append(history, m)
	}
	return Turn{TurnID: turnID, History: history}, nil
}

// ReadResponse reads a single move line, used in keep-alive mode once
// the initial turn has already been answered and the harness starts
// sending just the opponent's latest move.
func ReadResponse(r *bufio.Reader) (board.Move, error) {
	line, err := readLine(r)
	if err != nil {
		return board.Move{}, err
	}
	return ParseMoveLine(line)
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// WriteMove writes one move line to w and, in keep-alive mode, the
// marker token that follows it, then flushes w.
func WriteMove(w *bufio.Writer, m board.Move, keepAlive bool) error {
	if _, err := fmt.Fprintln(w, FormatMoveLine(m)); err != nil {
		return err
	}
	if keepAlive {
		if _, err := fmt.Fprintln(w, KeepAliveMarker); err != nil {
			return err
		}
	}
	return w.Flush()
}
