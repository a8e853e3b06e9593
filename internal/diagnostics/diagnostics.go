// Package diagnostics provides the engine's structured logging and an
// optional colorized board/search renderer for interactive use. Nothing
// here runs on every search iteration: NewLogger runs at process
// bootstrap, and the Listener callbacks run once every checkEvery search
// cycles and once when a turn's search stops.
package diagnostics

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"

	"github.com/nsavage/amazons-engine/pkg/board"
	"github.com/nsavage/amazons-engine/pkg/mcts"
)

// NewLogger builds the engine's structured logger. Logs go to stderr,
// never stdout, since stdout is the protocol channel and interleaving
// log lines with move lines would corrupt it.
func NewLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05.000"}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// Renderer draws the board and search progress to an ANSI terminal. It
// degrades automatically on a non-terminal output (termenv's profile
// detection falls back to Ascii), so piping stderr to a file never
// embeds escape codes in a log.
type Renderer struct {
	dst io.Writer
	out *termenv.Output
}

// NewRenderer wraps w (typically os.Stderr) with termenv's color
// profile detection.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{dst: w, out: termenv.NewOutput(w)}
}

// Board renders b as an 8x8 grid with colored amazons and arrows.
func (r *Renderer) Board(b *board.Board) {
	var sb strings.Builder
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			sq := board.Square(row, col)
			sb.WriteString(r.glyph(b.At(sq)))
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	fmt.Fprint(r.dst, sb.String())
}

func (r *Renderer) glyph(c board.Cell) string {
	switch c {
	case board.BlackAmazon:
		return r.out.String("B").Foreground(termenv.ANSIBrightWhite).Background(termenv.ANSIBlack).String()
	case board.WhiteAmazon:
		return r.out.String("W").Foreground(termenv.ANSIBlack).Background(termenv.ANSIBrightWhite).String()
	case board.Arrow:
		return r.out.String("x").Foreground(termenv.ANSIYellow).String()
	default:
		return "."
	}
}

// Progress renders one TreeStats snapshot as a single status line,
// suitable for both the periodic OnCycle callback and the terminal
// OnStop callback.
func (r *Renderer) Progress(s mcts.TreeStats) {
	fmt.Fprintf(r.dst, "cycles=%d root_visits=%d nodes=%d no_expand=%t best=%s eval=%.3f\n",
		s.Cycles, s.RootVisits, s.ArenaNodes, s.NoExpand, s.Line.BestMove.String(), s.Line.Eval)
}

// Listener builds an mcts.StatsListener that logs via log and, if r is
// non-nil, also renders a progress line on every callback.
func Listener(log zerolog.Logger, r *Renderer) *mcts.StatsListener {
	report := func(tag string) mcts.StatsFunc {
		return func(s mcts.TreeStats) {
			log.Debug().
				Str("phase", tag).
				Int("cycles", s.Cycles).
				Int32("root_visits", s.RootVisits).
				Int32("arena_nodes", s.ArenaNodes).
				Bool("no_expand", s.NoExpand).
				Str("best_move", s.Line.BestMove.String()).
				Float64("eval", s.Line.Eval).
				Msg("search progress")
			if r != nil {
				r.Progress(s)
			}
		}
	}
	return &mcts.StatsListener{
		OnCycle: report("cycle"),
		OnStop:  report("stop"),
	}
}
