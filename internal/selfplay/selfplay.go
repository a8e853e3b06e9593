// Package selfplay plays complete games of one engine configuration
// against another (or against itself) for use in tests: a plain
// single-threaded "play a game, record the outcome" loop, with no
// worker pool or game-type generality, since this engine only ever
// plays Amazons and only ever searches on one core.
package selfplay

import (
	"time"

	"github.com/nsavage/amazons-engine/pkg/board"
	"github.com/nsavage/amazons-engine/pkg/mcts"
)

// AgentConfig bundles the per-turn budget knobs a Player needs; it mirrors
// the fields a Turn Controller would read out of internal/config.
type AgentConfig struct {
	NodeCapacity int
	MoveCapacity int
	Seed         int64
	MoveBudget   time.Duration
	SafetyMargin time.Duration
}

// Player wraps one Tree and plays moves for one side across a whole game,
// rebuilding its tree fresh every turn (see DESIGN.md's tree-reuse
// decision).
type Player struct {
	tree *mcts.Tree
	cfg  AgentConfig
}

// NewPlayer constructs a Player with its own arena, independent of any
// other Player's.
func NewPlayer(cfg AgentConfig) *Player {
	return &Player{
		tree: mcts.NewTree(mcts.Config{
			NodeCapacity: cfg.NodeCapacity,
			MoveCapacity: cfg.MoveCapacity,
			Seed:         cfg.Seed,
		}),
		cfg: cfg,
	}
}

// Move runs one turn's search and returns the chosen move.
func (p *Player) Move(b *board.Board, side board.Side, turnIndex int) (board.Move, mcts.Stats) {
	p.tree.Reset(b, side)
	return p.tree.Search(*b, turnIndex, time.Now(), p.cfg.MoveBudget, p.cfg.SafetyMargin)
}

// Outcome reports who won a completed game, from Black's perspective.
type Outcome struct {
	Winner    board.Side
	PlyCount  int
	MoveLimit bool
}

// PlayGame plays black against white until one side has no legal move,
// or maxPlies is reached as a backstop against an engine defect looping
// forever. The returned move list is in play order.
func PlayGame(black, white *Player, maxPlies int) ([]board.Move, Outcome) {
	b := board.New()
	moves := make([]board.Move, 0, maxPlies)
	side := board.Black

	for ply := 0; ply < maxPlies; ply++ {
		legal := b.LegalMoves(side)
		if len(legal) == 0 {
			return moves, Outcome{Winner: side.Opponent(), PlyCount: ply}
		}

		var m board.Move
		if side == board.Black {
			m, _ = black.Move(&b, side, ply+1)
		} else {
			m, _ = white.Move(&b, side, ply+1)
		}
		if m.IsNoMove() {
			// A well-formed engine never returns NoMove when legal
			// moves exist; treat it as a forfeit rather than panicking
			// so a single bad turn doesn't crash a whole test suite.
			return moves, Outcome{Winner: side.Opponent(), PlyCount: ply}
		}

		b.Apply(side, m)
		moves = append(moves, m)
		side = side.Opponent()
	}

	return moves, Outcome{Winner: board.Black, PlyCount: maxPlies, MoveLimit: true}
}
