// Package turn implements the per-turn entry point: replay the
// committed move history onto a fresh board, work out whose move is
// next, and run the search driver under a deadline derived from the
// turn budget.
package turn

import (
	"time"

	"github.com/nsavage/amazons-engine/pkg/board"
	"github.com/nsavage/amazons-engine/pkg/mcts"
)

// Budgets bundles the wall-clock knobs the Turn Controller needs. The
// first turn gets its own budget because board reconstruction, process
// startup, and (optionally) JIT/whatever warm-up the host has already
// eaten into turn 1's clock in a way later turns don't repeat.
type Budgets struct {
	FirstTurn    time.Duration
	Subsequent   time.Duration
	SafetyMargin time.Duration
}

// Controller owns the search tree across a single game. Per the
// tree-reuse decision recorded in DESIGN.md, the tree is rebuilt every
// turn (Tree.Reset), so Controller itself carries no position state
// between calls beyond the tree's backing arenas.
type Controller struct {
	tree    *mcts.Tree
	budgets Budgets
}

// New constructs a Controller with its own arena-backed tree.
func New(treeCfg mcts.Config, budgets Budgets) *Controller {
	return &Controller{
		tree:    mcts.NewTree(treeCfg),
		budgets: budgets,
	}
}

// Listener exposes the underlying tree's diagnostics hook so a caller
// (e.g. internal/diagnostics) can attach progress callbacks.
func (c *Controller) Listener() *mcts.StatsListener {
	return c.tree.Listener
}

// SetListener attaches a diagnostics listener for subsequent searches.
func (c *Controller) SetListener(l *mcts.StatsListener) {
	c.tree.Listener = l
}

// PlayTurn replays history (the full alternation of prior moves, with
// any leading "no move" sentinel for turn 1 already stripped or left in
// as a harmless no-op) onto a fresh Board, determines the side to move,
// and searches for turnID's response.
//
// Black always moves first, so the side to move after replaying N real
// moves is Black if N is even, White if N is odd; the caller's own side
// need never be tracked separately; it falls out of whichever parity the
// history leaves the engine at.
func (c *Controller) PlayTurn(history []board.Move, turnID int, programStart time.Time) (board.Move, mcts.Stats) {
	b := board.New()
	side := board.Black
	for _, m := range history {
		if m.IsNoMove() {
			continue
		}
		b.Apply(side, m)
		side = side.Opponent()
	}

	turnIndex := turnID
	budget := c.budgets.Subsequent
	if turnID == 1 {
		budget = c.budgets.FirstTurn
	}

	c.tree.Reset(&b, side)
	return c.tree.Search(b, turnIndex, programStart, budget, c.budgets.SafetyMargin)
}
