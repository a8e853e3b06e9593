package mcts

import (
	"time"

	"github.com/nsavage/amazons-engine/pkg/board"
	"github.com/nsavage/amazons-engine/pkg/eval"
)

// Stats reports what happened during one Search call, used by the Turn
// Controller's logging and the diagnostics renderer.
type Stats struct {
	Cycles      int
	ArenaNodes  int32
	NoExpand    bool
	DeadlineHit bool
}

// Search runs the four-phase MCTS loop against rootBoard until the
// deadline derived from programStart/totalBudget/safetyMargin
// elapses, then returns the root child with the highest visit count.
//
// rootBoard is copied once per simulation path; the caller's copy is
// never mutated. Reset must have been called first to build the root.
func (t *Tree) Search(rootBoard board.Board, turnIndex int, programStart time.Time, totalBudget, safetyMargin time.Duration) (board.Move, Stats) {
	dl := newDeadline(programStart, totalBudget, safetyMargin)
	explorationParam := explorationConstant(turnIndex)

	root := t.nodes.Get(t.root)
	if root.Terminal {
		if t.Listener != nil && t.Listener.OnStop != nil {
			t.Listener.OnStop(t.snapshotStats(0))
		}
		return board.NoMove, Stats{DeadlineHit: false}
	}

	var sim board.Board
	// A ply cannot revisit a square already turned into an arrow or
	// vacated amazon without the game having ended first, so a single
	// turn's search path is bounded by the number of squares still in
	// play; NumSquares is a generous, allocation-free backstop.
	var path [board.NumSquares]nodeRef

	cycles := 0
	for cycles == 0 || cycles%checkEvery != 0 || !dl.passed() {
		sim = rootBoard
		sideToMove := t.rootSide
		depth := 0
		path[depth] = t.root
		cur := t.root

		// Phase A: SELECTION
		for {
			node := t.nodes.Get(cur)
			if node.HasUntried() || !node.HasChildren() {
				break
			}
			cur = t.selectUCB1(cur, explorationParam)
			child := t.nodes.Get(cur)
			sim.Apply(sideToMove, child.Move)
			sideToMove = sideToMove.Opponent()
			depth++
			path[depth] = cur
		}

		// Phase B: EXPANSION
		node := t.nodes.Get(cur)
		if !t.noExpand && node.HasUntried() {
			m := t.takeRandomUntried(cur)
			movedSide := sideToMove
			sim.Apply(movedSide, m)
			sideToMove = sideToMove.Opponent()

			childRef := t.newChild(cur, m, movedSide)
			if childRef == nilNodeRef {
				// Arena exhausted: switch to no-expand mode for the
				// rest of the turn, do not treat this as fatal.
				t.noExpand = true
			} else {
				t.populateUntried(childRef, &sim, sideToMove)
				cur = childRef
				depth++
				path[depth] = cur
			}
		}

		// Phase C: EVALUATION
		node = t.nodes.Get(cur)
		var w float64
		if node.Terminal {
			// The side to move at this node has no legal moves, so the
			// side who just moved here (node.PlayerJustMoved) has won.
			if node.PlayerJustMoved == t.rootSide {
				w = 1
			} else {
				w = 0
			}
		} else {
			w = eval.Evaluate(&sim, t.rootSide, turnIndex, &t.scratch)
		}

		// Phase D: BACKPROPAGATION
		t.backpropagate(path[:depth+1], w)

		cycles++
		if t.Listener != nil && t.Listener.OnCycle != nil && cycles%checkEvery == 0 {
			t.Listener.OnCycle(t.snapshotStats(cycles))
		}
	}

	stats := Stats{
		Cycles:      cycles,
		ArenaNodes:  t.nodes.Len(),
		NoExpand:    t.noExpand,
		DeadlineHit: true,
	}
	if t.Listener != nil && t.Listener.OnStop != nil {
		t.Listener.OnStop(t.snapshotStats(cycles))
	}
	return t.BestMove(), stats
}

// backpropagate walks path from leaf (last element) to root (first
// element), crediting each node's accumulator with w (from rootSide's
// perspective) if the node's mover was rootSide, or 1-w otherwise.
func (t *Tree) backpropagate(path []nodeRef, w float64) {
	for i := len(path) - 1; i >= 0; i-- {
		node := t.nodes.Get(path[i])
		node.Visits++
		if node.PlayerJustMoved == t.rootSide {
			node.Wins += w
		} else {
			node.Wins += 1 - w
		}
	}
}
