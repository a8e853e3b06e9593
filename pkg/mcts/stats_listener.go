package mcts

import "github.com/nsavage/amazons-engine/pkg/board"

// Line is one principal variation reported to a StatsListener: the
// strongest child at the root (by visit count) and the line of moves
// obtained by repeatedly following each node's own strongest child.
type Line struct {
	BestMove board.Move
	Moves    []board.Move
	Eval     float64
	Terminal bool
}

// PrincipalVariation walks the tree from the root, repeatedly following
// BestChildMostVisits, and reports the resulting line. maxLen bounds how
// many plies are collected; a long-enough search can otherwise grow an
// unbounded line through a completely explored tail.
func (t *Tree) PrincipalVariation(maxLen int) Line {
	root := t.BestChild(t.root, BestChildMostVisits)
	if root == nilNodeRef {
		return Line{Terminal: t.nodes.Get(t.root).Terminal}
	}

	line := Line{
		BestMove: t.nodes.Get(root).Move,
		Eval:     t.nodes.Get(root).AvgOutcome(),
		Terminal: t.nodes.Get(root).Terminal,
	}

	cur := root
	for i := 0; i < maxLen; i++ {
		node := t.nodes.Get(cur)
		line.Moves = append(line.Moves, node.Move)
		next := t.BestChild(cur, BestChildMostVisits)
		if next == nilNodeRef {
			break
		}
		cur = next
	}
	return line
}

// TreeStats is a snapshot of search progress, reported to a StatsListener
// at the cadence Search chooses (every checkEvery cycles and once at the
// end of the turn).
type TreeStats struct {
	Cycles     int
	RootVisits int32
	ArenaNodes int32
	NoExpand   bool
	Line       Line
}

func (t *Tree) snapshotStats(cycles int) TreeStats {
	return TreeStats{
		Cycles:     cycles,
		RootVisits: t.nodes.Get(t.root).Visits,
		ArenaNodes: t.nodes.Len(),
		NoExpand:   t.noExpand,
		Line:       t.PrincipalVariation(8),
	}
}

// StatsFunc receives a TreeStats snapshot. It is called from the single
// search goroutine, so it never needs its own synchronization.
type StatsFunc func(TreeStats)

// StatsListener hooks diagnostics callbacks into a Tree's search loop.
// A nil field is simply never called.
type StatsListener struct {
	// OnCycle is called periodically during the search (see checkEvery),
	// receiving a progress snapshot. Evaluating the principal variation
	// on every call is comparatively expensive, so this is meant for
	// interactive diagnostics, not the default turn loop.
	OnCycle StatsFunc

	// OnStop is called exactly once, after the search loop exits.
	OnStop StatsFunc
}
