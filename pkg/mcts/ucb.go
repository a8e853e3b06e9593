package mcts

import "math"

// selectUCB1 returns the child of parent with the highest UCB1 score:
//
//	score(c) = c.wins/c.visits + C*sqrt(ln(N.visits)/c.visits)
//
// A child with zero visits has an infinite score, forcing it to be chosen
// first; this only arises if a node was expanded (children created) but a
// child has not yet been the target of its own evaluation, which this
// engine's Phase A/B pairing never leaves pending, so in practice every
// candidate child here has visits >= 1. The check is kept for safety
// against a future selection-policy change.
func (t *Tree) selectUCB1(parentRef nodeRef, explorationParam float64) nodeRef {
	parent := t.nodes.Get(parentRef)
	lnParentVisits := math.Log(float64(parent.Visits))

	best := nilNodeRef
	bestScore := math.Inf(-1)

	t.Children(parentRef, func(c nodeRef) {
		child := t.nodes.Get(c)
		if child.Visits == 0 {
			best = c
			bestScore = math.Inf(1)
			return
		}
		if bestScore == math.Inf(1) {
			return
		}
		score := child.Wins/float64(child.Visits) +
			explorationParam*math.Sqrt(lnParentVisits/float64(child.Visits))
		if score > bestScore {
			bestScore = score
			best = c
		}
	})

	return best
}

// explorationConstant implements a decaying exploration schedule,
// favoring exploitation as the game progresses:
//
//	C(turn) = 0.177 * exp(-0.008 * (turn - 1.41))
func explorationConstant(turnIndex int) float64 {
	return 0.177 * math.Exp(-0.008*(float64(turnIndex)-1.41))
}
