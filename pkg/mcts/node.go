// Package mcts implements the Monte Carlo Tree Search engine: a polytree
// of Node values living in an arena.Arena, UCB1 selection, and a
// four-phase (selection/expansion/evaluation/backpropagation) search
// driver.
//
// The tree here is a specialization, not a generalization. The generic,
// multi-game, multi-threaded tree this package's design is descended from
// keyed every Node on a type parameter and guarded every counter with
// atomics; this engine's board geometry and rules are fixed to 8x8
// Amazons and the host grants a single core, so Node here is concrete to
// board.Move and every counter is a plain value, updated only by the
// single-threaded Search driver.
package mcts

import "github.com/nsavage/amazons-engine/pkg/board"

// nodeRef is a handle into a Tree's node arena.
type nodeRef = arenaRef

// nilNodeRef is the "no such node" handle, e.g. a node's Parent when it
// is the root, or FirstChild when it is a leaf.
const nilNodeRef nodeRef = -1

// Node is one vertex of the search tree. Children are threaded through a
// first-child/next-sibling pair rather than a per-node dynamic array,
// which keeps Node small and bulk-allocable out of an arena.
type Node struct {
	Parent      nodeRef
	FirstChild  nodeRef
	NextSibling nodeRef

	Move            board.Move
	PlayerJustMoved board.Side
	Terminal        bool

	// Visits equals the number of simulations whose path passed through
	// this node. Wins is the accumulated root-player-perspective score
	// after the orientation flip in backpropagate (search.go).
	Visits int32
	Wins   float64

	// UntriedStart/UntriedLen describe a contiguous run inside the
	// tree's move arena. Removing a move from it is a swap-and-pop
	// within that run: O(1), and it never touches any other node's
	// moves since each node's run is allocated once, contiguously, and
	// never grows.
	UntriedStart moveRef
	UntriedLen   int32
}

// HasChildren reports whether the node has at least one expanded child.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nilNodeRef
}

// HasUntried reports whether the node still has unexplored moves.
func (n *Node) HasUntried() bool {
	return n.UntriedLen > 0
}

// AvgOutcome returns the node's mean backpropagated outcome, or 0.5 if it
// has never been visited.
func (n *Node) AvgOutcome() float64 {
	if n.Visits == 0 {
		return 0.5
	}
	return n.Wins / float64(n.Visits)
}
