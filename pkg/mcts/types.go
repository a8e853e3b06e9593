package mcts

import "github.com/nsavage/amazons-engine/pkg/arena"

// arenaRef and moveRef both alias arena.Ref; kept as distinct names at
// the call site (nodeRef in node.go, moveRef below) purely for
// readability, since a Tree owns two separate arenas.
type arenaRef = arena.Ref

// moveRef indexes into a Tree's move arena.
type moveRef = arena.Ref

// BestChildPolicy selects how BestChild interprets a node's children.
type BestChildPolicy int

const (
	// BestChildMostVisits is the policy used for the final move choice:
	// the root child with the highest visit count.
	BestChildMostVisits BestChildPolicy = iota
	// BestChildWinRate is exposed for diagnostics only; the Search
	// driver's return value always uses BestChildMostVisits.
	BestChildWinRate
)
