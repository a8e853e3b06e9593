package mcts

import (
	"math/rand"

	"github.com/nsavage/amazons-engine/pkg/arena"
	"github.com/nsavage/amazons-engine/pkg/board"
	"github.com/nsavage/amazons-engine/pkg/eval"
)

// Tree owns the arena-backed node pool and move pool for one turn's
// search. Tree reuse across turns and a monotonic arena are in tension,
// so this engine takes the simpler of the two options: the Arena is
// reset and a fresh root built at the start of every turn rather than
// persisting node lifetimes across turns (see DESIGN.md). The backing
// arrays themselves may be reused turn to turn -- only their logical
// contents are discarded -- so a long-running keep-alive process does
// not repeatedly pay for fresh page commits.
type Tree struct {
	nodes *arena.Arena[Node]
	moves *arena.Arena[board.Move]

	root     nodeRef
	rootSide board.Side

	rand *rand.Rand

	// noExpand is the permanent-for-the-turn fallback flipped on when
	// the arena is exhausted: once true, expansion is skipped for the
	// rest of the turn and the search keeps exploiting the existing
	// tree via UCB1 alone.
	noExpand bool

	scratch eval.Scratch

	// Listener is consulted by Search for progress reporting; nil by
	// default, so attaching it costs nothing until a caller opts in.
	Listener *StatsListener
}

// Config bundles the sizing and seeding knobs a Tree needs.
type Config struct {
	NodeCapacity int
	MoveCapacity int
	Seed         int64
}

// NewTree allocates (without committing) the node and move arenas and
// seeds the single deterministic PRNG stream used for all random
// choices during expansion.
func NewTree(cfg Config) *Tree {
	return &Tree{
		nodes: arena.New[Node](cfg.NodeCapacity),
		moves: arena.New[board.Move](cfg.MoveCapacity),
		rand:  rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Reset discards the previous turn's tree (if any) and builds a fresh
// root for rootBoard/rootSide. The root's PlayerJustMoved is the
// opponent of rootSide, so the first real child corresponds to the
// root player's own move.
func (t *Tree) Reset(rootBoard *board.Board, rootSide board.Side) {
	t.nodes.Reset()
	t.moves.Reset()
	t.noExpand = false
	t.rootSide = rootSide

	root := t.nodes.Alloc()
	if root == arena.Nil {
		// NodeCapacity of 0 is a configuration error, not a runtime
		// condition; fail fast rather than silently never searching.
		panic("mcts: arena has zero node capacity")
	}
	t.root = root
	node := t.nodes.Get(root)
	*node = Node{
		Parent:          nilNodeRef,
		FirstChild:      nilNodeRef,
		NextSibling:     nilNodeRef,
		PlayerJustMoved: rootSide.Opponent(),
	}
	t.populateUntried(root, rootBoard, rootSide)
}

// populateUntried fills node's untried-move list from legal. If the
// arena's move pool cannot hold every legal move (only possible with a
// pathologically small MoveCapacity), it truncates rather than failing;
// a truncated untried list only narrows that node's exploration, it never
// produces an illegal move.
func (t *Tree) populateUntried(ref nodeRef, b *board.Board, side board.Side) {
	legal := b.LegalMoves(side)
	node := t.nodes.Get(ref)
	if len(legal) == 0 {
		node.Terminal = true
		return
	}

	start := t.moves.AllocN(len(legal))
	n := len(legal)
	if start == arena.Nil {
		// Fall back to however much room remains; see doc comment above.
		n = int(t.moves.Remaining())
		if n <= 0 {
			return
		}
		start = t.moves.AllocN(n)
	}
	copy(t.moves.Slice(start, n), legal[:n])
	node.UntriedStart = start
	node.UntriedLen = int32(n)
}

// takeRandomUntried removes and returns one untried move from node,
// chosen uniformly at random, via O(1) swap-and-pop.
func (t *Tree) takeRandomUntried(ref nodeRef) board.Move {
	node := t.nodes.Get(ref)
	slice := t.moves.Slice(node.UntriedStart, int(node.UntriedLen))
	i := t.rand.Intn(len(slice))
	m := slice[i]
	last := len(slice) - 1
	slice[i] = slice[last]
	node.UntriedLen--
	return m
}

// newChild allocates a new child of parent reached by m, linking it at the
// end of parent's first-child/next-sibling chain. It returns nilNodeRef if
// the arena is exhausted.
func (t *Tree) newChild(parentRef nodeRef, m board.Move, playerJustMoved board.Side) nodeRef {
	ref := t.nodes.Alloc()
	if ref == nilNodeRef {
		return nilNodeRef
	}
	parent := t.nodes.Get(parentRef)
	child := t.nodes.Get(ref)
	*child = Node{
		Parent:          parentRef,
		FirstChild:      nilNodeRef,
		NextSibling:     nilNodeRef,
		Move:            m,
		PlayerJustMoved: playerJustMoved,
	}
	if parent.FirstChild == nilNodeRef {
		parent.FirstChild = ref
		return ref
	}
	last := parent.FirstChild
	for t.nodes.Get(last).NextSibling != nilNodeRef {
		last = t.nodes.Get(last).NextSibling
	}
	t.nodes.Get(last).NextSibling = ref
	return ref
}

// Root returns the tree's root node reference.
func (t *Tree) Root() nodeRef {
	return t.root
}

// Get exposes a node for read-only inspection by diagnostics code.
func (t *Tree) Get(ref nodeRef) *Node {
	return t.nodes.Get(ref)
}

// Children calls fn for each expanded child of ref, in insertion order.
func (t *Tree) Children(ref nodeRef, fn func(child nodeRef)) {
	for c := t.nodes.Get(ref).FirstChild; c != nilNodeRef; c = t.nodes.Get(c).NextSibling {
		fn(c)
	}
}

// BestChild returns the child of ref chosen by policy, or nilNodeRef if
// ref has no children.
func (t *Tree) BestChild(ref nodeRef, policy BestChildPolicy) nodeRef {
	best := nilNodeRef
	bestVisits := int32(-1)
	bestRate := -1.0

	t.Children(ref, func(c nodeRef) {
		child := t.nodes.Get(c)
		switch policy {
		case BestChildMostVisits:
			if child.Visits > bestVisits {
				bestVisits = child.Visits
				best = c
			}
		case BestChildWinRate:
			if child.Visits == 0 {
				return
			}
			rate := child.Wins / float64(child.Visits)
			if rate > bestRate {
				bestRate = rate
				best = c
			}
		}
	})
	return best
}

// BestMove returns the move of the root child with the highest visit
// count, falling back to the best available untried move, and finally
// to board.NoMove.
func (t *Tree) BestMove() board.Move {
	if best := t.BestChild(t.root, BestChildMostVisits); best != nilNodeRef {
		return t.nodes.Get(best).Move
	}

	root := t.nodes.Get(t.root)
	if root.UntriedLen > 0 {
		return t.moves.Slice(root.UntriedStart, int(root.UntriedLen))[0]
	}
	return board.NoMove
}
