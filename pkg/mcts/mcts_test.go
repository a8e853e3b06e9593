package mcts

import (
	"testing"
	"time"

	"github.com/nsavage/amazons-engine/pkg/board"
)

func newTestTree() *Tree {
	return NewTree(Config{NodeCapacity: 4096, MoveCapacity: 1 << 16, Seed: 1})
}

func TestResetBuildsRootWithUntriedMoves(t *testing.T) {
	tr := newTestTree()
	b := board.New()
	tr.Reset(&b, board.Black)

	root := tr.Get(tr.Root())
	if root.Terminal {
		t.Fatal("opening position root marked terminal")
	}
	if !root.HasUntried() {
		t.Fatal("opening position root has no untried moves")
	}
}

func TestSearchReturnsLegalMove(t *testing.T) {
	tr := newTestTree()
	b := board.New()
	tr.Reset(&b, board.Black)

	move, stats := tr.Search(b, 1, time.Now(), 50*time.Millisecond, 5*time.Millisecond)
	if move.IsNoMove() {
		t.Fatal("expected a legal move from the opening position")
	}
	if stats.Cycles == 0 {
		t.Fatal("expected at least one search cycle")
	}

	legal := b.LegalMoves(board.Black)
	found := false
	for _, m := range legal {
		if m == move {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("Search returned %v, which is not in the legal move list", move)
	}
}

func TestSearchRespectsDeadline(t *testing.T) {
	tr := newTestTree()
	b := board.New()
	tr.Reset(&b, board.Black)

	start := time.Now()
	budget := 50 * time.Millisecond
	_, _ = tr.Search(b, 1, start, budget, 5*time.Millisecond)
	elapsed := time.Since(start)

	if elapsed > budget+100*time.Millisecond {
		t.Fatalf("search overran budget: elapsed %v, budget %v", elapsed, budget)
	}
}

func TestSearchWithSingleLegalMoveReturnsIt(t *testing.T) {
	// Build a position where black has exactly one legal move: a single
	// amazon in a corner with every direction but one walled off.
	var b board.Board
	b.Set(board.Square(0, 0), board.BlackAmazon)
	b.Set(board.Square(1, 0), board.Arrow)
	b.Set(board.Square(1, 1), board.Arrow)
	// leave (0,1) open: the amazon can slide to (0,1)..(0,7) and then
	// must shoot somewhere; constrain further by walling the whole rest
	// of row 0, column 1 and the (1,2) diagonal out of (0,1) so only one
	// (to, arrow) pair survives: to (0,1), arrow back onto (0,0).
	b.Set(board.Square(1, 2), board.Arrow)
	for c := 2; c < board.Size; c++ {
		b.Set(board.Square(0, c), board.Arrow)
	}
	for r := 2; r < board.Size; r++ {
		b.Set(board.Square(r, 1), board.Arrow)
	}

	legal := b.LegalMoves(board.Black)
	if len(legal) != 1 {
		t.Fatalf("test setup invalid: %d legal moves, want exactly 1", len(legal))
	}
	want := legal[0]

	tr := newTestTree()
	tr.Reset(&b, board.Black)
	move, _ := tr.Search(b, 1, time.Now(), 20*time.Millisecond, 2*time.Millisecond)
	if move != want {
		t.Fatalf("Search returned %v, want the only legal move %v", move, want)
	}
}

func TestSearchWithNoLegalMovesReturnsSentinel(t *testing.T) {
	var b board.Board
	b.Set(board.Square(0, 0), board.BlackAmazon)
	b.Set(board.Square(0, 1), board.Arrow)
	b.Set(board.Square(1, 0), board.Arrow)
	b.Set(board.Square(1, 1), board.Arrow)

	tr := newTestTree()
	tr.Reset(&b, board.Black)
	move, _ := tr.Search(b, 1, time.Now(), 10*time.Millisecond, 1*time.Millisecond)
	if !move.IsNoMove() {
		t.Fatalf("Search returned %v, want NoMove sentinel", move)
	}
}

func TestArenaStarvationStillProducesLegalMove(t *testing.T) {
	tr := NewTree(Config{NodeCapacity: 8, MoveCapacity: 32, Seed: 1})
	b := board.New()
	tr.Reset(&b, board.Black)

	move, stats := tr.Search(b, 1, time.Now(), 50*time.Millisecond, 5*time.Millisecond)
	if move.IsNoMove() {
		t.Fatal("expected a legal move despite a tiny arena")
	}
	if !stats.NoExpand {
		t.Fatal("expected the tiny arena to force no-expand mode")
	}
}

func TestExplorationConstantDecaysWithTurn(t *testing.T) {
	early := explorationConstant(1)
	late := explorationConstant(100)
	if late >= early {
		t.Fatalf("exploration constant did not decay: C(1)=%v C(100)=%v", early, late)
	}
}
