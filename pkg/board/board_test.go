package board

import "testing"

func TestNewHasFourAmazonsPerSide(t *testing.T) {
	b := New()
	if got := b.CountAmazons(Black); got != AmazonsPerSide {
		t.Fatalf("black amazons = %d, want %d", got, AmazonsPerSide)
	}
	if got := b.CountAmazons(White); got != AmazonsPerSide {
		t.Fatalf("white amazons = %d, want %d", got, AmazonsPerSide)
	}
}

func TestOpeningLegalMoveCounts(t *testing.T) {
	b := New()
	moves := b.LegalMoves(Black)
	if len(moves) == 0 {
		t.Fatal("expected legal moves from the opening position")
	}

	seen := map[int]int{}
	for _, m := range moves {
		seen[int(m.From)]++
	}
	for _, sq := range blackStart {
		if seen[sq] < 20 {
			t.Errorf("amazon at square %d has %d candidate moves, want >= 20", sq, seen[sq])
		}
	}
}

func TestLegalMovesHaveNoDuplicates(t *testing.T) {
	b := New()
	moves := b.LegalMoves(Black)
	seen := make(map[Move]bool, len(moves))
	for _, m := range moves {
		if seen[m] {
			t.Fatalf("duplicate move %v", m)
		}
		seen[m] = true
	}
}

func TestApplyAndUndoRoundTrip(t *testing.T) {
	b := New()
	before := b
	moves := b.LegalMoves(Black)
	if len(moves) == 0 {
		t.Fatal("no legal moves to test")
	}
	m := moves[0]

	after := before
	after.Apply(Black, m)

	// manual undo: restore the three touched squares
	after.Set(int(m.From), before.At(int(m.From)))
	after.Set(int(m.To), before.At(int(m.To)))
	after.Set(int(m.Arrow), before.At(int(m.Arrow)))

	if after != before {
		t.Fatalf("apply+undo did not restore original state")
	}
}

func TestAppliedMoveIsLegal(t *testing.T) {
	b := New()
	for _, m := range b.LegalMoves(Black) {
		if b.At(int(m.From)) != BlackAmazon {
			t.Fatalf("move %v: source square is not a black amazon", m)
		}
		if m.To == m.From {
			t.Fatalf("move %v: to == from", m)
		}
		if b.At(int(m.To)) != Empty {
			t.Fatalf("move %v: destination is not empty", m)
		}
		if m.Arrow != m.From && b.At(int(m.Arrow)) != Empty {
			t.Fatalf("move %v: arrow square is not empty or the vacated source", m)
		}
	}
}

func TestArrowMayLandOnVacatedSquare(t *testing.T) {
	b := New()
	found := false
	for _, m := range b.LegalMoves(Black) {
		if int(m.Arrow) == int(m.From) {
			found = true
			break
		}
	}
	if !found {
		t.Fatal("expected at least one legal move where the arrow returns to the vacated square")
	}
}

func TestLegalMovesSymmetric(t *testing.T) {
	b := New()
	for _, axis := range []Axis{AxisHorizontal, AxisVertical} {
		reflected := b.Reflect(axis)

		want := map[Move]int{}
		for _, m := range b.LegalMoves(Black) {
			want[ReflectMove(m, axis)]++
		}

		got := map[Move]int{}
		for _, m := range reflected.LegalMoves(Black) {
			got[m]++
		}

		if len(want) != len(got) {
			t.Fatalf("axis %v: reflected move set size = %d, want %d", axis, len(got), len(want))
		}
		for m, n := range want {
			if got[m] != n {
				t.Errorf("axis %v: move %v count = %d, want %d", axis, m, got[m], n)
			}
		}
	}
}

func TestNoLegalMovesWhenFullyWalled(t *testing.T) {
	var b Board
	b.Set(Square(0, 0), BlackAmazon)
	// wall every neighbor of the corner amazon with arrows.
	for _, sq := range []int{Square(0, 1), Square(1, 0), Square(1, 1)} {
		b.Set(sq, Arrow)
	}
	if moves := b.LegalMoves(Black); len(moves) != 0 {
		t.Fatalf("expected no legal moves, got %d", len(moves))
	}
}

func TestMoveNoMoveSentinel(t *testing.T) {
	if !NoMove.IsNoMove() {
		t.Fatal("NoMove.IsNoMove() = false")
	}
	m := Move{From: 0, To: 1, Arrow: 2}
	if m.IsNoMove() {
		t.Fatal("ordinary move reported as NoMove")
	}
}
