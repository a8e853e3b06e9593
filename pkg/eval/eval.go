// Package eval implements the multi-component positional evaluator: two
// king-distance maps (one per side) folded into five weighted components
// and squashed into a [0,1] win-probability estimate for root_side.
//
// Every call reuses a single Scratch buffer instead of allocating, since
// this runs on the search hot path; each MCTS Tree owns one Scratch and
// passes it in for every leaf evaluation.
package eval

import (
	"math"

	"github.com/nsavage/amazons-engine/pkg/board"
	"github.com/nsavage/amazons-engine/pkg/distance"
)

// Scratch holds the fixed-size buffers the evaluator needs for a single
// call: two distance maps, a BFS queue reused for both, and a small
// amazon-square scratch array. Callers allocate one Scratch (not one per
// call) and reuse it across the whole search.
type Scratch struct {
	mine, opp distance.Map
	queue     distance.Queue
	amazons   [2 * board.AmazonsPerSide]int
}

// pow2Table[d] = 2^-d for d in [0,10); used by the Queen Position
// component instead of calling math.Pow per square.
var pow2Table = func() [10]float64 {
	var t [10]float64
	for i := range t {
		t[i] = 1.0 / float64(uint(1)<<uint(i))
	}
	return t
}()

// Weights are the five non-negative linear-form coefficients for one
// game phase: queen territory, king territory, queen position, king
// position, mobility.
type Weights struct {
	Tq, Tk, Pq, Pk, M float64
}

// PhaseTable indexes Weights by turn number (1-based), clamped to the
// last row for turns beyond the table; see DESIGN.md for the rationale
// behind this particular table. Rows describe a slow shift from territory
// control in the opening to mobility and close-quarters king proximity in
// the endgame.
var PhaseTable = []Weights{
	{Tq: 1.00, Tk: 0.20, Pq: 0.05, Pk: 0.05, M: 0.10}, // turns 1-10: secure territory
	{Tq: 0.80, Tk: 0.40, Pq: 0.10, Pk: 0.10, M: 0.20}, // turns 11-20
	{Tq: 0.50, Tk: 0.60, Pq: 0.15, Pk: 0.20, M: 0.40}, // turns 21-30
	{Tq: 0.20, Tk: 0.80, Pq: 0.20, Pk: 0.40, M: 0.70}, // turns 31-40
	{Tq: 0.05, Tk: 1.00, Pq: 0.25, Pk: 0.60, M: 1.00}, // turns 41+: mobility and king-proximity dominate
}

// weightsFor returns the Weights row for turnIndex (1-based), clamping to
// the final row.
func weightsFor(turnIndex int) Weights {
	const rowSpan = 10
	row := (turnIndex - 1) / rowSpan
	if row < 0 {
		row = 0
	}
	if row >= len(PhaseTable) {
		row = len(PhaseTable) - 1
	}
	return PhaseTable[row]
}

// sigmoid squashes the weighted linear form into (0,1) using the
// standard logistic. Fixed and deterministic, as required: it
// participates in backpropagation sums, so two builds using different
// squashing functions would not be comparable.
func sigmoid(s float64) float64 {
	return 1.0 / (1.0 + math.Exp(-s))
}

// mobility returns the number of queen-slide destination squares
// reachable by side's amazons over currently-empty cells -- the same
// quantity LegalMoves' outer loop walks, but without the inner arrow-shot
// expansion, since mobility only cares about destinations.
func mobility(b *board.Board, side board.Side, amazons []int) int {
	count := 0
	for _, from := range amazons {
		row0, col0 := board.RowCol(from)
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if dr == 0 && dc == 0 {
					continue
				}
				row, col := row0, col0
				for {
					row += dr
					col += dc
					if row < 0 || row >= board.Size || col < 0 || col >= board.Size {
						break
					}
					if b.At(board.Square(row, col)) != board.Empty {
						break
					}
					count++
				}
			}
		}
	}
	return count
}

// Evaluate estimates the probability that rootSide wins from b, as a
// value in [0,1]. turnIndex selects the phase-weight row. scratch is
// caller-owned reusable storage; Evaluate performs zero heap allocation.
func Evaluate(b *board.Board, rootSide board.Side, turnIndex int, scratch *Scratch) float64 {
	opp := rootSide.Opponent()

	mine := scratch.amazons[:0]
	mine = b.Amazons(rootSide, mine)
	oppAmazons := scratch.amazons[board.AmazonsPerSide : board.AmazonsPerSide:2*board.AmazonsPerSide]
	oppAmazons = b.Amazons(opp, oppAmazons)

	distance.BFS(b, mine, &scratch.mine, &scratch.queue)
	distance.BFS(b, oppAmazons, &scratch.opp, &scratch.queue)

	var tq, tk, pq, pk float64
	for sq := 0; sq < board.NumSquares; sq++ {
		if b.At(sq) != board.Empty {
			continue
		}
		dm := int(scratch.mine[sq])
		do := int(scratch.opp[sq])

		switch {
		case dm < do:
			tq += 1
			if dm < 4 {
				tk += float64(4 - dm)
			}
			if dm < 10 {
				pq += pow2Table[dm]
			}
			if dm < 6 {
				pk += 1.0 / float64(dm+1)
			}
		case do < dm:
			tq -= 1
			if do < 4 {
				tk -= float64(4 - do)
			}
			if do < 10 {
				pq -= pow2Table[do]
			}
			if do < 6 {
				pk -= 1.0 / float64(do+1)
			}
		}
	}

	m := float64(mobility(b, rootSide, mine) - mobility(b, opp, oppAmazons))

	w := weightsFor(turnIndex)
	s := 0.20 * (w.Tq*tq + w.Tk*tk + w.Pq*pq + w.Pk*pk + w.M*m)
	return sigmoid(s)
}
