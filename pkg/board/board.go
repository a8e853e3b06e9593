// Package board implements the Amazons game state: an 8x8 grid of amazons
// and arrows, legal queen-move-plus-arrow-shot generation, and move
// application. The representation favors cheap copying over cleverness,
// since a fresh Board is copied by value once per MCTS simulation path.
package board

import "fmt"

// Cell is one of the four variants a square can hold.
type Cell uint8

const (
	Empty Cell = iota
	BlackAmazon
	WhiteAmazon
	Arrow
)

// Side identifies which player's amazons are being reasoned about.
type Side uint8

const (
	Black Side = iota
	White
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == Black {
		return White
	}
	return Black
}

func (s Side) String() string {
	if s == Black {
		return "black"
	}
	return "white"
}

// amazonCell returns the Cell variant owned by side.
func (s Side) amazonCell() Cell {
	if s == Black {
		return BlackAmazon
	}
	return WhiteAmazon
}

// Size is the board dimension; the geometry is fixed to 8x8 per spec.
const Size = 8

// NumSquares is the total number of squares (8x8, row-major).
const NumSquares = Size * Size

// AmazonsPerSide is the fixed number of amazons each side starts with.
const AmazonsPerSide = 4

// Board is a dense, row-major, value-type representation of the game
// state. It deliberately has no pointers so that copying a Board is a
// single memcpy-equivalent of NumSquares bytes.
type Board struct {
	cells [NumSquares]Cell
}

// compass directions as (deltaRow, deltaCol) unit vectors, in a fixed,
// deterministic order.
var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// RowCol decomposes a square index into (row, col).
func RowCol(sq int) (row, col int) {
	return sq / Size, sq % Size
}

// Square composes a (row, col) pair into a square index.
func Square(row, col int) int {
	return row*Size + col
}

// onBoard reports whether (row, col) lies within the 8x8 grid.
func onBoard(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

// blackStart and whiteStart are the fixed initial amazon squares.
var blackStart = [AmazonsPerSide]int{Square(0, 2), Square(2, 0), Square(5, 0), Square(7, 2)}
var whiteStart = [AmazonsPerSide]int{Square(0, 5), Square(2, 7), Square(5, 7), Square(7, 5)}

// New returns the standard initial Amazons position.
func New() Board {
	var b Board
	for _, sq := range blackStart {
		b.cells[sq] = BlackAmazon
	}
	for _, sq := range whiteStart {
		b.cells[sq] = WhiteAmazon
	}
	return b
}

// At returns the cell contents at sq.
func (b *Board) At(sq int) Cell {
	return b.cells[sq]
}

// Set writes a cell directly; used by history replay and tests that need
// to construct arbitrary positions. Search and evaluation code never call
// this directly, only Apply.
func (b *Board) Set(sq int, c Cell) {
	b.cells[sq] = c
}

// Copy returns a cheap by-value duplicate of b.
func (b Board) Copy() Board {
	return b
}

// Amazons appends the squares occupied by side's amazons, in row-major
// order, to dst and returns the result. Used by the distance engine to
// seed its BFS and by the evaluator's mobility component.
func (b *Board) Amazons(side Side, dst []int) []int {
	want := side.amazonCell()
	for sq := 0; sq < NumSquares; sq++ {
		if b.cells[sq] == want {
			dst = append(dst, sq)
		}
	}
	return dst
}

// Move is a compact 3-square encoding of an amazon move and its arrow
// shot. A sentinel move with every field negative means "no legal move".
type Move struct {
	From, To, Arrow int8
}

// NoMove is the sentinel signaling the side to move has lost.
var NoMove = Move{From: -1, To: -1, Arrow: -1}

// IsNoMove reports whether m is the sentinel.
func (m Move) IsNoMove() bool {
	return m == NoMove
}

func (m Move) String() string {
	if m.IsNoMove() {
		return "(none)"
	}
	fr, fc := RowCol(int(m.From))
	tr, tc := RowCol(int(m.To))
	ar, ac := RowCol(int(m.Arrow))
	return fmt.Sprintf("%d %d %d %d %d %d", fr, fc, tr, tc, ar, ac)
}

// slideSteps appends every square reachable from origin sliding in
// direction d over cells that are Empty in b, treating skip as
// additionally empty (lets an amazon shoot back through its own vacated
// origin). It stops at the first non-empty, non-skip cell or the board
// edge, and never allocates.
func (b *Board) slideSteps(origin int, d [2]int, skip int, dst []int) []int {
	row, col := RowCol(origin)
	for {
		row += d[0]
		col += d[1]
		if !onBoard(row, col) {
			return dst
		}
		sq := Square(row, col)
		if sq != skip && b.cells[sq] != Empty {
			return dst
		}
		dst = append(dst, sq)
	}
}

// LegalMoves enumerates every legal move for side. The result contains no
// duplicates and every element is legal in the current state. An empty
// result means side has no legal move and has lost. Ordering is
// deterministic (amazon order, then direction order, then distance) but
// otherwise unspecified.
//
// The capacity reserved below (at most 4*(Size-1) = 28 destinations x 28
// arrow squares per amazon, an upper bound on queen reach on this board)
// means the result slice is allocated once per call and never regrown;
// branching factor in the midgame is routinely in the high hundreds.
func (b *Board) LegalMoves(side Side) []Move {
	var amazons [AmazonsPerSide]int
	n := 0
	want := side.amazonCell()
	for sq := 0; sq < NumSquares && n < AmazonsPerSide; sq++ {
		if b.cells[sq] == want {
			amazons[n] = sq
			n++
		}
	}

	var destBuf, arrowBuf [Size - 1]int
	const maxReach = 4 * (Size - 1)
	moves := make([]Move, 0, n*maxReach*maxReach)
	for i := 0; i < n; i++ {
		from := amazons[i]
		for _, d := range directions {
			dests := b.slideSteps(from, d, -1, destBuf[:0])
			for _, to := range dests {
				for _, d2 := range directions {
					arrows := b.slideSteps(to, d2, from, arrowBuf[:0])
					for _, arrow := range arrows {
						moves = append(moves, Move{From: int8(from), To: int8(to), Arrow: int8(arrow)})
					}
				}
			}
		}
	}
	return moves
}

// Apply mutates b in place according to m, assuming m is legal: the
// source square becomes empty, the destination becomes side's amazon, and
// the arrow square becomes a permanent blocker.
func (b *Board) Apply(side Side, m Move) {
	b.cells[m.From] = Empty
	b.cells[m.To] = side.amazonCell()
	b.cells[m.Arrow] = Arrow
}

// CountAmazons returns how many amazons of side remain on the board.
func (b *Board) CountAmazons(side Side) int {
	want := side.amazonCell()
	count := 0
	for sq := 0; sq < NumSquares; sq++ {
		if b.cells[sq] == want {
			count++
		}
	}
	return count
}

// Axis selects the reflection axis for Reflect and ReflectMove, used by
// symmetry tests.
type Axis int

const (
	AxisHorizontal Axis = iota // flip rows
	AxisVertical               // flip columns
)

// Reflect returns a new board reflected about axis.
func (b Board) Reflect(axis Axis) Board {
	var out Board
	for sq := 0; sq < NumSquares; sq++ {
		row, col := RowCol(sq)
		var r, c int
		if axis == AxisHorizontal {
			r, c = Size-1-row, col
		} else {
			r, c = row, Size-1-col
		}
		out.cells[Square(r, c)] = b.cells[sq]
	}
	return out
}

// ReflectMove reflects a single move about axis, matching Board.Reflect.
func ReflectMove(m Move, axis Axis) Move {
	reflect := func(sq int8) int8 {
		row, col := RowCol(int(sq))
		if axis == AxisHorizontal {
			row = Size - 1 - row
		} else {
			col = Size - 1 - col
		}
		return int8(Square(row, col))
	}
	return Move{From: reflect(m.From), To: reflect(m.To), Arrow: reflect(m.Arrow)}
}
