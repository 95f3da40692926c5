package engine

import (
	"math/bits"

	dragon "github.com/dylhunn/dragontoothmg"
)

const (
	minorPhase = 1
	rookPhase  = 2
	queenPhase = 4
	totalPhase = 2 * (4*minorPhase + 2*rookPhase + queenPhase)
)

var (
	materialMiddle = [6]int{100, 320, 330, 500, 950, 0}
	materialEnd    = [6]int{120, 300, 320, 550, 1000, 0}
)

// Piece-square tables from White's point of view, a1 = index 0.
// Black uses the vertically mirrored square.
var pstPawn = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	2, 2, 2, -4, -4, 2, 2, 2,
	2, -2, -4, 0, 0, -4, -2, 2,
	0, 0, 0, 12, 12, 0, 0, 0,
	4, 4, 8, 16, 16, 8, 4, 4,
	10, 10, 16, 24, 24, 16, 10, 10,
	30, 30, 30, 30, 30, 30, 30, 30,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var pstKnight = [64]int{
	-40, -24, -16, -12, -12, -16, -24, -40,
	-24, -8, 0, 4, 4, 0, -8, -24,
	-16, 4, 8, 12, 12, 8, 4, -16,
	-12, 4, 12, 16, 16, 12, 4, -12,
	-12, 4, 12, 16, 16, 12, 4, -12,
	-16, 4, 8, 12, 12, 8, 4, -16,
	-24, -8, 0, 4, 4, 0, -8, -24,
	-40, -24, -16, -12, -12, -16, -24, -40,
}

var pstBishop = [64]int{
	-16, -8, -8, -8, -8, -8, -8, -16,
	-8, 6, 0, 2, 2, 0, 6, -8,
	-8, 8, 8, 6, 6, 8, 8, -8,
	-8, 0, 8, 10, 10, 8, 0, -8,
	-8, 2, 6, 10, 10, 6, 2, -8,
	-8, 0, 4, 6, 6, 4, 0, -8,
	-8, 0, 0, 0, 0, 0, 0, -8,
	-16, -8, -8, -8, -8, -8, -8, -16,
}

var pstRook = [64]int{
	0, 0, 2, 6, 6, 2, 0, 0,
	-4, 0, 0, 0, 0, 0, 0, -4,
	-4, 0, 0, 0, 0, 0, 0, -4,
	-4, 0, 0, 0, 0, 0, 0, -4,
	-4, 0, 0, 0, 0, 0, 0, -4,
	-4, 0, 0, 0, 0, 0, 0, -4,
	8, 12, 12, 12, 12, 12, 12, 8,
	4, 4, 4, 4, 4, 4, 4, 4,
}

var pstQueen = [64]int{
	-12, -8, -8, -4, -4, -8, -8, -12,
	-8, 0, 2, 0, 0, 0, 0, -8,
	-8, 2, 2, 2, 2, 2, 0, -8,
	-4, 0, 2, 2, 2, 2, 0, -4,
	0, 0, 2, 2, 2, 2, 0, -4,
	-8, 2, 2, 2, 2, 2, 0, -8,
	-8, 0, 2, 0, 0, 0, 0, -8,
	-12, -8, -8, -4, -4, -8, -8, -12,
}

var pstKingMiddle = [64]int{
	16, 24, 8, 0, 0, 12, 24, 16,
	16, 16, 0, 0, 0, 0, 16, 16,
	-8, -16, -16, -16, -16, -16, -16, -8,
	-16, -24, -24, -32, -32, -24, -24, -16,
	-24, -32, -32, -40, -40, -32, -32, -24,
	-24, -32, -32, -40, -40, -32, -32, -24,
	-24, -32, -32, -40, -40, -32, -32, -24,
	-24, -32, -32, -40, -40, -32, -32, -24,
}

var pstKingEnd = [64]int{
	-40, -24, -16, -8, -8, -16, -24, -40,
	-24, -8, 0, 8, 8, 0, -8, -24,
	-16, 0, 12, 16, 16, 12, 0, -16,
	-8, 8, 16, 24, 24, 16, 8, -8,
	-8, 8, 16, 24, 24, 16, 8, -8,
	-16, 0, 12, 16, 16, 12, 0, -16,
	-24, -8, 0, 8, 8, 0, -8, -24,
	-40, -24, -16, -8, -8, -16, -24, -40,
}

// Evaluate returns a static score in centipawns, relative to the side to
// move. It is the single evaluation used by both the full search and the
// quiescence probe, so the two agree exactly on tactic-free positions.
func Evaluate(b *dragon.Board) int {
	var middle, end, phase int

	var wm, we, wp = evalSide(&b.White, false)
	var bm, be, bp = evalSide(&b.Black, true)
	middle = wm - bm
	end = we - be
	phase = wp + bp

	if phase > totalPhase {
		phase = totalPhase
	}
	var result = (middle*phase + end*(totalPhase-phase)) / totalPhase

	if !b.Wtomove {
		result = -result
	}
	return result
}

func evalSide(bb *dragon.Bitboards, mirror bool) (middle, end, phase int) {
	middle, end = evalPieces(bb.Pawns, 0, mirror, &pstPawn, &pstPawn, middle, end)
	middle, end = evalPieces(bb.Knights, 1, mirror, &pstKnight, &pstKnight, middle, end)
	middle, end = evalPieces(bb.Bishops, 2, mirror, &pstBishop, &pstBishop, middle, end)
	middle, end = evalPieces(bb.Rooks, 3, mirror, &pstRook, &pstRook, middle, end)
	middle, end = evalPieces(bb.Queens, 4, mirror, &pstQueen, &pstQueen, middle, end)
	middle, end = evalPieces(bb.Kings, 5, mirror, &pstKingMiddle, &pstKingEnd, middle, end)

	phase = minorPhase*bits.OnesCount64(bb.Knights|bb.Bishops) +
		rookPhase*bits.OnesCount64(bb.Rooks) +
		queenPhase*bits.OnesCount64(bb.Queens)
	return
}

func evalPieces(x uint64, piece int, mirror bool, pstMiddle, pstEnd *[64]int, middle, end int) (int, int) {
	for ; x != 0; x &= x - 1 {
		var sq = bits.TrailingZeros64(x)
		if mirror {
			sq ^= 56
		}
		middle += materialMiddle[piece] + pstMiddle[sq]
		end += materialEnd[piece] + pstEnd[sq]
	}
	return middle, end
}
