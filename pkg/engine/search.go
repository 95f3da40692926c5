package engine

import (
	"math/bits"

	dragon "github.com/dylhunn/dragontoothmg"
)

const (
	stackSize = 64
	maxHeight = stackSize - 1

	valueDraw = 0
	// ValueMate is the score of a checkmate delivered at the root.
	ValueMate     = 30000
	ValueInfinity = ValueMate + 1
	valueWin      = ValueMate - 2*maxHeight
	valueLoss     = -valueWin
)

func lossIn(height int) int {
	return -ValueMate + height
}

func valueToTT(v, height int) int {
	if v >= valueWin {
		return v + height
	}
	if v <= valueLoss {
		return v - height
	}
	return v
}

func valueFromTT(v, height int) int {
	if v >= valueWin {
		return v - height
	}
	if v <= valueLoss {
		return v + height
	}
	return v
}

// IsMateScore reports whether v encodes a forced mate rather than a
// centipawn evaluation.
func IsMateScore(v int) bool {
	return v >= valueWin || v <= valueLoss
}

type thread struct {
	engine  *Engine
	board   dragon.Board
	history historyTable
	nodes   int64
}

type orderedMove struct {
	move dragon.Move
	key  int32
}

const (
	sortKeyTrans   = 1 << 30
	sortKeyCapture = 1 << 20
)

var sortPieceValues = [7]int32{0, 1, 2, 3, 4, 5, 6}

func pieceClassOn(bb *dragon.Bitboards, sqBit uint64) int32 {
	switch {
	case bb.Pawns&sqBit != 0:
		return 1
	case bb.Knights&sqBit != 0:
		return 2
	case bb.Bishops&sqBit != 0:
		return 3
	case bb.Rooks&sqBit != 0:
		return 4
	case bb.Queens&sqBit != 0:
		return 5
	case bb.Kings&sqBit != 0:
		return 6
	}
	return 0
}

func mvvlva(b *dragon.Board, move dragon.Move) int32 {
	var fromBit = uint64(1) << move.From()
	var toBit = uint64(1) << move.To()
	var victim = pieceClassOn(&b.White, toBit) + pieceClassOn(&b.Black, toBit)
	var attacker = pieceClassOn(&b.White, fromBit) + pieceClassOn(&b.Black, fromBit)
	var promo = sortPieceValues[move.Promote()]
	return 8*(victim+promo) - attacker
}

func isTactical(b *dragon.Board, move dragon.Move) bool {
	return dragon.IsCapture(move, b) || move.Promote() != 0
}

func (t *thread) scoreMoves(ml []dragon.Move, transMove dragon.Move) []orderedMove {
	var b = &t.board
	var result = make([]orderedMove, len(ml))
	for i, move := range ml {
		var key int32
		if move == transMove {
			key = sortKeyTrans
		} else if isTactical(b, move) {
			key = sortKeyCapture + mvvlva(b, move)
		} else {
			key = t.history.Get(b.Wtomove, move)
		}
		result[i] = orderedMove{move: move, key: key}
	}
	return result
}

// nextMove moves the best remaining entry to position index and returns it.
func nextMove(ml []orderedMove, index int) dragon.Move {
	var bestIndex = index
	for i := bestIndex + 1; i < len(ml); i++ {
		if ml[i].key > ml[bestIndex].key {
			bestIndex = i
		}
	}
	if bestIndex != index {
		ml[index], ml[bestIndex] = ml[bestIndex], ml[index]
	}
	return ml[index].move
}

func (t *thread) alphabeta(alpha, beta, depth, height int) int {
	if depth <= 0 || height >= maxHeight {
		return t.quiesce(alpha, beta, height)
	}
	t.nodes++

	var b = &t.board
	var key = b.Hash()
	var transMove dragon.Move

	if ttDepth, ttScore, ttBound, ttMove, ok := t.engine.table.Read(key); ok {
		transMove = dragon.Move(ttMove)
		if ttDepth >= depth {
			ttScore = valueFromTT(ttScore, height)
			if ttBound == boundExact ||
				(ttBound == boundLower && ttScore >= beta) ||
				(ttBound == boundUpper && ttScore <= alpha) {
				return ttScore
			}
		}
	}

	var legal = b.GenerateLegalMoves()
	if len(legal) == 0 {
		if b.OurKingInCheck() {
			return lossIn(height)
		}
		return valueDraw
	}

	var ml = t.scoreMoves(legal, transMove)
	var bestMove dragon.Move
	var bound = boundUpper
	for i := range ml {
		var move = nextMove(ml, i)
		var unapply = b.Apply(move)
		var score = -t.alphabeta(-beta, -alpha, depth-1, height+1)
		unapply()
		if score > alpha {
			alpha = score
			bestMove = move
			bound = boundExact
			if alpha >= beta {
				bound = boundLower
				if !isTactical(b, move) {
					t.history.Update(b.Wtomove, move, depth)
				}
				break
			}
		}
	}

	t.engine.table.Update(key, depth, valueToTT(alpha, height), bound, uint32(bestMove))
	return alpha
}

// quiesce resolves hanging captures before trusting the static evaluation.
// It is floored at the stand-pat score, so on a position with no profitable
// capture it returns exactly Evaluate(b).
func (t *thread) quiesce(alpha, beta, height int) int {
	t.nodes++

	var b = &t.board
	var eval = Evaluate(b)
	if height >= maxHeight {
		return eval
	}
	if eval > alpha {
		alpha = eval
		if alpha >= beta {
			return alpha
		}
	}

	var legal = b.GenerateLegalMoves()
	var ml = make([]orderedMove, 0, len(legal))
	for _, move := range legal {
		if isTactical(b, move) {
			ml = append(ml, orderedMove{move: move, key: mvvlva(b, move)})
		}
	}
	for i := range ml {
		var move = nextMove(ml, i)
		var unapply = b.Apply(move)
		var score = -t.quiesce(-beta, -alpha, height+1)
		unapply()
		if score > alpha {
			alpha = score
			if alpha >= beta {
				break
			}
		}
	}
	return alpha
}

func (t *thread) rootSearch(legal []dragon.Move, depth int, prevBest dragon.Move) (int, dragon.Move) {
	var b = &t.board
	var key = b.Hash()
	var ml = t.scoreMoves(legal, prevBest)
	var alpha = -ValueInfinity
	var best = legal[0]
	for i := range ml {
		var move = nextMove(ml, i)
		var unapply = b.Apply(move)
		var score = -t.alphabeta(-ValueInfinity, -alpha, depth-1, 1)
		unapply()
		if score > alpha {
			alpha = score
			best = move
		}
	}
	t.engine.table.Update(key, depth, valueToTT(alpha, 0), boundExact, uint32(best))
	return alpha, best
}

// iterate runs iterative deepening to the fixed depth bound. Depth is the
// sole termination condition; there is no clock and no cancellation.
func (t *thread) iterate(depthLimit int) (score int, best dragon.Move) {
	var legal = t.board.GenerateLegalMoves()
	if len(legal) == 0 {
		return 0, 0
	}
	best = legal[0]
	for depth := 1; depth <= depthLimit; depth++ {
		score, best = t.rootSearch(legal, depth, best)
	}
	return score, best
}

// ponderMove reads the expected reply from the shared table.
func (t *thread) ponderMove(best dragon.Move) dragon.Move {
	if best == 0 {
		return 0
	}
	var unapply = t.board.Apply(best)
	defer unapply()
	var _, _, _, ttMove, ok = t.engine.table.Read(t.board.Hash())
	if !ok || ttMove == 0 {
		return 0
	}
	for _, move := range t.board.GenerateLegalMoves() {
		if uint32(move) == ttMove {
			return move
		}
	}
	return 0
}

// popcount of both occupancy halves, used by callers that reason about
// total material.
func PieceCount(b *dragon.Board) int {
	return bits.OnesCount64(b.White.All | b.Black.All)
}
