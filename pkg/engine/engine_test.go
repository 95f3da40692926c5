package engine

import (
	"context"
	"testing"

	dragon "github.com/dylhunn/dragontoothmg"
)

func TestEvaluateSymmetric(t *testing.T) {
	var board = dragon.ParseFen(dragon.Startpos)
	if v := Evaluate(&board); v != 0 {
		t.Errorf("startpos evaluation = %v, want 0", v)
	}
}

func TestQuiesceAgreesOnQuietPosition(t *testing.T) {
	// No captures are available from the initial position, so the
	// quiescence value must be exactly the static evaluation.
	var board = dragon.ParseFen(dragon.Startpos)
	var eng = NewEngine()
	eng.Hash = 1
	var eval = Evaluate(&board)
	var qs = eng.Quiesce(&board, -ValueMate, ValueMate)
	if eval != qs {
		t.Errorf("eval %v != quiesce %v", eval, qs)
	}
}

func TestSearchFindsMateInOne(t *testing.T) {
	var board = dragon.ParseFen("6k1/8/6K1/8/8/8/8/Q7 w - - 0 1")
	var eng = NewEngine()
	eng.Hash = 1
	var info = eng.Search(context.Background(), SearchParams{
		Board:  board,
		Limits: SearchLimits{MultiPV: 1, DepthLimited: true, Depth: 3},
	})
	if len(info.MainLine) == 0 {
		t.Fatal("no best move")
	}
	// Both Qa8 and Qg7 mate; the tie-break between equal scores is move
	// ordering, so either is a correct answer.
	if got := info.MainLine[0].String(); got != "a1a8" && got != "a1g7" {
		t.Errorf("best move = %v, want a mating move (a1a8 or a1g7)", got)
	}
	if !IsMateScore(info.Score) || info.Score <= 0 {
		t.Errorf("score = %v, want a winning mate score", info.Score)
	}
}

func TestSearchBestMoveIsLegal(t *testing.T) {
	var board = dragon.ParseFen(dragon.Startpos)
	var eng = NewEngine()
	eng.Hash = 1
	var info = eng.Search(context.Background(), SearchParams{
		Board:  board,
		Limits: SearchLimits{MultiPV: 1, DepthLimited: true, Depth: 1},
	})
	if info.Nodes <= 0 {
		t.Errorf("nodes = %v, want > 0", info.Nodes)
	}
	if len(info.MainLine) == 0 {
		t.Fatal("no best move")
	}
	var legal = board.GenerateLegalMoves()
	if len(legal) != 20 {
		t.Fatalf("startpos legal moves = %v, want 20", len(legal))
	}
	var found bool
	for _, move := range legal {
		if move.String() == info.MainLine[0].String() {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("best move %v is not a legal opening move", info.MainLine[0])
	}
}

func TestSearchDeterministic(t *testing.T) {
	// Two fresh handles must search the identical tree: same depth, same
	// table size, one worker.
	var fens = []string{
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"1k1r4/1pp4p/p7/4p3/8/P5P1/1PP4P/2K1R3 w - - 0 1",
	}
	for _, fen := range fens {
		var nodes [2]int64
		for i := 0; i < 2; i++ {
			var eng = NewEngine()
			eng.Hash = 2
			var board = dragon.ParseFen(fen)
			var info = eng.Search(context.Background(), SearchParams{
				Board:  board,
				Limits: SearchLimits{MultiPV: 1, DepthLimited: true, Depth: 4},
			})
			nodes[i] = info.Nodes
		}
		if nodes[0] != nodes[1] {
			t.Errorf("%v: node counts differ between runs: %v vs %v", fen, nodes[0], nodes[1])
		}
	}
}

func TestClearTableKeepsAllocation(t *testing.T) {
	var eng = NewEngine()
	eng.Hash = 1
	eng.Prepare()
	var table = eng.table
	const key = 0x4242424242424242
	table.Update(key, 5, 100, boundExact, 7)
	if _, _, _, _, ok := table.Read(key); !ok {
		t.Fatal("entry not stored")
	}
	eng.ClearTable()
	if eng.table != table {
		t.Error("ClearTable reallocated the table")
	}
	if _, _, _, _, ok := table.Read(key); ok {
		t.Error("entry survived ClearTable")
	}
}

func TestTransTableRoundTrip(t *testing.T) {
	var tt = newTransTable(1)
	tt.Update(0xdeadbeefcafe, 7, -250, boundLower, 12345)
	depth, score, bound, move, ok := tt.Read(0xdeadbeefcafe)
	if !ok {
		t.Fatal("entry not found")
	}
	if depth != 7 || score != -250 || bound != boundLower || move != 12345 {
		t.Errorf("got depth=%v score=%v bound=%v move=%v", depth, score, bound, move)
	}
	if _, _, _, _, ok := tt.Read(0x1234567812345678); ok {
		t.Error("found entry under a different key")
	}
}

func TestResetThreadsClearsHistory(t *testing.T) {
	var eng = NewEngine()
	eng.Hash = 1
	eng.Prepare()
	var move = dragon.Move(0)
	eng.threads[0].history.Update(true, move, 5)
	if eng.threads[0].history.Get(true, move) == 0 {
		t.Fatal("history not updated")
	}
	eng.ResetThreads()
	if eng.threads[0].history.Get(true, move) != 0 {
		t.Error("history survived ResetThreads")
	}
}

func TestMateValueRoundTrip(t *testing.T) {
	for _, height := range []int{0, 1, 10} {
		var v = lossIn(height)
		if got := valueFromTT(valueToTT(v, height), height); got != v {
			t.Errorf("height %v: got %v, want %v", height, got, v)
		}
	}
}
