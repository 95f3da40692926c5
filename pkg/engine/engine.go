package engine

import (
	"context"
	"time"

	dragon "github.com/dylhunn/dragontoothmg"
	"golang.org/x/sync/errgroup"
)

// SearchLimits bounds one search. Only the depth bound is honored: the
// harness relies on depth, not time, to guarantee termination.
type SearchLimits struct {
	MultiPV      int
	DepthLimited bool
	Depth        int
	Start        time.Time
}

type SearchParams struct {
	Board  dragon.Board
	Limits SearchLimits
}

type SearchInfo struct {
	Depth    int
	Score    int
	MainLine []dragon.Move
	Nodes    int64
	Time     time.Duration
}

// Engine owns a worker pool of Threads workers and a transposition table of
// Hash megabytes, shared by all workers. One Engine serves one pipeline
// invocation; callers never issue overlapping searches on the same handle.
type Engine struct {
	Hash    int
	Threads int
	table   *transTable
	threads []thread
}

func NewEngine() *Engine {
	return &Engine{
		Hash:    16,
		Threads: 1,
	}
}

// Prepare allocates the transposition table and the worker pool. The table
// is allocated once per run; calling Prepare again reallocates only if the
// size setting changed, which is not a supported mid-run operation.
func (e *Engine) Prepare() {
	if e.table == nil || e.table.Size() != e.Hash {
		e.table = newTransTable(e.Hash)
	}
	if len(e.threads) != e.Threads {
		e.threads = make([]thread, e.Threads)
		for i := range e.threads {
			e.threads[i].engine = e
		}
	}
}

// ClearTable zeroes the shared transposition table without reallocating it.
// Clearing between independent searches keeps node counts reproducible:
// cached entries from an earlier position would make later ones
// artificially fast.
func (e *Engine) ClearTable() {
	if e.table != nil {
		e.table.Clear()
	}
}

// ResetThreads clears the transient per-search state of every worker (the
// move-ordering history). Pool size and configuration are untouched.
func (e *Engine) ResetThreads() {
	for i := range e.threads {
		e.threads[i].history.Clear()
	}
}

// Search runs a depth-bounded best-move search and blocks until every
// worker has finished the full depth. Worker 0 is authoritative; helper
// workers re-search the same root through the shared table.
func (e *Engine) Search(ctx context.Context, params SearchParams) SearchInfo {
	var start = params.Limits.Start
	if start.IsZero() {
		start = time.Now()
	}
	e.Prepare()

	var depthLimit = maxHeight
	if params.Limits.DepthLimited {
		depthLimit = params.Limits.Depth
	}
	if depthLimit > maxHeight {
		depthLimit = maxHeight
	}

	for i := range e.threads {
		e.threads[i].nodes = 0
		e.threads[i].board = params.Board
	}

	var g, _ = errgroup.WithContext(ctx)
	for i := 1; i < len(e.threads); i++ {
		var t = &e.threads[i]
		g.Go(func() error {
			t.iterate(depthLimit)
			return nil
		})
	}

	var main = &e.threads[0]
	var score, best = main.iterate(depthLimit)
	g.Wait()

	var nodes int64
	for i := range e.threads {
		nodes += e.threads[i].nodes
	}

	var mainLine []dragon.Move
	if best != 0 {
		mainLine = append(mainLine, best)
		if ponder := main.ponderMove(best); ponder != 0 {
			mainLine = append(mainLine, ponder)
		}
	}

	return SearchInfo{
		Depth:    depthLimit,
		Score:    score,
		MainLine: mainLine,
		Nodes:    nodes,
		Time:     time.Since(start),
	}
}

// Evaluate exposes the static evaluation for callers that compare it
// against the quiescence value.
func (e *Engine) Evaluate(b *dragon.Board) int {
	return Evaluate(b)
}

// Quiesce runs a zero-depth quiescence search on worker 0.
func (e *Engine) Quiesce(b *dragon.Board, alpha, beta int) int {
	e.Prepare()
	var t = &e.threads[0]
	t.board = *b
	return t.quiesce(alpha, beta, 0)
}
