// Package bench measures search throughput over a fixed suite of
// positions and prints a per-position and overall report.
package bench

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	dragon "github.com/dylhunn/dragontoothmg"

	"marmot/internal/epd"
	"marmot/pkg/engine"
)

type Config struct {
	Depth   int
	Threads int
	Hash    int
	// Suite is an ordered list of FENs terminated by an empty-string
	// sentinel. Leave nil for the built-in suite.
	Suite []string
}

// Result collects the statistics of one benchmark position. Records are
// produced once and aggregated only after the whole suite has run.
type Result struct {
	Index   int
	Score   int
	Best    dragon.Move
	Ponder  dragon.Move
	Elapsed time.Duration
	Nodes   int64
}

// LoadSuite reads one FEN per line and appends the sentinel, so a file can
// substitute the built-in suite.
func LoadSuite(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var suite []string
	var sc = bufio.NewScanner(file)
	for sc.Scan() {
		if line := sc.Text(); len(line) != 0 {
			suite = append(suite, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return append(suite, ""), nil
}

// Measure searches every suite position at the depth bound and returns the
// per-position records plus the total wall time. The table is initialized
// once for the run and cleared, not resized, between positions so node
// counts are reproducible.
func Measure(cfg Config) ([]Result, time.Duration, error) {
	var suite = cfg.Suite
	if suite == nil {
		suite = DefaultSuite
	}

	var eng = engine.NewEngine()
	eng.Hash = cfg.Hash
	eng.Threads = cfg.Threads
	eng.Prepare()

	var limits = engine.SearchLimits{
		MultiPV:      1,
		DepthLimited: true,
		Depth:        cfg.Depth,
	}

	var ctx = context.Background()
	var start = time.Now()
	var results []Result
	for i, fen := range suite {
		if fen == "" {
			break
		}
		board, err := epd.ParseBoard(fen)
		if err != nil {
			return nil, 0, fmt.Errorf("suite position %d: %w", i+1, err)
		}

		limits.Start = time.Now()
		var info = eng.Search(ctx, engine.SearchParams{Board: board, Limits: limits})

		var r = Result{
			Index:   i + 1,
			Score:   info.Score,
			Elapsed: time.Since(limits.Start),
			Nodes:   info.Nodes,
		}
		if len(info.MainLine) > 0 {
			r.Best = info.MainLine[0]
		}
		if len(info.MainLine) > 1 {
			r.Ponder = info.MainLine[1]
		}
		results = append(results, r)

		eng.ClearTable()
	}
	return results, time.Since(start), nil
}

// Report prints the per-position lines and the overall aggregate. An empty
// suite still yields the overall line with zero nodes and zero nps.
func Report(w io.Writer, results []Result, elapsed time.Duration) {
	var line = "=================================================================================\n"
	fmt.Fprintf(w, "\n%s", line)

	var totalNodes int64
	for _, r := range results {
		fmt.Fprintf(w, "Bench [# %2d] %5d cp  Best:%6s  Ponder:%6s %12d nodes %8d nps\n",
			r.Index, r.Score, moveString(r.Best), moveString(r.Ponder),
			r.Nodes, nps(r.Nodes, r.Elapsed))
		totalNodes += r.Nodes
	}

	fmt.Fprint(w, line)
	fmt.Fprintf(w, "OVERALL: %53d nodes %8d nps\n", totalNodes, nps(totalNodes, elapsed))
}

func Run(w io.Writer, cfg Config) error {
	results, elapsed, err := Measure(cfg)
	if err != nil {
		return err
	}
	Report(w, results, elapsed)
	return nil
}

// nps guards the denominator with +1 so a sub-millisecond search cannot
// divide by zero.
func nps(nodes int64, elapsed time.Duration) int64 {
	return 1000 * nodes / (elapsed.Milliseconds() + 1)
}

func moveString(move dragon.Move) string {
	if move == 0 {
		return "0000"
	}
	return move.String()
}
