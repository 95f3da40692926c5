// Package book runs a bounded-depth search over every position of a book
// file, reporting per-line progress and total elapsed time.
package book

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"marmot/internal/epd"
	"marmot/pkg/engine"
)

type Config struct {
	BookPath string
	Depth    int
	Threads  int
	Hash     int
	// SkipMalformed skips unparseable lines instead of aborting.
	SkipMalformed bool
}

// Run searches each line to the depth bound. Between lines the worker
// pool's transient search state is reset and the shared table is cleared,
// so every line is searched from a cold cache; pool size and table
// allocation are untouched for the whole run.
func Run(ctx context.Context, w io.Writer, cfg Config) error {
	file, err := os.Open(cfg.BookPath)
	if err != nil {
		return err
	}
	defer file.Close()

	var eng = engine.NewEngine()
	eng.Hash = cfg.Hash
	eng.Threads = cfg.Threads
	eng.Prepare()

	var limits = engine.SearchLimits{
		MultiPV:      1,
		DepthLimited: true,
		Depth:        cfg.Depth,
	}

	var start = time.Now()
	var sc = bufio.NewScanner(file)
	var lineNum int
	for sc.Scan() {
		lineNum++
		var line = sc.Text()
		if len(line) == 0 {
			continue
		}

		board, err := epd.ParseBoard(line)
		if err != nil {
			if cfg.SkipMalformed {
				log.Println("evalbook skip line", lineNum, err)
				continue
			}
			return fmt.Errorf("line %d: %w", lineNum, err)
		}

		limits.Start = time.Now()
		eng.Search(ctx, engine.SearchParams{Board: board, Limits: limits})
		eng.ResetThreads()
		eng.ClearTable()

		if _, err := fmt.Fprintf(w, "FEN: %s\n", line); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "Time %dms\n", time.Since(start).Milliseconds())
	return err
}
