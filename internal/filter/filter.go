// Package filter selects quiet training positions from an annotated book.
package filter

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"

	"marmot/internal/epd"
	"marmot/pkg/engine"
)

type Config struct {
	BookPath string
	// SkipMalformed skips unparseable lines instead of aborting.
	SkipMalformed bool
}

// Run echoes, verbatim and in order, only the lines whose positions pass
// all three training-quality predicates:
//
//  1. the side to move is not in check (tactically unstable otherwise),
//  2. more than 6 pieces remain (6 and fewer is solved tablebase space),
//  3. the static evaluation equals the quiescence value (a mismatch means
//     unresolved tactics, so the static score would be a biased label).
func Run(w io.Writer, cfg Config) error {
	file, err := os.Open(cfg.BookPath)
	if err != nil {
		return err
	}
	defer file.Close()

	var eng = engine.NewEngine()
	eng.Threads = 1
	// Neither the evaluator nor the quiescence probe reads the shared
	// table, but Prepare sizes one regardless, so keep it at the minimum
	// instead of the 16 MB default.
	eng.Hash = 1
	eng.Prepare()

	var sc = bufio.NewScanner(file)
	var lineNum, kept int
	for sc.Scan() {
		lineNum++
		var line = sc.Text()
		if len(line) == 0 {
			continue
		}

		board, err := epd.ParseBoard(epd.FenPrefix(line))
		if err != nil {
			if cfg.SkipMalformed {
				log.Println("filter skip line", lineNum, err)
				continue
			}
			return fmt.Errorf("line %d: %w", lineNum, err)
		}

		if board.OurKingInCheck() {
			continue
		}
		if engine.PieceCount(&board) <= 6 {
			continue
		}
		var eval = eng.Evaluate(&board)
		var qs = eng.Quiesce(&board, -engine.ValueMate, engine.ValueMate)
		if eval != qs {
			continue
		}

		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		kept++
	}
	if err := sc.Err(); err != nil {
		return err
	}

	log.Println("filter finished",
		"input", cfg.BookPath,
		"lines", lineNum,
		"kept", kept)
	return nil
}
