package datagen

import (
	"bufio"
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"marmot/internal/epd"
)

func TestRandomOpeningDeterministic(t *testing.T) {
	first, ok := randomOpening(rand.New(rand.NewSource(7)))
	if !ok {
		t.Fatal("no opening dealt")
	}
	second, ok := randomOpening(rand.New(rand.NewSource(7)))
	if !ok {
		t.Fatal("no opening dealt")
	}
	if first != second {
		t.Errorf("same seed dealt different openings: %q vs %q", first, second)
	}
	if _, err := epd.ParseBoard(first); err != nil {
		t.Errorf("opening %q does not parse: %v", first, err)
	}
}

func TestRunClampsWorkerCount(t *testing.T) {
	if testing.Short() {
		t.Skip("plays self-play games")
	}

	// A non-positive worker count must still drain the opening producer
	// instead of deadlocking the pipeline.
	var out = filepath.Join(t.TempDir(), "out.book")
	var err = Run(context.Background(), Config{
		Output:  out,
		Games:   1,
		Depth:   1,
		Threads: 0,
		Hash:    1,
		Seed:    3,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatal(err)
	}
}

func TestRunProducesParseableLines(t *testing.T) {
	if testing.Short() {
		t.Skip("plays self-play games")
	}

	var out = filepath.Join(t.TempDir(), "out.book")
	var err = Run(context.Background(), Config{
		Output:  out,
		Games:   2,
		Depth:   1,
		Threads: 1,
		Hash:    1,
		Seed:    1,
	})
	if err != nil {
		t.Fatal(err)
	}

	file, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	var sc = bufio.NewScanner(file)
	var lines int
	var seen = make(map[string]bool)
	for sc.Scan() {
		lines++
		line, err := epd.Parse(sc.Text())
		if err != nil {
			t.Fatalf("line %d: %v", lines, err)
		}
		if _, err := epd.ParseBoard(line.Fen); err != nil {
			t.Fatalf("line %d: %v", lines, err)
		}
		if seen[line.Fen] {
			t.Errorf("line %d: duplicate position %q", lines, line.Fen)
		}
		seen[line.Fen] = true
	}
	if err := sc.Err(); err != nil {
		t.Fatal(err)
	}
	if lines == 0 {
		t.Error("no positions recorded")
	}
}
