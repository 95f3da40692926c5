package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"

	"marmot/internal/bench"
	"marmot/internal/book"
	"marmot/internal/datagen"
	"marmot/internal/filter"
	"marmot/internal/nnbook"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	var err = run(os.Args)
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

// run routes the command name to one pipeline. An absent or unrecognized
// command falls through without error; a recognized command with a missing
// required argument fails before any resource is allocated.
func run(args []string) error {
	if len(args) < 2 {
		return nil
	}

	switch args[1] {
	case "bench":
		return bench.Run(os.Stdout, bench.Config{
			Depth:   intArg(args, 2, 13),
			Threads: intArg(args, 3, 1),
			Hash:    intArg(args, 4, 16),
		})

	case "evalbook":
		if len(args) < 3 {
			return fmt.Errorf("usage: %s evalbook <book> [depth] [threads] [megabytes]", args[0])
		}
		return book.Run(context.Background(), os.Stdout, book.Config{
			BookPath: args[2],
			Depth:    intArg(args, 3, 12),
			Threads:  intArg(args, 4, 1),
			Hash:     intArg(args, 5, 2),
		})

	case "filter":
		if len(args) < 3 {
			return fmt.Errorf("usage: %s filter <book>", args[0])
		}
		return filter.Run(os.Stdout, filter.Config{BookPath: args[2]})

	case "nnbook":
		if len(args) < 3 {
			return fmt.Errorf("usage: %s nnbook <book>", args[0])
		}
		return nnbook.Run(nnbook.Config{
			BookPath: args[2],
			OutPath:  "output.nnbook",
		})

	case "datagen":
		return runDatagen(args[0], args[2:])
	}

	return nil
}

func runDatagen(program string, args []string) error {
	var cfg = datagen.Config{
		Output:  "datagen.book",
		Games:   1000,
		Depth:   8,
		Threads: max(1, runtime.NumCPU()/2),
		Hash:    32,
		Seed:    1,
	}

	var fs = flag.NewFlagSet(program+" datagen", flag.ContinueOnError)
	fs.StringVar(&cfg.Output, "output", cfg.Output, "Path to output book file")
	fs.StringVar(&cfg.StoreDir, "store", cfg.StoreDir, "Directory of the cross-run seen-position store (empty disables it)")
	fs.IntVar(&cfg.Games, "games", cfg.Games, "Number of self-play games")
	fs.IntVar(&cfg.Depth, "depth", cfg.Depth, "Search depth per move")
	fs.IntVar(&cfg.Threads, "threads", cfg.Threads, "Number of concurrent games")
	fs.IntVar(&cfg.Hash, "hash", cfg.Hash, "Transposition table size per game worker, megabytes")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Opening randomization seed")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return datagen.Run(context.Background(), cfg)
}

func intArg(args []string, index, defaultVal int) int {
	if index >= len(args) {
		return defaultVal
	}
	var v, err = strconv.Atoi(args[index])
	if err != nil {
		return defaultVal
	}
	return v
}
