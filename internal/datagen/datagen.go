// Package datagen produces annotated book lines by self-play: every
// recorded position is written as "<fen> [result] <eval>", the input format
// of the filter and nnbook pipelines.
package datagen

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"sync"
	"time"

	dragon "github.com/dylhunn/dragontoothmg"
	"golang.org/x/sync/errgroup"

	"marmot/internal/epd"
	"marmot/pkg/engine"
)

const (
	openingPlies = 8
	openingTries = 32
	maxGamePly   = 300
)

type Config struct {
	Output   string
	StoreDir string // empty disables the cross-run seen-position store
	Games    int
	Depth    int
	Threads  int
	Hash     int
	Seed     int64
}

type position struct {
	fen  string
	key  uint64
	eval int
}

type gameRecord struct {
	result    epd.Result
	positions []position
}

// Run wires the producer / worker / sink pipeline: one goroutine deals
// randomized openings, Threads workers play them out with their own
// engines, and a single sink deduplicates and writes the output file.
func Run(ctx context.Context, cfg Config) error {
	log.Println("datagen started",
		"games", cfg.Games,
		"depth", cfg.Depth,
		"threads", cfg.Threads)
	defer log.Println("datagen finished")

	g, ctx := errgroup.WithContext(ctx)

	var openings = make(chan string, 16)
	var games = make(chan gameRecord, 16)

	g.Go(func() error {
		defer close(openings)
		return dealOpenings(ctx, openings, cfg.Games, cfg.Seed)
	})

	// At least one worker must drain openings or the producer blocks and
	// the pipeline never finishes.
	var workers = max(1, cfg.Threads)

	var wg = &sync.WaitGroup{}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return playGames(ctx, openings, games, cfg.Depth, cfg.Hash)
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(games)
		return nil
	})

	g.Go(func() error {
		return saveGames(ctx, games, cfg.Output, cfg.StoreDir)
	})

	return g.Wait()
}

func dealOpenings(ctx context.Context, openings chan<- string, count int, seed int64) error {
	var rng = rand.New(rand.NewSource(seed))
	for i := 0; i < count; i++ {
		var fen, ok = randomOpening(rng)
		if !ok {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case openings <- fen:
		}
	}
	return nil
}

// randomOpening plays a few random legal moves from the initial position.
// A line that runs into mate or stalemate during the opening is discarded
// and redealt.
func randomOpening(rng *rand.Rand) (string, bool) {
	for try := 0; try < openingTries; try++ {
		var board = dragon.ParseFen(dragon.Startpos)
		var ok = true
		for ply := 0; ply < openingPlies; ply++ {
			var legal = board.GenerateLegalMoves()
			if len(legal) == 0 {
				ok = false
				break
			}
			board.Apply(legal[rng.Intn(len(legal))])
		}
		if ok && len(board.GenerateLegalMoves()) != 0 {
			return board.ToFen(), true
		}
	}
	return "", false
}

func playGames(ctx context.Context, openings <-chan string, games chan<- gameRecord, depth, hash int) error {
	var eng = engine.NewEngine()
	eng.Threads = 1
	eng.Hash = hash
	eng.Prepare()

	for fen := range openings {
		var game, err = playGame(ctx, eng, fen, depth)
		if err != nil {
			log.Println("playGame failed",
				"fen", fen,
				"err", err)
			continue
		}
		eng.ClearTable()
		eng.ResetThreads()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case games <- game:
		}
	}
	return nil
}

func playGame(ctx context.Context, eng *engine.Engine, startFen string, depth int) (gameRecord, error) {
	board, err := epd.ParseBoard(startFen)
	if err != nil {
		return gameRecord{}, err
	}

	var limits = engine.SearchLimits{
		MultiPV:      1,
		DepthLimited: true,
		Depth:        depth,
	}

	var game gameRecord
	game.result = epd.ResultDraw
	var counts = make(map[uint64]int)

	for ply := 0; ply < maxGamePly; ply++ {
		var legal = board.GenerateLegalMoves()
		if len(legal) == 0 {
			if board.OurKingInCheck() {
				if board.Wtomove {
					game.result = epd.ResultLoss
				} else {
					game.result = epd.ResultWin
				}
			}
			return game, nil
		}
		if engine.PieceCount(&board) == 2 {
			return game, nil
		}
		counts[board.Hash()]++
		if counts[board.Hash()] >= 2 {
			return game, nil
		}

		limits.Start = time.Now()
		var info = eng.Search(ctx, engine.SearchParams{Board: board, Limits: limits})
		if len(info.MainLine) == 0 {
			return game, fmt.Errorf("search returned no move for %v", board.ToFen())
		}

		// In-check and mate-bound positions make poor static-eval labels;
		// the filter would drop most of them anyway.
		if !board.OurKingInCheck() && !engine.IsMateScore(info.Score) {
			game.positions = append(game.positions, position{
				fen:  board.ToFen(),
				key:  board.Hash(),
				eval: info.Score,
			})
		}

		board.Apply(info.MainLine[0])
	}
	return game, nil
}

func saveGames(ctx context.Context, games <-chan gameRecord, outPath, storeDir string) error {
	file, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer file.Close()

	var seen func(key uint64) (bool, error)
	if storeDir != "" {
		store, err := OpenStore(storeDir)
		if err != nil {
			return err
		}
		defer store.Close()
		seen = store.SeenOrAdd
	} else {
		var repeats = make(map[uint64]struct{})
		seen = func(key uint64) (bool, error) {
			if _, found := repeats[key]; found {
				return true, nil
			}
			repeats[key] = struct{}{}
			return false, nil
		}
	}

	var w = bufio.NewWriter(file)
	var gameCount, positionCount, repeatCount int
	for game := range games {
		gameCount++
		for _, p := range game.positions {
			dup, err := seen(p.key)
			if err != nil {
				return err
			}
			if dup {
				repeatCount++
				continue
			}
			if _, err := fmt.Fprintf(w, "%s %s %d\n", p.fen, game.result.Marker(), p.eval); err != nil {
				return err
			}
			positionCount++
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	log.Println("saveGames",
		"output", outPath,
		"gameCount", gameCount,
		"positionCount", positionCount,
		"repeatCount", repeatCount)
	return nil
}
