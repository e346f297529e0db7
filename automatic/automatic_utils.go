package automatic

// Data collection for automatic game. Allow computer vs computer games, etc.

import (
	"bufio"
	"context"
	"errors"
	"expvar"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int
)

// playing guards against two runs at once, which would truncate each
// other's log file.
var playing atomic.Bool

var ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

type job struct {
	idx int
}

// StartCompVComp plays numGames games between player1 (x) and player2 (o)
// on threads goroutines and logs one CSV line per game to outputFilename.
// If seeds is not empty, game i is played with seeds[i % len(seeds)] so
// that runs can be repeated. It returns once every game is logged, ctx is
// cancelled, or a game fails.
func StartCompVComp(ctx context.Context, settings GameSettings, numGames, threads int,
	outputFilename, player1, player2 string, seeds [][32]byte) error {

	if !playing.CompareAndSwap(false, true) {
		return ErrAlreadyPlaying
	}
	defer playing.Store(false)
	if threads < 1 {
		threads = 1
	}
	// Fail early on bad player names.
	for _, name := range []string{player1, player2} {
		if _, err := NewPlayer(name, settings.Plies, nil); err != nil {
			return err
		}
	}

	logfile, err := os.Create(outputFilename)
	if err != nil {
		return err
	}
	defer logfile.Close()
	log.Debug().Msgf("Starting %v games, %v threads", numGames, threads)

	CVCCounter.Set(0)
	jobs := make(chan job, 100)
	logChan := make(chan string, 100)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < numGames; i++ {
			select {
			case jobs <- job{idx: i}:
			case <-gctx.Done():
				log.Info().Msg("Got stop signal, exiting soon...")
				return nil
			}
			if (i+1)%1000 == 0 {
				log.Info().Msgf("Queued %v jobs", i+1)
			}
		}
		log.Info().Msg("Finished queueing all jobs.")
		return nil
	})

	var wg sync.WaitGroup
	wg.Add(threads)
	for range threads {
		g.Go(func() error {
			defer wg.Done()
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			r := &GameRunner{logchan: logChan, settings: settings}
			for j := range jobs {
				if gctx.Err() != nil {
					return nil
				}
				var rng *frand.RNG
				if len(seeds) > 0 {
					seed := seeds[j.idx%len(seeds)]
					rng = frand.NewCustom(seed[:], 1024, 12)
				}
				if err := r.Init(player1, player2, rng); err != nil {
					return err
				}
				if err := r.PlayGame(gctx); err != nil {
					if gctx.Err() != nil {
						return nil
					}
					return fmt.Errorf("game %d: %w", j.idx, err)
				}
				CVCCounter.Add(1)
			}
			return nil
		})
	}
	go func() {
		wg.Wait()
		close(logChan)
		log.Info().Msg("All games finished.")
	}()

	// Keep draining the channel after a write error so workers never block.
	w := bufio.NewWriter(logfile)
	_, werr := w.WriteString(logHeader)
	for line := range logChan {
		if werr == nil {
			_, werr = w.WriteString(line)
		}
	}
	if werr == nil {
		werr = w.Flush()
	}
	log.Info().Msg("Exiting game logger")
	if err := g.Wait(); err != nil {
		return err
	}
	return werr
}
