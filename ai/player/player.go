// Package player has the automatic move choosers that can drive a game.
package player

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/connect4/config"
	"github.com/domino14/connect4/game"
	"github.com/domino14/connect4/search/alphabeta"
)

var ErrNoMoves = errors.New("no moves available")

// Player chooses a column for the player on turn in g. It must not modify g.
type Player interface {
	Name() string
	ChooseMove(ctx context.Context, g *game.Game) (int, error)
}

// SearchPlayer plays the move found by the alpha-beta search.
type SearchPlayer struct {
	solver    *alphabeta.Solver
	lastScore float64
}

func NewSearchPlayer(cfg *config.Config) *SearchPlayer {
	return &SearchPlayer{solver: alphabeta.NewSolver(cfg)}
}

func (p *SearchPlayer) Name() string {
	return fmt.Sprintf("search-%d", p.solver.Plies())
}

// Solver exposes the underlying solver so callers can tune it.
func (p *SearchPlayer) Solver() *alphabeta.Solver {
	return p.solver
}

// LastScore is the evaluation of the last chosen move.
func (p *SearchPlayer) LastScore() float64 {
	return p.lastScore
}

func (p *SearchPlayer) ChooseMove(ctx context.Context, g *game.Game) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}
	if !g.Playing() {
		return -1, game.ErrGameOver
	}
	score, col, err := p.solver.BestMove(g.Board(), g.PlayerOnTurn())
	if err != nil {
		return -1, err
	}
	p.lastScore = score
	stats := p.solver.Stats()
	log.Debug().Str("player", g.PlayerOnTurn().String()).
		Float64("score", score).Int("column", col).
		Int("nodes", stats.Nodes).
		Dur("elapsed", stats.Elapsed).Msg("search-player-move")
	return col, nil
}

// RandomPlayer plays a uniformly random legal column.
type RandomPlayer struct {
	rng *frand.RNG
}

// NewRandomPlayer uses rng, or the global generator when rng is nil.
func NewRandomPlayer(rng *frand.RNG) *RandomPlayer {
	return &RandomPlayer{rng: rng}
}

func (p *RandomPlayer) Name() string {
	return "random"
}

func (p *RandomPlayer) ChooseMove(ctx context.Context, g *game.Game) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}
	if !g.Playing() {
		return -1, game.ErrGameOver
	}
	cols := g.Board().LegalColumns()
	if len(cols) == 0 {
		return -1, ErrNoMoves
	}
	var i int
	if p.rng != nil {
		i = p.rng.Intn(len(cols))
	} else {
		i = frand.Intn(len(cols))
	}
	return cols[i], nil
}
