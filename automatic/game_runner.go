// Package automatic plays computer-vs-computer games and logs their
// results, for comparing players against each other.
package automatic

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/connect4/ai/player"
	"github.com/domino14/connect4/board"
	"github.com/domino14/connect4/config"
	"github.com/domino14/connect4/game"
)

const (
	SearchPlayerName = "search"
	RandomPlayerName = "random"
)

const logHeader = "gameID,xplayer,oplayer,first,winner,turns,moves\n"

var ErrUnknownPlayer = errors.New("unknown player type")

// GameSettings are the config values a game runner needs. They are copied
// out of the config before any games start, so the config can keep
// changing while games run.
type GameSettings struct {
	Width  int
	Height int
	Plies  int
}

func SettingsFromConfig(cfg *config.Config) GameSettings {
	return GameSettings{
		Width:  cfg.Width(),
		Height: cfg.Height(),
		Plies:  cfg.Plies(),
	}
}

// NewPlayer builds a player from its name: "random", "search" (searching
// plies deep) or "search" followed by a depth, e.g. "search6".
func NewPlayer(name string, plies int, rng *frand.RNG) (player.Player, error) {
	if name == RandomPlayerName {
		return player.NewRandomPlayer(rng), nil
	}
	rest, ok := strings.CutPrefix(name, SearchPlayerName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlayer, name)
	}
	if rest != "" {
		var err error
		plies, err = strconv.Atoi(rest)
		if err != nil || plies < 1 {
			return nil, fmt.Errorf("%w: bad depth in %q", ErrUnknownPlayer, name)
		}
	}
	p := player.NewSearchPlayer(nil)
	p.Solver().SetPlies(plies)
	return p, nil
}

// GameRunner is the master struct here for the automatic game logic.
// players[0] drops x stones and players[1] drops o stones.
type GameRunner struct {
	game     *game.Game
	settings GameSettings
	rng      *frand.RNG
	logchan  chan string
	// gamechan, if set, receives the final board of every game.
	gamechan chan string

	players [2]player.Player
	names   [2]string
}

// NewGameRunner just instantiates and initializes a game runner with two
// search players.
func NewGameRunner(logchan chan string, cfg *config.Config) *GameRunner {
	r := &GameRunner{logchan: logchan, settings: SettingsFromConfig(cfg)}
	if err := r.Init(SearchPlayerName, SearchPlayerName, nil); err != nil {
		// The default names always resolve.
		panic(err)
	}
	return r
}

// Init sets up the two players. rng drives random players and the choice
// of who moves first; nil uses the global generator.
func (r *GameRunner) Init(player1, player2 string, rng *frand.RNG) error {
	r.rng = rng
	for idx, name := range []string{player1, player2} {
		p, err := NewPlayer(name, r.settings.Plies, rng)
		if err != nil {
			return err
		}
		r.players[idx] = p
		r.names[idx] = fmt.Sprintf("%s-%d", name, idx+1)
	}
	return nil
}

func (r *GameRunner) Game() *game.Game {
	return r.game
}

func (r *GameRunner) playerFor(s board.Stone) player.Player {
	if s == board.PlayerX {
		return r.players[0]
	}
	return r.players[1]
}

// StartGame sets up an empty board with first to move.
func (r *GameRunner) StartGame(first board.Stone) error {
	g, err := game.NewGame(r.settings.Width, r.settings.Height, first)
	if err != nil {
		return err
	}
	r.game = g
	return nil
}

func (r *GameRunner) randomFirst() board.Stone {
	var coin int
	if r.rng != nil {
		coin = r.rng.Intn(2)
	} else {
		coin = frand.Intn(2)
	}
	if coin == 0 {
		return board.PlayerX
	}
	return board.PlayerO
}

// PlayTurn asks the player on turn for a column and plays it.
func (r *GameRunner) PlayTurn(ctx context.Context) error {
	onturn := r.game.PlayerOnTurn()
	col, err := r.playerFor(onturn).ChooseMove(ctx, r.game)
	if err != nil {
		return err
	}
	return r.game.PlayMove(col)
}

// PlayGame plays one game to the end, with a random first mover, and logs
// it.
func (r *GameRunner) PlayGame(ctx context.Context) error {
	if err := r.StartGame(r.randomFirst()); err != nil {
		return err
	}
	for r.game.Playing() {
		if err := r.PlayTurn(ctx); err != nil {
			return err
		}
	}
	log.Debug().Str("gid", r.game.Uid()).Str("result", r.game.Result().String()).
		Int("turns", r.game.Turn()).Msg("game-over")
	if r.logchan != nil {
		r.logchan <- r.logLine()
	}
	if r.gamechan != nil {
		r.gamechan <- r.game.ToDisplayText()
	}
	return nil
}

func (r *GameRunner) logLine() string {
	winner := "draw"
	if r.game.Winner() != board.Empty {
		winner = r.game.Winner().String()
	}
	moves := make([]string, 0, r.game.Turn())
	for _, c := range r.game.History() {
		moves = append(moves, strconv.Itoa(c))
	}
	return fmt.Sprintf("%s,%s,%s,%s,%s,%d,%s\n",
		r.game.Uid(), r.names[0], r.names[1], r.game.FirstPlayer(),
		winner, r.game.Turn(), strings.Join(moves, " "))
}
