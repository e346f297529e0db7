// Package game holds the state of one connect-four game: the canonical
// board, whose turn it is, the move history and the result. A Game does
// not care who its players are; humans and bots drive it from outside.
package game

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/connect4/board"
	"github.com/domino14/connect4/rules"
)

var (
	ErrGameOver       = errors.New("the game is over")
	ErrBothConnected  = errors.New("both players have four in a row")
	ErrNothingToUndo  = errors.New("no moves to undo")
	ErrInvalidStarter = errors.New("first player must be x or o")
)

// Result of a game. The player who drops x stones is player 1.
type Result int

const (
	Ongoing Result = iota
	XWins
	OWins
	Draw
)

func (r Result) String() string {
	switch r {
	case XWins:
		return "Player 1 won."
	case OWins:
		return "Player 2 won."
	case Draw:
		return "Draw."
	}
	return "Game in progress."
}

type Game struct {
	uid string
	// initial is the position the game started from; history is replayed
	// on top of it when undoing.
	initial *board.Board
	board   *board.Board

	first   board.Stone
	onturn  board.Stone
	turnnum int
	history []int

	playing bool
	winner  board.Stone
	lastPos board.Position
}

func newUID() string {
	return strconv.FormatUint(frand.Uint64n(1<<63), 36)
}

// NewGame starts a game on an empty board.
func NewGame(width, height int, first board.Stone) (*Game, error) {
	if first != board.PlayerX && first != board.PlayerO {
		return nil, ErrInvalidStarter
	}
	b := board.NewBoard(width, height)
	g := &Game{
		uid:     newUID(),
		initial: b.Clone(),
		board:   b,
		first:   first,
		onturn:  first,
		playing: true,
		lastPos: board.Position{Row: -1, Column: -1},
	}
	log.Debug().Str("uid", g.uid).Str("first", first.String()).Msg("new-game")
	return g, nil
}

// FromBoard resumes a game from an arbitrary position, with onTurn to
// move. A position that is already won or full starts out finished.
func FromBoard(b *board.Board, onTurn board.Stone) (*Game, error) {
	if onTurn != board.PlayerX && onTurn != board.PlayerO {
		return nil, ErrInvalidStarter
	}
	g := &Game{
		uid:     newUID(),
		initial: b.Clone(),
		board:   b.Clone(),
		first:   onTurn,
		onturn:  onTurn,
		playing: true,
		lastPos: board.Position{Row: -1, Column: -1},
	}
	if err := g.checkFinished(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) checkFinished() error {
	xwon := rules.HasConnect(g.board, board.PlayerX)
	owon := rules.HasConnect(g.board, board.PlayerO)
	switch {
	case xwon && owon:
		return ErrBothConnected
	case xwon:
		g.playing, g.winner = false, board.PlayerX
	case owon:
		g.playing, g.winner = false, board.PlayerO
	case g.board.IsBoardFull():
		g.playing = false
	}
	return nil
}

// PlayMove drops a stone for the player on turn. Board errors
// (board.ErrInvalidColumn, board.ErrColumnFull) are returned unchanged and
// leave the game as it was.
func (g *Game) PlayMove(column int) error {
	if !g.playing {
		return ErrGameOver
	}
	pos, err := g.board.Drop(g.onturn, column)
	if err != nil {
		return err
	}
	g.history = append(g.history, column)
	g.turnnum++
	g.lastPos = pos
	if rules.WinningAt(g.board, g.onturn, pos) {
		g.playing = false
		g.winner = g.onturn
		log.Debug().Str("uid", g.uid).Str("winner", g.winner.String()).
			Int("turns", g.turnnum).Msg("game-won")
		return nil
	}
	if g.board.IsBoardFull() {
		g.playing = false
		log.Debug().Str("uid", g.uid).Int("turns", g.turnnum).Msg("game-drawn")
		return nil
	}
	g.onturn = g.onturn.Opponent()
	return nil
}

// UnplayLastMove takes back the last move by replaying the history, minus
// that move, from the starting position.
func (g *Game) UnplayLastMove() error {
	if len(g.history) == 0 {
		return ErrNothingToUndo
	}
	hist := g.history[:len(g.history)-1]
	g.board.CopyFrom(g.initial)
	g.history = nil
	g.turnnum = 0
	g.onturn = g.first
	g.playing = true
	g.winner = board.Empty
	g.lastPos = board.Position{Row: -1, Column: -1}
	if err := g.checkFinished(); err != nil {
		return err
	}
	for _, c := range hist {
		if err := g.PlayMove(c); err != nil {
			return fmt.Errorf("replaying column %d: %w", c, err)
		}
	}
	return nil
}

func (g *Game) Uid() string {
	return g.uid
}

// Board returns the canonical board. Callers must not modify it; use
// PlayMove instead.
func (g *Game) Board() *board.Board {
	return g.board
}

func (g *Game) PlayerOnTurn() board.Stone {
	return g.onturn
}

func (g *Game) FirstPlayer() board.Stone {
	return g.first
}

// Turn is the number of moves played in this game.
func (g *Game) Turn() int {
	return g.turnnum
}

// History returns a copy of the columns played, in order.
func (g *Game) History() []int {
	h := make([]int, len(g.history))
	copy(h, g.history)
	return h
}

// LastPosition is where the last stone landed, or row and column -1 if
// nothing has been played.
func (g *Game) LastPosition() board.Position {
	return g.lastPos
}

func (g *Game) Playing() bool {
	return g.playing
}

// Winner is Empty while the game is going on or if it was drawn.
func (g *Game) Winner() board.Stone {
	return g.winner
}

func (g *Game) Result() Result {
	switch {
	case g.playing:
		return Ongoing
	case g.winner == board.PlayerX:
		return XWins
	case g.winner == board.PlayerO:
		return OWins
	}
	return Draw
}
