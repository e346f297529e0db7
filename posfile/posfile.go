// Package posfile reads and writes positions as YAML, e.g.
//
//	width: 7
//	height: 6
//	tomove: x
//	plies: 6
//	rows:
//	  - "......."
//	  - "......."
//	  - "......."
//	  - "...o..."
//	  - "...x..."
//	  - "..xox.."
//
// Rows are listed top row first. Width and height may be omitted and are
// then taken from the rows.
package posfile

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/domino14/connect4/board"
	"github.com/domino14/connect4/game"
)

var ErrBadPosition = errors.New("bad position file")

type Position struct {
	Width  int      `yaml:"width,omitempty"`
	Height int      `yaml:"height,omitempty"`
	ToMove string   `yaml:"tomove"`
	Plies  int      `yaml:"plies,omitempty"`
	Rows   []string `yaml:"rows"`
}

func Parse(data []byte) (*Position, error) {
	p := &Position{}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadPosition, err)
	}
	if len(p.Rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrBadPosition)
	}
	if p.ToMove == "" {
		p.ToMove = board.PlayerX.String()
	}
	if _, err := p.Player(); err != nil {
		return nil, err
	}
	if p.Plies < 0 {
		return nil, fmt.Errorf("%w: negative plies", ErrBadPosition)
	}
	return p, nil
}

func Load(path string) (*Position, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Player is the side to move.
func (p *Position) Player() (board.Stone, error) {
	s, err := board.StoneFromString(p.ToMove)
	if err != nil {
		return board.Empty, fmt.Errorf("%w: %w", ErrBadPosition, err)
	}
	return s, nil
}

// Board builds the board, checking it against the declared dimensions.
func (p *Position) Board() (*board.Board, error) {
	b, err := board.FromRows(p.Rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadPosition, err)
	}
	if (p.Width != 0 && p.Width != b.Width()) || (p.Height != 0 && p.Height != b.Height()) {
		return nil, fmt.Errorf("%w: declared %dx%d but rows are %dx%d",
			ErrBadPosition, p.Width, p.Height, b.Width(), b.Height())
	}
	return b, nil
}

// Game resumes a game from the position.
func (p *Position) Game() (*game.Game, error) {
	b, err := p.Board()
	if err != nil {
		return nil, err
	}
	s, err := p.Player()
	if err != nil {
		return nil, err
	}
	return game.FromBoard(b, s)
}

// FromGame captures the current position of g.
func FromGame(g *game.Game, plies int) *Position {
	b := g.Board()
	return &Position{
		Width:  b.Width(),
		Height: b.Height(),
		ToMove: g.PlayerOnTurn().String(),
		Plies:  plies,
		Rows:   b.Rows(),
	}
}

func (p *Position) Marshal() ([]byte, error) {
	return yaml.Marshal(p)
}

func (p *Position) Save(path string) error {
	data, err := p.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
