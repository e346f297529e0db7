// Package rules implements connect-four win and threat detection.
package rules

import (
	"github.com/domino14/connect4/board"
)

// ConnectN is the number of stones in a row that wins.
const ConnectN = 4

// Direction is a unit step on the grid. DRow is positive going up.
type Direction struct {
	DRow int
	DCol int
}

func (d Direction) Reverse() Direction {
	return Direction{DRow: -d.DRow, DCol: -d.DCol}
}

var (
	N  = Direction{1, 0}
	S  = Direction{-1, 0}
	E  = Direction{0, 1}
	W  = Direction{0, -1}
	NE = Direction{1, 1}
	NW = Direction{1, -1}
	SE = Direction{-1, 1}
	SW = Direction{-1, -1}
)

// mirrored are the axes that must be scanned both ways. The vertical axis
// only ever needs S: a freshly dropped stone has nothing above it.
var mirrored = [...]Direction{NE, E, SE}

// RunLength counts player's stones starting one step past pos in dir,
// stopping at the edge or at any other cell. Capped at ConnectN-1.
func RunLength(b *board.Board, player board.Stone, pos board.Position, dir Direction) int {
	r, c := pos.Row, pos.Column
	for steps := 1; steps < ConnectN; steps++ {
		r += dir.DRow
		c += dir.DCol
		if !b.WithinBounds(board.Position{Row: r, Column: c}) || b.CellAt(r, c) != player {
			return steps - 1
		}
	}
	return ConnectN - 1
}

// MaxRunThrough is the longest line of player's stones pointing into pos
// along any axis, not counting pos itself. Capped at ConnectN-1.
func MaxRunThrough(b *board.Board, player board.Stone, pos board.Position) int {
	best := RunLength(b, player, pos, S)
	for _, d := range mirrored {
		run := RunLength(b, player, pos, d) + RunLength(b, player, pos, d.Reverse())
		if run > best {
			best = run
		}
	}
	return min(best, ConnectN-1)
}

// WinningAt reports whether the stone at pos belongs to player and
// completes a line of ConnectN. pos must be the top stone of its column.
func WinningAt(b *board.Board, player board.Stone, pos board.Position) bool {
	if b.CellAt(pos.Row, pos.Column) != player {
		return false
	}
	return MaxRunThrough(b, player, pos) == ConnectN-1
}

// HasConnect scans the whole board for ConnectN of player's stones in a
// row along any axis.
func HasConnect(b *board.Board, player board.Stone) bool {
	for r := 0; r < b.Height(); r++ {
		for c := 0; c < b.Width(); c++ {
			if b.CellAt(r, c) != player {
				continue
			}
			for _, d := range [...]Direction{N, E, NE, SE} {
				pos := board.Position{Row: r, Column: c}
				if RunLength(b, player, pos, d) == ConnectN-1 {
					return true
				}
			}
		}
	}
	return false
}
