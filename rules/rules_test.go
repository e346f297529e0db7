package rules

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/connect4/board"
	"github.com/domino14/connect4/testhelpers"
)

// lineThrough counts the full contiguous line of player's stones through
// pos along d, pos included, with no cap.
func lineThrough(b *board.Board, player board.Stone, pos board.Position, d Direction) int {
	n := 1
	for _, dir := range []Direction{d, d.Reverse()} {
		r, c := pos.Row+dir.DRow, pos.Column+dir.DCol
		for b.CellAt(r, c) == player && b.WithinBounds(board.Position{Row: r, Column: c}) {
			n++
			r += dir.DRow
			c += dir.DCol
		}
	}
	return n
}

func TestRunLength(t *testing.T) {
	is := is.New(t)
	b := testhelpers.MustFromRows(
		".......",
		".......",
		".......",
		"x......",
		"x......",
		"xxxxo..",
	)
	is.Equal(RunLength(b, board.PlayerX, board.Position{Row: 0, Column: 0}, E), 3)
	is.Equal(RunLength(b, board.PlayerX, board.Position{Row: 0, Column: 1}, E), 2)
	is.Equal(RunLength(b, board.PlayerX, board.Position{Row: 0, Column: 4}, W), 3)
	is.Equal(RunLength(b, board.PlayerX, board.Position{Row: 3, Column: 0}, S), 3)
	is.Equal(RunLength(b, board.PlayerX, board.Position{Row: 0, Column: 0}, W), 0)
	is.Equal(RunLength(b, board.PlayerO, board.Position{Row: 0, Column: 3}, E), 1)
	is.Equal(RunLength(b, board.PlayerX, board.Position{Row: 0, Column: 6}, W), 0)
}

func TestMaxRunThroughHorizontalGap(t *testing.T) {
	is := is.New(t)
	b := testhelpers.MustFromRows(
		".......",
		".......",
		".......",
		".......",
		".......",
		"xx.x...",
	)
	gap := board.Position{Row: 0, Column: 2}
	is.Equal(MaxRunThrough(b, board.PlayerX, gap), 3)
	is.Equal(MaxRunThrough(b, board.PlayerO, gap), 0)
	// Landing cell on top of column 0 sees only the stone below it.
	is.Equal(MaxRunThrough(b, board.PlayerX, board.Position{Row: 1, Column: 0}), 1)
}

func TestMaxRunThroughIsCapped(t *testing.T) {
	is := is.New(t)
	b := testhelpers.MustFromRows(
		".......",
		".......",
		".......",
		".......",
		".......",
		"xxx.xxx",
	)
	is.Equal(MaxRunThrough(b, board.PlayerX, board.Position{Row: 0, Column: 3}), ConnectN-1)
}

func TestWinningAtDiagonals(t *testing.T) {
	is := is.New(t)
	b := testhelpers.MustFromRows(
		".......",
		".......",
		"...x...",
		"..xo...",
		".xoo...",
		"xooxo..",
	)
	is.True(WinningAt(b, board.PlayerX, board.Position{Row: 3, Column: 3}))
	is.True(!WinningAt(b, board.PlayerO, board.Position{Row: 3, Column: 3}))
	is.True(HasConnect(b, board.PlayerX))
	is.True(!HasConnect(b, board.PlayerO))

	b = testhelpers.MustFromRows(
		".......",
		".......",
		"o......",
		"xo.....",
		"xxo....",
		"xxxo...",
	)
	is.True(WinningAt(b, board.PlayerO, board.Position{Row: 3, Column: 0}))
	is.True(WinningAt(b, board.PlayerO, board.Position{Row: 0, Column: 3}))
}

func TestWinningAtVertical(t *testing.T) {
	is := is.New(t)
	b := testhelpers.MustFromRows(
		".......",
		".......",
		"...o...",
		"...o...",
		"...o...",
		"x..ox..",
	)
	is.True(WinningAt(b, board.PlayerO, board.Position{Row: 3, Column: 3}))
	is.True(!WinningAt(b, board.PlayerO, board.Position{Row: 2, Column: 3}))
	is.True(!WinningAt(b, board.PlayerX, board.Position{Row: 3, Column: 3}))
}

func TestWinningAtMatchesFullScan(t *testing.T) {
	is := is.New(t)
	for seed := uint64(0); seed < 300; seed++ {
		b, _ := testhelpers.RandomBoard(seed, board.DefaultWidth, board.DefaultHeight, 8+int(seed%30))
		for c := 0; c < b.Width(); c++ {
			if b.Top(c) == 0 {
				continue
			}
			pos := board.Position{Row: b.Top(c) - 1, Column: c}
			for _, p := range []board.Stone{board.PlayerX, board.PlayerO} {
				expected := false
				if b.CellAt(pos.Row, pos.Column) == p {
					for _, d := range []Direction{N, E, NE, SE} {
						if lineThrough(b, p, pos, d) >= ConnectN {
							expected = true
						}
					}
				}
				is.Equal(WinningAt(b, p, pos), expected)
			}
		}
	}
}
