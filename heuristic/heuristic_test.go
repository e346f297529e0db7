package heuristic

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/connect4/board"
	"github.com/domino14/connect4/testhelpers"
)

func TestEmptyBoardIsZero(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard(board.DefaultWidth, board.DefaultHeight)
	is.Equal(Evaluate(b, board.PlayerX, board.PlayerX), 0.0)
	is.Equal(Evaluate(b, board.PlayerO, board.PlayerX), 0.0)
}

func TestImmediateCompletionForSideOnTurn(t *testing.T) {
	is := is.New(t)
	b := testhelpers.MustFromRows(
		".......",
		".......",
		".......",
		".......",
		".......",
		"xxx....",
	)
	is.Equal(Evaluate(b, board.PlayerX, board.PlayerX), 1.0)
	is.Equal(Evaluate(b, board.PlayerO, board.PlayerX), -1.0)
	// With O to move the threat is not yet exact.
	v := Evaluate(b, board.PlayerX, board.PlayerO)
	is.True(v > 0 && v < 1)
}

func TestRatio(t *testing.T) {
	is := is.New(t)
	b := testhelpers.MustFromRows(
		"...",
		"...",
		"xo.",
	)
	// x sees 1 below column 0 and 1 on the diagonal into column 1.
	// o sees 1 on the diagonal into column 0, 1 below column 1 and 1
	// beside column 2.
	is.Equal(Evaluate(b, board.PlayerX, board.PlayerX), -0.2)
	is.Equal(Evaluate(b, board.PlayerO, board.PlayerX), 0.2)

	b = testhelpers.MustFromRows(
		"...",
		"...",
		"x..",
	)
	is.Equal(Evaluate(b, board.PlayerX, board.PlayerO), 1.0)
	is.Equal(Evaluate(b, board.PlayerO, board.PlayerO), -1.0)
}

func TestRangeOnRandomBoards(t *testing.T) {
	is := is.New(t)
	for seed := uint64(0); seed < 200; seed++ {
		b, onTurn := testhelpers.RandomBoard(seed, board.DefaultWidth, board.DefaultHeight, int(seed%40))
		v := Evaluate(b, board.PlayerX, onTurn)
		is.True(v >= -1 && v <= 1)
		// Zero-sum when neither perspective sees an immediate completion.
		w := Evaluate(b, board.PlayerO, onTurn)
		if v != 1 && v != -1 && w != 1 && w != -1 {
			is.Equal(v, -w)
		}
	}
}
