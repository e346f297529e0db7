package board

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"lukechampine.com/frand"
)

func TestDropLandsAtTop(t *testing.T) {
	b := NewBoard(DefaultWidth, DefaultHeight)
	pos, err := b.Drop(PlayerX, 3)
	assert.Nil(t, err)
	assert.Equal(t, Position{Row: 0, Column: 3}, pos)
	pos, err = b.Drop(PlayerO, 3)
	assert.Nil(t, err)
	assert.Equal(t, Position{Row: 1, Column: 3}, pos)
	assert.Equal(t, 2, b.Top(3))
	assert.Equal(t, PlayerX, b.CellAt(0, 3))
	assert.Equal(t, PlayerO, b.CellAt(1, 3))
	assert.Equal(t, Empty, b.CellAt(2, 3))
}

func TestDropOnlyTouchesOneColumn(t *testing.T) {
	rng := frand.New()
	for trial := 0; trial < 200; trial++ {
		b := NewBoard(DefaultWidth, DefaultHeight)
		onTurn := PlayerX
		for i := rng.Intn(30); i > 0; i-- {
			cols := b.LegalColumns()
			_, err := b.Drop(onTurn, cols[rng.Intn(len(cols))])
			assert.Nil(t, err)
			onTurn = onTurn.Opponent()
		}
		for _, c := range b.LegalColumns() {
			before := b.Clone()
			_, err := b.Drop(onTurn, c)
			assert.Nil(t, err)
			for col := 0; col < b.Width(); col++ {
				if col == c {
					assert.Equal(t, before.Top(col)+1, b.Top(col))
					continue
				}
				assert.Equal(t, before.Top(col), b.Top(col))
				for row := 0; row < b.Height(); row++ {
					assert.Equal(t, before.CellAt(row, col), b.CellAt(row, col))
				}
			}
			b.CopyFrom(before)
		}
	}
}

func TestDropErrorsLeaveBoardUnchanged(t *testing.T) {
	b := NewBoard(3, 2)
	_, err := b.Drop(PlayerX, 1)
	assert.Nil(t, err)
	_, err = b.Drop(PlayerO, 1)
	assert.Nil(t, err)
	before := b.Clone()

	_, err = b.Drop(PlayerX, 1)
	assert.True(t, errors.Is(err, ErrColumnFull))
	assert.True(t, b.Equal(before))

	for _, col := range []int{-1, 3, 100} {
		_, err = b.Drop(PlayerX, col)
		assert.True(t, errors.Is(err, ErrInvalidColumn))
		assert.True(t, b.Equal(before))
	}
}

func TestFullness(t *testing.T) {
	b := NewBoard(2, 2)
	assert.False(t, b.IsBoardFull())
	b.Drop(PlayerX, 0)
	b.Drop(PlayerO, 0)
	assert.True(t, b.IsFull(0))
	assert.False(t, b.IsFull(1))
	assert.True(t, b.IsFull(-1))
	assert.True(t, b.IsFull(2))
	assert.Equal(t, []int{1}, b.LegalColumns())
	b.Drop(PlayerX, 1)
	b.Drop(PlayerO, 1)
	assert.True(t, b.IsBoardFull())
	assert.Empty(t, b.LegalColumns())
	assert.Equal(t, 4, b.NumStones())
}

func TestWithinBounds(t *testing.T) {
	b := NewBoard(DefaultWidth, DefaultHeight)
	assert.True(t, b.WithinBounds(Position{0, 0}))
	assert.True(t, b.WithinBounds(Position{5, 6}))
	assert.False(t, b.WithinBounds(Position{6, 0}))
	assert.False(t, b.WithinBounds(Position{0, 7}))
	assert.False(t, b.WithinBounds(Position{-1, 2}))
	assert.Equal(t, Empty, b.CellAt(-1, 2))
}

func TestCloneIsIndependent(t *testing.T) {
	b := NewBoard(DefaultWidth, DefaultHeight)
	b.Drop(PlayerX, 0)
	c := b.Clone()
	assert.True(t, b.Equal(c))
	assert.Equal(t, b.Hash(), c.Hash())

	c.Drop(PlayerO, 0)
	assert.False(t, b.Equal(c))
	assert.NotEqual(t, b.Hash(), c.Hash())
	assert.Equal(t, 1, b.Top(0))
	assert.Equal(t, Empty, b.CellAt(1, 0))
}

func TestEqualIsStructural(t *testing.T) {
	b1 := NewBoard(DefaultWidth, DefaultHeight)
	b2 := NewBoard(DefaultWidth, DefaultHeight)
	// Same stones reached by different move orders.
	b1.Drop(PlayerX, 0)
	b1.Drop(PlayerO, 4)
	b2.Drop(PlayerO, 4)
	b2.Drop(PlayerX, 0)
	assert.True(t, b1.Equal(b2))
	assert.Equal(t, b1.Hash(), b2.Hash())
	assert.False(t, b1.Equal(NewBoard(6, 7)))
	assert.False(t, b1.Equal(nil))
}

func TestStones(t *testing.T) {
	assert.Equal(t, PlayerO, PlayerX.Opponent())
	assert.Equal(t, PlayerX, PlayerO.Opponent())
	assert.Equal(t, "x", PlayerX.String())
	assert.Equal(t, "o", PlayerO.String())
	assert.Equal(t, " ", Empty.String())
	s, err := StoneFromString("O")
	assert.Nil(t, err)
	assert.Equal(t, PlayerO, s)
	_, err = StoneFromString("z")
	assert.NotNil(t, err)
}

func TestRowsRoundTrip(t *testing.T) {
	rows := []string{
		"...",
		"o..",
		"xo.",
		"xxo",
	}
	b, err := FromRows(rows)
	assert.Nil(t, err)
	assert.Equal(t, 3, b.Width())
	assert.Equal(t, 4, b.Height())
	assert.Equal(t, 3, b.Top(0))
	assert.Equal(t, 2, b.Top(1))
	assert.Equal(t, 1, b.Top(2))
	assert.Equal(t, PlayerO, b.CellAt(2, 0))
	assert.Equal(t, rows, b.Rows())
}

func TestRowsRejectFloatingStones(t *testing.T) {
	_, err := FromRows([]string{
		"x..",
		"...",
	})
	assert.True(t, errors.Is(err, ErrBadRows))

	_, err = FromRows([]string{
		"x..",
		"xo",
	})
	assert.True(t, errors.Is(err, ErrBadRows))

	_, err = FromRows([]string{"x?."})
	assert.True(t, errors.Is(err, ErrBadRows))
}

func TestToDisplayText(t *testing.T) {
	b := NewBoard(3, 2)
	b.Drop(PlayerX, 0)
	b.Drop(PlayerO, 1)
	b.Drop(PlayerX, 0)
	expected := "= = =\n" +
		"x . .\n" +
		"x o .\n" +
		"= = =\n" +
		"0 1 2\n"
	assert.Equal(t, expected, b.ToDisplayText())
}
