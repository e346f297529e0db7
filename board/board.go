package board

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash"
	"github.com/samber/lo"
)

const (
	DefaultWidth  = 7
	DefaultHeight = 6
)

var (
	ErrInvalidColumn = errors.New("column does not exist")
	ErrColumnFull    = errors.New("column is already full")
)

// Stone is the content of a single cell. The two players' stones are
// negatives of each other so that the opponent of a stone is its negation.
type Stone int8

const (
	Empty   Stone = 0
	PlayerX Stone = 1
	PlayerO Stone = -1
)

func (s Stone) Opponent() Stone {
	return -s
}

func (s Stone) String() string {
	switch s {
	case PlayerX:
		return "x"
	case PlayerO:
		return "o"
	}
	return " "
}

// StoneFromString parses "x" or "o" (either case).
func StoneFromString(s string) (Stone, error) {
	switch s {
	case "x", "X":
		return PlayerX, nil
	case "o", "O":
		return PlayerO, nil
	}
	return Empty, fmt.Errorf("unrecognized player %q", s)
}

// Position addresses a cell. Row 0 is the bottom row.
type Position struct {
	Row    int
	Column int
}

func (p Position) Add(d Position) Position {
	return Position{Row: p.Row + d.Row, Column: p.Column + d.Column}
}

// Board is a gravity grid. Stones in a column always occupy rows
// 0 .. top[column]-1 and nothing above.
type Board struct {
	width  int
	height int
	cells  []Stone
	top    []int
}

func NewBoard(width, height int) *Board {
	if width < 1 || height < 1 {
		panic(fmt.Sprintf("bad board dimensions %dx%d", width, height))
	}
	return &Board{
		width:  width,
		height: height,
		cells:  make([]Stone, width*height),
		top:    make([]int, width),
	}
}

func (b *Board) Width() int {
	return b.width
}

func (b *Board) Height() int {
	return b.height
}

func (b *Board) idx(row, column int) int {
	return row*b.width + column
}

// Drop puts a stone at the current top of the column and returns the cell
// it landed on. On error the board is left unchanged.
func (b *Board) Drop(stone Stone, column int) (Position, error) {
	if column < 0 || column >= b.width {
		return Position{}, fmt.Errorf("column %d: %w", column, ErrInvalidColumn)
	}
	if b.IsFull(column) {
		return Position{}, fmt.Errorf("column %d: %w", column, ErrColumnFull)
	}
	row := b.top[column]
	b.cells[b.idx(row, column)] = stone
	b.top[column]++
	return Position{Row: row, Column: column}, nil
}

// IsFull reports whether the column cannot take another stone. Columns
// outside the board count as full.
func (b *Board) IsFull(column int) bool {
	if column < 0 || column >= b.width {
		return true
	}
	return b.top[column] >= b.height
}

func (b *Board) IsBoardFull() bool {
	for _, t := range b.top {
		if t < b.height {
			return false
		}
	}
	return true
}

// Top returns the fill height of the column, which is also the row the
// next stone dropped there would land on.
func (b *Board) Top(column int) int {
	return b.top[column]
}

// CellAt returns Empty for cells outside the board.
func (b *Board) CellAt(row, column int) Stone {
	if !b.WithinBounds(Position{Row: row, Column: column}) {
		return Empty
	}
	return b.cells[b.idx(row, column)]
}

func (b *Board) WithinBounds(p Position) bool {
	return p.Row >= 0 && p.Row < b.height && p.Column >= 0 && p.Column < b.width
}

// LegalColumns returns the non-full columns in ascending order.
func (b *Board) LegalColumns() []int {
	return lo.Filter(lo.Range(b.width), func(c int, _ int) bool {
		return !b.IsFull(c)
	})
}

// NumStones counts the stones on the board.
func (b *Board) NumStones() int {
	return lo.Sum(b.top)
}

// Clone returns a deep copy that shares no memory with b.
func (b *Board) Clone() *Board {
	c := &Board{
		width:  b.width,
		height: b.height,
		cells:  make([]Stone, len(b.cells)),
		top:    make([]int, len(b.top)),
	}
	copy(c.cells, b.cells)
	copy(c.top, b.top)
	return c
}

// CopyFrom copies the contents of other into b. Both boards must have the
// same dimensions.
func (b *Board) CopyFrom(other *Board) {
	if b.width != other.width || b.height != other.height {
		panic("CopyFrom on boards of different dimensions")
	}
	copy(b.cells, other.cells)
	copy(b.top, other.top)
}

func (b *Board) Equal(other *Board) bool {
	if other == nil || b.width != other.width || b.height != other.height {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	for i := range b.top {
		if b.top[i] != other.top[i] {
			return false
		}
	}
	return true
}

// Hash is a structural hash over the dimensions, every cell and the fill
// pointers. Equal boards always hash the same.
func (b *Board) Hash() uint64 {
	buf := make([]byte, 0, 2+len(b.cells)+len(b.top))
	buf = append(buf, byte(b.width), byte(b.height))
	for _, s := range b.cells {
		buf = append(buf, byte(s))
	}
	for _, t := range b.top {
		buf = append(buf, byte(t))
	}
	return xxhash.Sum64(buf)
}

// Clear empties the board.
func (b *Board) Clear() {
	for i := range b.cells {
		b.cells[i] = Empty
	}
	for i := range b.top {
		b.top[i] = 0
	}
}
