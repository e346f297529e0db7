package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrBadRows = errors.New("bad board rows")

// ToDisplayText renders the board top row first, framed by rulers, with
// the column indices underneath.
func (b *Board) ToDisplayText() string {
	var sb strings.Builder
	ruler := strings.TrimRight(strings.Repeat("= ", b.width), " ")
	sb.WriteString(ruler + "\n")
	for row := b.height - 1; row >= 0; row-- {
		cols := make([]string, b.width)
		for c := 0; c < b.width; c++ {
			s := b.CellAt(row, c)
			if s == Empty {
				cols[c] = "."
			} else {
				cols[c] = s.String()
			}
		}
		sb.WriteString(strings.Join(cols, " ") + "\n")
	}
	sb.WriteString(ruler + "\n")
	idx := make([]string, b.width)
	for c := range idx {
		idx[c] = strconv.Itoa(c % 10)
	}
	sb.WriteString(strings.Join(idx, " ") + "\n")
	return sb.String()
}

// Rows returns the board as text rows, top row first, using x, o and '.'.
// It is the inverse of SetToRows.
func (b *Board) Rows() []string {
	rows := make([]string, b.height)
	for row := b.height - 1; row >= 0; row-- {
		var sb strings.Builder
		for c := 0; c < b.width; c++ {
			switch b.CellAt(row, c) {
			case PlayerX:
				sb.WriteByte('x')
			case PlayerO:
				sb.WriteByte('o')
			default:
				sb.WriteByte('.')
			}
		}
		rows[b.height-1-row] = sb.String()
	}
	return rows
}

// SetToRows sets the board from text rows given top row first. Every row
// must be exactly as wide as the board and there must be exactly height
// rows. Whitespace inside a row is ignored. Floating stones are rejected.
func (b *Board) SetToRows(rows []string) error {
	if len(rows) != b.height {
		return fmt.Errorf("%w: expected %d rows, got %d", ErrBadRows, b.height, len(rows))
	}
	cells := make([]Stone, len(b.cells))
	top := make([]int, b.width)
	for i, r := range rows {
		r = strings.Join(strings.Fields(r), "")
		if len(r) != b.width {
			return fmt.Errorf("%w: row %d has width %d, expected %d", ErrBadRows, i, len(r), b.width)
		}
		row := b.height - 1 - i
		for c, ch := range r {
			var s Stone
			switch ch {
			case 'x', 'X':
				s = PlayerX
			case 'o', 'O':
				s = PlayerO
			case '.', '-', '_':
				s = Empty
			default:
				return fmt.Errorf("%w: unrecognized cell %q", ErrBadRows, ch)
			}
			cells[b.idx(row, c)] = s
		}
	}
	for c := 0; c < b.width; c++ {
		for row := 0; row < b.height; row++ {
			if cells[b.idx(row, c)] == Empty {
				break
			}
			top[c] = row + 1
		}
		for row := top[c]; row < b.height; row++ {
			if cells[b.idx(row, c)] != Empty {
				return fmt.Errorf("%w: floating stone at row %d column %d", ErrBadRows, row, c)
			}
		}
	}
	b.cells = cells
	b.top = top
	return nil
}

// FromRows builds a board sized to fit the given rows.
func FromRows(rows []string) (*Board, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrBadRows)
	}
	width := len(strings.Join(strings.Fields(rows[0]), ""))
	if width == 0 {
		return nil, fmt.Errorf("%w: empty row", ErrBadRows)
	}
	b := NewBoard(width, len(rows))
	if err := b.SetToRows(rows); err != nil {
		return nil, err
	}
	return b, nil
}
