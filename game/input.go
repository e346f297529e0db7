package game

import (
	"fmt"
	"strconv"
	"strings"
)

// InputError is a human-facing complaint about a typed move.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string {
	return e.Msg
}

// ParseColumn validates a column typed by a human: it must be an integer
// within the board that names a column with room left.
func (g *Game) ParseColumn(input string) (int, error) {
	column, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, &InputError{"Please enter an integer."}
	}
	w := g.board.Width()
	if column < 0 || column >= w {
		return 0, &InputError{fmt.Sprintf("Please enter an integer within the bounds [0, %d].", w-1)}
	}
	if g.board.IsFull(column) {
		return 0, &InputError{fmt.Sprintf("Column %d is already full.", column)}
	}
	return column, nil
}
