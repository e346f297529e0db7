// Package heuristic scores positions the search cannot look past.
package heuristic

import (
	"github.com/domino14/connect4/board"
	"github.com/domino14/connect4/rules"
)

// Evaluate scores b for player in [-1, 1]. onTurn is the side to move.
//
// Only the landing cell of each open column is inspected. If the side to
// move can complete a line there the result is exactly 1 (player to move)
// or -1 (opponent to move). Otherwise it is the normalized difference of
// the two sides' run totals over all landing cells, or 0 if both are zero.
func Evaluate(b *board.Board, player, onTurn board.Stone) float64 {
	opp := player.Opponent()
	var ours, theirs int
	for c := 0; c < b.Width(); c++ {
		if b.IsFull(c) {
			continue
		}
		landing := board.Position{Row: b.Top(c), Column: c}
		p := rules.MaxRunThrough(b, player, landing)
		o := rules.MaxRunThrough(b, opp, landing)
		if p == rules.ConnectN-1 && onTurn == player {
			return 1
		}
		if o == rules.ConnectN-1 && onTurn == opp {
			return -1
		}
		ours += p
		theirs += o
	}
	if ours+theirs == 0 {
		return 0
	}
	return float64(ours-theirs) / float64(ours+theirs)
}
