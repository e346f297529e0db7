package game

import (
	"fmt"
	"strings"

	"github.com/domino14/connect4/board"
)

func playerName(s board.Stone) string {
	if s == board.PlayerX {
		return "player 1"
	}
	return "player 2"
}

// ToDisplayText renders the board followed by a status line.
func (g *Game) ToDisplayText() string {
	var sb strings.Builder
	sb.WriteString(g.board.ToDisplayText())
	if g.playing {
		fmt.Fprintf(&sb, "It's %s's (%s) turn. Turn %d.\n",
			playerName(g.onturn), g.onturn, g.turnnum+1)
	} else {
		sb.WriteString(g.Result().String() + "\n")
	}
	if len(g.history) > 0 {
		cols := make([]string, len(g.history))
		for i, c := range g.history {
			cols[i] = fmt.Sprint(c)
		}
		fmt.Fprintf(&sb, "Moves: %s\n", strings.Join(cols, " "))
	}
	return sb.String()
}
