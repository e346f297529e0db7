package alphabeta

import (
	"fmt"
	"math"

	"github.com/domino14/connect4/board"
	"github.com/domino14/connect4/common"
)

// knownEndRank spaces known results so that a result found at a shallower
// ply always outranks one found deeper.
const knownEndRank = 1 << 20

type nodeValue struct {
	value    float64
	knownEnd bool
	// ply the known end was reached at; meaningless otherwise.
	ply int
}

var (
	negInf = nodeValue{value: math.Inf(-1)}
	posInf = nodeValue{value: math.Inf(1)}
)

func (nv nodeValue) String() string {
	return fmt.Sprintf("<val: %v knownEnd: %v ply: %v>", nv.value, nv.knownEnd, nv.ply)
}

// rank orders equal values. Quick wins rank highest, quick losses lowest,
// and a heuristic score sits in between. Without it, x to move on "xxx...."
// at one ply picks column 0, whose heuristic score is also 1, over the win
// in column 3.
func (nv nodeValue) rank() int {
	if !nv.knownEnd || nv.value == 0 {
		return 0
	}
	if nv.value > 0 {
		return knownEndRank - nv.ply
	}
	return nv.ply - knownEndRank
}

func (nv nodeValue) less(other nodeValue) bool {
	if nv.value != other.value {
		return nv.value < other.value
	}
	// Tie-breaker: a certain win beats a guess at the same value, and a
	// certain loss is worse than one.
	return nv.rank() < other.rank()
}

func maxValue(x, y nodeValue) nodeValue {
	if x.less(y) {
		return y
	}
	return x
}

func minValue(x, y nodeValue) nodeValue {
	if y.less(x) {
		return y
	}
	return x
}

// a gameNode lives in the solver's arena and is addressed by its index.
// Its children occupy the contiguous handles
// [firstChild, firstChild+numChildren) in ascending column order.
type gameNode struct {
	board   *board.Board
	parent  int
	ply     int
	column  int
	landing board.Position

	value nodeValue
	alpha nodeValue
	beta  nodeValue

	firstChild  int
	numChildren int
	nextChild   int
	expanded    bool
	cut         bool

	pv common.PVLine
}

func (g *gameNode) maximizing() bool {
	return g.ply%2 == 0
}

func (g *gameNode) String() string {
	return fmt.Sprintf("<gamenode ply %v column %v value %v alpha %v beta %v>",
		g.ply, g.column, g.value, g.alpha, g.beta)
}

// fold merges a resolved child's value into g under g's polarity. It
// reports whether the value strictly improved; ties never overwrite.
func (g *gameNode) fold(child nodeValue) bool {
	if g.maximizing() {
		if g.value.less(child) {
			g.value = child
			return true
		}
		return false
	}
	if child.less(g.value) {
		g.value = child
		return true
	}
	return false
}

// tighten narrows g's own window with its current value and reports
// whether the window has closed.
func (g *gameNode) tighten() bool {
	if g.maximizing() {
		g.alpha = maxValue(g.alpha, g.value)
	} else {
		g.beta = minValue(g.beta, g.value)
	}
	return !g.alpha.less(g.beta)
}
