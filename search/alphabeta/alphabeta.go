// Package alphabeta implements the move search: depth-limited minimax with
// alpha-beta pruning, driven by an explicit node arena instead of
// recursion.
package alphabeta

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/connect4/board"
	"github.com/domino14/connect4/common"
	"github.com/domino14/connect4/config"
	"github.com/domino14/connect4/heuristic"
	"github.com/domino14/connect4/rules"
)

// thanks Wikipedia:
/**function alphabeta(node, depth, α, β, maximizingPlayer) is
    if depth = 0 or node is a terminal node then
        return the heuristic value of node
    if maximizingPlayer then
        value := −∞
        for each child of node do
            value := max(value, alphabeta(child, depth − 1, α, β, FALSE))
            α := max(α, value)
            if α ≥ β then
                break (* β cut-off *)
        return value
    else
        value := +∞
        for each child of node do
            value := min(value, alphabeta(child, depth − 1, α, β, TRUE))
            β := min(β, value)
            if α ≥ β then
                break (* α cut-off *)
        return value
(* Initial call *)
alphabeta(origin, depth, −∞, +∞, TRUE)
**/
// The loop in search is that function with the call stack made explicit:
// every arena node is a frame holding its own α, β and child cursor.

const DefaultPlies = 4

var (
	ErrNoLegalMove   = errors.New("no legal move; the board is full")
	ErrInvalidPlies  = errors.New("plies must be at least 1")
	ErrInvalidPlayer = errors.New("player must be x or o")
)

// Stats describes the work done by the last search.
type Stats struct {
	Nodes     int
	Leaves    int
	Terminals int
	Cutoffs   int
	MaxArena  int
	Elapsed   time.Duration
}

// Solver picks moves. A Solver reuses its arena between calls and must not
// be shared between goroutines; use one per goroutine.
type Solver struct {
	plies          int
	disablePruning bool

	player board.Stone
	nodes  []gameNode
	// boards[i] is the scratch board owned by arena slot i.
	boards []*board.Board

	bestColumn int
	lastPV     common.PVLine
	stats      Stats
}

// NewSolver returns a solver configured from cfg. A nil cfg gives the
// default depth.
func NewSolver(cfg *config.Config) *Solver {
	s := &Solver{plies: DefaultPlies}
	if cfg != nil {
		s.plies = cfg.Plies()
	}
	return s
}

func (s *Solver) SetPlies(plies int) {
	s.plies = plies
}

func (s *Solver) Plies() int {
	return s.plies
}

// SetPruningDisabled turns alpha-beta cutoffs off, making the search a
// plain minimax. Used for checking.
func (s *Solver) SetPruningDisabled(disabled bool) {
	s.disablePruning = disabled
}

func (s *Solver) PruningDisabled() bool {
	return s.disablePruning
}

// PrincipalVariation is the expected line of play found by the last
// search, starting with the chosen column.
func (s *Solver) PrincipalVariation() common.PVLine {
	return s.lastPV
}

func (s *Solver) Stats() Stats {
	return s.stats
}

// BestMove searches b for player, who is on turn, and returns the score
// from player's point of view and the column to play. b is not modified.
//
// Among columns with equal scores the leftmost one wins.
func (s *Solver) BestMove(b *board.Board, player board.Stone) (float64, int, error) {
	if s.plies < 1 {
		return 0, -1, fmt.Errorf("%w: got %d", ErrInvalidPlies, s.plies)
	}
	if player != board.PlayerX && player != board.PlayerO {
		return 0, -1, ErrInvalidPlayer
	}
	if b.IsBoardFull() {
		return 0, -1, ErrNoLegalMove
	}
	log.Debug().Int("plies", s.plies).
		Bool("pruning-disabled", s.disablePruning).
		Str("player", player.String()).
		Msg("alphabeta-search-config")

	tstart := time.Now()
	s.stats = Stats{}
	v := s.search(b, player)
	s.stats.Elapsed = time.Since(tstart)

	log.Debug().
		Float64("score", v.value).
		Bool("known-end", v.knownEnd).
		Int("column", s.bestColumn).
		Int("nodes", s.stats.Nodes).
		Int("leaves", s.stats.Leaves).
		Int("terminals", s.stats.Terminals).
		Int("cutoffs", s.stats.Cutoffs).
		Int("max-arena", s.stats.MaxArena).
		Float64("time-elapsed-sec", s.stats.Elapsed.Seconds()).
		Msg("alphabeta-search-returning")
	log.Debug().Msgf("Best sequence: %v", s.lastPV.NLBString())

	return v.value, s.bestColumn, nil
}

func (s *Solver) onTurnAt(ply int) board.Stone {
	if ply%2 == 0 {
		return s.player
	}
	return s.player.Opponent()
}

// slotBoard returns the scratch board for arena slot i, allocating it on
// first use.
func (s *Solver) slotBoard(i int, like *board.Board) *board.Board {
	for len(s.boards) <= i {
		s.boards = append(s.boards, nil)
	}
	sb := s.boards[i]
	if sb == nil || sb.Width() != like.Width() || sb.Height() != like.Height() {
		sb = board.NewBoard(like.Width(), like.Height())
		s.boards[i] = sb
	}
	return sb
}

func (s *Solver) search(root *board.Board, player board.Stone) nodeValue {
	s.player = player
	s.bestColumn = -1
	s.nodes = s.nodes[:0]

	rb := s.slotBoard(0, root)
	rb.CopyFrom(root)
	s.nodes = append(s.nodes, gameNode{
		board:  rb,
		parent: -1,
		column: -1,
		alpha:  negInf,
		beta:   posInf,
	})
	s.stats.Nodes = 1

	cur := 0
	for {
		n := &s.nodes[cur]
		if !n.expanded {
			if v, ok := s.leafValue(n); ok {
				n.value = v
				cur = s.backup(cur)
				continue
			}
			s.expand(cur)
			n = &s.nodes[cur]
		}

		if !n.cut && n.nextChild < n.numChildren {
			cur = s.descend(cur)
			continue
		}

		// Every child is folded in or cut off. Drop the subtree.
		s.nodes = s.nodes[:n.firstChild]
		if cur == 0 {
			break
		}
		cur = s.backup(cur)
	}
	root0 := &s.nodes[0]
	s.lastPV = root0.pv
	return root0.value
}

// leafValue resolves n without expanding it, if possible. The root never
// resolves here.
func (s *Solver) leafValue(n *gameNode) (nodeValue, bool) {
	if n.parent == -1 {
		return nodeValue{}, false
	}
	// Only the stone just dropped can have completed a line.
	if rules.WinningAt(n.board, s.player, n.landing) {
		s.stats.Terminals++
		return nodeValue{value: 1, knownEnd: true, ply: n.ply}, true
	}
	if rules.WinningAt(n.board, s.player.Opponent(), n.landing) {
		s.stats.Terminals++
		return nodeValue{value: -1, knownEnd: true, ply: n.ply}, true
	}
	if n.board.IsBoardFull() {
		s.stats.Terminals++
		return nodeValue{value: 0, knownEnd: true, ply: n.ply}, true
	}
	if n.ply >= s.plies {
		s.stats.Leaves++
		return nodeValue{value: heuristic.Evaluate(n.board, s.player, s.onTurnAt(n.ply))}, true
	}
	return nodeValue{}, false
}

// expand appends a child slot for every open column. Child boards are
// filled in when the child is visited, so cut-off children cost nothing.
func (s *Solver) expand(idx int) {
	n := &s.nodes[idx]
	if n.maximizing() {
		n.value = negInf
	} else {
		n.value = posInf
	}
	n.expanded = true
	n.firstChild = len(s.nodes)
	ply := n.ply
	b := n.board
	for c := 0; c < b.Width(); c++ {
		if b.IsFull(c) {
			continue
		}
		s.nodes = append(s.nodes, gameNode{parent: idx, ply: ply + 1, column: c})
	}
	n = &s.nodes[idx]
	n.numChildren = len(s.nodes) - n.firstChild
	if len(s.nodes) > s.stats.MaxArena {
		s.stats.MaxArena = len(s.nodes)
	}
}

// descend moves to the next unvisited child of idx, which inherits the
// parent's window, and returns the child's handle.
func (s *Solver) descend(idx int) int {
	n := &s.nodes[idx]
	ci := n.firstChild + n.nextChild
	n.nextChild++

	child := &s.nodes[ci]
	child.alpha = n.alpha
	child.beta = n.beta
	child.board = s.slotBoard(ci, n.board)
	child.board.CopyFrom(n.board)
	pos, err := child.board.Drop(s.onTurnAt(n.ply), child.column)
	if err != nil {
		// expand only lists open columns.
		panic(fmt.Sprintf("dropping into column %d: %v", child.column, err))
	}
	child.landing = pos
	s.stats.Nodes++
	return ci
}

// backup folds the resolved node idx into its parent and returns the
// parent's handle.
func (s *Solver) backup(idx int) int {
	child := &s.nodes[idx]
	pidx := child.parent
	parent := &s.nodes[pidx]
	if parent.fold(child.value) {
		parent.pv.Update(child.column, child.pv, child.value.value)
		if pidx == 0 {
			s.bestColumn = child.column
			log.Trace().Int("column", child.column).
				Str("value", child.value.String()).
				Msg("new-best-column")
		}
	}
	if !s.disablePruning && !parent.cut && parent.tighten() {
		parent.cut = true
		if parent.nextChild < parent.numChildren {
			s.stats.Cutoffs++
		}
	}
	return pidx
}
