package testhelpers

import (
	"encoding/binary"

	"lukechampine.com/frand"

	"github.com/domino14/connect4/board"
)

// SeededRNG returns a deterministic generator for the given seed.
func SeededRNG(seed uint64) *frand.RNG {
	key := make([]byte, 32)
	binary.LittleEndian.PutUint64(key, seed)
	return frand.NewCustom(key, 1024, 12)
}

// RandomBoard plays up to n alternating random drops, X first, on a fresh
// board. It stops early if the board fills up. The returned stone is the
// player who would move next.
func RandomBoard(seed uint64, width, height, n int) (*board.Board, board.Stone) {
	rng := SeededRNG(seed)
	b := board.NewBoard(width, height)
	onTurn := board.PlayerX
	for i := 0; i < n; i++ {
		cols := b.LegalColumns()
		if len(cols) == 0 {
			break
		}
		if _, err := b.Drop(onTurn, cols[rng.Intn(len(cols))]); err != nil {
			panic(err)
		}
		onTurn = onTurn.Opponent()
	}
	return b, onTurn
}

// MustFromRows is board.FromRows for fixtures.
func MustFromRows(rows ...string) *board.Board {
	b, err := board.FromRows(rows)
	if err != nil {
		panic(err)
	}
	return b
}
