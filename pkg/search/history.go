package search

import "github.com/kestrelchess/core/pkg/board"

// history scores quiet moves by how often they have produced a beta cutoff, indexed by the
// moving side, piece and destination square. It is the fallback move-order signal once the
// TT move, captures and killers are exhausted.
type history struct {
	table [board.NumColors][board.NumPieces][board.NumSquares]int32
}

func newHistory() *history {
	return &history{}
}

func (h *history) score(turn board.Color, m board.Move) int32 {
	return h.table[turn][m.Piece][m.To]
}

// add rewards a quiet move that caused a beta cutoff, weighted by the remaining depth so
// cutoffs found deep in the tree count for more than shallow ones.
func (h *history) add(turn board.Color, m board.Move, depth int) {
	if m.IsCapture() || m.IsPromotion() {
		return
	}
	bonus := int32(depth * depth)
	v := &h.table[turn][m.Piece][m.To]
	*v += bonus
	if *v > historyMax {
		h.age()
	}
}

// age halves every entry, keeping the table from saturating and letting stale information
// from earlier in the game fade out relative to recent cutoffs.
func (h *history) age() {
	for c := range h.table {
		for p := range h.table[c] {
			for sq := range h.table[c][p] {
				h.table[c][p][sq] /= 2
			}
		}
	}
}

const historyMax = 1 << 20
