package search

import "github.com/kestrelchess/core/pkg/board"

// maxKillerPly bounds the killer table; deeper plies fall back to no killers rather than
// growing the table for every possible search depth.
const maxKillerPly = 128

// killers holds, for each search ply, up to two "killer" quiet moves that caused a beta
// cutoff in a sibling branch at that ply. Quiet moves matching a killer are tried early,
// since the same reply is often strong against more than one parent move.
type killers struct {
	table [maxKillerPly][2]board.Move
}

func newKillers() *killers {
	return &killers{}
}

// at returns the two killer moves recorded for ply, if any.
func (k *killers) at(ply int) (board.Move, board.Move) {
	if ply < 0 || ply >= maxKillerPly {
		return board.Move{}, board.Move{}
	}
	return k.table[ply][0], k.table[ply][1]
}

// add records m as a killer at ply. Captures and promotions are excluded: they are already
// ordered by SEE/MVV-LVA and don't need a second ordering mechanism.
func (k *killers) add(ply int, m board.Move) {
	if ply < 0 || ply >= maxKillerPly || m.IsCapture() || m.IsPromotion() {
		return
	}
	if k.table[ply][0].Equals(m) {
		return
	}
	k.table[ply][1] = k.table[ply][0]
	k.table[ply][0] = m
}
