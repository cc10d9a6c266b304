package eval

import (
	"sort"

	"github.com/kestrelchess/core/pkg/board"
)

// Attackers returns every piece of side that directly bears on sq, ordered from the least to
// the most valuable attacker: this is the order SEE's swap-off loop must recapture in.
func Attackers(pos *board.Position, side board.Color, sq board.Square) []board.Placement {
	var found []board.Placement

	for _, piece := range board.KingQueenRookKnightBishop {
		from := board.Attackboard(pos.Rotated(), sq, piece) & pos.Piece(side, piece)
		for _, at := range from.ToSquares() {
			found = append(found, board.Placement{Piece: piece, Color: side, Square: at})
		}
	}

	pawns := board.PawnCaptureboard(side.Opponent(), board.BitMask(sq)) & pos.Piece(side, board.Pawn)
	for _, at := range pawns.ToSquares() {
		found = append(found, board.Placement{Piece: board.Pawn, Color: side, Square: at})
	}

	sort.SliceStable(found, func(i, j int) bool {
		return NominalValue(found[i].Piece) < NominalValue(found[j].Piece)
	})
	return found
}
