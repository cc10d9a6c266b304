package search

import (
	"context"

	"github.com/kestrelchess/core/pkg/board"
	"github.com/kestrelchess/core/pkg/eval"
)

// Exploration defines move ordering and selection in a given position: which order to try
// moves in, and whether to bother trying a given move at all. The board passed in is already
// at the position being explored. Limited exploration is how quiescence search restricts
// itself to captures/checks; full search always explores everything (FullExploration).
type Exploration func(ctx context.Context, b *board.Board) (board.MovePriorityFn, board.MovePredicateFn)

// FullExploration explores every move, ordered by MVV-LVA. The main search refines this
// further at each node (TT move, killers, history) via the orderer.
func FullExploration(ctx context.Context, b *board.Board) (board.MovePriorityFn, board.MovePredicateFn) {
	return MVVLVA, IsAnyMove
}

// QuiescenceExploration restricts the quiescence search to moves that resolve check (when in
// check, everything must be tried) or that look like a non-losing material gain otherwise.
func QuiescenceExploration(ctx context.Context, b *board.Board) (board.MovePriorityFn, board.MovePredicateFn) {
	if b.Position().IsChecked(b.Turn()) {
		return MVVLVA, IsAnyMove
	}

	fn := func(m board.Move) bool {
		return isQuickGain(b, m)
	}
	return MVVLVA, fn
}

// MVVLVA implements the "most valuable victim, least valuable attacker" move priority:
// captures and promotions sort by material gained, ties broken against the attacker's own
// value, quiet moves sort last.
func MVVLVA(m board.Move) board.MovePriority {
	if p := board.MovePriority(100 * eval.NominalValueGain(m)); p > 0 {
		return p - board.MovePriority(eval.NominalValue(m.Piece))
	}
	return 0
}

// IsAnyMove selects every move.
func IsAnyMove(board.Move) bool {
	return true
}

// NoMove selects no move. Used to disable quiescence search entirely.
func NoMove(board.Move) bool {
	return false
}

// IsNotUnderPromotion selects any move except an under-promotion, since promoting to
// anything but a queen is virtually never correct and not worth searching.
func IsNotUnderPromotion(m board.Move) bool {
	return !m.IsPromotion() || m.Promotion == board.Queen
}

// isQuickGain selects promotions and captures that are not a clear loss: the attacker is
// worth less than the victim, or the destination square is undefended (b is the position
// before the move, so IsAttacked(b.Turn(), m.To) asks whether the opponent defends it).
func isQuickGain(b *board.Board, m board.Move) bool {
	if m.IsPromotion() {
		return true
	}
	if !m.IsCapture() {
		return false
	}
	if eval.NominalValue(m.Piece) < eval.NominalValue(m.Capture) {
		return true
	}
	return !b.Position().IsAttacked(b.Turn(), m.To)
}

func fullIfNotSet(p Exploration) Exploration {
	if p == nil {
		return FullExploration
	}
	return p
}
