// Package eval contains position evaluation logic: material, piece-square tables, pawn
// structure, king safety, mobility, pins and a handful of recognized drawn/won endgames.
package eval

import (
	"context"

	"github.com/kestrelchess/core/pkg/board"
)

// Evaluator is a static position evaluator. The returned score is relative to the side to
// move: positive favors the mover.
type Evaluator interface {
	Evaluate(ctx context.Context, b *board.Board) Score
}

// Composite evaluates a position as the sum of several independent evaluators. This is how
// the default evaluator is assembled: material, piece-square tables, pawn structure, king
// safety, mobility and pins each contribute independently (Default wraps that sum in the
// endgame recognizer), and Composite is also how small amounts of randomization (see Random) can be mixed in for variety.
type Composite []Evaluator

func (c Composite) Evaluate(ctx context.Context, b *board.Board) Score {
	var sum Score
	for _, e := range c {
		sum += e.Evaluate(ctx, b)
	}
	return sum
}

// Default is the standard evaluator: material + piece-square tables + pawn structure + king
// safety + mobility + pins, gated by the endgame recognizer for positions it knows the outcome of.
func Default() Evaluator {
	return recognized{
		fallback: Composite{
			Material{},
			PieceSquareTables{},
			PawnStructure{},
			KingSafety{},
			Mobility{},
			PinDetection{},
		},
	}
}

// Material returns the material balance for the side to move, in centipawns.
type Material struct{}

func (Material) Evaluate(_ context.Context, b *board.Board) Score {
	pos := b.Position()
	turn := b.Turn()

	var score Score
	for p := board.ZeroPiece; p < board.NumPieces; p++ {
		score += Score(pos.Piece(turn, p).PopCount()-pos.Piece(turn.Opponent(), p).PopCount()) * NominalValue(p)
	}
	return score
}

// NominalValue is the nominal centipawn value of a piece. The King is never traded, so its
// value is only used by SEE/move-ordering heuristics that need a total ordering over pieces.
func NominalValue(p board.Piece) Score {
	switch p {
	case board.Pawn:
		return 100
	case board.Knight, board.Bishop:
		return 300
	case board.Rook:
		return 500
	case board.Queen:
		return 900
	case board.King:
		return 10000
	default:
		return 0
	}
}

// NominalValueGain is the nominal material gain of making a move, ignoring recapture.
func NominalValueGain(m board.Move) Score {
	switch m.Type {
	case board.CapturePromotion:
		return NominalValue(m.Capture) + NominalValue(m.Promotion) - NominalValue(board.Pawn)
	case board.Promotion:
		return NominalValue(m.Promotion) - NominalValue(board.Pawn)
	case board.Capture:
		return NominalValue(m.Capture)
	case board.EnPassant:
		return NominalValue(board.Pawn)
	default:
		return 0
	}
}
