package eval

import (
	"context"

	"github.com/kestrelchess/core/pkg/board"
)

// Outcome classifies a recognized endgame by who (if anyone) can force a win, independent of
// the current evaluation's magnitude.
type Outcome uint8

const (
	Unknown Outcome = iota
	DrawImmediate
	Draw
	WhiteWin
	WhiteLoss
	WhiteWinOrDraw
	WhiteLossOrDraw
)

// recognized wraps a fallback evaluator, substituting a recognized endgame's classification
// for the fallback's score whenever one applies. A recognized win/loss is scaled toward
// MateScore by how advanced the winning side's progress is, so the search still prefers
// faster conversions over slower ones instead of treating all wins as equally good.
type recognized struct {
	fallback Evaluator
}

func (r recognized) Evaluate(ctx context.Context, b *board.Board) Score {
	if outcome, score, ok := Recognize(b.Position()); ok {
		if b.Turn() == board.White {
			return score
		}
		_ = outcome
		return score.Negate()
	}
	return r.fallback.Evaluate(ctx, b)
}

// Recognize classifies the position's material as one of a small set of known endgames,
// returning a White-relative score and true iff recognized. KPk and KRk/KQk/KBNk drive their
// winning king toward the weaker side's king or mating corner; everything else defers to
// the general evaluator.
func Recognize(pos *board.Position) (Outcome, Score, bool) {
	wp, bp := pos.Piece(board.White, board.Pawn).PopCount(), pos.Piece(board.Black, board.Pawn).PopCount()
	wn, bn := pos.Piece(board.White, board.Knight).PopCount(), pos.Piece(board.Black, board.Knight).PopCount()
	wb, bb := pos.Piece(board.White, board.Bishop).PopCount(), pos.Piece(board.Black, board.Bishop).PopCount()
	wr, br := pos.Piece(board.White, board.Rook).PopCount(), pos.Piece(board.Black, board.Rook).PopCount()
	wq, bq := pos.Piece(board.White, board.Queen).PopCount(), pos.Piece(board.Black, board.Queen).PopCount()

	officers := func(n, b, r, q int) int { return n + b + r + q }
	wOfficers, bOfficers := officers(wn, wb, wr, wq), officers(bn, bb, br, bq)

	switch {
	case wp+bp+wOfficers+bOfficers == 0:
		return DrawImmediate, ZeroScore, true

	case bp+wOfficers+bOfficers == 0 && wp == 1:
		return winningPawnEndgame(pos, board.White)
	case wp+wOfficers+bOfficers == 0 && bp == 1:
		outcome, score, ok := winningPawnEndgame(pos, board.Black)
		return outcome, score, ok

	case wp+bp+bOfficers == 0 && (wr == 1 && wq+wn+wb == 0 || wq == 1 && wr+wn+wb == 0):
		return mateWithMajor(pos, board.White)
	case wp+bp+wOfficers == 0 && (br == 1 && bq+bn+bb == 0 || bq == 1 && br+bn+bb == 0):
		return mateWithMajor(pos, board.Black)

	case wp+bp+bOfficers == 0 && wn == 1 && wb == 1 && wr+wq == 0:
		return mateWithMinors(pos, board.White)
	case wp+bp+wOfficers == 0 && bn == 1 && bb == 1 && br+bq == 0:
		return mateWithMinors(pos, board.Black)

	default:
		return Unknown, ZeroScore, false
	}
}

// winningPawnEndgame approximates KPk: scored as a clear advantage, scaled by how far the
// pawn has advanced, without attempting full rule-of-the-square opposition analysis.
func winningPawnEndgame(pos *board.Position, side board.Color) (Outcome, Score, bool) {
	sq := pos.Piece(side, board.Pawn).LastPopSquare()
	progress := Score(advancement(sq, side))

	score := NominalValue(board.Pawn) + progress*40
	if side == board.Black {
		score = -score
	}
	return WhiteWinOrDraw, score, true
}

// mateWithMajor scores a lone rook/queen mate, rewarding driving the defending king to the
// board edge and bringing the attacking king closer.
func mateWithMajor(pos *board.Position, side board.Color) (Outcome, Score, bool) {
	weak := side.Opponent()
	score := MateScore - MaxMateDistance/2 + cornerBonus(pos, weak) + approachBonus(pos, side)
	if side == board.Black {
		score = -score
	}
	return outcomeFor(side), score, true
}

// mateWithMinors scores the harder KBN v K mate, driving the defending king to the corner
// matching the bishop's square color.
func mateWithMinors(pos *board.Position, side board.Color) (Outcome, Score, bool) {
	weak := side.Opponent()
	score := MateScore - MaxMateDistance + cornerBonus(pos, weak) + approachBonus(pos, side)
	if side == board.Black {
		score = -score
	}
	return outcomeFor(side), score, true
}

func outcomeFor(side board.Color) Outcome {
	if side == board.White {
		return WhiteWin
	}
	return WhiteLoss
}

// cornerBonus rewards the defending king being pushed toward any board edge.
func cornerBonus(pos *board.Position, weak board.Color) Score {
	sq := pos.King(weak)
	fileDist := centerDistance(int(sq.File()))
	rankDist := centerDistance(int(sq.Rank()))
	return Score(fileDist+rankDist) * 10
}

// approachBonus rewards the attacking king standing close to the defending king.
func approachBonus(pos *board.Position, side board.Color) Score {
	dist := chebyshev(pos.King(side), pos.King(side.Opponent()))
	return Score(7-dist) * 4
}
