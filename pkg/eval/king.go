package eval

import (
	"context"

	"github.com/kestrelchess/core/pkg/board"
)

// KingSafety rewards an intact pawn shield in front of the king and penalizes open or
// semi-open files next to it, plus a tropism term pulling enemy officers toward the king.
type KingSafety struct{}

const (
	shieldPawnBonus  Score = 10
	openFilePenalty  Score = -25
	semiOpenPenalty  Score = -12
	tropismPerSquare Score = -2
)

func (KingSafety) Evaluate(_ context.Context, b *board.Board) Score {
	pos := b.Position()
	turn := b.Turn()
	return kingSide(pos, turn) - kingSide(pos, turn.Opponent())
}

func kingSide(pos *board.Position, c board.Color) Score {
	king := pos.King(c)
	var score Score

	score += shieldScore(pos, king, c)
	score += fileScore(pos, king, c)
	score += tropismScore(pos, king, c)
	return score
}

// shieldScore rewards own pawns on the three files around the king, counted at any rank; how
// far a pawn stands from the king is not considered.
func shieldScore(pos *board.Position, king board.Square, c board.Color) Score {
	own := pos.Piece(c, board.Pawn)

	var shield board.Bitboard
	for _, f := range shieldFiles(king.File()) {
		shield |= board.BitFile(f)
	}

	return Score((shield & own).PopCount()) * shieldPawnBonus
}

func fileScore(pos *board.Position, king board.Square, c board.Color) Score {
	own := pos.Piece(c, board.Pawn)
	opp := pos.Piece(c.Opponent(), board.Pawn)

	var score Score
	for _, f := range shieldFiles(king.File()) {
		file := board.BitFile(f)
		switch {
		case own&file == 0 && opp&file == 0:
			score += openFilePenalty
		case own&file == 0:
			score += semiOpenPenalty
		}
	}
	return score
}

// tropismScore penalizes enemy knights/bishops/rooks/queens standing close to the king.
func tropismScore(pos *board.Position, king board.Square, c board.Color) Score {
	var score Score
	for _, piece := range []board.Piece{board.Queen, board.Rook, board.Bishop, board.Knight} {
		bb := pos.Piece(c.Opponent(), piece)
		for bb != 0 {
			sq := bb.LastPopSquare()
			bb ^= board.BitMask(sq)
			score += tropismPerSquare * Score(8-chebyshev(king, sq))
		}
	}
	return score
}

func chebyshev(a, b board.Square) int {
	df := int(a.File()) - int(b.File())
	if df < 0 {
		df = -df
	}
	dr := int(a.Rank()) - int(b.Rank())
	if dr < 0 {
		dr = -dr
	}
	if df > dr {
		return df
	}
	return dr
}

func shieldFiles(f board.File) []board.File {
	switch {
	case f == board.ZeroFile:
		return []board.File{f, f + 1}
	case f == board.NumFiles-1:
		return []board.File{f - 1, f}
	default:
		return []board.File{f - 1, f, f + 1}
	}
}
