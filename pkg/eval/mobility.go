package eval

import (
	"context"

	"github.com/kestrelchess/core/pkg/board"
)

// Mobility rewards the number of squares each officer can reach, knight/bishop outposts,
// rooks on open files, the bishop pair and penalizes a redundant rook pair.
type Mobility struct{}

const (
	mobilityPerSquare   Score = 2
	outpostBonus        Score = 18
	rookOpenFileBonus   Score = 20
	rookSemiOpenBonus   Score = 10
	bishopPairBonus     Score = 30
	redundantRookMalus  Score = -10
)

func (Mobility) Evaluate(_ context.Context, b *board.Board) Score {
	pos := b.Position()
	turn := b.Turn()
	return mobilitySide(pos, turn) - mobilitySide(pos, turn.Opponent())
}

func mobilitySide(pos *board.Position, c board.Color) Score {
	own := pos.Color(c)
	var score Score

	for _, piece := range []board.Piece{board.Knight, board.Bishop, board.Rook, board.Queen} {
		bb := pos.Piece(c, piece)
		for bb != 0 {
			sq := bb.LastPopSquare()
			bb ^= board.BitMask(sq)
			targets := board.Attackboard(pos.Rotated(), sq, piece) &^ own
			score += Score(targets.PopCount()) * mobilityPerSquare
		}
	}

	score += outpostScore(pos, c)
	score += rookFileScore(pos, c)

	if pos.Piece(c, board.Bishop).PopCount() >= 2 {
		score += bishopPairBonus
	}
	if pos.Piece(c, board.Rook).PopCount() >= 2 {
		score += redundantRookMalus
	}
	return score
}

// outpostScore rewards knights and bishops sitting on a square defended by an own pawn that
// can never be challenged by an enemy pawn.
func outpostScore(pos *board.Position, c board.Color) Score {
	opp := pos.Piece(c.Opponent(), board.Pawn)
	ownPawns := pos.Piece(c, board.Pawn)

	var score Score
	for _, piece := range []board.Piece{board.Knight, board.Bishop} {
		bb := pos.Piece(c, piece)
		for bb != 0 {
			sq := bb.LastPopSquare()
			bb ^= board.BitMask(sq)

			defended := board.PawnCaptureboard(c.Opponent(), board.BitMask(sq))&ownPawns != 0
			if defended && isPassed(opp, sq, c) {
				score += outpostBonus
			}
		}
	}
	return score
}

func rookFileScore(pos *board.Position, c board.Color) Score {
	own := pos.Piece(c, board.Pawn)
	opp := pos.Piece(c.Opponent(), board.Pawn)

	var score Score
	bb := pos.Piece(c, board.Rook)
	for bb != 0 {
		sq := bb.LastPopSquare()
		bb ^= board.BitMask(sq)

		file := board.BitFile(sq.File())
		switch {
		case own&file == 0 && opp&file == 0:
			score += rookOpenFileBonus
		case own&file == 0:
			score += rookSemiOpenBonus
		}
	}
	return score
}
