package eval

import (
	"context"

	"github.com/kestrelchess/core/pkg/board"
)

// Pin is a piece absolutely or relatively pinned against a more valuable piece of its own
// color by a slider attacking through it.
type Pin struct {
	Attacker, Pinned, Target board.Square
}

// PinDetection penalizes pieces pinned against the king: a pinned piece can only move along
// the pin ray, so it contributes far less to king safety and mobility than its nominal value
// suggests.
type PinDetection struct{}

const pinMalus Score = -15

func (PinDetection) Evaluate(_ context.Context, b *board.Board) Score {
	pos := b.Position()
	turn := b.Turn()
	return pinScore(pos, turn) - pinScore(pos, turn.Opponent())
}

func pinScore(pos *board.Position, c board.Color) Score {
	kingSq := pos.Piece(c, board.King).LastPopSquare()

	var score Score
	for range pinsOnSquare(pos, c, kingSq) {
		score += pinMalus
	}
	return score
}

// pinsOnSquare returns every pin of side's own piece that shields target from an opposing
// slider, covering both rook/queen (file/rank) and bishop/queen (diagonal) pin geometries.
func pinsOnSquare(pos *board.Position, side board.Color, target board.Square) []Pin {
	var found []Pin

	rookRay := board.RookAttackboard(pos.Rotated(), target)
	found = append(found, pinsAlong(pos, side, target, rookRay, board.RookAttackboard,
		pos.Piece(side.Opponent(), board.Queen)|pos.Piece(side.Opponent(), board.Rook))...)

	bishopRay := board.BishopAttackboard(pos.Rotated(), target)
	found = append(found, pinsAlong(pos, side, target, bishopRay, board.BishopAttackboard,
		pos.Piece(side.Opponent(), board.Queen)|pos.Piece(side.Opponent(), board.Bishop))...)

	return found
}

func pinsAlong(pos *board.Position, side board.Color, target board.Square, ray board.Bitboard,
	slide func(board.RotatedBitboard, board.Square) board.Bitboard, attackers board.Bitboard) []Pin {

	var found []Pin
	blockers := ray & pos.Color(side)
	for blockers != 0 {
		pinned := blockers.LastPopSquare()
		blockers ^= board.BitMask(pinned)

		behind := slide(pos.Rotated().Xor(pinned), target) &^ ray & attackers
		if behind != 0 {
			found = append(found, Pin{Attacker: behind.LastPopSquare(), Pinned: pinned, Target: target})
		}
	}
	return found
}
