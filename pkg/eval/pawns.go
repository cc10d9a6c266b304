package eval

import (
	"context"

	"github.com/kestrelchess/core/pkg/board"
)

// PawnStructure scores doubled, isolated, backward, passed and connected pawns. It is the
// single largest source of positional understanding outside material and piece placement.
type PawnStructure struct{}

const (
	doubledPenalty   Score = -20
	isolatedPenalty  Score = -15
	backwardPenalty  Score = -10
	connectedBonus   Score = 8
	passedBaseBonus  Score = 15
	passedRankFactor Score = 8
)

func (PawnStructure) Evaluate(_ context.Context, b *board.Board) Score {
	pos := b.Position()
	turn := b.Turn()
	return pawnSide(pos, turn) - pawnSide(pos, turn.Opponent())
}

func pawnSide(pos *board.Position, c board.Color) Score {
	own := pos.Piece(c, board.Pawn)
	opp := pos.Piece(c.Opponent(), board.Pawn)

	var score Score
	for f := board.ZeroFile; f < board.NumFiles; f++ {
		file := own & board.BitFile(f)
		if cnt := file.PopCount(); cnt > 1 {
			score += doubledPenalty * Score(cnt-1)
		}

		adjacent := adjacentFiles(own, f)
		if file != 0 && adjacent == 0 {
			score += isolatedPenalty
		}
	}

	bb := own
	for bb != 0 {
		sq := bb.LastPopSquare()
		bb ^= board.BitMask(sq)

		if isPassed(opp, sq, c) {
			score += passedBaseBonus + passedRankFactor*Score(advancement(sq, c))
		}
		if isConnected(own, sq, c) {
			score += connectedBonus
		}
		if isBackward(own, opp, sq, c) {
			score += backwardPenalty
		}
	}
	return score
}

func adjacentFiles(bb board.Bitboard, f board.File) board.Bitboard {
	var ret board.Bitboard
	if f > board.ZeroFile {
		ret |= bb & board.BitFile(f - 1)
	}
	if f < board.NumFiles-1 {
		ret |= bb & board.BitFile(f + 1)
	}
	return ret
}

// isPassed returns true iff no opposing pawn can ever stop this pawn from promoting: no
// enemy pawn on its file or an adjacent file is ahead of its rank (from c's direction).
func isPassed(opp board.Bitboard, sq board.Square, c board.Color) bool {
	span := adjacentFiles(opp, sq.File()) | (opp & board.BitFile(sq.File()))
	for span != 0 {
		other := span.LastPopSquare()
		span ^= board.BitMask(other)
		if c == board.White && other.Rank() > sq.Rank() {
			return false
		}
		if c == board.Black && other.Rank() < sq.Rank() {
			return false
		}
	}
	return true
}

// isConnected returns true iff an own pawn on an adjacent file can defend this square.
func isConnected(own board.Bitboard, sq board.Square, c board.Color) bool {
	return adjacentFiles(own, sq.File())&board.PawnCaptureboard(c.Opponent(), board.BitMask(sq)) != 0
}

// isBackward returns true iff the pawn has no own pawn on an adjacent file able to support
// its advance, and its stop square is controlled by an enemy pawn.
func isBackward(own, opp board.Bitboard, sq board.Square, c board.Color) bool {
	support := adjacentFiles(own, sq.File())
	for support != 0 {
		s := support.LastPopSquare()
		support ^= board.BitMask(s)
		if c == board.White && s.Rank() <= sq.Rank() {
			return false
		}
		if c == board.Black && s.Rank() >= sq.Rank() {
			return false
		}
	}

	stop := board.PawnMoveboard(0, c, board.BitMask(sq))
	return board.PawnCaptureboard(c.Opponent(), opp)&stop != 0
}
