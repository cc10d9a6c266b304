package eval

import (
	"context"

	"github.com/kestrelchess/core/pkg/board"
)

// PieceSquareTables scores each piece by its square: central squares are preferred for
// knights and bishops, pawns are rewarded for advancing, the king is rewarded for staying on
// its own back rank (by rank only, with no file or game-phase term). Values are computed rather than looked up in a
// literal 64-entry table, since board.Square does not number squares file-major from a1.
type PieceSquareTables struct{}

func (PieceSquareTables) Evaluate(_ context.Context, b *board.Board) Score {
	pos := b.Position()
	turn := b.Turn()
	return pstSide(pos, turn) - pstSide(pos, turn.Opponent())
}

func pstSide(pos *board.Position, c board.Color) Score {
	var score Score
	for piece := board.ZeroPiece; piece < board.NumPieces; piece++ {
		bb := pos.Piece(c, piece)
		for bb != 0 {
			sq := bb.LastPopSquare()
			bb ^= board.BitMask(sq)
			score += pstValue(piece, sq, c)
		}
	}
	return score
}

// pstValue returns the placement bonus of a piece of color c on sq, advancing rank is always
// counted from that color's own perspective (rank 0 is the back rank).
func pstValue(piece board.Piece, sq board.Square, c board.Color) Score {
	file := centerDistance(int(sq.File()))
	rank := advancement(sq, c)

	switch piece {
	case board.Pawn:
		return Score(rank*rank) * 2
	case board.Knight:
		return Score(3-file) * 8
	case board.Bishop:
		return Score(3-file) * 4
	case board.Rook:
		return Score(rank) * 2
	case board.Queen:
		return Score(3 - file)
	case board.King:
		return Score(3-rank) * 6 // favor the back rank absent other information
	default:
		return 0
	}
}

// centerDistance returns how many files the given file (0-7) sits from the central d/e
// files, 0 = central, 3 = edge.
func centerDistance(file int) int {
	if file <= 3 {
		return 3 - file // files h..e (0..3)
	}
	return file - 4 // files d..a (4..7)
}

// advancement returns how many ranks the square has advanced from the color's own back rank.
func advancement(sq board.Square, c board.Color) int {
	if c == board.White {
		return int(sq.Rank())
	}
	return int(board.Rank8 - sq.Rank())
}
