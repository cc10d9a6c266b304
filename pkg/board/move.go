package board

import (
	"fmt"
	"strings"
)

// MoveType indicates the type of move. The no-progress counter is reset on any pawn
// move or capture.
type MoveType uint8

const (
	Normal    MoveType = iota // quiet, non-pawn move
	Push                      // quiet pawn move, one square
	Jump                      // pawn double-push, sets an en passant target
	EnPassant                 // pawn captures en passant
	QueenSideCastle
	KingSideCastle
	Capture
	Promotion
	CapturePromotion
	NullMove // the "do nothing, flip side to move" move used by null-move pruning
)

// Move represents a not-necessarily-legal move along with the contextual metadata recovered
// against a Position (captured piece, promotion piece). 48 bits.
type Move struct {
	Type      MoveType
	Piece     Piece // the piece being moved
	From, To  Square
	Promotion Piece // desired piece for promotion, if any
	Capture   Piece // captured piece, if any
}

// ParseMove parses a "bare" move in pure algebraic coordinate notation, such as "a2a4" or
// "a7a8q". The null move is encoded as "0000". The parsed move carries no contextual
// metadata (Type, Piece, Capture) -- it must be validated and completed against a Position's
// legal move list before use; see Position.Resolve.
func ParseMove(str string) (Move, error) {
	if str == "0000" {
		return Move{Type: NullMove}, nil
	}

	runes := []rune(str)
	if len(runes) < 4 || len(runes) > 5 {
		return Move{}, fmt.Errorf("invalid move: '%v'", str)
	}

	from, err := ParseSquare(runes[0], runes[1])
	if err != nil {
		return Move{}, fmt.Errorf("invalid from: '%v': %v", str, err)
	}
	to, err := ParseSquare(runes[2], runes[3])
	if err != nil {
		return Move{}, fmt.Errorf("invalid to: '%v': %v", str, err)
	}

	if len(runes) == 5 {
		promo, ok := ParsePiece(runes[4])
		if !ok || promo == Pawn || promo == King {
			return Move{}, fmt.Errorf("invalid promotion: '%v'", str)
		}
		return Move{From: from, To: to, Promotion: promo}, nil
	}
	return Move{From: from, To: to}, nil
}

// Equals compares the bare move identity: from, to and promotion piece. Used to match a
// caller-supplied bare move against a fully-resolved, legal move.
func (m Move) Equals(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Promotion == o.Promotion
}

func (m Move) IsCapture() bool {
	return m.Type == Capture || m.Type == EnPassant || m.Type == CapturePromotion
}

func (m Move) IsPromotion() bool {
	return m.Type == Promotion || m.Type == CapturePromotion
}

func (m Move) IsCastle() bool {
	return m.Type == KingSideCastle || m.Type == QueenSideCastle
}

func (m Move) String() string {
	if m.Type == NullMove {
		return "0000"
	}
	if m.Promotion.IsValid() {
		return strings.ToLower(fmt.Sprintf("%v%v%v", m.From, m.To, m.Promotion))
	}
	return strings.ToLower(fmt.Sprintf("%v%v", m.From, m.To))
}

// PrintMoves renders moves as space-separated lowercase "from-to" pairs, with any promotion
// piece appended, such as "e2-e4 e7-e8q".
func PrintMoves(moves []Move) string {
	return FormatMoves(moves, func(m Move) string {
		str := fmt.Sprintf("%v-%v", m.From, m.To)
		if m.Promotion.IsValid() {
			str += m.Promotion.String()
		}
		return strings.ToLower(str)
	})
}

// FormatMoves renders each move with fn and joins the results with single spaces.
func FormatMoves(moves []Move, fn func(Move) string) string {
	var parts []string
	for _, m := range moves {
		parts = append(parts, fn(m))
	}
	return strings.Join(parts, " ")
}

// EnPassantCaptureSquare returns the square of the pawn captured en passant, given the
// mover's color. Only meaningful for Type == EnPassant.
func (m Move) EnPassantCaptureSquare(turn Color) Square {
	if turn == White {
		return m.To - 8
	}
	return m.To + 8
}

// EnPassantTarget returns the square "skipped over" by a double pawn push -- the new en
// passant target square. Only meaningful for Type == Jump.
func (m Move) EnPassantTarget(turn Color) Square {
	if turn == White {
		return m.From + 8
	}
	return m.From - 8
}

// CastlingRookMove returns the rook's from/to squares for a castling move, given the
// mover's color.
func (m Move) CastlingRookMove(turn Color) (from, to Square) {
	if turn == White {
		if m.Type == KingSideCastle {
			return H1, F1
		}
		return A1, D1
	}
	if m.Type == KingSideCastle {
		return H8, F8
	}
	return A8, D8
}

// CastlingRightsLost returns the castling rights revoked purely as a structural consequence
// of a piece having left (From) or been captured on (To) one of the four corner/king squares.
// Valid only for standard (non-Chess960) starting squares.
func (m Move) CastlingRightsLost() Castling {
	return castlingRightsLostBySquare(m.From) | castlingRightsLostBySquare(m.To)
}

func castlingRightsLostBySquare(sq Square) Castling {
	switch sq {
	case E1:
		return RightsOf(White)
	case A1:
		return WhiteQueenSideCastle
	case H1:
		return WhiteKingSideCastle
	case E8:
		return RightsOf(Black)
	case A8:
		return BlackQueenSideCastle
	case H8:
		return BlackKingSideCastle
	default:
		return 0
	}
}
