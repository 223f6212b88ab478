package bitboard

import "fmt"

// Move encodes a move in 16 bits: from (6), to (6) and promotion piece type (3).
type Move uint16

// NullMove is the zero move; it never appears in a generated move list.
const NullMove Move = 0

const (
	moveToShift      = 6
	movePromoteShift = 12
)

// NewMove constructs a Move value from components.
func NewMove(from, to Square, promotion PieceType) Move {
	return Move(uint16(from&0x3F) | uint16(to&0x3F)<<moveToShift | uint16(promotion&7)<<movePromoteShift)
}

// From returns the source square of the move.
func (m Move) From() Square { return Square(m & 0x3F) }

// To returns the destination square of the move.
func (m Move) To() Square { return Square((m >> moveToShift) & 0x3F) }

// Promotion returns the promotion piece type, or PieceTypeNone.
func (m Move) Promotion() PieceType { return PieceType((m >> movePromoteShift) & 7) }

var promotionLetters = [...]byte{PieceTypeKnight: 'n', PieceTypeBishop: 'b', PieceTypeRook: 'r', PieceTypeQueen: 'q'}

// String returns the move in long algebraic notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	if m == NullMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if promo := m.Promotion(); promo != PieceTypeNone {
		s += string(promotionLetters[promo])
	}
	return s
}

// ParseMove parses long algebraic notation into a Move without checking
// legality against any position.
func ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NullMove, fmt.Errorf("%w: %q", ErrMalformedMove, s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NullMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NullMove, err
	}
	promo := PieceTypeNone
	if len(s) == 5 {
		switch s[4] {
		case 'q', 'Q':
			promo = PieceTypeQueen
		case 'r', 'R':
			promo = PieceTypeRook
		case 'b', 'B':
			promo = PieceTypeBishop
		case 'n', 'N':
			promo = PieceTypeKnight
		default:
			return NullMove, fmt.Errorf("%w: bad promotion piece in %q", ErrMalformedMove, s)
		}
	}
	if from == to {
		return NullMove, fmt.Errorf("%w: %q does not move", ErrMalformedMove, s)
	}
	return NewMove(from, to, promo), nil
}

// IsCapture reports whether m captures a piece on b, including en passant.
func (b *Board) IsCapture(m Move) bool {
	if b.squares[m.To()] != NoPiece {
		return true
	}
	return m.To() == b.enPassantTarget && b.squares[m.From()].Type() == PieceTypePawn
}

// CapturedPiece returns the piece m would capture on b, or NoPiece.
func (b *Board) CapturedPiece(m Move) Piece {
	if p := b.squares[m.To()]; p != NoPiece {
		return p
	}
	if m.To() == b.enPassantTarget && b.squares[m.From()].Type() == PieceTypePawn {
		return b.squares[b.enPassantPawn]
	}
	return NoPiece
}
