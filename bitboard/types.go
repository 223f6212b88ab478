package bitboard

// Piece is a colored piece code.
type Piece uint8

const (
	NoPiece     Piece = 0
	WhitePawn   Piece = 1
	WhiteKnight Piece = 2
	WhiteBishop Piece = 3
	WhiteRook   Piece = 4
	WhiteQueen  Piece = 5
	WhiteKing   Piece = 6

	// Black pieces are the white code with bit 3 set, so that
	// - piece & 7 gives the type in [1..6]
	// - piece & 8 != 0 indicates Black
	BlackPawn   Piece = 1 | 8
	BlackKnight Piece = 2 | 8
	BlackBishop Piece = 3 | 8
	BlackRook   Piece = 4 | 8
	BlackQueen  Piece = 5 | 8
	BlackKing   Piece = 6 | 8
)

// PieceType is a colorless representation of a chess piece used for table lookups.
type PieceType uint8

const (
	PieceTypeNone   PieceType = 0
	PieceTypePawn   PieceType = 1
	PieceTypeKnight PieceType = 2
	PieceTypeBishop PieceType = 3
	PieceTypeRook   PieceType = 4
	PieceTypeQueen  PieceType = 5
	PieceTypeKing   PieceType = 6
)

// Type returns the colorless type of the piece.
func (p Piece) Type() PieceType { return PieceType(p & 7) }

// Color returns the side that owns the piece. NoPiece defaults to White.
func (p Piece) Color() Color {
	if p&8 != 0 {
		return Black
	}
	return White
}

// PieceFromType combines a colorless type with a side to produce a concrete Piece.
func PieceFromType(c Color, pt PieceType) Piece {
	if pt == PieceTypeNone {
		return NoPiece
	}
	return Piece(pt) | Piece(c)<<3
}

type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// CastlingRights is a set of castling permission flags.
type CastlingRights uint8

const (
	CastlingWhiteK CastlingRights = 1 << iota
	CastlingWhiteQ
	CastlingBlackK
	CastlingBlackQ

	CastlingNone CastlingRights = 0
	CastlingAll                 = CastlingWhiteK | CastlingWhiteQ | CastlingBlackK | CastlingBlackQ
)

// Square is a board index. Square 0 is a8, 7 is h8, 56 is a1 and 63 is h1.
type Square int

const NoSquare Square = -1

const (
	A8 Square = iota
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
)

const (
	A1 Square = 56 + iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
)

// File returns 0 for the a-file through 7 for the h-file.
func (sq Square) File() int { return int(sq) % 8 }

// Rank returns 0 for the first rank through 7 for the eighth rank.
func (sq Square) Rank() int { return 7 - int(sq)/8 }

// MakeSquare builds a square from a file and rank (both 0-based).
func MakeSquare(file, rank int) Square { return Square((7-rank)*8 + file) }

// String returns the algebraic name of the square, e.g. "e4".
func (sq Square) String() string {
	if sq < 0 || sq > 63 {
		return "-"
	}
	return string([]byte{'a' + byte(sq.File()), '1' + byte(sq.Rank())})
}

// ParseSquare converts an algebraic name such as "e4" into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, malformedSquare(s)
	}
	return MakeSquare(int(s[0]-'a'), int(s[1]-'1')), nil
}
