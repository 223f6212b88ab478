package bitboard

import (
	"fmt"
	"strings"
)

// Debug enables invariant checks after every make and unmake. A violation
// is a programming error and panics.
var Debug = false

// defaultHistoryCap is the initial capacity of the per-ply hash history.
const defaultHistoryCap = 1024

// Board represents the chess position, including piece placement and game state.
type Board struct {
	// Per-piece bitboards indexed by piece code (slots 0, 7 and 8 unused)
	pieces [15]uint64

	// Occupancy bitboards for each side and for the whole board
	occupancy [2]uint64
	all       uint64

	// Piece placement array for each square, a cached view of pieces
	squares [64]Piece

	sideToMove     Color
	castlingRights CastlingRights

	// En passant landing square, and the square of the pawn that double-moved
	enPassantTarget Square
	enPassantPawn   Square

	halfmoveClock  int
	fullmoveNumber int

	// ply counts half-moves since the position was loaded; history[ply] is
	// the current hash and earlier slots stay valid across make/unmake.
	ply              int
	lastIrreversible int
	history          []uint64
	hash             uint64
}

func newEmptyBoard() *Board {
	return &Board{
		enPassantTarget: NoSquare,
		enPassantPawn:   NoSquare,
		fullmoveNumber:  1,
		history:         make([]uint64, 1, defaultHistoryCap),
	}
}

// NewBoard returns the standard starting position.
func NewBoard() *Board {
	b, err := ParseFEN(FENStartPos)
	if err != nil {
		panic(err)
	}
	return b
}

// Clone returns a deep copy of the board, including its hash history.
func (b *Board) Clone() *Board {
	c := *b
	c.history = make([]uint64, len(b.history), cap(b.history))
	copy(c.history, b.history)
	return &c
}

// SideToMove reports which side is to play.
func (b *Board) SideToMove() Color { return b.sideToMove }

// Hash returns the current Zobrist hash key.
func (b *Board) Hash() uint64 { return b.hash }

// HalfmoveClock returns the number of half-moves since the last capture or pawn move.
func (b *Board) HalfmoveClock() int { return b.halfmoveClock }

// FullmoveNumber returns the full move counter (incremented after Black's move).
func (b *Board) FullmoveNumber() int { return b.fullmoveNumber }

// Ply returns the number of half-moves made since the position was loaded.
func (b *Board) Ply() int { return b.ply }

// LastIrreversiblePly returns the ply of the most recent capture or pawn move.
func (b *Board) LastIrreversiblePly() int { return b.lastIrreversible }

// CastlingRights returns the current castling permissions.
func (b *Board) CastlingRights() CastlingRights { return b.castlingRights }

// EnPassantTarget returns the en passant landing square or NoSquare.
func (b *Board) EnPassantTarget() Square { return b.enPassantTarget }

// PieceAt returns the piece on a square.
func (b *Board) PieceAt(sq Square) Piece { return b.squares[sq] }

// Pieces returns the bitboard of the given piece.
func (b *Board) Pieces(p Piece) uint64 { return b.pieces[p] }

// Occupancy returns the occupancy bitboard for the given color.
func (b *Board) Occupancy(c Color) uint64 { return b.occupancy[c] }

// AllOccupancy returns a bitboard of all occupied squares.
func (b *Board) AllOccupancy() uint64 { return b.all }

// KingSquare returns the square of the given side's king.
func (b *Board) KingSquare(c Color) Square {
	return Square(LSB(b.pieces[PieceFromType(c, PieceTypeKing)]))
}

func (b *Board) addPiece(sq Square, p Piece) {
	bit := SquareBB(sq)
	b.squares[sq] = p
	b.pieces[p] |= bit
	b.occupancy[p.Color()] |= bit
	b.all |= bit
	b.hash ^= zobristPiece[p][sq]
}

func (b *Board) removePiece(sq Square) Piece {
	p := b.squares[sq]
	if p == NoPiece {
		return NoPiece
	}
	mask := ^SquareBB(sq)
	b.squares[sq] = NoPiece
	b.pieces[p] &= mask
	b.occupancy[p.Color()] &= mask
	b.all &= mask
	b.hash ^= zobristPiece[p][sq]
	return p
}

func (b *Board) movePiece(from, to Square) {
	p := b.removePiece(from)
	b.addPiece(to, p)
}

// Snapshot is a comparable copy of every field that make/unmake must restore.
type Snapshot struct {
	Pieces           [15]uint64
	Occupancy        [2]uint64
	All              uint64
	Squares          [64]Piece
	SideToMove       Color
	CastlingRights   CastlingRights
	EnPassantTarget  Square
	EnPassantPawn    Square
	HalfmoveClock    int
	FullmoveNumber   int
	Ply              int
	LastIrreversible int
	Hash             uint64
}

// Snapshot captures the current state for comparison in tests and tools.
func (b *Board) Snapshot() Snapshot {
	return Snapshot{
		Pieces:           b.pieces,
		Occupancy:        b.occupancy,
		All:              b.all,
		Squares:          b.squares,
		SideToMove:       b.sideToMove,
		CastlingRights:   b.castlingRights,
		EnPassantTarget:  b.enPassantTarget,
		EnPassantPawn:    b.enPassantPawn,
		HalfmoveClock:    b.halfmoveClock,
		FullmoveNumber:   b.fullmoveNumber,
		Ply:              b.ply,
		LastIrreversible: b.lastIrreversible,
		Hash:             b.hash,
	}
}

// Validate checks internal consistency between squares[], the per-piece
// bitboards, the aggregate occupancies and the incremental hash.
func (b *Board) Validate() error {
	var pieces [15]uint64
	var occ [2]uint64
	for sq := Square(0); sq < 64; sq++ {
		p := b.squares[sq]
		if p == NoPiece {
			continue
		}
		if p.Type() > PieceTypeKing || p&^15 != 0 {
			return fmt.Errorf("bad piece code %d on %s", p, sq)
		}
		pieces[p] |= SquareBB(sq)
		occ[p.Color()] |= SquareBB(sq)
	}
	if pieces != b.pieces {
		return fmt.Errorf("piece bitboards out of sync with square array")
	}
	if occ != b.occupancy {
		return fmt.Errorf("color occupancy out of sync: have %x/%x want %x/%x", b.occupancy[0], b.occupancy[1], occ[0], occ[1])
	}
	if b.all != occ[White]|occ[Black] || occ[White]&occ[Black] != 0 {
		return fmt.Errorf("aggregate occupancy out of sync")
	}
	if b.history[b.ply] != b.hash {
		return fmt.Errorf("hash history slot %d does not hold the current hash", b.ply)
	}
	if h := b.ComputeHash(); h != b.hash {
		return fmt.Errorf("incremental hash %016x != computed %016x", b.hash, h)
	}
	return nil
}

func (b *Board) assertValid(op string) {
	if err := b.Validate(); err != nil {
		panic(op + ": " + err.Error())
	}
}

// String renders an ASCII diagram of the board with White at the bottom.
func (b *Board) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte(byte('1' + rank))
		sb.WriteString("  ")
		for file := 0; file < 8; file++ {
			p := b.squares[MakeSquare(file, rank)]
			if p == NoPiece {
				sb.WriteByte('.')
			} else {
				sb.WriteRune(charFromPiece(p))
			}
			if file < 7 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n")
	return sb.String()
}
