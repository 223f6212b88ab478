package bitboard

// Precomputed attack masks for knights and kings from each square.
var knightAttacks [64]uint64
var kingAttacks [64]uint64

// Pawn tables, indexed [color][square].
var pawnAttacks [2][64]uint64
var pawnPushes [2][64]uint64
var pawnDoublePushes [2][64]uint64
var pawnEnPassantAttacks [2][64]uint64

// alignMasks[a][b] is the full line through a and b when they share a rank,
// file or diagonal, else 0. between[a][b] holds the squares strictly between.
var alignMasks [64][64]uint64
var between [64][64]uint64

// Rank masks in the a8=0 layout.
const (
	Rank1BB uint64 = 0xFF << 56
	Rank2BB uint64 = 0xFF << 48
	Rank4BB uint64 = 0xFF << 32
	Rank5BB uint64 = 0xFF << 24
	Rank7BB uint64 = 0xFF << 8
	Rank8BB uint64 = 0xFF
)

type direction struct{ df, dr int }

var rookDirections = [4]direction{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
var bishopDirections = [4]direction{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}}

// castleInfo describes one castling move for one side.
type castleInfo struct {
	right      CastlingRights
	kingFrom   Square
	kingTo     Square
	rookFrom   Square
	rookTo     Square
	empty      uint64 // squares between king and rook
	safe       uint64 // squares the king stands on, crosses or lands on
	rookToggle uint64 // xor mask moving the rook from rookFrom to rookTo
}

// castles[color][0] is king-side, castles[color][1] is queen-side.
var castles [2][2]castleInfo

// castlingKeep[sq] holds the rights that survive a move touching sq.
var castlingKeep [64]CastlingRights

func init() {
	initLeaperTables()
	initPawnTables()
	initLineTables()
	initCastling()
	initMagics()
}

func onBoard(file, rank int) bool { return file >= 0 && file < 8 && rank >= 0 && rank < 8 }

func offsetMask(sq Square, offsets []direction) uint64 {
	var mask uint64
	f, r := sq.File(), sq.Rank()
	for _, off := range offsets {
		if onBoard(f+off.df, r+off.dr) {
			mask |= SquareBB(MakeSquare(f+off.df, r+off.dr))
		}
	}
	return mask
}

func initLeaperTables() {
	knightOffsets := []direction{
		{1, 2}, {-1, 2}, {1, -2}, {-1, -2},
		{2, 1}, {-2, 1}, {2, -1}, {-2, -1},
	}
	kingOffsets := []direction{
		{0, 1}, {0, -1}, {1, 0}, {-1, 0},
		{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
	}
	for sq := Square(0); sq < 64; sq++ {
		knightAttacks[sq] = offsetMask(sq, knightOffsets)
		kingAttacks[sq] = offsetMask(sq, kingOffsets)
	}
}

func initPawnTables() {
	for sq := Square(0); sq < 64; sq++ {
		f, r := sq.File(), sq.Rank()

		pawnAttacks[White][sq] = offsetMask(sq, []direction{{-1, 1}, {1, 1}})
		pawnAttacks[Black][sq] = offsetMask(sq, []direction{{-1, -1}, {1, -1}})

		if r < 7 {
			pawnPushes[White][sq] = SquareBB(MakeSquare(f, r+1))
		}
		if r > 0 {
			pawnPushes[Black][sq] = SquareBB(MakeSquare(f, r-1))
		}
		if r == 1 {
			pawnDoublePushes[White][sq] = SquareBB(MakeSquare(f, r+2))
		}
		if r == 6 {
			pawnDoublePushes[Black][sq] = SquareBB(MakeSquare(f, r-2))
		}

		// En passant is only ever available to a pawn on its fifth rank.
		if r == 4 {
			pawnEnPassantAttacks[White][sq] = pawnAttacks[White][sq]
		}
		if r == 3 {
			pawnEnPassantAttacks[Black][sq] = pawnAttacks[Black][sq]
		}
	}
}

func initLineTables() {
	all := append(rookDirections[:], bishopDirections[:]...)
	for a := Square(0); a < 64; a++ {
		for _, d := range all {
			// Squares on the ray from a in direction d, and the backward ray.
			var forward, backward uint64
			for f, r := a.File()+d.df, a.Rank()+d.dr; onBoard(f, r); f, r = f+d.df, r+d.dr {
				forward |= SquareBB(MakeSquare(f, r))
			}
			for f, r := a.File()-d.df, a.Rank()-d.dr; onBoard(f, r); f, r = f-d.df, r-d.dr {
				backward |= SquareBB(MakeSquare(f, r))
			}
			line := forward | backward | SquareBB(a)

			var gap uint64
			for f, r := a.File()+d.df, a.Rank()+d.dr; onBoard(f, r); f, r = f+d.df, r+d.dr {
				b := MakeSquare(f, r)
				alignMasks[a][b] = line
				between[a][b] = gap
				gap |= SquareBB(b)
			}
		}
	}
}

func initCastling() {
	castles[White][0] = castleInfo{right: CastlingWhiteK, kingFrom: E1, kingTo: G1, rookFrom: H1, rookTo: F1}
	castles[White][1] = castleInfo{right: CastlingWhiteQ, kingFrom: E1, kingTo: C1, rookFrom: A1, rookTo: D1}
	castles[Black][0] = castleInfo{right: CastlingBlackK, kingFrom: E8, kingTo: G8, rookFrom: H8, rookTo: F8}
	castles[Black][1] = castleInfo{right: CastlingBlackQ, kingFrom: E8, kingTo: C8, rookFrom: A8, rookTo: D8}

	for c := range castles {
		for i := range castles[c] {
			ci := &castles[c][i]
			ci.empty = between[ci.kingFrom][ci.rookFrom]
			ci.safe = between[ci.kingFrom][ci.kingTo] | SquareBB(ci.kingFrom) | SquareBB(ci.kingTo)
			ci.rookToggle = SquareBB(ci.rookFrom) | SquareBB(ci.rookTo)
		}
	}

	for sq := range castlingKeep {
		castlingKeep[sq] = CastlingAll
	}
	castlingKeep[A1] &^= CastlingWhiteQ
	castlingKeep[H1] &^= CastlingWhiteK
	castlingKeep[E1] &^= CastlingWhiteK | CastlingWhiteQ
	castlingKeep[A8] &^= CastlingBlackQ
	castlingKeep[H8] &^= CastlingBlackK
	castlingKeep[E8] &^= CastlingBlackK | CastlingBlackQ
}

// slidingAttacks walks each direction from sq until the board edge or the
// first blocker, which is included so captures are represented.
func slidingAttacks(sq Square, occ uint64, dirs [4]direction) uint64 {
	var attacks uint64
	for _, d := range dirs {
		for f, r := sq.File()+d.df, sq.Rank()+d.dr; onBoard(f, r); f, r = f+d.df, r+d.dr {
			bit := SquareBB(MakeSquare(f, r))
			attacks |= bit
			if occ&bit != 0 {
				break
			}
		}
	}
	return attacks
}

// movementMask is the set of squares whose occupancy can change the slider's
// attacks: every ray square except the last one before the edge.
func movementMask(sq Square, dirs [4]direction) uint64 {
	var mask uint64
	for _, d := range dirs {
		for f, r := sq.File()+d.df, sq.Rank()+d.dr; onBoard(f+d.df, r+d.dr); f, r = f+d.df, r+d.dr {
			mask |= SquareBB(MakeSquare(f, r))
		}
	}
	return mask
}

// KnightAttacks returns the knight attack set from sq.
func KnightAttacks(sq Square) uint64 { return knightAttacks[sq] }

// KingAttacks returns the king attack set from sq.
func KingAttacks(sq Square) uint64 { return kingAttacks[sq] }

// PawnAttacks returns the squares a pawn of color c attacks from sq.
func PawnAttacks(c Color, sq Square) uint64 { return pawnAttacks[c][sq] }

// AlignMask returns the full line through a and b, or 0 if they are not aligned.
func AlignMask(a, b Square) uint64 { return alignMasks[a][b] }

// Between returns the squares strictly between a and b on a shared line.
func Between(a, b Square) uint64 { return between[a][b] }
