package engine

import (
	bb "magicchess/bitboard"
)

// PieceValues is indexed by piece type. The king has no material value.
var PieceValues = [7]int32{
	bb.PieceTypeNone:   0,
	bb.PieceTypePawn:   100,
	bb.PieceTypeKnight: 375,
	bb.PieceTypeBishop: 397,
	bb.PieceTypeRook:   613,
	bb.PieceTypeQueen:  1220,
	bb.PieceTypeKing:   0,
}

// phaseTotal is the sum of the early and end game weights.
const phaseTotal = 16

// =============================================================================
// PIECE SQUARE TABLES
// Seen from white, a8 first. Black reads them through mirrorSquare.
// =============================================================================
var earlyPST = [7][64]int32{
	bb.PieceTypePawn: {
		0, 0, 0, 0, 0, 0, 0, 0,
		50, 50, 50, 50, 50, 50, 50, 50,
		10, 10, 20, 30, 30, 20, 10, 10,
		5, 5, 10, 25, 25, 10, 5, 5,
		0, 0, 0, 20, 20, 0, 0, 0,
		5, -5, -10, 0, 0, -10, -5, 5,
		5, 10, 10, -20, -20, 10, 10, 5,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	bb.PieceTypeKnight: {
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 5, 10, 15, 15, 10, 5, -30,
		-40, -20, 0, 5, 5, 0, -20, -40,
		-50, -40, -30, -30, -30, -30, -40, -50,
	},
	bb.PieceTypeBishop: {
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 5, 5, 10, 10, 5, 5, -10,
		-10, 0, 10, 10, 10, 10, 0, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 5, 0, 0, 0, 0, 5, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	},
	bb.PieceTypeRook: {
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 10, 10, 10, 10, 10, 10, 5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-20, 0, 0, 5, 5, 0, 0, -20,
	},
	bb.PieceTypeQueen: {
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-5, 0, 5, 5, 5, 5, 0, -5,
		0, 0, 5, 5, 5, 5, 0, -5,
		-10, 5, 5, 5, 5, 5, 0, -10,
		-10, 0, 5, 0, 0, 0, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	},
	bb.PieceTypeKing: {
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-20, -30, -30, -40, -40, -30, -30, -20,
		-10, -20, -20, -20, -20, -20, -20, -10,
		20, 20, 0, 0, 0, 0, 20, 20,
		20, 30, 10, 0, 0, 10, 30, 20,
	},
}

var endPST = [7][64]int32{
	bb.PieceTypePawn: {
		0, 0, 0, 0, 0, 0, 0, 0,
		70, 60, 60, 60, 60, 60, 60, 70,
		40, 40, 40, 40, 40, 40, 40, 40,
		30, 30, 30, 30, 30, 30, 30, 30,
		20, 20, 20, 20, 20, 20, 20, 20,
		10, 10, 10, 10, 10, 10, 10, 10,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	bb.PieceTypeKnight: earlyPST[bb.PieceTypeKnight],
	bb.PieceTypeBishop: earlyPST[bb.PieceTypeBishop],
	bb.PieceTypeRook: {
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 10, 10, 10, 10, 10, 10, 5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		0, 0, 0, 5, 5, 0, 0, 0,
	},
	bb.PieceTypeQueen: earlyPST[bb.PieceTypeQueen],
	bb.PieceTypeKing: {
		-20, -10, -10, -10, -10, -10, -10, -20,
		-5, 0, 5, 5, 5, 5, 0, -5,
		-10, -5, 20, 30, 30, 20, -5, -10,
		-15, -10, 35, 45, 45, 35, -10, -15,
		-20, -15, 30, 40, 40, 30, -15, -20,
		-25, -20, 20, 25, 25, 20, -20, -25,
		-30, -25, 0, 0, 0, 0, -25, -30,
		-50, -30, -30, -30, -30, -30, -30, -50,
	},
}

// mirrorSquare flips a square vertically (a8 <-> a1).
func mirrorSquare(sq int) int { return sq ^ 56 }

// gamePhase returns the early and end game weights for the side to move.
// More enemy pieces on the board means more weight on the early table.
func gamePhase(b *bb.Board) (early, end int32) {
	early = int32(2 + bb.PopCount(b.Occupancy(b.SideToMove().Other())))
	early = Min(early, phaseTotal)
	return early, phaseTotal - early
}

// Evaluation returns the static score of the position relative to the side to move.
func Evaluation(b *bb.Board) int32 {
	early, end := gamePhase(b)

	var material, positional int32
	for pt := bb.PieceTypePawn; pt <= bb.PieceTypeKing; pt++ {
		white := b.Pieces(bb.PieceFromType(bb.White, pt))
		for white != 0 {
			sq := bb.PopLSB(&white)
			material += PieceValues[pt]
			positional += earlyPST[pt][sq]*early + endPST[pt][sq]*end
		}
		black := b.Pieces(bb.PieceFromType(bb.Black, pt))
		for black != 0 {
			sq := mirrorSquare(bb.PopLSB(&black))
			material -= PieceValues[pt]
			positional -= earlyPST[pt][sq]*early + endPST[pt][sq]*end
		}
	}

	score := material + positional/phaseTotal
	if b.SideToMove() == bb.Black {
		return -score
	}
	return score
}
