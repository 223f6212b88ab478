package bitboard

import "math/rand"

// Zobrist keys. Piece keys are indexed by piece code, castling keys by the
// individual right bit, en passant keys by file.
var zobristPiece [15][64]uint64
var zobristCastleRight [4]uint64
var zobristEnPassant [8]uint64
var zobristSide uint64

// zobristCastle[rights] is the xor of the keys of every right in the set.
var zobristCastle [16]uint64

func init() {
	initZobrist()
}

func initZobrist() {
	// Fixed seed: hashes must be identical across runs for reproducible tests.
	rnd := rand.New(rand.NewSource(353))

	for _, p := range []Piece{
		WhitePawn, WhiteKnight, WhiteBishop, WhiteRook, WhiteQueen, WhiteKing,
		BlackPawn, BlackKnight, BlackBishop, BlackRook, BlackQueen, BlackKing,
	} {
		for sq := 0; sq < 64; sq++ {
			zobristPiece[p][sq] = rnd.Uint64()
		}
	}
	zobristSide = rnd.Uint64()
	for i := range zobristCastleRight {
		zobristCastleRight[i] = rnd.Uint64()
	}
	for f := range zobristEnPassant {
		zobristEnPassant[f] = rnd.Uint64()
	}

	for cr := range zobristCastle {
		var key uint64
		for i := 0; i < 4; i++ {
			if cr&(1<<i) != 0 {
				key ^= zobristCastleRight[i]
			}
		}
		zobristCastle[cr] = key
	}
}

// ComputeHash calculates the Zobrist hash of the current position from scratch.
// The board maintains its hash incrementally; this is used for validation.
func (b *Board) ComputeHash() uint64 {
	var key uint64
	for sq := 0; sq < 64; sq++ {
		if p := b.squares[sq]; p != NoPiece {
			key ^= zobristPiece[p][sq]
		}
	}
	if b.sideToMove == Black {
		key ^= zobristSide
	}
	key ^= zobristCastle[b.castlingRights]
	if b.enPassantTarget != NoSquare {
		key ^= zobristEnPassant[b.enPassantTarget.File()]
	}
	return key
}
