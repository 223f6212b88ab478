package bench

import (
	"testing"

	bb "magicchess/bitboard"
)

const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

func mustParse(b *testing.B, fen string) *bb.Board {
	board, err := bb.ParseFEN(fen)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	return board
}

func benchGenerateMoves(b *testing.B, fen string) {
	board := mustParse(b, fen)
	buf := make([]bb.Move, 0, 256)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf = board.GenerateMovesInto(buf[:0])
	}
}

func BenchmarkGenerateMoves_Initial(b *testing.B) {
	benchGenerateMoves(b, bb.FENStartPos)
}

func BenchmarkGenerateMoves_Kiwipete(b *testing.B) {
	benchGenerateMoves(b, kiwipete)
}

func BenchmarkGenerateMoves_Pos6(b *testing.B) {
	benchGenerateMoves(b, "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10")
}

func BenchmarkGenerateCaptures_Kiwipete(b *testing.B) {
	board := mustParse(b, kiwipete)
	buf := make([]bb.Move, 0, 64)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf = board.GenerateCapturesInto(buf[:0])
	}
}

func BenchmarkRookAttacks(b *testing.B) {
	board := mustParse(b, kiwipete)
	occ := board.AllOccupancy()
	var sink uint64
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sink ^= bb.RookAttacks(bb.Square(i&63), occ)
	}
	_ = sink
}

func BenchmarkMakeUnmake_AllMoves_Kiwipete(b *testing.B) {
	board := mustParse(b, kiwipete)
	moves := board.GenerateMoves()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, m := range moves {
			u := board.MakeMove(m)
			board.UnmakeMove(m, u)
		}
	}
}
