package engine

import (
	"testing"

	bb "magicchess/bitboard"
)

func mustParse(t testing.TB, fen string) *bb.Board {
	t.Helper()
	b, err := bb.ParseFEN(fen)
	if err != nil {
		t.Fatalf("parse FEN %q: %v", fen, err)
	}
	return b
}

func mustMove(t testing.TB, s string) bb.Move {
	t.Helper()
	m, err := bb.ParseMove(s)
	if err != nil {
		t.Fatalf("parse move %q: %v", s, err)
	}
	return m
}

func playMoves(t testing.TB, b *bb.Board, moves ...string) {
	t.Helper()
	for _, s := range moves {
		if _, err := b.ApplyUCI(s); err != nil {
			t.Fatalf("apply %s: %v", s, err)
		}
	}
}

// testSearcher returns a searcher with a small table.
func testSearcher(maxDepth int) *Searcher {
	opts := DefaultOptions()
	opts.HashMB = 4
	opts.MaxDepth = maxDepth
	return NewSearcher(opts)
}
