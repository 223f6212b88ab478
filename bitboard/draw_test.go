package bitboard_test

import (
	"strings"
	"testing"

	"magicchess/bitboard"
)

func playLine(t *testing.T, b *bitboard.Board, line string) {
	t.Helper()
	for i, s := range strings.Fields(line) {
		if _, err := b.ApplyUCI(s); err != nil {
			t.Fatalf("move %s at ply %d: %v", s, i, err)
		}
	}
}

func TestRepetitionCount(t *testing.T) {
	b := bitboard.NewBoard()
	if b.RepetitionCount() != 1 || b.IsRepetition() {
		t.Fatalf("fresh board reports repetition")
	}
	playLine(t, b, "g1f3 g8f6 f3g1 f6g8")
	if got := b.RepetitionCount(); got != 2 {
		t.Fatalf("after one shuffle: got %d want 2", got)
	}
	if !b.IsRepetition() || b.IsThreefoldRepetition() {
		t.Fatalf("after one shuffle: want twofold only")
	}
	playLine(t, b, "b1c3 b8c6 c3b1 c6b8")
	if got := b.RepetitionCount(); got != 3 || !b.IsThreefoldRepetition() {
		t.Fatalf("after two shuffles: got %d want 3", got)
	}
}

func TestRepetitionStopsAtIrreversibleMove(t *testing.T) {
	b := bitboard.NewBoard()
	playLine(t, b, "g1f3 g8f6 f3g1 f6g8 e2e3 e7e6 g1f3 g8f6 f3g1 f6g8")
	if got := b.RepetitionCount(); got != 2 {
		t.Fatalf("got %d want 2 (positions before e2e3 must not count)", got)
	}
	if b.LastIrreversiblePly() != 6 {
		t.Fatalf("last irreversible ply: got %d want 6", b.LastIrreversiblePly())
	}
}

func TestRepetitionAfterDoublePush(t *testing.T) {
	// The en-passant file is part of the hash right after a double push, so
	// the position following e7e5 does not recur once the knights shuffle.
	b := bitboard.NewBoard()
	playLine(t, b, "e2e4 e7e5")
	afterPush := b.Hash()
	playLine(t, b, "g1f3 g8f6 f3g1 f6g8")
	if b.Hash() == afterPush {
		t.Fatalf("en-passant target not reflected in the hash")
	}
	if got := b.RepetitionCount(); got != 1 {
		t.Fatalf("got %d want 1", got)
	}
	playLine(t, b, "g1f3 g8f6 f3g1 f6g8")
	if got := b.RepetitionCount(); got != 2 {
		t.Fatalf("after second shuffle: got %d want 2", got)
	}
}

func TestRepetitionDifferentMoveOrders(t *testing.T) {
	b := bitboard.NewBoard()
	playLine(t, b, "g1f3 g8f6 b1c3 b8c6")
	first := b.Hash()
	playLine(t, b, "c3b1 c6b8 f3g1 f6g8 b1c3 b8c6 g1f3 g8f6")
	if b.Hash() != first {
		t.Fatalf("transposed position hashes differ")
	}
	if got := b.RepetitionCount(); got != 2 {
		t.Fatalf("got %d want 2", got)
	}
}

func TestFiftyMoveRule(t *testing.T) {
	b := mustParse(t, "4k3/8/8/8/8/8/8/R3K3 w - - 99 80")
	if b.IsFiftyMoveDraw() {
		t.Fatalf("draw reported at 99 half-moves")
	}
	playLine(t, b, "a1a2")
	if !b.IsFiftyMoveDraw() || b.HalfmoveClock() != 100 {
		t.Fatalf("expected draw at 100 half-moves, clock=%d", b.HalfmoveClock())
	}
}
