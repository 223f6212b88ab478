package bitboard_test

import (
	"sort"
	"testing"

	"magicchess/bitboard"
)

func mustParse(t *testing.T, fen string) *bitboard.Board {
	t.Helper()
	b, err := bitboard.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return b
}

func moveStrings(moves []bitboard.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	sort.Strings(out)
	return out
}

func hasMove(moves []bitboard.Move, s string) bool {
	for _, m := range moves {
		if m.String() == s {
			return true
		}
	}
	return false
}

func TestSingleSliderCheck(t *testing.T) {
	b := mustParse(t, "4r2k/8/8/8/8/8/3B4/4K3 w - - 0 1")
	if !b.InCheck() {
		t.Fatalf("expected check")
	}
	if b.IsDoubleCheck() {
		t.Fatalf("unexpected double check")
	}
	if got := b.Checker(); got != bitboard.E8 {
		t.Fatalf("checker: got %s want e8", got)
	}
	got := moveStrings(b.GenerateMoves())
	want := []string{"d2e3", "e1d1", "e1f1", "e1f2"}
	if len(got) != len(want) {
		t.Fatalf("moves: got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("moves: got %v want %v", got, want)
		}
	}
}

func TestDoubleCheckOnlyKingMoves(t *testing.T) {
	b := mustParse(t, "4r2k/8/8/8/8/3n4/3B4/4K3 w - - 0 1")
	if !b.InCheck() || !b.IsDoubleCheck() {
		t.Fatalf("expected double check")
	}
	if b.Checker() != bitboard.NoSquare {
		t.Fatalf("double check should not report a single checker")
	}
	moves := b.GenerateMoves()
	for _, m := range moves {
		if m.From() != bitboard.E1 {
			t.Fatalf("non-king move %s generated in double check", m)
		}
	}
	if got := moveStrings(moves); len(got) != 2 || got[0] != "e1d1" || got[1] != "e1f1" {
		t.Fatalf("double check moves: got %v want [e1d1 e1f1]", got)
	}
}

func TestPinnedPieces(t *testing.T) {
	b := mustParse(t, "4r2k/8/8/8/8/8/4N3/4K3 w - - 0 1")
	if b.Pinned() != bitboard.SquareBB(bitboard.MakeSquare(4, 1)) {
		t.Fatalf("expected knight on e2 to be pinned, got %x", b.Pinned())
	}
	for _, m := range b.GenerateMoves() {
		if m.From() == bitboard.MakeSquare(4, 1) {
			t.Fatalf("pinned knight moved: %s", m)
		}
	}

	b = mustParse(t, "4r2k/8/8/8/8/8/4R3/4K3 w - - 0 1")
	n := 0
	for _, m := range b.GenerateMoves() {
		if m.From() != bitboard.MakeSquare(4, 1) {
			continue
		}
		n++
		if m.To().File() != 4 {
			t.Fatalf("pinned rook left the e-file: %s", m)
		}
	}
	if n != 6 {
		t.Fatalf("pinned rook moves: got %d want 6", n)
	}

	// Diagonal pin: the bishop may slide toward and capture the pinner only.
	b = mustParse(t, "7k/8/8/8/q7/8/2B5/3K4 w - - 0 1")
	got := []string{}
	for _, m := range b.GenerateMoves() {
		if m.From() == bitboard.MakeSquare(2, 1) {
			got = append(got, m.String())
		}
	}
	sort.Strings(got)
	if len(got) != 2 || got[0] != "c2a4" || got[1] != "c2b3" {
		t.Fatalf("diagonally pinned bishop moves: got %v want [c2a4 c2b3]", got)
	}
}

func TestEnPassantDiscoveredRankCheck(t *testing.T) {
	b := mustParse(t, "8/8/8/KPp4r/8/8/8/4k3 w - c6 0 2")
	moves := b.GenerateMoves()
	if hasMove(moves, "b5c6") {
		t.Fatalf("en passant exposing the king along the rank was generated: %v", moveStrings(moves))
	}
	if !hasMove(moves, "b5b6") {
		t.Fatalf("expected b5b6 in %v", moveStrings(moves))
	}

	// Same structure without the rook: the capture is legal.
	b = mustParse(t, "8/8/8/KPp5/8/8/8/4k3 w - c6 0 2")
	if !hasMove(b.GenerateMoves(), "b5c6") {
		t.Fatalf("expected en passant capture b5c6")
	}
}

func TestEnPassantResolvesPawnCheck(t *testing.T) {
	// The double-pushed pawn gives check; capturing it en passant is legal.
	b := mustParse(t, "8/8/8/2k5/3Pp3/8/8/4K3 b - d3 0 1")
	if !b.InCheck() {
		t.Fatalf("expected check from d4 pawn")
	}
	if !hasMove(b.GenerateMoves(), "e4d3") {
		t.Fatalf("expected e4d3 en passant to resolve check: %v", moveStrings(b.GenerateMoves()))
	}
}

func TestCastlingThroughAttack(t *testing.T) {
	b := mustParse(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	moves := b.GenerateMoves()
	if !hasMove(moves, "e1g1") || !hasMove(moves, "e1c1") {
		t.Fatalf("expected both castles in %v", moveStrings(moves))
	}

	b = mustParse(t, "r3k2r/8/8/8/8/8/5r2/R3K2R w KQkq - 0 1")
	moves = b.GenerateMoves()
	if hasMove(moves, "e1g1") {
		t.Fatalf("castled through attacked f1")
	}
	if !hasMove(moves, "e1c1") {
		t.Fatalf("expected e1c1 in %v", moveStrings(moves))
	}

	// b1 attacked does not stop queen-side castling, b1 occupied does.
	b = mustParse(t, "1r2k3/8/8/8/8/8/8/R3K3 w Q - 0 1")
	if !hasMove(b.GenerateMoves(), "e1c1") {
		t.Fatalf("b1 attack should not prevent e1c1")
	}
	b = mustParse(t, "4k3/8/8/8/8/8/8/RN2K3 w Q - 0 1")
	if hasMove(b.GenerateMoves(), "e1c1") {
		t.Fatalf("castled with b1 occupied")
	}
}

func TestPromotionsExpand(t *testing.T) {
	b := mustParse(t, "1n5k/P7/8/8/8/8/8/7K w - - 0 1")
	want := []string{"a7a8b", "a7a8n", "a7a8q", "a7a8r", "a7b8b", "a7b8n", "a7b8q", "a7b8r"}
	for _, s := range want {
		if !hasMove(b.GenerateMoves(), s) {
			t.Fatalf("missing promotion %s", s)
		}
	}
}

func TestCaptureGeneration(t *testing.T) {
	b := mustParse(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	caps := b.GenerateCaptures()
	if len(caps) != 8 {
		t.Fatalf("kiwipete captures: got %d want 8 (%v)", len(caps), moveStrings(caps))
	}
	for _, m := range caps {
		if !b.IsCapture(m) {
			t.Fatalf("non-capture %s in capture list", m)
		}
	}

	b = mustParse(t, "k7/8/8/3pP3/8/8/8/7K w - d6 0 2")
	if caps := b.GenerateCaptures(); len(caps) != 1 || caps[0].String() != "e5d6" {
		t.Fatalf("expected only en passant capture, got %v", moveStrings(caps))
	}
}

func TestNoisyIncludesChecks(t *testing.T) {
	b := mustParse(t, "7k/8/8/8/8/8/8/R6K w - - 0 1")
	noisy := b.GenerateNoisyInto(nil)
	if !hasMove(noisy, "a1a8") {
		t.Fatalf("expected checking move a1a8 in %v", moveStrings(noisy))
	}
	for _, m := range noisy {
		if !b.GivesCheck(m) && !b.IsCapture(m) {
			t.Fatalf("quiet non-checking move %s in noisy list", m)
		}
	}
}

func TestMateAndStalemate(t *testing.T) {
	b := mustParse(t, "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1")
	if !b.InCheckmate() {
		t.Fatalf("expected back-rank mate")
	}
	b = mustParse(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if !b.InStalemate() {
		t.Fatalf("expected stalemate")
	}
}
