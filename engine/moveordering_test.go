package engine

import (
	"testing"

	bb "magicchess/bitboard"

	"github.com/google/go-cmp/cmp"
)

func ordered(t *testing.T, fen string, ttMove bb.Move) (*bb.Board, []bb.Move) {
	t.Helper()
	b := mustParse(t, fen)
	moves := b.GenerateMoves()
	var list moveList
	orderMoves(b, moves, ttMove, &list)
	return b, moves
}

func TestOrderingTTMoveFirst(t *testing.T) {
	hint := mustMove(t, "g1f3")
	_, moves := ordered(t, bb.FENStartPos, hint)
	if moves[0] != hint {
		t.Fatalf("first move = %v, want hint %v", moves[0], hint)
	}
}

func TestOrderingWinningCaptureFirst(t *testing.T) {
	_, moves := ordered(t, "4k3/8/8/3q4/4P3/8/8/R3K3 w - - 0 1", bb.NullMove)
	if want := mustMove(t, "e4d5"); moves[0] != want {
		t.Fatalf("first move = %v, want %v", moves[0], want)
	}
}

func TestOrderingDefendedCaptureLast(t *testing.T) {
	_, moves := ordered(t, "4k3/8/2p5/3p4/8/8/8/3QK3 w - - 0 1", bb.NullMove)
	if want := mustMove(t, "d1d5"); moves[len(moves)-1] != want {
		t.Fatalf("last move = %v, want %v", moves[len(moves)-1], want)
	}
}

func TestOrderingPromotions(t *testing.T) {
	_, moves := ordered(t, "7k/P7/8/8/8/8/8/K7 w - - 0 1", bb.NullMove)
	got := moveStrings(moves[:4])
	want := []string{"a7a8q", "a7a8r", "a7a8b", "a7a8n"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("promotion order mismatch (-want +got):\n%s", diff)
	}
}

func TestOrderingKeepsQuietMovesStable(t *testing.T) {
	b := mustParse(t, bb.FENStartPos)
	generated := b.GenerateMoves()
	_, moves := ordered(t, bb.FENStartPos, bb.NullMove)
	if diff := cmp.Diff(moveStrings(generated), moveStrings(moves)); diff != "" {
		t.Fatalf("quiet moves reordered (-generated +ordered):\n%s", diff)
	}
}
