package engine

import (
	"strings"
	"testing"
)

// mirrorFEN flips the board vertically and swaps the colours.
func mirrorFEN(fen string) string {
	fields := strings.Fields(fen)
	ranks := strings.Split(fields[0], "/")
	for i, j := 0, len(ranks)-1; i < j; i, j = i+1, j-1 {
		ranks[i], ranks[j] = ranks[j], ranks[i]
	}
	fields[0] = swapCase(strings.Join(ranks, "/"))

	if fields[1] == "w" {
		fields[1] = "b"
	} else {
		fields[1] = "w"
	}
	if fields[2] != "-" {
		fields[2] = sortCastling(swapCase(fields[2]))
	}
	if fields[3] != "-" {
		rank := '9' - rune(fields[3][1]) + '0'
		fields[3] = string([]rune{rune(fields[3][0]), rank})
	}
	return strings.Join(fields, " ")
}

func swapCase(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z':
			return r - 'A' + 'a'
		}
		return r
	}, s)
}

func sortCastling(s string) string {
	var out strings.Builder
	for _, c := range "KQkq" {
		if strings.ContainsRune(s, c) {
			out.WriteRune(c)
		}
	}
	return out.String()
}

func TestEvaluationStartPosition(t *testing.T) {
	b := mustParse(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	if got := Evaluation(b); got != 0 {
		t.Fatalf("start position evaluates to %d, want 0", got)
	}
}

func TestEvaluationMirrorSymmetry(t *testing.T) {
	fens := []string{
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	}
	for _, fen := range fens {
		mirrored := mirrorFEN(fen)
		a := Evaluation(mustParse(t, fen))
		b := Evaluation(mustParse(t, mirrored))
		if a != b {
			t.Fatalf("eval(%q) = %d but eval(%q) = %d", fen, a, mirrored, b)
		}
	}
}

func TestEvaluationIsRelativeToSideToMove(t *testing.T) {
	// White is a queen up.
	white := Evaluation(mustParse(t, "rnb1kbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"))
	black := Evaluation(mustParse(t, "rnb1kbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1"))
	if white < 1000 {
		t.Fatalf("white to move, a queen up: got %d", white)
	}
	if black > -1000 {
		t.Fatalf("black to move, a queen down: got %d", black)
	}
}

func TestGamePhaseWeights(t *testing.T) {
	start := mustParse(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	if early, end := gamePhase(start); early != phaseTotal || end != 0 {
		t.Fatalf("start position phase = (%d, %d), want (%d, 0)", early, end, phaseTotal)
	}

	bare := mustParse(t, "4k3/8/8/8/8/8/8/4K2R w - - 0 1")
	if early, end := gamePhase(bare); early != 3 || end != 13 {
		t.Fatalf("bare king phase = (%d, %d), want (3, 13)", early, end)
	}
}
