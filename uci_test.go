package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	bb "magicchess/bitboard"
)

func runUCI(t *testing.T, script ...string) string {
	t.Helper()
	var out bytes.Buffer
	uciLoop(strings.NewReader(strings.Join(script, "\n")+"\n"), &out, zerolog.Nop())
	return out.String()
}

func TestUCIHandshake(t *testing.T) {
	out := runUCI(t, "uci", "isready", "quit")
	for _, want := range []string{"id name MagicChess", "option name Hash", "uciok", "readyok"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestUCIGoReportsBestMove(t *testing.T) {
	out := runUCI(t,
		"position fen k7/8/8/8/8/8/1q6/K7 w - - 0 1",
		"go movetime 100",
		"isready",
	)
	if !strings.Contains(out, "bestmove a1b2") {
		t.Fatalf("expected bestmove a1b2:\n%s", out)
	}
}

func TestUCIMatedPositionAnswersNullMove(t *testing.T) {
	out := runUCI(t, "position fen 7k/6Q1/6K1/8/8/8/8/8 b - - 0 1", "go depth 3")
	if !strings.Contains(out, "bestmove 0000") {
		t.Fatalf("expected null bestmove:\n%s", out)
	}
}

func TestUCIPositionWithMoves(t *testing.T) {
	out := runUCI(t, "position startpos moves e2e4 e7e5 g1f3", "d")
	want := "Fen: rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2"
	if !strings.Contains(out, want) {
		t.Fatalf("expected %q:\n%s", want, out)
	}
}

func TestUCIRejectsIllegalMove(t *testing.T) {
	out := runUCI(t, "position startpos moves e2e5", "d")
	if !strings.Contains(out, "info string Move e2e5 not applied") {
		t.Fatalf("illegal move not reported:\n%s", out)
	}
	if !strings.Contains(out, "Fen: "+bb.FENStartPos) {
		t.Fatalf("board should stay at the start position:\n%s", out)
	}
}

func TestUCIIllegalMoveKeepsPreviousPosition(t *testing.T) {
	out := runUCI(t, "position startpos moves d2d4", "position startpos moves e2e4 e2e5", "d")
	if !strings.Contains(out, "info string Move e2e5 not applied") {
		t.Fatalf("illegal move not reported:\n%s", out)
	}

	want := bb.NewBoard()
	if _, err := want.ApplyUCI("d2d4"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Fen: "+want.FEN()) {
		t.Fatalf("expected the d2d4 position to survive, want %q:\n%s", want.FEN(), out)
	}
}

func TestUCISetOption(t *testing.T) {
	out := runUCI(t, "setoption name Hash value 8", "setoption name Hash value x", "setoption name Threads value 2")
	if strings.Contains(out, "Invalid Hash value 8") {
		t.Fatalf("valid hash size rejected:\n%s", out)
	}
	if !strings.Contains(out, "info string Invalid Hash value x") {
		t.Fatalf("invalid hash size accepted:\n%s", out)
	}
	if !strings.Contains(out, "info string Unknown option Threads") {
		t.Fatalf("unknown option not reported:\n%s", out)
	}
}

func TestUCIUnknownCommand(t *testing.T) {
	out := runUCI(t, "frobnicate")
	if !strings.Contains(out, "info string Unknown command: frobnicate") {
		t.Fatalf("unknown command not reported:\n%s", out)
	}
}
