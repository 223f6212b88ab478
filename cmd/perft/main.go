package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"sort"
	"strings"
	"time"

	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"
	"github.com/rs/zerolog"
	"golang.org/x/exp/maps"

	bb "magicchess/bitboard"
)

func main() {
	fen := flag.String("fen", bb.FENStartPos, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	verify := flag.Bool("verify", false, "Cross-check divide counts against dragontoothmg and root moves against notnil/chess")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	memProf := flag.String("memprofile", "", "Write heap profile to file after run")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if *depth <= 0 {
		log.Error().Int("depth", *depth).Msg("-depth must be > 0")
		os.Exit(2)
	}

	board, err := bb.ParseFEN(*fen)
	if err != nil {
		log.Error().Err(err).Msg("parse-fen")
		os.Exit(2)
	}

	if *verify {
		if err := verifyDivide(board, *fen, *depth); err != nil {
			log.Error().Err(err).Msg("verify-failed")
			os.Exit(1)
		}
		log.Info().Int("depth", *depth).Msg("verify-ok")
		return
	}

	if *divide {
		div := bb.PerftDivide(board, *depth)
		moves := maps.Keys(div)
		sort.Slice(moves, func(i, j int) bool { return moves[i].String() < moves[j].String() })
		var sum uint64
		for _, m := range moves {
			fmt.Printf("%s: %d\n", m, div[m])
			sum += div[m]
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			log.Error().Err(err).Msg("create-cpuprofile")
			os.Exit(2)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Error().Err(err).Msg("start-cpuprofile")
			os.Exit(2)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += bb.Perft(board, *depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Single line: Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)

	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			log.Error().Err(err).Msg("create-memprofile")
			os.Exit(2)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Error().Err(err).Msg("write-memprofile")
			os.Exit(2)
		}
		_ = f.Close()
	}
}

func dragonPerft(b *dragontoothmg.Board, depth int) uint64 {
	moves := b.GenerateLegalMoves()
	if depth <= 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		unapply := b.Apply(m)
		nodes += dragonPerft(b, depth-1)
		unapply()
	}
	return nodes
}

// verifyDivide compares the root divide with dragontoothmg and the root move
// list with notnil/chess, reporting the first mismatching move.
func verifyDivide(board *bb.Board, fen string, depth int) error {
	div := bb.PerftDivide(board, depth)

	db := dragontoothmg.ParseFen(fen)
	for _, dm := range db.GenerateLegalMoves() {
		name := strings.ToLower(dm.String())
		m, err := board.MoveFromUCI(name)
		if err != nil {
			return fmt.Errorf("dragontoothmg move %s missing: %w", name, err)
		}
		var want uint64 = 1
		if depth > 1 {
			unapply := db.Apply(dm)
			want = dragonPerft(&db, depth-1)
			unapply()
		}
		if div[m] != want {
			return fmt.Errorf("divide %s: got %d want %d", name, div[m], want)
		}
	}

	opt, err := chess.FEN(fen)
	if err != nil {
		return fmt.Errorf("notnil/chess rejected fen: %w", err)
	}
	g := chess.NewGame(opt)
	if got, want := len(div), len(g.ValidMoves()); got != want {
		return fmt.Errorf("root move count: got %d want %d", got, want)
	}
	for _, cm := range g.ValidMoves() {
		name := chess.UCINotation{}.Encode(g.Position(), cm)
		if _, err := board.MoveFromUCI(name); err != nil {
			return fmt.Errorf("notnil/chess move %s missing: %w", name, err)
		}
	}
	return nil
}
