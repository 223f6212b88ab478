package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/rs/zerolog"

	bb "magicchess/bitboard"
	"magicchess/engine"
)

func main() {
	// --- Flags ---
	depthFlag := flag.Int("depth", 8, "search depth in plies")
	repeatFlag := flag.Int("repeat", 1, "number of searches to run")
	fenFlag := flag.String("fen", "", "FEN to search (empty = startpos)")
	movetime := flag.Duration("movetime", 0, "time budget per search (0 = engine default)")
	hashMB := flag.Int("hash", engine.DefaultHashMB, "transposition table size in MB")
	verbose := flag.Bool("v", false, "log search progress")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile (heap) to file")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	if *depthFlag <= 0 {
		log.Fatal().Int("depth", *depthFlag).Msg("depth must be positive")
	}

	// --- Optional CPU profiling setup ---
	if *cpuProfile != "" {
		cpuFile, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	fen := bb.FENStartPos
	if *fenFlag != "" {
		fen = *fenFlag
	}

	opts := engine.DefaultOptions()
	opts.MaxDepth = *depthFlag
	opts.HashMB = *hashMB
	opts.Logger = log
	opts.OnInfo = func(info engine.Info) {
		fmt.Printf("  depth %2d score %s nodes %d nps %d time %dms pv %s\n",
			info.Depth, scoreString(info), info.Nodes, info.NPS, info.Elapsed.Milliseconds(), strings.Join(info.PV, " "))
	}

	fmt.Printf("searchbench: fen=%q depth=%d repeat=%d\n", fen, *depthFlag, *repeatFlag)

	var totalNodes uint64
	startAll := time.Now()
	for i := 0; i < *repeatFlag; i++ {
		// Fresh position and table for each run
		board, err := bb.ParseFEN(fen)
		if err != nil {
			log.Fatal().Err(err).Msg("parse-fen")
		}
		searcher := engine.NewSearcher(opts)

		res, err := searcher.FindBestMove(context.Background(), board, *movetime)
		if err != nil {
			log.Fatal().Err(err).Msg("search-failed")
		}
		totalNodes += res.Nodes
		fmt.Printf("iteration %d: bestmove %v depth=%d nodes=%d time=%v\n", i+1, res.Move, res.Depth, res.Nodes, res.Elapsed)
	}
	totalElapsed := time.Since(startAll)
	fmt.Printf("total time: %v  nodes: %d  nps: %.0f\n", totalElapsed, totalNodes, float64(totalNodes)/totalElapsed.Seconds())

	// --- Optional heap profile at the end ---
	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create memory profile")
		}
		defer f.Close()

		runtime.GC() // get up-to-date heap info
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not write memory profile")
		}
	}
}

func scoreString(info engine.Info) string {
	if info.Mate != 0 {
		return fmt.Sprintf("mate %d", info.Mate)
	}
	return fmt.Sprintf("cp %d", info.Score)
}
