package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	bb "magicchess/bitboard"
	"magicchess/engine"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	if os.Getenv("MAGICCHESS_DEBUG") != "" {
		log = log.Level(zerolog.DebugLevel)
	}
	uciLoop(os.Stdin, os.Stdout, log)
}

// uciState is the front end's view of the game. Output is shared with the
// search goroutine, so every write goes through println.
type uciState struct {
	out      io.Writer
	outMu    sync.Mutex
	board    *bb.Board
	searcher *engine.Searcher
	searchWG sync.WaitGroup
	cancel   context.CancelFunc
}

func (u *uciState) println(a ...any) {
	u.outMu.Lock()
	defer u.outMu.Unlock()
	fmt.Fprintln(u.out, a...)
}

func uciLoop(in io.Reader, out io.Writer, log zerolog.Logger) {
	u := &uciState{out: out, board: bb.NewBoard()}

	opts := engine.DefaultOptions()
	opts.Logger = log
	opts.OnInfo = u.printInfo
	u.searcher = engine.NewSearcher(opts)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			u.println("id name MagicChess")
			u.println("id author MagicChess developers")
			u.println("option name Hash type spin default", engine.DefaultHashMB, "min 1 max 4096")
			u.println("uciok")
		case "isready":
			u.println("readyok")
		case "ucinewgame":
			u.stopSearch()
			u.board = bb.NewBoard()
			u.searcher.Clear()
		case "quit":
			u.stopSearch()
			return
		case "stop":
			u.stopSearch()
		case "go":
			u.stopSearch()
			u.goCommand(tokens[1:])
		case "position":
			u.stopSearch()
			u.positionCommand(tokens[1:])
		case "setoption":
			u.stopSearch()
			u.setOptionCommand(tokens[1:])
		case "d":
			u.println(u.board.String())
			u.println("Fen:", u.board.FEN())
		default:
			u.println("info string Unknown command:", line)
		}
	}
	u.stopSearch()
}

func (u *uciState) stopSearch() {
	if u.cancel != nil {
		u.cancel()
		u.cancel = nil
	}
	u.searchWG.Wait()
}

func (u *uciState) positionCommand(args []string) {
	if len(args) == 0 {
		u.println("info string Malformed position command")
		return
	}

	var board *bb.Board
	rest := args[1:]
	switch strings.ToLower(args[0]) {
	case "startpos":
		board = bb.NewBoard()
	case "fen":
		end := len(rest)
		for i, tok := range rest {
			if strings.ToLower(tok) == "moves" {
				end = i
				break
			}
		}
		var err error
		board, err = bb.ParseFEN(strings.Join(rest[:end], " "))
		if err != nil {
			u.println("info string Invalid fen position:", err)
			return
		}
		rest = rest[end:]
	default:
		u.println("info string Invalid position subcommand")
		return
	}

	if len(rest) > 0 && strings.ToLower(rest[0]) == "moves" {
		for _, moveStr := range rest[1:] {
			if _, err := board.ApplyUCI(strings.ToLower(moveStr)); err != nil {
				u.println("info string Move", moveStr, "not applied:", err)
				return
			}
		}
	}
	u.board = board
}

func (u *uciState) goCommand(args []string) {
	var tc engine.TimeControl
	var wTime, bTime, wInc, bInc int
	depth := 0
	infinite := false

	for i := 0; i < len(args); i++ {
		opt := strings.ToLower(args[i])
		if opt == "infinite" {
			infinite = true
			continue
		}
		if i+1 >= len(args) {
			u.println("info string Malformed go command option", opt)
			break
		}
		v, err := strconv.Atoi(args[i+1])
		if err != nil {
			u.println("info string Malformed go command option; could not convert", opt)
			i++
			continue
		}
		switch opt {
		case "wtime":
			wTime = v
		case "btime":
			bTime = v
		case "winc":
			wInc = v
		case "binc":
			bInc = v
		case "movestogo":
			tc.MovesToGo = v
		case "movetime":
			tc.MoveTime = time.Duration(v) * time.Millisecond
		case "depth":
			depth = v
		default:
			u.println("info string Unknown go subcommand", opt)
		}
		i++
	}

	if u.board.SideToMove() == bb.White {
		tc.Remaining, tc.Increment = time.Duration(wTime)*time.Millisecond, time.Duration(wInc)*time.Millisecond
	} else {
		tc.Remaining, tc.Increment = time.Duration(bTime)*time.Millisecond, time.Duration(bInc)*time.Millisecond
	}
	budget := tc.Budget(u.board)
	if infinite {
		budget = 0
	}
	u.searcher.SetMaxDepth(depth)

	ctx, cancel := context.WithCancel(context.Background())
	u.cancel = cancel
	board := u.board.Clone()
	u.searchWG.Add(1)
	go func() {
		defer u.searchWG.Done()
		res, err := u.searcher.FindBestMove(ctx, board, budget)
		if err != nil {
			u.println("info string", err)
			u.println("bestmove 0000")
			return
		}
		u.println("bestmove", res.Move)
	}()
}

func (u *uciState) setOptionCommand(args []string) {
	// setoption name <id> value <x>
	if len(args) < 4 || strings.ToLower(args[0]) != "name" || strings.ToLower(args[2]) != "value" {
		u.println("info string Malformed setoption command")
		return
	}
	switch strings.ToLower(args[1]) {
	case "hash":
		mb, err := strconv.Atoi(args[3])
		if err != nil || mb <= 0 {
			u.println("info string Invalid Hash value", args[3])
			return
		}
		u.searcher.ResizeHash(mb)
	default:
		u.println("info string Unknown option", args[1])
	}
}

func (u *uciState) printInfo(info engine.Info) {
	score := "cp " + strconv.Itoa(int(info.Score))
	if info.Mate != 0 {
		score = "mate " + strconv.Itoa(info.Mate)
	}
	u.println(fmt.Sprintf("info depth %d score %s nodes %d nps %d time %d hashfull %d pv %s",
		info.Depth, score, info.Nodes, info.NPS, info.Elapsed.Milliseconds(), info.Hashfull, strings.Join(info.PV, " ")))
}
