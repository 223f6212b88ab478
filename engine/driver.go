package engine

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	bb "magicchess/bitboard"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of FindBestMove.
type Result struct {
	Move    bb.Move
	Score   int32
	Depth   int
	Nodes   uint64
	Elapsed time.Duration
	PV      []bb.Move
	// Mate is the signed number of moves to mate, 0 when none was found.
	Mate int
}

// Info is reported after every completed depth.
type Info struct {
	Depth    int
	Score    int32
	Mate     int
	Nodes    uint64
	NPS      uint64
	Elapsed  time.Duration
	Hashfull int
	PV       []string
}

// InfoFunc receives search progress. It runs on the goroutine that called
// FindBestMove, between two depths.
type InfoFunc func(Info)

// Searcher owns the transposition table and the scratch state of a search.
// One search at a time; Stop may be called from any goroutine.
type Searcher struct {
	opts       Options
	tt         *TransTable
	logger     zerolog.Logger
	depthLimit int

	stop     atomic.Bool
	deadline time.Time
	nodes    uint64

	pv       PVTable
	moveBufs [MaxPly][]bb.Move
	lists    [MaxPly]moveList
}

// NewSearcher builds a Searcher. Zero option fields take their defaults.
func NewSearcher(opts Options) *Searcher {
	opts = opts.withDefaults()
	s := &Searcher{
		opts:   opts,
		tt:     NewTransTable(opts.HashMB),
		logger: opts.Logger,
	}
	for i := range s.moveBufs {
		s.moveBufs[i] = make([]bb.Move, 0, 64)
	}
	return s
}

// Stop asks a running search to return as soon as possible. FindBestMove
// resets the flag when it starts, so a Stop issued before that is dropped;
// cancel the context passed to FindBestMove to abort a search that may not
// have started yet.
func (s *Searcher) Stop() { s.stop.Store(true) }

// Clear forgets everything learnt by previous searches.
func (s *Searcher) Clear() { s.tt.Clear() }

// ResizeHash reallocates the transposition table.
func (s *Searcher) ResizeHash(mb int) {
	s.tt.Resize(mb)
	s.logger.Debug().Int("mb", mb).Int("entries", s.tt.Len()).Msg("tt-resize")
}

// SetMaxDepth limits later searches to depth plies. Zero or less restores
// Options.MaxDepth.
func (s *Searcher) SetMaxDepth(depth int) {
	s.depthLimit = depth
}

func (s *Searcher) maxDepth() int {
	if s.depthLimit > 0 {
		return Min(s.depthLimit, s.opts.MaxDepth)
	}
	return s.opts.MaxDepth
}

// Hashfull reports transposition table usage in permille.
func (s *Searcher) Hashfull() int { return s.tt.Hashfull() }

/*
FindBestMove runs iterative deepening on b until the budget runs out, the
context is cancelled, Stop is called, MaxDepth is reached or a mate is found.
A zero budget means Options.DefaultBudget. The depth being searched when time
runs out is thrown away and the last completed depth is returned.

b is used as scratch space during the search and is restored before return.
*/
func (s *Searcher) FindBestMove(ctx context.Context, b *bb.Board, budget time.Duration) (Result, error) {
	if budget <= 0 {
		budget = s.opts.DefaultBudget
	}
	logger := s.logger.With().Str("search_id", uuid.New().String()).Logger()

	start := time.Now()
	s.stop.Store(false)
	s.nodes = 0
	s.deadline = start.Add(budget)

	rootMoves := b.GenerateMoves()
	if len(rootMoves) == 0 {
		return Result{}, fmt.Errorf("%w: %s", ErrNoLegalMoves, b.FEN())
	}
	logger.Debug().
		Str("fen", b.FEN()).
		Dur("budget", budget).
		Int("root_moves", len(rootMoves)).
		Msg("search-start")

	if len(rootMoves) == 1 {
		res := Result{
			Move:    rootMoves[0],
			Score:   Evaluation(b),
			PV:      []bb.Move{rootMoves[0]},
			Elapsed: time.Since(start),
		}
		logger.Debug().Str("move", res.Move.String()).Msg("single-legal-move")
		return res, nil
	}

	res := Result{Move: rootMoves[0]}
	reason := "max-depth"
	for depth, limit := 1, s.maxDepth(); depth <= limit; depth++ {
		if ctx.Err() != nil {
			reason = "cancelled"
			break
		}
		move, score, completed, err := s.searchDepth(ctx, b, depth, rootMoves, res.Move)
		if err != nil {
			return res, err
		}
		if !completed {
			reason = "stopped"
			break
		}

		res = Result{
			Move:  move,
			Score: score,
			Depth: depth,
			Nodes: s.nodes,
			PV:    s.pv.Line(),
			Mate:  MateIn(score),
		}
		res.Elapsed = time.Since(start)
		s.report(logger, res)

		if IsMateScore(score) {
			reason = "mate-found"
			break
		}
		if res.Elapsed >= budget {
			reason = "out-of-time"
			break
		}
	}

	res.Nodes = s.nodes
	res.Elapsed = time.Since(start)
	logger.Debug().
		Str("reason", reason).
		Str("bestmove", res.Move.String()).
		Int("depth", res.Depth).
		Uint64("nodes", res.Nodes).
		Dur("elapsed", res.Elapsed).
		Msg("search-stop")
	return res, nil
}

// searchDepth runs one iteration on a worker goroutine while a second one
// raises the stop flag when the deadline passes or ctx is cancelled. Both are
// joined before returning.
func (s *Searcher) searchDepth(ctx context.Context, b *bb.Board, depth int, moves []bb.Move, prevBest bb.Move) (bb.Move, int32, bool, error) {
	g, gctx := errgroup.WithContext(ctx)
	done := make(chan struct{})

	var move bb.Move
	var score int32
	var completed bool

	g.Go(func() error {
		timer := time.NewTimer(time.Until(s.deadline))
		defer timer.Stop()
		select {
		case <-done:
		case <-timer.C:
			s.stop.Store(true)
		case <-gctx.Done():
			s.stop.Store(true)
		}
		return nil
	})

	g.Go(func() error {
		defer close(done)
		move, score = s.rootSearch(b, depth, moves, prevBest)
		completed = !s.stop.Load()
		return nil
	})

	if err := g.Wait(); err != nil {
		return bb.NullMove, 0, false, err
	}
	return move, score, completed, nil
}

func (s *Searcher) report(logger zerolog.Logger, res Result) {
	ms := uint64(res.Elapsed.Milliseconds())
	nps := res.Nodes * 1000
	if ms > 0 {
		nps /= ms
	}
	info := Info{
		Depth:    res.Depth,
		Score:    res.Score,
		Mate:     res.Mate,
		Nodes:    res.Nodes,
		NPS:      nps,
		Elapsed:  res.Elapsed,
		Hashfull: s.tt.Hashfull(),
		PV:       moveStrings(res.PV),
	}

	logger.Debug().
		Int("depth", info.Depth).
		Int32("score", info.Score).
		Int("mate", info.Mate).
		Uint64("nodes", info.Nodes).
		Uint64("nps", info.NPS).
		Strs("pv", info.PV).
		Msg("depth-complete")

	if s.opts.OnInfo != nil {
		s.opts.OnInfo(info)
	}
}
