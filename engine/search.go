package engine

import (
	"time"

	bb "magicchess/bitboard"
)

// =============================================================================
// SCORE CONSTANTS
// =============================================================================
const (
	// MaxScore is the mate sentinel. Being mated at ply p scores -MaxScore+p.
	MaxScore  int32 = 1_000_000_000
	DrawScore int32 = 0
	Infinity  int32 = MaxScore + 1

	// MaxPly bounds the distance from the root, quiescence included.
	MaxPly = 128
	// MateThreshold separates mate scores from ordinary evaluations.
	MateThreshold = MaxScore - 1000

	// nodes between two clock reads
	timeCheckMask = 2047
)

// IsMateScore reports whether score announces a forced mate for either side.
func IsMateScore(score int32) bool {
	return Abs(score) > MateThreshold
}

// MateIn converts a score to full moves until mate: positive when the side
// to move mates, negative when it gets mated, zero otherwise.
func MateIn(score int32) int {
	switch {
	case score > MateThreshold:
		return int(MaxScore-score+1) / 2
	case score < -MateThreshold:
		return -int(MaxScore+score+1) / 2
	}
	return 0
}

func (s *Searcher) shouldStop() bool {
	if s.stop.Load() {
		return true
	}
	if s.nodes&timeCheckMask == 0 && !s.deadline.IsZero() && time.Now().After(s.deadline) {
		s.stop.Store(true)
		return true
	}
	return false
}

// reachesSeventh reports whether m, already made on b, left a pawn on the
// seventh rank of its owner.
func reachesSeventh(b *bb.Board, m bb.Move) bool {
	return b.PieceAt(m.To()).Type() == bb.PieceTypePawn &&
		bb.SquareBB(m.To())&(bb.Rank7BB|bb.Rank2BB) != 0
}

// rootSearch searches every root move to depth and returns the best one.
// The previous iteration's best move is searched first.
func (s *Searcher) rootSearch(b *bb.Board, depth int, moves []bb.Move, prevBest bb.Move) (bb.Move, int32) {
	s.pv.length[0] = 0
	orderMoves(b, moves, prevBest, &s.lists[0])

	alpha, beta := -Infinity, Infinity
	bestMove := moves[0]
	bestScore := -Infinity
	inCheck := b.InCheck()

	for _, m := range moves {
		u := b.MakeMove(m)
		s.nodes++
		var score int32
		if b.IsFiftyMoveDraw() || b.IsThreefoldRepetition() {
			score = DrawScore
			s.pv.length[1] = 1
		} else {
			ext := 0
			if s.opts.CheckExtensionLimit > 0 && (inCheck || reachesSeventh(b, m)) {
				ext = 1
			}
			score = -s.alphabeta(b, depth-1+ext, 1, -beta, -alpha, ext)
		}
		b.UnmakeMove(m, u)

		if s.stop.Load() {
			break
		}
		if score > bestScore {
			bestScore = score
			bestMove = m
			s.pv.update(0, m)
		}
		alpha = Max(alpha, score)
	}

	if !s.stop.Load() {
		s.tt.Store(b.Hash(), depth, ExactFlag, bestScore, bestMove, 0)
	}
	return bestMove, bestScore
}

/*
alphabeta is a fail-hard negamax. depth 0 drops into quiescence. Every exit
except a transposition hit and a stop records the node in the table.
*/
func (s *Searcher) alphabeta(b *bb.Board, depth, ply int, alpha, beta int32, numExtensions int) int32 {
	s.pv.length[ply] = ply
	if s.shouldStop() {
		return 0
	}
	if depth <= 0 || ply >= MaxPly-1 {
		return s.quiescence(b, ply, alpha, beta)
	}
	s.nodes++

	hash := b.Hash()
	ttScore, ttMove, hit := s.tt.Probe(hash, depth, alpha, beta, ply)
	if hit {
		return ttScore
	}

	moves := b.GenerateMovesInto(s.moveBufs[ply][:0])
	s.moveBufs[ply] = moves
	inCheck := b.InCheck()

	if len(moves) == 0 {
		score := DrawScore
		if inCheck {
			score = -MaxScore + int32(ply)
		}
		s.tt.Store(hash, depth, ExactFlag, score, bb.NullMove, ply)
		return score
	}

	orderMoves(b, moves, ttMove, &s.lists[ply])

	limit := s.opts.CheckExtensionLimit
	extension := numExtensions < limit && inCheck
	flag := AlphaFlag
	bestMove := bb.NullMove

	for moveNum, m := range moves {
		isCapture := b.IsCapture(m)
		u := b.MakeMove(m)

		var score int32
		if b.IsFiftyMoveDraw() || b.IsRepetition() {
			score = DrawScore
			s.pv.length[ply+1] = ply + 1
		} else {
			ext := 0
			if extension || (numExtensions < limit && reachesSeventh(b, m)) {
				ext = 1
			}

			needsFullSearch := true
			if s.opts.LMRMinMoves > 0 && moveNum >= s.opts.LMRMinMoves && ext == 0 && depth >= s.opts.LMRMinDepth && !isCapture {
				score = -s.alphabeta(b, depth-s.opts.LMRReduction, ply+1, -alpha-1, -alpha, numExtensions)
				needsFullSearch = score > alpha
			}
			if needsFullSearch {
				score = -s.alphabeta(b, depth-1+ext, ply+1, -beta, -alpha, numExtensions+ext)
			}
		}

		b.UnmakeMove(m, u)
		if s.stop.Load() {
			return 0
		}

		if score >= beta {
			s.tt.Store(hash, depth, BetaFlag, beta, m, ply)
			return beta
		}
		if score > alpha {
			alpha = score
			flag = ExactFlag
			bestMove = m
			s.pv.update(ply, m)
		}
	}

	s.tt.Store(hash, depth, flag, alpha, bestMove, ply)
	return alpha
}
