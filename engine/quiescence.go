package engine

import (
	bb "magicchess/bitboard"
)

// quiescence resolves captures until the position is quiet. The static
// evaluation is a lower bound since the side to move may decline to capture.
func (s *Searcher) quiescence(b *bb.Board, ply int, alpha, beta int32) int32 {
	s.pv.length[ply] = ply
	if s.shouldStop() {
		return 0
	}
	s.nodes++

	standPat := Evaluation(b)
	if ply >= MaxPly-1 {
		return standPat
	}
	if standPat >= beta {
		return beta
	}
	alpha = Max(alpha, standPat)

	moves := b.GenerateCapturesInto(s.moveBufs[ply][:0])
	s.moveBufs[ply] = moves
	orderMoves(b, moves, bb.NullMove, &s.lists[ply])

	for _, m := range moves {
		u := b.MakeMove(m)
		score := -s.quiescence(b, ply+1, -beta, -alpha)
		b.UnmakeMove(m, u)
		if s.stop.Load() {
			return 0
		}

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
			s.pv.update(ply, m)
		}
	}
	return alpha
}
