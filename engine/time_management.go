package engine

import (
	"time"

	bb "magicchess/bitboard"
)

// TimeControl is the clock state handed over by a front end for one move.
type TimeControl struct {
	Remaining time.Duration
	Increment time.Duration
	MovesToGo int
	// MoveTime, when set, is used as the budget unchanged.
	MoveTime time.Duration
}

const (
	timeOverhead    = 30 * time.Millisecond // reserve for IO jitter
	minMoveTime     = 5 * time.Millisecond
	maxRemainingPct = 70 // never spend more than this share of the clock
	panicThreshold  = time.Second
	panicIncPct     = 90
)

// Budget returns how long to search the current move. Zero means the clock
// gave no information and the searcher's default applies.
func (tc TimeControl) Budget(b *bb.Board) time.Duration {
	if tc.MoveTime > 0 {
		return tc.MoveTime
	}
	rem, inc := tc.Remaining, tc.Increment
	if rem <= 0 {
		return 0
	}

	movesLeft := tc.MovesToGo
	if movesLeft <= 0 {
		movesLeft = estimateMovesRemaining(piecePhase(b))
	}

	var moveTime time.Duration
	if inc > 0 {
		if rem < panicThreshold {
			// Bank a little of the increment.
			moveTime = inc * panicIncPct / 100
		} else {
			moveTime = rem/time.Duration(movesLeft) + inc
		}
	} else {
		moveTime = rem / time.Duration(movesLeft)
	}

	moveTime = Min(moveTime, rem*maxRemainingPct/100)
	moveTime = Min(moveTime, rem-timeOverhead)
	return Max(moveTime, minMoveTime)
}

// piecePhase is 24 with all minor and major pieces on the board and 0 with none.
func piecePhase(b *bb.Board) int {
	phase := 0
	for _, c := range [2]bb.Color{bb.White, bb.Black} {
		phase += bb.PopCount(b.Pieces(bb.PieceFromType(c, bb.PieceTypeKnight)))
		phase += bb.PopCount(b.Pieces(bb.PieceFromType(c, bb.PieceTypeBishop)))
		phase += 2 * bb.PopCount(b.Pieces(bb.PieceFromType(c, bb.PieceTypeRook)))
		phase += 4 * bb.PopCount(b.Pieces(bb.PieceFromType(c, bb.PieceTypeQueen)))
	}
	return Min(phase, 24)
}

func estimateMovesRemaining(phase int) int {
	// Linearly interpolate between 20 (endgame) and 45 (opening/midgame)
	return (phase*25)/24 + 20
}
