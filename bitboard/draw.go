package bitboard

// fiftyMoveLimit is the halfmove clock value at which the game is drawn.
const fiftyMoveLimit = 100

// IsFiftyMoveDraw reports a 50-move rule draw (the clock counts half-moves).
func (b *Board) IsFiftyMoveDraw() bool { return b.halfmoveClock >= fiftyMoveLimit }

// RepetitionCount returns how many times the current position occurs in the
// hash history since the last irreversible move, counting the current one.
// Only positions with the same side to move are compared.
func (b *Board) RepetitionCount() int {
	count := 1
	for i := b.ply - 2; i >= b.lastIrreversible; i -= 2 {
		if b.history[i] == b.hash {
			count++
		}
	}
	return count
}

// IsRepetition reports whether the current position already occurred since
// the last irreversible move. Inside a search tree one repeat is enough to
// score the line as a draw.
func (b *Board) IsRepetition() bool {
	for i := b.ply - 2; i >= b.lastIrreversible; i -= 2 {
		if b.history[i] == b.hash {
			return true
		}
	}
	return false
}

// IsThreefoldRepetition reports a draw by threefold repetition.
func (b *Board) IsThreefoldRepetition() bool { return b.RepetitionCount() >= 3 }
