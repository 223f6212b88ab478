package bitboard

// checkState is the check and pin information for the side to move.
type checkState struct {
	king     Square
	checkers uint64
	pinned   uint64
	// blockMask holds the squares that resolve a single check (the checker
	// and, for sliders, the squares between it and the king). It is all ones
	// when not in check.
	blockMask uint64
	// danger is every square the opponent attacks with our king removed from
	// the occupancy, so the king cannot step back along a checking ray.
	danger uint64
}

func (b *Board) sliders(c Color) (diagonal, orthogonal uint64) {
	q := b.pieces[PieceFromType(c, PieceTypeQueen)]
	return b.pieces[PieceFromType(c, PieceTypeBishop)] | q, b.pieces[PieceFromType(c, PieceTypeRook)] | q
}

// attackersTo returns the pieces of color by that attack sq given occ.
func (b *Board) attackersTo(sq Square, by Color, occ uint64) uint64 {
	diag, orth := b.sliders(by)
	return pawnAttacks[by.Other()][sq]&b.pieces[PieceFromType(by, PieceTypePawn)] |
		knightAttacks[sq]&b.pieces[PieceFromType(by, PieceTypeKnight)] |
		kingAttacks[sq]&b.pieces[PieceFromType(by, PieceTypeKing)] |
		BishopAttacks(sq, occ)&diag |
		RookAttacks(sq, occ)&orth
}

// attackedSquares returns the union of all squares attacked by color by.
func (b *Board) attackedSquares(by Color, occ uint64) uint64 {
	var attacked uint64
	pawns := b.pieces[PieceFromType(by, PieceTypePawn)]
	for pawns != 0 {
		attacked |= pawnAttacks[by][PopLSB(&pawns)]
	}
	knights := b.pieces[PieceFromType(by, PieceTypeKnight)]
	for knights != 0 {
		attacked |= knightAttacks[PopLSB(&knights)]
	}
	diag, orth := b.sliders(by)
	for diag != 0 {
		attacked |= BishopAttacks(Square(PopLSB(&diag)), occ)
	}
	for orth != 0 {
		attacked |= RookAttacks(Square(PopLSB(&orth)), occ)
	}
	attacked |= kingAttacks[b.KingSquare(by)]
	return attacked
}

// SquareAttacked reports whether sq is attacked by any piece of color by.
func (b *Board) SquareAttacked(sq Square, by Color) bool {
	return b.attackersTo(sq, by, b.all) != 0
}

// Checkers returns the pieces giving check to the side to move.
func (b *Board) Checkers() uint64 {
	us := b.sideToMove
	return b.attackersTo(b.KingSquare(us), us.Other(), b.all)
}

// InCheck reports whether the side to move is in check.
func (b *Board) InCheck() bool { return b.Checkers() != 0 }

// IsDoubleCheck reports whether the side to move is attacked by two pieces at once.
func (b *Board) IsDoubleCheck() bool { return moreThanOne(b.Checkers()) }

// Checker returns the square of the single checking piece, or NoSquare when
// not in check or in double check.
func (b *Board) Checker() Square {
	c := b.Checkers()
	if c == 0 || moreThanOne(c) {
		return NoSquare
	}
	return Square(LSB(c))
}

// Pinned returns the side to move's pieces that are pinned to their king.
func (b *Board) Pinned() uint64 {
	return b.pinnedPieces(b.sideToMove, b.KingSquare(b.sideToMove))
}

// pinnedPieces walks the lines from the king to every enemy slider that could
// attack along them; a lone friendly piece in between is pinned.
func (b *Board) pinnedPieces(us Color, king Square) uint64 {
	them := us.Other()
	diag, orth := b.sliders(them)
	snipers := BishopAttacks(king, 0)&diag | RookAttacks(king, 0)&orth
	var pinned uint64
	for snipers != 0 {
		s := Square(PopLSB(&snipers))
		blockers := between[king][s] & b.all
		if blockers != 0 && !moreThanOne(blockers) && blockers&b.occupancy[us] != 0 {
			pinned |= blockers
		}
	}
	return pinned
}

func (b *Board) computeCheckState() checkState {
	us, them := b.sideToMove, b.sideToMove.Other()
	king := b.KingSquare(us)
	st := checkState{
		king:      king,
		checkers:  b.attackersTo(king, them, b.all),
		pinned:    b.pinnedPieces(us, king),
		blockMask: ^uint64(0),
		danger:    b.attackedSquares(them, b.all^SquareBB(king)),
	}
	if st.checkers != 0 && !moreThanOne(st.checkers) {
		checker := Square(LSB(st.checkers))
		st.blockMask = between[king][checker] | st.checkers
	}
	return st
}

const (
	genAll = iota
	genCaptures
)

func appendPromotions(dst []Move, from, to Square) []Move {
	return append(dst,
		NewMove(from, to, PieceTypeQueen),
		NewMove(from, to, PieceTypeKnight),
		NewMove(from, to, PieceTypeRook),
		NewMove(from, to, PieceTypeBishop))
}

func appendTargets(dst []Move, from Square, targets uint64) []Move {
	for targets != 0 {
		dst = append(dst, NewMove(from, Square(PopLSB(&targets)), PieceTypeNone))
	}
	return dst
}

// generate appends every strictly legal move of the requested kind to dst.
func (b *Board) generate(dst []Move, kind int) []Move {
	us, them := b.sideToMove, b.sideToMove.Other()
	own, enemy := b.occupancy[us], b.occupancy[them]
	st := b.computeCheckState()

	// King: never onto an attacked square.
	kingTargets := kingAttacks[st.king] &^ own &^ st.danger
	if kind == genCaptures {
		kingTargets &= enemy
	}
	dst = appendTargets(dst, st.king, kingTargets)

	// Only the king may move out of a double check.
	if moreThanOne(st.checkers) {
		return dst
	}

	target := ^own & st.blockMask
	if kind == genCaptures {
		target &= enemy
	}

	if kind == genAll && st.checkers == 0 {
		for _, ci := range castles[us] {
			if b.castlingRights&ci.right != 0 && ci.empty&b.all == 0 && ci.safe&st.danger == 0 {
				dst = append(dst, NewMove(ci.kingFrom, ci.kingTo, PieceTypeNone))
			}
		}
	}

	// A pinned knight can never move.
	knights := b.pieces[PieceFromType(us, PieceTypeKnight)] &^ st.pinned
	for knights != 0 {
		from := Square(PopLSB(&knights))
		dst = appendTargets(dst, from, knightAttacks[from]&target)
	}

	diag, orth := b.sliders(us)
	for diag != 0 {
		from := Square(PopLSB(&diag))
		moves := BishopAttacks(from, b.all) & target
		if st.pinned&SquareBB(from) != 0 {
			moves &= alignMasks[st.king][from]
		}
		dst = appendTargets(dst, from, moves)
	}
	for orth != 0 {
		from := Square(PopLSB(&orth))
		moves := RookAttacks(from, b.all) & target
		if st.pinned&SquareBB(from) != 0 {
			moves &= alignMasks[st.king][from]
		}
		dst = appendTargets(dst, from, moves)
	}

	return b.generatePawnMoves(dst, kind, &st, target)
}

func (b *Board) generatePawnMoves(dst []Move, kind int, st *checkState, target uint64) []Move {
	us, them := b.sideToMove, b.sideToMove.Other()
	enemy := b.occupancy[them]
	promoRank := Rank8BB
	if us == Black {
		promoRank = Rank1BB
	}

	pawns := b.pieces[PieceFromType(us, PieceTypePawn)]
	for pawns != 0 {
		from := Square(PopLSB(&pawns))
		allowed := ^uint64(0)
		if st.pinned&SquareBB(from) != 0 {
			allowed = alignMasks[st.king][from]
		}

		var moves uint64
		if kind == genAll {
			if single := pawnPushes[us][from] &^ b.all; single != 0 {
				moves |= single
				moves |= pawnDoublePushes[us][from] &^ b.all
			}
		}
		moves |= pawnAttacks[us][from] & enemy
		moves &= target & allowed

		for moves != 0 {
			to := Square(PopLSB(&moves))
			if SquareBB(to)&promoRank != 0 {
				dst = appendPromotions(dst, from, to)
			} else {
				dst = append(dst, NewMove(from, to, PieceTypeNone))
			}
		}

		if b.enPassantTarget != NoSquare &&
			pawnEnPassantAttacks[us][from]&SquareBB(b.enPassantTarget)&allowed != 0 &&
			(SquareBB(b.enPassantTarget)|SquareBB(b.enPassantPawn))&st.blockMask != 0 &&
			b.enPassantSafe(from, st.king) {
			dst = append(dst, NewMove(from, b.enPassantTarget, PieceTypeNone))
		}
	}
	return dst
}

// enPassantSafe removes both pawns from the occupancy and checks that no
// slider then sees the king. This catches the case where both pawns stood
// between the king and a rook or queen on the same rank.
func (b *Board) enPassantSafe(from, king Square) bool {
	them := b.sideToMove.Other()
	occ := b.all&^SquareBB(from)&^SquareBB(b.enPassantPawn) | SquareBB(b.enPassantTarget)
	diag, orth := b.sliders(them)
	return RookAttacks(king, occ)&orth == 0 && BishopAttacks(king, occ)&diag == 0
}

// GenerateMoves returns all legal moves in a freshly allocated slice.
func (b *Board) GenerateMoves() []Move { return b.GenerateMovesInto(make([]Move, 0, 128)) }

// GenerateMovesInto appends all legal moves to dst and returns it.
func (b *Board) GenerateMovesInto(dst []Move) []Move { return b.generate(dst, genAll) }

// GenerateCaptures returns all legal captures in a freshly allocated slice.
func (b *Board) GenerateCaptures() []Move { return b.GenerateCapturesInto(make([]Move, 0, 64)) }

// GenerateCapturesInto appends legal captures (including en passant and
// capturing promotions) to dst.
func (b *Board) GenerateCapturesInto(dst []Move) []Move { return b.generate(dst, genCaptures) }

// GenerateNoisyInto appends legal captures plus the quiet moves that give
// check to dst.
func (b *Board) GenerateNoisyInto(dst []Move) []Move {
	var buf [256]Move
	for _, m := range b.GenerateMovesInto(buf[:0]) {
		if b.IsCapture(m) || b.GivesCheck(m) {
			dst = append(dst, m)
		}
	}
	return dst
}

// GivesCheck reports whether making m leaves the opponent in check.
func (b *Board) GivesCheck(m Move) bool {
	u := b.MakeMove(m)
	check := b.InCheck()
	b.UnmakeMove(m, u)
	return check
}

// HasLegalMoves reports whether the side to move has any legal moves.
func (b *Board) HasLegalMoves() bool {
	var buf [256]Move
	return len(b.GenerateMovesInto(buf[:0])) > 0
}

// InCheckmate reports whether the side to move is checkmated.
func (b *Board) InCheckmate() bool { return b.InCheck() && !b.HasLegalMoves() }

// InStalemate reports whether the side to move is stalemated.
func (b *Board) InStalemate() bool { return !b.InCheck() && !b.HasLegalMoves() }
