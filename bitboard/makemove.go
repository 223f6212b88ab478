package bitboard

import "fmt"

// Undo captures the state a move destroys and that cannot be recomputed
// from the position after the move. It is produced by MakeMove and consumed
// by the matching UnmakeMove.
type Undo struct {
	captured         Piece
	castlingRights   CastlingRights
	enPassantTarget  Square
	enPassantPawn    Square
	halfmoveClock    int
	fullmoveNumber   int
	lastIrreversible int
}

// Captured returns the piece removed by the move, or NoPiece.
func (u Undo) Captured() Piece { return u.captured }

func isCastle(piece Piece, from, to Square) bool {
	return piece.Type() == PieceTypeKing && (to-from == 2 || from-to == 2)
}

func castleFor(c Color, kingTo Square) *castleInfo {
	if castles[c][0].kingTo == kingTo {
		return &castles[c][0]
	}
	return &castles[c][1]
}

// toggleCastleRook moves the castling rook between its home and castled
// squares by xoring the precomputed toggle mask. It is its own inverse.
func (b *Board) toggleCastleRook(c Color, ci *castleInfo) {
	rook := PieceFromType(c, PieceTypeRook)
	b.pieces[rook] ^= ci.rookToggle
	b.occupancy[c] ^= ci.rookToggle
	b.all ^= ci.rookToggle
	b.squares[ci.rookFrom], b.squares[ci.rookTo] = b.squares[ci.rookTo], b.squares[ci.rookFrom]
	b.hash ^= zobristPiece[rook][ci.rookFrom] ^ zobristPiece[rook][ci.rookTo]
}

// MakeMove plays a legal move on the board, updating the hash incrementally,
// and returns the record needed to take it back. The move must come from the
// legal move generator or be otherwise known to be legal.
func (b *Board) MakeMove(m Move) Undo {
	us := b.sideToMove
	from, to := m.From(), m.To()
	piece := b.squares[from]

	u := Undo{
		castlingRights:   b.castlingRights,
		enPassantTarget:  b.enPassantTarget,
		enPassantPawn:    b.enPassantPawn,
		halfmoveClock:    b.halfmoveClock,
		fullmoveNumber:   b.fullmoveNumber,
		lastIrreversible: b.lastIrreversible,
	}

	if b.enPassantTarget != NoSquare {
		b.hash ^= zobristEnPassant[b.enPassantTarget.File()]
		b.enPassantTarget = NoSquare
		b.enPassantPawn = NoSquare
	}

	irreversible := false
	if piece.Type() == PieceTypePawn && to == u.enPassantTarget {
		u.captured = b.removePiece(u.enPassantPawn)
		irreversible = true
	} else if b.squares[to] != NoPiece {
		u.captured = b.removePiece(to)
		irreversible = true
	}

	b.movePiece(from, to)

	switch piece.Type() {
	case PieceTypeKing:
		if isCastle(piece, from, to) {
			b.toggleCastleRook(us, castleFor(us, to))
		}
	case PieceTypePawn:
		irreversible = true
		if promo := m.Promotion(); promo != PieceTypeNone {
			b.removePiece(to)
			b.addPiece(to, PieceFromType(us, promo))
		} else if to-from == 16 || from-to == 16 {
			b.enPassantTarget = (from + to) / 2
			b.enPassantPawn = to
			b.hash ^= zobristEnPassant[b.enPassantTarget.File()]
		}
	}

	if rights := b.castlingRights & castlingKeep[from] & castlingKeep[to]; rights != b.castlingRights {
		b.hash ^= zobristCastle[b.castlingRights] ^ zobristCastle[rights]
		b.castlingRights = rights
	}

	b.halfmoveClock++
	if irreversible {
		b.halfmoveClock = 0
	}
	if us == Black {
		b.fullmoveNumber++
	}
	b.sideToMove = us.Other()
	b.hash ^= zobristSide

	b.ply++
	if b.ply == len(b.history) {
		b.history = append(b.history, b.hash)
	} else {
		b.history[b.ply] = b.hash
	}
	if irreversible {
		b.lastIrreversible = b.ply
	}

	if Debug {
		b.assertValid("MakeMove " + m.String())
	}
	return u
}

// UnmakeMove takes back m, which must be the last move made, using the
// record MakeMove returned for it.
func (b *Board) UnmakeMove(m Move, u Undo) {
	us := b.sideToMove.Other()
	b.sideToMove = us
	from, to := m.From(), m.To()

	if m.Promotion() != PieceTypeNone {
		b.removePiece(to)
		b.addPiece(to, PieceFromType(us, PieceTypePawn))
	}
	piece := b.squares[to]
	b.movePiece(to, from)

	if isCastle(piece, from, to) {
		b.toggleCastleRook(us, castleFor(us, to))
	}

	if u.captured != NoPiece {
		capSq := to
		if piece.Type() == PieceTypePawn && to == u.enPassantTarget {
			capSq = u.enPassantPawn
		}
		b.addPiece(capSq, u.captured)
	}

	b.castlingRights = u.castlingRights
	b.enPassantTarget = u.enPassantTarget
	b.enPassantPawn = u.enPassantPawn
	b.halfmoveClock = u.halfmoveClock
	b.fullmoveNumber = u.fullmoveNumber
	b.lastIrreversible = u.lastIrreversible
	b.ply--
	b.hash = b.history[b.ply]

	if Debug {
		b.assertValid("UnmakeMove " + m.String())
	}
}

// MoveFromUCI resolves long algebraic text against the legal moves of the
// position.
func (b *Board) MoveFromUCI(s string) (Move, error) {
	m, err := ParseMove(s)
	if err != nil {
		return NullMove, err
	}
	var buf [256]Move
	for _, legal := range b.GenerateMovesInto(buf[:0]) {
		if legal == m {
			return m, nil
		}
	}
	return NullMove, fmt.Errorf("%w: %s in %s", ErrIllegalMove, s, b.FEN())
}

// ApplyUCI plays a move given in long algebraic notation ("e2e4", "e7e8q").
// Illegal or malformed moves are rejected and leave the board unchanged.
func (b *Board) ApplyUCI(s string) (Move, error) {
	m, err := b.MoveFromUCI(s)
	if err != nil {
		return NullMove, err
	}
	b.MakeMove(m)
	return m, nil
}
