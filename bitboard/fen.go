package bitboard

import (
	"strconv"
	"strings"
)

// FENStartPos is the FEN string for the standard initial chess position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var fenPieces = map[rune]Piece{
	'P': WhitePawn, 'N': WhiteKnight, 'B': WhiteBishop, 'R': WhiteRook, 'Q': WhiteQueen, 'K': WhiteKing,
	'p': BlackPawn, 'n': BlackKnight, 'b': BlackBishop, 'r': BlackRook, 'q': BlackQueen, 'k': BlackKing,
}

// charFromPiece converts a Piece constant to its FEN character representation.
func charFromPiece(p Piece) rune {
	for ch, q := range fenPieces {
		if q == p {
			return ch
		}
	}
	return '?'
}

// ParseFEN parses a FEN record and returns a new Board set up to that position.
// The placement and side to move fields are required; castling, en passant,
// halfmove clock and fullmove number default to "-", "-", 0 and 1.
func ParseFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) < 2 || len(fields) > 6 {
		return nil, fenError("expected 2 to 6 fields, got %d", len(fields))
	}

	b := newEmptyBoard()

	// 1. Piece placement
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fenError("expected 8 ranks, got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				if file > 8 {
					return nil, fenError("rank %d overflows", rank+1)
				}
				continue
			}
			p, ok := fenPieces[ch]
			if !ok {
				return nil, fenError("unrecognized piece character %q", ch)
			}
			if file >= 8 {
				return nil, fenError("rank %d overflows", rank+1)
			}
			if p.Type() == PieceTypePawn && (rank == 0 || rank == 7) {
				return nil, fenError("pawn on back rank at %s", MakeSquare(file, rank))
			}
			b.addPiece(MakeSquare(file, rank), p)
			file++
		}
		if file != 8 {
			return nil, fenError("rank %d does not have 8 files", rank+1)
		}
	}
	if PopCount(b.pieces[WhiteKing]) != 1 || PopCount(b.pieces[BlackKing]) != 1 {
		return nil, fenError("each side must have exactly one king")
	}

	// 2. Side to move
	switch fields[1] {
	case "w":
		b.sideToMove = White
	case "b":
		b.sideToMove = Black
	default:
		return nil, fenError("side to move must be 'w' or 'b', got %q", fields[1])
	}

	// 3. Castling rights
	if len(fields) > 2 && fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				b.castlingRights |= CastlingWhiteK
			case 'Q':
				b.castlingRights |= CastlingWhiteQ
			case 'k':
				b.castlingRights |= CastlingBlackK
			case 'q':
				b.castlingRights |= CastlingBlackQ
			default:
				return nil, fenError("invalid castling character %q", ch)
			}
		}
	}
	// Rights whose king or rook is not at home cannot be used; drop them.
	for c := White; c <= Black; c++ {
		for _, ci := range castles[c] {
			if b.squares[ci.kingFrom] != PieceFromType(c, PieceTypeKing) ||
				b.squares[ci.rookFrom] != PieceFromType(c, PieceTypeRook) {
				b.castlingRights &^= ci.right
			}
		}
	}

	// 4. En passant target square
	if len(fields) > 3 && fields[3] != "-" {
		target, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fenError("invalid en passant square %q", fields[3])
		}
		wantRank, pawnSq := 5, target+8
		if b.sideToMove == Black {
			wantRank, pawnSq = 2, target-8
		}
		if target.Rank() != wantRank {
			return nil, fenError("en passant square %s on wrong rank", target)
		}
		if b.squares[pawnSq] != PieceFromType(b.sideToMove.Other(), PieceTypePawn) {
			return nil, fenError("no pawn to capture en passant on %s", pawnSq)
		}
		b.enPassantTarget = target
		b.enPassantPawn = pawnSq
	}

	// 5. Halfmove clock
	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return nil, fenError("bad halfmove clock %q", fields[4])
		}
		b.halfmoveClock = n
	}

	// 6. Fullmove number
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return nil, fenError("bad fullmove number %q", fields[5])
		}
		b.fullmoveNumber = n
	}

	b.hash = b.ComputeHash()
	b.history[0] = b.hash

	if b.SquareAttacked(b.KingSquare(b.sideToMove.Other()), b.sideToMove) {
		return nil, fenError("side not to move is in check")
	}
	return b, nil
}

// LoadFEN replaces the board with the parsed position. On error the board
// is left unchanged.
func (b *Board) LoadFEN(fen string) error {
	nb, err := ParseFEN(fen)
	if err != nil {
		return err
	}
	*b = *nb
	return nil
}

// FEN produces the FEN string representation of the board's current state.
func (b *Board) FEN() string {
	var sb strings.Builder

	// 1. Piece placement
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.squares[MakeSquare(file, rank)]
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteRune(charFromPiece(p))
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	// 2. Side to move
	if b.sideToMove == White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	// 3. Castling rights
	if b.castlingRights == 0 {
		sb.WriteByte('-')
	} else {
		for _, f := range []struct {
			right CastlingRights
			ch    byte
		}{{CastlingWhiteK, 'K'}, {CastlingWhiteQ, 'Q'}, {CastlingBlackK, 'k'}, {CastlingBlackQ, 'q'}} {
			if b.castlingRights&f.right != 0 {
				sb.WriteByte(f.ch)
			}
		}
	}
	sb.WriteByte(' ')

	// 4. En passant square
	if b.enPassantTarget != NoSquare {
		sb.WriteString(b.enPassantTarget.String())
	} else {
		sb.WriteByte('-')
	}

	// 5./6. Counters
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.halfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.fullmoveNumber))
	return sb.String()
}
