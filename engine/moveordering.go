package engine

import (
	"math"
	"sort"

	bb "magicchess/bitboard"
)

type move struct {
	move  bb.Move
	score int32
}

type moveList struct {
	moves []move
}

/*
	Move ordering, higher scores are searched first.
	- The transposition table move always goes first.
	- Captures score victim value minus attacker value. Taking a cheaper piece
	  with a dearer one onto a square the opponent defends costs recaptureOffset;
	  every other capture earns it.
	- Promotions add the value of the promoted piece.
	- Quiet moves keep their generation order.
*/
var ttMoveScore int32 = math.MaxInt32
var recaptureOffset int32 = 400

// scoreMove returns the ordering score of a single move.
func scoreMove(b *bb.Board, m bb.Move, ttMove bb.Move) int32 {
	if m == ttMove {
		return ttMoveScore
	}

	var score int32
	if victim := b.CapturedPiece(m); victim != bb.NoPiece {
		attacker := b.PieceAt(m.From())
		delta := PieceValues[victim.Type()] - PieceValues[attacker.Type()]
		score += delta
		if delta < 0 && b.SquareAttacked(m.To(), b.SideToMove().Other()) {
			score -= recaptureOffset
		} else {
			score += recaptureOffset
		}
	}

	if promo := m.Promotion(); promo != bb.PieceTypeNone {
		score += PieceValues[promo]
	}
	return score
}

// scoreMovesList scores moves into list, reusing its backing storage.
func scoreMovesList(b *bb.Board, moves []bb.Move, ttMove bb.Move, list *moveList) {
	list.moves = list.moves[:0]
	for _, m := range moves {
		list.moves = append(list.moves, move{move: m, score: scoreMove(b, m, ttMove)})
	}
}

// sortMoves orders the list best first. Equal scores keep generation order.
func (list *moveList) sortMoves() {
	sort.SliceStable(list.moves, func(i, j int) bool {
		return list.moves[i].score > list.moves[j].score
	})
}

// orderMoves scores and sorts moves in place.
func orderMoves(b *bb.Board, moves []bb.Move, ttMove bb.Move, list *moveList) {
	scoreMovesList(b, moves, ttMove, list)
	list.sortMoves()
	for i := range list.moves {
		moves[i] = list.moves[i].move
	}
}
