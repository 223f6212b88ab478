package engine

import (
	bb "magicchess/bitboard"

	"github.com/samber/lo"
)

// PVTable is a triangular principal variation table: row ply holds the best
// line found from that ply, in moves[ply][ply:length[ply]].
type PVTable struct {
	length [MaxPly + 1]int
	moves  [MaxPly + 1][MaxPly + 1]bb.Move
}

func (pv *PVTable) update(ply int, m bb.Move) {
	pv.moves[ply][ply] = m
	next := Max(pv.length[ply+1], ply+1)
	copy(pv.moves[ply][ply+1:next], pv.moves[ply+1][ply+1:next])
	pv.length[ply] = next
}

// Line returns a copy of the principal variation from the root.
func (pv *PVTable) Line() []bb.Move {
	return append([]bb.Move(nil), pv.moves[0][:pv.length[0]]...)
}

// moveStrings renders moves in long algebraic notation.
func moveStrings(moves []bb.Move) []string {
	return lo.Map(moves, func(m bb.Move, _ int) string { return m.String() })
}
