package bitboard

// Perft counts the leaf nodes of the legal move tree to the given depth.
func Perft(b *Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	bufs := make([][]Move, depth+1)
	for i := range bufs {
		bufs[i] = make([]Move, 0, 256)
	}
	return perftRec(b, depth, bufs)
}

func perftRec(b *Board, depth int, bufs [][]Move) uint64 {
	moves := b.GenerateMovesInto(bufs[depth][:0])
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		u := b.MakeMove(m)
		nodes += perftRec(b, depth-1, bufs)
		b.UnmakeMove(m, u)
	}
	return nodes
}

// PerftDivide returns the perft count below each root move.
func PerftDivide(b *Board, depth int) map[Move]uint64 {
	out := make(map[Move]uint64)
	if depth <= 0 {
		return out
	}
	for _, m := range b.GenerateMoves() {
		u := b.MakeMove(m)
		out[m] = Perft(b, depth-1)
		b.UnmakeMove(m, u)
	}
	return out
}
