package engine

import (
	"unsafe"

	bb "magicchess/bitboard"
)

const (
	// Flags
	NoFlag uint8 = iota
	AlphaFlag
	BetaFlag
	ExactFlag

	// In MB
	DefaultHashMB = 256
)

// TTEntry is one slot of the table. Only the low 16 bits of the position
// hash are kept; the high bits are implied by the slot index.
type TTEntry struct {
	Key   uint16
	Move  bb.Move
	Depth int16
	Flag  uint8
	Score int32
}

// TransTable is a single-slot, always-replace transposition table. It is not
// safe for concurrent use.
type TransTable struct {
	entries []TTEntry
	shift   uint
}

// NewTransTable allocates a table of at most sizeMB megabytes.
func NewTransTable(sizeMB int) *TransTable {
	tt := &TransTable{}
	tt.Resize(sizeMB)
	return tt
}

// Resize reallocates the table, dropping every entry. The entry count is the
// largest power of two that fits in sizeMB.
func (tt *TransTable) Resize(sizeMB int) {
	sizeMB = Max(sizeMB, 1)
	entrySize := uint64(unsafe.Sizeof(TTEntry{}))
	maxEntries := uint64(sizeMB) * 1024 * 1024 / entrySize

	bits := uint(0)
	for maxEntries > 1 {
		maxEntries >>= 1
		bits++
	}
	tt.entries = make([]TTEntry, 1<<bits)
	tt.shift = 64 - bits
}

// Clear wipes every entry without reallocating.
func (tt *TransTable) Clear() {
	clear(tt.entries)
}

// Len returns the number of slots.
func (tt *TransTable) Len() int { return len(tt.entries) }

func (tt *TransTable) index(hash uint64) uint64 {
	// A shift of 64 yields 0, which covers the single-slot table.
	return hash >> tt.shift
}

// Probe looks up hash. A hit needs a matching key, an entry at least as deep
// as depth and a bound that settles the (alpha, beta) window. On a miss the
// stored move is still returned as an ordering hint when the entry is
// shallower than requested and is not a lower bound.
func (tt *TransTable) Probe(hash uint64, depth int, alpha, beta int32, ply int) (score int32, move bb.Move, hit bool) {
	e := &tt.entries[tt.index(hash)]
	if e.Flag == NoFlag || e.Key != uint16(hash) {
		return 0, bb.NullMove, false
	}

	if int(e.Depth) < depth {
		if e.Flag != BetaFlag {
			return 0, e.Move, false
		}
		return 0, bb.NullMove, false
	}

	score = scoreFromTT(e.Score, ply)
	switch e.Flag {
	case ExactFlag:
		return score, e.Move, true
	case AlphaFlag:
		if score <= alpha {
			return alpha, e.Move, true
		}
	case BetaFlag:
		if score >= beta {
			return beta, e.Move, true
		}
	}
	return 0, bb.NullMove, false
}

/*
Always replace. Mate scores are stored relative to this node so that the same
entry is valid at any distance from the root.
*/
func (tt *TransTable) Store(hash uint64, depth int, flag uint8, score int32, move bb.Move, ply int) {
	e := &tt.entries[tt.index(hash)]
	e.Key = uint16(hash)
	e.Move = move
	e.Depth = int16(depth)
	e.Flag = flag
	e.Score = scoreToTT(score, ply)
}

// Hashfull returns how many of the first 1000 slots are in use, in permille.
func (tt *TransTable) Hashfull() int {
	n := Min(len(tt.entries), 1000)
	used := 0
	for i := 0; i < n; i++ {
		if tt.entries[i].Flag != NoFlag {
			used++
		}
	}
	return used * 1000 / n
}

func scoreToTT(score int32, ply int) int32 {
	if score > MateThreshold {
		return score + int32(ply)
	}
	if score < -MateThreshold {
		return score - int32(ply)
	}
	return score
}

func scoreFromTT(score int32, ply int) int32 {
	if score > MateThreshold {
		return score - int32(ply)
	}
	if score < -MateThreshold {
		return score + int32(ply)
	}
	return score
}
