package bitboard

import "math/bits"

// SquareBB returns a bitboard with only the given square set.
func SquareBB(sq Square) uint64 { return 1 << uint(sq) }

// LSB returns the index of the lowest set bit. The mask must be non-zero.
func LSB(mask uint64) int { return bits.TrailingZeros64(mask) }

// PopLSB removes and returns the least significant set bit from the mask.
func PopLSB(mask *uint64) int {
	idx := bits.TrailingZeros64(*mask)
	*mask &= *mask - 1
	return idx
}

// PopCount returns the number of set bits.
func PopCount(mask uint64) int { return bits.OnesCount64(mask) }

// moreThanOne reports whether at least two bits are set.
func moreThanOne(mask uint64) bool { return mask&(mask-1) != 0 }
