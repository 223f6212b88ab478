package bitboard

import "math/bits"

// magicEntry holds the lookup data for one slider on one square. The attack
// table is sized to the largest index the magic produces, plus one.
type magicEntry struct {
	mask    uint64
	magic   uint64
	shift   uint
	attacks []uint64
}

func (m *magicEntry) index(occ uint64) uint64 {
	return ((occ & m.mask) * m.magic) >> m.shift
}

var rookMagics [64]magicEntry
var bishopMagics [64]magicEntry

var rookMagicNumbers = [64]uint64{
	9259400989436281217, 18014673655848964, 144132823215906944, 612498347570233348,
	2522022422773761168, 72097176494604296, 72058693692293124, 72057732560650246,
	9224638676399570944, 72198882355847168, 281544776220928, 9237586626283048960,
	4616471127393632272, 1729523002988822656, 18296973065060353, 4629981892995844352,
	35734165652096, 2393088131735560, 4616472193079972160, 5770788120569858,
	5068748872755232, 721702390117435904, 6126479058936098, 1207263776153668,
	35736275402760, 4506093929635856, 281556585291776, 189714727009533984,
	72066392278696064, 281487861874696, 290763655237468228, 2341873206392029444,
	35459258384512, 4904595984807363648, 576495940987273296, 6994661969525485568,
	13572373689140224, 2379027091787093248, 4505833614353200, 9223372947421405313,
	612489825811480578, 287112154972224, 4503737074745362, 5836770738924748812,
	281578060447762, 4398080098432, 1166511695993241616, 577868133650464786,
	2316257894737651968, 6053436035663134848, 4647759354559250944, 578994645575403776,
	288274358768763008, 9225065286911262848, 288232579617784832, 550896861696,
	378865633007345794, 578994165606519427, 590025431453953, 105605343752193,
	18577486171866242, 18296509141889539, 8800698519564, 2414106011477737730,
}

var rookShifts = [64]uint{
	52, 53, 53, 53, 53, 53, 53, 52,
	53, 54, 54, 54, 54, 54, 54, 53,
	53, 54, 54, 54, 54, 54, 54, 53,
	53, 54, 54, 54, 54, 54, 54, 53,
	53, 54, 54, 54, 54, 54, 54, 53,
	53, 54, 54, 54, 54, 54, 54, 53,
	53, 54, 54, 54, 54, 54, 54, 53,
	52, 53, 53, 53, 53, 53, 53, 52,
}

var bishopMagicNumbers = [64]uint64{
	10493393737567183232, 1155472375882515472, 9299938221821788737, 585619694904410120,
	726218777666019328, 282712195989504, 18304704124026880, 3495094579376425024,
	616500584987525632, 1152939165520823104, 9223939560982052864, 27048280332435466,
	36038764564316160, 6922052452907024396, 4787277939622032, 216174983855018056,
	4538870176678208, 2310347727730901248, 9224502618343342088, 562954793779219,
	282594088321026, 10556033315702800, 13836183956582041696, 2170770209126877697,
	1158058423200581648, 2310348808133038336, 128353723385774629, 37163493037711424,
	9241531571024977928, 4906678395408089345, 1225271577332433932, 563501353435265,
	1229557611713528320, 113768675739767312, 9295500275589054992, 2254000989143169,
	2254153455911168, 58547349743600129, 577595807004492416, 9223515050709370112,
	82191934584655872, 1154619154993517888, 18157369414386432, 144150656050004864,
	144141606424151040, 1206966126081212448, 4789476966532096, 94875905020660224,
	703125110383446025, 1374398294540288, 5766861526185099536, 10379671896232034308,
	594478586824753164, 598983285992917248, 4508002170437634, 9243678952575877120,
	1297111464910259200, 576460898469283908, 2026901483391356935, 290554760921353216,
	13651542016133632, 5332262029943111970, 9223407509258764424, 9082045636558976,
}

var bishopShifts = [64]uint{
	58, 59, 59, 59, 59, 59, 59, 58,
	59, 59, 59, 59, 59, 59, 59, 59,
	59, 59, 57, 57, 57, 57, 59, 59,
	59, 59, 57, 55, 55, 57, 59, 59,
	59, 59, 57, 55, 55, 57, 59, 59,
	59, 59, 57, 57, 57, 57, 59, 59,
	59, 59, 59, 59, 59, 59, 59, 59,
	58, 59, 59, 59, 59, 59, 59, 58,
}

func initMagics() {
	for sq := Square(0); sq < 64; sq++ {
		rookMagics[sq] = buildMagic(sq, rookDirections, rookMagicNumbers[sq], rookShifts[sq])
		bishopMagics[sq] = buildMagic(sq, bishopDirections, bishopMagicNumbers[sq], bishopShifts[sq])
	}
}

// buildMagic enumerates every blocker subset of the square's movement mask
// and fills the attack table. If the supplied constant maps two subsets with
// different attack sets to the same slot, a replacement is searched for.
func buildMagic(sq Square, dirs [4]direction, magic uint64, shift uint) magicEntry {
	mask := movementMask(sq, dirs)
	n := 1 << PopCount(mask)
	blockers := make([]uint64, 0, n)
	attacks := make([]uint64, 0, n)
	for subset := uint64(0); ; {
		blockers = append(blockers, subset)
		attacks = append(attacks, slidingAttacks(sq, subset, dirs))
		subset = (subset - mask) & mask
		if subset == 0 {
			break
		}
	}

	e := magicEntry{mask: mask, magic: magic, shift: shift}
	if table, ok := fillMagicTable(&e, blockers, attacks); ok {
		e.attacks = table
		return e
	}

	rng := magicRand{state: 0x9E3779B97F4A7C15 ^ uint64(sq+1)*0xBF58476D1CE4E5B9}
	e.shift = uint(64 - PopCount(mask))
	for {
		e.magic = rng.sparse()
		if bits.OnesCount64((mask*e.magic)&0xFF00000000000000) < 6 {
			continue
		}
		if table, ok := fillMagicTable(&e, blockers, attacks); ok {
			e.attacks = table
			return e
		}
	}
}

// fillMagicTable builds the lookup table for e, reporting false on a
// destructive collision. Slider attack sets are never empty, so 0 marks a
// free slot.
func fillMagicTable(e *magicEntry, blockers, attacks []uint64) ([]uint64, bool) {
	var maxIdx uint64
	for _, b := range blockers {
		if idx := e.index(b); idx > maxIdx {
			maxIdx = idx
		}
	}
	table := make([]uint64, maxIdx+1)
	for i, b := range blockers {
		idx := e.index(b)
		if table[idx] == 0 {
			table[idx] = attacks[i]
		} else if table[idx] != attacks[i] {
			return nil, false
		}
	}
	return table, true
}

// magicRand is a xorshift64* generator with a fixed seed so that any
// searched magic is the same on every run.
type magicRand struct{ state uint64 }

func (r *magicRand) next() uint64 {
	r.state ^= r.state >> 12
	r.state ^= r.state << 25
	r.state ^= r.state >> 27
	return r.state * 2685821657736338717
}

func (r *magicRand) sparse() uint64 { return r.next() & r.next() & r.next() }

// RookAttacks returns rook attacks from sq for the given occupancy.
func RookAttacks(sq Square, occ uint64) uint64 {
	m := &rookMagics[sq]
	return m.attacks[m.index(occ)]
}

// BishopAttacks returns bishop attacks from sq for the given occupancy.
func BishopAttacks(sq Square, occ uint64) uint64 {
	m := &bishopMagics[sq]
	return m.attacks[m.index(occ)]
}

// QueenAttacks returns the union of rook and bishop attacks from sq.
func QueenAttacks(sq Square, occ uint64) uint64 {
	return RookAttacks(sq, occ) | BishopAttacks(sq, occ)
}
