package starfield

import "math"

// murmurMul is the multiplier shared with the blob generator. Shape and color
// derivations only agree on what a seed means while both use this constant
// and the single 15-bit shift in Murmur.
const murmurMul = 0x5bd1e995

// Murmur mixes seed and offset into a 32-bit hash using integer arithmetic
// only: h = seed ^ offset*0x5bd1e995, then one avalanche round
// h = (h ^ h>>15) * 0x5bd1e995. All multiplications wrap.
func Murmur(seed, offset int32) uint32 {
	h := uint32(seed) ^ uint32(offset)*murmurMul
	h = (h ^ h>>15) * murmurMul
	return h
}

// Derive maps (seed, offset) to a uniform value in [0, 1).
//
// The sign bit is masked off and the result divided by math.MaxInt32 in
// float32, which is bit-identical to the blob generator's normalization.
// The few hashes that round up to exactly 1.0 are folded to 0.
func Derive(seed, offset int32) float32 {
	v := float32(Murmur(seed, offset)&0x7FFFFFFF) / float32(math.MaxInt32)
	if v >= 1 {
		return 0
	}
	return v
}
