// Package castle builds the procedural stained-glass castle: a ring of
// wall segments with window openings, towers, foundation and skylight,
// laid out deterministically from a seed.
package castle

// SeededRandom is a multiplicative linear congruential generator
// (Park-Miller, modulus 2^31-1, multiplier 16807). The same seed always
// yields the same sequence, which keeps generated layouts reproducible.
type SeededRandom struct {
	state int64
}

const (
	lcgModulus    = 2147483647 // 2^31 - 1
	lcgMultiplier = 16807
)

// NewSeededRandom returns a generator for the given seed. Zero and
// negative seeds are normalized to a valid nonzero state.
func NewSeededRandom(seed int64) *SeededRandom {
	s := seed % lcgModulus
	if s < 0 {
		s += lcgModulus - 1
	}
	if s == 0 {
		s = 1
	}
	return &SeededRandom{state: s}
}

// Next returns the next value in [0, 1). States within half a float32
// ULP of 2^31 would round the quotient up to exactly 1, so the result is
// clamped to the largest float32 below 1.
func (r *SeededRandom) Next() float32 {
	r.state = (r.state * lcgMultiplier) % lcgModulus
	v := float32(float64(r.state-1) / lcgModulus)
	if v >= 1 {
		v = 1 - 0x1p-24
	}
	return v
}

// Range maps Next onto [min, max).
func (r *SeededRandom) Range(min, max float32) float32 {
	return min + r.Next()*(max-min)
}

// Int returns an integer in [min, max], inclusive at both ends.
func (r *SeededRandom) Int(min, max int) int {
	return min + int(r.Next()*float32(max-min+1))
}
