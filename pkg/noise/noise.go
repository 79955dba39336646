// Package noise provides the deterministic random primitives the curve
// generators are built on: a fixed-width linear congruential generator and a
// continuous 1-D value noise sampled from it.
//
// Every function here is a pure function of its inputs. Callers that need
// several independent noise features at the same time coordinate pass the
// same base seed with a distinct fixed offset per feature, so evaluation
// order never changes the result.
package noise

import "math"

// LCG constants (Knuth MMIX). Fixed-width uint64 arithmetic keeps the stream
// bit-identical across platforms.
const (
	lcgMul = 6364136223846793005
	lcgInc = 1442695040888963407

	// latticeStride decorrelates neighboring integer lattice cells before
	// the LCG is stepped.
	latticeStride = 0x9E3779B97F4A7C15
)

// Next advances an LCG state by one step and maps the result into [lo, hi).
// It returns the drawn value and the successor state. Same state in, same
// pair out; there is no hidden counter.
func Next(state uint64, lo, hi float64) (float64, uint64) {
	next := state*lcgMul + lcgInc
	u := float64(next>>11) / (1 << 53)
	return lo + u*(hi-lo), next
}

// Sequence is a convenience wrapper that carries LCG state across draws. It
// is a value type; copying a Sequence forks the stream.
type Sequence struct {
	state uint64
}

// NewSequence returns a sequence seeded at the given state.
func NewSequence(seed uint64) *Sequence {
	return &Sequence{state: seed}
}

// Next draws the next value in [lo, hi) and advances the sequence.
func (s *Sequence) Next(lo, hi float64) float64 {
	v, next := Next(s.state, lo, hi)
	s.state = next
	return v
}

// At returns the lattice value in [-1, 1] at integer coordinate n for the
// given seed. The value depends only on (n, seed), never on call order.
func At(n int64, seed uint64) float64 {
	state := seed + uint64(n)*latticeStride
	_, state = Next(state, 0, 1)
	v, _ := Next(state, -1, 1)
	return v
}

// Smooth samples continuous 1-D value noise at position x. It draws the two
// lattice values at floor(x) and floor(x)+1 and cosine-interpolates between
// them, so the result has no jumps at integer boundaries.
func Smooth(x float64, seed uint64) float64 {
	x0 := math.Floor(x)
	frac := x - x0
	v0 := At(int64(x0), seed)
	v1 := At(int64(x0)+1, seed)
	w := (1 - math.Cos(frac*math.Pi)) * 0.5
	return v0*(1-w) + v1*w
}
