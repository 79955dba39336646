// Package generator implements the four organic curve algorithms: fractal
// curves, sine wave interference, generative walk, and L-systems.
//
// Each variant produces a raw signal in [-1, 1] over normalized time [0, 1]
// and owns its private per-run state. Construct a fresh Generator for every
// generation pass; instances are not safe for reuse across passes without
// calling Reset, and Base must be called with non-decreasing t because the
// walk and L-system variants carry state from one sample to the next.
package generator

import "fmt"

// Algorithm selects one of the curve generation variants.
type Algorithm int

const (
	// Fractal sums octaves of smooth noise at geometrically scaled
	// frequencies.
	Fractal Algorithm = iota
	// SineInterference sums detuned sine oscillators with drifting phases.
	SineInterference
	// GenerativeWalk interpolates between seeded walk endpoints with
	// momentum and rare large jumps.
	GenerativeWalk
	// LSystem traces a rewritten turtle path and reads a scalar off it.
	LSystem
)

// Algorithms lists every variant in display order.
var Algorithms = []Algorithm{Fractal, SineInterference, GenerativeWalk, LSystem}

// String returns the display name of the algorithm.
func (a Algorithm) String() string {
	switch a {
	case Fractal:
		return "Fractal Curves"
	case SineInterference:
		return "Sine Wave Interference"
	case GenerativeWalk:
		return "Generative Walk"
	case LSystem:
		return "L-Systems"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// Valid reports whether a names a known variant.
func (a Algorithm) Valid() bool {
	return a >= Fractal && a <= LSystem
}

// Generator produces the raw unit-range signal for one generation pass.
type Generator interface {
	// Base returns the raw value in [-1, 1] at normalized time t. Callers
	// must advance t monotonically within one pass.
	Base(t float64) float64
	// Rate returns the variant's effective rate multiplier, a pure function
	// of its parameters. The shaping stages scale their detail frequencies
	// by it so perceived busyness stays comparable across variants.
	Rate() float64
	// Reset discards all per-pass state, returning the generator to the
	// state it had at construction.
	Reset()
}

// Seed offsets per variant. Each variant draws its noise from a disjoint
// region of seed space so switching algorithms never perturbs another
// variant's stream.
const (
	fractalSeedBase uint64 = 100
	sineSeedBase    uint64 = 500
	walkSeedBase    uint64 = 700
	walkLevySeed    uint64 = 800
	lsystemSeedBase uint64 = 900
)

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}
