package generator

import (
	"math"

	"github.com/soliton-audio/modcurve/pkg/noise"
)

// WalkParams configures the generative walk variant.
type WalkParams struct {
	SegmentLength   float64 // 0.01-0.3, in normalized time
	SmoothingFactor float64 // 0.01-50, linear-to-smoothstep blend
	VariationScale  float64 // 0.01-0.05, step size between segment endpoints
	Momentum        float64 // 0.001-0.1, velocity carry between samples
	LevyProbability float64 // 0-0.1, chance of a 5x jump per segment
	MarkovBias      float64 // -1..1, value the walk is pulled toward
}

// DefaultWalkParams returns the stock walk configuration.
func DefaultWalkParams() WalkParams {
	return WalkParams{
		SegmentLength:   0.05,
		SmoothingFactor: 5,
		VariationScale:  0.03,
		Momentum:        0.02,
		LevyProbability: 0.02,
		MarkovBias:      0,
	}
}

// NewGenerator builds a walk generator for one pass.
func (p WalkParams) NewGenerator(seed uint64) *WalkGenerator {
	g := &WalkGenerator{params: p, seed: seed}
	g.Reset()
	return g
}

// Rate folds the walk parameters into the effective rate multiplier.
// Shorter segments mean more direction changes per span, so segment length
// enters inverted.
func (p WalkParams) Rate() float64 {
	seg := clamp01(1 - (p.SegmentLength-0.01)/0.29)
	vari := clamp01((p.VariationScale - 0.01) / 0.04)
	smooth := clamp01((p.SmoothingFactor - 0.01) / 49.99)
	composite := 0.45*seg + 0.30*vari + 0.25*smooth
	return 0.5 + composite*(2.0-0.5)
}

// Lévy jumps multiply the endpoint step by this factor.
const levyJumpScale = 5.0

// markovPull is the fraction of the distance to the bias target applied to
// every endpoint step.
const markovPull = 0.1

// WalkGenerator interpolates between seeded endpoint values segment by
// segment. Both the endpoint bookkeeping and the momentum term depend on the
// previous sample, so Base must see strictly non-decreasing t.
type WalkGenerator struct {
	params WalkParams
	seed   uint64

	segIndex int64
	segStart float64 // endpoint value entering the current segment
	segEnd   float64 // endpoint value leaving the current segment

	velocity float64
	last     float64
	hasLast  bool
}

// Reset rewinds the walk to segment zero and clears the momentum state.
func (g *WalkGenerator) Reset() {
	g.segIndex = 0
	g.segStart = noise.At(0, g.seed+walkSeedBase) * 0.5
	g.segEnd = g.nextEndpoint(1, g.segStart)
	g.velocity = 0
	g.last = 0
	g.hasLast = false
}

// nextEndpoint draws the endpoint value for segment boundary k, stepping
// from the current value. The draw depends only on (k, seed) plus the
// running value through the Markov pull, so a fixed sampling grid always
// reproduces the same walk.
func (g *WalkGenerator) nextEndpoint(k int64, from float64) float64 {
	step := noise.At(k, g.seed+walkSeedBase) * g.params.VariationScale
	u := (noise.At(k, g.seed+walkLevySeed) + 1) * 0.5
	if u < g.params.LevyProbability {
		step *= levyJumpScale
	}
	step += (g.params.MarkovBias - from) * markovPull * math.Abs(g.params.MarkovBias-from) * 0.5
	return clamp(from+step, -1, 1)
}

// segmentCount returns the number of segments the span is divided into.
func (g *WalkGenerator) segmentCount() int64 {
	if g.params.SegmentLength <= 0 {
		return 1
	}
	n := int64(1 / g.params.SegmentLength)
	if n < 1 {
		n = 1
	}
	return n
}

// Base returns the walk value at normalized time t.
func (g *WalkGenerator) Base(t float64) float64 {
	segments := g.segmentCount()
	idx := int64(t * float64(segments))
	if idx >= segments {
		idx = segments - 1
	}
	for g.segIndex < idx {
		g.segIndex++
		g.segStart = g.segEnd
		g.segEnd = g.nextEndpoint(g.segIndex+1, g.segStart)
	}

	segLen := 1 / float64(segments)
	u := clamp01((t - float64(g.segIndex)*segLen) / segLen)

	// Blend linear interpolation toward smoothstep as the smoothing factor
	// grows.
	w := g.params.SmoothingFactor / (g.params.SmoothingFactor + 1)
	shaped := u*(1-w) + u*u*(3-2*u)*w
	raw := g.segStart + (g.segEnd-g.segStart)*shaped

	if !g.hasLast {
		g.hasLast = true
		g.last = raw
		return clamp(raw, -1, 1)
	}
	delta := raw - g.last
	g.velocity = g.velocity*(1-g.params.Momentum) + delta*g.params.Momentum
	g.last = raw
	return clamp(raw+g.velocity*momentumGain, -1, 1)
}

// momentumGain converts the exponentially smoothed per-sample velocity into
// a visible overshoot.
const momentumGain = 8.0

// Rate implements Generator.
func (g *WalkGenerator) Rate() float64 { return g.params.Rate() }
