// Package shape applies the character shaping stages that turn a raw
// algorithm signal into the final bounded, centered envelope value.
//
// The four stages run in a fixed order: complexity detail, peak
// irregularity, flow/drift/randomness scaling, then center and intensity
// positioning. Later stages assume earlier ones already bounded the signal.
// Every noise term reads its own fixed seed offset, so zeroing one character
// parameter never shifts the draws another one sees.
package shape

import (
	"math"

	"github.com/soliton-audio/modcurve/pkg/noise"
)

// Seed offsets per shaping feature. Disjoint from the generator variants'
// offsets.
const (
	offDetailA    uint64 = 2000
	offDetailB    uint64 = 2100
	offDetailC    uint64 = 2200
	offDrift      uint64 = 2300
	offWarpSrcA   uint64 = 3000
	offWarpSrcB   uint64 = 3100
	offPeakSrcA   uint64 = 3200
	offPeakSrcB   uint64 = 3300
	offWarpTerm   uint64 = 3400
	offFlowJitter uint64 = 4000
	offRandomA    uint64 = 4100
	offRandomB    uint64 = 4200
	offRandomC    uint64 = 4300
)

// Detail layer frequencies in cycles per span, before the rate multiplier.
const (
	detailFreqA = 1.618
	detailFreqB = 7.389
	detailFreqC = 13.42
)

// Settings holds the character and positioning knobs for one pass.
type Settings struct {
	Complexity       float64
	Flow             float64
	Randomness       float64
	PeakIrregularity float64

	Intensity float64
	Center    float64
	MinValue  float64
	MaxValue  float64
}

// Pipeline shapes raw generator output sample by sample. The flow stage
// blends toward the previous sample's shaped value, so Apply must be called
// in time order within a pass.
type Pipeline struct {
	seed uint64
	rate float64
	cfg  Settings

	prev    float64
	hasPrev bool
}

// New builds a pipeline for one pass. rate is the generator's effective
// rate multiplier.
func New(seed uint64, rate float64, cfg Settings) *Pipeline {
	return &Pipeline{seed: seed, rate: rate, cfg: cfg}
}

// Reset clears the cross-sample continuity state.
func (p *Pipeline) Reset() {
	p.prev = 0
	p.hasPrev = false
}

// Continuity returns the shaped value recorded for the last sample, before
// intensity and positioning. The flow stage of the next sample blends
// toward it.
func (p *Pipeline) Continuity() float64 {
	return p.prev
}

// Apply shapes the raw value at normalized time t and returns the final
// envelope value in [MinValue, MaxValue].
func (p *Pipeline) Apply(t, raw float64) float64 {
	v := raw

	// Stage 1: complexity detail layers.
	if p.cfg.Complexity > 0 {
		c := p.cfg.Complexity
		v += 0.08 * c * noise.Smooth(t*detailFreqA*p.rate, p.seed+offDetailA)
		v += 0.05 * c * noise.Smooth(t*detailFreqB*p.rate, p.seed+offDetailB)
		v += 0.03 * c * noise.Smooth(t*detailFreqC*p.rate, p.seed+offDetailC)
		v = clamp(v, -1, 1)
	}

	// Stage 2: peak irregularity. (a) an extra detail term whose sampling
	// frequency is warped by two slow noise sources, (b) multiplicative
	// peak events from two mid-frequency sources.
	if p.cfg.PeakIrregularity > 0 {
		pi := p.cfg.PeakIrregularity
		warpRaw := 0.5 * (noise.Smooth(t*0.8, p.seed+offWarpSrcA) + noise.Smooth(t*1.3, p.seed+offWarpSrcB))
		warp := clamp(1.1+0.4*warpRaw, 0.7, 1.5)
		v += 0.1 * pi * noise.Smooth(t*5*warp*p.rate, p.seed+offWarpTerm)

		eventA := noise.Smooth(t*2.7, p.seed+offPeakSrcA)
		eventB := noise.Smooth(t*3.9, p.seed+offPeakSrcB)
		v *= 1 + 0.5*pi*eventA*eventB
		v = clamp(v, -1, 1)
	}

	// Stage 3a: slow amplitude drift contributed by complexity.
	if p.cfg.Complexity > 0 {
		drift := 0.9 + 0.1*noise.Smooth(t*0.35, p.seed+offDrift) // [0.8, 1.0]
		depth := clamp(p.cfg.Complexity, 0, 1)
		v *= 1 - depth*(1-drift)
	}

	// Stage 3b: flow blends toward the previous sample and adds fine
	// jitter.
	if p.cfg.Flow > 0 && p.hasPrev {
		w := math.Min(0.7+0.3*p.cfg.Flow, 0.95)
		v = p.prev + (v-p.prev)*(1-w)
		v += 0.02 * p.cfg.Flow * noise.Smooth(t*30*p.rate, p.seed+offFlowJitter)
	}

	// Stage 3c: randomness detail at increasing frequency.
	if p.cfg.Randomness > 0 {
		r := p.cfg.Randomness
		v += 0.06 * r * noise.Smooth(t*25*p.rate, p.seed+offRandomA)
		v += 0.04 * r * noise.Smooth(t*40*p.rate, p.seed+offRandomB)
		v += 0.02 * r * noise.Smooth(t*80*p.rate, p.seed+offRandomC)
	}

	// Continuity is recorded before intensity so the flow blend is not
	// re-scaled on the next sample.
	p.prev = v
	p.hasPrev = true

	// Stage 3d + 4: intensity, then center and clamp into the output range.
	v *= p.cfg.Intensity
	return clamp(p.cfg.Center+v, p.cfg.MinValue, p.cfg.MaxValue)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
