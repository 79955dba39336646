package generator

import (
	"math"

	"github.com/soliton-audio/modcurve/pkg/noise"
)

// SineParams configures the sine wave interference variant.
type SineParams struct {
	WaveCount          int     // 1-30
	FrequencySpread    float64 // 0.5-10, detune across the wave bank
	AmplitudeVariation float64 // 0.1-2, depth of per-wave amplitude wobble
	PhaseDrift         float64 // 0.1-30, how fast waves decohere over the span
	BeatFrequency      float64 // 0.1-10, rate of the amplitude wobble
}

// DefaultSineParams returns the stock interference configuration.
func DefaultSineParams() SineParams {
	return SineParams{
		WaveCount:          5,
		FrequencySpread:    2,
		AmplitudeVariation: 0.5,
		PhaseDrift:         4,
		BeatFrequency:      1,
	}
}

// NewGenerator builds a sine interference generator for one pass. Per-wave
// phases, amplitude phases, and beat rates are drawn once here, never per
// sample, so the bank cannot resynchronize mid-pass.
func (p SineParams) NewGenerator(seed uint64) *SineGenerator {
	g := &SineGenerator{params: p, seed: seed}
	g.Reset()
	return g
}

// Rate folds the interference parameters into the effective rate multiplier.
func (p SineParams) Rate() float64 {
	spread := clamp01((p.FrequencySpread - 0.5) / 9.5)
	beat := clamp01((p.BeatFrequency - 0.1) / 9.9)
	count := clamp01(float64(p.WaveCount-1) / 29)
	drift := clamp01((p.PhaseDrift - 0.1) / 29.9)
	composite := 0.40*spread + 0.30*beat + 0.20*count + 0.10*drift
	return 0.4 + composite*(2.0-0.4)
}

// SineGenerator sums a bank of detuned sine oscillators.
type SineGenerator struct {
	params SineParams

	seed      uint64
	phases    []float64
	ampPhases []float64
	beatRates []float64
}

// Reset redraws the per-run wave bank from the seed.
func (g *SineGenerator) Reset() {
	n := g.params.WaveCount
	if n < 1 {
		n = 1
	}
	g.phases = make([]float64, n)
	g.ampPhases = make([]float64, n)
	g.beatRates = make([]float64, n)
	seq := noise.NewSequence(g.seed + sineSeedBase)
	for i := 0; i < n; i++ {
		g.phases[i] = seq.Next(0, 2*math.Pi)
		g.ampPhases[i] = seq.Next(0, 2*math.Pi)
		g.beatRates[i] = 2 * math.Pi * g.params.BeatFrequency * seq.Next(0.75, 1.25)
	}
}

// Base returns the normalized interference sum at normalized time t.
func (g *SineGenerator) Base(t float64) float64 {
	n := len(g.phases)
	var sum, ampSum float64
	for i := 0; i < n; i++ {
		freq := 1.0
		if n > 1 {
			freq = 1 + float64(i)*g.params.FrequencySpread/float64(n-1)
		}
		amp := 1 + g.params.AmplitudeVariation*math.Sin(g.ampPhases[i]+t*g.beatRates[i])
		drift := 0.0
		if n > 1 {
			drift = g.params.PhaseDrift * t * float64(i) / float64(n-1)
		}
		sum += amp * math.Sin(2*math.Pi*freq*t+g.phases[i]+drift)
		ampSum += math.Abs(amp)
	}
	if ampSum < 1e-9 {
		return 0
	}
	return clamp(sum/ampSum, -1, 1)
}

// Rate implements Generator.
func (g *SineGenerator) Rate() float64 { return g.params.Rate() }
