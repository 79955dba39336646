package generator

import (
	"math"

	"github.com/soliton-audio/modcurve/pkg/noise"
)

// FractalType selects how each octave's raw noise is post-processed before
// weighting.
type FractalType int

const (
	// FBM leaves each octave untouched (fractional Brownian motion).
	FBM FractalType = iota
	// Ridged sharpens each octave into ridges via (1-|n|)^2.
	Ridged
	// Turbulence folds each octave to |n| for an unsigned chaotic texture.
	Turbulence
)

// String returns the display name of the fractal type.
func (ft FractalType) String() string {
	switch ft {
	case FBM:
		return "fBm"
	case Ridged:
		return "Ridged"
	case Turbulence:
		return "Turbulence"
	default:
		return "Unknown"
	}
}

// FractalParams configures the fractal curves variant.
type FractalParams struct {
	Type           FractalType
	Octaves        int     // 0-10
	Persistence    float64 // 0-1, amplitude decay per octave
	FrequencyScale float64 // 1-20, base frequency in cycles per span
	Lacunarity     float64 // 0.5-5, frequency ratio between octaves
	AmplitudeBias  float64 // 0.01-2.5, extra per-octave weight bias
}

// DefaultFractalParams returns the stock fractal configuration.
func DefaultFractalParams() FractalParams {
	return FractalParams{
		Type:           FBM,
		Octaves:        4,
		Persistence:    0.5,
		FrequencyScale: 4,
		Lacunarity:     2,
		AmplitudeBias:  1,
	}
}

// NewGenerator builds a fractal generator for one pass.
func (p FractalParams) NewGenerator(seed uint64) *FractalGenerator {
	return &FractalGenerator{params: p, seed: seed}
}

// Rate folds the fractal parameters into the effective rate multiplier.
// Frequency scale dominates, with octave count and lacunarity adding the
// rest of the perceived busyness.
func (p FractalParams) Rate() float64 {
	fs := clamp01((p.FrequencyScale - 1) / 19)
	oc := clamp01(float64(p.Octaves) / 10)
	lac := clamp01((p.Lacunarity - 0.5) / 4.5)
	per := clamp01(p.Persistence)
	composite := 0.35*fs + 0.25*oc + 0.25*lac + 0.15*per
	return 0.3 + composite*(2.0-0.3)
}

// FractalGenerator sums octaves of smooth noise. It holds no cross-sample
// state; successive octaves read disjoint seed offsets.
type FractalGenerator struct {
	params FractalParams
	seed   uint64
}

// Base returns the layered noise value at normalized time t.
func (g *FractalGenerator) Base(t float64) float64 {
	freq := g.params.FrequencyScale
	amp := 1.0
	var total, weight float64
	for i := 0; i < g.params.Octaves; i++ {
		n := noise.Smooth(t*freq, g.seed+fractalSeedBase+uint64(i))
		switch g.params.Type {
		case Ridged:
			r := 1 - math.Abs(n)
			n = r * r
		case Turbulence:
			n = math.Abs(n)
		}
		w := amp * math.Pow(g.params.AmplitudeBias, float64(i))
		total += n * w
		weight += w
		freq *= g.params.Lacunarity
		amp *= g.params.Persistence
	}
	if weight < 1e-9 {
		return 0
	}
	return clamp(total/weight, -1, 1)
}

// Rate implements Generator.
func (g *FractalGenerator) Rate() float64 { return g.params.Rate() }

// Reset implements Generator. The fractal variant is stateless per sample.
func (g *FractalGenerator) Reset() {}
