package preset

import (
	"github.com/soliton-audio/modcurve/pkg/envelope"
	"github.com/soliton-audio/modcurve/pkg/generator"
)

// Library returns the built-in starting points. Each preset carries a fixed
// seed so loading one reproduces the same curve until the user reseeds.
func Library() []Preset {
	driftingPad := envelope.Default()
	driftingPad.Algorithm = generator.Fractal
	driftingPad.Seed = 1118
	driftingPad.Fractal.Octaves = 3
	driftingPad.Fractal.FrequencyScale = 2
	driftingPad.Complexity = 0.8
	driftingPad.Flow = 2.5
	driftingPad.Randomness = 0.2
	driftingPad.Intensity = 0.35

	nervousFilter := envelope.Default()
	nervousFilter.Algorithm = generator.Fractal
	nervousFilter.Seed = 2207
	nervousFilter.Fractal.Type = generator.Ridged
	nervousFilter.Fractal.Octaves = 7
	nervousFilter.Fractal.FrequencyScale = 12
	nervousFilter.Complexity = 3
	nervousFilter.Randomness = 2.5
	nervousFilter.PeakIrregularity = 2
	nervousFilter.Intensity = 0.7

	slowTide := envelope.Default()
	slowTide.Algorithm = generator.SineInterference
	slowTide.Seed = 3309
	slowTide.Sine.WaveCount = 3
	slowTide.Sine.FrequencySpread = 0.8
	slowTide.Sine.BeatFrequency = 0.3
	slowTide.Flow = 3
	slowTide.Randomness = 0.1
	slowTide.Intensity = 0.45

	glitchBursts := envelope.Default()
	glitchBursts.Algorithm = generator.GenerativeWalk
	glitchBursts.Seed = 4410
	glitchBursts.Walk.SegmentLength = 0.02
	glitchBursts.Walk.LevyProbability = 0.08
	glitchBursts.Walk.VariationScale = 0.05
	glitchBursts.Randomness = 3
	glitchBursts.PeakIrregularity = 2.5
	glitchBursts.Intensity = 0.85

	branching := envelope.Default()
	branching.Algorithm = generator.LSystem
	branching.Seed = 5512
	branching.LSystem.Iterations = 4
	branching.LSystem.GrowthRate = 1.5
	branching.Complexity = 1.5
	branching.Flow = 1

	return []Preset{
		{Name: "Drifting Pad", Config: driftingPad},
		{Name: "Nervous Filter", Config: nervousFilter},
		{Name: "Slow Tide", Config: slowTide},
		{Name: "Glitch Bursts", Config: glitchBursts},
		{Name: "Branching Growth", Config: branching},
	}
}
