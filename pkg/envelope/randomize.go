package envelope

import (
	"github.com/soliton-audio/modcurve/pkg/generator"
	"github.com/soliton-audio/modcurve/pkg/noise"
	"github.com/soliton-audio/modcurve/pkg/param"
)

// binding ties a lockable parameter to its definition and its location
// inside a Config.
type binding struct {
	lock string
	def  param.Def
	get  func(*Config) float64
	set  func(*Config, float64)
}

// sharedBindings covers the character and positioning parameters, present
// for every algorithm.
func sharedBindings() []binding {
	defs := sharedDefs()
	return []binding{
		{param.LockIntensity, defs[0],
			func(c *Config) float64 { return c.Intensity },
			func(c *Config, v float64) { c.Intensity = v }},
		{param.LockCenter, defs[1],
			func(c *Config) float64 { return c.Center },
			func(c *Config, v float64) { c.Center = v }},
		{param.LockComplexity, defs[2],
			func(c *Config) float64 { return c.Complexity },
			func(c *Config, v float64) { c.Complexity = v }},
		{param.LockFlow, defs[3],
			func(c *Config) float64 { return c.Flow },
			func(c *Config, v float64) { c.Flow = v }},
		{param.LockRandomness, defs[4],
			func(c *Config) float64 { return c.Randomness },
			func(c *Config, v float64) { c.Randomness = v }},
		{param.LockPeakIrregularity, defs[5],
			func(c *Config) float64 { return c.PeakIrregularity },
			func(c *Config, v float64) { c.PeakIrregularity = v }},
	}
}

// slotBindings maps the five generic algorithm-slot locks onto the active
// variant's first five continuous parameters. Discrete mode selectors
// (fractal type, L-system mapping) sit outside the slot surface and are
// never randomized.
func slotBindings(alg generator.Algorithm) []binding {
	switch alg {
	case generator.Fractal:
		return []binding{
			{param.LockSlot1, param.New("octaves").Range(0, 10).WithDefault(4).Discrete(10),
				func(c *Config) float64 { return float64(c.Fractal.Octaves) },
				func(c *Config, v float64) { c.Fractal.Octaves = int(v) }},
			{param.LockSlot2, param.New("persistence").Range(0, 1).WithDefault(0.5),
				func(c *Config) float64 { return c.Fractal.Persistence },
				func(c *Config, v float64) { c.Fractal.Persistence = v }},
			{param.LockSlot3, param.New("frequency_scale").Range(1, 20).WithDefault(4),
				func(c *Config) float64 { return c.Fractal.FrequencyScale },
				func(c *Config, v float64) { c.Fractal.FrequencyScale = v }},
			{param.LockSlot4, param.New("lacunarity").Range(0.5, 5).WithDefault(2),
				func(c *Config) float64 { return c.Fractal.Lacunarity },
				func(c *Config, v float64) { c.Fractal.Lacunarity = v }},
			{param.LockSlot5, param.New("amplitude_bias").Range(0.01, 2.5).WithDefault(1),
				func(c *Config) float64 { return c.Fractal.AmplitudeBias },
				func(c *Config, v float64) { c.Fractal.AmplitudeBias = v }},
		}
	case generator.SineInterference:
		return []binding{
			{param.LockSlot1, param.New("wave_count").Range(1, 30).WithDefault(5).Discrete(29),
				func(c *Config) float64 { return float64(c.Sine.WaveCount) },
				func(c *Config, v float64) { c.Sine.WaveCount = int(v) }},
			{param.LockSlot2, param.New("frequency_spread").Range(0.5, 10).WithDefault(2),
				func(c *Config) float64 { return c.Sine.FrequencySpread },
				func(c *Config, v float64) { c.Sine.FrequencySpread = v }},
			{param.LockSlot3, param.New("amplitude_variation").Range(0.1, 2).WithDefault(0.5),
				func(c *Config) float64 { return c.Sine.AmplitudeVariation },
				func(c *Config, v float64) { c.Sine.AmplitudeVariation = v }},
			{param.LockSlot4, param.New("phase_drift").Range(0.1, 30).WithDefault(4),
				func(c *Config) float64 { return c.Sine.PhaseDrift },
				func(c *Config, v float64) { c.Sine.PhaseDrift = v }},
			{param.LockSlot5, param.New("beat_frequency").Range(0.1, 10).WithDefault(1),
				func(c *Config) float64 { return c.Sine.BeatFrequency },
				func(c *Config, v float64) { c.Sine.BeatFrequency = v }},
		}
	case generator.GenerativeWalk:
		return []binding{
			{param.LockSlot1, param.New("segment_length").Range(0.01, 0.3).WithDefault(0.05),
				func(c *Config) float64 { return c.Walk.SegmentLength },
				func(c *Config, v float64) { c.Walk.SegmentLength = v }},
			{param.LockSlot2, param.New("smoothing_factor").Range(0.01, 50).WithDefault(5),
				func(c *Config) float64 { return c.Walk.SmoothingFactor },
				func(c *Config, v float64) { c.Walk.SmoothingFactor = v }},
			{param.LockSlot3, param.New("variation_scale").Range(0.01, 0.05).WithDefault(0.03),
				func(c *Config) float64 { return c.Walk.VariationScale },
				func(c *Config, v float64) { c.Walk.VariationScale = v }},
			{param.LockSlot4, param.New("momentum").Range(0.001, 0.1).WithDefault(0.02),
				func(c *Config) float64 { return c.Walk.Momentum },
				func(c *Config, v float64) { c.Walk.Momentum = v }},
			{param.LockSlot5, param.New("levy_probability").Range(0, 0.1).WithDefault(0.02),
				func(c *Config) float64 { return c.Walk.LevyProbability },
				func(c *Config, v float64) { c.Walk.LevyProbability = v }},
		}
	case generator.LSystem:
		return []binding{
			{param.LockSlot1, param.New("iterations").Range(1, 6).WithDefault(3).Discrete(5),
				func(c *Config) float64 { return float64(c.LSystem.Iterations) },
				func(c *Config, v float64) { c.LSystem.Iterations = int(v) }},
			{param.LockSlot2, param.New("branch_angle").Range(10, 90).WithDefault(25).WithUnit("deg"),
				func(c *Config) float64 { return c.LSystem.BranchAngleDeg },
				func(c *Config, v float64) { c.LSystem.BranchAngleDeg = v }},
			{param.LockSlot3, param.New("length_scale").Range(0.3, 0.95).WithDefault(0.7),
				func(c *Config) float64 { return c.LSystem.LengthScale },
				func(c *Config, v float64) { c.LSystem.LengthScale = v }},
			{param.LockSlot4, param.New("growth_rate").Range(0.01, 4).WithDefault(1),
				func(c *Config) float64 { return c.LSystem.GrowthRate },
				func(c *Config, v float64) { c.LSystem.GrowthRate = v }},
			{param.LockSlot5, param.New("complexity_factor").Range(0.2, 1).WithDefault(0.6),
				func(c *Config) float64 { return c.LSystem.ComplexityFactor },
				func(c *Config, v float64) { c.LSystem.ComplexityFactor = v }},
		}
	default:
		return nil
	}
}

// randomizable returns every binding the randomization operations may
// touch for the given config.
func randomizable(cfg Config) []binding {
	return append(sharedBindings(), slotBindings(cfg.Algorithm)...)
}

// ResetParams restores every unlocked parameter to its default. Locked
// parameters keep their exact current value.
func ResetParams(cfg Config, locks param.LockSet) Config {
	for _, b := range randomizable(cfg) {
		if locks.Locked(b.lock) {
			continue
		}
		b.set(&cfg, b.def.Clamp(b.def.Default))
	}
	return cfg
}

// RandomizeMild redraws every unlocked parameter near the midpoint of its
// range: midpoint plus or minus 20% of the range width, uniformly.
func RandomizeMild(cfg Config, locks param.LockSet, seed uint64) Config {
	seq := noise.NewSequence(seed)
	for _, b := range randomizable(cfg) {
		if locks.Locked(b.lock) {
			continue
		}
		mid := (b.def.Min + b.def.Max) / 2
		width := b.def.Max - b.def.Min
		b.set(&cfg, b.def.Clamp(mid+width*seq.Next(-0.2, 0.2)))
	}
	return cfg
}

// RandomizeExtreme redraws every unlocked parameter uniformly across its
// full range.
func RandomizeExtreme(cfg Config, locks param.LockSet, seed uint64) Config {
	seq := noise.NewSequence(seed)
	for _, b := range randomizable(cfg) {
		if locks.Locked(b.lock) {
			continue
		}
		b.set(&cfg, b.def.Clamp(seq.Next(b.def.Min, b.def.Max)))
	}
	return cfg
}

// RandomizeAll is the extreme redraw plus a fresh generation seed. The seed
// itself is never lockable.
func RandomizeAll(cfg Config, locks param.LockSet, seed uint64) Config {
	cfg = RandomizeExtreme(cfg, locks, seed)
	_, next := noise.Next(seed, 0, 1)
	cfg.Seed = next
	return cfg
}
