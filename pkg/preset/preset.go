// Package preset persists generation configurations as YAML documents and
// ships a small library of named starting points. Only the input
// configuration is persisted; generated curves never are.
package preset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/soliton-audio/modcurve/pkg/envelope"
	"github.com/soliton-audio/modcurve/pkg/generator"
)

// Preset is a named generation configuration.
type Preset struct {
	Name   string
	Config envelope.Config
}

// yamlPreset mirrors Preset with stable field names for serialization.
type yamlPreset struct {
	Name      string      `yaml:"name"`
	Algorithm string      `yaml:"algorithm"`
	Seed      uint64      `yaml:"seed"`
	Density   float64     `yaml:"points_per_minute"`
	Shaping   yamlShaping `yaml:"shaping"`
	Fractal   yamlFractal `yaml:"fractal"`
	Sine      yamlSine    `yaml:"sine"`
	Walk      yamlWalk    `yaml:"walk"`
	LSystem   yamlLSystem `yaml:"lsystem"`
}

type yamlShaping struct {
	Intensity        float64 `yaml:"intensity"`
	Center           float64 `yaml:"center"`
	MinValue         float64 `yaml:"min_value"`
	MaxValue         float64 `yaml:"max_value"`
	Complexity       float64 `yaml:"complexity"`
	Flow             float64 `yaml:"flow"`
	Randomness       float64 `yaml:"randomness"`
	PeakIrregularity float64 `yaml:"peak_irregularity"`
}

type yamlFractal struct {
	Type           string  `yaml:"type"`
	Octaves        int     `yaml:"octaves"`
	Persistence    float64 `yaml:"persistence"`
	FrequencyScale float64 `yaml:"frequency_scale"`
	Lacunarity     float64 `yaml:"lacunarity"`
	AmplitudeBias  float64 `yaml:"amplitude_bias"`
}

type yamlSine struct {
	WaveCount          int     `yaml:"wave_count"`
	FrequencySpread    float64 `yaml:"frequency_spread"`
	AmplitudeVariation float64 `yaml:"amplitude_variation"`
	PhaseDrift         float64 `yaml:"phase_drift"`
	BeatFrequency      float64 `yaml:"beat_frequency"`
}

type yamlWalk struct {
	SegmentLength   float64 `yaml:"segment_length"`
	SmoothingFactor float64 `yaml:"smoothing_factor"`
	VariationScale  float64 `yaml:"variation_scale"`
	Momentum        float64 `yaml:"momentum"`
	LevyProbability float64 `yaml:"levy_probability"`
	MarkovBias      float64 `yaml:"markov_bias"`
}

type yamlLSystem struct {
	Iterations       int     `yaml:"iterations"`
	BranchAngleDeg   float64 `yaml:"branch_angle_deg"`
	LengthScale      float64 `yaml:"length_scale"`
	GrowthRate       float64 `yaml:"growth_rate"`
	ComplexityFactor float64 `yaml:"complexity_factor"`
	MaxChangeRate    float64 `yaml:"max_change_rate"`
	Tilt             float64 `yaml:"tilt"`
	Mapping          string  `yaml:"mapping"`
}

var algorithmNames = map[generator.Algorithm]string{
	generator.Fractal:          "fractal",
	generator.SineInterference: "sine_interference",
	generator.GenerativeWalk:   "generative_walk",
	generator.LSystem:          "lsystem",
}

var fractalTypeNames = map[generator.FractalType]string{
	generator.FBM:        "fbm",
	generator.Ridged:     "ridged",
	generator.Turbulence: "turbulence",
}

var mappingNames = map[generator.MappingMode]string{
	generator.MapYValue:       "y_value",
	generator.MapSymmetryAxis: "symmetry_axis",
}

func lookup[K comparable](m map[K]string, name string) (K, bool) {
	for k, v := range m {
		if v == name {
			return k, true
		}
	}
	var zero K
	return zero, false
}

// Marshal serializes a preset as YAML. The target range (RangeStart and
// SpanSeconds) is deliberately not part of a preset; it comes from the
// host's current selection at generation time.
func Marshal(p Preset) ([]byte, error) {
	algo, ok := algorithmNames[p.Config.Algorithm]
	if !ok {
		return nil, fmt.Errorf("preset: unknown algorithm %d", int(p.Config.Algorithm))
	}
	ftype, ok := fractalTypeNames[p.Config.Fractal.Type]
	if !ok {
		return nil, fmt.Errorf("preset: unknown fractal type %d", int(p.Config.Fractal.Type))
	}
	mapping, ok := mappingNames[p.Config.LSystem.Mapping]
	if !ok {
		return nil, fmt.Errorf("preset: unknown mapping mode %d", int(p.Config.LSystem.Mapping))
	}
	c := p.Config
	doc := yamlPreset{
		Name:      p.Name,
		Algorithm: algo,
		Seed:      c.Seed,
		Density:   c.PointsPerMinute,
		Shaping: yamlShaping{
			Intensity:        c.Intensity,
			Center:           c.Center,
			MinValue:         c.MinValue,
			MaxValue:         c.MaxValue,
			Complexity:       c.Complexity,
			Flow:             c.Flow,
			Randomness:       c.Randomness,
			PeakIrregularity: c.PeakIrregularity,
		},
		Fractal: yamlFractal{
			Type:           ftype,
			Octaves:        c.Fractal.Octaves,
			Persistence:    c.Fractal.Persistence,
			FrequencyScale: c.Fractal.FrequencyScale,
			Lacunarity:     c.Fractal.Lacunarity,
			AmplitudeBias:  c.Fractal.AmplitudeBias,
		},
		Sine: yamlSine{
			WaveCount:          c.Sine.WaveCount,
			FrequencySpread:    c.Sine.FrequencySpread,
			AmplitudeVariation: c.Sine.AmplitudeVariation,
			PhaseDrift:         c.Sine.PhaseDrift,
			BeatFrequency:      c.Sine.BeatFrequency,
		},
		Walk: yamlWalk{
			SegmentLength:   c.Walk.SegmentLength,
			SmoothingFactor: c.Walk.SmoothingFactor,
			VariationScale:  c.Walk.VariationScale,
			Momentum:        c.Walk.Momentum,
			LevyProbability: c.Walk.LevyProbability,
			MarkovBias:      c.Walk.MarkovBias,
		},
		LSystem: yamlLSystem{
			Iterations:       c.LSystem.Iterations,
			BranchAngleDeg:   c.LSystem.BranchAngleDeg,
			LengthScale:      c.LSystem.LengthScale,
			GrowthRate:       c.LSystem.GrowthRate,
			ComplexityFactor: c.LSystem.ComplexityFactor,
			MaxChangeRate:    c.LSystem.MaxChangeRate,
			Tilt:             c.LSystem.Tilt,
			Mapping:          mapping,
		},
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("preset: marshal %q: %w", p.Name, err)
	}
	return out, nil
}

// Unmarshal parses a YAML preset document. The resulting config carries no
// target range; callers fill RangeStart and SpanSeconds from the host
// selection before generating.
func Unmarshal(data []byte) (Preset, error) {
	var doc yamlPreset
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Preset{}, fmt.Errorf("preset: unmarshal: %w", err)
	}
	algo, ok := lookup(algorithmNames, doc.Algorithm)
	if !ok {
		return Preset{}, fmt.Errorf("preset: unknown algorithm %q", doc.Algorithm)
	}
	ftype, ok := lookup(fractalTypeNames, doc.Fractal.Type)
	if !ok {
		return Preset{}, fmt.Errorf("preset: unknown fractal type %q", doc.Fractal.Type)
	}
	mapping, ok := lookup(mappingNames, doc.LSystem.Mapping)
	if !ok {
		return Preset{}, fmt.Errorf("preset: unknown mapping mode %q", doc.LSystem.Mapping)
	}
	cfg := envelope.Config{
		Algorithm:        algo,
		Seed:             doc.Seed,
		PointsPerMinute:  doc.Density,
		Intensity:        doc.Shaping.Intensity,
		Center:           doc.Shaping.Center,
		MinValue:         doc.Shaping.MinValue,
		MaxValue:         doc.Shaping.MaxValue,
		Complexity:       doc.Shaping.Complexity,
		Flow:             doc.Shaping.Flow,
		Randomness:       doc.Shaping.Randomness,
		PeakIrregularity: doc.Shaping.PeakIrregularity,
		Fractal: generator.FractalParams{
			Type:           ftype,
			Octaves:        doc.Fractal.Octaves,
			Persistence:    doc.Fractal.Persistence,
			FrequencyScale: doc.Fractal.FrequencyScale,
			Lacunarity:     doc.Fractal.Lacunarity,
			AmplitudeBias:  doc.Fractal.AmplitudeBias,
		},
		Sine: generator.SineParams{
			WaveCount:          doc.Sine.WaveCount,
			FrequencySpread:    doc.Sine.FrequencySpread,
			AmplitudeVariation: doc.Sine.AmplitudeVariation,
			PhaseDrift:         doc.Sine.PhaseDrift,
			BeatFrequency:      doc.Sine.BeatFrequency,
		},
		Walk: generator.WalkParams{
			SegmentLength:   doc.Walk.SegmentLength,
			SmoothingFactor: doc.Walk.SmoothingFactor,
			VariationScale:  doc.Walk.VariationScale,
			Momentum:        doc.Walk.Momentum,
			LevyProbability: doc.Walk.LevyProbability,
			MarkovBias:      doc.Walk.MarkovBias,
		},
		LSystem: generator.LSystemParams{
			Iterations:       doc.LSystem.Iterations,
			BranchAngleDeg:   doc.LSystem.BranchAngleDeg,
			LengthScale:      doc.LSystem.LengthScale,
			GrowthRate:       doc.LSystem.GrowthRate,
			ComplexityFactor: doc.LSystem.ComplexityFactor,
			MaxChangeRate:    doc.LSystem.MaxChangeRate,
			Tilt:             doc.LSystem.Tilt,
			Mapping:          mapping,
		},
	}
	return Preset{Name: doc.Name, Config: cfg}, nil
}

// Save writes a preset file.
func Save(path string, p Preset) error {
	data, err := Marshal(p)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("preset: save %q: %w", path, err)
	}
	return nil
}

// Load reads a preset file.
func Load(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("preset: load %q: %w", path, err)
	}
	return Unmarshal(data)
}
