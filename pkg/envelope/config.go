// Package envelope is the engine's public surface. It turns an immutable
// generation config into an ordered list of automation curve points, and
// implements the parameter randomization policy the surrounding UI relies
// on.
//
// Generate is pure: the same config always yields the same point list. The
// engine consumes no ambient time or randomness; NewSeed is the one boundary
// helper that touches the process random source, for callers that want a
// fresh seed.
package envelope

import (
	"errors"
	"fmt"
	"math"

	"github.com/soliton-audio/modcurve/pkg/generator"
	"github.com/soliton-audio/modcurve/pkg/param"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("envelope: invalid config")

// Density bounds for PointsPerMinute; values outside are clamped, not
// rejected.
const (
	MinPointsPerMinute = 60
	MaxPointsPerMinute = 500
)

// MinPoints is the floor on the number of generated points for a non-empty
// request.
const MinPoints = 30

// Config is the immutable per-run input to Generate. Build one fresh for
// every generation request; the engine never mutates it.
type Config struct {
	Algorithm generator.Algorithm
	Seed      uint64

	// Target range, in seconds of host time.
	RangeStart  float64
	SpanSeconds float64

	// Point density, in points per minute of span.
	PointsPerMinute float64

	// Positioning.
	Intensity float64 // 0-1
	Center    float64 // 0-1
	MinValue  float64
	MaxValue  float64 // MinValue <= MaxValue

	// Character shaping, non-negative, typically 0-5.
	Complexity       float64
	Flow             float64
	Randomness       float64
	PeakIrregularity float64

	// Variant parameter records; only the one matching Algorithm is read.
	Fractal generator.FractalParams
	Sine    generator.SineParams
	Walk    generator.WalkParams
	LSystem generator.LSystemParams
}

// Default returns a config with every parameter at its registry default,
// generating one minute of curve at moderate density. The seed is zero;
// callers wanting variation pass their own or use NewSeed.
func Default() Config {
	return Config{
		Algorithm:        generator.Fractal,
		SpanSeconds:      60,
		PointsPerMinute:  120,
		Intensity:        0.5,
		Center:           0.5,
		MinValue:         0,
		MaxValue:         1,
		Complexity:       1,
		Flow:             0.5,
		Randomness:       0.5,
		PeakIrregularity: 0.5,
		Fractal:          generator.DefaultFractalParams(),
		Sine:             generator.DefaultSineParams(),
		Walk:             generator.DefaultWalkParams(),
		LSystem:          generator.DefaultLSystemParams(),
	}
}

// newGenerator dispatches to the active variant's constructor. This is the
// single place algorithm selection branches.
func (c Config) newGenerator() (generator.Generator, error) {
	switch c.Algorithm {
	case generator.Fractal:
		return c.Fractal.NewGenerator(c.Seed), nil
	case generator.SineInterference:
		return c.Sine.NewGenerator(c.Seed), nil
	case generator.GenerativeWalk:
		return c.Walk.NewGenerator(c.Seed), nil
	case generator.LSystem:
		return c.LSystem.NewGenerator(c.Seed), nil
	default:
		return nil, fmt.Errorf("%w: unknown algorithm %d", ErrInvalidConfig, int(c.Algorithm))
	}
}

// Validate rejects out-of-range or non-finite parameter values before any
// sampling happens. The numeric safety clamps inside the generators and the
// shaping pipeline are designed-in tolerance and not validated here.
func (c Config) Validate() error {
	if !c.Algorithm.Valid() {
		return fmt.Errorf("%w: unknown algorithm %d", ErrInvalidConfig, int(c.Algorithm))
	}
	checks := []struct {
		name string
		v    float64
	}{
		{"range_start", c.RangeStart},
		{"span_seconds", c.SpanSeconds},
		{"points_per_minute", c.PointsPerMinute},
		{"intensity", c.Intensity},
		{"center", c.Center},
		{"min_value", c.MinValue},
		{"max_value", c.MaxValue},
		{"complexity", c.Complexity},
		{"flow", c.Flow},
		{"randomness", c.Randomness},
		{"peak_irregularity", c.PeakIrregularity},
	}
	for _, ck := range checks {
		if math.IsNaN(ck.v) || math.IsInf(ck.v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidConfig, ck.name)
		}
	}
	if c.SpanSeconds < 0 {
		return fmt.Errorf("%w: span_seconds %v is negative", ErrInvalidConfig, c.SpanSeconds)
	}
	if c.PointsPerMinute < 0 {
		return fmt.Errorf("%w: points_per_minute %v is negative", ErrInvalidConfig, c.PointsPerMinute)
	}
	if c.Intensity < 0 || c.Intensity > 1 {
		return fmt.Errorf("%w: intensity %v outside [0, 1]", ErrInvalidConfig, c.Intensity)
	}
	if c.Center < 0 || c.Center > 1 {
		return fmt.Errorf("%w: center %v outside [0, 1]", ErrInvalidConfig, c.Center)
	}
	if c.MinValue > c.MaxValue {
		return fmt.Errorf("%w: min_value %v exceeds max_value %v", ErrInvalidConfig, c.MinValue, c.MaxValue)
	}
	for _, ck := range []struct {
		name string
		v    float64
	}{
		{"complexity", c.Complexity},
		{"flow", c.Flow},
		{"randomness", c.Randomness},
		{"peak_irregularity", c.PeakIrregularity},
	} {
		if ck.v < 0 {
			return fmt.Errorf("%w: %s %v is negative", ErrInvalidConfig, ck.name, ck.v)
		}
	}
	return c.validateVariant()
}

// validateVariant range-checks the active variant's parameter record against
// the registry. Inactive records are ignored.
func (c Config) validateVariant() error {
	for _, b := range slotBindings(c.Algorithm) {
		v := b.get(&c)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidConfig, b.def.Name)
		}
		if !b.def.Contains(v) {
			return fmt.Errorf("%w: %s %v outside [%v, %v]", ErrInvalidConfig, b.def.Name, v, b.def.Min, b.def.Max)
		}
	}
	switch c.Algorithm {
	case generator.Fractal:
		if c.Fractal.Type < generator.FBM || c.Fractal.Type > generator.Turbulence {
			return fmt.Errorf("%w: unknown fractal type %d", ErrInvalidConfig, int(c.Fractal.Type))
		}
	case generator.GenerativeWalk:
		if c.Walk.MarkovBias < -1 || c.Walk.MarkovBias > 1 {
			return fmt.Errorf("%w: markov_bias %v outside [-1, 1]", ErrInvalidConfig, c.Walk.MarkovBias)
		}
	case generator.LSystem:
		if c.LSystem.MaxChangeRate < 0.1 || c.LSystem.MaxChangeRate > 10 {
			return fmt.Errorf("%w: max_change_rate %v outside [0.1, 10]", ErrInvalidConfig, c.LSystem.MaxChangeRate)
		}
		if c.LSystem.Tilt < -1 || c.LSystem.Tilt > 1 {
			return fmt.Errorf("%w: tilt %v outside [-1, 1]", ErrInvalidConfig, c.LSystem.Tilt)
		}
		if c.LSystem.Mapping < generator.MapYValue || c.LSystem.Mapping > generator.MapSymmetryAxis {
			return fmt.Errorf("%w: unknown mapping mode %d", ErrInvalidConfig, int(c.LSystem.Mapping))
		}
	}
	return nil
}

// sharedDefs returns the definitions of the character and positioning
// parameters, in lock-name order.
func sharedDefs() []param.Def {
	return []param.Def{
		param.New(param.LockIntensity).Range(0, 1).WithDefault(0.5),
		param.New(param.LockCenter).Range(0, 1).WithDefault(0.5),
		param.New(param.LockComplexity).Range(0, 5).WithDefault(1),
		param.New(param.LockFlow).Range(0, 5).WithDefault(0.5),
		param.New(param.LockRandomness).Range(0, 5).WithDefault(0.5),
		param.New(param.LockPeakIrregularity).Range(0, 5).WithDefault(0.5),
	}
}
