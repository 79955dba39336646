package envelope

import (
	"math"
	"math/rand/v2"

	"github.com/soliton-audio/modcurve/pkg/shape"
)

// Point is one automation curve node. Time is absolute host time in
// seconds. Continuity caches the shaped pre-positioning value the flow
// stage of the following point blended toward.
type Point struct {
	Time       float64
	Value      float64
	Continuity float64
}

// Result is the ordered point list of one generation pass. Points are
// strictly increasing in time. The caller hands the whole list to the
// envelope writer at once; the engine keeps nothing after returning it.
type Result struct {
	Points []Point
}

// PointCount returns the number of points a non-empty request produces:
// floor(span * density / 60), never fewer than MinPoints.
func PointCount(spanSeconds, pointsPerMinute float64) int {
	n := int(spanSeconds * pointsPerMinute / 60)
	if n < MinPoints {
		n = MinPoints
	}
	return n
}

// clampDensity restricts the requested density to the supported band.
func clampDensity(ppm float64) float64 {
	return math.Min(math.Max(ppm, MinPointsPerMinute), MaxPointsPerMinute)
}

// Generate runs the full pipeline and returns the ordered point list.
//
// The call is synchronous and single-threaded: the walk variant and the
// flow stage both carry state from one sample to the next, so samples are
// produced strictly in increasing time order. Independent calls share no
// state and may run concurrently.
//
// A zero-length span or zero density is a no-op and yields an empty result.
// Out-of-range or non-finite parameters are rejected before sampling.
func Generate(cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	if cfg.SpanSeconds == 0 || cfg.PointsPerMinute == 0 {
		return Result{}, nil
	}

	gen, err := cfg.newGenerator()
	if err != nil {
		return Result{}, err
	}
	gen.Reset()

	pipe := shape.New(cfg.Seed, gen.Rate(), shape.Settings{
		Complexity:       cfg.Complexity,
		Flow:             cfg.Flow,
		Randomness:       cfg.Randomness,
		PeakIrregularity: cfg.PeakIrregularity,
		Intensity:        cfg.Intensity,
		Center:           cfg.Center,
		MinValue:         cfg.MinValue,
		MaxValue:         cfg.MaxValue,
	})

	steps := PointCount(cfg.SpanSeconds, clampDensity(cfg.PointsPerMinute))
	points := make([]Point, steps)
	for i := 0; i < steps; i++ {
		t := float64(i) / float64(steps-1)
		raw := gen.Base(t)
		v := pipe.Apply(t, raw)
		points[i] = Point{
			Time:       cfg.RangeStart + t*cfg.SpanSeconds,
			Value:      v,
			Continuity: pipe.Continuity(),
		}
	}
	return Result{Points: points}, nil
}

// NewSeed draws a fresh generation seed from the process random source.
// This is the only place the engine touches ambient randomness; Generate
// itself consumes the explicit config seed alone.
func NewSeed() uint64 {
	return rand.Uint64()
}
