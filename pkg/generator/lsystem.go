package generator

import (
	"math"
	"strings"

	"github.com/soliton-audio/modcurve/pkg/noise"
)

// MappingMode selects how a traced turtle point becomes a scalar value.
type MappingMode int

const (
	// MapYValue reads the point's height, skewed sideways by complexity.
	MapYValue MappingMode = iota
	// MapSymmetryAxis projects the point onto a fixed diagonal axis.
	MapSymmetryAxis
)

// String returns the display name of the mapping mode.
func (m MappingMode) String() string {
	switch m {
	case MapYValue:
		return "Y Value"
	case MapSymmetryAxis:
		return "Symmetry Axis"
	default:
		return "Unknown"
	}
}

// LSystemParams configures the L-systems variant.
type LSystemParams struct {
	Iterations       int     // 1-6, rewriting generations
	BranchAngleDeg   float64 // 10-90
	LengthScale      float64 // 0.3-0.95, forward length decay per step
	GrowthRate       float64 // 0.01-4, path traversal speed over the span
	ComplexityFactor float64 // 0.2-1, scales turn angles and the Y-mode skew
	MaxChangeRate    float64 // 0.1-10, slew limit per unit normalized time
	Tilt             float64 // -1..1, linear bias across the span
	Mapping          MappingMode
}

// DefaultLSystemParams returns the stock L-system configuration.
func DefaultLSystemParams() LSystemParams {
	return LSystemParams{
		Iterations:       3,
		BranchAngleDeg:   25,
		LengthScale:      0.7,
		GrowthRate:       1,
		ComplexityFactor: 0.6,
		MaxChangeRate:    4,
		Tilt:             0,
		Mapping:          MapYValue,
	}
}

// ExpandLSystem rewrites the axiom "F" through the given number of
// generations using the production F -> F[+F]F[-F]. Brackets and turn
// symbols are terminal.
func ExpandLSystem(iterations int) string {
	s := "F"
	for i := 0; i < iterations; i++ {
		var b strings.Builder
		b.Grow(len(s) * 8)
		for _, c := range s {
			if c == 'F' {
				b.WriteString("F[+F]F[-F]")
			} else {
				b.WriteRune(c)
			}
		}
		s = b.String()
	}
	return s
}

// NewGenerator builds an L-system generator for one pass, tracing and
// normalizing the turtle path up front.
func (p LSystemParams) NewGenerator(seed uint64) *LSystemGenerator {
	g := &LSystemGenerator{params: p, seed: seed}
	g.Reset()
	return g
}

// Rate folds the L-system parameters into the effective rate multiplier.
func (p LSystemParams) Rate() float64 {
	growth := clamp01((p.GrowthRate - 0.01) / 3.99)
	change := clamp01((p.MaxChangeRate - 0.1) / 9.9)
	iter := clamp01(float64(p.Iterations-1) / 5)
	composite := 0.40*growth + 0.35*change + 0.25*iter
	return 0.6 + composite*(2.0-0.6)
}

type turtleState struct {
	x, y    float64
	heading float64 // radians
	step    float64
}

type pathPoint struct {
	x, y float64
}

// LSystemGenerator walks a cached, normalized turtle path. The cache is
// rebuilt whenever Reset runs; the slew limiter compares consecutive samples
// within one pass only.
type LSystemGenerator struct {
	params LSystemParams
	seed   uint64

	path     []pathPoint
	cacheKey uint64

	prev    float64
	prevT   float64
	hasPrev bool
}

// Reset rebuilds the path cache for the current seed and clears the slew
// limiter state.
func (g *LSystemGenerator) Reset() {
	if g.path == nil || g.cacheKey != g.seed {
		g.path = g.tracePath()
		g.cacheKey = g.seed
	}
	g.prev = 0
	g.prevT = 0
	g.hasPrev = false
}

// tracePath expands the axiom, walks it with a turtle, and normalizes the
// resulting point cloud to [-1, 1] on both axes.
func (g *LSystemGenerator) tracePath() []pathPoint {
	symbols := ExpandLSystem(g.params.Iterations)
	angle := g.params.BranchAngleDeg * g.params.ComplexityFactor * math.Pi / 180

	cur := turtleState{heading: math.Pi / 2, step: 1}
	var stack []turtleState
	points := []pathPoint{{0, 0}}
	seq := noise.NewSequence(g.seed + lsystemSeedBase)

	for _, c := range symbols {
		switch c {
		case 'F':
			cur.x += math.Cos(cur.heading) * cur.step
			cur.y += math.Sin(cur.heading) * cur.step
			cur.step *= g.params.LengthScale
			points = append(points, pathPoint{cur.x, cur.y})
		case '+':
			cur.heading += angle * (1 + 0.1*seq.Next(-1, 1))
		case '-':
			cur.heading -= angle * (1 + 0.1*seq.Next(-1, 1))
		case '[':
			stack = append(stack, cur)
		case ']':
			if len(stack) > 0 {
				cur = stack[len(stack)-1]
				stack = stack[:len(stack)-1]
			}
		}
	}

	minX, maxX := points[0].x, points[0].x
	minY, maxY := points[0].y, points[0].y
	for _, p := range points {
		minX = math.Min(minX, p.x)
		maxX = math.Max(maxX, p.x)
		minY = math.Min(minY, p.y)
		maxY = math.Max(maxY, p.y)
	}
	spanX := maxX - minX
	spanY := maxY - minY
	if spanX < 1e-9 {
		spanX = 0.001
	}
	if spanY < 1e-9 {
		spanY = 0.001
	}
	for i, p := range points {
		points[i] = pathPoint{
			x: (p.x-minX)/spanX*2 - 1,
			y: (p.y-minY)/spanY*2 - 1,
		}
	}
	return points
}

// Base returns the mapped path value at normalized time t.
func (g *LSystemGenerator) Base(t float64) float64 {
	pos := math.Mod(t*g.params.GrowthRate, 1)
	if pos < 0 {
		pos += 1
	}
	idx := int(pos * float64(len(g.path)-1))
	pt := g.path[idx]

	var v float64
	switch g.params.Mapping {
	case MapSymmetryAxis:
		v = 0.7*pt.x + 0.3*pt.y
	default:
		v = pt.y + 0.3*pt.x*g.params.ComplexityFactor
	}

	if g.hasPrev {
		dt := t - g.prevT
		if dt > 0 {
			maxDelta := g.params.MaxChangeRate * dt
			v = clamp(v, g.prev-maxDelta, g.prev+maxDelta)
		} else {
			v = g.prev
		}
	}
	g.prev = v
	g.prevT = t
	g.hasPrev = true

	v += g.params.Tilt * (t - 0.5)
	return clamp(v, -1, 1)
}

// Rate implements Generator.
func (g *LSystemGenerator) Rate() float64 { return g.params.Rate() }
