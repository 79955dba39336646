package generator

import (
	"math"
	"testing"
)

// sampleGrid walks a generator over an evenly spaced grid and returns the
// outputs.
func sampleGrid(g Generator, steps int) []float64 {
	out := make([]float64, steps)
	for i := 0; i < steps; i++ {
		t := float64(i) / float64(steps-1)
		out[i] = g.Base(t)
	}
	return out
}

func TestAlgorithmString(t *testing.T) {
	cases := []struct {
		alg  Algorithm
		want string
	}{
		{Fractal, "Fractal Curves"},
		{SineInterference, "Sine Wave Interference"},
		{GenerativeWalk, "Generative Walk"},
		{LSystem, "L-Systems"},
	}
	for _, tc := range cases {
		if got := tc.alg.String(); got != tc.want {
			t.Errorf("String(%d): got %q, want %q", int(tc.alg), got, tc.want)
		}
	}
	if Algorithm(99).Valid() {
		t.Error("Algorithm(99) should not be valid")
	}
}

func TestBaseStaysInUnitRange(t *testing.T) {
	cases := []struct {
		name string
		gen  Generator
	}{
		{"fractal defaults", DefaultFractalParams().NewGenerator(1)},
		{"fractal extremes", FractalParams{
			Type: Ridged, Octaves: 10, Persistence: 1.0,
			FrequencyScale: 20, Lacunarity: 5, AmplitudeBias: 2.5,
		}.NewGenerator(2)},
		{"fractal turbulence", FractalParams{
			Type: Turbulence, Octaves: 10, Persistence: 1.0,
			FrequencyScale: 10, Lacunarity: 5, AmplitudeBias: 0.01,
		}.NewGenerator(3)},
		{"sine defaults", DefaultSineParams().NewGenerator(4)},
		{"sine extremes", SineParams{
			WaveCount: 30, FrequencySpread: 10, AmplitudeVariation: 2,
			PhaseDrift: 30, BeatFrequency: 10,
		}.NewGenerator(5)},
		{"walk defaults", DefaultWalkParams().NewGenerator(6)},
		{"walk extremes", WalkParams{
			SegmentLength: 0.01, SmoothingFactor: 50, VariationScale: 0.05,
			Momentum: 0.1, LevyProbability: 0.1, MarkovBias: 1,
		}.NewGenerator(7)},
		{"lsystem defaults", DefaultLSystemParams().NewGenerator(8)},
		{"lsystem extremes", LSystemParams{
			Iterations: 6, BranchAngleDeg: 90, LengthScale: 0.95,
			GrowthRate: 4, ComplexityFactor: 1, MaxChangeRate: 10,
			Tilt: 1, Mapping: MapSymmetryAxis,
		}.NewGenerator(9)},
	}
	for _, tc := range cases {
		for i, v := range sampleGrid(tc.gen, 200) {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("%s: non-finite value at sample %d", tc.name, i)
			}
			if v < -1 || v > 1 {
				t.Errorf("%s: sample %d = %f outside [-1,1]", tc.name, i, v)
			}
		}
	}
}

func TestBaseDeterministic(t *testing.T) {
	builders := []struct {
		name string
		make func() Generator
	}{
		{"fractal", func() Generator { return DefaultFractalParams().NewGenerator(42) }},
		{"sine", func() Generator { return DefaultSineParams().NewGenerator(42) }},
		{"walk", func() Generator { return DefaultWalkParams().NewGenerator(42) }},
		{"lsystem", func() Generator { return DefaultLSystemParams().NewGenerator(42) }},
	}
	for _, b := range builders {
		a := sampleGrid(b.make(), 120)
		c := sampleGrid(b.make(), 120)
		for i := range a {
			if a[i] != c[i] {
				t.Fatalf("%s: sample %d differs between identical runs: %v vs %v", b.name, i, a[i], c[i])
			}
		}
	}
}

func TestResetRestoresInitialState(t *testing.T) {
	gen := DefaultWalkParams().NewGenerator(9)
	first := sampleGrid(gen, 80)
	gen.Reset()
	second := sampleGrid(gen, 80)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("walk sample %d differs after Reset: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestRateMultiplierBands(t *testing.T) {
	cases := []struct {
		name   string
		rate   float64
		lo, hi float64
	}{
		{"fractal min", FractalParams{Octaves: 0, Persistence: 0, FrequencyScale: 1, Lacunarity: 0.5}.Rate(), 0.3, 2.0},
		{"fractal max", FractalParams{Octaves: 10, Persistence: 1, FrequencyScale: 20, Lacunarity: 5}.Rate(), 0.3, 2.0},
		{"sine min", SineParams{WaveCount: 1, FrequencySpread: 0.5, BeatFrequency: 0.1, PhaseDrift: 0.1}.Rate(), 0.4, 2.0},
		{"sine max", SineParams{WaveCount: 30, FrequencySpread: 10, BeatFrequency: 10, PhaseDrift: 30}.Rate(), 0.4, 2.0},
		{"walk min", WalkParams{SegmentLength: 0.3, VariationScale: 0.01, SmoothingFactor: 0.01}.Rate(), 0.5, 2.0},
		{"walk max", WalkParams{SegmentLength: 0.01, VariationScale: 0.05, SmoothingFactor: 50}.Rate(), 0.5, 2.0},
		{"lsystem min", LSystemParams{GrowthRate: 0.01, MaxChangeRate: 0.1, Iterations: 1}.Rate(), 0.6, 2.0},
		{"lsystem max", LSystemParams{GrowthRate: 4, MaxChangeRate: 10, Iterations: 6}.Rate(), 0.6, 2.0},
	}
	for _, tc := range cases {
		if tc.rate < tc.lo-1e-9 || tc.rate > tc.hi+1e-9 {
			t.Errorf("%s: rate %f outside band [%f, %f]", tc.name, tc.rate, tc.lo, tc.hi)
		}
	}
	// Extremes should actually span the band.
	if got := (FractalParams{Octaves: 0, Persistence: 0, FrequencyScale: 1, Lacunarity: 0.5}).Rate(); math.Abs(got-0.3) > 1e-9 {
		t.Errorf("fractal floor: got %f, want 0.3", got)
	}
	if got := (FractalParams{Octaves: 10, Persistence: 1, FrequencyScale: 20, Lacunarity: 5}).Rate(); math.Abs(got-2.0) > 1e-9 {
		t.Errorf("fractal ceiling: got %f, want 2.0", got)
	}
}

func TestFractalZeroOctaves(t *testing.T) {
	gen := FractalParams{Type: FBM, Octaves: 0, Persistence: 0.5, FrequencyScale: 4, Lacunarity: 2, AmplitudeBias: 1}.NewGenerator(1)
	for _, v := range sampleGrid(gen, 50) {
		if v != 0 {
			t.Fatalf("zero octaves should produce flat zero, got %f", v)
		}
	}
}

func TestSineSingleWaveIsCleanSinusoid(t *testing.T) {
	p := DefaultSineParams()
	p.WaveCount = 1
	p.AmplitudeVariation = 0.8
	gen := p.NewGenerator(123)

	// With one wave the amplitude modulation normalizes out, leaving
	// sin(2*pi*t + phase). Recover the phase from two quadrature samples:
	// Base(0) = sin(phase), Base(0.25) = cos(phase).
	steps := 256
	phase := math.Atan2(gen.Base(0), gen.Base(0.25))
	gen.Reset()
	for i := 0; i < steps; i++ {
		tn := float64(i) / float64(steps-1)
		want := math.Sin(2*math.Pi*tn + phase)
		got := gen.Base(tn)
		if math.Abs(got-want) > 1e-6 {
			t.Fatalf("sample %d: got %f, want clean sinusoid value %f", i, got, want)
		}
	}
}

func TestWalkZeroMomentumIsGridIndependent(t *testing.T) {
	p := DefaultWalkParams()
	p.Momentum = 0

	dense := p.NewGenerator(77)
	sparse := p.NewGenerator(77)

	steps := 200
	var denseVals []float64
	for i := 0; i < steps; i++ {
		tn := float64(i) / float64(steps-1)
		v := dense.Base(tn)
		if i%2 == 0 {
			denseVals = append(denseVals, v)
		}
	}
	for i := 0; i < steps; i += 2 {
		tn := float64(i) / float64(steps-1)
		v := sparse.Base(tn)
		if v != denseVals[i/2] {
			t.Fatalf("t=%f: dense grid %v vs sparse grid %v; zero momentum must reduce to pure interpolation", tn, denseVals[i/2], v)
		}
	}
}

func TestWalkMomentumCarriesVelocity(t *testing.T) {
	base := DefaultWalkParams()
	base.Momentum = 0
	with := DefaultWalkParams()
	with.Momentum = 0.1

	a := sampleGrid(base.NewGenerator(5), 150)
	b := sampleGrid(with.NewGenerator(5), 150)
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("momentum had no effect on the walk output")
	}
}

func TestExpandLSystem(t *testing.T) {
	if got := ExpandLSystem(0); got != "F" {
		t.Errorf("iteration 0: got %q, want F", got)
	}
	if got := ExpandLSystem(1); got != "F[+F]F[-F]" {
		t.Errorf("iteration 1: got %q, want F[+F]F[-F]", got)
	}
	// Each generation replaces every F with a 4-F production.
	two := ExpandLSystem(2)
	count := 0
	for _, c := range two {
		if c == 'F' {
			count++
		}
	}
	if count != 16 {
		t.Errorf("iteration 2: got %d F symbols, want 16", count)
	}
}

func TestLSystemPathNonDegenerate(t *testing.T) {
	p := DefaultLSystemParams()
	p.Iterations = 1
	gen := p.NewGenerator(11)

	var minV, maxV float64 = 1, -1
	for _, v := range sampleGrid(gen, 300) {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	if maxV-minV < 1e-6 {
		t.Errorf("single-iteration path collapsed to a constant: span %g", maxV-minV)
	}
}

func TestLSystemChangeRateLimited(t *testing.T) {
	p := DefaultLSystemParams()
	p.MaxChangeRate = 0.5
	p.Tilt = 0
	gen := p.NewGenerator(21)

	steps := 400
	dt := 1.0 / float64(steps-1)
	prev := gen.Base(0)
	for i := 1; i < steps; i++ {
		tn := float64(i) * dt
		v := gen.Base(tn)
		if math.Abs(v-prev) > p.MaxChangeRate*dt+1e-9 {
			t.Fatalf("sample %d: change %g exceeds limit %g", i, math.Abs(v-prev), p.MaxChangeRate*dt)
		}
		prev = v
	}
}
