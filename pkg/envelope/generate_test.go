package envelope

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soliton-audio/modcurve/pkg/generator"
)

// configsForEachAlgorithm returns one representative config per variant.
func configsForEachAlgorithm() map[string]Config {
	out := make(map[string]Config)
	for _, alg := range generator.Algorithms {
		cfg := Default()
		cfg.Algorithm = alg
		cfg.Seed = 424242
		cfg.SpanSeconds = 45
		cfg.PointsPerMinute = 200
		cfg.Complexity = 2
		cfg.Flow = 1
		cfg.Randomness = 1.5
		cfg.PeakIrregularity = 1
		out[alg.String()] = cfg
	}
	return out
}

func TestGenerateDeterministic(t *testing.T) {
	for name, cfg := range configsForEachAlgorithm() {
		a, err := Generate(cfg)
		require.NoError(t, err, name)
		b, err := Generate(cfg)
		require.NoError(t, err, name)
		require.Equal(t, len(a.Points), len(b.Points), name)
		for i := range a.Points {
			require.Equal(t, a.Points[i], b.Points[i],
				"%s: point %d differs between identical runs", name, i)
		}
	}
}

func TestPointCountLaw(t *testing.T) {
	cases := []struct {
		span, ppm float64
		want      int
	}{
		{60, 120, 120},
		{30, 200, 100},
		{30, 60, 30},   // floor(30) == minimum
		{5, 60, 30},    // floor(5) raised to the minimum
		{0.1, 500, 30}, // tiny span still gives the minimum
		{600, 500, 5000},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, PointCount(tc.span, tc.ppm),
			"span=%v ppm=%v", tc.span, tc.ppm)
	}

	cfg := Default()
	cfg.SpanSeconds = 30
	cfg.PointsPerMinute = 200
	res, err := Generate(cfg)
	require.NoError(t, err)
	require.Len(t, res.Points, 100)
}

func TestRangeContainment(t *testing.T) {
	for name, cfg := range configsForEachAlgorithm() {
		cfg.MinValue = 0.2
		cfg.MaxValue = 0.8
		res, err := Generate(cfg)
		require.NoError(t, err, name)
		for i, p := range res.Points {
			require.GreaterOrEqual(t, p.Value, cfg.MinValue, "%s: point %d", name, i)
			require.LessOrEqual(t, p.Value, cfg.MaxValue, "%s: point %d", name, i)
			require.False(t, math.IsNaN(p.Value), "%s: point %d is NaN", name, i)
		}
	}
}

func TestMonotonicTime(t *testing.T) {
	for name, cfg := range configsForEachAlgorithm() {
		cfg.RangeStart = 12.5
		res, err := Generate(cfg)
		require.NoError(t, err, name)
		require.NotEmpty(t, res.Points, name)
		require.Equal(t, cfg.RangeStart, res.Points[0].Time, name)
		last := res.Points[len(res.Points)-1]
		require.InDelta(t, cfg.RangeStart+cfg.SpanSeconds, last.Time, 1e-9, name)
		for i := 1; i < len(res.Points); i++ {
			require.Greater(t, res.Points[i].Time, res.Points[i-1].Time,
				"%s: time not strictly increasing at point %d", name, i)
		}
	}
}

func TestZeroSpanIsNoOp(t *testing.T) {
	cfg := Default()
	cfg.SpanSeconds = 0
	res, err := Generate(cfg)
	require.NoError(t, err)
	require.Empty(t, res.Points)

	cfg = Default()
	cfg.PointsPerMinute = 0
	res, err = Generate(cfg)
	require.NoError(t, err)
	require.Empty(t, res.Points)
}

func TestDensityClamped(t *testing.T) {
	cfg := Default()
	cfg.SpanSeconds = 60
	cfg.PointsPerMinute = 10000
	res, err := Generate(cfg)
	require.NoError(t, err)
	require.Len(t, res.Points, 500, "density above the band clamps to 500/min")

	cfg.PointsPerMinute = 1
	res, err = Generate(cfg)
	require.NoError(t, err)
	require.Len(t, res.Points, 60, "density below the band clamps to 60/min")
}

func TestInvalidConfigRejected(t *testing.T) {
	mutations := map[string]func(*Config){
		"bad algorithm":       func(c *Config) { c.Algorithm = generator.Algorithm(99) },
		"NaN span":            func(c *Config) { c.SpanSeconds = math.NaN() },
		"negative span":       func(c *Config) { c.SpanSeconds = -1 },
		"intensity above 1":   func(c *Config) { c.Intensity = 1.5 },
		"negative complexity": func(c *Config) { c.Complexity = -0.1 },
		"min above max":       func(c *Config) { c.MinValue = 0.9; c.MaxValue = 0.1 },
		"octaves out of range": func(c *Config) {
			c.Algorithm = generator.Fractal
			c.Fractal.Octaves = 11
		},
		"infinite lacunarity": func(c *Config) {
			c.Algorithm = generator.Fractal
			c.Fractal.Lacunarity = math.Inf(1)
		},
		"markov bias out of range": func(c *Config) {
			c.Algorithm = generator.GenerativeWalk
			c.Walk.MarkovBias = 2
		},
	}
	for name, mutate := range mutations {
		cfg := Default()
		mutate(&cfg)
		_, err := Generate(cfg)
		require.ErrorIs(t, err, ErrInvalidConfig, name)
	}
}

func TestInactiveVariantNotValidated(t *testing.T) {
	cfg := Default()
	cfg.Algorithm = generator.SineInterference
	cfg.Fractal.Octaves = 9999 // inactive record, must be ignored
	_, err := Generate(cfg)
	require.NoError(t, err)
}

// TestScenarioFractalReference pins the fractal scenario configuration:
// 100 points over 30 seconds, reproducible bit for bit.
func TestScenarioFractalReference(t *testing.T) {
	cfg := Default()
	cfg.Algorithm = generator.Fractal
	cfg.Seed = 12345
	cfg.SpanSeconds = 30
	cfg.PointsPerMinute = 200
	cfg.Intensity = 0.5
	cfg.Center = 0.5
	cfg.MinValue = 0
	cfg.MaxValue = 1
	cfg.Fractal = generator.FractalParams{
		Type:           generator.FBM,
		Octaves:        9,
		Persistence:    0.4,
		FrequencyScale: 10,
		Lacunarity:     0.7,
		AmplitudeBias:  1.9,
	}

	a, err := Generate(cfg)
	require.NoError(t, err)
	require.Len(t, a.Points, 100)

	b, err := Generate(cfg)
	require.NoError(t, err)
	require.Equal(t, a.Points, b.Points, "reference scenario must be bit-reproducible")

	for _, p := range a.Points {
		require.GreaterOrEqual(t, p.Value, 0.0)
		require.LessOrEqual(t, p.Value, 1.0)
	}
	require.Equal(t, 0.0, a.Points[0].Time)
	require.InDelta(t, 30.0, a.Points[99].Time, 1e-9)
}

func TestGenerateLeavesNoStateBehind(t *testing.T) {
	// A run after a failed run must match a run in a fresh process state.
	cfg := configsForEachAlgorithm()["Generative Walk"]
	clean, err := Generate(cfg)
	require.NoError(t, err)

	bad := cfg
	bad.Intensity = 7
	_, err = Generate(bad)
	require.Error(t, err)

	again, err := Generate(cfg)
	require.NoError(t, err)
	require.Equal(t, clean.Points, again.Points)
}

func TestConcurrentIndependentRuns(t *testing.T) {
	cfg := configsForEachAlgorithm()["Fractal Curves"]
	want, err := Generate(cfg)
	require.NoError(t, err)

	const workers = 8
	type outcome struct {
		res Result
		err error
	}
	results := make(chan outcome, workers)
	for w := 0; w < workers; w++ {
		go func() {
			res, genErr := Generate(cfg)
			results <- outcome{res, genErr}
		}()
	}
	for w := 0; w < workers; w++ {
		out := <-results
		require.NoError(t, out.err)
		require.Equal(t, want.Points, out.res.Points)
	}
}
