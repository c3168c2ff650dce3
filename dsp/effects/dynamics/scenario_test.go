//go:build !fastmath

package dynamics

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-fxcore/dsp/core"
	"github.com/cwbudde/algo-fxcore/internal/testutil"
)

// referenceRMS evaluates the RMS compressor directly from its defining
// formulas, starting from a zero state.
func referenceRMS(in []float64, sampleRate, thresholdDB, ratio, attack, release, kneeDB float64) []float64 {
	alphaA := math.Exp(-math.Log(9) / (sampleRate * attack))
	alphaR := math.Exp(-math.Log(9) / (sampleRate * release))

	out := make([]float64, len(in))
	prev := 0.0

	for i, x := range in {
		xdB := math.Max(20*math.Log10(math.Abs(x)), -96)

		var gsc float64

		switch {
		case xdB > thresholdDB+kneeDB/2:
			gsc = thresholdDB + (xdB-thresholdDB)/ratio
		case xdB > thresholdDB-kneeDB/2:
			gsc = xdB + ((1/ratio-1)*math.Pow(xdB-thresholdDB+kneeDB/2, 2))/(2*kneeDB)
		default:
			gsc = xdB
		}

		gc := gsc - xdB

		alpha := alphaR
		if gc < prev {
			alpha = alphaA
		}

		gs := -math.Sqrt((1-alpha)*gc*gc + alpha*prev*prev)
		out[i] = math.Pow(10, gs/20) * x
		prev = gs
	}

	return out
}

// TestRMSCompressorTwoChannelRamp runs the same ramp through one RMS
// compressor per channel with a reset in between, changing threshold and
// ratio for the second channel.
func TestRMSCompressorTwoChannelRamp(t *testing.T) {
	const sampleRate = 48000.0

	channels := [][]float64{
		testutil.Ramp(0.2, 6, 12),
		testutil.Ramp(0.2, 6, 12),
	}

	params := []struct{ threshold, ratio float64 }{
		{-6, 3},
		{-10, 4},
	}

	c, err := NewCompressor(sampleRate,
		WithTopology(TopologyRMS),
		WithThreshold(-6),
		WithRatio(3),
		WithAttack(0.02),
		WithRelease(0.08),
		WithKnee(6),
	)
	if err != nil {
		t.Fatalf("NewCompressor() error = %v", err)
	}

	for ch, in := range channels {
		if err := c.UpdateParameters(params[ch].threshold, params[ch].ratio); err != nil {
			t.Fatalf("channel %d: UpdateParameters() error = %v", ch, err)
		}

		want := referenceRMS(in, sampleRate, params[ch].threshold, params[ch].ratio, 0.02, 0.08, 6)

		got := make([]float64, len(in))
		c.Process(got, in)

		testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)

		if got[0] != 0 || got[6] != 0 {
			t.Fatalf("channel %d: zero input must give zero output: %v", ch, got)
		}

		c.Reset()
	}
}

// TestFeedForwardAgainstReference checks the linear smoothing law on a loud
// burst followed by silence, exercising both attack and release.
func TestFeedForwardAgainstReference(t *testing.T) {
	const sampleRate = 44100.0

	in := append(testutil.DC(0.9, 200), testutil.DC(0.01, 200)...)

	c, _ := NewCompressor(sampleRate, WithThreshold(-20), WithRatio(5), WithKnee(4), WithAttack(0.001), WithRelease(0.01))

	alphaA := math.Exp(-math.Log(9) / (sampleRate * 0.001))
	alphaR := math.Exp(-math.Log(9) / (sampleRate * 0.01))
	prev := 0.0

	for i, x := range in {
		xdB := math.Max(20*math.Log10(math.Abs(x)), -96)
		gc := GainChange(xdB, -20, 5, 4)

		alpha := alphaR
		if gc < prev {
			alpha = alphaA
		}

		prev = (1-alpha)*gc + alpha*prev
		want := math.Pow(10, prev/20) * x

		if got := c.ProcessSample(x); math.Abs(got-want) > 1e-12 {
			t.Fatalf("sample %d: got %v, want %v", i, got, want)
		}
	}
}

func TestLevelDBMatchesCoreFloor(t *testing.T) {
	for _, x := range []float64{0, 1e-6, -1e-5, 0.25, -0.5, 1, 2} {
		if got, want := LevelDB(x), core.LinearToDBFloor(x, LevelFloorDB); got != want {
			t.Fatalf("LevelDB(%v) = %v, want %v", x, got, want)
		}
	}
}
