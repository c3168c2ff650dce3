package harmonics

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-fxcore/dsp/effects"
	"github.com/cwbudde/algo-fxcore/internal/testutil"
)

const (
	testRate = 48000.0
	testSize = 4096
)

func TestAnalyzePureSine(t *testing.T) {
	sig := testutil.CoherentSine(16, 0.5, testSize)
	cfg := Config{SampleRate: testRate, FundamentalHz: 16 * testRate / testSize}

	p, err := Analyze(sig, cfg)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if math.Abs(p.FundamentalLevel-0.5) > 1e-9 {
		t.Fatalf("fundamental level = %v, want 0.5", p.FundamentalLevel)
	}

	if math.Abs(p.FundamentalHz-cfg.FundamentalHz) > 1e-9 {
		t.Fatalf("fundamental = %v Hz, want %v", p.FundamentalHz, cfg.FundamentalHz)
	}

	if p.THD > 1e-9 || math.Abs(p.DC) > 1e-12 {
		t.Fatalf("THD = %v, DC = %v, want clean", p.THD, p.DC)
	}

	if len(p.Harmonics) != defaultMaxHarmonics {
		t.Fatalf("harmonics = %d, want %d", len(p.Harmonics), defaultMaxHarmonics)
	}
}

func TestAnalyzeKnownMixture(t *testing.T) {
	const cycles = 8

	sig := make([]float64, testSize)
	for i := range sig {
		ph := 2 * math.Pi * cycles * float64(i) / testSize
		sig[i] = math.Sin(ph) + 0.05*math.Sin(2*ph) + 0.1*math.Sin(3*ph) + 0.25
	}

	p, err := Analyze(sig, Config{SampleRate: testRate, FundamentalHz: cycles * testRate / testSize, MaxHarmonics: 4})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"H2", p.Harmonic(2), 0.05},
		{"H3", p.Harmonic(3), 0.1},
		{"H4", p.Harmonic(4), 0},
		{"even energy", p.EvenEnergy, 0.0025},
		{"odd energy", p.OddEnergy, 0.01},
		{"THD", p.THD, math.Sqrt(0.0125)},
		{"DC", p.DC, 0.25},
	}

	for _, tt := range tests {
		if math.Abs(tt.got-tt.want) > 1e-9 {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}

	if len(p.Harmonics) != 4 {
		t.Fatalf("harmonics = %d, want 4", len(p.Harmonics))
	}

	if p.Harmonic(1) != 0 || p.Harmonic(9) != 0 {
		t.Fatal("out-of-range harmonic must be 0")
	}

	if want := 20 * math.Log10(math.Sqrt(0.0125)); math.Abs(p.THDdB()-want) > 1e-6 {
		t.Fatalf("THDdB = %v, want %v", p.THDdB(), want)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	good := Config{SampleRate: testRate, FundamentalHz: 1000}

	tests := []struct {
		name   string
		signal []float64
		cfg    Config
		want   error
	}{
		{"empty", nil, good, ErrEmptySignal},
		{"not power of two", make([]float64, 1000), good, ErrNotPowerOfTwo},
		{"zero rate", make([]float64, 1024), Config{FundamentalHz: 1000}, ErrInvalidConfig},
		{"NaN fundamental", make([]float64, 1024), Config{SampleRate: testRate, FundamentalHz: math.NaN()}, ErrInvalidConfig},
		{"above nyquist", make([]float64, 1024), Config{SampleRate: testRate, FundamentalHz: 30000}, ErrInvalidConfig},
		{"below first bin", make([]float64, 1024), Config{SampleRate: testRate, FundamentalHz: 1}, ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Analyze(tt.signal, tt.cfg)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestAnalyzeSilence(t *testing.T) {
	p, err := Analyze(make([]float64, 256), Config{SampleRate: testRate, FundamentalHz: 1000})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if p.FundamentalLevel != 0 || p.THD != 0 || p.Harmonics != nil {
		t.Fatalf("silence profile = %+v", p)
	}

	if !math.IsInf(p.THDdB(), -1) {
		t.Fatalf("THDdB = %v, want -Inf", p.THDdB())
	}
}

func TestProfileStagePassthrough(t *testing.T) {
	p, err := ProfileStage(func(dst, src []float64) { copy(dst, src) },
		Config{SampleRate: testRate, FundamentalHz: 1000}, 0.8, testSize)
	if err != nil {
		t.Fatalf("ProfileStage() error = %v", err)
	}

	if p.THD > 1e-9 || math.Abs(p.FundamentalLevel-0.8) > 1e-9 {
		t.Fatalf("passthrough profile = %+v", p)
	}

	// 1000 Hz snaps to 85 periods in 4096 samples.
	if want := 85 * testRate / testSize; math.Abs(p.FundamentalHz-want) > 1e-9 {
		t.Fatalf("fundamental = %v, want %v", p.FundamentalHz, want)
	}
}

func TestProfileStageOverdriveIsOdd(t *testing.T) {
	for _, mix := range []float64{0.5, 0.62, 0.8} {
		od, err := effects.NewOverdrive(effects.WithOverdriveMix(mix))
		if err != nil {
			t.Fatalf("NewOverdrive() error = %v", err)
		}

		p, err := ProfileStage(od.Process, Config{SampleRate: testRate, FundamentalHz: 375}, 1, testSize)
		if err != nil {
			t.Fatalf("ProfileStage() error = %v", err)
		}

		if p.OddEnergy < 1e-4 {
			t.Fatalf("mix=%v: odd energy = %v, want audible", mix, p.OddEnergy)
		}

		if p.EvenEnergy > 1e-20 {
			t.Fatalf("mix=%v: even energy = %v, want none", mix, p.EvenEnergy)
		}
	}
}

func TestProfileStageTubeBlockAddsEvenHarmonics(t *testing.T) {
	tube, err := effects.NewTube(testSize, effects.WithTubeParams(effects.TubeParams{
		Gain: 2, WorkPoint: -0.2, Character: 8, Mix: 1,
	}))
	if err != nil {
		t.Fatalf("NewTube() error = %v", err)
	}

	p, err := ProfileStage(tube.ProcessBlockAuto, Config{SampleRate: testRate, FundamentalHz: 375}, 0.9, testSize)
	if err != nil {
		t.Fatalf("ProfileStage() error = %v", err)
	}

	if p.EvenEnergy < 1e-3 {
		t.Fatalf("even energy = %v, want asymmetric distortion", p.EvenEnergy)
	}

	if p.Harmonic(2) <= p.Harmonic(4) {
		t.Fatalf("H2 = %v should dominate H4 = %v", p.Harmonic(2), p.Harmonic(4))
	}
}

func TestProfileStageErrors(t *testing.T) {
	noop := func(dst, src []float64) {}

	if _, err := ProfileStage(noop, Config{SampleRate: testRate, FundamentalHz: 1000}, 1, 1000); !errors.Is(err, ErrNotPowerOfTwo) {
		t.Fatalf("error = %v, want ErrNotPowerOfTwo", err)
	}

	if _, err := ProfileStage(noop, Config{SampleRate: testRate, FundamentalHz: 1}, 1, 1024); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("error = %v, want ErrInvalidConfig", err)
	}

	if _, err := ProfileStage(noop, Config{FundamentalHz: 1}, 1, 1024); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("error = %v, want ErrInvalidConfig", err)
	}
}
