// Package harmonics measures the harmonic profile a distortion stage adds to
// a sine.
//
// Analysis assumes coherent sampling: the signal length is a power of two
// and holds a whole number of fundamental periods, so every harmonic lands
// on a single FFT bin and no window is applied. ProfileStage generates such
// a signal for you.
package harmonics

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	vecmath "github.com/cwbudde/algo-vecmath"
)

const defaultMaxHarmonics = 10

var (
	// ErrEmptySignal is returned for a zero-length signal.
	ErrEmptySignal = errors.New("harmonics: empty signal")
	// ErrNotPowerOfTwo is returned when the signal length is not a power of two.
	ErrNotPowerOfTwo = errors.New("harmonics: signal length must be a power of two")
	// ErrInvalidConfig is returned for a non-positive sample rate or
	// fundamental, or a fundamental that does not fit below Nyquist.
	ErrInvalidConfig = errors.New("harmonics: invalid config")
)

// Config holds analysis parameters.
type Config struct {
	SampleRate    float64
	FundamentalHz float64
	// MaxHarmonics limits the number of overtones (H2, H3, ...). Zero means 10.
	MaxHarmonics int
}

// Profile is the result of a harmonic analysis. Levels are peak amplitudes.
type Profile struct {
	FundamentalHz    float64
	FundamentalLevel float64
	DC               float64
	// Harmonics holds overtone amplitudes relative to the fundamental;
	// Harmonics[0] is H2.
	Harmonics []float64
	// OddEnergy and EvenEnergy sum the squared relative amplitudes of odd
	// (H3, H5, ...) and even (H2, H4, ...) overtones.
	OddEnergy  float64
	EvenEnergy float64
	// THD is sqrt(OddEnergy + EvenEnergy).
	THD float64
}

// THDdB returns THD in dB, or -Inf for a clean signal.
func (p Profile) THDdB() float64 {
	if p.THD <= 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(p.THD)
}

// Harmonic returns the relative amplitude of harmonic k (k >= 2), or 0 if it
// was not measured.
func (p Profile) Harmonic(k int) float64 {
	i := k - 2
	if i < 0 || i >= len(p.Harmonics) {
		return 0
	}

	return p.Harmonics[i]
}

// Analyze computes the harmonic profile of signal.
func Analyze(signal []float64, cfg Config) (Profile, error) {
	n := len(signal)
	if n == 0 {
		return Profile{}, ErrEmptySignal
	}

	if n&(n-1) != 0 {
		return Profile{}, fmt.Errorf("%w: %d", ErrNotPowerOfTwo, n)
	}

	err := validateConfig(cfg)
	if err != nil {
		return Profile{}, err
	}

	binHz := cfg.SampleRate / float64(n)
	nyquistBin := n / 2

	fundamentalBin := int(math.Round(cfg.FundamentalHz / binHz))
	if fundamentalBin < 1 || fundamentalBin >= nyquistBin {
		return Profile{}, fmt.Errorf("%w: fundamental %g Hz outside (0, %g) Hz at %d points",
			ErrInvalidConfig, cfg.FundamentalHz, cfg.SampleRate/2, n)
	}

	mag, err := magnitudeSpectrum(signal)
	if err != nil {
		return Profile{}, err
	}

	scale := 2 / float64(n)
	fundamental := mag[fundamentalBin] * scale

	p := Profile{
		FundamentalHz:    float64(fundamentalBin) * binHz,
		FundamentalLevel: fundamental,
		DC:               mag[0] / float64(n),
	}

	if fundamental <= 0 {
		return p, nil
	}

	maxHarmonics := cfg.MaxHarmonics
	if maxHarmonics <= 0 {
		maxHarmonics = defaultMaxHarmonics
	}

	p.Harmonics = make([]float64, 0, maxHarmonics)

	for k := 2; len(p.Harmonics) < maxHarmonics; k++ {
		bin := k * fundamentalBin
		if bin >= nyquistBin {
			break
		}

		rel := mag[bin] * scale / fundamental
		p.Harmonics = append(p.Harmonics, rel)

		if k%2 == 0 {
			p.EvenEnergy += rel * rel
		} else {
			p.OddEnergy += rel * rel
		}
	}

	p.THD = math.Sqrt(p.OddEnergy + p.EvenEnergy)

	return p, nil
}

// ProfileStage renders a coherent sine of the given amplitude through
// process and analyzes the result. The fundamental is moved to the nearest
// frequency with a whole number of periods in size samples, which must be a
// power of two.
func ProfileStage(process func(dst, src []float64), cfg Config, amplitude float64, size int) (Profile, error) {
	if size <= 0 || size&(size-1) != 0 {
		return Profile{}, fmt.Errorf("%w: %d", ErrNotPowerOfTwo, size)
	}

	err := validateConfig(cfg)
	if err != nil {
		return Profile{}, err
	}

	cycles := int(math.Round(cfg.FundamentalHz * float64(size) / cfg.SampleRate))
	if cycles < 1 {
		return Profile{}, fmt.Errorf("%w: fundamental %g Hz below one period in %d points",
			ErrInvalidConfig, cfg.FundamentalHz, size)
	}

	src := make([]float64, size)
	step := 2 * math.Pi * float64(cycles) / float64(size)

	for i := range src {
		src[i] = amplitude * math.Sin(step*float64(i))
	}

	dst := make([]float64, size)
	process(dst, src)

	cfg.FundamentalHz = float64(cycles) * cfg.SampleRate / float64(size)

	return Analyze(dst, cfg)
}

func validateConfig(cfg Config) error {
	if !(cfg.SampleRate > 0) || math.IsInf(cfg.SampleRate, 0) {
		return fmt.Errorf("%w: sample rate must be positive and finite: %f", ErrInvalidConfig, cfg.SampleRate)
	}

	if !(cfg.FundamentalHz > 0) || math.IsInf(cfg.FundamentalHz, 0) {
		return fmt.Errorf("%w: fundamental must be positive and finite: %f", ErrInvalidConfig, cfg.FundamentalHz)
	}

	return nil
}

// magnitudeSpectrum returns |X[k]| for k in [0, n/2].
func magnitudeSpectrum(signal []float64) ([]float64, error) {
	n := len(signal)

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("harmonics: fft plan: %w", err)
	}

	in := make([]complex128, n)
	for i, v := range signal {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, n)

	err = plan.Forward(out, in)
	if err != nil {
		return nil, fmt.Errorf("harmonics: fft: %w", err)
	}

	bins := n/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)

	for i := range bins {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	return mag, nil
}
