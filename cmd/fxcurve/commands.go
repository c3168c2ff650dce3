package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	vecmath "github.com/cwbudde/algo-vecmath"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-fxcore/dsp/core"
	"github.com/cwbudde/algo-fxcore/dsp/effectchain"
	"github.com/cwbudde/algo-fxcore/dsp/effects"
	"github.com/cwbudde/algo-fxcore/dsp/effects/dynamics"
	"github.com/cwbudde/algo-fxcore/dsp/param"
	"github.com/cwbudde/algo-fxcore/measure/harmonics"
)

// CurveFlags are the static compressor parameters.
type CurveFlags struct {
	Threshold float64 `default:"-6" help:"Threshold in dBFS"`
	Ratio     float64 `default:"3" help:"Compression ratio"`
	Knee      float64 `default:"6" help:"Knee width in dB"`
}

func (f CurveFlags) options() []dynamics.CompressorOption {
	return []dynamics.CompressorOption{
		dynamics.WithThreshold(f.Threshold),
		dynamics.WithRatio(f.Ratio),
		dynamics.WithKnee(f.Knee),
	}
}

// GainCmd prints the static characteristic.
type GainCmd struct {
	CurveFlags

	From float64 `default:"-60" help:"First input level in dB"`
	To   float64 `default:"0" help:"Last input level in dB"`
	Step float64 `default:"6" help:"Input level step in dB"`
}

func (c *GainCmd) Run(g *Globals) error {
	if !(c.Step > 0) || c.To < c.From {
		return fmt.Errorf("gain: need step > 0 and to >= from: step %g, from %g, to %g", c.Step, c.From, c.To)
	}

	comp, err := dynamics.NewCompressor(48000, c.options()...)
	if err != nil {
		return err
	}

	g.log.WithFields(logrus.Fields{
		"threshold": c.Threshold,
		"ratio":     c.Ratio,
		"knee":      c.Knee,
	}).Debug("rendering static curve")

	var rows [][]string

	for xdB := c.From; xdB <= c.To+1e-9; xdB += c.Step {
		out := comp.CurveDB(xdB)
		rows = append(rows, []string{ff(xdB, 2), ff(out, 2), ff(out-xdB, 2)})
	}

	return renderTable(g.out, "Static characteristic",
		[]string{"in dB", "out dB", "gain dB"}, rows,
		fmt.Sprintf("threshold %g dB, ratio %g:1, knee %g dB", c.Threshold, c.Ratio, c.Knee))
}

// CompressCmd traces a test signal through the compressor.
type CompressCmd struct {
	CurveFlags

	Topology string  `default:"feedforward" enum:"feedforward,feedback,rms" help:"Detector topology"`
	Attack   float64 `default:"0.02" help:"Attack time constant in seconds"`
	Release  float64 `default:"0.08" help:"Release time constant in seconds"`
	Rate     float64 `default:"48000" help:"Sample rate in Hz"`
	Signal   string  `default:"ramp" enum:"ramp,sine,step" help:"Test signal"`
	Samples  int     `default:"12" help:"Number of samples"`
}

func (c *CompressCmd) Run(g *Globals) error {
	topology, err := dynamics.ParseTopology(c.Topology)
	if err != nil {
		return err
	}

	opts := append(c.options(),
		dynamics.WithTopology(topology),
		dynamics.WithAttack(c.Attack),
		dynamics.WithRelease(c.Release),
	)

	comp, err := dynamics.NewCompressor(c.Rate, opts...)
	if err != nil {
		return err
	}

	in := testSignal(c.Signal, c.Samples, c.Rate)

	g.log.WithFields(logrus.Fields{
		"topology": topology,
		"signal":   c.Signal,
		"samples":  len(in),
	}).Debug("tracing compressor")

	rows := make([][]string, 0, len(in))

	for i, x := range in {
		y := comp.ProcessSample(x)
		rows = append(rows, []string{
			strconv.Itoa(i), ff(x, 4), ff(y, 6), ff(comp.GainReductionDB(), 4),
		})
	}

	return renderTable(g.out, "Compressor trace ("+topology.String()+")",
		[]string{"n", "in", "out", "gain dB"}, rows)
}

func testSignal(kind string, n int, rate float64) []float64 {
	if n < 0 {
		n = 0
	}

	out := make([]float64, n)

	for i := range out {
		switch kind {
		case "sine":
			out[i] = 0.9 * math.Sin(2*math.Pi*1000*float64(i)/rate)
		case "step":
			if i >= n/4 {
				out[i] = 1
			}
		default:
			out[i] = 0.2 * float64(i%6)
		}
	}

	return out
}

// OverdriveCmd prints the overdrive transfer curve.
type OverdriveCmd struct {
	Mix    float64 `default:"0.5" help:"Overdrive mix in [0, 1]"`
	Points int     `default:"9" help:"Number of input points in [-1, 1]"`
}

func (c *OverdriveCmd) Run(g *Globals) error {
	od, err := effects.NewOverdrive(effects.WithOverdriveMix(c.Mix))
	if err != nil {
		return err
	}

	in := linspace(-1, 1, c.Points)
	out := make([]float64, len(in))
	od.Process(out, in)

	rows := make([][]string, len(in))
	for i := range in {
		rows[i] = []string{ff(in[i], 3), ff(out[i], 6)}
	}

	return renderTable(g.out, "Overdrive transfer", []string{"in", "out"}, rows,
		fmt.Sprintf("mix %g", c.Mix))
}

// TubeCmd prints the tube transfer curve.
type TubeCmd struct {
	Gain      float64 `default:"1" help:"Input gain"`
	WorkPoint float64 `default:"-0.2" name:"workpoint" help:"Work point Q"`
	Character float64 `default:"8" help:"Distortion character"`
	Mix       float64 `default:"1" help:"Mix in (0, 1]"`
	Points    int     `default:"9" help:"Number of input points in [-1, 1]"`
}

func (c *TubeCmd) params() effects.TubeParams {
	return effects.TubeParams{Gain: c.Gain, WorkPoint: c.WorkPoint, Character: c.Character, Mix: c.Mix}
}

func (c *TubeCmd) Run(g *Globals) error {
	in := linspace(-1, 1, c.Points)

	tube, err := effects.NewTube(len(in), effects.WithTubeParams(c.params()))
	if err != nil {
		return err
	}

	perSample := make([]float64, len(in))
	tube.Process(perSample, in)

	block := make([]float64, len(in))
	tube.ProcessBlockAuto(block, in)

	rows := make([][]string, len(in))
	for i := range in {
		rows[i] = []string{ff(in[i], 3), ff(perSample[i], 6), ff(block[i], 6)}
	}

	return renderTable(g.out, "Tube transfer", []string{"in", "per-sample", "block"}, rows,
		fmt.Sprintf("block peak %g", vecmath.MaxAbs(in)))
}

// HarmonicsCmd measures the harmonic profile of a stage.
type HarmonicsCmd struct {
	Stage       string  `default:"overdrive" enum:"overdrive,tube,tube-block,compressor" help:"Stage to measure"`
	Mix         float64 `default:"0.7" help:"Mix of overdrive or tube stages"`
	Amplitude   float64 `default:"0.9" help:"Test sine amplitude"`
	Fundamental float64 `default:"1000" help:"Test sine frequency in Hz"`
	Rate        float64 `default:"48000" help:"Sample rate in Hz"`
	Size        int     `default:"4096" help:"Analysis length, a power of two"`
	Count       int     `default:"8" name:"harmonics" help:"Number of overtones to report"`
}

func (c *HarmonicsCmd) stage() (func(dst, src []float64), error) {
	switch c.Stage {
	case "tube", "tube-block":
		p := effects.DefaultTubeParams()
		p.Mix = c.Mix

		tube, err := effects.NewTube(c.Size, effects.WithTubeParams(p))
		if err != nil {
			return nil, err
		}

		if c.Stage == "tube" {
			return tube.Process, nil
		}

		return tube.ProcessBlockAuto, nil
	case "compressor":
		comp, err := dynamics.NewCompressor(c.Rate)
		if err != nil {
			return nil, err
		}

		return comp.Process, nil
	default:
		od, err := effects.NewOverdrive(effects.WithOverdriveMix(c.Mix))
		if err != nil {
			return nil, err
		}

		return od.Process, nil
	}
}

func (c *HarmonicsCmd) Run(g *Globals) error {
	process, err := c.stage()
	if err != nil {
		return err
	}

	cfg := harmonics.Config{SampleRate: c.Rate, FundamentalHz: c.Fundamental, MaxHarmonics: c.Count}

	p, err := harmonics.ProfileStage(process, cfg, c.Amplitude, c.Size)
	if err != nil {
		return err
	}

	g.log.WithFields(logrus.Fields{
		"stage":       c.Stage,
		"fundamental": p.FundamentalHz,
	}).Debug("harmonic profile measured")

	rows := make([][]string, len(p.Harmonics))
	for i, h := range p.Harmonics {
		rows[i] = []string{"H" + strconv.Itoa(i+2), ff(h, 6), ff(core.LinearToDBFloor(h, -200), 1)}
	}

	return renderTable(g.out, "Harmonic profile ("+c.Stage+")", []string{"harmonic", "relative", "dB"}, rows,
		fmt.Sprintf("fundamental %.2f Hz at %.4f", p.FundamentalHz, p.FundamentalLevel),
		fmt.Sprintf("odd energy %.3e, even energy %.3e, THD %.2f dB", p.OddEnergy, p.EvenEnergy, p.THDdB()))
}

// ParamsCmd lists every stage's descriptors.
type ParamsCmd struct{}

func (c *ParamsCmd) Run(g *Globals) error {
	stages := []struct {
		name  string
		descs []param.Descriptor
	}{
		{effectchain.TypeCompressor, dynamics.CompressorDescriptors().All()},
		{effectchain.TypeOverdrive, effects.OverdriveDescriptors().All()},
		{effectchain.TypeTube, effects.TubeDescriptors().All()},
	}

	var rows [][]string

	for _, s := range stages {
		for _, d := range s.descs {
			rows = append(rows, []string{s.name, d.ID, d.Name, d.Format(d.Min), d.Format(d.Max), d.Format(d.Default)})
		}
	}

	return renderTable(g.out, "Parameters", []string{"stage", "id", "name", "min", "max", "default"}, rows)
}

// ChainCmd runs a JSON layout over a test sine.
type ChainCmd struct {
	Layout string  `type:"existingfile" help:"Path to a JSON chain layout" xor:"layout"`
	JSON   string  `name:"json" help:"Inline JSON chain layout" xor:"layout"`
	Rate   float64 `default:"48000" help:"Sample rate in Hz"`
	Block  int     `default:"512" help:"Block size"`
	Blocks int     `default:"8" help:"Number of blocks to process"`
	Freq   float64 `default:"220" help:"Test sine frequency in Hz"`
	Level  float64 `default:"0.9" help:"Test sine amplitude"`
}

func (c *ChainCmd) Run(g *Globals) error {
	layout := c.JSON

	if c.Layout != "" {
		data, err := os.ReadFile(c.Layout)
		if err != nil {
			return fmt.Errorf("chain: %w", err)
		}

		layout = string(data)
	}

	if layout == "" {
		return errors.New("chain: need --layout or --json")
	}

	ctx := effectchain.NewContext(core.WithSampleRate(c.Rate), core.WithBlockSize(c.Block))
	chain := effectchain.New(ctx, effectchain.DefaultRegistry(), effectchain.WithLogger(g.log))

	err := chain.Load(layout)
	if err != nil {
		return err
	}

	block := make([]float64, ctx.BlockSize)
	rows := make([][]string, 0, c.Blocks)
	phase := 0.0
	step := 2 * math.Pi * c.Freq / ctx.SampleRate

	for b := range c.Blocks {
		for i := range block {
			block[i] = c.Level * math.Sin(phase)
			phase += step
		}

		peakIn := vecmath.MaxAbs(block)
		chain.Process(block)
		peakOut := vecmath.MaxAbs(block)

		rows = append(rows, []string{
			strconv.Itoa(b), ff(peakIn, 4), ff(peakOut, 4),
			ff(core.LinearToDBFloor(peakOut, -96)-core.LinearToDBFloor(peakIn, -96), 2),
		})
	}

	return renderTable(g.out, "Chain", []string{"block", "peak in", "peak out", "change dB"}, rows,
		fmt.Sprintf("nodes: %v", chain.NodeIDs()))
}
