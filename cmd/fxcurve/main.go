// Command fxcurve inspects the effect stages: static compressor curves,
// per-sample compressor traces, waveshaper transfer curves, harmonic
// profiles, parameter descriptors and JSON chains.
//
// Usage:
//
//	fxcurve <command> [flags]
//
// Examples:
//
//	fxcurve gain --threshold=-12 --ratio 4 --knee 6
//	fxcurve compress --topology rms --samples 12
//	fxcurve overdrive --mix 0.7 --points 11
//	fxcurve tube --workpoint=-0.2 --character 8
//	fxcurve harmonics --stage tube-block --amplitude 0.9
//	fxcurve params
//	fxcurve chain --layout chain.json
package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"
)

// Globals are shared by every command.
type Globals struct {
	Verbose bool `short:"v" help:"Log configuration details to stderr"`

	out io.Writer      `kong:"-"`
	log *logrus.Logger `kong:"-"`
}

// CLI defines the command-line interface.
type CLI struct {
	Globals

	Gain      GainCmd      `cmd:"" help:"Print the static compressor characteristic"`
	Compress  CompressCmd  `cmd:"" help:"Trace a test signal through the compressor sample by sample"`
	Overdrive OverdriveCmd `cmd:"" help:"Print the overdrive transfer curve"`
	Tube      TubeCmd      `cmd:"" help:"Print the tube transfer curve, per-sample and block-normalized"`
	Harmonics HarmonicsCmd `cmd:"" help:"Measure the harmonic profile a stage adds to a sine"`
	Params    ParamsCmd    `cmd:"" help:"List parameter descriptors of every stage"`
	Chain     ChainCmd     `cmd:"" help:"Run a JSON effect chain over a test sine"`
}

func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.WarnLevel)

	if verbose {
		l.SetLevel(logrus.DebugLevel)
	}

	return l
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("fxcurve"),
		kong.Description("Inspect compressor, overdrive and tube stages"),
		kong.UsageOnError(),
	)

	cli.out = os.Stdout
	cli.log = newLogger(os.Stderr, cli.Verbose)

	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
