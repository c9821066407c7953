// Command rfiflag synthesises a contaminated visibility grid, runs the RFI
// flagging pipeline on it and prints what was flagged.
//
// Usage:
//
//	rfiflag [flags]
//
// Flagging parameters come from the defaults, then an optional YAML file
// given with -config, then the individual flags set on the command line.
//
// Examples:
//
//	rfiflag
//	rfiflag -freq 256 -bad-channels 30 -v
//	rfiflag -config gbt.yaml -bad-times 40,41,120 -time-power 80
//	rfiflag -dump-config > gbt.yaml
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/montanaflynn/stats"

	"github.com/cwbudde/algo-rfi/grid"
	"github.com/cwbudde/algo-rfi/internal/simulate"
	"github.com/cwbudde/algo-rfi/rfi"
	"github.com/cwbudde/algo-rfi/rfi/pipeline"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	dumpConfig bool
	verbose    bool

	sky  simulate.Sky
	rfi  simulate.Interference
	nBad int

	cfg rfi.Config
}

func parseArgs(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("rfiflag", flag.ContinueOnError)
	fs.SetOutput(stderr)

	o := &options{}
	def := rfi.DefaultConfig()

	fs.StringVar(&o.configPath, "config", "", "YAML file with flagging parameters")
	fs.BoolVar(&o.dumpConfig, "dump-config", false, "print the effective configuration as YAML and exit")
	fs.BoolVar(&o.verbose, "v", false, "log pipeline stages to stderr")

	nTime := fs.Int("time", 400, "time samples")
	nFreq := fs.Int("freq", 128, "frequency channels")
	nGroup := fs.Int("groups", 1, "baseline groups")
	nPol := fs.Int("pols", 2, "polarisations")
	fs.Float64Var(&o.sky.Level, "level", 10, "sky level")
	fs.Float64Var(&o.sky.NoiseSigma, "noise", 1, "white noise standard deviation")
	fs.Float64Var(&o.sky.DriftAmplitude, "drift", 5, "foreground drift amplitude")
	fs.Float64Var(&o.sky.DriftPeriod, "drift-period", 200, "foreground drift period in time samples (0 disables)")
	fs.Int64Var(&o.sky.Seed, "seed", 1, "noise seed")

	fs.IntVar(&o.nBad, "bad-channels", 4, "number of evenly spread contaminated channels")
	fs.Float64Var(&o.rfi.ChannelPower, "bad-power", 50, "power added to contaminated channels")
	badTimes := fs.String("bad-times", "", "comma separated time samples with broadband bursts")
	fs.Float64Var(&o.rfi.TimePower, "time-power", 50, "power added at burst times")

	timeSigma := fs.Float64("time-sigma", def.TimeSigma, "time flagging threshold in std")
	freqSigma := fs.Float64("freq-sigma", def.FreqSigma, "frequency flagging threshold in std")
	badness := fs.Float64("badness", def.BadnessThreshold, "bad channel fraction that triggers time flagging")
	timeCut := fs.Int("time-cut", def.TimeCut, "time samples masked around each bad time")
	maxItr := fs.Int("max-itr", def.MaxIterations, "iteration cap of each flagging loop")
	bands := fs.Int("bands", def.Bands, "foreground sub-bands")
	smooth := fs.Float64("smooth", def.TimeBinsSmooth, "foreground kernel FWHM in time samples")
	widen := fs.String("widen", string(def.Widen), "bad time widening: symmetric, forward or none")
	kernel := fs.String("kernel", string(def.Kernel), "foreground kernel: gaussian, hann or rectangular")
	workers := fs.Int("workers", def.Workers, "concurrent sub-bands")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: rfiflag [flags]\n\n")
		fmt.Fprintf(stderr, "Runs RFI flagging and foreground subtraction on a synthetic grid.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	o.sky.Shape = grid.Shape{Time: *nTime, Freq: *nFreq, Group: *nGroup, Pol: *nPol}

	times, err := parseInts(*badTimes)
	if err != nil {
		return nil, fmt.Errorf("-bad-times: %w", err)
	}
	o.rfi.Times = times
	o.rfi.Channels = simulate.SpreadChannels(*nFreq, o.nBad)

	o.cfg = def
	if o.configPath != "" {
		if o.cfg, err = rfi.LoadConfigFile(o.configPath); err != nil {
			return nil, err
		}
	}

	// Explicit flags win over the file.
	var opts []rfi.Option
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "time-sigma":
			opts = append(opts, rfi.WithTimeSigma(*timeSigma))
		case "freq-sigma":
			opts = append(opts, rfi.WithFreqSigma(*freqSigma))
		case "badness":
			opts = append(opts, rfi.WithBadnessThreshold(*badness))
		case "time-cut":
			opts = append(opts, rfi.WithTimeCut(*timeCut))
		case "max-itr":
			opts = append(opts, rfi.WithMaxIterations(*maxItr))
		case "bands":
			opts = append(opts, rfi.WithBands(*bands))
		case "smooth":
			opts = append(opts, rfi.WithTimeBinsSmooth(*smooth))
		case "widen":
			opts = append(opts, rfi.WithWiden(rfi.WidenMode(*widen)))
		case "kernel":
			opts = append(opts, rfi.WithKernel(rfi.Kernel(*kernel)))
		case "workers":
			opts = append(opts, rfi.WithWorkers(*workers))
		}
	})
	for _, opt := range opts {
		opt(&o.cfg)
	}

	return o, o.cfg.Validate()
}

func parseInts(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}

	return out, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	o, err := parseArgs(args, stderr)
	if err != nil {
		return err
	}

	if o.dumpConfig {
		b, err := o.cfg.YAML()
		if err != nil {
			return err
		}
		_, err = stdout.Write(b)
		return err
	}

	g, err := simulate.Generate(o.sky, o.rfi)
	if err != nil {
		return err
	}

	var popts []pipeline.Option
	if o.verbose {
		popts = append(popts, pipeline.WithLogger(
			slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})),
		))
	}

	rep, err := pipeline.Run(ctx, g, o.cfg, popts...)
	if err != nil {
		return err
	}

	return printReport(stdout, o, g, rep)
}

func printReport(w io.Writer, o *options, g *grid.Grid, rep *pipeline.Report) error {
	fmt.Fprintf(w, "run %s  shape %s\n\n", rep.RunID, g.Shape)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Stage\tIterations\tFlagged\tConverged\tMasked\n")
	fmt.Fprintf(tw, "-----\t----------\t-------\t---------\t------\n")
	for _, st := range rep.Stages {
		if st.Loop == nil {
			fmt.Fprintf(tw, "%s\t\t\t\t%d\n", st.State, st.Masked)
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%t\t%d\n",
			st.State, st.Loop.Iterations, st.Loop.Flagged, st.Loop.Converged, st.Masked)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nbadness        %.4f", rep.Badness1)
	if rep.TimeFlagged {
		fmt.Fprintf(w, " -> %.4f", rep.Badness2)
	}
	fmt.Fprintf(w, "\ninjected       channels %v times %v\n", o.rfi.Channels, o.rfi.Times)
	fmt.Fprintf(w, "bad channels   %v\n", rep.BadChannels)
	fmt.Fprintf(w, "bad times      %v\n", rep.BadTimes)
	fmt.Fprintf(w, "variance pass  %t\n", rep.VarianceDestroyed)
	fmt.Fprintf(w, "masked         %d -> %d of %d\n\n", rep.MaskedBefore, rep.MaskedAfter, g.Shape.Size())

	residual := unmasked(g)
	if len(residual) == 0 {
		_, err := fmt.Fprintln(w, "residual       everything masked")
		return err
	}

	mean, _ := stats.Mean(residual)
	median, _ := stats.Median(residual)
	std, _ := stats.StandardDeviation(residual)
	p5, _ := stats.Percentile(residual, 5)
	p95, _ := stats.Percentile(residual, 95)

	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Residual\tMean\tMedian\tStd\tP5\tP95\n")
	fmt.Fprintf(tw, "unmasked\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\n", mean, median, std, p5, p95)

	return tw.Flush()
}

func unmasked(g *grid.Grid) []float64 {
	out := make([]float64, 0, len(g.Data)-g.CountMasked())
	for i, v := range g.Data {
		if !g.Mask[i] {
			out = append(out, v)
		}
	}
	return out
}
