// Package pipeline runs the escalating RFI flagging state machine over one
// visibility grid.
//
//	INIT → FREQ_FLAG_1 → EVALUATE_BADNESS
//	  ├─ badness ≤ threshold ─────────────────────────────────────────┐
//	  └─ TIME_FLAG → FREQ_FLAG_2 → EVALUATE_IMPROVEMENT               │
//	        └─ improvement < 5% → VARIANCE_DESTROY                    │
//	→ FOREGROUND_SUBTRACT → FREQ_FLAG_FINAL → DONE  ◄──────────────────┘
//
// Frequency-only flagging runs on a copy of the input. When too many
// channels end up flagged, time flagging is tried on a fresh copy, followed
// by another frequency pass and, if that did not reduce the bad-channel
// fraction by at least MinImprovement, a variance pass. The copy from the
// last pass taken is foreground-filtered, flagged once more, and written back:
// the grid receives its filtered data and the union of its own and the
// computed mask.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/cwbudde/algo-rfi/grid"
	"github.com/cwbudde/algo-rfi/rfi"
	"github.com/cwbudde/algo-rfi/rfi/flag"
	"github.com/cwbudde/algo-rfi/rfi/foreground"
)

// MinImprovement is the bad-channel fraction reduction that time flagging
// must achieve for the variance pass to be skipped.
const MinImprovement = 0.05

// Option configures a Flagger.
type Option func(*Flagger)

// WithLogger sets the structured logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(f *Flagger) {
		if l != nil {
			f.log = l
		}
	}
}

// Flagger runs the state machine with a fixed configuration. It holds no
// per-run state and may be shared between goroutines working on different
// grids.
type Flagger struct {
	cfg    rfi.Config
	filter *foreground.Filter
	log    *slog.Logger
}

// New validates cfg and prepares a Flagger.
func New(cfg rfi.Config, opts ...Option) (*Flagger, error) {
	filter, err := foreground.New(cfg)
	if err != nil {
		return nil, err
	}

	f := &Flagger{
		cfg:    cfg,
		filter: filter,
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}

	return f, nil
}

// Run is shorthand for New followed by Flagger.Run.
func Run(ctx context.Context, g *grid.Grid, cfg rfi.Config, opts ...Option) (*Report, error) {
	f, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return f.Run(ctx, g)
}

// Run flags and filters g in place. Iteration caps are reported in the
// Report, not as errors. On error g is left untouched.
func (f *Flagger) Run(ctx context.Context, g *grid.Grid) (*Report, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	rep := &Report{
		RunID:        uuid.New(),
		Channels:     g.Shape.Freq,
		MaskedBefore: g.CountMasked(),
	}
	log := f.log.With("run_id", rep.RunID.String(), "shape", g.Shape.String())
	rep.Stages = append(rep.Stages, Stage{State: StateInit, Masked: rep.MaskedBefore})

	work := g.Clone()
	bad := flag.NewBadChannels()
	f.loop(rep, log, StateFreqFlag1, work, flag.FrequencyLoop(work, f.cfg, bad))

	rep.Badness1 = bad.Fraction(g.Shape.Freq)
	rep.Stages = append(rep.Stages, Stage{State: StateEvaluateBadness, Masked: work.CountMasked()})
	log.Debug("badness evaluated", "badness", rep.Badness1, "threshold", f.cfg.BadnessThreshold)

	if rep.Badness1 > f.cfg.BadnessThreshold {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		escalated, escalatedBad, err := f.escalate(rep, log, g)
		if err != nil {
			return nil, err
		}
		work, bad = escalated, escalatedBad
	}

	if err := f.filter.Apply(ctx, work); err != nil {
		return nil, err
	}
	rep.Stages = append(rep.Stages, Stage{State: StateForegroundSubtract, Masked: work.CountMasked()})
	log.Debug("foreground subtracted", "bands", len(f.filter.Bands(g.Shape.Freq)))

	f.loop(rep, log, StateFreqFlagFinal, work, flag.FrequencyLoop(work, f.cfg, bad))

	copy(g.Data, work.Data)
	if err := g.MergeMask(work); err != nil {
		return nil, err
	}

	rep.BadChannels = bad.Sorted()
	rep.MaskedAfter = g.CountMasked()
	rep.Stages = append(rep.Stages, Stage{State: StateDone, Masked: rep.MaskedAfter})

	log.Info("flagging finished",
		"bad_channels", len(rep.BadChannels),
		"time_flagged", rep.TimeFlagged,
		"variance_destroyed", rep.VarianceDestroyed,
		"masked_before", rep.MaskedBefore,
		"masked_after", rep.MaskedAfter,
	)

	return rep, nil
}

// escalate runs time flagging and a second frequency pass on a fresh copy of
// the input, falling back to the variance pass when the bad-channel fraction
// barely moved.
func (f *Flagger) escalate(rep *Report, log *slog.Logger, g *grid.Grid) (*grid.Grid, *flag.BadChannels, error) {
	work := g.Clone()

	times, err := flag.Time(work, f.cfg)
	if err != nil {
		return nil, nil, err
	}
	rep.TimeFlagged = true
	rep.BadTimes = times
	rep.Stages = append(rep.Stages, Stage{State: StateTimeFlag, Masked: work.CountMasked()})
	log.Debug("time flagging", "bad_times", len(times))

	bad := flag.NewBadChannels()
	f.loop(rep, log, StateFreqFlag2, work, flag.FrequencyLoop(work, f.cfg, bad))

	rep.Badness2 = bad.Fraction(g.Shape.Freq)
	rep.Stages = append(rep.Stages, Stage{State: StateEvaluateImprovement, Masked: work.CountMasked()})
	log.Debug("improvement evaluated", "badness_before", rep.Badness1, "badness_after", rep.Badness2)

	if rep.Badness1-rep.Badness2 < MinImprovement {
		rep.VarianceDestroyed = true
		f.loop(rep, log, StateVarianceDestroy, work, flag.VarianceLoop(work, f.cfg, bad))
	}

	return work, bad, nil
}

func (f *Flagger) loop(rep *Report, log *slog.Logger, s State, work *grid.Grid, res rfi.LoopResult) {
	rep.Stages = append(rep.Stages, Stage{State: s, Loop: &res, Masked: work.CountMasked()})

	if res.Err != nil {
		log.Warn("loop did not converge", "stage", s.String(), "iterations", res.Iterations, "flagged", res.Flagged, "err", res.Err)
		return
	}
	log.Debug("loop converged", "stage", s.String(), "iterations", res.Iterations, "flagged", res.Flagged)
}
