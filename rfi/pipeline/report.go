package pipeline

import (
	"github.com/google/uuid"

	"github.com/cwbudde/algo-rfi/rfi"
)

// Stage records one visited state.
type Stage struct {
	State  State
	Loop   *rfi.LoopResult // set for convergence loops
	Masked int             // masked samples in the grid the state worked on
}

// Report describes one flagging run.
type Report struct {
	RunID    uuid.UUID
	Channels int
	Stages   []Stage

	Badness1 float64 // bad-channel fraction after frequency-only flagging
	Badness2 float64 // bad-channel fraction after time flagging, if escalated

	TimeFlagged       bool
	VarianceDestroyed bool

	BadTimes    []int
	BadChannels []int

	MaskedBefore int
	MaskedAfter  int
}

// Visited reports whether the run passed through s.
func (r *Report) Visited(s State) bool {
	for _, st := range r.Stages {
		if st.State == s {
			return true
		}
	}
	return false
}

// Converged reports whether every convergence loop reached a fixed point.
func (r *Report) Converged() bool {
	for _, st := range r.Stages {
		if st.Loop != nil && !st.Loop.Converged {
			return false
		}
	}
	return true
}

// Path returns the visited states in order.
func (r *Report) Path() []State {
	out := make([]State, len(r.Stages))
	for i, st := range r.Stages {
		out[i] = st.State
	}
	return out
}
