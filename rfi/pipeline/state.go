package pipeline

// State identifies a step of the flagging state machine.
type State int

const (
	StateInit State = iota
	StateFreqFlag1
	StateEvaluateBadness
	StateTimeFlag
	StateFreqFlag2
	StateEvaluateImprovement
	StateVarianceDestroy
	StateForegroundSubtract
	StateFreqFlagFinal
	StateDone
)

var stateNames = [...]string{
	StateInit:                "init",
	StateFreqFlag1:           "freq_flag_1",
	StateEvaluateBadness:     "evaluate_badness",
	StateTimeFlag:            "time_flag",
	StateFreqFlag2:           "freq_flag_2",
	StateEvaluateImprovement: "evaluate_improvement",
	StateVarianceDestroy:     "variance_destroy",
	StateForegroundSubtract:  "foreground_subtract",
	StateFreqFlagFinal:       "freq_flag_final",
	StateDone:                "done",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}
