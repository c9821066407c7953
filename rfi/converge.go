package rfi

// Step performs one detection pass and returns how many new items it
// flagged. iter counts from zero.
type Step func(iter int) int

// LoopResult summarises a bounded fixed-point loop.
type LoopResult struct {
	Iterations int   // passes executed
	Flagged    int   // sum of all step results
	Converged  bool  // last pass flagged nothing
	Err        error // ErrConvergenceExceeded when the cap was hit, never fatal
}

// Converge calls step until it returns zero or maxIter passes have run.
func Converge(maxIter int, step Step) LoopResult {
	var res LoopResult

	for res.Iterations < maxIter {
		n := step(res.Iterations)
		res.Iterations++
		res.Flagged += n
		if n == 0 {
			res.Converged = true
			return res
		}
	}

	res.Err = ErrConvergenceExceeded

	return res
}
