package mdfs

import "slices"

// Match is one record of an OutputMatchingTuples run.
type Match struct {
	Variable int
	Gain     float32

	// Tuple is a copy of the tuple the score was computed in.
	Tuple []int
}

// Output is the result of a run. Which accessor carries data depends on
// Mode: Gains for OutputMaxGains, Matches for OutputMatchingTuples.
type Output struct {
	mode    OutputMode
	gains   []float32
	matches []Match

	threshold   float32
	interesting *VariableSet
}

// NewOutput returns an empty accumulator for cfg over variables variables.
func NewOutput(cfg Config, variables int) *Output {
	o := &Output{mode: cfg.Output, threshold: cfg.Threshold}
	switch cfg.Output {
	case OutputMaxGains:
		o.gains = make([]float32, variables)
	case OutputMatchingTuples:
		o.interesting = NewVariableSet(cfg.Interesting...)
	}
	return o
}

// Mode returns the output mode.
func (o *Output) Mode() OutputMode { return o.mode }

// Gains returns the best score per variable, or nil in OutputMatchingTuples
// mode. Variables that never appeared in a scored tuple keep 0.
func (o *Output) Gains() []float32 {
	return o.gains
}

// Matches returns the recorded matches in discovery order, or nil in
// OutputMaxGains mode.
func (o *Output) Matches() []Match {
	return o.matches
}

// Update folds the aggregated scores of tuple t into the output. scores[vv]
// is the score of variable t[vv].
func (o *Output) Update(t Tuple, scores []float32) {
	switch o.mode {
	case OutputMaxGains:
		for vv, v := range t {
			o.gains[v] = max(o.gains[v], scores[vv])
		}
	case OutputMatchingTuples:
		for vv, v := range t {
			if scores[vv] <= o.threshold {
				continue
			}
			if !o.interesting.Empty() && !o.interesting.Contains(v) {
				continue
			}
			o.matches = append(o.matches, Match{
				Variable: v,
				Gain:     scores[vv],
				Tuple:    slices.Clone([]int(t)),
			})
		}
	}
}
