package mdfs

import (
	"fmt"
	"math"
)

// ReduceMethod selects how the per-trial gains of one tuple position are
// combined into a single score.
type ReduceMethod int

const (
	// ReduceMax keeps the largest per-trial gain.
	ReduceMax ReduceMethod = iota

	// ReduceAverage divides the sum of the per-trial gains by the trial count.
	ReduceAverage
)

// String returns "max" or "avg".
func (r ReduceMethod) String() string {
	switch r {
	case ReduceMax:
		return "max"
	case ReduceAverage:
		return "avg"
	default:
		return fmt.Sprintf("ReduceMethod(%d)", int(r))
	}
}

// ParseReduceMethod parses "max" or "avg".
func ParseReduceMethod(s string) (ReduceMethod, error) {
	switch s {
	case "max":
		return ReduceMax, nil
	case "avg", "average":
		return ReduceAverage, nil
	}
	return 0, fmt.Errorf("%w: unknown reduce method %q", ErrInvalidConfig, s)
}

// reduce combines the per-trial values in trial order.
func (r ReduceMethod) reduce(values []float32) float32 {
	switch r {
	case ReduceAverage:
		var sum float32
		for _, v := range values {
			sum += v
		}
		return sum / float32(len(values))
	default:
		best := values[0]
		for _, v := range values[1:] {
			best = max(best, v)
		}
		return best
	}
}

// OutputMode selects what a run accumulates.
type OutputMode int

const (
	// OutputMaxGains keeps the best score per variable over every tuple the
	// variable appears in.
	OutputMaxGains OutputMode = iota

	// OutputMatchingTuples records every (variable, score, tuple) whose score
	// exceeds the threshold.
	OutputMatchingTuples
)

func (m OutputMode) String() string {
	switch m {
	case OutputMaxGains:
		return "max-gains"
	case OutputMatchingTuples:
		return "matching-tuples"
	default:
		return fmt.Sprintf("OutputMode(%d)", int(m))
	}
}

// ParseOutputMode parses "max-gains" or "matching-tuples".
func ParseOutputMode(s string) (OutputMode, error) {
	switch s {
	case "max-gains", "max":
		return OutputMaxGains, nil
	case "matching-tuples", "tuples":
		return OutputMatchingTuples, nil
	}
	return 0, fmt.Errorf("%w: unknown output mode %q", ErrInvalidConfig, s)
}

// Config holds the parameters of one run. It is not modified by Run.
type Config struct {
	// Dimension is the tuple size D.
	Dimension int

	// Divisions is DIV; every variable has Divisions+1 buckets.
	Divisions int

	// Discretizations is the number of discretization trials in the matrix.
	Discretizations int

	// PseudoCount is the smoothing mass spread over all buckets of both
	// classes, split by class prevalence.
	PseudoCount float32

	Reduce ReduceMethod

	// Threshold is the score a variable must exceed to be recorded in
	// OutputMatchingTuples mode.
	Threshold float32

	// Interesting restricts the run to tuples holding at least one of these
	// variables. Empty means every tuple.
	Interesting []int

	Output OutputMode
}

// DefaultConfig returns a two-dimensional, binary-bucket configuration with a
// single trial.
func DefaultConfig() Config {
	return Config{
		Dimension:       2,
		Divisions:       1,
		Discretizations: 1,
		PseudoCount:     0.25,
		Reduce:          ReduceMax,
		Output:          OutputMaxGains,
	}
}

// Validate checks the configuration against m. It scans every code once;
// the engine does not check again.
func (c Config) Validate(m *Matrix) error {
	if m == nil {
		return fmt.Errorf("%w: nil matrix", ErrShapeMismatch)
	}
	if c.Dimension < 1 || c.Dimension > m.Variables {
		return &ErrInvalidDimension{Dimension: c.Dimension, Variables: m.Variables}
	}
	if c.Divisions < 1 {
		return fmt.Errorf("%w: divisions must be at least 1, got %d", ErrInvalidConfig, c.Divisions)
	}
	if c.Discretizations < 1 {
		return fmt.Errorf("%w: discretizations must be at least 1, got %d", ErrInvalidConfig, c.Discretizations)
	}
	if !(c.PseudoCount > 0) || math.IsInf(float64(c.PseudoCount), 1) {
		return fmt.Errorf("%w: pseudo-count must be positive, got %v", ErrInvalidConfig, c.PseudoCount)
	}
	if c.Reduce != ReduceMax && c.Reduce != ReduceAverage {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, c.Reduce)
	}
	if c.Output != OutputMaxGains && c.Output != OutputMatchingTuples {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, c.Output)
	}

	if m.Trials != c.Discretizations {
		return fmt.Errorf("%w: matrix has %d trials, config has %d", ErrShapeMismatch, m.Trials, c.Discretizations)
	}
	if m.Objects < 1 {
		return fmt.Errorf("%w: no objects", ErrShapeMismatch)
	}
	if want := m.Variables * c.Discretizations * m.Objects; len(m.Data) != want {
		return fmt.Errorf("%w: %d codes, want %d", ErrShapeMismatch, len(m.Data), want)
	}
	if len(m.Decision) != m.Objects {
		return fmt.Errorf("%w: %d decisions for %d objects", ErrShapeMismatch, len(m.Decision), m.Objects)
	}

	var seen [2]bool
	for o, d := range m.Decision {
		if d != 0 && d != 1 {
			return fmt.Errorf("%w: object %d has decision %d", ErrInvalidDecision, o, d)
		}
		seen[d] = true
	}
	if !seen[0] || !seen[1] {
		return fmt.Errorf("%w: both classes must be present", ErrInvalidDecision)
	}

	div := int32(c.Divisions)
	for i, code := range m.Data {
		if code < 0 || code > div {
			v, rest := i/(m.Trials*m.Objects), i%(m.Trials*m.Objects)
			return fmt.Errorf("%w: variable %d trial %d object %d has code %d, want [0, %d]",
				ErrCodeOutOfRange, v, rest/m.Objects, rest%m.Objects, code, div)
		}
	}

	for _, v := range c.Interesting {
		if v < 0 || v >= m.Variables {
			return fmt.Errorf("%w: interesting variable %d outside [0, %d)", ErrInvalidConfig, v, m.Variables)
		}
	}
	return nil
}
