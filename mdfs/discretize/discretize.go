// Package discretize turns continuous variables into the per-trial bucket
// codes consumed by mdfs.Run.
//
// Each trial places DIV thresholds at randomly jittered quantiles of a
// variable: DIV+1 weights are drawn uniformly from [1-Range, 1+Range], and
// threshold d sits at the sorted value whose rank is the rounded cumulative
// share of the first d+1 weights. A value's code is the number of thresholds
// strictly below it. The generator for (variable, trial) is derived from
// Seed alone, so results do not depend on scheduling.
package discretize

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/ajroetker/go-mdfs/hwy/contrib/workerpool"
	"github.com/ajroetker/go-mdfs/mdfs"
)

// Options configures a discretization.
type Options struct {
	// Divisions is DIV; every variable gets DIV+1 buckets.
	Divisions int

	// Trials is the number of independent discretizations.
	Trials int

	// Seed selects the random thresholds.
	Seed uint64

	// Range is the weight jitter in [0, 1). Zero gives equal-frequency
	// buckets in every trial.
	Range float32

	// Workers is the number of variables processed concurrently. Zero or
	// negative means GOMAXPROCS.
	Workers int
}

// DefaultOptions returns one binary discretization with Range 0.25.
func DefaultOptions() Options {
	return Options{
		Divisions: 1,
		Trials:    1,
		Range:     0.25,
	}
}

func (o Options) validate() error {
	if o.Divisions < 1 {
		return fmt.Errorf("%w: divisions must be at least 1, got %d", mdfs.ErrInvalidConfig, o.Divisions)
	}
	if o.Trials < 1 {
		return fmt.Errorf("%w: trials must be at least 1, got %d", mdfs.ErrInvalidConfig, o.Trials)
	}
	if !(o.Range >= 0 && o.Range < 1) {
		return fmt.Errorf("%w: range must be in [0, 1), got %v", mdfs.ErrInvalidConfig, o.Range)
	}
	return nil
}

// Dataset discretizes every variable of ds. The returned matrix shares no
// memory with ds; its decision vector is a copy.
func Dataset(ctx context.Context, ds *mdfs.Dataset, opts Options) (*mdfs.Matrix, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}

	m := mdfs.NewMatrix(ds.Variables, opts.Trials, ds.Objects)
	copy(m.Decision, ds.Decision)

	pool := workerpool.New(opts.Workers)
	defer pool.Close()

	scratch := make([]*buffers, pool.NumWorkers())
	err := pool.ParallelForContext(ctx, ds.Variables, func(worker, v int) error {
		if scratch[worker] == nil {
			scratch[worker] = newBuffers(ds.Objects, opts.Divisions)
		}
		scratch[worker].variable(ds.Column(v), v, opts, func(trial int) []int32 {
			return m.Codes(v, trial)
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// buffers is the per-worker scratch space of Dataset.
type buffers struct {
	sorted     []float32
	thresholds []float32
}

func newBuffers(objects, divisions int) *buffers {
	return &buffers{
		sorted:     make([]float32, objects),
		thresholds: make([]float32, divisions),
	}
}

func (b *buffers) variable(values []float32, v int, opts Options, dst func(trial int) []int32) {
	sorted := b.sorted[:len(values)]
	copy(sorted, values)
	slices.Sort(sorted)
	for d := range opts.Trials {
		Thresholds(sorted, opts.Seed, d, v, opts.Range, b.thresholds)
		Apply(values, b.thresholds, dst(d))
	}
}

// Variable discretizes the values of variable index v under every trial,
// writing the codes of trial d into dst(d).
func Variable(values []float32, v int, opts Options, dst func(trial int) []int32) {
	newBuffers(len(values), opts.Divisions).variable(values, v, opts, dst)
}

// Thresholds fills thr with the cut points of trial for variable v. sorted
// must hold the variable's values in increasing order.
func Thresholds(sorted []float32, seed uint64, trial, v int, jitter float32, thr []float32) {
	rng := rand.New(rand.NewPCG(seed, uint64(trial)<<32|uint64(uint32(v))))
	lo := 1 - float64(jitter)
	width := 2 * float64(jitter)

	weights := make([]float32, len(thr))
	var sum float32
	for d := range weights {
		weights[d] = float32(lo + width*rng.Float64())
		sum += weights[d]
	}
	// The last bucket's weight only enters the normalization.
	sum += float32(lo + width*rng.Float64())

	n := len(sorted)
	done := 0
	for d, w := range weights {
		done += int(math.Round(float64(w / sum * float32(n))))
		if done >= n {
			done = n - 1
		}
		thr[d] = sorted[done]
	}
}

// Apply writes to codes the number of thresholds strictly below each value.
func Apply(values, thresholds []float32, codes []int32) {
	for i, x := range values {
		var c int32
		for _, t := range thresholds {
			if x > t {
				c++
			}
		}
		codes[i] = c
	}
}
