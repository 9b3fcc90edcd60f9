package mdfs

import (
	"context"
	"fmt"
	"time"

	"github.com/ajroetker/go-mdfs/hwy"
	"github.com/ajroetker/go-mdfs/hwy/contrib/infogain"
	"github.com/ajroetker/go-mdfs/hwy/contrib/workerpool"
)

// chunkKernel computes the per-position gains of one tuple for the W trials
// of one chunk. dst receives Dim*W values, position-major.
type chunkKernel func(p infogain.Params, ws *infogain.Workspace, columns [][]int32, decision []int32, dst []float32)

func kernelFor[F, I any, B hwy.Backend[F, I]](b B) chunkKernel {
	return func(p infogain.Params, ws *infogain.Workspace, columns [][]int32, decision []int32, dst []float32) {
		ws.Reset()
		infogain.Build[F, I](b, p, ws, columns, decision)
		infogain.VariableGains[F, I](b, p, ws, dst)
	}
}

// kernels maps a lane width to its kernel. Build-tagged files replace entries
// with hardware backends at init.
var kernels = map[int]chunkKernel{
	1: kernelFor[float32, int32](hwy.Scalar{}),
	4: kernelFor[hwy.F32x4, hwy.I32x4](hwy.Wide4{}),
	8: kernelFor[hwy.F32x8, hwy.I32x8](hwy.Wide8{}),
}

// kernelNames describes the backend behind each kernels entry.
var kernelNames = map[int]string{
	1: "scalar",
	4: "wide4",
	8: "wide8",
}

// Run scores every variable of m over all cfg.Dimension-tuples.
//
// Tuples are processed one at a time in lexicographic order. Within a tuple
// the discretization trials are split into chunks of W and scored in
// parallel; the per-trial gains are then reduced with cfg.Reduce and folded
// into the output after all chunks are done.
func Run(cfg Config, m *Matrix, opts ...Option) (*Output, error) {
	o := newOptions(opts)
	ctx := context.Background()
	log := o.logger.WithConfig(cfg)

	if err := cfg.Validate(m); err != nil {
		log.LogRunDone(ctx, 0, 0, 0, err)
		return nil, err
	}

	lanes := o.lanes
	if lanes == 0 {
		lanes = hwy.PreferredLanes()
	}
	kernel, ok := kernels[lanes]
	if !ok {
		err := fmt.Errorf("%w: %d", ErrUnsupportedLanes, lanes)
		log.LogRunDone(ctx, 0, 0, 0, err)
		return nil, err
	}

	pool := o.pool
	if pool == nil {
		pool = workerpool.New(o.workers)
		defer pool.Close()
	}

	s := newScheme(cfg, m, lanes, kernel, pool)
	out := NewOutput(cfg, m.Variables)
	enum := NewEnumerator(cfg.Dimension, m.Variables)
	total := enum.Count()
	prog := newProgress(o.progressInterval)

	log.LogRunStart(ctx, m.Variables, m.Objects, total, lanes, kernelNames[lanes])
	start := time.Now()

	var done, skipped int
	for t := range enum.All() {
		if !s.interesting.Empty() && !s.interesting.Intersects(t) {
			skipped++
			continue
		}
		out.Update(t, s.score(t))
		done++
		if prog.due() {
			log.LogProgress(ctx, done, skipped, total)
		}
	}

	log.LogRunDone(ctx, done, skipped, time.Since(start), nil)
	return out, nil
}

// scheme holds the state shared by all tuples of one run.
type scheme struct {
	cfg         Config
	params      infogain.Params
	packed      *PackedMatrix
	decision    []int32
	kernel      chunkKernel
	pool        *workerpool.Pool
	interesting *VariableSet

	// Per worker; indexed by the worker id handed out by the pool.
	workspaces []*infogain.Workspace
	columns    [][][]int32
	laneGains  [][]float32

	// ig[vv*trials + d] is the gain of tuple position vv under trial d.
	ig     []float32
	scores []float32
}

func newScheme(cfg Config, m *Matrix, lanes int, kernel chunkKernel, pool *workerpool.Pool) *scheme {
	c0, c1 := m.ClassCounts()
	params := infogain.NewParams(cfg.Dimension, cfg.Divisions, cfg.PseudoCount, c0, c1)

	workers := pool.NumWorkers()
	s := &scheme{
		cfg:         cfg,
		params:      params,
		packed:      m.pack(lanes, pool),
		decision:    m.Decision,
		kernel:      kernel,
		pool:        pool,
		interesting: NewVariableSet(cfg.Interesting...),
		workspaces:  make([]*infogain.Workspace, workers),
		columns:     make([][][]int32, workers),
		laneGains:   make([][]float32, workers),
		ig:          make([]float32, cfg.Dimension*m.Trials),
		scores:      make([]float32, cfg.Dimension),
	}
	for w := range workers {
		s.workspaces[w] = infogain.NewWorkspace(params, lanes)
		s.columns[w] = make([][]int32, cfg.Dimension)
		s.laneGains[w] = make([]float32, cfg.Dimension*lanes)
	}
	return s
}

// score returns the aggregated score of every position of t. The returned
// slice is reused by the next call.
func (s *scheme) score(t Tuple) []float32 {
	lanes := s.packed.Lanes()
	trials := s.packed.Trials()

	s.pool.ParallelForAtomic(s.packed.Chunks(), func(worker, chunk int) {
		columns := s.columns[worker]
		for k, v := range t {
			columns[k] = s.packed.Column(v, chunk)
		}
		dst := s.laneGains[worker]
		s.kernel(s.params, s.workspaces[worker], columns, s.decision, dst)

		// Padded lanes of the last chunk are dropped here.
		n := s.packed.ChunkTrials(chunk)
		first := chunk * lanes
		for vv := range t {
			copy(s.ig[vv*trials+first:vv*trials+first+n], dst[vv*lanes:vv*lanes+n])
		}
	})

	for vv := range t {
		s.scores[vv] = s.cfg.Reduce.reduce(s.ig[vv*trials : (vv+1)*trials])
	}
	return s.scores
}
