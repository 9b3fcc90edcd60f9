package mdfs

import (
	"time"

	"github.com/ajroetker/go-mdfs/hwy/contrib/workerpool"
)

type options struct {
	lanes            int
	workers          int
	pool             *workerpool.Pool
	logger           *Logger
	progressInterval time.Duration
}

// Option configures a Run.
type Option func(*options)

// WithLanes selects the lane width of the arithmetic backend: 1, 4 or 8.
// The default is hwy.PreferredLanes(). The lane width changes performance
// only; scores agree across widths within float tolerance.
func WithLanes(lanes int) Option {
	return func(o *options) {
		o.lanes = lanes
	}
}

// WithWorkers sets the number of goroutines used for the per-trial fan-out.
// If workers <= 0, GOMAXPROCS is used. Ignored when WithPool is given.
func WithWorkers(workers int) Option {
	return func(o *options) {
		o.workers = workers
	}
}

// WithPool runs the trial fan-out on an existing pool. Run does not close it.
func WithPool(p *workerpool.Pool) Option {
	return func(o *options) {
		o.pool = p
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithProgressInterval sets the minimum time between progress log lines.
// Zero or negative disables progress logging.
func WithProgressInterval(d time.Duration) Option {
	return func(o *options) {
		o.progressInterval = d
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		logger:           NoopLogger(),
		progressInterval: 10 * time.Second,
	}
	for _, fn := range opts {
		fn(o)
	}
	return o
}
