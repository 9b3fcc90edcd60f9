package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ajroetker/go-mdfs/dataset"
	"github.com/ajroetker/go-mdfs/mdfs"
	"github.com/ajroetker/go-mdfs/mdfs/discretize"
)

type runFlags struct {
	cfg         mdfs.Config
	reduce      string
	output      string
	interesting []string
	lanes       int
	workers     int
	rank        bool
	top         int

	disc discretize.Options
	csv  csvFlags
}

func newRunCommand(g *globalOptions) *cobra.Command {
	rf := &runFlags{
		cfg:  mdfs.DefaultConfig(),
		disc: discretize.DefaultOptions(),
	}

	cmd := &cobra.Command{
		Use:   "run INPUT...",
		Short: "Score every variable over all D-tuples",
		Long: `Run loads each input, discretizes continuous inputs on the fly and
prints the result. In max-gains mode the gains are printed as one
tab-separated line (or ranked with --rank); in matching-tuples mode every
match is printed as variable:gain:v0,v1,...`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rf.run(cmd, g, args)
		},
	}

	f := cmd.Flags()
	f.IntVar(&rf.cfg.Dimension, "dimension", rf.cfg.Dimension, "tuple size D")
	f.IntVar(&rf.cfg.Divisions, "divisions", rf.cfg.Divisions, "thresholds per variable (buckets = divisions+1)")
	f.IntVar(&rf.cfg.Discretizations, "discretizations", rf.cfg.Discretizations, "discretization trials (defaults to the file's trial count)")
	f.Float32Var(&rf.cfg.PseudoCount, "pseudo", rf.cfg.PseudoCount, "pseudo-count mass")
	f.Float32Var(&rf.cfg.Threshold, "threshold", rf.cfg.Threshold, "minimum gain reported in matching-tuples mode")
	f.StringVar(&rf.reduce, "reduce", "max", "cross-trial reduction: max or avg")
	f.StringVar(&rf.output, "output", "max-gains", "output mode: max-gains or matching-tuples")
	f.StringSliceVar(&rf.interesting, "interesting", nil, "only score tuples holding one of these variables (e.g. 0,4-7)")
	f.IntVar(&rf.lanes, "lanes", 0, "lane width 1, 4 or 8 (0 = detected)")
	f.IntVar(&rf.workers, "workers", 0, "worker goroutines (0 = GOMAXPROCS)")
	f.BoolVar(&rf.rank, "rank", false, "print variable and gain per line, best first")
	f.IntVar(&rf.top, "top", 0, "with --rank, print only the best N variables")
	f.Uint64Var(&rf.disc.Seed, "seed", rf.disc.Seed, "discretization seed for continuous inputs")
	f.Float32Var(&rf.disc.Range, "range", rf.disc.Range, "threshold jitter for continuous inputs")
	addCSVFlags(cmd, &rf.csv)
	return cmd
}

func (rf *runFlags) run(cmd *cobra.Command, g *globalOptions, args []string) error {
	ctx := cmd.Context()
	var err error
	if rf.cfg.Reduce, err = mdfs.ParseReduceMethod(rf.reduce); err != nil {
		return err
	}
	if rf.cfg.Output, err = mdfs.ParseOutputMode(rf.output); err != nil {
		return err
	}
	if rf.cfg.Interesting, err = parseInteresting(rf.interesting); err != nil {
		return err
	}
	csvOpts, err := rf.csv.options()
	if err != nil {
		return err
	}
	log, err := g.logger()
	if err != nil {
		return err
	}
	trialsSet := cmd.Flags().Changed("discretizations")

	matrices := make([]*mdfs.Matrix, len(args))
	eg, ectx := errgroup.WithContext(ctx)
	for i, src := range args {
		eg.Go(func() error {
			f, err := g.load(ectx, src, csvOpts)
			if err != nil {
				return err
			}
			matrices[i], err = rf.matrix(ectx, f)
			if err != nil {
				return fmt.Errorf("%s: %w", src, err)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for i, m := range matrices {
		cfg := rf.cfg
		if !trialsSet {
			cfg.Discretizations = m.Trials
		}
		out, err := mdfs.Run(cfg, m,
			mdfs.WithLanes(rf.lanes),
			mdfs.WithWorkers(rf.workers),
			mdfs.WithLogger(&mdfs.Logger{Logger: log.With("input", args[i])}))
		if err != nil {
			return fmt.Errorf("%s: %w", args[i], err)
		}
		if len(args) > 1 {
			fmt.Fprintf(w, "# %s\n", args[i])
		}
		if err := rf.print(w, out); err != nil {
			return err
		}
	}
	return nil
}

// matrix returns the discretized matrix of f, discretizing continuous data
// with the run's divisions and trial count.
func (rf *runFlags) matrix(ctx context.Context, f *dataset.File) (*mdfs.Matrix, error) {
	if f.Matrix != nil {
		return f.Matrix, nil
	}
	opts := rf.disc
	opts.Divisions = rf.cfg.Divisions
	opts.Trials = rf.cfg.Discretizations
	opts.Workers = rf.workers
	return discretize.Dataset(ctx, f.Dataset, opts)
}

func (rf *runFlags) print(w io.Writer, out *mdfs.Output) error {
	var lines []string
	switch out.Mode() {
	case mdfs.OutputMaxGains:
		if rf.rank {
			lines = formatRanked(out.Gains(), rf.top)
		} else {
			lines = []string{formatGains(out.Gains())}
		}
	case mdfs.OutputMatchingTuples:
		for _, m := range out.Matches() {
			lines = append(lines, formatMatch(m))
		}
	}
	if len(lines) == 0 {
		return nil
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}
