package main

import (
	"bytes"
	"time"

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-mdfs/dataset"
	"github.com/ajroetker/go-mdfs/mdfs/discretize"
)

func addDiscretizeFlags(cmd *cobra.Command, o *discretize.Options) {
	f := cmd.Flags()
	f.IntVar(&o.Divisions, "divisions", o.Divisions, "thresholds per variable (buckets = divisions+1)")
	f.IntVar(&o.Trials, "trials", o.Trials, "number of random discretizations")
	f.Uint64Var(&o.Seed, "seed", o.Seed, "discretization seed")
	f.Float32Var(&o.Range, "range", o.Range, "threshold jitter in [0, 1)")
	f.IntVar(&o.Workers, "workers", o.Workers, "variables discretized concurrently (0 = GOMAXPROCS)")
}

func addCSVFlags(cmd *cobra.Command, c *csvFlags) {
	f := cmd.Flags()
	f.StringVar(&c.comma, "csv-comma", ",", `CSV field separator ("tab" for tabs)`)
	f.BoolVar(&c.noHeader, "csv-no-header", false, "CSV input has no header row")
	f.IntVar(&c.decisionColumn, "decision-column", -1, "CSV decision column (negative counts from the end)")
}

func newDiscretizeCommand(g *globalOptions) *cobra.Command {
	opts := discretize.DefaultOptions()
	var (
		csv         csvFlags
		compression string
	)

	cmd := &cobra.Command{
		Use:   "discretize INPUT OUTPUT",
		Short: "Discretize continuous data into a dataset file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := dataset.ParseCompression(compression)
			if err != nil {
				return err
			}
			csvOpts, err := csv.options()
			if err != nil {
				return err
			}
			log, err := g.logger()
			if err != nil {
				return err
			}

			ds, err := g.loadContinuous(ctx, args[0], csvOpts)
			if err != nil {
				return err
			}

			start := time.Now()
			m, err := discretize.Dataset(ctx, ds, opts)
			if err != nil {
				return err
			}
			log.InfoContext(ctx, "discretized",
				"variables", m.Variables,
				"objects", m.Objects,
				"trials", m.Trials,
				"elapsed", time.Since(start))

			var buf bytes.Buffer
			if err := dataset.WriteMatrix(&buf, m, c); err != nil {
				return err
			}
			return g.save(ctx, args[1], buf.Bytes())
		},
	}

	addDiscretizeFlags(cmd, &opts)
	addCSVFlags(cmd, &csv)
	cmd.Flags().StringVar(&compression, "compression", "zstd", "output compression: none, lz4 or zstd")
	return cmd
}
