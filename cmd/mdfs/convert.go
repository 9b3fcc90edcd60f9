package main

import (
	"bytes"

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-mdfs/dataset"
)

func newConvertCommand(g *globalOptions) *cobra.Command {
	var (
		csv         csvFlags
		compression string
	)

	cmd := &cobra.Command{
		Use:   "convert INPUT OUTPUT",
		Short: "Store continuous data as a dataset file",
		Long: "Convert reads a CSV or continuous dataset file and writes it as a continuous\n" +
			"dataset file, so later discretizations skip CSV parsing.",
		Args: cobra.ExactArgs(2),
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
			var buf bytes.Buffer
			if err := dataset.WriteDataset(&buf, ds, c); err != nil {
				return err
			}
			log.InfoContext(ctx, "converted",
				"variables", ds.Variables,
				"objects", ds.Objects,
				"bytes", buf.Len())
			return g.save(ctx, args[1], buf.Bytes())
		},
	}

	addCSVFlags(cmd, &csv)
	cmd.Flags().StringVar(&compression, "compression", "zstd", "output compression: none, lz4 or zstd")
	return cmd
}
