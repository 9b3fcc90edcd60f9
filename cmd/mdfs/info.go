package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-mdfs/dataset"
	"github.com/ajroetker/go-mdfs/hwy"
)

func newInfoCommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info [FILE...]",
		Short: "Print the detected backend and dataset file headers",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			printBackend(w)
			for _, name := range args {
				h, err := g.header(cmd.Context(), name)
				if err != nil {
					return err
				}
				fmt.Fprintln(w)
				printHeader(w, name, h)
			}
			return nil
		},
	}
}

func printBackend(w io.Writer) {
	fmt.Fprintf(w, "GOOS/GOARCH:     %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(w, "NumCPU:          %d\n", runtime.NumCPU())
	fmt.Fprintf(w, "Dispatch level:  %s\n", hwy.CurrentLevel())
	fmt.Fprintf(w, "Dispatch width:  %d bytes\n", hwy.CurrentWidth())
	fmt.Fprintf(w, "Preferred lanes: %d\n", hwy.PreferredLanes())
	fmt.Fprintf(w, "AVX2 backend:    %v\n", hwy.HasAVX2Backend())
	fmt.Fprintf(w, "HWY_NO_SIMD:     %v\n", hwy.NoSimdEnv())
}

func printHeader(w io.Writer, name string, h dataset.Header) {
	fmt.Fprintf(w, "%s:\n", name)
	fmt.Fprintf(w, "  kind:        %v\n", h.Kind)
	fmt.Fprintf(w, "  version:     %d\n", h.Version)
	fmt.Fprintf(w, "  compression: %v\n", h.Compression)
	fmt.Fprintf(w, "  variables:   %d\n", h.Variables)
	if h.Kind == dataset.KindDiscretized {
		fmt.Fprintf(w, "  trials:      %d\n", h.Trials)
	}
	fmt.Fprintf(w, "  objects:     %d\n", h.Objects)
	fmt.Fprintf(w, "  checksum:    %08x\n", h.Checksum)
}

// header reads only the fixed-size header of a dataset file.
func (g *globalOptions) header(ctx context.Context, src string) (dataset.Header, error) {
	l, err := parseLocation(src)
	if err != nil {
		return dataset.Header{}, err
	}
	s, name, err := g.store(ctx, l)
	if err != nil {
		return dataset.Header{}, err
	}
	b, err := s.Open(ctx, name)
	if err != nil {
		return dataset.Header{}, fmt.Errorf("opening %s: %w", l, err)
	}
	defer b.Close()

	buf := make([]byte, dataset.HeaderSize)
	if _, err := b.ReadAt(ctx, buf, 0); err != nil && err != io.EOF {
		return dataset.Header{}, fmt.Errorf("reading %s: %w", l, err)
	}
	h, err := dataset.ReadHeader(bytes.NewReader(buf))
	if err != nil {
		return dataset.Header{}, fmt.Errorf("%s: %w", l, err)
	}
	return h, nil
}
