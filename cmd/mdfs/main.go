// Copyright 2025 go-mdfs Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command mdfs discretizes datasets and runs multidimensional feature
// selection over them.
//
// Usage:
//
//	mdfs convert data.csv raw.mdfs
//	mdfs discretize --divisions 2 --trials 30 data.csv data.mdfs
//	mdfs run --dimension 2 --divisions 2 data.mdfs
//	mdfs run --dimension 2 --divisions 2 --output matching-tuples --threshold 5 s3://bucket/data.mdfs
//	mdfs info data.mdfs
//
// Inputs and outputs are local paths, s3://bucket/key URLs (credentials from
// the default AWS chain) or minio://bucket/key URLs (endpoint and keys from
// the --minio-* flags or MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY).
// Files ending in .csv are read as continuous data with the decision in the
// last column; anything else must be a dataset file written by this tool,
// continuous (convert) or discretized (discretize).
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-mdfs/mdfs"
)

type globalOptions struct {
	logLevel  string
	logFormat string
	minio     minioOptions
}

type minioOptions struct {
	endpoint  string
	accessKey string
	secretKey string
	secure    bool
}

func (g *globalOptions) logger() (*mdfs.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(g.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", g.logLevel, err)
	}
	switch strings.ToLower(g.logFormat) {
	case "text":
		return mdfs.NewTextLogger(level), nil
	case "json":
		return mdfs.NewJSONLogger(level), nil
	default:
		return nil, fmt.Errorf("invalid --log-format %q: want text or json", g.logFormat)
	}
}

func newRootCommand() *cobra.Command {
	g := &globalOptions{}
	root := &cobra.Command{
		Use:           "mdfs",
		Short:         "Multidimensional feature selection",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	pf.StringVar(&g.logFormat, "log-format", "text", "log format: text or json")
	pf.StringVar(&g.minio.endpoint, "minio-endpoint", os.Getenv("MINIO_ENDPOINT"), "MinIO endpoint for minio:// URLs")
	pf.StringVar(&g.minio.accessKey, "minio-access-key", os.Getenv("MINIO_ACCESS_KEY"), "MinIO access key")
	pf.StringVar(&g.minio.secretKey, "minio-secret-key", os.Getenv("MINIO_SECRET_KEY"), "MinIO secret key")
	pf.BoolVar(&g.minio.secure, "minio-secure", true, "use TLS for MinIO")

	root.AddCommand(
		newConvertCommand(g),
		newDiscretizeCommand(g),
		newRunCommand(g),
		newInfoCommand(g),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "mdfs: %v\n", err)
		stop()
		os.Exit(1)
	}
}
