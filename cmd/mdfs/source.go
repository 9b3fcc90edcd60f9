package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ajroetker/go-mdfs/blobstore"
	miniostore "github.com/ajroetker/go-mdfs/blobstore/minio"
	s3store "github.com/ajroetker/go-mdfs/blobstore/s3"
	"github.com/ajroetker/go-mdfs/dataset"
	"github.com/ajroetker/go-mdfs/mdfs"
)

// location is a parsed input or output argument.
type location struct {
	scheme string // "", "s3" or "minio"
	bucket string
	key    string
}

func parseLocation(s string) (location, error) {
	scheme, rest, ok := strings.Cut(s, "://")
	if !ok {
		return location{key: s}, nil
	}
	switch scheme {
	case "s3", "minio":
	default:
		return location{}, fmt.Errorf("unsupported scheme %q in %q", scheme, s)
	}
	bucket, key, _ := strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return location{}, fmt.Errorf("%q: want %s://bucket/key", s, scheme)
	}
	return location{scheme: scheme, bucket: bucket, key: key}, nil
}

func (l location) String() string {
	if l.scheme == "" {
		return l.key
	}
	return l.scheme + "://" + l.bucket + "/" + l.key
}

// isCSV reports whether the location names a CSV file.
func (l location) isCSV() bool {
	return strings.EqualFold(filepath.Ext(l.key), ".csv")
}

// store returns the blob store holding l and the name of l inside it.
func (g *globalOptions) store(ctx context.Context, l location) (blobstore.Store, string, error) {
	switch l.scheme {
	case "s3":
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, "", fmt.Errorf("loading AWS config: %w", err)
		}
		return s3store.NewStore(s3.NewFromConfig(cfg), l.bucket, ""), l.key, nil
	case "minio":
		if g.minio.endpoint == "" {
			return nil, "", errors.New("minio:// URLs need --minio-endpoint or MINIO_ENDPOINT")
		}
		client, err := miniostore.NewClient(g.minio.endpoint, g.minio.accessKey, g.minio.secretKey, g.minio.secure)
		if err != nil {
			return nil, "", err
		}
		return miniostore.NewStore(client, l.bucket, ""), l.key, nil
	default:
		return blobstore.NewLocalStore(filepath.Dir(l.key)), filepath.Base(l.key), nil
	}
}

// fetch reads the whole object named by src.
func (g *globalOptions) fetch(ctx context.Context, src string) (location, []byte, error) {
	l, err := parseLocation(src)
	if err != nil {
		return l, nil, err
	}
	s, name, err := g.store(ctx, l)
	if err != nil {
		return l, nil, err
	}
	data, err := blobstore.ReadAll(ctx, s, name)
	if err != nil {
		return l, nil, fmt.Errorf("reading %s: %w", l, err)
	}
	return l, data, nil
}

// load reads a dataset file or CSV from src. CSV input always yields a
// continuous dataset.
func (g *globalOptions) load(ctx context.Context, src string, csvOpts dataset.CSVOptions) (*dataset.File, error) {
	l, data, err := g.fetch(ctx, src)
	if err != nil {
		return nil, err
	}

	if l.isCSV() {
		ds, err := dataset.ReadCSV(bytes.NewReader(data), csvOpts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", l, err)
		}
		return &dataset.File{
			Header: dataset.Header{
				Kind:      dataset.KindContinuous,
				Variables: uint32(ds.Variables),
				Objects:   uint32(ds.Objects),
			},
			Dataset: ds,
		}, nil
	}

	f, err := dataset.Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l, err)
	}
	return f, nil
}

// loadContinuous reads continuous data from a CSV or a continuous dataset
// file. Discretized files are rejected with dataset.ErrWrongKind.
func (g *globalOptions) loadContinuous(ctx context.Context, src string, csvOpts dataset.CSVOptions) (*mdfs.Dataset, error) {
	l, data, err := g.fetch(ctx, src)
	if err != nil {
		return nil, err
	}
	var ds *mdfs.Dataset
	if l.isCSV() {
		ds, err = dataset.ReadCSV(bytes.NewReader(data), csvOpts)
	} else {
		ds, err = dataset.ReadDataset(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l, err)
	}
	return ds, nil
}

// save writes data to dst.
func (g *globalOptions) save(ctx context.Context, dst string, data []byte) error {
	l, err := parseLocation(dst)
	if err != nil {
		return err
	}
	s, name, err := g.store(ctx, l)
	if err != nil {
		return err
	}
	if err := s.Put(ctx, name, data); err != nil {
		return fmt.Errorf("writing %s: %w", l, err)
	}
	return nil
}

type csvFlags struct {
	comma          string
	noHeader       bool
	decisionColumn int
}

func (c csvFlags) options() (dataset.CSVOptions, error) {
	opts := dataset.DefaultCSVOptions()
	switch c.comma {
	case "", ",":
	case `\t`, "tab":
		opts.Comma = '\t'
	default:
		r := []rune(c.comma)
		if len(r) != 1 {
			return opts, fmt.Errorf("invalid --csv-comma %q: want a single character", c.comma)
		}
		opts.Comma = r[0]
	}
	opts.Header = !c.noHeader
	opts.DecisionColumn = c.decisionColumn
	return opts, nil
}
