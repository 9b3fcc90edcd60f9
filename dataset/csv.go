package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ajroetker/go-mdfs/mdfs"
)

// CSVOptions configures ReadCSV.
type CSVOptions struct {
	// Comma is the field separator. Zero means ','.
	Comma rune

	// Header skips the first row.
	Header bool

	// DecisionColumn is the index of the 0/1 decision column. Negative
	// values count from the end; -1 (the default from DefaultCSVOptions) is
	// the last column.
	DecisionColumn int
}

// DefaultCSVOptions reads comma-separated rows with a header and the
// decision in the last column.
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{Comma: ',', Header: true, DecisionColumn: -1}
}

// ReadCSV reads a continuous dataset with one object per row and one variable
// per column.
func ReadCSV(r io.Reader, opts CSVOptions) (*mdfs.Dataset, error) {
	cr := csv.NewReader(r)
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}
	cr.ReuseRecord = true

	var (
		rows     [][]float32
		decision []int32
		width    = -1
		decCol   int
	)
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if line == 1 && opts.Header {
			continue
		}

		if width < 0 {
			width = len(rec)
			if width < 2 {
				return nil, fmt.Errorf("%w: need a variable and a decision column, got %d columns", mdfs.ErrShapeMismatch, width)
			}
			decCol = opts.DecisionColumn
			if decCol < 0 {
				decCol += width
			}
			if decCol < 0 || decCol >= width {
				return nil, fmt.Errorf("%w: decision column %d outside %d columns", mdfs.ErrShapeMismatch, opts.DecisionColumn, width)
			}
		}

		row := make([]float32, 0, width-1)
		for c, field := range rec {
			field = strings.TrimSpace(field)
			if c == decCol {
				d, err := strconv.ParseInt(field, 10, 32)
				if err != nil {
					return nil, fmt.Errorf("line %d: decision: %w", line, err)
				}
				decision = append(decision, int32(d))
				continue
			}
			x, err := strconv.ParseFloat(field, 32)
			if err != nil {
				return nil, fmt.Errorf("line %d column %d: %w", line, c+1, err)
			}
			row = append(row, float32(x))
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", mdfs.ErrShapeMismatch)
	}

	// Rows are objects; the dataset is stored variable-major.
	ds := mdfs.NewDataset(width-1, len(rows))
	copy(ds.Decision, decision)
	for o, row := range rows {
		for v, x := range row {
			ds.Values[v*ds.Objects+o] = x
		}
	}
	return ds, ds.Validate()
}
