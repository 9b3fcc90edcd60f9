package mdfs

import "fmt"

// Dataset is a continuous dataset: one float32 value per (variable, object),
// stored variable-major, and a 0/1 decision per object.
type Dataset struct {
	Variables int
	Objects   int
	Values    []float32
	Decision  []int32
}

// NewDataset allocates a zeroed dataset.
func NewDataset(variables, objects int) *Dataset {
	return &Dataset{
		Variables: variables,
		Objects:   objects,
		Values:    make([]float32, variables*objects),
		Decision:  make([]int32, objects),
	}
}

// Column returns the values of variable v. The slice aliases the dataset.
func (d *Dataset) Column(v int) []float32 {
	off := v * d.Objects
	return d.Values[off : off+d.Objects : off+d.Objects]
}

// Validate checks the buffer lengths and decision values.
func (d *Dataset) Validate() error {
	if d.Variables < 1 || d.Objects < 1 {
		return fmt.Errorf("%w: %d variables, %d objects", ErrShapeMismatch, d.Variables, d.Objects)
	}
	if len(d.Values) != d.Variables*d.Objects {
		return fmt.Errorf("%w: %d values, want %d", ErrShapeMismatch, len(d.Values), d.Variables*d.Objects)
	}
	if len(d.Decision) != d.Objects {
		return fmt.Errorf("%w: %d decisions for %d objects", ErrShapeMismatch, len(d.Decision), d.Objects)
	}
	for o, dec := range d.Decision {
		if dec != 0 && dec != 1 {
			return fmt.Errorf("%w: object %d has decision %d", ErrInvalidDecision, o, dec)
		}
	}
	return nil
}
