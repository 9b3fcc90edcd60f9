package mdfs

import (
	"github.com/ajroetker/go-mdfs/hwy"
	"github.com/ajroetker/go-mdfs/hwy/contrib/workerpool"
)

// Matrix is a discretized dataset: one code per (variable, trial, object),
// stored variable-major, then trial, then object.
type Matrix struct {
	Variables int
	Trials    int
	Objects   int

	// Data holds Variables*Trials*Objects codes in [0, Divisions].
	Data []int32

	// Decision holds one class label (0 or 1) per object.
	Decision []int32
}

// NewMatrix allocates a zeroed matrix of the given shape.
func NewMatrix(variables, trials, objects int) *Matrix {
	return &Matrix{
		Variables: variables,
		Trials:    trials,
		Objects:   objects,
		Data:      make([]int32, variables*trials*objects),
		Decision:  make([]int32, objects),
	}
}

// Codes returns the object codes of variable v under trial d. The slice
// aliases the matrix.
func (m *Matrix) Codes(v, d int) []int32 {
	off := (v*m.Trials + d) * m.Objects
	return m.Data[off : off+m.Objects : off+m.Objects]
}

// ClassCounts returns the number of objects with decision 0 and 1.
func (m *Matrix) ClassCounts() (c0, c1 int) {
	for _, d := range m.Decision {
		if d == 0 {
			c0++
		} else {
			c1++
		}
	}
	return c0, c1
}

// PackedMatrix holds the codes of a Matrix regrouped for lane width W.
//
// Trials are split into chunks of W. For each (variable, chunk) the codes are
// stored as objects x W, so the W trials of one object are adjacent. When the
// trial count is not a multiple of W the last chunk is padded with code 0.
type PackedMatrix struct {
	lanes     int
	variables int
	trials    int
	objects   int
	chunks    int
	data      []int32
}

// Pack regroups the codes of m for lane width lanes. For lanes == 1 the packed
// matrix aliases m.Data.
func (m *Matrix) Pack(lanes int) *PackedMatrix {
	return m.pack(lanes, nil)
}

// pack is Pack with the variables split over pool. A nil pool packs on the
// calling goroutine.
func (m *Matrix) pack(lanes int, pool *workerpool.Pool) *PackedMatrix {
	p := &PackedMatrix{
		lanes:     lanes,
		variables: m.Variables,
		trials:    m.Trials,
		objects:   m.Objects,
		chunks:    hwy.Chunks(m.Trials, lanes),
	}
	if lanes == 1 {
		p.data = m.Data
		return p
	}

	p.data = make([]int32, m.Variables*m.Objects*hwy.AlignedSize(m.Trials, lanes))
	variables := func(start, end int) {
		for v := start; v < end; v++ {
			interleave := func(first, count int) {
				dst := p.Column(v, first/lanes)
				for l := range count {
					src := m.Codes(v, first+l)
					for o, code := range src {
						dst[o*lanes+l] = code
					}
				}
			}
			hwy.ProcessWithTail(m.Trials, lanes,
				func(offset int) { interleave(offset, lanes) },
				interleave)
		}
	}
	if pool == nil {
		variables(0, m.Variables)
	} else {
		pool.ParallelFor(m.Variables, variables)
	}
	return p
}

// Lanes returns the lane width W.
func (p *PackedMatrix) Lanes() int { return p.lanes }

// Chunks returns the number of trial chunks.
func (p *PackedMatrix) Chunks() int { return p.chunks }

// Trials returns the number of real (unpadded) trials.
func (p *PackedMatrix) Trials() int { return p.trials }

// ChunkTrials returns the number of real trials in chunk.
func (p *PackedMatrix) ChunkTrials(chunk int) int {
	return hwy.ChunkLanes(chunk, p.trials, p.lanes)
}

// Column returns the objects x W codes of variable v in chunk.
func (p *PackedMatrix) Column(v, chunk int) []int32 {
	size := p.objects * p.lanes
	off := (v*p.chunks + chunk) * size
	return p.data[off : off+size : off+size]
}

// Code returns the code of variable v for trial d and object o.
func (p *PackedMatrix) Code(v, d, o int) int32 {
	return p.Column(v, d/p.lanes)[o*p.lanes+d%p.lanes]
}
