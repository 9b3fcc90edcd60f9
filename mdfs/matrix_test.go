package mdfs

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-mdfs/hwy/contrib/workerpool"
)

func TestMatrixCodes(t *testing.T) {
	m := NewMatrix(2, 3, 4)
	for i := range m.Data {
		m.Data[i] = int32(i)
	}

	// variable 1, trial 2 starts at (1*3 + 2) * 4.
	assert.Equal(t, []int32{20, 21, 22, 23}, m.Codes(1, 2))
	assert.Equal(t, 4, cap(m.Codes(0, 0)))
}

func TestMatrixClassCounts(t *testing.T) {
	m := NewMatrix(1, 1, 5)
	copy(m.Decision, []int32{0, 1, 1, 0, 1})
	c0, c1 := m.ClassCounts()
	assert.Equal(t, 2, c0)
	assert.Equal(t, 3, c1)
}

func TestPackRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, trials := range []int{1, 3, 4, 8, 11, 16} {
		m := randomMatrix(rng, 3, trials, 7, 2)
		for _, lanes := range []int{1, 4, 8} {
			t.Run(fmt.Sprintf("T%d/W%d", trials, lanes), func(t *testing.T) {
				p := m.Pack(lanes)
				require.Equal(t, lanes, p.Lanes())
				require.Equal(t, (trials+lanes-1)/lanes, p.Chunks())

				for v := range m.Variables {
					for d := range trials {
						for o, want := range m.Codes(v, d) {
							require.Equal(t, want, p.Code(v, d, o), "v=%d d=%d o=%d", v, d, o)
						}
					}
				}

				counted := 0
				for c := range p.Chunks() {
					counted += p.ChunkTrials(c)
				}
				assert.Equal(t, trials, counted)
			})
		}
	}
}

func TestPackPadsWithZero(t *testing.T) {
	m := NewMatrix(1, 5, 2)
	for i := range m.Data {
		m.Data[i] = 1
	}
	p := m.Pack(4)
	require.Equal(t, 2, p.Chunks())
	assert.Equal(t, 1, p.ChunkTrials(1))

	// chunk 1 holds trial 4 in lane 0, padding in lanes 1..3.
	assert.Equal(t, []int32{1, 0, 0, 0, 1, 0, 0, 0}, p.Column(0, 1))
}

func TestPackScalarAliases(t *testing.T) {
	m := NewMatrix(2, 2, 3)
	p := m.Pack(1)
	m.Data[7] = 1
	assert.Equal(t, int32(1), p.Code(1, 0, 1))
}

func TestPackParallelMatchesSerial(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	m := randomMatrix(rng, 9, 11, 13, 3)
	pool := workerpool.New(3)
	defer pool.Close()

	for _, lanes := range []int{4, 8} {
		serial := m.Pack(lanes)
		parallel := m.pack(lanes, pool)
		assert.Len(t, parallel.data, m.Variables*m.Objects*parallel.Chunks()*lanes)
		assert.Equal(t, serial.data, parallel.data, "W=%d", lanes)
	}
}
