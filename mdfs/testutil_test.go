package mdfs

import "math/rand"

// randomMatrix fills a matrix with uniform codes in [0, div] and a balanced
// random decision.
func randomMatrix(rng *rand.Rand, variables, trials, objects, div int) *Matrix {
	m := NewMatrix(variables, trials, objects)
	for i := range m.Data {
		m.Data[i] = int32(rng.Intn(div + 1))
	}
	for o := range m.Decision {
		m.Decision[o] = int32(o % 2)
	}
	rng.Shuffle(len(m.Decision), func(i, j int) {
		m.Decision[i], m.Decision[j] = m.Decision[j], m.Decision[i]
	})
	return m
}

// setColumn writes codes for variable v under every trial.
func setColumn(m *Matrix, v int, codes []int32) {
	for d := range m.Trials {
		copy(m.Codes(v, d), codes)
	}
}
