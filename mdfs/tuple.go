package mdfs

import "iter"

// Tuple is a strictly increasing list of variable indices. Tuples returned
// by an Enumerator are only valid until the next call to Next.
type Tuple []int

// Enumerator walks every D-combination of [0, variables) in lexicographic
// order, starting from {0, 1, ..., D-1}.
type Enumerator struct {
	dim       int
	variables int
	t         Tuple
}

// NewEnumerator returns an enumerator over the dim-subsets of variables
// indices. If dim is outside [1, variables] the enumerator starts done.
func NewEnumerator(dim, variables int) *Enumerator {
	e := &Enumerator{dim: dim, variables: variables}
	if dim < 1 || dim > variables {
		e.t = Tuple{-1}
		return e
	}
	e.t = make(Tuple, dim)
	for i := range e.t {
		e.t[i] = i
	}
	return e
}

// Tuple returns the current tuple. Callers must not modify it.
func (e *Enumerator) Tuple() Tuple { return e.t }

// Done reports whether every tuple has been visited.
func (e *Enumerator) Done() bool { return e.t[0] < 0 }

// Next advances to the following tuple, or to the done state after the last.
func (e *Enumerator) Next() {
	if e.Done() {
		return
	}
	for i := e.dim - 1; i >= 0; i-- {
		if e.t[i] < e.variables-e.dim+i {
			e.t[i]++
			for j := i + 1; j < e.dim; j++ {
				e.t[j] = e.t[j-1] + 1
			}
			return
		}
	}
	e.t[0] = -1
}

// Count returns C(variables, dim), the total number of tuples. It is 0 when
// dim is outside [1, variables], matching an enumerator that starts done.
func (e *Enumerator) Count() int {
	if e.dim < 1 || e.dim > e.variables {
		return 0
	}
	return binomial(e.variables, e.dim)
}

// All returns an iterator over the remaining tuples. Each yielded tuple is
// only valid during its iteration step.
func (e *Enumerator) All() iter.Seq[Tuple] {
	return func(yield func(Tuple) bool) {
		for ; !e.Done(); e.Next() {
			if !yield(e.t) {
				return
			}
		}
	}
}

func binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	k = min(k, n-k)
	c := 1
	for i := 1; i <= k; i++ {
		c = c * (n - k + i) / i
	}
	return c
}
