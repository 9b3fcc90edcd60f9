package mdfs

import "github.com/RoaringBitmap/roaring/v2"

// VariableSet is the restriction set of "interesting" variable indices.
//
// A nil or empty set means no restriction.
type VariableSet struct {
	bm *roaring.Bitmap
}

// NewVariableSet returns a set holding vars. Negative indices are ignored;
// Config.Validate reports them before a set is built.
func NewVariableSet(vars ...int) *VariableSet {
	bm := roaring.New()
	for _, v := range vars {
		if v >= 0 {
			bm.Add(uint32(v))
		}
	}
	return &VariableSet{bm: bm}
}

// Empty reports whether the set holds no variables.
func (s *VariableSet) Empty() bool {
	return s == nil || s.bm.IsEmpty()
}

// Contains reports whether v is in the set.
func (s *VariableSet) Contains(v int) bool {
	return s != nil && v >= 0 && s.bm.Contains(uint32(v))
}

// Intersects reports whether any variable of t is in the set.
func (s *VariableSet) Intersects(t Tuple) bool {
	for _, v := range t {
		if s.Contains(v) {
			return true
		}
	}
	return false
}
