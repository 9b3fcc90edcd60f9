package hwy

import "testing"

func TestLaneView(t *testing.T) {
	data := make([]float32, 3*4)
	v := NewLaneView(data, 4)

	if v.Cells() != 3 {
		t.Fatalf("Cells() = %d, want 3", v.Cells())
	}

	*v.At(1, 2) += 1
	*v.At(1, 2) += 1
	*v.At(2, 0) = 7

	if data[1*4+2] != 2 {
		t.Errorf("At(1, 2) wrote %v, want 2", data[1*4+2])
	}

	vec := Wide4{}.Load(v.Vector(1))
	if vec[2] != 2 || vec[0] != 0 {
		t.Errorf("Vector(1) = %v, want lane 2 == 2", vec)
	}

	sub := v.Slice(2, 3)
	if sub.Cells() != 1 || *sub.At(0, 0) != 7 {
		t.Errorf("Slice(2, 3) = %v, want [7 0 0 0]", sub.Data())
	}

	v.Clear()
	for i, x := range data {
		if x != 0 {
			t.Errorf("Clear: data[%d] = %v, want 0", i, x)
		}
	}
}

func TestLaneViewVectorCapacity(t *testing.T) {
	v := NewLaneView(make([]float32, 16), 8)
	vec := v.Vector(0)
	if len(vec) != 8 || cap(vec) != 8 {
		t.Errorf("Vector(0): len=%d cap=%d, want 8/8", len(vec), cap(vec))
	}
}

func TestAlignedFloat32(t *testing.T) {
	for _, lanes := range SupportedLanes {
		for _, n := range []int{0, 1, 7, 64, 1000} {
			buf := AlignedFloat32(n, lanes)
			if len(buf) != n {
				t.Errorf("AlignedFloat32(%d, %d): len = %d", n, lanes, len(buf))
			}
			if !isAligned(buf, lanes) {
				t.Errorf("AlignedFloat32(%d, %d) is not aligned", n, lanes)
			}
			for i, x := range buf {
				if x != 0 {
					t.Errorf("AlignedFloat32(%d, %d)[%d] = %v, want 0", n, lanes, i, x)
				}
			}
		}
	}
}

func TestLaneViewLane(t *testing.T) {
	// 3 cells x 4 lanes; cell c lane l holds 10*c + l.
	data := make([]float32, 12)
	for c := range 3 {
		for l := range 4 {
			data[c*4+l] = float32(10*c + l)
		}
	}
	v := NewLaneView(data, 4)

	dst := make([]float32, 3)
	if n := v.Lane(2, dst); n != 3 {
		t.Fatalf("Lane() wrote %d values, want 3", n)
	}
	want := []float32{2, 12, 22}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("Lane(2)[%d] = %v, want %v", i, dst[i], want[i])
		}
	}
}
