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

package infogain

import "github.com/ajroetker/go-mdfs/hwy"

// Build fills the counters of ws for one tuple and one chunk of W trials.
//
// columns[k] holds the packed codes of tuple position k for this chunk:
// objects*W values, the W trial codes of one object adjacent. decision holds
// one 0/1 label per object. The counters must be zero on entry (fresh or
// Reset).
func Build[F, I any, B hwy.Backend[F, I]](b B, p Params, ws *Workspace, columns [][]int32, decision []int32) {
	w := b.Lanes()
	radix := b.SetInt(int32(p.Div + 1))
	class := [2]hwy.LaneView{ws.class0, ws.class1}

	for o, dec := range decision {
		off := o * w
		bucket := b.SetInt(0)
		for k := p.Dim - 1; k >= 0; k-- {
			bucket = b.AddInt(b.MulInt(bucket, radix), b.LoadInt(columns[k][off:]))
		}
		b.StoreInt(bucket, ws.buckets)

		counters := class[dec]
		for lane, cell := range ws.buckets {
			*counters.At(int(cell), lane) += 1
		}
	}

	addPseudo[F, I](b, ws.class0, p.Cells, b.Set(p.Pseudo0))
	addPseudo[F, I](b, ws.class1, p.Cells, b.Set(p.Pseudo1))
}

func addPseudo[F, I any, B hwy.Backend[F, I]](b B, counters hwy.LaneView, cells int, pseudo F) {
	for c := range cells {
		dst := counters.Vector(c)
		b.Store(b.Add(b.Load(dst), pseudo), dst)
	}
}
