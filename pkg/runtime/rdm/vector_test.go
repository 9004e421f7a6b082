// Copyright the Tython authors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package rdm

import "testing"

func eqInt64(a, b int64) bool { return a == b }
func ltInt64(a, b int64) bool { return a < b }

func TestVectorPushPopBack(t *testing.T) {
	v := NewVector(0)
	v.PushBack(1)
	v.PushBack(2)
	v.PushBack(3)

	if v.Len() != 3 {
		t.Fatalf("expected length 3, got %d", v.Len())
	}

	if v.PopBack() != 3 {
		t.Fatal("expected pop to return last pushed element")
	}

	if v.Len() != 2 {
		t.Fatalf("expected length 2 after pop, got %d", v.Len())
	}
}

func TestVectorInsertDelAt(t *testing.T) {
	v := VectorFromSlice([]int64{1, 2, 4})
	v.InsertAt(2, 3)

	if got := v.Data(); got[0] != 1 || got[1] != 2 || got[2] != 3 || got[3] != 4 {
		t.Fatalf("unexpected contents after insert: %v", got)
	}

	v.DelAt(0)

	if got := v.Data(); got[0] != 2 || len(got) != 3 {
		t.Fatalf("unexpected contents after del: %v", got)
	}
}

func TestVectorRemoveFirstContainsIndexCount(t *testing.T) {
	v := VectorFromSlice([]int64{5, 3, 5, 1})

	if !v.ContainsElem(5, eqInt64) {
		t.Fatal("expected 5 to be contained")
	}

	if v.IndexOf(5, eqInt64) != 0 {
		t.Fatal("expected first index of 5 to be 0")
	}

	if v.CountOf(5, eqInt64) != 2 {
		t.Fatal("expected two occurrences of 5")
	}

	v.RemoveFirst(5, eqInt64)

	if v.CountOf(5, eqInt64) != 1 {
		t.Fatal("expected exactly one 5 removed")
	}

	if v.Len() != 3 {
		t.Fatalf("expected length 3 after removal, got %d", v.Len())
	}
}

func TestVectorReverseSort(t *testing.T) {
	v := VectorFromSlice([]int64{3, 1, 2})
	v.Reverse()

	if got := v.Data(); got[0] != 2 || got[1] != 1 || got[2] != 3 {
		t.Fatalf("unexpected reversed contents: %v", got)
	}

	v.Sort(ltInt64)

	if got := v.Data(); got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("unexpected sorted contents: %v", got)
	}
}

func TestVectorExtendConcatRepeatCopy(t *testing.T) {
	a := VectorFromSlice([]int64{1, 2})
	b := VectorFromSlice([]int64{3, 4})

	cat := ConcatVector(a, b)
	if len(cat.Data()) != 4 {
		t.Fatal("expected concat length 4")
	}

	rep := RepeatVector(a, 3)
	if len(rep.Data()) != 6 {
		t.Fatal("expected repeat length 6")
	}

	cp := CopyVector(a)
	cp.PushBack(99)

	if a.Len() == cp.Len() {
		t.Fatal("expected copy to be independent of source")
	}

	a.ExtendFrom(b)

	if a.Len() != 4 {
		t.Fatalf("expected extended length 4, got %d", a.Len())
	}
}

func TestVectorIAddSelf(t *testing.T) {
	v := VectorFromSlice([]int64{1, 2})
	v.IAdd(v)

	if got := v.Data(); len(got) != 4 || got[2] != 1 || got[3] != 2 {
		t.Fatalf("unexpected self-concat contents: %v", got)
	}
}

func TestVectorIMul(t *testing.T) {
	v := VectorFromSlice([]int64{1, 2})
	v.IMul(3)

	if len(v.Data()) != 6 {
		t.Fatalf("expected length 6, got %d", len(v.Data()))
	}

	v.IMul(0)

	if v.Len() != 0 {
		t.Fatal("expected imul by 0 to empty the vector")
	}
}

func TestVectorSlice(t *testing.T) {
	v := VectorFromSlice([]int64{0, 1, 2, 3, 4})

	fwd := v.Slice(1, 4, 1)
	if got := fwd.Data(); len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("unexpected forward slice: %v", got)
	}

	rev := v.Slice(4, -1, -1)
	if got := rev.Data(); len(got) != 5 || got[0] != 4 || got[4] != 0 {
		t.Fatalf("unexpected reverse slice: %v", got)
	}
}

func TestVectorBoundsCheckPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on out-of-range Get")
		}
	}()

	v := NewVector(0)
	v.Get(0)
}
