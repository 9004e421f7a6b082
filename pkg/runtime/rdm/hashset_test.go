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

func newIntSet(vals ...int64) *HashSet {
	s := NewHashSet(eqInt64, func(a int64) uint64 { return hashInt64(a) })
	for _, v := range vals {
		s.Add(v)
	}

	return s
}

func TestHashSetAddContainsDiscard(t *testing.T) {
	s := newIntSet()

	if !s.Add(1) {
		t.Fatal("expected first add to report new")
	}

	if s.Add(1) {
		t.Fatal("expected duplicate add to report not-new")
	}

	if !s.Contains(1) {
		t.Fatal("expected 1 to be contained")
	}

	if !s.Discard(1) {
		t.Fatal("expected discard to report present")
	}

	if s.Contains(1) {
		t.Fatal("expected 1 to be gone after discard")
	}

	if s.Discard(1) {
		t.Fatal("expected second discard to report absent")
	}
}

func TestHashSetRehashSurvivesGrowth(t *testing.T) {
	s := newIntSet()

	for i := int64(0); i < 200; i++ {
		s.Add(i)
	}

	if s.Len() != 200 {
		t.Fatalf("expected 200 elements, got %d", s.Len())
	}

	for i := int64(0); i < 200; i++ {
		if !s.Contains(i) {
			t.Fatalf("expected %d to survive rehash", i)
		}
	}
}

func TestHashSetTombstoneReuse(t *testing.T) {
	s := newIntSet(1, 2, 3)
	s.Discard(2)
	s.Add(4)

	if !s.Contains(1) || !s.Contains(3) || !s.Contains(4) {
		t.Fatal("expected remaining and newly added elements present")
	}

	if s.Contains(2) {
		t.Fatal("expected discarded element to stay absent")
	}
}

func TestHashSetBooleanOps(t *testing.T) {
	a := newIntSet(1, 2, 3)
	b := newIntSet(2, 3, 4)

	union := Union(a, b)
	if union.Len() != 4 {
		t.Fatalf("expected union length 4, got %d", union.Len())
	}

	inter := Intersection(a, b)
	if inter.Len() != 2 || !inter.Contains(2) || !inter.Contains(3) {
		t.Fatal("unexpected intersection contents")
	}

	diff := Difference(a, b)
	if diff.Len() != 1 || !diff.Contains(1) {
		t.Fatal("unexpected difference contents")
	}

	sym := SymmetricDifference(a, b)
	if sym.Len() != 2 || !sym.Contains(1) || !sym.Contains(4) {
		t.Fatal("unexpected symmetric difference contents")
	}
}

func TestHashSetRelations(t *testing.T) {
	a := newIntSet(1, 2)
	b := newIntSet(1, 2, 3)
	c := newIntSet(5, 6)

	if !IsSubset(a, b) || !IsProperSubset(a, b) {
		t.Fatal("expected a to be a proper subset of b")
	}

	if !IsSuperset(b, a) || !IsProperSuperset(b, a) {
		t.Fatal("expected b to be a proper superset of a")
	}

	if IsSubset(b, a) {
		t.Fatal("b should not be a subset of a")
	}

	if !IsDisjoint(a, c) {
		t.Fatal("expected a and c to be disjoint")
	}

	if IsDisjoint(a, b) {
		t.Fatal("expected a and b to share elements")
	}
}

func TestHashSetInPlaceOps(t *testing.T) {
	a := newIntSet(1, 2, 3)
	b := newIntSet(3, 4)

	a.UnionUpdate(b)
	if a.Len() != 4 {
		t.Fatalf("expected union-update length 4, got %d", a.Len())
	}

	a = newIntSet(1, 2, 3)
	a.IntersectionUpdate(b)
	if a.Len() != 1 || !a.Contains(3) {
		t.Fatal("unexpected intersection-update contents")
	}

	a = newIntSet(1, 2, 3)
	a.DifferenceUpdate(b)
	if a.Len() != 2 || a.Contains(3) {
		t.Fatal("unexpected difference-update contents")
	}

	a = newIntSet(1, 2, 3)
	a.SymmetricDifferenceUpdate(b)
	if a.Len() != 3 || a.Contains(3) || !a.Contains(4) {
		t.Fatal("unexpected symmetric-difference-update contents")
	}
}

func TestHashSetCopyIndependence(t *testing.T) {
	a := newIntSet(1, 2)
	b := a.Copy()
	b.Add(3)

	if a.Contains(3) {
		t.Fatal("expected copy to be independent")
	}
}

func TestHashSetClear(t *testing.T) {
	a := newIntSet(1, 2, 3)
	a.Clear()

	if a.Len() != 0 || a.Contains(1) {
		t.Fatal("expected clear to empty the set")
	}
}
