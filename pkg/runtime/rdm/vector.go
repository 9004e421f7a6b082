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

import "github.com/tython-lang/tythonc/pkg/runtime/rem"

// Vector is the growable vector of spec §4.3.2, backing both list and
// bytearray values. Unlike Buffer it is mutable in place.
type Vector struct {
	data []int64
}

// NewVector creates an empty vector with the given initial capacity.
func NewVector(capacity int) *Vector {
	if capacity < 0 {
		capacity = 0
	}

	return &Vector{data: make([]int64, 0, capacity)}
}

// VectorFromSlice builds a vector pre-populated with elems, used by
// MakeList/MakeSet literal lowering.
func VectorFromSlice(elems []int64) *Vector {
	v := NewVector(len(elems))
	v.data = append(v.data, elems...)

	return v
}

// Len returns the number of live elements.
func (v *Vector) Len() int { return len(v.data) }

// Cap returns the current backing capacity.
func (v *Vector) Cap() int { return cap(v.data) }

// growTo ensures the vector's capacity is at least need, following the
// growth policy of spec §4.3.2: max(length+1, capacity*2, 8).
func (v *Vector) growTo(need int) {
	if cap(v.data) >= need {
		return
	}

	target := need
	if len(v.data)+1 > target {
		target = len(v.data) + 1
	}

	if cap(v.data)*2 > target {
		target = cap(v.data) * 2
	}

	if target < 8 {
		target = 8
	}

	grown := make([]int64, len(v.data), target)
	copy(grown, v.data)
	v.data = grown
}

// boundsCheck raises IndexError unless 0 <= i < v.Len().
func (v *Vector) boundsCheck(i int) {
	if i < 0 || i >= v.Len() {
		rem.Raise(rem.IndexError, "vector index out of range")
	}
}

// Get returns the element at index i (spec §4.3.2's element accessor).
func (v *Vector) Get(i int) int64 {
	v.boundsCheck(i)
	return v.data[i]
}

// Set overwrites the element at index i.
func (v *Vector) Set(i int, x int64) {
	v.boundsCheck(i)
	v.data[i] = x
}

// PushBack implements push_back(x) (spec §4.3.2).
func (v *Vector) PushBack(x int64) {
	v.growTo(len(v.data) + 1)
	v.data = append(v.data, x)
}

// PopBack implements pop_back(): removes and returns the last element,
// raising IndexError on an empty vector.
func (v *Vector) PopBack() int64 {
	if len(v.data) == 0 {
		rem.Raise(rem.IndexError, "pop from empty list")
	}

	last := v.data[len(v.data)-1]
	v.data = v.data[:len(v.data)-1]

	return last
}

// InsertAt implements insert_at(i, x), shifting later elements right.
// Python's list.insert clamps out-of-range indices rather than raising.
func (v *Vector) InsertAt(i int, x int64) {
	if i < 0 {
		i = 0
	}

	if i > len(v.data) {
		i = len(v.data)
	}

	v.growTo(len(v.data) + 1)
	v.data = append(v.data, 0)
	copy(v.data[i+1:], v.data[i:len(v.data)-1])
	v.data[i] = x
}

// DelAt implements del_at(i): removes the element at i, shifting later
// elements left.
func (v *Vector) DelAt(i int) {
	v.boundsCheck(i)
	copy(v.data[i:], v.data[i+1:])
	v.data = v.data[:len(v.data)-1]
}

// RemoveFirst implements remove_first(x) under an equality predicate eq:
// deletes the first element for which eq(elem, x) holds, raising
// ValueError if none match (mirrors list.remove).
func (v *Vector) RemoveFirst(x int64, eq func(a, b int64) bool) {
	for i, e := range v.data {
		if eq(e, x) {
			v.DelAt(i)
			return
		}
	}

	rem.Raise(rem.ValueError, "value not found in list")
}

// ContainsElem implements contains(x) under an equality predicate.
func (v *Vector) ContainsElem(x int64, eq func(a, b int64) bool) bool {
	return v.IndexOf(x, eq) >= 0
}

// IndexOf implements index_of(x) under an equality predicate, returning
// -1 when absent.
func (v *Vector) IndexOf(x int64, eq func(a, b int64) bool) int {
	for i, e := range v.data {
		if eq(e, x) {
			return i
		}
	}

	return -1
}

// CountOf implements count_of(x) under an equality predicate.
func (v *Vector) CountOf(x int64, eq func(a, b int64) bool) int {
	n := 0

	for _, e := range v.data {
		if eq(e, x) {
			n++
		}
	}

	return n
}

// Reverse implements reverse(): in-place reversal.
func (v *Vector) Reverse() {
	for i, j := 0, len(v.data)-1; i < j; i, j = i+1, j-1 {
		v.data[i], v.data[j] = v.data[j], v.data[i]
	}
}

// Sort implements sort() under a less-than predicate, which for
// user-class element types is the by-handle `__lt__` dispatched at the
// call site (spec §4.5.2) and for primitive element types is a
// monomorphic comparison. The sort is not required to be stable by the
// language subset, so a plain insertion sort keeps this dependency-free
// and correct for the vector sizes this runtime targets.
func (v *Vector) Sort(less func(a, b int64) bool) {
	for i := 1; i < len(v.data); i++ {
		x := v.data[i]
		j := i - 1

		for j >= 0 && less(x, v.data[j]) {
			v.data[j+1] = v.data[j]
			j--
		}

		v.data[j+1] = x
	}
}

// ExtendFrom implements extend_from(other): appends every element of
// other in order.
func (v *Vector) ExtendFrom(other *Vector) {
	v.growTo(len(v.data) + len(other.data))
	v.data = append(v.data, other.data...)
}

// ConcatVector implements concat(a, b): a freshly allocated vector
// holding a's elements followed by b's.
func ConcatVector(a, b *Vector) *Vector {
	out := NewVector(a.Len() + b.Len())
	out.data = append(out.data, a.data...)
	out.data = append(out.data, b.data...)

	return out
}

// RepeatVector implements repeat(n): n <= 0 yields an empty vector.
func RepeatVector(a *Vector, n int) *Vector {
	if n <= 0 {
		return NewVector(0)
	}

	out := NewVector(a.Len() * n)
	for i := 0; i < n; i++ {
		out.data = append(out.data, a.data...)
	}

	return out
}

// CopyVector implements copy(): a shallow copy with its own backing
// array.
func CopyVector(a *Vector) *Vector {
	out := NewVector(a.Len())
	out.data = append(out.data, a.data...)

	return out
}

// IAdd implements += (list/bytearray in-place concatenation). When other
// is the same vector (`x += x`), the elements to append must be
// snapshotted first since appending into v.data while reading from it
// would otherwise double unboundedly.
func (v *Vector) IAdd(other *Vector) {
	if other == v {
		snapshot := append([]int64(nil), other.data...)
		v.ExtendFrom(&Vector{data: snapshot})

		return
	}

	v.ExtendFrom(other)
}

// IMul implements *= (in-place repetition).
func (v *Vector) IMul(n int) {
	if n <= 0 {
		v.data = v.data[:0]
		return
	}

	snapshot := append([]int64(nil), v.data...)
	v.growTo(len(snapshot) * n)

	for i := 1; i < n; i++ {
		v.data = append(v.data, snapshot...)
	}
}

// Slice implements a[start:stop:step] over the vector, returning a fresh
// vector. step == 0 is rejected by the lowering stage before this is
// ever called.
func (v *Vector) Slice(start, stop, step int) *Vector {
	var out []int64

	if step > 0 {
		for i := start; i < stop && i < len(v.data); i += step {
			if i >= 0 {
				out = append(out, v.data[i])
			}
		}
	} else {
		for i := start; i > stop && i >= 0; i += step {
			if i < len(v.data) {
				out = append(out, v.data[i])
			}
		}
	}

	return &Vector{data: out}
}

// Data exposes the raw backing slice for iteration by the compiled
// program's for-loop lowering (spec §4.5.3's list/tuple counted loop).
func (v *Vector) Data() []int64 { return v.data }
