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

import "github.com/bits-and-blooms/bitset"

// Every probe slot is in exactly one of three states: EMPTY (never used,
// or reclaimed down to empty — only possible on Clear/rehash), OCCUPIED
// (holds a live element) or DELETED (held an element that was removed,
// a tombstone kept so later probes for a different key still skip over
// it). Spec §4.3.3 describes these as sentinel values written into the
// slot itself; here they are tracked as two parallel bitsets rather than
// poisoned payload values, since an element's raw int64 payload has no
// bit pattern that can be safely reserved as a sentinel. occupied and
// tombstone are always disjoint; a slot is EMPTY when it is in neither.
type HashSet struct {
	elems     []int64
	hashes    []uint64
	occupied  *bitset.BitSet
	tombstone *bitset.BitSet
	length    int
	eq        func(a, b int64) bool
	hash      func(a int64) uint64
}

const hashsetInitialCapacity = 16

// NewHashSet creates an empty set using eq/hash for element comparison
// and hashing — for primitive element types these are raw operations
// (splitmix64 on the bit pattern); for user-class element types they are
// the by-handle `__eq__`/`__hash__` dispatched at the call site (spec
// §4.5.2).
func NewHashSet(eq func(a, b int64) bool, hash func(a int64) uint64) *HashSet {
	return &HashSet{
		elems:     make([]int64, hashsetInitialCapacity),
		hashes:    make([]uint64, hashsetInitialCapacity),
		occupied:  bitset.New(hashsetInitialCapacity),
		tombstone: bitset.New(hashsetInitialCapacity),
		eq:        eq,
		hash:      hash,
	}
}

func (s *HashSet) capacity() int { return len(s.elems) }

// Len returns the number of live elements.
func (s *HashSet) Len() int { return s.length }

// find locates the slot for elem: either the slot already holding it
// (found=true), or the first reusable (empty or tombstoned) slot a
// subsequent Add should claim.
func (s *HashSet) find(elem int64, h uint64) (idx int, found bool) {
	capacity := s.capacity()
	start := int(h % uint64(capacity))
	firstReusable := -1

	for i := 0; i < capacity; i++ {
		probe := (start + i) % capacity

		switch {
		case s.occupied.Test(uint(probe)):
			if s.hashes[probe] == h && s.eq(s.elems[probe], elem) {
				return probe, true
			}
		case s.tombstone.Test(uint(probe)):
			if firstReusable < 0 {
				firstReusable = probe
			}
		default: // EMPTY: probing stops here, nothing further along the chain
			if firstReusable < 0 {
				firstReusable = probe
			}

			return firstReusable, false
		}
	}

	return firstReusable, false
}

// Contains implements contains(x) (spec §4.3.3).
func (s *HashSet) Contains(elem int64) bool {
	_, found := s.find(elem, s.hash(elem))
	return found
}

// Add implements add(x): inserts elem if not already present, returning
// whether it was newly added.
func (s *HashSet) Add(elem int64) bool {
	h := s.hash(elem)

	idx, found := s.find(elem, h)
	if found {
		return false
	}

	s.elems[idx] = elem
	s.hashes[idx] = h
	s.occupied.Set(uint(idx))
	s.tombstone.Clear(uint(idx))
	s.length++

	if s.length*4 >= s.capacity()*3 {
		s.rehash(s.capacity() * 2)
	}

	return true
}

// Discard implements discard(x)/remove(x): deletes elem if present,
// returning whether it was present. The slot becomes a tombstone rather
// than EMPTY so later probes for other keys still traverse it.
func (s *HashSet) Discard(elem int64) bool {
	idx, found := s.find(elem, s.hash(elem))
	if !found {
		return false
	}

	s.occupied.Clear(uint(idx))
	s.tombstone.Set(uint(idx))
	s.length--

	return true
}

func (s *HashSet) rehash(newCap int) {
	oldElems, oldHashes, oldOccupied := s.elems, s.hashes, s.occupied

	s.elems = make([]int64, newCap)
	s.hashes = make([]uint64, newCap)
	s.occupied = bitset.New(uint(newCap))
	s.tombstone = bitset.New(uint(newCap))

	for i := range oldElems {
		if !oldOccupied.Test(uint(i)) {
			continue
		}

		idx, _ := s.find(oldElems[i], oldHashes[i])
		s.elems[idx] = oldElems[i]
		s.hashes[idx] = oldHashes[i]
		s.occupied.Set(uint(idx))
	}
}

// Elements returns every live element, in probe-table order. Order is
// unspecified by the language subset but is stable across repeated calls
// between mutations, which this satisfies.
func (s *HashSet) Elements() []int64 {
	out := make([]int64, 0, s.length)

	for i := uint(0); i < uint(s.capacity()); i++ {
		if s.occupied.Test(i) {
			out = append(out, s.elems[i])
		}
	}

	return out
}

// Clear empties the set back to its initial capacity.
func (s *HashSet) Clear() {
	s.elems = make([]int64, hashsetInitialCapacity)
	s.hashes = make([]uint64, hashsetInitialCapacity)
	s.occupied = bitset.New(hashsetInitialCapacity)
	s.tombstone = bitset.New(hashsetInitialCapacity)
	s.length = 0
}

// Copy returns an independent copy of the set.
func (s *HashSet) Copy() *HashSet {
	return &HashSet{
		elems:     append([]int64(nil), s.elems...),
		hashes:    append([]uint64(nil), s.hashes...),
		occupied:  s.occupied.Clone(),
		tombstone: s.tombstone.Clone(),
		length:    s.length,
		eq:        s.eq,
		hash:      s.hash,
	}
}

// Union implements a | b: a new set holding every element of both.
func Union(a, b *HashSet) *HashSet {
	out := a.Copy()
	for _, e := range b.Elements() {
		out.Add(e)
	}

	return out
}

// Intersection implements a & b: a new set holding only elements present
// in both.
func Intersection(a, b *HashSet) *HashSet {
	out := NewHashSet(a.eq, a.hash)
	for _, e := range a.Elements() {
		if b.Contains(e) {
			out.Add(e)
		}
	}

	return out
}

// Difference implements a - b: elements of a not present in b.
func Difference(a, b *HashSet) *HashSet {
	out := NewHashSet(a.eq, a.hash)
	for _, e := range a.Elements() {
		if !b.Contains(e) {
			out.Add(e)
		}
	}

	return out
}

// SymmetricDifference implements a ^ b: elements in exactly one of a, b.
func SymmetricDifference(a, b *HashSet) *HashSet {
	out := NewHashSet(a.eq, a.hash)

	for _, e := range a.Elements() {
		if !b.Contains(e) {
			out.Add(e)
		}
	}

	for _, e := range b.Elements() {
		if !a.Contains(e) {
			out.Add(e)
		}
	}

	return out
}

// UnionUpdate implements a |= b in place.
func (s *HashSet) UnionUpdate(other *HashSet) {
	for _, e := range other.Elements() {
		s.Add(e)
	}
}

// IntersectionUpdate implements a &= b in place.
func (s *HashSet) IntersectionUpdate(other *HashSet) {
	for _, e := range s.Elements() {
		if !other.Contains(e) {
			s.Discard(e)
		}
	}
}

// DifferenceUpdate implements a -= b in place.
func (s *HashSet) DifferenceUpdate(other *HashSet) {
	for _, e := range other.Elements() {
		s.Discard(e)
	}
}

// SymmetricDifferenceUpdate implements a ^= b in place.
func (s *HashSet) SymmetricDifferenceUpdate(other *HashSet) {
	toAdd := make([]int64, 0)

	for _, e := range other.Elements() {
		if s.Contains(e) {
			s.Discard(e)
		} else {
			toAdd = append(toAdd, e)
		}
	}

	for _, e := range toAdd {
		s.Add(e)
	}
}

// IsDisjoint implements isdisjoint(other).
func IsDisjoint(a, b *HashSet) bool {
	for _, e := range a.Elements() {
		if b.Contains(e) {
			return false
		}
	}

	return true
}

// IsSubset implements issubset(other) (<=).
func IsSubset(a, b *HashSet) bool {
	for _, e := range a.Elements() {
		if !b.Contains(e) {
			return false
		}
	}

	return true
}

// IsProperSubset implements the strict (<) variant.
func IsProperSubset(a, b *HashSet) bool {
	return IsSubset(a, b) && a.Len() < b.Len()
}

// IsSuperset implements issuperset(other) (>=).
func IsSuperset(a, b *HashSet) bool {
	return IsSubset(b, a)
}

// IsProperSuperset implements the strict (>) variant.
func IsProperSuperset(a, b *HashSet) bool {
	return IsSuperset(a, b) && a.Len() > b.Len()
}
