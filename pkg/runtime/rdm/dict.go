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

// dictEntry is one key/value pair of a Dict's backing array.
type dictEntry struct {
	key   int64
	value int64
}

// Dict implements spec §4.3.4: a linear-scan associative array. Unlike
// the hash set this runtime does not open-address dict keys — the spec
// names it as a plain scan, so lookups are O(length), traded for a much
// simpler and more cache-friendly implementation at the sizes this
// subset's programs are expected to use.
type Dict struct {
	entries []dictEntry
	eq      func(a, b int64) bool
}

// NewDict creates an empty dict comparing keys with eq — raw equality
// for primitive key types, or the by-handle `__eq__` for user-class key
// types (spec §4.5.2).
func NewDict(eq func(a, b int64) bool) *Dict {
	return &Dict{eq: eq}
}

// Len returns the number of entries.
func (d *Dict) Len() int { return len(d.entries) }

func (d *Dict) indexOf(key int64) int {
	for i, e := range d.entries {
		if d.eq(e.key, key) {
			return i
		}
	}

	return -1
}

// Get implements d[key], raising KeyError if absent.
func (d *Dict) Get(key int64) int64 {
	i := d.indexOf(key)
	if i < 0 {
		rem.Raise(rem.KeyError, "key not found")
	}

	return d.entries[i].value
}

// Contains implements `key in d`.
func (d *Dict) Contains(key int64) bool {
	return d.indexOf(key) >= 0
}

// Set implements d[key] = value: overwrites an existing entry in place,
// or appends a new one.
func (d *Dict) Set(key, value int64) {
	if i := d.indexOf(key); i >= 0 {
		d.entries[i].value = value
		return
	}

	d.entries = append(d.entries, dictEntry{key: key, value: value})
}

// SetDefault implements setdefault(key, default): returns the existing
// value if present, otherwise inserts and returns default.
func (d *Dict) SetDefault(key, deflt int64) int64 {
	if i := d.indexOf(key); i >= 0 {
		return d.entries[i].value
	}

	d.entries = append(d.entries, dictEntry{key: key, value: deflt})

	return deflt
}

// Pop implements pop(key): removes and returns the value, raising
// KeyError if absent.
func (d *Dict) Pop(key int64) int64 {
	i := d.indexOf(key)
	if i < 0 {
		rem.Raise(rem.KeyError, "key not found")
	}

	v := d.entries[i].value
	d.entries = append(d.entries[:i], d.entries[i+1:]...)

	return v
}

// PopItem implements popitem(): removes and returns the last-inserted
// entry (dict order is insertion order in this implementation), raising
// KeyError on an empty dict.
func (d *Dict) PopItem() (int64, int64) {
	if len(d.entries) == 0 {
		rem.Raise(rem.KeyError, "popitem(): dictionary is empty")
	}

	last := d.entries[len(d.entries)-1]
	d.entries = d.entries[:len(d.entries)-1]

	return last.key, last.value
}

// Del implements del d[key], raising KeyError if absent.
func (d *Dict) Del(key int64) {
	i := d.indexOf(key)
	if i < 0 {
		rem.Raise(rem.KeyError, "key not found")
	}

	d.entries = append(d.entries[:i], d.entries[i+1:]...)
}

// Clear implements clear(): empties the dict.
func (d *Dict) Clear() {
	d.entries = nil
}

// Copy implements copy(): a shallow copy with its own backing array.
func (d *Dict) Copy() *Dict {
	out := NewDict(d.eq)
	out.entries = append([]dictEntry(nil), d.entries...)

	return out
}

// Update implements update(other): overwrites/extends entries from
// other, in other's iteration order.
func (d *Dict) Update(other *Dict) {
	for _, e := range other.entries {
		d.Set(e.key, e.value)
	}
}

// Or implements d | other: a new dict with d's entries overwritten by
// other's.
func Or(d, other *Dict) *Dict {
	out := d.Copy()
	out.Update(other)

	return out
}

// FromKeys implements dict.fromkeys(keys, value): a new dict mapping
// every key in keys to value, de-duplicating repeated keys.
func FromKeys(eq func(a, b int64) bool, keys []int64, value int64) *Dict {
	out := NewDict(eq)
	for _, k := range keys {
		out.Set(k, value)
	}

	return out
}

// Keys implements keys(), in insertion order.
func (d *Dict) Keys() []int64 {
	out := make([]int64, len(d.entries))
	for i, e := range d.entries {
		out[i] = e.key
	}

	return out
}

// Values implements values(), in insertion order.
func (d *Dict) Values() []int64 {
	out := make([]int64, len(d.entries))
	for i, e := range d.entries {
		out[i] = e.value
	}

	return out
}

// Items implements items(): parallel key/value slices in insertion
// order.
func (d *Dict) Items() ([]int64, []int64) {
	return d.Keys(), d.Values()
}
