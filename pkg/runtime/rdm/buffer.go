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

// Package rdm implements the Runtime Data Model (spec §4.3): the container
// types — immutable buffers (string/bytes), growable vectors (list/
// bytearray), the open-addressed hash set, and the linear-scan associative
// array — invoked by compiled code through the `__tython_<op>` ABI (spec
// §6.1).
//
// This package models the heap layouts of spec §3.2 as ordinary Go values
// built on top of pkg/runtime/rmm rather than literal header+payload
// allocations: a Buffer wraps the []byte rmm hands back, and its `length`
// is simply len(data). Compiled code's ABI-level expectation that it can
// read a container's length at a fixed offset (spec §6.1) is satisfied by
// each exported accessor, not by reading raw memory — the offset contract
// is a property of the (out-of-scope) code generator's struct lowering for
// these same Go types, not of this package's internals.
package rdm

import "github.com/tython-lang/tythonc/pkg/runtime/rmm"

// Buffer is the immutable buffer of spec §4.3.1, backing both string and
// bytes values. Once created its contents never change (spec §3.3).
type Buffer struct {
	data []byte
}

// CreateBuffer implements create(src, n) (spec §4.3.1): allocates a fresh
// buffer holding a copy of src[:n]. If n is 0, a minimum one-byte
// allocation keeps the returned buffer's address distinct from any other
// empty buffer's, as spec §4.3.1 requires.
func CreateBuffer(src []byte, n int) *Buffer {
	size := n
	if size == 0 {
		size = 1
	}

	data := rmm.AllocateAtomic(int64(size))
	copy(data, src[:n])

	return &Buffer{data: data[:n]}
}

// Len returns the buffer's length.
func (b *Buffer) Len() int { return len(b.data) }

// Bytes exposes the buffer's raw contents. Callers must not mutate the
// returned slice — the buffer is immutable by contract (spec §3.3), even
// though Go cannot enforce that statically here.
func (b *Buffer) Bytes() []byte { return b.data }

// ConcatBuffer implements concat(a, b): a new buffer of length a.len+b.len
// (spec §4.3.1).
func ConcatBuffer(a, b *Buffer) *Buffer {
	out := CreateBuffer(nil, a.Len()+b.Len())
	copy(out.data, a.data)
	copy(out.data[a.Len():], b.data)

	return out
}

// RepeatBuffer implements repeat(n): n <= 0 yields an empty buffer,
// otherwise len*n bytes (spec §4.3.1).
func RepeatBuffer(a *Buffer, n int) *Buffer {
	if n <= 0 {
		return CreateBuffer(nil, 0)
	}

	out := CreateBuffer(nil, a.Len()*n)
	for i := 0; i < n; i++ {
		copy(out.data[i*a.Len():], a.data)
	}

	return out
}

// CmpBuffer implements cmp(a, b): lexicographic by byte, shorter is less
// than longer on an equal shared prefix; returns -1, 0 or 1 (spec
// §4.3.1).
func CmpBuffer(a, b *Buffer) int {
	n := a.Len()
	if b.Len() < n {
		n = b.Len()
	}

	for i := 0; i < n; i++ {
		if a.data[i] != b.data[i] {
			if a.data[i] < b.data[i] {
				return -1
			}

			return 1
		}
	}

	switch {
	case a.Len() < b.Len():
		return -1
	case a.Len() > b.Len():
		return 1
	default:
		return 0
	}
}

// EqBuffer implements eq(a, b), fast-pathed by a length check before
// falling back to the byte comparison cmp performs anyway (spec §4.3.1).
func EqBuffer(a, b *Buffer) bool {
	if a.Len() != b.Len() {
		return false
	}

	return CmpBuffer(a, b) == 0
}

// ContainsBuffer implements contains(hay, needle): a naive O(hay*needle)
// search; an empty needle always matches (spec §4.3.1).
func ContainsBuffer(hay, needle *Buffer) bool {
	return indexOfBuffer(hay, needle) >= 0
}

// indexOfBuffer returns the first byte offset at which needle occurs in
// hay, or -1. Shared by ContainsBuffer and the string/bytes find/index
// operations in string.go / bytesops.go.
func indexOfBuffer(hay, needle *Buffer) int {
	if needle.Len() == 0 {
		return 0
	}

	if needle.Len() > hay.Len() {
		return -1
	}

	for i := 0; i+needle.Len() <= hay.Len(); i++ {
		if matchesAt(hay.data, needle.data, i) {
			return i
		}
	}

	return -1
}

func matchesAt(hay, needle []byte, at int) bool {
	for j, c := range needle {
		if hay[at+j] != c {
			return false
		}
	}

	return true
}

// HashBuffer implements the splitmix64-derived byte-FNV hash of spec
// §4.3.1.
func HashBuffer(b *Buffer) uint64 {
	return hashBytes(b.data)
}
