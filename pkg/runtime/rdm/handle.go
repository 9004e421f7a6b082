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

// OperationsHandle is the runtime counterpart of pkg/tir's compile-time
// OperationsHandle record (spec §4.5.2): where the compile-time record
// is just a symbol name shared across call sites, this is the actual
// function-pointer bundle a compiled program dereferences through that
// symbol at a by-handle call site. Every user-class element type that
// ever appears as a set/dict/sorted-list element shares exactly one of
// these per (element type, operation set) pair, built once and reused,
// mirroring the deduplication the lowering stage performs on its own
// symbol table.
type OperationsHandle struct {
	Eq   func(a, b int64) bool
	Hash func(a int64) uint64
	Lt   func(a, b int64) bool
	Str  func(a int64) *Buffer
}

// handleRegistry deduplicates OperationsHandle instances by the class
// name they were built for, so two call sites referencing the same
// class's handle observe the identical function pointers — required for
// the hash set and dict to treat two handle-bearing collections of the
// same element type as interoperable.
type handleRegistry struct {
	byClass map[string]*OperationsHandle
}

// NewHandleRegistry creates an empty runtime handle registry. One
// instance is shared by an entire compiled program.
func NewHandleRegistry() *handleRegistry {
	return &handleRegistry{byClass: make(map[string]*OperationsHandle)}
}

// Register associates a class name with its operations bundle. Compiled
// code calls this once per user class at program startup, wiring the
// class's `__eq__`/`__hash__`/`__lt__`/`__str__` methods (where defined)
// into the shared handle the lowering stage's by-handle call sites
// reference by symbol.
func (r *handleRegistry) Register(class string, h *OperationsHandle) {
	r.byClass[class] = h
}

// Lookup returns the previously registered handle for class, or nil if
// none was registered (meaning the class defines none of the dispatched
// magic methods and the operation must fall back to identity/default
// behavior).
func (r *handleRegistry) Lookup(class string) *OperationsHandle {
	return r.byClass[class]
}
