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

package tir

import "github.com/tython-lang/tythonc/pkg/types"

// OpSet identifies which function-pointer slots an OperationsHandle
// supplies (spec §3.2: "eq(a,b), hash(v)", "lt(a,b)", or "str(v)").
type OpSet uint8

const (
	// OpEqHash supplies {eq, hash} — used by set/dict element types.
	OpEqHash OpSet = iota
	// OpLt supplies {lt} — used by list.sort on a non-primitive element.
	OpLt
	// OpStr supplies {str} — used by str()/print() over a non-primitive
	// element or a user class instance.
	OpStr
)

// OperationsHandle is the compile-time description of one runtime
// operations-handle record (spec §3.2, §4.5.2): an immutable set of
// function-pointer slots for a single element type, referenced from call
// sites by address. EqFunc/HashFunc/LtFunc/StrFunc name the user class's
// compiled `__eq__`/`__hash__`/`__lt__`/`__str__` method each slot
// resolves to; a slot is empty when the class does not define that method,
// and every slot is empty for an element type that is not a user class
// (e.g. tuple[int]).
type OperationsHandle struct {
	ElemType *types.Type
	Ops      OpSet
	EqFunc   string
	HashFunc string
	LtFunc   string
	StrFunc  string
	// Symbol is the stable name the lowering pass emits this handle's
	// static record under, e.g. "__tython_handle_MyClass_eqhash". Two call
	// sites requesting the same (ElemType, Ops) pair always get back a
	// handle with the same Symbol (spec §4.5.2, "exactly one operations-
	// handle record per (element type, operation set) pair").
	Symbol string
}

// handleKey is the deduplication key for the registry: a handle is shared
// across all call sites with the same element type and operation set.
type handleKey struct {
	elem string // types.Type.String(), since *Type is not comparable by identity
	ops  OpSet
}

// HandleRegistry deduplicates OperationsHandle records across an entire
// compiled program, guaranteeing the one-per-(type,opset) invariant spec
// §4.5.2 requires.
type HandleRegistry struct {
	handles map[handleKey]*OperationsHandle
	order   []*OperationsHandle
}

// NewHandleRegistry constructs an empty registry.
func NewHandleRegistry() *HandleRegistry {
	return &HandleRegistry{handles: make(map[handleKey]*OperationsHandle)}
}

// Get returns the shared OperationsHandle for (elem, ops), constructing and
// registering it on first request. eqFunc/hashFunc/ltFunc/strFunc are only
// consulted on that first request; later callers asking for the same pair
// get back the already-built handle, by design — a call site never needs
// to know whether it triggered construction.
func (r *HandleRegistry) Get(elem *types.Type, ops OpSet, eqFunc, hashFunc, ltFunc, strFunc string) *OperationsHandle {
	key := handleKey{elem: elem.String(), ops: ops}

	if h, ok := r.handles[key]; ok {
		return h
	}

	h := &OperationsHandle{
		ElemType: elem,
		Ops:      ops,
		EqFunc:   eqFunc,
		HashFunc: hashFunc,
		LtFunc:   ltFunc,
		StrFunc:  strFunc,
		Symbol:   handleSymbol(elem, ops),
	}

	r.handles[key] = h
	r.order = append(r.order, h)

	return h
}

// All returns every distinct handle registered so far, in first-requested
// order (deterministic, for stable --json dumps and symbol emission).
func (r *HandleRegistry) All() []*OperationsHandle {
	return r.order
}

func handleSymbol(elem *types.Type, ops OpSet) string {
	suffix := "str"

	switch ops {
	case OpEqHash:
		suffix = "eqhash"
	case OpLt:
		suffix = "lt"
	case OpStr:
		suffix = "str"
	}

	return "__tython_handle_" + sanitize(elem.String()) + "_" + suffix
}

// sanitize turns a type's display string into a legal symbol fragment.
func sanitize(s string) string {
	out := make([]byte, 0, len(s))

	for _, c := range []byte(s) {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			out = append(out, c)
		default:
			out = append(out, '_')
		}
	}

	return string(out)
}
