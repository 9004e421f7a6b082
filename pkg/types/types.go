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

// Package types implements the closed static type lattice produced by the
// typed lowering pass (spec §4.5):
//
//	Int | Float | Bool | Str | Bytes | ByteArray | List<T> | Tuple<T1,...,Tn>
//	  | Dict<K,V> | Set<T> | Instance<Class> | None
package types

import (
	"fmt"
	"strings"
)

// Kind discriminates the members of the closed type lattice.
type Kind uint8

// The closed set of type kinds. There is deliberately no "Any": every
// expression carries one of these, or lowering rejects the program.
const (
	Int Kind = iota
	Float
	Bool
	Str
	Bytes
	ByteArray
	List
	Tuple
	Dict
	Set
	Instance
	None
)

// Type is an immutable node in the type lattice. Primitive kinds (Int,
// Float, Bool, Str, Bytes, ByteArray, None) only ever set Kind. Container
// and instance kinds set the relevant auxiliary field(s); the rest are left
// zero.
type Type struct {
	Kind Kind
	// Elem is the element type for List and Set.
	Elem *Type
	// Elems holds the component types for Tuple, in order.
	Elems []*Type
	// Key and Val hold the key/value types for Dict.
	Key *Type
	Val *Type
	// Class names the user class for Instance.
	Class string
}

// Primitive constructors, interned so equal primitive types share identity
// where convenient (though Equal never relies on this).
var (
	IntType       = &Type{Kind: Int}
	FloatType     = &Type{Kind: Float}
	BoolType      = &Type{Kind: Bool}
	StrType       = &Type{Kind: Str}
	BytesType     = &Type{Kind: Bytes}
	ByteArrayType = &Type{Kind: ByteArray}
	NoneType      = &Type{Kind: None}
)

// NewList constructs a List<elem> type.
func NewList(elem *Type) *Type { return &Type{Kind: List, Elem: elem} }

// NewSet constructs a Set<elem> type.
func NewSet(elem *Type) *Type { return &Type{Kind: Set, Elem: elem} }

// NewDict constructs a Dict<key,val> type.
func NewDict(key, val *Type) *Type { return &Type{Kind: Dict, Key: key, Val: val} }

// NewTuple constructs a Tuple<elems...> type.
func NewTuple(elems ...*Type) *Type { return &Type{Kind: Tuple, Elems: elems} }

// NewInstance constructs an Instance<class> type.
func NewInstance(class string) *Type { return &Type{Kind: Instance, Class: class} }

// IsPrimitive reports whether t is a fixed-width scalar with no element
// type (i.e. not a container or instance).
func (t *Type) IsPrimitive() bool {
	switch t.Kind {
	case Int, Float, Bool, Str, Bytes, ByteArray, None:
		return true
	default:
		return false
	}
}

// IsNumeric reports whether t participates in numeric coercion (spec
// §4.5.6): Int, Float, and Bool (which promotes to Int in an arithmetic
// context).
func (t *Type) IsNumeric() bool {
	return t.Kind == Int || t.Kind == Float || t.Kind == Bool
}

// Equal performs a structural comparison of two types.
func Equal(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}

	if a.Kind != b.Kind {
		return false
	}

	switch a.Kind {
	case List, Set:
		return Equal(a.Elem, b.Elem)
	case Dict:
		return Equal(a.Key, b.Key) && Equal(a.Val, b.Val)
	case Tuple:
		if len(a.Elems) != len(b.Elems) {
			return false
		}

		for i := range a.Elems {
			if !Equal(a.Elems[i], b.Elems[i]) {
				return false
			}
		}

		return true
	case Instance:
		return a.Class == b.Class
	default:
		return true
	}
}

// String renders the type the way diagnostics and --json dumps present it,
// e.g. "list[int]", "dict[str,int]", "MyClass".
func (t *Type) String() string {
	if t == nil {
		return "<unknown>"
	}

	switch t.Kind {
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Str:
		return "str"
	case Bytes:
		return "bytes"
	case ByteArray:
		return "bytearray"
	case None:
		return "None"
	case List:
		return fmt.Sprintf("list[%s]", t.Elem.String())
	case Set:
		return fmt.Sprintf("set[%s]", t.Elem.String())
	case Dict:
		return fmt.Sprintf("dict[%s,%s]", t.Key.String(), t.Val.String())
	case Tuple:
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			parts[i] = e.String()
		}

		return fmt.Sprintf("tuple[%s]", strings.Join(parts, ","))
	case Instance:
		return t.Class
	default:
		return "<unknown>"
	}
}

// RuntimeSymbolSuffix returns the suffix the typed lowering pass appends to
// a monomorphic runtime symbol name for this element type (e.g.
// "__tython_list_sort_int" for Kind==Int), or the empty string if no
// monomorphic routine exists and a by-handle dispatch (spec §4.5.2) is
// required instead.
func (t *Type) RuntimeSymbolSuffix() string {
	switch t.Kind {
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Str:
		return "str"
	case Bytes:
		return "bytes"
	case ByteArray:
		return "bytearray"
	default:
		return ""
	}
}
