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

// Package rem implements the Runtime Exception Machinery (spec §4.2): a
// small-integer exception taxonomy, the matches() hierarchy used by
// `except` clauses, and the raise/catch contract built on the host
// platform's zero-cost unwinding machinery.
package rem

// Tag identifies an exception's kind as a small integer (spec §4.2,
// "Taxonomy"). Tag 0 is reserved and never assigned to a raised exception;
// Base is the lowest real tag and is the one value `except Exception`
// compiles to.
type Tag int64

// The fixed tag assignment. Values are stable across a compilation unit —
// compiled code embeds them directly as immediate operands to `raise` and
// `except` checks, so this list must never be reordered or renumbered,
// only appended to.
const (
	Base Tag = iota + 1
	StopIteration
	ValueError
	TypeError
	KeyError
	RuntimeError
	ZeroDivisionError
	OverflowError
	IndexError
	AttributeError
	NotImplementedError
	NameError
	ArithmeticError
	LookupError
	AssertionError
	ImportError
	ModuleNotFoundError
	FileNotFoundError
	PermissionError
	OSError
)

// names gives every tag's surface-syntax name, used both for the top-level
// "<Name>: <message>" diagnostic (spec §4.2, "Raise/Catch Contract") and for
// resolving a bare `except Name:` clause to a Tag during lowering.
var names = map[Tag]string{
	Base:                "Exception",
	StopIteration:       "StopIteration",
	ValueError:          "ValueError",
	TypeError:           "TypeError",
	KeyError:            "KeyError",
	RuntimeError:        "RuntimeError",
	ZeroDivisionError:   "ZeroDivisionError",
	OverflowError:       "OverflowError",
	IndexError:          "IndexError",
	AttributeError:      "AttributeError",
	NotImplementedError: "NotImplementedError",
	NameError:           "NameError",
	ArithmeticError:     "ArithmeticError",
	LookupError:         "LookupError",
	AssertionError:      "AssertionError",
	ImportError:         "ImportError",
	ModuleNotFoundError: "ModuleNotFoundError",
	FileNotFoundError:   "FileNotFoundError",
	PermissionError:     "PermissionError",
	OSError:             "OSError",
}

// byName is the inverse of names, built once at init for O(1) lookup from
// an `except <Name>` clause during lowering.
var byName = func() map[string]Tag {
	m := make(map[string]Tag, len(names))
	for tag, name := range names {
		m[name] = tag
	}

	return m
}()

// Name returns a tag's surface name, or "Exception" for an unrecognised
// tag (defensive: compiled code should never produce one).
func (t Tag) Name() string {
	if n, ok := names[t]; ok {
		return n
	}

	return "Exception"
}

// Lookup resolves a surface exception-class name to its Tag.
func Lookup(name string) (Tag, bool) {
	t, ok := byName[name]
	return t, ok
}

// parent records the direct superclass of every non-Base tag that
// participates in the hierarchy (spec §4.2, "Hierarchy"). Tags absent from
// this map (besides Base itself) have no declared parent other than Base,
// which Matches always checks last.
var parent = map[Tag]Tag{
	ZeroDivisionError:   ArithmeticError,
	OverflowError:       ArithmeticError,
	KeyError:            LookupError,
	IndexError:          LookupError,
	FileNotFoundError:   OSError,
	PermissionError:     OSError,
	ModuleNotFoundError: ImportError,
}

// Matches implements the hierarchy matching function of spec §4.2: wanted
// matches caught if they are identical, if wanted is Base (matches any
// non-zero tag), or if wanted is a declared ancestor of caught.
func Matches(caught, wanted Tag) bool {
	if wanted == Base {
		return caught != 0
	}

	for t := caught; t != 0; t = parent[t] {
		if t == wanted {
			return true
		}
	}

	return false
}
