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

package lower

import "github.com/tython-lang/tythonc/pkg/types"

// promote implements the numeric-coercion rules of spec §4.5.6: mixed
// int/float arithmetic promotes the int operand to float; a bool operand in
// an arithmetic context promotes to int first (and, transitively, to float
// if the other operand is a float). It returns the common type the two
// operands are coerced to, or nil if either one is not numeric.
func promote(a, b *types.Type) *types.Type {
	if !a.IsNumeric() || !b.IsNumeric() {
		return nil
	}

	if a.Kind == types.Float || b.Kind == types.Float {
		return types.FloatType
	}

	return types.IntType
}

// arithResultType computes the static result type of a binary arithmetic
// operator over two already-typed operands, per spec §4.5.6:
//
//   - `/` is always floating division.
//   - `//` is floor division: integer if both operands are integral
//     (Int or Bool), floor-float otherwise.
//   - `**` is pow, following the same promotion rule as other arithmetic.
//   - every other arithmetic/bitwise operator follows plain promotion.
//
// It returns nil if the operator is not defined over the given operand
// types (e.g. `+` between a list and an int), leaving the caller to raise
// diag.CodeTypeError.
func arithResultType(op string, l, r *types.Type) *types.Type {
	switch op {
	case "/":
		if l.IsNumeric() && r.IsNumeric() {
			return types.FloatType
		}

		return nil
	case "//":
		if !l.IsNumeric() || !r.IsNumeric() {
			return nil
		}

		if isIntegral(l) && isIntegral(r) {
			return types.IntType
		}

		return types.FloatType
	case "**":
		return promote(l, r)
	case "+":
		// `+` additionally covers str/bytes/bytearray concatenation and
		// list concatenation, handled by the caller before falling back
		// to arithmetic promotion.
		return promote(l, r)
	default:
		return promote(l, r)
	}
}

// isIntegral reports whether t participates in "both operands integral"
// floor division (spec §4.5.6): Int or Bool, not Float.
func isIntegral(t *types.Type) bool {
	return t.Kind == types.Int || t.Kind == types.Bool
}

// sameContainerElem reports whether two container types share the same
// element type, used when checking e.g. `list[int] + list[int]`.
func sameContainerElem(a, b *types.Type) bool {
	if a == nil || b == nil || a.Kind != b.Kind {
		return false
	}

	switch a.Kind {
	case types.List, types.Set, types.ByteArray:
		return types.Equal(a.Elem, b.Elem) || a.Kind == types.ByteArray
	default:
		return false
	}
}
