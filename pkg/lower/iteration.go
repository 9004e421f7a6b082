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

import (
	"github.com/tython-lang/tythonc/pkg/ast"
	"github.com/tython-lang/tythonc/pkg/tir"
	"github.com/tython-lang/tythonc/pkg/types"
)

// lowerFor lowers a `for target in iter: ... [else: ...]` statement into
// one of the three iteration lowerings spec §4.5.3 permits: a counted
// range loop, a counted walk over an indexable sequence, or the general
// `__iter__`/`__next__` protocol terminated by a StopIteration exception.
// Which of the last two applies is decided here, once, from the static
// type of iter — the emitter never has to re-discover it.
func (c *funcCtx) lowerFor(n *ast.For) tir.Stmt {
	target, ok := n.Target.(*ast.Name)
	if !ok {
		c.typeError(n.Line(), "for-loop target must be a simple name")
		return nil
	}

	if call, ok := n.Iter.(*ast.Call); ok {
		if fn, ok := call.Func.(*ast.Name); ok && fn.Id == "range" {
			return c.lowerRangeFor(n, target, call)
		}
	}

	iter := c.lowerExpr(n.Iter)
	elemType := c.elementTypeOf(n.Line(), iter.Type())

	c.scope.Bind(target.Id, elemType)

	kind := tir.IterSequence
	if iter.Type().Kind == types.Instance {
		kind = tir.IterProtocol
	}

	c.loopDepth++
	body := c.lowerBlock(n.Body)
	c.loopDepth--

	return &tir.For{
		Kind:   kind,
		Target: target.Id,
		Bound:  iter,
		Body:   body,
		Orelse: c.lowerBlock(n.Orelse),
	}
}

// lowerRangeFor lowers `for i in range(...)`.
func (c *funcCtx) lowerRangeFor(n *ast.For, target *ast.Name, call *ast.Call) tir.Stmt {
	bound, ok := c.buildRangeBound(call)
	if !ok {
		return nil
	}

	c.scope.Bind(target.Id, types.IntType)

	c.loopDepth++
	body := c.lowerBlock(n.Body)
	c.loopDepth--

	return &tir.For{
		Kind:   tir.IterRange,
		Target: target.Id,
		Bound:  bound,
		Body:   body,
		Orelse: c.lowerBlock(n.Orelse),
	}
}

// buildRangeBound lowers range()'s 1-, 2-, or 3-argument forms into a
// single (start, stop, step) tuple the emitter unpacks, shared between a
// `for` statement's range form and a comprehension generator's range form.
func (c *funcCtx) buildRangeBound(call *ast.Call) (tir.Expr, bool) {
	args := c.lowerExprList(call.Args)

	var start, stop, step tir.Expr

	switch len(args) {
	case 1:
		start, stop, step = tir.ConstInt{Value: 0}, args[0], tir.ConstInt{Value: 1}
	case 2:
		start, stop, step = args[0], args[1], tir.ConstInt{Value: 1}
	case 3:
		start, stop, step = args[0], args[1], args[2]
	default:
		c.typeError(call.Line(), "range() takes 1 to 3 arguments")
		return nil, false
	}

	bound := tir.MakeTuple{
		Elems: []tir.Expr{start, stop, step},
		Typ:   types.NewTuple(types.IntType, types.IntType, types.IntType),
	}

	return bound, true
}

// elementTypeOf computes the type yielded by iterating over t (spec
// §4.5.3): the per-kind element projection for every container, the
// declared return type of a user class's `__next__` for the general
// protocol, and a common-element check for a tuple (a heterogeneous tuple
// cannot be iterated by a single-typed loop variable).
func (c *funcCtx) elementTypeOf(line int, t *types.Type) *types.Type {
	switch t.Kind {
	case types.List, types.Set:
		return t.Elem
	case types.Str:
		return types.StrType
	case types.Bytes, types.ByteArray:
		return types.IntType
	case types.Dict:
		return t.Key
	case types.Tuple:
		if len(t.Elems) == 0 {
			return types.NoneType
		}

		first := t.Elems[0]

		for _, e := range t.Elems[1:] {
			if !types.Equal(e, first) {
				c.typeError(line, "cannot iterate a tuple with heterogeneous element types")
				return first
			}
		}

		return first
	case types.Instance:
		if mb, ok := c.t.classMethod(t.Class, "__next__"); ok {
			return mb.Return
		}

		c.typeError(line, "%s has no __next__ method", t.Class)

		return types.NoneType
	default:
		c.typeError(line, "type %s is not iterable", t.String())
		return types.NoneType
	}
}
