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
	"github.com/tython-lang/tythonc/pkg/diag"
	"github.com/tython-lang/tythonc/pkg/tir"
	"github.com/tython-lang/tythonc/pkg/types"
)

// errorExpr is returned by a lowering helper that has already recorded a
// diagnostic: Lower as a whole discards its result once errs.HasErrors(),
// so its only job is to let the surrounding lowering finish walking the
// tree without a nil-pointer panic.
func errorExpr() tir.Expr { return tir.ConstNone{} }

func (c *funcCtx) typeError(line int, format string, args ...any) {
	c.errs.Add(diag.New(c.module, line, diag.CodeTypeError, format, args...))
}

// lowerExpr is the general expression dispatcher. A bare `print(...)` call
// reaching here (rather than through lowerExprStmt) is always an error:
// print has no return value, so using it as a sub-expression is exactly
// spec §4.5.1's "print used as an expression" rejection.
func (c *funcCtx) lowerExpr(e ast.Expr) tir.Expr {
	switch n := e.(type) {
	case *ast.Constant:
		return c.lowerConstant(n)
	case *ast.Name:
		return c.lowerName(n)
	case *ast.BinOp:
		return c.lowerBinaryOp(n.Line(), n.Op, c.lowerExpr(n.Left), c.lowerExpr(n.Right))
	case *ast.UnaryOp:
		return c.lowerUnaryOp(n)
	case *ast.BoolOp:
		return c.lowerBoolOp(n)
	case *ast.Compare:
		return c.lowerCompare(n)
	case *ast.Call:
		return c.lowerCall(n)
	case *ast.Attribute:
		return c.lowerAttribute(n)
	case *ast.Subscript:
		return c.lowerSubscript(n)
	case *ast.ListExpr:
		return c.lowerListExpr(n)
	case *ast.TupleExpr:
		return c.lowerTupleExpr(n)
	case *ast.SetExpr:
		return c.lowerSetExpr(n)
	case *ast.DictExpr:
		return c.lowerDictExpr(n)
	case *ast.ListComp:
		return c.lowerListComp(n)
	case *ast.IfExp:
		return c.lowerIfExp(n)
	default:
		c.typeError(e.Line(), "unsupported expression")
		return errorExpr()
	}
}

func (c *funcCtx) lowerExprList(elts []ast.Expr) []tir.Expr {
	out := make([]tir.Expr, len(elts))
	for i, e := range elts {
		out[i] = c.lowerExpr(e)
	}

	return out
}

func (c *funcCtx) lowerConstant(n *ast.Constant) tir.Expr {
	switch n.Kind {
	case ast.ConstInt:
		return tir.ConstInt{Value: n.Int}
	case ast.ConstFloat:
		return tir.ConstFloat{Value: n.Float}
	case ast.ConstBool:
		return tir.ConstBool{Value: n.Bool}
	case ast.ConstStr:
		return tir.ConstStr{Value: n.Str}
	case ast.ConstBytes:
		return tir.ConstBytes{Value: n.Bytes}
	default:
		return tir.ConstNone{}
	}
}

// lowerName resolves a bare identifier. A name that resolves to a function
// or class binding used outside a call's Func position is exactly spec
// §4.5.1's rejected "indirect call through a function-typed value": this
// language has no function values, so the only legal use of a function or
// class name is as the direct target of a Call, which lowerCall handles
// before ever reaching here.
func (c *funcCtx) lowerName(n *ast.Name) tir.Expr {
	if n.Id == "self" && c.scope.receiver != nil {
		return tir.Local{Name: "self", Typ: c.scope.receiver}
	}

	if t, ok := c.scope.locals[n.Id]; ok {
		return tir.Local{Name: n.Id, Typ: t}
	}

	if v, ok := c.scope.module.Globals[n.Id]; ok {
		return tir.Global{Module: c.module, Name: n.Id, Typ: v.Type}
	}

	if b, ok := c.scope.module.Imports[n.Id].(ImportedSymbolBinding); ok {
		if target, ok := c.scope.ResolveQualified(b.Module, b.Symbol); ok {
			if v, ok := target.(VarBinding); ok {
				return tir.Global{Module: b.Module, Name: b.Symbol, Typ: v.Type}
			}
		}
	}

	if _, ok := c.scope.module.Funcs[n.Id]; ok {
		c.errs.Add(diag.New(c.module, n.Line(), diag.CodeIndirectCall,
			"function '%s' may only be used as a direct call target", n.Id))

		return errorExpr()
	}

	if _, ok := c.scope.module.Classes[n.Id]; ok {
		c.errs.Add(diag.New(c.module, n.Line(), diag.CodeIndirectCall,
			"class '%s' may only be used as a direct constructor call", n.Id))

		return errorExpr()
	}

	c.errs.Add(diag.New(c.module, n.Line(), diag.CodeUnknownName, "undefined name '%s'", n.Id))

	return errorExpr()
}

func (c *funcCtx) lowerUnaryOp(n *ast.UnaryOp) tir.Expr {
	operand := c.lowerExpr(n.Operand)

	typ := operand.Type()
	if n.Op == "not" {
		typ = types.BoolType
	}

	return tir.UnaryOp{Op: n.Op, Operand: operand, Typ: typ}
}

func (c *funcCtx) lowerBoolOp(n *ast.BoolOp) tir.Expr {
	return tir.BoolOp{Op: n.Op, Values: c.lowerExprList(n.Values)}
}

// lowerCompare expands a chained comparison (`a < b < c`) into a BoolOp
// over the pairwise comparisons, matching Python's own desugaring.
func (c *funcCtx) lowerCompare(n *ast.Compare) tir.Expr {
	left := c.lowerExpr(n.Left)

	var parts []tir.Expr

	for i, op := range n.Ops {
		right := c.lowerExpr(n.Comparators[i])
		parts = append(parts, c.lowerSingleCompare(op, left, right))
		left = right
	}

	if len(parts) == 1 {
		return parts[0]
	}

	return tir.BoolOp{Op: "and", Values: parts}
}

// lowerSingleCompare picks between a structural tir.Compare (valid for the
// primitive and container types, whose ordering/equality the emitter
// implements directly) and a by-handle RuntimeCall dispatching through a
// user class's `__eq__`/`__lt__` (spec §4.5.2), plus the `in`/`not in`
// membership tests, which always go through a container's contains
// operation regardless of operand type.
func (c *funcCtx) lowerSingleCompare(op string, left, right tir.Expr) tir.Expr {
	switch op {
	case "in", "not in":
		contains := c.lowerContains(left, right)
		if op == "not in" {
			return tir.UnaryOp{Op: "not", Operand: contains, Typ: types.BoolType}
		}

		return contains
	}

	if left.Type().Kind == types.Instance || right.Type().Kind == types.Instance {
		switch op {
		case "==", "!=":
			symbol, handle := c.t.runtimeSymbol("eq", left.Type(), tir.OpEqHash)
			call := tir.RuntimeCall{Symbol: symbol, Handle: handle, Args: []tir.Expr{left, right}, Typ: types.BoolType}

			if op == "!=" {
				return tir.UnaryOp{Op: "not", Operand: call, Typ: types.BoolType}
			}

			return call
		case "<", "<=", ">", ">=":
			symbol, handle := c.t.runtimeSymbol("lt", left.Type(), tir.OpLt)
			lt := func(a, b tir.Expr) tir.Expr {
				return tir.RuntimeCall{Symbol: symbol, Handle: handle, Args: []tir.Expr{a, b}, Typ: types.BoolType}
			}

			switch op {
			case "<":
				return lt(left, right)
			case ">":
				return lt(right, left)
			case "<=":
				return tir.UnaryOp{Op: "not", Operand: lt(right, left), Typ: types.BoolType}
			default: // ">="
				return tir.UnaryOp{Op: "not", Operand: lt(left, right), Typ: types.BoolType}
			}
		}
	}

	return tir.Compare{Op: op, Left: left, Right: right}
}

// lowerContains implements `item in container`: a structural buffer scan
// for str/bytes/bytearray, or a by-handle lookup for list/set/dict, whose
// element equality (and, for set/dict, hashing) may be a user class's own
// `__eq__`/`__hash__`.
func (c *funcCtx) lowerContains(item, container tir.Expr) tir.Expr {
	ct := container.Type()

	switch ct.Kind {
	case types.Str:
		return tir.RuntimeCall{Symbol: "__tython_str_contains", Args: []tir.Expr{container, item}, Typ: types.BoolType}
	case types.Bytes, types.ByteArray:
		return tir.RuntimeCall{Symbol: "__tython_bytes_contains", Args: []tir.Expr{container, item}, Typ: types.BoolType}
	case types.List:
		symbol, handle := c.t.runtimeSymbol("list_contains", ct.Elem, tir.OpEqHash)
		return tir.RuntimeCall{Symbol: symbol, Handle: handle, Args: []tir.Expr{container, item}, Typ: types.BoolType}
	case types.Set:
		symbol, handle := c.t.runtimeSymbol("set_contains", ct.Elem, tir.OpEqHash)
		return tir.RuntimeCall{Symbol: symbol, Handle: handle, Args: []tir.Expr{container, item}, Typ: types.BoolType}
	case types.Dict:
		symbol, handle := c.t.runtimeSymbol("dict_contains", ct.Key, tir.OpEqHash)
		return tir.RuntimeCall{Symbol: symbol, Handle: handle, Args: []tir.Expr{container, item}, Typ: types.BoolType}
	default:
		c.typeError(0, "'in' is not supported on type %s", ct.String())
		return errorExpr()
	}
}

// toStrExpr implements str()/print()'s implicit string conversion: a
// value that is already a Str passes through unchanged; everything else
// dispatches to the monomorphic or by-handle `str` routine (spec §4.5.2).
func (c *funcCtx) toStrExpr(v tir.Expr) tir.Expr {
	if v.Type().Kind == types.Str {
		return v
	}

	symbol, handle := c.t.runtimeSymbol("str", v.Type(), tir.OpStr)

	return tir.RuntimeCall{Symbol: symbol, Handle: handle, Args: []tir.Expr{v}, Typ: types.StrType}
}

// lowerPrintCall lowers the one legal use of `print(...)` (spec §4.5.1):
// every argument is converted to its string form, then handed to the
// variadic runtime print routine.
func (c *funcCtx) lowerPrintCall(call *ast.Call) tir.Expr {
	args := make([]tir.Expr, len(call.Args))
	for i, a := range call.Args {
		args[i] = c.toStrExpr(c.lowerExpr(a))
	}

	return tir.RuntimeCall{Symbol: "__tython_print", Args: args, Typ: types.NoneType}
}

// containerSuffix names the monomorphic runtime-symbol suffix for a
// container kind, mirroring types.Type.RuntimeSymbolSuffix for the
// primitive kinds.
func containerSuffix(t *types.Type) string {
	switch t.Kind {
	case types.List:
		return "list"
	case types.Tuple:
		return "tuple"
	case types.Dict:
		return "dict"
	case types.Set:
		return "set"
	case types.Str:
		return "str"
	case types.Bytes:
		return "bytes"
	case types.ByteArray:
		return "bytearray"
	default:
		return ""
	}
}

// lowerCall is the call-site dispatcher: a builtin conversion, a free
// function, a user constructor, a method call, or — for any other Func
// shape — an indirect call, which spec §4.5.1 rejects outright.
func (c *funcCtx) lowerCall(n *ast.Call) tir.Expr {
	switch fn := n.Func.(type) {
	case *ast.Name:
		if fn.Id == "print" {
			c.errs.Add(diag.New(c.module, n.Line(), diag.CodePrintAsExpression,
				"print() cannot be used as an expression"))

			return errorExpr()
		}

		if expr, ok := c.lowerBuiltinCall(fn.Id, n); ok {
			return expr
		}

		return c.lowerNamedCall(n, fn.Id)
	case *ast.Attribute:
		return c.lowerMethodCallExpr(n, fn)
	default:
		c.errs.Add(diag.New(c.module, n.Line(), diag.CodeIndirectCall,
			"calls are only supported against a named function, class, or method"))

		return errorExpr()
	}
}

// lowerBuiltinCall handles the handful of free-standing builtin
// conversions the language subset exposes. ok is false when name does not
// name a recognised builtin, so the caller falls through to a user
// function/constructor lookup.
func (c *funcCtx) lowerBuiltinCall(name string, n *ast.Call) (tir.Expr, bool) {
	switch name {
	case "len":
		if len(n.Args) != 1 {
			c.typeError(n.Line(), "len() takes exactly one argument")
			return errorExpr(), true
		}

		arg := c.lowerExpr(n.Args[0])
		suffix := containerSuffix(arg.Type())

		if suffix == "" {
			c.typeError(n.Line(), "len() is not supported on type %s", arg.Type().String())
			return errorExpr(), true
		}

		return tir.RuntimeCall{Symbol: "__tython_len_" + suffix, Args: []tir.Expr{arg}, Typ: types.IntType}, true
	case "str":
		if len(n.Args) != 1 {
			c.typeError(n.Line(), "str() takes exactly one argument")
			return errorExpr(), true
		}

		return c.toStrExpr(c.lowerExpr(n.Args[0])), true
	case "int", "float", "bool":
		if len(n.Args) != 1 {
			c.typeError(n.Line(), "%s() takes exactly one argument", name)
			return errorExpr(), true
		}

		arg := c.lowerExpr(n.Args[0])
		suffix := arg.Type().RuntimeSymbolSuffix()

		if suffix == "" {
			c.typeError(n.Line(), "%s() is not supported on type %s", name, arg.Type().String())
			return errorExpr(), true
		}

		resultType := map[string]*types.Type{"int": types.IntType, "float": types.FloatType, "bool": types.BoolType}[name]

		return tir.RuntimeCall{
			Symbol: "__tython_to_" + name + "_" + suffix,
			Args:   []tir.Expr{arg},
			Typ:    resultType,
		}, true
	default:
		return nil, false
	}
}

// lowerNamedCall handles a call whose Func is a bare name: either a free
// function or a user class's constructor. Both reject keyword arguments
// (spec §4.5.1).
func (c *funcCtx) lowerNamedCall(n *ast.Call, name string) tir.Expr {
	if len(n.Keywords) > 0 {
		c.errs.Add(diag.New(c.module, n.Line(), diag.CodeKeywordArgument,
			"keyword arguments are not supported in calls to '%s'", name))

		return errorExpr()
	}

	if b, ok := c.scope.module.Imports[name].(ImportedSymbolBinding); ok {
		return c.lowerQualifiedCall(n, b.Module, b.Symbol)
	}

	args := c.lowerExprList(n.Args)

	if fb, ok := c.scope.module.Funcs[name]; ok {
		return tir.UserCall{Callee: name, Args: args, Typ: fb.Return}
	}

	if _, ok := c.scope.module.Classes[name]; ok {
		return tir.UserCall{Callee: mangleMethod(name, "__init__"), Args: args, Typ: types.NewInstance(name)}
	}

	c.errs.Add(diag.New(c.module, n.Line(), diag.CodeUnknownName, "undefined function or class '%s'", name))

	return errorExpr()
}

// lowerMethodCallExpr lowers a call whose Func is `value.method(...)`:
// either a user instance method, or a builtin container/string method.
func (c *funcCtx) lowerMethodCallExpr(n *ast.Call, fn *ast.Attribute) tir.Expr {
	if module, ok := c.importedModule(fn.Value); ok {
		return c.lowerQualifiedCall(n, module, fn.Attr)
	}

	receiver := c.lowerExpr(fn.Value)
	vt := receiver.Type()

	if vt.Kind == types.Instance {
		if len(n.Keywords) > 0 {
			c.errs.Add(diag.New(c.module, n.Line(), diag.CodeKeywordArgument,
				"keyword arguments are not supported in calls to '%s'", fn.Attr))

			return errorExpr()
		}

		mb, ok := c.t.classMethod(vt.Class, fn.Attr)
		if !ok {
			c.errs.Add(diag.New(c.module, n.Line(), diag.CodeUnknownAttribute,
				"%s has no method '%s'", vt.Class, fn.Attr))

			return errorExpr()
		}

		return tir.UserCall{
			Callee:   mangleMethod(vt.Class, fn.Attr),
			Receiver: receiver,
			Args:     c.lowerExprList(n.Args),
			Typ:      mb.Return,
		}
	}

	return c.lowerBuiltinMethodCall(n.Line(), receiver, vt, fn.Attr, c.lowerExprList(n.Args))
}

// importedModule reports the module name e was qualified against, when e is
// a bare name bound to `import m` (spec §4.4) rather than a local, `self`,
// or some other binding kind.
func (c *funcCtx) importedModule(e ast.Expr) (string, bool) {
	name, ok := e.(*ast.Name)
	if !ok {
		return "", false
	}

	if name.Id == "self" && c.scope.receiver != nil {
		return "", false
	}

	if _, ok := c.scope.locals[name.Id]; ok {
		return "", false
	}

	if b, ok := c.scope.module.Imports[name.Id]; ok {
		if ib, ok := b.(ImportBinding); ok {
			return ib.Module, true
		}
	}

	return "", false
}

// lowerQualifiedCall lowers `m.symbol(...)` against an `import m` binding
// into a direct call on the resolved function or constructor.
func (c *funcCtx) lowerQualifiedCall(n *ast.Call, module, symbol string) tir.Expr {
	if len(n.Keywords) > 0 {
		c.errs.Add(diag.New(c.module, n.Line(), diag.CodeKeywordArgument,
			"keyword arguments are not supported in calls to '%s.%s'", module, symbol))

		return errorExpr()
	}

	binding, ok := c.scope.ResolveQualified(module, symbol)
	if !ok {
		c.errs.Add(diag.New(c.module, n.Line(), diag.CodeUnknownName, "module '%s' has no member '%s'", module, symbol))
		return errorExpr()
	}

	args := c.lowerExprList(n.Args)

	switch b := binding.(type) {
	case FuncBinding:
		return tir.UserCall{Callee: symbol, Args: args, Typ: b.Return}
	case ClassBinding:
		return tir.UserCall{Callee: mangleMethod(symbol, "__init__"), Args: args, Typ: types.NewInstance(symbol)}
	default:
		c.errs.Add(diag.New(c.module, n.Line(), diag.CodeIndirectCall, "'%s.%s' is not callable", module, symbol))
		return errorExpr()
	}
}

// lowerAttribute lowers `value.attr`: either qualified access into an
// imported module's globals, or an instance field read.
func (c *funcCtx) lowerAttribute(n *ast.Attribute) tir.Expr {
	if module, ok := c.importedModule(n.Value); ok {
		binding, ok := c.scope.ResolveQualified(module, n.Attr)
		if !ok {
			c.errs.Add(diag.New(c.module, n.Line(), diag.CodeUnknownAttribute,
				"module '%s' has no member '%s'", module, n.Attr))

			return errorExpr()
		}

		vb, ok := binding.(VarBinding)
		if !ok {
			c.errs.Add(diag.New(c.module, n.Line(), diag.CodeIndirectCall,
				"'%s.%s' may only be used as a direct call target", module, n.Attr))

			return errorExpr()
		}

		return tir.Global{Module: module, Name: n.Attr, Typ: vb.Type}
	}

	value := c.lowerExpr(n.Value)

	if value.Type().Kind != types.Instance {
		c.typeError(n.Line(), "%s has no attribute '%s'", value.Type().String(), n.Attr)
		return errorExpr()
	}

	typ, ok := c.t.classFieldType(value.Type().Class, n.Attr)
	if !ok {
		c.errs.Add(diag.New(c.module, n.Line(), diag.CodeUnknownAttribute,
			"%s has no field '%s'", value.Type().Class, n.Attr))

		return errorExpr()
	}

	return tir.Attribute{Value: value, Field: n.Attr, Typ: typ}
}

// sliceOpenEnd is the bound lowerSlice substitutes for an omitted upper
// bound (`a[i:]`); the runtime slice routines clamp any bound past the
// container's length, so a large sentinel reads as "through the end"
// without needing a separate presence flag in the call's argument list.
const sliceOpenEnd = int64(1) << 62

func (c *funcCtx) lowerSubscript(n *ast.Subscript) tir.Expr {
	value := c.lowerExpr(n.Value)
	vt := value.Type()

	if n.Slice != nil {
		return c.lowerSliceExpr(n, value, vt)
	}

	switch vt.Kind {
	case types.Str:
		return tir.RuntimeCall{
			Symbol: "__tython_str_index",
			Args:   []tir.Expr{value, c.lowerExpr(n.Index)},
			Typ:    types.StrType,
		}
	case types.Bytes, types.ByteArray:
		suffix := "bytes"
		if vt.Kind == types.ByteArray {
			suffix = "bytearray"
		}

		return tir.RuntimeCall{
			Symbol: "__tython_" + suffix + "_index",
			Args:   []tir.Expr{value, c.lowerExpr(n.Index)},
			Typ:    types.IntType,
		}
	case types.List:
		return tir.RuntimeCall{
			Symbol: "__tython_list_index_get",
			Args:   []tir.Expr{value, c.lowerExpr(n.Index)},
			Typ:    vt.Elem,
		}
	case types.Tuple:
		ci, ok := n.Index.(*ast.Constant)
		if !ok || ci.Kind != ast.ConstInt {
			c.typeError(n.Line(), "tuple subscript requires a literal integer index")
			return errorExpr()
		}

		i := int(ci.Int)
		if i < 0 || i >= len(vt.Elems) {
			c.typeError(n.Line(), "tuple index %d out of range", i)
			return errorExpr()
		}

		return tir.RuntimeCall{
			Symbol: "__tython_tuple_index_get",
			Args:   []tir.Expr{value, tir.ConstInt{Value: int64(i)}},
			Typ:    vt.Elems[i],
		}
	case types.Dict:
		symbol, handle := c.t.runtimeSymbol("dict_get", vt.Key, tir.OpEqHash)
		return tir.RuntimeCall{Symbol: symbol, Handle: handle, Args: []tir.Expr{value, c.lowerExpr(n.Index)}, Typ: vt.Val}
	default:
		c.typeError(n.Line(), "type %s does not support subscripting", vt.String())
		return errorExpr()
	}
}

func (c *funcCtx) lowerSliceExpr(n *ast.Subscript, value tir.Expr, vt *types.Type) tir.Expr {
	lower := tir.Expr(tir.ConstInt{Value: 0})
	if n.Slice.Lower != nil {
		lower = c.lowerExpr(n.Slice.Lower)
	}

	upper := tir.Expr(tir.ConstInt{Value: sliceOpenEnd})
	if n.Slice.Upper != nil {
		upper = c.lowerExpr(n.Slice.Upper)
	}

	switch vt.Kind {
	case types.Str:
		return tir.RuntimeCall{Symbol: "__tython_str_slice", Args: []tir.Expr{value, lower, upper}, Typ: types.StrType}
	case types.Bytes, types.ByteArray:
		suffix := "bytes"
		if vt.Kind == types.ByteArray {
			suffix = "bytearray"
		}

		return tir.RuntimeCall{Symbol: "__tython_" + suffix + "_slice", Args: []tir.Expr{value, lower, upper}, Typ: vt}
	case types.List:
		symbol, handle := c.t.runtimeSymbol("list_slice", vt.Elem, tir.OpEqHash)
		return tir.RuntimeCall{Symbol: symbol, Handle: handle, Args: []tir.Expr{value, lower, upper}, Typ: vt}
	default:
		c.typeError(n.Line(), "type %s does not support slicing", vt.String())
		return errorExpr()
	}
}

func (c *funcCtx) lowerListExpr(n *ast.ListExpr) tir.Expr {
	elems := c.lowerExprList(n.Elts)

	elemType := types.NoneType
	if len(elems) > 0 {
		elemType = elems[0].Type()
	}

	return tir.MakeList{Elems: elems, Typ: types.NewList(elemType)}
}

func (c *funcCtx) lowerTupleExpr(n *ast.TupleExpr) tir.Expr {
	elems := c.lowerExprList(n.Elts)
	elemTypes := make([]*types.Type, len(elems))

	for i, e := range elems {
		elemTypes[i] = e.Type()
	}

	return tir.MakeTuple{Elems: elems, Typ: types.NewTuple(elemTypes...)}
}

func (c *funcCtx) lowerSetExpr(n *ast.SetExpr) tir.Expr {
	elems := c.lowerExprList(n.Elts)

	elemType := types.NoneType
	if len(elems) > 0 {
		elemType = elems[0].Type()
	}

	return tir.MakeSet{Elems: elems, Typ: types.NewSet(elemType)}
}

func (c *funcCtx) lowerDictExpr(n *ast.DictExpr) tir.Expr {
	keys := c.lowerExprList(n.Keys)
	values := c.lowerExprList(n.Values)

	keyType, valType := types.NoneType, types.NoneType
	if len(keys) > 0 {
		keyType, valType = keys[0].Type(), values[0].Type()
	}

	return tir.MakeDict{Keys: keys, Values: values, Typ: types.NewDict(keyType, valType)}
}

// lowerListComp lowers `[elt for target in iter [if cond]* ...]` into a
// single typed tir.Comprehension node (spec §4.5.5), reusing the same
// range/sequence/protocol iteration-kind selection lowerFor applies to a
// `for` statement.
func (c *funcCtx) lowerListComp(n *ast.ListComp) tir.Expr {
	var gens []tir.Generator

	for _, g := range n.Generators {
		targetName, ok := g.Target.(*ast.Name)
		if !ok {
			c.typeError(n.Line(), "comprehension target must be a simple name")
			continue
		}

		var bound tir.Expr

		kind := tir.IterSequence
		elemType := types.NoneType

		if call, ok := g.Iter.(*ast.Call); ok {
			if fn, ok := call.Func.(*ast.Name); ok && fn.Id == "range" {
				if b, ok := c.buildRangeBound(call); ok {
					bound, kind, elemType = b, tir.IterRange, types.IntType
				}
			}
		}

		if bound == nil {
			iter := c.lowerExpr(g.Iter)
			bound = iter
			elemType = c.elementTypeOf(n.Line(), iter.Type())

			if iter.Type().Kind == types.Instance {
				kind = tir.IterProtocol
			}
		}

		c.scope.Bind(targetName.Id, elemType)

		gens = append(gens, tir.Generator{
			Target: targetName.Id,
			Kind:   kind,
			Bound:  bound,
			Conds:  c.lowerExprList(g.Ifs),
		})
	}

	elt := c.lowerExpr(n.Elt)

	return tir.Comprehension{Elt: elt, Generators: gens, Typ: types.NewList(elt.Type())}
}

// lowerIfExp lowers the ternary `body if test else orelse`. The two
// branches must agree on type (up to numeric promotion): there is no
// dynamic union type for the result to fall back to.
func (c *funcCtx) lowerIfExp(n *ast.IfExp) tir.Expr {
	test := c.lowerExpr(n.Test)
	body := c.lowerExpr(n.Body)
	orelse := c.lowerExpr(n.Orelse)

	typ := body.Type()

	if !types.Equal(body.Type(), orelse.Type()) {
		if promoted := promote(body.Type(), orelse.Type()); promoted != nil {
			typ = promoted
		} else {
			c.typeError(n.Line(), "both branches of a conditional expression must have the same type")
		}
	}

	return tir.Ternary{Test: test, Body: body, Orelse: orelse, Typ: typ}
}

// lowerBinaryOp lowers an arithmetic/concatenation/repetition operator,
// special-casing the container forms of `+` and `*` (spec §4.5.6 notes
// these are handled before falling back to numeric promotion) ahead of
// arithResultType's plain numeric-coercion rules.
func (c *funcCtx) lowerBinaryOp(line int, op string, left, right tir.Expr) tir.Expr {
	lt, rt := left.Type(), right.Type()

	if op == "+" {
		switch {
		case lt.Kind == types.Str && rt.Kind == types.Str:
			return tir.RuntimeCall{Symbol: "__tython_str_concat", Args: []tir.Expr{left, right}, Typ: types.StrType}
		case lt.Kind == types.Bytes && rt.Kind == types.Bytes:
			return tir.RuntimeCall{Symbol: "__tython_bytes_concat", Args: []tir.Expr{left, right}, Typ: types.BytesType}
		case lt.Kind == types.ByteArray && rt.Kind == types.ByteArray:
			return tir.RuntimeCall{Symbol: "__tython_bytearray_concat", Args: []tir.Expr{left, right}, Typ: types.ByteArrayType}
		case lt.Kind == types.List && sameContainerElem(lt, rt):
			symbol, handle := c.t.runtimeSymbol("list_concat", lt.Elem, tir.OpEqHash)
			return tir.RuntimeCall{Symbol: symbol, Handle: handle, Args: []tir.Expr{left, right}, Typ: lt}
		}
	}

	if op == "*" {
		switch {
		case lt.Kind == types.Str && rt.Kind == types.Int:
			return tir.RuntimeCall{Symbol: "__tython_str_repeat", Args: []tir.Expr{left, right}, Typ: types.StrType}
		case lt.Kind == types.Bytes && rt.Kind == types.Int:
			return tir.RuntimeCall{Symbol: "__tython_bytes_repeat", Args: []tir.Expr{left, right}, Typ: types.BytesType}
		case lt.Kind == types.ByteArray && rt.Kind == types.Int:
			return tir.RuntimeCall{Symbol: "__tython_bytearray_repeat", Args: []tir.Expr{left, right}, Typ: types.ByteArrayType}
		case lt.Kind == types.List && rt.Kind == types.Int:
			symbol, handle := c.t.runtimeSymbol("list_repeat", lt.Elem, tir.OpEqHash)
			return tir.RuntimeCall{Symbol: symbol, Handle: handle, Args: []tir.Expr{left, right}, Typ: lt}
		}
	}

	if result := arithResultType(op, lt, rt); result != nil {
		return tir.BinaryOp{Op: op, Left: left, Right: right, Typ: result}
	}

	c.typeError(line, "operator '%s' is not supported between %s and %s", op, lt.String(), rt.String())

	return errorExpr()
}

// lowerBuiltinMethodCall lowers `value.method(args)` where value is not a
// user Instance, dispatching by container kind. Structural operations
// (element-type-independent, since every container stores a uniform int64
// slot regardless of logical element type) get a plain monomorphic symbol;
// operations whose behavior depends on element equality, ordering, or
// string conversion go through runtimeSymbol's by-handle dispatch (spec
// §4.5.2). Every dict method, structural or not, goes through
// runtimeSymbol on the key type.
func (c *funcCtx) lowerBuiltinMethodCall(line int, receiver tir.Expr, vt *types.Type, method string, args []tir.Expr) tir.Expr {
	switch vt.Kind {
	case types.Str:
		return c.lowerStrMethod(line, receiver, method, args)
	case types.Bytes, types.ByteArray:
		return c.lowerBytesMethod(line, receiver, vt, method, args)
	case types.List:
		return c.lowerListMethod(line, receiver, vt, method, args)
	case types.Set:
		return c.lowerSetMethod(line, receiver, vt, method, args)
	case types.Dict:
		return c.lowerDictMethod(line, receiver, vt, method, args)
	default:
		c.typeError(line, "type %s has no method '%s'", vt.String(), method)
		return errorExpr()
	}
}

func (c *funcCtx) lowerStrMethod(line int, receiver tir.Expr, method string, args []tir.Expr) tir.Expr {
	call := func(symbol string, typ *types.Type) tir.Expr {
		return tir.RuntimeCall{Symbol: symbol, Args: append([]tir.Expr{receiver}, args...), Typ: typ}
	}

	switch method {
	case "upper", "lower", "title", "capitalize", "strip", "lstrip", "rstrip", "replace", "zfill":
		return call("__tython_str_"+method, types.StrType)
	case "find", "rfind":
		return call("__tython_str_"+method, types.IntType)
	case "startswith", "endswith":
		return call("__tython_str_"+method, types.BoolType)
	case "split":
		return call("__tython_str_split", types.NewList(types.StrType))
	case "join":
		return call("__tython_str_join", types.StrType)
	default:
		c.typeError(line, "str has no method '%s'", method)
		return errorExpr()
	}
}

func (c *funcCtx) lowerBytesMethod(line int, receiver tir.Expr, vt *types.Type, method string, args []tir.Expr) tir.Expr {
	suffix := "bytes"
	if vt.Kind == types.ByteArray {
		suffix = "bytearray"
	}

	call := func(name string, typ *types.Type) tir.Expr {
		return tir.RuntimeCall{Symbol: "__tython_" + suffix + "_" + name, Args: append([]tir.Expr{receiver}, args...), Typ: typ}
	}

	switch method {
	case "upper", "lower", "title", "capitalize", "strip", "lstrip", "rstrip", "translate", "zfill":
		return call(method, vt)
	case "hex":
		return call("hex", types.StrType)
	case "find", "rfind":
		return call(method, types.IntType)
	case "append", "extend":
		if vt.Kind != types.ByteArray {
			c.typeError(line, "bytes has no method '%s'", method)
			return errorExpr()
		}

		name := "push_back"
		if method == "extend" {
			name = "extend_from"
		}

		return call(name, types.NoneType)
	default:
		c.typeError(line, "%s has no method '%s'", vt.String(), method)
		return errorExpr()
	}
}

func (c *funcCtx) lowerListMethod(line int, receiver tir.Expr, vt *types.Type, method string, args []tir.Expr) tir.Expr {
	structural := func(symbol string, typ *types.Type) tir.Expr {
		return tir.RuntimeCall{Symbol: "__tython_list_" + symbol, Args: append([]tir.Expr{receiver}, args...), Typ: typ}
	}

	switch method {
	case "append":
		return structural("push_back", types.NoneType)
	case "pop":
		return structural("pop_back", vt.Elem)
	case "insert":
		return structural("insert_at", types.NoneType)
	case "reverse":
		return structural("reverse", types.NoneType)
	case "extend":
		return structural("extend_from", types.NoneType)
	case "copy":
		return structural("copy", vt)
	case "remove":
		symbol, handle := c.t.runtimeSymbol("list_remove_first", vt.Elem, tir.OpEqHash)
		return tir.RuntimeCall{Symbol: symbol, Handle: handle, Args: append([]tir.Expr{receiver}, args...), Typ: types.NoneType}
	case "index":
		symbol, handle := c.t.runtimeSymbol("list_index_of", vt.Elem, tir.OpEqHash)
		return tir.RuntimeCall{Symbol: symbol, Handle: handle, Args: append([]tir.Expr{receiver}, args...), Typ: types.IntType}
	case "count":
		symbol, handle := c.t.runtimeSymbol("list_count_of", vt.Elem, tir.OpEqHash)
		return tir.RuntimeCall{Symbol: symbol, Handle: handle, Args: append([]tir.Expr{receiver}, args...), Typ: types.IntType}
	case "sort":
		symbol, handle := c.t.runtimeSymbol("list_sort", vt.Elem, tir.OpLt)
		return tir.RuntimeCall{Symbol: symbol, Handle: handle, Args: []tir.Expr{receiver}, Typ: types.NoneType}
	default:
		c.typeError(line, "list has no method '%s'", method)
		return errorExpr()
	}
}

func (c *funcCtx) lowerSetMethod(line int, receiver tir.Expr, vt *types.Type, method string, args []tir.Expr) tir.Expr {
	byHandle := func(base string, typ *types.Type) tir.Expr {
		symbol, handle := c.t.runtimeSymbol(base, vt.Elem, tir.OpEqHash)
		return tir.RuntimeCall{Symbol: symbol, Handle: handle, Args: append([]tir.Expr{receiver}, args...), Typ: typ}
	}

	switch method {
	case "add":
		return byHandle("set_add", types.NoneType)
	case "discard", "remove":
		return byHandle("set_discard", types.NoneType)
	case "union":
		return byHandle("set_union", vt)
	case "intersection":
		return byHandle("set_intersection", vt)
	case "difference":
		return byHandle("set_difference", vt)
	case "symmetric_difference":
		return byHandle("set_symmetric_difference", vt)
	case "update":
		return byHandle("set_union_update", types.NoneType)
	case "intersection_update":
		return byHandle("set_intersection_update", types.NoneType)
	case "difference_update":
		return byHandle("set_difference_update", types.NoneType)
	case "isdisjoint":
		return byHandle("set_is_disjoint", types.BoolType)
	case "issubset":
		return byHandle("set_is_subset", types.BoolType)
	case "issuperset":
		return byHandle("set_is_superset", types.BoolType)
	case "copy":
		return byHandle("set_copy", vt)
	case "clear":
		return byHandle("set_clear", types.NoneType)
	default:
		c.typeError(line, "set has no method '%s'", method)
		return errorExpr()
	}
}

func (c *funcCtx) lowerDictMethod(line int, receiver tir.Expr, vt *types.Type, method string, args []tir.Expr) tir.Expr {
	keyed := func(base string, typ *types.Type) tir.Expr {
		symbol, handle := c.t.runtimeSymbol(base, vt.Key, tir.OpEqHash)
		return tir.RuntimeCall{Symbol: symbol, Handle: handle, Args: append([]tir.Expr{receiver}, args...), Typ: typ}
	}

	switch method {
	case "get":
		return keyed("dict_get", vt.Val)
	case "setdefault":
		return keyed("dict_setdefault", vt.Val)
	case "pop":
		return keyed("dict_pop", vt.Val)
	case "update":
		return keyed("dict_update", types.NoneType)
	case "popitem":
		symbol, handle := c.t.runtimeSymbol("dict_popitem", vt.Key, tir.OpEqHash)
		return tir.RuntimeCall{Symbol: symbol, Handle: handle, Args: []tir.Expr{receiver}, Typ: types.NewTuple(vt.Key, vt.Val)}
	case "clear":
		symbol, handle := c.t.runtimeSymbol("dict_clear", vt.Key, tir.OpEqHash)
		return tir.RuntimeCall{Symbol: symbol, Handle: handle, Args: []tir.Expr{receiver}, Typ: types.NoneType}
	case "copy":
		symbol, handle := c.t.runtimeSymbol("dict_copy", vt.Key, tir.OpEqHash)
		return tir.RuntimeCall{Symbol: symbol, Handle: handle, Args: []tir.Expr{receiver}, Typ: vt}
	case "keys":
		symbol, handle := c.t.runtimeSymbol("dict_keys", vt.Key, tir.OpEqHash)
		return tir.RuntimeCall{Symbol: symbol, Handle: handle, Args: []tir.Expr{receiver}, Typ: types.NewList(vt.Key)}
	case "values":
		symbol, handle := c.t.runtimeSymbol("dict_values", vt.Key, tir.OpEqHash)
		return tir.RuntimeCall{Symbol: symbol, Handle: handle, Args: []tir.Expr{receiver}, Typ: types.NewList(vt.Val)}
	case "items":
		symbol, handle := c.t.runtimeSymbol("dict_items", vt.Key, tir.OpEqHash)
		return tir.RuntimeCall{
			Symbol: symbol, Handle: handle, Args: []tir.Expr{receiver},
			Typ: types.NewList(types.NewTuple(vt.Key, vt.Val)),
		}
	default:
		c.typeError(line, "dict has no method '%s'", method)
		return errorExpr()
	}
}

// classFieldType looks up a user class's declared field type, mirroring
// Translator.classMethod's scan over the shared Environment.
func (t *Translator) classFieldType(class, field string) (*types.Type, bool) {
	for _, m := range t.env.Modules {
		if cb, ok := m.Classes[class]; ok {
			if typ, ok := cb.Fields[field]; ok {
				return typ, true
			}
		}
	}

	return nil, false
}
