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
	"github.com/tython-lang/tythonc/pkg/runtime/rem"
	"github.com/tython-lang/tythonc/pkg/tir"
	"github.com/tython-lang/tythonc/pkg/types"
)

// lowerExceptionTag resolves the Type expression of an `except Type:`
// clause to its fixed taxonomy tag (spec §4.2). Tython has no user-defined
// exception hierarchy — inheritance is rejected outright (spec §4.5.1), so
// every catchable type names one of the built-in tags.
func (c *funcCtx) lowerExceptionTag(e ast.Expr) int64 {
	name, ok := e.(*ast.Name)
	if !ok {
		c.typeError(e.Line(), "an except clause must name a built-in exception type")
		return int64(rem.Base)
	}

	tag, ok := rem.Lookup(name.Id)
	if !ok {
		c.errs.Add(diag.New(c.module, e.Line(), diag.CodeUnknownName, "unknown exception type '%s'", name.Id))
		return int64(rem.Base)
	}

	return int64(tag)
}

// lowerExceptionConstructor lowers the expression of a `raise Exc` or
// `raise Exc("message")` statement into the (tag, message) pair tir.Raise
// carries; an omitted message lowers to an empty string constant rather
// than a nil Expr, so the emitter never special-cases a missing argument.
func (c *funcCtx) lowerExceptionConstructor(e ast.Expr) (int64, tir.Expr) {
	switch n := e.(type) {
	case *ast.Name:
		tag, ok := rem.Lookup(n.Id)
		if !ok {
			c.errs.Add(diag.New(c.module, n.Line(), diag.CodeUnknownName, "unknown exception type '%s'", n.Id))
			return int64(rem.Base), tir.ConstStr{Value: ""}
		}

		return int64(tag), tir.ConstStr{Value: ""}
	case *ast.Call:
		name, ok := n.Func.(*ast.Name)
		if !ok {
			c.typeError(e.Line(), "raise target must be a built-in exception constructor")
			return int64(rem.Base), tir.ConstStr{Value: ""}
		}

		tag, ok := rem.Lookup(name.Id)
		if !ok {
			c.errs.Add(diag.New(c.module, n.Line(), diag.CodeUnknownName, "unknown exception type '%s'", name.Id))
			return int64(rem.Base), tir.ConstStr{Value: ""}
		}

		if len(n.Keywords) > 0 {
			c.errs.Add(diag.New(c.module, n.Line(), diag.CodeKeywordArgument,
				"keyword arguments are not supported in exception constructors"))

			return int64(tag), tir.ConstStr{Value: ""}
		}

		switch len(n.Args) {
		case 0:
			return int64(tag), tir.ConstStr{Value: ""}
		case 1:
			msg := c.lowerExpr(n.Args[0])
			if msg.Type().Kind != types.Str {
				msg = c.toStrExpr(msg)
			}

			return int64(tag), msg
		default:
			c.typeError(n.Line(), "%s takes at most one argument", name.Id)
			return int64(tag), tir.ConstStr{Value: ""}
		}
	default:
		c.typeError(e.Line(), "raise target must be a built-in exception type or constructor call")
		return int64(rem.Base), tir.ConstStr{Value: ""}
	}
}
