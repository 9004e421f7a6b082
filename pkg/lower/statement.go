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
)

// lowerBlock lowers a sequence of statements, skipping (but not silently
// dropping context for) any statement that failed to lower: a failed
// statement contributes its diagnostic and is simply omitted from the
// output, since Lower as a whole returns nil on any error anyway.
func (c *funcCtx) lowerBlock(stmts []ast.Stmt) []tir.Stmt {
	var out []tir.Stmt

	for _, s := range stmts {
		if lowered := c.lowerStmt(s); lowered != nil {
			out = append(out, lowered)
		}
	}

	return out
}

func (c *funcCtx) lowerStmt(s ast.Stmt) tir.Stmt {
	switch n := s.(type) {
	case *ast.ExprStmt:
		return c.lowerExprStmt(n)
	case *ast.AnnAssign:
		return c.lowerAnnAssign(n)
	case *ast.Assign:
		return c.lowerAssign(n)
	case *ast.AugAssign:
		return c.lowerAugAssign(n)
	case *ast.Return:
		return c.lowerReturn(n)
	case *ast.If:
		return c.lowerIf(n)
	case *ast.While:
		return c.lowerWhile(n)
	case *ast.For:
		return c.lowerFor(n)
	case *ast.Break:
		if c.loopDepth == 0 {
			c.errs.Add(diag.New(c.module, n.Line(), diag.CodeTypeError, "'break' outside loop"))
			return nil
		}

		return &tir.Break{}
	case *ast.Continue:
		if c.loopDepth == 0 {
			c.errs.Add(diag.New(c.module, n.Line(), diag.CodeTypeError, "'continue' outside loop"))
			return nil
		}

		return &tir.Continue{}
	case *ast.Pass:
		return &tir.ExprStmt{Value: tir.ConstNone{}}
	case *ast.Raise:
		return c.lowerRaise(n)
	case *ast.Try:
		return c.lowerTry(n)
	case *ast.FunctionDef:
		c.errs.Add(diag.New(c.module, n.Line(), diag.CodeNestedFunction,
			"nested function definitions are not supported: %s", n.Name))
		return nil
	default:
		c.errs.Add(diag.New(c.module, s.Line(), diag.CodeTypeError, "unsupported statement"))
		return nil
	}
}

// lowerExprStmt lowers an expression used in statement position. This is
// the one context in which a bare `print(...)` call is legal (spec
// §4.5.1): everywhere else, lowerExpr rejects it.
func (c *funcCtx) lowerExprStmt(n *ast.ExprStmt) tir.Stmt {
	if call, ok := n.Value.(*ast.Call); ok {
		if name, ok := call.Func.(*ast.Name); ok && name.Id == "print" {
			return &tir.ExprStmt{Value: c.lowerPrintCall(call)}
		}
	}

	return &tir.ExprStmt{Value: c.lowerExpr(n.Value)}
}

func (c *funcCtx) lowerAnnAssign(n *ast.AnnAssign) tir.Stmt {
	typ := c.t.resolveAnnotation(c.module, n.Annotation, c.errs)
	c.scope.Bind(n.Target, typ)

	if n.Value == nil {
		return &tir.ExprStmt{Value: tir.ConstNone{}}
	}

	return &tir.Assign{Target: tir.Local{Name: n.Target, Typ: typ}, Value: c.lowerExpr(n.Value)}
}

// lowerAssign enforces spec §4.5.1's rejection of multiple assignment
// (`a = b = c`) and otherwise lowers a single-target assignment, inferring
// (and, for an already-bound name, checking) the target's type from the
// value.
func (c *funcCtx) lowerAssign(n *ast.Assign) tir.Stmt {
	if len(n.Targets) != 1 {
		c.errs.Add(diag.New(c.module, n.Line(), diag.CodeMultipleAssignment,
			"multiple assignment in a single statement is not supported"))

		return nil
	}

	value := c.lowerExpr(n.Value)
	target := c.lowerAssignTarget(n.Targets[0], value)

	if target == nil {
		return nil
	}

	return &tir.Assign{Target: target, Value: value}
}

func (c *funcCtx) lowerAssignTarget(e ast.Expr, value tir.Expr) tir.Expr {
	switch n := e.(type) {
	case *ast.Name:
		c.scope.Bind(n.Id, value.Type())
		return tir.Local{Name: n.Id, Typ: value.Type()}
	case *ast.Attribute:
		return c.lowerExpr(n)
	case *ast.Subscript:
		return c.lowerExpr(n)
	default:
		c.errs.Add(diag.New(c.module, e.Line(), diag.CodeTypeError, "unsupported assignment target"))
		return nil
	}
}

func (c *funcCtx) lowerAugAssign(n *ast.AugAssign) tir.Stmt {
	target := c.lowerExpr(n.Target)
	value := c.lowerExpr(n.Value)
	bin := c.lowerBinaryOp(n.Line(), n.Op, target, value)

	return &tir.Assign{Target: target, Value: bin}
}

// lowerReturn rejects `return` inside a try/finally frame (spec §4.5.1).
func (c *funcCtx) lowerReturn(n *ast.Return) tir.Stmt {
	if c.tryFinally > 0 {
		c.errs.Add(diag.New(c.module, n.Line(), diag.CodeReturnInFinally,
			"'return' inside a try/finally frame is not supported"))

		return nil
	}

	var v tir.Expr
	if n.Value != nil {
		v = c.lowerExpr(n.Value)
	}

	return &tir.Return{Value: v}
}

func (c *funcCtx) lowerIf(n *ast.If) tir.Stmt {
	return &tir.If{
		Test:   c.lowerExpr(n.Test),
		Body:   c.lowerBlock(n.Body),
		Orelse: c.lowerBlock(n.Orelse),
	}
}

func (c *funcCtx) lowerWhile(n *ast.While) tir.Stmt {
	c.loopDepth++
	body := c.lowerBlock(n.Body)
	c.loopDepth--

	return &tir.While{
		Test:   c.lowerExpr(n.Test),
		Body:   body,
		Orelse: c.lowerBlock(n.Orelse),
	}
}

// lowerRaise lowers `raise e` or a bare re-raise. A bare `raise` (Exc ==
// nil) re-raises whatever exception is currently caught (spec §4.5.4); a
// `raise e` where `e` is the bound name of the currently caught exception
// is likewise a re-raise rather than a fresh allocation — that refinement
// needs the enclosing Except's bound name, which the handler lowering
// keeps in funcCtx.caughtName while it lowers the handler body.
func (c *funcCtx) lowerRaise(n *ast.Raise) tir.Stmt {
	if n.Exc == nil {
		return &tir.Raise{Value: tir.Local{Name: c.caughtName, Typ: nil}}
	}

	if name, ok := n.Exc.(*ast.Name); ok && name.Id == c.caughtName && c.caughtName != "" {
		return &tir.Raise{Value: tir.Local{Name: name.Id, Typ: nil}}
	}

	tag, msg := c.lowerExceptionConstructor(n.Exc)

	return &tir.Raise{Tag: tag, Message: msg}
}

// lowerTry lowers try/except/else/finally (spec §4.5.4): the body, then
// else if no exception reached the handlers, then finally unconditionally.
// `return` is rejected anywhere lexically inside a frame that has a
// non-empty `finally` (spec §4.5.1), which is why tryFinally is only
// incremented around Body/Handlers/Orelse when Finally is present.
func (c *funcCtx) lowerTry(n *ast.Try) tir.Stmt {
	hasFinally := len(n.Finally) > 0

	if hasFinally {
		c.tryFinally++
	}

	body := c.lowerBlock(n.Body)

	var handlers []tir.Except

	for _, h := range n.Handlers {
		handlers = append(handlers, c.lowerExceptHandler(h))
	}

	orelse := c.lowerBlock(n.Orelse)

	if hasFinally {
		c.tryFinally--
	}

	finally := c.lowerBlock(n.Finally)

	return &tir.Try{Body: body, Handlers: handlers, Orelse: orelse, Finally: finally}
}

func (c *funcCtx) lowerExceptHandler(h ast.ExceptHandler) tir.Except {
	var tag int64
	if h.Type != nil {
		tag = c.lowerExceptionTag(h.Type)
	}

	saved := c.caughtName
	c.caughtName = h.Name

	body := c.lowerBlock(h.Body)

	c.caughtName = saved

	return tir.Except{Tag: tag, Name: h.Name, Body: body}
}

