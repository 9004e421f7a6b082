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
	"github.com/tython-lang/tythonc/pkg/resolver"
	"github.com/tython-lang/tythonc/pkg/tir"
	"github.com/tython-lang/tythonc/pkg/types"
)

// funcCtx threads the state that is local to lowering a single function or
// method body: its lexical scope, how deep it is nested in try/finally
// frames (to reject `return` per spec §4.5.1), and how deep it is nested in
// loops (to validate `break`/`continue`).
type funcCtx struct {
	t          *Translator
	module     string
	scope      *Scope
	errs       *diag.List
	tryFinally int
	loopDepth  int
	caughtName string // name bound by the innermost enclosing `except ... as name`
}

// lowerModule lowers every top-level function and class in a resolved
// module, using the Environment built in Translator.collectModule.
func (t *Translator) lowerModule(m *resolver.Module, errs *diag.List) *tir.Module {
	env := t.env.Modules[m.Name]
	out := &tir.Module{Name: m.Name}

	for _, stmt := range m.AST.Body {
		switch s := stmt.(type) {
		case *ast.FunctionDef:
			if fn := t.lowerFunction(m.Name, env, s, nil, errs); fn != nil {
				out.Functions = append(out.Functions, fn)
			}
		case *ast.ClassDef:
			if c := t.lowerClass(m.Name, env, s, errs); c != nil {
				out.Classes = append(out.Classes, c)
			}
		case *ast.AnnAssign:
			if g := t.lowerGlobal(m.Name, env, s, errs); g != nil {
				out.Globals = append(out.Globals, g)
			}
		}
	}

	return out
}

func (t *Translator) lowerGlobal(module string, env *ModuleEnv, s *ast.AnnAssign, errs *diag.List) *tir.Global {
	binding, ok := env.Globals[s.Target]
	if !ok {
		return nil
	}

	g := &tir.Global{Name: s.Target, Type: binding.Type}

	if s.Value != nil {
		ctx := &funcCtx{t: t, module: module, scope: NewScope(t.env, env, nil), errs: errs}
		g.Init = ctx.lowerExpr(s.Value)
	}

	return g
}

func (t *Translator) lowerClass(module string, env *ModuleEnv, s *ast.ClassDef, errs *diag.List) *tir.Class {
	cb, ok := env.Classes[s.Name]
	if !ok {
		return nil
	}

	out := &tir.Class{Name: s.Name}

	for _, name := range cb.FieldOrder {
		out.Fields = append(out.Fields, tir.Param{Name: name, Type: cb.Fields[name]})
	}

	for _, member := range s.Body {
		fd, ok := member.(*ast.FunctionDef)
		if !ok {
			continue
		}

		receiver := types.NewInstance(s.Name)
		if fn := t.lowerFunction(module, env, fd, receiver, errs); fn != nil {
			fn.Qualifier = s.Name
			out.Methods = append(out.Methods, fn)
		}
	}

	return out
}

// lowerFunction lowers one `def`'s body. receiver is non-nil when lowering
// a method, giving `self` a concrete type inside the new Scope.
func (t *Translator) lowerFunction(module string, env *ModuleEnv, s *ast.FunctionDef, receiver *types.Type, errs *diag.List) *tir.Function {
	scope := NewScope(t.env, env, receiver)

	var params []tir.Param

	binding, hasSig := env.Funcs[s.Name]
	if !hasSig && receiver != nil {
		if cb, ok := env.Classes[receiver.Class]; ok {
			if fb, ok := cb.Methods[s.Name]; ok {
				binding, hasSig = *fb, true
			}
		}
	}

	paramIdx := 0

	for i, p := range s.Args {
		if receiver != nil && i == 0 && p.Name == "self" {
			params = append(params, tir.Param{Name: "self", Type: receiver})
			scope.Bind("self", receiver)

			continue
		}

		var pt *types.Type
		if hasSig && paramIdx < len(binding.Params) {
			pt = binding.Params[paramIdx]
		}

		paramIdx++
		params = append(params, tir.Param{Name: p.Name, Type: pt})
		scope.Bind(p.Name, pt)
	}

	ret := types.NoneType
	if hasSig {
		ret = binding.Return
	}

	ctx := &funcCtx{t: t, module: module, scope: scope, errs: errs}
	body := ctx.lowerBlock(s.Body)

	return &tir.Function{
		Name:      s.Name,
		Qualifier: module,
		Receiver:  receiver,
		Params:    params,
		Return:    ret,
		Body:      body,
	}
}
