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

// Package lower implements the Typed Lowering pass (spec §4.5): it maps a
// resolved module's surface AST to TIR, rejecting the constructs listed in
// spec §4.5.1 and choosing, at each polymorphic call site, between a
// monomorphic runtime symbol and a by-handle dispatch (spec §4.5.2).
package lower

import (
	"github.com/tython-lang/tythonc/pkg/ast"
	"github.com/tython-lang/tythonc/pkg/diag"
	"github.com/tython-lang/tythonc/pkg/resolver"
	"github.com/tython-lang/tythonc/pkg/tir"
	"github.com/tython-lang/tythonc/pkg/types"
)

// Translator is the top-level driver for the typed lowering pass, mirroring
// the split the teacher's pkg/corset/compiler.go makes between a whole-
// program environment-building pass and a per-declaration lowering pass.
type Translator struct {
	env      *Environment
	handles  *tir.HandleRegistry
	classAST map[string]*ast.ClassDef // class name -> its declaration, for classOperations lookups
}

// Lower runs the typed lowering pass over every module the resolver
// produced, in the resolver's dependency-first order (so a module's
// imports are already present in the Environment by the time its body is
// lowered).
func Lower(modules []*resolver.Module) (*tir.Program, diag.List) {
	t := &Translator{
		env:      NewEnvironment(),
		handles:  tir.NewHandleRegistry(),
		classAST: make(map[string]*ast.ClassDef),
	}

	var errs diag.List

	// Pass 1: collect every module's top-level signature (functions,
	// classes, globals, imports) before lowering any body, so forward and
	// cross-module references resolve.
	for _, m := range modules {
		t.collectModule(m, &errs)
	}

	if errs.HasErrors() {
		return nil, errs
	}

	// Pass 2: lower every function and method body.
	prog := &tir.Program{Handles: t.handles}

	for _, m := range modules {
		prog.Modules = append(prog.Modules, t.lowerModule(m, &errs))
	}

	if errs.HasErrors() {
		return nil, errs
	}

	return prog, nil
}

// classMethod looks up a method's signature on a user class.
func (t *Translator) classMethod(class, method string) (FuncBinding, bool) {
	for _, m := range t.env.Modules {
		if c, ok := m.Classes[method2class(class, m)]; ok {
			if f, ok := c.Methods[method]; ok {
				return f, true
			}
		}
	}

	return FuncBinding{}, false
}

// method2class is a small indirection so classMethod's lookup reads
// naturally; classes are named uniquely across the program (Tython has no
// package-qualified class names, spec §1 Non-goals: no package-directory
// imports).
func method2class(class string, _ *ModuleEnv) string { return class }

// collectModule registers one module's top-level functions, classes,
// globals and imports into the shared Environment (spec §4.4, "Import
// Binding": the resolver records binding -> (module, symbol) pairs; this
// pass turns those into lower.Binding values).
func (t *Translator) collectModule(m *resolver.Module, errs *diag.List) {
	env := newModuleEnv(m.Name)
	t.env.Modules[m.Name] = env

	for _, stmt := range m.AST.Body {
		switch s := stmt.(type) {
		case *ast.Import:
			for _, name := range s.Modules {
				env.Imports[name] = ImportBinding{Module: name}
			}
		case *ast.ImportFrom:
			for _, name := range s.Names {
				env.Imports[name] = ImportedSymbolBinding{Module: s.Module, Symbol: name}
			}
		case *ast.FunctionDef:
			if s.IsNested {
				errs.Add(diag.New(m.Name, s.Line(), diag.CodeNestedFunction,
					"nested function definitions are not supported: %s", s.Name))
				continue
			}

			fb, ok := t.signature(m.Name, s, "", errs)
			if ok {
				env.Funcs[s.Name] = fb
			}
		case *ast.ClassDef:
			t.collectClass(m.Name, s, env, errs)
		case *ast.AnnAssign:
			typ := t.resolveAnnotation(m.Name, s.Annotation, errs)
			if typ != nil {
				env.Globals[s.Target] = VarBinding{Type: typ}
			}
		}
	}
}

// collectClass registers a class's fields and method signatures. Tython
// rejects inheritance (spec §4.5.1): any non-trivial Bases entry is a
// lowering error, not merely ignored.
func (t *Translator) collectClass(module string, s *ast.ClassDef, env *ModuleEnv, errs *diag.List) {
	for _, base := range s.Bases {
		if n, ok := base.(*ast.Name); !ok || n.Id != "object" {
			errs.Add(diag.New(module, s.Line(), diag.CodeInheritanceRejected,
				"class %s may not declare a base class", s.Name))

			return
		}
	}

	t.classAST[s.Name] = s

	cb := ClassBinding{
		Fields:  make(map[string]*types.Type),
		Methods: make(map[string]*FuncBinding),
	}

	for _, member := range s.Body {
		switch m := member.(type) {
		case *ast.AnnAssign:
			typ := t.resolveAnnotation(module, m.Annotation, errs)
			if typ != nil {
				cb.Fields[m.Target] = typ
				cb.FieldOrder = append(cb.FieldOrder, m.Target)
			}
		case *ast.FunctionDef:
			m.IsMethod = true

			fb, ok := t.signature(module, m, s.Name, errs)
			if ok {
				fb.Receiver = s.Name
				cb.Methods[m.Name] = &fb
			}

			if err := checkMagicMethod(module, m, fb); err != nil {
				errs.Add(err)
			}
		}
	}

	env.Classes[s.Name] = cb
}

// signature validates and builds a FuncBinding for a `def`, enforcing spec
// §4.5.1's parameter rules: every parameter (other than `self` on a method)
// must carry an annotation, and there is no surface syntax here for
// keyword-only, positional-only, variadic or double-star parameters — the
// ast.Arg shape has no room for them, so the only residual check is the
// annotation requirement.
func (t *Translator) signature(module string, s *ast.FunctionDef, receiver string, errs *diag.List) (FuncBinding, bool) {
	var params []*types.Type

	ok := true

	for i, p := range s.Args {
		if receiver != "" && i == 0 && p.Name == "self" {
			params = append(params, types.NewInstance(receiver))
			continue
		}

		if p.Annotation == nil {
			errs.Add(diag.New(module, p.Line(), diag.CodeMissingAnnotation,
				"parameter '%s' of %s has no type annotation", p.Name, s.Name))

			ok = false

			continue
		}

		typ := t.resolveAnnotation(module, p.Annotation, errs)
		params = append(params, typ)
	}

	var ret *types.Type
	if s.Returns != nil {
		ret = t.resolveAnnotation(module, s.Returns, errs)
	} else {
		ret = types.NoneType
	}

	return FuncBinding{Params: params, Return: ret}, ok
}

// checkMagicMethod enforces spec §4.5.1's fixed contracts for `__len__`,
// `__str__`, `__repr__`: `__len__` must return int, `__str__`/`__repr__`
// must return str, and none of the three may take parameters beyond
// `self`.
func checkMagicMethod(module string, s *ast.FunctionDef, fb FuncBinding) *diag.Diagnostic {
	switch s.Name {
	case "__len__":
		if len(fb.Params) != 1 || fb.Return == nil || fb.Return.Kind != types.Int {
			return diag.New(module, s.Line(), diag.CodeMagicMethodSignature,
				"__len__ must take no arguments beyond self and return int")
		}
	case "__str__", "__repr__":
		if len(fb.Params) != 1 || fb.Return == nil || fb.Return.Kind != types.Str {
			return diag.New(module, s.Line(), diag.CodeMagicMethodSignature,
				"%s must take no arguments beyond self and return str", s.Name)
		}
	}

	return nil
}

// resolveAnnotation turns a type-annotation expression (e.g. `int`,
// `list[str]`, `dict[str,int]`, `MyClass`, `None`) into a concrete *Type.
// An annotation the lowering pass cannot recognise is a type error, not a
// panic: the compiler's job is to diagnose, never crash, on malformed user
// input.
func (t *Translator) resolveAnnotation(module string, e ast.Expr, errs *diag.List) *types.Type {
	switch n := e.(type) {
	case *ast.Name:
		switch n.Id {
		case "int":
			return types.IntType
		case "float":
			return types.FloatType
		case "bool":
			return types.BoolType
		case "str":
			return types.StrType
		case "bytes":
			return types.BytesType
		case "bytearray":
			return types.ByteArrayType
		case "None":
			return types.NoneType
		default:
			if _, ok := t.classAST[n.Id]; ok {
				return types.NewInstance(n.Id)
			}
			// Forward reference to a class declared later in the same
			// module, or in one not yet collected: accept optimistically
			// as an instance type; an unresolved method/field access
			// against it will still surface a diag.CodeUnknownAttribute.
			return types.NewInstance(n.Id)
		}
	case *ast.Subscript:
		base, ok := n.Value.(*ast.Name)
		if !ok {
			errs.Add(diag.New(module, e.Line(), diag.CodeTypeError, "unsupported type annotation"))
			return nil
		}

		switch base.Id {
		case "list":
			return types.NewList(t.resolveAnnotation(module, n.Index, errs))
		case "set":
			return types.NewSet(t.resolveAnnotation(module, n.Index, errs))
		case "dict":
			if tup, ok := n.Index.(*ast.TupleExpr); ok && len(tup.Elts) == 2 {
				return types.NewDict(
					t.resolveAnnotation(module, tup.Elts[0], errs),
					t.resolveAnnotation(module, tup.Elts[1], errs))
			}

			errs.Add(diag.New(module, e.Line(), diag.CodeTypeError, "dict annotation needs two type arguments"))

			return nil
		case "tuple":
			if tup, ok := n.Index.(*ast.TupleExpr); ok {
				elems := make([]*types.Type, len(tup.Elts))
				for i, el := range tup.Elts {
					elems[i] = t.resolveAnnotation(module, el, errs)
				}

				return types.NewTuple(elems...)
			}

			return types.NewTuple(t.resolveAnnotation(module, n.Index, errs))
		default:
			errs.Add(diag.New(module, e.Line(), diag.CodeTypeError, "unsupported generic annotation '%s'", base.Id))
			return nil
		}
	default:
		errs.Add(diag.New(module, e.Line(), diag.CodeTypeError, "unsupported type annotation"))
		return nil
	}
}
