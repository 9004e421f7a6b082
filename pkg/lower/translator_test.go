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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tython-lang/tythonc/pkg/ast"
	"github.com/tython-lang/tythonc/pkg/resolver"
	"github.com/tython-lang/tythonc/pkg/runtime/rem"
	"github.com/tython-lang/tythonc/pkg/tir"
	"github.com/tython-lang/tythonc/pkg/types"
)

func name(id string) *ast.Name { return &ast.Name{Id: id} }

func intConst(v int64) *ast.Constant { return &ast.Constant{Kind: ast.ConstInt, Int: v} }

func strConst(v string) *ast.Constant { return &ast.Constant{Kind: ast.ConstStr, Str: v} }

func mod(name string, body ...ast.Stmt) *resolver.Module {
	return &resolver.Module{Name: name, AST: &ast.Module{Body: body}}
}

// lowerOne is a small harness that lowers a single module and fails the
// test immediately on any diagnostic, since every test in this file builds
// a deliberately well-typed program.
func lowerOne(t *testing.T, m *resolver.Module) *tir.Program {
	t.Helper()

	prog, errs := Lower([]*resolver.Module{m})
	if errs.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}

	return prog
}

// TestLowerFibonacciFunction exercises the iterative Fibonacci shape from
// spec §8: a while loop, augmented assignment, tuple-style simultaneous
// update expressed as two plain assignments (multiple assignment is
// rejected), and a return.
func TestLowerFibonacciFunction(t *testing.T) {
	body := []ast.Stmt{
		&ast.AnnAssign{Target: "a", Annotation: name("int"), Value: intConst(0)},
		&ast.AnnAssign{Target: "b", Annotation: name("int"), Value: intConst(1)},
		&ast.While{
			Test: &ast.Compare{Left: name("n"), Ops: []string{">"}, Comparators: []ast.Expr{intConst(0)}},
			Body: []ast.Stmt{
				&ast.Assign{Targets: []ast.Expr{name("a")}, Value: name("b")},
				&ast.AugAssign{Target: name("b"), Op: "+", Value: name("a")},
				&ast.AugAssign{Target: name("n"), Op: "-", Value: intConst(1)},
			},
		},
		&ast.Return{Value: name("a")},
	}

	fn := &ast.FunctionDef{
		Name:    "fib",
		Args:    []ast.Arg{{Name: "n", Annotation: name("int")}},
		Returns: name("int"),
		Body:    body,
	}

	prog, errs := Lower([]*resolver.Module{mod("main", fn)})
	if errs.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}

	if len(prog.Modules) != 1 || len(prog.Modules[0].Functions) != 1 {
		t.Fatalf("expected one lowered function, got %+v", prog.Modules)
	}

	lowered := prog.Modules[0].Functions[0]
	if lowered.Return.Kind != types.Int {
		t.Fatalf("expected int return type, got %s", lowered.Return.String())
	}
}

// TestLowerClassWithMethodAndConstructor exercises field declarations,
// __init__, and a user method call dispatched against an Instance type.
func TestLowerClassWithMethodAndConstructor(t *testing.T) {
	class := &ast.ClassDef{
		Name:  "Counter",
		Bases: []ast.Expr{name("object")},
		Body: []ast.Stmt{
			&ast.AnnAssign{Target: "value", Annotation: name("int")},
			&ast.FunctionDef{
				Name: "__init__",
				Args: []ast.Arg{
					{Name: "self"},
					{Name: "start", Annotation: name("int")},
				},
				Body: []ast.Stmt{
					&ast.Assign{
						Targets: []ast.Expr{&ast.Attribute{Value: name("self"), Attr: "value"}},
						Value:   name("start"),
					},
				},
			},
			&ast.FunctionDef{
				Name:    "bump",
				Args:    []ast.Arg{{Name: "self"}},
				Returns: name("int"),
				Body: []ast.Stmt{
					&ast.AugAssign{
						Target: &ast.Attribute{Value: name("self"), Attr: "value"},
						Op:     "+",
						Value:  intConst(1),
					},
					&ast.Return{Value: &ast.Attribute{Value: name("self"), Attr: "value"}},
				},
			},
		},
	}

	main := &ast.FunctionDef{
		Name: "run",
		Body: []ast.Stmt{
			&ast.AnnAssign{
				Target:     "c",
				Annotation: name("Counter"),
				Value:      &ast.Call{Func: name("Counter"), Args: []ast.Expr{intConst(0)}},
			},
			&ast.ExprStmt{Value: &ast.Call{Func: &ast.Attribute{Value: name("c"), Attr: "bump"}}},
		},
	}

	prog := lowerOne(t, mod("main", class, main))

	if len(prog.Modules[0].Classes) != 1 {
		t.Fatalf("expected one lowered class")
	}

	cls := prog.Modules[0].Classes[0]
	if len(cls.Fields) != 1 || cls.Fields[0].Name != "value" {
		t.Fatalf("expected one field 'value', got %+v", cls.Fields)
	}

	if len(cls.Methods) != 2 {
		t.Fatalf("expected 2 methods, got %d", len(cls.Methods))
	}
}

// TestLowerClassShapes is a table-driven equality check over several class
// layouts' field/method counts, the same style the teacher reaches for
// testify in pkg/schema/type_test.go for its own shape-heavy assertions.
func TestLowerClassShapes(t *testing.T) {
	cases := []struct {
		name        string
		fields      []ast.Stmt
		methods     []ast.Stmt
		wantFields  int
		wantMethods int
	}{
		{
			name:        "single field, init only",
			fields:      []ast.Stmt{&ast.AnnAssign{Target: "x", Annotation: name("int")}},
			methods:     nil,
			wantFields:  1,
			wantMethods: 1,
		},
		{
			name: "two fields, init and one method",
			fields: []ast.Stmt{
				&ast.AnnAssign{Target: "x", Annotation: name("int")},
				&ast.AnnAssign{Target: "y", Annotation: name("float")},
			},
			methods: []ast.Stmt{
				&ast.FunctionDef{Name: "magnitude", Args: []ast.Arg{{Name: "self"}}, Returns: name("float"),
					Body: []ast.Stmt{&ast.Return{Value: &ast.Attribute{Value: name("self"), Attr: "y"}}}},
			},
			wantFields:  2,
			wantMethods: 2,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			initArgs := []ast.Arg{{Name: "self"}}
			initBody := []ast.Stmt{}

			for _, f := range tc.fields {
				assign := f.(*ast.AnnAssign)
				initArgs = append(initArgs, ast.Arg{Name: assign.Target, Annotation: assign.Annotation})
				initBody = append(initBody, &ast.Assign{
					Targets: []ast.Expr{&ast.Attribute{Value: name("self"), Attr: assign.Target}},
					Value:   name(assign.Target),
				})
			}

			body := append([]ast.Stmt{}, tc.fields...)
			body = append(body, &ast.FunctionDef{Name: "__init__", Args: initArgs, Body: initBody})
			body = append(body, tc.methods...)

			class := &ast.ClassDef{Name: "Shape", Bases: []ast.Expr{name("object")}, Body: body}
			prog := lowerOne(t, mod("main", class))

			assert.Len(t, prog.Modules[0].Classes, 1)

			cls := prog.Modules[0].Classes[0]
			assert.Equal(t, tc.wantFields, len(cls.Fields))
			assert.Equal(t, tc.wantMethods, len(cls.Methods))
		})
	}
}

// TestLowerRaiseAndExceptTag exercises the raise/except lowering against
// the fixed exception taxonomy (spec §4.2).
func TestLowerRaiseAndExceptTag(t *testing.T) {
	fn := &ast.FunctionDef{
		Name: "safe_div",
		Args: []ast.Arg{
			{Name: "a", Annotation: name("int")},
			{Name: "b", Annotation: name("int")},
		},
		Returns: name("int"),
		Body: []ast.Stmt{
			&ast.Try{
				Body: []ast.Stmt{
					&ast.Return{Value: &ast.BinOp{Left: name("a"), Op: "//", Right: name("b")}},
				},
				Handlers: []ast.ExceptHandler{
					{
						Type: name("ZeroDivisionError"),
						Name: "e",
						Body: []ast.Stmt{
							&ast.Raise{Exc: &ast.Call{Func: name("ValueError"), Args: []ast.Expr{strConst("bad division")}}},
						},
					},
				},
			},
		},
	}

	prog := lowerOne(t, mod("main", fn))

	fnBody := prog.Modules[0].Functions[0].Body
	tryStmt, ok := fnBody[0].(*tir.Try)
	if !ok {
		t.Fatalf("expected a lowered Try statement, got %T", fnBody[0])
	}

	if len(tryStmt.Handlers) != 1 || tryStmt.Handlers[0].Tag != int64(rem.ZeroDivisionError) {
		t.Fatalf("expected handler tagged ZeroDivisionError, got %+v", tryStmt.Handlers)
	}

	raiseStmt, ok := tryStmt.Handlers[0].Body[0].(*tir.Raise)
	if !ok {
		t.Fatalf("expected a lowered Raise statement, got %T", tryStmt.Handlers[0].Body[0])
	}

	if raiseStmt.Tag != int64(rem.ValueError) {
		t.Fatalf("expected ValueError tag, got %d", raiseStmt.Tag)
	}
}

// TestLowerForRangeLoop exercises the range-counted iteration lowering
// (spec §4.5.3).
func TestLowerForRangeLoop(t *testing.T) {
	fn := &ast.FunctionDef{
		Name:    "total",
		Args:    []ast.Arg{{Name: "n", Annotation: name("int")}},
		Returns: name("int"),
		Body: []ast.Stmt{
			&ast.AnnAssign{Target: "acc", Annotation: name("int"), Value: intConst(0)},
			&ast.For{
				Target: name("i"),
				Iter:   &ast.Call{Func: name("range"), Args: []ast.Expr{name("n")}},
				Body: []ast.Stmt{
					&ast.AugAssign{Target: name("acc"), Op: "+", Value: name("i")},
				},
			},
			&ast.Return{Value: name("acc")},
		},
	}

	prog := lowerOne(t, mod("main", fn))

	body := prog.Modules[0].Functions[0].Body
	forStmt, ok := body[1].(*tir.For)
	if !ok {
		t.Fatalf("expected a lowered For statement, got %T", body[1])
	}

	if forStmt.Kind != tir.IterRange {
		t.Fatalf("expected IterRange, got %v", forStmt.Kind)
	}
}

// TestLowerListComprehensionWithFilter exercises spec §4.5.5's list
// comprehension with a filter clause.
func TestLowerListComprehensionWithFilter(t *testing.T) {
	fn := &ast.FunctionDef{
		Name:    "evens",
		Args:    []ast.Arg{{Name: "xs", Annotation: &ast.Subscript{Value: name("list"), Index: name("int")}}},
		Returns: &ast.Subscript{Value: name("list"), Index: name("int")},
		Body: []ast.Stmt{
			&ast.Return{
				Value: &ast.ListComp{
					Elt: name("x"),
					Generators: []ast.Comprehension{
						{
							Target: name("x"),
							Iter:   name("xs"),
							Ifs: []ast.Expr{
								&ast.Compare{
									Left: &ast.BinOp{Left: name("x"), Op: "%", Right: intConst(2)},
									Ops:  []string{"=="},
									Comparators: []ast.Expr{intConst(0)},
								},
							},
						},
					},
				},
			},
		},
	}

	prog := lowerOne(t, mod("main", fn))

	body := prog.Modules[0].Functions[0].Body
	ret, ok := body[0].(*tir.Return)
	if !ok {
		t.Fatalf("expected a lowered Return, got %T", body[0])
	}

	comp, ok := ret.Value.(tir.Comprehension)
	if !ok {
		t.Fatalf("expected a lowered Comprehension, got %T", ret.Value)
	}

	if len(comp.Generators) != 1 || len(comp.Generators[0].Conds) != 1 {
		t.Fatalf("expected one generator with one filter, got %+v", comp.Generators)
	}
}

// TestLowerRejectsMultipleAssignment checks spec §4.5.1's rejection of
// `a = b = value`.
func TestLowerRejectsMultipleAssignment(t *testing.T) {
	fn := &ast.FunctionDef{
		Name: "bad",
		Body: []ast.Stmt{
			&ast.Assign{Targets: []ast.Expr{name("a"), name("b")}, Value: intConst(1)},
		},
	}

	_, errs := Lower([]*resolver.Module{mod("main", fn)})
	if len(errs) != 1 || errs[0].Code != "multiple-assignment" {
		t.Fatalf("expected a single multiple-assignment diagnostic, got %+v", errs)
	}
}

// TestLowerRejectsMissingAnnotation checks spec §4.5.1's mandatory
// parameter annotation rule.
func TestLowerRejectsMissingAnnotation(t *testing.T) {
	fn := &ast.FunctionDef{
		Name: "bad",
		Args: []ast.Arg{{Name: "x"}},
		Body: []ast.Stmt{&ast.Return{Value: name("x")}},
	}

	_, errs := Lower([]*resolver.Module{mod("main", fn)})
	if len(errs) != 1 || errs[0].Code != "missing-annotation" {
		t.Fatalf("expected a single missing-annotation diagnostic, got %+v", errs)
	}
}

// TestLowerRejectsReturnInFinally checks spec §4.5.1's rejection of
// `return` lexically inside the body of a try frame that has a non-empty
// `finally` — the case that would otherwise require splicing the finally
// block ahead of an early return.
func TestLowerRejectsReturnInFinally(t *testing.T) {
	fn := &ast.FunctionDef{
		Name: "bad",
		Body: []ast.Stmt{
			&ast.Try{
				Body:    []ast.Stmt{&ast.Return{Value: intConst(1)}},
				Finally: []ast.Stmt{&ast.ExprStmt{Value: intConst(1)}},
			},
		},
	}

	_, errs := Lower([]*resolver.Module{mod("main", fn)})
	if len(errs) != 1 || errs[0].Code != "return-in-finally" {
		t.Fatalf("expected a single return-in-finally diagnostic, got %+v", errs)
	}
}
