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

// Package tir defines the Typed Intermediate Representation produced by the
// typed lowering pass (spec §4.5): every expression node carries a concrete
// type drawn from pkg/types' closed lattice, and every polymorphic
// operation has already been resolved to either a monomorphic runtime
// symbol or a by-handle call against a dispatch record (spec §4.5.2).
//
// TIR is deliberately not the final SSA form handed to the native code
// generator — that lowering, and its interaction with the external
// code-generation library, is out of this repository's scope (spec §1).
// TIR is the stable boundary the external emitter consumes.
package tir

import "github.com/tython-lang/tythonc/pkg/types"

// Program is the whole compiled unit: the resolver's module order, lowered.
type Program struct {
	Modules  []*Module
	Handles  *HandleRegistry
}

// Module is one lowered source file.
type Module struct {
	Name      string
	Functions []*Function
	Classes   []*Class
	Globals   []*Global
}

// Global is a module-level typed variable.
type Global struct {
	Name  string
	Type  *types.Type
	Init  Expr
}

// Param is a single, fully-typed function parameter.
type Param struct {
	Name string
	Type *types.Type
}

// Function is a lowered `def`, either free or a method (Receiver != nil).
type Function struct {
	Name      string
	Qualifier string // owning module or class name, for symbol naming
	Receiver  *types.Type
	Params    []Param
	Return    *types.Type
	Body      []Stmt
}

// Class is a lowered `class` declaration. Tython rejects inheritance (spec
// §4.5.1), so a Class has no base-class list: every instance method is
// resolved statically.
type Class struct {
	Name    string
	Fields  []Param
	Methods []*Function
}

// Expr is implemented by every TIR expression node. Every node reports its
// own static Type, already resolved — TIR never re-infers.
type Expr interface {
	Type() *types.Type
}

// Stmt is implemented by every TIR statement node.
type Stmt interface {
	stmt()
}

type stmtBase struct{}

func (stmtBase) stmt() {}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// ConstInt, ConstFloat, ConstBool, ConstStr, ConstBytes, ConstNone are
// literal values with a fixed type.
type ConstInt struct{ Value int64 }
type ConstFloat struct{ Value float64 }
type ConstBool struct{ Value bool }
type ConstStr struct{ Value string }
type ConstBytes struct{ Value []byte }
type ConstNone struct{}

func (ConstInt) Type() *types.Type   { return types.IntType }
func (ConstFloat) Type() *types.Type { return types.FloatType }
func (ConstBool) Type() *types.Type  { return types.BoolType }
func (ConstStr) Type() *types.Type   { return types.StrType }
func (ConstBytes) Type() *types.Type { return types.BytesType }
func (ConstNone) Type() *types.Type  { return types.NoneType }

// Local references a function parameter or local variable by name.
type Local struct {
	Name string
	Typ  *types.Type
}

func (l Local) Type() *types.Type { return l.Typ }

// Global references a module-level variable, qualified by its owning
// module (set for `import m`-style qualified access per spec §4.4).
type Global struct {
	Module string
	Name   string
	Typ    *types.Type
}

func (g Global) Type() *types.Type { return g.Typ }

// BinaryOp is an arithmetic/bitwise/string-concat expression whose operand
// coercions (spec §4.5.6) have already been applied by the time this node
// is built — Left and Right carry their final, possibly-promoted types.
type BinaryOp struct {
	Op          string
	Left, Right Expr
	Typ         *types.Type
}

func (b BinaryOp) Type() *types.Type { return b.Typ }

// UnaryOp is a unary operator expression.
type UnaryOp struct {
	Op      string
	Operand Expr
	Typ     *types.Type
}

func (u UnaryOp) Type() *types.Type { return u.Typ }

// Compare is a single binary comparison (chained Python comparisons are
// expanded into a BoolOp of Compare nodes by lowering).
type Compare struct {
	Op          string
	Left, Right Expr
}

func (Compare) Type() *types.Type { return types.BoolType }

// BoolOp is a short-circuiting and/or chain over boolean-typed operands.
type BoolOp struct {
	Op     string
	Values []Expr
}

func (BoolOp) Type() *types.Type { return types.BoolType }

// UserCall invokes a statically-known compiled function or method (spec
// §4.5.1 rejects indirect calls through a function-typed value, so Callee
// is always a resolved symbol name, never an expression).
type UserCall struct {
	Callee   string
	Receiver Expr // non-nil for a method call
	Args     []Expr
	Typ      *types.Type
}

func (c UserCall) Type() *types.Type { return c.Typ }

// RuntimeCall invokes a `__tython_<op>` runtime symbol (spec §6.1). Handle
// is non-nil exactly when Symbol names a by-handle routine (spec §4.5.2);
// compiled code passes Handle's address as an extra argument in that case.
type RuntimeCall struct {
	Symbol string
	Handle *OperationsHandle
	Args   []Expr
	Typ    *types.Type
}

func (r RuntimeCall) Type() *types.Type { return r.Typ }

// Attribute reads an instance field.
type Attribute struct {
	Value Expr
	Field string
	Typ   *types.Type
}

func (a Attribute) Type() *types.Type { return a.Typ }

// Ternary is the `a if cond else b` conditional expression. Unlike a
// comprehension it needs no generator machinery, so it stays a plain
// expression node rather than desugaring into statements.
type Ternary struct {
	Test, Body, Orelse Expr
	Typ                *types.Type
}

func (t Ternary) Type() *types.Type { return t.Typ }

// Generator is one `for target in iter [if cond]*` clause of a
// Comprehension (spec §4.5.5 permits multiple generators and filters per
// comprehension).
type Generator struct {
	Target string
	Kind   IterKind
	Bound  Expr
	Conds  []Expr
}

// Comprehension lowers `[elt for ... ]` into a single typed expression
// node; the emitter expands it into a loop building a fresh list, the
// same way it expands a For statement's iteration protocol.
type Comprehension struct {
	Elt        Expr
	Generators []Generator
	Typ        *types.Type
}

func (c Comprehension) Type() *types.Type { return c.Typ }

// MakeList, MakeSet, MakeTuple, MakeDict build literal containers.
type MakeList struct {
	Elems []Expr
	Typ   *types.Type
}

func (m MakeList) Type() *types.Type { return m.Typ }

type MakeSet struct {
	Elems []Expr
	Typ   *types.Type
}

func (m MakeSet) Type() *types.Type { return m.Typ }

type MakeTuple struct {
	Elems []Expr
	Typ   *types.Type
}

func (m MakeTuple) Type() *types.Type { return m.Typ }

type MakeDict struct {
	Keys, Values []Expr
	Typ          *types.Type
}

func (m MakeDict) Type() *types.Type { return m.Typ }

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

// ExprStmt evaluates an expression for effect.
type ExprStmt struct {
	stmtBase
	Value Expr
}

// Assign stores Value into a single local/global/attribute/index target.
// Multiple assignment is rejected by lowering (spec §4.5.1), so TIR never
// needs more than one target.
type Assign struct {
	stmtBase
	Target Expr
	Value  Expr
}

// Return returns from the enclosing function. `return` inside a try/finally
// frame is rejected by lowering (spec §4.5.1), so TIR never needs to model
// splicing a finally block before a return.
type Return struct {
	stmtBase
	Value Expr // nil for a bare `return`
}

// If is a lowered if/elif/else.
type If struct {
	stmtBase
	Test           Expr
	Body, Orelse   []Stmt
}

// While is a lowered while/else loop.
type While struct {
	stmtBase
	Test         Expr
	Body, Orelse []Stmt
}

// For is a lowered for/else loop; the iteration protocol (spec §4.5.3) has
// already been expanded into Kind + Bound by the time this node is built.
type For struct {
	stmtBase
	Kind   IterKind
	Target string
	Bound  Expr // range bounds tuple, or the sequence/iterator expression
	Body   []Stmt
	Orelse []Stmt
}

// IterKind selects which of the three supported iteration lowerings (spec
// §4.5.3) a For node performs.
type IterKind uint8

const (
	IterRange IterKind = iota
	IterSequence
	IterProtocol
)

// Break, Continue are the trivial loop-control statements.
type Break struct{ stmtBase }
type Continue struct{ stmtBase }

// Raise constructs and raises an exception from Tag and Message, or
// re-raises the currently caught one (spec §4.5.4) when Value is set.
type Raise struct {
	stmtBase
	Tag     int64
	Message Expr
	Value   Expr // set for a bare `raise` re-raising the caught exception
}

// Except is one lowered handler clause.
type Except struct {
	Tag   int64 // exception tag to match, or 0 for a bare `except:`
	Name  string
	Body  []Stmt
}

// Try is a lowered try/except/else/finally.
type Try struct {
	stmtBase
	Body     []Stmt
	Handlers []Except
	Orelse   []Stmt
	Finally  []Stmt
}
