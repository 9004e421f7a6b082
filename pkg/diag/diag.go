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

// Package diag defines the compile-time diagnostic taxonomy shared by the
// import resolver and the typed lowering pass (spec §7: "all compile-time
// errors carry the module and line of the offending AST node, and a one-line
// description").
package diag

import "fmt"

// Code identifies the *kind* of compile-time diagnostic, independent of its
// message. Tests assert on Code rather than parsing message text (spec §9,
// "a reimplementation should treat each entry in the rejection matrix as
// producing a specific diagnostic code").
type Code string

// The fixed taxonomy of compile-time diagnostics. Parse errors are raised by
// the external parser subsystem and simply carry CodeParseError.
const (
	CodeParseError            Code = "parse-error"
	CodeModuleNotFound        Code = "module-not-found"
	CodeImportCycle           Code = "import-cycle"
	CodeTypeError             Code = "type-error"
	CodeMissingAnnotation     Code = "missing-annotation"
	CodeMultipleAssignment    Code = "multiple-assignment"
	CodeInheritanceRejected   Code = "inheritance-rejected"
	CodeNestedFunction        Code = "nested-function"
	CodePrintAsExpression     Code = "print-as-expression"
	CodeUnsupportedParams     Code = "unsupported-params"
	CodeKeywordArgument       Code = "keyword-argument"
	CodeIndirectCall          Code = "indirect-call"
	CodeReturnInFinally       Code = "return-in-finally"
	CodeMagicMethodSignature  Code = "magic-method-signature"
	CodeUnknownName           Code = "unknown-name"
	CodeUnknownAttribute      Code = "unknown-attribute"
)

// Diagnostic is a single compile-time error, attributed to a module and
// line. It implements error so it can be returned and wrapped normally.
type Diagnostic struct {
	// Module is the logical module name in which the error occurred.
	Module string
	// Line is the 1-indexed source line of the offending AST node.
	Line int
	// Code identifies the diagnostic kind.
	Code Code
	// Message is a one-line, human readable description.
	Message string
}

// New constructs a Diagnostic.
func New(module string, line int, code Code, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Module:  module,
		Line:    line,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", d.Module, d.Line, d.Message)
	}

	return fmt.Sprintf("%s: %s", d.Module, d.Message)
}

// List is a convenience accumulator for diagnostics raised across a pass.
type List []*Diagnostic

// Add appends a diagnostic, ignoring a nil argument (so call sites can
// unconditionally append the result of a fallible helper).
func (l *List) Add(d *Diagnostic) {
	if d != nil {
		*l = append(*l, d)
	}
}

// HasErrors reports whether any diagnostic has been recorded.
func (l List) HasErrors() bool {
	return len(l) > 0
}
