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

// Package emit is the external collaborator boundary between TIR and native
// code generation (spec §1: SSA emission, linking, and native code
// generation are out of this repository's scope). It mirrors the shape of
// pkg/ast.Parser: only the interface is part of this repository's core, and
// a production build wires Backend to a real code generator.
package emit

import (
	"fmt"
	"io"

	"github.com/tython-lang/tythonc/pkg/tir"
)

// Backend turns a lowered Program into an executable written to path.
type Backend interface {
	// Emit writes the native executable for prog to path, returning the
	// final path written (a real backend may append a platform-specific
	// suffix, e.g. ".exe").
	Emit(prog *tir.Program, path string) (string, error)
}

// DebugDumper is implemented by backends that can additionally render a
// human-readable summary of a Program, used by the CLI's --debug flag.
type DebugDumper interface {
	DumpDebug(w io.Writer, prog *tir.Program) error
}

// Stub is a Backend that performs no native code generation: it exists so
// pkg/driver and the CLI have something to call end to end before a real
// backend is wired in, and so tests can exercise the full resolve-lower-emit
// pipeline without an external code generator. It writes nothing to path and
// always fails, the same way pkg/ast.Builder is a real Parser that performs
// no actual parsing.
type Stub struct{}

// Emit implements Backend. Native code generation is out of scope (spec §1);
// this always reports that no backend is configured.
func (Stub) Emit(prog *tir.Program, path string) (string, error) {
	return "", fmt.Errorf("emit: no native code generation backend configured (got %d modules for %s)",
		len(prog.Modules), path)
}

// DumpDebug implements DebugDumper by rendering the Program's module and
// symbol shape, the same debug-introspection role the teacher's various
// pkg/cmd/debug*.go inspection subcommands play for a constraint schema.
func (Stub) DumpDebug(w io.Writer, prog *tir.Program) error {
	for _, m := range prog.Modules {
		fmt.Fprintf(w, "module %s\n", m.Name)

		for _, g := range m.Globals {
			fmt.Fprintf(w, "  global %s: %s\n", g.Name, g.Type.String())
		}

		for _, c := range m.Classes {
			fmt.Fprintf(w, "  class %s (%d fields, %d methods)\n", c.Name, len(c.Fields), len(c.Methods))
		}

		for _, f := range m.Functions {
			fmt.Fprintf(w, "  func %s.%s(%d params) -> %s\n", f.Qualifier, f.Name, len(f.Params), f.Return.String())
		}
	}

	return nil
}
