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

// Package driver is the top-level library entry point tying the import
// resolver (spec §4.4), typed lowering (spec §4.5), and the emit backend
// together (spec §6.3, "CLI contract"). It mirrors the split the teacher
// draws between a library entry point (CompileSourceFiles in
// pkg/corset/compiler.go) and the CLI command that calls it
// (pkg/cmd/compile.go).
package driver

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	log "github.com/sirupsen/logrus"
	"github.com/segmentio/encoding/json"

	"github.com/tython-lang/tythonc/pkg/ast"
	"github.com/tython-lang/tythonc/pkg/diag"
	"github.com/tython-lang/tythonc/pkg/emit"
	"github.com/tython-lang/tythonc/pkg/lower"
	"github.com/tython-lang/tythonc/pkg/resolver"
	"github.com/tython-lang/tythonc/pkg/tir"
)

// Config centralizes the toggles threaded from CLI flags down to the
// resolver and lowering passes (SPEC_FULL.md §A.4, modelled on the
// teacher's corset.CompilationConfig).
type Config struct {
	// StdlibDir overrides the bundled stdlib search directory (spec §4.4
	// step 2).
	StdlibDir string
	// Debug writes the backend's intermediate TIR dump to stderr when the
	// backend implements emit.DebugDumper.
	Debug bool
	// JSON additionally writes the resolved module order and lowered TIR
	// as JSON to <entry>.tython.json.
	JSON bool
	// KeepExe disables the removal of the produced binary afterward when
	// running via CompileAndRun.
	KeepExe bool
	// Backend is the code-generation boundary (pkg/emit). A nil Backend
	// defaults to emit.Stub{}.
	Backend emit.Backend
}

// Result is everything a successful Compile call produced, returned so the
// CLI can report on it without re-deriving state.
type Result struct {
	Modules []*resolver.Module
	Program *tir.Program
	ExePath string
}

// Compile runs the full IR -> TL -> emit pipeline described in spec §2 for
// the module at entryPath and returns the produced executable's path. Parser
// is the external surface-syntax collaborator (pkg/ast.Parser); a real build
// wires it to a Python AST library, exactly as pkg/ast.Parser's doc comment
// describes.
func Compile(cfg Config, parser ast.Parser, entryPath string) (*Result, diag.List) {
	backend := cfg.Backend
	if backend == nil {
		backend = emit.Stub{}
	}

	log.Debugf("resolving import graph from %s", entryPath)

	modules, errs := resolver.Resolve(resolver.Config{StdlibDir: cfg.StdlibDir}, parser, entryPath)
	if errs.HasErrors() {
		return nil, errs
	}

	log.Debugf("resolved %d module(s): %s", len(modules), moduleNames(modules))

	prog, errs := lower.Lower(modules)
	if errs.HasErrors() {
		return nil, errs
	}

	log.Debug("typed lowering complete")

	if cfg.Debug {
		if dumper, ok := backend.(emit.DebugDumper); ok {
			if err := dumper.DumpDebug(os.Stderr, prog); err != nil {
				log.Warnf("debug dump failed: %v", err)
			}
		}
	}

	if cfg.JSON {
		if err := writeJSONArtifact(entryPath, modules, prog); err != nil {
			log.Warnf("--json artifact write failed: %v", err)
		}
	}

	exePath := defaultExePath(entryPath)

	written, err := backend.Emit(prog, exePath)
	if err != nil {
		var errs diag.List
		errs.Add(diag.New(moduleName(entryPath), 0, diag.CodeParseError, "%s", err.Error()))

		return nil, errs
	}

	return &Result{Modules: modules, Program: prog, ExePath: written}, nil
}

// CompileAndRun compiles entryPath and, on success, executes the produced
// binary with args, streaming its stdout/stderr through. The executable is
// removed afterward unless cfg.KeepExe is set (spec §6.3, "the compiler
// either produces a runnable native executable or a non-zero exit with
// diagnostics on stderr").
func CompileAndRun(cfg Config, parser ast.Parser, entryPath string, args []string) (*Result, diag.List, error) {
	res, errs := Compile(cfg, parser, entryPath)
	if errs.HasErrors() {
		return nil, errs, nil
	}

	if !cfg.KeepExe {
		defer os.Remove(res.ExePath)
	}

	cmd := exec.Command(res.ExePath, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	return res, nil, cmd.Run()
}

// defaultExePath places the produced binary beside the entry module with
// its extension stripped (spec §6.3).
func defaultExePath(entryPath string) string {
	return strings.TrimSuffix(entryPath, filepath.Ext(entryPath))
}

func moduleName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func moduleNames(modules []*resolver.Module) string {
	names := make([]string, len(modules))
	for i, m := range modules {
		names[i] = m.Name
	}

	return strings.Join(names, ", ")
}

// jsonArtifact is the shape written by --json: the resolver's module order
// and a flattened summary of the lowered TIR symbol table (SPEC_FULL.md
// §A.1, "--json"). It deliberately doesn't attempt to serialize the full TIR
// expression trees, whose node types aren't self-describing without a
// discriminator tag.
type jsonArtifact struct {
	ModuleOrder []string           `json:"module_order"`
	Modules     []jsonModuleSymbol `json:"modules"`
}

type jsonModuleSymbol struct {
	Name      string   `json:"name"`
	Functions []string `json:"functions"`
	Classes   []string `json:"classes"`
	Globals   []string `json:"globals"`
}

// writeJSONArtifact encodes the resolver/lowering debug artifact with
// github.com/segmentio/encoding/json, the drop-in faster encoding/json
// SPEC_FULL.md §A.1 wires for this flag.
func writeJSONArtifact(entryPath string, modules []*resolver.Module, prog *tir.Program) error {
	artifact := jsonArtifact{}

	for _, m := range modules {
		artifact.ModuleOrder = append(artifact.ModuleOrder, m.Name)
	}

	for _, m := range prog.Modules {
		sym := jsonModuleSymbol{Name: m.Name}

		for _, f := range m.Functions {
			sym.Functions = append(sym.Functions, f.Name)
		}

		for _, c := range m.Classes {
			sym.Classes = append(sym.Classes, c.Name)
		}

		for _, g := range m.Globals {
			sym.Globals = append(sym.Globals, g.Name)
		}

		artifact.Modules = append(artifact.Modules, sym)
	}

	encoded, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json artifact: %w", err)
	}

	out := entryPath + ".tython.json"

	// atomic.WriteFile renames into place rather than writing the artifact
	// in place, so a reader never observes a half-written file if the
	// compiler is interrupted mid-write. The executable itself is written by
	// the backend, not through this helper.
	return atomic.WriteFile(out, strings.NewReader(string(encoded)))
}
