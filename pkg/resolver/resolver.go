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

// Package resolver implements the Import Resolver (spec §4.4): given the
// path of an entry module, it walks the transitive import graph, detects
// cycles, and produces a compilation order in which every module's
// dependencies appear before it.
package resolver

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bits-and-blooms/bitset"

	"github.com/tython-lang/tythonc/pkg/ast"
	"github.com/tython-lang/tythonc/pkg/diag"
	"github.com/tython-lang/tythonc/pkg/source"
)

// Module is one entry of the resolver's output: a logical module name, its
// parsed AST, and the source file it came from.
type Module struct {
	Name   string
	AST    *ast.Module
	Source *source.File
}

// Config controls where the resolver searches for imported modules beyond
// the two directories spec §4.4 always tries (the importing module's
// directory, then the entry module's directory).
type Config struct {
	// StdlibDir is the bundled standard-library search directory, tried
	// last (spec §4.4 step 2: "a bundled stdlib directory").
	StdlibDir string
}

// Resolver performs the depth-first walk described in spec §4.4. Each
// Resolver is single-use: construct one per compilation via New.
type Resolver struct {
	cfg    Config
	parser ast.Parser

	entryDir string

	// ordinal assigns each module-name a stable small integer the first
	// time it is seen, so the on-stack set can be tracked with a bitset
	// rather than a map[string]bool.
	ordinal map[string]uint
	onStack *bitset.BitSet
	stack   []string // parallel to onStack, for rendering the cycle path

	cache   map[string]*Module // fully resolved modules, keyed by name
	output  []*Module
}

// New constructs a Resolver.
func New(cfg Config, parser ast.Parser) *Resolver {
	return &Resolver{
		cfg:     cfg,
		parser:  parser,
		ordinal: make(map[string]uint),
		onStack: bitset.New(64),
		cache:   make(map[string]*Module),
	}
}

// Resolve walks the transitive import graph rooted at entryPath and returns
// an ordered list of modules such that any module's dependencies appear
// earlier in the list (spec §4.4, "Contract"). On failure it returns the
// diagnostics accumulated so far and a nil module list: no partial output is
// produced for a failed compilation.
func Resolve(cfg Config, parser ast.Parser, entryPath string) ([]*Module, diag.List) {
	r := New(cfg, parser)
	r.entryDir = filepath.Dir(entryPath)

	name := moduleName(entryPath)

	var errs diag.List
	r.visit(name, entryPath, &errs)

	if errs.HasErrors() {
		return nil, errs
	}

	return r.output, nil
}

// moduleName derives the logical module name from a file path: the stem of
// its base name, with the ".py" suffix removed.
func moduleName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// visit implements one step of the depth-first walk for a module already
// known to exist at path. It is the only method that mutates onStack/stack
// and appends to output.
func (r *Resolver) visit(name, path string, errs *diag.List) {
	if _, done := r.cache[name]; done {
		// A module imported under multiple names (`import x; from x import
		// y`) is visited once; subsequent visits return immediately (spec
		// §4.4).
		return
	}

	ord, seen := r.ordinal[name]
	if !seen {
		ord = uint(len(r.ordinal))
		r.ordinal[name] = ord
	}

	if ord >= r.onStack.Len() {
		grown := bitset.New(ord + 64)
		grown.InPlaceUnion(r.onStack)
		r.onStack = grown
	}

	if r.onStack.Test(ord) {
		errs.Add(diag.New(name, 0, diag.CodeImportCycle,
			"import cycle: %s -> %s", strings.Join(r.stack, " -> "), name))
		return
	}

	text, err := os.ReadFile(path)
	if err != nil {
		errs.Add(diag.New(name, 0, diag.CodeModuleNotFound, "module not found: %s", name))
		return
	}

	file := source.NewFile(path, name, string(text))

	mod, perr := r.parser.Parse(file)
	if perr != nil {
		errs.Add(diag.New(name, 0, diag.CodeParseError, "%s", perr.Error()))
		return
	}

	r.onStack.Set(ord)
	r.stack = append(r.stack, name)

	for _, imp := range directImports(mod) {
		target, found := r.locate(imp, filepath.Dir(path))
		if !found {
			errs.Add(diag.New(name, 0, diag.CodeModuleNotFound,
				"no module named '%s'", imp))
			continue
		}

		r.visit(imp, target, errs)

		if errs.HasErrors() {
			// Unwind without finishing this module; the caller stops the
			// whole compilation on any resolver error (spec §4.4 step 3/
			// cycle detection both fail the build).
			r.stack = r.stack[:len(r.stack)-1]
			r.onStack.Clear(ord)

			return
		}
	}

	r.stack = r.stack[:len(r.stack)-1]
	r.onStack.Clear(ord)

	resolved := &Module{Name: name, AST: mod, Source: file}
	r.cache[name] = resolved
	r.output = append(r.output, resolved)
}

// locate searches for "<target>.py" along the resolution path: the
// directory containing the currently-processing module, then the entry
// module's directory, then the bundled stdlib directory (spec §4.4 step 2).
func (r *Resolver) locate(target, currentDir string) (string, bool) {
	candidates := []string{
		filepath.Join(currentDir, target+".py"),
		filepath.Join(r.entryDir, target+".py"),
	}

	if r.cfg.StdlibDir != "" {
		candidates = append(candidates, filepath.Join(r.cfg.StdlibDir, target+".py"))
	}

	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, true
		}
	}

	return "", false
}

// directImports extracts the set of module names directly imported by a
// module's top-level statements, handling both `import m` and
// `from m import a, b` (spec §4.4 step 1). Duplicate targets are collapsed
// so a module importing the same dependency twice only visits it once.
func directImports(mod *ast.Module) []string {
	seen := make(map[string]bool)

	var names []string

	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	for _, stmt := range mod.Body {
		switch s := stmt.(type) {
		case *ast.Import:
			for _, m := range s.Modules {
				add(m)
			}
		case *ast.ImportFrom:
			add(s.Module)
		}
	}

	return names
}
