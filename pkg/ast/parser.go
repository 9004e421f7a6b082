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

package ast

import "github.com/tython-lang/tythonc/pkg/source"

// Parser is the external collaborator boundary named in spec §1: "the
// surface-syntax parser (delegated to an external Python AST library)". A
// production build wires this to a library that drives CPython's own `ast`
// module (or an equivalent pure-Go Python grammar) and translates its tree
// into the Module shape declared in ast.go. Only the interface is part of
// this repository's core.
type Parser interface {
	// Parse reads and parses a single source file, returning its AST.
	// Parse errors are returned as *diag.Diagnostic-compatible errors
	// carrying diag.CodeParseError; this package does not import pkg/diag
	// to avoid a cycle, so implementations construct that value at the call
	// site in pkg/resolver.
	Parse(file *source.File) (*Module, error)
}

// Builder is a small, hand-rolled Parser implementation used by this
// repository's own tests and by tools that already hold a parsed tree (e.g.
// a fixture). It performs no actual Python tokenizing; Parse always returns
// an empty Module unless a tree was pre-registered via Register. Real
// invocations of the compiler never use this type — it exists purely so
// pkg/resolver and pkg/lower can be exercised without a real parser
// dependency.
type Builder struct {
	trees map[string]*Module
}

// NewBuilder constructs an empty test-fixture Parser.
func NewBuilder() *Builder {
	return &Builder{trees: make(map[string]*Module)}
}

// Register associates a pre-built Module with a source path, so a later
// Parse call for that path returns it.
func (b *Builder) Register(path string, mod *Module) {
	b.trees[path] = mod
}

// Parse implements Parser.
func (b *Builder) Parse(file *source.File) (*Module, error) {
	if mod, ok := b.trees[file.Path]; ok {
		return mod, nil
	}

	return &Module{}, nil
}
