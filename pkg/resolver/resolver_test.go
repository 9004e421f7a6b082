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

package resolver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tython-lang/tythonc/pkg/ast"
	"github.com/tython-lang/tythonc/pkg/diag"
)

// touch writes an empty file at dir/name and registers its (trivial) AST
// with the fixture parser, returning the path.
func touch(t *testing.T, b *ast.Builder, dir, name string, imports ...string) string {
	t.Helper()

	path := filepath.Join(dir, name+".py")
	if err := os.WriteFile(path, []byte("# "+name), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}

	mod := &ast.Module{}
	if len(imports) > 0 {
		mod.Body = []ast.Stmt{&ast.Import{Modules: imports}}
	}

	b.Register(path, mod)

	return path
}

func TestResolveOrdersDependenciesFirst(t *testing.T) {
	dir := t.TempDir()
	b := ast.NewBuilder()

	touch(t, b, dir, "leaf")
	touch(t, b, dir, "mid", "leaf")
	entry := touch(t, b, dir, "main", "mid")

	mods, errs := Resolve(Config{}, b, entry)
	if errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", errs)
	}

	if len(mods) != 3 {
		t.Fatalf("expected 3 modules, got %d", len(mods))
	}

	pos := make(map[string]int)
	for i, m := range mods {
		pos[m.Name] = i
	}

	if pos["leaf"] > pos["mid"] || pos["mid"] > pos["main"] {
		t.Fatalf("dependency order violated: %v", pos)
	}
}

func TestResolveDedupesDiamondImports(t *testing.T) {
	dir := t.TempDir()
	b := ast.NewBuilder()

	touch(t, b, dir, "shared")
	touch(t, b, dir, "left", "shared")
	touch(t, b, dir, "right", "shared")
	entry := touch(t, b, dir, "main", "left", "right")

	mods, errs := Resolve(Config{}, b, entry)
	if errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", errs)
	}

	count := 0

	for _, m := range mods {
		if m.Name == "shared" {
			count++
		}
	}

	if count != 1 {
		t.Fatalf("expected 'shared' to appear exactly once, got %d", count)
	}
}

func TestResolveDetectsCycle(t *testing.T) {
	dir := t.TempDir()
	b := ast.NewBuilder()

	pathA := filepath.Join(dir, "a.py")
	pathB := filepath.Join(dir, "b.py")

	if err := os.WriteFile(pathA, []byte("# a"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(pathB, []byte("# b"), 0o644); err != nil {
		t.Fatal(err)
	}

	b.Register(pathA, &ast.Module{Body: []ast.Stmt{&ast.Import{Modules: []string{"b"}}}})
	b.Register(pathB, &ast.Module{Body: []ast.Stmt{&ast.Import{Modules: []string{"a"}}}})

	mods, errs := Resolve(Config{}, b, pathA)
	if !errs.HasErrors() {
		t.Fatalf("expected an import-cycle error, got none (modules=%v)", mods)
	}

	if mods != nil {
		t.Fatalf("expected no output on failed resolution, got %v", mods)
	}

	if errs[0].Code != diag.CodeImportCycle {
		t.Fatalf("expected CodeImportCycle, got %s", errs[0].Code)
	}
}

func TestResolveMissingModule(t *testing.T) {
	dir := t.TempDir()
	b := ast.NewBuilder()

	entry := touch(t, b, dir, "main", "nonexistent")

	_, errs := Resolve(Config{}, b, entry)
	if !errs.HasErrors() {
		t.Fatal("expected a module-not-found error")
	}

	if errs[0].Code != diag.CodeModuleNotFound {
		t.Fatalf("expected CodeModuleNotFound, got %s", errs[0].Code)
	}
}

func TestResolveSearchesStdlibDirLast(t *testing.T) {
	dir := t.TempDir()
	stdlib := t.TempDir()
	b := ast.NewBuilder()

	touch(t, b, stdlib, "os")
	entry := touch(t, b, dir, "main", "os")

	mods, errs := Resolve(Config{StdlibDir: stdlib}, b, entry)
	if errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", errs)
	}

	if len(mods) != 2 || mods[0].Name != "os" {
		t.Fatalf("expected [os, main], got %v", mods)
	}
}
