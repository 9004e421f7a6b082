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

// ModuleEnv is the set of top-level bindings a single module contributes:
// its own functions, classes and globals, plus the import bindings the
// resolver recorded for it (spec §4.4, "Import Binding"). It is built in a
// first pass over every resolved module, before any function body is
// lowered, so that forward and cross-module references resolve correctly.
type ModuleEnv struct {
	Name    string
	Globals map[string]VarBinding
	Funcs   map[string]FuncBinding
	Classes map[string]ClassBinding
	Imports map[string]Binding // local name -> ImportBinding | ImportedSymbolBinding
}

func newModuleEnv(name string) *ModuleEnv {
	return &ModuleEnv{
		Name:    name,
		Globals: make(map[string]VarBinding),
		Funcs:   make(map[string]FuncBinding),
		Classes: make(map[string]ClassBinding),
		Imports: make(map[string]Binding),
	}
}

// Environment holds every module's ModuleEnv for the whole program, so
// lowering a call through a qualified `import m` binding can look up `m`'s
// exports.
type Environment struct {
	Modules map[string]*ModuleEnv
}

// NewEnvironment constructs an empty, multi-module Environment.
func NewEnvironment() *Environment {
	return &Environment{Modules: make(map[string]*ModuleEnv)}
}

// Resolve looks up symbol among module's own functions, classes and
// globals, in that order. It does not follow that module's imports.
func (e *Environment) Resolve(module, symbol string) (Binding, bool) {
	env, ok := e.Modules[module]
	if !ok {
		return nil, false
	}

	if f, ok := env.Funcs[symbol]; ok {
		return f, true
	}

	if c, ok := env.Classes[symbol]; ok {
		return c, true
	}

	if v, ok := env.Globals[symbol]; ok {
		return v, true
	}

	return nil, false
}
