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

import "github.com/tython-lang/tythonc/pkg/types"

// Scope represents a region of code in which a name can be resolved: a
// function body, nested inside its owning module's Environment. Python has
// no block scoping (an `if`/`for` body shares its enclosing function's
// scope), so Scope is function-flat: a single mutable map of locals, not a
// tree.
type Scope struct {
	module   *ModuleEnv
	env      *Environment
	receiver *types.Type // non-nil inside a method body, the type of `self`
	locals   map[string]*types.Type
}

// NewScope constructs the lexical scope for one function body.
func NewScope(env *Environment, module *ModuleEnv, receiver *types.Type) *Scope {
	return &Scope{module: module, env: env, receiver: receiver, locals: make(map[string]*types.Type)}
}

// Bind introduces (or updates) a local variable's type. Returns false if
// the name is already bound to a different type — Tython requires a
// variable to keep one static type for its lifetime, since there is no
// per-value type tag (spec §3.1) for the compiler to fall back on.
func (s *Scope) Bind(name string, t *types.Type) bool {
	if existing, ok := s.locals[name]; ok {
		return types.Equal(existing, t)
	}

	s.locals[name] = t

	return true
}

// Lookup resolves a bare name, trying `self` (inside a method), then
// locals, then the owning module's globals/functions/classes, then its
// imports.
func (s *Scope) Lookup(name string) (Binding, bool) {
	if name == "self" && s.receiver != nil {
		return VarBinding{Type: s.receiver}, true
	}

	if t, ok := s.locals[name]; ok {
		return VarBinding{Type: t}, true
	}

	if v, ok := s.module.Globals[name]; ok {
		return v, true
	}

	if f, ok := s.module.Funcs[name]; ok {
		return f, true
	}

	if c, ok := s.module.Classes[name]; ok {
		return c, true
	}

	if b, ok := s.module.Imports[name]; ok {
		return b, true
	}

	return nil, false
}

// ResolveQualified resolves `module.symbol` through an ImportBinding (spec
// §4.4: "member access on such a binding resolves to symbols in m").
func (s *Scope) ResolveQualified(module, symbol string) (Binding, bool) {
	return s.env.Resolve(module, symbol)
}
