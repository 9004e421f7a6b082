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

// Binding is whatever a name in scope resolves to. Unlike the teacher's
// corset compiler (which distinguishes columns, functions and parameters),
// Tython only ever needs the five forms below because spec §4.5.1 rejects
// every other surface form (nested defs, indirect calls, inheritance) that
// would otherwise require richer binding kinds.
type Binding interface {
	binding()
}

// VarBinding is a local variable, function parameter, or module-level
// global.
type VarBinding struct {
	Type *types.Type
}

// FuncBinding is a free function or an instance method. Receiver is nil for
// a free function and names the owning class for a method.
type FuncBinding struct {
	Params   []*types.Type
	Return   *types.Type
	Receiver string
}

// ClassBinding is a user class: its typed fields and its methods, keyed by
// name. Tython rejects inheritance (spec §4.5.1), so a class's member set
// is exactly what its own body declares.
type ClassBinding struct {
	Fields  map[string]*types.Type
	FieldOrder []string
	Methods map[string]*FuncBinding
}

// ImportBinding is `import m`: accesses are qualified (`m.symbol`), and
// resolve by looking up `symbol` in module m's environment (spec §4.4,
// "Import Binding").
type ImportBinding struct {
	Module string
}

// ImportedSymbolBinding is `from m import a`: a local, unqualified binding
// whose resolved target is the top-level symbol `a` in module `m` (spec
// §4.4).
type ImportedSymbolBinding struct {
	Module string
	Symbol string
}

func (VarBinding) binding()             {}
func (FuncBinding) binding()            {}
func (ClassBinding) binding()           {}
func (ImportBinding) binding()          {}
func (ImportedSymbolBinding) binding()  {}
