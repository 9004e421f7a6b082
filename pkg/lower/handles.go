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

import (
	"github.com/tython-lang/tythonc/pkg/tir"
	"github.com/tython-lang/tythonc/pkg/types"
)

// runtimeSymbol implements the call-site dispatch choice of spec §4.5.2:
// for a primitive element type it names the monomorphic routine
// (`__tython_<base>_<suffix>`); otherwise it names the by-handle routine
// (`__tython_<base>_by_tag`) and builds (or reuses, via the shared
// registry) the operations-handle record the call site must pass.
//
// base is the operation family (e.g. "set_contains", "list_sort"); elem is
// the container's element type; ops selects which function-pointer slots
// the handle needs if one is required.
func (t *Translator) runtimeSymbol(base string, elem *types.Type, ops tir.OpSet) (string, *tir.OperationsHandle) {
	if suffix := elem.RuntimeSymbolSuffix(); suffix != "" {
		return "__tython_" + base + "_" + suffix, nil
	}

	eqFunc, hashFunc, ltFunc, strFunc := t.classOperations(elem)
	handle := t.handles.Get(elem, ops, eqFunc, hashFunc, ltFunc, strFunc)

	return "__tython_" + base + "_by_tag", handle
}

// classOperations names the compiled `__eq__`/`__hash__`/`__lt__`/`__str__`
// methods of a user class, for use as an OperationsHandle's function-
// pointer slots (spec §4.5.2: "the operations record entries invoke the
// class's ... methods"). A class that does not define one of these simply
// leaves the corresponding slot empty; call sites do not check that the
// slot they dispatch through is set.
func (t *Translator) classOperations(elem *types.Type) (eqFunc, hashFunc, ltFunc, strFunc string) {
	if elem.Kind != types.Instance {
		return "", "", "", ""
	}

	class := elem.Class
	if _, ok := t.classMethod(class, "__eq__"); ok {
		eqFunc = mangleMethod(class, "__eq__")
	}

	if _, ok := t.classMethod(class, "__hash__"); ok {
		hashFunc = mangleMethod(class, "__hash__")
	}

	if _, ok := t.classMethod(class, "__lt__"); ok {
		ltFunc = mangleMethod(class, "__lt__")
	}

	if _, ok := t.classMethod(class, "__str__"); ok {
		strFunc = mangleMethod(class, "__str__")
	}

	return
}

// mangleMethod produces the compiled symbol name for a user method,
// matching the naming Function.Qualifier/Name pairing function.go uses
// when it builds *tir.Function values.
func mangleMethod(class, method string) string {
	return class + "." + method
}
