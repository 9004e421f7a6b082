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

//go:build !cgo

package rem

// raiseImpl is the portable fallback used when the runtime is built
// without cgo (e.g. cross-compiling, or running this package's own test
// suite): it unwinds via a plain Go panic instead of the Itanium ABI calls
// in raise_cgo.go. Catch and RunProtected recover from either equally,
// since both ultimately panic with a *Exception.
func raiseImpl(e *Exception) {
	panic(e)
}
