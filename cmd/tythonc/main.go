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

// Command tythonc is the ahead-of-time compiler for the Tython language
// (spec §6.3): `tythonc <entry-module-path>` resolves the entry module's
// import graph, runs typed lowering, and emits a native executable beside
// it.
package main

import "github.com/tython-lang/tythonc/pkg/cmd"

func main() {
	cmd.Execute()
}
