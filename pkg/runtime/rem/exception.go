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

package rem

import (
	"fmt"
	"os"
)

// Exception is the runtime representation described in spec §3.2: "{type_tag:
// i64, message: pointer-to-immutable-buffer}". Message is kept as a Go
// string here rather than a pointer into an RDM buffer, because this
// package models the *machinery*, not the ABI encoding — the lowering pass
// is responsible for boxing the message into an actual immutable-buffer
// object at the call site before handing it to raiseImpl. Once raised, an
// Exception is never mutated (spec §3.3).
type Exception struct {
	Tag     Tag
	Message string
}

// Error implements error so Exception can flow through normal Go control
// paths (panic/recover) as well as the cgo Itanium-ABI bridge in
// raise_cgo.go.
func (e *Exception) Error() string {
	return fmt.Sprintf("%s: %s", e.Tag.Name(), e.Message)
}

// Raise allocates an exception object and unwinds the stack to the nearest
// enclosing handler (spec §4.2, "Raise/Catch Contract"). Raise never
// returns.
func Raise(tag Tag, message string) {
	raiseImpl(&Exception{Tag: tag, Message: message})
}

// Catch runs body, and if it raises an Exception whose tag Matches wanted,
// invokes handler with the caught exception and returns true. Any other
// panic (including a *Exception whose tag does not match) is re-raised
// unchanged, preserving the "landingpads always enter, then matches
// filters" discipline of spec §4.2. This is the pure-Go stand-in for what
// compiled code expresses as a try/catch landingpad generated by the
// external code-generation library (spec §1).
func Catch(wanted Tag, body func(), handler func(e *Exception)) (handled bool) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		exc, ok := r.(*Exception)
		if !ok || !Matches(exc.Tag, wanted) {
			panic(r)
		}

		handled = true

		handler(exc)
	}()

	body()

	return false
}

// CaughtTag implements caught_tag(p) (spec §4.2).
func CaughtTag(e *Exception) Tag { return e.Tag }

// CaughtMessage implements caught_message(p) (spec §4.2).
func CaughtMessage(e *Exception) string { return e.Message }

// PrintUnhandled implements the outermost handler's contract (spec §4.2):
// print "<Name>: <message>\n" to the error stream and exit with status 1.
// An unhandled raise anywhere in a compiled program ends up here (spec
// §7).
func PrintUnhandled(e *Exception) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", e.Tag.Name(), e.Message)
	os.Exit(1)
}

// RunProtected wraps a compiled program's entry point with the mandatory
// top-level catch block (spec §4.2, §7: "the outermost handler is
// mandatory"). A panic that is not an *Exception (a Go runtime fault, not
// a Tython-level raise) is not this package's concern and is allowed to
// propagate and crash the process in the usual Go way.
func RunProtected(entry func()) {
	defer func() {
		if r := recover(); r != nil {
			if exc, ok := r.(*Exception); ok {
				PrintUnhandled(exc)
			}

			panic(r)
		}
	}()

	entry()
}
