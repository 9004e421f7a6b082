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

// Package rmm implements the Runtime Memory Manager (spec §4.1): a single
// allocation discipline exposing a managed allocator and an atomic
// (pointer-free) variant, backed by the host Go runtime's own garbage
// collector.
//
// Spec §9 frames the reference allocator as a conservative tracing
// collector, because compiled code stores raw 64-bit values in container
// slots that are sometimes pointers and sometimes not (spec §3.1). This Go
// implementation sidesteps that problem rather than reproducing it: every
// value this package hands out is a genuine Go pointer the host Go
// runtime's own *precise* collector already tracks, so there is no slot
// ambiguity to resolve conservatively. AllocateAtomic returns a []byte,
// which the Go collector already treats as containing no interior
// pointers worth scanning — giving the same "scanning may skip it"
// contract as spec §4.1 without a separate conservative/precise mode.
package rmm

import (
	"fmt"
	"os"
	"sync/atomic"
)

// live is a process-wide count of outstanding allocations, read only
// through LiveAllocations; Allocate/Release only update it, and it has no
// effect on collection.
var live int64

// Allocate returns a zeroed region of at least size bytes (spec §4.1),
// scanned for pointers by the host Go garbage collector.
func Allocate(size int64) []byte {
	if size < 0 {
		fatal("invalid allocation size")
	}

	atomic.AddInt64(&live, 1)

	return make([]byte, size)
}

// AllocateAtomic returns a zeroed, pointer-free region of at least size
// bytes (spec §4.1). Used for string/bytes payloads (spec §3.2): a plain
// []byte already carries no interior pointers for the collector to trace.
func AllocateAtomic(size int64) []byte {
	return Allocate(size)
}

// Release returns a region to the allocator. It frees nothing itself, since
// Go's collector reclaims the region (spec §4.1 explicitly allows this for
// "a fully-tracing collector"); it only decrements the live count. It
// gives a release call site (spec §4.3.2, "the old data array is released
// to the allocator") a symbol to call, matching the ABI shape a
// non-tracing reimplementation would need; rdm's vector growth does not
// call it.
func Release(_ []byte) {
	atomic.AddInt64(&live, -1)
}

// LiveAllocations reports the net outstanding Allocate calls, for tests
// asserting Release balances Allocate.
func LiveAllocations() int64 {
	return atomic.LoadInt64(&live)
}

// Init performs the single idempotent setup call invoked before user code
// (spec §4.1). There is nothing to initialize against Go's own GC, but the
// symbol exists so compiled code's startup sequence has a fixed call site.
func Init() {}

// Teardown runs at process exit (spec §4.1). As with Init, Go's collector
// needs no explicit teardown; this exists for ABI symmetry.
func Teardown() {}

// fatal implements spec §7's out-of-memory contract: "fatal runtime,
// `MemoryError: allocation failed` on error stream + exit(1)".
func fatal(reason string) {
	fmt.Fprintf(os.Stderr, "MemoryError: %s\n", reason)
	os.Exit(1)
}
