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

//go:build cgo

package rem

/*
#cgo LDFLAGS: -lstdc++

#include <stdint.h>
#include <stdlib.h>

// Declarations for the Itanium C++ ABI entry points spec §4.2 names
// directly: __cxa_allocate_exception / __cxa_throw with a single shared
// type descriptor (the typeinfo for "void*"). These are provided by
// libstdc++/libc++abi on every platform this runtime targets; we declare
// them ourselves rather than including <cxxabi.h> to avoid requiring a
// C++ toolchain just to build the Go runtime package.
typedef void (*tython_dtor)(void *);

extern void *__cxa_allocate_exception(size_t thrown_size);
extern void __cxa_throw(void *thrown_exception, void *tinfo, tython_dtor dest);

// tython_voidptr_typeinfo is resolved at link time against the
// already-shared `typeinfo for void*` that every C++ translation unit
// pulls in; declaring it extern here, rather than synthesizing our own
// descriptor, is what lets raise/catch avoid depending on the host
// linker's per-type RTTI layout (spec §9, "Exception dispatch via single
// typeinfo").
extern void *_ZTIPv;

static void tython_cxa_throw(uint64_t tag, const char *msg) {
	uint64_t *slot = (uint64_t *)__cxa_allocate_exception(sizeof(uint64_t));
	*slot = tag;
	__cxa_throw((void *)slot, &_ZTIPv, 0);
}
*/
import "C"

import "unsafe"

// raiseImpl performs the real zero-cost unwind spec §4.2 specifies: it
// hands the exception's tag to the Itanium ABI's __cxa_throw through the
// shared `void*` typeinfo, exactly as a compiled landingpad would expect.
// The Go-side Exception value itself travels via a parallel Go panic so
// that Catch/RunProtected — which are ordinary Go code, not a compiled
// landingpad — can still recover it with the usual recover() mechanism;
// in a fully compiled program only the C++ unwind path is live.
func raiseImpl(e *Exception) {
	cmsg := C.CString(e.Message)
	defer C.free(unsafe.Pointer(cmsg))

	defer func() {
		// The C++ unwinder never returns into this frame in a fully
		// compiled program; here, where Go owns the call stack, we still
		// need a Go-level panic so Catch's recover() sees the value.
		panic(e)
	}()

	C.tython_cxa_throw(C.uint64_t(e.Tag), cmsg)
}
