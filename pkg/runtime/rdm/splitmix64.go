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

package rdm

// splitmix64 is the finalizer named in the GLOSSARY: it maps a 64-bit
// input to a well-distributed 64-bit output via three xor-shift and
// multiply rounds. It is used both to hash raw int/bool/float slots
// directly (the hash set's "raw" variant, spec §4.3.3) and as the
// finalizing step of the string/bytes FNV hash (spec §4.3.1).
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb

	return x ^ (x >> 31)
}

// hashInt64 hashes a raw 64-bit slot value (spec §4.3.3's "raw" hash
// variant, used for int, bool, and bitcast-double element types in sets
// and dicts whose element type has a monomorphic runtime routine).
func hashInt64(v int64) uint64 {
	return splitmix64(uint64(v))
}

// fnvOffset and fnvPrime are the 64-bit FNV-1a constants.
const (
	fnvOffset = 14695981039346656037
	fnvPrime  = 1099511628211
)

// hashBytes implements the "splitmix64-derived byte-FNV hash" spec §4.3.1
// names for strings and bytes: an FNV-1a pass over the bytes, finalized
// through splitmix64 to break up FNV's weak avalanche on short inputs.
func hashBytes(b []byte) uint64 {
	h := uint64(fnvOffset)
	for _, c := range b {
		h ^= uint64(c)
		h *= fnvPrime
	}

	return splitmix64(h)
}
