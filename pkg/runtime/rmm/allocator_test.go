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

package rmm

import "testing"

func TestAllocateZeroesAndSizes(t *testing.T) {
	buf := Allocate(16)
	if len(buf) != 16 {
		t.Fatalf("expected 16 bytes, got %d", len(buf))
	}

	for _, b := range buf {
		if b != 0 {
			t.Fatal("expected zeroed memory")
		}
	}
}

func TestAllocateAtomicSameShape(t *testing.T) {
	buf := AllocateAtomic(8)
	if len(buf) != 8 {
		t.Fatalf("expected 8 bytes, got %d", len(buf))
	}
}

func TestReleaseBalancesLiveCount(t *testing.T) {
	before := LiveAllocations()

	buf := Allocate(4)
	if LiveAllocations() != before+1 {
		t.Fatalf("expected live count to increase by 1")
	}

	Release(buf)

	if LiveAllocations() != before {
		t.Fatalf("expected live count to return to %d, got %d", before, LiveAllocations())
	}
}
