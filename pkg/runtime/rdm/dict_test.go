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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDictUpdateMergesEntries is table-driven equality-heavy assertion over
// Update/Keys/Values, the same style the teacher reaches for testify in
// pkg/schema/type_test.go.
func TestDictUpdateMergesEntries(t *testing.T) {
	cases := []struct {
		name     string
		base     map[int64]int64
		other    map[int64]int64
		wantKeys []int64
		wantLen  int
	}{
		{name: "disjoint", base: map[int64]int64{1: 10}, other: map[int64]int64{2: 20}, wantKeys: []int64{1, 2}, wantLen: 2},
		{name: "overlapping key overwritten", base: map[int64]int64{1: 10}, other: map[int64]int64{1: 11}, wantKeys: []int64{1}, wantLen: 1},
		{name: "empty other leaves base untouched", base: map[int64]int64{1: 10, 2: 20}, other: map[int64]int64{}, wantKeys: []int64{1, 2}, wantLen: 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			base := NewDict(eqInt64)
			for k, v := range tc.base {
				base.Set(k, v)
			}

			other := NewDict(eqInt64)
			for k, v := range tc.other {
				other.Set(k, v)
			}

			base.Update(other)

			assert.Equal(t, tc.wantLen, base.Len())
			assert.ElementsMatch(t, tc.wantKeys, base.Keys())
		})
	}
}

func TestDictSetGetContains(t *testing.T) {
	d := NewDict(eqInt64)
	d.Set(1, 100)
	d.Set(2, 200)

	if d.Get(1) != 100 {
		t.Fatal("unexpected value for key 1")
	}

	if !d.Contains(2) {
		t.Fatal("expected key 2 to be present")
	}

	d.Set(1, 111)
	if d.Get(1) != 111 {
		t.Fatal("expected overwrite to update value in place")
	}

	if d.Len() != 2 {
		t.Fatalf("expected length 2, got %d", d.Len())
	}
}

func TestDictGetMissingRaises(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on missing key")
		}
	}()

	d := NewDict(eqInt64)
	d.Get(1)
}

func TestDictSetDefault(t *testing.T) {
	d := NewDict(eqInt64)

	if d.SetDefault(1, 50) != 50 {
		t.Fatal("expected default to be inserted and returned")
	}

	if d.SetDefault(1, 99) != 50 {
		t.Fatal("expected existing value to be returned unchanged")
	}
}

func TestDictPopPopItemDel(t *testing.T) {
	d := NewDict(eqInt64)
	d.Set(1, 10)
	d.Set(2, 20)
	d.Set(3, 30)

	if d.Pop(2) != 20 {
		t.Fatal("unexpected popped value")
	}

	if d.Contains(2) {
		t.Fatal("expected key 2 to be gone")
	}

	k, v := d.PopItem()
	if k != 3 || v != 30 {
		t.Fatalf("expected last entry (3, 30), got (%d, %d)", k, v)
	}

	d.Del(1)

	if d.Len() != 0 {
		t.Fatalf("expected empty dict, got length %d", d.Len())
	}
}

func TestDictClearCopyUpdateOr(t *testing.T) {
	a := NewDict(eqInt64)
	a.Set(1, 1)
	a.Set(2, 2)

	b := a.Copy()
	b.Set(3, 3)

	if a.Contains(3) {
		t.Fatal("expected copy to be independent")
	}

	a.Update(b)
	if a.Len() != 3 {
		t.Fatalf("expected update to merge in key 3, got length %d", a.Len())
	}

	c := NewDict(eqInt64)
	c.Set(9, 9)

	merged := Or(a, c)
	if !merged.Contains(9) || !merged.Contains(1) {
		t.Fatal("expected merged dict to contain entries from both operands")
	}

	a.Clear()
	if a.Len() != 0 {
		t.Fatal("expected clear to empty the dict")
	}
}

func TestDictFromKeysKeysValuesItems(t *testing.T) {
	d := FromKeys(eqInt64, []int64{1, 2, 2, 3}, 0)
	if d.Len() != 3 {
		t.Fatalf("expected de-duplicated keys, got length %d", d.Len())
	}

	keys := d.Keys()
	values := d.Values()

	if len(keys) != 3 || len(values) != 3 {
		t.Fatal("expected keys/values to match dict length")
	}

	ik, iv := d.Items()
	for i := range ik {
		if ik[i] != keys[i] || iv[i] != values[i] {
			t.Fatal("expected items to align with keys/values")
		}
	}
}
