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

import "testing"

// TestMatchesHierarchy exercises every row of the matrix in spec §4.2.
func TestMatchesHierarchy(t *testing.T) {
	tests := []struct {
		caught, wanted Tag
		want           bool
	}{
		{ZeroDivisionError, Base, true},
		{KeyError, Base, true},
		{ZeroDivisionError, ArithmeticError, true},
		{OverflowError, ArithmeticError, true},
		{ValueError, ArithmeticError, false},
		{KeyError, LookupError, true},
		{IndexError, LookupError, true},
		{ValueError, LookupError, false},
		{FileNotFoundError, OSError, true},
		{PermissionError, OSError, true},
		{ValueError, OSError, false},
		{ModuleNotFoundError, ImportError, true},
		{ImportError, ImportError, true},
		{ValueError, ImportError, false},
		{ValueError, ValueError, true},
		{TypeError, ValueError, false},
		{ArithmeticError, ArithmeticError, true},
		{ArithmeticError, ZeroDivisionError, false}, // hierarchy is not symmetric
	}

	for _, tc := range tests {
		if got := Matches(tc.caught, tc.wanted); got != tc.want {
			t.Errorf("Matches(%s, %s) = %v, want %v", tc.caught.Name(), tc.wanted.Name(), got, tc.want)
		}
	}
}

func TestLookupRoundTrips(t *testing.T) {
	for tag, name := range names {
		got, ok := Lookup(name)
		if !ok || got != tag {
			t.Errorf("Lookup(%q) = (%v, %v), want (%v, true)", name, got, ok, tag)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, ok := Lookup("NotARealException"); ok {
		t.Fatal("expected Lookup to fail for an unknown name")
	}
}
