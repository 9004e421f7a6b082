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

import "testing"

func TestStrIndexNegativeWrap(t *testing.T) {
	b := mkbuf("hello")

	if StrIndex(b, -1) != 'o' {
		t.Fatal("expected last byte for -1")
	}

	if StrIndex(b, 0) != 'h' {
		t.Fatal("expected first byte for 0")
	}
}

func TestStrFormatWidthAndPrecision(t *testing.T) {
	got := string(StrFormat("05d", 42, 0, false).Bytes())
	if got != "00042" {
		t.Fatalf("got %q", got)
	}

	got = string(StrFormat(".2f", 0, 3.14159, true).Bytes())
	if got != "3.14" {
		t.Fatalf("got %q", got)
	}

	got = string(StrFormat("06.2f", 0, -3.1, true).Bytes())
	if got != "-03.10" {
		t.Fatalf("got %q", got)
	}
}

func TestStrReprQuoteChoice(t *testing.T) {
	got := string(StrRepr(mkbuf("it's")).Bytes())
	if got != `"it's"` {
		t.Fatalf("got %q", got)
	}

	got = string(StrRepr(mkbuf("plain")).Bytes())
	if got != "'plain'" {
		t.Fatalf("got %q", got)
	}

	got = string(StrRepr(mkbuf("tab\there")).Bytes())
	if got != `'tab\there'` {
		t.Fatalf("got %q", got)
	}
}

func TestStrCaseMethods(t *testing.T) {
	if string(StrUpper(mkbuf("aB3")).Bytes()) != "AB3" {
		t.Fatal("upper mismatch")
	}

	if string(StrLower(mkbuf("aB3")).Bytes()) != "ab3" {
		t.Fatal("lower mismatch")
	}

	if string(StrCapitalize(mkbuf("hELLO")).Bytes()) != "Hello" {
		t.Fatal("capitalize mismatch")
	}

	if string(StrTitle(mkbuf("hello world")).Bytes()) != "Hello World" {
		t.Fatal("title mismatch")
	}
}

func TestStrStripSplitJoin(t *testing.T) {
	if string(StrStrip(mkbuf("  hi  ")).Bytes()) != "hi" {
		t.Fatal("strip mismatch")
	}

	parts := StrSplit(mkbuf("a,b,,c"), mkbuf(","))
	if len(parts) != 4 {
		t.Fatalf("expected 4 parts, got %d", len(parts))
	}

	ws := StrSplitWhitespace(mkbuf("  a  b c "))
	if len(ws) != 3 {
		t.Fatalf("expected 3 whitespace-split fields, got %d", len(ws))
	}

	joined := StrJoin(mkbuf("-"), []*Buffer{mkbuf("a"), mkbuf("b"), mkbuf("c")})
	if string(joined.Bytes()) != "a-b-c" {
		t.Fatalf("got %q", joined.Bytes())
	}
}
