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
	"encoding/hex"

	"github.com/tython-lang/tythonc/pkg/runtime/rem"
)

// BytesUpper, BytesLower, BytesTitle, BytesCapitalize mirror the string
// case methods using ASCII only (spec §4.3.1, "Bytes-specific operations
// mirror string methods where semantically applicable").
func BytesUpper(b *Buffer) *Buffer      { return StrUpper(b) }
func BytesLower(b *Buffer) *Buffer      { return StrLower(b) }
func BytesTitle(b *Buffer) *Buffer      { return StrTitle(b) }
func BytesCapitalize(b *Buffer) *Buffer { return StrCapitalize(b) }

// BytesHex implements bytes.hex(): a lowercase hex dump.
func BytesHex(b *Buffer) *Buffer {
	text := hex.EncodeToString(b.data)
	return CreateBuffer([]byte(text), len(text))
}

// BytesFromHex implements bytes.fromhex(): the inverse of BytesHex. A
// malformed hex string raises ValueError, matching CPython's contract for
// this constructor.
func BytesFromHex(s *Buffer) *Buffer {
	decoded, err := hex.DecodeString(string(s.data))
	if err != nil {
		rem.Raise(rem.ValueError, "non-hexadecimal number found in fromhex() arg")
	}

	return CreateBuffer(decoded, len(decoded))
}

// BytesFind implements find(): the first offset of needle in hay, or -1.
func BytesFind(hay, needle *Buffer) int {
	return indexOfBuffer(hay, needle)
}

// BytesRFind implements rfind(): the last offset of needle in hay, or -1.
func BytesRFind(hay, needle *Buffer) int {
	if needle.Len() == 0 {
		return hay.Len()
	}

	for i := hay.Len() - needle.Len(); i >= 0; i-- {
		if matchesAt(hay.data, needle.data, i) {
			return i
		}
	}

	return -1
}

// BytesPartition implements partition(sep): (before, sep, after) where a
// missing separator yields (hay, "", "").
func BytesPartition(hay, sep *Buffer) (*Buffer, *Buffer, *Buffer) {
	idx := indexOfBuffer(hay, sep)
	if idx < 0 {
		return CreateBuffer(hay.data, hay.Len()), CreateBuffer(nil, 0), CreateBuffer(nil, 0)
	}

	before := CreateBuffer(hay.data[:idx], idx)
	after := CreateBuffer(hay.data[idx+sep.Len():], hay.Len()-idx-sep.Len())

	return before, CreateBuffer(sep.data, sep.Len()), after
}

// BytesRPartition implements rpartition(sep): as Partition, but searching
// from the right; a missing separator yields ("", "", hay).
func BytesRPartition(hay, sep *Buffer) (*Buffer, *Buffer, *Buffer) {
	idx := BytesRFind(hay, sep)
	if idx < 0 {
		return CreateBuffer(nil, 0), CreateBuffer(nil, 0), CreateBuffer(hay.data, hay.Len())
	}

	before := CreateBuffer(hay.data[:idx], idx)
	after := CreateBuffer(hay.data[idx+sep.Len():], hay.Len()-idx-sep.Len())

	return before, CreateBuffer(sep.data, sep.Len()), after
}

// BytesStrip, BytesLStrip, BytesRStrip trim ASCII whitespace from both,
// the left, or the right end respectively.
func BytesStrip(b *Buffer) *Buffer { return StrStrip(b) }

func BytesLStrip(b *Buffer) *Buffer {
	i := 0
	for i < b.Len() && isSpace(b.data[i]) {
		i++
	}

	return CreateBuffer(b.data[i:], b.Len()-i)
}

func BytesRStrip(b *Buffer) *Buffer {
	i := b.Len()
	for i > 0 && isSpace(b.data[i-1]) {
		i--
	}

	return CreateBuffer(b.data[:i], i)
}

// BytesTranslate implements translate(table): table is a 256-byte lookup
// applied to every byte (spec §4.3.1).
func BytesTranslate(b *Buffer, table [256]byte) *Buffer {
	out := CreateBuffer(nil, b.Len())
	for i, c := range b.data {
		out.data[i] = table[c]
	}

	return out
}

// BytesZFill implements zfill(width): left-pads with '0' to width,
// preserving a leading '+'/'-' sign byte ahead of the padding (spec
// §4.3.1).
func BytesZFill(b *Buffer, width int) *Buffer {
	if b.Len() >= width {
		return CreateBuffer(b.data, b.Len())
	}

	sign := byte(0)
	body := b.data

	if b.Len() > 0 && (b.data[0] == '+' || b.data[0] == '-') {
		sign = b.data[0]
		body = b.data[1:]
	}

	pad := width - b.Len()
	out := CreateBuffer(nil, width)
	pos := 0

	if sign != 0 {
		out.data[0] = sign
		pos = 1
	}

	for i := 0; i < pad; i++ {
		out.data[pos+i] = '0'
	}

	copy(out.data[pos+pad:], body)

	return out
}
