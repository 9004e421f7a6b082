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
	"fmt"
	"strconv"
	"strings"

	"github.com/tython-lang/tythonc/pkg/runtime/rem"
)

// StrIndex implements string indexing with negative-index wrap and
// IndexError on out-of-range (spec §4.3.1, "String-specific operations").
func StrIndex(b *Buffer, i int) byte {
	n := b.Len()
	if i < 0 {
		i += n
	}

	if i < 0 || i >= n {
		rem.Raise(rem.IndexError, "string index out of range")
	}

	return b.data[i]
}

// StrFormat implements numeric formatting with spec grammar
// `[0][width][.precision][type]` where type in {d, f, g} (spec §4.3.1).
// intVal or floatVal is the already-evaluated operand, isFloat
// distinguishes which.
func StrFormat(spec string, intVal int64, floatVal float64, isFloat bool) *Buffer {
	zeroPad := false
	width := 0
	precision := -1
	verb := byte('d')

	i := 0
	if i < len(spec) && spec[i] == '0' {
		zeroPad = true
		i++
	}

	start := i
	for i < len(spec) && spec[i] >= '0' && spec[i] <= '9' {
		i++
	}

	if i > start {
		width, _ = strconv.Atoi(spec[start:i])
	}

	if i < len(spec) && spec[i] == '.' {
		i++
		start = i

		for i < len(spec) && spec[i] >= '0' && spec[i] <= '9' {
			i++
		}

		precision, _ = strconv.Atoi(spec[start:i])
	}

	if i < len(spec) {
		verb = spec[i]
	}

	var text string

	switch verb {
	case 'f':
		if precision < 0 {
			precision = 6
		}

		v := floatVal
		if !isFloat {
			v = float64(intVal)
		}

		text = strconv.FormatFloat(v, 'f', precision, 64)
	case 'g':
		v := floatVal
		if !isFloat {
			v = float64(intVal)
		}

		if precision < 0 {
			text = strconv.FormatFloat(v, 'g', -1, 64)
		} else {
			text = strconv.FormatFloat(v, 'g', precision, 64)
		}
	default: // 'd'
		if isFloat {
			text = strconv.FormatInt(int64(floatVal), 10)
		} else {
			text = strconv.FormatInt(intVal, 10)
		}
	}

	if len(text) < width {
		pad := width - len(text)
		fill := " "

		neg := strings.HasPrefix(text, "-")

		if zeroPad {
			fill = "0"

			if neg {
				text = "-" + strings.Repeat(fill, pad) + text[1:]
			} else {
				text = strings.Repeat(fill, pad) + text
			}
		} else {
			text = strings.Repeat(fill, pad) + text
		}
	}

	return CreateBuffer([]byte(text), len(text))
}

// StrRepr implements repr(): a delimiter choice that avoids escaping where
// possible, with `\x` hex escapes for non-printable bytes (spec §4.3.1).
func StrRepr(b *Buffer) *Buffer {
	quote := byte('\'')
	if strings.ContainsRune(string(b.data), '\'') && !strings.ContainsRune(string(b.data), '"') {
		quote = '"'
	}

	var out strings.Builder

	out.WriteByte(quote)

	for _, c := range b.data {
		switch {
		case c == quote || c == '\\':
			out.WriteByte('\\')
			out.WriteByte(c)
		case c == '\n':
			out.WriteString(`\n`)
		case c == '\t':
			out.WriteString(`\t`)
		case c == '\r':
			out.WriteString(`\r`)
		case c >= 0x20 && c < 0x7f:
			out.WriteByte(c)
		default:
			fmt.Fprintf(&out, `\x%02x`, c)
		}
	}

	out.WriteByte(quote)

	text := out.String()

	return CreateBuffer([]byte(text), len(text))
}

// asciiCaseMap applies fn to every ASCII letter in b, leaving all other
// bytes (including any non-ASCII UTF-8 continuation bytes) untouched —
// spec §4.3.1's "UTF-insensitive ASCII case methods".
func asciiCaseMap(b *Buffer, fn func(byte) byte) *Buffer {
	out := CreateBuffer(b.data, b.Len())
	for i, c := range out.data {
		out.data[i] = fn(c)
	}

	return out
}

// StrUpper, StrLower implement the ASCII-only case conversions.
func StrUpper(b *Buffer) *Buffer {
	return asciiCaseMap(b, func(c byte) byte {
		if c >= 'a' && c <= 'z' {
			return c - 32
		}

		return c
	})
}

func StrLower(b *Buffer) *Buffer {
	return asciiCaseMap(b, func(c byte) byte {
		if c >= 'A' && c <= 'Z' {
			return c + 32
		}

		return c
	})
}

// StrCapitalize upper-cases the first ASCII letter and lower-cases the
// rest.
func StrCapitalize(b *Buffer) *Buffer {
	if b.Len() == 0 {
		return CreateBuffer(nil, 0)
	}

	out := StrLower(b)
	if out.data[0] >= 'a' && out.data[0] <= 'z' {
		out.data[0] -= 32
	}

	return out
}

// StrTitle upper-cases the first ASCII letter of every alphabetic run.
func StrTitle(b *Buffer) *Buffer {
	out := StrLower(b)
	prevAlpha := false

	for i, c := range out.data {
		alpha := (c >= 'a' && c <= 'z')
		if alpha && !prevAlpha {
			out.data[i] = c - 32
		}

		prevAlpha = alpha
	}

	return out
}

// isSpace reports whether c is ASCII whitespace, for Strip.
func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

// StrStrip implements strip() with no arguments: trims leading/trailing
// ASCII whitespace (spec §4.3.1, "strip/split/join").
func StrStrip(b *Buffer) *Buffer {
	start, end := 0, b.Len()

	for start < end && isSpace(b.data[start]) {
		start++
	}

	for end > start && isSpace(b.data[end-1]) {
		end--
	}

	return CreateBuffer(b.data[start:end], end-start)
}

// StrSplit implements split() on a separator buffer, mirroring Python's
// `str.split(sep)` (with a non-empty sep an empty result list is
// impossible: a split with no matches returns the whole string as the sole
// element). An empty sep splits on whitespace as StrSplitWhitespace does,
// which returns no elements for an empty or all-whitespace string.
func StrSplit(b *Buffer, sep *Buffer) []*Buffer {
	if sep.Len() == 0 {
		return StrSplitWhitespace(b)
	}

	var parts []*Buffer

	rest := b.data

	for {
		idx := indexOfBuffer(&Buffer{data: rest}, sep)
		if idx < 0 {
			parts = append(parts, CreateBuffer(rest, len(rest)))
			break
		}

		parts = append(parts, CreateBuffer(rest[:idx], idx))
		rest = rest[idx+sep.Len():]
	}

	return parts
}

// StrSplitWhitespace implements split() with no separator: splits on runs
// of ASCII whitespace, discarding empty fields.
func StrSplitWhitespace(b *Buffer) []*Buffer {
	var parts []*Buffer

	i := 0
	for i < b.Len() {
		for i < b.Len() && isSpace(b.data[i]) {
			i++
		}

		start := i

		for i < b.Len() && !isSpace(b.data[i]) {
			i++
		}

		if i > start {
			parts = append(parts, CreateBuffer(b.data[start:i], i-start))
		}
	}

	return parts
}

// StrJoin implements sep.join(parts).
func StrJoin(sep *Buffer, parts []*Buffer) *Buffer {
	total := 0
	for i, p := range parts {
		total += p.Len()
		if i > 0 {
			total += sep.Len()
		}
	}

	out := CreateBuffer(nil, total)
	pos := 0

	for i, p := range parts {
		if i > 0 {
			copy(out.data[pos:], sep.data)
			pos += sep.Len()
		}

		copy(out.data[pos:], p.data)
		pos += p.Len()
	}

	return out
}
