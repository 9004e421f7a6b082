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

package diag

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// defaultWidth is used when the output is not a terminal (piped to a file or
// CI log) and there is nothing to size against.
const defaultWidth = 100

// Render writes every diagnostic in l to w, one per line, wrapping the
// message to the terminal width when w is a terminal (the same
// golang.org/x/term query the teacher uses in pkg/util/termio to size its
// inspector UI, applied here to plain line wrapping instead of a raw-mode
// screen).
func Render(w io.Writer, l List) {
	width := defaultWidth

	if f, ok := w.(*os.File); ok {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			width = cols
		}
	}

	for _, d := range l {
		header := fmt.Sprintf("%s: %s", d.Code, d.Error())
		fmt.Fprintln(w, wrap(header, width))
	}
}

// wrap breaks s into width-bounded lines on word boundaries, indenting
// continuation lines under the "code: " prefix so a long message doesn't
// run off a narrow terminal.
func wrap(s string, width int) string {
	if width <= 0 || len(s) <= width {
		return s
	}

	words := strings.Fields(s)
	if len(words) == 0 {
		return s
	}

	var b strings.Builder

	line := words[0]

	for _, word := range words[1:] {
		if len(line)+1+len(word) > width {
			b.WriteString(line)
			b.WriteString("\n    ")
			line = word

			continue
		}

		line += " " + word
	}

	b.WriteString(line)

	return b.String()
}
