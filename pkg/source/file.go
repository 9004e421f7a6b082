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

// Package source holds the in-memory representation of a Tython source file,
// used by diagnostics to attribute an error to a module and line.
package source

import "strings"

// File represents a single source module as read from disk, together with
// enough bookkeeping to report line-attributed diagnostics against it.
type File struct {
	// Path is the filesystem path the file was read from.
	Path string
	// Module is the logical module name (the file's stem), e.g. "utils" for
	// "utils.py".
	Module string
	// Text is the raw file contents.
	Text string
	// lines are the byte offsets at which each line begins, computed by
	// NewFile.
	lines []int
}

// NewFile constructs a File, pre-computing its line-offset table.
func NewFile(path, module, text string) *File {
	f := &File{Path: path, Module: module, Text: text}
	f.lines = append(f.lines, 0)

	for i, c := range text {
		if c == '\n' {
			f.lines = append(f.lines, i+1)
		}
	}

	return f
}

// LineCount returns the number of lines in the file.
func (f *File) LineCount() int {
	return len(f.lines)
}

// Line returns the text of the given 1-indexed line, without its trailing
// newline. An out-of-range line returns the empty string.
func (f *File) Line(n int) string {
	if n < 1 || n > len(f.lines) {
		return ""
	}

	start := f.lines[n-1]

	var end int
	if n < len(f.lines) {
		end = f.lines[n] - 1
	} else {
		end = len(f.Text)
	}

	if end < start {
		end = start
	}

	return strings.TrimSuffix(f.Text[start:end], "\r")
}
