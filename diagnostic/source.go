// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package diagnostic

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/Mohamedkrs/flux/ast"
)

// Source holds the text of a source file and the offsets of its lines.
type Source struct {
	Name  string
	Text  string
	lines []int
}

func NewSource(name, text string) *Source {
	lines := []int{0}
	for offset := 0; offset < len(text); offset++ {
		if text[offset] == '\n' {
			lines = append(lines, offset+1)
		}
	}
	return &Source{Name: name, Text: text, lines: lines}
}

// LineCount returns the number of lines in the source.
func (s *Source) LineCount() int { return len(s.lines) }

// Line returns the text of the 1-based line n, without its line terminator.
func (s *Source) Line(n int) string {
	if n < 1 || n > len(s.lines) {
		return ""
	}
	start, end := s.lines[n-1], len(s.Text)
	if n < len(s.lines) {
		end = s.lines[n] - 1
	}
	return strings.TrimSuffix(s.Text[start:end], "\r")
}

// Position converts a byte offset to a position.
func (s *Source) Position(offset int) ast.Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(s.Text) {
		offset = len(s.Text)
	}
	i := sort.Search(len(s.lines), func(i int) bool { return s.lines[i] > offset }) - 1
	return ast.Position{
		Offset: offset,
		Line:   i + 1,
		Column: utf8.RuneCountInString(s.Text[s.lines[i]:offset]) + 1,
	}
}
