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
	"strconv"
	"strings"
	"unicode/utf8"
)

// Render formats the diagnostics in l in source order. Each diagnostic names its position,
// shows the source lines it covers with the span underlined, and is followed by its notes.
func (l List) Render(src *Source) string {
	sorted := append(List(nil), l...)
	sorted.Sort()
	var b strings.Builder
	for _, d := range sorted {
		d.render(&b, src)
		for _, note := range d.Notes {
			note.render(&b, src)
		}
	}
	return b.String()
}

// Render formats a single diagnostic without its notes.
func (d *Diagnostic) Render(src *Source) string {
	var b strings.Builder
	d.render(&b, src)
	return b.String()
}

func (d *Diagnostic) render(b *strings.Builder, src *Source) {
	start, end := d.Loc.Start, d.Loc.End
	if end.Line < start.Line || (end.Line == start.Line && end.Column < start.Column) {
		end = start
	}
	width := len(strconv.Itoa(end.Line))
	pad := strings.Repeat(" ", width)
	gutter := func(line int) string {
		n := strconv.Itoa(line)
		return strings.Repeat(" ", width-len(n)) + n + " │ "
	}

	b.WriteString("error: ")
	b.WriteString(d.Msg)
	b.WriteByte('\n')
	b.WriteString(pad + " ┌─ " + src.Name + ":" + strconv.Itoa(start.Line) + ":" + strconv.Itoa(start.Column) + "\n")
	b.WriteString(pad + " │\n")

	if start.Line == end.Line {
		line := src.Line(start.Line)
		n := end.Column - start.Column
		if n < 1 {
			n = 1
		}
		b.WriteString(gutter(start.Line) + line + "\n")
		b.WriteString(pad + " │ " + strings.Repeat(" ", start.Column-1) + strings.Repeat("^", n) + "\n")
	} else {
		b.WriteString(gutter(start.Line) + "  " + src.Line(start.Line) + "\n")
		b.WriteString(pad + " │ ╭─" + strings.Repeat("─", start.Column-1) + "^\n")
		for line := start.Line + 1; line <= end.Line; line++ {
			b.WriteString(gutter(line) + "│ " + src.Line(line) + "\n")
		}
		last := end.Column - 1
		if last < 1 {
			last = 1
		}
		if n := utf8.RuneCountInString(src.Line(end.Line)); last > n && n > 0 {
			last = n
		}
		b.WriteString(pad + " │ ╰─" + strings.Repeat("─", last-1) + "^\n")
	}
	if d.Help != "" {
		b.WriteString(pad + " = " + d.Help + "\n")
	}
	b.WriteByte('\n')
}
