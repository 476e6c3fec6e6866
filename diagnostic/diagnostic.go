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

// Package diagnostic collects errors located in source text and renders them with the offending
// source lines underlined.
package diagnostic

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/Mohamedkrs/flux/ast"
)

// Diagnostic is an error at a location in source text. Notes are secondary errors which are
// reported together with the diagnostic, after it.
type Diagnostic struct {
	Msg   string
	Loc   ast.Loc
	Notes []*Diagnostic
	Help  string
	Err   error // the underlying error, if any
}

// New creates a diagnostic for err at loc.
func New(loc ast.Loc, err error) *Diagnostic {
	return &Diagnostic{Msg: err.Error(), Loc: loc, Err: err}
}

// Errorf creates a diagnostic with a formatted message.
func Errorf(loc ast.Loc, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{Msg: fmt.Sprintf(format, args...), Loc: loc}
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%d:%d: %s", d.Loc.Start.Line, d.Loc.Start.Column, d.Msg)
}

func (d *Diagnostic) Unwrap() error { return d.Err }

// AddNote attaches a secondary diagnostic.
func (d *Diagnostic) AddNote(note *Diagnostic) { d.Notes = append(d.Notes, note) }

// List is a list of diagnostics.
type List []*Diagnostic

// Add appends a diagnostic to l.
func (l *List) Add(d *Diagnostic) { *l = append(*l, d) }

func (l List) Len() int { return len(l) }

// Sort orders the diagnostics by the start of their location. Diagnostics at the same
// position keep the order they were reported in.
func (l List) Sort() {
	slices.SortStableFunc(l, func(a, b *Diagnostic) int {
		if a.Loc.Start.Line != b.Loc.Start.Line {
			return a.Loc.Start.Line - b.Loc.Start.Line
		}
		return a.Loc.Start.Column - b.Loc.Start.Column
	})
}

// Err returns l as an error, or nil if l is empty.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Error concatenates the diagnostics in l with a newline between each.
func (l List) Error() string {
	var b strings.Builder
	for i, d := range l {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(d.Error())
		for _, note := range d.Notes {
			b.WriteByte('\n')
			b.WriteString(note.Error())
		}
	}
	return b.String()
}

// Messages returns the message of each diagnostic, with notes following their diagnostic.
func (l List) Messages() []string {
	var msgs []string
	for _, d := range l {
		msgs = append(msgs, d.Msg)
		for _, note := range d.Notes {
			msgs = append(msgs, note.Msg)
		}
	}
	return msgs
}
