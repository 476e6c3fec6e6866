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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mohamedkrs/flux/ast"
)

const src = `
            column = "" + "a"
            x = [{ a: 1 }] |> fill(column: column, value: "x")
`

func span(s *Source, start, end int) ast.Loc {
	return ast.Loc{Start: s.Position(start), End: s.Position(end)}
}

func TestSourcePosition(t *testing.T) {
	s := NewSource("main", src)
	assert.Equal(t, 4, s.LineCount())
	assert.Equal(t, `            column = "" + "a"`, s.Line(2))
	assert.Equal(t, "", s.Line(4))

	pos := s.Position(1 + 12)
	assert.Equal(t, ast.Position{Offset: 13, Line: 2, Column: 13}, pos)

	u := NewSource("main", "é = 1\nx")
	assert.Equal(t, 3, u.Position(3).Column)
	assert.Equal(t, 2, u.Position(len("é = 1\n")).Line)
}

func TestRender(t *testing.T) {
	s := NewSource("main", src)
	line3 := len("\n") + len(`            column = "" + "a"`) + 1
	call := line3 + len(`            x = [{ a: 1 }] |> `)
	arg := call + len("fill(column: ")

	var list List
	d := New(span(s, arg, arg+len("column")), errors.New("string is not Label (argument column)"))
	d.AddNote(Errorf(span(s, call, call+len(`fill(column: column, value: "x")`)), "string is not a label"))
	list.Add(d)

	expect := `error: string is not Label (argument column)
  ┌─ main:3:44
  │
3 │             x = [{ a: 1 }] |> fill(column: column, value: "x")
  │                                            ^^^^^^

error: string is not a label
  ┌─ main:3:31
  │
3 │             x = [{ a: 1 }] |> fill(column: column, value: "x")
  │                               ^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^

`
	assert.Equal(t, expect, list.Render(s))
	assert.Equal(t, []string{"string is not Label (argument column)", "string is not a label"}, list.Messages())
	require.Error(t, list.Err())
	assert.Equal(t, "3:44: string is not Label (argument column)\n3:31: string is not a label", list.Error())
}

func TestRenderOrderAndHelp(t *testing.T) {
	s := NewSource("main", "a = b\nc = dd\n")
	var list List
	list.Add(Errorf(span(s, 10, 12), "second"))
	first := Errorf(span(s, 4, 5), "undefined identifier b")
	first.Help = "did you mean a?"
	list.Add(first)

	expect := `error: undefined identifier b
  ┌─ main:1:5
  │
1 │ a = b
  │     ^
  = did you mean a?

error: second
  ┌─ main:2:5
  │
2 │ c = dd
  │     ^^

`
	assert.Equal(t, expect, list.Render(s))
	// rendering does not reorder the list itself
	assert.Equal(t, "second", list[0].Msg)
}

func TestRenderMultiline(t *testing.T) {
	s := NewSource("main", "x = f(\n  a: 1,\n)\n")
	d := Errorf(span(s, 4, len("x = f(\n  a: 1,\n)")), "bad call")
	expect := `error: bad call
  ┌─ main:1:5
  │
1 │   x = f(
  │ ╭─────^
2 │ │   a: 1,
3 │ │ )
  │ ╰─^

`
	assert.Equal(t, expect, d.Render(s))
	assert.Nil(t, List(nil).Err())
}
