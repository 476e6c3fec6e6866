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

package parser

import (
	"testing"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/require"

	"github.com/Mohamedkrs/flux/ast"
	"github.com/Mohamedkrs/flux/diagnostic"
)

func TestParseExpr(t *testing.T) {
	cases := []struct {
		src, want string
	}{
		{"1 + 2 * 3", "1 + (2 * 3)"},
		{"2 ^ 3 * 4", "(2 ^ 3) * 4"},
		{"a or b and not c", "a or (b and (not c))"},
		{"a == 1 and b < 2.0", "(a == 1) and (b < 2.0)"},
		{"-x.y", "-x.y"},
		{"exists r.a", "exists r.a"},
		{`r["a b"]`, `r["a b"]`},
		{"a[0]", "a[0]"},
		{"[:]", "[:]"},
		{`["a": 1, "b": 2]`, `["a": 1, "b": 2]`},
		{"[1, 2,]", "[1, 2]"},
		{`{r with a: 1, "b c": 2}`, `{r with a: 1, "b c": 2}`},
		{"{a, b: 1}", "{a, b: 1}"},
		{"5m", "5m"},
		{"x |> f(a: 1) |> g()", "x |> f(a: 1) |> g()"},
		{"(r) => r._value > 0", "(r) => r._value > 0"},
		{"(<-tables=[], fn) => ({r with x: 1})", "(<-tables=[], fn) => ({r with x: 1})"},
		{"if a then 1 else (2)", "if a then 1 else 2"},
		{"f(a: (x) => x)(b: 1)", "f(a: (x) => x)(b: 1)"},
	}
	for _, c := range cases {
		e, err := ParseExpr(c.src)
		require.NoError(t, err, c.src)
		require.Equal(t, c.want, ast.ExprString(e), c.src)
	}
}

func TestParseFile(t *testing.T) {
	src := `package main

import "strings"
import c "csv"

builtin fill : (<-tables: stream[A], ?column: B, ?value: C) => stream[A]
    where
    A: Record,
    B: Label

option now = () => 1
f = (x) => {
    y = x + 1
    return y
}
f(x: 1)
`
	f, err := Parse("main.flux", src)
	require.NoError(t, err)
	require.Equal(t, "main", f.Package.Name.Name)
	require.Len(t, f.Imports, 2)
	require.Equal(t, "strings", f.Imports[0].Name())
	require.Equal(t, "c", f.Imports[1].Name())
	require.Equal(t, "csv", f.Imports[1].Path.Value)

	var stmts []string
	for _, s := range f.Body {
		stmts = append(stmts, ast.StmtString(s))
	}
	require.Equal(t, []string{
		"builtin fill : (<-tables: stream[A], ?column: B, ?value: C) => stream[A]\n    where\n    A: Record,\n    B: Label",
		"option now = () => 1",
		"f = (x) => { y = x + 1; return y }",
		"f(x: 1)",
	}, stmts)
}

func TestPipeLocations(t *testing.T) {
	f, err := Parse("pipe.flux", "x = [{ a: 1 }] |> fill(column: b)")
	require.NoError(t, err)
	pipe := f.Body[0].(*ast.VariableAssignment).Init.(*ast.PipeExpr)
	call := pipe.Call
	require.Same(t, pipe.Argument, call.Pipe)

	pos := func(offset int) ast.Position { return ast.Position{Offset: offset, Line: 1, Column: offset + 1} }
	want := []ast.Loc{
		{Start: pos(4), End: pos(33)},
		{Start: pos(18), End: pos(33)},
		{Start: pos(31), End: pos(32)},
	}
	got := []ast.Loc{pipe.Loc, call.Loc, call.Arguments[0].Value.Location()}
	if diff := pretty.Diff(want, got); len(diff) > 0 {
		pretty.Ldiff(t, want, got)
		t.FailNow()
	}
}

func TestParseErrors(t *testing.T) {
	f, err := Parse("bad.flux", "x = (1 + 2\ny = 3\nz = 4 |> 5\n")
	require.Error(t, err)
	var list diagnostic.List
	require.ErrorAs(t, err, &list)
	require.Equal(t, []string{
		`expected ")", found "y"`,
		"pipe destination must be a function call",
	}, list.Messages())
	require.Equal(t, 2, list[0].Loc.Start.Line)
	require.Equal(t, 1, list[0].Loc.Start.Column)

	// Statements after an error are still parsed.
	require.Len(t, f.Body, 3)
	require.Equal(t, "y = 3", ast.StmtString(f.Body[1]))
}

func TestScanErrors(t *testing.T) {
	_, err := Parse("bad.flux", "a = 1\nb = \"abc")
	require.EqualError(t, err, "2:5: unterminated string literal\n2:9: unexpected end of file")
}

func TestBuiltinMissingSignature(t *testing.T) {
	_, err := Parse("bad.flux", "builtin f :\nx = 1")
	require.EqualError(t, err, `2:1: expected type signature, found "x"`)
}
