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

package flux

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Mohamedkrs/flux/ast"
	"github.com/Mohamedkrs/flux/diagnostic"
	"github.com/Mohamedkrs/flux/parser"
	"github.com/Mohamedkrs/flux/types"
)

func TestInferBindings(t *testing.T) {
	inferTest{
		src: `
id = (x) => x
a = id(x: 1)
b = id(x: "s")
add = (a, b) => a + b
f = (r) => r.a + 1
g = (x, y=1) => x + y
d = [1: "one", 2: "two"]
n = -1.5
c = if 1 < 2 then "yes" else "no"
`,
	}.expectTypes(t, map[string]string{
		"id":  "(x: A) => A",
		"a":   "int",
		"b":   "string",
		"add": "(a: A, b: A) => A where A: Addable",
		"f":   "(r: {A with a: int}) => int",
		"g":   "(x: int, ?y: int) => int",
		"d":   "[int: string]",
		"n":   "float",
		"c":   "string",
	})
}

func TestInferBlock(t *testing.T) {
	inferTest{
		src: `
square = (x) => {
    y = x * x
    return y
}
z = square(x: 2.5)
`,
	}.expectTypes(t, map[string]string{
		"square": "(x: A) => A where A: Numeric",
		"z":      "float",
	})
}

func TestInferCalledParameter(t *testing.T) {
	inferTest{
		src: `
apply = (<-tables, fn) => fn(r: tables)
x = 1 |> apply(fn: (r) => r + 1)
`,
	}.expectTypes(t, map[string]string{
		"apply": "(<-tables: A, fn: (r: A) => B) => B",
		"x":     "int",
	})
}

func TestInferRecords(t *testing.T) {
	inferTest{
		src: `
r = {a: 1, b: "x"}
s = {r with c: 2.0}
a = s.a
b = r["b"]
`,
	}.expectTypes(t, map[string]string{
		"r": "{a: int, b: string}",
		"s": "{a: int, b: string, c: float}",
		"a": "int",
		"b": "string",
	})
}

func TestCallErrors(t *testing.T) {
	inferTest{
		env: map[string]string{"f": "(a: int, ?b: string) => int"},
		src: "x = f(b: 1)\ny = f(a: 1, c: 2)\nz = 1 |> f(a: 1)\n",
	}.expectMessages(t,
		"expected string but found int (argument b)",
		"missing required argument a",
		"found unexpected argument c",
		"function does not take a pipe argument",
	)
}

func TestOperatorKinds(t *testing.T) {
	inferTest{
		src: `x = "a" - 1`,
	}.expectMessages(t,
		"string is not Subtractable",
		"expected string but found int",
	)
}

func TestUnknownIdentifier(t *testing.T) {
	inferTest{
		src: "length = 1\nx = lenght + 1\n",
	}.expectErrors(t, `error: undefined identifier lenght
  ┌─ main:2:5
  │
2 │ x = lenght + 1
  │     ^^^^^^
  = did you mean length?

`)
}

func TestImportNotFound(t *testing.T) {
	inferTest{
		src: "import \"foo/bar\"\n\nx = 1\n",
	}.expectMessages(t, `could not find package "foo/bar"`)
}

func TestOptionReassignment(t *testing.T) {
	inferTest{
		src: "option x = 1\noption x = \"a\"\n",
	}.expectMessages(t, "expected int but found string")
}

func TestUnreachableStatement(t *testing.T) {
	inferTest{
		src: `
f = () => {
    return 1
    x = 2
}
`,
	}.expectMessages(t, "unreachable statement after return")
}

func TestSyntaxErrorsSkipInference(t *testing.T) {
	prog, err := inferTest{src: "x = (1 + 2\n"}.run(t)
	require.Error(t, err)
	assert.Nil(t, prog)
}

func TestInferDoesNotModifyEnv(t *testing.T) {
	env := NewTypeEnv(nil)
	require.NoError(t, env.DeclareSignature("id", "(x: A) => A"))
	file, err := parser.Parse("main", "x = id(x: 1)\ny = id(x: \"a\")\n")
	require.NoError(t, err)

	ti := NewContext()
	for i := 0; i < 2; i++ {
		prog, err := ti.Infer(file, env)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"x": "int", "y": "string"}, prog.TypeStrings())
	}
	assert.Nil(t, env.Lookup("x"))
	assert.Equal(t, "(x: A) => A", types.TypeString(env.Lookup("id")))
	// the parsed file is copied before annotation
	assert.Nil(t, file.Body[0].(*ast.VariableAssignment).Init.Type())
}

func TestInferExpr(t *testing.T) {
	env := NewTypeEnv(nil)
	require.NoError(t, env.DeclareSignature("stream", "stream[{a: int}]"))
	expr, err := parser.ParseExpr("[1, 2, 3]")
	require.NoError(t, err)

	ti := NewContext()
	typ, err := ti.InferExpr(expr, env)
	require.NoError(t, err)
	assert.Equal(t, "[int]", types.TypeString(typ))

	expr, err = parser.ParseExpr(`"a" + 1`)
	require.NoError(t, err)
	_, err = ti.InferExpr(expr, env)
	var list diagnostic.List
	require.ErrorAs(t, err, &list)
	assert.Equal(t, []string{"expected string but found int"}, list.Messages())
}

func TestImportSourcePackage(t *testing.T) {
	ti := NewContext()
	lib, err := ti.InferSource("lib", "package strings\n\ntitle = (v) => v + \"!\"\n", NewTypeEnv(nil))
	require.NoError(t, err)

	importer := PackageMap{}
	importer.Add(lib.Export("my/strings"))
	prog, err := NewContext(WithImporter(importer)).InferSource("main", `
import s "my/strings"

x = s.title(v: "a")
`, NewTypeEnv(nil))
	require.NoError(t, err)
	assert.Equal(t, "string", prog.TypeStrings()["x"])
}

func TestAnnotations(t *testing.T) {
	src := "f = (r, n=1) => ({r with b: r.a + n})\nx = f(r: {a: 2})\n"
	prog, err := inferTest{src: src}.run(t)
	require.NoError(t, err)
	assert.Equal(t, "{a: int, b: int}", prog.TypeStrings()["x"])

	var exprs int
	ast.Walk(prog.File, func(n ast.Node) bool {
		if e, ok := n.(ast.Expr); ok {
			exprs++
			assert.NotNil(t, e.Type(), "%s at %s", ast.ExprString(e), e.Location())
		}
		return true
	})
	assert.Equal(t, 16, exprs)

	e := prog.ExprAt(strings.Index(src, "2}"))
	require.IsType(t, &ast.IntegerLiteral{}, e)
	assert.Equal(t, "int", types.TypeString(e.Type()))
	e = prog.ExprAt(strings.Index(src, "r.a"))
	require.IsType(t, &ast.Identifier{}, e)
	assert.Equal(t, "r", e.(*ast.Identifier).Name)
	assert.Nil(t, prog.ExprAt(len(src)+5))
}

func TestVarIdsUnique(t *testing.T) {
	env := NewTypeEnv(nil)
	require.NoError(t, env.DeclareSignature("same", "(x: A, y: A) => A"))
	require.NoError(t, env.DeclareSignature("pair", "(x: A, y: B) => [A: B]"))

	prog, err := NewContext().InferSource("main", `
builtin ident : (x: A) => A
f = (x) => x
g = same(x: 1, y: 2)
`, env)
	require.NoError(t, err)

	ids := make(map[int]bool)
	collect := func(typ types.Type) {
		for _, tv := range types.GenericVars(typ) {
			assert.False(t, ids[tv.Id()], "duplicate id %d in %s", tv.Id(), types.TypeString(typ))
			ids[tv.Id()] = true
		}
	}
	collect(env.Types["same"])
	collect(env.Types["pair"])
	for _, b := range prog.Bindings {
		collect(b.Type)
	}
	assert.Len(t, ids, 5)

	// later declarations continue after the inferred variables
	next := prog.Env.NewGenericVar()
	assert.False(t, ids[next.Id()])
}

func TestGeneralizedBindingLog(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	_, err := NewContext(WithLogger(zap.New(core))).InferSource("main", `
ident = (x) => {
    y = x
    return y
}
`, NewTypeEnv(nil))
	require.NoError(t, err)

	free := make(map[string]interface{})
	for _, entry := range logs.FilterMessage("generalized binding").All() {
		ctx := entry.ContextMap()
		free[ctx["name"].(string)] = ctx["freeVars"]
	}
	// y shares the parameter's variable; ident is fully generalized
	assert.Equal(t, map[string]interface{}{"y": int64(1), "ident": int64(0)}, free)
}
