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

package flux_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	. "github.com/Mohamedkrs/flux"
	. "github.com/Mohamedkrs/flux/construct"

	"github.com/Mohamedkrs/flux/ast"
	"github.com/Mohamedkrs/flux/feature"
	"github.com/Mohamedkrs/flux/types"
)

func fillEnv() *TypeEnv {
	env := NewTypeEnv(nil)
	A, B, C, D := env.NewGenericVar(), env.NewGenericVar(), env.NewGenericVar(), env.NewGenericVar()
	B.AddKind(types.LabelKind)
	env.Assign("fill", TFunc(TArray(TDynamicRecord(B, D, A)),
		TPipe("tables", TArray(TDynamicRecord(B, C, A))),
		TOptional("column", B),
		TOptional("value", D)))
	return env
}

// x = [{a: 1, b: 2.0}] |> fill(column: "b", value: "x")
func fillFile() *ast.File {
	return File("main",
		Assign("x", Pipe(
			Array(Object(Prop("a", Int(1)), Prop("b", Float(2.0)))),
			Call(Ident("fill"), Prop("column", String("b")), Prop("value", String("x"))))))
}

func TestConstructedFile(t *testing.T) {
	ctx := NewContext(WithFeatures(feature.NewSet(feature.LabelPolymorphism)))
	prog, err := ctx.Infer(fillFile(), fillEnv())
	require.NoError(t, err)
	require.Equal(t, "[{a: int, b: string}]", types.TypeString(prog.Lookup("x")))
}

func BenchmarkLabelFill(b *testing.B) {
	env, file := fillEnv(), fillFile()
	ctx := NewContext(WithFeatures(feature.NewSet(feature.LabelPolymorphism)))

	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		prog, err := ctx.Infer(file, env)
		if err != nil || prog == nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGeneralize(b *testing.B) {
	env := NewTypeEnv(nil)
	ctx := NewContext()

	// id = (x) => x
	// pair = (a, b) => ({fst: id(x: a), snd: id(x: b)})
	// apply = (<-v, fn) => fn(r: v)
	// p = 1 |> apply(fn: (r) => pair(a: r, b: "s"))
	file := File("main",
		Assign("id", Func([]string{"x"}, Ident("x"))),
		Assign("pair", Func([]string{"a", "b"}, Object(
			Prop("fst", Call(Ident("id"), Prop("x", Ident("a")))),
			Prop("snd", Call(Ident("id"), Prop("x", Ident("b"))))))),
		Assign("apply", PipeFunc("v", []string{"fn"}, Call(Ident("fn"), Prop("r", Ident("v"))))),
		Assign("p", Pipe(Int(1), Call(Ident("apply"), Prop("fn",
			Func([]string{"r"}, Call(Ident("pair"), Prop("a", Ident("r")), Prop("b", String("s"))))))),
		))

	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		prog, err := ctx.Infer(file, env)
		if err != nil || prog == nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkInferSource(b *testing.B) {
	env := NewTypeEnv(nil)
	if err := env.DeclareSignature("map", "(<-tables: stream[A], fn: (r: A) => B) => stream[B]"); err != nil {
		b.Fatal(err)
	}
	if err := env.DeclareSignature("from", "(bucket: string) => stream[{_time: time, _value: float, host: string}]"); err != nil {
		b.Fatal(err)
	}
	ctx := NewContext()
	src := `
data = from(bucket: "telegraf")
    |> map(fn: (r) => ({r with _value: r._value * 2.0, slow: r._value > 10.0}))
`

	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		prog, err := ctx.InferSource("main", src, env)
		if err != nil || prog == nil {
			b.Fatal(err)
		}
	}
}
