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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Mohamedkrs/flux/diagnostic"
	"github.com/Mohamedkrs/flux/feature"
)

var labelPolymorphism = feature.NewSet(feature.LabelPolymorphism)

type inferTest struct {
	features feature.Set
	env      map[string]string
	packages map[string]map[string]string
	src      string
}

func (c inferTest) run(t *testing.T) (*Program, error) {
	t.Helper()
	env := NewTypeEnv(nil)
	for name, sig := range c.env {
		require.NoError(t, env.DeclareSignature(name, sig), name)
	}
	importer := PackageMap{}
	for path, members := range c.packages {
		pkg, err := NewPackage(path, members)
		require.NoError(t, err, path)
		importer.Add(pkg)
	}
	ti := NewContext(WithFeatures(c.features), WithImporter(importer), WithLogger(zaptest.NewLogger(t)))
	return ti.InferSource("main", c.src, env)
}

func (c inferTest) expectTypes(t *testing.T, want map[string]string) {
	t.Helper()
	prog, err := c.run(t)
	require.NoError(t, err)
	got := prog.TypeStrings()
	for name, typ := range want {
		assert.Equal(t, typ, got[name], name)
	}
}

func (c inferTest) expectErrors(t *testing.T, want string) {
	t.Helper()
	_, err := c.run(t)
	var list diagnostic.List
	require.ErrorAs(t, err, &list)
	assert.Equal(t, want, list.Render(diagnostic.NewSource("main", c.src)))
}

func (c inferTest) expectMessages(t *testing.T, want ...string) {
	t.Helper()
	_, err := c.run(t)
	var list diagnostic.List
	require.ErrorAs(t, err, &list)
	assert.Equal(t, want, list.Messages())
}

const fill = `(<-tables: [{ A with B: C }], ?column: B, ?value: D) => [{ A with B: D }]
    where B: Label
`

func TestLabelsSimple(t *testing.T) {
	inferTest{
		features: labelPolymorphism,
		env:      map[string]string{"fill": fill},
		src: `
            x = [{ a: 1 }] |> fill(column: "a", value: "x")
            y = [{ a: 1, b: ""}] |> fill(column: "b", value: 1.0)
            b = "b"
            z = [{ a: 1, b: ""}] |> fill(column: b, value: 1.0)
        `,
	}.expectTypes(t, map[string]string{
		"b": "string",
		"x": "[{a: string}]",
		"y": "[{a: int, b: float}]",
		"z": "[{a: int, b: float}]",
	})
}

func TestLabelsUnbound(t *testing.T) {
	inferTest{
		features: labelPolymorphism,
		env: map[string]string{
			"f": "(<-tables: [{ A with B: C }], ?value: D) => [{ A with B: D }] where B: Label",
		},
		src: `
            x = [{ a: 1, b: 2.0 }] |> f(value: "x")
        `,
	}.expectTypes(t, map[string]string{
		"x": "[{A with a: int, B: string}] where B: Label",
	})
}

func TestLabelsUnboundFieldType(t *testing.T) {
	inferTest{
		features: labelPolymorphism,
		env: map[string]string{
			"g": "(<-tables: [{ A with B: C }], ?column: B) => C where B: Label",
			"h": "(<-tables: [{ A with B: C }]) => [{ A with B: C }] where B: Label",
		},
		src: `
            x = [{ a: 1 }] |> g()
            y = [{ a: 1 }] |> h()
        `,
	}.expectTypes(t, map[string]string{
		"x": "int",
		"y": "[{A with B: int}] where B: Label",
	})
}

func TestLabelsUnboundFieldMismatch(t *testing.T) {
	_, err := inferTest{
		features: labelPolymorphism,
		env: map[string]string{
			"k": "(<-tables: [{ A with B: int }]) => [{ A with B: int }] where B: Label",
		},
		src: `
            x = [{ a: "s" }] |> k()
        `,
	}.run(t)
	var list diagnostic.List
	require.ErrorAs(t, err, &list)
	msgs := list.Messages()
	require.NotEmpty(t, msgs)
	assert.Contains(t, msgs[0], "expected int but found string")
}

func TestLabelsConflict(t *testing.T) {
	env := map[string]string{"k": "(x: C, y: C) => {C: int} where C: Label"}
	inferTest{
		features: labelPolymorphism,
		env:      env,
		src: `
            r = k(x: "a", y: "a")
        `,
	}.expectTypes(t, map[string]string{"r": "{a: int}"})

	inferTest{
		features: labelPolymorphism,
		env:      env,
		src: `
            r = k(x: "a", y: "b")
        `,
	}.expectMessages(t, `expected label "a" but found label "b" (argument y)`)

	inferTest{
		features: labelPolymorphism,
		env:      env,
		src: `
            s = "" + "b"
            r = k(x: "a", y: s)
        `,
	}.expectMessages(t, "string is not Label (argument y)")
}

func TestLabelsDynamicString(t *testing.T) {
	inferTest{
		features: labelPolymorphism,
		env:      map[string]string{"fill": fill},
		src: `
            column = "" + "a"
            x = [{ a: 1 }] |> fill(column: column, value: "x")
        `,
	}.expectErrors(t, `error: string is not Label (argument column)
  ┌─ main:3:44
  │
3 │             x = [{ a: 1 }] |> fill(column: column, value: "x")
  │                                            ^^^^^^

error: string is not a label
  ┌─ main:3:31
  │
3 │             x = [{ a: 1 }] |> fill(column: column, value: "x")
  │                               ^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^

`)
}

func TestLabelsDisabled(t *testing.T) {
	// the same call type-checks when labels are plain strings
	inferTest{
		env: map[string]string{"fill": fill},
		src: `
            column = "" + "a"
            x = [{ a: 1 }] |> fill(column: column, value: "x")
        `,
	}.expectTypes(t, map[string]string{
		"column": "string",
		"x":      "[{a: int}]",
	})
}

func TestUndefinedField(t *testing.T) {
	inferTest{
		features: labelPolymorphism,
		env:      map[string]string{"fill": fill},
		src: `
            x = [{ b: 1 }] |> fill(column: "a", value: "x")
        `,
	}.expectErrors(t, `error: record is missing label a
  ┌─ main:2:31
  │
2 │             x = [{ b: 1 }] |> fill(column: "a", value: "x")
  │                               ^^^^^^^^^^^^^^^^^^^^^^^^^^^^^

`)
}

func TestMergeLabelsToString(t *testing.T) {
	inferTest{
		features: labelPolymorphism,
		src: `
            x = if 1 == 1 then "a" else "b"
            y = if 1 == 1 then "a" else "b" + "b"
            z = ["a", "b"]
        `,
	}.expectTypes(t, map[string]string{
		"x": "string",
		"y": "string",
		"z": "[string]",
	})
}

func TestMergeLabelsInFunction(t *testing.T) {
	inferTest{
		features: labelPolymorphism,
		env:      map[string]string{"same": "(x: A, y: A) => A"},
		src: `
            x = same(x: "a", y: "b")
            y = same(x: ["a"], y: ["b"])
        `,
	}.expectTypes(t, map[string]string{
		"x": "string",
		"y": "[string]",
	})
}

const missingLabelAbc = `error: record is missing label abc
  ┌─ main:3:17
  │
3 │             y = x.abc
  │                 ^

`

func TestLabelKindWithoutFeature(t *testing.T) {
	inferTest{
		env: map[string]string{
			"columns": "(table: A, ?column: C) => { C: string } where A: Record, C: Label",
		},
		src: `
            x = columns(table: { a: 1, b: "b" }, column: "abc")
            y = x.abc
        `,
	}.expectErrors(t, missingLabelAbc)
}

func TestColumns(t *testing.T) {
	inferTest{
		features: labelPolymorphism,
		env: map[string]string{
			"stream": "stream[{ a: int }]",
			"map":    "(<-tables: stream[A], fn: (r: A) => B) => stream[B]",
		},
		packages: map[string]map[string]string{
			"experimental/universe": {
				"fill": `(<-tables: stream[{A with C: B}], ?column: C, ?value: B, ?usePrevious: bool) => stream[{A with C: B}]
        where
        A: Record,
        C: Label`,
				"columns": "(<-tables: stream[A], ?column: C) => stream[{ C: string }] where A: Record, C: Label",
			},
		},
		src: `
            import "experimental/universe"

            x = stream
                |> universe.columns(column: "abc")
                |> map(fn: (r) => ({ x: r.abc }))
        `,
	}.expectTypes(t, map[string]string{
		"x": "stream[{x: string}]",
	})
}

func TestOptionalLabel(t *testing.T) {
	inferTest{
		features: labelPolymorphism,
		env: map[string]string{
			"columns": "(table: A, ?column: C) => { C: string } where A: Record, C: Label",
		},
		src: `
            x = columns(table: { a: 1, b: "b" })
            y = x.abc
        `,
	}.expectErrors(t, missingLabelAbc)
}
