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

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrint(t *testing.T) {
	tests := []struct {
		sig, want string
	}{
		{"int", "int"},
		{"[A]", "[A]"},
		{"stream[{ a: int }]", "stream[{a: int}]"},
		{"[string: [int]]", "[string: [int]]"},
		{"{}", "{}"},
		{"{A with}", "{A with}"},
		{`{"a b": int, c: bool}`, `{"a b": int, c: bool}`},
		{"(x: A, y: A) => A", "(x: A, y: A) => A"},
		{"() => (x: int) => bool", "() => (x: int) => bool"},
		{"(a: A, b: A) => A where A: Addable + Comparable", "(a: A, b: A) => A where A: Addable + Comparable"},
		{
			"(<-tables: [{ A with B: C }], ?column: B, ?value: D) => [{ A with B: D }]\n    where B: Label\n",
			"(<-tables: [{A with B: C}], ?column: B, ?value: D) => [{A with B: D}] where B: Label",
		},
		{
			"(table: A, ?column: C) => { C: string } where A: Record, C: Label",
			"(table: A, ?column: B) => {B: string} where A: Record, B: Label",
		},
		{
			"(<-tables: stream[{A with C: B}], ?column: C, ?value: B, ?usePrevious: bool) => stream[{A with C: B}]\n        where\n        A: Record,\n        C: Label",
			"(<-tables: stream[{A with B: C}], ?column: B, ?value: C, ?usePrevious: bool) => stream[{A with B: C}] where A: Record, B: Label",
		},
		{"(?<-x: int) => int", "(?<-x: int) => int"},
		{
			"(x: {A: int}, ?c: C) => {C: string} where C: Label",
			"(x: {A: int}, ?c: B) => {B: string} where B: Label",
		},
		{
			"(r: {B: A, A: bool}) => A",
			"(r: {A: bool, B: C}) => C",
		},
	}
	for _, tc := range tests {
		t.Run(tc.sig, func(t *testing.T) {
			typ, err := Parse(tc.sig)
			require.NoError(t, err)
			assert.True(t, typ.IsGeneric() || len(GenericVars(typ)) == 0)
			got := TypeString(typ)
			assert.Equal(t, tc.want, got)

			// printed signatures parse back to the same type
			again, err := Parse(got)
			require.NoError(t, err)
			assert.True(t, Equal(typ, again), "%s != %s", got, TypeString(again))
			assert.Equal(t, got, TypeString(again))
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		sig, err string
	}{
		{"foo", "signature:0: unknown type foo"},
		{"[int", "signature:4: expected ], found end of signature"},
		{"A where A: Bogus", "signature:11: unknown kind Bogus"},
		{"A where a: Record", "signature:8: a is not a type variable"},
		{"(x int) => int", `signature:3: expected :, found "int"`},
		{"int int", `signature:4: unexpected "int"`},
	}
	for _, tc := range tests {
		_, err := Parse(tc.sig)
		assert.EqualError(t, err, tc.err, tc.sig)
	}
}

func TestEqual(t *testing.T) {
	a := MustParse("(x: A, y: B) => A")
	assert.True(t, Equal(a, MustParse("(y: D, x: C) => C")))
	assert.False(t, Equal(a, MustParse("(x: A, y: A) => A")))
	assert.False(t, Equal(MustParse("[A] where A: Numeric"), MustParse("[A]")))
	assert.True(t, Equal(&Label{Name: "a"}, String))
	assert.False(t, Equal(MustParse("{a: int}"), MustParse("{A with a: int}")))
}

func TestPrintLinked(t *testing.T) {
	tail := NewVar(1, 1)
	inner := NewVar(2, 1)
	outer := NewRecord(SingletonTypeMap("a", Int), nil, tail)
	tail.SetLink(NewRecord(NewFlatTypeMap(map[string]Type{"a": String, "b": inner}), nil, nil))
	// outer fields hide nested fields of the same label
	assert.Equal(t, "{a: int, b: A}", TypeString(outer))

	label := NewVar(3, 1)
	label.AddKind(LabelKind)
	dyn := NewRecord(EmptyTypeMap, []DynamicField{{Label: label, Type: Float}}, NewVar(4, 1))
	assert.Equal(t, "{A with B: float} where B: Label", TypeString(dyn))
	label.SetLink(&Label{Name: "x y"})
	assert.Equal(t, `{A with "x y": float}`, TypeString(dyn))

	assert.Equal(t, "<error>", TypeString(Invalid{}))
	assert.Equal(t, "string", TypeString(&Label{Name: "a"}))
}

func TestVarNames(t *testing.T) {
	assert.Equal(t, "A", VarName(0))
	assert.Equal(t, "Z", VarName(25))
	assert.Equal(t, "A1", VarName(26))
	assert.Equal(t, "C2", VarName(54))
}

func TestApply(t *testing.T) {
	tv := NewVar(1, 1)
	arr := NewArray(tv)
	tv.SetLink(NewRecord(SingletonTypeMap("a", Int), nil, NewVar(2, 1)))
	once := Apply(arr)
	twice := Apply(once)
	assert.True(t, Equal(once, twice))
	assert.Equal(t, TypeString(arr), TypeString(twice))
	_, linked := once.(*Array).Elem.(*Var)
	assert.False(t, linked)

	free := FreeVars(arr)
	assert.Equal(t, 1, free.Size())
}

func TestGeneralize(t *testing.T) {
	outer := NewVar(1, 0)
	inner := NewVar(2, 2)
	f := NewFunc([]Param{{Name: "x", Type: inner}}, outer)
	assert.False(t, f.IsGeneric())
	GeneralizeAtLevel(1, f)
	assert.True(t, f.IsGeneric())
	assert.True(t, inner.IsGenericVar())
	assert.False(t, outer.IsGenericVar())
	assert.Equal(t, []*Var{inner}, GenericVars(f))
}

func TestErrorArgument(t *testing.T) {
	err := NewKindError(String, LabelKind)
	assert.Equal(t, "string is not Label", err.Error())
	withArg := err.WithArgument("column")
	assert.Equal(t, "string is not Label (argument column)", withArg.Error())
	assert.Equal(t, "string is not Label", err.Error())
	assert.Same(t, withArg, withArg.WithArgument("other"))
}
