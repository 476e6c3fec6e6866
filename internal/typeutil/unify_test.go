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

package typeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mohamedkrs/flux/feature"
	"github.com/Mohamedkrs/flux/types"
)

func newContext(features ...feature.Flag) *CommonContext {
	ctx := &CommonContext{}
	ctx.Init(feature.NewSet(features...), nil)
	return ctx
}

func instantiate(t *testing.T, ctx *CommonContext, sig string) types.Type {
	t.Helper()
	typ, err := types.Parse(sig)
	require.NoError(t, err)
	return ctx.Instantiate(1, typ)
}

func requireTypeError(t *testing.T, err error, kind types.ErrorKind, msg string) {
	t.Helper()
	require.Error(t, err)
	te, ok := err.(*types.Error)
	require.True(t, ok, "expected *types.Error, found %T", err)
	assert.Equal(t, kind, te.Kind)
	assert.Equal(t, msg, te.Error())
}

func TestUnifyBasic(t *testing.T) {
	ctx := newContext()
	require.NoError(t, ctx.Unify(types.Int, types.Int))
	requireTypeError(t, ctx.Unify(types.Int, types.String), types.TypeMismatch, "expected int but found string")

	a := instantiate(t, ctx, "[A]")
	require.NoError(t, ctx.Unify(a, types.NewArray(types.Float)))
	assert.Equal(t, "[float]", types.TypeString(a))
}

func TestUnifyOccurs(t *testing.T) {
	ctx := newContext()
	tv := ctx.VarTracker.New(1)
	err := ctx.Unify(tv, types.NewArray(tv))
	requireTypeError(t, err, types.OccursCheck, "recursive types are not supported: type variable occurs in [A]")
	assert.True(t, tv.IsUnboundVar())
}

func TestUnifyKinds(t *testing.T) {
	ctx := newContext()
	tv := ctx.VarTracker.New(1)
	tv.AddKind(types.Addable)
	other := ctx.VarTracker.New(1)
	other.AddKind(types.Comparable)
	require.NoError(t, ctx.Unify(tv, other))
	assert.Equal(t, "A where A: Addable + Comparable", types.TypeString(tv))

	requireTypeError(t, ctx.Unify(tv, types.Bool), types.KindViolation, "bool is not Addable")
	// the variable is linked even though the kind check failed
	assert.Equal(t, "bool", types.TypeString(tv))

	rv := ctx.VarTracker.New(1)
	rv.AddKind(types.RecordKind)
	requireTypeError(t, ctx.Unify(rv, types.Int), types.KindViolation, "int is not Record")
}

func TestUnifyRecords(t *testing.T) {
	ctx := newContext()

	a := instantiate(t, ctx, "{A with a: int}")
	b := instantiate(t, ctx, "{B with b: string}")
	require.NoError(t, ctx.Unify(a, b))
	assert.Equal(t, "{A with a: int, b: string}", types.TypeString(a))
	assert.Equal(t, "{A with a: int, b: string}", types.TypeString(b))

	closed := instantiate(t, ctx, "{a: int}")
	wider := instantiate(t, ctx, "{a: int, b: int}")
	requireTypeError(t, ctx.Unify(closed, wider), types.MissingLabel, "record is missing label b")

	open := instantiate(t, ctx, "{R with c: bool}")
	requireTypeError(t, ctx.Unify(open, closed), types.MissingLabel, "record is missing label c")

	access := instantiate(t, ctx, "{R with a: T}")
	require.NoError(t, ctx.Unify(access, instantiate(t, ctx, "{a: int, b: string}")))
	assert.Equal(t, "{a: int, b: string}", types.TypeString(access))

	requireTypeError(t, ctx.Unify(instantiate(t, ctx, "{a: int}"), instantiate(t, ctx, "{a: string}")),
		types.TypeMismatch, "expected int but found string")
}

func TestUnifyFuncs(t *testing.T) {
	ctx := newContext()
	f := instantiate(t, ctx, "(x: A, ?y: A) => A")
	g := instantiate(t, ctx, "(x: int, ?y: int, ?z: int) => int")
	require.NoError(t, ctx.Unify(f, g))
	assert.Equal(t, "(x: int, ?y: int) => int", types.TypeString(f))

	h := instantiate(t, ctx, "(x: int, w: int) => int")
	requireTypeError(t, ctx.Unify(instantiate(t, ctx, "(x: int) => int"), h), types.MissingArgument, "missing required argument w")

	pipe := instantiate(t, ctx, "(<-tables: [A]) => [A]")
	other := instantiate(t, ctx, "(<-t: [int]) => [int]")
	require.NoError(t, ctx.Unify(pipe, other))
	assert.Equal(t, "(<-tables: [int]) => [int]", types.TypeString(pipe))
}

func TestInstantiateFresh(t *testing.T) {
	ctx := newContext()
	same, err := types.Parse("(x: A, y: A) => A where A: Equatable")
	require.NoError(t, err)

	first := ctx.Instantiate(1, same).(*types.Func)
	second := ctx.Instantiate(1, same).(*types.Func)
	require.NoError(t, ctx.Unify(first.Params[0].Type, types.String))
	require.NoError(t, ctx.Unify(second.Params[0].Type, types.NewArray(types.String)))
	assert.Equal(t, "string", types.TypeString(first.Return))
	assert.Equal(t, "[string]", types.TypeString(second.Return))
	assert.Equal(t, "(x: A, y: A) => A where A: Equatable", types.TypeString(same))
}

func TestLabelWidening(t *testing.T) {
	ctx := newContext(feature.LabelPolymorphism)
	tv := ctx.VarTracker.New(1)
	require.NoError(t, ctx.Unify(tv, &types.Label{Name: "a"}))
	assert.Same(t, types.String, types.RealType(tv))
	require.NoError(t, ctx.Unify(tv, &types.Label{Name: "b"}))

	lv := ctx.VarTracker.New(1)
	lv.AddKind(types.LabelKind)
	require.NoError(t, ctx.Unify(lv, &types.Label{Name: "a"}))
	assert.Equal(t, &types.Label{Name: "a"}, types.RealType(lv))
}

func TestUnifyLabels(t *testing.T) {
	ctx := newContext(feature.LabelPolymorphism)
	require.NoError(t, ctx.Unify(&types.Label{Name: "a"}, &types.Label{Name: "a"}))
	requireTypeError(t, ctx.Unify(&types.Label{Name: "a"}, &types.Label{Name: "b"}),
		types.TypeMismatch, `expected label "a" but found label "b"`)
	requireTypeError(t, ctx.Unify(&types.Label{Name: "a"}, types.String),
		types.KindViolation, "string is not Label")
	// any label is a string
	require.NoError(t, ctx.Unify(types.String, &types.Label{Name: "a"}))

	// without label polymorphism a label is only a string
	ctx = newContext()
	require.NoError(t, ctx.Unify(&types.Label{Name: "a"}, types.String))

	// a label variable bound to one label rejects another
	ctx = newContext(feature.LabelPolymorphism)
	lv := ctx.VarTracker.New(1)
	lv.AddKind(types.LabelKind)
	require.NoError(t, ctx.Unify(lv, &types.Label{Name: "a"}))
	requireTypeError(t, ctx.Unify(lv, &types.Label{Name: "b"}),
		types.TypeMismatch, `expected label "a" but found label "b"`)
}

const fill = "(<-tables: [{ A with B: C }], ?column: B, ?value: D) => [{ A with B: D }] where B: Label"

func TestLabelKind(t *testing.T) {
	ctx := newContext(feature.LabelPolymorphism)
	f := instantiate(t, ctx, fill).(*types.Func)
	requireTypeError(t, ctx.Unify(f.Param("column").Type, types.String), types.KindViolation, "string is not Label")

	records := types.NewArray(types.NewClosedRecord(map[string]types.Type{"a": types.Int}))
	requireTypeError(t, ctx.Unify(f.PipeParam().Type, records), types.NotALabel, "string is not a label")
}

func TestLabelKindDisabled(t *testing.T) {
	ctx := newContext()
	f := instantiate(t, ctx, fill).(*types.Func)
	require.NoError(t, ctx.Unify(f.Param("column").Type, types.String))
	records := types.NewArray(types.NewClosedRecord(map[string]types.Type{"a": types.Int}))
	// the field named by a string is dropped, without an error
	require.NoError(t, ctx.Unify(f.PipeParam().Type, records))
	assert.Equal(t, "[{a: int}]", types.TypeString(f.Return))

	f = instantiate(t, ctx, fill).(*types.Func)
	requireTypeError(t, ctx.Unify(f.Param("column").Type, types.Int), types.TypeMismatch, "expected string but found int")
}

func TestLabelResolved(t *testing.T) {
	ctx := newContext(feature.LabelPolymorphism)
	f := instantiate(t, ctx, fill).(*types.Func)

	mark := ctx.BeginDeferral()
	records := types.NewArray(types.NewClosedRecord(map[string]types.Type{"a": types.Int, "b": types.String}))
	require.NoError(t, ctx.Unify(f.PipeParam().Type, records))
	require.NoError(t, ctx.Unify(f.Param("column").Type, &types.Label{Name: "b"}))
	require.NoError(t, ctx.Unify(f.Param("value").Type, types.Float))
	assert.Len(t, ctx.Deferred, 1)
	assert.Empty(t, ctx.EndDeferral(mark))
	assert.Empty(t, ctx.Deferred)

	assert.Equal(t, "[{a: int, b: float}]", types.TypeString(f.Return))
}

func TestLabelUnresolved(t *testing.T) {
	ctx := newContext(feature.LabelPolymorphism)
	f := instantiate(t, ctx, "(<-tables: [{ A with B: C }], ?value: D) => [{ A with B: D }] where B: Label").(*types.Func)

	mark := ctx.BeginDeferral()
	require.NoError(t, ctx.Unify(f.Param("value").Type, &types.Label{Name: "x"}))
	records := types.NewArray(types.NewClosedRecord(map[string]types.Type{"a": types.Int, "b": types.Float}))
	require.NoError(t, ctx.Unify(f.PipeParam().Type, records))
	assert.Empty(t, ctx.EndDeferral(mark))

	assert.Equal(t, "[{A with a: int, B: string}] where B: Label", types.TypeString(f.Return))
	// the field set aside for B still constrains its type
	rec := f.PipeParam().Type.(*types.Array).Elem.(*types.Record)
	require.Len(t, rec.Dynamic, 1)
	assert.Same(t, types.Float, types.RealType(rec.Dynamic[0].Type))
}

func TestLabelUnresolvedFieldMismatch(t *testing.T) {
	ctx := newContext(feature.LabelPolymorphism)
	f := instantiate(t, ctx, "(<-tables: [{ A with B: int }]) => [{ A with B: int }] where B: Label").(*types.Func)

	mark := ctx.BeginDeferral()
	records := types.NewArray(types.NewClosedRecord(map[string]types.Type{"a": types.String}))
	require.NoError(t, ctx.Unify(f.PipeParam().Type, records))
	errs := ctx.EndDeferral(mark)
	require.Len(t, errs, 1)
	requireTypeError(t, errs[0], types.TypeMismatch, "expected int but found string")
}

func TestDeferralNesting(t *testing.T) {
	ctx := newContext(feature.LabelPolymorphism)
	f := instantiate(t, ctx, fill).(*types.Func)

	outer := ctx.BeginDeferral()
	inner := ctx.BeginDeferral()
	records := types.NewArray(types.NewClosedRecord(map[string]types.Type{"b": types.Int}))
	require.NoError(t, ctx.Unify(f.PipeParam().Type, records))
	assert.Empty(t, ctx.EndDeferral(inner))
	// still waiting on the label, now in the outer scope
	assert.Len(t, ctx.Deferred, 1)

	require.NoError(t, ctx.Unify(f.Param("column").Type, &types.Label{Name: "a"}))
	errs := ctx.EndDeferral(outer)
	require.Len(t, errs, 1)
	requireTypeError(t, errs[0], types.MissingLabel, "record is missing label a")
}

func TestWidenLabels(t *testing.T) {
	label := &types.Label{Name: "a"}
	rec := types.NewRecord(types.SingletonTypeMap("x", label), nil, nil)
	widened := WidenLabels(types.NewArray(rec))
	assert.Equal(t, "[{x: string}]", types.TypeString(widened))
	x, _ := widened.(*types.Array).Elem.(*types.Record).Fields.Get("x")
	assert.Same(t, types.String, x)
	// the original is left alone
	assert.Same(t, label, mustGet(t, rec.Fields, "x"))
}

func mustGet(t *testing.T, m types.TypeMap, label string) types.Type {
	t.Helper()
	ft, ok := m.Get(label)
	require.True(t, ok, "missing %s", label)
	return ft
}
