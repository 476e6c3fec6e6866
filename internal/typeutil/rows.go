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
	"github.com/Mohamedkrs/flux/types"
)

// row is a flattened record: concrete fields, fields named by unresolved label variables, and the
// tail which is not a record.
type row struct {
	fields  types.TypeMap
	dynamic []types.DynamicField
	tail    types.Type
}

func (r row) empty() bool { return r.fields.Len() == 0 && len(r.dynamic) == 0 }

// firstLabel names the first leftover field, for error messages.
func (r row) firstLabel() string {
	if labels := r.fields.Labels(); len(labels) > 0 {
		return labels[0]
	}
	return types.TypeString(r.dynamic[0].Label)
}

func (r row) record(tail types.Type) *types.Record {
	return types.NewRecord(r.fields, r.dynamic, tail)
}

// flattenRow flattens a record, resolving fields named by label variables. Fields whose label
// resolved to a type other than a label are dropped; when label polymorphism is enabled, the
// first of them is reported.
func (ctx *CommonContext) flattenRow(r *types.Record) (row, error) {
	fields, dynamic, tail := types.FlattenRecord(r)
	var (
		unresolved []types.DynamicField
		err        error
	)
	for _, f := range dynamic {
		switch l := types.RealType(f.Label).(type) {
		case *types.Var:
			unresolved = append(unresolved, f)
		case types.Invalid:
		default:
			if ctx.LabelPolymorphism() && err == nil {
				err = types.NewNotALabelError(l)
			}
		}
	}
	return row{fields: fields, dynamic: unresolved, tail: tail}, err
}

// unifyRecords unifies the expected record a with the actual record b. Within a deferral scope,
// records with fields named by unresolved label variables are postponed.
func (ctx *CommonContext) unifyRecords(a, b *types.Record) error {
	ra, errA := ctx.flattenRow(a)
	rb, errB := ctx.flattenRow(b)
	if ctx.deferDepth > 0 && (len(ra.dynamic) > 0 || len(rb.dynamic) > 0) {
		ctx.Deferred = append(ctx.Deferred, DeferredRecord{Expected: a, Actual: b})
		return firstError(errA, errB)
	}
	return firstError(errA, errB, ctx.unifyRows(ra, rb))
}

func (ctx *CommonContext) unifyRows(a, b row) error {
	var (
		err   error
		onlyA = types.NewTypeMapBuilder()
		onlyB []string
	)
	a.fields.Range(func(label string, ta types.Type) bool {
		if tb, ok := b.fields.Get(label); ok {
			err = firstError(err, ctx.Unify(ta, tb))
		} else {
			onlyA.Set(label, ta)
		}
		return true
	})
	b.fields.Range(func(label string, _ types.Type) bool {
		if _, ok := a.fields.Get(label); !ok {
			onlyB = append(onlyB, label)
		}
		return true
	})

	// Fields of the expected record named by unresolved labels may name any of the actual record's
	// remaining fields. The last ones are set aside for them: each pair's field types are unified,
	// and neither side absorbs the pair.
	reserved := min(len(a.dynamic), len(onlyB))
	residual := reserved > 0
	for i, field := range a.dynamic[:reserved] {
		tb, _ := b.fields.Get(onlyB[len(onlyB)-reserved+i])
		err = firstError(err, ctx.Unify(field.Type, tb))
	}
	toB := row{fields: onlyA.Build(), dynamic: a.dynamic[reserved:]}
	toAFields := types.NewTypeMapBuilder()
	for _, label := range onlyB[:len(onlyB)-reserved] {
		t, _ := b.fields.Get(label)
		toAFields.Set(label, t)
	}
	toA := row{fields: toAFields.Build(), dynamic: b.dynamic}

	// toA holds what the tail of a must provide, toB what the tail of b must provide:
	switch ta := a.tail.(type) {
	case types.Invalid:
		return err

	case types.RowEmpty:
		switch tb := b.tail.(type) {
		case types.Invalid:
			return err
		case types.RowEmpty:
			if !toB.empty() {
				return firstError(err, types.NewMissingLabelError(toB.firstLabel()))
			}
			if !toA.empty() {
				return firstError(err, types.NewMissingLabelError(toA.firstLabel()))
			}
			return err
		case *types.Var:
			if !toA.empty() {
				return firstError(err, types.NewMissingLabelError(toA.firstLabel()))
			}
			return firstError(err, ctx.bindRow(tb, toB, residual))
		}

	case *types.Var:
		switch tb := b.tail.(type) {
		case types.Invalid:
			return err
		case types.RowEmpty:
			if !toB.empty() {
				return firstError(err, types.NewMissingLabelError(toB.firstLabel()))
			}
			return firstError(err, ctx.bindRow(ta, toA, residual))
		case *types.Var:
			if ta == tb {
				if !toB.empty() {
					return firstError(err, types.NewMissingLabelError(toB.firstLabel()))
				}
				if !toA.empty() {
					return firstError(err, types.NewMissingLabelError(toA.firstLabel()))
				}
				return err
			}
			tail := ctx.VarTracker.New(min(ta.Level(), tb.Level()))
			err = firstError(err, ctx.bindVar(ta, toA.record(tail)))
			return firstError(err, ctx.bindVar(tb, toB.record(tail)))
		}
	}
	return firstError(err, types.NewMismatchError(a.record(a.tail), b.record(b.tail)))
}

// bindRow binds an open tail to the fields the other record provides. When fields were set aside
// for unresolved labels, the tail stays open.
func (ctx *CommonContext) bindRow(tv *types.Var, fields row, residual bool) error {
	if !residual {
		return ctx.bindVar(tv, fields.record(nil))
	}
	if fields.empty() {
		return nil
	}
	return ctx.bindVar(tv, fields.record(ctx.VarTracker.New(tv.Level())))
}
