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

// applyKind checks that t satisfies the kind k. Unbound type-variables take on the constraint,
// and composite types pass structural kinds on to their elements.
func (ctx *CommonContext) applyKind(k types.Kind, t types.Type) error {
	t = types.RealType(t)
	switch t := t.(type) {
	case types.Invalid:
		return nil
	case *types.Var:
		if t.IsGenericVar() {
			return types.Errorf(types.TypeMismatch, "type must be instantiated before unification")
		}
		t.AddKind(k)
		return nil
	}

	if k == types.LabelKind {
		return ctx.applyLabelKind(t)
	}

	switch t := t.(type) {
	case *types.Basic:
		if k.Accepts(t) {
			return nil
		}
	case *types.Label:
		if k.Accepts(types.String) {
			return nil
		}
	case *types.Record:
		switch k {
		case types.RecordKind:
			return nil
		case types.Equatable:
			var err error
			t.Fields.Range(func(_ string, ft types.Type) bool {
				err = ctx.applyKind(k, ft)
				return err == nil
			})
			for _, f := range t.Dynamic {
				err = firstError(err, ctx.applyKind(k, f.Type))
			}
			return err
		}
	case *types.Array:
		if k == types.Equatable {
			return ctx.applyKind(k, t.Elem)
		}
	case *types.Dict:
		if k == types.Equatable {
			return firstError(ctx.applyKind(k, t.Key), ctx.applyKind(k, t.Value))
		}
	}
	return types.NewKindError(t, k)
}

// applyLabelKind accepts label types. A plain string is not a label, unless label polymorphism
// is disabled, in which case the kind is satisfied by strings alone.
func (ctx *CommonContext) applyLabelKind(t types.Type) error {
	switch t.(type) {
	case *types.Label:
		return nil
	case *types.Basic:
		if t == types.String {
			if ctx.LabelPolymorphism() {
				return types.NewKindError(t, types.LabelKind)
			}
			return nil
		}
	}
	if ctx.LabelPolymorphism() {
		return types.NewKindError(t, types.LabelKind)
	}
	return types.NewMismatchError(types.String, t)
}

// hasUnresolvedLabels reports whether a record has fields named by unbound label variables.
func (ctx *CommonContext) hasUnresolvedLabels(r *types.Record) bool {
	_, dynamic, _ := types.FlattenRecord(r)
	for _, f := range dynamic {
		if tv, ok := types.RealType(f.Label).(*types.Var); ok && tv.IsUnboundVar() {
			return true
		}
	}
	return false
}
