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
	"errors"

	"github.com/Mohamedkrs/flux/types"
)

var errOccurs = errors.New("occurs")

// See "Efficient Generalization with Levels" (Oleg Kiselyov)
// http://okmij.org/ftp/ML/generalization.html#levels
//
// This implementation follows the sound_eager algorithm.
func (ctx *CommonContext) occursAdjustLevels(tv *types.Var, level int, t types.Type) error {
	switch t := t.(type) {
	case *types.Var:
		switch {
		case t.IsLinkVar():
			return ctx.occursAdjustLevels(tv, level, t.Link())
		case t.IsGenericVar():
			return types.Errorf(types.TypeMismatch, "type must be instantiated before unification")
		default:
			if t == tv {
				return errOccurs
			}
			if t.Level() > level {
				t.SetLevel(level)
			}
		}
		return nil

	case *types.Array:
		return ctx.occursAdjustLevels(tv, level, t.Elem)

	case *types.Stream:
		return ctx.occursAdjustLevels(tv, level, t.Elem)

	case *types.Dict:
		if err := ctx.occursAdjustLevels(tv, level, t.Key); err != nil {
			return err
		}
		return ctx.occursAdjustLevels(tv, level, t.Value)

	case *types.Func:
		for _, param := range t.Params {
			if err := ctx.occursAdjustLevels(tv, level, param.Type); err != nil {
				return err
			}
		}
		return ctx.occursAdjustLevels(tv, level, t.Return)

	case *types.Record:
		var err error
		t.Fields.Range(func(_ string, ft types.Type) bool {
			err = ctx.occursAdjustLevels(tv, level, ft)
			return err == nil
		})
		if err != nil {
			return err
		}
		for _, f := range t.Dynamic {
			if err := ctx.occursAdjustLevels(tv, level, f.Label); err != nil {
				return err
			}
			if err := ctx.occursAdjustLevels(tv, level, f.Type); err != nil {
				return err
			}
		}
		return ctx.occursAdjustLevels(tv, level, t.Row)
	}
	return nil
}

// Unify the expected type a with the actual type b. Unification continues past the first failure
// where possible, so the types are refined as far as they can be; the first failure is returned.
func (ctx *CommonContext) Unify(a, b types.Type) error {
	// Path compression:
	a, b = types.RealType(a), types.RealType(b)

	if a == b {
		return nil
	}

	// Invalid types are produced by earlier failures, which have already been reported:
	if _, ok := a.(types.Invalid); ok {
		return nil
	}
	if _, ok := b.(types.Invalid); ok {
		return nil
	}

	// unify type variables:

	avar, _ := a.(*types.Var)
	bvar, _ := b.(*types.Var)
	switch {
	case avar != nil && bvar != nil:
		return ctx.unifyVars(avar, bvar)
	case avar != nil:
		return ctx.bindVar(avar, b)
	case bvar != nil:
		return ctx.bindVar(bvar, a)
	}

	switch a := a.(type) {
	case *types.Basic:
		switch b := b.(type) {
		case *types.Basic:
			if a.Name == b.Name {
				return nil
			}
		case *types.Label:
			// a label is a string which names a field
			if a == types.String {
				return nil
			}
		}

	case *types.Label:
		switch b := b.(type) {
		case *types.Label:
			if a.Name == b.Name {
				return nil
			}
			return types.NewLabelMismatchError(a, b)
		case *types.Basic:
			// a string is only known to name a field when it is a literal
			if b == types.String {
				if ctx.LabelPolymorphism() {
					return types.NewKindError(types.String, types.LabelKind)
				}
				return nil
			}
		}

	case *types.Array:
		if b, ok := b.(*types.Array); ok {
			return ctx.Unify(a.Elem, b.Elem)
		}

	case *types.Stream:
		if b, ok := b.(*types.Stream); ok {
			return ctx.Unify(a.Elem, b.Elem)
		}

	case *types.Dict:
		if b, ok := b.(*types.Dict); ok {
			return firstError(ctx.Unify(a.Key, b.Key), ctx.Unify(a.Value, b.Value))
		}

	case *types.Func:
		if b, ok := b.(*types.Func); ok {
			return ctx.unifyFuncs(a, b)
		}

	case *types.Record:
		if b, ok := b.(*types.Record); ok {
			return ctx.unifyRecords(a, b)
		}
	}

	return types.NewMismatchError(a, b)
}

func (ctx *CommonContext) unifyVars(a, b *types.Var) error {
	if a.IsGenericVar() || b.IsGenericVar() {
		return types.Errorf(types.TypeMismatch, "type must be instantiated before unification")
	}
	// the variable at the outer level survives, so generalization stays sound:
	if a.Level() < b.Level() {
		a, b = b, a
	}
	b.AddKinds(a.Kinds())
	a.SetLink(b)
	return nil
}

// bindVar links tv to the non-variable type t, checking for recursion and applying the kind
// constraints of tv to t. Kind failures are reported after linking, so later uses of tv see t.
func (ctx *CommonContext) bindVar(tv *types.Var, t types.Type) error {
	if tv.IsGenericVar() {
		return types.Errorf(types.TypeMismatch, "type must be instantiated before unification")
	}
	if err := ctx.occursAdjustLevels(tv, tv.Level(), t); err != nil {
		if err == errOccurs {
			return types.NewOccursError(tv, t)
		}
		return err
	}
	// Labels only survive in variables which require them:
	if !tv.HasKind(types.LabelKind) {
		t = WidenLabels(t)
	}
	var err error
	for _, k := range tv.Kinds() {
		if err = ctx.applyKind(k, t); err != nil {
			break
		}
	}
	tv.SetLink(t)
	return err
}

func (ctx *CommonContext) unifyFuncs(a, b *types.Func) error {
	var err error
	for _, pa := range a.Params {
		pb := b.Param(pa.Name)
		if pb == nil && pa.Pipe {
			pb = b.PipeParam()
		}
		if pb == nil {
			if !pa.Optional {
				err = firstError(err, types.NewExtraArgumentError(pa.Name))
			}
			continue
		}
		err = firstError(err, ctx.Unify(pa.Type, pb.Type))
	}
	for _, pb := range b.Params {
		if pb.Optional || a.Param(pb.Name) != nil || (pb.Pipe && a.PipeParam() != nil) {
			continue
		}
		err = firstError(err, types.NewMissingArgumentError(pb.Name))
	}
	return firstError(err, ctx.Unify(a.Return, b.Return))
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
