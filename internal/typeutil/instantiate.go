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

// Instantiate replaces the generic type-variables of t with fresh type-variables at the given
// binding-level. Kind constraints are copied to the fresh type-variables.
func (ctx *CommonContext) Instantiate(level int, t types.Type) types.Type {
	// Path compression:
	t = types.RealType(t)
	// Non-generic types can be shared:
	if !t.IsGeneric() {
		return t
	}
	t = ctx.visitInstantiate(level, t)
	ctx.ClearInstantiationLookup()
	return t
}

func (ctx *CommonContext) visitInstantiate(level int, t types.Type) types.Type {
	// Path compression:
	t = types.RealType(t)

	// Non-generic types can be shared:
	if !t.IsGeneric() {
		return t
	}

	switch t := t.(type) {
	case *types.Var:
		if tv, ok := ctx.InstLookup[t]; ok {
			return tv
		}
		next := ctx.VarTracker.New(level)
		next.AddKinds(t.Kinds())
		ctx.InstLookup[t] = next
		return next

	case *types.Array:
		return types.NewArray(ctx.visitInstantiate(level, t.Elem))

	case *types.Stream:
		return types.NewStream(ctx.visitInstantiate(level, t.Elem))

	case *types.Dict:
		return types.NewDict(ctx.visitInstantiate(level, t.Key), ctx.visitInstantiate(level, t.Value))

	case *types.Func:
		params := make([]types.Param, len(t.Params))
		for i, param := range t.Params {
			param.Type = ctx.visitInstantiate(level, param.Type)
			params[i] = param
		}
		return types.NewFunc(params, ctx.visitInstantiate(level, t.Return))

	case *types.Record:
		// if the fields don't contain generic types, they don't need to be copied:
		fields := t.Fields
		var mb types.TypeMapBuilder
		needsRebuild := false
		fields.Range(func(label string, ft types.Type) bool {
			if !types.RealType(ft).IsGeneric() {
				return true
			}
			if !needsRebuild {
				mb, needsRebuild = fields.Builder(), true
			}
			mb.Set(label, ctx.visitInstantiate(level, ft))
			return true
		})
		if needsRebuild {
			fields = mb.Build()
		}
		var dynamic []types.DynamicField
		for _, f := range t.Dynamic {
			dynamic = append(dynamic, types.DynamicField{
				Label: ctx.visitInstantiate(level, f.Label),
				Type:  ctx.visitInstantiate(level, f.Type),
			})
		}
		return types.NewRecord(fields, dynamic, ctx.visitInstantiate(level, t.Row))
	}
	panic("unexpected generic type " + t.TypeName())
}
