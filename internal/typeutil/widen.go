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

// WidenLabels returns t with every label type replaced by string. Field names of records are kept,
// including names given by label variables. If t contains no labels, t is returned.
func WidenLabels(t types.Type) types.Type {
	if !containsLabels(t) {
		return t
	}
	return widen(t)
}

func containsLabels(t types.Type) bool {
	switch t := types.RealType(t).(type) {
	case *types.Label:
		return true
	case *types.Array:
		return containsLabels(t.Elem)
	case *types.Stream:
		return containsLabels(t.Elem)
	case *types.Dict:
		return containsLabels(t.Key) || containsLabels(t.Value)
	case *types.Func:
		for _, param := range t.Params {
			if containsLabels(param.Type) {
				return true
			}
		}
		return containsLabels(t.Return)
	case *types.Record:
		found := false
		t.Fields.Range(func(_ string, ft types.Type) bool {
			found = containsLabels(ft)
			return !found
		})
		if found {
			return true
		}
		for _, f := range t.Dynamic {
			if containsLabels(f.Type) {
				return true
			}
		}
		return containsLabels(t.Row)
	}
	return false
}

func widen(t types.Type) types.Type {
	switch t := types.RealType(t).(type) {
	case *types.Label:
		return types.String
	case *types.Array:
		return types.NewArray(widen(t.Elem))
	case *types.Stream:
		return types.NewStream(widen(t.Elem))
	case *types.Dict:
		return types.NewDict(widen(t.Key), widen(t.Value))
	case *types.Func:
		params := make([]types.Param, len(t.Params))
		for i, param := range t.Params {
			param.Type = widen(param.Type)
			params[i] = param
		}
		return types.NewFunc(params, widen(t.Return))
	case *types.Record:
		b := types.NewTypeMapBuilder()
		t.Fields.Range(func(label string, ft types.Type) bool {
			b.Set(label, widen(ft))
			return true
		})
		var dynamic []types.DynamicField
		for _, f := range t.Dynamic {
			dynamic = append(dynamic, types.DynamicField{Label: f.Label, Type: widen(f.Type)})
		}
		return types.NewRecord(b.Build(), dynamic, widen(t.Row))
	default:
		return t
	}
}
