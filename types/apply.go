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
	"github.com/hashicorp/go-set/v2"
	"golang.org/x/exp/slices"
)

// Apply returns a copy of t with every linked type-variable replaced by the type it is bound to,
// and every nested record flattened. Unbound and generic type-variables are kept. Applying the
// result again yields an equal type.
func Apply(t Type) Type {
	switch t := RealType(t).(type) {
	case *Array:
		return NewArray(Apply(t.Elem))
	case *Stream:
		return NewStream(Apply(t.Elem))
	case *Dict:
		return NewDict(Apply(t.Key), Apply(t.Value))
	case *Func:
		params := make([]Param, len(t.Params))
		for i, param := range t.Params {
			param.Type = Apply(param.Type)
			params[i] = param
		}
		return NewFunc(params, Apply(t.Return))
	case *Record:
		fields, dynamic, tail := FlattenRecord(t)
		b := NewTypeMapBuilder()
		fields.Range(func(label string, ft Type) bool {
			b.Set(label, Apply(ft))
			return true
		})
		var applied []DynamicField
		for _, f := range dynamic {
			applied = append(applied, DynamicField{Label: Apply(f.Label), Type: Apply(f.Type)})
		}
		return NewRecord(b.Build(), applied, tail)
	default:
		return t
	}
}

// FreeVars returns the unbound type-variables in t.
func FreeVars(t Type) *set.Set[*Var] {
	vars := set.New[*Var](8)
	visitVars(t, func(tv *Var) {
		if tv.IsUnboundVar() {
			vars.Insert(tv)
		}
	})
	return vars
}

// GenericVars returns the generic type-variables in t, in order of appearance.
func GenericVars(t Type) []*Var {
	var vars []*Var
	visitVars(t, func(tv *Var) {
		if tv.IsGenericVar() && !slices.Contains(vars, tv) {
			vars = append(vars, tv)
		}
	})
	return vars
}

// visitVars calls f for each unlinked type-variable in t, in printing order.
func visitVars(t Type, f func(*Var)) {
	switch t := RealType(t).(type) {
	case *Var:
		f(t)
	case *Array:
		visitVars(t.Elem, f)
	case *Stream:
		visitVars(t.Elem, f)
	case *Dict:
		visitVars(t.Key, f)
		visitVars(t.Value, f)
	case *Func:
		for _, param := range t.Params {
			visitVars(param.Type, f)
		}
		visitVars(t.Return, f)
	case *Record:
		fields, dynamic, tail := FlattenRecord(t)
		visitVars(tail, f)
		fields.Range(func(_ string, ft Type) bool {
			visitVars(ft, f)
			return true
		})
		for _, field := range dynamic {
			visitVars(field.Label, f)
			visitVars(field.Type, f)
		}
	}
}

// Equal reports whether a and b are the same type up to a consistent renaming of type-variables.
// Kind constraints of corresponding type-variables must match. Labels compare equal to string.
func Equal(a, b Type) bool {
	e := equality{ab: make(map[*Var]*Var), ba: make(map[*Var]*Var)}
	return e.equal(a, b)
}

type equality struct {
	ab, ba map[*Var]*Var
}

func (e *equality) equal(a, b Type) bool {
	a, b = RealType(a), RealType(b)
	if _, ok := a.(*Label); ok {
		a = String
	}
	if _, ok := b.(*Label); ok {
		b = String
	}
	switch a := a.(type) {
	case *Var:
		b, ok := b.(*Var)
		if !ok {
			return false
		}
		if mapped, ok := e.ab[a]; ok {
			return mapped == b
		}
		if _, ok := e.ba[b]; ok {
			return false
		}
		if !slices.Equal(a.Kinds(), b.Kinds()) {
			return false
		}
		e.ab[a], e.ba[b] = b, a
		return true
	case *Basic:
		b, ok := b.(*Basic)
		return ok && a.Name == b.Name
	case *Array:
		b, ok := b.(*Array)
		return ok && e.equal(a.Elem, b.Elem)
	case *Stream:
		b, ok := b.(*Stream)
		return ok && e.equal(a.Elem, b.Elem)
	case *Dict:
		b, ok := b.(*Dict)
		return ok && e.equal(a.Key, b.Key) && e.equal(a.Value, b.Value)
	case *Func:
		b, ok := b.(*Func)
		if !ok || len(a.Params) != len(b.Params) {
			return false
		}
		for _, pa := range a.Params {
			pb := b.Param(pa.Name)
			if pb == nil || pa.Optional != pb.Optional || pa.Pipe != pb.Pipe || !e.equal(pa.Type, pb.Type) {
				return false
			}
		}
		return e.equal(a.Return, b.Return)
	case *Record:
		b, ok := b.(*Record)
		if !ok {
			return false
		}
		af, ad, at := FlattenRecord(a)
		bf, bd, bt := FlattenRecord(b)
		if af.Len() != bf.Len() || len(ad) != len(bd) || !e.equal(at, bt) {
			return false
		}
		eq := true
		af.Range(func(label string, ft Type) bool {
			other, ok := bf.Get(label)
			eq = ok && e.equal(ft, other)
			return eq
		})
		if !eq {
			return false
		}
		for i := range ad {
			if !e.equal(ad[i].Label, bd[i].Label) || !e.equal(ad[i].Type, bd[i].Type) {
				return false
			}
		}
		return true
	case RowEmpty:
		_, ok := b.(RowEmpty)
		return ok
	case Invalid:
		_, ok := b.(Invalid)
		return ok
	}
	return false
}
