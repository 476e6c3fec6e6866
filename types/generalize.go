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

// Generalize all unbound type-variables in t.
func Generalize(t Type) Type { return GeneralizeAtLevel(TopLevel-1, t) }

// GeneralizeAtLevel generalizes all unbound type-variables in t whose binding-level is greater
// than level. Composite types containing generalized type-variables are flagged, so instantiation
// may skip the rest.
func GeneralizeAtLevel(level int, t Type) Type {
	t = RealType(t)
	generalize(level, t)
	return t
}

func generalize(level int, t Type) bool {
	switch t := t.(type) {
	case *Var:
		switch {
		case t.IsLinkVar():
			return generalize(level, t.Link())
		case t.IsGenericVar():
			return true
		default:
			// See "Efficient Generalization with Levels" (Oleg Kiselyov) -- http://okmij.org/ftp/ML/generalization.html#levels
			//
			// If the current level is less than the type-variable's level, a let-binding where the type-variable was instantiated
			// is being generalized:
			if t.Level() > level {
				t.SetGeneric()
				return true
			}
			return false
		}

	case *Array:
		if generalize(level, t.Elem) {
			t.Flags |= ContainsGenericVars
		}
		return t.IsGeneric()

	case *Stream:
		if generalize(level, t.Elem) {
			t.Flags |= ContainsGenericVars
		}
		return t.IsGeneric()

	case *Dict:
		k := generalize(level, t.Key)
		v := generalize(level, t.Value)
		if k || v {
			t.Flags |= ContainsGenericVars
		}
		return t.IsGeneric()

	case *Func:
		generic := false
		for _, param := range t.Params {
			if generalize(level, param.Type) {
				generic = true
			}
		}
		if generalize(level, t.Return) {
			generic = true
		}
		if generic {
			t.Flags |= ContainsGenericVars
		}
		return t.IsGeneric()

	case *Record:
		generic := false
		t.Fields.Range(func(_ string, ft Type) bool {
			if generalize(level, ft) {
				generic = true
			}
			return true
		})
		for _, f := range t.Dynamic {
			l := generalize(level, f.Label)
			v := generalize(level, f.Type)
			if l || v {
				generic = true
			}
		}
		if generalize(level, t.Row) {
			generic = true
		}
		if generic {
			t.Flags |= ContainsGenericVars
		}
		return t.IsGeneric()
	}
	return false
}
