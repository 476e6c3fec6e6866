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
	"cmp"

	"github.com/hashicorp/go-set/v2"
)

// Type-variable
type Var struct {
	kinds *set.TreeSet[Kind]
	link  Type
	id    int32
	level int32
}

// Instance of a type-variable
type VarType int

const (
	// Unbound type-variable
	UnboundVar VarType = iota
	// Linked type-variable
	LinkVar
	// Generic type-variable
	GenericVar
)

// Create a new type-variable with the given id and binding-level.
func NewVar(id, level int) *Var {
	return &Var{id: int32(id), level: int32(level)}
}

// Create a new generic type-variable.
func NewGenericVar(id int) *Var {
	return &Var{id: int32(id), level: GenericVarLevel}
}

// VarType indicates whether the type-variable is linked, unbound, or generic.
func (tv *Var) VarType() VarType {
	switch tv.level {
	case LinkVarLevel:
		return LinkVar
	case GenericVarLevel:
		return GenericVar
	default:
		return UnboundVar
	}
}

// Id returns the identifier of the type-variable. Ids are unique within a chain of
// type-environments and the inference passes over it; identity is by pointer.
func (tv *Var) Id() int { return int(tv.id) }

// Level returns the adjusted binding-level of the type-variable.
func (tv *Var) Level() int { return int(tv.level) }

// Link returns the type which the type-variable is bound to, if the type-variable is bound.
func (tv *Var) Link() Type { return tv.link }

func (tv *Var) IsUnboundVar() bool { return tv.level != LinkVarLevel && tv.level != GenericVarLevel }
func (tv *Var) IsLinkVar() bool    { return tv.level == LinkVarLevel }
func (tv *Var) IsGenericVar() bool { return tv.level == GenericVarLevel }

// Set the unique identifier of the type-variable.
func (tv *Var) SetId(id int) { tv.id = int32(id) }

// Set the adjusted binding-level of the type-variable.
func (tv *Var) SetLevel(level int) { tv.level = int32(level) }

// Set the type which the type-variable is bound to. Kind constraints are checked by the caller.
func (tv *Var) SetLink(t Type) { tv.link, tv.level = t, LinkVarLevel }

// Set the binding-level of the type-variable to the generic level.
func (tv *Var) SetGeneric() { tv.level = GenericVarLevel }

// Flatten a chain of linked type-variables.
func (tv *Var) Flatten() {
	if tv.IsLinkVar() {
		tv.link = RealType(tv.link)
	}
}

// Kinds returns the kind constraints of the type-variable, in a stable order.
func (tv *Var) Kinds() []Kind {
	if tv.kinds == nil || tv.kinds.Empty() {
		return nil
	}
	return tv.kinds.Slice()
}

// HasKind reports whether the type-variable is constrained by k.
func (tv *Var) HasKind(k Kind) bool { return tv.kinds != nil && tv.kinds.Contains(k) }

// Add a kind constraint. Kind sets only grow.
func (tv *Var) AddKind(k Kind) {
	if tv.kinds == nil {
		tv.kinds = set.NewTreeSet[Kind](cmp.Compare[Kind])
	}
	tv.kinds.Insert(k)
}

// Add a set of kind constraints.
func (tv *Var) AddKinds(ks []Kind) {
	for _, k := range ks {
		tv.AddKind(k)
	}
}
