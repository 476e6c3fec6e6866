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

// Special binding-levels (used as flags):
const (
	GenericVarLevel = 1<<31 - 1
	LinkVarLevel    = -1 << 31
)

// TopLevel is the binding-level of the outermost scope.
const TopLevel = 0

// Type is the base interface for all types.
type Type interface {
	TypeName() string
	IsGeneric() bool
}

// TypeFlags caches structural facts about composite types.
type TypeFlags uint8

const (
	// ContainsGenericVars is set on types which must be copied during instantiation.
	ContainsGenericVars TypeFlags = 1 << iota
)

func (t *Var) TypeName() string    { return "Var" }
func (t *Basic) TypeName() string  { return "Basic" }
func (t *Label) TypeName() string  { return "Label" }
func (t *Array) TypeName() string  { return "Array" }
func (t *Stream) TypeName() string { return "Stream" }
func (t *Dict) TypeName() string   { return "Dict" }
func (t *Func) TypeName() string   { return "Func" }
func (t *Record) TypeName() string { return "Record" }
func (t RowEmpty) TypeName() string { return "RowEmpty" }
func (t Invalid) TypeName() string  { return "Invalid" }

func (t *Var) IsGeneric() bool {
	r := RealType(t)
	if tv, ok := r.(*Var); ok {
		return tv.IsGenericVar()
	}
	return r.IsGeneric()
}

func (t *Basic) IsGeneric() bool  { return false }
func (t *Label) IsGeneric() bool  { return false }
func (t *Array) IsGeneric() bool  { return t.Flags&ContainsGenericVars != 0 }
func (t *Stream) IsGeneric() bool { return t.Flags&ContainsGenericVars != 0 }
func (t *Dict) IsGeneric() bool   { return t.Flags&ContainsGenericVars != 0 }
func (t *Func) IsGeneric() bool   { return t.Flags&ContainsGenericVars != 0 }
func (t *Record) IsGeneric() bool { return t.Flags&ContainsGenericVars != 0 }
func (t RowEmpty) IsGeneric() bool { return false }
func (t Invalid) IsGeneric() bool  { return false }

// Basic type: `int`, `string`, etc
type Basic struct {
	Name string
}

var (
	Bool     = &Basic{"bool"}
	Int      = &Basic{"int"}
	Uint     = &Basic{"uint"}
	Float    = &Basic{"float"}
	String   = &Basic{"string"}
	Duration = &Basic{"duration"}
	Time     = &Basic{"time"}
	Regexp   = &Basic{"regexp"}
	Bytes    = &Basic{"bytes"}
)

var basicTypes = map[string]*Basic{
	"bool":     Bool,
	"int":      Int,
	"uint":     Uint,
	"float":    Float,
	"string":   String,
	"duration": Duration,
	"time":     Time,
	"regexp":   Regexp,
	"bytes":    Bytes,
}

// LookupBasic returns the basic type with the given name.
func LookupBasic(name string) (*Basic, bool) {
	b, ok := basicTypes[name]
	return b, ok
}

// Label is the type of a string literal which names a record field.
type Label struct {
	Name string
}

// Array type: `[T]`
type Array struct {
	Elem  Type
	Flags TypeFlags
}

// Stream type: `stream[T]`
type Stream struct {
	Elem  Type
	Flags TypeFlags
}

// Dictionary type: `[K: V]`
type Dict struct {
	Key   Type
	Value Type
	Flags TypeFlags
}

// Param is a named function parameter.
type Param struct {
	Name     string
	Type     Type
	Optional bool
	// Pipe marks the receiver bound by `|>`.
	Pipe bool
}

// Function type: `(a: int, ?b: string, <-tables: [A]) => A`
type Func struct {
	Params []Param
	Return Type
	Flags  TypeFlags
}

// Param returns the parameter with the given name, or nil.
func (t *Func) Param(name string) *Param {
	for i := range t.Params {
		if t.Params[i].Name == name {
			return &t.Params[i]
		}
	}
	return nil
}

// PipeParam returns the pipe receiver, or nil.
func (t *Func) PipeParam() *Param {
	for i := range t.Params {
		if t.Params[i].Pipe {
			return &t.Params[i]
		}
	}
	return nil
}

// DynamicField is a record field whose name is given by a type (a Label-kinded variable, until resolved).
type DynamicField struct {
	Label Type
	Type  Type
}

// Record type: `{a: int}` (closed) or `{A with a: int}` (open)
//
// Row is RowEmpty for closed records, an unbound type-variable for open records, or
// a nested record (or a type-variable linked to one) which extends the fields.
type Record struct {
	Fields  TypeMap
	Dynamic []DynamicField
	Row     Type
	Flags   TypeFlags
}

// Closed row tail: `{...}`
type RowEmpty struct{}

// Invalid is assigned to expressions which failed to type-check. It unifies with any type.
type Invalid struct{}

// Get the underlying type for a chain of linked type-variables, when applicable.
func RealType(t Type) Type {
	for {
		tv, ok := t.(*Var)
		if !ok || !tv.IsLinkVar() {
			return t
		}
		t = tv.Link()
	}
}

func flagsOf(ts ...Type) TypeFlags {
	for _, t := range ts {
		if t != nil && t.IsGeneric() {
			return ContainsGenericVars
		}
	}
	return 0
}

func NewArray(elem Type) *Array { return &Array{Elem: elem, Flags: flagsOf(elem)} }

func NewStream(elem Type) *Stream { return &Stream{Elem: elem, Flags: flagsOf(elem)} }

func NewDict(key, value Type) *Dict { return &Dict{Key: key, Value: value, Flags: flagsOf(key, value)} }

func NewFunc(params []Param, ret Type) *Func {
	f := &Func{Params: params, Return: ret, Flags: flagsOf(ret)}
	for _, p := range params {
		f.Flags |= flagsOf(p.Type)
	}
	return f
}

// NewRecord creates a record type. A nil row creates a closed record.
func NewRecord(fields TypeMap, dynamic []DynamicField, row Type) *Record {
	if row == nil {
		row = RowEmpty{}
	}
	if fields.m == nil {
		fields = EmptyTypeMap
	}
	r := &Record{Fields: fields, Dynamic: dynamic, Row: row, Flags: flagsOf(row)}
	fields.Range(func(_ string, t Type) bool {
		r.Flags |= flagsOf(t)
		return true
	})
	for _, f := range dynamic {
		r.Flags |= flagsOf(f.Label, f.Type)
	}
	return r
}

// NewClosedRecord creates a closed record with the given fields.
func NewClosedRecord(fields map[string]Type) *Record {
	return NewRecord(NewFlatTypeMap(fields), nil, nil)
}
