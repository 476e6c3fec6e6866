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
	"strconv"
	"strings"
	"sync"

	"github.com/Mohamedkrs/flux/internal/scanner"
)

var printerPool = sync.Pool{
	New: func() interface{} {
		return &typePrinter{
			names:    make(map[*Var]string, 16),
			reserved: make(map[string]struct{}),
		}
	},
}

func newTypePrinter() *typePrinter { return printerPool.Get().(*typePrinter) }

func (p *typePrinter) Release() {
	for k := range p.names {
		delete(p.names, k)
	}
	for k := range p.reserved {
		delete(p.reserved, k)
	}
	p.next = 0
	p.kinded = p.kinded[:0]
	p.sb.Reset()
	printerPool.Put(p)
}

type typePrinter struct {
	names map[*Var]string
	// literal record labels; type-variables are never given these names
	reserved map[string]struct{}
	next     int
	kinded   []*Var
	sb       strings.Builder
}

// TypeString returns the canonical string representation of a Type. Type-variables are
// named by order of appearance. Kind constraints on free type-variables are listed in a
// trailing where-clause.
func TypeString(t Type) string {
	p := newTypePrinter()
	defer p.Release()
	p.reserveLabels(t)
	p.typeString(t)
	p.where()
	return p.sb.String()
}

// TypeStrings renders several types with a shared naming of type-variables.
func TypeStrings(ts ...Type) []string {
	p := newTypePrinter()
	defer p.Release()
	out := make([]string, len(ts))
	for _, t := range ts {
		p.reserveLabels(t)
	}
	for i, t := range ts {
		p.typeString(t)
		out[i] = p.sb.String()
		p.sb.Reset()
	}
	return out
}

// VarName returns the printed name of the i-th type-variable: A through Z, then A1, B1, etc.
func VarName(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return string(rune('A'+i%26)) + strconv.Itoa(i/26)
}

// FormatLabel quotes labels which are not identifiers.
func FormatLabel(label string) string {
	if scanner.IsIdent(label) {
		return label
	}
	return strconv.Quote(label)
}

func (p *typePrinter) varName(tv *Var) string {
	if name, ok := p.names[tv]; ok {
		return name
	}
	name := VarName(p.next)
	p.next++
	for {
		if _, ok := p.reserved[name]; !ok {
			break
		}
		name = VarName(p.next)
		p.next++
	}
	p.names[tv] = name
	if len(tv.Kinds()) > 0 {
		p.kinded = append(p.kinded, tv)
	}
	return name
}

func (p *typePrinter) reserveLabels(t Type) {
	switch t := RealType(t).(type) {
	case *Array:
		p.reserveLabels(t.Elem)
	case *Stream:
		p.reserveLabels(t.Elem)
	case *Dict:
		p.reserveLabels(t.Key)
		p.reserveLabels(t.Value)
	case *Func:
		for _, param := range t.Params {
			p.reserveLabels(param.Type)
		}
		p.reserveLabels(t.Return)
	case *Record:
		fields, dynamic, _ := FlattenRecord(t)
		fields.Range(func(label string, ft Type) bool {
			p.reserved[label] = struct{}{}
			p.reserveLabels(ft)
			return true
		})
		for _, f := range dynamic {
			p.reserveLabels(f.Type)
		}
	}
}

func (p *typePrinter) where() {
	if len(p.kinded) == 0 {
		return
	}
	p.sb.WriteString(" where ")
	for i, tv := range p.kinded {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		p.sb.WriteString(p.names[tv])
		p.sb.WriteString(": ")
		for j, k := range tv.Kinds() {
			if j > 0 {
				p.sb.WriteString(" + ")
			}
			p.sb.WriteString(k.String())
		}
	}
}

func (p *typePrinter) typeString(t Type) {
	switch t := RealType(t).(type) {
	case nil:
		p.sb.WriteString("<nil>")

	case *Var:
		p.sb.WriteString(p.varName(t))

	case *Basic:
		p.sb.WriteString(t.Name)

	case *Label:
		// Labels are strings which are known to name a field.
		p.sb.WriteString("string")

	case *Array:
		p.sb.WriteByte('[')
		p.typeString(t.Elem)
		p.sb.WriteByte(']')

	case *Stream:
		p.sb.WriteString("stream[")
		p.typeString(t.Elem)
		p.sb.WriteByte(']')

	case *Dict:
		p.sb.WriteByte('[')
		p.typeString(t.Key)
		p.sb.WriteString(": ")
		p.typeString(t.Value)
		p.sb.WriteByte(']')

	case *Func:
		p.sb.WriteByte('(')
		for i, param := range t.Params {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			if param.Optional {
				p.sb.WriteByte('?')
			}
			if param.Pipe {
				p.sb.WriteString("<-")
			}
			p.sb.WriteString(FormatLabel(param.Name))
			p.sb.WriteString(": ")
			p.typeString(param.Type)
		}
		p.sb.WriteString(") => ")
		p.typeString(t.Return)

	case *Record:
		fields, dynamic, tail := FlattenRecord(t)
		p.sb.WriteByte('{')
		switch tail := tail.(type) {
		case RowEmpty:
		case *Var:
			p.sb.WriteString(p.varName(tail))
			p.sb.WriteString(" with")
			if fields.Len()+countNamed(dynamic) > 0 {
				p.sb.WriteByte(' ')
			}
		default:
			p.typeString(tail)
			p.sb.WriteString(" with ")
		}
		i := 0
		fields.Range(func(label string, ft Type) bool {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			p.sb.WriteString(FormatLabel(label))
			p.sb.WriteString(": ")
			p.typeString(ft)
			i++
			return true
		})
		for _, f := range dynamic {
			// fields named by something other than a label are not part of the record
			if _, ok := RealType(f.Label).(*Var); !ok {
				continue
			}
			if i > 0 {
				p.sb.WriteString(", ")
			}
			p.typeString(f.Label)
			p.sb.WriteString(": ")
			p.typeString(f.Type)
			i++
		}
		p.sb.WriteByte('}')

	case RowEmpty:
		p.sb.WriteString("{}")

	case Invalid:
		p.sb.WriteString("<error>")

	default:
		p.sb.WriteString("<" + t.TypeName() + ">")
	}
}

func countNamed(dynamic []DynamicField) int {
	n := 0
	for _, f := range dynamic {
		if _, ok := RealType(f.Label).(*Var); ok {
			n++
		}
	}
	return n
}
