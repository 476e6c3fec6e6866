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

// FlattenRecord collects the fields of a chain of nested records. Fields of outer records
// hide fields of the same label in nested records. Dynamic fields whose label has resolved
// to a Label are returned as concrete fields; other dynamic fields are returned in order.
// The returned tail is the first row which is not a record.
func FlattenRecord(r *Record) (TypeMap, []DynamicField, Type) {
	var (
		b       = r.Fields.Builder()
		dynamic []DynamicField
		tail    Type
	)
	for {
		for _, f := range r.Dynamic {
			if l, ok := RealType(f.Label).(*Label); ok {
				if _, exists := b.Get(l.Name); !exists {
					b.Set(l.Name, f.Type)
				}
				continue
			}
			dynamic = append(dynamic, f)
		}
		tail = RealType(r.Row)
		next, ok := tail.(*Record)
		if !ok {
			break
		}
		r = next
		b.Merge(r.Fields)
	}
	return b.Build(), dynamic, tail
}

// IsOpen reports whether the record's flattened tail is a type-variable.
func (t *Record) IsOpen() bool {
	_, _, tail := FlattenRecord(t)
	_, ok := tail.(*Var)
	return ok
}
