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
)

// Kind is a constraint on the types a type-variable may be bound to.
type Kind uint8

const (
	Addable Kind = iota
	Subtractable
	Divisible
	Numeric
	Comparable
	Equatable
	Nullable
	Negatable
	Timeable
	Stringable
	BasicKind
	RecordKind
	LabelKind
	numKinds
)

var kindNames = [numKinds]string{
	Addable:      "Addable",
	Subtractable: "Subtractable",
	Divisible:    "Divisible",
	Numeric:      "Numeric",
	Comparable:   "Comparable",
	Equatable:    "Equatable",
	Nullable:     "Nullable",
	Negatable:    "Negatable",
	Timeable:     "Timeable",
	Stringable:   "Stringable",
	BasicKind:    "Basic",
	RecordKind:   "Record",
	LabelKind:    "Label",
}

func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// ParseKind returns the kind with the given name.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// Basic types which satisfy each kind. Record and Label are checked structurally.
var basicKinds = [numKinds][]*Basic{
	Addable:      {Int, Uint, Float, String, Duration},
	Subtractable: {Int, Uint, Float, Duration},
	Divisible:    {Int, Uint, Float, Duration},
	Numeric:      {Int, Uint, Float},
	Comparable:   {Int, Uint, Float, String, Duration, Time},
	Equatable:    {Bool, Int, Uint, Float, String, Duration, Time, Bytes},
	Nullable:     {Bool, Int, Uint, Float, String, Duration, Time, Bytes},
	Negatable:    {Int, Float, Duration},
	Timeable:     {Time, Duration},
	Stringable:   {Bool, Int, Uint, Float, String, Duration, Time, Regexp},
	BasicKind:    {Bool, Int, Uint, Float, String, Duration, Time, Regexp, Bytes},
}

// Accepts reports whether the basic type b satisfies k.
func (k Kind) Accepts(b *Basic) bool {
	if k >= numKinds {
		return false
	}
	for _, candidate := range basicKinds[k] {
		if candidate.Name == b.Name {
			return true
		}
	}
	return false
}
