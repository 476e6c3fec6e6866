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

// Package feature defines opt-in language features. A Set is an immutable value which is
// passed explicitly to every operation that behaves differently when a feature is enabled.
package feature

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Flag names a single feature.
type Flag uint8

const (
	// LabelPolymorphism types string literals as labels, allowing functions to be generic
	// over which record field they operate on.
	LabelPolymorphism Flag = iota

	numFlags
)

var flagNames = [numFlags]string{
	LabelPolymorphism: "labelPolymorphism",
}

func (f Flag) String() string {
	if f < numFlags {
		return flagNames[f]
	}
	return fmt.Sprintf("Flag(%d)", uint8(f))
}

// Parse returns the flag with the given configuration name. Names are matched case-insensitively.
func Parse(name string) (Flag, error) {
	for f, n := range flagNames {
		if strings.EqualFold(n, name) {
			return Flag(f), nil
		}
	}
	return 0, fmt.Errorf("unknown feature %q", name)
}

// Set is a set of enabled features. The zero value has no features enabled.
type Set struct {
	bits uint64
}

func NewSet(flags ...Flag) Set {
	var s Set
	for _, f := range flags {
		s.bits |= 1 << f
	}
	return s
}

// ParseSet parses a comma-separated list of feature names.
func ParseSet(list string) (Set, error) {
	var s Set
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		f, err := Parse(name)
		if err != nil {
			return Set{}, err
		}
		s = s.With(f)
	}
	return s, nil
}

func (s Set) Enabled(f Flag) bool { return s.bits&(1<<f) != 0 }

// With returns a copy of s with f enabled.
func (s Set) With(f Flag) Set { return Set{bits: s.bits | 1<<f} }

// Union returns the features enabled in either set.
func (s Set) Union(other Set) Set { return Set{bits: s.bits | other.bits} }

// Flags returns the enabled flags in declaration order.
func (s Set) Flags() []Flag {
	var flags []Flag
	for f := Flag(0); f < numFlags; f++ {
		if s.Enabled(f) {
			flags = append(flags, f)
		}
	}
	return flags
}

func (s Set) String() string {
	names := make([]string, 0, numFlags)
	for _, f := range s.Flags() {
		names = append(names, f.String())
	}
	return "[" + strings.Join(names, ", ") + "]"
}

// UnmarshalYAML decodes a list of feature names.
func (s *Set) UnmarshalYAML(value *yaml.Node) error {
	var names []string
	if err := value.Decode(&names); err != nil {
		return err
	}
	*s = Set{}
	for _, name := range names {
		f, err := Parse(name)
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		*s = s.With(f)
	}
	return nil
}

// MarshalYAML encodes the set as a list of feature names.
func (s Set) MarshalYAML() (interface{}, error) {
	names := []string{}
	for _, f := range s.Flags() {
		names = append(names, f.String())
	}
	return names, nil
}
