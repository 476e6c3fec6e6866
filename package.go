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

package flux

import (
	"path"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"

	"github.com/Mohamedkrs/flux/types"
)

// Package is the exported type-environment of an importable package.
type Package struct {
	Path string
	Env  *TypeEnv
}

// NewPackage creates a package from type signatures of its members.
func NewPackage(path string, signatures map[string]string) (*Package, error) {
	env := NewTypeEnv(nil)
	names := lo.Keys(signatures)
	slices.Sort(names)
	for _, name := range names {
		if err := env.DeclareSignature(name, signatures[name]); err != nil {
			return nil, &SignatureError{Name: path + "." + name, Err: err}
		}
	}
	return &Package{Path: path, Env: env}, nil
}

// Name is the default import name of the package: the last element of its path.
func (p *Package) Name() string { return path.Base(p.Path) }

// Member returns the declared type of an exported member, or nil.
func (p *Package) Member(name string) types.Type { return p.Env.Lookup(name) }

// Importer resolves import paths to packages.
type Importer interface {
	Import(path string) (*Package, error)
}

// PackageMap is an Importer over a fixed set of packages, keyed by path.
type PackageMap map[string]*Package

func (m PackageMap) Import(path string) (*Package, error) {
	if pkg, ok := m[path]; ok {
		return pkg, nil
	}
	return nil, types.NewNotFoundError(path)
}

// Add registers a package under its path.
func (m PackageMap) Add(pkg *Package) { m[pkg.Path] = pkg }

// SignatureError reports a declared signature which could not be parsed.
type SignatureError struct {
	Name string
	Err  error
}

func (e *SignatureError) Error() string { return e.Name + ": " + e.Err.Error() }

func (e *SignatureError) Unwrap() error { return e.Err }
