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
	"github.com/samber/lo"
	"golang.org/x/exp/slices"

	"github.com/Mohamedkrs/flux/types"
)

// TypeEnv is a type-environment containing mappings from identifiers to declared types, and
// from import names to packages.
//
// A type-environment cannot be used concurrently for inference; to share a type-environment
// across threads, create a new type-environment for each thread which inherits from the
// shared environment.
type TypeEnv struct {
	// Next unused type-variable id
	NextVarId int
	// Predeclared types in the parent of the current type-environment
	Parent *TypeEnv
	// Mappings from identifiers to declared types in the current type-environment
	Types map[string]types.Type
	// Packages imported into the current type-environment, by import name
	Packages map[string]*Package
}

// Create a type-environment. The new environment will inherit bindings from the parent, if the parent is not nil.
func NewTypeEnv(parent *TypeEnv) *TypeEnv {
	env := &TypeEnv{
		Parent: parent,
		Types:  make(map[string]types.Type),
	}
	if parent != nil {
		env.NextVarId = parent.NextVarId
	}
	return env
}

func (e *TypeEnv) freshId() int {
	e.NextVarId++
	return e.NextVarId
}

// Create a unbound type-variable with a unique id at a given binding-level.
func (e *TypeEnv) NewVar(level int) *types.Var { return types.NewVar(e.freshId(), level) }

// Create a generic type-variable with a unique id.
func (e *TypeEnv) NewGenericVar() *types.Var { return types.NewGenericVar(e.freshId()) }

// Declare a type for an identifier within the type environment.
//
// Type-variables will be generalized.
func (e *TypeEnv) Declare(name string, t types.Type) {
	e.Types[name] = types.Generalize(t)
}

// DeclareSignature parses a type signature, such as
// `(<-tables: stream[A], ?column: C) => stream[{C: string}] where A: Record, C: Label`,
// and declares it for an identifier within the type environment.
func (e *TypeEnv) DeclareSignature(name, signature string) error {
	t, err := types.ParseWith(signature, e.NewGenericVar)
	if err != nil {
		return err
	}
	e.Types[name] = t
	return nil
}

// Declare a type for an identifier within the type environment.
//
// Type-variables will not be generalized.
func (e *TypeEnv) Assign(name string, t types.Type) { e.Types[name] = t }

// Remove the assigned type for an identifier within the type environment. Parent environment(s) will not be affected,
// and the identifier's type will still be visible if defined in a parent environment.
func (e *TypeEnv) Remove(name string) { delete(e.Types, name) }

// Lookup the type for an identifier in the environment or its parent environment(s).
func (e *TypeEnv) Lookup(name string) types.Type {
	if t, ok := e.Types[name]; ok {
		return t
	}
	if e.Parent == nil {
		return nil
	}
	return e.Parent.Lookup(name)
}

// Import binds a package to an import name within the type environment.
func (e *TypeEnv) Import(name string, pkg *Package) {
	if e.Packages == nil {
		e.Packages = make(map[string]*Package)
	}
	e.Packages[name] = pkg
}

// Lookup an imported package in the environment or its parent environment(s). Identifiers declared
// in an inner environment hide packages imported in outer environments.
func (e *TypeEnv) LookupPackage(name string) *Package {
	if pkg, ok := e.Packages[name]; ok {
		return pkg
	}
	if _, ok := e.Types[name]; ok || e.Parent == nil {
		return nil
	}
	return e.Parent.LookupPackage(name)
}

// Names returns every identifier visible in the environment, sorted.
func (e *TypeEnv) Names() []string {
	var names []string
	for env := e; env != nil; env = env.Parent {
		names = append(names, lo.Keys(env.Types)...)
	}
	names = lo.Uniq(names)
	slices.Sort(names)
	return names
}
