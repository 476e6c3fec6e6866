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
	"github.com/Mohamedkrs/flux/ast"
	"github.com/Mohamedkrs/flux/types"
)

// Binding is a top-level identifier and its generalized type.
type Binding struct {
	Name string
	Type types.Type
	// Stmt is the statement which declared the binding.
	Stmt ast.Stmt
}

// Program is the result of inferring a file: the annotated file and its top-level bindings,
// in file order. A name bound more than once appears once per binding.
type Program struct {
	File     *ast.File
	Env      *TypeEnv
	Bindings []*Binding
}

// Lookup returns the type of the last binding of name, or nil.
func (p *Program) Lookup(name string) types.Type {
	for i := len(p.Bindings) - 1; i >= 0; i-- {
		if p.Bindings[i].Name == name {
			return p.Bindings[i].Type
		}
	}
	return nil
}

// TypeStrings maps each bound name to its printed type.
func (p *Program) TypeStrings() map[string]string {
	m := make(map[string]string, len(p.Bindings))
	for _, b := range p.Bindings {
		m[b.Name] = types.TypeString(b.Type)
	}
	return m
}

// ExprAt returns the innermost expression whose location contains the byte offset, or nil.
func (p *Program) ExprAt(offset int) ast.Expr {
	var found ast.Expr
	ast.Walk(p.File, func(n ast.Node) bool {
		if _, ok := n.(*ast.File); !ok {
			loc := n.Location()
			if offset < loc.Start.Offset || offset >= loc.End.Offset {
				return false
			}
		}
		if e, ok := n.(ast.Expr); ok {
			found = e
		}
		return true
	})
	return found
}

// Export returns the program's top-level bindings as an importable package.
func (p *Program) Export(path string) *Package {
	env := NewTypeEnv(nil)
	for _, b := range p.Bindings {
		env.Assign(b.Name, b.Type)
	}
	return &Package{Path: path, Env: env}
}
