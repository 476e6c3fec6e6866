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

// Package ast declares the syntax tree of Flux programs. Every node records its location in the
// source; expressions additionally hold the type assigned to them during inference.
package ast

import (
	"fmt"

	"github.com/Mohamedkrs/flux/types"
)

// Position is a location in source text. Line and Column are 1-based; Column counts runes.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Column) }

// Loc is a span of source text. End is exclusive.
type Loc struct {
	Start Position
	End   Position
}

func (l Loc) String() string { return l.Start.String() + "-" + l.End.String() }

// Node is implemented by all statements and expressions.
type Node interface {
	Location() Loc
}

// BaseNode holds the location of a node.
type BaseNode struct {
	Loc Loc
}

func (n *BaseNode) Location() Loc { return n.Loc }

type typed struct {
	inferred types.Type
}

// Get the inferred (or assigned) type of e.
func (e *typed) Type() types.Type {
	if e.inferred == nil {
		return nil
	}
	return types.RealType(e.inferred)
}

// Assign a type to e. Type assignments should occur indirectly, during inference.
func (e *typed) SetType(t types.Type) { e.inferred = t }

// File is a single source file.
type File struct {
	BaseNode
	Name    string
	Package *PackageClause
	Imports []*ImportDeclaration
	Body    []Stmt
}

// `package name`
type PackageClause struct {
	BaseNode
	Name *Identifier
}

// `import alias "path"`
type ImportDeclaration struct {
	BaseNode
	As   *Identifier // may be nil
	Path *StringLiteral
}

// Name returns the identifier the package is bound to: the alias, or the last element of the path.
func (d *ImportDeclaration) Name() string {
	if d.As != nil {
		return d.As.Name
	}
	path := d.Path.Value
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}

// Stmt is the base for all statements.
type Stmt interface {
	Node
	// Name of the syntax-type of the statement.
	StmtName() string
}

var (
	_ Stmt = (*VariableAssignment)(nil)
	_ Stmt = (*OptionStatement)(nil)
	_ Stmt = (*ExpressionStatement)(nil)
	_ Stmt = (*ReturnStatement)(nil)
	_ Stmt = (*BuiltinStatement)(nil)
)

// `name = init`
type VariableAssignment struct {
	BaseNode
	ID   *Identifier
	Init Expr
}

func (s *VariableAssignment) StmtName() string { return "VariableAssignment" }

// `option name = init`
type OptionStatement struct {
	BaseNode
	Assignment *VariableAssignment
}

func (s *OptionStatement) StmtName() string { return "OptionStatement" }

type ExpressionStatement struct {
	BaseNode
	Expression Expr
}

func (s *ExpressionStatement) StmtName() string { return "ExpressionStatement" }

// `return argument`
type ReturnStatement struct {
	BaseNode
	Argument Expr
}

func (s *ReturnStatement) StmtName() string { return "ReturnStatement" }

// `builtin name : signature`
type BuiltinStatement struct {
	BaseNode
	ID        *Identifier
	Signature string
}

func (s *BuiltinStatement) StmtName() string { return "BuiltinStatement" }
