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

package ast

// CopyFile returns a deep copy of f, including assigned types.
func CopyFile(f *File) *File {
	next := &File{BaseNode: f.BaseNode, Name: f.Name}
	if f.Package != nil {
		next.Package = &PackageClause{BaseNode: f.Package.BaseNode, Name: copyIdent(f.Package.Name)}
	}
	for _, imp := range f.Imports {
		next.Imports = append(next.Imports, &ImportDeclaration{
			BaseNode: imp.BaseNode,
			As:       copyIdent(imp.As),
			Path:     CopyExpr(imp.Path).(*StringLiteral),
		})
	}
	next.Body = copyStmts(f.Body)
	return next
}

func copyIdent(id *Identifier) *Identifier {
	if id == nil {
		return nil
	}
	cp := *id
	return &cp
}

func copyStmts(stmts []Stmt) []Stmt {
	if stmts == nil {
		return nil
	}
	next := make([]Stmt, len(stmts))
	for i, s := range stmts {
		next[i] = CopyStmt(s)
	}
	return next
}

func CopyStmt(s Stmt) Stmt {
	switch s := s.(type) {
	case *VariableAssignment:
		return &VariableAssignment{s.BaseNode, copyIdent(s.ID), CopyExpr(s.Init)}

	case *OptionStatement:
		return &OptionStatement{s.BaseNode, CopyStmt(s.Assignment).(*VariableAssignment)}

	case *ExpressionStatement:
		return &ExpressionStatement{s.BaseNode, CopyExpr(s.Expression)}

	case *ReturnStatement:
		return &ReturnStatement{s.BaseNode, CopyExpr(s.Argument)}

	case *BuiltinStatement:
		return &BuiltinStatement{s.BaseNode, copyIdent(s.ID), s.Signature}
	}
	panic("unknown statement type: " + s.StmtName())
}

func copyProperties(props []*Property) []*Property {
	if props == nil {
		return nil
	}
	next := make([]*Property, len(props))
	for i, p := range props {
		cp := *p
		if p.Value != nil {
			cp.Value = CopyExpr(p.Value)
		}
		next[i] = &cp
	}
	return next
}

func CopyExpr(e Expr) Expr {
	switch e := e.(type) {
	case nil:
		return nil

	case *Identifier:
		return copyIdent(e)

	case *IntegerLiteral:
		cp := *e
		return &cp

	case *FloatLiteral:
		cp := *e
		return &cp

	case *StringLiteral:
		cp := *e
		return &cp

	case *BooleanLiteral:
		cp := *e
		return &cp

	case *DurationLiteral:
		cp := *e
		return &cp

	case *DateTimeLiteral:
		cp := *e
		return &cp

	case *BadExpr:
		cp := *e
		return &cp

	case *ArrayExpr:
		elems := make([]Expr, len(e.Elements))
		for i, el := range e.Elements {
			elems[i] = CopyExpr(el)
		}
		return &ArrayExpr{e.BaseNode, e.typed, elems}

	case *DictExpr:
		items := make([]DictItem, len(e.Items))
		for i, item := range e.Items {
			items[i] = DictItem{CopyExpr(item.Key), CopyExpr(item.Val)}
		}
		return &DictExpr{e.BaseNode, e.typed, items}

	case *ObjectExpr:
		return &ObjectExpr{e.BaseNode, e.typed, copyIdent(e.With), copyProperties(e.Properties)}

	case *MemberExpr:
		return &MemberExpr{e.BaseNode, e.typed, CopyExpr(e.Object), e.Property, e.Bracket}

	case *IndexExpr:
		return &IndexExpr{e.BaseNode, e.typed, CopyExpr(e.Array), CopyExpr(e.Index)}

	case *CallExpr:
		return &CallExpr{e.BaseNode, e.typed, CopyExpr(e.Callee), copyProperties(e.Arguments), CopyExpr(e.Pipe), e.inferredFunc}

	case *PipeExpr:
		call := CopyExpr(e.Call).(*CallExpr)
		// the piped argument is shared with the call
		call.Pipe = CopyExpr(e.Argument)
		return &PipeExpr{e.BaseNode, e.typed, call.Pipe, call}

	case *FunctionExpr:
		params := make([]*Parameter, len(e.Params))
		for i, p := range e.Params {
			params[i] = &Parameter{p.BaseNode, copyIdent(p.Key), CopyExpr(p.Default), p.Pipe}
		}
		var body Node
		switch b := e.Body.(type) {
		case *Block:
			body = &Block{b.BaseNode, copyStmts(b.Body)}
		case Expr:
			body = CopyExpr(b)
		}
		return &FunctionExpr{e.BaseNode, e.typed, params, body}

	case *BinaryExpr:
		return &BinaryExpr{e.BaseNode, e.typed, e.Operator, CopyExpr(e.Left), CopyExpr(e.Right)}

	case *UnaryExpr:
		return &UnaryExpr{e.BaseNode, e.typed, e.Operator, CopyExpr(e.Argument)}

	case *LogicalExpr:
		return &LogicalExpr{e.BaseNode, e.typed, e.Operator, CopyExpr(e.Left), CopyExpr(e.Right)}

	case *ConditionalExpr:
		return &ConditionalExpr{e.BaseNode, e.typed, CopyExpr(e.Test), CopyExpr(e.Consequent), CopyExpr(e.Alternate)}
	}
	panic("unknown expression type: " + e.ExprName())
}
