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

// Package construct builds types and syntax trees directly, without parsing.
package construct

import (
	"github.com/Mohamedkrs/flux/ast"
	"github.com/Mohamedkrs/flux/types"
)

// Types

// Create a new type-variable with the given id and binding-level.
func TVar(id, level int, kinds ...types.Kind) *types.Var {
	tv := types.NewVar(id, level)
	for _, k := range kinds {
		tv.AddKind(k)
	}
	return tv
}

// Basic type: `int`, `string`, etc
func TBasic(name string) *types.Basic {
	b, _ := types.LookupBasic(name)
	return b
}

// Label literal: `"a"`
func TLabel(name string) *types.Label {
	return &types.Label{Name: name}
}

// Array type: `[int]`
func TArray(elem types.Type) *types.Array {
	return types.NewArray(elem)
}

// Stream type: `stream[{a: int}]`
func TStream(elem types.Type) *types.Stream {
	return types.NewStream(elem)
}

// Dictionary type: `[string: int]`
func TDict(key, value types.Type) *types.Dict {
	return types.NewDict(key, value)
}

// Function type: `(a: int, ?b: string) => int`
func TFunc(ret types.Type, params ...types.Param) *types.Func {
	return types.NewFunc(params, ret)
}

// Required parameter: `a: int`
func TParam(name string, t types.Type) types.Param {
	return types.Param{Name: name, Type: t}
}

// Optional parameter: `?a: int`
func TOptional(name string, t types.Type) types.Param {
	return types.Param{Name: name, Type: t, Optional: true}
}

// Pipe parameter: `<-tables: [A]`
func TPipe(name string, t types.Type) types.Param {
	return types.Param{Name: name, Type: t, Pipe: true}
}

// Record type: `{a: int}` when row is nil, or `{A with a: int}`
func TRecord(fields map[string]types.Type, row types.Type) *types.Record {
	if row == nil {
		row = types.RowEmpty{}
	}
	return types.NewRecord(types.NewFlatTypeMap(fields), nil, row)
}

// Record type with a field named by a label variable: `{A with B: C}`
func TDynamicRecord(label, t, row types.Type) *types.Record {
	return types.NewRecord(types.EmptyTypeMap, []types.DynamicField{{Label: label, Type: t}}, row)
}

// Expressions:

// Identifier: `x`
func Ident(name string) *ast.Identifier {
	return &ast.Identifier{Name: name}
}

// Integer literal: `1`
func Int(v int64) *ast.IntegerLiteral {
	return &ast.IntegerLiteral{Value: v}
}

// Float literal: `1.5`
func Float(v float64) *ast.FloatLiteral {
	return &ast.FloatLiteral{Value: v}
}

// String literal: `"a"`
func String(v string) *ast.StringLiteral {
	return &ast.StringLiteral{Value: v}
}

// Array: `[a, b]`
func Array(elems ...ast.Expr) *ast.ArrayExpr {
	return &ast.ArrayExpr{Elements: elems}
}

// Object: `{a: 1, b: 2}`
func Object(props ...*ast.Property) *ast.ObjectExpr {
	return &ast.ObjectExpr{Properties: props}
}

// Object extension: `{r with a: 1}`
func With(record string, props ...*ast.Property) *ast.ObjectExpr {
	return &ast.ObjectExpr{With: Ident(record), Properties: props}
}

// Property or named argument: `a: 1`
func Prop(key string, value ast.Expr) *ast.Property {
	return &ast.Property{Key: key, Value: value}
}

// Member access: `r.a`
func Member(object ast.Expr, property string) *ast.MemberExpr {
	return &ast.MemberExpr{Object: object, Property: property}
}

// Call: `f(a: 1)`
func Call(callee ast.Expr, args ...*ast.Property) *ast.CallExpr {
	return &ast.CallExpr{Callee: callee, Arguments: args}
}

// Pipe: `x |> f(a: 1)`
func Pipe(arg ast.Expr, call *ast.CallExpr) *ast.PipeExpr {
	call.Pipe = arg
	return &ast.PipeExpr{Argument: arg, Call: call}
}

// Function: `(x, y) => body`
func Func(params []string, body ast.Expr) *ast.FunctionExpr {
	f := &ast.FunctionExpr{Body: body}
	for _, name := range params {
		f.Params = append(f.Params, &ast.Parameter{Key: Ident(name)})
	}
	return f
}

// Function with a pipe parameter: `(<-tables, fn) => body`
func PipeFunc(pipe string, params []string, body ast.Expr) *ast.FunctionExpr {
	f := Func(params, body)
	f.Params = append([]*ast.Parameter{{Key: Ident(pipe), Pipe: true}}, f.Params...)
	return f
}

// Binary operation: `a + b`
func Binary(op ast.Operator, left, right ast.Expr) *ast.BinaryExpr {
	return &ast.BinaryExpr{Operator: op, Left: left, Right: right}
}

// Conditional: `if test then a else b`
func If(test, consequent, alternate ast.Expr) *ast.ConditionalExpr {
	return &ast.ConditionalExpr{Test: test, Consequent: consequent, Alternate: alternate}
}

// Statements:

// Assignment: `x = init`
func Assign(name string, init ast.Expr) *ast.VariableAssignment {
	return &ast.VariableAssignment{ID: Ident(name), Init: init}
}

// File containing the given statements.
func File(name string, body ...ast.Stmt) *ast.File {
	return &ast.File{Name: name, Body: body}
}
