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

import (
	"github.com/Mohamedkrs/flux/types"
)

// Expr is the base for all expressions.
type Expr interface {
	Node
	// Name of the syntax-type of the expression.
	ExprName() string
	// Type returns an inferred type of an expression. Expression types are only available after type-inference.
	Type() types.Type
	// Assign a type to the expression. Type assignments should occur indirectly, during inference.
	SetType(types.Type)
}

var (
	_ Expr = (*Identifier)(nil)
	_ Expr = (*IntegerLiteral)(nil)
	_ Expr = (*FloatLiteral)(nil)
	_ Expr = (*StringLiteral)(nil)
	_ Expr = (*BooleanLiteral)(nil)
	_ Expr = (*DurationLiteral)(nil)
	_ Expr = (*DateTimeLiteral)(nil)
	_ Expr = (*ArrayExpr)(nil)
	_ Expr = (*DictExpr)(nil)
	_ Expr = (*ObjectExpr)(nil)
	_ Expr = (*MemberExpr)(nil)
	_ Expr = (*IndexExpr)(nil)
	_ Expr = (*CallExpr)(nil)
	_ Expr = (*PipeExpr)(nil)
	_ Expr = (*FunctionExpr)(nil)
	_ Expr = (*BinaryExpr)(nil)
	_ Expr = (*UnaryExpr)(nil)
	_ Expr = (*LogicalExpr)(nil)
	_ Expr = (*ConditionalExpr)(nil)
	_ Expr = (*BadExpr)(nil)
)

// Identifier: `x`
type Identifier struct {
	BaseNode
	typed
	Name string
}

func (e *Identifier) ExprName() string { return "Identifier" }

type IntegerLiteral struct {
	BaseNode
	typed
	Value int64
}

func (e *IntegerLiteral) ExprName() string { return "IntegerLiteral" }

type FloatLiteral struct {
	BaseNode
	typed
	Value float64
}

func (e *FloatLiteral) ExprName() string { return "FloatLiteral" }

// StringLiteral holds the decoded value of a double-quoted string.
type StringLiteral struct {
	BaseNode
	typed
	Value string
}

func (e *StringLiteral) ExprName() string { return "StringLiteral" }

type BooleanLiteral struct {
	BaseNode
	typed
	Value bool
}

func (e *BooleanLiteral) ExprName() string { return "BooleanLiteral" }

// DurationLiteral: `1h30m`
type DurationLiteral struct {
	BaseNode
	typed
	Text string
}

func (e *DurationLiteral) ExprName() string { return "DurationLiteral" }

// DateTimeLiteral: `2019-01-01T00:00:00Z`
type DateTimeLiteral struct {
	BaseNode
	typed
	Text string
}

func (e *DateTimeLiteral) ExprName() string { return "DateTimeLiteral" }

// ArrayExpr: `[a, b]`
type ArrayExpr struct {
	BaseNode
	typed
	Elements []Expr
}

func (e *ArrayExpr) ExprName() string { return "ArrayExpr" }

// DictItem is an entry of a dictionary literal.
type DictItem struct {
	Key Expr
	Val Expr
}

// DictExpr: `["a": 1]`, or `[:]` when empty
type DictExpr struct {
	BaseNode
	typed
	Items []DictItem
}

func (e *DictExpr) ExprName() string { return "DictExpr" }

// Property is a record property or a named call argument. For the shorthand `{a}`, Value is nil.
type Property struct {
	BaseNode
	Key    string
	KeyLoc Loc
	Value  Expr
}

// ObjectExpr: `{a: 1}` or `{r with a: 1}`
type ObjectExpr struct {
	BaseNode
	typed
	With       *Identifier // may be nil
	Properties []*Property
}

func (e *ObjectExpr) ExprName() string { return "ObjectExpr" }

// MemberExpr: `r.a` or `r["a"]`
type MemberExpr struct {
	BaseNode
	typed
	Object   Expr
	Property string
	Bracket  bool
}

func (e *MemberExpr) ExprName() string { return "MemberExpr" }

// IndexExpr: `a[0]`
type IndexExpr struct {
	BaseNode
	typed
	Array Expr
	Index Expr
}

func (e *IndexExpr) ExprName() string { return "IndexExpr" }

// CallExpr: `f(a: 1)`. The location spans the callee and the arguments, excluding any piped argument.
type CallExpr struct {
	BaseNode
	typed
	Callee    Expr
	Arguments []*Property
	// Pipe is the argument supplied by `|>`, if any.
	Pipe Expr

	inferredFunc *types.Func
}

func (e *CallExpr) ExprName() string { return "CallExpr" }

// Get the inferred (or assigned) function type called in e.
func (e *CallExpr) FuncType() *types.Func { return e.inferredFunc }

// Assign the function type called in e. Type assignments should occur indirectly, during inference.
func (e *CallExpr) SetFuncType(t *types.Func) { e.inferredFunc = t }

// PipeExpr: `argument |> call()`
type PipeExpr struct {
	BaseNode
	typed
	Argument Expr
	Call     *CallExpr
}

func (e *PipeExpr) ExprName() string { return "PipeExpr" }

// Parameter of a function literal. A parameter with a default value is optional.
type Parameter struct {
	BaseNode
	Key     *Identifier
	Default Expr // may be nil
	Pipe    bool // `<-tables`
}

// Block is the body of a function: a sequence of statements ending in a return.
type Block struct {
	BaseNode
	Body []Stmt
}

// FunctionExpr: `(a, b=1) => body`. Body is either an Expr or a *Block.
type FunctionExpr struct {
	BaseNode
	typed
	Params []*Parameter
	Body   Node
}

func (e *FunctionExpr) ExprName() string { return "FunctionExpr" }

// Get the inferred (or assigned) function type of e.
func (e *FunctionExpr) FuncType() *types.Func {
	ft, _ := e.Type().(*types.Func)
	return ft
}

// BinaryExpr: `a + b`, `a == b`, `a =~ b`
type BinaryExpr struct {
	BaseNode
	typed
	Operator Operator
	Left     Expr
	Right    Expr
}

func (e *BinaryExpr) ExprName() string { return "BinaryExpr" }

// UnaryExpr: `-a`, `not a`, `exists r.a`
type UnaryExpr struct {
	BaseNode
	typed
	Operator Operator
	Argument Expr
}

func (e *UnaryExpr) ExprName() string { return "UnaryExpr" }

// LogicalExpr: `a and b`, `a or b`
type LogicalExpr struct {
	BaseNode
	typed
	Operator Operator
	Left     Expr
	Right    Expr
}

func (e *LogicalExpr) ExprName() string { return "LogicalExpr" }

// ConditionalExpr: `if test then consequent else alternate`
type ConditionalExpr struct {
	BaseNode
	typed
	Test       Expr
	Consequent Expr
	Alternate  Expr
}

func (e *ConditionalExpr) ExprName() string { return "ConditionalExpr" }

// BadExpr stands in for an expression which failed to parse.
type BadExpr struct {
	BaseNode
	typed
	Text string
}

func (e *BadExpr) ExprName() string { return "BadExpr" }

// Operator of a binary, unary or logical expression.
type Operator int

const (
	AddOp Operator = iota
	SubOp
	MulOp
	DivOp
	ModOp
	PowOp
	EqOp
	NeqOp
	LtOp
	LteOp
	GtOp
	GteOp
	RegexEqOp
	RegexNeqOp
	AndOp
	OrOp
	NotOp
	ExistsOp
)

var operatorNames = [...]string{
	AddOp:      "+",
	SubOp:      "-",
	MulOp:      "*",
	DivOp:      "/",
	ModOp:      "%",
	PowOp:      "^",
	EqOp:       "==",
	NeqOp:      "!=",
	LtOp:       "<",
	LteOp:      "<=",
	GtOp:       ">",
	GteOp:      ">=",
	RegexEqOp:  "=~",
	RegexNeqOp: "!~",
	AndOp:      "and",
	OrOp:       "or",
	NotOp:      "not",
	ExistsOp:   "exists",
}

func (op Operator) String() string {
	if op >= 0 && int(op) < len(operatorNames) {
		return operatorNames[op]
	}
	return "?"
}
