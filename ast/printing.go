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
	"strconv"
	"strings"
)

// ExprString returns a source-like representation of an expression.
func ExprString(e Expr) string {
	var sb strings.Builder
	exprString(&sb, false, e)
	return sb.String()
}

// StmtString returns a source-like representation of a statement.
func StmtString(s Stmt) string {
	var sb strings.Builder
	stmtString(&sb, s)
	return sb.String()
}

func stmtString(sb *strings.Builder, s Stmt) {
	switch s := s.(type) {
	case *VariableAssignment:
		sb.WriteString(s.ID.Name)
		sb.WriteString(" = ")
		exprString(sb, false, s.Init)
	case *OptionStatement:
		sb.WriteString("option ")
		stmtString(sb, s.Assignment)
	case *ExpressionStatement:
		exprString(sb, false, s.Expression)
	case *ReturnStatement:
		sb.WriteString("return ")
		exprString(sb, false, s.Argument)
	case *BuiltinStatement:
		sb.WriteString("builtin ")
		sb.WriteString(s.ID.Name)
		sb.WriteString(" : ")
		sb.WriteString(s.Signature)
	}
}

func propertyKey(key string) string {
	for i, ch := range key {
		if !(ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || (i > 0 && '0' <= ch && ch <= '9')) {
			return strconv.Quote(key)
		}
	}
	if key == "" {
		return `""`
	}
	return key
}

func properties(sb *strings.Builder, props []*Property) {
	for i, p := range props {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(propertyKey(p.Key))
		if p.Value != nil {
			sb.WriteString(": ")
			exprString(sb, false, p.Value)
		}
	}
}

// simple wraps compound expressions in parentheses.
func exprString(sb *strings.Builder, simple bool, e Expr) {
	switch e := e.(type) {
	case nil:
		sb.WriteString("<nil>")

	case *Identifier:
		sb.WriteString(e.Name)

	case *IntegerLiteral:
		sb.WriteString(strconv.FormatInt(e.Value, 10))

	case *FloatLiteral:
		s := strconv.FormatFloat(e.Value, 'f', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		sb.WriteString(s)

	case *StringLiteral:
		sb.WriteString(strconv.Quote(e.Value))

	case *BooleanLiteral:
		sb.WriteString(strconv.FormatBool(e.Value))

	case *DurationLiteral:
		sb.WriteString(e.Text)

	case *DateTimeLiteral:
		sb.WriteString(e.Text)

	case *BadExpr:
		sb.WriteString("<bad expression>")

	case *ArrayExpr:
		sb.WriteByte('[')
		for i, el := range e.Elements {
			if i > 0 {
				sb.WriteString(", ")
			}
			exprString(sb, false, el)
		}
		sb.WriteByte(']')

	case *DictExpr:
		if len(e.Items) == 0 {
			sb.WriteString("[:]")
			return
		}
		sb.WriteByte('[')
		for i, item := range e.Items {
			if i > 0 {
				sb.WriteString(", ")
			}
			exprString(sb, false, item.Key)
			sb.WriteString(": ")
			exprString(sb, false, item.Val)
		}
		sb.WriteByte(']')

	case *ObjectExpr:
		sb.WriteByte('{')
		if e.With != nil {
			sb.WriteString(e.With.Name)
			sb.WriteString(" with ")
		}
		properties(sb, e.Properties)
		sb.WriteByte('}')

	case *MemberExpr:
		exprString(sb, true, e.Object)
		if e.Bracket {
			sb.WriteByte('[')
			sb.WriteString(strconv.Quote(e.Property))
			sb.WriteByte(']')
			return
		}
		sb.WriteByte('.')
		sb.WriteString(e.Property)

	case *IndexExpr:
		exprString(sb, true, e.Array)
		sb.WriteByte('[')
		exprString(sb, false, e.Index)
		sb.WriteByte(']')

	case *CallExpr:
		exprString(sb, true, e.Callee)
		sb.WriteByte('(')
		properties(sb, e.Arguments)
		sb.WriteByte(')')

	case *PipeExpr:
		if simple {
			sb.WriteByte('(')
		}
		exprString(sb, false, e.Argument)
		sb.WriteString(" |> ")
		exprString(sb, false, e.Call)
		if simple {
			sb.WriteByte(')')
		}

	case *FunctionExpr:
		if simple {
			sb.WriteByte('(')
		}
		sb.WriteByte('(')
		for i, p := range e.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			if p.Pipe {
				sb.WriteString("<-")
			}
			sb.WriteString(p.Key.Name)
			if p.Default != nil {
				sb.WriteByte('=')
				exprString(sb, false, p.Default)
			}
		}
		sb.WriteString(") => ")
		switch body := e.Body.(type) {
		case *Block:
			sb.WriteString("{ ")
			for i, s := range body.Body {
				if i > 0 {
					sb.WriteString("; ")
				}
				stmtString(sb, s)
			}
			sb.WriteString(" }")
		case *ObjectExpr:
			sb.WriteByte('(')
			exprString(sb, false, body)
			sb.WriteByte(')')
		case Expr:
			exprString(sb, false, body)
		}
		if simple {
			sb.WriteByte(')')
		}

	case *BinaryExpr:
		binary(sb, simple, e.Operator, e.Left, e.Right)

	case *LogicalExpr:
		binary(sb, simple, e.Operator, e.Left, e.Right)

	case *UnaryExpr:
		if simple {
			sb.WriteByte('(')
		}
		sb.WriteString(e.Operator.String())
		if e.Operator != SubOp {
			sb.WriteByte(' ')
		}
		exprString(sb, true, e.Argument)
		if simple {
			sb.WriteByte(')')
		}

	case *ConditionalExpr:
		if simple {
			sb.WriteByte('(')
		}
		sb.WriteString("if ")
		exprString(sb, false, e.Test)
		sb.WriteString(" then ")
		exprString(sb, false, e.Consequent)
		sb.WriteString(" else ")
		exprString(sb, false, e.Alternate)
		if simple {
			sb.WriteByte(')')
		}
	}
}

func binary(sb *strings.Builder, simple bool, op Operator, left, right Expr) {
	if simple {
		sb.WriteByte('(')
	}
	exprString(sb, true, left)
	sb.WriteByte(' ')
	sb.WriteString(op.String())
	sb.WriteByte(' ')
	exprString(sb, true, right)
	if simple {
		sb.WriteByte(')')
	}
}
