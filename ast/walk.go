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

// Walk calls f for node and each of its descendants, parents before children.
// Descendants are skipped when f returns false.
func Walk(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}
	switch n := node.(type) {
	case *File:
		if n.Package != nil {
			Walk(n.Package, f)
		}
		for _, imp := range n.Imports {
			Walk(imp, f)
		}
		for _, stmt := range n.Body {
			Walk(stmt, f)
		}

	case *PackageClause:
		Walk(n.Name, f)

	case *ImportDeclaration:
		if n.As != nil {
			Walk(n.As, f)
		}
		Walk(n.Path, f)

	case *VariableAssignment:
		Walk(n.ID, f)
		Walk(n.Init, f)

	case *OptionStatement:
		Walk(n.Assignment, f)

	case *ExpressionStatement:
		Walk(n.Expression, f)

	case *ReturnStatement:
		Walk(n.Argument, f)

	case *BuiltinStatement:
		Walk(n.ID, f)

	case *Block:
		for _, stmt := range n.Body {
			Walk(stmt, f)
		}

	case *Identifier, *IntegerLiteral, *FloatLiteral, *StringLiteral, *BooleanLiteral,
		*DurationLiteral, *DateTimeLiteral, *BadExpr:

	case *ArrayExpr:
		for _, e := range n.Elements {
			Walk(e, f)
		}

	case *DictExpr:
		for _, item := range n.Items {
			Walk(item.Key, f)
			Walk(item.Val, f)
		}

	case *ObjectExpr:
		if n.With != nil {
			Walk(n.With, f)
		}
		for _, p := range n.Properties {
			Walk(p, f)
		}

	case *Property:
		if n.Value != nil {
			Walk(n.Value, f)
		}

	case *MemberExpr:
		Walk(n.Object, f)

	case *IndexExpr:
		Walk(n.Array, f)
		Walk(n.Index, f)

	case *CallExpr:
		Walk(n.Callee, f)
		for _, arg := range n.Arguments {
			Walk(arg, f)
		}

	case *PipeExpr:
		Walk(n.Argument, f)
		Walk(n.Call, f)

	case *FunctionExpr:
		for _, p := range n.Params {
			Walk(p, f)
		}
		Walk(n.Body, f)

	case *Parameter:
		Walk(n.Key, f)
		if n.Default != nil {
			Walk(n.Default, f)
		}

	case *BinaryExpr:
		Walk(n.Left, f)
		Walk(n.Right, f)

	case *UnaryExpr:
		Walk(n.Argument, f)

	case *LogicalExpr:
		Walk(n.Left, f)
		Walk(n.Right, f)

	case *ConditionalExpr:
		Walk(n.Test, f)
		Walk(n.Consequent, f)
		Walk(n.Alternate, f)

	default:
		panic("unknown node type")
	}
}
