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

// Package parser builds syntax trees from Flux source text.
package parser

import (
	"strconv"
	"strings"

	"github.com/Mohamedkrs/flux/ast"
	"github.com/Mohamedkrs/flux/diagnostic"
	"github.com/Mohamedkrs/flux/internal/scanner"
)

// Parse parses a source file. Syntax errors are returned as a diagnostic.List, together with
// the part of the file which could be parsed.
func Parse(name, src string) (*ast.File, error) {
	p := newParser(src)
	f := p.parseFile(name)
	if len(p.errs) > 0 {
		p.errs.Sort()
		return f, p.errs
	}
	return f, nil
}

// ParseExpr parses a single expression.
func ParseExpr(src string) (ast.Expr, error) {
	p := newParser(src)
	e := p.parseExpr()
	if p.peek().Tok != scanner.EOF {
		p.errorf(p.peek(), "unexpected %s", describe(p.peek()))
	}
	if len(p.errs) > 0 {
		p.errs.Sort()
		return e, p.errs
	}
	return e, nil
}

type parser struct {
	src   string
	items []scanner.Item
	pos   int
	errs  diagnostic.List
}

func newParser(src string) *parser {
	p := &parser{src: src}
	for _, it := range scanner.All(src) {
		if it.Tok == scanner.Illegal {
			p.errs.Add(diagnostic.Errorf(itemLoc(it), "%s", it.Err))
			continue
		}
		p.items = append(p.items, it)
	}
	return p
}

func position(pos scanner.Pos) ast.Position { return ast.Position(pos) }

func itemLoc(it scanner.Item) ast.Loc {
	return ast.Loc{Start: position(it.Start), End: position(it.End)}
}

func span(start, end ast.Node) ast.Loc {
	return ast.Loc{Start: start.Location().Start, End: end.Location().End}
}

func describe(it scanner.Item) string {
	switch it.Tok {
	case scanner.EOF:
		return "end of file"
	case scanner.Ident, scanner.Int, scanner.Float, scanner.Duration, scanner.Time:
		return strconv.Quote(it.Text)
	case scanner.String:
		return "string " + it.Text
	}
	return strconv.Quote(it.Tok.String())
}

func (p *parser) peek() scanner.Item { return p.peekAt(0) }

func (p *parser) peekAt(n int) scanner.Item {
	if p.pos+n < len(p.items) {
		return p.items[p.pos+n]
	}
	return p.items[len(p.items)-1]
}

func (p *parser) next() scanner.Item {
	it := p.peek()
	if it.Tok != scanner.EOF {
		p.pos++
	}
	return it
}

func (p *parser) errorf(it scanner.Item, format string, args ...interface{}) {
	p.errs.Add(diagnostic.Errorf(itemLoc(it), format, args...))
}

func (p *parser) expect(tok scanner.Token) (scanner.Item, bool) {
	it := p.peek()
	if it.Tok != tok {
		p.errorf(it, "expected %s, found %s", strconv.Quote(tok.String()), describe(it))
		return it, false
	}
	return p.next(), true
}

func (p *parser) identifier(it scanner.Item) *ast.Identifier {
	return &ast.Identifier{BaseNode: ast.BaseNode{Loc: itemLoc(it)}, Name: it.Text}
}

// sync skips the rest of the line of the last consumed token, after a syntax error.
func (p *parser) sync() {
	if p.pos == 0 {
		return
	}
	line := p.items[p.pos-1].End.Line
	for p.peek().Tok != scanner.EOF && p.peek().Start.Line <= line {
		p.next()
	}
}

func (p *parser) parseFile(name string) *ast.File {
	f := &ast.File{Name: name}
	if p.peek().Tok == scanner.Package {
		kw := p.next()
		if id, ok := p.expect(scanner.Ident); ok {
			f.Package = &ast.PackageClause{
				BaseNode: ast.BaseNode{Loc: ast.Loc{Start: position(kw.Start), End: position(id.End)}},
				Name:     p.identifier(id),
			}
		} else {
			p.sync()
		}
	}
	for p.peek().Tok == scanner.Import {
		if imp := p.parseImport(); imp != nil {
			f.Imports = append(f.Imports, imp)
		}
	}
	for p.peek().Tok != scanner.EOF {
		if stmt := p.parseStatement(); stmt != nil {
			f.Body = append(f.Body, stmt)
		}
	}
	f.Loc = ast.Loc{Start: position(p.items[0].Start), End: position(p.items[len(p.items)-1].End)}
	return f
}

func (p *parser) parseImport() *ast.ImportDeclaration {
	kw := p.next()
	imp := &ast.ImportDeclaration{}
	if p.peek().Tok == scanner.Ident {
		imp.As = p.identifier(p.next())
	}
	path, ok := p.expect(scanner.String)
	if !ok {
		p.sync()
		return nil
	}
	imp.Path = &ast.StringLiteral{BaseNode: ast.BaseNode{Loc: itemLoc(path)}, Value: path.Value}
	imp.Loc = ast.Loc{Start: position(kw.Start), End: position(path.End)}
	return imp
}

func (p *parser) parseStatement() ast.Stmt {
	errs := len(p.errs)
	stmt := p.statement()
	if len(p.errs) > errs {
		p.sync()
	}
	return stmt
}

func (p *parser) statement() ast.Stmt {
	it := p.peek()
	switch it.Tok {
	case scanner.Option:
		p.next()
		assign := p.parseAssignment()
		if assign == nil {
			return nil
		}
		return &ast.OptionStatement{
			BaseNode:   ast.BaseNode{Loc: ast.Loc{Start: position(it.Start), End: assign.Loc.End}},
			Assignment: assign,
		}

	case scanner.Builtin:
		return p.parseBuiltin()

	case scanner.Return:
		p.next()
		arg := p.parseExpr()
		return &ast.ReturnStatement{BaseNode: ast.BaseNode{Loc: ast.Loc{Start: position(it.Start), End: arg.Location().End}}, Argument: arg}

	case scanner.Ident:
		if p.peekAt(1).Tok == scanner.Assign {
			if assign := p.parseAssignment(); assign != nil {
				return assign
			}
			return nil
		}

	case scanner.Import, scanner.Package:
		p.next()
		p.errorf(it, "%s must appear at the start of the file", it.Text)
		return nil
	}
	e := p.parseExpr()
	return &ast.ExpressionStatement{BaseNode: ast.BaseNode{Loc: e.Location()}, Expression: e}
}

func (p *parser) parseAssignment() *ast.VariableAssignment {
	id, ok := p.expect(scanner.Ident)
	if !ok {
		return nil
	}
	if _, ok := p.expect(scanner.Assign); !ok {
		return nil
	}
	init := p.parseExpr()
	return &ast.VariableAssignment{
		BaseNode: ast.BaseNode{Loc: ast.Loc{Start: position(id.Start), End: init.Location().End}},
		ID:       p.identifier(id),
		Init:     init,
	}
}

// startsStatement reports whether the next token begins a statement on a new line.
func (p *parser) startsStatement(line int) bool {
	it := p.peek()
	if it.Start.Line <= line {
		return false
	}
	switch it.Tok {
	case scanner.Option, scanner.Builtin, scanner.Return, scanner.Import, scanner.Package:
		return true
	case scanner.Ident:
		return p.peekAt(1).Tok == scanner.Assign
	}
	return false
}

// parseBuiltin reads `builtin name : signature`. The signature extends to the next statement.
func (p *parser) parseBuiltin() ast.Stmt {
	kw := p.next()
	id, ok := p.expect(scanner.Ident)
	if !ok {
		return nil
	}
	colon, ok := p.expect(scanner.Colon)
	if !ok {
		return nil
	}
	last := colon
	for p.peek().Tok != scanner.EOF && !p.startsStatement(last.End.Line) {
		last = p.next()
	}
	if last == colon {
		p.errorf(p.peek(), "expected type signature, found %s", describe(p.peek()))
		return nil
	}
	return &ast.BuiltinStatement{
		BaseNode:  ast.BaseNode{Loc: ast.Loc{Start: position(kw.Start), End: position(last.End)}},
		ID:        p.identifier(id),
		Signature: strings.TrimSpace(p.src[colon.End.Offset:last.End.Offset]),
	}
}

func (p *parser) parseExpr() ast.Expr {
	if p.peek().Tok == scanner.If {
		kw := p.next()
		test := p.parseExpr()
		p.expect(scanner.Then)
		cons := p.parseExpr()
		p.expect(scanner.Else)
		alt := p.parseExpr()
		return &ast.ConditionalExpr{
			BaseNode:   ast.BaseNode{Loc: ast.Loc{Start: position(kw.Start), End: alt.Location().End}},
			Test:       test,
			Consequent: cons,
			Alternate:  alt,
		}
	}
	return p.parseOr()
}

func (p *parser) parseOr() ast.Expr {
	left := p.parseAnd()
	for p.peek().Tok == scanner.Or {
		p.next()
		right := p.parseAnd()
		left = &ast.LogicalExpr{BaseNode: ast.BaseNode{Loc: span(left, right)}, Operator: ast.OrOp, Left: left, Right: right}
	}
	return left
}

func (p *parser) parseAnd() ast.Expr {
	left := p.parseNot()
	for p.peek().Tok == scanner.And {
		p.next()
		right := p.parseNot()
		left = &ast.LogicalExpr{BaseNode: ast.BaseNode{Loc: span(left, right)}, Operator: ast.AndOp, Left: left, Right: right}
	}
	return left
}

func (p *parser) parseNot() ast.Expr {
	if p.peek().Tok == scanner.Not {
		kw := p.next()
		arg := p.parseNot()
		return &ast.UnaryExpr{
			BaseNode: ast.BaseNode{Loc: ast.Loc{Start: position(kw.Start), End: arg.Location().End}},
			Operator: ast.NotOp,
			Argument: arg,
		}
	}
	return p.parseComparison()
}

var comparisonOps = map[scanner.Token]ast.Operator{
	scanner.Eq:       ast.EqOp,
	scanner.Neq:      ast.NeqOp,
	scanner.Lt:       ast.LtOp,
	scanner.Lte:      ast.LteOp,
	scanner.Gt:       ast.GtOp,
	scanner.Gte:      ast.GteOp,
	scanner.RegexEq:  ast.RegexEqOp,
	scanner.RegexNeq: ast.RegexNeqOp,
}

var additiveOps = map[scanner.Token]ast.Operator{
	scanner.Add: ast.AddOp,
	scanner.Sub: ast.SubOp,
}

var multiplicativeOps = map[scanner.Token]ast.Operator{
	scanner.Mul: ast.MulOp,
	scanner.Div: ast.DivOp,
	scanner.Mod: ast.ModOp,
	scanner.Pow: ast.PowOp,
}

func (p *parser) parseBinary(ops map[scanner.Token]ast.Operator, operand func() ast.Expr) ast.Expr {
	left := operand()
	for {
		op, ok := ops[p.peek().Tok]
		if !ok {
			return left
		}
		p.next()
		right := operand()
		left = &ast.BinaryExpr{BaseNode: ast.BaseNode{Loc: span(left, right)}, Operator: op, Left: left, Right: right}
	}
}

func (p *parser) parseComparison() ast.Expr {
	return p.parseBinary(comparisonOps, p.parseAdditive)
}

func (p *parser) parseAdditive() ast.Expr {
	return p.parseBinary(additiveOps, p.parseMultiplicative)
}

func (p *parser) parseMultiplicative() ast.Expr {
	return p.parseBinary(multiplicativeOps, p.parsePipe)
}

func (p *parser) parsePipe() ast.Expr {
	left := p.parseUnary()
	for p.peek().Tok == scanner.PipeForward {
		p.next()
		at := p.peek()
		right := p.parseUnary()
		call, ok := right.(*ast.CallExpr)
		if !ok {
			p.errorf(at, "pipe destination must be a function call")
			left = &ast.BadExpr{BaseNode: ast.BaseNode{Loc: span(left, right)}, Text: p.text(span(left, right))}
			continue
		}
		call.Pipe = left
		left = &ast.PipeExpr{BaseNode: ast.BaseNode{Loc: span(left, call)}, Argument: left, Call: call}
	}
	return left
}

func (p *parser) text(loc ast.Loc) string { return p.src[loc.Start.Offset:loc.End.Offset] }

func (p *parser) parseUnary() ast.Expr {
	it := p.peek()
	var op ast.Operator
	switch it.Tok {
	case scanner.Sub:
		op = ast.SubOp
	case scanner.Add:
		p.next()
		return p.parseUnary()
	case scanner.Exists:
		op = ast.ExistsOp
	default:
		return p.parsePostfix()
	}
	p.next()
	arg := p.parseUnary()
	return &ast.UnaryExpr{
		BaseNode: ast.BaseNode{Loc: ast.Loc{Start: position(it.Start), End: arg.Location().End}},
		Operator: op,
		Argument: arg,
	}
}

func (p *parser) parsePostfix() ast.Expr {
	e := p.parsePrimary()
	for {
		switch p.peek().Tok {
		case scanner.Dot:
			p.next()
			id, ok := p.expect(scanner.Ident)
			if !ok {
				return e
			}
			e = &ast.MemberExpr{
				BaseNode: ast.BaseNode{Loc: ast.Loc{Start: e.Location().Start, End: position(id.End)}},
				Object:   e,
				Property: id.Text,
			}

		case scanner.LBrack:
			p.next()
			if p.peek().Tok == scanner.String && p.peekAt(1).Tok == scanner.RBrack {
				key := p.next()
				rb := p.next()
				e = &ast.MemberExpr{
					BaseNode: ast.BaseNode{Loc: ast.Loc{Start: e.Location().Start, End: position(rb.End)}},
					Object:   e,
					Property: key.Value,
					Bracket:  true,
				}
				continue
			}
			index := p.parseExpr()
			rb, _ := p.expect(scanner.RBrack)
			e = &ast.IndexExpr{
				BaseNode: ast.BaseNode{Loc: ast.Loc{Start: e.Location().Start, End: position(rb.End)}},
				Array:    e,
				Index:    index,
			}

		case scanner.LParen:
			e = p.parseCall(e)

		default:
			return e
		}
	}
}

// parseProperties reads `key: value` pairs up to the closing token. Keys are identifiers, or
// strings when quoted is set.
func (p *parser) parseProperties(end scanner.Token, quoted bool) []*ast.Property {
	var props []*ast.Property
	for p.peek().Tok != end && p.peek().Tok != scanner.EOF {
		key := p.peek()
		if key.Tok != scanner.Ident && (!quoted || key.Tok != scanner.String) {
			p.errorf(key, "expected property key, found %s", describe(key))
			return props
		}
		p.next()
		prop := &ast.Property{KeyLoc: itemLoc(key), Key: key.Text}
		if key.Tok == scanner.String {
			prop.Key = key.Value
		}
		prop.Loc = prop.KeyLoc
		if p.peek().Tok == scanner.Colon {
			p.next()
			prop.Value = p.parseExpr()
			prop.Loc.End = prop.Value.Location().End
		} else if key.Tok == scanner.String {
			p.errorf(p.peek(), "expected %q, found %s", ":", describe(p.peek()))
			return props
		}
		props = append(props, prop)
		if p.peek().Tok != scanner.Comma {
			break
		}
		p.next()
	}
	return props
}

func (p *parser) parseCall(callee ast.Expr) ast.Expr {
	p.next() // (
	args := p.parseProperties(scanner.RParen, false)
	rp, _ := p.expect(scanner.RParen)
	return &ast.CallExpr{
		BaseNode:  ast.BaseNode{Loc: ast.Loc{Start: callee.Location().Start, End: position(rp.End)}},
		Callee:    callee,
		Arguments: args,
	}
}

func (p *parser) parsePrimary() ast.Expr {
	it := p.peek()
	base := ast.BaseNode{Loc: itemLoc(it)}
	switch it.Tok {
	case scanner.Ident:
		p.next()
		return p.identifier(it)

	case scanner.Int:
		p.next()
		v, err := strconv.ParseInt(it.Text, 10, 64)
		if err != nil {
			p.errorf(it, "invalid integer literal %s", it.Text)
		}
		return &ast.IntegerLiteral{BaseNode: base, Value: v}

	case scanner.Float:
		p.next()
		v, err := strconv.ParseFloat(it.Text, 64)
		if err != nil {
			p.errorf(it, "invalid float literal %s", it.Text)
		}
		return &ast.FloatLiteral{BaseNode: base, Value: v}

	case scanner.String:
		p.next()
		return &ast.StringLiteral{BaseNode: base, Value: it.Value}

	case scanner.Duration:
		p.next()
		return &ast.DurationLiteral{BaseNode: base, Text: it.Text}

	case scanner.Time:
		p.next()
		return &ast.DateTimeLiteral{BaseNode: base, Text: it.Text}

	case scanner.True, scanner.False:
		p.next()
		return &ast.BooleanLiteral{BaseNode: base, Value: it.Tok == scanner.True}

	case scanner.LBrack:
		return p.parseArrayOrDict()

	case scanner.LBrace:
		return p.parseObject()

	case scanner.LParen:
		if p.isFunction() {
			return p.parseFunction()
		}
		p.next()
		e := p.parseExpr()
		p.expect(scanner.RParen)
		return e
	}
	p.errorf(it, "unexpected %s", describe(it))
	p.next()
	return &ast.BadExpr{BaseNode: base, Text: it.Text}
}

// isFunction reports whether the parenthesis at the current position opens a parameter list.
func (p *parser) isFunction() bool {
	depth := 0
	for i := p.pos; i < len(p.items); i++ {
		switch p.items[i].Tok {
		case scanner.LParen, scanner.LBrack, scanner.LBrace:
			depth++
		case scanner.RParen, scanner.RBrack, scanner.RBrace:
			depth--
			if depth == 0 {
				return i+1 < len(p.items) && p.items[i+1].Tok == scanner.Arrow
			}
		case scanner.EOF:
			return false
		}
	}
	return false
}

func (p *parser) parseFunction() ast.Expr {
	lp := p.next()
	fn := &ast.FunctionExpr{}
	for p.peek().Tok != scanner.RParen && p.peek().Tok != scanner.EOF {
		start := p.peek()
		param := &ast.Parameter{}
		if start.Tok == scanner.PipeReceive {
			p.next()
			param.Pipe = true
		}
		id, ok := p.expect(scanner.Ident)
		if !ok {
			break
		}
		param.Key = p.identifier(id)
		param.Loc = ast.Loc{Start: position(start.Start), End: position(id.End)}
		if p.peek().Tok == scanner.Assign {
			p.next()
			param.Default = p.parseExpr()
			param.Loc.End = param.Default.Location().End
		}
		fn.Params = append(fn.Params, param)
		if p.peek().Tok != scanner.Comma {
			break
		}
		p.next()
	}
	p.expect(scanner.RParen)
	p.expect(scanner.Arrow)
	if p.peek().Tok == scanner.LBrace {
		fn.Body = p.parseBlock()
	} else {
		fn.Body = p.parseExpr()
	}
	fn.Loc = ast.Loc{Start: position(lp.Start), End: fn.Body.Location().End}
	return fn
}

func (p *parser) parseBlock() *ast.Block {
	lb := p.next()
	block := &ast.Block{}
	for p.peek().Tok != scanner.RBrace && p.peek().Tok != scanner.EOF {
		if stmt := p.parseStatement(); stmt != nil {
			block.Body = append(block.Body, stmt)
		}
	}
	rb, _ := p.expect(scanner.RBrace)
	block.Loc = ast.Loc{Start: position(lb.Start), End: position(rb.End)}
	return block
}

func (p *parser) parseArrayOrDict() ast.Expr {
	lb := p.next()
	if p.peek().Tok == scanner.Colon && p.peekAt(1).Tok == scanner.RBrack {
		p.next()
		rb := p.next()
		return &ast.DictExpr{BaseNode: ast.BaseNode{Loc: ast.Loc{Start: position(lb.Start), End: position(rb.End)}}}
	}
	var (
		elems []ast.Expr
		items []ast.DictItem
		dict  bool
	)
	for p.peek().Tok != scanner.RBrack && p.peek().Tok != scanner.EOF {
		e := p.parseExpr()
		if len(elems) == 0 && len(items) == 0 && p.peek().Tok == scanner.Colon {
			dict = true
		}
		if dict {
			p.expect(scanner.Colon)
			items = append(items, ast.DictItem{Key: e, Val: p.parseExpr()})
		} else {
			elems = append(elems, e)
		}
		if p.peek().Tok != scanner.Comma {
			break
		}
		p.next()
	}
	rb, _ := p.expect(scanner.RBrack)
	loc := ast.Loc{Start: position(lb.Start), End: position(rb.End)}
	if dict {
		return &ast.DictExpr{BaseNode: ast.BaseNode{Loc: loc}, Items: items}
	}
	return &ast.ArrayExpr{BaseNode: ast.BaseNode{Loc: loc}, Elements: elems}
}

func (p *parser) parseObject() ast.Expr {
	lb := p.next()
	obj := &ast.ObjectExpr{}
	if p.peek().Tok == scanner.Ident && p.peekAt(1).Tok == scanner.With {
		obj.With = p.identifier(p.next())
		p.next()
	}
	obj.Properties = p.parseProperties(scanner.RBrace, true)
	rb, _ := p.expect(scanner.RBrace)
	obj.Loc = ast.Loc{Start: position(lb.Start), End: position(rb.End)}
	return obj
}
