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

package types

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/Mohamedkrs/flux/internal/scanner"
)

// ParseError describes malformed signature text.
type ParseError struct {
	Offset int
	Msg    string
}

func (e *ParseError) Error() string { return fmt.Sprintf("signature:%d: %s", e.Offset, e.Msg) }

// Parse a type signature such as `(<-tables: [A], ?n: int) => [A] where A: Record`.
// Type-variables in the result are generic.
func Parse(text string) (Type, error) {
	id := 0
	return ParseWith(text, func() *Var {
		id++
		return NewGenericVar(id)
	})
}

// MustParse is like Parse but panics on malformed text.
func MustParse(text string) Type {
	t, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseWith parses a type signature, allocating type-variables with newVar.
func ParseWith(text string, newVar func() *Var) (Type, error) {
	items := scanner.All(text)
	p := &sigParser{items: items, vars: make(map[string]*Var), newVar: newVar}

	end := len(items) - 1
	depth := 0
	for i, it := range items {
		switch it.Tok {
		case scanner.LParen, scanner.LBrack, scanner.LBrace:
			depth++
		case scanner.RParen, scanner.RBrack, scanner.RBrace:
			depth--
		case scanner.Where:
			if depth == 0 && i < end {
				end = i
			}
		}
	}
	// The where-clause decides which record keys are label variables, so it is read first.
	if end < len(items)-1 {
		p.pos = end + 1
		if err := p.parseWhere(); err != nil {
			return nil, err
		}
	}
	p.pos, p.end = 0, end
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.pos != p.end {
		return nil, p.errorf("unexpected %s", p.describe())
	}
	return Generalize(t), nil
}

type sigParser struct {
	items  []scanner.Item
	pos    int
	end    int
	vars   map[string]*Var
	labels map[string]bool
	newVar func() *Var
}

func (p *sigParser) peek() scanner.Item {
	if p.pos >= p.end {
		return scanner.Item{Tok: scanner.EOF, Start: p.items[p.end].Start}
	}
	return p.items[p.pos]
}

func (p *sigParser) next() scanner.Item {
	it := p.peek()
	if it.Tok != scanner.EOF {
		p.pos++
	}
	return it
}

func (p *sigParser) describe() string {
	it := p.peek()
	switch it.Tok {
	case scanner.EOF:
		return "end of signature"
	case scanner.Illegal:
		return it.Err
	}
	return fmt.Sprintf("%q", it.Text)
}

func (p *sigParser) errorf(format string, args ...interface{}) error {
	return &ParseError{Offset: p.peek().Start.Offset, Msg: fmt.Sprintf(format, args...)}
}

func (p *sigParser) expect(tok scanner.Token) (scanner.Item, error) {
	if p.peek().Tok != tok {
		return scanner.Item{}, p.errorf("expected %s, found %s", tok, p.describe())
	}
	return p.next(), nil
}

func isVarName(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

func (p *sigParser) typeVar(name string) *Var {
	tv, ok := p.vars[name]
	if !ok {
		tv = p.newVar()
		p.vars[name] = tv
	}
	return tv
}

func (p *sigParser) parseWhere() error {
	p.end = len(p.items) - 1
	p.labels = make(map[string]bool)
	for {
		it, err := p.expect(scanner.Ident)
		if err != nil {
			return err
		}
		if !isVarName(it.Text) {
			return &ParseError{Offset: it.Start.Offset, Msg: fmt.Sprintf("%s is not a type variable", it.Text)}
		}
		tv := p.typeVar(it.Text)
		if _, err := p.expect(scanner.Colon); err != nil {
			return err
		}
		for {
			kt, err := p.expect(scanner.Ident)
			if err != nil {
				return err
			}
			k, ok := ParseKind(kt.Text)
			if !ok {
				return &ParseError{Offset: kt.Start.Offset, Msg: fmt.Sprintf("unknown kind %s", kt.Text)}
			}
			tv.AddKind(k)
			if k == LabelKind {
				p.labels[it.Text] = true
			}
			if p.peek().Tok != scanner.Add {
				break
			}
			p.next()
		}
		if p.peek().Tok != scanner.Comma {
			break
		}
		p.next()
		if p.peek().Tok == scanner.EOF {
			break
		}
	}
	if p.peek().Tok != scanner.EOF {
		return p.errorf("unexpected %s in where clause", p.describe())
	}
	return nil
}

func (p *sigParser) parseType() (Type, error) {
	it := p.peek()
	switch it.Tok {
	case scanner.Ident:
		p.next()
		if b, ok := LookupBasic(it.Text); ok {
			return b, nil
		}
		if it.Text == "stream" {
			if _, err := p.expect(scanner.LBrack); err != nil {
				return nil, err
			}
			elem, err := p.parseType()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(scanner.RBrack); err != nil {
				return nil, err
			}
			return NewStream(elem), nil
		}
		if isVarName(it.Text) {
			return p.typeVar(it.Text), nil
		}
		return nil, &ParseError{Offset: it.Start.Offset, Msg: fmt.Sprintf("unknown type %s", it.Text)}

	case scanner.LBrack:
		p.next()
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if p.peek().Tok == scanner.Colon {
			p.next()
			value, err := p.parseType()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(scanner.RBrack); err != nil {
				return nil, err
			}
			return NewDict(elem, value), nil
		}
		if _, err := p.expect(scanner.RBrack); err != nil {
			return nil, err
		}
		return NewArray(elem), nil

	case scanner.LBrace:
		return p.parseRecord()

	case scanner.LParen:
		return p.parseFunc()
	}
	return nil, p.errorf("expected type, found %s", p.describe())
}

func (p *sigParser) parseRecord() (Type, error) {
	p.next() // {
	var row Type = RowEmpty{}
	if p.peek().Tok == scanner.Ident && p.pos+1 < p.end && p.items[p.pos+1].Tok == scanner.With {
		it := p.next()
		if !isVarName(it.Text) {
			return nil, &ParseError{Offset: it.Start.Offset, Msg: fmt.Sprintf("%s is not a type variable", it.Text)}
		}
		row = p.typeVar(it.Text)
		p.next() // with
	}
	fields := NewTypeMapBuilder()
	var dynamic []DynamicField
	for p.peek().Tok != scanner.RBrace {
		if tok := p.peek().Tok; tok != scanner.Ident && tok != scanner.String {
			return nil, p.errorf("expected record label, found %s", p.describe())
		}
		key := p.next()
		if _, err := p.expect(scanner.Colon); err != nil {
			return nil, err
		}
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		switch {
		case key.Tok == scanner.Ident && p.labels[key.Text]:
			dynamic = append(dynamic, DynamicField{Label: p.typeVar(key.Text), Type: t})
		case key.Tok == scanner.String:
			fields.Set(key.Value, t)
		default:
			fields.Set(key.Text, t)
		}
		if p.peek().Tok != scanner.Comma {
			break
		}
		p.next()
	}
	if _, err := p.expect(scanner.RBrace); err != nil {
		return nil, err
	}
	return NewRecord(fields.Build(), dynamic, row), nil
}

func (p *sigParser) parseFunc() (Type, error) {
	p.next() // (
	var params []Param
	for p.peek().Tok != scanner.RParen {
		var param Param
		if p.peek().Tok == scanner.Question {
			p.next()
			param.Optional = true
		}
		if p.peek().Tok == scanner.PipeReceive {
			p.next()
			param.Pipe = true
		}
		name, err := p.expect(scanner.Ident)
		if err != nil {
			return nil, err
		}
		param.Name = name.Text
		if _, err := p.expect(scanner.Colon); err != nil {
			return nil, err
		}
		if param.Type, err = p.parseType(); err != nil {
			return nil, err
		}
		params = append(params, param)
		if p.peek().Tok != scanner.Comma {
			break
		}
		p.next()
	}
	if _, err := p.expect(scanner.RParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(scanner.Arrow); err != nil {
		return nil, err
	}
	ret, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return NewFunc(params, ret), nil
}
