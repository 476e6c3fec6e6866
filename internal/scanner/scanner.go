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

// Package scanner tokenizes Flux source text and type signatures.
package scanner

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/smasher164/xid"
)

// Pos is a location in source text. Line and Column are 1-based; Column counts runes.
type Pos struct {
	Offset int
	Line   int
	Column int
}

// Item is a single scanned token. End is exclusive.
type Item struct {
	Tok   Token
	Text  string // raw source text
	Value string // decoded value of string literals
	Start Pos
	End   Pos
	Err   string // reason for Illegal tokens
}

const eof = -1

// Scanner produces Items from source text. The zero value is not usable; see New.
type Scanner struct {
	src string
	pos Pos  // position of ch
	ch  rune // current character, or eof
	w   int  // width of ch in bytes
}

func New(src string) *Scanner {
	s := &Scanner{src: src, pos: Pos{Offset: 0, Line: 1, Column: 1}}
	s.load()
	return s
}

// All scans src to completion. The final item is always EOF.
func All(src string) []Item {
	s := New(src)
	var items []Item
	for {
		it := s.Next()
		items = append(items, it)
		if it.Tok == EOF {
			return items
		}
	}
}

func (s *Scanner) load() {
	if s.pos.Offset >= len(s.src) {
		s.ch, s.w = eof, 0
		return
	}
	s.ch, s.w = utf8.DecodeRuneInString(s.src[s.pos.Offset:])
}

func (s *Scanner) next() {
	if s.ch == eof {
		return
	}
	if s.ch == '\n' {
		s.pos.Line++
		s.pos.Column = 1
	} else {
		s.pos.Column++
	}
	s.pos.Offset += s.w
	s.load()
}

func (s *Scanner) peek() rune {
	off := s.pos.Offset + s.w
	if off >= len(s.src) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(s.src[off:])
	return r
}

func (s *Scanner) item(tok Token, start Pos) Item {
	return Item{Tok: tok, Text: s.src[start.Offset:s.pos.Offset], Start: start, End: s.pos}
}

func (s *Scanner) skipSpaceAndComments() {
	for {
		switch {
		case s.ch == eof:
			return
		case unicode.IsSpace(s.ch):
			s.next()
		case s.ch == '/' && s.peek() == '/':
			for s.ch != '\n' && s.ch != eof {
				s.next()
			}
		default:
			return
		}
	}
}

func isLetter(ch rune) bool { return ch == '_' || (ch != eof && xid.Start(ch)) }

func isDigit(ch rune) bool { return '0' <= ch && ch <= '9' }

// Next scans the next token.
func (s *Scanner) Next() Item {
	s.skipSpaceAndComments()
	start := s.pos
	ch := s.ch
	switch {
	case ch == eof:
		return Item{Tok: EOF, Start: start, End: start}
	case isLetter(ch):
		return s.scanIdent(start)
	case isDigit(ch):
		return s.scanNumber(start)
	case ch == '"':
		return s.scanString(start)
	}

	s.next()
	two := func(second rune, t2, t1 Token) Item {
		if s.ch == second {
			s.next()
			return s.item(t2, start)
		}
		return s.item(t1, start)
	}
	switch ch {
	case '+':
		return s.item(Add, start)
	case '-':
		return s.item(Sub, start)
	case '*':
		return s.item(Mul, start)
	case '/':
		return s.item(Div, start)
	case '%':
		return s.item(Mod, start)
	case '^':
		return s.item(Pow, start)
	case '(':
		return s.item(LParen, start)
	case ')':
		return s.item(RParen, start)
	case '[':
		return s.item(LBrack, start)
	case ']':
		return s.item(RBrack, start)
	case '{':
		return s.item(LBrace, start)
	case '}':
		return s.item(RBrace, start)
	case ',':
		return s.item(Comma, start)
	case ':':
		return s.item(Colon, start)
	case '.':
		return s.item(Dot, start)
	case '?':
		return s.item(Question, start)
	case '>':
		return two('=', Gte, Gt)
	case '<':
		switch s.ch {
		case '=':
			s.next()
			return s.item(Lte, start)
		case '-':
			s.next()
			return s.item(PipeReceive, start)
		}
		return s.item(Lt, start)
	case '=':
		switch s.ch {
		case '=':
			s.next()
			return s.item(Eq, start)
		case '~':
			s.next()
			return s.item(RegexEq, start)
		case '>':
			s.next()
			return s.item(Arrow, start)
		}
		return s.item(Assign, start)
	case '!':
		switch s.ch {
		case '=':
			s.next()
			return s.item(Neq, start)
		case '~':
			s.next()
			return s.item(RegexNeq, start)
		}
	case '|':
		if s.ch == '>' {
			s.next()
			return s.item(PipeForward, start)
		}
	}
	it := s.item(Illegal, start)
	it.Err = "invalid character " + quoteRune(ch)
	return it
}

func quoteRune(r rune) string {
	return "'" + string(r) + "'"
}

func (s *Scanner) scanIdent(start Pos) Item {
	s.next()
	for s.ch != eof && (s.ch == '_' || xid.Continue(s.ch)) {
		s.next()
	}
	it := s.item(Ident, start)
	it.Tok = Lookup(it.Text)
	return it
}

func (s *Scanner) scanDigits() {
	for isDigit(s.ch) {
		s.next()
	}
}

func (s *Scanner) scanNumber(start Pos) Item {
	s.scanDigits()
	if s.pos.Offset-start.Offset == 4 && s.ch == '-' && isDigit(s.peek()) {
		return s.scanTime(start)
	}
	if s.ch == '.' && isDigit(s.peek()) {
		s.next()
		s.scanDigits()
		return s.item(Float, start)
	}
	if !isLetter(s.ch) && s.ch != 'µ' {
		return s.item(Int, start)
	}
	// duration: one or more magnitude/unit pairs
	for {
		unitStart := s.pos.Offset
		for s.ch != eof && (s.ch == 'µ' || unicode.IsLetter(s.ch)) {
			s.next()
		}
		if unit := s.src[unitStart:s.pos.Offset]; !IsDurationUnit(unit) {
			it := s.item(Illegal, start)
			it.Err = "invalid duration unit " + strings.TrimSpace(unit)
			return it
		}
		if !isDigit(s.ch) {
			return s.item(Duration, start)
		}
		s.scanDigits()
	}
}

func (s *Scanner) scanTime(start Pos) Item {
	for isDigit(s.ch) || strings.ContainsRune("-:.TZ+", s.ch) {
		s.next()
	}
	return s.item(Time, start)
}

func (s *Scanner) scanString(start Pos) Item {
	s.next() // opening quote
	var sb strings.Builder
	for {
		switch s.ch {
		case eof:
			it := s.item(Illegal, start)
			it.Err = "unterminated string literal"
			return it
		case '"':
			s.next()
			it := s.item(String, start)
			it.Value = sb.String()
			return it
		case '\\':
			s.next()
			switch s.ch {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '"', '\\', '$':
				sb.WriteRune(s.ch)
			default:
				it := s.item(Illegal, start)
				it.Err = "invalid escape sequence"
				return it
			}
			s.next()
		default:
			sb.WriteRune(s.ch)
			s.next()
		}
	}
}

// IsIdent reports whether s is a non-keyword identifier.
func IsIdent(s string) bool {
	if s == "" || Lookup(s) != Ident {
		return false
	}
	for i, ch := range s {
		if i == 0 && !isLetter(ch) {
			return false
		}
		if i > 0 && ch != '_' && !xid.Continue(ch) {
			return false
		}
	}
	return true
}
