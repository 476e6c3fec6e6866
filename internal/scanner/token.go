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

package scanner

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Token identifies the lexical class of an Item.
type Token int

const (
	EOF Token = iota
	Illegal

	Ident
	Int
	Float
	String
	Duration
	Time

	Add         // +
	Sub         // -
	Mul         // *
	Div         // /
	Mod         // %
	Pow         // ^
	Eq          // ==
	Neq         // !=
	Lt          // <
	Lte         // <=
	Gt          // >
	Gte         // >=
	RegexEq     // =~
	RegexNeq    // !~
	Assign      // =
	Arrow       // =>
	PipeReceive // <-
	PipeForward // |>
	LParen
	RParen
	LBrack
	RBrack
	LBrace
	RBrace
	Comma
	Colon
	Dot
	Question

	keywordsStart
	And
	Or
	Not
	Exists
	If
	Then
	Else
	Import
	Package
	Option
	Return
	Builtin
	With
	Where
	True
	False
	keywordsEnd
)

var tokenNames = [...]string{
	EOF:         "EOF",
	Illegal:     "ILLEGAL",
	Ident:       "identifier",
	Int:         "integer",
	Float:       "float",
	String:      "string",
	Duration:    "duration",
	Time:        "time",
	Add:         "+",
	Sub:         "-",
	Mul:         "*",
	Div:         "/",
	Mod:         "%",
	Pow:         "^",
	Eq:          "==",
	Neq:         "!=",
	Lt:          "<",
	Lte:         "<=",
	Gt:          ">",
	Gte:         ">=",
	RegexEq:     "=~",
	RegexNeq:    "!~",
	Assign:      "=",
	Arrow:       "=>",
	PipeReceive: "<-",
	PipeForward: "|>",
	LParen:      "(",
	RParen:      ")",
	LBrack:      "[",
	RBrack:      "]",
	LBrace:      "{",
	RBrace:      "}",
	Comma:       ",",
	Colon:       ":",
	Dot:         ".",
	Question:    "?",
	And:         "and",
	Or:          "or",
	Not:         "not",
	Exists:      "exists",
	If:          "if",
	Then:        "then",
	Else:        "else",
	Import:      "import",
	Package:     "package",
	Option:      "option",
	Return:      "return",
	Builtin:     "builtin",
	With:        "with",
	Where:       "where",
	True:        "true",
	False:       "false",
}

func (t Token) String() string {
	if t >= 0 && int(t) < len(tokenNames) && tokenNames[t] != "" {
		return tokenNames[t]
	}
	return fmt.Sprintf("Token(%d)", int(t))
}

// IsKeyword reports whether t is a reserved word.
func (t Token) IsKeyword() bool { return t > keywordsStart && t < keywordsEnd }

var keywords = func() map[string]Token {
	m := make(map[string]Token, keywordsEnd-keywordsStart)
	for t := keywordsStart + 1; t < keywordsEnd; t++ {
		m[tokenNames[t]] = t
	}
	return m
}()

// Lookup maps an identifier to its keyword token, or Ident.
func Lookup(ident string) Token {
	if t, ok := keywords[ident]; ok {
		return t
	}
	return Ident
}

var durationUnits = []string{"y", "mo", "w", "d", "h", "m", "s", "ms", "us", "µs", "ns"}

// IsDurationUnit reports whether unit is a valid duration magnitude suffix.
func IsDurationUnit(unit string) bool { return slices.Contains(durationUnits, unit) }
