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
	"strconv"
)

// ErrorKind classifies type errors.
type ErrorKind int

const (
	TypeMismatch ErrorKind = iota
	MissingLabel
	KindViolation
	NotALabel
	MissingArgument
	ExtraArgument
	MissingPipe
	ExtraPipe
	NotAFunction
	OccursCheck
	UnknownIdentifier
	NotFound
)

var errorKindNames = [...]string{
	TypeMismatch:      "TypeMismatch",
	MissingLabel:      "MissingLabel",
	KindViolation:     "KindViolation",
	NotALabel:         "NotALabel",
	MissingArgument:   "MissingArgument",
	ExtraArgument:     "ExtraArgument",
	MissingPipe:       "MissingPipe",
	ExtraPipe:         "ExtraPipe",
	NotAFunction:      "NotAFunction",
	OccursCheck:       "OccursCheck",
	UnknownIdentifier: "UnknownIdentifier",
	NotFound:          "NotFound",
}

func (k ErrorKind) String() string {
	if k >= 0 && int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is a failure to unify or constrain types. The message is rendered when the error
// is created, since the types involved may be refined later.
type Error struct {
	Kind       ErrorKind
	Expected   Type
	Actual     Type
	Label      string
	Constraint Kind
	// Argument names the call argument being checked, when known.
	Argument string

	msg string
}

func (e *Error) Error() string {
	if e.Argument != "" {
		return e.msg + " (argument " + e.Argument + ")"
	}
	return e.msg
}

// Message returns the error text without argument context.
func (e *Error) Message() string { return e.msg }

// WithArgument returns a copy of e attributed to the named call argument.
// Errors already attributed to an argument are returned unchanged.
func (e *Error) WithArgument(name string) *Error {
	if e.Argument != "" {
		return e
	}
	cp := *e
	cp.Argument = name
	return &cp
}

func NewMismatchError(expected, actual Type) *Error {
	// both types share one naming of type-variables
	names := TypeStrings(expected, actual)
	return &Error{
		Kind:     TypeMismatch,
		Expected: expected,
		Actual:   actual,
		msg:      "expected " + names[0] + " but found " + names[1],
	}
}

// NewLabelMismatchError reports two distinct labels where one label is required.
func NewLabelMismatchError(expected, actual *Label) *Error {
	return &Error{
		Kind:     TypeMismatch,
		Expected: expected,
		Actual:   actual,
		msg:      "expected label " + strconv.Quote(expected.Name) + " but found label " + strconv.Quote(actual.Name),
	}
}

func NewMissingLabelError(label string) *Error {
	return &Error{Kind: MissingLabel, Label: label, msg: "record is missing label " + label}
}

func NewKindError(t Type, k Kind) *Error {
	return &Error{Kind: KindViolation, Actual: t, Constraint: k, msg: TypeString(t) + " is not " + k.String()}
}

func NewNotALabelError(t Type) *Error {
	return &Error{Kind: NotALabel, Actual: t, msg: TypeString(t) + " is not a label"}
}

func NewMissingArgumentError(name string) *Error {
	return &Error{Kind: MissingArgument, Label: name, msg: "missing required argument " + name}
}

func NewExtraArgumentError(name string) *Error {
	return &Error{Kind: ExtraArgument, Label: name, msg: "found unexpected argument " + name}
}

func NewMissingPipeError() *Error {
	return &Error{Kind: MissingPipe, msg: "missing pipe argument"}
}

func NewExtraPipeError() *Error {
	return &Error{Kind: ExtraPipe, msg: "function does not take a pipe argument"}
}

func NewNotAFunctionError(t Type) *Error {
	return &Error{Kind: NotAFunction, Actual: t, msg: "cannot call a value of type " + TypeString(t)}
}

func NewOccursError(tv *Var, t Type) *Error {
	return &Error{Kind: OccursCheck, Expected: tv, Actual: t, msg: "recursive types are not supported: type variable occurs in " + TypeString(t)}
}

func NewUnknownIdentifierError(name string) *Error {
	return &Error{Kind: UnknownIdentifier, Label: name, msg: "undefined identifier " + name}
}

func NewNotFoundError(path string) *Error {
	return &Error{Kind: NotFound, Label: path, msg: "could not find package " + fmt.Sprintf("%q", path)}
}

// Errorf creates an error of the given kind with a formatted message.
func Errorf(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...)}
}
