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

package flux

import (
	"errors"

	"github.com/samber/lo"

	"github.com/Mohamedkrs/flux/ast"
	"github.com/Mohamedkrs/flux/diagnostic"
	"github.com/Mohamedkrs/flux/types"
)

// callChecker collects the diagnostics of a single call. Errors raised by the call as a whole
// after an argument failed are attached to the first argument diagnostic, since they are usually
// a consequence of it.
type callChecker struct {
	ti    *InferenceContext
	call  *ast.CallExpr
	first *diagnostic.Diagnostic
}

func (c *callChecker) argument(arg *ast.Property, loc ast.Loc, err error) {
	var te *types.Error
	if errors.As(err, &te) {
		err = te.WithArgument(arg.Key)
	}
	d := c.ti.report(loc, err)
	if c.first == nil {
		c.first = d
	}
}

func (c *callChecker) callError(err error) {
	if c.first != nil {
		c.first.AddNote(diagnostic.New(c.call.Loc, err))
		return
	}
	c.ti.report(c.call.Loc, err)
}

func (ti *InferenceContext) inferCall(env *TypeEnv, level int, e *ast.CallExpr) types.Type {
	var pipe types.Type
	if e.Pipe != nil {
		pipe = ti.infer(env, level, e.Pipe)
	}
	callee := ti.infer(env, level, e.Callee)
	args := make([]types.Type, len(e.Arguments))
	for i, arg := range e.Arguments {
		if arg.Value != nil {
			args[i] = ti.infer(env, level, arg.Value)
		} else {
			args[i] = ti.lookup(env, level, arg.Key, arg.KeyLoc)
		}
	}

	switch fn := types.RealType(callee).(type) {
	case *types.Func:
		if ti.annotate {
			e.SetFuncType(fn)
		}
		return ti.checkCall(e, fn, pipe, args)

	case *types.Var:
		// calling a parameter: the call determines its function type
		params := make([]types.Param, len(e.Arguments), len(e.Arguments)+1)
		for i, arg := range e.Arguments {
			params[i] = types.Param{Name: arg.Key, Type: args[i]}
		}
		if pipe != nil {
			params = append(params, types.Param{Name: "<-", Type: pipe, Pipe: true})
		}
		ft := types.NewFunc(params, ti.newVar(level))
		if d := ti.unify(e.Loc, fn, ft); d != nil {
			return types.Invalid{}
		}
		if ti.annotate {
			e.SetFuncType(ft)
		}
		return ft.Return

	case types.Invalid:
		return fn
	}
	ti.report(e.Callee.Location(), types.NewNotAFunctionError(callee))
	return types.Invalid{}
}

// checkCall unifies the arguments of a call with the parameters of fn: named arguments in source
// order, then the pipe argument. Record unifications which need a label variable that a later
// argument resolves are retried once every argument has been seen.
func (ti *InferenceContext) checkCall(e *ast.CallExpr, fn *types.Func, pipe types.Type, args []types.Type) types.Type {
	c := &callChecker{ti: ti, call: e}
	mark := ti.common.BeginDeferral()

	supplied := make(map[string]bool, len(e.Arguments))
	for i, arg := range e.Arguments {
		loc := arg.KeyLoc
		if arg.Value != nil {
			loc = arg.Value.Location()
		}
		if supplied[arg.Key] {
			c.argument(arg, arg.Loc, types.Errorf(types.ExtraArgument, "duplicate argument %s", arg.Key))
			continue
		}
		supplied[arg.Key] = true
		param := fn.Param(arg.Key)
		if param == nil {
			d := ti.report(arg.Loc, types.NewExtraArgumentError(arg.Key))
			d.Help = suggest(arg.Key, lo.Map(fn.Params, func(p types.Param, _ int) string { return p.Name }))
			if c.first == nil {
				c.first = d
			}
			continue
		}
		if err := ti.common.Unify(param.Type, args[i]); err != nil {
			c.argument(arg, loc, err)
		}
	}

	if pp := fn.PipeParam(); pipe != nil {
		switch {
		case pp == nil:
			c.callError(types.NewExtraPipeError())
		case supplied[pp.Name]:
			c.callError(types.Errorf(types.ExtraArgument, "pipe argument %s is also given by name", pp.Name))
		default:
			supplied[pp.Name] = true
			if err := ti.common.Unify(pp.Type, pipe); err != nil {
				c.callError(err)
			}
		}
	}

	for _, p := range fn.Params {
		if p.Optional || supplied[p.Name] {
			continue
		}
		if p.Pipe {
			c.callError(types.NewMissingPipeError())
		} else {
			c.callError(types.NewMissingArgumentError(p.Name))
		}
	}

	for _, err := range ti.common.EndDeferral(mark) {
		c.callError(err)
	}
	return fn.Return
}
