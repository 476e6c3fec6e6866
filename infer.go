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
	"github.com/agnivade/levenshtein"
	"go.uber.org/zap"

	"github.com/Mohamedkrs/flux/ast"
	"github.com/Mohamedkrs/flux/diagnostic"
	"github.com/Mohamedkrs/flux/types"
)

// typeStringer defers printing a type until a log entry is written.
type typeStringer struct{ t types.Type }

func (s typeStringer) String() string { return types.TypeString(s.t) }

func (ti *InferenceContext) newVar(level int, kinds ...types.Kind) *types.Var {
	tv := ti.common.VarTracker.New(level)
	for _, k := range kinds {
		tv.AddKind(k)
	}
	return tv
}

// unify reports a failure to unify the expected and actual types at loc.
func (ti *InferenceContext) unify(loc ast.Loc, expected, actual types.Type) *diagnostic.Diagnostic {
	if err := ti.common.Unify(expected, actual); err != nil {
		return ti.report(loc, err)
	}
	return nil
}

func (ti *InferenceContext) inferStmt(env *TypeEnv, level int, stmt ast.Stmt) *Binding {
	switch s := stmt.(type) {
	case *ast.VariableAssignment:
		return ti.inferAssignment(env, level, s, nil, s)

	case *ast.OptionStatement:
		// an option may be reassigned, but keeps its type
		prev := env.Lookup(s.Assignment.ID.Name)
		return ti.inferAssignment(env, level, s.Assignment, prev, s)

	case *ast.ExpressionStatement:
		ti.infer(env, level, s.Expression)

	case *ast.ReturnStatement:
		ti.infer(env, level, s.Argument)
		ti.diags.Add(diagnostic.Errorf(s.Loc, "return is only allowed at the end of a function body"))

	case *ast.BuiltinStatement:
		name := s.ID.Name
		t, err := types.ParseWith(s.Signature, ti.common.VarTracker.NewGeneric)
		if err != nil {
			ti.report(s.Loc, err)
			env.Assign(name, types.Invalid{})
			return nil
		}
		env.Assign(name, t)
		return &Binding{Name: name, Type: t, Stmt: s}
	}
	return nil
}

func (ti *InferenceContext) inferAssignment(env *TypeEnv, level int, s *ast.VariableAssignment, prev types.Type, stmt ast.Stmt) *Binding {
	t := ti.infer(env, level+1, s.Init)
	if prev != nil {
		ti.unify(s.Init.Location(), ti.common.Instantiate(level+1, prev), t)
	}
	t = types.GeneralizeAtLevel(level, t)
	env.Assign(s.ID.Name, t)
	if ti.annotate {
		s.ID.SetType(t)
	}
	if ce := ti.logger.Check(zap.DebugLevel, "generalized binding"); ce != nil {
		// type-variables left free are shared by every use of the binding
		ce.Write(
			zap.String("name", s.ID.Name),
			zap.Stringer("type", typeStringer{t}),
			zap.Int("level", level),
			zap.Int("freeVars", types.FreeVars(t).Size()))
	}
	return &Binding{Name: s.ID.Name, Type: t, Stmt: stmt}
}

func (ti *InferenceContext) infer(env *TypeEnv, level int, e ast.Expr) types.Type {
	t := ti.inferExpr(env, level, e)
	if ti.annotate {
		e.SetType(t)
	}
	return t
}

func (ti *InferenceContext) inferExpr(env *TypeEnv, level int, e ast.Expr) types.Type {
	switch e := e.(type) {
	case *ast.Identifier:
		return ti.lookup(env, level, e.Name, e.Loc)

	case *ast.IntegerLiteral:
		return types.Int

	case *ast.FloatLiteral:
		return types.Float

	case *ast.StringLiteral:
		if ti.common.LabelPolymorphism() {
			return &types.Label{Name: e.Value}
		}
		return types.String

	case *ast.BooleanLiteral:
		return types.Bool

	case *ast.DurationLiteral:
		return types.Duration

	case *ast.DateTimeLiteral:
		return types.Time

	case *ast.BadExpr:
		return types.Invalid{}

	case *ast.ArrayExpr:
		elem := ti.newVar(level)
		for _, el := range e.Elements {
			ti.unify(el.Location(), elem, ti.infer(env, level, el))
		}
		return types.NewArray(elem)

	case *ast.DictExpr:
		key, value := ti.newVar(level, types.Comparable), ti.newVar(level)
		for _, item := range e.Items {
			ti.unify(item.Key.Location(), key, ti.infer(env, level, item.Key))
			ti.unify(item.Val.Location(), value, ti.infer(env, level, item.Val))
		}
		return types.NewDict(key, value)

	case *ast.ObjectExpr:
		return ti.inferObject(env, level, e)

	case *ast.MemberExpr:
		return ti.inferMember(env, level, e)

	case *ast.IndexExpr:
		array := ti.infer(env, level, e.Array)
		index := ti.infer(env, level, e.Index)
		elem := ti.newVar(level)
		ti.unify(e.Array.Location(), types.NewArray(elem), array)
		ti.unify(e.Index.Location(), types.Int, index)
		return elem

	case *ast.CallExpr:
		return ti.inferCall(env, level, e)

	case *ast.PipeExpr:
		return ti.infer(env, level, e.Call)

	case *ast.FunctionExpr:
		return ti.inferFunction(env, level, e)

	case *ast.BinaryExpr:
		return ti.inferBinary(env, level, e)

	case *ast.LogicalExpr:
		ti.unify(e.Left.Location(), types.Bool, ti.infer(env, level, e.Left))
		ti.unify(e.Right.Location(), types.Bool, ti.infer(env, level, e.Right))
		return types.Bool

	case *ast.UnaryExpr:
		arg := ti.infer(env, level, e.Argument)
		switch e.Operator {
		case ast.NotOp:
			ti.unify(e.Argument.Location(), types.Bool, arg)
			return types.Bool
		case ast.ExistsOp:
			return types.Bool
		}
		tv := ti.newVar(level, types.Negatable)
		ti.unify(e.Argument.Location(), tv, arg)
		return tv

	case *ast.ConditionalExpr:
		ti.unify(e.Test.Location(), types.Bool, ti.infer(env, level, e.Test))
		// both branches meet in one variable, which widens labels to string
		tv := ti.newVar(level)
		ti.unify(e.Consequent.Location(), tv, ti.infer(env, level, e.Consequent))
		ti.unify(e.Alternate.Location(), tv, ti.infer(env, level, e.Alternate))
		return tv
	}
	ti.diags.Add(diagnostic.Errorf(e.Location(), "unsupported expression %s", e.ExprName()))
	return types.Invalid{}
}

// lookup instantiates the declared type of an identifier.
func (ti *InferenceContext) lookup(env *TypeEnv, level int, name string, loc ast.Loc) types.Type {
	t := env.Lookup(name)
	if t == nil {
		d := ti.report(loc, types.NewUnknownIdentifierError(name))
		d.Help = suggest(name, env.Names())
		return types.Invalid{}
	}
	return ti.common.Instantiate(level, t)
}

// suggest returns a help message naming the closest candidate within an edit distance of 2.
func suggest(name string, candidates []string) string {
	best, bestDist := "", 3
	for _, c := range candidates {
		if d := levenshtein.ComputeDistance(name, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	if best == "" {
		return ""
	}
	return "did you mean " + best + "?"
}

func (ti *InferenceContext) inferObject(env *TypeEnv, level int, e *ast.ObjectExpr) types.Type {
	var row types.Type = types.RowEmpty{}
	if e.With != nil {
		// the extended value must be a record; its fields are hidden by the new ones
		with := ti.infer(env, level, e.With)
		if ti.unify(e.With.Loc, ti.newVar(level, types.RecordKind), with) != nil {
			row = types.Invalid{}
		} else {
			row = types.RealType(with)
		}
	}
	fields := types.NewTypeMapBuilder()
	for _, p := range e.Properties {
		var t types.Type
		if p.Value != nil {
			t = ti.infer(env, level, p.Value)
		} else {
			t = ti.lookup(env, level, p.Key, p.KeyLoc)
		}
		fields.Set(p.Key, t)
	}
	return types.NewRecord(fields.Build(), nil, row)
}

func (ti *InferenceContext) inferMember(env *TypeEnv, level int, e *ast.MemberExpr) types.Type {
	if id, ok := e.Object.(*ast.Identifier); ok {
		if pkg := env.LookupPackage(id.Name); pkg != nil {
			t := pkg.Member(e.Property)
			if t == nil {
				d := ti.report(e.Loc, types.NewUnknownIdentifierError(id.Name+"."+e.Property))
				d.Help = suggest(e.Property, pkg.Env.Names())
				return types.Invalid{}
			}
			return ti.common.Instantiate(level, t)
		}
	}
	object := ti.infer(env, level, e.Object)
	field := ti.newVar(level)
	expected := types.NewRecord(types.SingletonTypeMap(e.Property, field), nil, ti.newVar(level))
	if ti.unify(e.Object.Location(), expected, object) != nil {
		return types.Invalid{}
	}
	return field
}

var operatorKinds = map[ast.Operator]types.Kind{
	ast.AddOp: types.Addable,
	ast.SubOp: types.Subtractable,
	ast.MulOp: types.Numeric,
	ast.DivOp: types.Divisible,
	ast.ModOp: types.Numeric,
	ast.PowOp: types.Numeric,
	ast.EqOp:  types.Equatable,
	ast.NeqOp: types.Equatable,
	ast.LtOp:  types.Comparable,
	ast.LteOp: types.Comparable,
	ast.GtOp:  types.Comparable,
	ast.GteOp: types.Comparable,
}

func (ti *InferenceContext) inferBinary(env *TypeEnv, level int, e *ast.BinaryExpr) types.Type {
	left := ti.infer(env, level, e.Left)
	right := ti.infer(env, level, e.Right)
	switch e.Operator {
	case ast.RegexEqOp, ast.RegexNeqOp:
		ti.unify(e.Left.Location(), types.String, left)
		ti.unify(e.Right.Location(), types.Regexp, right)
		return types.Bool
	}
	tv := ti.newVar(level, operatorKinds[e.Operator])
	ti.unify(e.Left.Location(), tv, left)
	ti.unify(e.Right.Location(), tv, right)
	switch e.Operator {
	case ast.EqOp, ast.NeqOp, ast.LtOp, ast.LteOp, ast.GtOp, ast.GteOp:
		return types.Bool
	}
	return tv
}

func (ti *InferenceContext) inferFunction(env *TypeEnv, level int, e *ast.FunctionExpr) types.Type {
	scope := NewTypeEnv(env)
	params := make([]types.Param, 0, len(e.Params))
	for _, p := range e.Params {
		tv := ti.newVar(level)
		param := types.Param{Name: p.Key.Name, Type: tv, Pipe: p.Pipe}
		if p.Default != nil {
			ti.unify(p.Default.Location(), tv, ti.infer(env, level, p.Default))
			param.Optional = true
		}
		if ti.annotate {
			p.Key.SetType(tv)
		}
		scope.Assign(p.Key.Name, tv)
		params = append(params, param)
	}
	var ret types.Type
	switch body := e.Body.(type) {
	case *ast.Block:
		ret = ti.inferBlock(scope, level, body)
	case ast.Expr:
		ret = ti.infer(scope, level, body)
	default:
		ret = types.Invalid{}
	}
	return types.NewFunc(params, ret)
}

// inferBlock infers the statements of a function body. The body must end in a return statement.
func (ti *InferenceContext) inferBlock(env *TypeEnv, level int, b *ast.Block) types.Type {
	for i, stmt := range b.Body {
		ret, ok := stmt.(*ast.ReturnStatement)
		if !ok {
			ti.inferStmt(env, level, stmt)
			continue
		}
		t := ti.infer(env, level, ret.Argument)
		if i != len(b.Body)-1 {
			ti.diags.Add(diagnostic.Errorf(b.Body[i+1].Location(), "unreachable statement after return"))
		}
		return t
	}
	ti.diags.Add(diagnostic.Errorf(b.Loc, "missing return statement"))
	return types.Invalid{}
}
