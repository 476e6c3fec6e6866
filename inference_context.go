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

	"go.uber.org/zap"

	"github.com/Mohamedkrs/flux/ast"
	"github.com/Mohamedkrs/flux/diagnostic"
	"github.com/Mohamedkrs/flux/feature"
	"github.com/Mohamedkrs/flux/internal/typeutil"
	"github.com/Mohamedkrs/flux/parser"
	"github.com/Mohamedkrs/flux/types"
)

// InferenceContext is a reusable context for type inference.
//
// An inference context cannot be used concurrently.
type InferenceContext struct {
	common   typeutil.CommonContext
	features feature.Set
	logger   *zap.Logger
	importer Importer

	annotate   bool
	needsReset bool
	diags      diagnostic.List
}

// Option configures an inference context.
type Option func(*InferenceContext)

// WithFeatures enables optional language features.
func WithFeatures(features feature.Set) Option {
	return func(ti *InferenceContext) { ti.features = features }
}

// WithLogger sets the logger for debug output. By default nothing is logged.
func WithLogger(logger *zap.Logger) Option {
	return func(ti *InferenceContext) { ti.logger = logger }
}

// WithImporter sets the importer which resolves import declarations. By default no packages
// can be imported.
func WithImporter(importer Importer) Option {
	return func(ti *InferenceContext) { ti.importer = importer }
}

// Create a new type-inference context. A context may be reused for inference.
func NewContext(opts ...Option) *InferenceContext {
	ti := &InferenceContext{logger: zap.NewNop(), importer: PackageMap{}}
	for _, opt := range opts {
		opt(ti)
	}
	ti.common.Init(ti.features, ti.logger)
	return ti
}

// Features returns the enabled language features.
func (ti *InferenceContext) Features() feature.Set { return ti.features }

func (ti *InferenceContext) reset() {
	ti.common.Reset()
	ti.diags, ti.needsReset = nil, false
}

// Infer the types of the statements of file within env. The type-annotated copy of file is
// returned in the program. Top-level bindings are declared in a child of env, so env is not
// modified.
//
// Type errors are returned as a diagnostic.List, together with the program.
func (ti *InferenceContext) Infer(file *ast.File, env *TypeEnv) (*Program, error) {
	ti.annotate = true
	prog, err := ti.inferRoot(ast.CopyFile(file), env)
	ti.annotate = false
	return prog, err
}

// Infer the types of the statements of file within env. Type-annotations will be added directly to file.
func (ti *InferenceContext) InferDirect(file *ast.File, env *TypeEnv) (*Program, error) {
	ti.annotate = true
	prog, err := ti.inferRoot(file, env)
	ti.annotate = false
	return prog, err
}

// InferSource parses and infers a source file. Syntax errors are returned as a diagnostic.List
// without inferring types.
func (ti *InferenceContext) InferSource(name, src string, env *TypeEnv) (*Program, error) {
	file, err := parser.Parse(name, src)
	if err != nil {
		return nil, err
	}
	return ti.InferDirect(file, env)
}

// InferExpr infers the type of expr within env. The expression is not annotated.
func (ti *InferenceContext) InferExpr(expr ast.Expr, env *TypeEnv) (types.Type, error) {
	if expr == nil {
		return nil, errors.New("empty expression")
	}
	if ti.needsReset {
		ti.reset()
	}
	scope := NewTypeEnv(env)
	ti.continueVarIds(scope)
	t := ti.infer(scope, types.TopLevel+1, expr)
	ti.common.VarTracker.FlattenLinks()
	t = types.RealType(t)
	ti.diags.Sort()
	err := ti.diags.Err()
	ti.needsReset = true
	return t, err
}

func (ti *InferenceContext) inferRoot(file *ast.File, env *TypeEnv) (*Program, error) {
	if file == nil {
		return nil, errors.New("empty file")
	}
	if ti.needsReset {
		ti.reset()
	}
	scope := NewTypeEnv(env)
	ti.continueVarIds(scope)
	prog := &Program{File: file, Env: scope}
	ti.inferImports(scope, file.Imports)
	for _, stmt := range file.Body {
		if b := ti.inferStmt(scope, types.TopLevel, stmt); b != nil {
			prog.Bindings = append(prog.Bindings, b)
		}
	}
	ti.common.VarTracker.FlattenLinks()
	for _, b := range prog.Bindings {
		b.Type = types.RealType(b.Type)
	}
	scope.NextVarId = ti.common.VarTracker.NextId
	ti.logger.Debug("inferred file",
		zap.String("file", file.Name),
		zap.Int("bindings", len(prog.Bindings)),
		zap.Int("typeVars", ti.common.VarTracker.Count()),
		zap.Int("diagnostics", len(ti.diags)))
	ti.diags.Sort()
	err := ti.diags.Err()
	ti.needsReset = true
	return prog, err
}

// continueVarIds numbers new type-variables after those already declared in env, so ids
// stay unique across the environment chain.
func (ti *InferenceContext) continueVarIds(env *TypeEnv) {
	ti.common.VarTracker.NextId = max(ti.common.VarTracker.NextId, env.NextVarId)
}

func (ti *InferenceContext) inferImports(env *TypeEnv, imports []*ast.ImportDeclaration) {
	for _, imp := range imports {
		pkg, err := ti.importer.Import(imp.Path.Value)
		if err != nil {
			ti.report(imp.Path.Loc, err)
			continue
		}
		env.Import(imp.Name(), pkg)
	}
}

func (ti *InferenceContext) report(loc ast.Loc, err error) *diagnostic.Diagnostic {
	d := diagnostic.New(loc, err)
	ti.diags.Add(d)
	return d
}
