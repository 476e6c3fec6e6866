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

package typeutil

import (
	"go.uber.org/zap"

	"github.com/Mohamedkrs/flux/feature"
	"github.com/Mohamedkrs/flux/types"
)

// DeferredRecord is a record unification which depends on a label variable that has not yet
// been resolved.
type DeferredRecord struct {
	Expected *types.Record
	Actual   *types.Record
}

// CommonContext holds the mutable state of a single inference pass.
type CommonContext struct {
	VarTracker VarTracker
	InstLookup map[*types.Var]*types.Var // instantiation lookup for generic type-variables
	Features   feature.Set
	Logger     *zap.Logger

	// record unifications waiting on label variables; see BeginDeferral
	Deferred   []DeferredRecord
	deferDepth int
}

func (ctx *CommonContext) Init(features feature.Set, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx.Features, ctx.Logger = features, logger
	ctx.InstLookup = make(map[*types.Var]*types.Var, 16)
}

func (ctx *CommonContext) Reset() {
	ctx.VarTracker.Reset()
	ctx.ClearInstantiationLookup()
	ctx.Deferred, ctx.deferDepth = ctx.Deferred[:0], 0
}

func (ctx *CommonContext) ClearInstantiationLookup() {
	for k := range ctx.InstLookup {
		delete(ctx.InstLookup, k)
	}
}

// LabelPolymorphism reports whether string literals are typed as labels.
func (ctx *CommonContext) LabelPolymorphism() bool {
	return ctx.Features.Enabled(feature.LabelPolymorphism)
}

// BeginDeferral opens a scope in which record unifications that hinge on unresolved label variables
// are postponed. The returned mark must be passed to EndDeferral.
func (ctx *CommonContext) BeginDeferral() int {
	ctx.deferDepth++
	return len(ctx.Deferred)
}

// EndDeferral closes the innermost deferral scope. Postponed unifications are retried until no
// more labels resolve. Those still waiting are handed to the enclosing scope, or unified without
// knowing their labels when no scope remains.
func (ctx *CommonContext) EndDeferral(mark int) []error {
	ctx.deferDepth--
	pending := append([]DeferredRecord(nil), ctx.Deferred[mark:]...)
	ctx.Deferred = ctx.Deferred[:mark]

	var errs []error
	for progress := true; progress && len(pending) > 0; {
		progress = false
		var waiting []DeferredRecord
		for _, d := range pending {
			if ctx.hasUnresolvedLabels(d.Expected) || ctx.hasUnresolvedLabels(d.Actual) {
				waiting = append(waiting, d)
				continue
			}
			progress = true
			if err := ctx.unifyRecords(d.Expected, d.Actual); err != nil {
				errs = append(errs, err)
			}
		}
		pending = waiting
	}
	if len(pending) == 0 {
		return errs
	}
	if ctx.deferDepth > 0 {
		ctx.Deferred = append(ctx.Deferred, pending...)
		return errs
	}
	for _, d := range pending {
		ctx.Logger.Debug("unifying records with unresolved labels",
			zap.String("expected", types.TypeString(d.Expected)),
			zap.String("actual", types.TypeString(d.Actual)))
		if err := ctx.unifyRecords(d.Expected, d.Actual); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
