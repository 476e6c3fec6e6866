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

package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Mohamedkrs/flux"
	"github.com/Mohamedkrs/flux/diagnostic"
	"github.com/Mohamedkrs/flux/feature"
	"github.com/Mohamedkrs/flux/internal/config"
	"github.com/Mohamedkrs/flux/types"
)

type checker struct {
	env      *flux.TypeEnv
	importer flux.Importer
	features feature.Set
	logger   *zap.Logger
}

func newChecker(c *config.Config, logger *zap.Logger) (*checker, error) {
	env, err := c.Environment()
	if err != nil {
		return nil, err
	}
	importer, err := c.Importer(logger)
	if err != nil {
		return nil, err
	}
	return &checker{env: env, importer: importer, features: c.Features, logger: logger}, nil
}

func (c *checker) context(name string) *flux.InferenceContext {
	return flux.NewContext(
		flux.WithFeatures(c.features),
		flux.WithImporter(c.importer),
		flux.WithLogger(c.logger.With(zap.String("file", name))))
}

// result is the printed outcome of checking one source.
type result struct {
	out string
	ok  bool
}

// check infers src within env. The program is nil when src did not type-check.
func (c *checker) check(name, src string, env *flux.TypeEnv) (*flux.Program, result) {
	prog, err := c.context(name).InferSource(name, src, env)
	if err != nil {
		list, ok := err.(diagnostic.List)
		if !ok {
			return nil, result{out: fmt.Sprintf("%s: %s\n", name, err)}
		}
		return nil, result{out: list.Render(diagnostic.NewSource(name, src))}
	}
	lines := lo.Map(prog.Bindings, func(b *flux.Binding, _ int) string {
		return b.Name + ": " + types.TypeString(b.Type) + "\n"
	})
	return prog, result{out: strings.Join(lines, ""), ok: true}
}

// checkFiles checks the named files concurrently and prints their results in order. It
// reports whether every file type-checked.
func (c *checker) checkFiles(names []string, w io.Writer) (bool, error) {
	results := make([]result, len(names))
	var group errgroup.Group
	group.SetLimit(runtime.GOMAXPROCS(0))
	for i, name := range names {
		i, name := i, name
		group.Go(func() error {
			src, err := os.ReadFile(name)
			if err != nil {
				return err
			}
			// each file sees the configured environment, not the other files
			_, results[i] = c.check(name, string(src), c.env)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return false, err
	}
	for i, r := range results {
		if len(names) > 1 {
			fmt.Fprintf(w, "== %s\n", names[i])
		}
		io.WriteString(w, r.out)
	}
	return lo.EveryBy(results, func(r result) bool { return r.ok }), nil
}
