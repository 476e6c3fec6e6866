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

// Package fluxtest runs type-inference tests described by YAML files.
//
// Each file holds one test:
//
//	features: [labelPolymorphism]
//	env:
//	  fill: "(<-tables: [{A with B: C}], ?column: B, ?value: D) => [{A with B: D}] where B: Label"
//	source: |
//	  x = [{a: 1}] |> fill(column: "a", value: "x")
//	types: |
//	  x: [{a: string}]
//
// types lists every top-level binding in file order. errors holds the rendered diagnostics,
// and is empty when the source must type-check.
package fluxtest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"github.com/Mohamedkrs/flux"
	"github.com/Mohamedkrs/flux/diagnostic"
	"github.com/Mohamedkrs/flux/feature"
	"github.com/Mohamedkrs/flux/types"
)

type FluxTest struct {
	Skip     string                       `yaml:"skip,omitempty"`
	Features feature.Set                  `yaml:"features,omitempty"`
	Env      map[string]string            `yaml:"env,omitempty"`
	Packages map[string]map[string]string `yaml:"packages,omitempty"`
	Source   string                       `yaml:"source"`
	Types    string                       `yaml:"types,omitempty"`
	Errors   string                       `yaml:"errors,omitempty"`
}

type Bundle struct {
	TestName string
	FileName string
	Test     *FluxTest
	Error    error
}

func Load(dirname string) ([]Bundle, error) {
	var bundles []Bundle
	entries, err := os.ReadDir(dirname)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		filename := e.Name()
		const dotyaml = ".yaml"
		if !strings.HasSuffix(filename, dotyaml) {
			continue
		}
		testname := strings.TrimSuffix(filename, dotyaml)
		filename = filepath.Join(dirname, filename)
		ft, err := FromYAMLFile(filename)
		bundles = append(bundles, Bundle{testname, filename, ft, err})
	}
	return bundles, nil
}

// Run runs every test in the directory named dirname, each in a subtest named after its file.
func Run(t *testing.T, dirname string) {
	bundles, err := Load(dirname)
	if err != nil {
		t.Fatal(err)
	}
	for _, b := range bundles {
		b := b
		t.Run(b.TestName, func(t *testing.T) {
			t.Parallel()
			if b.Error != nil {
				t.Fatalf("%s: %s", b.FileName, b.Error)
			}
			b.Test.Run(t, b.FileName)
		})
	}
}

// FromYAMLFile loads a test from the YAML file named filename. Unknown keys are an error.
func FromYAMLFile(filename string) (*FluxTest, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	var ft FluxTest
	if err := dec.Decode(&ft); err != nil {
		return nil, err
	}
	return &ft, nil
}

func (ft *FluxTest) Run(t *testing.T, filename string) {
	if ft.Skip != "" {
		t.Skip("skipping test:", ft.Skip)
	}
	if err := ft.RunInternal(); err != nil {
		t.Fatalf("%s: %s", filename, err)
	}
}

// RunInternal infers the source and compares the types and diagnostics with the expected ones.
func (ft *FluxTest) RunInternal() error {
	env, importer, err := ft.environment()
	if err != nil {
		return fmt.Errorf("bad test environment: %w", err)
	}
	ti := flux.NewContext(flux.WithFeatures(ft.Features), flux.WithImporter(importer))
	prog, err := ti.InferSource("main", ft.Source, env)

	var typesErr, errorsErr error
	if prog != nil && (ft.Types != "" || ft.Errors == "") {
		if out := typeTable(prog); normalize(out) != normalize(ft.Types) {
			typesErr = diffErr("types", normalize(ft.Types), normalize(out))
		}
	}
	var rendered string
	if err != nil {
		var list diagnostic.List
		if !errors.As(err, &list) {
			return err
		}
		rendered = list.Render(diagnostic.NewSource("main", ft.Source))
	}
	if normalize(rendered) != normalize(ft.Errors) {
		errorsErr = diffErr("errors", normalize(ft.Errors), normalize(rendered))
	}
	return errors.Join(typesErr, errorsErr)
}

func (ft *FluxTest) environment() (*flux.TypeEnv, flux.PackageMap, error) {
	env := flux.NewTypeEnv(nil)
	names := lo.Keys(ft.Env)
	slices.Sort(names)
	for _, name := range names {
		if err := env.DeclareSignature(name, ft.Env[name]); err != nil {
			return nil, nil, &flux.SignatureError{Name: name, Err: err}
		}
	}
	importer := flux.PackageMap{}
	for path, members := range ft.Packages {
		pkg, err := flux.NewPackage(path, members)
		if err != nil {
			return nil, nil, err
		}
		importer.Add(pkg)
	}
	return env, importer, nil
}

func typeTable(prog *flux.Program) string {
	var b strings.Builder
	for _, binding := range prog.Bindings {
		fmt.Fprintf(&b, "%s: %s\n", binding.Name, types.TypeString(binding.Type))
	}
	return b.String()
}

// normalize ends non-empty text with exactly one newline.
func normalize(s string) string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return ""
	}
	return s + "\n"
}

// diffErr reports a line diff of expected and actual. SplitLines yields a spurious empty
// last line for newline-terminated text, so the final newline is trimmed first.
func diffErr(name, expected, actual string) error {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(strings.TrimSuffix(expected, "\n")),
		FromFile: "expected",
		B:        difflib.SplitLines(strings.TrimSuffix(actual, "\n")),
		ToFile:   "actual",
		Context:  5,
	})
	if err != nil {
		panic("fluxtest: " + err.Error())
	}
	return fmt.Errorf("expected and actual %s differ:\n%s", name, diff)
}
