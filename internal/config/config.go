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

// Package config loads the YAML configuration of the checker: enabled features, the
// builtin environment, importable packages and logging.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"github.com/Mohamedkrs/flux"
	"github.com/Mohamedkrs/flux/ast"
	"github.com/Mohamedkrs/flux/diagnostic"
	"github.com/Mohamedkrs/flux/feature"
	"github.com/Mohamedkrs/flux/internal/util"
	"github.com/Mohamedkrs/flux/parser"
)

// Config is read once and not modified afterwards.
//
//	features: [labelPolymorphism]
//	env:
//	  fill: "(<-tables: [{A with B: C}], ?column: B, ?value: D) => [{A with B: D}] where B: Label"
//	packages:
//	  experimental/universe:
//	    signatures:
//	      columns: "(<-tables: stream[A], ?column: C) => stream[{C: string}] where A: Record, C: Label"
//	  my/strings:
//	    files: [strings.flux]
//	log:
//	  level: debug
type Config struct {
	Features feature.Set        `yaml:"features"`
	Env      map[string]string  `yaml:"env"`
	Packages map[string]Package `yaml:"packages"`
	Log      Log                `yaml:"log"`

	// directory which relative file names are resolved against
	dir string
}

// Package declares an importable package by type signatures, Flux source files, or both.
// Signatures are visible to the package's source files.
type Package struct {
	Signatures map[string]string `yaml:"signatures,omitempty"`
	Files      []string          `yaml:"files,omitempty"`
}

type Log struct {
	Level       string `yaml:"level,omitempty"`
	Development bool   `yaml:"development,omitempty"`
}

// Load reads the configuration file at path. Source files named in the configuration are
// relative to the directory containing it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c.dir = filepath.Dir(path)
	return c, nil
}

// Parse decodes a configuration. Unknown keys are an error.
func Parse(data []byte) (*Config, error) {
	c := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return c, nil
}

// Logger builds the configured logger. Without a level, nothing is logged.
func (c *Config) Logger() (*zap.Logger, error) {
	if c.Log.Level == "" {
		return zap.NewNop(), nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	cfg := zap.NewProductionConfig()
	if c.Log.Development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}

// Environment declares the configured signatures in a new root environment.
func (c *Config) Environment() (*flux.TypeEnv, error) {
	env := flux.NewTypeEnv(nil)
	if err := declare(env, c.Env); err != nil {
		return nil, fmt.Errorf("env: %w", err)
	}
	return env, nil
}

func declare(env *flux.TypeEnv, signatures map[string]string) error {
	names := lo.Keys(signatures)
	slices.Sort(names)
	for _, name := range names {
		if err := env.DeclareSignature(name, signatures[name]); err != nil {
			return &flux.SignatureError{Name: name, Err: err}
		}
	}
	return nil
}

// SourceError holds the diagnostics of a source file together with its text.
type SourceError struct {
	Source      *diagnostic.Source
	Diagnostics diagnostic.List
}

func (e *SourceError) Error() string {
	return strings.TrimRight(e.Diagnostics.Render(e.Source), "\n")
}

func (e *SourceError) Unwrap() error { return e.Diagnostics }

// Importer builds every configured package. Packages defined by source files are checked
// after the packages they import, and export their top-level bindings.
func (c *Config) Importer(logger *zap.Logger) (flux.PackageMap, error) {
	pkgs := flux.PackageMap{}
	files := make(map[string][]*ast.File)
	sources := make(map[*ast.File]*diagnostic.Source)
	imports := make(map[string][]string)
	for path, p := range c.Packages {
		if len(p.Files) == 0 {
			pkg, err := flux.NewPackage(path, p.Signatures)
			if err != nil {
				return nil, fmt.Errorf("package %s: %w", path, err)
			}
			pkgs.Add(pkg)
			continue
		}
		for _, name := range p.Files {
			file, src, err := c.parseFile(name)
			if err != nil {
				return nil, fmt.Errorf("package %s: %w", path, err)
			}
			sources[file] = src
			files[path] = append(files[path], file)
			imports[path] = append(imports[path], lo.Map(file.Imports, func(imp *ast.ImportDeclaration, _ int) string {
				return imp.Path.Value
			})...)
		}
	}

	order, err := util.ImportOrder(imports)
	if err != nil {
		return nil, err
	}
	for _, path := range order {
		env := flux.NewTypeEnv(nil)
		if err := declare(env, c.Packages[path].Signatures); err != nil {
			return nil, fmt.Errorf("package %s: %w", path, err)
		}
		ti := flux.NewContext(
			flux.WithFeatures(c.Features),
			flux.WithLogger(logger.With(zap.String("package", path))),
			flux.WithImporter(pkgs))
		for _, file := range files[path] {
			prog, err := ti.Infer(file, env)
			if err != nil {
				if list, ok := err.(diagnostic.List); ok {
					err = &SourceError{Source: sources[file], Diagnostics: list}
				}
				return nil, fmt.Errorf("package %s: %w", path, err)
			}
			// later files see the bindings of earlier ones
			for _, b := range prog.Bindings {
				env.Assign(b.Name, b.Type)
			}
		}
		pkgs.Add(&flux.Package{Path: path, Env: env})
		logger.Debug("checked source package", zap.String("package", path), zap.Int("files", len(files[path])))
	}
	return pkgs, nil
}

func (c *Config) resolve(name string) string {
	if filepath.IsAbs(name) || c.dir == "" {
		return name
	}
	return filepath.Join(c.dir, name)
}

func (c *Config) parseFile(name string) (*ast.File, *diagnostic.Source, error) {
	text, err := os.ReadFile(c.resolve(name))
	if err != nil {
		return nil, nil, err
	}
	src := diagnostic.NewSource(name, string(text))
	file, err := parser.Parse(name, string(text))
	if err != nil {
		return nil, nil, &SourceError{Source: src, Diagnostics: err.(diagnostic.List)}
	}
	return file, src, nil
}
