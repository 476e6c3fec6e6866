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

// Command fluxcheck type-checks Flux source files.
//
//	fluxcheck [-config file] [-features list] [-v] [-i] [files...]
//
// The type of every top-level binding is printed. Type errors are printed as rendered
// diagnostics, and make fluxcheck exit with status 1.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Mohamedkrs/flux/feature"
	"github.com/Mohamedkrs/flux/internal/config"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("fluxcheck", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "YAML configuration `file`")
	features := flags.String("features", "", "comma-separated `list` of features to enable")
	verbose := flags.Bool("v", false, "log debug output to stderr")
	interactive := flags.Bool("i", false, "check lines read from the terminal")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	c, err := loadConfig(*configPath, *features, *verbose)
	if err != nil {
		fmt.Fprintln(stderr, "fluxcheck:", err)
		return 2
	}
	logger, err := c.Logger()
	if err != nil {
		fmt.Fprintln(stderr, "fluxcheck:", err)
		return 2
	}
	defer logger.Sync()

	chk, err := newChecker(c, logger)
	if err != nil {
		fmt.Fprintln(stderr, "fluxcheck:", err)
		return 2
	}
	if *interactive {
		return repl(chk, stdout, stderr)
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return 2
	}
	ok, err := chk.checkFiles(flags.Args(), stdout)
	if err != nil {
		fmt.Fprintln(stderr, "fluxcheck:", err)
		return 2
	}
	if !ok {
		return 1
	}
	return 0
}

// loadConfig reads the configuration file, if any, and applies the command-line overrides.
func loadConfig(path, features string, verbose bool) (*config.Config, error) {
	c := &config.Config{}
	if path != "" {
		var err error
		if c, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	extra, err := feature.ParseSet(features)
	if err != nil {
		return nil, err
	}
	c.Features = c.Features.Union(extra)
	if verbose {
		c.Log = config.Log{Level: zap.DebugLevel.String(), Development: true}
	}
	return c, nil
}
