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
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/samber/lo"

	"github.com/Mohamedkrs/flux"
	"github.com/Mohamedkrs/flux/types"
)

const historyFile = ".fluxcheck_history"

// session accumulates the bindings of the lines checked so far.
type session struct {
	chk *checker
	env *flux.TypeEnv
	n   int
}

func newSession(chk *checker) *session {
	return &session{chk: chk, env: flux.NewTypeEnv(chk.env)}
}

// eval checks one line. Bindings of lines which type-check stay visible to later lines.
func (s *session) eval(line string, w io.Writer) {
	if strings.HasPrefix(line, ":") {
		s.command(line, w)
		return
	}
	s.n++
	prog, r := s.chk.check(fmt.Sprintf("line%d", s.n), line, s.env)
	io.WriteString(w, r.out)
	if prog == nil {
		return
	}
	for _, b := range prog.Bindings {
		s.env.Assign(b.Name, b.Type)
	}
}

func (s *session) command(line string, w io.Writer) {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":env":
		for _, name := range s.env.Names() {
			fmt.Fprintf(w, "%s: %s\n", name, types.TypeString(s.env.Lookup(name)))
		}
	case ":type":
		for _, name := range fields[1:] {
			if t := s.env.Lookup(name); t != nil {
				fmt.Fprintf(w, "%s: %s\n", name, types.TypeString(t))
			} else {
				fmt.Fprintf(w, "%s is not defined\n", name)
			}
		}
	case ":reset":
		s.env, s.n = flux.NewTypeEnv(s.chk.env), 0
	default:
		commands := []string{":env", ":type", ":reset", ":quit"}
		fmt.Fprintf(w, "unknown command %s (commands: %s)\n", fields[0],
			strings.Join(lo.Without(commands, fields[0]), ", "))
	}
}

func repl(chk *checker, stdout, stderr io.Writer) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	s := newSession(chk)
	for {
		line, err := ln.Prompt("> ")
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				fmt.Fprintln(stderr, "fluxcheck:", err)
			}
			fmt.Fprintln(stdout)
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ":quit" {
			break
		}
		ln.AppendHistory(line)
		s.eval(line, stdout)
	}

	if f, err := os.Create(histPath); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
	return 0
}
