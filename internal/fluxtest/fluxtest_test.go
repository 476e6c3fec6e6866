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

package fluxtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlux(t *testing.T) {
	Run(t, "testdata")
}

func TestDiff(t *testing.T) {
	ft := &FluxTest{
		Source: "x = 1\n",
		Types:  "x: string\n",
	}
	err := ft.RunInternal()
	require.Error(t, err)
	assert.Equal(t, `expected and actual types differ:
--- expected
+++ actual
@@ -1 +1 @@
-x: string
+x: int
`, err.Error())
}

func TestDiffContext(t *testing.T) {
	ft := &FluxTest{
		Source: "x = 1\ny = 2\nz = 3\n",
		Types:  "x: int\ny: string\nz: int\n",
	}
	err := ft.RunInternal()
	require.Error(t, err)
	assert.Equal(t, `expected and actual types differ:
--- expected
+++ actual
@@ -1,3 +1,3 @@
 x: int
-y: string
+y: int
 z: int
`, err.Error())
}

func TestUnexpectedErrors(t *testing.T) {
	ft := &FluxTest{Source: "x = y\n"}
	err := ft.RunInternal()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "+error: undefined identifier y")
}
