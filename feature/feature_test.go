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

package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSet(t *testing.T) {
	var s Set
	assert.False(t, s.Enabled(LabelPolymorphism))
	assert.Empty(t, s.Flags())

	s2 := s.With(LabelPolymorphism)
	assert.True(t, s2.Enabled(LabelPolymorphism))
	assert.False(t, s.Enabled(LabelPolymorphism), "With must not modify the receiver")
	assert.Equal(t, NewSet(LabelPolymorphism), s2)
	assert.Equal(t, "[labelPolymorphism]", s2.String())
}

func TestParse(t *testing.T) {
	f, err := Parse("LabelPolymorphism")
	require.NoError(t, err)
	assert.Equal(t, LabelPolymorphism, f)

	_, err = Parse("nope")
	assert.EqualError(t, err, `unknown feature "nope"`)

	s, err := ParseSet(" labelPolymorphism, ")
	require.NoError(t, err)
	assert.True(t, s.Enabled(LabelPolymorphism))
}

func TestYAML(t *testing.T) {
	var cfg struct {
		Features Set `yaml:"features"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("features: [labelPolymorphism]\n"), &cfg))
	assert.True(t, cfg.Features.Enabled(LabelPolymorphism))

	out, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	assert.Equal(t, "features:\n    - labelPolymorphism\n", string(out))

	err = yaml.Unmarshal([]byte("features: [bogus]\n"), &cfg)
	assert.ErrorContains(t, err, `unknown feature "bogus"`)
}
