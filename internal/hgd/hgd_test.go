// Copyright 2013 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hgd

import (
	mrand "math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// scriptedSource is a deterministic test double for RandIntModer, letting
// HGD be driven by a fixed sequence of draws instead of a real keystream.
type scriptedSource struct {
	values []uint64
	i      int
}

func (s *scriptedSource) RandIntMod(max uint64) uint64 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.i%len(s.values)]
	s.i++
	return v % max
}

// mathRandSource adapts math/rand to RandIntModer for statistical tests.
type mathRandSource struct {
	r *mrand.Rand
}

func (s mathRandSource) RandIntMod(max uint64) uint64 {
	if max == 0 {
		return 0
	}
	return uint64(s.r.Int63n(int64(max)))
}

func TestSampleDegenerate(t *testing.T) {
	src := &scriptedSource{values: []uint64{0, 1, 2, 3}}
	got, err := Sample(10, 10, 0, src)
	assert.NoError(t, err)
	assert.Equal(t, uint64(10), got)
}

func TestSampleInvalidInputs(t *testing.T) {
	src := &scriptedSource{}
	_, err := Sample(100, 10, 10, src)
	assert.ErrorIs(t, err, ErrInvalidInputs)
}

func TestSampleSupport(t *testing.T) {
	cases := []struct {
		k, n1, n2 uint64
	}{
		{10, 20, 30},
		{50, 50, 50},
		{10000, 10000, 10000},
		{1, 1, 1},
		{0, 5, 5},
		{5, 5, 0},
	}
	r := mrand.New(mrand.NewSource(1))
	src := mathRandSource{r}
	for _, c := range cases {
		for i := 0; i < 50; i++ {
			got, err := Sample(c.k, c.n1, c.n2, src)
			assert.NoError(t, err)

			var minjx uint64
			if c.k > c.n2 {
				minjx = c.k - c.n2
			}
			maxjx := c.n1
			if c.k < maxjx {
				maxjx = c.k
			}
			assert.GreaterOrEqual(t, got, minjx)
			assert.LessOrEqual(t, got, maxjx)
		}
	}
}

func TestSampleMeanConvergesInverseTransformBranch(t *testing.T) {
	// K=10, N1=20, N2=30 exercises the inverse-transform branch (m - minjx < 10).
	const k, n1, n2 = 10, 20, 30
	const trials = 4000

	r := mrand.New(mrand.NewSource(2))
	src := mathRandSource{r}

	var sum float64
	for i := 0; i < trials; i++ {
		got, err := Sample(k, n1, n2, src)
		assert.NoError(t, err)
		sum += float64(got)
	}
	mean := sum / trials
	want := float64(k) * float64(n1) / float64(n1+n2)
	assert.InDelta(t, want, mean, 0.5)
}

func TestSampleMeanConvergesH2PEBranch(t *testing.T) {
	// K=10000, N1=10000, N2=10000 exercises the H2PE rectangle/tails branch.
	const k, n1, n2 = 10000, 10000, 10000
	const trials = 500

	r := mrand.New(mrand.NewSource(3))
	src := mathRandSource{r}

	var sum float64
	for i := 0; i < trials; i++ {
		got, err := Sample(k, n1, n2, src)
		assert.NoError(t, err)
		sum += float64(got)
	}
	mean := sum / trials
	want := float64(k) * float64(n1) / float64(n1+n2)
	assert.InDelta(t, want, mean, 200.0)
}
