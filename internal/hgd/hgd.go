// Copyright 2013 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package hgd generates hypergeometric-distribution variates using H2PE
// (Kachitvichyanukul & Schmeiser) with an inverse-transform fallback for
// small ranges. It is the workhorse the lazy OPE sampler calls at every
// recursion level to decide how many domain elements fall in the left half
// of the current range.
package hgd

import (
	"errors"
	"math"

	"github.com/maruel/ope/internal/primitives"
)

// ErrInvalidInputs is returned when k exceeds the size of the urn (n1+n2).
var ErrInvalidInputs = errors.New("hgd: k exceeds n1+n2")

const (
	con    = 57.56462733 // ln(scale)
	deltaL = 0.0078
	deltaU = 0.0034
	scale  = 1.0e25
)

// RandIntModer is the randomness capability HGD needs: a uniform integer
// draw in [0, max). internal/ctrrand.Stream satisfies it; tests exercise
// HGD against a scripted double instead.
type RandIntModer interface {
	RandIntMod(max uint64) uint64
}

// rand draws a uniform fraction in [0, 1) at the given bit precision.
func rand(source RandIntModer, precision uint) float64 {
	div := uint64(1) << precision
	rzz := source.RandIntMod(div)
	return float64(rzz) / float64(div)
}

// Sample draws the number of white balls obtained by drawing kk elements
// without replacement from an urn of nn1 white balls and nn2 black balls.
func Sample(kk, nn1, nn2 uint64, source RandIntModer) (uint64, error) {
	if kk > nn1+nn2 {
		return 0, ErrInvalidInputs
	}

	precision := primitives.NumBits(nn1 + nn2 + kk)

	var n1, n2 float64
	if nn1 >= nn2 {
		n1, n2 = float64(nn2), float64(nn1)
	} else {
		n1, n2 = float64(nn1), float64(nn2)
	}

	tn := n1 + n2

	var k float64
	if float64(kk+kk) >= tn {
		k = tn - float64(kk)
	} else {
		k = float64(kk)
	}

	m := math.Floor((k + 1.0) * (n1 + 1.0) / (tn + 2.0))

	minjx := k - n2
	if minjx < 0 {
		minjx = 0
	}
	maxjx := n1
	if k < n1 {
		maxjx = k
	}

	var ix float64
	switch {
	case minjx == maxjx:
		// Degenerate distribution.
		ix = maxjx
	case m-minjx < 10:
		ix = inverseTransform(k, n1, n2, minjx, maxjx, m, precision, source)
	default:
		ix = h2pe(k, n1, n2, minjx, maxjx, m, tn, precision, source)
	}

	var jx float64
	switch {
	case float64(kk+kk) >= tn:
		if nn1 > nn2 {
			jx = float64(kk) - float64(nn2) + ix
		} else {
			jx = float64(nn1) - ix
		}
	case nn1 > nn2:
		jx = float64(kk) - ix
	default:
		jx = ix
	}

	return uint64(jx), nil
}

// inverseTransform implements the INVERSE TRANSFORMATION regime: accumulate
// the PMF from minjx forward until a scaled uniform draw is exhausted.
func inverseTransform(k, n1, n2, minjx, maxjx, m float64, precision uint, source RandIntModer) float64 {
	var w float64
	if k < n2 {
		w = math.Exp(con + afc(n2) + afc(n1+n2-k) - afc(n2-k) - afc(n1+n2))
	} else {
		w = math.Exp(con + afc(n1) + afc(k) - afc(k-n2) - afc(n1+n2))
	}

	for {
		p := w
		ix := minjx
		u := rand(source, precision) * scale

		for {
			if u <= p {
				return ix
			}
			u -= p
			p = p * (n1 - ix) * (k - ix)
			ix++
			p = p / ix / (n2 - k + ix)

			if ix > maxjx {
				break // restart the outer loop
			}
		}
	}
}

// h2pe implements the rectangle-plus-two-exponential-tails acceptance
// rejection regime.
func h2pe(k, n1, n2, minjx, maxjx, m, tn float64, precision uint, source RandIntModer) float64 {
	s := math.Sqrt((tn - k) * k * n1 * n2 / (tn - 1.0) / tn / tn)

	// D is defined in the reference without int(); the truncation centers
	// the cell boundaries at 0.5.
	d := math.Trunc(1.5*s) + 0.5

	xl := math.Trunc(m - d + 0.5)
	xr := math.Trunc(m + d + 0.5)

	a := afc(m) + afc(n1-m) + afc(k-m) + afc(n2-k+m)

	kl := math.Exp(a - afc(xl) - afc(n1-xl) - afc(k-xl) - afc(n2-k+xl))
	kr := math.Exp(a - afc(xr-1.0) - afc(n1-xr+1.0) - afc(k-xr+1.0) - afc(n2-k+xr-1.0))

	lamdl := -math.Log(xl * (n2 - k + xl) / (n1 - xl + 1.0) / (k - xl + 1.0))
	lamdr := -math.Log((n1 - xr + 1.0) * (k - xr + 1.0) / xr / (n2 - k + xr))

	p1 := d + d
	p2 := p1 + kl/lamdl
	p3 := p2 + kr/lamdr

	for {
		u := rand(source, precision) * p3
		v := rand(source, precision)

		var ix float64
		switch {
		case u < p1:
			// Rectangular region.
			ix = xl + u
		case u <= p2:
			// Left tail.
			ix = xl + math.Log(v)/lamdl
			if ix < minjx {
				continue
			}
			v = v * (u - p1) * lamdl
		default:
			// Right tail.
			ix = xr - math.Log(v)/lamdr
			if ix > maxjx {
				continue
			}
			v = v * (u - p2) * lamdr
		}

		if accept(ix, v, m, k, n1, n2, a) {
			return ix
		}
	}
}

// accept runs the acceptance/rejection test for a candidate ix, trying the
// cheapest test first.
func accept(ix, v, m, k, n1, n2, a float64) bool {
	if m < 100 || ix <= 50 {
		// Explicit PMF ratio evaluation.
		f := 1.0
		if m < ix {
			for i := m + 1.0; i < ix; i++ {
				f = f * (n1 - i + 1.0) * (k - i + 1.0) / (n2 - k + i) / i
			}
		} else if m > ix {
			for i := ix + 1.0; i < m; i++ {
				f = f * i * (n2 - k + i) / (n1 - i) / (k - i)
			}
		}
		return v <= f
	}

	// Squeeze using upper and lower bounds.
	y := ix
	y1 := y + 1.0
	ym := y - m
	yn := n1 - y + 1.0
	yk := k - y + 1.0
	nk := n2 - k + y1
	r := -ym / y1
	ss := ym / yn
	tt := ym / yk
	e := -ym / nk
	g := yn*yk/(y1*nk) - 1.0
	dg := 1.0
	if g < 0 {
		dg = 1.0 + g
	}
	gu := g * (1.0 + g*(-0.5+g/3.0))
	gl := gu - 0.25*(g*g)*(g*g)/dg
	xm := m + 0.5
	xn := n1 - m + 0.5
	xk := k - m + 0.5
	nm := n2 - k + xm

	ub := y*gu - m*gl + deltaU +
		xm*r*(1.0+r*(-0.5+r/3.0)) +
		xn*ss*(1.0+ss*(-0.5+ss/3.0)) +
		xk*tt*(1.0+tt*(-0.5+tt/3.0)) +
		nm*e*(1.0+e*(-0.5+e/3.0))

	alv := math.Log(v)
	if alv > ub {
		return false
	}

	dr := xm * (r * r) * (r * r)
	if r < 0 {
		dr /= 1.0 + r
	}
	ds := xn * (ss * ss) * (ss * ss)
	if ss < 0 {
		ds /= 1.0 + ss
	}
	dt := xk * (tt * tt) * (tt * tt)
	if tt < 0 {
		dt /= 1.0 + tt
	}
	de := nm * (e * e) * (e * e)
	if e < 0 {
		de /= 1.0 + e
	}

	if alv < ub-0.25*(dr+ds+dt+de)+(y+m)*(gl-gu)-deltaL {
		return true
	}

	// Stirling's formula to machine accuracy.
	return alv <= a-afc(ix)-afc(n1-ix)-afc(k-ix)-afc(n2-k+ix)
}
