// Copyright 2013 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hgd

import "testing"

func TestAfcTable(t *testing.T) {
	if got := afc(1); got != 0.0 {
		t.Errorf("afc(1) = %v, want 0.0", got)
	}
	if got := afc(7); got != 8.525161361 {
		t.Errorf("afc(7) = %v, want 8.525161361", got)
	}
}

func TestAfcStirling(t *testing.T) {
	const want = 10.604602878798048
	got := afc(8)
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("afc(8) = %v, want %v", got, want)
	}
}
