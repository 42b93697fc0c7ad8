// Copyright 2013 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hgd

import "math"

// afc evaluates the logarithm of i-factorial. For i <= 7 a fixed table is
// used; for i > 7 it falls back to Stirling's approximation. i is carried
// as float64 to avoid repeated int<->float conversions in the arithmetic
// that surrounds every call site. The table branch rounds i to the nearest
// integer; the Stirling branch evaluates i as given, which for the H2PE
// candidate ix (drawn from the rectangle or a tail) need not be integral.
func afc(i float64) float64 {
	switch uint64(math.Round(i)) {
	case 0, 1:
		return 0.0
	case 2:
		return 0.6931471806
	case 3:
		return 1.791759469
	case 4:
		return 3.178053830
	case 5:
		return 4.787491743
	case 6:
		return 6.579251212
	case 7:
		return 8.525161361
	default:
		return (i+0.5)*math.Log(i) - i + 0.08333333333333/i - 0.00277777777777/i/i/i + 0.9189385332
	}
}
