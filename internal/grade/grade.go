// Package grade maps a marks value to its grade band.
package grade

import "github.com/rosterkit/rosterkit/internal/types"

// Classify returns the grade band for a marks value.
//
// Bands are left-closed, right-open, except the top band which
// includes 100:
//
//	[ 0, 35) → Fail
//	[35, 50) → Third Class
//	[50, 60) → Second Class
//	[60, 75) → First Class
//	[75,100] → Distinction
//
// Marks outside [0,100] never enter the roster, but Classify is total:
// anything out of range classifies as Fail.
func Classify(marks int) types.GradeBand {
	switch {
	case marks < 0 || marks > 100:
		return types.BandFail
	case marks < 35:
		return types.BandFail
	case marks < 50:
		return types.BandThirdClass
	case marks < 60:
		return types.BandSecondClass
	case marks < 75:
		return types.BandFirstClass
	default:
		return types.BandDistinction
	}
}
