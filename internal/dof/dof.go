// Package dof implements thin-lens depth-of-field and hyperfocal math.
package dof

import "math"

// Result holds the sharpness range for one focus setting. Distances are in
// millimetres; FarLimitMM and DofMM are +Inf when everything beyond the near
// limit is acceptably sharp. The zero value means "not computable".
type Result struct {
	NearLimitMM           float64
	FarLimitMM            float64
	HyperfocalMM          float64
	HyperfocalNearLimitMM float64
	DofMM                 float64
}

// FarIsInfinite reports whether the far limit extends to infinity.
func (r Result) FarIsInfinite() bool {
	return math.IsInf(r.FarLimitMM, 1)
}

// Compute returns the near/far sharpness limits and hyperfocal distance for
// a focus setting. Degenerate inputs (any parameter ≤ 0) yield the zero
// Result rather than an error: the caller reads it as "not computable".
func Compute(focalLengthMM, aperture, focusDistanceMM, cocMM float64) Result {
	if focalLengthMM <= 0 || aperture <= 0 || focusDistanceMM <= 0 || cocMM <= 0 {
		return Result{}
	}

	hyperfocal := focalLengthMM*focalLengthMM/(aperture*cocMM) + focalLengthMM

	near := hyperfocal * focusDistanceMM / (hyperfocal + (focusDistanceMM - focalLengthMM))

	far := math.Inf(1)
	if denom := hyperfocal - (focusDistanceMM - focalLengthMM); denom > 0 {
		far = hyperfocal * focusDistanceMM / denom
	}

	spread := math.Inf(1)
	if !math.IsInf(far, 1) {
		spread = far - near
	}

	return Result{
		NearLimitMM:           near,
		FarLimitMM:            far,
		HyperfocalMM:          hyperfocal,
		HyperfocalNearLimitMM: hyperfocal / 2,
		DofMM:                 spread,
	}
}
