package exposure

import (
	"errors"
	"fmt"
	"math"
)

// Triad is a simulated film exposure: aperture, film speed, shutter and
// compensation as dialled in on the virtual camera.
type Triad struct {
	FStop             float64 // aperture f-number, > 0
	FilmSpeedISO      float64 // > 0
	ShutterSeconds    float64 // > 0
	CompensationStops float64 // signed, in stops
}

// Envelope describes the exposure limits of the real capture hardware.
type Envelope struct {
	MinISO            float64
	MaxISO            float64
	MinShutterSeconds float64
	MaxShutterSeconds float64
	PhysicalAperture  float64 // fixed f-number of the capture lens
	MainsFrequencyHz  float64 // 50 or 60
}

// Resolved is a concrete (ISO, shutter) pair the capture device can apply.
type Resolved struct {
	AppliedISO            float64
	AppliedShutterSeconds float64
	FlickerRisk           bool
}

var (
	// ErrInvalidExposureInput flags a triad with non-positive components.
	ErrInvalidExposureInput = errors.New("exposure: invalid triad")

	// ErrInvalidDeviceEnvelope flags malformed hardware bounds.
	ErrInvalidDeviceEnvelope = errors.New("exposure: invalid device envelope")
)

// shortestSafeShutter is the fastest shutter the resolver volunteers for:
// slower of this and the mains flicker threshold wins.
const shortestSafeShutter = 1.0 / 100

// Validate checks the triad preconditions.
func (t Triad) Validate() error {
	if t.FStop <= 0 {
		return fmt.Errorf("%w: fstop %g", ErrInvalidExposureInput, t.FStop)
	}
	if t.FilmSpeedISO <= 0 {
		return fmt.Errorf("%w: film speed %g", ErrInvalidExposureInput, t.FilmSpeedISO)
	}
	if t.ShutterSeconds <= 0 {
		return fmt.Errorf("%w: shutter %g", ErrInvalidExposureInput, t.ShutterSeconds)
	}
	return nil
}

// Validate checks the envelope preconditions.
func (e Envelope) Validate() error {
	if e.MinISO <= 0 || e.MaxISO < e.MinISO {
		return fmt.Errorf("%w: ISO range [%g, %g]", ErrInvalidDeviceEnvelope, e.MinISO, e.MaxISO)
	}
	if e.MinShutterSeconds <= 0 || e.MaxShutterSeconds < e.MinShutterSeconds {
		return fmt.Errorf("%w: shutter range [%g, %g]", ErrInvalidDeviceEnvelope, e.MinShutterSeconds, e.MaxShutterSeconds)
	}
	if e.PhysicalAperture <= 0 {
		return fmt.Errorf("%w: physical aperture %g", ErrInvalidDeviceEnvelope, e.PhysicalAperture)
	}
	if e.MainsFrequencyHz <= 0 {
		return fmt.Errorf("%w: mains frequency %g", ErrInvalidDeviceEnvelope, e.MainsFrequencyHz)
	}
	return nil
}

// FlickerThreshold is the minimum shutter duration immune to banding under
// lighting driven by this envelope's mains frequency.
func (e Envelope) FlickerThreshold() float64 {
	return 1 / (2 * e.MainsFrequencyHz)
}

// SimulatedEV is the triad's exposure value relative to ISO 100.
func (t Triad) SimulatedEV() float64 {
	return math.Log2(t.FStop*t.FStop/t.ShutterSeconds) - math.Log2(t.FilmSpeedISO/100)
}

// Resolve maps a simulated film exposure onto the device envelope.
//
// The applied pair always lands inside the envelope. Tie-break policy: the
// fastest flicker-safe shutter using the lowest sufficient ISO. The ISO/shutter
// relation is monotonic in both variables, so two clamp passes converge.
//
// calibrationOffsetStops compensates a rendering-pipeline exposure bias
// external to this package; it is configuration, not algorithm.
func Resolve(t Triad, e Envelope, calibrationOffsetStops float64) (Resolved, error) {
	if err := t.Validate(); err != nil {
		return Resolved{}, err
	}
	if err := e.Validate(); err != nil {
		return Resolved{}, err
	}

	evTarget := t.SimulatedEV() - t.CompensationStops + calibrationOffsetStops
	evFactor := math.Exp2(evTarget)
	numerator := 100 * e.PhysicalAperture * e.PhysicalAperture

	flickerThreshold := e.FlickerThreshold()
	preferredMinShutter := math.Max(flickerThreshold, shortestSafeShutter)

	shutterFor := func(iso float64) float64 {
		return clamp(numerator/(evFactor*iso), e.MinShutterSeconds, e.MaxShutterSeconds)
	}

	// Seed at minimum noise: lowest ISO, shutter carries the exposure.
	finalISO := e.MinISO
	finalShutter := shutterFor(finalISO)

	// Trade shutter time for ISO when the seed shutter is slower than the
	// preferred minimum: motion blur costs more than sensor gain.
	if finalShutter > preferredMinShutter {
		candidateISO := numerator / (evFactor * preferredMinShutter)
		if candidateISO <= e.MaxISO {
			finalISO = candidateISO
			finalShutter = preferredMinShutter
		} else {
			finalISO = e.MaxISO
			finalShutter = shutterFor(finalISO)
		}
	}

	// Second clamp pass: either branch above can leave the implied ISO out of
	// bounds once the shutter has been clamped.
	if implied := numerator / (evFactor * finalShutter); implied > e.MaxISO {
		finalISO = e.MaxISO
		finalShutter = shutterFor(finalISO)
	}
	finalISO = clamp(finalISO, e.MinISO, e.MaxISO)

	return Resolved{
		AppliedISO:            finalISO,
		AppliedShutterSeconds: finalShutter,
		FlickerRisk:           finalShutter < flickerThreshold,
	}, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
