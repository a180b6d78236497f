package main

import (
	"flag"
	"fmt"
	"os"

	"filmsim-engine/internal/exposure"
)

func main() {
	fstop := flag.Float64("fstop", 8, "Simulated aperture f-number")
	iso := flag.Float64("iso", 100, "Simulated film speed ISO")
	shutter := flag.Float64("shutter", 1.0/125, "Simulated shutter in seconds")
	comp := flag.Float64("comp", 0, "Exposure compensation in stops")
	calib := flag.Float64("calib", 0, "Calibration offset in stops")

	minISO := flag.Float64("min-iso", 50, "Device minimum ISO")
	maxISO := flag.Float64("max-iso", 3200, "Device maximum ISO")
	minShutter := flag.Float64("min-shutter", 1.0/8000, "Device minimum shutter seconds")
	maxShutter := flag.Float64("max-shutter", 1, "Device maximum shutter seconds")
	aperture := flag.Float64("aperture", 1.8, "Physical aperture of the capture lens")
	mains := flag.Float64("mains", 50, "Mains frequency in Hz (50 or 60)")

	flag.Parse()

	triad := exposure.Triad{
		FStop:             *fstop,
		FilmSpeedISO:      *iso,
		ShutterSeconds:    *shutter,
		CompensationStops: *comp,
	}
	env := exposure.Envelope{
		MinISO:            *minISO,
		MaxISO:            *maxISO,
		MinShutterSeconds: *minShutter,
		MaxShutterSeconds: *maxShutter,
		PhysicalAperture:  *aperture,
		MainsFrequencyHz:  *mains,
	}

	resolved, err := exposure.Resolve(triad, env, *calib)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Simulated EV (ISO 100): %.2f\n", triad.SimulatedEV())
	fmt.Printf("Applied ISO:            %.0f\n", resolved.AppliedISO)
	fmt.Printf("Applied shutter:        1/%.0f s (%.6fs)\n", 1/resolved.AppliedShutterSeconds, resolved.AppliedShutterSeconds)
	fmt.Printf("Flicker risk:           %v\n", resolved.FlickerRisk)
}
