// Package report summarises processed rolls and renders optics charts.
package report

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/stat"

	"filmsim-engine/internal/session"
)

// Summary aggregates the exposure statistics of one processed roll.
type Summary struct {
	Shots       int
	Succeeded   int
	FlickerRisk int

	MeanEV   float64
	StdDevEV float64

	MinAppliedISO float64
	MaxAppliedISO float64
}

// Summarize computes roll statistics over the successful results.
func Summarize(results []session.Result) Summary {
	s := Summary{Shots: len(results)}

	var evs, isos []float64
	for _, r := range results {
		if !r.Success {
			continue
		}
		s.Succeeded++
		if r.FlickerRisk {
			s.FlickerRisk++
		}
		evs = append(evs, r.SimulatedEV)
		isos = append(isos, r.AppliedISO)
	}

	if len(evs) > 0 {
		s.MeanEV = stat.Mean(evs, nil)
		if len(evs) > 1 {
			s.StdDevEV = stat.StdDev(evs, nil)
		}
		s.MinAppliedISO = math.Inf(1)
		for _, iso := range isos {
			s.MinAppliedISO = math.Min(s.MinAppliedISO, iso)
			s.MaxAppliedISO = math.Max(s.MaxAppliedISO, iso)
		}
	}

	return s
}

// Print writes a human-readable summary.
func (s Summary) Print(w io.Writer) {
	fmt.Fprintf(w, "Shots: %d, processed: %d, flicker risk: %d\n", s.Shots, s.Succeeded, s.FlickerRisk)
	if s.Succeeded > 0 {
		fmt.Fprintf(w, "EV: mean %.2f, stddev %.2f\n", s.MeanEV, s.StdDevEV)
		fmt.Fprintf(w, "Applied ISO: %g to %g\n", s.MinAppliedISO, s.MaxAppliedISO)
	}
}
