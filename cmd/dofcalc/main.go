package main

import (
	"flag"
	"fmt"
	"os"

	"filmsim-engine/internal/dof"
	"filmsim-engine/internal/film"
	"filmsim-engine/internal/report"
)

func main() {
	focal := flag.Float64("focal", 50, "Focal length in mm")
	aperture := flag.Float64("aperture", 8, "Aperture f-number")
	distance := flag.Float64("distance", 3000, "Focus distance in mm")
	format := flag.String("format", "135", "Film format (sets circle of confusion)")
	coc := flag.Float64("coc", 0, "Circle of confusion in mm (overrides format)")
	chart := flag.String("chart", "", "Write an HTML focus-distance sweep chart to this path")

	flag.Parse()

	cocMM := *coc
	if cocMM <= 0 {
		f, err := film.Lookup(*format)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cocMM = f.CoCMM
	}

	r := dof.Compute(*focal, *aperture, *distance, cocMM)
	if r == (dof.Result{}) {
		fmt.Fprintln(os.Stderr, "Error: depth of field not computable for these inputs")
		os.Exit(1)
	}

	fmt.Printf("f=%gmm N=%g at %gmm, coc %gmm\n", *focal, *aperture, *distance, cocMM)
	fmt.Printf("Near limit:       %.0f mm\n", r.NearLimitMM)
	if r.FarIsInfinite() {
		fmt.Printf("Far limit:        infinity\n")
		fmt.Printf("Depth of field:   infinite\n")
	} else {
		fmt.Printf("Far limit:        %.0f mm\n", r.FarLimitMM)
		fmt.Printf("Depth of field:   %.0f mm\n", r.DofMM)
	}
	fmt.Printf("Hyperfocal:       %.0f mm (near limit %.0f mm)\n", r.HyperfocalMM, r.HyperfocalNearLimitMM)

	if *chart != "" {
		maxDist := r.HyperfocalMM * 2
		if err := report.WriteDofChart(*chart, *focal, *aperture, cocMM, *focal*2, maxDist, 80); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Chart: %s\n", *chart)
	}
}
