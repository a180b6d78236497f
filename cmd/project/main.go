package main

import (
	"flag"
	"fmt"
	"os"

	"filmsim-engine/internal/film"
	"filmsim-engine/internal/frame"
)

func main() {
	focal := flag.Float64("focal", 50, "Focal length in mm")
	format := flag.String("format", "135", "Film format name")
	desired := flag.Float64("aspect", 0, "Desired output aspect ratio (0 = film default)")
	deviceFOV := flag.Float64("device-fov", 66, "Device horizontal FOV in degrees")
	width := flag.Float64("width", 1170, "Surface width in pixels")
	height := flag.Float64("height", 2532, "Surface height in pixels")

	flag.Parse()

	f, err := film.Lookup(*format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	geom := frame.Geometry{
		FocalLengthMM:      *focal,
		FilmWidthMM:        f.FrameWidthMM,
		FilmAspectRatio:    f.AspectRatio,
		DesiredAspectRatio: *desired,
		DeviceHFOVDegrees:  *deviceFOV,
	}
	surface := frame.Surface{Width: *width, Height: *height}

	// The projector works in the native landscape space; portrait surfaces
	// rotate in, results rotate back out.
	native := surface
	portrait := *height > *width
	if portrait {
		native = surface.Rotated()
	}

	p := frame.Project(geom, native)
	if p.Full.IsZero() {
		fmt.Fprintln(os.Stderr, "Error: projection not computable for these inputs")
		os.Exit(1)
	}

	full, cropped := p.Full, p.Cropped
	if portrait {
		full, cropped = full.Rotated(), cropped.Rotated()
	}

	fmt.Printf("Format %s (%gmm, aspect %.3f), %gmm lens on %g by %g surface\n",
		f.Name, f.FrameWidthMM, f.AspectRatio, *focal, *width, *height)
	fmt.Printf("Full frame:    %.1f x %.1f px\n", full.Width, full.Height)
	fmt.Printf("Aspect crop:   %.1f x %.1f px\n", cropped.Width, cropped.Height)

	if scale := frame.OverflowScale(p.Full, native); scale < 1 {
		fmt.Printf("Overflow:      frame exceeds surface, composite scale %.4f\n", scale)
	}
}
