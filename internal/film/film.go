package film

import (
	"fmt"
	"sort"
	"strings"
)

// Format holds the physical geometry of one film frame.
type Format struct {
	Name         string
	FrameWidthMM float64 // long edge of the exposed frame
	AspectRatio  float64 // long edge / short edge
	CoCMM        float64 // circle of confusion for depth-of-field math
}

// formats maps a canonical lowercase name to its geometry.
var formats = map[string]Format{
	"135":           {Name: "135", FrameWidthMM: 36, AspectRatio: 1.5, CoCMM: 0.029},
	"135-half":      {Name: "135-half", FrameWidthMM: 24, AspectRatio: 4.0 / 3, CoCMM: 0.019},
	"110":           {Name: "110", FrameWidthMM: 17, AspectRatio: 17.0 / 13, CoCMM: 0.014},
	"120-6x4.5":     {Name: "120-6x4.5", FrameWidthMM: 56, AspectRatio: 56.0 / 41.5, CoCMM: 0.047},
	"120-6x6":       {Name: "120-6x6", FrameWidthMM: 56, AspectRatio: 1, CoCMM: 0.053},
	"120-6x7":       {Name: "120-6x7", FrameWidthMM: 67, AspectRatio: 67.0 / 56, CoCMM: 0.061},
	"120-6x9":       {Name: "120-6x9", FrameWidthMM: 84, AspectRatio: 84.0 / 56, CoCMM: 0.071},
	"4x5":           {Name: "4x5", FrameWidthMM: 127, AspectRatio: 127.0 / 102, CoCMM: 0.11},
	"instax-mini":   {Name: "instax-mini", FrameWidthMM: 62, AspectRatio: 62.0 / 46, CoCMM: 0.05},
	"instax-square": {Name: "instax-square", FrameWidthMM: 62, AspectRatio: 1, CoCMM: 0.05},
	"instax-wide":   {Name: "instax-wide", FrameWidthMM: 99, AspectRatio: 99.0 / 62, CoCMM: 0.06},
}

// Lookup resolves a format by name (case-insensitive).
func Lookup(name string) (Format, error) {
	f, ok := formats[strings.ToLower(name)]
	if !ok {
		return Format{}, fmt.Errorf("film: unknown format %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return f, nil
}

// Names returns all known format names, sorted.
func Names() []string {
	names := make([]string, 0, len(formats))
	for n := range formats {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
