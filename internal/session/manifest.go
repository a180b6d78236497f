package session

import (
	"encoding/json"
	"fmt"
	"os"
)

// ManifestEntry represents one shot in the output manifest.
type ManifestEntry struct {
	Frame                 int     `json:"frame"`
	ImageFile             string  `json:"image_file"`
	Format                string  `json:"format"`
	FocalLengthMM         float64 `json:"focal_length_mm"`
	Thumbnail             string  `json:"thumbnail,omitempty"`
	AppliedISO            float64 `json:"applied_iso,omitempty"`
	AppliedShutterSeconds float64 `json:"applied_shutter_seconds,omitempty"`
	FlickerRisk           bool    `json:"flicker_risk,omitempty"`
	Error                 string  `json:"error,omitempty"`
}

// WriteManifest writes manifest.json for a processed roll.
func WriteManifest(path string, roll Roll, results []Result) error {
	entries := make([]ManifestEntry, len(roll.Shots))
	for i, s := range roll.Shots {
		entries[i] = ManifestEntry{
			Frame:         s.Frame,
			ImageFile:     s.ImageFile,
			Format:        s.Format,
			FocalLengthMM: s.FocalLengthMM,
		}
		if i < len(results) {
			r := results[i]
			entries[i].Thumbnail = fmt.Sprintf("%03d.webp", s.Frame)
			entries[i].AppliedISO = r.AppliedISO
			entries[i].AppliedShutterSeconds = r.AppliedShutterSeconds
			entries[i].FlickerRisk = r.FlickerRisk
			if !r.Success {
				entries[i].Thumbnail = ""
				entries[i].Error = r.Error
			}
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
