package session

import (
	"encoding/json"
	"fmt"
	"os"
)

// ShotSpec describes one frame on a roll: the simulated optics and exposure
// plus the captured source image to crop.
type ShotSpec struct {
	Frame     int    `json:"frame"`
	ImageFile string `json:"image_file"`

	Format        string  `json:"format"`
	FocalLengthMM float64 `json:"focal_length_mm"`

	FStop             float64 `json:"fstop"`
	FilmSpeedISO      float64 `json:"film_speed_iso"`
	ShutterSeconds    float64 `json:"shutter_seconds"`
	CompensationStops float64 `json:"compensation_stops"`

	FocusDistanceMM    float64 `json:"focus_distance_mm"`
	DesiredAspectRatio float64 `json:"desired_aspect_ratio"` // 0 = film default
}

// Roll is a set of shots processed together.
type Roll struct {
	RollID string     `json:"roll_id"`
	Shots  []ShotSpec `json:"shots"`
}

// LoadRoll reads a roll description from a JSON file.
func LoadRoll(path string) (Roll, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Roll{}, fmt.Errorf("session: read roll %s: %w", path, err)
	}

	var roll Roll
	if err := json.Unmarshal(data, &roll); err != nil {
		return Roll{}, fmt.Errorf("session: parse roll %s: %w", path, err)
	}
	if len(roll.Shots) == 0 {
		return Roll{}, fmt.Errorf("session: roll %s has no shots", path)
	}

	return roll, nil
}
