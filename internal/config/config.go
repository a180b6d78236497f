package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Config holds all configurable paths and simulation settings.
type Config struct {
	// Paths
	RollFile  string `json:"roll_file"`
	ImageDir  string `json:"image_dir"`
	OutputDir string `json:"output_dir"`
	DBPath    string `json:"db_path"`

	// Capture device
	MinISO            float64 `json:"min_iso"`
	MaxISO            float64 `json:"max_iso"`
	MinShutterSeconds float64 `json:"min_shutter_seconds"`
	MaxShutterSeconds float64 `json:"max_shutter_seconds"`
	PhysicalAperture  float64 `json:"physical_aperture"`
	MainsFrequencyHz  float64 `json:"mains_frequency_hz"`
	DeviceHFOVDegrees float64 `json:"device_hfov_degrees"`
	CaptureWidth      float64 `json:"capture_width"`
	CaptureHeight     float64 `json:"capture_height"`

	// Calibration offset in stops, compensating the rendering-pipeline
	// exposure bias of the host. Configuration, not algorithm.
	CalibrationOffsetStops float64 `json:"calibration_offset_stops"`

	// Output settings
	ThumbEdge int `json:"thumb_edge"`
	Workers   int `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	RollFile  string
	ImageDir  string
	OutputDir string
	DBPath    string
	Workers   int
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.RollFile != "" {
		c.RollFile = flags.RollFile
	}
	if flags.ImageDir != "" {
		c.ImageDir = flags.ImageDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.DBPath != "" {
		c.DBPath = flags.DBPath
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.RollFile == "" {
		c.RollFile = "roll.json"
	}
	if c.ImageDir == "" {
		c.ImageDir = filepath.Dir(c.RollFile)
	}
	if c.OutputDir == "" {
		c.OutputDir = "thumbnails"
	}
	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.OutputDir, "shots.db")
	}

	// Device defaults: a typical phone main camera under 50 Hz mains
	if c.MinISO <= 0 {
		c.MinISO = 50
	}
	if c.MaxISO <= 0 {
		c.MaxISO = 3200
	}
	if c.MinShutterSeconds <= 0 {
		c.MinShutterSeconds = 1.0 / 8000
	}
	if c.MaxShutterSeconds <= 0 {
		c.MaxShutterSeconds = 1
	}
	if c.PhysicalAperture <= 0 {
		c.PhysicalAperture = 1.8
	}
	if c.MainsFrequencyHz <= 0 {
		c.MainsFrequencyHz = 50
	}
	if c.DeviceHFOVDegrees <= 0 {
		c.DeviceHFOVDegrees = 66
	}
	if c.CaptureWidth <= 0 {
		c.CaptureWidth = 4032
	}
	if c.CaptureHeight <= 0 {
		c.CaptureHeight = 3024
	}

	if c.ThumbEdge <= 0 {
		c.ThumbEdge = 512
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}
