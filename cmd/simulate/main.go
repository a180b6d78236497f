package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"filmsim-engine/internal/config"
	"filmsim-engine/internal/exposure"
	"filmsim-engine/internal/frame"
	"filmsim-engine/internal/report"
	"filmsim-engine/internal/session"
	"filmsim-engine/internal/shotlog"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	rollFile := flag.String("roll", "", "Path to roll JSON file (default: roll.json)")
	imageDir := flag.String("images", "", "Directory with captured images (default: roll file directory)")
	outputDir := flag.String("output", "", "Output directory (default: thumbnails)")
	dbPath := flag.String("db", "", "Shot log database path (default: <output>/shots.db)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	testN := flag.Int("test", 0, "Process only first N shots for testing")
	noLog := flag.Bool("no-log", false, "Skip writing the shot log database")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		RollFile:  *rollFile,
		ImageDir:  *imageDir,
		OutputDir: *outputDir,
		DBPath:    *dbPath,
		Workers:   *workers,
	})

	roll, err := session.LoadRoll(cfg.RollFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading roll: %v\n", err)
		os.Exit(1)
	}

	// Limit for testing
	if *testN > 0 && *testN < len(roll.Shots) {
		roll.Shots = roll.Shots[:*testN]
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output dir: %v\n", err)
		os.Exit(1)
	}

	var log *shotlog.Store
	if !*noLog {
		log, err = shotlog.Open(cfg.DBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening shot log: %v\n", err)
			os.Exit(1)
		}
		defer log.Close()
	}

	sessCfg := session.Config{
		ImageDir:  cfg.ImageDir,
		OutputDir: cfg.OutputDir,
		Envelope: exposure.Envelope{
			MinISO:            cfg.MinISO,
			MaxISO:            cfg.MaxISO,
			MinShutterSeconds: cfg.MinShutterSeconds,
			MaxShutterSeconds: cfg.MaxShutterSeconds,
			PhysicalAperture:  cfg.PhysicalAperture,
			MainsFrequencyHz:  cfg.MainsFrequencyHz,
		},
		CalibrationOffsetStops: cfg.CalibrationOffsetStops,
		DeviceHFOVDegrees:      cfg.DeviceHFOVDegrees,
		CaptureSurface:         frame.Surface{Width: cfg.CaptureWidth, Height: cfg.CaptureHeight},
		ThumbEdge:              cfg.ThumbEdge,
		Workers:                cfg.Workers,
		Log:                    log,
	}

	fmt.Printf("Film Simulation Engine\n")
	fmt.Printf("Roll: %s (%d shots), Workers: %d\n", roll.RollID, len(roll.Shots), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()
	results := session.Run(sessCfg, roll)
	elapsed := time.Since(start)

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	var errors []session.Result
	for _, r := range results {
		if !r.Success {
			errors = append(errors, r)
		}
	}
	fmt.Printf("Processed: %d/%d\n", len(results)-len(errors), len(results))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", len(errors))
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  frame %d (%s): %s\n", e.Frame, e.ImageFile, e.Error)
		}
	}

	report.Summarize(results).Print(os.Stdout)

	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := session.WriteManifest(manifestPath, roll, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if len(errors) > 0 {
		os.Exit(1)
	}
}
