package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"filmsim-engine/internal/compose"
	"filmsim-engine/internal/dof"
	"filmsim-engine/internal/exposure"
	"filmsim-engine/internal/film"
	"filmsim-engine/internal/frame"
	"filmsim-engine/internal/imageio"
	"filmsim-engine/internal/shotlog"
)

// Config holds all shared resources for processing one roll.
type Config struct {
	ImageDir  string
	OutputDir string

	Envelope               exposure.Envelope
	CalibrationOffsetStops float64
	DeviceHFOVDegrees      float64
	CaptureSurface         frame.Surface

	ThumbEdge int
	Workers   int

	Log *shotlog.Store // optional; nil disables metadata recording
}

// Result holds the outcome of processing one shot.
type Result struct {
	Frame     int
	ImageFile string
	Success   bool
	Error     string

	ThumbPath             string
	SimulatedEV           float64
	AppliedISO            float64
	AppliedShutterSeconds float64
	FlickerRisk           bool
}

// Run processes all shots of a roll using a worker pool.
func Run(cfg Config, roll Roll) []Result {
	total := len(roll.Shots)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f shots/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	shotChan := make(chan int, max(cfg.Workers, 1)*2)
	var wg sync.WaitGroup

	for w := 0; w < max(cfg.Workers, 1); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range shotChan {
				results[idx] = processShot(cfg, roll.RollID, roll.Shots[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range roll.Shots {
		shotChan <- i
	}
	close(shotChan)

	wg.Wait()
	close(done)

	return results
}

func processShot(cfg Config, rollID string, spec ShotSpec) Result {
	fail := func(msg string) Result {
		return Result{Frame: spec.Frame, ImageFile: spec.ImageFile, Error: msg}
	}

	format, err := film.Lookup(spec.Format)
	if err != nil {
		return fail(err.Error())
	}

	triad := exposure.Triad{
		FStop:             spec.FStop,
		FilmSpeedISO:      spec.FilmSpeedISO,
		ShutterSeconds:    spec.ShutterSeconds,
		CompensationStops: spec.CompensationStops,
	}
	resolved, err := exposure.Resolve(triad, cfg.Envelope, cfg.CalibrationOffsetStops)
	if err != nil {
		return fail(err.Error())
	}

	// Zero Result means focus distance was not recorded for this shot.
	sharpness := dof.Compute(spec.FocalLengthMM, spec.FStop, spec.FocusDistanceMM, format.CoCMM)

	geom := frame.Geometry{
		FocalLengthMM:      spec.FocalLengthMM,
		FilmWidthMM:        format.FrameWidthMM,
		FilmAspectRatio:    format.AspectRatio,
		DesiredAspectRatio: spec.DesiredAspectRatio,
		DeviceHFOVDegrees:  cfg.DeviceHFOVDegrees,
	}
	projected := frame.Project(geom, cfg.CaptureSurface)
	if projected.Full.IsZero() {
		return fail(fmt.Sprintf("projection failed for focal %gmm on %s", spec.FocalLengthMM, spec.Format))
	}

	src, err := imageio.Load(filepath.Join(cfg.ImageDir, spec.ImageFile))
	if err != nil {
		return fail(err.Error())
	}

	canvas, scale := compose.FitOverflow(src, projected.Full, cfg.CaptureSurface)
	cropped := compose.CropAspect(canvas, projected.Cropped, scale)
	thumb := compose.Thumbnail(cropped, cfg.ThumbEdge)

	outPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("%03d.webp", spec.Frame))
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fail(err.Error())
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fail(err.Error())
	}
	defer f.Close()
	if err := compose.EncodeWebP(f, thumb); err != nil {
		return fail(err.Error())
	}

	if cfg.Log != nil {
		shot := &shotlog.Shot{
			RollID:                rollID,
			FilmFormat:            format.Name,
			FocalLengthMM:         spec.FocalLengthMM,
			FStop:                 spec.FStop,
			FilmSpeedISO:          spec.FilmSpeedISO,
			ShutterSeconds:        spec.ShutterSeconds,
			CompensationStops:     spec.CompensationStops,
			AppliedISO:            resolved.AppliedISO,
			AppliedShutterSeconds: resolved.AppliedShutterSeconds,
			FlickerRisk:           resolved.FlickerRisk,
			FocusDistanceMM:       spec.FocusDistanceMM,
			NearLimitMM:           sharpness.NearLimitMM,
			HyperfocalMM:          sharpness.HyperfocalMM,
			ThumbnailPath:         outPath,
		}
		if !sharpness.FarIsInfinite() && sharpness.FarLimitMM > 0 {
			v := sharpness.FarLimitMM
			shot.FarLimitMM = &v
		}
		if err := cfg.Log.Insert(shot); err != nil {
			return fail(err.Error())
		}
	}

	return Result{
		Frame:                 spec.Frame,
		ImageFile:             spec.ImageFile,
		Success:               true,
		ThumbPath:             outPath,
		SimulatedEV:           triad.SimulatedEV(),
		AppliedISO:            resolved.AppliedISO,
		AppliedShutterSeconds: resolved.AppliedShutterSeconds,
		FlickerRisk:           resolved.FlickerRisk,
	}
}
