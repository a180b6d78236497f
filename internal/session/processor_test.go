package session

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmsim-engine/internal/exposure"
	"filmsim-engine/internal/frame"
	"filmsim-engine/internal/shotlog"
)

func writeCapture(t *testing.T, dir, name string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 80, A: 255})
		}
	}
	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func testConfig(t *testing.T, imageDir, outDir string) Config {
	t.Helper()
	return Config{
		ImageDir:  imageDir,
		OutputDir: outDir,
		Envelope: exposure.Envelope{
			MinISO:            50,
			MaxISO:            3200,
			MinShutterSeconds: 1.0 / 8000,
			MaxShutterSeconds: 1,
			PhysicalAperture:  1.8,
			MainsFrequencyHz:  50,
		},
		DeviceHFOVDegrees: 66,
		CaptureSurface:    frame.Surface{Width: 400, Height: 300},
		ThumbEdge:         128,
		Workers:           2,
	}
}

func TestRunProcessesRoll(t *testing.T) {
	imageDir := t.TempDir()
	outDir := t.TempDir()
	writeCapture(t, imageDir, "a.png", 400, 300)
	writeCapture(t, imageDir, "b.png", 400, 300)

	cfg := testConfig(t, imageDir, outDir)

	store, err := shotlog.Open(filepath.Join(t.TempDir(), "shots.db"))
	require.NoError(t, err)
	defer store.Close()
	cfg.Log = store

	roll := Roll{
		RollID: "roll-test",
		Shots: []ShotSpec{
			{Frame: 1, ImageFile: "a.png", Format: "135", FocalLengthMM: 50,
				FStop: 8, FilmSpeedISO: 100, ShutterSeconds: 1.0 / 125, FocusDistanceMM: 3000},
			{Frame: 2, ImageFile: "b.png", Format: "120-6x6", FocalLengthMM: 80,
				FStop: 2.8, FilmSpeedISO: 400, ShutterSeconds: 1.0 / 60},
		},
	}

	results := Run(cfg, roll)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.True(t, r.Success, "frame %d: %s", r.Frame, r.Error)
		assert.FileExists(t, r.ThumbPath)
		assert.Positive(t, r.AppliedISO)
		assert.Positive(t, r.AppliedShutterSeconds)
	}

	shots, err := store.ListRoll("roll-test")
	require.NoError(t, err)
	assert.Len(t, shots, 2)

	// The first shot carries focus distance, so depth of field is recorded.
	var withFocus *shotlog.Shot
	for _, s := range shots {
		if s.FocusDistanceMM > 0 {
			withFocus = s
		}
	}
	require.NotNil(t, withFocus)
	assert.Positive(t, withFocus.NearLimitMM)
	assert.Positive(t, withFocus.HyperfocalMM)
}

func TestRunReportsPerShotFailures(t *testing.T) {
	imageDir := t.TempDir()
	outDir := t.TempDir()
	writeCapture(t, imageDir, "a.png", 200, 150)

	cfg := testConfig(t, imageDir, outDir)

	roll := Roll{
		RollID: "roll-fail",
		Shots: []ShotSpec{
			{Frame: 1, ImageFile: "a.png", Format: "135", FocalLengthMM: 50,
				FStop: 8, FilmSpeedISO: 100, ShutterSeconds: 1.0 / 125},
			{Frame: 2, ImageFile: "missing.png", Format: "135", FocalLengthMM: 50,
				FStop: 8, FilmSpeedISO: 100, ShutterSeconds: 1.0 / 125},
			{Frame: 3, ImageFile: "a.png", Format: "620", FocalLengthMM: 50,
				FStop: 8, FilmSpeedISO: 100, ShutterSeconds: 1.0 / 125},
			{Frame: 4, ImageFile: "a.png", Format: "135", FocalLengthMM: 50,
				FStop: -8, FilmSpeedISO: 100, ShutterSeconds: 1.0 / 125},
		},
	}

	results := Run(cfg, roll)
	require.Len(t, results, 4)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success, "missing image must fail")
	assert.False(t, results[2].Success, "unknown format must fail")
	assert.False(t, results[3].Success, "invalid triad must fail")
	for _, r := range results[1:] {
		assert.NotEmpty(t, r.Error)
	}
}

func TestLoadRoll(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roll.json")

	roll := Roll{
		RollID: "summer-01",
		Shots: []ShotSpec{
			{Frame: 1, ImageFile: "a.png", Format: "135", FocalLengthMM: 50,
				FStop: 8, FilmSpeedISO: 100, ShutterSeconds: 1.0 / 125},
		},
	}
	data, err := json.Marshal(roll)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	got, err := LoadRoll(path)
	require.NoError(t, err)
	assert.Equal(t, "summer-01", got.RollID)
	require.Len(t, got.Shots, 1)
	assert.Equal(t, 50.0, got.Shots[0].FocalLengthMM)

	_, err = LoadRoll(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"roll_id":"x","shots":[]}`), 0644))
	_, err = LoadRoll(empty)
	assert.Error(t, err)
}

func TestWriteManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")

	roll := Roll{
		RollID: "roll-m",
		Shots: []ShotSpec{
			{Frame: 1, ImageFile: "a.png", Format: "135", FocalLengthMM: 50},
			{Frame: 2, ImageFile: "b.png", Format: "135", FocalLengthMM: 35},
		},
	}
	results := []Result{
		{Frame: 1, Success: true, AppliedISO: 50, AppliedShutterSeconds: 0.001},
		{Frame: 2, Success: false, Error: "decode failed"},
	}

	require.NoError(t, WriteManifest(path, roll, results))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entries []ManifestEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "001.webp", entries[0].Thumbnail)
	assert.Equal(t, float64(50), entries[0].AppliedISO)
	assert.Empty(t, entries[1].Thumbnail)
	assert.Equal(t, "decode failed", entries[1].Error)
}
