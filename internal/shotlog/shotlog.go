// Package shotlog persists shot metadata to SQLite.
package shotlog

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Shot is one logged exposure: the simulated film setting, the resolved
// device exposure, the computed depth of field and the stored thumbnail.
type Shot struct {
	ShotID     string `json:"shot_id"`
	RollID     string `json:"roll_id"`
	FilmFormat string `json:"film_format"`

	FocalLengthMM     float64 `json:"focal_length_mm"`
	FStop             float64 `json:"fstop"`
	FilmSpeedISO      float64 `json:"film_speed_iso"`
	ShutterSeconds    float64 `json:"shutter_seconds"`
	CompensationStops float64 `json:"compensation_stops"`

	AppliedISO            float64 `json:"applied_iso"`
	AppliedShutterSeconds float64 `json:"applied_shutter_seconds"`
	FlickerRisk           bool    `json:"flicker_risk"`

	FocusDistanceMM float64  `json:"focus_distance_mm,omitempty"`
	NearLimitMM     float64  `json:"near_limit_mm,omitempty"`
	FarLimitMM      *float64 `json:"far_limit_mm,omitempty"` // nil = infinite
	HyperfocalMM    float64  `json:"hyperfocal_mm,omitempty"`

	ThumbnailPath string `json:"thumbnail_path,omitempty"`
	CreatedAtNs   int64  `json:"created_at_ns"`
}

// FarLimit returns the far limit, with nil mapped back to +Inf.
func (s *Shot) FarLimit() float64 {
	if s.FarLimitMM == nil {
		return math.Inf(1)
	}
	return *s.FarLimitMM
}

// Store provides persistence for shots.
type Store struct {
	db *sql.DB
}

const schema = `
	CREATE TABLE IF NOT EXISTS shots (
		shot_id                 TEXT PRIMARY KEY,
		roll_id                 TEXT NOT NULL,
		film_format             TEXT NOT NULL,
		focal_length_mm         DOUBLE NOT NULL,
		fstop                   DOUBLE NOT NULL,
		film_speed_iso          DOUBLE NOT NULL,
		shutter_seconds         DOUBLE NOT NULL,
		compensation_stops      DOUBLE NOT NULL,
		applied_iso             DOUBLE NOT NULL,
		applied_shutter_seconds DOUBLE NOT NULL,
		flicker_risk            INTEGER NOT NULL,
		focus_distance_mm       DOUBLE,
		near_limit_mm           DOUBLE,
		far_limit_mm            DOUBLE,
		hyperfocal_mm           DOUBLE,
		thumbnail_path          TEXT,
		created_at_ns           BIGINT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_shots_roll ON shots(roll_id, created_at_ns);
`

// Open opens (creating if needed) a shot log at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("shotlog: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("shotlog: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert writes a shot. An empty ShotID gets a fresh UUID; a zero CreatedAtNs
// gets the current time.
func (s *Store) Insert(shot *Shot) error {
	if shot.ShotID == "" {
		shot.ShotID = uuid.New().String()
	}
	if shot.CreatedAtNs == 0 {
		shot.CreatedAtNs = time.Now().UnixNano()
	}

	_, err := s.db.Exec(`
		INSERT INTO shots (
			shot_id, roll_id, film_format, focal_length_mm,
			fstop, film_speed_iso, shutter_seconds, compensation_stops,
			applied_iso, applied_shutter_seconds, flicker_risk,
			focus_distance_mm, near_limit_mm, far_limit_mm, hyperfocal_mm,
			thumbnail_path, created_at_ns
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		shot.ShotID,
		shot.RollID,
		shot.FilmFormat,
		shot.FocalLengthMM,
		shot.FStop,
		shot.FilmSpeedISO,
		shot.ShutterSeconds,
		shot.CompensationStops,
		shot.AppliedISO,
		shot.AppliedShutterSeconds,
		shot.FlickerRisk,
		nullFloat64(shot.FocusDistanceMM),
		nullFloat64(shot.NearLimitMM),
		shot.FarLimitMM,
		nullFloat64(shot.HyperfocalMM),
		nullString(shot.ThumbnailPath),
		shot.CreatedAtNs,
	)
	if err != nil {
		return fmt.Errorf("shotlog: insert shot: %w", err)
	}
	return nil
}

// Get fetches one shot by ID.
func (s *Store) Get(shotID string) (*Shot, error) {
	row := s.db.QueryRow(selectCols+` WHERE shot_id = ?`, shotID)
	shot, err := scanShot(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("shotlog: shot %s not found", shotID)
	}
	if err != nil {
		return nil, fmt.Errorf("shotlog: get shot: %w", err)
	}
	return shot, nil
}

// ListRoll returns all shots of a roll in insertion order.
func (s *Store) ListRoll(rollID string) ([]*Shot, error) {
	rows, err := s.db.Query(selectCols+` WHERE roll_id = ? ORDER BY created_at_ns`, rollID)
	if err != nil {
		return nil, fmt.Errorf("shotlog: list roll: %w", err)
	}
	defer rows.Close()

	var shots []*Shot
	for rows.Next() {
		shot, err := scanShot(rows)
		if err != nil {
			return nil, fmt.Errorf("shotlog: scan shot: %w", err)
		}
		shots = append(shots, shot)
	}
	return shots, rows.Err()
}

const selectCols = `
	SELECT shot_id, roll_id, film_format, focal_length_mm,
		fstop, film_speed_iso, shutter_seconds, compensation_stops,
		applied_iso, applied_shutter_seconds, flicker_risk,
		focus_distance_mm, near_limit_mm, far_limit_mm, hyperfocal_mm,
		thumbnail_path, created_at_ns
	FROM shots`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanShot(r rowScanner) (*Shot, error) {
	var shot Shot
	var focus, near, far, hyper sql.NullFloat64
	var thumb sql.NullString
	err := r.Scan(
		&shot.ShotID,
		&shot.RollID,
		&shot.FilmFormat,
		&shot.FocalLengthMM,
		&shot.FStop,
		&shot.FilmSpeedISO,
		&shot.ShutterSeconds,
		&shot.CompensationStops,
		&shot.AppliedISO,
		&shot.AppliedShutterSeconds,
		&shot.FlickerRisk,
		&focus,
		&near,
		&far,
		&hyper,
		&thumb,
		&shot.CreatedAtNs,
	)
	if err != nil {
		return nil, err
	}
	shot.FocusDistanceMM = focus.Float64
	shot.NearLimitMM = near.Float64
	if far.Valid {
		v := far.Float64
		shot.FarLimitMM = &v
	}
	shot.HyperfocalMM = hyper.Float64
	shot.ThumbnailPath = thumb.String
	return &shot, nil
}

func nullFloat64(v float64) any {
	if v == 0 {
		return nil
	}
	return v
}

func nullString(v string) any {
	if v == "" {
		return nil
	}
	return v
}
