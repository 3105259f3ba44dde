// Package store persists run results to disk: a metadata.json summary per
// run plus a particles.csv snapshot of the final particle state, mirroring
// the teacher's internal/storage layout.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gravsph/gravsph/internal/physics"
)

// RunMetadata summarizes one simulation run: its scenario and parameters,
// how long it ran, and a cheap diagnostic (final total energy) to spot
// blow-ups without reloading the full particle snapshot.
type RunMetadata struct {
	ID           string        `json:"id"`
	Scenario     string        `json:"scenario"`
	Timestamp    time.Time     `json:"timestamp"`
	Seed         int64         `json:"seed"`
	NumParticles int           `json:"num_particles"`
	Theta        float64       `json:"theta"`
	SmoothingH   float64       `json:"smoothing_h"`
	Softening    float64       `json:"softening"`
	G            float64       `json:"g"`
	Dt           float64       `json:"dt"`
	TEnd         float64       `json:"t_end"`
	Steps        int           `json:"steps"`
	WallTime     time.Duration `json:"wall_time_ns"`
	FinalEnergy  float64       `json:"final_energy"`
}

// Store manages a directory of run subdirectories, one per saved run.
type Store struct {
	baseDir string
}

// New returns a Store rooted at baseDir. Call Init before Save.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Init creates the store's base directory if it does not already exist.
func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Save writes meta.ID's run directory (metadata.json plus particles.csv for
// the final snapshot in particles). If meta.ID is empty a timestamp-based ID
// is generated from meta.Scenario.
func (s *Store) Save(meta RunMetadata, particles physics.Store) (string, error) {
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("%s_%d", meta.Scenario, time.Now().Unix())
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := writeParticlesCSV(filepath.Join(runDir, "particles.csv"), particles); err != nil {
		return "", err
	}

	return meta.ID, nil
}

func writeParticlesCSV(path string, particles physics.Store) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"index", "x", "y", "z", "vx", "vy", "vz", "mass", "density", "pressure", "energy"}); err != nil {
		return err
	}

	for i, p := range particles {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(p.Pos.X, 'f', 6, 64),
			strconv.FormatFloat(p.Pos.Y, 'f', 6, 64),
			strconv.FormatFloat(p.Pos.Z, 'f', 6, 64),
			strconv.FormatFloat(p.Vel.X, 'f', 6, 64),
			strconv.FormatFloat(p.Vel.Y, 'f', 6, 64),
			strconv.FormatFloat(p.Vel.Z, 'f', 6, 64),
			strconv.FormatFloat(p.Mass, 'f', 6, 64),
			strconv.FormatFloat(p.Density, 'f', 6, 64),
			strconv.FormatFloat(p.Pressure, 'f', 6, 64),
			strconv.FormatFloat(p.Energy, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// List enumerates every saved run's metadata, skipping any subdirectory
// that lacks a readable metadata.json.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

// Load reads back a single run's metadata.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadParticles reads back a run's final particle snapshot.
func (s *Store) LoadParticles(runID string) (physics.Store, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "particles.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return physics.Store{}, nil
	}

	result := make(physics.Store, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) < 11 {
			continue
		}
		var p physics.Particle
		p.Pos.X, _ = strconv.ParseFloat(rec[1], 64)
		p.Pos.Y, _ = strconv.ParseFloat(rec[2], 64)
		p.Pos.Z, _ = strconv.ParseFloat(rec[3], 64)
		p.Vel.X, _ = strconv.ParseFloat(rec[4], 64)
		p.Vel.Y, _ = strconv.ParseFloat(rec[5], 64)
		p.Vel.Z, _ = strconv.ParseFloat(rec[6], 64)
		p.Mass, _ = strconv.ParseFloat(rec[7], 64)
		p.Density, _ = strconv.ParseFloat(rec[8], 64)
		p.Pressure, _ = strconv.ParseFloat(rec[9], 64)
		p.Energy, _ = strconv.ParseFloat(rec[10], 64)
		result = append(result, p)
	}
	return result, nil
}
