package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gravsph/gravsph/internal/physics"
)

func sampleParticles() physics.Store {
	return physics.Store{
		{Mass: 100, Density: 1.5, Pressure: 1.0, Energy: 1.0, Pos: physics.Vec3{X: 1}},
		{Mass: 100, Density: 2.5, Pressure: 1.0, Energy: 1.0, Pos: physics.Vec3{X: 2}},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	meta := RunMetadata{
		Scenario:     "two-body",
		Seed:         42,
		NumParticles: 2,
		Theta:        0.5,
		Dt:           0.8,
		TEnd:         1000,
		Steps:        10,
		FinalEnergy:  3.5,
	}

	runID, err := st.Save(meta, sampleParticles())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	loaded, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Scenario != "two-body" {
		t.Errorf("expected scenario two-body, got %s", loaded.Scenario)
	}
	if loaded.Seed != 42 {
		t.Errorf("expected seed 42, got %d", loaded.Seed)
	}
	if loaded.FinalEnergy != 3.5 {
		t.Errorf("expected final energy 3.5, got %f", loaded.FinalEnergy)
	}

	particles, err := st.LoadParticles(runID)
	if err != nil {
		t.Fatalf("load particles failed: %v", err)
	}
	if len(particles) != 2 {
		t.Errorf("expected 2 particles, got %d", len(particles))
	}
	if particles[1].Pos.X != 2 {
		t.Errorf("expected second particle at x=2, got %f", particles[1].Pos.X)
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.Save(RunMetadata{Scenario: "cube"}, sampleParticles()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(RunMetadata{Scenario: "cube"}, sampleParticles())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(filepath.Join(runDir, "particles.csv")); os.IsNotExist(err) {
		t.Error("particles.csv not created")
	}
}
