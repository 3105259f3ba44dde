package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gravsph/gravsph/internal/integrators"
)

const (
	DefaultNumParticles = 500
	DefaultSide         = 12.0
	DefaultMass         = 100.0
	DefaultEnergy       = 1.0
)

// Config is the full set of parameters a run needs: how many particles to
// seed, the initial-condition box, and the integrator's physical and
// numerical constants.
type Config struct {
	Scenario      string  `yaml:"scenario"`
	NumParticles  int     `yaml:"num_particles"`
	Side          float64 `yaml:"side"`
	Mass          float64 `yaml:"mass"`
	InitialEnergy float64 `yaml:"initial_energy"`
	Seed          int64   `yaml:"seed"`

	G             float64 `yaml:"g"`
	Softening     float64 `yaml:"softening"`
	SmoothingH    float64 `yaml:"smoothing_h"`
	Theta         float64 `yaml:"theta"`
	GammaMinusOne float64 `yaml:"gamma_minus_one"`
	Dt            float64 `yaml:"dt"`
	TEnd          float64 `yaml:"t_end"`
	DepthLimit    int     `yaml:"depth_limit"`
	LeafCapacity  int     `yaml:"leaf_capacity"`

	OutputPath string `yaml:"output_path"`
}

// DefaultConfig returns the reference parameter set: N=500 particles
// uniform in [0,12)³, mass 100, u=1, and the pipeline's compile-time
// physical constants.
func DefaultConfig() *Config {
	p := integrators.DefaultParams()
	return &Config{
		Scenario:      "cube",
		NumParticles:  DefaultNumParticles,
		Side:          DefaultSide,
		Mass:          DefaultMass,
		InitialEnergy: DefaultEnergy,
		G:             p.G,
		Softening:     p.Softening,
		SmoothingH:    p.SmoothingH,
		Theta:         p.Theta,
		GammaMinusOne: p.GammaMinusOne,
		Dt:            p.Dt,
		TEnd:          p.TEnd,
		DepthLimit:    p.DepthLimit,
		LeafCapacity:  p.LeafCapacity,
		OutputPath:    "log.txt",
	}
}

// IntegratorParams extracts the subset of Config the integrator needs.
func (c *Config) IntegratorParams() integrators.Params {
	return integrators.Params{
		G:             c.G,
		Softening:     c.Softening,
		SmoothingH:    c.SmoothingH,
		Theta:         c.Theta,
		GammaMinusOne: c.GammaMinusOne,
		Dt:            c.Dt,
		TEnd:          c.TEnd,
		DepthLimit:    c.DepthLimit,
		LeafCapacity:  c.LeafCapacity,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
