package config

// Presets are named starting configurations for the run command, keyed by
// preset name; several presets can share one Scenario. Each entry overrides only the fields the scenario cares
// about; everything else falls back to DefaultConfig.
var Presets = map[string]*Config{
	"cube500": {
		Scenario: "cube", NumParticles: 500, Side: 12.0, Mass: 100.0, InitialEnergy: 1.0,
	},
	"cube-sparse": {
		Scenario: "cube", NumParticles: 64, Side: 40.0, Mass: 50.0, InitialEnergy: 1.0,
	},
	"cube-dense": {
		Scenario: "cube", NumParticles: 2000, Side: 6.0, Mass: 100.0, InitialEnergy: 1.0,
	},
	"two-body": {
		Scenario: "two-body", Mass: 100.0, InitialEnergy: 1.0, Side: 4.0,
	},
	"single": {
		Scenario: "single", Mass: 100.0, InitialEnergy: 1.0,
	},
}

// GetPreset looks up a named preset, returning a fresh default-filled
// Config with the preset's overrides applied, or nil if name is unknown.
func GetPreset(name string) *Config {
	base, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Scenario = base.Scenario
	if base.NumParticles > 0 {
		cfg.NumParticles = base.NumParticles
	}
	if base.Side > 0 {
		cfg.Side = base.Side
	}
	if base.Mass > 0 {
		cfg.Mass = base.Mass
	}
	if base.InitialEnergy > 0 {
		cfg.InitialEnergy = base.InitialEnergy
	}
	return cfg
}

// ListPresets returns the known scenario preset names.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
