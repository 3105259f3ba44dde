package metrics

import (
	"math"

	"github.com/gravsph/gravsph/internal/physics"
)

// Energy tracks the running mean of total system energy (kinetic + internal
// thermal + gravitational potential) across the samples it is given.
type Energy struct {
	name        string
	g           float64
	softening   float64
	samples     int
	totalEnergy float64
}

// NewEnergy builds an Energy tracker for the given gravitational constant
// and softening length, used to evaluate the potential term.
func NewEnergy(g, softening float64) *Energy {
	return &Energy{name: "energy", g: g, softening: softening}
}

func (e *Energy) Name() string { return e.name }

// Observe folds one snapshot's total energy into the running mean.
func (e *Energy) Observe(store physics.Store, t float64) {
	e.totalEnergy += Total(store, e.g, e.softening)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// Total computes the instantaneous total energy of store: kinetic energy,
// SPH internal (thermal) energy, and gravitational potential energy summed
// over all distinct pairs with the same softening the force traversal uses.
// This is an O(N²) diagnostic, not a hot-path computation — it is meant to
// be sampled once per full step, not once per traversal.
func Total(store physics.Store, g, softening float64) float64 {
	var kinetic, internal, potential float64
	eps2 := softening * softening

	for i := range store {
		p := &store[i]
		kinetic += 0.5 * p.Mass * p.Vel.Norm2()
		internal += p.Mass * p.Energy
	}

	for i := 0; i < len(store); i++ {
		for j := i + 1; j < len(store); j++ {
			sep := store[i].Pos.Sub(store[j].Pos)
			d := math.Sqrt(sep.Norm2() + eps2)
			potential -= g * store[i].Mass * store[j].Mass / d
		}
	}

	return kinetic + internal + potential
}

// Drift tracks the fractional change in total energy relative to the first
// snapshot observed, the blow-up signal a leapfrog-style integrator is
// expected to keep small for a well-resolved run.
type Drift struct {
	name          string
	g             float64
	softening     float64
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewDrift(g, softening float64) *Drift {
	return &Drift{name: "energy_drift", g: g, softening: softening}
}

func (d *Drift) Name() string { return d.name }

func (d *Drift) Observe(store physics.Store, t float64) {
	energy := Total(store, d.g, d.softening)

	if d.samples == 0 {
		d.initialEnergy = energy
	}
	d.samples++

	if d.initialEnergy != 0 {
		drift := math.Abs(energy-d.initialEnergy) / math.Abs(d.initialEnergy)
		d.maxDrift = math.Max(d.maxDrift, drift)
	}
}

func (d *Drift) Value() float64 {
	return d.maxDrift
}

func (d *Drift) Reset() {
	d.initialEnergy = 0
	d.maxDrift = 0
	d.samples = 0
}
