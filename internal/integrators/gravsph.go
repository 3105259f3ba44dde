// Package integrators holds the time-stepping schemes that advance a
// physics.Store forward in time. GravSPH is specific to the coupled
// gravity/SPH pipeline: unlike a generic single-derivative integrator, it
// needs a fresh octree rebuilt between its two half-steps, so it owns the
// tree build and the density/EOS/gravity/force traversals directly rather
// than going through a single Derive-style callback.
package integrators

import (
	"context"
	"fmt"

	"github.com/gravsph/gravsph/internal/gravity"
	"github.com/gravsph/gravsph/internal/octree"
	"github.com/gravsph/gravsph/internal/physics"
	"github.com/gravsph/gravsph/internal/sph"
)

// Params holds the compile-time constants the reference pipeline uses,
// exposed here so callers (config, tests) can override them.
type Params struct {
	G             float64
	Softening     float64
	SmoothingH    float64
	Theta         float64
	GammaMinusOne float64
	Dt            float64
	TEnd          float64
	DepthLimit    int
	LeafCapacity  int
}

// DefaultParams returns the reference parameter set.
func DefaultParams() Params {
	return Params{
		G:             6.67430e-11,
		Softening:     1.0e-5,
		SmoothingH:    10.0,
		Theta:         0.5,
		GammaMinusOne: 2.0 / 3.0,
		Dt:            0.8,
		TEnd:          1000.0,
		DepthLimit:    1000,
		LeafCapacity:  1,
	}
}

// GravSPH drives the per-step pipeline: octree build, SPH density,
// equation of state, Barnes–Hut gravity, SPH pressure force, and a
// two-stage kick-drift-kick update, over the lifetime of a run.
type GravSPH struct {
	Store  physics.Store
	Params Params
	T      float64

	// StepsTaken counts completed full steps, for diagnostics.
	StepsTaken int
}

// New creates a GravSPH integrator over store, owned by the caller for
// its lifetime.
func New(store physics.Store, params Params) *GravSPH {
	return &GravSPH{Store: store, Params: params}
}

// Run advances the simulation from t=0 until t >= TEnd, stopping early if
// ctx is canceled or a step returns an error.
func (g *GravSPH) Run(ctx context.Context) error {
	for g.T < g.Params.TEnd {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := g.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step advances the simulation by one full step (two half-steps) of size
// Params.Dt.
func (g *GravSPH) Step() error {
	if err := g.halfStep(true); err != nil {
		return &physics.StepError{Step: g.StepsTaken, Time: g.T, Wrapped: err}
	}
	if err := g.halfStep(false); err != nil {
		return &physics.StepError{Step: g.StepsTaken, Time: g.T, Wrapped: err}
	}
	g.T += g.Params.Dt
	g.StepsTaken++
	return nil
}

// halfStep runs one sub-step of the kick-drift-kick cycle. first selects
// between sub-step A (no pressure clamp, zeroes accelerations before
// gravity, zeroes accelerations again after its drift) and sub-step B (the
// post-step pressure clamp, no re-zero of accelerations before gravity —
// preserved from the reference behavior, see the integrator's design
// notes).
func (g *GravSPH) halfStep(first bool) error {
	store := g.Store
	p := g.Params
	halfDt := p.Dt / 2

	root := octree.Build(store, p.DepthLimit, p.LeafCapacity)

	sph.Density(root, store, p.SmoothingH)
	for i := range store {
		if store[i].Density == 0 {
			return fmt.Errorf("%w: particle %d", physics.ErrDegenerateDensity, i)
		}
	}
	sph.PropagateDensity(root, store)

	sph.EOS(store, p.GammaMinusOne, !first)
	sph.PropagatePressure(root, store)

	if first {
		store.ZeroAccelerations()
	}

	gravity.Accumulate(root, store, gravity.Params{G: p.G, Softening: p.Softening, Theta: p.Theta})

	// DEnergy is already 0 here: the kick below resets it the instant it's
	// consumed, so it enters every force traversal at 0 without a re-zero.
	sph.Force(root, store, p.SmoothingH)

	for i := range store {
		store[i].Vel = store[i].Vel.Add(store[i].Acc.Scale(halfDt))
		store[i].Energy += store[i].DEnergy * halfDt
		store[i].DEnergy = 0
	}

	for i := range store {
		store[i].Pos = store[i].Pos.Add(store[i].Vel.Scale(halfDt))
	}

	if first {
		store.ZeroAccelerations()
	}

	return nil
}
