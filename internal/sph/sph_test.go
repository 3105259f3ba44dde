package sph

import (
	"math"
	"testing"

	"github.com/gravsph/gravsph/internal/octree"
	"github.com/gravsph/gravsph/internal/physics"
)

func TestDensitySelfTermDominatesWhenIsolated(t *testing.T) {
	store := physics.NewSingleParticle(100, 1.0)
	root := octree.Build(store, 1000, 1)

	Density(root, store, 10.0)

	want := 100 * physics.KernelValue(0, 10.0)
	if math.Abs(store[0].Density-want) > 1e-9 {
		t.Errorf("expected density %v from self-term alone, got %v", want, store[0].Density)
	}
}

func TestDensityPositiveForOverlappingPair(t *testing.T) {
	store := physics.NewTwoBodyAtRest(100, 1.0, 4.0)
	root := octree.Build(store, 1000, 1)

	Density(root, store, 10.0)

	for i, p := range store {
		if p.Density <= 0 {
			t.Errorf("particle %d: expected positive density, got %v", i, p.Density)
		}
	}
	// equal masses at equal separation should see equal density.
	if math.Abs(store[0].Density-store[1].Density) > 1e-12 {
		t.Errorf("expected symmetric densities, got %v and %v", store[0].Density, store[1].Density)
	}
}

func TestPropagateDensityReachesEveryTreeCopy(t *testing.T) {
	store := physics.NewUniformCube(80, 12, 1.0, 1.0, 4)
	root := octree.Build(store, 1000, 1)

	Density(root, store, 2.0)
	PropagateDensity(root, store)

	var walk func(n *octree.Node)
	walk = func(n *octree.Node) {
		if n == nil {
			return
		}
		for _, r := range n.Records {
			if r.Particle.Density != store[r.Index].Density {
				t.Errorf("record for index %d out of sync: tree has %v, store has %v",
					r.Index, r.Particle.Density, store[r.Index].Density)
			}
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
}

func TestEOSClampOnlyWhenRequested(t *testing.T) {
	store := physics.Store{
		{Energy: -1.0, Density: 1.0},
	}

	EOS(store, 2.0/3.0, false)
	if store[0].Pressure >= 0 {
		t.Errorf("expected negative pressure without clamp, got %v", store[0].Pressure)
	}

	EOS(store, 2.0/3.0, true)
	if store[0].Pressure != 0 {
		t.Errorf("expected clamped pressure of 0, got %v", store[0].Pressure)
	}
}

func TestForceSymmetricPressureAcceleration(t *testing.T) {
	store := physics.NewTwoBodyAtRest(100, 1.0, 4.0)
	root := octree.Build(store, 1000, 1)

	Density(root, store, 10.0)
	PropagateDensity(root, store)
	EOS(store, 2.0/3.0, false)
	PropagatePressure(root, store)

	Force(root, store, 10.0)

	sum := store[0].Acc.Add(store[1].Acc)
	if sum.Norm() > 1e-9 {
		t.Errorf("equal-mass symmetric pair should have canceling pressure accelerations, got sum %+v", sum)
	}
}

func TestForceSingleParticleNoSelfForce(t *testing.T) {
	store := physics.NewSingleParticle(100, 1.0)
	root := octree.Build(store, 1000, 1)

	Density(root, store, 10.0)
	PropagateDensity(root, store)
	EOS(store, 2.0/3.0, false)
	PropagatePressure(root, store)

	Force(root, store, 10.0)

	if store[0].Acc != (physics.Vec3{}) {
		t.Errorf("a lone particle should feel no pressure force, got %+v", store[0].Acc)
	}
	if store[0].DEnergy != 0 {
		t.Errorf("a lone particle should have no energy-rate contribution, got %v", store[0].DEnergy)
	}
}
