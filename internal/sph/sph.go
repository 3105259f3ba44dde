// Package sph evaluates density, pressure, and pressure-force/energy-rate
// terms for Smoothed Particle Hydrodynamics by restricting the neighbor
// search to octree branches whose cell overlaps a particle's kernel
// support.
package sph

import (
	"math"

	"github.com/gravsph/gravsph/internal/octree"
	"github.com/gravsph/gravsph/internal/physics"
)

// overlaps reports whether node's cell can contain any point within
// distance 2h of pos — the octree branches a density/force traversal is
// allowed to prune.
func overlaps(node *octree.Node, pos physics.Vec3, h float64) bool {
	reach := 2*h + node.Side/2
	for j := 0; j < 3; j++ {
		if math.Abs(pos.Axis(j)-node.Center.Axis(j)) >= reach {
			return false
		}
	}
	return true
}

// Density computes each particle's density by summing kernel-weighted
// contributions from every neighbor whose support overlaps, including the
// particle's own self-term.
func Density(root *octree.Node, store physics.Store, h float64) {
	for i := range store {
		store[i].Density = 0
	}
	for i := range store {
		densityTraverse(root, store, i, h)
	}
}

func densityTraverse(node *octree.Node, store physics.Store, i int, h float64) {
	if node == nil || node.N == 0 {
		return
	}
	pos := store[i].Pos
	if !overlaps(node, pos, h) {
		return
	}

	if node.N > 1 && !node.Leaf {
		for _, child := range node.Children {
			if child != nil {
				densityTraverse(child, store, i, h)
			}
		}
		return
	}

	if node.N == 1 {
		q := node.Records[0].Particle
		r := pos.Sub(q.Pos).Norm()
		store[i].Density += q.Mass * physics.KernelValue(r, h)
	}
}

// PropagateDensity writes each particle's freshly computed density back
// into every tree-node copy of that particle, matched by its Store index.
// Tree copies are independent value copies taken at build time, so force
// traversal would otherwise see stale densities.
func PropagateDensity(node *octree.Node, store physics.Store) {
	if node == nil {
		return
	}
	for i := range node.Records {
		node.Records[i].Particle.Density = store[node.Records[i].Index].Density
	}
	for _, child := range node.Children {
		if child != nil {
			PropagateDensity(child, store)
		}
	}
}

// PropagatePressure writes each particle's current pressure back into
// every tree-node copy of that particle, matched by Store index. Called
// after the equation of state runs so the force traversal reads
// up-to-date pressure from the tree.
func PropagatePressure(node *octree.Node, store physics.Store) {
	if node == nil {
		return
	}
	for i := range node.Records {
		node.Records[i].Particle.Pressure = store[node.Records[i].Index].Pressure
	}
	for _, child := range node.Children {
		if child != nil {
			PropagatePressure(child, store)
		}
	}
}

// EOS applies the ideal-gas equation of state P = (γ-1)·u·ρ to every
// particle. When clamp is true, the result is additionally floored at
// zero; the reference pipeline only clamps after the second half-step.
func EOS(store physics.Store, gammaMinusOne float64, clamp bool) {
	for i := range store {
		p := gammaMinusOne * store[i].Energy * store[i].Density
		if clamp && p < 0 {
			p = 0
		}
		store[i].Pressure = p
	}
}

// Force accumulates the SPH pressure-acceleration contribution into each
// particle's Acc (added to whatever gravity already placed there) and the
// internal-energy rate into DEnergy, from the same overlap-restricted
// neighbor set Density uses.
func Force(root *octree.Node, store physics.Store, h float64) {
	for i := range store {
		forceTraverse(root, store, i, h)
	}
}

func forceTraverse(node *octree.Node, store physics.Store, i int, h float64) {
	if node == nil || node.N == 0 {
		return
	}
	pos := store[i].Pos
	if !overlaps(node, pos, h) {
		return
	}

	if node.N > 1 && !node.Leaf {
		for _, child := range node.Children {
			if child != nil {
				forceTraverse(child, store, i, h)
			}
		}
		return
	}

	if node.N != 1 {
		return
	}

	q := node.Records[0].Particle
	sep := pos.Sub(q.Pos)
	r := sep.Norm()
	if r == 0 {
		return
	}

	unit := sep.Scale(1 / r)
	gradScale := physics.KernelGradScale(r, h)
	gradW := unit.Scale(gradScale)

	p := &store[i]
	pressureTerm := -q.Mass * (p.Pressure/(p.Density*p.Density) + q.Pressure/(q.Density*q.Density))
	p.Acc = p.Acc.Add(gradW.Scale(pressureTerm))

	vpq := p.Vel.Sub(q.Vel)
	p.DEnergy += (p.Pressure / p.Density) * q.Mass * vpq.Dot(gradW)
}
