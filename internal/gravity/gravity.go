// Package gravity computes per-particle gravitational acceleration from a
// prebuilt octree using the Barnes–Hut hierarchical multipole
// approximation (monopole only).
package gravity

import (
	"math"

	"github.com/gravsph/gravsph/internal/compute"
	"github.com/gravsph/gravsph/internal/octree"
	"github.com/gravsph/gravsph/internal/physics"
)

// Params bundles the constants the traversal needs: the gravitational
// constant, the softening length, and the opening angle.
type Params struct {
	G         float64
	Softening float64
	Theta     float64
}

// directThreshold is the particle count up to which building and walking a
// tree costs more than it saves; at or below it Accumulate dispatches straight to
// the direct-sum backend, mirroring the teacher's cpu.go size-gated choice
// between nbodySerial and nbodyParallel.
const directThreshold = 64

// Accumulate adds the gravitational acceleration contribution from root
// onto every particle in store. Accelerations are additive; callers that
// want a fresh result must zero store's accelerations first.
func Accumulate(root *octree.Node, store physics.Store, p Params) {
	if len(store) <= directThreshold {
		acc := compute.GetBackend().DirectGravity(store, p.G, p.Softening)
		for i := range store {
			store[i].Acc = store[i].Acc.Add(acc[i])
		}
		return
	}

	eps2 := p.Softening * p.Softening
	for i := range store {
		traverse(root, store, i, p, eps2)
	}
}

func traverse(node *octree.Node, store physics.Store, i int, p Params, eps2 float64) {
	if node == nil || node.N == 0 {
		return
	}

	sep := store[i].Pos.Sub(node.COM)
	d2 := sep.Norm2() + eps2
	d := math.Sqrt(d2)

	if node.Leaf || node.Side/d < p.Theta {
		if node.Mass > 0 && d > 0 {
			scale := -p.G * node.Mass / (d2 * d)
			store[i].Acc = store[i].Acc.Add(sep.Scale(scale))
		}
		return
	}

	for _, child := range node.Children {
		if child != nil && child.N > 0 {
			traverse(child, store, i, p, eps2)
		}
	}
}
