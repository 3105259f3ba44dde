// Package octree builds the cubic, axis-aligned Barnes–Hut/SPH spatial
// index used to restrict both the gravity and the SPH neighbor traversals
// to nearby tree branches instead of every particle pair.
package octree

import "github.com/gravsph/gravsph/internal/physics"

// Record is a value-copy of a particle stored at a tree node, tagged with
// its position in the authoritative Store so later passes (density
// propagation) can find the matching live particle by identity.
type Record struct {
	Index    int
	Particle physics.Particle
}

// Node is a cubic cell of the octree: either a leaf holding its particle
// records directly, or an internal node whose Children are indexed by the
// eight octants of its cell, with a child built only for each non-empty
// octant (empty octants stay nil). Every node keeps the full list of
// records that fell inside it. A node owns its children outright; there
// are no parent pointers and no aliasing between nodes.
type Node struct {
	Center Vec3
	Side   float64

	N       int
	Records []Record

	Mass float64
	COM  Vec3

	Leaf     bool
	Children [8]*Node
}

// Vec3 is an alias of physics.Vec3, so positions pass between the two
// packages without conversion.
type Vec3 = physics.Vec3

// Build constructs a fresh octree over the current particle positions in
// store. depthLimit bounds recursion depth (D in the reference parameters);
// leafCap is the maximum particle-list size before a node stops
// subdividing (L, used as 1 in practice).
func Build(store physics.Store, depthLimit, leafCap int) *Node {
	records := make([]Record, len(store))
	for i, p := range store {
		records[i] = Record{Index: i, Particle: p}
	}

	min, max := store.Bounds()
	center := Vec3{
		X: (min.X + max.X) / 2,
		Y: (min.Y + max.Y) / 2,
		Z: (min.Z + max.Z) / 2,
	}
	side := max.X - min.X
	if e := max.Y - min.Y; e > side {
		side = e
	}
	if e := max.Z - min.Z; e > side {
		side = e
	}

	return buildNode(center, side, records, depthLimit, leafCap)
}

func buildNode(center Vec3, side float64, records []Record, depth, leafCap int) *Node {
	node := &Node{
		Center:  center,
		Side:    side,
		N:       len(records),
		Records: records,
	}

	var mass float64
	var com Vec3
	for _, r := range records {
		mass += r.Particle.Mass
		com = com.Add(r.Particle.Pos.Scale(r.Particle.Mass))
	}
	if mass == 0 {
		node.COM = center
	} else {
		node.COM = com.Scale(1 / mass)
	}
	node.Mass = mass

	if len(records) <= leafCap || depth <= 0 {
		node.Leaf = true
		return node
	}

	var buckets [8][]Record
	for _, r := range records {
		k := octant(center, r.Particle.Pos)
		buckets[k] = append(buckets[k], r)
	}

	any := false
	for k := 0; k < 8; k++ {
		if len(buckets[k]) == 0 {
			continue
		}
		any = true
		node.Children[k] = buildNode(childCenter(center, side, k), side/2, buckets[k], depth-1, leafCap)
	}
	if !any {
		node.Leaf = true
	}
	return node
}

// octant classifies a position into one of eight children of a node
// centered at c: bit 0 of the result is set iff x > c.X, bit 1 iff
// y > c.Y, bit 2 iff z > c.Z.
func octant(c, pos Vec3) int {
	k := 0
	if pos.X > c.X {
		k |= 1
	}
	if pos.Y > c.Y {
		k |= 2
	}
	if pos.Z > c.Z {
		k |= 4
	}
	return k
}

// childCenter returns the center of child k of a node with the given
// center and side length.
func childCenter(c Vec3, side float64, k int) Vec3 {
	sx, sy, sz := -1.0, -1.0, -1.0
	if k&1 != 0 {
		sx = 1.0
	}
	if k&2 != 0 {
		sy = 1.0
	}
	if k&4 != 0 {
		sz = 1.0
	}
	q := side / 4
	return Vec3{X: c.X + sx*q, Y: c.Y + sy*q, Z: c.Z + sz*q}
}
