package compute

import (
	"math"
	"runtime"
	"sync"

	"github.com/gravsph/gravsph/internal/physics"
)

// CPUBackend computes every pairwise gravitational acceleration directly,
// splitting the outer loop across goroutines once the particle count makes
// that worthwhile.
type CPUBackend struct {
	workers int
}

func NewCPUBackend() *CPUBackend {
	return &CPUBackend{workers: runtime.NumCPU()}
}

func (c *CPUBackend) Name() string    { return "cpu" }
func (c *CPUBackend) Available() bool { return true }

// DirectGravity computes the O(N²) softened gravitational acceleration on
// every particle in store, with the same softening convention the
// Barnes–Hut traversal uses.
func (c *CPUBackend) DirectGravity(store physics.Store, g, softening float64) []physics.Vec3 {
	n := len(store)
	acc := make([]physics.Vec3, n)

	if n < 64 {
		c.directSerial(store, g, softening, acc)
		return acc
	}
	c.directParallel(store, g, softening, acc)
	return acc
}

func (c *CPUBackend) directSerial(store physics.Store, g, softening float64, acc []physics.Vec3) {
	n := len(store)
	eps2 := softening * softening

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sep := store[j].Pos.Sub(store[i].Pos)
			d2 := sep.Norm2() + eps2
			d := math.Sqrt(d2)
			d3Inv := 1.0 / (d2 * d)

			acc[i] = acc[i].Add(sep.Scale(g * store[j].Mass * d3Inv))
			acc[j] = acc[j].Add(sep.Scale(-g * store[i].Mass * d3Inv))
		}
	}
}

func (c *CPUBackend) directParallel(store physics.Store, g, softening float64, acc []physics.Vec3) {
	n := len(store)
	eps2 := softening * softening

	local := make([][]physics.Vec3, c.workers)
	for w := range local {
		local[w] = make([]physics.Vec3, n)
	}

	var wg sync.WaitGroup
	chunk := (n + c.workers - 1) / c.workers

	for w := 0; w < c.workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			start := worker * chunk
			end := start + chunk
			if end > n {
				end = n
			}
			la := local[worker]
			for i := start; i < end; i++ {
				for j := 0; j < n; j++ {
					if i == j {
						continue
					}
					sep := store[j].Pos.Sub(store[i].Pos)
					d2 := sep.Norm2() + eps2
					d := math.Sqrt(d2)
					d3Inv := 1.0 / (d2 * d)
					la[i] = la[i].Add(sep.Scale(g * store[j].Mass * d3Inv))
				}
			}
		}(w)
	}
	wg.Wait()

	for w := 0; w < c.workers; w++ {
		for i := 0; i < n; i++ {
			acc[i] = acc[i].Add(local[w][i])
		}
	}
}
