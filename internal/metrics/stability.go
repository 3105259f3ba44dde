package metrics

import (
	"math"

	"github.com/gravsph/gravsph/internal/physics"
)

// Stability tracks the fraction of observed snapshots where every
// particle's position and velocity stayed within threshold, flagging the
// numerical blow-up a too-large timestep or too-small softening produces.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{name: "stability", threshold: threshold}
}

func (s *Stability) Name() string { return s.name }

func (s *Stability) Observe(store physics.Store, t float64) {
	s.samples++
	for i := range store {
		p := &store[i]
		if exceeds(p.Pos, s.threshold) || exceeds(p.Vel, s.threshold) || math.IsNaN(p.Density) {
			s.violations++
			break
		}
	}
}

func exceeds(v physics.Vec3, threshold float64) bool {
	for j := 0; j < 3; j++ {
		a := v.Axis(j)
		if math.IsNaN(a) || math.IsInf(a, 0) || math.Abs(a) > threshold {
			return true
		}
	}
	return false
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
