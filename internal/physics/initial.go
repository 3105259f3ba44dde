package physics

import "math/rand"

// NewUniformCube builds the reference initial condition: n particles
// placed uniformly at random in [0, side)³, all at rest, with the given
// mass, initial internal energy, and placeholder pressure (pressure is
// overwritten by the equation of state before first use; density starts
// at zero because it is always computed from scratch).
func NewUniformCube(n int, side, mass, energy float64, seed int64) Store {
	rng := rand.New(rand.NewSource(seed))
	store := make(Store, n)
	for i := range store {
		store[i] = Particle{
			Mass:     mass,
			Energy:   energy,
			Pressure: 1,
			Pos: Vec3{
				X: rng.Float64() * side,
				Y: rng.Float64() * side,
				Z: rng.Float64() * side,
			},
		}
	}
	return store
}

// NewTwoBodyAtRest builds the two-particle scenario used to check that
// attractive gravity dominates at rest for equal masses separated along X.
func NewTwoBodyAtRest(mass, energy, separation float64) Store {
	return Store{
		{Mass: mass, Energy: energy, Pressure: 1, Pos: Vec3{}},
		{Mass: mass, Energy: energy, Pressure: 1, Pos: Vec3{X: separation}},
	}
}

// NewSingleParticle builds the one-particle scenario used to check that a
// lone particle's self-softened gravity is a no-op.
func NewSingleParticle(mass, energy float64) Store {
	return Store{
		{Mass: mass, Energy: energy, Pressure: 1, Pos: Vec3{}},
	}
}
