package compute

import (
	"math"
	"testing"

	"github.com/gravsph/gravsph/internal/physics"
)

func TestDirectGravityTwoBody(t *testing.T) {
	store := physics.NewTwoBodyAtRest(100, 1.0, 4.0)
	backend := NewCPUBackend()

	acc := backend.DirectGravity(store, 6.67430e-11, 1e-5)

	if acc[0].X <= 0 || acc[1].X >= 0 {
		t.Errorf("expected attraction toward each other, got %+v and %+v", acc[0], acc[1])
	}

	want := 6.67430e-11 * 100 / (4.0 * 4.0)
	if math.Abs(math.Abs(acc[0].X)-want) > want*1e-3 {
		t.Errorf("expected magnitude ~%v, got %v", want, math.Abs(acc[0].X))
	}
}

func TestDirectGravitySerialMatchesParallel(t *testing.T) {
	store := physics.NewUniformCube(200, 12, 1.0, 1.0, 9)
	backend := NewCPUBackend()

	serial := make([]physics.Vec3, len(store))
	backend.directSerial(store, 1.0, 1e-3, serial)

	parallel := make([]physics.Vec3, len(store))
	backend.directParallel(store, 1.0, 1e-3, parallel)

	for i := range store {
		diff := serial[i].Sub(parallel[i]).Norm()
		ref := serial[i].Norm()
		if ref > 0 && diff/ref > 1e-6 {
			t.Errorf("particle %d: serial %+v vs parallel %+v diverge", i, serial[i], parallel[i])
		}
	}
}

func TestDefaultBackendIsAvailable(t *testing.T) {
	b := GetBackend()
	if b == nil || !b.Available() {
		t.Error("expected a default backend to be registered and available")
	}
}
