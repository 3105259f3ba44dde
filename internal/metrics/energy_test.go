package metrics

import (
	"math"
	"testing"

	"github.com/gravsph/gravsph/internal/physics"
)

func TestTotalEnergyTwoBodyAtRest(t *testing.T) {
	store := physics.NewTwoBodyAtRest(100, 1.0, 4.0)
	g, softening := 6.67430e-11, 1e-5

	got := Total(store, g, softening)

	expectedPotential := -g * 100 * 100 / 4.0
	expectedInternal := 100*1.0 + 100*1.0
	want := expectedPotential + expectedInternal

	if math.Abs(got-want) > 1e-9 {
		t.Errorf("expected total energy %g, got %g", want, got)
	}
}

func TestEnergyObserveAccumulates(t *testing.T) {
	m := NewEnergy(6.67430e-11, 1e-5)
	store := physics.NewTwoBodyAtRest(100, 1.0, 4.0)

	m.Observe(store, 0)
	first := m.Value()
	m.Observe(store, 1)
	second := m.Value()

	if first != second {
		t.Errorf("observing the same snapshot twice should leave the running mean unchanged, got %g then %g", first, second)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestDriftZeroForConstantEnergy(t *testing.T) {
	d := NewDrift(6.67430e-11, 1e-5)
	store := physics.NewTwoBodyAtRest(100, 1.0, 4.0)

	d.Observe(store, 0)
	d.Observe(store, 1)
	d.Observe(store, 2)

	if d.Value() != 0 {
		t.Errorf("expected zero drift for an unchanging snapshot, got %g", d.Value())
	}
}
