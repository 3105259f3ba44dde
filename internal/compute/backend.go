package compute

import "github.com/gravsph/gravsph/internal/physics"

// Backend computes gravitational acceleration directly, without a tree
// approximation — the brute-force path gravity.Accumulate takes for runs
// small enough that tree overhead isn't worth paying.
type Backend interface {
	Name() string
	Available() bool
	DirectGravity(store physics.Store, g, softening float64) []physics.Vec3
}

var activeBackend Backend

func init() {
	activeBackend = NewCPUBackend()
}

func SetBackend(b Backend) {
	activeBackend = b
}

func GetBackend() Backend {
	return activeBackend
}
