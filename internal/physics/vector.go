package physics

import "math"

// Vec3 is a 3-component double-precision vector: a position, velocity,
// or acceleration.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Norm2 returns the squared Euclidean length.
func (v Vec3) Norm2() float64 { return v.Dot(v) }

// Norm returns the Euclidean length.
func (v Vec3) Norm() float64 { return math.Sqrt(v.Norm2()) }

// Axis returns the j-th component (0=X, 1=Y, 2=Z).
func (v Vec3) Axis(j int) float64 {
	switch j {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}
