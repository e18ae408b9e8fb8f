// Package vec provides the 3D vector primitives used throughout the simulator.
package vec

import (
	"fmt"
	"math"
)

// V3 is a 3-component float64 vector. All methods are value receivers and
// return new vectors; V3 is safe to copy.
type V3 struct {
	X, Y, Z float64
}

func (v V3) String() string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v.X, v.Y, v.Z)
}

func (v V3) Add(o V3) V3 {
	return V3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v V3) Sub(o V3) V3 {
	return V3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v V3) Scaled(s float64) V3 {
	return V3{v.X * s, v.Y * s, v.Z * s}
}

func (v V3) Dot(o V3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v V3) Cross(o V3) V3 {
	return V3{
		v.Y*o.Z - o.Y*v.Z,
		o.X*v.Z - v.X*o.Z,
		v.X*o.Y - o.X*v.Y,
	}
}

func (v V3) LengthSq() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func (v V3) Length() float64 {
	return math.Sqrt(v.LengthSq())
}

func (v V3) Distance(o V3) float64 {
	return v.Sub(o).Length()
}

// Normalized returns the unit vector in the direction of v. The zero vector
// normalizes to itself.
func (v V3) Normalized() V3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scaled(1 / l)
}

// ClampLength returns v rescaled so its length is at most max.
func (v V3) ClampLength(max float64) V3 {
	if v.LengthSq() <= max*max {
		return v
	}
	return v.Normalized().Scaled(max)
}

// IsValid reports whether every component is a finite number.
func (v V3) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}
