// Package geom provides float vector math for the pattern engine and the
// simulation. It contains no external dependencies so engine logic stays
// pure and testable.
package geom

import "math"

// Vec2 is a two-dimensional float vector. Values are immutable: every
// operation returns a new vector.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for constructing a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// FromAngle returns the unit vector pointing at the given angle in
// degrees. 0 degrees is +X, counter-clockwise positive.
func FromAngle(degrees float64) Vec2 {
	rad := degrees * math.Pi / 180
	return Vec2{X: math.Cos(rad), Y: math.Sin(rad)}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by a scalar.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Length returns the Euclidean length of v.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns the unit vector in the direction of v.
// The zero vector normalizes to itself rather than dividing by zero.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Rotate returns v rotated counter-clockwise by the given angle in degrees.
func (v Vec2) Rotate(degrees float64) Vec2 {
	rad := degrees * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Angle returns the direction of v in degrees in [0, 360).
// The zero vector reports 0.
func (v Vec2) Angle() float64 {
	if v.X == 0 && v.Y == 0 {
		return 0
	}
	deg := math.Atan2(v.Y, v.X) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Lerp linearly interpolates between a and b by t in [0, 1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Mod360 wraps an angle in degrees into [0, 360).
func Mod360(degrees float64) float64 {
	m := math.Mod(degrees, 360)
	if m < 0 {
		m += 360
	}
	return m
}
