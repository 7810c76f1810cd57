// Package geom provides deterministic fixed-point geometry for world-space
// coordinates.
//
// All world-space quantities (positions, radii, extents) are expressed as
// 52.12 fixed-point values built on golang.org/x/image/math/fixed. Arithmetic
// between them is exact integer arithmetic, so geometry computed from the
// same inputs is bit-identical across platforms. Floating point only appears
// at the boundary, when fixed-point values are projected to screen pixels.
package geom

import (
	"math"
	"strconv"

	"golang.org/x/image/math/fixed"
)

// Scalar is a signed 52.12 fixed-point world-space quantity.
// One world unit is represented as 1 << 12.
type Scalar fixed.Int52_12

// One is the Scalar representation of a single world unit.
const One Scalar = 1 << 12

// S creates a Scalar from an integer number of world units.
func S(units int) Scalar {
	return Scalar(units) << 12
}

// FromFloat creates a Scalar from a float64, rounding to the nearest
// representable fixed-point value.
func FromFloat(f float64) Scalar {
	return Scalar(math.Round(f * 4096))
}

// Float returns the Scalar as a float64.
func (s Scalar) Float() float64 {
	return float64(s) / 4096
}

// Mul returns s*t in fixed-point, rounding to nearest.
func (s Scalar) Mul(t Scalar) Scalar {
	return Scalar(fixed.Int52_12(s).Mul(fixed.Int52_12(t)))
}

// Div returns s/t in fixed-point. Division by zero returns zero.
func (s Scalar) Div(t Scalar) Scalar {
	if t == 0 {
		return 0
	}
	return Scalar((int64(s) << 12) / int64(t))
}

// Neg returns -s.
func (s Scalar) Neg() Scalar {
	return -s
}

// Abs returns the absolute value of s.
func (s Scalar) Abs() Scalar {
	if s < 0 {
		return -s
	}
	return s
}

// Floor returns the greatest whole number of units <= s.
func (s Scalar) Floor() int {
	return int(s >> 12)
}

// Ceil returns the least whole number of units >= s.
func (s Scalar) Ceil() int {
	return int((s + 0xfff) >> 12)
}

// Round returns the nearest whole number of units.
func (s Scalar) Round() int {
	return int((s + 0x800) >> 12)
}

// String returns a human-readable decimal representation.
func (s Scalar) String() string {
	return strconv.FormatFloat(s.Float(), 'g', -1, 64)
}

// Vec is a fixed-point 2D vector or point in world space.
type Vec struct {
	X, Y Scalar
}

// V creates a Vec from integer world units.
func V(x, y int) Vec {
	return Vec{X: S(x), Y: S(y)}
}

// VFloat creates a Vec from float64 world units, rounding each component.
func VFloat(x, y float64) Vec {
	return Vec{X: FromFloat(x), Y: FromFloat(y)}
}

// Add returns v+w.
func (v Vec) Add(w Vec) Vec {
	return Vec{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns v-w.
func (v Vec) Sub(w Vec) Vec {
	return Vec{X: v.X - w.X, Y: v.Y - w.Y}
}

// Mul returns v scaled by s.
func (v Vec) Mul(s Scalar) Vec {
	return Vec{X: v.X.Mul(s), Y: v.Y.Mul(s)}
}

// Div returns v divided by s. Division by zero returns the zero vector.
func (v Vec) Div(s Scalar) Vec {
	if s == 0 {
		return Vec{}
	}
	return Vec{X: v.X.Div(s), Y: v.Y.Div(s)}
}

// Neg returns -v.
func (v Vec) Neg() Vec {
	return Vec{X: -v.X, Y: -v.Y}
}

// Eq reports whether v and w are identical.
func (v Vec) Eq(w Vec) bool {
	return v.X == w.X && v.Y == w.Y
}

// Rect is an axis-aligned fixed-point rectangle in world space.
// Min is the corner with the smaller coordinates, Max the larger.
// In the Y-up world convention Min is the bottom-left corner.
type Rect struct {
	Min, Max Vec
}

// R creates a Rect from two opposite corners, normalising so that
// Min <= Max on both axes.
func R(a, b Vec) Rect {
	if a.X > b.X {
		a.X, b.X = b.X, a.X
	}
	if a.Y > b.Y {
		a.Y, b.Y = b.Y, a.Y
	}
	return Rect{Min: a, Max: b}
}

// Dx returns the width of the rectangle.
func (r Rect) Dx() Scalar {
	return r.Max.X - r.Min.X
}

// Dy returns the height of the rectangle.
func (r Rect) Dy() Scalar {
	return r.Max.Y - r.Min.Y
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec {
	return Vec{
		X: r.Min.X + (r.Max.X-r.Min.X)/2,
		Y: r.Min.Y + (r.Max.Y-r.Min.Y)/2,
	}
}

// Contains reports whether p lies inside r (inclusive of edges).
func (r Rect) Contains(p Vec) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Overlaps reports whether r and s share any area.
func (r Rect) Overlaps(s Rect) bool {
	return r.Min.X <= s.Max.X && s.Min.X <= r.Max.X &&
		r.Min.Y <= s.Max.Y && s.Min.Y <= r.Max.Y
}

// Expand returns r grown by m on every side.
func (r Rect) Expand(m Scalar) Rect {
	return Rect{
		Min: Vec{X: r.Min.X - m, Y: r.Min.Y - m},
		Max: Vec{X: r.Max.X + m, Y: r.Max.Y + m},
	}
}
