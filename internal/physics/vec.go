package physics

import "math"

// Vec2 is a 2D vector in cell units.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }
func (v Vec2) Dot(o Vec2) float64   { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Len() float64         { return math.Hypot(v.X, v.Y) }
func (v Vec2) LenSq() float64       { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Dist(o Vec2) float64  { return v.Sub(o).Len() }
func (v Vec2) Cell() (int, int)     { return int(math.Floor(v.X)), int(math.Floor(v.Y)) }
func (v Vec2) IsFinite() bool       { return !math.IsNaN(v.X+v.Y) && !math.IsInf(v.X+v.Y, 0) }
func FromAngle(a, mag float64) Vec2 { return Vec2{math.Cos(a) * mag, math.Sin(a) * mag} }
func (v Vec2) Angle() float64       { return math.Atan2(v.Y, v.X) }
func (v Vec2) Rotate(a float64) Vec2 {
	s, c := math.Sincos(a)
	return Vec2{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// Norm returns the unit vector, or zero for a zero vector.
func (v Vec2) Norm() Vec2 {
	l := v.Len()
	if l < 1e-12 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Limit caps the length at max.
func (v Vec2) Limit(max float64) Vec2 {
	l2 := v.LenSq()
	if l2 <= max*max || l2 == 0 {
		return v
	}
	return v.Scale(max / math.Sqrt(l2))
}
