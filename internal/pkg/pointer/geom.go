package pointer

import "math"

// FVec2 is a position in continuous pointer space.
type FVec2 struct {
	X, Y float64
}

func (v FVec2) Add(o FVec2) FVec2 {
	return FVec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v FVec2) Sub(o FVec2) FVec2 {
	return FVec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v FVec2) Scale(f float64) FVec2 {
	return FVec2{X: v.X * f, Y: v.Y * f}
}

func (v FVec2) Dist(o FVec2) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// FRect spans from Min to Max, Max exclusive.
type FRect struct {
	Min, Max FVec2
}

func NewFRect(x, y, w, h float64) FRect {
	return FRect{Min: FVec2{X: x, Y: y}, Max: FVec2{X: x + w, Y: y + h}}
}

func (r FRect) Size() FVec2 {
	return r.Max.Sub(r.Min)
}

// Clamp moves a position to the nearest point inside the rectangle.
func (r FRect) Clamp(v FVec2) FVec2 {
	v.X = math.Max(r.Min.X, math.Min(v.X, r.Max.X))
	v.Y = math.Max(r.Min.Y, math.Min(v.Y, r.Max.Y))
	return v
}

// MapTo translates a position from this rectangle's space into another.
func (r FRect) MapTo(v FVec2, dst FRect) FVec2 {
	size := r.Size()
	if size.X == 0 || size.Y == 0 {
		return dst.Min
	}
	rel := v.Sub(r.Min)
	return FVec2{
		X: dst.Min.X + rel.X/size.X*dst.Size().X,
		Y: dst.Min.Y + rel.Y/size.Y*dst.Size().Y,
	}
}
