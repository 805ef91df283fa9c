package layout

import "math"

// Rect represents a window position and size in viewport pixels
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Point is a viewport coordinate
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a width/height pair
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bottom returns the y coordinate of the rect's lower edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Right returns the x coordinate of the rect's right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// Size returns the rect dimensions.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Inflate grows the rect by d on every side.
func (r Rect) Inflate(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, Width: r.Width + 2*d, Height: r.Height + 2*d}
}

// Lerp interpolates linearly between a and b. At t >= 1 the result is
// exactly b so completed animations land on their target without drift.
func Lerp(a, b Rect, t float64) Rect {
	if t >= 1 {
		return b
	}
	if t <= 0 {
		return a
	}
	return Rect{
		X:      a.X + (b.X-a.X)*t,
		Y:      a.Y + (b.Y-a.Y)*t,
		Width:  a.Width + (b.Width-a.Width)*t,
		Height: a.Height + (b.Height-a.Height)*t,
	}
}

// clampLowWins applies max(lo, min(hi, v)); when the range inverts the
// lower bound wins.
func clampLowWins(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// clampHighWins applies min(hi, max(lo, v)); when the range inverts the
// upper bound wins.
func clampHighWins(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
