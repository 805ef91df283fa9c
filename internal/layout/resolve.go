package layout

import "math"

// SizeTier picks a default window size for viewports narrower than MaxViewport.
// A zero Width means "fill the viewport".
type SizeTier struct {
	MaxViewport float64
	Width       float64
	Height      float64
}

// Policy holds the placement tunables.
type Policy struct {
	MinWidth       float64
	MinHeight      float64
	VerticalMargin float64
	CascadeInset   float64
	CascadeStep    float64
	// Tiers are checked in order; the first whose MaxViewport exceeds the
	// viewport width applies.
	Tiers   []SizeTier
	Default Size
}

// DefaultPolicy returns the stock placement rules.
func DefaultPolicy() Policy {
	return Policy{
		MinWidth:       300,
		MinHeight:      200,
		VerticalMargin: 40,
		CascadeInset:   20,
		CascadeStep:    30,
		Tiers: []SizeTier{
			{MaxViewport: 768, Width: 0, Height: 600},
			{MaxViewport: 1024, Width: 700, Height: 500},
		},
		Default: Size{Width: 800, Height: 600},
	}
}

// DefaultSize returns the tier size for the viewport before clamping.
func DefaultSize(c Chrome, p Policy) Size {
	maxSize := c.MaxSize(p)
	pick := p.Default
	for _, tier := range p.Tiers {
		if c.ViewportWidth < tier.MaxViewport {
			pick = Size{Width: tier.Width, Height: tier.Height}
			if tier.Width == 0 {
				pick.Width = c.ViewportWidth
			}
			break
		}
	}
	return Size{
		Width:  math.Min(pick.Width, c.ViewportWidth),
		Height: math.Min(pick.Height, maxSize.Height),
	}
}

// ClampSize bounds a size to [min, max] for the current chrome. The
// maximum wins when the viewport is smaller than the minimum.
func ClampSize(c Chrome, s Size, p Policy) Size {
	maxSize := c.MaxSize(p)
	return Size{
		Width:  clampHighWins(s.Width, p.MinWidth, maxSize.Width),
		Height: clampHighWins(s.Height, p.MinHeight, maxSize.Height),
	}
}

// ResolveSize returns the size for a new window. A nil desired size
// selects the viewport tier default.
func ResolveSize(c Chrome, desired *Size, p Policy) Size {
	s := DefaultSize(c, p)
	if desired != nil {
		s = *desired
	}
	return ClampSize(c, s, p)
}

// ClampPosition bounds a top-left corner to the envelope for the given
// size. The minimum edge wins when the envelope inverts.
func ClampPosition(c Chrome, pt Point, size Size) Point {
	env := c.Envelope(size)
	return Point{
		X: clampLowWins(pt.X, env.MinX, env.MaxX),
		Y: clampLowWins(pt.Y, env.MinY, env.MaxY),
	}
}

// CascadePoint returns the staggered default position for the n-th window.
func CascadePoint(c Chrome, ordinal int, size Size, p Policy) Point {
	env := c.Envelope(size)
	step := float64(ordinal) * p.CascadeStep
	return Point{X: p.CascadeInset + step, Y: env.MinY + step}
}

// ResolvePosition returns the clamped top-left corner for a window. A nil
// desired point cascades from ordinal.
func ResolvePosition(c Chrome, desired *Point, size Size, ordinal int, p Policy) Point {
	pt := CascadePoint(c, ordinal, size, p)
	if desired != nil {
		pt = *desired
	}
	return ClampPosition(c, pt, size)
}

// Place resolves both size and position in one call.
func Place(c Chrome, desiredPos *Point, desiredSize *Size, ordinal int, p Policy) Rect {
	size := ResolveSize(c, desiredSize, p)
	pt := ResolvePosition(c, desiredPos, size, ordinal, p)
	return Rect{X: pt.X, Y: pt.Y, Width: size.Width, Height: size.Height}
}

// Fit re-applies size and position bounds to an existing rect.
func Fit(c Chrome, r Rect, p Policy) Rect {
	size := ClampSize(c, r.Size(), p)
	pt := ClampPosition(c, r.Origin(), size)
	return Rect{X: pt.X, Y: pt.Y, Width: size.Width, Height: size.Height}
}
