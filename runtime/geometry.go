package runtime

// Rect is a rectangle in cell coordinates.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.Width && y < r.Y+r.Height
}

// Size is a width and height in cells.
type Size struct {
	Width  int
	Height int
}

// Constraints bound the size a widget may take during Measure.
type Constraints struct {
	MinWidth  int
	MaxWidth  int
	MinHeight int
	MaxHeight int
}

// Tight returns constraints that only allow size s.
func Tight(s Size) Constraints {
	return Constraints{MinWidth: s.Width, MaxWidth: s.Width, MinHeight: s.Height, MaxHeight: s.Height}
}

// Loose returns constraints from zero up to s.
func Loose(s Size) Constraints {
	return Constraints{MaxWidth: s.Width, MaxHeight: s.Height}
}

// MaxSize returns the largest allowed size.
func (c Constraints) MaxSize() Size {
	return Size{Width: c.MaxWidth, Height: c.MaxHeight}
}

// Constrain clamps s into the constraints.
func (c Constraints) Constrain(s Size) Size {
	return Size{
		Width:  clamp(s.Width, c.MinWidth, c.MaxWidth),
		Height: clamp(s.Height, c.MinHeight, c.MaxHeight),
	}
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
