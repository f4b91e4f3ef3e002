// Provides static bounding rectangles for animated SVG elements.
// The resolver works over raw document text, before any DOM exists,
// and its rectangles feed the dirty region tracker in svgplayer/svgredraw.
package svgbounds

import "golang.org/x/image/math/fixed"

// Rect is an axis-aligned rectangle in SVG user units.
// A Rect with non-positive width or height is empty: it has no area
// and absorbs into unions without contributing.
type Rect struct {
	X, Y, W, H float64
}

// IsEmpty reports whether the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool { return r.W <= 0 || r.H <= 0 }

// Area returns W*H, used for coverage ratio calculations.
func (r Rect) Area() float64 { return r.W * r.H }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Intersects reports whether the two rectangles overlap.
// Touching edges do not count as an intersection.
func (r Rect) Intersects(other Rect) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	return !(other.X >= r.Right() || other.Right() <= r.X ||
		other.Y >= r.Bottom() || other.Bottom() <= r.Y)
}

// Contains reports whether other lies entirely within r.
func (r Rect) Contains(other Rect) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	return other.X >= r.X && other.Right() <= r.Right() &&
		other.Y >= r.Y && other.Bottom() <= r.Bottom()
}

// Merge returns the bounding box of the two rectangles.
// Merging with an empty rectangle returns the other one unchanged.
func (r Rect) Merge(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	x, y := r.X, r.Y
	if other.X < x {
		x = other.X
	}
	if other.Y < y {
		y = other.Y
	}
	right, bottom := r.Right(), r.Bottom()
	if other.Right() > right {
		right = other.Right()
	}
	if other.Bottom() > bottom {
		bottom = other.Bottom()
	}
	return Rect{x, y, right - x, bottom - y}
}

// Expand grows the rectangle by margin on all four sides.
// Empty rectangles stay empty.
func (r Rect) Expand(margin float64) Rect {
	if r.IsEmpty() {
		return r
	}
	return Rect{r.X - margin, r.Y - margin, r.W + 2*margin, r.H + 2*margin}
}

// Clamp clips the rectangle to [0,canvasW]x[0,canvasH], collapsing to
// the zero Rect when nothing remains.
func (r Rect) Clamp(canvasW, canvasH float64) Rect {
	if r.IsEmpty() {
		return r
	}
	x, y := r.X, r.Y
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	right, bottom := r.Right(), r.Bottom()
	if right > canvasW {
		right = canvasW
	}
	if bottom > canvasH {
		bottom = canvasH
	}
	if right <= x || bottom <= y {
		return Rect{}
	}
	return Rect{x, y, right - x, bottom - y}
}

// Fixed converts to a 26.6 fixed-point rectangle, the unit rasterizers
// consume for clip regions.
func (r Rect) Fixed() fixed.Rectangle26_6 {
	return fixed.Rectangle26_6{
		Min: fixed.Point26_6{X: fToFixed(r.X), Y: fToFixed(r.Y)},
		Max: fixed.Point26_6{X: fToFixed(r.Right()), Y: fToFixed(r.Bottom())},
	}
}

// FromFixed converts a 26.6 fixed-point rectangle back to a Rect.
func FromFixed(fr fixed.Rectangle26_6) Rect {
	x, y := fixedTof(fr.Min.X), fixedTof(fr.Min.Y)
	return Rect{x, y, fixedTof(fr.Max.X) - x, fixedTof(fr.Max.Y) - y}
}

func fToFixed(f float64) fixed.Int26_6 { return fixed.Int26_6(f * 64) }

func fixedTof(f fixed.Int26_6) float64 { return float64(f) / 64 }
