package frame

import "image"

// Fit returns the rectangle inside a dst-sized canvas that a src-sized image
// occupies after aspect-preserving scaling. The rectangle is centred; when
// the aspect ratios match exactly it covers the whole canvas. Non-empty
// inputs always yield a non-empty rectangle.
func Fit(src, dst image.Point) image.Rectangle {
	if src.X <= 0 || src.Y <= 0 || dst.X <= 0 || dst.Y <= 0 {
		return image.Rectangle{}
	}

	// Compare src.X/src.Y with dst.X/dst.Y without floating point.
	lhs := int64(src.X) * int64(dst.Y)
	rhs := int64(src.Y) * int64(dst.X)

	w, h := dst.X, dst.Y
	switch {
	case lhs > rhs:
		// source is wider: full width, bars top and bottom
		h = roundDiv(int64(dst.X)*int64(src.Y), int64(src.X))
	case lhs < rhs:
		// source is taller: full height, bars left and right
		w = roundDiv(int64(dst.Y)*int64(src.X), int64(src.Y))
	}
	w = clamp(w, 1, dst.X)
	h = clamp(h, 1, dst.Y)

	x0 := (dst.X - w) / 2
	y0 := (dst.Y - h) / 2
	return image.Rect(x0, y0, x0+w, y0+h)
}

func roundDiv(num, den int64) int {
	return int((2*num + den) / (2 * den))
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
