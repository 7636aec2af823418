package render

import "math"

// Page size in logical pixels, shared by previews and exported PDF pages
const (
	PageWidth  = 1920
	PageHeight = 1080
)

// Rect is a box in page coordinates, origin top-left
type Rect struct {
	X, Y, W, H float64
}

// CenterX returns the horizontal center of the box
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the vertical center of the box
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Bottom returns the y coordinate of the lower edge
func (r Rect) Bottom() float64 { return r.Y + r.H }

// FitWithin scales an iw×ih image to the largest size that fits a bw×bh box,
// preserving aspect ratio.
func FitWithin(iw, ih int, bw, bh float64) (w, h float64) {
	if iw <= 0 || ih <= 0 || bw <= 0 || bh <= 0 {
		return 0, 0
	}
	scale := math.Min(bw/float64(iw), bh/float64(ih))
	return float64(iw) * scale, float64(ih) * scale
}

// CenteredRect places a w×h box centered on (cx, cy)
func CenteredRect(w, h, cx, cy float64) Rect {
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// FitInto fits an image into box and centers it there
func FitInto(iw, ih int, box Rect) Rect {
	w, h := FitWithin(iw, ih, box.W, box.H)
	return CenteredRect(w, h, box.CenterX(), box.CenterY())
}

// Letterbox fits an image to the full page, centered, leaving bars on the shorter axis
func Letterbox(iw, ih int, pw, ph float64) Rect {
	return FitInto(iw, ih, Rect{W: pw, H: ph})
}

// RowPositions returns the x origin of each of n cells of width w separated by s,
// laid out as one row centered on centerX:
//
//	x_k = centerX - (n*w + (n-1)*s)/2 + k*(w+s)
func RowPositions(n int, w, s, centerX float64) []float64 {
	if n <= 0 {
		return nil
	}
	total := float64(n)*w + float64(n-1)*s
	start := centerX - total/2
	xs := make([]float64, n)
	for k := range xs {
		xs[k] = start + float64(k)*(w+s)
	}
	return xs
}

// FitRow shrinks cell width and spacing proportionally so n cells fit in maxWidth.
// Rows that already fit are returned unchanged.
func FitRow(n int, w, s, maxWidth float64) (float64, float64) {
	if n <= 0 {
		return w, s
	}
	total := float64(n)*w + float64(n-1)*s
	if total <= maxWidth || total <= 0 {
		return w, s
	}
	k := maxWidth / total
	return w * k, s * k
}

// CenteredSegments lays out fragments of the given measured widths as a single line
// centered on centerX. Fragment i starts at centerX - total/2 + sum(widths[:i]).
func CenteredSegments(widths []float64, centerX float64) []float64 {
	var total float64
	for _, w := range widths {
		total += w
	}
	xs := make([]float64, len(widths))
	x := centerX - total/2
	for i, w := range widths {
		xs[i] = x
		x += w
	}
	return xs
}
