package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRowPositions(t *testing.T) {
	const w, s, cx = 240.0, 40.0, 960.0

	tests := []struct {
		n    int
		want []float64
	}{
		{1, []float64{840}},
		{2, []float64{700, 980}},
		{3, []float64{560, 840, 1120}},
	}
	for _, tt := range tests {
		got := RowPositions(tt.n, w, s, cx)
		assert.Equal(t, tt.want, got, "n=%d", tt.n)
		for k, x := range got {
			total := float64(tt.n)*w + float64(tt.n-1)*s
			assert.InDelta(t, cx-total/2+float64(k)*(w+s), x, 1e-9)
		}
	}
	assert.Nil(t, RowPositions(0, w, s, cx))
}

func TestFitRowShrinksOnlyWhenNeeded(t *testing.T) {
	w, s := FitRow(3, 240, 40, 1792)
	assert.Equal(t, 240.0, w)
	assert.Equal(t, 40.0, s)

	w, s = FitRow(10, 240, 40, 1792)
	assert.InDelta(t, 1792, 10*w+9*s, 1e-9)
	assert.InDelta(t, 240.0/40.0, w/s, 1e-9)
}

func TestCenteredSegments(t *testing.T) {
	xs := CenteredSegments([]float64{100, 50, 150}, 960)
	assert.Equal(t, []float64{810, 910, 960}, xs)
}

func TestFitAndLetterbox(t *testing.T) {
	w, h := FitWithin(1000, 500, 720, 560)
	assert.InDelta(t, 720, w, 1e-9)
	assert.InDelta(t, 360, h, 1e-9)

	// portrait image on a landscape page: bars left and right
	r := Letterbox(1080, 1920, PageWidth, PageHeight)
	assert.InDelta(t, 607.5, r.W, 1e-9)
	assert.InDelta(t, 1080, r.H, 1e-9)
	assert.InDelta(t, (PageWidth-607.5)/2, r.X, 1e-9)
	assert.Equal(t, 0.0, r.Y)

	w, h = FitWithin(0, 10, 100, 100)
	assert.Zero(t, w)
	assert.Zero(t, h)
}
