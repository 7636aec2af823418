package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
)

var (
	colorText     = color.RGBA{R: 51, G: 51, B: 51, A: 255}
	colorGray     = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	colorPurple   = color.RGBA{R: 102, G: 51, B: 153, A: 255}
	colorWhite    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorNeutral  = color.RGBA{R: 240, G: 240, B: 240, A: 255}
	colorBorder   = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	colorInitial  = color.RGBA{R: 150, G: 150, B: 150, A: 255}
	borderWidthPx = 2.0
)

type align int

const (
	alignLeft align = iota
	alignCenter
	alignRight
)

// op is one drawing step of a planned page
type op interface {
	paint(dst *image.RGBA, faces *faceCache)
}

// textOp draws one line with its baseline at y; x is the left edge, center or
// right edge depending on align.
type textOp struct {
	text   string
	x, y   float64
	align  align
	weight Weight
	size   float64
	color  color.RGBA
}

func (o textOp) paint(dst *image.RGBA, faces *faceCache) {
	if o.text == "" {
		return
	}
	face := faces.face(o.weight, o.size)
	x := o.x
	switch o.align {
	case alignCenter:
		x -= MeasureString(face, o.text) / 2
	case alignRight:
		x -= MeasureString(face, o.text)
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(o.color),
		Face: face,
	}
	d.Dot.X = toFixed(x)
	d.Dot.Y = toFixed(o.y)
	d.DrawString(o.text)
}

// imageOp draws img scaled to rect
type imageOp struct {
	img     image.Image
	rect    Rect
	element string
}

func (o imageOp) paint(dst *image.RGBA, _ *faceCache) {
	w := int(math.Round(o.rect.W))
	h := int(math.Round(o.rect.H))
	if w <= 0 || h <= 0 {
		return
	}
	var src image.Image = o.img
	if b := o.img.Bounds(); b.Dx() != w || b.Dy() != h {
		src = imaging.Resize(o.img, w, h, imaging.Lanczos)
	}
	pt := image.Pt(int(math.Round(o.rect.X)), int(math.Round(o.rect.Y)))
	draw.Draw(dst, image.Rectangle{Min: pt, Max: pt.Add(image.Pt(w, h))}, src, src.Bounds().Min, draw.Over)
}

// rectOp fills rect and optionally outlines it
type rectOp struct {
	rect   Rect
	fill   color.RGBA
	stroke *color.RGBA
}

func (o rectOp) paint(dst *image.RGBA, _ *faceCache) {
	r := toImageRect(o.rect)
	draw.Draw(dst, r, image.NewUniform(o.fill), image.Point{}, draw.Over)
	if o.stroke == nil {
		return
	}
	bw := int(borderWidthPx)
	src := image.NewUniform(*o.stroke)
	for _, edge := range []image.Rectangle{
		{Min: r.Min, Max: image.Pt(r.Max.X, r.Min.Y+bw)},
		{Min: image.Pt(r.Min.X, r.Max.Y-bw), Max: r.Max},
		{Min: r.Min, Max: image.Pt(r.Min.X+bw, r.Max.Y)},
		{Min: image.Pt(r.Max.X-bw, r.Min.Y), Max: r.Max},
	} {
		draw.Draw(dst, edge, src, image.Point{}, draw.Over)
	}
}

func toImageRect(r Rect) image.Rectangle {
	return image.Rect(
		int(math.Round(r.X)), int(math.Round(r.Y)),
		int(math.Round(r.X+r.W)), int(math.Round(r.Y+r.H)),
	)
}

// page is the planned content of one slide
type page struct {
	kind string
	ops  []op
}

func (p *page) add(o op) {
	p.ops = append(p.ops, o)
}

func (p *page) paint(faces *faceCache) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, PageWidth, PageHeight))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(colorWhite), image.Point{}, draw.Src)
	for _, o := range p.ops {
		o.paint(dst, faces)
	}
	return dst
}

// texts returns the strings of every text op, in drawing order
func (p *page) texts() []string {
	var out []string
	for _, o := range p.ops {
		if t, ok := o.(textOp); ok {
			out = append(out, t.text)
		}
	}
	return out
}
