package overlay

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Text layout in image pixels.
const (
	padding     = 4
	titleScale  = 2
	lineSpacing = 4
)

var (
	titleColor = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	lineColor  = color.RGBA{R: 0xd1, G: 0xd5, B: 0xdb, A: 0xff}
	errorColor = color.RGBA{R: 0xf8, G: 0x71, B: 0x71, A: 0xff}
)

// Content is the text shown in the overlay.
type Content struct {
	Title string
	Lines []string
	// Highlight marks Lines indices drawn in the error colour.
	Highlight map[int]bool
}

// Equal reports whether two contents render identically.
func (c Content) Equal(o Content) bool {
	if c.Title != o.Title || len(c.Lines) != len(o.Lines) || len(c.Highlight) != len(o.Highlight) {
		return false
	}
	for i := range c.Lines {
		if c.Lines[i] != o.Lines[i] || c.Highlight[i] != o.Highlight[i] {
			return false
		}
	}
	return true
}

// Rasterize draws the content onto a transparent RGBA image: the title at
// double size, then one line per entry.
func Rasterize(c Content) *image.RGBA {
	face := basicfont.Face7x13
	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	ascent := metrics.Ascent.Ceil()

	title := rasterizeLine(face, c.Title, titleColor)
	titleW, titleH := title.Bounds().Dx()*titleScale, title.Bounds().Dy()*titleScale

	width := titleW
	for _, l := range c.Lines {
		if w := font.MeasureString(face, l).Ceil(); w > width {
			width = w
		}
	}
	height := titleH + len(c.Lines)*(lineHeight+lineSpacing)
	if len(c.Lines) > 0 {
		height += lineSpacing
	}

	img := image.NewRGBA(image.Rect(0, 0, width+2*padding, height+2*padding))

	xdraw.NearestNeighbor.Scale(img,
		image.Rect(padding, padding, padding+titleW, padding+titleH),
		title, title.Bounds(), xdraw.Over, nil)

	d := &font.Drawer{Dst: img, Face: face}
	y := padding + titleH + lineSpacing
	for i, l := range c.Lines {
		col := lineColor
		if c.Highlight[i] {
			col = errorColor
		}
		d.Src = image.NewUniform(col)
		d.Dot = fixed.P(padding, y+ascent)
		d.DrawString(l)
		y += lineHeight + lineSpacing
	}
	return img
}

func rasterizeLine(face font.Face, s string, col color.Color) *image.RGBA {
	m := face.Metrics()
	w := font.MeasureString(face, s).Ceil()
	img := image.NewRGBA(image.Rect(0, 0, w, m.Height.Ceil()))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(0, m.Ascent.Ceil()),
	}
	d.DrawString(s)
	return img
}
