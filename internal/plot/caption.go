package plot

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// drawCaption centers a short message over area.
func drawCaption(dst draw.Image, area image.Rectangle, text string) {
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}), Face: face}
	w := d.MeasureString(text).Ceil()
	x := area.Min.X + (area.Dx()-w)/2
	y := area.Min.Y + (area.Dy()+face.Metrics().Ascent.Ceil())/2
	d.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	d.DrawString(text)
}
