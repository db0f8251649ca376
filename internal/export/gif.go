package export

import (
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"

	"github.com/san-kum/hexwave/internal/colormap"
)

// Palette turns the colormap into a GIF palette. The last entry is
// replaced by the background so Outside cells keep their colour.
func Palette(cmap *colormap.Colormap, background colormap.RGB) color.Palette {
	p := make(color.Palette, colormap.Size)
	for i, c := range cmap {
		p[i] = color.RGBA{c[0], c[1], c[2], 255}
	}
	p[colormap.Size-1] = color.RGBA{background[0], background[1], background[2], 255}
	return p
}

// WriteGIF encodes the frames as a looping animation. delay is in
// hundredths of a second per frame.
func WriteGIF(w io.Writer, frames [][]byte, rows, cols, scale int, pal color.Palette, delay int) error {
	anim := gif.GIF{LoopCount: 0}
	for _, f := range frames {
		img, err := ToImage(f, rows, cols, scale)
		if err != nil {
			return err
		}
		paletted := image.NewPaletted(img.Bounds(), pal)
		draw.Draw(paletted, img.Bounds(), img, image.Point{}, draw.Src)
		anim.Image = append(anim.Image, paletted)
		anim.Delay = append(anim.Delay, delay)
	}
	return gif.EncodeAll(w, &anim)
}
