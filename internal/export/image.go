// Package export writes rendered frames and run traces to files.
//
// Frames are the row-major RGB buffers produced by session rendering.
// Row 0 is drawn at the top and odd rows are shifted right by half a
// cell so the hexagonal layout is visible.
package export

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
)

var ErrFrameSize = errors.New("export: frame buffer does not match dimensions")

// ToImage scales each cell to a scale×scale block.
func ToImage(pixels []byte, rows, cols, scale int) (*image.RGBA, error) {
	if len(pixels) < rows*cols*3 || rows <= 0 || cols <= 0 {
		return nil, ErrFrameSize
	}
	if scale < 1 {
		scale = 1
	}
	shift := scale / 2
	img := image.NewRGBA(image.Rect(0, 0, cols*scale+shift, rows*scale))
	for r := 0; r < rows; r++ {
		off := 0
		if r&1 == 1 {
			off = shift
		}
		for c := 0; c < cols; c++ {
			i := (r*cols + c) * 3
			px := color.RGBA{pixels[i], pixels[i+1], pixels[i+2], 255}
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.SetRGBA(c*scale+dx+off, r*scale+dy, px)
				}
			}
		}
	}
	return img, nil
}

func WritePNG(w io.Writer, pixels []byte, rows, cols, scale int) error {
	img, err := ToImage(pixels, rows, cols, scale)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
