// image_dump.go - PNG export of a rendered framebuffer

package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

func writeFrameBufferPNG(fb *FrameBuffer, path string) error {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			rgb := fb.At(x, y)
			img.SetRGBA(x, y, color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
