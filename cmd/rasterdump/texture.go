package main

import (
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"os"
)

// exportBankPNG decodes one 8192-word (48-bit packed, two texels/word)
// 128x128 texture bank out of a raw multi-bank dump and writes it as PNG.
func exportBankPNG(raw []byte, bank int, outPath string) error {
	const wordsPerBank = 8192
	bankOffset := bank * wordsPerBank * 8

	img := image.NewRGBA(image.Rect(0, 0, 128, 128))
	for s := 0; s < 128; s++ {
		for t := 0; t < 128; t++ {
			pixelIdx := s*128 + t
			wordIdx := pixelIdx / 2
			upper := pixelIdx&1 != 0

			off := bankOffset + wordIdx*8
			word := binary.LittleEndian.Uint64(raw[off : off+8])
			if upper {
				word >>= 24
			}
			img.SetRGBA(s, t, color.RGBA{
				R: byte(word), G: byte(word >> 8), B: byte(word >> 16), A: 255,
			})
		}
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
