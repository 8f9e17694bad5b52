// types.go - Shared data types for the rasterizer core

package main

// ScreenVertex is one vertex of a triangle as consumed by the rasterizer.
// X and Y are integer pixel coordinates, Z is a 16-bit depth value, and
// the last three fields are either interpolated RGB color or, when the
// triangle is textured, S/T/unused texture coordinates.
type ScreenVertex struct {
	X uint16 // 11 bits significant
	Y uint16 // 11 bits significant
	Z uint16
	A uint8 // R or S
	B uint8 // G or T
	C uint8 // B, unused when textured
}

// packVertexWord mirrors the command stream's 64-bit little-endian vertex
// encoding: x(11) | y(11)<<11 | z(16)<<22 | a(8)<<38 | b(8)<<46 | c(8)<<54.
func packVertexWord(v ScreenVertex) uint64 {
	w := uint64(v.X&0x7FF) |
		uint64(v.Y&0x7FF)<<11 |
		uint64(v.Z)<<22 |
		uint64(v.A)<<38 |
		uint64(v.B)<<46 |
		uint64(v.C)<<54
	return w
}

func unpackVertexWord(w uint64) ScreenVertex {
	return ScreenVertex{
		X: uint16(w & 0x7FF),
		Y: uint16((w >> 11) & 0x7FF),
		Z: uint16((w >> 22) & 0xFFFF),
		A: uint8((w >> 38) & 0xFF),
		B: uint8((w >> 46) & 0xFF),
		C: uint8((w >> 54) & 0xFF),
	}
}

// Triangle is a fully decoded draw command: three vertices plus the
// texture-sampling mode.
type Triangle struct {
	V0, V1, V2     ScreenVertex
	TextureEnable  bool
	TextureBuffer  uint8 // which of the 4 texture banks to sample
}

// PixelSample is one shaded sample on its way from the interpolator to the
// pixel writer: its framebuffer/depth-buffer coordinates, the color or
// sampled texel, and the interpolated depth value to test and possibly
// store.
type PixelSample struct {
	X, Y  uint16
	Z     uint16
	Color [3]uint8 // R, G, B
}

// DepthBuffer is a linear array of 16-bit depth values, one per pixel, row
// major. The invariant "new_z > stored_z wins" (larger values are nearer)
// is enforced by the depth tester, not by this type.
type DepthBuffer struct {
	Width, Height int
	Values        []uint16
}

func NewDepthBuffer(width, height int) *DepthBuffer {
	return &DepthBuffer{Width: width, Height: height, Values: make([]uint16, width*height)}
}

func (d *DepthBuffer) At(x, y int) uint16 {
	return d.Values[y*d.Width+x]
}

func (d *DepthBuffer) Set(x, y int, z uint16) {
	d.Values[y*d.Width+x] = z
}

// FrameBuffer is a linear RGB (3 bytes/pixel) color buffer, row major.
type FrameBuffer struct {
	Width, Height int
	Pixels        []byte // 3 bytes per pixel
}

func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{Width: width, Height: height, Pixels: make([]byte, width*height*3)}
}

func (f *FrameBuffer) At(x, y int) [3]byte {
	i := (y*f.Width + x) * 3
	return [3]byte{f.Pixels[i], f.Pixels[i+1], f.Pixels[i+2]}
}

func (f *FrameBuffer) Set(x, y int, rgb [3]byte) {
	i := (y*f.Width + x) * 3
	f.Pixels[i], f.Pixels[i+1], f.Pixels[i+2] = rgb[0], rgb[1], rgb[2]
}

// TextureBank is one of the four 128x128x24bpp texture memories. Texels are
// stored two per 48-bit word, matching the hardware's Memory(width=48).
type TextureBank struct {
	Words [8192]uint64 // only the low 48 bits of each word are used
}

func texelWordIndex(s, t uint8) (word int, upperHalf bool) {
	pixelIdx := int(s)*128 + int(t)
	return pixelIdx / 2, pixelIdx&1 != 0
}

func (tb *TextureBank) Read(s, t uint8) [3]uint8 {
	word, upper := texelWordIndex(s, t)
	v := tb.Words[word]
	if upper {
		v >>= 24
	}
	return [3]uint8{uint8(v), uint8(v >> 8), uint8(v >> 16)}
}

func (tb *TextureBank) WriteWord(addr uint16, data uint64) {
	tb.Words[addr&0x1FFF] = data & 0xFFFFFFFFFFFF
}

// RasterError is returned by any operation that violates one of the core's
// documented preconditions (see the error handling design notes).
type RasterError struct {
	Component string
	Msg       string
}

func (e *RasterError) Error() string {
	return e.Component + ": " + e.Msg
}

func rasterErr(component, msg string) error {
	return &RasterError{Component: component, Msg: msg}
}
