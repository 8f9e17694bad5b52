// encoder.go - Command buffer builder
//
// Grounded in linux/hell/gl/command.py's CommandBuffer: a small appender
// that assembles DRAW_TRIANGLE / LOAD_TEXTURE / WAIT_IDLE / CLEAR_BUFFER /
// WAIT_CLEAR_IDLE commands into the little-endian word stream the command
// processor decodes. Pairs with DecodeCommandStream as this repo's
// round-trip property: encode then decode must reproduce the original
// operations.

package main

import "encoding/binary"

// CommandBuffer accumulates 32-bit little-endian command words.
type CommandBuffer struct {
	words []uint32
}

func NewCommandBuffer() *CommandBuffer {
	return &CommandBuffer{}
}

func (cb *CommandBuffer) DrawTriangle(t Triangle) {
	hdr := uint32(OpDrawTriangle)
	if t.TextureEnable {
		hdr |= 1 << 6
	}
	hdr |= uint32(t.TextureBuffer&0x3) << 7
	cb.words = append(cb.words, hdr)

	for _, v := range [3]ScreenVertex{t.V0, t.V1, t.V2} {
		w := packVertexWord(v)
		cb.words = append(cb.words, uint32(w), uint32(w>>32))
	}
}

// LoadTexture appends a LOAD_TEXTURE command covering texels
// [sStart..sEnd] x [tHalfStart..tHalfEnd] (t in half-word units: two
// texels per entry), asserting the same boundary constraints the real
// driver's load_texture does.
func (cb *CommandBuffer) LoadTexture(buffer, sStart, sEnd, tHalfStart, tHalfEnd uint8, words []uint64) error {
	if sStart > sEnd || sEnd > 0x7F {
		return rasterErr("encoder", "s range invalid")
	}
	if tHalfStart > tHalfEnd || tHalfEnd > 0x3F {
		return rasterErr("encoder", "t range invalid")
	}

	sHigh := uint32(sStart>>6) & 1
	tHigh := uint32(tHalfStart>>5) & 1

	hdr := uint32(OpLoadTexture)
	hdr |= uint32(buffer&0x3) << 6
	hdr |= sHigh << 8
	hdr |= uint32(sStart&0x3F) << 9
	hdr |= uint32(sEnd&0x3F) << 15
	hdr |= tHigh << 21
	hdr |= uint32(tHalfStart&0x1F) << 22
	hdr |= uint32(tHalfEnd&0x1F) << 27
	cb.words = append(cb.words, hdr)

	for _, w := range words {
		cb.words = append(cb.words, uint32(w), uint32(w>>32))
	}
	return nil
}

func (cb *CommandBuffer) WaitIdle() {
	cb.words = append(cb.words, uint32(OpWaitIdle))
}

func (cb *CommandBuffer) ClearBuffer(baseAddr, wordCount uint32, pattern [3]byte) error {
	if baseAddr%128 != 0 {
		return rasterErr("encoder", "clear base address must be 128-byte aligned")
	}
	patternBits := uint32(pattern[0]) | uint32(pattern[1])<<8 | uint32(pattern[2])<<16
	hdr := uint32(OpClearBuffer) | patternBits<<8
	cb.words = append(cb.words, hdr, baseAddr, wordCount)
	return nil
}

func (cb *CommandBuffer) WaitClearIdle() {
	cb.words = append(cb.words, uint32(OpWaitClearIdle))
}

// Bytes returns the little-endian byte encoding of the buffer, padded to a
// multiple of 64 bytes the way the DMA command-stream alignment requires.
func (cb *CommandBuffer) Bytes() []byte {
	n := len(cb.words)
	padded := ((n*4 + 63) / 64) * 64 / 4
	buf := make([]byte, padded*4)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:], cb.words[i])
	}
	return buf
}

func (cb *CommandBuffer) Words() []uint32 {
	return append([]uint32(nil), cb.words...)
}
