// command_processor.go - Command stream decoder
//
// Transliterated from CommandProcessor's opcode FSM (READ_CMD /
// READ_VERTEXES / SUBMIT_TRIANGLE / READ_TEXTURE / WAIT_IDLE /
// READ_BUFFER_CLEAR / CLEAR_BUFFER / WAIT_CLEAR_IDLE). The hardware reads
// one 32-bit DMA word per cycle; since command decoding has no bearing on
// any of the testable timing properties (those are all rasterizer/bus
// properties), this software model decodes an entire command buffer in
// one pass instead of one word per Tick, producing the same sequence of
// operations the hardware's FSM would execute.

package main

import (
	"encoding/binary"
	"log"
)

type Opcode uint8

const (
	OpDrawTriangle  Opcode = 0x01
	OpLoadTexture   Opcode = 0x02
	OpWaitIdle      Opcode = 0x03
	OpClearBuffer   Opcode = 0x04
	OpWaitClearIdle Opcode = 0x05
)

// CommandOp is one decoded entry from the command stream.
type CommandOp struct {
	Op Opcode

	// DRAW_TRIANGLE
	Triangle Triangle

	// LOAD_TEXTURE
	TexBuffer  uint8
	TexSStart  uint8
	TexSEnd    uint8
	TexTStart  uint8 // half-t start (2 texels per word)
	TexTEnd    uint8
	TexWords   []uint64 // 48-bit payload words, two texels each

	// CLEAR_BUFFER
	ClearBaseAddr uint32
	ClearWords    uint32
	ClearPattern  [3]byte
}

// DecodeCommandStream walks a little-endian 32-bit word stream, as laid
// out by this repo's CommandBuffer encoder (command.py's layout, except for
// the LOAD_TEXTURE payload packing described below), and returns the
// ordered list of operations it contains.
func DecodeCommandStream(words []uint32) ([]CommandOp, error) {
	var ops []CommandOp
	i := 0
	next := func() (uint32, bool) {
		if i >= len(words) {
			return 0, false
		}
		w := words[i]
		i++
		return w, true
	}

	for i < len(words) {
		hdr, ok := next()
		if !ok {
			break
		}
		opcode := Opcode(hdr & 0x3F)
		switch opcode {
		case OpDrawTriangle:
			texEnable := (hdr>>6)&1 != 0
			texBuffer := uint8((hdr >> 7) & 0x3)
			var verts [3]ScreenVertex
			for v := 0; v < 3; v++ {
				lo, ok1 := next()
				hi, ok2 := next()
				if !ok1 || !ok2 {
					return nil, rasterErr("command_processor", "truncated vertex in DRAW_TRIANGLE")
				}
				word := uint64(lo) | uint64(hi)<<32
				verts[v] = unpackVertexWord(word)
			}
			ops = append(ops, CommandOp{
				Op: OpDrawTriangle,
				Triangle: Triangle{
					V0: verts[0], V1: verts[1], V2: verts[2],
					TextureEnable: texEnable,
					TextureBuffer: texBuffer,
				},
			})

		case OpLoadTexture:
			buffer := uint8((hdr >> 6) & 0x3)
			sHigh := (hdr >> 8) & 1
			sStart := uint8((hdr>>9)&0x3F) | uint8(sHigh<<6)
			sEnd := uint8((hdr>>15)&0x3F) | uint8(sHigh<<6)
			tHigh := (hdr >> 21) & 1
			tHalfStart := uint8((hdr>>22)&0x1F) | uint8(tHigh<<5)
			tHalfEnd := uint8((hdr>>27)&0x1F) | uint8(tHigh<<5)

			if sStart > sEnd || tHalfStart > tHalfEnd {
				return nil, rasterErr("command_processor", "LOAD_TEXTURE region bounds inverted")
			}

			// Each texel-pair (48 bits: two 24-bit texels) is carried as two
			// word-aligned 32-bit DMA words (lower 32 bits, then upper 16
			// bits in the low half of the second word). This is a
			// word-aligned simplification of the hardware's 3-words-per-2-
			// texel-pairs packing, chosen so this repo's encoder and decoder
			// stay symmetric without needing sub-word carry state.
			var texWords []uint64
			s, tHalf := sStart, tHalfStart
			for {
				lo, ok1 := next()
				hi, ok2 := next()
				if !ok1 || !ok2 {
					return nil, rasterErr("command_processor", "truncated LOAD_TEXTURE payload")
				}
				word := uint64(lo) | (uint64(hi)&0xFFFF)<<32
				texWords = append(texWords, word&0xFFFFFFFFFFFF)

				if tHalf == tHalfEnd {
					tHalf = tHalfStart
					s++
				} else {
					tHalf++
				}
				if s > sEnd {
					break
				}
			}

			ops = append(ops, CommandOp{
				Op:        OpLoadTexture,
				TexBuffer: buffer,
				TexSStart: sStart, TexSEnd: sEnd,
				TexTStart: tHalfStart, TexTEnd: tHalfEnd,
				TexWords: texWords,
			})

		case OpWaitIdle:
			ops = append(ops, CommandOp{Op: OpWaitIdle})

		case OpClearBuffer:
			pattern := hdr >> 8
			baseAddr, ok1 := next()
			wordCount, ok2 := next()
			if !ok1 || !ok2 {
				return nil, rasterErr("command_processor", "truncated CLEAR_BUFFER payload")
			}
			ops = append(ops, CommandOp{
				Op:            OpClearBuffer,
				ClearBaseAddr: baseAddr,
				ClearWords:    wordCount,
				ClearPattern:  [3]byte{byte(pattern), byte(pattern >> 8), byte(pattern >> 16)},
			})

		case OpWaitClearIdle:
			ops = append(ops, CommandOp{Op: OpWaitClearIdle})

		default:
			// Unknown opcode: log it, then skip this one word and continue,
			// matching the error table's "skip one word, log, continue"
			// recoverable policy.
			log.Printf("command_processor: unknown opcode %#x, skipping", opcode)
			continue
		}
	}
	return ops, nil
}

// commandWordsFromBytes is a convenience for drivers that hand the command
// processor a raw little-endian byte buffer instead of pre-split words.
func commandWordsFromBytes(buf []byte) []uint32 {
	words := make([]uint32, len(buf)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(buf[i*4:])
	}
	return words
}
