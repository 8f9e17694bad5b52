// depth_tester.go - Depth comparison and depth buffer update
//
// Transliterated from RasterizerDepthTester: a pixel survives when the
// newly interpolated depth is strictly greater than the value already
// stored at that pixel (larger values are nearer the viewer), matching the
// "new_z > stored_z wins" invariant. A surviving pixel's depth is written
// back before it is handed to the pixel writer.

package main

// DepthTester compares a fetched depth value against the candidate pixel's
// interpolated depth and, on a win, stores the new depth and forwards the
// pixel for color write-back.
type DepthTester struct {
	depth *DepthBuffer
	mem   BurstMemoryPort
	zBase uint32
	cache *DepthReader // used to invalidate stale cached words on write
}

func NewDepthTester(depth *DepthBuffer, mem BurstMemoryPort, zBase uint32, reader *DepthReader) *DepthTester {
	return &DepthTester{depth: depth, mem: mem, zBase: zBase, cache: reader}
}

// Test evaluates one pixel. newZ > fetchedZ is a win: the depth buffer is
// updated (both the Engine's in-memory DepthBuffer and, through the bus,
// the pipelined model's backing store) and ok is true.
func (dt *DepthTester) Test(px InterpolatedPixel, fetchedZ uint16, width int) (ok bool, err error) {
	if !(px.Z > fetchedZ) {
		return false, nil
	}

	x := int(px.Offset) % width
	y := int(px.Offset) / width
	dt.depth.Set(x, y, px.Z)

	byteAddr := dt.zBase + px.Offset*2
	wordAddr := byteAddr &^ 7
	lane := (byteAddr >> 1) & 3

	beats, rerr := dt.mem.Read(BurstRequest{Addr: wordAddr, Len: 1, SizeBytes: 8, Burst: BurstIncr})
	if rerr != nil {
		return false, rerr
	}
	word := beatToUint64(beats[0].Data)
	word &^= uint64(0xFFFF) << (lane * 16)
	word |= uint64(px.Z) << (lane * 16)

	buf := make([]byte, 8)
	for i := 0; i < 8; i++ {
		buf[i] = byte(word >> (8 * uint(i)))
	}
	if werr := dt.mem.Write(BurstRequest{Addr: wordAddr, Len: 1, SizeBytes: 8, Burst: BurstIncr}, []Beat{{Data: buf, Last: true}}); werr != nil {
		return false, werr
	}
	if dt.cache != nil {
		dt.cache.Invalidate(wordAddr)
	}
	return true, nil
}
