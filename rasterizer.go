// rasterizer.go - Top-level rasterizer engine: registers, IRQ, pipeline wiring
//
// The control/IRQ register layout is transliterated byte-for-byte from
// soc/raster.py and the userspace driver's register slices in
// linux/hell/hal/rasterizer.py, since spec.md names the registers but not
// their offsets and the driver is authoritative for what the core actually
// looks like on the bus.

package main

// Register byte offsets within the engine's control-register window.
const (
	RegIRQStatus  = 0x00
	RegIRQMask    = 0x04
	RegFBBase     = 0x08
	RegZBase      = 0x0C
	RegIdle       = 0x10
	RegCmdAddr64  = 0x14
	RegCmdWords   = 0x18
	RegCmdCtrl    = 0x1C
	RegCmdDMAIdle = 0x20
	RegCmdIdle    = 0x24
)

const (
	irqCmdDone    = 0b01
	irqCmdDMADone = 0b10
)

// PerfCounters mirrors soc/raster.py's stall/occupancy instrumentation.
type PerfCounters struct {
	StallWalker         uint32
	StallDepthLoadAddr  uint32
	StallDepthFIFO      uint32
	StallDepthStoreAddr uint32
	StallDepthStoreData uint32
	StallPixelStore     uint32
}

// Engine is the complete rasterizer core: command decode, edge walking,
// interpolation, depth test, texture sampling, pixel/clear writeback, and
// the register/IRQ surface a driver talks to.
type Engine struct {
	Width, Height int

	FB    *FrameBuffer
	Depth *DepthBuffer
	Tex   *TextureBuffer

	Mem   BurstMemoryPort
	Bytes ByteWriter

	FBBase uint32
	ZBase  uint32

	walker       *EdgeWalker
	interpolator *Interpolator
	depthReader  *DepthReader
	depthTester  *DepthTester
	pixelWriter  *PixelWriter
	clearer      *BufferClearer

	Perf PerfCounters

	irqStatus uint32
	irqMask   uint32

	cmdDMAIdle bool
	cmdIdle    bool
}

// NewEngine builds a rasterizer sized for width x height, with its
// framebuffer and depth buffer backed by the same BurstMemoryPort a real
// driver would hand it command buffers through.
func NewEngine(width, height int, mem BurstMemoryPort, bytes ByteWriter) *Engine {
	depth := NewDepthBuffer(width, height)
	e := &Engine{
		Width: width, Height: height,
		FB:    NewFrameBuffer(width, height),
		Depth: depth,
		Tex:   NewTextureBuffer(),
		Mem:   mem,
		Bytes: bytes,

		walker:       NewEdgeWalker(true),
		interpolator: NewInterpolator(width),

		irqMask:    irqCmdDone | irqCmdDMADone,
		cmdDMAIdle: true,
		cmdIdle:    true,
	}
	e.depthReader = NewDepthReader(mem, e.ZBase)
	e.depthTester = NewDepthTester(depth, mem, e.ZBase, e.depthReader)
	e.pixelWriter = NewPixelWriter(bytes)
	e.clearer = NewBufferClearer(mem)
	return e
}

// SetBuffers programs FB_BASE/Z_BASE, mirroring Rasterizer.set_buffers. Both
// addresses must be 128-byte aligned, matching the driver's asserts.
func (e *Engine) SetBuffers(fbBase, zBase uint32) error {
	if fbBase&0x7F != 0 || zBase&0x7F != 0 {
		return rasterErr("rasterizer", "frame/depth buffer base must be 128-byte aligned")
	}
	e.FBBase = fbBase
	e.ZBase = zBase
	e.depthReader.ZBase = zBase
	e.depthTester.zBase = zBase
	return nil
}

// Idle reports the core's IDLE register: true once every stage has
// drained.
func (e *Engine) Idle() bool {
	return e.walker.Idle() && e.interpolator.Idle() && e.depthReader.Idle()
}

// SubmitCommandBuffer decodes and executes an entire command buffer,
// mirroring the driver's submit_command + the command processor's FSM
// end to end. It raises both IRQ bits on completion, matching the
// hardware's edge-triggered CMD_DONE/CMD_DMA_DONE behavior.
func (e *Engine) SubmitCommandBuffer(buf []byte) error {
	if len(buf)%64 != 0 {
		return rasterErr("rasterizer", "command buffer must be 64-byte aligned in length")
	}
	e.cmdDMAIdle = false
	e.cmdIdle = false

	words := commandWordsFromBytes(buf)
	ops, err := DecodeCommandStream(words)
	if err != nil {
		return err
	}

	for _, op := range ops {
		if err := e.execute(op); err != nil {
			return err
		}
	}

	e.cmdDMAIdle = true
	e.cmdIdle = true
	e.irqStatus |= irqCmdDone | irqCmdDMADone
	return nil
}

func (e *Engine) execute(op CommandOp) error {
	switch op.Op {
	case OpDrawTriangle:
		return e.drawTriangle(op.Triangle)
	case OpLoadTexture:
		return e.loadTexture(op)
	case OpWaitIdle:
		return nil // synchronous model: the rasterizer is always idle between ops
	case OpClearBuffer:
		if err := e.clearer.Clear(op.ClearBaseAddr, op.ClearWords, op.ClearPattern); err != nil {
			return err
		}
		// The clear may have overwritten depth words the depth reader holds.
		e.depthReader.cacheLen = 0
		return nil
	case OpWaitClearIdle:
		return nil
	default:
		// Unreachable from a real command buffer: DecodeCommandStream never
		// emits a CommandOp for an opcode it doesn't recognize (it logs and
		// skips the word itself). Kept only as a defensive default.
		return nil
	}
}

func (e *Engine) loadTexture(op CommandOp) error {
	s, tHalf := op.TexSStart, op.TexTStart
	for _, word := range op.TexWords {
		addr := uint16(tHalf) + uint16(s)*64
		e.Tex.Write(op.TexBuffer, addr, word)
		if tHalf == op.TexTEnd {
			tHalf = op.TexTStart
			s++
		} else {
			tHalf++
		}
	}
	return nil
}

// drawTriangle rejects degenerate (non-positive area) triangles before
// presenting them to the edge walker, exactly as required by the walker's
// "area <= 0 never reaches the divider" guarantee, then walks every
// candidate pixel through interpolation, depth test, optional texture
// sample, and pixel write-back.
func (e *Engine) drawTriangle(t Triangle) error {
	area := orient2d(int32(t.V0.X), int32(t.V0.Y), int32(t.V1.X), int32(t.V1.Y), int32(t.V2.X), int32(t.V2.Y))
	if area <= 0 {
		return nil
	}

	e.walker.Submit(t)
	for !e.walker.Idle() {
		out := e.walker.Step(true)
		if !out.valid {
			continue
		}
		px, valid := e.interpolator.Step(true, out.point, t, true)
		if !valid {
			continue
		}
		if err := e.shadeAndWrite(px, t); err != nil {
			return err
		}
	}
	// Drain the interpolator's internal pipeline (it has up to 3 more
	// cycles of in-flight samples once the walker goes idle).
	for i := 0; i < 4; i++ {
		px, valid := e.interpolator.Step(false, WeightedPoint{}, t, true)
		if valid {
			if err := e.shadeAndWrite(px, t); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Engine) shadeAndWrite(px InterpolatedPixel, t Triangle) error {
	if !e.depthReader.Accept(px) {
		return rasterErr("rasterizer", "depth read queue overflow")
	}
	sample, fetchedZ, ok, err := e.depthReader.Pop()
	if err != nil || !ok {
		return err
	}

	color := [3]uint8{sample.R, sample.G, sample.B}
	if t.TextureEnable {
		// Interpolated s/t ride through the same 8-bit color channels as
		// r/g; texture banks are 128 texels wide per axis, so the top 7
		// bits of each interpolated channel address the bank.
		color = e.Tex.Sample(t.TextureBuffer, sample.R>>1, sample.G>>1)
	}

	passed, err := e.depthTester.Test(sample, fetchedZ, e.Width)
	if err != nil {
		return err
	}
	if !passed {
		return nil
	}

	x := int(sample.Offset) % e.Width
	y := int(sample.Offset) / e.Width
	e.FB.Set(x, y, color)

	byteAddr := e.FBBase + sample.Offset*3
	return e.pixelWriter.Write(byteAddr, color)
}
