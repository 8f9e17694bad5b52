// interpolator.go - 4-stage perspective-uncorrected attribute interpolator
//
// Transliterated from RasterizerInterpolator: stage c0 latches the walker's
// point and weights, c1 re-latches them (matching the extra register stage
// the hardware uses to balance the DSP48E1 multiply pipeline), c2 multiplies
// each vertex's r/g/b/z by its edge-function weight, and c3 sums the three
// products and rounds by (sum + (1<<23)) >> 24. A single pair of stall
// signals (stall_input, stall_c3) propagates backpressure from the
// consumer all the way to the edge walker.

package main

// interpStage is one pipeline register: a sample plus its validity bit.
type interpStage struct {
	valid bool
	p     Point
	ws    [3]uint32
	r, g, b [3]uint8
	z       [3]uint16
}

// InterpolatedPixel is the interpolator's output: a framebuffer offset and
// the rounded color/depth for that pixel.
type InterpolatedPixel struct {
	Offset   uint32
	R, G, B  uint8
	Z        uint16
}

type Interpolator struct {
	Width int

	c0, c1 interpStage
	c2     struct {
		valid          bool
		offset         uint32
		rS, gS, bS, zS [3]uint64
	}
	c3 InterpolatedPixel
	c3Valid bool
}

func NewInterpolator(width int) *Interpolator {
	return &Interpolator{Width: width}
}

func (ip *Interpolator) Idle() bool {
	return !ip.c0.valid && !ip.c1.valid && !ip.c2.valid && !ip.c3Valid
}

// Ready reports whether c0, c1 and c2 are all empty. This is stricter than
// Step's own intake rule, which takes a new sample unless a stage holds one
// while c3 is stalled.
func (ip *Interpolator) Ready() bool {
	return !ip.stallInput()
}

func (ip *Interpolator) stallC3(outReady bool) bool {
	return ip.c3Valid && !outReady
}

func (ip *Interpolator) stallInput() bool {
	// stall_c3 computed against the same outReady used this cycle; callers
	// invoke Step with outReady so this is recomputed there. Kept as a
	// conservative default (assume stalled) when queried standalone.
	return ip.c0.valid || ip.c1.valid || ip.c2.valid
}

// Step advances the pipeline by one cycle. inValid/in describe a candidate
// sample offered by the edge walker this cycle (consumed unless the
// pipeline is stalled this cycle).
// vertex carries the three vertices' color/depth attributes for this
// triangle, matching the hardware's per-triangle-latched r/g/b/z arrays.
// outReady is backpressure from the depth-read stage.
func (ip *Interpolator) Step(inValid bool, in WeightedPoint, vertex Triangle, outReady bool) (out InterpolatedPixel, outValid bool) {
	stallC3 := ip.c3Valid && !outReady
	stallIn := (ip.c0.valid || ip.c1.valid || ip.c2.valid) && stallC3

	// c3 must be derived from c2's value as of the END of the previous
	// cycle, so this has to read ip.c2 before the block below overwrites it
	// with this cycle's next2 — exactly like a synchronous register, where
	// every stage reads the old value of the stage behind it before any
	// stage's new value lands.
	if !stallC3 {
		ip.c3Valid = ip.c2.valid
		ip.c3 = InterpolatedPixel{
			Offset: ip.c2.offset,
			R:      uint8(round24(sum3(ip.c2.rS))),
			G:      uint8(round24(sum3(ip.c2.gS))),
			B:      uint8(round24(sum3(ip.c2.bS))),
			Z:      uint16(round24(sum3(ip.c2.zS))),
		}
	}

	if !stallIn {
		next0 := interpStage{
			valid: inValid,
			p:     in.P,
			ws:    [3]uint32{in.W0, in.W1, in.W2},
			r:     [3]uint8{vertex.V0.A, vertex.V1.A, vertex.V2.A},
			g:     [3]uint8{vertex.V0.B, vertex.V1.B, vertex.V2.B},
			b:     [3]uint8{vertex.V0.C, vertex.V1.C, vertex.V2.C},
			z:     [3]uint16{vertex.V0.Z, vertex.V1.Z, vertex.V2.Z},
		}
		next1 := ip.c0

		var next2 struct {
			valid          bool
			offset         uint32
			rS, gS, bS, zS [3]uint64
		}
		next2.valid = ip.c1.valid
		next2.offset = uint32(ip.Width)*uint32(int32(ip.c1.p.Y)) + uint32(int32(ip.c1.p.X))
		for i := 0; i < 3; i++ {
			next2.rS[i] = uint64(ip.c1.r[i]) * uint64(ip.c1.ws[i])
			next2.gS[i] = uint64(ip.c1.g[i]) * uint64(ip.c1.ws[i])
			next2.bS[i] = uint64(ip.c1.b[i]) * uint64(ip.c1.ws[i])
			next2.zS[i] = uint64(ip.c1.z[i]) * uint64(ip.c1.ws[i])
		}

		ip.c0 = next0
		ip.c1 = next1
		ip.c2 = next2
	}

	return ip.c3, ip.c3Valid
}

func sum3(v [3]uint64) uint64 { return v[0] + v[1] + v[2] }

func round24(sum uint64) uint64 {
	return (sum + (1 << 23)) >> 24
}
