// edge_walker.go - Bounding-box edge-function scan conversion
//
// Transliterated from the gateware's EdgeWalker: computes each edge
// function's per-row and per-column deltas once, then walks the triangle's
// integer bounding box row by row, incrementally updating the three edge
// functions by addition instead of re-evaluating orient2d at every pixel.
// Samples outside the triangle (any edge function negative) are not
// emitted.

package main

const (
	divWidth  = 24
	divUnroll = 1
)

type edgeWalkerState int

const (
	ewIdle edgeWalkerState = iota
	ewCalcOrient
	ewWaitDiv
	ewLoopY
	ewLoopX
)

// Point is one screen-space coordinate in a PointStream.
type Point struct {
	X, Y int32
}

// WeightedPoint is one candidate raster sample: its screen coordinate and
// the three barycentric edge-function values, already scaled by 1/area in
// UQ0.24 fixed point (so w0+w1+w2 == area*floor(0xFFFFFF/area) at every
// inside sample: 1<<24 less the reciprocal's truncation error).
type WeightedPoint struct {
	P          Point
	W0, W1, W2 uint32
}

// EdgeWalker walks one triangle at a time, producing WeightedPoints for
// every pixel in its bounding box whose three edge functions are all
// non-negative.
type EdgeWalker struct {
	scaleRecip bool
	divider    *Divider

	state edgeWalkerState
	idle  bool

	a01, a12, a20 int32
	b01, b12, b20 int32
	minX, maxX    int32
	maxY          int32

	p                 Point
	w0Row, w1Row, w2Row int64
	w0, w1, w2          int64
	areaRecip           uint32

	tri     Triangle
	hasTri  bool
}

func NewEdgeWalker(scaleRecip bool) *EdgeWalker {
	return &EdgeWalker{
		scaleRecip: scaleRecip,
		divider:    NewDivider(divWidth, divUnroll),
		state:      ewIdle,
		idle:       true,
	}
}

func orient2d(ax, ay, bx, by, cx, cy int32) int64 {
	return int64(bx-ax)*int64(cy-ay) - int64(by-ay)*int64(cx-ax)
}

func min3(a, b, c int32) int32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func max3(a, b, c int32) int32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

// Idle reports whether the walker is ready to accept a new triangle.
func (ew *EdgeWalker) Idle() bool { return ew.idle }

// Submit hands a new triangle to the walker. Only valid while Idle().
// Degenerate triangles (area <= 0) must be rejected by the caller before
// calling Submit; the walker does not itself guard against a zero divisor.
func (ew *EdgeWalker) Submit(t Triangle) {
	ew.tri = t
	ew.hasTri = true

	x0, y0 := int32(t.V0.X), int32(t.V0.Y)
	x1, y1 := int32(t.V1.X), int32(t.V1.Y)
	x2, y2 := int32(t.V2.X), int32(t.V2.Y)

	ew.a01 = y0 - y1
	ew.a12 = y1 - y2
	ew.a20 = y2 - y0
	ew.b01 = x1 - x0
	ew.b12 = x2 - x1
	ew.b20 = x0 - x2

	ew.minX = min3(x0, x1, x2)
	ew.maxX = max3(x0, x1, x2)
	minY := min3(y0, y1, y2)
	ew.maxY = max3(y0, y1, y2)

	ew.p = Point{X: ew.minX, Y: minY}

	area := orient2d(x0, y0, x1, y1, x2, y2)
	ew.divider.Start(0xFFFFFF, uint64(area))

	ew.idle = false
	ew.state = ewCalcOrient
}

// pointOut is what Step returns for one cycle: a candidate sample (which
// may or may not be inside the triangle) and whether the walker is
// presenting a valid output this cycle.
type pointOut struct {
	valid bool
	point WeightedPoint
}

// Step advances the walker by one cycle. downstreamReady gates emission of
// in-triangle samples exactly like the hardware's points.ready backpressure.
func (ew *EdgeWalker) Step(downstreamReady bool) pointOut {
	t := ew.tri
	x0, y0 := int32(t.V0.X), int32(t.V0.Y)
	x1, y1 := int32(t.V1.X), int32(t.V1.Y)
	x2, y2 := int32(t.V2.X), int32(t.V2.Y)

	switch ew.state {
	case ewIdle:
		ew.idle = true
		return pointOut{}

	case ewCalcOrient:
		ew.w0Row = orient2d(x1, y1, x2, y2, ew.p.X, ew.p.Y)
		ew.w1Row = orient2d(x2, y2, x0, y0, ew.p.X, ew.p.Y)
		ew.w2Row = orient2d(x0, y0, x1, y1, ew.p.X, ew.p.Y)
		if !ew.scaleRecip {
			ew.state = ewLoopY
			return pointOut{}
		}
		ew.divider.Step()
		if ew.divider.Done() {
			ew.areaRecip = uint32(ew.divider.Quotient())
			ew.state = ewLoopY
		} else {
			ew.state = ewWaitDiv
		}
		return pointOut{}

	case ewWaitDiv:
		ew.divider.Step()
		if ew.divider.Done() {
			ew.areaRecip = uint32(ew.divider.Quotient())
			ew.state = ewLoopY
		}
		return pointOut{}

	case ewLoopY:
		if ew.p.Y > ew.maxY {
			ew.state = ewIdle
			ew.hasTri = false
			return pointOut{}
		}
		ew.p.X = ew.minX
		ew.w0, ew.w1, ew.w2 = ew.w0Row, ew.w1Row, ew.w2Row
		ew.state = ewLoopX
		return pointOut{}

	case ewLoopX:
		if ew.p.X > ew.maxX {
			ew.w0Row += int64(ew.b12)
			ew.w1Row += int64(ew.b20)
			ew.w2Row += int64(ew.b01)
			ew.p.Y++
			ew.state = ewLoopY
			return pointOut{}
		}

		inside := ew.w0 >= 0 && ew.w1 >= 0 && ew.w2 >= 0
		out := pointOut{valid: inside}
		if inside {
			out.point = ew.weightedPoint()
		}
		if !inside || downstreamReady {
			ew.w0 += int64(ew.a12)
			ew.w1 += int64(ew.a20)
			ew.w2 += int64(ew.a01)
			ew.p.X++
		}
		return out
	}
	return pointOut{}
}

func (ew *EdgeWalker) weightedPoint() WeightedPoint {
	if !ew.scaleRecip {
		return WeightedPoint{P: ew.p, W0: uint32(ew.w0), W1: uint32(ew.w1), W2: uint32(ew.w2)}
	}
	scale := uint64(ew.areaRecip)
	return WeightedPoint{
		P:  ew.p,
		W0: uint32((uint64(ew.w0) * scale) & 0xFFFFFF),
		W1: uint32((uint64(ew.w1) * scale) & 0xFFFFFF),
		W2: uint32((uint64(ew.w2) * scale) & 0xFFFFFF),
	}
}
