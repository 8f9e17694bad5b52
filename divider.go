// divider.go - Iterative restoring unsigned divider
//
// Transliterated from the gateware's restoring division algorithm: each
// cycle shifts `unroll` more bits of the numerator into the remainder and
// subtracts the denominator whenever it fits, producing floor(n/d) and the
// final remainder after width/unroll cycles.

package main

// Divider computes unsigned integer division iteratively, unroll bits of
// quotient per Step call, matching the hardware's one-register-stage-per-
// cycle restoring divider.
type Divider struct {
	width  int
	unroll int

	running   bool
	done      bool
	counter   int
	remainder uint64
	quotient  uint64
	denom     uint64
}

func NewDivider(width, unroll int) *Divider {
	return &Divider{width: width, unroll: unroll}
}

// Start begins a new division, n / d, both treated as `width`-bit unsigned
// values. Starting while already running restarts it, matching the
// hardware's re-trigger behavior.
func (dv *Divider) Start(n, d uint64) {
	dv.running = true
	dv.done = false
	dv.counter = 0
	dv.remainder = 0
	dv.quotient = n
	dv.denom = d
}

// Busy reports whether a division is in flight.
func (dv *Divider) Busy() bool { return dv.running && !dv.done }

// Done reports whether the last Start'd division has completed.
func (dv *Divider) Done() bool { return dv.done }

// Quotient and Remainder are only valid once Done() is true.
func (dv *Divider) Quotient() uint64  { return dv.quotient }
func (dv *Divider) Remainder() uint64 { return dv.remainder }

// Step advances the divider by one cycle, performing `unroll` restoring
// steps. It is a no-op once Done() or before Start() has been called.
func (dv *Divider) Step() {
	if !dv.running || dv.done {
		return
	}
	mask := uint64(1)<<uint(dv.width) - 1
	for i := 0; i < dv.unroll; i++ {
		topBit := (dv.quotient >> uint(dv.width-1)) & 1
		dv.remainder = (dv.remainder << 1) | topBit
		dv.quotient = (dv.quotient << 1) & mask
		if dv.remainder >= dv.denom {
			dv.remainder -= dv.denom
			dv.quotient |= 1
		}
	}
	dv.counter++
	if dv.counter == dv.width/dv.unroll {
		dv.done = true
	}
}

// DivideBlocking runs the divider to completion and returns floor(n/d). It
// is provided for the scalar reference oracle, which has no notion of
// per-cycle stepping.
func DivideBlocking(n, d uint64, width, unroll int) (quotient, remainder uint64) {
	dv := NewDivider(width, unroll)
	dv.Start(n, d)
	for !dv.Done() {
		dv.Step()
	}
	return dv.Quotient(), dv.Remainder()
}
