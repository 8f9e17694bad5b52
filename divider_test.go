package main

import "testing"

func TestDividerBasic(t *testing.T) {
	cases := []struct {
		n, d         uint64
		wantQ, wantR uint64
	}{
		{100, 10, 10, 0},
		{0xFFFFFF, 3, 0x555555, 0},
		{1, 7, 0, 1},
		{7, 1, 7, 0},
	}
	for _, c := range cases {
		q, r := DivideBlocking(c.n, c.d, 24, 1)
		if q != c.wantQ || r != c.wantR {
			t.Errorf("DivideBlocking(%d, %d) = (%d, %d), want (%d, %d)", c.n, c.d, q, r, c.wantQ, c.wantR)
		}
	}
}

func TestDividerUnrollMatchesUnrollOne(t *testing.T) {
	for _, unroll := range []int{1, 2, 4, 8} {
		q, r := DivideBlocking(0xFFFFFF, 17, 24, unroll)
		wantQ, wantR := DivideBlocking(0xFFFFFF, 17, 24, 1)
		if q != wantQ || r != wantR {
			t.Errorf("unroll=%d: got (%d, %d), want (%d, %d)", unroll, q, r, wantQ, wantR)
		}
	}
}

func TestDividerRestart(t *testing.T) {
	dv := NewDivider(24, 1)
	dv.Start(100, 10)
	dv.Step()
	// Restart mid-flight.
	dv.Start(50, 5)
	for !dv.Done() {
		dv.Step()
	}
	if dv.Quotient() != 10 {
		t.Errorf("restarted division = %d, want 10", dv.Quotient())
	}
}
