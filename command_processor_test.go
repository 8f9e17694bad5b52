package main

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"
)

func TestEncodeDecodeDrawTriangleRoundTrip(t *testing.T) {
	cb := NewCommandBuffer()
	tri := Triangle{
		V0: ScreenVertex{X: 10, Y: 20, Z: 1000, A: 255, B: 0, C: 0},
		V1: ScreenVertex{X: 30, Y: 20, Z: 2000, A: 0, B: 255, C: 0},
		V2: ScreenVertex{X: 10, Y: 40, Z: 3000, A: 0, B: 0, C: 255},
		TextureEnable: true,
		TextureBuffer: 2,
	}
	cb.DrawTriangle(tri)

	ops, err := DecodeCommandStream(cb.Words())
	if err != nil {
		t.Fatal(err)
	}
	if len(ops) != 1 || ops[0].Op != OpDrawTriangle {
		t.Fatalf("expected one DRAW_TRIANGLE op, got %+v", ops)
	}
	got := ops[0].Triangle
	if got != tri {
		t.Errorf("round-trip mismatch: got %+v, want %+v", got, tri)
	}
}

func TestEncodeDecodeClearBufferRoundTrip(t *testing.T) {
	cb := NewCommandBuffer()
	if err := cb.ClearBuffer(256, 10, [3]byte{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	ops, err := DecodeCommandStream(cb.Words())
	if err != nil {
		t.Fatal(err)
	}
	if len(ops) != 1 || ops[0].Op != OpClearBuffer {
		t.Fatalf("expected one CLEAR_BUFFER op, got %+v", ops)
	}
	if ops[0].ClearBaseAddr != 256 || ops[0].ClearWords != 10 {
		t.Errorf("got base=%d words=%d, want base=256 words=10", ops[0].ClearBaseAddr, ops[0].ClearWords)
	}
	if ops[0].ClearPattern != [3]byte{1, 2, 3} {
		t.Errorf("pattern = %v, want [1 2 3]", ops[0].ClearPattern)
	}
}

func TestEncodeDecodeMultipleCommands(t *testing.T) {
	cb := NewCommandBuffer()
	cb.WaitIdle()
	cb.DrawTriangle(Triangle{
		V0: ScreenVertex{X: 1, Y: 1},
		V1: ScreenVertex{X: 5, Y: 1},
		V2: ScreenVertex{X: 1, Y: 5},
	})
	cb.WaitClearIdle()

	ops, err := DecodeCommandStream(cb.Words())
	if err != nil {
		t.Fatal(err)
	}
	wantOps := []Opcode{OpWaitIdle, OpDrawTriangle, OpWaitClearIdle}
	if len(ops) != len(wantOps) {
		t.Fatalf("got %d ops, want %d", len(ops), len(wantOps))
	}
	for i, op := range ops {
		if op.Op != wantOps[i] {
			t.Errorf("op[%d] = %#x, want %#x", i, op.Op, wantOps[i])
		}
	}
}

func TestDecodeSkipsUnknownOpcode(t *testing.T) {
	var logged bytes.Buffer
	log.SetOutput(&logged)
	defer log.SetOutput(os.Stderr)

	words := []uint32{0x3F, uint32(OpWaitIdle)}
	ops, err := DecodeCommandStream(words)
	if err != nil {
		t.Fatal(err)
	}
	if len(ops) != 1 || ops[0].Op != OpWaitIdle {
		t.Errorf("expected the unknown opcode to be skipped, got %+v", ops)
	}
	if !strings.Contains(logged.String(), "0x3f") {
		t.Errorf("expected the unknown opcode to be logged, got log output: %q", logged.String())
	}
}
