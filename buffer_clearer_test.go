package main

import "testing"

func TestBufferClearerFillsRepeatingPattern(t *testing.T) {
	mem := NewSoftwareMemory(4096)
	bc := NewBufferClearer(mem)
	pattern := [3]byte{0x10, 0x20, 0x30}
	if err := bc.Clear(0, 4, pattern); err != nil {
		t.Fatal(err)
	}
	got, err := mem.Read(BurstRequest{Addr: 0, Len: 4, SizeBytes: 8, Burst: BurstIncr})
	if err != nil {
		t.Fatal(err)
	}
	idx := 0
	for _, beat := range got {
		for _, b := range beat.Data {
			want := pattern[idx%3]
			if b != want {
				t.Fatalf("byte %d = %#x, want %#x", idx, b, want)
			}
			idx++
		}
	}
}

func TestBufferClearerSplitsBurstsAt16Beats(t *testing.T) {
	mem := NewSoftwareMemory(64 * 20)
	bc := NewBufferClearer(mem)
	if err := bc.Clear(0, 20, [3]byte{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if bc.BurstsIssued != 2 {
		t.Errorf("expected 2 bursts (16 + 4), got %d", bc.BurstsIssued)
	}
	if bc.BeatsIssued != 20 {
		t.Errorf("expected 20 beats total, got %d", bc.BeatsIssued)
	}
}

func TestBufferClearerRejectsUnalignedBase(t *testing.T) {
	mem := NewSoftwareMemory(1024)
	bc := NewBufferClearer(mem)
	if err := bc.Clear(4, 1, [3]byte{}); err == nil {
		t.Fatal("expected an error for a non-128-byte-aligned base address")
	}
}
