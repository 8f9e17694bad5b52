package main

import "testing"

func TestPixelWriterSimpleWrite(t *testing.T) {
	mem := NewSoftwareMemory(4096)
	pw := NewPixelWriter(mem)
	if err := pw.Write(16, [3]byte{0xAA, 0xBB, 0xCC}); err != nil {
		t.Fatal(err)
	}
	if pw.SplitWrites != 0 {
		t.Errorf("expected no split for an aligned write, got %d", pw.SplitWrites)
	}
	if len(pw.Bursts) != 1 || pw.Bursts[0] != (BurstRequest{Addr: 16, Len: 1, SizeBytes: 8, Burst: BurstIncr}) {
		t.Errorf("expected one single-beat burst at 16, got %+v", pw.Bursts)
	}
	got, _ := mem.Read(BurstRequest{Addr: 16, Len: 1, SizeBytes: 8, Burst: BurstIncr})
	if got[0].Data[0] != 0xAA || got[0].Data[1] != 0xBB || got[0].Data[2] != 0xCC {
		t.Errorf("wrote %v, want [AA BB CC ...]", got[0].Data[:3])
	}
}

func TestPixelWriterSplitsAcrossBeatBoundary(t *testing.T) {
	mem := NewSoftwareMemory(4096)
	pw := NewPixelWriter(mem)
	// addr%8 == 6: two of the three bytes land in the first beat's last
	// two lanes, the third spills into the next beat.
	if err := pw.Write(128+6, [3]byte{0x11, 0x22, 0x33}); err != nil {
		t.Fatal(err)
	}
	if pw.SplitWrites != 1 {
		t.Fatalf("expected exactly one split write, got %d", pw.SplitWrites)
	}
	// Staying within one page, the split must still be a single address
	// phase: one length-2 INCR burst, not two separate bursts.
	if len(pw.Bursts) != 1 || pw.Bursts[0] != (BurstRequest{Addr: 128, Len: 2, SizeBytes: 8, Burst: BurstIncr}) {
		t.Errorf("expected one length-2 INCR burst at 128, got %+v", pw.Bursts)
	}
	first, _ := mem.Read(BurstRequest{Addr: 128, Len: 1, SizeBytes: 8, Burst: BurstIncr})
	if first[0].Data[6] != 0x11 || first[0].Data[7] != 0x22 {
		t.Errorf("first beat lanes = %v, want [.. 11 22]", first[0].Data)
	}
	second, _ := mem.Read(BurstRequest{Addr: 136, Len: 1, SizeBytes: 8, Burst: BurstIncr})
	if second[0].Data[0] != 0x33 {
		t.Errorf("second beat lane 0 = %#x, want 0x33", second[0].Data[0])
	}
}

// TestPixelWriterSplitPageCounted is spec.md's 4KiB-boundary scenario: a
// pixel at 0xFFE straddles both the 8-byte beat boundary and the 4KiB page
// boundary, so the write must land as two separate single-beat bursts at
// 0xFF8 and 0x1000, not one two-beat burst.
func TestPixelWriterSplitPageCounted(t *testing.T) {
	mem := NewSoftwareMemory(8192)
	pw := NewPixelWriter(mem)
	addr := uint32(0xFFE)
	if err := pw.Write(addr, [3]byte{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if pw.SplitPages != 1 {
		t.Errorf("expected a counted page split, got %d", pw.SplitPages)
	}
	want := []BurstRequest{
		{Addr: 0xFF8, Len: 1, SizeBytes: 8, Burst: BurstIncr},
		{Addr: 0x1000, Len: 1, SizeBytes: 8, Burst: BurstIncr},
	}
	if len(pw.Bursts) != 2 || pw.Bursts[0] != want[0] || pw.Bursts[1] != want[1] {
		t.Errorf("expected two single-beat bursts at 0xFF8 and 0x1000, got %+v", pw.Bursts)
	}
}
