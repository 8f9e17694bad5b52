package main

import "testing"

func TestSoftwareMemoryReadWriteRoundTrip(t *testing.T) {
	mem := NewSoftwareMemory(4096)
	beats := []Beat{{Data: []byte{1, 2, 3, 4, 5, 6, 7, 8}, Last: true}}
	if err := mem.Write(BurstRequest{Addr: 64, Len: 1, SizeBytes: 8, Burst: BurstIncr}, beats); err != nil {
		t.Fatal(err)
	}
	got, err := mem.Read(BurstRequest{Addr: 64, Len: 1, SizeBytes: 8, Burst: BurstIncr})
	if err != nil {
		t.Fatal(err)
	}
	for i, b := range got[0].Data {
		if b != beats[0].Data[i] {
			t.Fatalf("byte %d = %d, want %d", i, b, beats[0].Data[i])
		}
	}
}

func TestSplitOn4KiBSplitsCrossingBurst(t *testing.T) {
	req := BurstRequest{Addr: 4088, Len: 4, SizeBytes: 8, Burst: BurstIncr} // 4088..4120, crosses 4096
	subs := splitOn4KiB(req)
	if len(subs) != 2 {
		t.Fatalf("expected a 2-way split, got %d sub-requests", len(subs))
	}
	total := 0
	for _, s := range subs {
		total += s.Len
	}
	if total != req.Len {
		t.Errorf("split beats total %d, want %d", total, req.Len)
	}
	if subs[1].Addr%4096 != 0 {
		t.Errorf("second sub-burst should start at a page boundary, got addr %d", subs[1].Addr)
	}
}

func TestSplitOn4KiBNoSplitWhenWithinPage(t *testing.T) {
	req := BurstRequest{Addr: 0, Len: 16, SizeBytes: 8, Burst: BurstIncr}
	subs := splitOn4KiB(req)
	if len(subs) != 1 {
		t.Fatalf("expected no split, got %d sub-requests", len(subs))
	}
}

func TestValidateBurstRejectsBadLen(t *testing.T) {
	mem := NewSoftwareMemory(1024)
	_, err := mem.Read(BurstRequest{Addr: 0, Len: 17, SizeBytes: 8, Burst: BurstIncr})
	if err == nil {
		t.Fatal("expected an error for burst length > 16")
	}
}

func TestValidateBurstRejectsUnalignedAddr(t *testing.T) {
	mem := NewSoftwareMemory(1024)
	_, err := mem.Read(BurstRequest{Addr: 3, Len: 1, SizeBytes: 8, Burst: BurstIncr})
	if err == nil {
		t.Fatal("expected an error for unaligned address")
	}
}
