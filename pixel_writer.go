// pixel_writer.go - Framebuffer pixel store, with 8-byte-beat splitting
//
// Transliterated from PixelWriter: a 24-bit RGB pixel is stored into a
// byte-addressed framebuffer using 8-byte AXI beats. Two conditions force a
// write to split into a second beat: the pixel straddles an 8-byte beat
// boundary (addr%8 in {6,7}, so 1-2 of its 3 bytes land in the next beat),
// and, additionally, the second beat would cross a 4KiB page (addr%4096 in
// {0xFFE, 0xFFF}), which forces the second beat out as its own address
// phase (WRITE_SPLIT_PAGE) instead of a single two-beat burst.
//
// Bursts records the AXI transaction shape each Write call actually
// produces: a beat split that stays within one page is one length-2 INCR
// burst (one address phase), while a split that crosses a 4KiB page is two
// separate single-beat bursts (two address phases) — the distinction
// spec.md's 4KiB-boundary scenario exercises. The underlying byte writes
// still go through ByteWriter, since an 8-byte AXI beat's write strobes
// can land at an arbitrary lane offset that a whole-beat burst write can't
// express.

package main

type PixelWriter struct {
	mem ByteWriter

	Writes      int // number of ByteWriter.WriteBytes calls actually issued
	SplitWrites int
	SplitPages  int
	Bursts      []BurstRequest // one entry per AXI address phase issued
}

func NewPixelWriter(mem ByteWriter) *PixelWriter {
	return &PixelWriter{mem: mem}
}

func (pw *PixelWriter) Idle() bool { return true } // software model completes synchronously

// Write stores rgb at byte address addr, replicating the hardware's beat
// splitting exactly.
func (pw *PixelWriter) Write(addr uint32, rgb [3]byte) error {
	lane := addr & 7
	splitWrite := lane == 6 || lane == 7
	splitPage := (addr & 0xFFF) == 0xFFE || (addr&0xFFF) == 0xFFF

	if !splitWrite {
		if err := pw.mem.WriteBytes(addr, rgb[:]); err != nil {
			return err
		}
		pw.Writes++
		pw.Bursts = append(pw.Bursts, BurstRequest{Addr: addr &^ 7, Len: 1, SizeBytes: 8, Burst: BurstIncr})
		return nil
	}

	firstBeatBase := addr &^ 7
	firstLen := 8 - lane // bytes of rgb landing in the first beat: 2 if lane==6, 1 if lane==7
	if err := pw.mem.WriteBytes(firstBeatBase+lane, rgb[:firstLen]); err != nil {
		return err
	}
	pw.Writes++
	pw.SplitWrites++

	secondAddr := firstBeatBase + 8
	if err := pw.mem.WriteBytes(secondAddr, rgb[firstLen:]); err != nil {
		return err
	}
	pw.Writes++

	if splitPage {
		pw.SplitPages++
		pw.Bursts = append(pw.Bursts,
			BurstRequest{Addr: firstBeatBase, Len: 1, SizeBytes: 8, Burst: BurstIncr},
			BurstRequest{Addr: secondAddr, Len: 1, SizeBytes: 8, Burst: BurstIncr},
		)
	} else {
		pw.Bursts = append(pw.Bursts, BurstRequest{Addr: firstBeatBase, Len: 2, SizeBytes: 8, Burst: BurstIncr})
	}
	return nil
}
