package main

import "testing"

func TestTextureBankWriteReadRoundTrip(t *testing.T) {
	var bank TextureBank
	// Two texels packed into one 48-bit word: lower 24 bits texel A, upper
	// 24 bits texel B.
	word := uint64(0x00F0F0) | uint64(0x0F0F0F)<<24
	bank.WriteWord(0, word) // s=0, t in {0,1}

	a := bank.Read(0, 0)
	b := bank.Read(0, 1)
	if a != [3]uint8{0xF0, 0xF0, 0x00} {
		t.Errorf("texel (0,0) = %v, want [F0 F0 00]", a)
	}
	if b != [3]uint8{0x0F, 0x0F, 0x0F} {
		t.Errorf("texel (0,1) = %v, want [0F 0F 0F]", b)
	}
}

func TestTextureBufferFrozenWhenDisabled(t *testing.T) {
	tb := NewTextureBuffer()
	tb.Banks[0].WriteWord(0, 0x00FF00FF00|uint64(0x112233))

	first := tb.Step(true, 0, 0, 0)
	_ = first
	// Step once more with en=true to let the 2-cycle latch settle onto a
	// known sample, then disable and confirm the output is held.
	settled := tb.Step(true, 0, 0, 0)
	frozen := tb.Step(false, 0, 5, 5)
	if frozen != settled {
		t.Errorf("frozen output %v != last settled output %v", frozen, settled)
	}
}

func TestTextureBufferSampleIsImmediate(t *testing.T) {
	tb := NewTextureBuffer()
	tb.Banks[2].WriteWord(0, uint64(0xAABBCC))
	got := tb.Sample(2, 0, 0)
	if got != [3]uint8{0xCC, 0xBB, 0xAA} {
		t.Errorf("Sample = %v, want [CC BB AA]", got)
	}
}
