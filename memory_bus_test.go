package main

import "testing"

func TestHostBusPlainMemoryReadWrite(t *testing.T) {
	bus := NewHostBus()
	bus.Write32(0x1000, 0x12345678)
	if got := bus.Read32(0x1000); got != 0x12345678 {
		t.Fatalf("Read32 = %#x, want 0x12345678", got)
	}
}

func TestHostBusEngineRegisterWindow(t *testing.T) {
	mem := NewSoftwareMemory(4096)
	engine := NewEngine(16, 16, mem, mem)

	bus := NewHostBus()
	const regBase = 0x40000000
	bus.MapEngineRegisters(regBase, engine)

	bus.Write32(regBase+RegIRQMask, 0xFF)
	if got := bus.Read32(regBase + RegIRQMask); got != 0xFF {
		t.Fatalf("IRQ_MASK readback = %#x, want 0xFF", got)
	}

	if got := bus.Read32(regBase + RegIdle); got != 1 {
		t.Fatalf("IDLE = %d, want 1 (engine freshly constructed)", got)
	}

	// Writes outside the mapped window still reach plain host memory.
	bus.Write32(0, 0xCAFEBABE)
	if got := bus.Read32(0); got != 0xCAFEBABE {
		t.Fatalf("Read32(0) = %#x, want 0xCAFEBABE", got)
	}
}

func TestHostBusReset(t *testing.T) {
	bus := NewHostBus()
	bus.Write32(4, 0xAAAAAAAA)
	bus.Reset()
	if got := bus.Read32(4); got != 0 {
		t.Fatalf("after Reset Read32(4) = %#x, want 0", got)
	}
}
