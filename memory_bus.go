// memory_bus.go - Host-side address space: PS memory plus the rasterizer's
// memory-mapped control window
//
// On the real SoC, the ARM cores (the "PS" side of the Zynq) see the
// rasterizer core's IRQ/FB_BASE/Z_BASE/CMD_* registers as one small
// memory-mapped window inside their own 32-bit address space, alongside
// ordinary DRAM. HostBus models exactly that: a flat byte slice for DRAM,
// plus a registered I/O region whose reads and writes are redirected to an
// Engine's register file instead of backing storage.
//
// Grounded in SystemBus's page-masked I/O region table; adapted from a
// CPU/peripheral memory bus to a PS/accelerator control bus with a single
// region (the rasterizer) instead of many (video, audio, timers, ...).

package main

import (
	"encoding/binary"
	"sync"
)

const (
	hostMemorySize = 16 * 1024 * 1024
	ioPageSize     = 0x100
	ioPageMask     = ^uint32(ioPageSize - 1)
)

// ioRegion is one memory-mapped device window within the host address
// space: reads and writes landing inside [start, end] are redirected to
// onRead/onWrite instead of touching backing memory.
type ioRegion struct {
	start, end uint32
	onRead     func(addr uint32) uint32
	onWrite    func(addr uint32, value uint32)
}

// HostBus is the PS-side view of the system: a block of DRAM plus whatever
// memory-mapped control windows have been registered with MapIO.
type HostBus struct {
	mu      sync.RWMutex
	memory  []byte
	mapping map[uint32][]ioRegion
}

func NewHostBus() *HostBus {
	return &HostBus{
		memory:  make([]byte, hostMemorySize),
		mapping: make(map[uint32][]ioRegion),
	}
}

// MapIO registers a memory-mapped window covering [start, end]. Lookups are
// keyed by 256-byte page so dispatch stays O(1) per access regardless of
// how many windows are registered.
func (b *HostBus) MapIO(start, end uint32, onRead func(addr uint32) uint32, onWrite func(addr uint32, value uint32)) {
	region := ioRegion{start: start, end: end, onRead: onRead, onWrite: onWrite}
	for page := start & ioPageMask; page <= end&ioPageMask; page += ioPageSize {
		b.mapping[page] = append(b.mapping[page], region)
	}
}

// MapEngineRegisters wires base..base+0x28 of the host address space to
// engine's register file, matching the driver's mmap of the core's AXI-Lite
// control slave.
func (b *HostBus) MapEngineRegisters(base uint32, engine *Engine) {
	b.MapIO(base, base+RegCmdIdle+3,
		func(addr uint32) uint32 { return engine.ReadRegister(addr - base) },
		func(addr uint32, value uint32) { engine.WriteRegister(addr-base, value) },
	)
}

func (b *HostBus) regionAt(addr uint32) *ioRegion {
	for _, region := range b.mapping[addr&ioPageMask] {
		if addr >= region.start && addr <= region.end {
			return &region
		}
	}
	return nil
}

func (b *HostBus) Write32(addr uint32, value uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if region := b.regionAt(addr); region != nil && region.onWrite != nil {
		region.onWrite(addr, value)
		return
	}
	binary.LittleEndian.PutUint32(b.memory[addr:addr+4], value)
}

func (b *HostBus) Read32(addr uint32) uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()

	if region := b.regionAt(addr); region != nil && region.onRead != nil {
		return region.onRead(addr)
	}
	return binary.LittleEndian.Uint32(b.memory[addr : addr+4])
}

// GetMemory exposes the backing DRAM slice directly, matching the way a
// driver mmaps /dev/mem for bulk command-buffer and framebuffer transfers
// rather than going through Read32/Write32 one word at a time.
func (b *HostBus) GetMemory() []byte {
	return b.memory
}

func (b *HostBus) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.memory {
		b.memory[i] = 0
	}
}
