// bus.go - Abstracted AXI-style burst memory bus for the rasterizer core
//
// This adapts the Intuition Engine's SystemBus (a flat, page-mapped 32-bit
// memory bus) into a burst-capable model with the handshake and addressing
// rules an AXI read/write port actually has: a request carries a length in
// beats and a burst type, and INCR bursts may never cross a 4KiB boundary.

package main

import (
	"encoding/binary"
	"sync"
)

const (
	pageBoundary = 4096
)

// BurstType mirrors the AXI AxBURST field subset this core uses.
type BurstType int

const (
	BurstIncr BurstType = iota
	BurstFixed
	BurstWrap
)

// BurstRequest describes one address-channel beat group.
type BurstRequest struct {
	Addr      uint32
	Len       int // number of beats, 1..16
	SizeBytes int // bytes per beat: 1, 2, 4, or 8
	Burst     BurstType
}

// Beat is one data-channel transfer, read or write.
type Beat struct {
	Data []byte
	Last bool
}

// BurstMemoryPort is the abstracted bus port each pipeline stage that
// touches memory (depth reader, depth tester, buffer clearer) is wired
// against. SoftwareMemory is the
// software-backed implementation used throughout this package; the
// control-register surface has its own real-hardware counterpart in
// UioRegisterFile (see uio_register_file.go), which implements
// RegisterFile rather than BurstMemoryPort since register access has no
// burst semantics.
type BurstMemoryPort interface {
	// Read performs a full burst read and returns one beat per transfer,
	// honoring the 4KiB burst-crossing split described in the bus design.
	Read(req BurstRequest) ([]Beat, error)
	// Write performs a full burst write.
	Write(req BurstRequest, beats []Beat) error
}

// splitOn4KiB returns one or two sub-requests: a single request unless the
// burst as given would cross a 4KiB page, in which case it is split at the
// page boundary into two requests that each stay within one page.
func splitOn4KiB(req BurstRequest) []BurstRequest {
	totalBytes := req.Len * req.SizeBytes
	startPage := req.Addr / pageBoundary
	endPage := (req.Addr + uint32(totalBytes) - 1) / pageBoundary
	if req.Burst != BurstIncr || startPage == endPage {
		return []BurstRequest{req}
	}

	firstPageEnd := (startPage + 1) * pageBoundary
	firstBeats := (firstPageEnd - req.Addr) / uint32(req.SizeBytes)
	return []BurstRequest{
		{Addr: req.Addr, Len: int(firstBeats), SizeBytes: req.SizeBytes, Burst: req.Burst},
		{Addr: req.Addr + firstBeats*uint32(req.SizeBytes), Len: req.Len - int(firstBeats), SizeBytes: req.SizeBytes, Burst: req.Burst},
	}
}

// SoftwareMemory is an in-process BurstMemoryPort backed by a flat byte
// slice, the burst-aware analogue of memory_bus.go's HostBus.
type SoftwareMemory struct {
	mu   sync.RWMutex
	data []byte
}

func NewSoftwareMemory(size int) *SoftwareMemory {
	return &SoftwareMemory{data: make([]byte, size)}
}

func (m *SoftwareMemory) Read(req BurstRequest) ([]Beat, error) {
	if err := validateBurst(req); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var beats []Beat
	for _, sub := range splitOn4KiB(req) {
		addr := sub.Addr
		for i := 0; i < sub.Len; i++ {
			if int(addr)+sub.SizeBytes > len(m.data) {
				return nil, rasterErr("bus", "read past end of memory")
			}
			buf := make([]byte, sub.SizeBytes)
			copy(buf, m.data[addr:addr+uint32(sub.SizeBytes)])
			beats = append(beats, Beat{Data: buf, Last: i == sub.Len-1})
			addr += beatStride(sub)
		}
	}
	return beats, nil
}

func (m *SoftwareMemory) Write(req BurstRequest, beats []Beat) error {
	if err := validateBurst(req); err != nil {
		return err
	}
	if len(beats) != req.Len {
		return rasterErr("bus", "beat count does not match burst length")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := 0
	for _, sub := range splitOn4KiB(req) {
		addr := sub.Addr
		for i := 0; i < sub.Len; i++ {
			if int(addr)+sub.SizeBytes > len(m.data) {
				return rasterErr("bus", "write past end of memory")
			}
			copy(m.data[addr:addr+uint32(sub.SizeBytes)], beats[idx].Data)
			addr += beatStride(sub)
			idx++
		}
	}
	return nil
}

func beatStride(req BurstRequest) uint32 {
	if req.Burst == BurstFixed {
		return 0
	}
	return uint32(req.SizeBytes)
}

func validateBurst(req BurstRequest) error {
	if req.Len < 1 || req.Len > 16 {
		return rasterErr("bus", "burst length out of range 1..16")
	}
	switch req.SizeBytes {
	case 1, 2, 4, 8:
	default:
		return rasterErr("bus", "unsupported beat size")
	}
	if req.Addr%uint32(req.SizeBytes) != 0 {
		return rasterErr("bus", "unaligned burst address")
	}
	return nil
}

func (m *SoftwareMemory) ReadUint32(addr uint32) uint32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return binary.LittleEndian.Uint32(m.data[addr : addr+4])
}

func (m *SoftwareMemory) WriteUint32(addr uint32, v uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	binary.LittleEndian.PutUint32(m.data[addr:addr+4], v)
}

func (m *SoftwareMemory) ReadUint64(addr uint32) uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return binary.LittleEndian.Uint64(m.data[addr : addr+8])
}

// ByteWriter is the narrow interface the pixel writer needs: a single
// strobed write of 1-3 bytes, which the generic BurstMemoryPort can't
// express (its beats are whole, unmasked words). SoftwareMemory implements
// it directly; a real AXI target would express it as a partial-strobe
// write-data beat.
type ByteWriter interface {
	WriteBytes(addr uint32, data []byte) error
}

func (m *SoftwareMemory) WriteBytes(addr uint32, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if int(addr)+len(data) > len(m.data) {
		return rasterErr("bus", "strobed write past end of memory")
	}
	copy(m.data[addr:], data)
	return nil
}
