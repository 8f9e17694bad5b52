// uio_register_file.go - Real-hardware register backend via Linux UIO
//
// Grounded in hal/uio.py's Uio class: open /dev/uioN, mmap the control
// window it exposes, and use blocking reads on the UIO file descriptor to
// wait for the rasterizer's interrupt instead of polling the IDLE
// register. This is the hardware-facing sibling of Engine's in-process
// register file — RegisterFile is satisfied by both, so a driver can be
// written once and pointed at either.
//
// Only built on Linux, where /dev/uioN and its sysfs map-size files exist.

//go:build linux

package main

import (
	"encoding/binary"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// RegisterFile is the register-level surface a driver needs, satisfied by
// both Engine (software model) and UioRegisterFile (real silicon).
type RegisterFile interface {
	ReadRegister(offset uint32) uint32
	WriteRegister(offset uint32, value uint32)
}

// UioRegisterFile maps a UIO device's control window into this process and
// implements RegisterFile directly against the mmap'd bytes.
type UioRegisterFile struct {
	file *os.File
	mem  []byte
}

// OpenUioRegisterFile opens /dev/uio<number>, reads the size of mapping 0
// from sysfs, and mmaps it read/write.
func OpenUioRegisterFile(number int) (*UioRegisterFile, error) {
	f, err := os.OpenFile(fmt.Sprintf("/dev/uio%d", number), os.O_RDWR, 0)
	if err != nil {
		return nil, rasterErr("uio", "open: "+err.Error())
	}

	sizePath := fmt.Sprintf("/sys/class/uio/uio%d/maps/map0/size", number)
	raw, err := os.ReadFile(sizePath)
	if err != nil {
		f.Close()
		return nil, rasterErr("uio", "read map size: "+err.Error())
	}
	size, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 0, 64)
	if err != nil {
		f.Close()
		return nil, rasterErr("uio", "parse map size: "+err.Error())
	}

	mem, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, rasterErr("uio", "mmap: "+err.Error())
	}

	return &UioRegisterFile{file: f, mem: mem}, nil
}

func (u *UioRegisterFile) ReadRegister(offset uint32) uint32 {
	return binary.LittleEndian.Uint32(u.mem[offset : offset+4])
}

func (u *UioRegisterFile) WriteRegister(offset uint32, value uint32) {
	binary.LittleEndian.PutUint32(u.mem[offset:offset+4], value)
}

// EnableIRQ and DisableIRQ toggle the UIO interrupt the way Uio._write does:
// a 4-byte little-endian 1 or 0 written to the UIO fd itself (not the mmap).
func (u *UioRegisterFile) EnableIRQ() error {
	return u.writeIRQCtrl(1)
}

func (u *UioRegisterFile) DisableIRQ() error {
	return u.writeIRQCtrl(0)
}

func (u *UioRegisterFile) writeIRQCtrl(v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	n, err := u.file.Write(buf[:])
	if err != nil {
		return rasterErr("uio", "irq ctrl write: "+err.Error())
	}
	if n != 4 {
		return rasterErr("uio", "short irq ctrl write")
	}
	return nil
}

// WaitIRQ blocks until the rasterizer raises its interrupt, mirroring
// Uio.wait_irq's blocking read on the UIO fd (one interrupt count per
// unblock rather than asyncio's event-based wakeup, since this model has
// no event loop of its own).
func (u *UioRegisterFile) WaitIRQ() error {
	var buf [4]byte
	n, err := u.file.Read(buf[:])
	if err != nil {
		return rasterErr("uio", "irq wait: "+err.Error())
	}
	if n != 4 {
		return rasterErr("uio", "short irq count read")
	}
	return nil
}

func (u *UioRegisterFile) Close() error {
	if err := unix.Munmap(u.mem); err != nil {
		return rasterErr("uio", "munmap: "+err.Error())
	}
	return u.file.Close()
}
