// Copyright 2024-2026 The famicore authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ppu emulates the register-visible behavior of the NES picture
// processing unit: the control, mask, status, scroll and address
// registers, object attribute memory, and the VRAM/palette address
// space behind the data port. Rendering and frame timing are not
// modeled.
package ppu

import (
	"log"

	"github.com/famicore/gones/cartridge"
)

// A PPU owns the graphics ROM and all PPU-internal memory. The CPU
// reaches it only through the eight registers the bus exposes.
type PPU struct {
	VRAM    [2048]byte // nametable RAM
	Status  Status     // $2002
	Ctrl    Control    // $2000
	MaskReg Mask       // $2001

	chr       []byte
	palette   [32]byte
	oam       [256]byte
	oamAddr   byte
	mirroring cartridge.Mirroring
	scroll    ScrollRegister
	addr      AddrRegister
	readBuf   byte
}

// New creates a PPU owning the provided graphics ROM.
func New(chr []byte, mirroring cartridge.Mirroring) *PPU {
	return &PPU{
		chr:       chr,
		mirroring: mirroring,
		addr:      newAddrRegister(),
	}
}

// WriteControl updates the controller register ($2000).
func (p *PPU) WriteControl(v byte) {
	p.Ctrl = Control(v)
}

// WriteMask updates the mask register ($2001).
func (p *PPU) WriteMask(v byte) {
	p.MaskReg = Mask(v)
}

// ReadStatus returns the status register ($2002). Reading clears the
// vblank bit and resets the address and scroll write latches.
func (p *PPU) ReadStatus() byte {
	v := byte(p.Status)
	p.Status.SetVBlank(false)
	p.addr.ResetLatch()
	p.scroll.ResetLatch()
	return v
}

// WriteOAMAddr updates the OAM address register ($2003).
func (p *PPU) WriteOAMAddr(v byte) {
	p.oamAddr = v
}

// WriteOAMData stores a byte at the current OAM address ($2004) and
// advances it.
func (p *PPU) WriteOAMData(v byte) {
	p.oam[p.oamAddr] = v
	p.oamAddr++
}

// ReadOAMData returns the byte at the current OAM address ($2004).
// Reads do not advance the address.
func (p *PPU) ReadOAMData() byte {
	return p.oam[p.oamAddr]
}

// WriteOAMDMA copies a full 256-byte page into OAM ($4014), starting at
// the current OAM address and wrapping.
func (p *PPU) WriteOAMDMA(page *[256]byte) {
	for _, v := range page {
		p.oam[p.oamAddr] = v
		p.oamAddr++
	}
}

// WriteScroll feeds one byte into the scroll latch ($2005).
func (p *PPU) WriteScroll(v byte) {
	p.scroll.Update(v)
}

// WriteAddr feeds one byte into the VRAM address latch ($2006).
func (p *PPU) WriteAddr(v byte) {
	p.addr.Update(v)
}

// ReadData reads from the data port ($2007) and advances the address
// register. Reads below the palette range return the previous contents
// of an internal buffer; palette reads are immediate.
func (p *PPU) ReadData() byte {
	addr := p.addr.Get()
	p.incrementVRAMAddr()

	switch {
	case addr < 0x2000:
		v := p.readBuf
		p.readBuf = p.chr[addr]
		return v
	case addr < 0x3f00:
		v := p.readBuf
		p.readBuf = p.VRAM[p.mirrorVRAMAddr(addr)]
		return v
	default:
		return p.palette[paletteIndex(addr)]
	}
}

// WriteData writes to the data port ($2007) and advances the address
// register.
func (p *PPU) WriteData(v byte) {
	addr := p.addr.Get()
	p.incrementVRAMAddr()

	switch {
	case addr < 0x2000:
		log.Printf("ppu: ignoring write to CHR-ROM space at %04X", addr)
	case addr < 0x3f00:
		p.VRAM[p.mirrorVRAMAddr(addr)] = v
	default:
		p.palette[paletteIndex(addr)] = v
	}
}

func (p *PPU) incrementVRAMAddr() {
	p.addr.Increment(p.Ctrl.VRAMAddrIncrement())
}

// Map a nametable address onto the 2 KiB of physical VRAM.
//
//	Horizontal mirroring:   Vertical mirroring:
//	    [A] [a]                 [A] [B]
//	    [B] [b]                 [a] [b]
func (p *PPU) mirrorVRAMAddr(addr uint16) uint16 {
	// Mirror [0x3000, 0x3EFF] down to [0x2000, 0x2EFF].
	mirrored := addr & 0x2fff
	index := mirrored - 0x2000
	nametable := index / 0x400

	switch {
	case p.mirroring == cartridge.Vertical && nametable >= 2:
		return index - 0x800
	case p.mirroring == cartridge.Horizontal && (nametable == 1 || nametable == 2):
		return index - 0x400
	case p.mirroring == cartridge.Horizontal && nametable == 3:
		return index - 0x800
	default:
		return index
	}
}

// Palette RAM is 32 bytes mirrored through $3F00-$3FFF; the sprite
// background entries at $3F10/$3F14/$3F18/$3F1C mirror the backdrop
// entries at $3F00/$3F04/$3F08/$3F0C.
func paletteIndex(addr uint16) uint16 {
	index := (addr - 0x3f00) % 32
	switch index {
	case 0x10, 0x14, 0x18, 0x1c:
		index -= 0x10
	}
	return index
}
