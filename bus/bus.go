// Copyright 2024-2026 The famicore authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bus wires the console's 16-bit address space together: 2 KiB
// of internal RAM with its mirrors, the PPU register window, the OAM
// DMA port and the cartridge PRG-ROM.
package bus

import (
	"log"

	"github.com/famicore/gones/cartridge"
	"github.com/famicore/gones/cpu"
	"github.com/famicore/gones/ppu"
)

// Address ranges decoded by the bus.
//
//	$0000-$1FFF  2 KiB RAM, mirrored every $0800
//	$2000-$3FFF  PPU registers, mirrored every 8 bytes
//	$4014        OAM DMA
//	$8000-$FFFF  cartridge PRG-ROM
const (
	ramEnd       = 0x1fff
	ppuRegisters = 0x2000
	ppuEnd       = 0x3fff
	oamDMA       = 0x4014
	prgStart     = 0x8000
)

// A Bus decodes CPU memory accesses onto console RAM, the PPU register
// block and the cartridge. It implements the cpu.Memory interface.
type Bus struct {
	ram  [2048]byte
	cart *cartridge.Cartridge
	PPU  *ppu.PPU
}

// New creates a bus for the given cartridge. The PPU is created along
// with it and takes ownership of the cartridge's CHR-ROM.
func New(cart *cartridge.Cartridge) *Bus {
	return &Bus{
		cart: cart,
		PPU:  ppu.New(cart.CHR, cart.Mirroring),
	}
}

// LoadByte loads a single byte from the address and returns it.
func (b *Bus) LoadByte(addr uint16) byte {
	switch {
	case addr <= ramEnd:
		return b.ram[addr&0x07ff]
	case addr <= ppuEnd:
		return b.readPPURegister(addr)
	case addr >= prgStart:
		return b.readPRG(addr)
	default:
		log.Printf("bus: ignoring read of unmapped address %04X", addr)
		return 0
	}
}

// LoadBytes loads multiple bytes from the address and stores them into
// the buffer 'buf'.
func (b *Bus) LoadBytes(addr uint16, buf []byte) {
	for i := range buf {
		buf[i] = b.LoadByte(addr + uint16(i))
	}
}

// LoadAddress loads a 16-bit address value from the requested address
// and returns it.
//
// When the address spans 2 pages (i.e., address ends in 0xff), the high
// byte of the loaded address comes from a page-wrapped address. For
// example, LoadAddress on $12FF reads the low byte from $12FF and the
// high byte from $1200. This mimics the behavior of the NMOS 6502.
func (b *Bus) LoadAddress(addr uint16) uint16 {
	if (addr & 0xff) == 0xff {
		return uint16(b.LoadByte(addr)) | uint16(b.LoadByte(addr-0xff))<<8
	}
	return uint16(b.LoadByte(addr)) | uint16(b.LoadByte(addr+1))<<8
}

// StoreByte stores a byte to the requested address.
func (b *Bus) StoreByte(addr uint16, v byte) {
	switch {
	case addr <= ramEnd:
		b.ram[addr&0x07ff] = v
	case addr <= ppuEnd:
		b.writePPURegister(addr, v)
	case addr == oamDMA:
		b.dmaTransfer(v)
	case addr >= prgStart:
		panic("attempt to write to cartridge ROM space")
	default:
		log.Printf("bus: ignoring write to unmapped address %04X", addr)
	}
}

// StoreBytes stores multiple bytes to the requested address.
func (b *Bus) StoreBytes(addr uint16, buf []byte) {
	for i, v := range buf {
		b.StoreByte(addr+uint16(i), v)
	}
}

// StoreAddress stores a 16-bit address 'v' to the requested address.
func (b *Bus) StoreAddress(addr uint16, v uint16) {
	b.StoreByte(addr, byte(v&0xff))
	if (addr & 0xff) == 0xff {
		b.StoreByte(addr-0xff, byte(v>>8))
	} else {
		b.StoreByte(addr+1, byte(v>>8))
	}
}

// The eight PPU registers at $2000-$2007 repeat through $3FFF.
func (b *Bus) readPPURegister(addr uint16) byte {
	switch addr & 0x2007 {
	case 0x2002:
		return b.PPU.ReadStatus()
	case 0x2004:
		return b.PPU.ReadOAMData()
	case 0x2007:
		return b.PPU.ReadData()
	default:
		panic("attempt to read from write-only PPU register")
	}
}

func (b *Bus) writePPURegister(addr uint16, v byte) {
	switch addr & 0x2007 {
	case 0x2000:
		b.PPU.WriteControl(v)
	case 0x2001:
		b.PPU.WriteMask(v)
	case 0x2002:
		panic("attempt to write to PPU status register")
	case 0x2003:
		b.PPU.WriteOAMAddr(v)
	case 0x2004:
		b.PPU.WriteOAMData(v)
	case 0x2005:
		b.PPU.WriteScroll(v)
	case 0x2006:
		b.PPU.WriteAddr(v)
	case 0x2007:
		b.PPU.WriteData(v)
	}
}

// Copy the 256-byte page $XX00-$XXFF into PPU OAM.
func (b *Bus) dmaTransfer(page byte) {
	var buf [256]byte
	b.LoadBytes(uint16(page)<<8, buf[:])
	b.PPU.WriteOAMDMA(&buf)
}

// PRG-ROM maps a 32 KiB window at $8000. A 16 KiB image appears in both
// halves of the window.
func (b *Bus) readPRG(addr uint16) byte {
	offset := int(addr - prgStart)
	if len(b.cart.PRG) == cartridge.PRGBankSize {
		offset %= cartridge.PRGBankSize
	}
	return b.cart.PRG[offset]
}

var _ cpu.Memory = (*Bus)(nil)
