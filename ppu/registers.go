// Copyright 2024-2026 The famicore authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ppu

// Control is the PPU controller register ($2000). Write-only.
//
//	7  bit  0
//	---- ----
//	VPHB SINN
//	|||| ||||
//	|||| ||++- Base nametable address
//	|||| |+--- VRAM address increment (0: add 1; 1: add 32)
//	|||| +---- Sprite pattern table address
//	|||+------ Background pattern table address
//	||+------- Sprite size (0: 8x8; 1: 8x16)
//	|+-------- PPU master/slave select
//	+--------- Generate an NMI at the start of vblank
type Control byte

const (
	ctrlNametable1        Control = 1 << 0
	ctrlNametable2        Control = 1 << 1
	ctrlVRAMAddIncrement  Control = 1 << 2
	ctrlSpritePattern     Control = 1 << 3
	ctrlBackgroundPattern Control = 1 << 4
	ctrlSpriteSize        Control = 1 << 5
	ctrlMasterSlave       Control = 1 << 6
	ctrlGenerateNMI       Control = 1 << 7
)

// VRAMAddrIncrement returns the step applied to the address register
// after each data port access.
func (c Control) VRAMAddrIncrement() byte {
	if c&ctrlVRAMAddIncrement != 0 {
		return 32
	}
	return 1
}

// NametableAddr returns the base address of the selected nametable.
func (c Control) NametableAddr() uint16 {
	return 0x2000 + 0x400*uint16(c&0x03)
}

// SpritePatternAddr returns the base address of the sprite pattern table.
func (c Control) SpritePatternAddr() uint16 {
	if c&ctrlSpritePattern != 0 {
		return 0x1000
	}
	return 0
}

// BackgroundPatternAddr returns the base address of the background
// pattern table.
func (c Control) BackgroundPatternAddr() uint16 {
	if c&ctrlBackgroundPattern != 0 {
		return 0x1000
	}
	return 0
}

// GenerateNMI reports whether vblank should raise a non-maskable
// interrupt.
func (c Control) GenerateNMI() bool {
	return c&ctrlGenerateNMI != 0
}

// Mask is the PPU mask register ($2001). Write-only.
//
//	7  bit  0
//	---- ----
//	BGRs bMmG
//	|||| ||||
//	|||| |||+- Greyscale
//	|||| ||+-- Show background in leftmost 8 pixels
//	|||| |+--- Show sprites in leftmost 8 pixels
//	|||| +---- Show background
//	|||+------ Show sprites
//	||+------- Emphasize red
//	|+-------- Emphasize green
//	+--------- Emphasize blue
type Mask byte

const (
	maskGreyscale          Mask = 1 << 0
	maskLeftmostBackground Mask = 1 << 1
	maskLeftmostSprites    Mask = 1 << 2
	maskShowBackground     Mask = 1 << 3
	maskShowSprites        Mask = 1 << 4
	maskEmphasizeRed       Mask = 1 << 5
	maskEmphasizeGreen     Mask = 1 << 6
	maskEmphasizeBlue      Mask = 1 << 7
)

func (m Mask) Greyscale() bool      { return m&maskGreyscale != 0 }
func (m Mask) ShowBackground() bool { return m&maskShowBackground != 0 }
func (m Mask) ShowSprites() bool    { return m&maskShowSprites != 0 }

// Status is the PPU status register ($2002). Read-only; the low five
// bits are open bus on real hardware and read back as zero here.
type Status byte

const (
	statusSpriteOverflow Status = 1 << 5
	statusSpriteZeroHit  Status = 1 << 6
	statusVBlank         Status = 1 << 7
)

// VBlank reports whether the vertical-blank bit is set.
func (s Status) VBlank() bool { return s&statusVBlank != 0 }

// SetVBlank sets or clears the vertical-blank bit.
func (s *Status) SetVBlank(on bool) { s.set(statusVBlank, on) }

// SetSpriteZeroHit sets or clears the sprite-zero-hit bit.
func (s *Status) SetSpriteZeroHit(on bool) { s.set(statusSpriteZeroHit, on) }

// SetSpriteOverflow sets or clears the sprite-overflow bit.
func (s *Status) SetSpriteOverflow(on bool) { s.set(statusSpriteOverflow, on) }

func (s *Status) set(bit Status, on bool) {
	if on {
		*s |= bit
	} else {
		*s &^= bit
	}
}

// AddrRegister is the two-write VRAM address latch ($2006). The CPU
// writes the high byte first, then the low byte. Values above $3FFF
// mirror down into the PPU address space.
type AddrRegister struct {
	hi, lo byte
	hiPtr  bool
}

func newAddrRegister() AddrRegister {
	return AddrRegister{hiPtr: true}
}

// Update feeds one byte into the latch.
func (a *AddrRegister) Update(v byte) {
	if a.hiPtr {
		a.hi = v
	} else {
		a.lo = v
	}
	a.mirrorDown()
	a.hiPtr = !a.hiPtr
}

// Increment advances the address by the control register's step,
// carrying into the high byte and mirroring above $3FFF.
func (a *AddrRegister) Increment(inc byte) {
	lo := a.lo
	a.lo += inc
	if lo > a.lo {
		a.hi++
	}
	a.mirrorDown()
}

// Get returns the 16-bit address held in the latch.
func (a *AddrRegister) Get() uint16 {
	return uint16(a.hi)<<8 | uint16(a.lo)
}

// ResetLatch restores the latch to expecting a high byte.
func (a *AddrRegister) ResetLatch() {
	a.hiPtr = true
}

func (a *AddrRegister) set(v uint16) {
	a.hi = byte(v >> 8)
	a.lo = byte(v)
}

func (a *AddrRegister) mirrorDown() {
	if a.Get() > 0x3fff {
		a.set(a.Get() & 0x3fff)
	}
}

// ScrollRegister is the two-write scroll latch ($2005): X position
// first, then Y.
type ScrollRegister struct {
	X, Y  byte
	yNext bool
}

// Update feeds one byte into the latch.
func (s *ScrollRegister) Update(v byte) {
	if s.yNext {
		s.Y = v
	} else {
		s.X = v
	}
	s.yNext = !s.yNext
}

// ResetLatch restores the latch to expecting an X value.
func (s *ScrollRegister) ResetLatch() {
	s.yNext = false
}
