// Copyright 2024-2026 The famicore authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cartridge holds the program and graphics ROM images of an NES
// cartridge. It decodes the iNES container format but performs no file
// I/O of its own.
package cartridge

import (
	"errors"
	"fmt"
)

// Mirroring selects how the PPU's two physical nametables map onto the
// four logical ones.
type Mirroring byte

const (
	Horizontal Mirroring = iota
	Vertical
	FourScreen
)

// ROM bank granularities of the iNES format.
const (
	PRGBankSize = 16 * 1024
	CHRBankSize = 8 * 1024
)

var nesMagic = []byte{'N', 'E', 'S', 0x1a}

// Errors returned by the iNES decoder.
var (
	ErrBadMagic        = errors.New("not an iNES image")
	ErrBadVersion      = errors.New("unsupported iNES version")
	ErrTruncated       = errors.New("truncated iNES image")
	ErrInvalidBankSize = errors.New("invalid ROM bank size")
)

// A Cartridge holds the two ROM images of an NES game cartridge. PRG is
// the program ROM the CPU sees at $8000 and up; CHR is the graphics ROM
// owned by the PPU.
type Cartridge struct {
	PRG       []byte
	CHR       []byte
	Mirroring Mirroring
}

// New builds a cartridge from raw ROM buffers. PRG must be a whole
// number of 16 KiB banks and CHR a whole number of 8 KiB banks.
func New(prg, chr []byte, mirroring Mirroring) (*Cartridge, error) {
	if len(prg) == 0 || len(prg)%PRGBankSize != 0 {
		return nil, fmt.Errorf("%w: PRG is %d bytes", ErrInvalidBankSize, len(prg))
	}
	if len(chr)%CHRBankSize != 0 {
		return nil, fmt.Errorf("%w: CHR is %d bytes", ErrInvalidBankSize, len(chr))
	}
	return &Cartridge{PRG: prg, CHR: chr, Mirroring: mirroring}, nil
}

// DecodeiNES decodes a raw iNES image. Only mapper 0 (NROM) cartridges
// are supported. A 512-byte trainer section, if flagged, is skipped.
func DecodeiNES(raw []byte) (*Cartridge, error) {
	if len(raw) < 16 {
		return nil, ErrTruncated
	}
	for i, m := range nesMagic {
		if raw[i] != m {
			return nil, ErrBadMagic
		}
	}

	ctrl1, ctrl2 := raw[6], raw[7]

	if version := (ctrl2 >> 2) & 0x03; version != 0 {
		return nil, fmt.Errorf("%w: iNES %d", ErrBadVersion, version)
	}

	mapper := (ctrl1 >> 4) | (ctrl2 & 0xf0)
	if mapper != 0 {
		return nil, fmt.Errorf("unsupported mapper %d", mapper)
	}

	mirroring := Horizontal
	if ctrl1&0x01 != 0 {
		mirroring = Vertical
	}
	if ctrl1&0x08 != 0 {
		mirroring = FourScreen
	}

	prgSize := int(raw[4]) * PRGBankSize
	chrSize := int(raw[5]) * CHRBankSize

	offset := 16
	if ctrl1&0x04 != 0 {
		offset += 512 // trainer
	}

	if len(raw) < offset+prgSize+chrSize {
		return nil, ErrTruncated
	}

	return New(
		raw[offset:offset+prgSize],
		raw[offset+prgSize:offset+prgSize+chrSize],
		mirroring,
	)
}
